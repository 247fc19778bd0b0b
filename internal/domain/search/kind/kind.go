package kind

import "fmt"

// Kind is a searchable entity category.
type Kind string

// Searchable entity kinds.
const (
	Story      Kind = "story"
	Author     Kind = "author"
	Tag        Kind = "tag"
	Collection Kind = "collection"
)

// All lists every kind in merge order. Cross-kind ties resolve in this order.
func All() []Kind {
	return []Kind{Story, Author, Tag, Collection}
}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Story || k == Author || k == Tag || k == Collection
}

// TypeAll is the API type parameter selecting every kind.
const TypeAll = "all"

// ParseType maps an API type parameter to the kinds it selects.
// Empty input defaults to all kinds.
func ParseType(t string) ([]Kind, error) {
	switch t {
	case "", TypeAll:
		return All(), nil
	case "stories":
		return []Kind{Story}, nil
	case "authors":
		return []Kind{Author}, nil
	case "tags":
		return []Kind{Tag}, nil
	case "collections":
		return []Kind{Collection}, nil
	default:
		return nil, fmt.Errorf("unknown search type %q", t)
	}
}
