// Package tag fetches tag candidates from the distinct tag universe of the
// story index.
package tag

import (
	"context"
	"sort"
	"strings"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/kind"
	"github.com/taleweave/storysearch/internal/domain/search/query"
)

// store is the consumer interface for tag reads (ISP).
type store interface {
	TagValues(ctx context.Context, index, field string) ([]string, error)
}

// Repo implements usecase/search.TagFetcher.
type Repo struct {
	store store
}

// New creates a tag repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Fetch returns up to limit distinct tags matching the query: exact-equal,
// prefix, or substring of the phrase, or containing any query term. Values are
// sorted before filtering so repeated queries see a stable order.
func (r *Repo) Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Tag, error) {
	values, err := r.store.TagValues(ctx, domain.StoryIndex, "tags")
	if err != nil {
		return nil, domain.NewFetchError(kind.Tag, err)
	}

	sort.Strings(values)

	phrase := q.Phrase()
	tags := make([]domain.Tag, 0, limit)
	for _, v := range values {
		if len(tags) >= limit {
			break
		}
		if matches(strings.ToLower(v), phrase, q.Terms()) {
			tags = append(tags, domain.Tag{Name: v})
		}
	}
	return tags, nil
}

func matches(tag, phrase string, terms []string) bool {
	if strings.Contains(tag, phrase) || strings.HasPrefix(tag, phrase) {
		return true
	}
	for _, term := range terms {
		if strings.Contains(tag, term) {
			return true
		}
	}
	return false
}
