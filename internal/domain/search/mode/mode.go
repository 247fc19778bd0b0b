package mode

// Sort is the result ordering strategy.
type Sort string

// Sort mode constants.
const (
	// Relevance orders by descending relevance score, ties by fetch order.
	Relevance Sort = "relevance"
	Recent    Sort = "recent"
	// Popular orders by like count; only stories and collections carry likes,
	// other kinds fall back to relevance ordering.
	Popular Sort = "popular"
)

// IsValid checks if the sort mode is one of the supported values.
func (s Sort) IsValid() bool {
	return s == Relevance || s == Recent || s == Popular
}
