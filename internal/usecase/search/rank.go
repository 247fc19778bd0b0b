package search

import (
	"sort"

	"github.com/taleweave/storysearch/internal/domain/search/kind"
	"github.com/taleweave/storysearch/internal/domain/search/mode"
	"github.com/taleweave/storysearch/internal/domain/search/result"
)

// rank orders one kind's results in place. Every sort is stable: equal keys
// keep their fetch order (newest first), which makes repeated pagination of
// the same query deterministic.
func rank(results []result.Result, by mode.Sort) {
	switch by {
	case mode.Recent:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CreatedAt() > results[j].CreatedAt()
		})
	case mode.Popular:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].LikeCount() != results[j].LikeCount() {
				return results[i].LikeCount() > results[j].LikeCount()
			}
			return results[i].CreatedAt() > results[j].CreatedAt()
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score() > results[j].Score()
		})
	}
}

// effectiveSort resolves the sort mode for a kind. Popularity only applies to
// kinds that carry likes; the rest fall back to relevance.
func effectiveSort(k kind.Kind, by mode.Sort) mode.Sort {
	if by == mode.Popular && k != kind.Story && k != kind.Collection {
		return mode.Relevance
	}
	return by
}
