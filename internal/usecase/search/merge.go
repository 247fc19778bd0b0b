package search

import (
	"sort"

	"github.com/taleweave/storysearch/internal/domain/search/kind"
	"github.com/taleweave/storysearch/internal/domain/search/result"
)

// mergeByScore concatenates per-kind ranked lists in fixed kind order and
// stable-sorts the whole by descending relevance score. The merge always keys
// on relevance, whatever sort each kind's own list used. Concatenation order
// resolves cross-kind ties deterministically.
func mergeByScore(lists map[kind.Kind][]result.Result) []result.Result {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	merged := make([]result.Result, 0, total)
	for _, k := range kind.All() {
		merged = append(merged, lists[k]...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() > merged[j].Score()
	})

	return merged
}

// redistribute partitions a merged page window back into per-kind buckets,
// preserving relative order. TotalResults ends up equal to the window length.
func redistribute(window []result.Result) result.Set {
	var set result.Set
	for _, r := range window {
		set.Add(r)
	}
	return set
}
