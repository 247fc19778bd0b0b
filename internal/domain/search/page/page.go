package page

import (
	"fmt"

	"github.com/taleweave/storysearch/internal/domain"
)

// Page describes one page window over an ordered result list.
// Totals are computed against the full pre-slice count, so HasMore stays
// truthful even when the caller later truncates the list.
type Page struct {
	CurrentPage  int
	TotalPages   int
	TotalResults int
	HasMore      bool

	offset int
	limit  int
}

// New computes pagination over total ordered items.
// Fails with ErrInvalidPage when pageNum < 1 or limit < 1.
func New(total, pageNum, limit int) (Page, error) {
	if pageNum < 1 || limit < 1 {
		return Page{}, fmt.Errorf("%w: page=%d limit=%d", domain.ErrInvalidPage, pageNum, limit)
	}
	if total < 0 {
		total = 0
	}

	offset := (pageNum - 1) * limit
	window := total - offset
	if window < 0 {
		window = 0
	}
	if window > limit {
		window = limit
	}

	return Page{
		CurrentPage:  pageNum,
		TotalPages:   (total + limit - 1) / limit,
		TotalResults: total,
		HasMore:      offset+window < total,
		offset:       offset,
		limit:        limit,
	}, nil
}

// Offset returns the number of items skipped before this page.
func (p Page) Offset() int { return p.offset }

// Bounds returns the [lo, hi) slice bounds clamped to n items.
func (p Page) Bounds(n int) (int, int) {
	lo := p.offset
	if lo > n {
		lo = n
	}
	hi := lo + p.limit
	if hi > n {
		hi = n
	}
	return lo, hi
}
