package request

import (
	"fmt"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/kind"
	"github.com/taleweave/storysearch/internal/domain/search/mode"
	"github.com/taleweave/storysearch/internal/domain/search/query"
)

// Search parameter limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1
)

// Request is a validated search request.
type Request struct {
	query query.Query
	typ   string
	kinds []kind.Kind
	sort  mode.Sort
	page  int
	limit int
	guest bool
}

// New validates and normalizes search parameters.
// rawQuery is tokenized; typ selects the kinds ("" and "all" mean every kind);
// page and limit of 0 take defaults, negative or explicit zero-limit values are
// rejected. guest restricts author-field matching downstream.
func New(rawQuery, typ string, sort mode.Sort, page, limit int, guest bool) (Request, error) {
	q, err := query.New(rawQuery)
	if err != nil {
		return Request{}, err
	}

	kinds, err := kind.ParseType(typ)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidType, err)
	}
	if typ == "" {
		typ = kind.TypeAll
	}

	if sort == "" {
		sort = mode.Relevance
	}
	if !sort.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrInvalidSort, sort)
	}

	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 || limit < 1 {
		return Request{}, fmt.Errorf("%w: page=%d limit=%d", domain.ErrInvalidPage, page, limit)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		query: q,
		typ:   typ,
		kinds: kinds,
		sort:  sort,
		page:  page,
		limit: limit,
		guest: guest,
	}, nil
}

// Query returns the tokenized query.
func (r *Request) Query() query.Query { return r.query }

// Type returns the original API type parameter value.
func (r *Request) Type() string { return r.typ }

// Kinds returns the entity kinds to search.
func (r *Request) Kinds() []kind.Kind { return r.kinds }

// AllKinds reports whether the request spans every kind (merge path).
func (r *Request) AllKinds() bool { return len(r.kinds) > 1 }

// Sort returns the result ordering strategy.
func (r *Request) Sort() mode.Sort { return r.sort }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Guest reports whether the caller is unauthenticated.
func (r *Request) Guest() bool { return r.guest }
