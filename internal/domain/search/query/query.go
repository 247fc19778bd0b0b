package query

import (
	"fmt"
	"strings"

	"github.com/taleweave/storysearch/internal/domain"
)

// MaxLength is the maximum allowed raw query length.
const MaxLength = 1024

// Query is a tokenized search query: the full lower-cased phrase plus its
// whitespace-delimited terms. Scorers use both.
type Query struct {
	phrase string
	terms  []string
}

// New validates and tokenizes a raw query string.
// The phrase is the trimmed, lower-cased input; terms are the phrase split on
// whitespace runs, order preserved, repeats kept.
func New(raw string) (Query, error) {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	if phrase == "" {
		return Query{}, domain.ErrInvalidQuery
	}
	if len(phrase) > MaxLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxLength)
	}
	return Query{phrase: phrase, terms: strings.Fields(phrase)}, nil
}

// Phrase returns the full lower-cased, trimmed query.
func (q Query) Phrase() string { return q.phrase }

// Terms returns the individual query tokens in input order.
func (q Query) Terms() []string { return q.terms }
