package domain

import (
	"errors"

	"github.com/taleweave/storysearch/internal/domain/search/kind"
)

var (
	// ErrInvalidQuery signals an empty or whitespace-only search query.
	ErrInvalidQuery = errors.New("search query must not be empty")
	// ErrInvalidPage signals a non-positive page or limit.
	ErrInvalidPage = errors.New("page and limit must be positive")
	// ErrInvalidType signals an unknown search type parameter.
	ErrInvalidType = errors.New("invalid search type")
	// ErrInvalidSort signals an unknown sort parameter.
	ErrInvalidSort = errors.New("invalid sort mode")
	// ErrFetchFailed signals that one entity kind's candidate fetch failed.
	ErrFetchFailed = errors.New("candidate fetch failed")
	// ErrAllKindsFailed signals that every requested kind's fetch failed.
	ErrAllKindsFailed = errors.New("search failed")
)

// FetchError wraps ErrFetchFailed with the kind whose store errored.
type FetchError struct {
	Kind kind.Kind
	Err  error
}

func (e *FetchError) Error() string {
	return ErrFetchFailed.Error() + " for " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return ErrFetchFailed }

// NewFetchError creates a fetch error for a kind.
func NewFetchError(k kind.Kind, err error) error {
	return &FetchError{Kind: k, Err: err}
}
