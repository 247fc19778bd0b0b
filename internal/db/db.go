package db

import (
	"context"
	"time"
)

// TextQuery describes one FT.SEARCH invocation against an entity index.
type TextQuery struct {
	Index        string
	Query        string
	SortBy       string // empty = index default order
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchEntry is one document returned by a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

// SearchResult holds the total match count and the returned page of entries.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher provides full-text index reads.
type Searcher interface {
	Search(ctx context.Context, q *TextQuery) (*SearchResult, error)
	TagValues(ctx context.Context, index, field string) ([]string, error)
}

// Store is the database facade. Consumers depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
