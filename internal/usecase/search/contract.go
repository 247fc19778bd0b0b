package search

import (
	"context"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/query"
)

// StoryFetcher retrieves story candidates loosely matching the query.
// guest suppresses author-field matching entirely.
type StoryFetcher interface {
	Fetch(ctx context.Context, q query.Query, guest bool, limit int) ([]domain.Story, error)
}

// AuthorFetcher retrieves author candidates by username or name.
type AuthorFetcher interface {
	Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Author, error)
}

// TagFetcher retrieves candidates from the distinct tag universe.
type TagFetcher interface {
	Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Tag, error)
}

// CollectionFetcher retrieves collection candidates by title, description, or tags.
type CollectionFetcher interface {
	Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Collection, error)
}
