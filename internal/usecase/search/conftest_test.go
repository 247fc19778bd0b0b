package search

import (
	"context"
	"testing"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/mode"
	"github.com/taleweave/storysearch/internal/domain/search/query"
	"github.com/taleweave/storysearch/internal/domain/search/request"
)

type mockStoryFetcher struct {
	fetchFunc func(ctx context.Context, q query.Query, guest bool, limit int) ([]domain.Story, error)
}

func (m *mockStoryFetcher) Fetch(ctx context.Context, q query.Query, guest bool, limit int) ([]domain.Story, error) {
	return m.fetchFunc(ctx, q, guest, limit)
}

type mockAuthorFetcher struct {
	fetchFunc func(ctx context.Context, q query.Query, limit int) ([]domain.Author, error)
}

func (m *mockAuthorFetcher) Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Author, error) {
	return m.fetchFunc(ctx, q, limit)
}

type mockTagFetcher struct {
	fetchFunc func(ctx context.Context, q query.Query, limit int) ([]domain.Tag, error)
}

func (m *mockTagFetcher) Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Tag, error) {
	return m.fetchFunc(ctx, q, limit)
}

type mockCollectionFetcher struct {
	fetchFunc func(ctx context.Context, q query.Query, limit int) ([]domain.Collection, error)
}

func (m *mockCollectionFetcher) Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Collection, error) {
	return m.fetchFunc(ctx, q, limit)
}

// emptyFetchers returns mocks that all succeed with no candidates.
func emptyFetchers() (*mockStoryFetcher, *mockAuthorFetcher, *mockTagFetcher, *mockCollectionFetcher) {
	return &mockStoryFetcher{
			fetchFunc: func(context.Context, query.Query, bool, int) ([]domain.Story, error) {
				return nil, nil
			},
		}, &mockAuthorFetcher{
			fetchFunc: func(context.Context, query.Query, int) ([]domain.Author, error) {
				return nil, nil
			},
		}, &mockTagFetcher{
			fetchFunc: func(context.Context, query.Query, int) ([]domain.Tag, error) {
				return nil, nil
			},
		}, &mockCollectionFetcher{
			fetchFunc: func(context.Context, query.Query, int) ([]domain.Collection, error) {
				return nil, nil
			},
		}
}

func mustRequest(t *testing.T, rawQuery, typ, sort string, page, limit int, guest bool) *request.Request {
	t.Helper()
	req, err := request.New(rawQuery, typ, mode.Sort(sort), page, limit, guest)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}
