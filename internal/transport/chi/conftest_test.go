package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/query"
	healthuc "github.com/taleweave/storysearch/internal/usecase/health"
	searchuc "github.com/taleweave/storysearch/internal/usecase/search"
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

type mockPinger struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.pingFunc(ctx)
}

// fixtures bundles the mock collaborators behind a test server.
type fixtures struct {
	stories     *mockStoryFetcher
	authors     *mockAuthorFetcher
	tags        *mockTagFetcher
	collections *mockCollectionFetcher
	pinger      *mockPinger
}

// newTestServer wires a Server over mock collaborators that default to
// empty, healthy responses.
func newTestServer(t *testing.T) (*httptest.Server, *fixtures) {
	t.Helper()

	f := &fixtures{
		stories: &mockStoryFetcher{
			fetchFunc: func(context.Context, query.Query, bool, int) ([]domain.Story, error) {
				return nil, nil
			},
		},
		authors: &mockAuthorFetcher{
			fetchFunc: func(context.Context, query.Query, int) ([]domain.Author, error) {
				return nil, nil
			},
		},
		tags: &mockTagFetcher{
			fetchFunc: func(context.Context, query.Query, int) ([]domain.Tag, error) {
				return nil, nil
			},
		},
		collections: &mockCollectionFetcher{
			fetchFunc: func(context.Context, query.Query, int) ([]domain.Collection, error) {
				return nil, nil
			},
		},
		pinger: &mockPinger{
			pingFunc: func(context.Context) error { return nil },
		},
	}

	searchSvc := searchuc.New(f.stories, f.authors, f.tags, f.collections, zap.NewNop())
	healthSvc := healthuc.New(f.pinger)
	srv := NewServer(searchSvc, healthSvc, zap.NewNop())

	r := chi.NewRouter()
	srv.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, f
}
