package tag

import (
	"context"
	"errors"
	"testing"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/query"
)

type mockStore struct {
	tagValuesFunc func(ctx context.Context, index, field string) ([]string, error)
}

func (m *mockStore) TagValues(ctx context.Context, index, field string) ([]string, error) {
	return m.tagValuesFunc(ctx, index, field)
}

func mustQuery(t *testing.T, raw string) query.Query {
	t.Helper()
	q, err := query.New(raw)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func TestFetch_FiltersTagUniverse(t *testing.T) {
	var sawIndex, sawField string
	repo := New(&mockStore{tagValuesFunc: func(_ context.Context, index, field string) ([]string, error) {
		sawIndex, sawField = index, field
		return []string{"wildcats", "dogs", "cats", "catsofinstagram", "gardening"}, nil
	}})

	tags, err := repo.Fetch(context.Background(), mustQuery(t, "cats"), 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if sawIndex != domain.StoryIndex || sawField != "tags" {
		t.Errorf("queried %q/%q, want story index tags field", sawIndex, sawField)
	}

	// Values are sorted before filtering, so the order is alphabetical.
	want := []string{"cats", "catsofinstagram", "wildcats"}
	if len(tags) != len(want) {
		t.Fatalf("got %d tags, want %d: %v", len(tags), len(want), tags)
	}
	for i, w := range want {
		if tags[i].Name != w {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i].Name, w)
		}
	}
}

func TestFetch_RespectsLimit(t *testing.T) {
	repo := New(&mockStore{tagValuesFunc: func(_ context.Context, _, _ string) ([]string, error) {
		return []string{"cats1", "cats2", "cats3", "cats4"}, nil
	}})

	tags, err := repo.Fetch(context.Background(), mustQuery(t, "cats"), 2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("got %d tags, want 2", len(tags))
	}
}

func TestFetch_MatchesAnyTerm(t *testing.T) {
	repo := New(&mockStore{tagValuesFunc: func(_ context.Context, _, _ string) ([]string, error) {
		return []string{"space", "opera", "jazz"}, nil
	}})

	tags, err := repo.Fetch(context.Background(), mustQuery(t, "space opera"), 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("got %v, want the two term matches", tags)
	}
}

func TestFetch_WrapsStoreError(t *testing.T) {
	repo := New(&mockStore{tagValuesFunc: func(_ context.Context, _, _ string) ([]string, error) {
		return nil, errors.New("index offline")
	}})

	_, err := repo.Fetch(context.Background(), mustQuery(t, "cats"), 10)
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}
