package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/query"
)

func TestSearch_SingleKindStories(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, _ int) ([]domain.Story, error) {
		return []domain.Story{
			{ID: "s1", Title: "The Cats Next Door", Tags: []string{"cats"}, AuthorUsername: "ana", CreatedAt: 100, LikeCount: 2},
			{ID: "s2", Title: "Quiet Streets", Content: "a city full of cats", CreatedAt: 200},
		}, nil
	}

	svc := New(stories, authors, tags, cols, nil)
	resp, err := svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 1, 10, false))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.Results.TotalResults != 2 {
		t.Fatalf("totalResults = %d, want 2", resp.Results.TotalResults)
	}
	got := resp.Results.Stories
	if got[0].Story().ID != "s1" || got[1].Story().ID != "s2" {
		t.Errorf("relevance order = %s, %s; want s1, s2", got[0].Story().ID, got[1].Story().ID)
	}
	if got[0].Score() <= got[1].Score() {
		t.Errorf("expected s1 to outscore s2, got %d vs %d", got[0].Score(), got[1].Score())
	}
	if resp.Page.CurrentPage != 1 || resp.Page.HasMore {
		t.Errorf("page = %+v, want page 1 without more", resp.Page)
	}
}

func TestSearch_DropsZeroScoreCandidates(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, _ int) ([]domain.Story, error) {
		// The recall fetch is loose; candidates that fail precise scoring
		// must not surface.
		return []domain.Story{
			{ID: "hit", Title: "cats"},
			{ID: "noise", Title: "gardening", Content: "tomatoes"},
		}, nil
	}

	svc := New(stories, authors, tags, cols, nil)
	resp, err := svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 1, 10, false))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Results.TotalResults != 1 || resp.Results.Stories[0].Story().ID != "hit" {
		t.Errorf("expected only the scoring candidate, got %+v", resp.Results)
	}
}

func TestSearch_PartialFailureDegrades(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, _ int) ([]domain.Story, error) {
		return nil, errors.New("index offline")
	}
	authors.fetchFunc = func(_ context.Context, _ query.Query, _ int) ([]domain.Author, error) {
		return []domain.Author{{ID: "a1", Username: "catlady", Name: "Cat Lady"}}, nil
	}

	svc := New(stories, authors, tags, cols, nil)
	resp, err := svc.Search(context.Background(), mustRequest(t, "cat", "", "", 1, 10, false))
	if err != nil {
		t.Fatalf("Search must tolerate a single failed kind, got %v", err)
	}
	if len(resp.Results.Stories) != 0 {
		t.Errorf("failed kind must degrade to empty, got %d stories", len(resp.Results.Stories))
	}
	if len(resp.Results.Authors) != 1 {
		t.Errorf("surviving kind lost: %d authors, want 1", len(resp.Results.Authors))
	}
}

func TestSearch_AllKindsFailed(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	fail := errors.New("redis down")
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, _ int) ([]domain.Story, error) {
		return nil, fail
	}
	authors.fetchFunc = func(_ context.Context, _ query.Query, _ int) ([]domain.Author, error) {
		return nil, fail
	}
	tags.fetchFunc = func(_ context.Context, _ query.Query, _ int) ([]domain.Tag, error) {
		return nil, fail
	}
	cols.fetchFunc = func(_ context.Context, _ query.Query, _ int) ([]domain.Collection, error) {
		return nil, fail
	}

	svc := New(stories, authors, tags, cols, nil)
	_, err := svc.Search(context.Background(), mustRequest(t, "cats", "", "", 1, 10, false))
	if !errors.Is(err, domain.ErrAllKindsFailed) {
		t.Fatalf("expected ErrAllKindsFailed, got %v", err)
	}

	// A single-kind request with a failing fetcher has no surviving kind.
	_, err = svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 1, 10, false))
	if !errors.Is(err, domain.ErrAllKindsFailed) {
		t.Fatalf("expected ErrAllKindsFailed for single kind, got %v", err)
	}
}

func TestSearch_GuestFlagReachesStoryFetcher(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	var sawGuest bool
	stories.fetchFunc = func(_ context.Context, _ query.Query, guest bool, _ int) ([]domain.Story, error) {
		sawGuest = guest
		return nil, nil
	}

	svc := New(stories, authors, tags, cols, nil)
	if _, err := svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 1, 10, true)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !sawGuest {
		t.Error("guest flag did not reach the story fetcher")
	}
}

func TestSearch_StoryPoolSizing(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	var sawLimit int
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, limit int) ([]domain.Story, error) {
		sawLimit = limit
		return nil, nil
	}

	svc := New(stories, authors, tags, cols, nil)
	if _, err := svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 2, 10, false)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if want := 2 * 10 * DefaultOverfetchFactor; sawLimit != want {
		t.Errorf("pool = %d, want %d", sawLimit, want)
	}

	svc.WithLimits(0, 0, 50, 0)
	if _, err := svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 5, 20, false)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if sawLimit != 50 {
		t.Errorf("pool = %d, want capped at 50", sawLimit)
	}
}

func TestSearch_PaginationContract(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, _ int) ([]domain.Story, error) {
		all := make([]domain.Story, 25)
		for i := range all {
			all[i] = domain.Story{
				ID:        fmt.Sprintf("s%02d", i),
				Title:     "cats",
				CreatedAt: int64(1000 - i),
			}
		}
		return all, nil
	}
	svc := New(stories, authors, tags, cols, nil)

	resp, err := svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 2, 10, false))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Results.TotalResults != 10 {
		t.Errorf("page 2 items = %d, want 10", resp.Results.TotalResults)
	}
	if resp.Results.Stories[0].Story().ID != "s10" {
		t.Errorf("page 2 starts at %s, want s10", resp.Results.Stories[0].Story().ID)
	}
	if resp.Page.TotalResults != 25 || resp.Page.TotalPages != 3 || !resp.Page.HasMore {
		t.Errorf("page 2 meta = %+v, want 25 total over 3 pages with more", resp.Page)
	}

	resp, err = svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 3, 10, false))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Results.TotalResults != 5 || resp.Page.HasMore {
		t.Errorf("page 3 = %d items, hasMore %v; want 5 items and no more",
			resp.Results.TotalResults, resp.Page.HasMore)
	}
}

func TestSearch_AllKindsMergesByRelevance(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, _ int) ([]domain.Story, error) {
		// title + exact tag: scores 27
		return []domain.Story{{ID: "s1", Title: "cats everywhere", Tags: []string{"cats"}}}, nil
	}
	tags.fetchFunc = func(_ context.Context, _ query.Query, _ int) ([]domain.Tag, error) {
		// exact tag: scores 25
		return []domain.Tag{{Name: "cats"}}, nil
	}
	authors.fetchFunc = func(_ context.Context, _ query.Query, _ int) ([]domain.Author, error) {
		// username match: scores 8
		return []domain.Author{{ID: "a1", Username: "catsandra"}}, nil
	}

	svc := New(stories, authors, tags, cols, nil)
	resp, err := svc.Search(context.Background(), mustRequest(t, "cats", "all", "", 1, 2, false))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	// Page total counts every match; the window keeps only the top two.
	if resp.Page.TotalResults != 3 || !resp.Page.HasMore {
		t.Errorf("page meta = %+v, want 3 total with more", resp.Page)
	}
	if resp.Results.TotalResults != 2 {
		t.Fatalf("window = %d items, want 2", resp.Results.TotalResults)
	}
	if len(resp.Results.Stories) != 1 || len(resp.Results.Tags) != 1 || len(resp.Results.Authors) != 0 {
		t.Errorf("top-2 buckets = %d stories, %d tags, %d authors; want story and tag",
			len(resp.Results.Stories), len(resp.Results.Tags), len(resp.Results.Authors))
	}
}

func TestSearch_AnonymousStoriesHideAuthor(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, _ int) ([]domain.Story, error) {
		return []domain.Story{{ID: "s1", Title: "cats", AuthorUsername: "ana", Anonymous: true}}, nil
	}

	svc := New(stories, authors, tags, cols, nil)
	resp, err := svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 1, 10, false))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	hit := resp.Results.Stories[0].Story()
	if hit.AuthorUsername != "" || !hit.Anonymous {
		t.Errorf("anonymous hit leaked author: %+v", hit)
	}
}

func TestSearch_ExcerptTruncation(t *testing.T) {
	stories, authors, tags, cols := emptyFetchers()
	long := strings.Repeat("cats ", 100)
	stories.fetchFunc = func(_ context.Context, _ query.Query, _ bool, _ int) ([]domain.Story, error) {
		return []domain.Story{{ID: "s1", Title: "cats", Content: long}}, nil
	}

	svc := New(stories, authors, tags, cols, nil).WithLimits(0, 0, 0, 20)
	resp, err := svc.Search(context.Background(), mustRequest(t, "cats", "stories", "", 1, 10, false))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := resp.Results.Stories[0].Story().Excerpt; len([]rune(got)) != 20 {
		t.Errorf("excerpt length = %d runes, want 20", len([]rune(got)))
	}
}

func TestExcerpt_RuneSafe(t *testing.T) {
	if got := excerpt("héllo wörld", 5); got != "héllo" {
		t.Errorf("excerpt = %q, want %q", got, "héllo")
	}
	if got := excerpt("short", 10); got != "short" {
		t.Errorf("excerpt = %q, want unchanged input", got)
	}
}
