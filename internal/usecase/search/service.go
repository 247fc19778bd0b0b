package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/kind"
	"github.com/taleweave/storysearch/internal/domain/search/page"
	"github.com/taleweave/storysearch/internal/domain/search/request"
	"github.com/taleweave/storysearch/internal/domain/search/result"
	"github.com/taleweave/storysearch/internal/logger"
	"github.com/taleweave/storysearch/internal/metrics"
)

// Tunables for the two-phase fetch-then-score design. The over-fetch factor
// trades candidate recall for fetch cost: the pool must be large enough that
// the true top of the precise in-process ranking is inside it.
const (
	DefaultOverfetchFactor = 3
	DefaultKindCap         = 10
	DefaultMaxPool         = 500
	DefaultExcerptLen      = 200
)

// Service orchestrates the four kind pipelines: fetch, score, rank, and
// optionally merge across kinds. All collaborators are injected at
// construction.
type Service struct {
	stories     StoryFetcher
	authors     AuthorFetcher
	tags        TagFetcher
	collections CollectionFetcher
	log         *zap.Logger

	overfetch  int
	kindCap    int
	maxPool    int
	excerptLen int
}

// New creates a search service.
func New(
	stories StoryFetcher,
	authors AuthorFetcher,
	tags TagFetcher,
	collections CollectionFetcher,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		stories:     stories,
		authors:     authors,
		tags:        tags,
		collections: collections,
		log:         log,
		overfetch:   DefaultOverfetchFactor,
		kindCap:     DefaultKindCap,
		maxPool:     DefaultMaxPool,
		excerptLen:  DefaultExcerptLen,
	}
}

// WithLimits overrides the candidate pool tunables. Zero values keep defaults.
func (s *Service) WithLimits(overfetch, kindCap, maxPool, excerptLen int) *Service {
	if overfetch > 0 {
		s.overfetch = overfetch
	}
	if kindCap > 0 {
		s.kindCap = kindCap
	}
	if maxPool > 0 {
		s.maxPool = maxPool
	}
	if excerptLen > 0 {
		s.excerptLen = excerptLen
	}
	return s
}

// Response is a paginated search result set.
type Response struct {
	Results result.Set
	Page    page.Page
}

// Search runs the requested kind pipelines concurrently and combines their
// ranked lists into one paginated response. A failed kind degrades to zero
// results; the search fails only when every requested kind fails.
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	start := time.Now()

	lists := make(map[kind.Kind][]result.Result, len(req.Kinds()))
	errs := make([]error, len(req.Kinds()))
	ranked := make([][]result.Result, len(req.Kinds()))

	g, gctx := errgroup.WithContext(ctx)
	for i, k := range req.Kinds() {
		i, k := i, k
		g.Go(func() error {
			// Pipeline errors are recorded, not returned: one kind's
			// failure must not cancel the sibling fetches.
			res, err := s.searchKind(gctx, k, req)
			if err != nil {
				errs[i] = err
				metrics.FetchFailuresTotal.WithLabelValues(string(k)).Inc()
				logger.FromContext(ctx).Warn("kind fetch failed, degrading to empty",
					zap.String("kind", string(k)), zap.Error(err))
				return nil
			}
			ranked[i] = res
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	var firstErr error
	for _, err := range errs {
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if failed == len(req.Kinds()) {
		return Response{}, fmt.Errorf("%w: %w", domain.ErrAllKindsFailed, firstErr)
	}

	for i, k := range req.Kinds() {
		lists[k] = ranked[i]
	}

	resp, err := s.combine(req, lists)
	if err != nil {
		return Response{}, err
	}

	metrics.SearchDuration.
		WithLabelValues(req.Type(), string(req.Sort())).
		Observe(time.Since(start).Seconds())
	return resp, nil
}

// combine paginates the ranked lists: the all-kinds path merges by relevance
// first, the single-kind path pages the one ranked list directly. Totals are
// taken before any truncation so hasMore stays meaningful.
func (s *Service) combine(req *request.Request, lists map[kind.Kind][]result.Result) (Response, error) {
	var ordered []result.Result
	if req.AllKinds() {
		ordered = mergeByScore(lists)
	} else {
		ordered = lists[req.Kinds()[0]]
	}

	pg, err := page.New(len(ordered), req.Page(), req.Limit())
	if err != nil {
		return Response{}, err
	}

	lo, hi := pg.Bounds(len(ordered))
	return Response{Results: redistribute(ordered[lo:hi]), Page: pg}, nil
}

func (s *Service) searchKind(ctx context.Context, k kind.Kind, req *request.Request) ([]result.Result, error) {
	switch k {
	case kind.Story:
		return s.searchStories(ctx, req)
	case kind.Author:
		return s.searchAuthors(ctx, req)
	case kind.Tag:
		return s.searchTags(ctx, req)
	case kind.Collection:
		return s.searchCollections(ctx, req)
	default:
		return nil, fmt.Errorf("unsupported kind: %s", k)
	}
}

func (s *Service) searchStories(ctx context.Context, req *request.Request) ([]result.Result, error) {
	q := req.Query()
	stories, err := s.stories.Fetch(ctx, q, req.Guest(), s.storyPool(req.Page(), req.Limit()))
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(stories))
	for i := range stories {
		st := &stories[i]
		score := scoreStory(st, q.Phrase(), q.Terms())
		if score == 0 {
			continue
		}
		results = append(results, result.NewStory(score, result.StoryHit{
			ID:             st.ID,
			Title:          st.Title,
			Excerpt:        excerpt(st.Content, s.excerptLen),
			Tags:           st.Tags,
			AuthorUsername: displayAuthor(st),
			Anonymous:      st.Anonymous,
			CreatedAt:      st.CreatedAt,
			LikeCount:      st.LikeCount,
		}))
	}

	rank(results, effectiveSort(kind.Story, req.Sort()))
	return results, nil
}

func (s *Service) searchAuthors(ctx context.Context, req *request.Request) ([]result.Result, error) {
	q := req.Query()
	authors, err := s.authors.Fetch(ctx, q, s.kindCap)
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(authors))
	for i := range authors {
		a := &authors[i]
		score := scoreAuthor(a, q.Phrase(), q.Terms())
		if score == 0 {
			continue
		}
		results = append(results, result.NewAuthor(score, result.AuthorHit{
			ID:        a.ID,
			Username:  a.Username,
			Name:      a.Name,
			CreatedAt: a.CreatedAt,
		}))
	}

	rank(results, effectiveSort(kind.Author, req.Sort()))
	return results, nil
}

func (s *Service) searchTags(ctx context.Context, req *request.Request) ([]result.Result, error) {
	q := req.Query()
	tags, err := s.tags.Fetch(ctx, q, s.kindCap)
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(tags))
	for i := range tags {
		t := &tags[i]
		score := scoreTag(t, q.Phrase(), q.Terms())
		if score == 0 {
			continue
		}
		results = append(results, result.NewTag(score, result.TagHit{Name: t.Name}))
	}

	rank(results, effectiveSort(kind.Tag, req.Sort()))
	return results, nil
}

func (s *Service) searchCollections(ctx context.Context, req *request.Request) ([]result.Result, error) {
	q := req.Query()
	cols, err := s.collections.Fetch(ctx, q, s.kindCap)
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(cols))
	for i := range cols {
		c := &cols[i]
		score := scoreCollection(c, q.Phrase(), q.Terms())
		if score == 0 {
			continue
		}
		results = append(results, result.NewCollection(score, result.CollectionHit{
			ID:             c.ID,
			Title:          c.Title,
			Description:    c.Description,
			Tags:           c.Tags,
			AuthorUsername: c.AuthorUsername,
			StoryCount:     c.StoryCount,
			CreatedAt:      c.CreatedAt,
			LikeCount:      c.LikeCount,
		}))
	}

	rank(results, effectiveSort(kind.Collection, req.Sort()))
	return results, nil
}

// storyPool sizes the story candidate pool: enough to cover the requested page
// window after precise in-process re-ranking, bounded by maxPool.
func (s *Service) storyPool(pageNum, limit int) int {
	pool := pageNum * limit * s.overfetch
	if pool > s.maxPool {
		pool = s.maxPool
	}
	return pool
}

// displayAuthor hides the author of anonymous stories.
func displayAuthor(st *domain.Story) string {
	if st.Anonymous {
		return ""
	}
	return st.AuthorUsername
}

// excerpt truncates content to n runes for display.
func excerpt(content string, n int) string {
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return string(runes[:n])
}
