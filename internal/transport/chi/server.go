// Package chi exposes the search service over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/mode"
	"github.com/taleweave/storysearch/internal/domain/search/request"
	"github.com/taleweave/storysearch/internal/domain/search/result"
	"github.com/taleweave/storysearch/internal/metrics"
	healthuc "github.com/taleweave/storysearch/internal/usecase/health"
	searchuc "github.com/taleweave/storysearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the search API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler

	defaultLimit int
	maxLimit     int
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search:       search,
		health:       health,
		logger:       logger,
		defaultLimit: request.DefaultLimit,
		maxLimit:     request.MaxLimit,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidPage, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidType, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidSort, http.StatusBadRequest),
		sentinelHandler(domain.ErrAllKindsFailed, http.StatusInternalServerError),
	}
	return s
}

// WithPageSizes overrides the configured default and maximum page size.
// The absolute request cap still applies. Zero values keep defaults.
func (s *Server) WithPageSizes(defaultLimit, maxLimit int) *Server {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Routes mounts the API on a router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	typ := params.Get("type")
	if typ == "" {
		typ = "all"
	}

	pageNum, err := parseIntParam(params.Get("page"))
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(typ, "error").Inc()
		writeError(w, http.StatusBadRequest, "invalid page parameter")
		return
	}
	limit, err := parseIntParam(params.Get("limit"))
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(typ, "error").Inc()
		writeError(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}
	if limit == 0 {
		limit = s.defaultLimit
	} else if limit > s.maxLimit {
		limit = s.maxLimit
	}

	req, err := request.New(
		params.Get("q"),
		params.Get("type"),
		mode.Sort(params.Get("sortBy")),
		pageNum,
		limit,
		IsGuest(r.Context()),
	)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(typ, "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(typ, "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(typ, "ok").Inc()
	writeJSON(w, http.StatusOK, searchToPayload(&req, &resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthPayload{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// parseIntParam parses an optional positive-integer query parameter.
// Empty input returns 0, meaning "apply the default".
func parseIntParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorPayload{Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidPage,
		domain.ErrInvalidType,
		domain.ErrInvalidSort,
		domain.ErrAllKindsFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// --- Response payloads ---

type errorPayload struct {
	Message string `json:"message"`
}

type healthPayload struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

type searchPayload struct {
	Results    resultsPayload    `json:"results"`
	Query      string            `json:"query"`
	Type       string            `json:"type"`
	Pagination paginationPayload `json:"pagination"`
}

type resultsPayload struct {
	Stories      []storyItem      `json:"stories"`
	Authors      []authorItem     `json:"authors"`
	Tags         []tagItem        `json:"tags"`
	Collections  []collectionItem `json:"collections"`
	TotalResults int              `json:"totalResults"`
}

type paginationPayload struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalResults int  `json:"totalResults"`
	HasMore      bool `json:"hasMore"`
}

type storyItem struct {
	Type      string   `json:"type"`
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Tags      []string `json:"tags"`
	Author    string   `json:"author,omitempty"`
	Anonymous bool     `json:"anonymous"`
	CreatedAt int64    `json:"createdAt"`
	Likes     int      `json:"likes"`
	Relevance int      `json:"relevance"`
}

type authorItem struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
	Relevance int    `json:"relevance"`
}

type tagItem struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Relevance int    `json:"relevance"`
}

type collectionItem struct {
	Type        string   `json:"type"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	StoryCount  int      `json:"storyCount"`
	CreatedAt   int64    `json:"createdAt"`
	Likes       int      `json:"likes"`
	Relevance   int      `json:"relevance"`
}

func searchToPayload(req *request.Request, resp *searchuc.Response) searchPayload {
	set := &resp.Results
	return searchPayload{
		Results: resultsPayload{
			Stories:      storyItems(set.Stories),
			Authors:      authorItems(set.Authors),
			Tags:         tagItems(set.Tags),
			Collections:  collectionItems(set.Collections),
			TotalResults: set.TotalResults,
		},
		Query: req.Query().Phrase(),
		Type:  req.Type(),
		Pagination: paginationPayload{
			CurrentPage:  resp.Page.CurrentPage,
			TotalPages:   resp.Page.TotalPages,
			TotalResults: resp.Page.TotalResults,
			HasMore:      resp.Page.HasMore,
		},
	}
}

func storyItems(results []result.Result) []storyItem {
	items := make([]storyItem, len(results))
	for i := range results {
		hit := results[i].Story()
		items[i] = storyItem{
			Type:      "story",
			ID:        hit.ID,
			Title:     hit.Title,
			Excerpt:   hit.Excerpt,
			Tags:      hit.Tags,
			Author:    hit.AuthorUsername,
			Anonymous: hit.Anonymous,
			CreatedAt: hit.CreatedAt,
			Likes:     hit.LikeCount,
			Relevance: results[i].Score(),
		}
	}
	return items
}

func authorItems(results []result.Result) []authorItem {
	items := make([]authorItem, len(results))
	for i := range results {
		hit := results[i].Author()
		items[i] = authorItem{
			Type:      "author",
			ID:        hit.ID,
			Username:  hit.Username,
			Name:      hit.Name,
			CreatedAt: hit.CreatedAt,
			Relevance: results[i].Score(),
		}
	}
	return items
}

func tagItems(results []result.Result) []tagItem {
	items := make([]tagItem, len(results))
	for i := range results {
		items[i] = tagItem{
			Type:      "tag",
			Name:      results[i].Tag().Name,
			Relevance: results[i].Score(),
		}
	}
	return items
}

func collectionItems(results []result.Result) []collectionItem {
	items := make([]collectionItem, len(results))
	for i := range results {
		hit := results[i].Collection()
		items[i] = collectionItem{
			Type:        "collection",
			ID:          hit.ID,
			Title:       hit.Title,
			Description: hit.Description,
			Tags:        hit.Tags,
			Author:      hit.AuthorUsername,
			StoryCount:  hit.StoryCount,
			CreatedAt:   hit.CreatedAt,
			Likes:       hit.LikeCount,
			Relevance:   results[i].Score(),
		}
	}
	return items
}
