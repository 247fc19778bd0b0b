package storysearch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taleweave/storysearch/internal/db"
	dbRedis "github.com/taleweave/storysearch/internal/db/redis"
	"github.com/taleweave/storysearch/internal/domain/search/mode"
	"github.com/taleweave/storysearch/internal/domain/search/request"
	authorrepo "github.com/taleweave/storysearch/internal/repository/author"
	collectionrepo "github.com/taleweave/storysearch/internal/repository/collection"
	storyrepo "github.com/taleweave/storysearch/internal/repository/story"
	tagrepo "github.com/taleweave/storysearch/internal/repository/tag"
	healthuc "github.com/taleweave/storysearch/internal/usecase/health"
	searchuc "github.com/taleweave/storysearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the storysearch SDK entry point: an in-process composition of the
// store, repositories, and search service.
type Client struct {
	store     db.Store
	searchSvc *searchuc.Service
	healthSvc *healthuc.Service
}

// New creates a client and waits for the entity store to become ready.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o.apply(&cfg)
	}
	if len(cfg.addrs) == 0 {
		return nil, fmt.Errorf("storysearch: an address option is required (WithRedis or WithAddrs)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("storysearch: create store: %w", err)
	}

	if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("storysearch: store not ready: %w", err)
	}

	searchSvc := searchuc.New(
		storyrepo.New(store),
		authorrepo.New(store),
		tagrepo.New(store),
		collectionrepo.New(store),
		cfg.logger,
	).WithLimits(cfg.overfetchFactor, cfg.kindCap, cfg.maxCandidates, cfg.excerptLength)

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(store),
	}, nil
}

// Close releases the store connection.
func (c *Client) Close() {
	c.store.Close()
}

// Ping checks entity store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("storysearch: ping: %w", err)
	}
	return nil
}

// Health runs the component health checks.
func (c *Client) Health(ctx context.Context) healthuc.Report {
	return c.healthSvc.Check(ctx)
}

// Search runs a relevance search. Defaults: all types, relevance sort,
// page 1, limit 20, authenticated context.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) (searchuc.Response, error) {
	var sc searchConfig
	for _, o := range opts {
		o.applySearch(&sc)
	}

	req, err := request.New(query, sc.typ, mode.Sort(sc.sort), sc.page, sc.limit, sc.guest)
	if err != nil {
		return searchuc.Response{}, fmt.Errorf("storysearch: %w", err)
	}

	resp, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return searchuc.Response{}, fmt.Errorf("storysearch: %w", err)
	}
	return resp, nil
}
