package storysearch

import "go.uber.org/zap"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	overfetchFactor int
	kindCap         int
	maxCandidates   int
	excerptLength   int

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithAddrs configures multiple initial addresses (cluster topology).
func WithAddrs(addrs []string, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	})
}

// WithLogger sets the client logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithCandidateLimits tunes the fetch pools: the story over-fetch factor, the
// per-kind candidate cap, and the story pool ceiling. Zero values keep defaults.
func WithCandidateLimits(overfetchFactor, kindCap, maxCandidates int) Option {
	return optionFunc(func(c *clientConfig) {
		c.overfetchFactor = overfetchFactor
		c.kindCap = kindCap
		c.maxCandidates = maxCandidates
	})
}

// WithExcerptLength sets the story excerpt length in runes.
func WithExcerptLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.excerptLength = n
	})
}

// SearchOption configures one Search call.
type SearchOption interface {
	applySearch(*searchConfig)
}

type searchOptionFunc func(*searchConfig)

func (f searchOptionFunc) applySearch(c *searchConfig) { f(c) }

type searchConfig struct {
	typ   string
	sort  string
	page  int
	limit int
	guest bool
}

// WithType restricts the search to one entity type:
// all, stories, authors, tags, or collections. Defaults to all.
func WithType(t string) SearchOption {
	return searchOptionFunc(func(c *searchConfig) {
		c.typ = t
	})
}

// WithSort sets the sort mode: relevance, recent, or popular.
func WithSort(s string) SearchOption {
	return searchOptionFunc(func(c *searchConfig) {
		c.sort = s
	})
}

// WithPage sets the 1-based page number and page size.
func WithPage(page, limit int) SearchOption {
	return searchOptionFunc(func(c *searchConfig) {
		c.page = page
		c.limit = limit
	})
}

// AsGuest runs the search in guest context, excluding author-field matches.
func AsGuest() SearchOption {
	return searchOptionFunc(func(c *searchConfig) {
		c.guest = true
	})
}
