package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/state"
)

// Coordinator owns the user's search term and filter and drives the catalog
// client, publishing every lifecycle transition through a state.Store.
type Coordinator struct {
	fetcher catalog.Fetcher
	store   *state.Store
	logger  *slog.Logger

	mu     sync.Mutex
	term   string
	filter catalog.Filter
	cancel context.CancelFunc
}

// Option customises a Coordinator.
type Option func(*config)

type config struct {
	logger *slog.Logger
	filter catalog.Filter
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithFilter sets the initial filter.
func WithFilter(f catalog.Filter) Option {
	return func(c *config) { c.filter = f }
}

// New builds a Coordinator around fetcher and issues the priming search,
// which is a no-op because the term starts empty.
func New(fetcher catalog.Fetcher, opts ...Option) *Coordinator {
	cfg := config{filter: catalog.FilterTitle}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	c := &Coordinator{
		fetcher: fetcher,
		store:   &state.Store{},
		logger:  cfg.logger.With("component", "search"),
		filter:  cfg.filter,
	}
	c.Search(context.Background())
	return c
}

// UpdateInput replaces the term verbatim. It never triggers a fetch.
func (c *Coordinator) UpdateInput(text string) {
	c.mu.Lock()
	c.term = text
	c.mu.Unlock()
}

// ClearInput empties the term.
func (c *Coordinator) ClearInput() {
	c.UpdateInput("")
}

// UpdateFilter replaces the filter. It never triggers a fetch.
func (c *Coordinator) UpdateFilter(f catalog.Filter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

// Term returns the current term.
func (c *Coordinator) Term() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term
}

// Filter returns the current filter.
func (c *Coordinator) Filter() catalog.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// State returns the current lifecycle.
func (c *Coordinator) State() state.Lifecycle {
	return c.store.Snapshot().State
}

// Snapshot returns the current lifecycle with its generation.
func (c *Coordinator) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// Subscribe registers for lifecycle updates; see state.Store.Subscribe.
func (c *Coordinator) Subscribe() (<-chan state.Snapshot, func()) {
	return c.store.Subscribe()
}

// Search runs the current term and filter and returns the state it left
// behind. An empty term is a no-op: no request is sent and the state is
// unchanged. The store is Loading before the fetch starts. A later Search
// supersedes this one: its context is cancelled and its result discarded.
func (c *Coordinator) Search(ctx context.Context) state.Lifecycle {
	c.mu.Lock()
	req := catalog.Request{Term: c.term, Filter: c.filter}
	if req.Empty() {
		c.mu.Unlock()
		return c.store.Snapshot().State
	}
	if c.cancel != nil {
		c.cancel()
	}
	callCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	gen := c.store.Begin(req)
	c.mu.Unlock()

	defer c.release(gen, cancel)

	logger := c.logger.With(
		"invocation", uuid.NewString(),
		"generation", gen,
		"query", req.Query(),
	)
	logger.Debug("search started")

	resp, err := c.fetcher.Fetch(callCtx, req.Query())
	current, ok := c.store.Resolve(gen, resp, err)
	if !ok {
		logger.Debug("search superseded", "error", err)
		return c.store.Snapshot().State
	}

	switch s := current.(type) {
	case state.Failure:
		logger.Warn("search failed", "kind", s.Kind.String(), "error", s.Err)
	case state.Success:
		logger.Info("search completed", "results", len(s.Response.Entries), "total", s.Response.ResultCount)
	}
	return current
}

// Retry reissues the current term and filter. It is allowed from any state.
func (c *Coordinator) Retry(ctx context.Context) state.Lifecycle {
	return c.Search(ctx)
}

// Close cancels any in-flight search.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Coordinator) release(gen uint64, cancel context.CancelFunc) {
	cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store.Snapshot().Generation == gen {
		c.cancel = nil
	}
}
