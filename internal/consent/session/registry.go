package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"cookieconsent/internal/consent/gate"
	"cookieconsent/internal/consent/loader"
	"cookieconsent/internal/consent/metrics"
	"cookieconsent/internal/consent/models"
	"cookieconsent/internal/consent/store"
	dErrors "cookieconsent/pkg/domain-errors"
)

// Registry owns the mounted pages of this process.
type Registry struct {
	backend  store.Backend
	fetcher  loader.Fetcher
	gateOpts []gate.Option
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	mu    sync.RWMutex
	pages map[string]*Page
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithGateOptions applies opts to every gate the registry creates.
func WithGateOptions(opts ...gate.Option) Option {
	return func(r *Registry) {
		r.gateOpts = append(r.gateOpts, opts...)
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry constructs an empty registry. Pages read and write consent
// through backend and load scripts through fetcher.
func NewRegistry(backend store.Backend, fetcher loader.Fetcher, opts ...Option) *Registry {
	r := &Registry{
		backend: backend,
		fetcher: fetcher,
		logger:  slog.Default(),
		now:     time.Now,
		pages:   make(map[string]*Page),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open mounts a new page for clientID and initializes its gate.
func (r *Registry) Open(ctx context.Context, clientID string, binding models.Binding) (*Page, error) {
	if clientID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "missing client id")
	}

	pageID := uuid.NewString()
	doc := loader.NewPage(r.fetcher)
	page := &Page{
		ID:       pageID,
		ClientID: clientID,
		Document: doc,
		lastSeen: r.now(),
	}

	opts := make([]gate.Option, 0, len(r.gateOpts)+2)
	opts = append(opts, r.gateOpts...)
	opts = append(opts,
		gate.WithLogger(r.logger.With("page_id", pageID)),
		gate.WithMetrics(r.metrics),
	)
	page.Gate = gate.New(store.Scope(r.backend, clientID), page, doc, opts...)

	r.mu.Lock()
	r.pages[pageID] = page
	r.mu.Unlock()
	if r.metrics != nil {
		r.metrics.IncrementActivePages()
	}

	page.Mounted = page.Gate.Initialize(ctx, binding)
	return page, nil
}

// Get returns a mounted page and marks it as active.
func (r *Registry) Get(pageID string) (*Page, error) {
	r.mu.RLock()
	page, ok := r.pages[pageID]
	r.mu.RUnlock()
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "page not found")
	}
	page.touch(r.now())
	return page, nil
}

// Close unmounts a page. Loads in flight finish in the background.
func (r *Registry) Close(pageID string) error {
	r.mu.Lock()
	_, ok := r.pages[pageID]
	delete(r.pages, pageID)
	r.mu.Unlock()
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "page not found")
	}
	if r.metrics != nil {
		r.metrics.DecrementActivePages(1)
	}
	return nil
}

// Sweep closes pages idle for at least idleTTL and returns how many it closed.
func (r *Registry) Sweep(idleTTL time.Duration) int {
	now := r.now()
	r.mu.Lock()
	removed := 0
	for id, page := range r.pages {
		if page.idleSince(now) >= idleTTL {
			delete(r.pages, id)
			removed++
		}
	}
	r.mu.Unlock()
	if r.metrics != nil && removed > 0 {
		r.metrics.DecrementActivePages(float64(removed))
	}
	return removed
}

// Len reports the number of mounted pages.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}
