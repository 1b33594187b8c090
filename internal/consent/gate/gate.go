package gate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"cookieconsent/internal/consent/loader"
	"cookieconsent/internal/consent/metrics"
	"cookieconsent/internal/consent/models"
	"cookieconsent/internal/platform/tracer"
	dErrors "cookieconsent/pkg/domain-errors"
	"cookieconsent/pkg/platform/sentinel"
	"cookieconsent/pkg/requestcontext"
)

// Storage is the client-local key/value area the decision is persisted in.
// Error Contract:
// - GetItem returns sentinel.ErrNotFound when the key was never written
// - Other failures are returned wrapped
type Storage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
}

// Host is the page view the gate is mounted in.
type Host interface {
	// PushEvent sends an outbound signal to the view.
	PushEvent(ctx context.Context, name string, payload map[string]any)
	// ExposeAccessor publishes a page-global function under name.
	ExposeAccessor(name string, fn func(ctx context.Context) *models.Record)
}

// Gate decides which third-party scripts a page may load. It reads any stored
// decision on Initialize, persists new decisions, and loads each granted
// provider at most once per page.
type Gate struct {
	storage   Storage
	host      Host
	doc       loader.Document
	providers []loader.Provider

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	clock   func() time.Time

	emitCloseSignal bool
	exposeAccessor  bool
	verbose         bool

	mu          sync.Mutex
	initialized bool
	binding     models.Binding
	states      map[models.Provider]models.LoadState
	pending     map[models.Provider]chan struct{}
}

// New constructs a gate for one page. The close signal and the global accessor
// are enabled by default.
func New(storage Storage, host Host, doc loader.Document, opts ...Option) *Gate {
	g := &Gate{
		storage:         storage,
		host:            host,
		doc:             doc,
		providers:       loader.Default(),
		logger:          slog.Default(),
		tracer:          tracer.NewNoop(),
		emitCloseSignal: true,
		exposeAccessor:  true,
		states:          make(map[models.Provider]models.LoadState),
		pending:         make(map[models.Provider]chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, p := range g.providers {
		g.states[p.Name()] = models.LoadStateIdle
	}
	return g
}

// Initialize mounts the gate. The binding is read once; later calls are
// ignored. When a decision is already stored it is applied and, if enabled,
// the banner is told to close. Returns the stored decision or nil.
func (g *Gate) Initialize(ctx context.Context, binding models.Binding) *models.Record {
	g.mu.Lock()
	if g.initialized {
		g.mu.Unlock()
		return g.GetConsent(ctx)
	}
	g.initialized = true
	g.binding = binding
	g.mu.Unlock()

	g.debug(ctx, "cookie consent gate mounted",
		"analytics_configured", binding.AnalyticsID != "",
		"marketing_configured", binding.MarketingID != "",
	)

	record := g.GetConsent(ctx)
	if record != nil {
		g.ApplyConsent(ctx, *record)
		if g.emitCloseSignal {
			g.host.PushEvent(ctx, models.EventCloseBanner, map[string]any{})
		}
	}

	if g.exposeAccessor {
		g.host.ExposeAccessor(models.AccessorName, g.GetConsent)
	}
	return record
}

// HandleDecision handles the inbound cookie-consent signal. The decision is
// applied even when persisting it fails; the save error is returned.
func (g *Gate) HandleDecision(ctx context.Context, record models.Record) error {
	g.debug(ctx, "cookie consent decision received",
		"analytics", record.Analytics,
		"marketing", record.Marketing,
	)
	if g.metrics != nil {
		g.metrics.IncrementDecision(string(models.ProviderAnalytics), record.Analytics)
		g.metrics.IncrementDecision(string(models.ProviderMarketing), record.Marketing)
	}

	saveErr := g.SaveConsent(ctx, record)
	g.ApplyConsent(ctx, record)
	return saveErr
}

// ApplyConsent starts loading every provider the record grants that has an
// account id and is not already loading or loaded. It never unloads.
func (g *Gate) ApplyConsent(ctx context.Context, record models.Record) {
	ctx, span := g.tracer.Start(ctx, "consent.apply",
		tracer.Bool("consent.analytics", record.Analytics),
		tracer.Bool("consent.marketing", record.Marketing),
	)
	defer span.End(nil)

	g.mu.Lock()
	binding := g.binding
	g.mu.Unlock()

	for _, p := range g.providers {
		if !p.Granted(record) {
			continue
		}
		accountID := binding.AccountID(p.Name())
		if accountID == "" {
			span.AddEvent("provider.skipped",
				tracer.String("provider", p.Name().String()),
				tracer.String("reason", "missing_account_id"),
			)
			continue
		}
		if !g.begin(p.Name()) {
			continue
		}
		g.load(ctx, p, accountID)
	}
}

// begin moves an idle provider to loading and reports whether it did.
func (g *Gate) begin(name models.Provider) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.states[name] != models.LoadStateIdle {
		return false
	}
	g.states[name] = models.LoadStateLoading
	g.pending[name] = make(chan struct{})
	return true
}

func (g *Gate) load(ctx context.Context, p loader.Provider, accountID string) {
	name := p.Name()
	loadCtx, span := g.tracer.Start(context.WithoutCancel(ctx), "consent.provider.load",
		tracer.String("provider", name.String()),
	)
	if g.metrics != nil {
		g.metrics.IncrementScriptsInjected(name.String())
	}

	done := p.Load(loadCtx, g.doc, accountID)
	go func() {
		err := <-done
		span.End(err)
		g.finish(loadCtx, name, err)
	}()
}

func (g *Gate) finish(ctx context.Context, name models.Provider, err error) {
	g.mu.Lock()
	if err != nil {
		g.states[name] = models.LoadStateIdle
	} else {
		g.states[name] = models.LoadStateLoaded
	}
	if ch, ok := g.pending[name]; ok {
		close(ch)
		delete(g.pending, name)
	}
	g.mu.Unlock()

	if err != nil {
		g.logger.ErrorContext(ctx, "failed to load provider script",
			"provider", name,
			"error", err,
		)
		if g.metrics != nil {
			g.metrics.IncrementScriptLoadFailures(name.String())
		}
		return
	}
	g.debug(ctx, "provider script loaded", "provider", name)
}

// Wait blocks until every load in flight when it was called has settled, or
// until ctx ends.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	waiting := make([]chan struct{}, 0, len(g.pending))
	for _, ch := range g.pending {
		waiting = append(waiting, ch)
	}
	g.mu.Unlock()

	for _, ch := range waiting {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Status reports each provider's load state in evaluation order.
func (g *Gate) Status() []models.ProviderStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.ProviderStatus, 0, len(g.providers))
	for _, p := range g.providers {
		out = append(out, models.ProviderStatus{
			Provider:   p.Name(),
			State:      g.states[p.Name()],
			Configured: g.binding.AccountID(p.Name()) != "",
		})
	}
	return out
}

// GetConsent returns the stored decision, or nil when none is stored or the
// stored value cannot be read.
func (g *Gate) GetConsent(ctx context.Context) *models.Record {
	raw, err := g.storage.GetItem(ctx, models.KeyConsent)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			g.countRead(metrics.ReadAbsent)
			return nil
		}
		g.logger.WarnContext(ctx, "failed to read stored cookie consent", "error", err)
		g.countRead(metrics.ReadError)
		return nil
	}

	var record *models.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		g.logger.WarnContext(ctx, "stored cookie consent is corrupt", "error", err)
		g.countRead(metrics.ReadCorrupt)
		return nil
	}
	if record == nil {
		g.countRead(metrics.ReadAbsent)
		return nil
	}
	g.countRead(metrics.ReadFound)
	return record
}

// SaveConsent persists the record and the decision time. The two writes are
// independent; a failure after the first leaves the record without a date.
func (g *Gate) SaveConsent(ctx context.Context, record models.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode consent")
	}
	if err := g.storage.SetItem(ctx, models.KeyConsent, string(raw)); err != nil {
		return wrapStorageError(err, "failed to save consent")
	}
	if err := g.storage.SetItem(ctx, models.KeyConsentDate, models.FormatTimestamp(g.decidedAt(ctx))); err != nil {
		return wrapStorageError(err, "failed to save consent date")
	}
	return nil
}

// wrapStorageError maps an unreachable backend to CodeUnavailable and any
// other write failure to CodeInternal.
func wrapStorageError(err error, msg string) error {
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// decidedAt prefers the configured clock, then the request time.
func (g *Gate) decidedAt(ctx context.Context) time.Time {
	if g.clock != nil {
		return g.clock()
	}
	return requestcontext.Now(ctx)
}

func (g *Gate) countRead(result string) {
	if g.metrics != nil {
		g.metrics.IncrementStoredConsentRead(result)
	}
}

func (g *Gate) debug(ctx context.Context, msg string, args ...any) {
	if g.verbose {
		g.logger.InfoContext(ctx, msg, args...)
	}
}
