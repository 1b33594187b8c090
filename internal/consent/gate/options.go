package gate

import (
	"log/slog"
	"time"

	"cookieconsent/internal/consent/loader"
	"cookieconsent/internal/consent/metrics"
	"cookieconsent/internal/platform/tracer"
)

type Option func(*Gate)

// WithCloseSignal controls whether a stored decision found on mount emits
// close_banner to the host.
func WithCloseSignal(enabled bool) Option {
	return func(g *Gate) {
		g.emitCloseSignal = enabled
	}
}

// WithGlobalAccessor controls whether getCookieConsent is exposed on mount.
func WithGlobalAccessor(enabled bool) Option {
	return func(g *Gate) {
		g.exposeAccessor = enabled
	}
}

// WithVerboseLogging logs lifecycle steps at info level.
func WithVerboseLogging(enabled bool) Option {
	return func(g *Gate) {
		g.verbose = enabled
	}
}

// WithLogger sets the logger instance for the gate.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics sets the metrics instance for the gate.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(g *Gate) {
		if t != nil {
			g.tracer = t
		}
	}
}

// WithClock overrides the time source for the consent date. Without it the
// request time from the context is used.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.clock = now
		}
	}
}

// WithProviders replaces the default analytics and marketing providers.
func WithProviders(providers ...loader.Provider) Option {
	return func(g *Gate) {
		g.providers = providers
	}
}
