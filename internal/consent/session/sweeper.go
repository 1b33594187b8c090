package session

import (
	"context"
	"log/slog"
	"time"

	"cookieconsent/internal/consent/metrics"
)

// SweepResult contains the results of a sweep run.
type SweepResult struct {
	PagesRemoved int
	Duration     time.Duration
}

type SweeperOption func(*Sweeper)

func WithSweepLogger(logger *slog.Logger) SweeperOption {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithSweepInterval(interval time.Duration) SweeperOption {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithIdleTTL(ttl time.Duration) SweeperOption {
	return func(s *Sweeper) {
		if ttl > 0 {
			s.idleTTL = ttl
		}
	}
}

func WithSweepMetrics(m *metrics.Metrics) SweeperOption {
	return func(s *Sweeper) {
		s.metrics = m
	}
}

// Sweeper periodically unmounts idle pages.
type Sweeper struct {
	registry *Registry
	logger   *slog.Logger
	interval time.Duration
	idleTTL  time.Duration
	metrics  *metrics.Metrics
}

func NewSweeper(registry *Registry, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		registry: registry,
		logger:   slog.Default(),
		interval: 5 * time.Minute,
		idleTTL:  30 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			res := s.RunOnce(ctx)
			if res.PagesRemoved > 0 {
				s.logger.InfoContext(ctx, "page_sweep_completed",
					"pages_removed", res.PagesRemoved,
					"pages_active", s.registry.Len(),
					"duration_ms", res.Duration.Milliseconds(),
				)
			}

		case <-ctx.Done():
			s.logger.Info("page sweeper stopping", "reason", ctx.Err())
			return ctx.Err()
		}
	}
}

// RunOnce executes a single sweep. Logging is handled by the caller (Start).
func (s *Sweeper) RunOnce(_ context.Context) *SweepResult {
	start := time.Now()
	removed := s.registry.Sweep(s.idleTTL)
	if s.metrics != nil {
		s.metrics.AddPagesSwept(float64(removed))
	}
	return &SweepResult{PagesRemoved: removed, Duration: time.Since(start)}
}
