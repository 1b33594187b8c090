package store

import (
	"context"
	"time"

	"cookieconsent/internal/consent/metrics"
)

// Instrumented records per-operation latency for any backend.
type Instrumented struct {
	next    Backend
	metrics *metrics.Metrics
}

// NewInstrumented wraps next. A nil metrics value disables recording.
func NewInstrumented(next Backend, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (s *Instrumented) Get(ctx context.Context, namespace, key string) (string, error) {
	defer s.observe("get", time.Now())
	return s.next.Get(ctx, namespace, key)
}

func (s *Instrumented) Set(ctx context.Context, namespace, key, value string) error {
	defer s.observe("set", time.Now())
	return s.next.Set(ctx, namespace, key, value)
}

func (s *Instrumented) Delete(ctx context.Context, namespace, key string) error {
	defer s.observe("delete", time.Now())
	return s.next.Delete(ctx, namespace, key)
}

func (s *Instrumented) observe(operation string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveStoreOperationLatency(operation, time.Since(start).Seconds())
}
