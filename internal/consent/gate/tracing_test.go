package gate

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookieconsent/internal/consent/loader"
	"cookieconsent/internal/consent/models"
	"cookieconsent/internal/consent/store"
	"cookieconsent/internal/platform/tracer"
)

type recordingTracer struct {
	mu     sync.Mutex
	spans  []string
	events []string
	ended  []error
}

func (r *recordingTracer) Start(ctx context.Context, name string, _ ...tracer.Attribute) (context.Context, tracer.Span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = append(r.spans, name)
	return ctx, &recordingSpan{tracer: r}
}

type recordingSpan struct {
	tracer *recordingTracer
}

func (s *recordingSpan) End(err error) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.tracer.ended = append(s.tracer.ended, err)
}

func (s *recordingSpan) SetAttributes(...tracer.Attribute) {}

func (s *recordingSpan) AddEvent(name string, _ ...tracer.Attribute) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.tracer.events = append(s.tracer.events, name)
}

type silentHost struct{}

func (silentHost) PushEvent(context.Context, string, map[string]any)           {}
func (silentHost) ExposeAccessor(string, func(context.Context) *models.Record) {}

func TestApplyConsentEmitsSpans(t *testing.T) {
	rec := &recordingTracer{}
	g := New(
		store.Scope(store.NewInMemoryStore(), "client-1"),
		silentHost{},
		loader.NewPage(loader.StaticFetcher{}),
		WithTracer(rec),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	g.Initialize(context.Background(), models.Binding{AnalyticsID: "G-TEST"})

	g.ApplyConsent(context.Background(), models.Record{Analytics: true, Marketing: true})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, g.Wait(ctx))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"consent.apply", "consent.provider.load"}, rec.spans)
	assert.Equal(t, []string{"provider.skipped"}, rec.events)
	assert.Len(t, rec.ended, 2)
}
