package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookieconsent/internal/consent/loader"
	"cookieconsent/internal/consent/metrics"
	"cookieconsent/internal/consent/models"
	"cookieconsent/internal/consent/store"
)

func TestSweeperRunOnce(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	registry := NewRegistry(store.NewInMemoryStore(), loader.StaticFetcher{}, WithClock(clock.Now), WithMetrics(m))
	for _, client := range []string{"a", "b", "c"} {
		_, err := registry.Open(context.Background(), client, models.Binding{})
		require.NoError(t, err)
	}
	sweeper := NewSweeper(registry, WithIdleTTL(time.Minute), WithSweepMetrics(m))

	res := sweeper.RunOnce(context.Background())
	assert.Equal(t, 0, res.PagesRemoved)

	clock.Advance(2 * time.Minute)
	res = sweeper.RunOnce(context.Background())
	assert.Equal(t, 3, res.PagesRemoved)
	assert.Equal(t, 0, registry.Len())
	assert.InDelta(t, 3, testutil.ToFloat64(m.PagesSwept), 0)
}

func TestSweeperStartStopsOnCancel(t *testing.T) {
	registry := NewRegistry(store.NewInMemoryStore(), loader.StaticFetcher{})
	sweeper := NewSweeper(registry,
		WithSweepInterval(5*time.Millisecond),
		WithSweepLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- sweeper.Start(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeperDefaults(t *testing.T) {
	sweeper := NewSweeper(NewRegistry(store.NewInMemoryStore(), loader.StaticFetcher{}),
		WithSweepInterval(0),
		WithIdleTTL(-time.Second),
	)
	assert.Equal(t, 5*time.Minute, sweeper.interval)
	assert.Equal(t, 30*time.Minute, sweeper.idleTTL)
}
