package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"cookieconsent/internal/consent/gate"
	consenthandler "cookieconsent/internal/consent/handler"
	"cookieconsent/internal/consent/loader"
	"cookieconsent/internal/consent/metrics"
	"cookieconsent/internal/consent/models"
	"cookieconsent/internal/consent/session"
	"cookieconsent/internal/consent/store"
	"cookieconsent/internal/platform/config"
	"cookieconsent/internal/platform/health"
	"cookieconsent/internal/platform/httpserver"
	"cookieconsent/internal/platform/logger"
	"cookieconsent/internal/platform/tracer"
	httptransport "cookieconsent/internal/transport/http"
	"cookieconsent/pkg/platform/middleware/request"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Consent logic lives in internal/consent.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	log.Info("initializing cookie consent service",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"store", cfg.Store.Backend,
		"script_fetch_mode", cfg.Scripts.FetchMode,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	consentMetrics := metrics.New()
	healthHandler := health.New(cfg.Environment)

	backend, err := openBackend(ctx, cfg.Store, log, healthHandler)
	if err != nil {
		return err
	}
	defer backend.Close()

	registry := session.NewRegistry(
		store.NewInstrumented(backend.Backend, consentMetrics),
		newFetcher(cfg.Scripts),
		session.WithLogger(log),
		session.WithMetrics(consentMetrics),
		session.WithGateOptions(
			gate.WithCloseSignal(cfg.Gate.EmitCloseSignal),
			gate.WithGlobalAccessor(cfg.Gate.ExposeGlobalAccessor),
			gate.WithVerboseLogging(cfg.Gate.VerboseLogging),
			gate.WithTracer(tracer.NewOTel()),
		),
	)
	sweeper := session.NewSweeper(registry,
		session.WithSweepLogger(log),
		session.WithSweepInterval(cfg.Pages.SweepInterval),
		session.WithIdleTTL(cfg.Pages.IdleTTL),
		session.WithSweepMetrics(consentMetrics),
	)

	consent := consenthandler.New(registry, log,
		consenthandler.WithDefaultBinding(models.Binding{
			AnalyticsID: cfg.Binding.AnalyticsID,
			MarketingID: cfg.Binding.MarketingID,
		}),
		consenthandler.WithLoadWait(cfg.Pages.LoadWait),
		consenthandler.WithSecureCookie(cfg.Environment == "production"),
	)
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  request.NewMetrics(),
		Health:   healthHandler,
		Features: []httptransport.Registrar{consent},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := sweeper.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if backend.Stats != nil {
		g.Go(func() error {
			backend.Stats(gctx)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newFetcher(cfg config.Scripts) loader.Fetcher {
	if cfg.FetchMode == config.FetchModeStatic {
		return loader.StaticFetcher{}
	}
	return loader.NewHTTPFetcher(cfg.FetchTimeout)
}
