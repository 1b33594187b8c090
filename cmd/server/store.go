package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cookieconsent/internal/consent/store"
	"cookieconsent/internal/platform/config"
	"cookieconsent/internal/platform/database"
	"cookieconsent/internal/platform/health"
	"cookieconsent/internal/platform/redis"
)

const redisStatsInterval = 15 * time.Second

// openedBackend is the selected store plus its lifecycle hooks.
type openedBackend struct {
	store.Backend
	// Stats, when set, publishes pool gauges until ctx ends.
	Stats func(ctx context.Context)
	close func() error
}

func (b *openedBackend) Close() {
	if b.close != nil {
		_ = b.close()
	}
}

// openBackend connects the configured store and registers its readiness check.
func openBackend(ctx context.Context, cfg config.Store, log *slog.Logger, checks *health.Handler) (*openedBackend, error) {
	switch cfg.Backend {
	case config.StoreMemory, "":
		log.Warn("using in-memory consent store; decisions are lost on restart")
		return &openedBackend{Backend: store.NewInMemoryStore()}, nil

	case config.StoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis store")
		}
		client, err := redis.New(redis.DefaultConfig(cfg.RedisURL))
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		checks.RegisterCheck("redis", client.Health)
		return &openedBackend{
			Backend: store.NewRedisStore(client.Client, cfg.TTL),
			Stats: func(ctx context.Context) {
				ticker := time.NewTicker(redisStatsInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						client.RecordPoolStats()
					case <-ctx.Done():
						return
					}
				}
			},
			close: client.Close,
		}, nil

	case config.StoreSQLite:
		return openSQL(ctx, database.SQLiteConfig(cfg.SQLitePath), store.DialectSQLite, checks)

	case config.StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		dbCfg := database.DefaultConfig()
		dbCfg.URL = cfg.DatabaseURL
		return openSQL(ctx, dbCfg, store.DialectPostgres, checks)

	default:
		return nil, fmt.Errorf("unknown consent store %q", cfg.Backend)
	}
}

func openSQL(ctx context.Context, dbCfg database.Config, dialect store.Dialect, checks *health.Handler) (*openedBackend, error) {
	pool, err := database.New(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", dialect, err)
	}
	sqlStore := store.NewSQLStore(pool.DB(), dialect)
	if err := sqlStore.Migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}
	checks.RegisterCheck(string(dialect), pool.Health)
	return &openedBackend{Backend: sqlStore, close: pool.Close}, nil
}
