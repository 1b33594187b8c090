package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver names registered by the blank imports above.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Config holds database connection configuration.
type Config struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns sensible defaults for a PostgreSQL pool.
func DefaultConfig() Config {
	return Config{
		Driver:          DriverPostgres,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// SQLiteConfig returns a single-connection config for a local SQLite file.
// SQLite serializes writers, so one connection avoids SQLITE_BUSY under load.
func SQLiteConfig(path string) Config {
	return Config{
		Driver:       DriverSQLite,
		URL:          "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// Pool wraps a *sql.DB with health checking capabilities.
type Pool struct {
	db  *sql.DB
	cfg Config
}

// New creates a new database connection pool.
// Returns nil if the URL is empty.
func New(cfg Config) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverPostgres
	}

	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{db: db, cfg: cfg}, nil
}

// DB returns the underlying *sql.DB for query operations.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Driver reports which database/sql driver backs the pool.
func (p *Pool) Driver() string {
	return p.cfg.Driver
}

// Health checks if the database is reachable.
func (p *Pool) Health(ctx context.Context) error {
	if p == nil || p.db == nil {
		return fmt.Errorf("database not configured")
	}
	return p.db.PingContext(ctx)
}

// Close closes the database connection pool.
func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
