package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"cookieconsent/migrations"
	"cookieconsent/pkg/platform/sentinel"
)

// Dialect selects placeholder syntax for the SQL backend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// SQLStore persists items in the cookie_consent_items table. Queries are
// written once with $n placeholders and rebound for SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// NewSQLStore constructs a SQL backend over an open database handle.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, now: time.Now}
}

// Migrate applies the embedded schema. Statements are idempotent.
func (s *SQLStore) Migrate(ctx context.Context) error {
	statements, err := migrations.Up()
	if err != nil {
		return err
	}
	for i, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, namespace, key string) (string, error) {
	query := s.rebind(`
		SELECT value
		FROM cookie_consent_items
		WHERE namespace = $1 AND item_key = $2
	`)
	var value string
	if err := s.db.QueryRowContext(ctx, query, namespace, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("find consent item: %w", classify(err))
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, namespace, key, value string) error {
	query := s.rebind(`
		INSERT INTO cookie_consent_items (namespace, item_key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, item_key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`)
	if _, err := s.db.ExecContext(ctx, query, namespace, key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("save consent item: %w", classify(err))
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, namespace, key string) error {
	query := s.rebind(`DELETE FROM cookie_consent_items WHERE namespace = $1 AND item_key = $2`)
	if _, err := s.db.ExecContext(ctx, query, namespace, key); err != nil {
		return fmt.Errorf("delete consent item: %w", classify(err))
	}
	return nil
}

// rebind converts $n placeholders to SQLite's ?n form.
func (s *SQLStore) rebind(query string) string {
	if s.dialect == DialectSQLite {
		return strings.ReplaceAll(query, "$", "?")
	}
	return query
}

// classify tags connection-level failures with sentinel.ErrUnavailable.
func classify(err error) error {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return err
}
