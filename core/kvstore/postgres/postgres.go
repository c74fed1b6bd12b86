// Package postgres provides a PostgreSQL-backed implementation of
// kvstore.Store, useful when clients already carry a Postgres connection and
// no dedicated cache server is available.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/localize/core/kvstore"
)

const defaultTable = "localize_kv"

// Store is a kvstore.Store backed by a single Postgres table with a text
// primary key and a bytea value column.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// Option configures the Postgres store.
type Option func(*Store)

// WithTable overrides the default table name ("localize_kv").
func WithTable(table string) Option {
	return func(s *Store) {
		if table != "" {
			s.table = table
		}
	}
}

// New connects to Postgres with the given DSN and creates the backing table
// if it does not exist.
func New(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	store := &Store{pool: pool, table: defaultTable}
	for _, opt := range opts {
		opt(store)
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, store.table)
	if _, err := pool.Exec(ctx, ddl); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return store, nil
}

// Get retrieves the value for a key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = $1", s.table)
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set upserts a value under a key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, s.table)
	_, err := s.pool.Exec(ctx, query, key, value)
	return err
}

// Delete removes a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE key = $1", s.table)
	_, err := s.pool.Exec(ctx, query, key)
	return err
}

// Keys returns all keys with the given prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := fmt.Sprintf("SELECT key FROM %s WHERE key LIKE $1 ORDER BY key", s.table)
	rows, err := s.pool.Query(ctx, query, escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// escapeLike escapes LIKE metacharacters so prefixes containing "%" or "_"
// match literally.
func escapeLike(prefix string) string {
	out := make([]byte, 0, len(prefix))
	for i := 0; i < len(prefix); i++ {
		switch prefix[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, prefix[i])
	}
	return string(out)
}

var _ kvstore.Store = (*Store)(nil)
