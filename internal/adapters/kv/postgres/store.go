// Package postgres keeps entries in a single key/value table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/bnema/task-list-cli/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DefaultTable = "kv_entries"

type Store struct {
	pool  *pgxpool.Pool
	table string
}

var _ ports.KeyValueStore = (*Store)(nil)

// Open connects to dsn and makes sure the entries table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	store := NewStore(pool)
	if err := store.EnsureTable(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure %s table: %w", store.table, err)
	}

	return store, nil
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, table: DefaultTable}
}

// EnsureTable creates the entries table if it doesn't exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+s.table+` (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := checkRequest(ctx, key); err != nil {
		return "", err
	}

	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM `+s.table+` WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("entry %q: %w", key, domain.ErrKeyNotFound)
		}
		return "", fmt.Errorf("select entry %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := checkRequest(ctx, key); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+s.table+` (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := checkRequest(ctx, key); err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM `+s.table+` WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// checkRequest runs before any pool acquire.
func checkRequest(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("key is empty")
	}

	return nil
}
