// Package db provides PostgreSQL access for persisted editor state.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoState is returned when no row exists for a key
var ErrNoState = errors.New("state key not found")

// StateTable is the table holding persisted key/value state
const StateTable = "resume_state"

const schemaSQL = `CREATE TABLE IF NOT EXISTS resume_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and ensures the state table exists
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the state table when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create %s table: %w", StateTable, err)
	}
	return nil
}

// GetState retrieves the value stored under key
func (db *DB) GetState(ctx context.Context, key string) (string, error) {
	var value string
	err := db.pool.QueryRow(ctx,
		`SELECT value FROM resume_state WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoState
		}
		return "", fmt.Errorf("failed to get state %s: %w", key, err)
	}
	return value, nil
}

// SetState inserts or replaces the value stored under key
func (db *DB) SetState(ctx context.Context, key, value string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_state (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

// DeleteState removes key; deleting a missing key is not an error
func (db *DB) DeleteState(ctx context.Context, key string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM resume_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}

// ClearState removes every persisted key
func (db *DB) ClearState(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM resume_state`); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

// ListKeys returns every persisted key in lexical order
func (db *DB) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT key FROM resume_state ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list state keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan state keys: %w", err)
	}
	return keys, nil
}
