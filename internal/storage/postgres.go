package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSlotsTable = `CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresSlot stores blobs in a single kv_slots table
type PostgresSlot struct {
	pool *pgxpool.Pool
}

// NewPostgresSlot connects to the database and ensures the kv_slots table exists.
func NewPostgresSlot(ctx context.Context, databaseURL string) (*PostgresSlot, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required for the postgres backend")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createSlotsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create kv_slots table: %w", err)
	}

	return &PostgresSlot{pool: pool}, nil
}

// Get implements Slot
func (p *PostgresSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM kv_slots WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Slot
func (p *PostgresSlot) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO kv_slots (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	return nil
}

// Delete implements Slot
func (p *PostgresSlot) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_slots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Close implements Slot
func (p *PostgresSlot) Close() error {
	p.pool.Close()
	return nil
}
