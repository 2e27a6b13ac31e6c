// Package database provides PostgreSQL connection management.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx used by the repositories.
// Both *pgxpool.Pool and pgxmock pools satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxQuerier is a Querier that can also open transactions.
type TxQuerier interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ TxQuerier = (*pgxpool.Pool)(nil)

// Config holds database connection configuration.
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ConnectionString returns the PostgreSQL connection string.
func (c Config) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// Connect creates a new database connection pool.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns) //nolint:gosec // MaxOpenConns is bounded by config validation
	poolConfig.MinConns = int32(cfg.MaxIdleConns) //nolint:gosec // MaxIdleConns is bounded by config validation
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Migrate applies the schema. Statements are idempotent.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS treks (
		seq BIGSERIAL,
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		country TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		duration INTEGER NOT NULL CHECK (duration >= 1),
		distance INTEGER,
		max_elevation INTEGER,
		best_months TEXT[] NOT NULL,
		climate TEXT NOT NULL,
		description TEXT NOT NULL,
		long_description TEXT,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 50),
		review_count INTEGER NOT NULL DEFAULT 0,
		image_url TEXT,
		highlights TEXT[] NOT NULL,
		requirements JSONB,
		price INTEGER,
		provider TEXT NOT NULL DEFAULT 'custom',
		provider_url TEXT,
		provider_trek_id TEXT,
		last_updated TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS treks_provider_identity
		ON treks (provider, provider_trek_id) WHERE provider_trek_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS user_trek_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		age_range TEXT,
		fitness_level TEXT NOT NULL,
		trek_experience TEXT,
		preferred_durations TEXT[] NOT NULL,
		climate_preferences TEXT[] NOT NULL,
		travel_radius TEXT,
		location TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wishlist_items (
		seq BIGSERIAL,
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		trek_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, trek_id)
	)`,
	`CREATE TABLE IF NOT EXISTS trek_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		trek_id TEXT NOT NULL,
		start_date TIMESTAMPTZ,
		preparation JSONB NOT NULL,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS trek_plans_user ON trek_plans (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS feature_flags (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		description TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
