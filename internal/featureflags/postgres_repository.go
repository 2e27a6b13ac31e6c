package featureflags

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/trekscout/trekscout/internal/database"
)

const upsertFlagQuery = `
	INSERT INTO feature_flags (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET
		value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at
`

// PostgresRepository stores flags in the feature_flags table. Values are
// kept as JSONB.
type PostgresRepository struct {
	db database.TxQuerier
}

// NewPostgresRepository creates a PostgreSQL feature flag repository.
func NewPostgresRepository(db database.TxQuerier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetAllFlags returns every stored flag.
func (r *PostgresRepository) GetAllFlags(ctx context.Context) (map[string]*Flag, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value, updated_at FROM feature_flags`)
	if err != nil {
		return nil, fmt.Errorf("query feature flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]*Flag)
	for rows.Next() {
		var (
			flag Flag
			raw  []byte
		)
		if err := rows.Scan(&flag.Key, &raw, &flag.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan feature flag: %w", err)
		}
		if err := json.Unmarshal(raw, &flag.Value); err != nil {
			return nil, fmt.Errorf("decode feature flag %q: %w", flag.Key, err)
		}
		flags[flag.Key] = &flag
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature flags: %w", err)
	}
	return flags, nil
}

// SetFlags upserts flags in one transaction.
func (r *PostgresRepository) SetFlags(ctx context.Context, flags []*Flag) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	now := time.Now()
	for _, flag := range flags {
		raw, err := json.Marshal(flag.Value)
		if err != nil {
			return fmt.Errorf("encode feature flag %q: %w", flag.Key, err)
		}
		updatedAt := flag.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}
		if _, err := tx.Exec(ctx, upsertFlagQuery, flag.Key, raw, updatedAt); err != nil {
			return fmt.Errorf("upsert feature flag %q: %w", flag.Key, err)
		}
	}

	return tx.Commit(ctx)
}

var _ Repository = (*PostgresRepository)(nil)
