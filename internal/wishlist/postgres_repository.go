package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trekscout/trekscout/internal/database"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	db database.Querier
}

// NewPostgresRepository creates a new PostgreSQL wishlist repository.
func NewPostgresRepository(db database.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns a user's items in the order they were added.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*Item, error) {
	query := `
		SELECT id, user_id, trek_id, created_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query wishlist: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.UserID, &item.TrekID, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Add stores the item unless the user already saved the trek.
func (r *PostgresRepository) Add(ctx context.Context, item *Item) (*Item, bool, error) {
	insert := `
		INSERT INTO wishlist_items (id, user_id, trek_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, trek_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, insert, item.ID, item.UserID, item.TrekID, item.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("insert wishlist item: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return item.clone(), true, nil
	}

	query := `
		SELECT id, user_id, trek_id, created_at
		FROM wishlist_items
		WHERE user_id = $1 AND trek_id = $2
	`

	var existing Item
	err = r.db.QueryRow(ctx, query, item.UserID, item.TrekID).Scan(
		&existing.ID, &existing.UserID, &existing.TrekID, &existing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Removed between the insert and the lookup.
			return nil, false, ErrItemNotFound
		}
		return nil, false, err
	}
	return &existing, false, nil
}

// Remove deletes the user's item for trekID.
func (r *PostgresRepository) Remove(ctx context.Context, userID, trekID string) (bool, error) {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND trek_id = $2`

	tag, err := r.db.Exec(ctx, query, userID, trekID)
	if err != nil {
		return false, fmt.Errorf("delete wishlist item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
