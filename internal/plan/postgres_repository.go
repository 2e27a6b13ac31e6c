package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/trekscout/trekscout/internal/database"
)

const planColumns = `id, user_id, trek_id, start_date, preparation, is_completed, created_at, updated_at`

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	db database.Querier
}

// NewPostgresRepository creates a new PostgreSQL plan repository.
func NewPostgresRepository(db database.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUser returns a user's plans, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM trek_plans WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	plans := []*Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// Get retrieves a plan owned by userID.
func (r *PostgresRepository) Get(ctx context.Context, userID, planID string) (*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM trek_plans WHERE id = $1 AND user_id = $2`

	p, err := scanPlan(r.db.QueryRow(ctx, query, planID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create stores a new plan.
func (r *PostgresRepository) Create(ctx context.Context, plan *Plan) error {
	preparation, err := json.Marshal(plan.Preparation)
	if err != nil {
		return fmt.Errorf("marshal preparation: %w", err)
	}

	query := `
		INSERT INTO trek_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Exec(ctx, query,
		plan.ID,
		plan.UserID,
		plan.TrekID,
		plan.StartDate,
		preparation,
		plan.IsCompleted,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// Update replaces an existing plan.
func (r *PostgresRepository) Update(ctx context.Context, plan *Plan) error {
	preparation, err := json.Marshal(plan.Preparation)
	if err != nil {
		return fmt.Errorf("marshal preparation: %w", err)
	}

	query := `
		UPDATE trek_plans
		SET start_date = $3, preparation = $4, is_completed = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.UserID,
		plan.StartDate,
		preparation,
		plan.IsCompleted,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func scanPlan(row pgx.Row) (*Plan, error) {
	var (
		p           Plan
		preparation []byte
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.TrekID,
		&p.StartDate,
		&preparation,
		&p.IsCompleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(preparation, &p.Preparation); err != nil {
		return nil, fmt.Errorf("unmarshal preparation: %w", err)
	}
	return &p, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
