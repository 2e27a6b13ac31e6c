package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/trekscout/trekscout/internal/database"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	db database.Querier
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(db database.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUserID retrieves the profile of a user.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := `
		SELECT
			id, user_id, age_range, fitness_level, trek_experience,
			preferred_durations, climate_preferences, travel_radius, location,
			created_at, updated_at
		FROM user_trek_profiles
		WHERE user_id = $1
	`

	var (
		p              Profile
		ageRange       *string
		trekExperience *string
		travelRadius   *string
	)

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&ageRange,
		&p.FitnessLevel,
		&trekExperience,
		&p.PreferredDurations,
		&p.ClimatePreferences,
		&travelRadius,
		&p.Location,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	p.AgeRange = deref(ageRange)
	p.TrekExperience = deref(trekExperience)
	p.TravelRadius = deref(travelRadius)

	return &p, nil
}

// Upsert creates or replaces the profile of p.UserID.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Profile) (*Profile, error) {
	query := `
		INSERT INTO user_trek_profiles (
			id, user_id, age_range, fitness_level, trek_experience,
			preferred_durations, climate_preferences, travel_radius, location,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			age_range = EXCLUDED.age_range,
			fitness_level = EXCLUDED.fitness_level,
			trek_experience = EXCLUDED.trek_experience,
			preferred_durations = EXCLUDED.preferred_durations,
			climate_preferences = EXCLUDED.climate_preferences,
			travel_radius = EXCLUDED.travel_radius,
			location = EXCLUDED.location,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	stored := p.clone()
	err := r.db.QueryRow(ctx, query,
		p.ID,
		p.UserID,
		p.AgeRange,
		p.FitnessLevel,
		p.TrekExperience,
		p.PreferredDurations,
		p.ClimatePreferences,
		p.TravelRadius,
		p.Location,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
