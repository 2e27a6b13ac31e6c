package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/validation"
)

// Invalidator drops cached data derived from a user's profile.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// ServiceConfig holds configuration for the profile service.
type ServiceConfig struct {
	Repository Repository
	// Cache is optional.
	Cache Invalidator
}

// Service provides profile operations.
type Service struct {
	repo  Repository
	cache Invalidator
	now   func() time.Time
}

// NewService creates a new profile service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:  cfg.Repository,
		cache: cfg.Cache,
		now:   time.Now,
	}
}

// Lookup returns the stored profile of a user.
// Returns ErrProfileNotFound if the user has none.
func (s *Service) Lookup(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Get returns the user's profile.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAPIProfile(p), nil
}

// Upsert creates the user's profile on first submission and updates it in
// place afterwards.
func (s *Service) Upsert(ctx context.Context, userID string, input *models.ProfileInput) (*models.Profile, error) {
	if err := validation.Check(input); err != nil {
		return nil, err
	}

	now := s.now()
	durations := make([]string, len(input.PreferredDurations))
	for i, d := range input.PreferredDurations {
		durations[i] = string(d)
	}

	stored, err := s.repo.Upsert(ctx, &Profile{
		ID:                 "prf_" + uuid.NewString(),
		UserID:             userID,
		AgeRange:           input.AgeRange,
		FitnessLevel:       string(input.FitnessLevel),
		TrekExperience:     input.TrekExperience,
		PreferredDurations: durations,
		ClimatePreferences: append([]string(nil), input.ClimatePreferences...),
		TravelRadius:       input.TravelRadius,
		Location:           input.Location,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}

	return toAPIProfile(stored), nil
}

func toAPIProfile(p *Profile) *models.Profile {
	durations := make([]models.DurationBucket, len(p.PreferredDurations))
	for i, d := range p.PreferredDurations {
		durations[i] = models.DurationBucket(d)
	}
	climates := p.ClimatePreferences
	if climates == nil {
		climates = []string{}
	}

	return &models.Profile{
		ID:                 p.ID,
		UserID:             p.UserID,
		AgeRange:           p.AgeRange,
		FitnessLevel:       models.FitnessLevel(p.FitnessLevel),
		TrekExperience:     p.TrekExperience,
		PreferredDurations: durations,
		ClimatePreferences: climates,
		TravelRadius:       p.TravelRadius,
		Location:           p.Location,
		CreatedAt:          models.Timestamp(p.CreatedAt),
		UpdatedAt:          models.Timestamp(p.UpdatedAt),
	}
}
