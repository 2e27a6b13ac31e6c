// Package discovery serves trek search and personalized recommendations.
// It combines the catalog, the matching engine, user profiles, runtime
// flags and the recommendation cache.
package discovery

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/validation"
	"github.com/trekscout/trekscout/internal/matching"
	"github.com/trekscout/trekscout/internal/profile"
	"github.com/trekscout/trekscout/internal/reccache"
	"github.com/trekscout/trekscout/internal/trek"
)

// Profiles looks up stored user profiles.
type Profiles interface {
	Lookup(ctx context.Context, userID string) (*profile.Profile, error)
}

// Flags exposes the runtime switches discovery honours.
type Flags interface {
	IsCombinedSearch(ctx context.Context) bool
	RecommendationLimit(ctx context.Context) int
	IsRecommendationsDisabled(ctx context.Context) bool
}

// ServiceConfig holds configuration for the discovery service.
type ServiceConfig struct {
	Catalog  trek.Catalog
	Profiles Profiles
	// Flags is optional; without it discovery uses legacy search and the
	// default limit.
	Flags Flags
	// Cache is optional.
	Cache  reccache.Cache
	Logger zerolog.Logger
}

// Service provides search and recommendations.
type Service struct {
	catalog  trek.Catalog
	engine   *matching.Engine
	profiles Profiles
	flags    Flags
	cache    reccache.Cache
	logger   zerolog.Logger
}

// NewService creates a new discovery service.
func NewService(cfg ServiceConfig) *Service {
	cache := cfg.Cache
	if cache == nil {
		cache = reccache.NopCache{}
	}
	return &Service{
		catalog:  cfg.Catalog,
		engine:   matching.NewEngine(cfg.Catalog),
		profiles: cfg.Profiles,
		flags:    cfg.Flags,
		cache:    cache,
		logger:   cfg.Logger,
	}
}

// Search filters the catalog. Search text combines with the other fields
// according to the search_combined_filters flag.
func (s *Service) Search(ctx context.Context, query *models.TrekSearchQuery) (*models.TrekList, error) {
	if err := validation.Check(query); err != nil {
		return nil, err
	}

	mode := matching.SearchModeLegacy
	if s.flags != nil && s.flags.IsCombinedSearch(ctx) {
		mode = matching.SearchModeCombined
	}

	treks, err := s.engine.WithSearchMode(mode).Search(ctx, matching.Filter{
		Difficulty: query.Difficulty,
		Duration:   query.Duration,
		Climate:    query.Climate,
		Country:    query.Country,
		Search:     query.Search,
	})
	if err != nil {
		return nil, err
	}

	items := trek.ToAPIList(treks)
	return &models.TrekList{
		Items: items,
		Meta:  models.PagedResponseMeta{Count: len(items)},
	}, nil
}

// Recommend returns the treks recommended to a user, truncated to the
// configured limit. Users without a profile get the most popular treks.
func (s *Service) Recommend(ctx context.Context, userID string) (*models.Recommendations, error) {
	limit := matching.DefaultLimit
	if s.flags != nil {
		limit = s.flags.RecommendationLimit(ctx)
		if s.flags.IsRecommendationsDisabled(ctx) {
			return s.popular(ctx, limit)
		}
	}

	p, err := s.profiles.Lookup(ctx, userID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return s.popular(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	ranked, err := s.ranked(ctx, userID, p)
	if err != nil {
		return nil, err
	}

	return recommendations(matching.Truncate(ranked, limit), models.RecommendationSourceProfile, limit), nil
}

// ranked returns the full ranked list for a profile, from the cache when
// possible.
func (s *Service) ranked(ctx context.Context, userID string, p *profile.Profile) ([]*trek.Trek, error) {
	version := CacheVersion(p)
	if ids, ok := s.cache.Get(ctx, userID, version); ok {
		treks, err := s.resolve(ctx, ids)
		if err != nil {
			return nil, err
		}
		s.logger.Debug().Str("user_id", userID).Int("count", len(treks)).Msg("recommendations served from cache")
		return treks, nil
	}

	ranked, err := s.engine.Recommend(ctx, ToMatchingProfile(p))
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(ranked))
	for i, t := range ranked {
		ids[i] = t.ID
	}
	s.cache.Set(ctx, userID, version, ids)

	return ranked, nil
}

// resolve maps cached IDs back to treks, skipping IDs that left the catalog.
func (s *Service) resolve(ctx context.Context, ids []string) ([]*trek.Trek, error) {
	all, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*trek.Trek, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}

	treks := make([]*trek.Trek, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			treks = append(treks, t)
		}
	}
	return treks, nil
}

func (s *Service) popular(ctx context.Context, limit int) (*models.Recommendations, error) {
	treks, err := s.engine.Popular(ctx, limit)
	if err != nil {
		return nil, err
	}
	return recommendations(treks, models.RecommendationSourcePopular, limit), nil
}

func recommendations(treks []*trek.Trek, source models.RecommendationSource, limit int) *models.Recommendations {
	items := trek.ToAPIList(treks)
	return &models.Recommendations{
		Items:  items,
		Source: source,
		Meta:   models.PagedResponseMeta{Count: len(items), Limit: limit},
	}
}

// CacheVersion identifies the profile revision a cached ranking was
// computed from. A ranking written after the profile changed carries the
// old version and is ignored.
func CacheVersion(p *profile.Profile) string {
	return strconv.FormatInt(p.UpdatedAt.UnixNano(), 10)
}

// ToMatchingProfile extracts the fields the recommender reads.
func ToMatchingProfile(p *profile.Profile) matching.Profile {
	return matching.Profile{
		FitnessLevel:       matching.FitnessLevel(p.FitnessLevel),
		PreferredDurations: p.PreferredDurations,
		ClimatePreferences: p.ClimatePreferences,
	}
}
