package featureflags

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the feature flag service.
type ServiceConfig struct {
	Repository   Repository
	Logger       zerolog.Logger
	CacheTTL     time.Duration // how long a loaded snapshot is served
	DefaultFlags map[string]*Flag
}

// Service evaluates flags from a periodically reloaded snapshot of stored
// values layered over the defaults.
type Service struct {
	repo     Repository
	logger   zerolog.Logger
	ttl      time.Duration
	defaults map[string]*Flag

	mu       sync.RWMutex
	snapshot map[string]*Flag // never mutated once published
	loadedAt time.Time
}

// NewService creates a new feature flag service.
func NewService(cfg ServiceConfig) *Service {
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = time.Minute
	}
	defaults := cfg.DefaultFlags
	if defaults == nil {
		defaults = DefaultFlags()
	}

	return &Service{
		repo:     cfg.Repository,
		logger:   cfg.Logger,
		ttl:      ttl,
		defaults: defaults,
	}
}

// GetFlag returns the effective flag for key, or nil for an unknown key.
func (s *Service) GetFlag(ctx context.Context, key string) *Flag {
	return s.flags(ctx)[key]
}

// GetAllFlags returns the effective value of every flag.
func (s *Service) GetAllFlags(ctx context.Context) map[string]*Flag {
	return maps.Clone(s.flags(ctx))
}

// SetFlags checks and stores a batch of flag updates. A batch with any
// unknown key or mistyped value is refused as a whole with an
// *InvalidFlagError.
func (s *Service) SetFlags(ctx context.Context, flags []*Flag) error {
	now := time.Now()
	for i, flag := range flags {
		value, invalid := checkFlag(i, flag.Key, flag.Value)
		if invalid != nil {
			return invalid
		}
		flag.Value = value
		flag.UpdatedAt = now
	}

	if err := s.repo.SetFlags(ctx, flags); err != nil {
		return fmt.Errorf("save feature flags: %w", err)
	}

	s.InvalidateCache()
	return nil
}

// InvalidateCache drops the snapshot so the next read reloads the store.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.loadedAt = time.Time{}
}

// IsEnabled reports whether the boolean flag key is on.
func (s *Service) IsEnabled(ctx context.Context, key string) bool {
	return s.GetFlag(ctx, key).BoolValue(false)
}

// flags returns the current snapshot, reloading it once it is older than
// the TTL. A failed reload keeps serving the last snapshot, or the
// defaults when nothing was ever loaded.
func (s *Service) flags(ctx context.Context) map[string]*Flag {
	s.mu.RLock()
	snapshot, loadedAt := s.snapshot, s.loadedAt
	s.mu.RUnlock()

	if snapshot != nil && time.Since(loadedAt) < s.ttl {
		return snapshot
	}

	stored, err := s.repo.GetAllFlags(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load feature flags, serving last known values")
		if snapshot != nil {
			return snapshot
		}
		return s.defaults
	}

	merged := maps.Clone(s.defaults)
	maps.Copy(merged, stored)

	s.mu.Lock()
	s.snapshot = merged
	s.loadedAt = time.Now()
	s.mu.Unlock()

	return merged
}

// IsCombinedSearch returns true if search text is ANDed with the other filters.
func (s *Service) IsCombinedSearch(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagSearchCombinedFilters)
}

// RecommendationLimit returns the maximum number of recommended treks.
// A stored value out of range falls back to the default.
func (s *Service) RecommendationLimit(ctx context.Context) int {
	limit := s.GetFlag(ctx, FlagRecommendationLimit).IntValue(DefaultRecommendationLimit)
	if limit < 1 || limit > MaxRecommendationLimit {
		return DefaultRecommendationLimit
	}
	return limit
}

// IsRecommendationsDisabled returns true if everyone gets the popular list.
func (s *Service) IsRecommendationsDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisableRecommendations)
}

// IsProviderSyncDisabled returns true if scheduled catalog syncs are paused.
func (s *Service) IsProviderSyncDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisableProviderSync)
}
