package ingest

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSyncInterval is how often the scheduler syncs when no interval is set.
const DefaultSyncInterval = 24 * time.Hour

// SyncFlags reports whether scheduled syncs are switched off.
type SyncFlags interface {
	IsProviderSyncDisabled(ctx context.Context) bool
}

// Runner is the part of Syncer the scheduler drives.
type Runner interface {
	Run(ctx context.Context) *Result
}

// SchedulerConfig holds configuration for creating a Scheduler.
type SchedulerConfig struct {
	Runner   Runner
	Interval time.Duration
	Flags    SyncFlags // optional
	Logger   zerolog.Logger
}

// Scheduler runs catalog syncs on a fixed interval.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	flags    SyncFlags
	logger   zerolog.Logger
}

// NewScheduler creates a scheduler.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSyncInterval
	}
	return &Scheduler{
		runner:   cfg.Runner,
		interval: cfg.Interval,
		flags:    cfg.Flags,
		logger:   cfg.Logger,
	}
}

// Start syncs once immediately and then on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("starting sync scheduler")

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("sync scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.flags != nil && s.flags.IsProviderSyncDisabled(ctx) {
		s.logger.Info().Msg("provider sync disabled by feature flag, skipping")
		return
	}
	s.runner.Run(ctx)
}
