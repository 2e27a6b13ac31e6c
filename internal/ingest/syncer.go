package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/reccache"
	"github.com/trekscout/trekscout/internal/telemetry"
	"github.com/trekscout/trekscout/internal/trek"
)

const meterName = "github.com/trekscout/trekscout/internal/ingest"

// ErrSyncInProgress is returned by TryRun when another run holds the syncer.
var ErrSyncInProgress = errors.New("catalog sync already in progress")

// Outcomes recorded on the catalog.sync.treks counter.
const (
	outcomeAdded   = "added"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
)

// SyncerConfig holds configuration for creating a Syncer.
type SyncerConfig struct {
	Catalog trek.Catalog
	Sources []Source

	// Concurrency is the number of sources fetched at once.
	// Default: 3
	Concurrency int

	// Timeout bounds each source's fetch and ingest.
	// Default: 30 seconds
	Timeout time.Duration

	// Cache is flushed after a run that added treks. Optional.
	Cache reccache.Cache

	Logger zerolog.Logger
}

// Syncer copies partner treks into the catalog.
type Syncer struct {
	catalog     trek.Catalog
	sources     []Source
	concurrency int
	timeout     time.Duration
	cache       reccache.Cache
	logger      zerolog.Logger
	counter     metric.Int64Counter

	run sync.Mutex

	mu   sync.RWMutex
	last *Result
}

// Result summarizes one sync run.
type Result struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Added      int
	Skipped    int
	Failed     int
	Providers  []ProviderResult
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ProviderResult is the outcome for one source.
type ProviderResult struct {
	Provider trek.Provider
	Fetched  int
	Added    int
	Skipped  int
	Error    string
}

// NewSyncer creates a syncer.
func NewSyncer(cfg SyncerConfig) (*Syncer, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Cache == nil {
		cfg.Cache = reccache.NopCache{}
	}

	counter, err := telemetry.Meter(meterName).Int64Counter(
		"catalog.sync.treks",
		metric.WithDescription("Treks processed by catalog sync"),
		metric.WithUnit("{trek}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create sync counter: %w", err)
	}

	return &Syncer{
		catalog:     cfg.Catalog,
		sources:     cfg.Sources,
		concurrency: cfg.Concurrency,
		timeout:     cfg.Timeout,
		cache:       cfg.Cache,
		logger:      cfg.Logger,
		counter:     counter,
	}, nil
}

// Run syncs every source, waiting for any run already in progress.
func (s *Syncer) Run(ctx context.Context) *Result {
	s.run.Lock()
	defer s.run.Unlock()
	return s.sync(ctx)
}

// TryRun syncs every source unless a run is already in progress.
func (s *Syncer) TryRun(ctx context.Context) (*Result, error) {
	if !s.run.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.run.Unlock()
	return s.sync(ctx), nil
}

// LastResult returns the most recent run, or nil before the first one.
func (s *Syncer) LastResult() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	cpy := *s.last
	cpy.Providers = append([]ProviderResult(nil), s.last.Providers...)
	return &cpy
}

func (s *Syncer) sync(ctx context.Context) *Result {
	result := &Result{StartedAt: time.Now().UTC()}

	s.logger.Info().
		Int("sources", len(s.sources)).
		Int("concurrency", s.concurrency).
		Msg("starting catalog sync")

	jobs := make(chan int, len(s.sources))
	results := make([]ProviderResult, len(s.sources))

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = s.syncSource(ctx, s.sources[idx])
			}
		}()
	}

	for i := range s.sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, pr := range results {
		result.Added += pr.Added
		result.Skipped += pr.Skipped
		if pr.Error != "" {
			result.Failed++
		}
	}
	result.Providers = results
	result.FinishedAt = time.Now().UTC()

	// New treks can change every ranking.
	if result.Added > 0 {
		s.cache.Flush(ctx)
	}

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()

	s.logger.Info().
		Dur("duration", result.Duration()).
		Int("added", result.Added).
		Int("skipped", result.Skipped).
		Int("failed_sources", result.Failed).
		Msg("catalog sync completed")

	return result
}

func (s *Syncer) syncSource(ctx context.Context, src Source) ProviderResult {
	provider := src.Provider()
	pr := ProviderResult{Provider: provider}
	logger := s.logger.With().Str("provider", string(provider)).Logger()

	srcCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	treks, err := src.FetchTreks(srcCtx)
	if err != nil {
		logger.Error().Err(err).Msg("provider fetch failed")
		pr.Error = err.Error()
		s.record(ctx, provider, outcomeFailed, 1)
		return pr
	}
	pr.Fetched = len(treks)

	for _, n := range treks {
		n.Provider = provider
		stored, inserted, err := s.catalog.InsertIfAbsent(srcCtx, n)
		if err != nil {
			logger.Error().Err(err).Str("name", n.Name).Msg("failed to store trek")
			pr.Error = err.Error()
			s.record(ctx, provider, outcomeFailed, 1)
			// The catalog is unhealthy or the deadline passed; stop this source.
			break
		}
		if !inserted {
			pr.Skipped++
			logger.Info().
				Str("trek_id", stored.ID).
				Str("name", n.Name).
				Msg("trek already in catalog, skipping")
			continue
		}
		pr.Added++
	}

	s.record(ctx, provider, outcomeAdded, pr.Added)
	s.record(ctx, provider, outcomeSkipped, pr.Skipped)

	logger.Info().
		Int("fetched", pr.Fetched).
		Int("added", pr.Added).
		Int("skipped", pr.Skipped).
		Msg("provider sync completed")

	return pr
}

func (s *Syncer) record(ctx context.Context, provider trek.Provider, outcome string, n int) {
	if n == 0 {
		return
	}
	s.counter.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("provider", string(provider)),
		attribute.String("outcome", outcome),
	))
}

// ToAPIResult converts a sync result to its API form.
func ToAPIResult(r *Result) *models.SyncResult {
	if r == nil {
		return nil
	}
	out := &models.SyncResult{
		StartedAt:  models.Timestamp(r.StartedAt),
		FinishedAt: models.Timestamp(r.FinishedAt),
		Added:      r.Added,
		Skipped:    r.Skipped,
		Failed:     r.Failed,
		Providers:  make([]models.ProviderSyncResult, 0, len(r.Providers)),
	}
	for _, pr := range r.Providers {
		item := models.ProviderSyncResult{
			Provider: string(pr.Provider),
			Fetched:  pr.Fetched,
			Added:    pr.Added,
			Skipped:  pr.Skipped,
		}
		if pr.Error != "" {
			msg := pr.Error
			item.Error = &msg
		}
		out.Providers = append(out.Providers, item)
	}
	return out
}
