// Package app wires TrekScout's stores, cache and catalog ingestion from
// configuration. Both the API server and the worker start from here.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/config"
	"github.com/trekscout/trekscout/internal/database"
	"github.com/trekscout/trekscout/internal/featureflags"
	"github.com/trekscout/trekscout/internal/ingest"
	"github.com/trekscout/trekscout/internal/plan"
	"github.com/trekscout/trekscout/internal/profile"
	"github.com/trekscout/trekscout/internal/provider/resilience"
	"github.com/trekscout/trekscout/internal/reccache"
	"github.com/trekscout/trekscout/internal/trek"
	"github.com/trekscout/trekscout/internal/wishlist"
)

// Stores holds the repositories for the configured storage backend.
type Stores struct {
	Catalog  trek.Catalog
	Profiles profile.Repository
	Wishlist wishlist.Repository
	Plans    plan.Repository
	Flags    featureflags.Repository

	// Pool is nil for the memory backend.
	Pool *pgxpool.Pool
}

// OpenStores connects the storage backend and seeds the catalog.
func OpenStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	if cfg.App.Storage != config.StoragePostgres {
		log.Info().Int("treks", len(trek.Seed())).Msg("using in-memory storage")
		return &Stores{
			Catalog:  trek.NewInMemoryCatalog(trek.Seed()...),
			Profiles: profile.NewInMemoryRepository(),
			Wishlist: wishlist.NewInMemoryRepository(),
			Plans:    plan.NewInMemoryRepository(),
			Flags:    featureflags.NewInMemoryRepository(),
		}, nil
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.Database).
		Msg("database connected")

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	catalog := trek.NewPostgresCatalog(pool)
	seeded, err := catalog.Load(ctx, trek.Seed())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	if seeded > 0 {
		log.Info().Int("treks", seeded).Msg("catalog seeded")
	}

	return &Stores{
		Catalog:  catalog,
		Profiles: profile.NewPostgresRepository(pool),
		Wishlist: wishlist.NewPostgresRepository(pool),
		Plans:    plan.NewPostgresRepository(pool),
		Flags:    featureflags.NewPostgresRepository(pool),
		Pool:     pool,
	}, nil
}

// Close releases the database pool, if any.
func (s *Stores) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// OpenCache returns the Redis recommendation cache, or a no-op cache when
// Redis is not configured or unreachable. The returned client is nil in the
// latter case.
func OpenCache(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (reccache.Cache, *redis.Client) {
	if cfg.Addr == "" {
		return reccache.NopCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, recommendation cache disabled")
		_ = client.Close()
		return reccache.NopCache{}, nil
	}

	log.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.CacheTTL).Msg("recommendation cache enabled")
	return reccache.NewRedisCache(reccache.RedisConfig{
		Client: client,
		TTL:    cfg.CacheTTL,
		Logger: log,
	}), client
}

// Sources returns the partner sources. Providers with a configured feed URL
// are fetched over HTTP through a resilient client registered in registry;
// the rest use the bundled tables.
func Sources(cfg config.SyncConfig, registry *resilience.Registry, log zerolog.Logger) []ingest.Source {
	defaults := ingest.DefaultSources()
	sources := make([]ingest.Source, 0, len(defaults))
	for _, src := range defaults {
		url, ok := cfg.Feeds[src.Provider()]
		if !ok {
			sources = append(sources, src)
			continue
		}

		clientCfg := resilience.DefaultClientConfig(string(src.Provider()))
		clientCfg.Registry = registry
		if cfg.Timeout > 0 && cfg.Timeout < clientCfg.Timeout {
			clientCfg.Timeout = cfg.Timeout
		}
		client := resilience.NewClient(clientCfg)

		log.Info().Str("provider", string(src.Provider())).Str("url", url).Msg("using partner feed")
		sources = append(sources, ingest.NewFeedSource(src.Provider(), url, client, log))
	}
	return sources
}

// NewSyncer builds the catalog syncer for the configured sources.
func NewSyncer(cfg config.SyncConfig, catalog trek.Catalog, cache reccache.Cache, registry *resilience.Registry, log zerolog.Logger) (*ingest.Syncer, error) {
	return ingest.NewSyncer(ingest.SyncerConfig{
		Catalog:     catalog,
		Sources:     Sources(cfg, registry, log),
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.Timeout,
		Cache:       cache,
		Logger:      log,
	})
}
