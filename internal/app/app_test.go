package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/app"
	"github.com/trekscout/trekscout/internal/config"
	"github.com/trekscout/trekscout/internal/ingest"
	"github.com/trekscout/trekscout/internal/provider/resilience"
	"github.com/trekscout/trekscout/internal/reccache"
	"github.com/trekscout/trekscout/internal/trek"
)

func TestOpenStores_Memory(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Storage: config.StorageMemory}}

	stores, err := app.OpenStores(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer stores.Close()

	assert.Nil(t, stores.Pool)
	all, err := stores.Catalog.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestOpenCache(t *testing.T) {
	t.Run("disabled without address", func(t *testing.T) {
		cache, client := app.OpenCache(context.Background(), config.RedisConfig{}, zerolog.Nop())
		assert.IsType(t, reccache.NopCache{}, cache)
		assert.Nil(t, client)
	})

	t.Run("unreachable falls back", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cache, client := app.OpenCache(context.Background(), config.RedisConfig{Addr: addr}, zerolog.Nop())
		assert.IsType(t, reccache.NopCache{}, cache)
		assert.Nil(t, client)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)

		cache, client := app.OpenCache(context.Background(), config.RedisConfig{
			Addr:     mr.Addr(),
			CacheTTL: time.Minute,
		}, zerolog.Nop())
		require.NotNil(t, client)
		defer client.Close()

		cache.Set(context.Background(), "usr_1", "v1", []string{"2", "1"})
		ids, ok := cache.Get(context.Background(), "usr_1", "v1")
		require.True(t, ok)
		assert.Equal(t, []string{"2", "1"}, ids)
	})
}

func TestSources_FeedOverride(t *testing.T) {
	registry := resilience.NewRegistry()
	sources := app.Sources(config.SyncConfig{
		Timeout: 5 * time.Second,
		Feeds:   map[trek.Provider]string{trek.ProviderYHAI: "https://feeds.example.com/yhai.json"},
	}, registry, zerolog.Nop())

	require.Len(t, sources, 3)
	for _, src := range sources {
		if src.Provider() == trek.ProviderYHAI {
			assert.IsType(t, &ingest.FeedSource{}, src)
		} else {
			assert.IsType(t, &ingest.StaticSource{}, src)
		}
	}

	assert.Equal(t, 1, registry.ProviderCount())
	assert.NotNil(t, registry.GetHealth(string(trek.ProviderYHAI)))
}

func TestNewSyncer_BundledSources(t *testing.T) {
	catalog := trek.NewInMemoryCatalog(trek.Seed()...)
	syncer, err := app.NewSyncer(config.SyncConfig{Concurrency: 2, Timeout: time.Second},
		catalog, reccache.NopCache{}, resilience.NewRegistry(), zerolog.Nop())
	require.NoError(t, err)

	result := syncer.Run(context.Background())
	assert.Equal(t, 10, result.Added)
	assert.Equal(t, 16, catalog.Len())
}
