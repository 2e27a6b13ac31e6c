// Package reccache caches the ranked trek IDs recommended to each user.
//
// Cache failures never fail a request: they are logged and treated as misses.
package reccache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/trekscout/trekscout/internal/telemetry"
)

const meterName = "github.com/trekscout/trekscout/internal/reccache"

// KeyPrefix namespaces recommendation entries in Redis.
const KeyPrefix = "trekscout:rec:"

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 15 * time.Minute

// Cache stores ranked recommendation ID lists per user. Each entry carries
// the version of the profile it was ranked for; Get only returns entries
// whose version matches, so a ranking computed from a profile that has
// since changed is never served.
type Cache interface {
	Get(ctx context.Context, userID, version string) ([]string, bool)
	Set(ctx context.Context, userID, version string, trekIDs []string)
	Invalidate(ctx context.Context, userID string)
	Flush(ctx context.Context)
}

type entry struct {
	Version string   `json:"version"`
	TrekIDs []string `json:"trekIds"`
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	Client *redis.Client
	TTL    time.Duration
	Logger zerolog.Logger
}

// RedisCache is a Redis implementation of Cache.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	logger  zerolog.Logger
	lookups metric.Int64Counter
}

// NewRedisCache creates a new Redis-backed recommendation cache.
func NewRedisCache(cfg RedisConfig) *RedisCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	logger := cfg.Logger.With().Str("component", "reccache").Logger()

	lookups, err := telemetry.Meter(meterName).Int64Counter(
		"recommendation.cache.lookups",
		metric.WithDescription("Recommendation cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("recommendation cache metrics disabled")
		lookups = noop.Int64Counter{}
	}

	return &RedisCache{
		client:  cfg.Client,
		ttl:     ttl,
		logger:  logger,
		lookups: lookups,
	}
}

func (c *RedisCache) record(ctx context.Context, result string) {
	c.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// Get returns the cached trek IDs for a user ranked at version.
func (c *RedisCache) Get(ctx context.Context, userID, version string) ([]string, bool) {
	data, err := c.client.Get(ctx, KeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(ctx, "miss")
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("recommendation cache read failed")
		c.record(ctx, "error")
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("discarding corrupt recommendation cache entry")
		c.Invalidate(ctx, userID)
		c.record(ctx, "error")
		return nil, false
	}
	if e.Version != version {
		c.record(ctx, "stale")
		return nil, false
	}
	c.record(ctx, "hit")
	if e.TrekIDs == nil {
		e.TrekIDs = []string{}
	}
	return e.TrekIDs, true
}

// Set stores the trek IDs recommended to a user for a profile version.
func (c *RedisCache) Set(ctx context.Context, userID, version string, trekIDs []string) {
	if trekIDs == nil {
		trekIDs = []string{}
	}
	data, err := json.Marshal(entry{Version: version, TrekIDs: trekIDs})
	if err != nil {
		c.logger.Warn().Err(err).Msg("encode recommendation cache entry")
		return
	}
	if err := c.client.Set(ctx, KeyPrefix+userID, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("recommendation cache write failed")
	}
}

// Invalidate drops the cached recommendations of a user.
func (c *RedisCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, KeyPrefix+userID).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("recommendation cache invalidation failed")
	}
}

// Flush drops every cached recommendation, e.g. after the catalog changed.
func (c *RedisCache) Flush(ctx context.Context) {
	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, KeyPrefix+"*", 100).Result()
		if err != nil {
			c.logger.Warn().Err(err).Msg("recommendation cache scan failed")
			return
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Warn().Err(err).Msg("recommendation cache flush failed")
				return
			}
			removed += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.logger.Debug().Int64("removed", removed).Msg("recommendation cache flushed")
}

// NopCache is a Cache that stores nothing.
type NopCache struct{}

func (NopCache) Get(context.Context, string, string) ([]string, bool) { return nil, false }
func (NopCache) Set(context.Context, string, string, []string)        {}
func (NopCache) Invalidate(context.Context, string)                   {}
func (NopCache) Flush(context.Context)                                {}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = NopCache{}
)
