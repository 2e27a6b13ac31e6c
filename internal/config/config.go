// Package config loads TrekScout configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/trekscout/trekscout/internal/database"
	"github.com/trekscout/trekscout/internal/trek"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// DevSigningKey is the JWT key used when none is configured outside production.
const DevSigningKey = "local-dev-signing-key-change-in-production"

// Config is the full application configuration.
type Config struct {
	App       AppConfig
	Database  database.Config
	Redis     RedisConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	Sync      SyncConfig
	PubSub    PubSubConfig
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Port     string
	Env      string
	LogLevel zerolog.Level
	Storage  string
}

// IsProduction reports whether the service runs in production.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// RedisConfig configures the recommendation cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// AuthConfig configures bearer token validation.
type AuthConfig struct {
	SigningKey     string
	Issuer         string
	Audience       string
	AllowAnonymous bool
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

// SyncConfig configures catalog ingestion.
type SyncConfig struct {
	Interval    time.Duration
	Concurrency int
	Timeout     time.Duration
	// Feeds maps a provider to its JSON feed URL. Providers without a feed
	// use the bundled tables.
	Feeds map[trek.Provider]string
}

// PubSubConfig configures the worker's Pub/Sub trigger. An empty ProjectID
// disables it.
type PubSubConfig struct {
	ProjectID    string
	Subscription string
}

var feedProviders = []trek.Provider{trek.ProviderBikat, trek.ProviderYHAI, trek.ProviderIndiahikes}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_BACKEND", StorageMemory)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "trekscout")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "trekscout")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REC_CACHE_TTL", 15*time.Minute)

	v.SetDefault("JWT_SIGNING_KEY", "")
	v.SetDefault("JWT_ISSUER", "trekscout")
	v.SetDefault("JWT_AUDIENCE", "trekscout-api")
	v.SetDefault("AUTH_ALLOW_ANONYMOUS", true)

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	v.SetDefault("SYNC_INTERVAL", 24*time.Hour)
	v.SetDefault("SYNC_CONCURRENCY", 3)
	v.SetDefault("SYNC_TIMEOUT", 30*time.Second)
	for _, p := range feedProviders {
		v.SetDefault(feedKey(p), "")
	}

	v.SetDefault("PUBSUB_PROJECT_ID", "")
	v.SetDefault("PUBSUB_SUBSCRIPTION", "trekscout-sync")
}

func feedKey(p trek.Provider) string {
	return "FEED_" + strings.ToUpper(string(p)) + "_URL"
}

// Load reads configuration from the environment. When envFile is non-empty
// and exists, its values are used beneath the environment.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			// An explicit config file that is missing surfaces as a plain fs error.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read %s: %w", envFile, err)
			}
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("LOG_LEVEL")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: level,
			Storage:  strings.ToLower(v.GetString("STORAGE_BACKEND")),
		},
		Database: database.Config{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("REC_CACHE_TTL"),
		},
		Auth: AuthConfig{
			SigningKey:     v.GetString("JWT_SIGNING_KEY"),
			Issuer:         v.GetString("JWT_ISSUER"),
			Audience:       v.GetString("JWT_AUDIENCE"),
			AllowAnonymous: v.GetBool("AUTH_ALLOW_ANONYMOUS"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      v.GetBool("OTEL_ENABLED"),
			OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		Sync: SyncConfig{
			Interval:    v.GetDuration("SYNC_INTERVAL"),
			Concurrency: v.GetInt("SYNC_CONCURRENCY"),
			Timeout:     v.GetDuration("SYNC_TIMEOUT"),
			Feeds:       map[trek.Provider]string{},
		},
		PubSub: PubSubConfig{
			ProjectID:    v.GetString("PUBSUB_PROJECT_ID"),
			Subscription: v.GetString("PUBSUB_SUBSCRIPTION"),
		},
	}
	for _, p := range feedProviders {
		if url := v.GetString(feedKey(p)); url != "" {
			cfg.Sync.Feeds[p] = url
		}
	}

	if cfg.Auth.SigningKey == "" && !cfg.App.IsProduction() {
		cfg.Auth.SigningKey = DevSigningKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	var errs []error
	switch c.App.Storage {
	case StorageMemory, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, c.App.Storage))
	}
	if c.Auth.SigningKey == "" {
		errs = append(errs, errors.New("JWT_SIGNING_KEY is required in production"))
	}
	if c.Sync.Concurrency < 1 {
		errs = append(errs, errors.New("SYNC_CONCURRENCY must be at least 1"))
	}
	if c.Sync.Interval <= 0 {
		errs = append(errs, errors.New("SYNC_INTERVAL must be positive"))
	}
	if c.Sync.Timeout <= 0 {
		errs = append(errs, errors.New("SYNC_TIMEOUT must be positive"))
	}
	if c.Redis.CacheTTL <= 0 {
		errs = append(errs, errors.New("REC_CACHE_TTL must be positive"))
	}
	return errors.Join(errs...)
}
