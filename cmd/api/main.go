// Package main provides the entrypoint for the TrekScout API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api"
	"github.com/trekscout/trekscout/internal/api/handler"
	"github.com/trekscout/trekscout/internal/api/middleware"
	"github.com/trekscout/trekscout/internal/app"
	"github.com/trekscout/trekscout/internal/auth"
	"github.com/trekscout/trekscout/internal/config"
	"github.com/trekscout/trekscout/internal/discovery"
	"github.com/trekscout/trekscout/internal/featureflags"
	"github.com/trekscout/trekscout/internal/ingest"
	"github.com/trekscout/trekscout/internal/plan"
	"github.com/trekscout/trekscout/internal/profile"
	"github.com/trekscout/trekscout/internal/provider/resilience"
	"github.com/trekscout/trekscout/internal/telemetry"
	"github.com/trekscout/trekscout/internal/trek"
	"github.com/trekscout/trekscout/internal/wishlist"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "trekscout-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.App.LogLevel)

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Msg("starting TrekScout API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.App.Env,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
		Logger:         log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	stores, err := app.OpenStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer stores.Close()

	cache, redisClient := app.OpenCache(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: stores.Flags,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})

	profileService := profile.NewService(profile.ServiceConfig{
		Repository: stores.Profiles,
		Cache:      cache,
	})

	discoveryService := discovery.NewService(discovery.ServiceConfig{
		Catalog:  stores.Catalog,
		Profiles: profileService,
		Flags:    ffService,
		Cache:    cache,
		Logger:   log,
	})

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: cfg.Auth.SigningKey,
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
	})
	if cfg.Auth.SigningKey == config.DevSigningKey {
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}
	if cfg.Auth.AllowAnonymous {
		log.Warn().Str("user_id", middleware.DemoUserID).Msg("anonymous callers act as the demo user")
	}

	registry := resilience.NewRegistry()
	syncer, err := app.NewSyncer(cfg.Sync, stores.Catalog, cache, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog syncer")
	}

	// A memory catalog is private to this process, so nothing else can sync it.
	if cfg.App.Storage == config.StorageMemory {
		scheduler := ingest.NewScheduler(ingest.SchedulerConfig{
			Runner:   syncer,
			Interval: cfg.Sync.Interval,
			Flags:    ffService,
			Logger:   log,
		})
		go func() {
			if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("sync scheduler stopped")
			}
		}()
	}

	checks := map[string]handler.CheckFunc{}
	if stores.Pool != nil {
		checks["postgres"] = stores.Pool.Ping
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		Tokens:             jwtService,
		AllowAnonymous:     cfg.Auth.AllowAnonymous,
		TrekService:        trek.NewService(stores.Catalog),
		DiscoveryService:   discoveryService,
		ProfileService:     profileService,
		WishlistService:    wishlist.NewService(stores.Wishlist, stores.Catalog),
		PlanService:        plan.NewService(stores.Plans, stores.Catalog),
		FeatureFlagService: ffService,
		Syncer:             syncer,
		Providers:          registry,
		Checks:             checks,
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // manual syncs answer when the run finishes
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}
