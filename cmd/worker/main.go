// Package main provides the entrypoint for the TrekScout catalog worker.
// It syncs partner treks on a schedule and on Pub/Sub request.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/middleware"
	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/app"
	"github.com/trekscout/trekscout/internal/config"
	"github.com/trekscout/trekscout/internal/featureflags"
	"github.com/trekscout/trekscout/internal/ingest"
	"github.com/trekscout/trekscout/internal/provider/resilience"
	"github.com/trekscout/trekscout/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "trekscout-worker"

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
		Str("storage", cfg.App.Storage).
		Msg("starting TrekScout worker")

	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("memory storage is private to this process; the API will not see synced treks")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	syncer, err := app.NewSyncer(cfg.Sync, stores.Catalog, cache, resilience.NewRegistry(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog syncer")
	}

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

	if cfg.PubSub.ProjectID != "" {
		trigger, err := ingest.NewPubSubTrigger(ctx, ingest.PubSubConfig{
			ProjectID:        cfg.PubSub.ProjectID,
			SubscriptionName: cfg.PubSub.Subscription,
			Runner:           syncer,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub trigger")
		}
		defer trigger.Close()

		go func() {
			if err := trigger.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("pubsub trigger stopped")
			}
		}()
		log.Info().
			Str("project", cfg.PubSub.ProjectID).
			Str("subscription", cfg.PubSub.Subscription).
			Msg("listening for sync requests")
	}

	// The worker exposes a health endpoint for its container platform.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := models.Health{
			Status: models.HealthStatusOK,
			Time:   models.Timestamp(time.Now()),
			Details: map[string]interface{}{
				"version": Version,
			},
		}
		if last := syncer.LastResult(); last != nil {
			health.Details["lastSync"] = ingest.ToAPIResult(last)
		}
		response.JSON(w, r, http.StatusOK, health)
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down worker")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
