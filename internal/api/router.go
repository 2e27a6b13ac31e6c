// Package api provides the HTTP API for TrekScout.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/handler"
	"github.com/trekscout/trekscout/internal/api/middleware"
	"github.com/trekscout/trekscout/internal/discovery"
	"github.com/trekscout/trekscout/internal/featureflags"
	"github.com/trekscout/trekscout/internal/plan"
	"github.com/trekscout/trekscout/internal/profile"
	"github.com/trekscout/trekscout/internal/provider/resilience"
	"github.com/trekscout/trekscout/internal/trek"
	"github.com/trekscout/trekscout/internal/wishlist"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	// Identity resolves callers from bearer tokens.
	Tokens         middleware.TokenValidator
	AllowAnonymous bool

	TrekService        *trek.Service
	DiscoveryService   *discovery.Service
	ProfileService     *profile.Service
	WishlistService    *wishlist.Service
	PlanService        *plan.Service
	FeatureFlagService *featureflags.Service

	// Syncer backs POST /v1/admin/sync and the last sync shown by
	// /v1/ops/status. Optional.
	Syncer interface {
		handler.SyncRunner
		handler.SyncStatus
	}
	Providers *resilience.Registry
	Checks    map[string]handler.CheckFunc
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "trekscout-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // JSON request bodies

	opsConfig := handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Checks:    cfg.Checks,
		Providers: cfg.Providers,
		Logger:    cfg.Logger,
	}
	if cfg.Syncer != nil {
		opsConfig.Sync = cfg.Syncer
	}
	if cfg.FeatureFlagService != nil {
		opsConfig.Flags = cfg.FeatureFlagService
	}

	opsHandler := handler.NewOpsHandler(opsConfig)
	trekHandler := handler.NewTrekHandler(cfg.TrekService, cfg.DiscoveryService, cfg.Logger)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService, cfg.Logger)
	wishlistHandler := handler.NewWishlistHandler(cfg.WishlistService, cfg.Logger)
	planHandler := handler.NewPlanHandler(cfg.PlanService, cfg.Logger)
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService, cfg.Logger)

	identity := middleware.Identity(middleware.IdentityConfig{
		Tokens:         cfg.Tokens,
		AllowAnonymous: cfg.AllowAnonymous,
	})

	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min
	userRateLimit := middleware.RateLimitByUser(middleware.StandardRateLimit)     // 100 req/min per user

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.With(identity).Get("/status", opsHandler.SystemStatus)
		})

		// Catalog endpoints (public)
		r.Route("/treks", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", trekHandler.ListTreks)
			r.With(expensiveRateLimit).Get("/search", trekHandler.SearchTreks)
			r.With(standardRateLimit).Get("/{trekId}", trekHandler.GetTrek)
		})

		r.With(standardRateLimit).Get("/planning/checklist", planHandler.Checklist)

		// Caller endpoints - user-based rate limiting
		r.Group(func(r chi.Router) {
			r.Use(identity)
			r.Use(userRateLimit)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Put("/", profileHandler.UpsertProfile)
				r.Post("/", profileHandler.UpsertProfile)
			})

			r.With(expensiveRateLimit).Get("/recommendations", trekHandler.Recommendations)

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.ListWishlist)
				r.Post("/", wishlistHandler.AddToWishlist)
				r.Delete("/{trekId}", wishlistHandler.RemoveFromWishlist)
			})

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", planHandler.ListPlans)
				r.Post("/", planHandler.CreatePlan)
				r.Route("/{planId}", func(r chi.Router) {
					r.Get("/", planHandler.GetPlan)
					r.Patch("/", planHandler.UpdatePlan)
					r.Put("/items/{itemId}", planHandler.SetChecklistItem)
				})
			})
		})

		// Admin endpoints (token required)
		r.Route("/admin", func(r chi.Router) {
			r.Use(identity)
			r.Use(middleware.RequireAuthenticated)
			r.Use(middleware.RateLimitByUser(middleware.AdminRateLimit)) // 10 req/min per user

			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
			})

			if cfg.Syncer != nil {
				r.Post("/sync", handler.NewSyncHandler(cfg.Syncer, cfg.Logger).RunSync)
			}
		})
	})

	return r
}
