// Package handler provides HTTP handlers for the TrekScout API.
package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/featureflags"
	"github.com/trekscout/trekscout/internal/ingest"
	"github.com/trekscout/trekscout/internal/provider/resilience"
)

// readinessTimeout bounds each dependency check.
const readinessTimeout = 2 * time.Second

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// SyncStatus exposes the outcome of the most recent catalog sync.
type SyncStatus interface {
	LastResult() *ingest.Result
}

// FlagReader reads runtime flags.
type FlagReader interface {
	IsEnabled(ctx context.Context, key string) bool
}

// OpsConfig holds the dependencies of the ops endpoints. Everything except
// the version fields is optional.
type OpsConfig struct {
	Version   string
	BuildTime string
	Checks    map[string]CheckFunc
	Providers *resilience.Registry
	Sync      SyncStatus
	Flags     FlagReader
	Logger    zerolog.Logger
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{cfg: cfg}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.cfg.Version,
			"buildTime": h.cfg.BuildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - 503 while any dependency fails.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	subsystems := h.subsystems(r.Context())

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	status := http.StatusOK
	details := make(map[string]interface{}, len(subsystems))
	for _, s := range subsystems {
		details[s.Name] = s.Status
		if s.Status == models.HealthStatusFail {
			health.Status = models.HealthStatusFail
			status = http.StatusServiceUnavailable
		}
	}
	if len(details) > 0 {
		health.Details = details
	}
	response.JSON(w, r, status, health)
}

// SystemStatus handles GET /v1/ops/status - dependency, feed and sync status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(time.Now()),
		Subsystems: h.subsystems(ctx),
		Providers:  h.providers(),
	}

	if h.cfg.Sync != nil {
		status.LastSync = ingest.ToAPIResult(h.cfg.Sync.LastResult())
	}
	if h.cfg.Flags != nil {
		for _, key := range []string{featureflags.FlagDisableRecommendations, featureflags.FlagDisableProviderSync} {
			if h.cfg.Flags.IsEnabled(ctx, key) {
				status.ActiveDegradationFlags = append(status.ActiveDegradationFlags, key)
			}
		}
	}

	for _, s := range status.Subsystems {
		if s.Status == models.HealthStatusFail {
			status.Status = models.HealthStatusFail
		}
	}
	if status.Status == models.HealthStatusOK {
		for _, p := range status.Providers {
			if p.Status != models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
			}
		}
		if len(status.ActiveDegradationFlags) > 0 {
			status.Status = models.HealthStatusDegraded
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) subsystems(ctx context.Context) []models.SubsystemStatus {
	names := make([]string, 0, len(h.cfg.Checks))
	for name := range h.cfg.Checks {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]models.SubsystemStatus, 0, len(names))
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
		err := h.cfg.Checks[name](checkCtx)
		cancel()

		s := models.SubsystemStatus{Name: name, Status: models.HealthStatusOK}
		if err != nil {
			h.cfg.Logger.Warn().Err(err).Str("subsystem", name).Msg("dependency check failed")
			detail := err.Error()
			s.Status = models.HealthStatusFail
			s.Detail = &detail
		}
		out = append(out, s)
	}
	return out
}

func (h *OpsHandler) providers() []models.ProviderStatus {
	if h.cfg.Providers == nil {
		return []models.ProviderStatus{}
	}

	all := h.cfg.Providers.GetAllHealth()
	out := make([]models.ProviderStatus, 0, len(all))
	for _, ph := range all {
		p := models.ProviderStatus{
			Provider:      ph.Name,
			Status:        models.HealthStatusOK,
			LastSuccessAt: models.TimestampPtr(ph.LastSuccessAt),
			LastFailureAt: models.TimestampPtr(ph.LastFailureAt),
		}
		switch {
		case ph.IsUnhealthy():
			p.Status = models.HealthStatusFail
		case ph.IsDegraded():
			p.Status = models.HealthStatusDegraded
		}
		if ph.LastError != "" {
			msg := ph.LastError
			p.Message = &msg
		}
		out = append(out, p)
	}
	return out
}
