package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/middleware"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/ingest"
)

// SyncRunner runs a catalog sync unless one is already running.
type SyncRunner interface {
	TryRun(ctx context.Context) (*ingest.Result, error)
}

// SyncHandler handles the manual catalog sync endpoint.
type SyncHandler struct {
	runner SyncRunner
	logger zerolog.Logger
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(runner SyncRunner, logger zerolog.Logger) *SyncHandler {
	return &SyncHandler{runner: runner, logger: logger}
}

// RunSync handles POST /v1/admin/sync. It answers 409 while another sync
// is running.
func (h *SyncHandler) RunSync(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().
		Str("user_id", middleware.GetUserID(r.Context())).
		Msg("manual catalog sync requested")

	// A client disconnect must not abort a half-applied sync.
	result, err := h.runner.TryRun(context.WithoutCancel(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, ingest.ToAPIResult(result))
}
