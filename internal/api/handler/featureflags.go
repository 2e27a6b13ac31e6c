package handler

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/middleware"
	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/api/validation"
	"github.com/trekscout/trekscout/internal/featureflags"
)

// FeatureFlagsHandler handles feature flag endpoints.
type FeatureFlagsHandler struct {
	service *featureflags.Service
	logger  zerolog.Logger
}

// NewFeatureFlagsHandler creates a new FeatureFlagsHandler.
func NewFeatureFlagsHandler(service *featureflags.Service, logger zerolog.Logger) *FeatureFlagsHandler {
	return &FeatureFlagsHandler{service: service, logger: logger}
}

// ListFeatureFlags handles GET /v1/admin/feature-flags - list all feature flags.
func (h *FeatureFlagsHandler) ListFeatureFlags(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.list(r))
}

// UpsertFeatureFlags handles PUT /v1/admin/feature-flags - update feature flags.
func (h *FeatureFlagsHandler) UpsertFeatureFlags(w http.ResponseWriter, r *http.Request) {
	var input featureflags.FlagUpdateRequest
	if !decode(w, r, &input) {
		return
	}
	if fieldErrors := validation.Struct(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	flags := make([]*featureflags.Flag, 0, len(input.Updates))
	for _, u := range input.Updates {
		flags = append(flags, &featureflags.Flag{Key: u.Key, Value: u.Value})
	}
	if err := h.service.SetFlags(r.Context(), flags); err != nil {
		var invalid *featureflags.InvalidFlagError
		if errors.As(err, &invalid) {
			response.BadRequest(w, r, "validation failed", []models.FieldError{{
				Field:   fmt.Sprintf("updates[%d].%s", invalid.Index, invalid.Field),
				Message: invalid.Reason,
			}})
			return
		}
		writeError(w, r, h.logger, err)
		return
	}

	keys := make([]string, len(flags))
	for i, f := range flags {
		keys[i] = f.Key
	}
	h.logger.Info().
		Str("user_id", middleware.GetUserID(r.Context())).
		Strs("flags", keys).
		Str("reason", input.Reason).
		Msg("feature flags updated")

	response.JSON(w, r, http.StatusOK, h.list(r))
}

// InvalidateCache handles POST /v1/admin/feature-flags/invalidate - drop the
// in-process flag cache.
func (h *FeatureFlagsHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateCache()
	response.NoContent(w, r)
}

func (h *FeatureFlagsHandler) list(r *http.Request) featureflags.FlagList {
	all := h.service.GetAllFlags(r.Context())
	items := make([]featureflags.Flag, 0, len(all))
	for _, f := range all {
		items = append(items, *f)
	}
	slices.SortFunc(items, func(a, b featureflags.Flag) int {
		return strings.Compare(a.Key, b.Key)
	})
	return featureflags.FlagList{Items: items}
}
