package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/profile"
)

// ProfileHandler handles user profile endpoints.
type ProfileHandler struct {
	profiles *profile.Service
	logger   zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *profile.Service, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// GetProfile handles GET /v1/profile - the caller's trekking profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	p, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

// UpsertProfile handles POST and PUT /v1/profile - create or update profile.
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var input models.ProfileInput
	if !decode(w, r, &input) {
		return
	}

	p, err := h.profiles.Upsert(r.Context(), userID, &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}
