package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/discovery"
	"github.com/trekscout/trekscout/internal/trek"
)

// TrekHandler handles catalog and discovery endpoints.
type TrekHandler struct {
	treks     *trek.Service
	discovery *discovery.Service
	logger    zerolog.Logger
}

// NewTrekHandler creates a new TrekHandler.
func NewTrekHandler(treks *trek.Service, discovery *discovery.Service, logger zerolog.Logger) *TrekHandler {
	return &TrekHandler{
		treks:     treks,
		discovery: discovery,
		logger:    logger,
	}
}

// ListTreks handles GET /v1/treks - the full catalog.
func (h *TrekHandler) ListTreks(w http.ResponseWriter, r *http.Request) {
	list, err := h.treks.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, list)
}

// GetTrek handles GET /v1/treks/{trekId}.
func (h *TrekHandler) GetTrek(w http.ResponseWriter, r *http.Request) {
	t, err := h.treks.Get(r.Context(), chi.URLParam(r, "trekId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, t)
}

// SearchTreks handles GET /v1/treks/search.
func (h *TrekHandler) SearchTreks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := &models.TrekSearchQuery{
		Difficulty: q.Get("difficulty"),
		Duration:   q.Get("duration"),
		Climate:    q.Get("climate"),
		Country:    q.Get("country"),
		Search:     q.Get("search"),
	}

	list, err := h.discovery.Search(r.Context(), query)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, list)
}

// Recommendations handles GET /v1/recommendations.
func (h *TrekHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	recs, err := h.discovery.Recommend(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, recs)
}
