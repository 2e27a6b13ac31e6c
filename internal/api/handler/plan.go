package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/plan"
)

// PlanHandler handles trek plan endpoints.
type PlanHandler struct {
	plans  *plan.Service
	logger zerolog.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plans *plan.Service, logger zerolog.Logger) *PlanHandler {
	return &PlanHandler{plans: plans, logger: logger}
}

// ListPlans handles GET /v1/plans.
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	list, err := h.plans.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, list)
}

// CreatePlan handles POST /v1/plans.
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var input models.PlanCreateRequest
	if !decode(w, r, &input) {
		return
	}

	p, err := h.plans.Create(r.Context(), userID, &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.Created(w, r, "/v1/plans/"+p.ID, p)
}

// GetPlan handles GET /v1/plans/{planId}.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	p, err := h.plans.Get(r.Context(), userID, chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

// UpdatePlan handles PATCH /v1/plans/{planId}.
func (h *PlanHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var input models.PlanUpdateRequest
	if !decode(w, r, &input) {
		return
	}

	p, err := h.plans.Update(r.Context(), userID, chi.URLParam(r, "planId"), &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

// SetChecklistItem handles PUT /v1/plans/{planId}/items/{itemId}.
func (h *PlanHandler) SetChecklistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var input models.ChecklistItemUpdateRequest
	if !decode(w, r, &input) {
		return
	}

	p, err := h.plans.SetItem(r.Context(), userID, chi.URLParam(r, "planId"), chi.URLParam(r, "itemId"), &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

// Checklist handles GET /v1/planning/checklist - the default preparation
// template new plans start from.
func (h *PlanHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.plans.Checklist())
}
