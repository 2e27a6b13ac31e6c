package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/wishlist"
)

// WishlistHandler handles wishlist endpoints.
type WishlistHandler struct {
	wishlist *wishlist.Service
	logger   zerolog.Logger
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(wishlist *wishlist.Service, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, logger: logger}
}

// ListWishlist handles GET /v1/wishlist.
func (h *WishlistHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	list, err := h.wishlist.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, list)
}

// AddToWishlist handles POST /v1/wishlist. A trek already saved returns the
// existing item with 200 instead of 201.
func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var input models.WishlistAddRequest
	if !decode(w, r, &input) {
		return
	}

	item, created, err := h.wishlist.Add(r.Context(), userID, &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if !created {
		response.JSON(w, r, http.StatusOK, item)
		return
	}
	response.Created(w, r, "/v1/wishlist/"+item.TrekID, item)
}

// RemoveFromWishlist handles DELETE /v1/wishlist/{trekId}.
func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.wishlist.Remove(r.Context(), userID, chi.URLParam(r, "trekId")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.NoContent(w, r)
}
