package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/api/middleware"
	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/response"
	"github.com/trekscout/trekscout/internal/api/validation"
	"github.com/trekscout/trekscout/internal/ingest"
	"github.com/trekscout/trekscout/internal/plan"
	"github.com/trekscout/trekscout/internal/profile"
	"github.com/trekscout/trekscout/internal/trek"
	"github.com/trekscout/trekscout/internal/wishlist"
)

// callerID returns the caller resolved by the Identity middleware.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return "", false
	}
	return userID, true
}

// decode reads the request body into dst and writes a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := response.Decode(r, dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, response.ErrEmptyBody):
		response.BadRequest(w, r, "request body is required", nil)
	default:
		response.BadRequest(w, r, "invalid JSON body", []models.FieldError{
			{Field: "body", Message: err.Error()},
		})
	}
	return false
}

// writeError maps service errors onto problem responses. Unexpected errors
// are logged and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
	case errors.Is(err, trek.ErrTrekNotFound),
		errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, wishlist.ErrItemNotFound),
		errors.Is(err, plan.ErrPlanNotFound),
		errors.Is(err, plan.ErrItemNotFound):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, ingest.ErrSyncInProgress):
		response.Conflict(w, r, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.InternalError(w, r, "internal server error")
	}
}
