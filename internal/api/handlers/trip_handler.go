package handlers

import (
	"net/http"

	"github.com/resqlink/dispatch/internal/api/middleware"
	"github.com/resqlink/dispatch/internal/domain/providers"
	"github.com/resqlink/dispatch/internal/domain/repositories"
	apperrors "github.com/resqlink/dispatch/pkg/errors"
)

// TripHandler handles read access to live trip snapshots
type TripHandler struct {
	tripRepo  repositories.TripRepository
	authorize providers.AuthorizeFunc
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripRepo repositories.TripRepository, authorize providers.AuthorizeFunc) *TripHandler {
	if authorize == nil {
		authorize = providers.DefaultAuthorize
	}
	return &TripHandler{
		tripRepo:  tripRepo,
		authorize: authorize,
	}
}

// ListTrips handles GET /api/trips. Responses are snapshots from the
// most recently completed update cycle; consumers must treat them as
// immutable.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	role := middleware.RoleFromContext(r.Context())
	if !h.authorize(role, providers.ActionViewTrips) {
		respondWithError(w, http.StatusForbidden, "role does not permit viewing trips")
		return
	}

	trips, err := h.tripRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list trips")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trips": trips,
		"count": len(trips),
	})
}

// GetTrip handles GET /api/trips/{id}
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	role := middleware.RoleFromContext(r.Context())
	if !h.authorize(role, providers.ActionViewTrips) {
		respondWithError(w, http.StatusForbidden, "role does not permit viewing trips")
		return
	}

	tripID := r.PathValue("id")
	if tripID == "" {
		respondWithError(w, http.StatusBadRequest, "trip ID is required")
		return
	}

	trip, err := h.tripRepo.GetByID(r.Context(), tripID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, trip)
}
