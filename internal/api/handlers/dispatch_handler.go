package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/resqlink/dispatch/internal/api/middleware"
	"github.com/resqlink/dispatch/internal/application/services"
	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/providers"
	apperrors "github.com/resqlink/dispatch/pkg/errors"
)

// StartTripRequest is the dispatch-entry payload
type StartTripRequest struct {
	FacilityID string                     `json:"facility_id"`
	Patient    entities.PatientData       `json:"patient"`
	Assessment *entities.TriageAssessment `json:"assessment"`
}

// DispatchHandler handles trip creation requests
type DispatchHandler struct {
	dispatch  *services.DispatchService
	authorize providers.AuthorizeFunc
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(dispatch *services.DispatchService, authorize providers.AuthorizeFunc) *DispatchHandler {
	if authorize == nil {
		authorize = providers.DefaultAuthorize
	}
	return &DispatchHandler{
		dispatch:  dispatch,
		authorize: authorize,
	}
}

// StartTrip handles POST /api/dispatch
func (h *DispatchHandler) StartTrip(w http.ResponseWriter, r *http.Request) {
	role := middleware.RoleFromContext(r.Context())
	if !h.authorize(role, providers.ActionDispatch) {
		respondWithError(w, http.StatusForbidden, "role does not permit dispatch")
		return
	}

	var req StartTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid dispatch payload")
		return
	}

	trip, toll, err := h.dispatch.StartTrip(r.Context(), req.FacilityID, req.Patient, req.Assessment)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeInvalidDispatch:
				respondWithError(w, http.StatusUnprocessableEntity, appErr.Message)
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"trip": trip,
		"toll": toll,
	})
}
