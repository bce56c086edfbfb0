package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/resqlink/dispatch/internal/application/services"
	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/repositories"
)

// FacilityHandler handles facility directory HTTP requests
type FacilityHandler struct {
	facilityRepo repositories.FacilityRepository
	ranking      *services.RankingService
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(facilityRepo repositories.FacilityRepository, ranking *services.RankingService) *FacilityHandler {
	return &FacilityHandler{
		facilityRepo: facilityRepo,
		ranking:      ranking,
	}
}

// facilityView decorates a facility with its occupancy so operators can
// weigh fullness themselves; ranking never uses it
type facilityView struct {
	*entities.Facility
	OccupancyPercent float64 `json:"occupancy_percent"`
}

func toFacilityViews(facilities []*entities.Facility) []facilityView {
	views := make([]facilityView, len(facilities))
	for i, f := range facilities {
		views[i] = facilityView{Facility: f, OccupancyPercent: f.OccupancyPercent()}
	}
	return views
}

// ListFacilities handles GET /api/facilities
func (h *FacilityHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.facilityRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list facilities")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": toFacilityViews(facilities),
		"count":      len(facilities),
	})
}

// RankFacilities handles POST /api/facilities/rank. The body is a triage
// assessment; the response carries the recommended ordering and the
// default selection, or no default when the directory is empty.
func (h *FacilityHandler) RankFacilities(w http.ResponseWriter, r *http.Request) {
	var assessment entities.TriageAssessment
	if err := json.NewDecoder(r.Body).Decode(&assessment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid assessment payload")
		return
	}

	facilities, err := h.facilityRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list facilities")
		return
	}

	ranked := h.ranking.Rank(facilities, &assessment)

	response := map[string]interface{}{
		"facilities": toFacilityViews(ranked),
		"count":      len(ranked),
	}
	if len(ranked) > 0 {
		response["default_selection"] = ranked[0].ID
	}

	respondWithJSON(w, http.StatusOK, response)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
