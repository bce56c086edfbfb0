package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/resqlink/dispatch/internal/application/services"
	"github.com/resqlink/dispatch/internal/domain/entities"
)

// TriageHandler handles patient classification requests
type TriageHandler struct {
	triage *services.TriageService
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(triage *services.TriageService) *TriageHandler {
	return &TriageHandler{triage: triage}
}

// ClassifyPatient handles POST /api/triage. The endpoint never fails on
// classifier problems; the degraded assessment is returned instead so
// dispatch can always proceed.
func (h *TriageHandler) ClassifyPatient(w http.ResponseWriter, r *http.Request) {
	var patient entities.PatientData
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid patient payload")
		return
	}

	if patient.Symptoms == "" {
		respondWithError(w, http.StatusBadRequest, "patient symptoms are required")
		return
	}

	assessment, degraded := h.triage.Classify(r.Context(), &patient)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"assessment": assessment,
		"degraded":   degraded,
	})
}
