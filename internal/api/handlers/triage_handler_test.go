package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resqlink/dispatch/internal/api/handlers"
	"github.com/resqlink/dispatch/internal/application/services"
	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/providers"
)

type stubClassifier struct {
	assessment *entities.TriageAssessment
	err        error
}

func (s *stubClassifier) Classify(ctx context.Context, patient *entities.PatientData) (*entities.TriageAssessment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assessment, nil
}

func TestTriageHandler_ClassifyPatient_Success(t *testing.T) {
	classifier := &stubClassifier{assessment: &entities.TriageAssessment{
		Severity:               entities.SeverityCritical,
		Summary:                "Suspected MI",
		RecommendedSpecialists: []string{"Cardiology"},
		EquipmentNeeded:        []string{"Defibrillator"},
	}}
	handler := handlers.NewTriageHandler(services.NewTriageService(classifier, time.Second))

	body := `{"age": 58, "gender": "male", "symptoms": "chest pain", "vitals": "BP 150/95"}`
	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ClassifyPatient(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Assessment entities.TriageAssessment `json:"assessment"`
		Degraded   bool                      `json:"degraded"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.Degraded)
	assert.Equal(t, entities.SeverityCritical, response.Assessment.Severity)
}

func TestTriageHandler_ClassifyPatient_DegradedOnClassifierFailure(t *testing.T) {
	classifier := &stubClassifier{err: providers.ErrClassificationUnavailable}
	handler := handlers.NewTriageHandler(services.NewTriageService(classifier, time.Second))

	body := `{"age": 40, "symptoms": "dizziness"}`
	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ClassifyPatient(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Assessment entities.TriageAssessment `json:"assessment"`
		Degraded   bool                      `json:"degraded"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Degraded)
	assert.Equal(t, entities.SeverityModerate, response.Assessment.Severity)
	assert.Equal(t, []string{"General ER Physician"}, response.Assessment.RecommendedSpecialists)
}

func TestTriageHandler_ClassifyPatient_RequiresSymptoms(t *testing.T) {
	handler := handlers.NewTriageHandler(services.NewTriageService(&stubClassifier{}, time.Second))

	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(`{"age": 40}`))
	w := httptest.NewRecorder()

	handler.ClassifyPatient(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriageHandler_ClassifyPatient_MalformedBody(t *testing.T) {
	handler := handlers.NewTriageHandler(services.NewTriageService(&stubClassifier{}, time.Second))

	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handler.ClassifyPatient(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
