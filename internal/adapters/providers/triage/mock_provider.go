package triage

import (
	"context"
	"strings"

	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/providers"
)

// MockTriageProvider implements a deterministic keyword-based classifier
// for development and testing
type MockTriageProvider struct{}

// NewMockTriageProvider creates a new mock triage provider
func NewMockTriageProvider() providers.TriageProvider {
	return &MockTriageProvider{}
}

// Classify assigns a severity from simple keyword heuristics
func (m *MockTriageProvider) Classify(ctx context.Context, patient *entities.PatientData) (*entities.TriageAssessment, error) {
	text := strings.ToLower(patient.Symptoms + " " + patient.Vitals)

	critical := []string{"unresponsive", "unconscious", "cardiac arrest", "not breathing", "severe bleeding", "chest pain", "stroke"}
	for _, kw := range critical {
		if strings.Contains(text, kw) {
			return &entities.TriageAssessment{
				Severity:               entities.SeverityCritical,
				Summary:                "Patient presents with signs of a life-threatening condition. Immediate intervention required.",
				RecommendedSpecialists: []string{"Cardiology", "Trauma Surgeon"},
				EquipmentNeeded:        []string{"Defibrillator", "Oxygen", "IV Access"},
			}, nil
		}
	}

	moderate := []string{"fracture", "laceration", "shortness of breath", "fever", "vomiting", "abdominal pain"}
	for _, kw := range moderate {
		if strings.Contains(text, kw) {
			return &entities.TriageAssessment{
				Severity:               entities.SeverityModerate,
				Summary:                "Patient requires prompt evaluation but is hemodynamically stable.",
				RecommendedSpecialists: []string{"General ER Physician"},
				EquipmentNeeded:        []string{"Standard ER Kit", "Splint"},
			}, nil
		}
	}

	return &entities.TriageAssessment{
		Severity:               entities.SeverityStable,
		Summary:                "Patient is stable with minor complaints. Routine transport protocols apply.",
		RecommendedSpecialists: []string{"General ER Physician"},
		EquipmentNeeded:        []string{"Standard ER Kit"},
	}, nil
}
