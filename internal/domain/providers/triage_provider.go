package providers

import (
	"context"
	"errors"

	"github.com/resqlink/dispatch/internal/domain/entities"
)

// ErrClassificationUnavailable indicates the external classifier failed or
// returned unparsable output. Callers recover by substituting the degraded
// assessment; dispatch is never blocked on classifier availability.
var ErrClassificationUnavailable = errors.New("triage classification unavailable")

// TriageProvider defines the interface to the external patient classifier
type TriageProvider interface {
	// Classify turns free-text patient data into a structured assessment
	Classify(ctx context.Context, patient *entities.PatientData) (*entities.TriageAssessment, error)
}

// DegradedAssessment returns the fixed fallback assessment used when the
// classifier is unavailable. Its shape is indistinguishable from a
// classifier-produced one so downstream consumers need no special casing.
func DegradedAssessment() *entities.TriageAssessment {
	return &entities.TriageAssessment{
		Severity:               entities.SeverityModerate,
		Summary:                "Automated triage unavailable. Proceed with standard emergency protocols.",
		RecommendedSpecialists: []string{"General ER Physician"},
		EquipmentNeeded:        []string{"Standard ER Kit"},
	}
}
