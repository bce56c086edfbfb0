package gemini

import (
	"testing"

	"github.com/resqlink/dispatch/internal/domain/entities"
)

func TestParseAssessmentPayload_ValidResponse(t *testing.T) {
	raw := `{
		"severity": "CRITICAL",
		"summary": "Probable myocardial infarction. Immediate cath lab activation advised.",
		"recommended_specialists": ["Cardiology", "Critical Care"],
		"equipment_needed": ["Defibrillator", "12-lead ECG"]
	}`

	assessment, err := parseAssessmentPayload([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.Severity != entities.SeverityCritical {
		t.Errorf("expected CRITICAL severity, got %s", assessment.Severity)
	}
	if len(assessment.RecommendedSpecialists) != 2 {
		t.Errorf("expected 2 specialists, got %d", len(assessment.RecommendedSpecialists))
	}
	if assessment.RecommendedSpecialists[0] != "Cardiology" {
		t.Errorf("expected Cardiology first, got %s", assessment.RecommendedSpecialists[0])
	}
	if len(assessment.EquipmentNeeded) != 2 {
		t.Errorf("expected 2 equipment entries, got %d", len(assessment.EquipmentNeeded))
	}
}

func TestParseAssessmentPayload_LowercaseSeverityNormalized(t *testing.T) {
	raw := `{"severity": "moderate", "summary": "Stable vitals, needs observation."}`

	assessment, err := parseAssessmentPayload([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.Severity != entities.SeverityModerate {
		t.Errorf("expected MODERATE severity, got %s", assessment.Severity)
	}
}

func TestParseAssessmentPayload_UnknownSeverity(t *testing.T) {
	raw := `{"severity": "SEVERE", "summary": "text"}`

	if _, err := parseAssessmentPayload([]byte(raw)); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}

func TestParseAssessmentPayload_EmptySummary(t *testing.T) {
	raw := `{"severity": "STABLE", "summary": ""}`

	if _, err := parseAssessmentPayload([]byte(raw)); err == nil {
		t.Fatal("expected error for empty summary")
	}
}

func TestParseAssessmentPayload_MalformedJSON(t *testing.T) {
	if _, err := parseAssessmentPayload([]byte("```json not valid")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
