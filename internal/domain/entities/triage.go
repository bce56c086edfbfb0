package entities

// Severity represents the triage severity tier assigned to a patient
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityModerate Severity = "MODERATE"
	SeverityStable   Severity = "STABLE"
)

// IsValid reports whether the severity is one of the known tiers
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityModerate, SeverityStable:
		return true
	}
	return false
}

// PatientData holds the raw field inputs collected by paramedics before
// classification. Symptoms and Vitals are free text.
type PatientData struct {
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Symptoms string `json:"symptoms"`
	Vitals   string `json:"vitals"`
}

// TriageAssessment is the structured output of patient classification.
// It is immutable once produced; trips carry their own copy.
type TriageAssessment struct {
	Severity               Severity `json:"severity"`
	Summary                string   `json:"summary"`
	RecommendedSpecialists []string `json:"recommended_specialists"`
	EquipmentNeeded        []string `json:"equipment_needed"`
}

// Clone returns a deep copy so a trip never aliases slices with the
// assessment handed in by the caller.
func (a *TriageAssessment) Clone() *TriageAssessment {
	if a == nil {
		return nil
	}
	cp := &TriageAssessment{
		Severity: a.Severity,
		Summary:  a.Summary,
	}
	if a.RecommendedSpecialists != nil {
		cp.RecommendedSpecialists = append([]string{}, a.RecommendedSpecialists...)
	}
	if a.EquipmentNeeded != nil {
		cp.EquipmentNeeded = append([]string{}, a.EquipmentNeeded...)
	}
	return cp
}
