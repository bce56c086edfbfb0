package gemini

import (
	"fmt"

	"github.com/resqlink/dispatch/internal/domain/entities"
)

const triagePromptTemplate = `Act as an emergency medical triage AI. Analyze the following patient data provided by paramedics.

Patient Info:
Age: %d
Gender: %s
Symptoms: %s
Vitals: %s

Provide a structured assessment including severity (CRITICAL, MODERATE, STABLE), a brief medical summary, recommended specialists, and equipment needed.`

// triageResponseSchema constrains the model to the assessment contract.
var triageResponseSchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"severity": map[string]interface{}{
			"type": "STRING",
			"enum": []string{
				string(entities.SeverityCritical),
				string(entities.SeverityModerate),
				string(entities.SeverityStable),
			},
		},
		"summary": map[string]interface{}{
			"type": "STRING",
		},
		"recommended_specialists": map[string]interface{}{
			"type":  "ARRAY",
			"items": map[string]interface{}{"type": "STRING"},
		},
		"equipment_needed": map[string]interface{}{
			"type":  "ARRAY",
			"items": map[string]interface{}{"type": "STRING"},
		},
	},
	"required": []string{"severity", "summary", "recommended_specialists", "equipment_needed"},
}

func buildTriagePrompt(patient *entities.PatientData) string {
	return fmt.Sprintf(triagePromptTemplate, patient.Age, patient.Gender, patient.Symptoms, patient.Vitals)
}
