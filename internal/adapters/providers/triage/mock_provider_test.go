package triage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resqlink/dispatch/internal/adapters/providers/triage"
	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/pkg/config"
)

func TestMockTriageProvider_CriticalKeywords(t *testing.T) {
	provider := triage.NewMockTriageProvider()

	assessment, err := provider.Classify(context.Background(), &entities.PatientData{
		Age:      58,
		Symptoms: "sudden chest pain radiating to left arm",
	})

	require.NoError(t, err)
	assert.Equal(t, entities.SeverityCritical, assessment.Severity)
	assert.Contains(t, assessment.RecommendedSpecialists, "Cardiology")
}

func TestMockTriageProvider_ModerateKeywords(t *testing.T) {
	provider := triage.NewMockTriageProvider()

	assessment, err := provider.Classify(context.Background(), &entities.PatientData{
		Age:      30,
		Symptoms: "suspected wrist fracture after fall",
	})

	require.NoError(t, err)
	assert.Equal(t, entities.SeverityModerate, assessment.Severity)
}

func TestMockTriageProvider_DefaultsToStable(t *testing.T) {
	provider := triage.NewMockTriageProvider()

	assessment, err := provider.Classify(context.Background(), &entities.PatientData{
		Age:      25,
		Symptoms: "mild headache",
	})

	require.NoError(t, err)
	assert.Equal(t, entities.SeverityStable, assessment.Severity)
	assert.True(t, assessment.Severity.IsValid())
}

func TestMockTriageProvider_MatchesAcrossSymptomAndVitalsText(t *testing.T) {
	provider := triage.NewMockTriageProvider()

	assessment, err := provider.Classify(context.Background(), &entities.PatientData{
		Symptoms: "collapsed at home",
		Vitals:   "unresponsive, pulse weak",
	})

	require.NoError(t, err)
	assert.Equal(t, entities.SeverityCritical, assessment.Severity)
}

func TestNewTriageProvider_FallsBackToMockWithoutAPIKey(t *testing.T) {
	provider := triage.NewTriageProvider(&config.GeminiConfig{})

	assessment, err := provider.Classify(context.Background(), &entities.PatientData{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, entities.SeverityModerate, assessment.Severity)
}
