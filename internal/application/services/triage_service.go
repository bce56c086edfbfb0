package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/providers"
)

const defaultClassifyTimeout = 20 * time.Second

// TriageService wraps the external classifier. Dispatch must never be
// blocked by classifier unavailability, so classification failures and
// timeouts are recovered locally with the fixed degraded assessment.
type TriageService struct {
	provider providers.TriageProvider
	timeout  time.Duration
}

// NewTriageService creates a new triage service
func NewTriageService(provider providers.TriageProvider, timeout time.Duration) *TriageService {
	if timeout <= 0 {
		timeout = defaultClassifyTimeout
	}
	return &TriageService{
		provider: provider,
		timeout:  timeout,
	}
}

// Classify produces a triage assessment for the patient. It always
// returns a usable assessment; the boolean reports whether the degraded
// fallback was substituted.
func (s *TriageService) Classify(ctx context.Context, patient *entities.PatientData) (*entities.TriageAssessment, bool) {
	if s.provider == nil || patient == nil {
		return providers.DegradedAssessment(), true
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assessment, err := s.provider.Classify(ctx, patient)
	if err != nil {
		log.Warn().Err(err).Msg("classifier unavailable; substituting degraded assessment")
		return providers.DegradedAssessment(), true
	}
	if assessment == nil || !assessment.Severity.IsValid() {
		log.Warn().Msg("classifier returned unusable assessment; substituting degraded assessment")
		return providers.DegradedAssessment(), true
	}

	return assessment, false
}
