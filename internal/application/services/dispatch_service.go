package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/providers"
	"github.com/resqlink/dispatch/internal/domain/repositories"
	apperrors "github.com/resqlink/dispatch/pkg/errors"
)

// tollPoints is the fixed catalog of control points notified on dispatch
var tollPoints = []string{
	"Skyline Bridge Toll",
	"Downtown Tunnel Gate",
	"Highway 101 Express",
}

const emergencyLane = "Emergency Lane 1"

// Initial vitals seeded from assessed severity. Critical patients start
// elevated; everyone gets the nominal 120/80 pressure baseline.
const (
	initialHeartRateCritical = 110
	initialHeartRateDefault  = 85
	initialSpO2Critical      = 92
	initialSpO2Default       = 98
	initialBPSystolic        = 120
	initialBPDiastolic       = 80
)

// DispatchService owns the trip lifecycle: it creates trips from
// confirmed (facility, patient, assessment) triples and records the toll
// clearance notification that accompanies every dispatch.
type DispatchService struct {
	facilityRepo repositories.FacilityRepository
	tripRepo     repositories.TripRepository
	tollRepo     repositories.TollNotificationRepository
	eventBus     providers.EventBus
	rng          providers.RandomSource
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(
	facilityRepo repositories.FacilityRepository,
	tripRepo repositories.TripRepository,
	tollRepo repositories.TollNotificationRepository,
	eventBus providers.EventBus,
	rng providers.RandomSource,
) *DispatchService {
	return &DispatchService{
		facilityRepo: facilityRepo,
		tripRepo:     tripRepo,
		tollRepo:     tollRepo,
		eventBus:     eventBus,
		rng:          rng,
	}
}

// StartTrip creates a trip to the confirmed facility and, as part of the
// same dispatch, exactly one toll clearance notification. A missing
// assessment or a facility outside the directory is rejected with an
// invalid dispatch error and no state change.
func (s *DispatchService) StartTrip(ctx context.Context, facilityID string, patient entities.PatientData, assessment *entities.TriageAssessment) (*entities.Trip, *entities.TollNotification, error) {
	if facilityID == "" {
		return nil, nil, apperrors.NewInvalidDispatchError("no destination facility selected")
	}
	if assessment == nil {
		return nil, nil, apperrors.NewInvalidDispatchError("a completed triage assessment is required before dispatch")
	}

	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return nil, nil, apperrors.NewInvalidDispatchError("facility is not in the dispatch directory")
		}
		return nil, nil, err
	}

	now := time.Now()
	trip := &entities.Trip{
		ID:                uuid.NewString(),
		TransportUnitID:   fmt.Sprintf("AMB-%d", s.rng.Intn(900)+100),
		FacilityID:        facility.ID,
		PatientSummary:    patient,
		Assessment:        assessment.Clone(),
		CreatedAt:         now,
		InitialEtaMinutes: facility.EtaMinutes,
		CurrentEtaMinutes: facility.EtaMinutes,
		ProgressPercent:   0,
		Status:            entities.TripStatusEnRoute,
		Vitals:            seedVitals(assessment.Severity, now),
	}

	toll := &entities.TollNotification{
		ID:              uuid.NewString(),
		TollName:        tollPoints[s.rng.Intn(len(tollPoints))],
		TransportUnitID: trip.TransportUnitID,
		Lane:            emergencyLane,
		CreatedAt:       now,
		Cleared:         true,
	}

	if err := s.tripRepo.Add(ctx, trip); err != nil {
		return nil, nil, err
	}
	if err := s.tollRepo.Append(ctx, toll); err != nil {
		return nil, nil, err
	}

	s.publishDispatchEvents(ctx, trip, toll)

	log.Info().
		Str("trip_id", trip.ID).
		Str("unit", trip.TransportUnitID).
		Str("facility_id", facility.ID).
		Str("severity", string(assessment.Severity)).
		Float64("eta_minutes", trip.InitialEtaMinutes).
		Msg("trip dispatched")

	return trip, toll, nil
}

func (s *DispatchService) publishDispatchEvents(ctx context.Context, trip *entities.Trip, toll *entities.TollNotification) {
	if s.eventBus == nil {
		return
	}

	created := entities.NewTripEvent(entities.TripEventTypeCreated, trip.Clone())
	for _, channel := range []string{providers.EventChannelTripUpdates, providers.GetTripChannel(trip.ID)} {
		if err := s.eventBus.Publish(ctx, channel, created); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to publish trip created event")
		}
	}

	cleared := entities.NewTollEvent(trip.ID, toll)
	if err := s.eventBus.Publish(ctx, providers.EventChannelTollUpdates, cleared); err != nil {
		log.Warn().Err(err).Msg("failed to publish toll cleared event")
	}
}

func seedVitals(severity entities.Severity, now time.Time) entities.VitalsSnapshot {
	vitals := entities.VitalsSnapshot{
		HeartRate:   initialHeartRateDefault,
		SpO2:        initialSpO2Default,
		BPSystolic:  initialBPSystolic,
		BPDiastolic: initialBPDiastolic,
		LastUpdated: now,
	}
	if severity == entities.SeverityCritical {
		vitals.HeartRate = initialHeartRateCritical
		vitals.SpO2 = initialSpO2Critical
	}
	return vitals
}
