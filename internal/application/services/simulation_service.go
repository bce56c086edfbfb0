package services

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/providers"
	"github.com/resqlink/dispatch/internal/domain/repositories"
	"github.com/resqlink/dispatch/internal/infrastructure/observability"
	"github.com/resqlink/dispatch/pkg/config"
	apperrors "github.com/resqlink/dispatch/pkg/errors"
)

// Heart rate volatility and clamp bands per severity. Critical trips
// drift harder and are allowed a lower floor.
const (
	hrVolatilityCritical = 4
	hrVolatilityDefault  = 2
	hrFloorCritical      = 50
	hrCeilCritical       = 160
	hrFloorDefault       = 60
	hrCeilDefault        = 140

	spo2FloorCritical = 80
	spo2FloorDefault  = 92
	spo2Ceil          = 100
)

// SimulationService is the live update scheduler. A single recurring
// ticker drives update cycles; within a cycle every non-terminal trip is
// advanced independently and the results are published to the trip store
// as one batch, so readers only ever see completed cycles.
type SimulationService struct {
	tripRepo repositories.TripRepository
	eventBus providers.EventBus
	rng      providers.RandomSource
	metrics  *observability.Metrics

	interval        time.Duration
	etaDecayMinutes float64

	quarantineMu sync.Mutex
	quarantined  map[string]struct{}

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSimulationService creates a new live update scheduler
func NewSimulationService(
	tripRepo repositories.TripRepository,
	eventBus providers.EventBus,
	rng providers.RandomSource,
	cfg config.SimulationConfig,
	metrics *observability.Metrics,
) *SimulationService {
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	decay := cfg.EtaDecayMinutes
	if decay <= 0 {
		decay = 2.0 / 60.0
	}
	return &SimulationService{
		tripRepo:        tripRepo,
		eventBus:        eventBus,
		rng:             rng,
		metrics:         metrics,
		interval:        interval,
		etaDecayMinutes: decay,
		quarantined:     make(map[string]struct{}),
	}
}

// Start begins ticking on the configured interval until Stop is called
// or the context is cancelled
func (s *SimulationService) Start(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if err := s.Tick(runCtx); err != nil {
					log.Error().Err(err).Msg("simulation tick failed")
				}
			}
		}
	}()

	log.Info().Dur("interval", s.interval).Msg("live update scheduler started")
}

// Stop halts the scheduler and waits for any in-flight tick to drain
func (s *SimulationService) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil

	log.Info().Msg("live update scheduler stopped")
}

// Tick runs one update cycle over all non-terminal trips. Per-trip
// failures quarantine that record only; they never abort the batch.
func (s *SimulationService) Tick(ctx context.Context) error {
	start := time.Now()

	active, err := s.tripRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	candidates := active[:0:0]
	for _, trip := range active {
		if !s.isQuarantined(trip.ID) {
			candidates = append(candidates, trip)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	now := time.Now()
	next := make([]*entities.Trip, len(candidates))

	// Trips never read each other's state, so the fan-out is safe; each
	// goroutine writes only its own slot.
	g, gctx := errgroup.WithContext(ctx)
	for i, trip := range candidates {
		i, trip := i, trip
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			revised, err := s.advance(trip, now)
			if err != nil {
				s.quarantine(gctx, trip, err)
				return nil
			}
			next[i] = revised
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	revisions := make([]*entities.Trip, 0, len(next))
	for _, trip := range next {
		if trip != nil {
			revisions = append(revisions, trip)
		}
	}

	if err := s.tripRepo.PublishRevisions(ctx, revisions); err != nil {
		return err
	}

	for i, revised := range next {
		if revised == nil {
			continue
		}
		eventType := entities.TripEventTypeUpdated
		if revised.Terminal() && !candidates[i].Terminal() {
			eventType = entities.TripEventTypeArrived
		}
		s.publishTripEvent(ctx, eventType, revised)
	}

	if s.metrics != nil {
		observability.RecordTickMetric(ctx, s.metrics, len(revisions), time.Since(start))
	}

	return nil
}

// advance computes the next snapshot for one trip. Re-advancing a
// terminal trip is an idempotent no-op.
func (s *SimulationService) advance(trip *entities.Trip, now time.Time) (*entities.Trip, error) {
	if trip.Terminal() {
		return trip.Clone(), nil
	}
	if err := checkTripInvariants(trip); err != nil {
		return nil, err
	}

	next := trip.Clone()

	// ETA decay, rounded to one decimal like the operator consoles show it.
	eta := math.Max(0, next.CurrentEtaMinutes-s.etaDecayMinutes)
	next.CurrentEtaMinutes = math.Round(eta*10) / 10

	if next.InitialEtaMinutes <= 0 {
		next.CurrentEtaMinutes = 0
		next.ProgressPercent = 100
	} else {
		progress := (next.InitialEtaMinutes - next.CurrentEtaMinutes) / next.InitialEtaMinutes * 100
		next.ProgressPercent = math.Min(100, progress)
	}

	s.driftVitals(next, now)

	if next.CurrentEtaMinutes == 0 {
		next.Status = entities.TripStatusArrived
		next.ProgressPercent = 100
	}

	return next, nil
}

// driftVitals applies the bounded random walk. Blood pressure is carried
// forward unchanged; that is a modeling simplification, not an oversight.
func (s *SimulationService) driftVitals(trip *entities.Trip, now time.Time) {
	critical := trip.Assessment != nil && trip.Assessment.Severity == entities.SeverityCritical

	volatility := hrVolatilityDefault
	hrFloor, hrCeil := hrFloorDefault, hrCeilDefault
	spo2Floor := spo2FloorDefault
	if critical {
		volatility = hrVolatilityCritical
		hrFloor, hrCeil = hrFloorCritical, hrCeilCritical
		spo2Floor = spo2FloorCritical
	}

	// RandomSource implementations are concurrency-safe, so parallel
	// per-trip goroutines can draw directly.
	hrDelta := s.rng.Intn(volatility) - volatility/2
	spo2Roll := s.rng.Float64()
	spo2RollUp := s.rng.Float64()

	trip.Vitals.HeartRate = clamp(trip.Vitals.HeartRate+hrDelta, hrFloor, hrCeil)

	// SpO2 barely moves: most ticks carry it forward untouched.
	spo2Delta := 0
	if spo2Roll > 0.9 {
		spo2Delta = -1
	} else if spo2RollUp > 0.9 {
		spo2Delta = 1
	}
	trip.Vitals.SpO2 = clamp(trip.Vitals.SpO2+spo2Delta, spo2Floor, spo2Ceil)

	trip.Vitals.LastUpdated = now
}

// checkTripInvariants detects impossible trip states. A violation is a
// programming error, fatal for the record but never for the batch.
func checkTripInvariants(trip *entities.Trip) error {
	switch {
	case trip.InitialEtaMinutes < 0:
		return apperrors.NewInvariantError("trip has negative initial ETA")
	case trip.CurrentEtaMinutes < 0:
		return apperrors.NewInvariantError("trip has negative current ETA")
	case trip.CurrentEtaMinutes > trip.InitialEtaMinutes:
		return apperrors.NewInvariantError("trip current ETA exceeds initial ETA")
	case trip.ProgressPercent < 0 || trip.ProgressPercent > 100:
		return apperrors.NewInvariantError("trip progress outside [0,100]")
	}
	return nil
}

func (s *SimulationService) quarantine(ctx context.Context, trip *entities.Trip, err error) {
	s.quarantineMu.Lock()
	s.quarantined[trip.ID] = struct{}{}
	s.quarantineMu.Unlock()

	log.Error().
		Err(err).
		Str("trip_id", trip.ID).
		Str("unit", trip.TransportUnitID).
		Msg("trip quarantined after invariant violation")

	if s.metrics != nil {
		observability.RecordTripFault(ctx, s.metrics, trip.ID)
	}
}

func (s *SimulationService) isQuarantined(tripID string) bool {
	s.quarantineMu.Lock()
	defer s.quarantineMu.Unlock()
	_, ok := s.quarantined[tripID]
	return ok
}

// QuarantinedTrips reports the IDs of trips excluded after invariant
// violations, for operator surfacing
func (s *SimulationService) QuarantinedTrips() []string {
	s.quarantineMu.Lock()
	defer s.quarantineMu.Unlock()

	out := make([]string, 0, len(s.quarantined))
	for id := range s.quarantined {
		out = append(out, id)
	}
	return out
}

func (s *SimulationService) publishTripEvent(ctx context.Context, eventType entities.TripEventType, trip *entities.Trip) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewTripEvent(eventType, trip)
	for _, channel := range []string{providers.EventChannelTripUpdates, providers.GetTripChannel(trip.ID)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to publish trip event")
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
