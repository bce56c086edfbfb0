package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resqlink/dispatch/internal/adapters/database"
	"github.com/resqlink/dispatch/internal/adapters/memory"
	"github.com/resqlink/dispatch/internal/application/services"
	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/providers"
	"github.com/resqlink/dispatch/pkg/config"
)

func newSimFixture(t *testing.T, decayMinutes float64, rng *scriptedRandom) (*services.SimulationService, *memory.TripStore) {
	t.Helper()
	store := memory.NewTripStore()
	cfg := config.SimulationConfig{
		TickInterval:    10 * time.Millisecond,
		EtaDecayMinutes: decayMinutes,
	}
	return services.NewSimulationService(store, nil, rng, cfg, nil), store
}

func seedTrip(t *testing.T, store *memory.TripStore, id string, etaMinutes float64, severity entities.Severity) *entities.Trip {
	t.Helper()
	trip := &entities.Trip{
		ID:              id,
		TransportUnitID: "AMB-101",
		FacilityID:      "h1",
		Assessment: &entities.TriageAssessment{
			Severity: severity,
			Summary:  "test assessment",
		},
		CreatedAt:         time.Now(),
		InitialEtaMinutes: etaMinutes,
		CurrentEtaMinutes: etaMinutes,
		Status:            entities.TripStatusEnRoute,
		Vitals: entities.VitalsSnapshot{
			HeartRate:   110,
			SpO2:        92,
			BPSystolic:  120,
			BPDiastolic: 80,
		},
	}
	require.NoError(t, store.Add(context.Background(), trip))
	return trip
}

func TestSimulationService_TickDecaysEtaAndAdvancesProgress(t *testing.T) {
	sim, store := newSimFixture(t, 2.0, &scriptedRandom{})
	seedTrip(t, store, "trip-1", 10, entities.SeverityModerate)

	require.NoError(t, sim.Tick(context.Background()))

	trip, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 8.0, trip.CurrentEtaMinutes)
	assert.Equal(t, 20.0, trip.ProgressPercent)
	assert.Equal(t, entities.TripStatusEnRoute, trip.Status)
	assert.False(t, trip.Vitals.LastUpdated.IsZero())
}

func TestSimulationService_TripArrivesAfterFullDecay(t *testing.T) {
	sim, store := newSimFixture(t, 2.0, &scriptedRandom{})
	seedTrip(t, store, "trip-1", 10, entities.SeverityModerate)

	for i := 0; i < 5; i++ {
		require.NoError(t, sim.Tick(context.Background()))
	}

	trip, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, trip.CurrentEtaMinutes)
	assert.Equal(t, 100.0, trip.ProgressPercent)
	assert.Equal(t, entities.TripStatusArrived, trip.Status)
}

func TestSimulationService_ArrivedTripIsFrozen(t *testing.T) {
	sim, store := newSimFixture(t, 2.0, &scriptedRandom{ints: []int{3}, floats: []float64{0.95}})
	seedTrip(t, store, "trip-1", 10, entities.SeverityCritical)

	for i := 0; i < 5; i++ {
		require.NoError(t, sim.Tick(context.Background()))
	}

	arrived, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	require.Equal(t, entities.TripStatusArrived, arrived.Status)

	for i := 0; i < 10; i++ {
		require.NoError(t, sim.Tick(context.Background()))
	}

	after, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, arrived.CurrentEtaMinutes, after.CurrentEtaMinutes)
	assert.Equal(t, arrived.ProgressPercent, after.ProgressPercent)
	assert.Equal(t, arrived.Vitals, after.Vitals)
}

func TestSimulationService_ArrivalEventPublishedOnce(t *testing.T) {
	bus := newRecordingEventBus()
	store := memory.NewTripStore()
	cfg := config.SimulationConfig{TickInterval: 10 * time.Millisecond, EtaDecayMinutes: 10}
	sim := services.NewSimulationService(store, bus, &scriptedRandom{}, cfg, nil)

	seedTrip(t, store, "trip-1", 10, entities.SeverityStable)

	require.NoError(t, sim.Tick(context.Background()))
	require.NoError(t, sim.Tick(context.Background()))

	var arrivals int
	for _, event := range bus.events("trips:updates") {
		if event.EventType == entities.TripEventTypeArrived {
			arrivals++
		}
	}
	assert.Equal(t, 1, arrivals)
}

func TestSimulationService_InvariantViolationQuarantinesOnlyThatTrip(t *testing.T) {
	sim, store := newSimFixture(t, 2.0, &scriptedRandom{})
	healthy := seedTrip(t, store, "trip-ok", 10, entities.SeverityModerate)

	bad := seedTrip(t, store, "trip-bad", 10, entities.SeverityModerate)
	bad.CurrentEtaMinutes = 20 // exceeds initial
	require.NoError(t, store.PublishRevisions(context.Background(), []*entities.Trip{bad}))

	require.NoError(t, sim.Tick(context.Background()))

	// The healthy trip advanced.
	got, err := store.GetByID(context.Background(), healthy.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.CurrentEtaMinutes)

	// The malformed one was excluded and reported, not silently dropped.
	assert.Contains(t, sim.QuarantinedTrips(), "trip-bad")

	stale, err := store.GetByID(context.Background(), "trip-bad")
	require.NoError(t, err)
	assert.Equal(t, 20.0, stale.CurrentEtaMinutes)

	// Later ticks skip the quarantined record entirely.
	require.NoError(t, sim.Tick(context.Background()))
	stale, err = store.GetByID(context.Background(), "trip-bad")
	require.NoError(t, err)
	assert.Equal(t, 20.0, stale.CurrentEtaMinutes)
}

func TestSimulationService_ZeroInitialEtaArrivesImmediately(t *testing.T) {
	sim, store := newSimFixture(t, 2.0, &scriptedRandom{})
	seedTrip(t, store, "trip-1", 0, entities.SeverityModerate)

	require.NoError(t, sim.Tick(context.Background()))

	trip, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, trip.CurrentEtaMinutes)
	assert.Equal(t, 100.0, trip.ProgressPercent)
	assert.Equal(t, entities.TripStatusArrived, trip.Status)
}

func TestSimulationService_HeartRateClampedCritical(t *testing.T) {
	// Intn(4) always returns 3: +1 drift per tick. Floats below the
	// 0.9 threshold keep SpO2 untouched.
	sim, store := newSimFixture(t, 0.001, &scriptedRandom{ints: []int{3}, floats: []float64{0.1}})
	seedTrip(t, store, "trip-1", 10000, entities.SeverityCritical)

	for i := 0; i < 100; i++ {
		require.NoError(t, sim.Tick(context.Background()))
	}

	trip, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 160, trip.Vitals.HeartRate)
	assert.Equal(t, 92, trip.Vitals.SpO2)
}

func TestSimulationService_HeartRateClampedAtFloor(t *testing.T) {
	// Intn always returns 0: -2 drift per tick for critical volatility.
	sim, store := newSimFixture(t, 0.001, &scriptedRandom{ints: []int{0}, floats: []float64{0.1}})
	seedTrip(t, store, "trip-1", 10000, entities.SeverityCritical)

	for i := 0; i < 100; i++ {
		require.NoError(t, sim.Tick(context.Background()))
	}

	trip, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 50, trip.Vitals.HeartRate)
}

func TestSimulationService_SpO2ClampedAtSeverityFloor(t *testing.T) {
	// First float per tick exceeds 0.9, so SpO2 drops by 1 each tick
	// until the critical floor.
	sim, store := newSimFixture(t, 0.001, &scriptedRandom{ints: []int{2}, floats: []float64{0.95, 0.1}})
	seedTrip(t, store, "trip-1", 10000, entities.SeverityCritical)

	for i := 0; i < 50; i++ {
		require.NoError(t, sim.Tick(context.Background()))
	}

	trip, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 80, trip.Vitals.SpO2)
}

func TestSimulationService_BoundsHoldOverArbitraryTicks(t *testing.T) {
	rng := &scriptedRandom{ints: []int{0, 1, 2, 3}, floats: []float64{0.05, 0.95, 0.5, 0.92}}
	sim, store := newSimFixture(t, 0.7, rng)
	seedTrip(t, store, "critical", 30, entities.SeverityCritical)
	seedTrip(t, store, "stable", 12, entities.SeverityStable)

	for i := 0; i < 80; i++ {
		require.NoError(t, sim.Tick(context.Background()))

		trips, err := store.List(context.Background())
		require.NoError(t, err)
		for _, trip := range trips {
			assert.GreaterOrEqual(t, trip.CurrentEtaMinutes, 0.0)
			assert.LessOrEqual(t, trip.CurrentEtaMinutes, trip.InitialEtaMinutes)
			assert.GreaterOrEqual(t, trip.ProgressPercent, 0.0)
			assert.LessOrEqual(t, trip.ProgressPercent, 100.0)
			assert.Equal(t, trip.Status == entities.TripStatusArrived, trip.CurrentEtaMinutes == 0)

			if trip.Assessment.Severity == entities.SeverityCritical {
				assert.GreaterOrEqual(t, trip.Vitals.HeartRate, 50)
				assert.LessOrEqual(t, trip.Vitals.HeartRate, 160)
				assert.GreaterOrEqual(t, trip.Vitals.SpO2, 80)
			} else {
				assert.GreaterOrEqual(t, trip.Vitals.HeartRate, 60)
				assert.LessOrEqual(t, trip.Vitals.HeartRate, 140)
				assert.GreaterOrEqual(t, trip.Vitals.SpO2, 92)
			}
			assert.LessOrEqual(t, trip.Vitals.SpO2, 100)

			// Blood pressure carries forward unchanged.
			assert.Equal(t, 120, trip.Vitals.BPSystolic)
			assert.Equal(t, 80, trip.Vitals.BPDiastolic)
		}
	}
}

func TestSimulationService_ConcurrentDispatchDuringTicks(t *testing.T) {
	// Dispatch and the scheduler share one seeded source, like cmd/api
	// wires them. Draws land from handler goroutines while a tick's
	// fan-out is in flight.
	rng := providers.NewRandomSource(1)
	store := memory.NewTripStore()
	tollLog := memory.NewTollLog()
	dispatch := services.NewDispatchService(database.NewStaticFacilityAdapter(), store, tollLog, nil, rng)
	cfg := config.SimulationConfig{TickInterval: time.Millisecond, EtaDecayMinutes: 0.5}
	sim := services.NewSimulationService(store, nil, rng, cfg, nil)

	sim.Start(context.Background())

	var wg sync.WaitGroup
	assessment := &entities.TriageAssessment{
		Severity:               entities.SeverityCritical,
		RecommendedSpecialists: []string{"Cardiology"},
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, _, err := dispatch.StartTrip(context.Background(), "h1", entities.PatientData{Symptoms: "chest pain"}, assessment)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	sim.Stop()

	trips, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, trips, 160)

	tolls, err := tollLog.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tolls, 160)
}

func TestSimulationService_StartAndStopDrainCleanly(t *testing.T) {
	sim, store := newSimFixture(t, 2.0, &scriptedRandom{})
	seedTrip(t, store, "trip-1", 10, entities.SeverityModerate)

	sim.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	sim.Stop()

	trip, err := store.GetByID(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Less(t, trip.CurrentEtaMinutes, 10.0)

	// Stop is idempotent and a second Start works after a Stop.
	sim.Stop()
	sim.Start(context.Background())
	sim.Stop()
}
