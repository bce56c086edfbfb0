package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resqlink/dispatch/internal/adapters/memory"
	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/repositories"
)

// The in-memory stores must keep satisfying the repository ports.
var (
	_ repositories.TripRepository             = (*memory.TripStore)(nil)
	_ repositories.TollNotificationRepository = (*memory.TollLog)(nil)
)

func makeTrip(id string, eta float64) *entities.Trip {
	return &entities.Trip{
		ID:                id,
		TransportUnitID:   "AMB-200",
		FacilityID:        "h1",
		Assessment:        &entities.TriageAssessment{Severity: entities.SeverityModerate},
		InitialEtaMinutes: eta,
		CurrentEtaMinutes: eta,
		Status:            entities.TripStatusEnRoute,
	}
}

func TestTripStore_AddAndGet(t *testing.T) {
	store := memory.NewTripStore()

	require.NoError(t, store.Add(context.Background(), makeTrip("t1", 10)))

	trip, err := store.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", trip.ID)

	_, err = store.GetByID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestTripStore_AddRejectsDuplicatesAndEmptyIDs(t *testing.T) {
	store := memory.NewTripStore()

	require.NoError(t, store.Add(context.Background(), makeTrip("t1", 10)))
	assert.Error(t, store.Add(context.Background(), makeTrip("t1", 10)))
	assert.Error(t, store.Add(context.Background(), makeTrip("", 10)))
	assert.Error(t, store.Add(context.Background(), nil))
}

func TestTripStore_ListNewestFirst(t *testing.T) {
	store := memory.NewTripStore()

	require.NoError(t, store.Add(context.Background(), makeTrip("t1", 10)))
	require.NoError(t, store.Add(context.Background(), makeTrip("t2", 15)))

	trips, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "t2", trips[0].ID)
	assert.Equal(t, "t1", trips[1].ID)
}

func TestTripStore_ListActiveExcludesTerminal(t *testing.T) {
	store := memory.NewTripStore()

	require.NoError(t, store.Add(context.Background(), makeTrip("t1", 10)))

	arrived := makeTrip("t2", 5)
	arrived.Status = entities.TripStatusArrived
	arrived.CurrentEtaMinutes = 0
	require.NoError(t, store.Add(context.Background(), arrived))

	active, err := store.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "t1", active[0].ID)
}

func TestTripStore_ReadsAreSnapshots(t *testing.T) {
	store := memory.NewTripStore()
	require.NoError(t, store.Add(context.Background(), makeTrip("t1", 10)))

	snapshot, err := store.GetByID(context.Background(), "t1")
	require.NoError(t, err)

	// Mutating a returned snapshot must never leak into the store.
	snapshot.CurrentEtaMinutes = 1
	snapshot.Assessment.Severity = entities.SeverityCritical

	fresh, err := store.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, fresh.CurrentEtaMinutes)
	assert.Equal(t, entities.SeverityModerate, fresh.Assessment.Severity)
}

func TestTripStore_PublishRevisionsReplacesState(t *testing.T) {
	store := memory.NewTripStore()
	require.NoError(t, store.Add(context.Background(), makeTrip("t1", 10)))
	require.NoError(t, store.Add(context.Background(), makeTrip("t2", 20)))

	rev1 := makeTrip("t1", 10)
	rev1.CurrentEtaMinutes = 8
	rev2 := makeTrip("t2", 20)
	rev2.CurrentEtaMinutes = 18

	require.NoError(t, store.PublishRevisions(context.Background(), []*entities.Trip{rev1, rev2}))

	got1, _ := store.GetByID(context.Background(), "t1")
	got2, _ := store.GetByID(context.Background(), "t2")
	assert.Equal(t, 8.0, got1.CurrentEtaMinutes)
	assert.Equal(t, 18.0, got2.CurrentEtaMinutes)
}

func TestTripStore_PublishRevisionsIgnoresUnknownTrips(t *testing.T) {
	store := memory.NewTripStore()
	require.NoError(t, store.Add(context.Background(), makeTrip("t1", 10)))

	ghost := makeTrip("ghost", 5)
	require.NoError(t, store.PublishRevisions(context.Background(), []*entities.Trip{ghost, nil}))

	trips, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, trips, 1)

	_, err = store.GetByID(context.Background(), "ghost")
	assert.Error(t, err)
}

func TestTollLog_AppendAndListNewestFirst(t *testing.T) {
	log := memory.NewTollLog()

	require.NoError(t, log.Append(context.Background(), &entities.TollNotification{ID: "n1", TollName: "Skyline Bridge Toll", Cleared: true}))
	require.NoError(t, log.Append(context.Background(), &entities.TollNotification{ID: "n2", TollName: "Downtown Tunnel Gate", Cleared: true}))

	tolls, err := log.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tolls, 2)
	assert.Equal(t, "n2", tolls[0].ID)
	assert.Equal(t, "n1", tolls[1].ID)

	// Returned entries are copies.
	tolls[0].Cleared = false
	again, _ := log.List(context.Background())
	assert.True(t, again[0].Cleared)
}

func TestTollLog_AppendRejectsEmptyID(t *testing.T) {
	log := memory.NewTollLog()

	assert.Error(t, log.Append(context.Background(), nil))
	assert.Error(t, log.Append(context.Background(), &entities.TollNotification{}))
}
