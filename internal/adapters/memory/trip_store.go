package memory

import (
	"context"
	"sync"

	"github.com/resqlink/dispatch/internal/domain/entities"
	apperrors "github.com/resqlink/dispatch/pkg/errors"
)

// TripStore implements TripRepository in process memory. Trips do not
// survive a restart; live transports are re-dispatched, not recovered.
//
// Writes happen in two places only: Add at dispatch time and
// PublishRevisions at the end of each simulation tick. Both swap fully
// formed records under the write lock, so readers always observe the
// last completed revision and never a half-applied tick.
type TripStore struct {
	mu    sync.RWMutex
	trips map[string]*entities.Trip
	order []string
}

// NewTripStore creates an empty trip store
func NewTripStore() *TripStore {
	return &TripStore{
		trips: make(map[string]*entities.Trip),
	}
}

// Add registers a newly created trip
func (s *TripStore) Add(ctx context.Context, trip *entities.Trip) error {
	if trip == nil || trip.ID == "" {
		return apperrors.NewValidationError("trip with an ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.trips[trip.ID]; exists {
		return apperrors.NewValidationError("trip already exists")
	}

	s.trips[trip.ID] = trip.Clone()
	// Newest first, matching how the operator consoles list transports.
	s.order = append([]string{trip.ID}, s.order...)
	return nil
}

// GetByID retrieves a snapshot of one trip
func (s *TripStore) GetByID(ctx context.Context, id string) (*entities.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, ok := s.trips[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("trip not found")
	}
	return trip.Clone(), nil
}

// List retrieves snapshots of all trips, newest first
func (s *TripStore) List(ctx context.Context) ([]*entities.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Trip, 0, len(s.order))
	for _, id := range s.order {
		if trip, ok := s.trips[id]; ok {
			out = append(out, trip.Clone())
		}
	}
	return out, nil
}

// ListActive retrieves snapshots of all non-terminal trips
func (s *TripStore) ListActive(ctx context.Context) ([]*entities.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Trip, 0, len(s.order))
	for _, id := range s.order {
		if trip, ok := s.trips[id]; ok && !trip.Terminal() {
			out = append(out, trip.Clone())
		}
	}
	return out, nil
}

// PublishRevisions atomically replaces the stored state of the given
// trips with their next snapshots. Unknown IDs are ignored; a revision
// batch never creates trips.
func (s *TripStore) PublishRevisions(ctx context.Context, trips []*entities.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, trip := range trips {
		if trip == nil {
			continue
		}
		if _, ok := s.trips[trip.ID]; !ok {
			continue
		}
		s.trips[trip.ID] = trip.Clone()
	}
	return nil
}
