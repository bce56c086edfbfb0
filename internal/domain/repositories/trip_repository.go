package repositories

import (
	"context"

	"github.com/resqlink/dispatch/internal/domain/entities"
)

// TripRepository defines access to live trip records. Implementations
// must give readers fully-formed snapshots from the most recently
// published revision; a half-applied update cycle must never be visible.
type TripRepository interface {
	// Add registers a newly created trip
	Add(ctx context.Context, trip *entities.Trip) error

	// GetByID retrieves a snapshot of one trip
	GetByID(ctx context.Context, id string) (*entities.Trip, error)

	// List retrieves snapshots of all trips, newest first
	List(ctx context.Context) ([]*entities.Trip, error)

	// ListActive retrieves snapshots of all non-terminal trips
	ListActive(ctx context.Context) ([]*entities.Trip, error)

	// PublishRevisions atomically replaces the stored state of the given
	// trips with their next snapshots
	PublishRevisions(ctx context.Context, trips []*entities.Trip) error
}
