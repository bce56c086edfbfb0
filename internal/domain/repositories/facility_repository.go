package repositories

import (
	"context"

	"github.com/resqlink/dispatch/internal/domain/entities"
)

// FacilityRepository defines read access to the session's facility
// directory. The directory is static for the session, so there are no
// write operations.
type FacilityRepository interface {
	// List returns all facilities in the directory
	List(ctx context.Context) ([]*entities.Facility, error)

	// GetByID retrieves a facility by ID
	GetByID(ctx context.Context, id string) (*entities.Facility, error)
}
