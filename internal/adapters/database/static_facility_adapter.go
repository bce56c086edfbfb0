package database

import (
	"context"

	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/repositories"
	apperrors "github.com/resqlink/dispatch/pkg/errors"
)

// StaticFacilityAdapter implements FacilityRepository over a built-in
// catalog. It is the fallback when no database is configured; sessions
// running against it get the stock metro-area directory.
type StaticFacilityAdapter struct {
	facilities []*entities.Facility
}

// NewStaticFacilityAdapter creates a facility adapter over the built-in
// directory
func NewStaticFacilityAdapter() repositories.FacilityRepository {
	return &StaticFacilityAdapter{facilities: defaultDirectory()}
}

// NewStaticFacilityAdapterWith creates a facility adapter over the given
// directory
func NewStaticFacilityAdapterWith(facilities []*entities.Facility) repositories.FacilityRepository {
	return &StaticFacilityAdapter{facilities: facilities}
}

// List returns all facilities in the directory
func (a *StaticFacilityAdapter) List(ctx context.Context) ([]*entities.Facility, error) {
	out := make([]*entities.Facility, len(a.facilities))
	for i, f := range a.facilities {
		cp := *f
		cp.Specialties = append([]string{}, f.Specialties...)
		out[i] = &cp
	}
	return out, nil
}

// GetByID retrieves a facility by ID
func (a *StaticFacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	for _, f := range a.facilities {
		if f.ID == id {
			cp := *f
			cp.Specialties = append([]string{}, f.Specialties...)
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("facility not found")
}

func defaultDirectory() []*entities.Facility {
	return []*entities.Facility{
		{ID: "h1", Name: "Central City Medical Center", DistanceKm: 4.2, EtaMinutes: 12, Specialties: []string{"Trauma L1", "Cardiology", "Neurology"}, Capacity: 400, Occupied: 85},
		{ID: "h2", Name: "St. Mary's Emergency", DistanceKm: 8.5, EtaMinutes: 18, Specialties: []string{"Pediatrics", "General Surgery"}, Capacity: 250, Occupied: 45},
		{ID: "h3", Name: "Westside Heart Institute", DistanceKm: 12.1, EtaMinutes: 24, Specialties: []string{"Cardiology", "Vascular"}, Capacity: 150, Occupied: 60},
		{ID: "h4", Name: "General City Hospital", DistanceKm: 2.5, EtaMinutes: 8, Specialties: []string{"General Medicine", "Orthopedics"}, Capacity: 300, Occupied: 92},
	}
}
