package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/resqlink/dispatch/internal/domain/entities"
	"github.com/resqlink/dispatch/internal/domain/repositories"
	"github.com/resqlink/dispatch/internal/infrastructure/clients/postgres"
	apperrors "github.com/resqlink/dispatch/pkg/errors"
)

// FacilityAdapter implements FacilityRepository against PostgreSQL. The
// directory is read at session start and on listing; dispatch never
// writes facility rows.
type FacilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFacilityAdapter creates a new facility adapter
func NewFacilityAdapter(client *postgres.Client) repositories.FacilityRepository {
	return &FacilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List returns all facilities in the directory
func (a *FacilityAdapter) List(ctx context.Context) ([]*entities.Facility, error) {
	query, args, err := a.db.Select(
		"id", "name", "distance_km", "eta_minutes", "specialties", "capacity", "occupied",
	).From("facilities").
		Order(goqu.I("eta_minutes").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facility query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list facilities", err)
	}
	defer rows.Close()

	var facilities []*entities.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate facilities", err)
	}

	return facilities, nil
}

// GetByID retrieves a facility by ID
func (a *FacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	query, args, err := a.db.Select(
		"id", "name", "distance_km", "eta_minutes", "specialties", "capacity", "occupied",
	).From("facilities").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facility query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	facility, err := scanFacility(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("facility not found")
		}
		return nil, apperrors.NewInternalError("failed to get facility", err)
	}

	return facility, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*entities.Facility, error) {
	facility := &entities.Facility{}
	err := row.Scan(
		&facility.ID,
		&facility.Name,
		&facility.DistanceKm,
		&facility.EtaMinutes,
		pq.Array(&facility.Specialties),
		&facility.Capacity,
		&facility.Occupied,
	)
	if err != nil {
		return nil, err
	}
	return facility, nil
}
