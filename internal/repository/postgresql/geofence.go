package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/geofence"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
)

const zoneColumns = `
	id, name, latitude, longitude, radius_meters, is_active, created_at, updated_at
`

type zoneRepositoryImpl struct {
	db *database.DB
}

func NewZoneRepository(db *database.DB) geofence.ZoneRepository {
	return &zoneRepositoryImpl{db: db}
}

func scanZone(row pgx.Row) (geofence.Zone, error) {
	var z geofence.Zone
	err := row.Scan(
		&z.ID, &z.Name, &z.Latitude, &z.Longitude, &z.RadiusMeters,
		&z.IsActive, &z.CreatedAt, &z.UpdatedAt,
	)
	return z, err
}

// Create implements geofence.ZoneRepository.
func (r *zoneRepositoryImpl) Create(ctx context.Context, z geofence.Zone) (geofence.Zone, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO geofence_zones (id, name, latitude, longitude, radius_meters, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, z.Name, z.Latitude, z.Longitude, z.RadiusMeters, z.IsActive).
		Scan(&z.ID, &z.CreatedAt, &z.UpdatedAt)
	if err != nil {
		return geofence.Zone{}, err
	}
	return z, nil
}

// Update implements geofence.ZoneRepository.
func (r *zoneRepositoryImpl) Update(ctx context.Context, z geofence.Zone) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE geofence_zones SET
			name = $1, latitude = $2, longitude = $3,
			radius_meters = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
	`
	commandTag, err := q.Exec(ctx, query, z.Name, z.Latitude, z.Longitude, z.RadiusMeters, z.IsActive, z.ID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return geofence.ErrZoneNotFound
	}
	return nil
}

// GetByID implements geofence.ZoneRepository.
func (r *zoneRepositoryImpl) GetByID(ctx context.Context, id string) (geofence.Zone, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + zoneColumns + ` FROM geofence_zones WHERE id = $1`
	z, err := scanZone(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Zone{}, geofence.ErrZoneNotFound
		}
		return geofence.Zone{}, err
	}
	return z, nil
}

// ListActive implements geofence.ZoneRepository.
func (r *zoneRepositoryImpl) ListActive(ctx context.Context) ([]geofence.Zone, error) {
	return r.list(ctx, `SELECT `+zoneColumns+` FROM geofence_zones WHERE is_active = true ORDER BY name`)
}

// List implements geofence.ZoneRepository.
func (r *zoneRepositoryImpl) List(ctx context.Context) ([]geofence.Zone, error) {
	return r.list(ctx, `SELECT `+zoneColumns+` FROM geofence_zones ORDER BY name`)
}

func (r *zoneRepositoryImpl) list(ctx context.Context, query string) ([]geofence.Zone, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []geofence.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return zones, nil
}
