package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendly-backend-go/internal/domain/zone"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type zoneRepository struct {
	db *database.DB
}

func NewZoneRepository(db *database.DB) zone.ZoneRepository {
	return &zoneRepository{db: db}
}

// Create implements zone.ZoneRepository.
func (r *zoneRepository) Create(ctx context.Context, newZone zone.Zone) (zone.Zone, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO zones (id, name, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newZone.ID,
		newZone.Name,
		newZone.Latitude,
		newZone.Longitude,
		newZone.RadiusMeters,
	).Scan(&newZone.CreatedAt, &newZone.UpdatedAt)

	if err != nil {
		return zone.Zone{}, fmt.Errorf("failed to create zone: %w", err)
	}

	return newZone, nil
}

// GetByID implements zone.ZoneRepository.
func (r *zoneRepository) GetByID(ctx context.Context, id string) (zone.Zone, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at, updated_at
		FROM zones
		WHERE id = $1
	`

	var z zone.Zone
	err := q.QueryRow(ctx, query, id).Scan(
		&z.ID, &z.Name, &z.Latitude, &z.Longitude, &z.RadiusMeters,
		&z.CreatedAt, &z.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zone.Zone{}, zone.ErrZoneNotFound
		}
		return zone.Zone{}, fmt.Errorf("failed to get zone: %w", err)
	}

	return z, nil
}

// List implements zone.ZoneRepository.
func (r *zoneRepository) List(ctx context.Context) ([]zone.Zone, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at, updated_at
		FROM zones
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	var zones []zone.Zone
	for rows.Next() {
		var z zone.Zone
		if err := rows.Scan(
			&z.ID, &z.Name, &z.Latitude, &z.Longitude, &z.RadiusMeters,
			&z.CreatedAt, &z.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, z)
	}

	return zones, rows.Err()
}

// Update implements zone.ZoneRepository.
func (r *zoneRepository) Update(ctx context.Context, z zone.Zone) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE zones
		SET name = $2, latitude = $3, longitude = $4, radius_meters = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, z.ID, z.Name, z.Latitude, z.Longitude, z.RadiusMeters)
	if err != nil {
		return fmt.Errorf("failed to update zone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return zone.ErrZoneNotFound
	}

	return nil
}

// Delete implements zone.ZoneRepository.
func (r *zoneRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return zone.ErrZoneNotFound
	}

	return nil
}
