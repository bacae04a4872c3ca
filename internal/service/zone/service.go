package zone

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendly-backend-go/internal/domain/zone"
	"github.com/google/uuid"
)

type ZoneServiceImpl struct {
	zone.ZoneRepository
}

func NewZoneService(zoneRepo zone.ZoneRepository) zone.ZoneService {
	return &ZoneServiceImpl{
		ZoneRepository: zoneRepo,
	}
}

// Create implements zone.ZoneService.
func (s *ZoneServiceImpl) Create(ctx context.Context, req zone.CreateZoneRequest) (zone.ZoneResponse, error) {
	if err := req.Validate(); err != nil {
		return zone.ZoneResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return zone.ZoneResponse{}, fmt.Errorf("failed to generate zone id: %w", err)
	}

	created, err := s.ZoneRepository.Create(ctx, zone.Zone{
		ID:           id.String(),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	})
	if err != nil {
		return zone.ZoneResponse{}, fmt.Errorf("failed to create zone: %w", err)
	}

	return mapZoneToResponse(created), nil
}

// Get implements zone.ZoneService.
func (s *ZoneServiceImpl) Get(ctx context.Context, id string) (zone.ZoneResponse, error) {
	z, err := s.ZoneRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return zone.ZoneResponse{}, zone.ErrZoneNotFound
		}
		return zone.ZoneResponse{}, fmt.Errorf("failed to get zone: %w", err)
	}
	return mapZoneToResponse(z), nil
}

// List implements zone.ZoneService.
func (s *ZoneServiceImpl) List(ctx context.Context) ([]zone.ZoneResponse, error) {
	zones, err := s.ZoneRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	responses := make([]zone.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		responses = append(responses, mapZoneToResponse(z))
	}
	return responses, nil
}

// Update implements zone.ZoneService.
func (s *ZoneServiceImpl) Update(ctx context.Context, req zone.UpdateZoneRequest) (zone.ZoneResponse, error) {
	if err := req.Validate(); err != nil {
		return zone.ZoneResponse{}, err
	}

	z, err := s.ZoneRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return zone.ZoneResponse{}, zone.ErrZoneNotFound
		}
		return zone.ZoneResponse{}, fmt.Errorf("failed to get zone: %w", err)
	}

	if req.Name != nil {
		z.Name = *req.Name
	}
	if req.Latitude != nil {
		z.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		z.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		z.RadiusMeters = *req.RadiusMeters
	}

	if err := s.ZoneRepository.Update(ctx, z); err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return zone.ZoneResponse{}, zone.ErrZoneNotFound
		}
		return zone.ZoneResponse{}, fmt.Errorf("failed to update zone: %w", err)
	}

	updated, err := s.ZoneRepository.GetByID(ctx, req.ID)
	if err != nil {
		return zone.ZoneResponse{}, fmt.Errorf("failed to get updated zone: %w", err)
	}
	return mapZoneToResponse(updated), nil
}

// Delete implements zone.ZoneService.
func (s *ZoneServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.ZoneRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return zone.ErrZoneNotFound
		}
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	return nil
}

func mapZoneToResponse(z zone.Zone) zone.ZoneResponse {
	return zone.ZoneResponse{
		ID:           z.ID,
		Name:         z.Name,
		Latitude:     z.Latitude,
		Longitude:    z.Longitude,
		RadiusMeters: z.RadiusMeters,
		CreatedAt:    z.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    z.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
