package geofence

import (
	"context"
	"fmt"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/geofence"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/utils"
)

type GeofenceServiceImpl struct {
	geofence.ZoneRepository
}

func NewGeofenceService(zoneRepo geofence.ZoneRepository) geofence.GeofenceService {
	return &GeofenceServiceImpl{ZoneRepository: zoneRepo}
}

// Resolve implements geofence.GeofenceService.
func (g *GeofenceServiceImpl) Resolve(ctx context.Context, latitude, longitude float64) (geofence.Resolution, error) {
	zones, err := g.ZoneRepository.ListActive(ctx)
	if err != nil {
		return geofence.Resolution{}, fmt.Errorf("failed to list active zones: %w", err)
	}

	// Among containing zones pick the nearest center; ties go to the
	// smaller radius, then the lexically smaller name.
	var best *geofence.Zone
	var bestDistance float64
	for i := range zones {
		z := zones[i]
		distance := utils.CalculateHaversineDistance(latitude, longitude, z.Latitude, z.Longitude)
		if distance > z.RadiusMeters {
			continue
		}
		if best == nil ||
			distance < bestDistance ||
			(distance == bestDistance && z.RadiusMeters < best.RadiusMeters) ||
			(distance == bestDistance && z.RadiusMeters == best.RadiusMeters && z.Name < best.Name) {
			zone := z
			best = &zone
			bestDistance = distance
		}
	}

	if best == nil {
		return geofence.Resolution{Within: false}, nil
	}
	return geofence.Resolution{
		Within:         true,
		Zone:           best,
		DistanceMeters: bestDistance,
	}, nil
}

// CreateZone implements geofence.GeofenceService.
func (g *GeofenceServiceImpl) CreateZone(ctx context.Context, req geofence.CreateZoneRequest) (geofence.ZoneResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.ZoneResponse{}, err
	}

	zone, err := g.ZoneRepository.Create(ctx, geofence.Zone{
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     true,
	})
	if err != nil {
		return geofence.ZoneResponse{}, fmt.Errorf("failed to create zone: %w", err)
	}
	return toZoneResponse(zone), nil
}

// UpdateZone implements geofence.GeofenceService.
func (g *GeofenceServiceImpl) UpdateZone(ctx context.Context, req geofence.UpdateZoneRequest) (geofence.ZoneResponse, error) {
	zone, err := g.ZoneRepository.GetByID(ctx, req.ID)
	if err != nil {
		return geofence.ZoneResponse{}, err
	}

	if req.Name != nil {
		zone.Name = *req.Name
	}
	if req.Latitude != nil {
		zone.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		zone.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		zone.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if err := g.ZoneRepository.Update(ctx, zone); err != nil {
		return geofence.ZoneResponse{}, fmt.Errorf("failed to update zone: %w", err)
	}
	return toZoneResponse(zone), nil
}

// ListZones implements geofence.GeofenceService.
func (g *GeofenceServiceImpl) ListZones(ctx context.Context) ([]geofence.ZoneResponse, error) {
	zones, err := g.ZoneRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	responses := make([]geofence.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		responses = append(responses, toZoneResponse(z))
	}
	return responses, nil
}

func toZoneResponse(z geofence.Zone) geofence.ZoneResponse {
	return geofence.ZoneResponse{
		ID:           z.ID,
		Name:         z.Name,
		Latitude:     z.Latitude,
		Longitude:    z.Longitude,
		RadiusMeters: z.RadiusMeters,
		IsActive:     z.IsActive,
	}
}
