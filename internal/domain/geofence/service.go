package geofence

import (
	"context"
)

// GeofenceService resolves punch coordinates against work zones and manages
// the zone catalog.
type GeofenceService interface {
	// Resolve picks the containing zone whose center is nearest to the
	// coordinate. No containing zone is not an error.
	Resolve(ctx context.Context, latitude, longitude float64) (Resolution, error)

	CreateZone(ctx context.Context, req CreateZoneRequest) (ZoneResponse, error)
	UpdateZone(ctx context.Context, req UpdateZoneRequest) (ZoneResponse, error)
	ListZones(ctx context.Context) ([]ZoneResponse, error)
}
