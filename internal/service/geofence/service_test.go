package geofence

import (
	"context"
	"testing"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/geofence"
)

type stubZoneRepo struct {
	geofence.ZoneRepository
	zones []geofence.Zone
}

func (s *stubZoneRepo) ListActive(ctx context.Context) ([]geofence.Zone, error) {
	return s.zones, nil
}

// Office coordinates roughly 500m apart in central Jakarta.
const (
	officeLat = -6.2088
	officeLng = 106.8456
	annexLat  = -6.2120
	annexLng  = 106.8490
)

func TestResolveNoContainingZone(t *testing.T) {
	repo := &stubZoneRepo{zones: []geofence.Zone{
		{Name: "HQ", Latitude: officeLat, Longitude: officeLng, RadiusMeters: 50},
	}}
	svc := NewGeofenceService(repo)

	res, err := svc.Resolve(context.Background(), annexLat, annexLng)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Within {
		t.Errorf("Resolve matched a zone %0.f meters away with a 50m radius", res.DistanceMeters)
	}
	if res.Zone != nil {
		t.Errorf("Resolve returned zone %q, want nil", res.Zone.Name)
	}
}

func TestResolvePicksNearestContainingZone(t *testing.T) {
	repo := &stubZoneRepo{zones: []geofence.Zone{
		{Name: "Annex", Latitude: annexLat, Longitude: annexLng, RadiusMeters: 5000},
		{Name: "HQ", Latitude: officeLat, Longitude: officeLng, RadiusMeters: 5000},
	}}
	svc := NewGeofenceService(repo)

	// Punch from HQ's doorstep: both zones contain it, HQ center is nearer.
	res, err := svc.Resolve(context.Background(), officeLat+0.0001, officeLng)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !res.Within {
		t.Fatal("Resolve found no containing zone")
	}
	if res.Zone.Name != "HQ" {
		t.Errorf("Resolve picked %q, want HQ", res.Zone.Name)
	}
}

func TestResolveTieBreaksOnRadiusThenName(t *testing.T) {
	// Concentric zones: equal center distance, different radii.
	repo := &stubZoneRepo{zones: []geofence.Zone{
		{Name: "Outer", Latitude: officeLat, Longitude: officeLng, RadiusMeters: 2000},
		{Name: "Inner", Latitude: officeLat, Longitude: officeLng, RadiusMeters: 500},
	}}
	svc := NewGeofenceService(repo)

	res, err := svc.Resolve(context.Background(), officeLat, officeLng)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !res.Within || res.Zone.Name != "Inner" {
		t.Errorf("Resolve picked %v, want Inner", res.Zone)
	}

	// Identical zones except name: lexically smaller wins.
	repo.zones = []geofence.Zone{
		{Name: "Beta", Latitude: officeLat, Longitude: officeLng, RadiusMeters: 500},
		{Name: "Alpha", Latitude: officeLat, Longitude: officeLng, RadiusMeters: 500},
	}
	res, err = svc.Resolve(context.Background(), officeLat, officeLng)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !res.Within || res.Zone.Name != "Alpha" {
		t.Errorf("Resolve picked %v, want Alpha", res.Zone)
	}
}

func TestResolveNoZones(t *testing.T) {
	svc := NewGeofenceService(&stubZoneRepo{})

	res, err := svc.Resolve(context.Background(), officeLat, officeLng)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Within {
		t.Error("Resolve matched with no zones configured")
	}
}
