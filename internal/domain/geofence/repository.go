package geofence

import (
	"context"
)

type ZoneRepository interface {
	Create(ctx context.Context, z Zone) (Zone, error)
	Update(ctx context.Context, z Zone) error
	GetByID(ctx context.Context, id string) (Zone, error)
	ListActive(ctx context.Context) ([]Zone, error)
	List(ctx context.Context) ([]Zone, error)
}
