package punch

import (
	"context"
	"time"
)

type PunchRepository interface {
	Create(ctx context.Context, p Punch) (Punch, error)
	ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]Punch, error)
}
