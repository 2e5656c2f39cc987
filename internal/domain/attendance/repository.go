package attendance

import (
	"context"
	"time"
)

type SummaryRepository interface {
	Create(ctx context.Context, s Summary) (Summary, error)
	GetByID(ctx context.Context, id string) (Summary, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Summary, error)
	// GetByUserAndDateForUpdate takes a row lock; must run inside a transaction.
	GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (Summary, error)
	GetByIDForUpdate(ctx context.Context, id string) (Summary, error)
	Update(ctx context.Context, s Summary) error
	List(ctx context.Context, filter HistoryFilter) ([]Summary, int64, error)
	// ListOpenForDate selects summaries with no check-out and status incomplete,
	// the auto punch-out working set. The filter is what makes re-runs no-ops.
	ListOpenForDate(ctx context.Context, date time.Time) ([]Summary, error)
	// CountAutoPunchedOutSince counts auto-punched-out records per user with
	// date >= since, for repeat-offender detection.
	CountAutoPunchedOutSince(ctx context.Context, since time.Time) (map[string]int, error)
}
