package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	ListActive(ctx context.Context) ([]LeaveType, error)
}

type EntitlementRuleRepository interface {
	// FindMatching returns the first rule for (leaveType, employmentType,
	// effectiveYear) whose tenure band contains yearsOfService.
	FindMatching(ctx context.Context, leaveTypeID, employmentType string, yearsOfService, effectiveYear int) (EntitlementRule, error)
}

type BalanceRepository interface {
	Create(ctx context.Context, b Balance) (Balance, error)
	GetByUserTypeYear(ctx context.Context, userID, leaveTypeID string, year int) (Balance, error)
	// GetForUpdate takes a row lock on the (user, type, year) key; must run
	// inside a transaction.
	GetForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (Balance, error)
	Update(ctx context.Context, b Balance) error
	ListByUser(ctx context.Context, userID string, year int) ([]Balance, error)
	ListAll(ctx context.Context, year int) ([]Balance, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	GetByIDForUpdate(ctx context.Context, id string) (Application, error)
	Update(ctx context.Context, a Application) error
	List(ctx context.Context, filter ApplicationFilter) ([]Application, int64, error)
}

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Holiday, error)
	// ListOverlapping returns non-recurring holidays overlapping [start, end]
	// plus every recurring holiday.
	ListOverlapping(ctx context.Context, start, end time.Time) ([]Holiday, error)
}
