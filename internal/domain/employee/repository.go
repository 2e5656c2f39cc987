package employee

import (
	"context"
)

type EmployeeRepository interface {
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListManagers(ctx context.Context) ([]Employee, error)
}
