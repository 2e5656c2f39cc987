package leave

import (
	"context"
)

// LeaveService owns entitlement generation and the apply/approve/reject/
// cancel workflow over the balance ledger.
type LeaveService interface {
	// GenerateBalance creates the current-year balance row for every active,
	// non-unlimited leave type the employee has a matching entitlement rule
	// for. Idempotent per (user, type, year).
	GenerateBalance(ctx context.Context, employeeID string) (int, error)

	// BackfillBalances runs GenerateBalance for every active employee.
	BackfillBalances(ctx context.Context) (BackfillReport, error)

	ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (ApplicationResponse, error)
	ApproveLeave(ctx context.Context, managerID, applicationID string) (ApplicationResponse, error)
	RejectLeave(ctx context.Context, req RejectLeaveRequest) (ApplicationResponse, error)
	// CancelLeave is allowed for the owner while pending, for a manager at
	// any pre-terminal state, or for the owner of an approved future leave.
	CancelLeave(ctx context.Context, actorID, applicationID string) (ApplicationResponse, error)

	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	MyBalances(ctx context.Context, userID string, year int) ([]BalanceResponse, error)
	AllBalances(ctx context.Context, year int) ([]BalanceResponse, error)
	ListApplications(ctx context.Context, filter ApplicationFilter) (ListApplicationsResponse, error)

	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
