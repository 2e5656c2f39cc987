package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/audit"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/employee"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
	"github.com/worktrace-hq/worktrace-backend-go/internal/repository/postgresql"
)

// BalanceService generates and backfills the per-year entitlement ledger.
type BalanceService struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.EntitlementRuleRepository
	leave.BalanceRepository
	employee.EmployeeRepository
	auditLogger audit.Logger
}

func NewBalanceService(
	db *database.DB,
	leaveTypeRepo leave.LeaveTypeRepository,
	ruleRepo leave.EntitlementRuleRepository,
	balanceRepo leave.BalanceRepository,
	employeeRepo employee.EmployeeRepository,
	auditLogger audit.Logger,
) *BalanceService {
	return &BalanceService{
		db:                        db,
		LeaveTypeRepository:       leaveTypeRepo,
		EntitlementRuleRepository: ruleRepo,
		BalanceRepository:         balanceRepo,
		EmployeeRepository:        employeeRepo,
		auditLogger:               auditLogger,
	}
}

// Generate creates the current-year balance row for every active,
// non-unlimited leave type the employee has a matching entitlement rule for.
// Existing rows are left untouched, so re-runs are no-ops.
func (s *BalanceService) Generate(ctx context.Context, employeeID string) (int, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	if !emp.IsActive {
		return 0, employee.ErrEmployeeInactive
	}
	if emp.EmploymentType == "" {
		return 0, employee.ErrMissingEmploymentType
	}

	now := time.Now()
	year := now.Year()
	tenure := emp.YearsOfService(now)

	leaveTypes, err := s.LeaveTypeRepository.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list leave types: %w", err)
	}

	created := 0
	for _, lt := range leaveTypes {
		if lt.IsUnlimited {
			continue
		}

		madeNew, err := s.generateOne(ctx, emp, lt, tenure, year)
		if err != nil {
			return created, err
		}
		if madeNew {
			created++
		}
	}

	if created > 0 {
		s.recordAudit(ctx, emp.UserID, created, year)
	}
	return created, nil
}

func (s *BalanceService) generateOne(ctx context.Context, emp employee.Employee, lt leave.LeaveType, tenure, year int) (bool, error) {
	madeNew := false
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		_, err := s.BalanceRepository.GetByUserTypeYear(txCtx, emp.UserID, lt.ID, year)
		if err == nil {
			return nil
		}
		if !errors.Is(err, leave.ErrBalanceNotFound) {
			return fmt.Errorf("failed to check existing balance: %w", err)
		}

		rule, err := s.EntitlementRuleRepository.FindMatching(txCtx, lt.ID, string(emp.EmploymentType), tenure, year)
		if err != nil {
			if errors.Is(err, leave.ErrNoMatchingRule) {
				return nil
			}
			return fmt.Errorf("failed to find entitlement rule: %w", err)
		}

		carry := s.carryForward(txCtx, emp.UserID, lt, year)

		balance := leave.Balance{
			UserID:              emp.UserID,
			LeaveTypeID:         lt.ID,
			Year:                year,
			TotalEntitlement:    rule.EntitlementDays,
			InitialCarryForward: carry,
			DaysTaken:           0,
			RemainingBalance:    rule.EntitlementDays + carry,
		}
		if _, err := s.BalanceRepository.Create(txCtx, balance); err != nil {
			return fmt.Errorf("failed to create balance: %w", err)
		}
		madeNew = true
		return nil
	})
	return madeNew, err
}

// carryForward reads last year's remaining balance, capped by the type's
// carry-forward allowance. Errors degrade to zero carry.
func (s *BalanceService) carryForward(ctx context.Context, userID string, lt leave.LeaveType, year int) float64 {
	if !lt.IsCarryForward {
		return 0
	}
	previous, err := s.BalanceRepository.GetByUserTypeYear(ctx, userID, lt.ID, year-1)
	if err != nil {
		return 0
	}
	carry := previous.RemainingBalance
	if carry < 0 {
		carry = 0
	}
	if lt.CarryForwardDays > 0 && carry > lt.CarryForwardDays {
		carry = lt.CarryForwardDays
	}
	return carry
}

// Backfill runs Generate for every active employee. Per-employee failures are
// skipped so one bad record cannot block the rest.
func (s *BalanceService) Backfill(ctx context.Context) (leave.BackfillReport, error) {
	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return leave.BackfillReport{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	report := leave.BackfillReport{}
	for _, emp := range employees {
		created, err := s.Generate(ctx, emp.ID)
		if err != nil {
			continue
		}
		report.EmployeesProcessed++
		report.BalancesCreated += created
	}
	return report, nil
}

func (s *BalanceService) recordAudit(ctx context.Context, userID string, created, year int) {
	entry := audit.Entry{
		EmployeeID:  &userID,
		ActionType:  audit.ActionGenerateBalance,
		Action:      fmt.Sprintf("Generated %d leave balance(s) for %d", created, year),
		TargetTable: "leave_balances",
		Details:     fmt.Sprintf("user=%s year=%d created=%d", userID, year, created),
	}
	if err := s.auditLogger.Record(ctx, entry); err != nil {
		fmt.Printf("failed to record balance audit: %v\n", err)
	}
}
