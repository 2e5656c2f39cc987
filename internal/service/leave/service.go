package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/audit"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/employee"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/notification"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
	"github.com/worktrace-hq/worktrace-backend-go/internal/repository/postgresql"
)

const dateLayout = "2006-01-02"

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.BalanceRepository
	leave.ApplicationRepository
	leave.HolidayRepository
	employee.EmployeeRepository
	balanceService       *BalanceService
	auditLogger          audit.Logger
	notificationService  notification.NotificationService
	defaultMinNoticeDays int
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
	applicationRepo leave.ApplicationRepository,
	holidayRepo leave.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	balanceService *BalanceService,
	auditLogger audit.Logger,
	notificationService notification.NotificationService,
	defaultMinNoticeDays int,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                    db,
		LeaveTypeRepository:   leaveTypeRepo,
		BalanceRepository:     balanceRepo,
		ApplicationRepository: applicationRepo,
		HolidayRepository:     holidayRepo,
		EmployeeRepository:    employeeRepo,
		balanceService:        balanceService,
		auditLogger:           auditLogger,
		notificationService:   notificationService,
		defaultMinNoticeDays:  defaultMinNoticeDays,
	}
}

// GenerateBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GenerateBalance(ctx context.Context, employeeID string) (int, error) {
	return l.balanceService.Generate(ctx, employeeID)
}

// BackfillBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) BackfillBalances(ctx context.Context) (leave.BackfillReport, error) {
	return l.balanceService.Backfill(ctx)
}

// ApplyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	emp, err := l.EmployeeRepository.GetByUserID(ctx, req.UserID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !emp.IsActive {
		return leave.ApplicationResponse{}, employee.ErrEmployeeInactive
	}

	leaveType, err := l.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.ApplicationResponse{}, leave.ErrLeaveTypeNotFound
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	if endDate.Before(startDate) {
		return leave.ApplicationResponse{}, leave.ErrInvalidDuration
	}

	if req.HalfDay {
		if req.HalfDaySession == nil {
			return leave.ApplicationResponse{}, leave.ErrHalfDaySessionRequired
		}
		if !startDate.Equal(endDate) {
			return leave.ApplicationResponse{}, leave.ErrInvalidDuration
		}
	}

	if leaveType.RequiresDocument && (req.DocumentURL == nil || *req.DocumentURL == "") {
		return leave.ApplicationResponse{}, leave.ErrDocumentRequired
	}

	noticeDays := leaveType.MinNoticeDays
	if noticeDays == 0 {
		noticeDays = l.defaultMinNoticeDays
	}
	if noticeDays > 0 {
		earliest := time.Now().AddDate(0, 0, noticeDays)
		earliest = time.Date(earliest.Year(), earliest.Month(), earliest.Day(), 0, 0, 0, 0, time.UTC)
		if startDate.Before(earliest) {
			return leave.ApplicationResponse{}, leave.ErrAdvanceNoticeRequired
		}
	}

	holidays, err := l.HolidayRepository.ListOverlapping(ctx, startDate, endDate)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	duration := WorkingDays(startDate, endDate, holidays, req.HalfDay)
	if duration <= 0 {
		return leave.ApplicationResponse{}, leave.ErrInvalidDuration
	}

	application := leave.Application{
		UserID:         req.UserID,
		LeaveTypeID:    req.LeaveTypeID,
		StartDate:      startDate,
		EndDate:        endDate,
		HalfDay:        req.HalfDay,
		Duration:       duration,
		Reason:         req.Reason,
		DocumentURL:    req.DocumentURL,
		Status:         leave.StatusPending,
		Year:           startDate.Year(),
	}
	if req.HalfDaySession != nil {
		session := leave.HalfDaySession(*req.HalfDaySession)
		application.HalfDaySession = &session
	}

	err = postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		if !leaveType.IsUnlimited {
			balance, err := l.BalanceRepository.GetForUpdate(txCtx, req.UserID, req.LeaveTypeID, application.Year)
			if errors.Is(err, leave.ErrBalanceNotFound) {
				// First application for this type: create the ledger row on
				// demand, then re-read it under the lock.
				if _, genErr := l.balanceService.Generate(ctx, emp.ID); genErr == nil {
					balance, err = l.BalanceRepository.GetForUpdate(txCtx, req.UserID, req.LeaveTypeID, application.Year)
				}
			}
			if err != nil {
				return err
			}
			if balance.RemainingBalance < application.DeductedDays() {
				return leave.ErrInsufficientBalance
			}
		}

		application, err = l.ApplicationRepository.Create(txCtx, application)
		if err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	l.recordAudit(ctx, &req.UserID, req.UserID, audit.ActionApplyLeave,
		fmt.Sprintf("Applied for %s (%s to %s, %.1f day(s))", leaveType.Name, req.StartDate, req.EndDate, duration),
		application.ID)
	l.notifyManagers(ctx, emp, leaveType, application)

	return l.toApplicationResponse(application, leaveType.Name), nil
}

// ApproveLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeave(ctx context.Context, managerID, applicationID string) (leave.ApplicationResponse, error) {
	var application leave.Application

	err := postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		var err error
		application, err = l.ApplicationRepository.GetByIDForUpdate(txCtx, applicationID)
		if err != nil {
			return err
		}
		if application.Status != leave.StatusPending {
			return leave.ErrApplicationNotPending
		}

		leaveType, err := l.LeaveTypeRepository.GetByID(txCtx, application.LeaveTypeID)
		if err != nil {
			return err
		}

		if !leaveType.IsUnlimited {
			balance, err := l.BalanceRepository.GetForUpdate(txCtx, application.UserID, application.LeaveTypeID, application.Year)
			if err != nil {
				return err
			}

			deduct := application.DeductedDays()
			if balance.RemainingBalance < deduct {
				return leave.ErrBalanceWouldGoNegative
			}
			balance.DaysTaken += deduct
			balance.RemainingBalance = balance.TotalEntitlement + balance.InitialCarryForward - balance.DaysTaken
			if err := l.BalanceRepository.Update(txCtx, balance); err != nil {
				return fmt.Errorf("failed to update balance: %w", err)
			}
		}

		now := time.Now()
		application.Status = leave.StatusApproved
		application.ApprovedBy = &managerID
		application.ApprovedAt = &now
		if err := l.ApplicationRepository.Update(txCtx, application); err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	l.recordAudit(ctx, &managerID, application.UserID, audit.ActionApproveLeave,
		fmt.Sprintf("Approved leave application %s", application.ID), application.ID)
	l.notifyApplicant(ctx, application, "Leave approved",
		fmt.Sprintf("Your leave from %s to %s has been approved.",
			application.StartDate.Format(dateLayout), application.EndDate.Format(dateLayout)))

	return l.toApplicationResponse(application, l.leaveTypeName(ctx, application.LeaveTypeID)), nil
}

// RejectLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeave(ctx context.Context, req leave.RejectLeaveRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	var application leave.Application

	err := postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		var err error
		application, err = l.ApplicationRepository.GetByIDForUpdate(txCtx, req.ApplicationID)
		if err != nil {
			return err
		}
		if application.Status != leave.StatusPending {
			return leave.ErrApplicationNotPending
		}

		now := time.Now()
		application.Status = leave.StatusRejected
		application.RejectedBy = &req.ManagerID
		application.RejectedAt = &now
		application.ManagerRemark = &req.Reason
		if err := l.ApplicationRepository.Update(txCtx, application); err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	l.recordAudit(ctx, &req.ManagerID, application.UserID, audit.ActionRejectLeave,
		fmt.Sprintf("Rejected leave application %s: %s", application.ID, req.Reason), application.ID)
	l.notifyApplicant(ctx, application, "Leave rejected",
		fmt.Sprintf("Your leave from %s to %s was rejected: %s",
			application.StartDate.Format(dateLayout), application.EndDate.Format(dateLayout), req.Reason))

	return l.toApplicationResponse(application, l.leaveTypeName(ctx, application.LeaveTypeID)), nil
}

// CancelLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelLeave(ctx context.Context, actorID, applicationID string) (leave.ApplicationResponse, error) {
	actor, err := l.EmployeeRepository.GetByUserID(ctx, actorID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	var application leave.Application

	err = postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		var err error
		application, err = l.ApplicationRepository.GetByIDForUpdate(txCtx, applicationID)
		if err != nil {
			return err
		}

		if err := canCancel(actor, actorID, application); err != nil {
			return err
		}

		wasApproved := application.Status == leave.StatusApproved

		now := time.Now()
		application.Status = leave.StatusCancelled
		application.CancelledBy = &actorID
		application.CancelledAt = &now
		if err := l.ApplicationRepository.Update(txCtx, application); err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}

		// Restore what approve deducted.
		if wasApproved {
			balance, err := l.BalanceRepository.GetForUpdate(txCtx, application.UserID, application.LeaveTypeID, application.Year)
			if err != nil {
				return err
			}
			balance.DaysTaken -= application.DeductedDays()
			if balance.DaysTaken < 0 {
				balance.DaysTaken = 0
			}
			balance.RemainingBalance = balance.TotalEntitlement + balance.InitialCarryForward - balance.DaysTaken
			if err := l.BalanceRepository.Update(txCtx, balance); err != nil {
				return fmt.Errorf("failed to update balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	l.recordAudit(ctx, &actorID, application.UserID, audit.ActionCancelLeave,
		fmt.Sprintf("Cancelled leave application %s", application.ID), application.ID)
	if actorID != application.UserID {
		l.notifyApplicant(ctx, application, "Leave cancelled",
			fmt.Sprintf("Your leave from %s to %s was cancelled by a manager.",
				application.StartDate.Format(dateLayout), application.EndDate.Format(dateLayout)))
	}

	return l.toApplicationResponse(application, l.leaveTypeName(ctx, application.LeaveTypeID)), nil
}

// canCancel encodes who may cancel which application states. Terminal states
// are never cancellable; owners may not cancel leave already underway.
func canCancel(actor employee.Employee, actorID string, application leave.Application) error {
	if application.Status == leave.StatusRejected || application.Status == leave.StatusCancelled {
		return leave.ErrCannotCancel
	}

	isOwner := application.UserID == actorID
	isManager := actor.Role == employee.RoleManager

	if !isOwner && !isManager {
		return employee.ErrNotResourceOwner
	}

	if application.Status == leave.StatusApproved && isOwner && !isManager {
		today := time.Now()
		today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, application.StartDate.Location())
		if !application.StartDate.After(today) {
			return leave.ErrLeaveAlreadyStarted
		}
	}
	return nil
}

// ListTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	leaveTypes, err := l.LeaveTypeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		responses = append(responses, leave.LeaveTypeResponse{
			ID:               lt.ID,
			Name:             lt.Name,
			IsPaid:           lt.IsPaid,
			IsCarryForward:   lt.IsCarryForward,
			CarryForwardDays: lt.CarryForwardDays,
			RequiresDocument: lt.RequiresDocument,
			IsUnlimited:      lt.IsUnlimited,
			MinNoticeDays:    lt.MinNoticeDays,
			IsActive:         lt.IsActive,
		})
	}
	return responses, nil
}

// MyBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) MyBalances(ctx context.Context, userID string, year int) ([]leave.BalanceResponse, error) {
	balances, err := l.BalanceRepository.ListByUser(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	return l.toBalanceResponses(ctx, balances), nil
}

// AllBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) AllBalances(ctx context.Context, year int) ([]leave.BalanceResponse, error) {
	balances, err := l.BalanceRepository.ListAll(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	return l.toBalanceResponses(ctx, balances), nil
}

// ListApplications implements leave.LeaveService.
func (l *LeaveServiceImpl) ListApplications(ctx context.Context, filter leave.ApplicationFilter) (leave.ListApplicationsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	applications, total, err := l.ApplicationRepository.List(ctx, filter)
	if err != nil {
		return leave.ListApplicationsResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}

	var responses []leave.ApplicationResponse
	for _, a := range applications {
		responses = append(responses, l.toApplicationResponse(a, l.leaveTypeName(ctx, a.LeaveTypeID)))
	}

	return leave.ListApplicationsResponse{
		TotalCount:   total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		Applications: responses,
	}, nil
}

// ListHolidays implements leave.LeaveService.
func (l *LeaveServiceImpl) ListHolidays(ctx context.Context) ([]leave.HolidayResponse, error) {
	holidays, err := l.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]leave.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, leave.HolidayResponse{
			ID:          h.ID,
			Name:        h.Name,
			StartDate:   h.StartDate.Format(dateLayout),
			EndDate:     h.EndDate.Format(dateLayout),
			IsRecurring: h.IsRecurring,
		})
	}
	return responses, nil
}

// CreateHoliday implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateHoliday(ctx context.Context, req leave.CreateHolidayRequest) (leave.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.HolidayResponse{}, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return leave.HolidayResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate := startDate
	if req.EndDate != "" {
		endDate, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return leave.HolidayResponse{}, fmt.Errorf("failed to parse end date: %w", err)
		}
	}
	if endDate.Before(startDate) {
		return leave.HolidayResponse{}, leave.ErrInvalidDuration
	}

	holiday, err := l.HolidayRepository.Create(ctx, leave.Holiday{
		Name:        req.Name,
		StartDate:   startDate,
		EndDate:     endDate,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		return leave.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return leave.HolidayResponse{
		ID:          holiday.ID,
		Name:        holiday.Name,
		StartDate:   holiday.StartDate.Format(dateLayout),
		EndDate:     holiday.EndDate.Format(dateLayout),
		IsRecurring: holiday.IsRecurring,
	}, nil
}

// DeleteHoliday implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return l.HolidayRepository.Delete(ctx, id)
}

func (l *LeaveServiceImpl) toBalanceResponses(ctx context.Context, balances []leave.Balance) []leave.BalanceResponse {
	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.BalanceResponse{
			ID:                  b.ID,
			UserID:              b.UserID,
			LeaveTypeID:         b.LeaveTypeID,
			LeaveTypeName:       l.leaveTypeName(ctx, b.LeaveTypeID),
			Year:                b.Year,
			TotalEntitlement:    b.TotalEntitlement,
			InitialCarryForward: b.InitialCarryForward,
			DaysTaken:           b.DaysTaken,
			RemainingBalance:    b.RemainingBalance,
		})
	}
	return responses
}

func (l *LeaveServiceImpl) leaveTypeName(ctx context.Context, leaveTypeID string) string {
	lt, err := l.LeaveTypeRepository.GetByID(ctx, leaveTypeID)
	if err != nil {
		return ""
	}
	return lt.Name
}

func (l *LeaveServiceImpl) toApplicationResponse(a leave.Application, typeName string) leave.ApplicationResponse {
	var session *string
	if a.HalfDaySession != nil {
		s := string(*a.HalfDaySession)
		session = &s
	}
	return leave.ApplicationResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		LeaveTypeID:    a.LeaveTypeID,
		LeaveTypeName:  typeName,
		StartDate:      a.StartDate.Format(dateLayout),
		EndDate:        a.EndDate.Format(dateLayout),
		HalfDay:        a.HalfDay,
		HalfDaySession: session,
		Duration:       a.Duration,
		Reason:         a.Reason,
		Status:         string(a.Status),
		ApprovedBy:     a.ApprovedBy,
		RejectedBy:     a.RejectedBy,
		CancelledBy:    a.CancelledBy,
		ManagerRemark:  a.ManagerRemark,
		DocumentURL:    a.DocumentURL,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

func (l *LeaveServiceImpl) recordAudit(ctx context.Context, actorID *string, employeeID, actionType, action, targetID string) {
	entry := audit.Entry{
		ActorID:       actorID,
		EmployeeID:    &employeeID,
		ActionType:    actionType,
		Action:        action,
		TargetTable:   "leave_applications",
		TargetID:      &targetID,
		VisibleToUser: true,
	}
	if err := l.auditLogger.Record(ctx, entry); err != nil {
		fmt.Printf("failed to record leave audit: %v\n", err)
	}
}

func (l *LeaveServiceImpl) notifyApplicant(ctx context.Context, application leave.Application, title, message string) {
	l.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:    application.UserID,
		Type:           notification.TypeLeaveStatus,
		Title:          title,
		Message:        message,
		RelatedLeaveID: &application.ID,
	})
}

func (l *LeaveServiceImpl) notifyManagers(ctx context.Context, emp employee.Employee, leaveType leave.LeaveType, application leave.Application) {
	managers, err := l.EmployeeRepository.ListManagers(ctx)
	if err != nil {
		fmt.Printf("failed to list managers for notification: %v\n", err)
		return
	}

	recipientIDs := make([]string, 0, len(managers))
	for _, m := range managers {
		if m.UserID == emp.UserID {
			continue
		}
		recipientIDs = append(recipientIDs, m.UserID)
	}

	l.notificationService.QueueBulkNotification(ctx, recipientIDs, notification.CreateNotificationRequest{
		Type:  notification.TypeLeaveStatus,
		Title: "New leave application",
		Message: fmt.Sprintf("%s applied for %s from %s to %s (%.1f day(s)).",
			emp.Name, leaveType.Name,
			application.StartDate.Format(dateLayout), application.EndDate.Format(dateLayout),
			application.Duration),
		RelatedLeaveID: &application.ID,
	})
}
