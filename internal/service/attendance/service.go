package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/config"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/attendance"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/audit"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/employee"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/geofence"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/notification"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/punch"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
	"github.com/worktrace-hq/worktrace-backend-go/internal/repository/postgresql"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

type AttendanceServiceImpl struct {
	db *database.DB
	punch.PunchRepository
	attendance.SummaryRepository
	employee.EmployeeRepository
	geofenceService     geofence.GeofenceService
	auditLogger         audit.Logger
	notificationService notification.NotificationService
	cfg                 *config.Config
}

func NewAttendanceService(
	db *database.DB,
	punchRepo punch.PunchRepository,
	summaryRepo attendance.SummaryRepository,
	employeeRepo employee.EmployeeRepository,
	geofenceService geofence.GeofenceService,
	auditLogger audit.Logger,
	notificationService notification.NotificationService,
	cfg *config.Config,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                  db,
		PunchRepository:     punchRepo,
		SummaryRepository:   summaryRepo,
		EmployeeRepository:  employeeRepo,
		geofenceService:     geofenceService,
		auditLogger:         auditLogger,
		notificationService: notificationService,
		cfg:                 cfg,
	}
}

// RecordPunch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest) (attendance.RecordPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordPunchResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByUserID(ctx, req.UserID)
	if err != nil {
		return attendance.RecordPunchResponse{}, err
	}
	if !emp.IsActive {
		return attendance.RecordPunchResponse{}, employee.ErrEmployeeInactive
	}

	now := time.Now()
	day := truncateToDay(now)

	var resolution geofence.Resolution
	var notes *string
	if req.Latitude != nil && req.Longitude != nil {
		resolution, err = a.geofenceService.Resolve(ctx, *req.Latitude, *req.Longitude)
		if err != nil {
			return attendance.RecordPunchResponse{}, err
		}
		membership := "outside geofence"
		if resolution.Within {
			membership = fmt.Sprintf("inside %s", resolution.Zone.Name)
		}
		notes = &membership
	}

	source := punch.Source(req.Source)
	if source != punch.SourceWeb && source != punch.SourceMobile {
		source = punch.SourceWeb
	}

	event := punch.Punch{
		UserID:         req.UserID,
		EventType:      punch.EventType(req.EventType),
		EventTime:      now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
		Source:         source,
		Notes:          notes,
	}

	var summary attendance.Summary

	switch event.EventType {
	case punch.EventCheckIn:
		if err := a.checkReasonGate(ctx, req.UserID, day); err != nil {
			return attendance.RecordPunchResponse{}, err
		}
		err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
			summary, err = a.applyCheckIn(txCtx, req.UserID, day, now)
			if err != nil {
				return err
			}
			event, err = a.PunchRepository.Create(txCtx, event)
			if err != nil {
				return fmt.Errorf("failed to create punch: %w", err)
			}
			return nil
		})
	case punch.EventCheckOut:
		err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
			summary, err = a.applyCheckOut(txCtx, req.UserID, day, now)
			if err != nil {
				return err
			}
			event, err = a.PunchRepository.Create(txCtx, event)
			if err != nil {
				return fmt.Errorf("failed to create punch: %w", err)
			}
			return nil
		})
	default:
		return attendance.RecordPunchResponse{}, punch.ErrInvalidEventType
	}
	if err != nil {
		return attendance.RecordPunchResponse{}, err
	}

	actionType := audit.ActionPunchIn
	if event.EventType == punch.EventCheckOut {
		actionType = audit.ActionPunchOut
	}
	a.recordAudit(ctx, &req.UserID, req.UserID, actionType,
		fmt.Sprintf("%s at %s", event.EventType, now.Format(dateTimeLayout)), summary.ID)

	response := attendance.RecordPunchResponse{
		Punch:          toPunchResponse(event),
		Summary:        toSummaryResponse(summary),
		WithinGeofence: resolution.Within,
	}
	if resolution.Zone != nil {
		response.Zone = &resolution.Zone.Name
	}
	return response, nil
}

// checkReasonGate blocks a new check-in while yesterday's auto punch-out is
// still unexplained.
func (a *AttendanceServiceImpl) checkReasonGate(ctx context.Context, userID string, day time.Time) error {
	yesterday := day.AddDate(0, 0, -1)
	previous, err := a.SummaryRepository.GetByUserAndDate(ctx, userID, yesterday)
	if err != nil {
		if errors.Is(err, attendance.ErrSummaryNotFound) {
			return nil
		}
		return err
	}
	if previous.AutoPunchedOutReasonRequired {
		return &attendance.ReasonRequiredError{
			RecordID: previous.ID,
			Date:     previous.Date.Format(dateLayout),
		}
	}
	return nil
}

func (a *AttendanceServiceImpl) applyCheckIn(ctx context.Context, userID string, day, now time.Time) (attendance.Summary, error) {
	summary, err := a.SummaryRepository.GetByUserAndDateForUpdate(ctx, userID, day)
	if err != nil && !errors.Is(err, attendance.ErrSummaryNotFound) {
		return attendance.Summary{}, err
	}
	if err == nil && summary.CheckInTime != nil {
		return attendance.Summary{}, attendance.ErrAlreadyCheckedIn
	}

	checkInStatus, lateMinutes := EvaluateCheckIn(now, a.cfg.ShiftStartClock(), a.cfg.Attendance.GraceMinutes)

	if errors.Is(err, attendance.ErrSummaryNotFound) {
		summary = attendance.Summary{
			UserID: userID,
			Date:   day,
			Status: attendance.StatusIncomplete,
		}
		summary.CheckInTime = &now
		summary.CheckInStatus = &checkInStatus
		summary.LateMinutes = &lateMinutes
		return a.SummaryRepository.Create(ctx, summary)
	}

	summary.CheckInTime = &now
	summary.CheckInStatus = &checkInStatus
	summary.LateMinutes = &lateMinutes
	summary.Status = attendance.StatusIncomplete
	if err := a.SummaryRepository.Update(ctx, summary); err != nil {
		return attendance.Summary{}, err
	}
	return summary, nil
}

func (a *AttendanceServiceImpl) applyCheckOut(ctx context.Context, userID string, day, now time.Time) (attendance.Summary, error) {
	summary, err := a.SummaryRepository.GetByUserAndDateForUpdate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrSummaryNotFound) {
			return attendance.Summary{}, attendance.ErrNotCheckedIn
		}
		return attendance.Summary{}, err
	}
	if summary.CheckInTime == nil {
		return attendance.Summary{}, attendance.ErrNotCheckedIn
	}
	if summary.CheckOutTime != nil {
		return attendance.Summary{}, attendance.ErrAlreadyCheckedOut
	}

	worked := WorkedHours(*summary.CheckInTime, now)
	summary.CheckOutTime = &now
	summary.WorkedHours = &worked
	summary.Status = attendance.StatusComplete
	if err := a.SummaryRepository.Update(ctx, summary); err != nil {
		return attendance.Summary{}, err
	}
	return summary, nil
}

// ListPunches implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListPunches(ctx context.Context, userID string, date time.Time) ([]attendance.PunchResponse, error) {
	punches, err := a.PunchRepository.ListByUserAndDate(ctx, userID, truncateToDay(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}

	responses := make([]attendance.PunchResponse, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, toPunchResponse(p))
	}
	return responses, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	day := truncateToDay(time.Now())
	response := attendance.TodayResponse{
		Date:        day.Format(dateLayout),
		QuickStatus: "ABSENT",
	}

	summary, err := a.SummaryRepository.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrSummaryNotFound) {
			return response, nil
		}
		return attendance.TodayResponse{}, err
	}

	if summary.CheckInTime != nil {
		response.QuickStatus = "IN"
		formatted := summary.CheckInTime.Format(dateTimeLayout)
		response.CheckInTime = &formatted
	}
	if summary.CheckOutTime != nil {
		response.QuickStatus = "OUT"
		formatted := summary.CheckOutTime.Format(dateTimeLayout)
		response.CheckOutTime = &formatted
	}
	response.WorkedHours = summary.WorkedHours
	return response, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListSummariesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 31
	}

	summaries, total, err := a.SummaryRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListSummariesResponse{}, fmt.Errorf("failed to list summaries: %w", err)
	}

	var responses []attendance.SummaryResponse
	for _, s := range summaries {
		responses = append(responses, toSummaryResponse(s))
	}

	return attendance.ListSummariesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Summaries:  responses,
	}, nil
}

// SubmitAutoPunchReason implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitAutoPunchReason(ctx context.Context, req attendance.SubmitReasonRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	var summary attendance.Summary
	err := postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		var err error
		summary, err = a.SummaryRepository.GetByIDForUpdate(txCtx, req.RecordID)
		if err != nil {
			return err
		}
		if summary.UserID != req.UserID {
			return employee.ErrNotResourceOwner
		}
		if !summary.AutoPunchedOutReasonRequired {
			if summary.AutoPunchedOutReason != nil {
				return attendance.ErrReasonAlreadyGiven
			}
			return attendance.ErrNoReasonRequired
		}

		summary.AutoPunchedOutReason = &req.Reason
		summary.AutoPunchedOutReasonRequired = false
		return a.SummaryRepository.Update(txCtx, summary)
	})
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	windowStart := truncateToDay(time.Now()).AddDate(0, 0, -a.cfg.Attendance.OffenderWindowDays)
	counts, countErr := a.SummaryRepository.CountAutoPunchedOutSince(ctx, windowStart)
	details := ""
	if countErr == nil {
		autoCount := counts[req.UserID]
		details = fmt.Sprintf("auto punch-outs in window: %d", autoCount)
		if autoCount >= a.cfg.Attendance.OffenderThreshold {
			a.alertManagersOfRepeatOffender(ctx, req.UserID, autoCount)
		}
	}

	a.recordAudit(ctx, &req.UserID, req.UserID, audit.ActionSubmitReason,
		fmt.Sprintf("Submitted reason for %s: %s", summary.Date.Format(dateLayout), req.Reason+". "+details),
		summary.ID)

	return toSummaryResponse(summary), nil
}

// CorrectSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CorrectSummary(ctx context.Context, req attendance.CorrectSummaryRequest) (attendance.SummaryResponse, error) {
	manager, err := a.EmployeeRepository.GetByUserID(ctx, req.ManagerID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	if manager.Role != employee.RoleManager {
		return attendance.SummaryResponse{}, employee.ErrManagerRoleRequired
	}

	var summary attendance.Summary
	var changes []string

	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		var err error
		summary, err = a.SummaryRepository.GetByIDForUpdate(txCtx, req.RecordID)
		if err != nil {
			return err
		}

		if req.CheckInTime != nil {
			t, err := time.Parse(dateTimeLayout, *req.CheckInTime)
			if err != nil {
				return fmt.Errorf("failed to parse check-in time: %w", err)
			}
			changes = append(changes, fmt.Sprintf("check_in_time -> %s", *req.CheckInTime))
			summary.CheckInTime = &t

			status, lateMinutes := EvaluateCheckIn(t, a.cfg.ShiftStartClock(), a.cfg.Attendance.GraceMinutes)
			summary.CheckInStatus = &status
			summary.LateMinutes = &lateMinutes
		}
		if req.CheckOutTime != nil {
			t, err := time.Parse(dateTimeLayout, *req.CheckOutTime)
			if err != nil {
				return fmt.Errorf("failed to parse check-out time: %w", err)
			}
			changes = append(changes, fmt.Sprintf("check_out_time -> %s", *req.CheckOutTime))
			summary.CheckOutTime = &t
		}

		if summary.CheckInTime != nil && summary.CheckOutTime != nil {
			worked := WorkedHours(*summary.CheckInTime, *summary.CheckOutTime)
			summary.WorkedHours = &worked
			summary.Status = attendance.StatusComplete
		} else if summary.CheckInTime != nil {
			summary.Status = attendance.StatusIncomplete
		}
		summary.IsModified = true

		return a.SummaryRepository.Update(txCtx, summary)
	})
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	for _, change := range changes {
		a.recordAudit(ctx, &req.ManagerID, summary.UserID, audit.ActionCorrect,
			fmt.Sprintf("Corrected %s on attendance %s", change, summary.ID), summary.ID)
	}

	return toSummaryResponse(summary), nil
}

// alertManagersOfRepeatOffender notifies every manager when a reason
// submission reveals the user is at or above the auto punch-out threshold
// for the rolling window.
func (a *AttendanceServiceImpl) alertManagersOfRepeatOffender(ctx context.Context, userID string, autoCount int) {
	name := userID
	if emp, err := a.EmployeeRepository.GetByUserID(ctx, userID); err == nil {
		name = emp.Name
	}

	managers, err := a.EmployeeRepository.ListManagers(ctx)
	if err != nil {
		fmt.Printf("failed to list managers for offender alert: %v\n", err)
		return
	}

	managerIDs := make([]string, 0, len(managers))
	for _, m := range managers {
		managerIDs = append(managerIDs, m.UserID)
	}

	a.notificationService.QueueBulkNotification(ctx, managerIDs, notification.CreateNotificationRequest{
		Type:  notification.TypeSystemAlert,
		Title: "Repeated missed punch-outs",
		Message: fmt.Sprintf("%s was auto punched out %d times in the last %d days.",
			name, autoCount, a.cfg.Attendance.OffenderWindowDays),
	})
}

func (a *AttendanceServiceImpl) recordAudit(ctx context.Context, actorID *string, employeeID, actionType, action, targetID string) {
	entry := audit.Entry{
		ActorID:       actorID,
		EmployeeID:    &employeeID,
		ActionType:    actionType,
		Action:        action,
		TargetTable:   "attendance_summaries",
		TargetID:      &targetID,
		VisibleToUser: true,
	}
	if err := a.auditLogger.Record(ctx, entry); err != nil {
		fmt.Printf("failed to record attendance audit: %v\n", err)
	}
}

func toPunchResponse(p punch.Punch) attendance.PunchResponse {
	return attendance.PunchResponse{
		ID:             p.ID,
		EventType:      string(p.EventType),
		EventTime:      p.EventTime.Format(dateTimeLayout),
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		AccuracyMeters: p.AccuracyMeters,
		Source:         string(p.Source),
		Notes:          p.Notes,
	}
}

func toSummaryResponse(s attendance.Summary) attendance.SummaryResponse {
	response := attendance.SummaryResponse{
		ID:                           s.ID,
		UserID:                       s.UserID,
		Date:                         s.Date.Format(dateLayout),
		WorkedHours:                  s.WorkedHours,
		Status:                       string(s.Status),
		LateMinutes:                  s.LateMinutes,
		IsModified:                   s.IsModified,
		AutoPunchedOut:               s.AutoPunchedOut,
		AutoPunchedOutReasonRequired: s.AutoPunchedOutReasonRequired,
		AutoPunchedOutReason:         s.AutoPunchedOutReason,
	}
	if s.CheckInTime != nil {
		formatted := s.CheckInTime.Format(dateTimeLayout)
		response.CheckInTime = &formatted
	}
	if s.CheckOutTime != nil {
		formatted := s.CheckOutTime.Format(dateTimeLayout)
		response.CheckOutTime = &formatted
	}
	if s.CheckInStatus != nil {
		status := string(*s.CheckInStatus)
		response.CheckInStatus = &status
	}
	return response
}
