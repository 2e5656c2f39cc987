package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/attendance"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/audit"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/notification"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/punch"
	"github.com/worktrace-hq/worktrace-backend-go/internal/repository/postgresql"
)

// RunAutoPunchOut implements attendance.AttendanceService. It closes every
// summary for asOfDate that has a check-in but no check-out, stamping the
// configured shift end as the check-out time. Each record is processed in its
// own transaction so one failure cannot poison the batch, and the open-record
// filter makes a re-run for the same date a no-op.
func (a *AttendanceServiceImpl) RunAutoPunchOut(ctx context.Context, asOfDate time.Time) (attendance.AutoPunchOutReport, error) {
	day := truncateToDay(asOfDate)
	report := attendance.AutoPunchOutReport{Date: day.Format(dateLayout)}

	open, err := a.SummaryRepository.ListOpenForDate(ctx, day)
	if err != nil {
		return report, fmt.Errorf("failed to list open summaries: %w", err)
	}

	shiftEnd := ShiftEndOn(day, a.cfg.ShiftEndClock())

	processedUsers := make(map[string]struct{})
	for _, candidate := range open {
		if err := a.autoPunchOutOne(ctx, candidate.ID, shiftEnd); err != nil {
			report.Failed++
			fmt.Printf("auto punch-out failed for summary %s: %v\n", candidate.ID, err)
			continue
		}
		report.Processed++
		processedUsers[candidate.UserID] = struct{}{}
	}

	offenders, notified, err := a.flagRepeatOffenders(ctx, day, processedUsers)
	if err != nil {
		fmt.Printf("repeat offender detection failed: %v\n", err)
	}
	report.RepeatOffenders = offenders
	report.ManagersNotified = notified

	return report, nil
}

func (a *AttendanceServiceImpl) autoPunchOutOne(ctx context.Context, summaryID string, shiftEnd time.Time) error {
	return postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		summary, err := a.SummaryRepository.GetByIDForUpdate(txCtx, summaryID)
		if err != nil {
			return err
		}
		// Re-check under the lock; a concurrent run may have closed it.
		if summary.CheckOutTime != nil || summary.Status != attendance.StatusIncomplete {
			return nil
		}
		if summary.CheckInTime == nil {
			return nil
		}

		worked := WorkedHours(*summary.CheckInTime, shiftEnd)
		summary.CheckOutTime = &shiftEnd
		summary.WorkedHours = &worked
		summary.Status = attendance.StatusMissingPunch
		summary.AutoPunchedOut = true
		summary.AutoPunchedOutReasonRequired = true
		if err := a.SummaryRepository.Update(txCtx, summary); err != nil {
			return err
		}

		_, err = a.PunchRepository.Create(txCtx, punch.Punch{
			UserID:    summary.UserID,
			EventType: punch.EventCheckOut,
			EventTime: shiftEnd,
			Source:    punch.SourceSystem,
		})
		if err != nil {
			return fmt.Errorf("failed to create system punch: %w", err)
		}

		entry := audit.Entry{
			EmployeeID:    &summary.UserID,
			ActionType:    audit.ActionAutoPunchOut,
			Action:        fmt.Sprintf("Auto punch-out at %s for %s", shiftEnd.Format(dateTimeLayout), summary.Date.Format(dateLayout)),
			TargetTable:   "attendance_summaries",
			TargetID:      &summary.ID,
			VisibleToUser: true,
		}
		if err := a.auditLogger.Record(txCtx, entry); err != nil {
			fmt.Printf("failed to record auto punch-out audit: %v\n", err)
		}
		return nil
	})
}

// flagRepeatOffenders counts auto punch-outs over the rolling window ending
// at day and fires one aggregate manager alert plus a personal reminder per
// offender. Only users whose records were closed in the current pass are
// considered, so a re-run for an already-processed date notifies nobody.
func (a *AttendanceServiceImpl) flagRepeatOffenders(ctx context.Context, day time.Time, processedUsers map[string]struct{}) ([]string, int, error) {
	if len(processedUsers) == 0 {
		return nil, 0, nil
	}

	windowStart := day.AddDate(0, 0, -a.cfg.Attendance.OffenderWindowDays)
	counts, err := a.SummaryRepository.CountAutoPunchedOutSince(ctx, windowStart)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count auto punch-outs: %w", err)
	}

	var offenders []string
	for userID := range processedUsers {
		if counts[userID] >= a.cfg.Attendance.OffenderThreshold {
			offenders = append(offenders, userID)
		}
	}
	sort.Strings(offenders)

	if len(offenders) == 0 {
		return nil, 0, nil
	}

	managers, err := a.EmployeeRepository.ListManagers(ctx)
	if err != nil {
		return offenders, 0, fmt.Errorf("failed to list managers: %w", err)
	}

	managerIDs := make([]string, 0, len(managers))
	for _, m := range managers {
		managerIDs = append(managerIDs, m.UserID)
	}

	a.notificationService.QueueBulkNotification(ctx, managerIDs, notification.CreateNotificationRequest{
		Type:  notification.TypeSystemAlert,
		Title: "Repeated missed punch-outs",
		Message: fmt.Sprintf("%d employee(s) were auto punched out %d or more times in the last %d days.",
			len(offenders), a.cfg.Attendance.OffenderThreshold, a.cfg.Attendance.OffenderWindowDays),
	})

	for _, userID := range offenders {
		a.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
			RecipientID: userID,
			Type:        notification.TypeAttendance,
			Title:       "Please remember to punch out",
			Message: fmt.Sprintf("You were automatically punched out %d or more times in the last %d days. Please submit reasons and punch out on time.",
				a.cfg.Attendance.OffenderThreshold, a.cfg.Attendance.OffenderWindowDays),
		})
	}

	entry := audit.Entry{
		ActionType:  audit.ActionSystemAlert,
		Action:      fmt.Sprintf("Flagged %d repeat offender(s) after auto punch-out for %s", len(offenders), day.Format(dateLayout)),
		TargetTable: "attendance_summaries",
		Details:     fmt.Sprintf("offenders=%v window_days=%d threshold=%d", offenders, a.cfg.Attendance.OffenderWindowDays, a.cfg.Attendance.OffenderThreshold),
	}
	if err := a.auditLogger.Record(ctx, entry); err != nil {
		fmt.Printf("failed to record offender audit: %v\n", err)
	}

	return offenders, len(managerIDs), nil
}
