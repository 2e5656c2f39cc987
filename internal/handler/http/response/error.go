package response

import (
	"errors"
	"net/http"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/attendance"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/employee"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/geofence"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/notification"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/punch"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Blocking reason gate carries the offending record id
	var reasonRequired *attendance.ReasonRequiredError
	if errors.As(err, &reasonRequired) {
		ConflictWithDetails(w, reasonRequired.Error(), map[string]string{
			"record_id": reasonRequired.RecordID,
			"date":      reasonRequired.Date,
		})
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, employee.ErrManagerRoleRequired):
		Forbidden(w, "Manager role required")
	case errors.Is(err, employee.ErrNotResourceOwner):
		Forbidden(w, "Not authorized to act on this resource")
	case errors.Is(err, employee.ErrMissingEmploymentType):
		BadRequest(w, "Employee has no employment type", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in recorded today")
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrReasonAlreadyGiven):
		Conflict(w, "A reason has already been submitted")
	case errors.Is(err, attendance.ErrNoReasonRequired):
		BadRequest(w, "This record does not require a reason", nil)
	case errors.Is(err, punch.ErrInvalidEventType):
		BadRequest(w, "Invalid punch event type", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrBalanceWouldGoNegative):
		BadRequest(w, "Insufficient balance to approve", nil)
	case errors.Is(err, leave.ErrApplicationNotPending):
		Conflict(w, "Only pending applications can be processed")
	case errors.Is(err, leave.ErrCannotCancel):
		Conflict(w, "This leave can no longer be cancelled")
	case errors.Is(err, leave.ErrLeaveAlreadyStarted):
		Conflict(w, "Cannot cancel leave that has already started")
	case errors.Is(err, leave.ErrInvalidDuration):
		BadRequest(w, "Leave duration must be greater than zero", nil)
	case errors.Is(err, leave.ErrHalfDaySessionRequired):
		BadRequest(w, "Half-day leave requires a Morning/Afternoon session", nil)
	case errors.Is(err, leave.ErrDocumentRequired):
		BadRequest(w, "Supporting document is required for this leave type", nil)
	case errors.Is(err, leave.ErrAdvanceNoticeRequired):
		BadRequest(w, "Leave type requires more advance notice", nil)
	case errors.Is(err, leave.ErrNoMatchingRule):
		NotFound(w, "No entitlement rule matches this employee")
	case errors.Is(err, leave.ErrUnlimitedTypeHasNoLedger):
		BadRequest(w, "Unlimited leave types carry no balance", nil)

	// Geofence domain errors
	case errors.Is(err, geofence.ErrZoneNotFound):
		NotFound(w, "Geofence zone not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Notification does not belong to this user")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
