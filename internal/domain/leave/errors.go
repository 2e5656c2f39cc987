package leave

import "errors"

var (
	ErrLeaveTypeNotFound        = errors.New("leave type not found")
	ErrApplicationNotFound      = errors.New("leave application not found")
	ErrBalanceNotFound          = errors.New("leave balance not found")
	ErrInsufficientBalance      = errors.New("insufficient leave balance")
	ErrBalanceWouldGoNegative   = errors.New("insufficient balance to approve")
	ErrApplicationNotPending    = errors.New("only pending applications can be processed")
	ErrCannotCancel             = errors.New("this leave can no longer be cancelled")
	ErrLeaveAlreadyStarted      = errors.New("cannot cancel leave that has already started")
	ErrInvalidDuration          = errors.New("leave duration must be greater than zero")
	ErrHalfDaySessionRequired   = errors.New("half-day leave requires a Morning/Afternoon session")
	ErrDocumentRequired         = errors.New("supporting document is required for this leave type")
	ErrAdvanceNoticeRequired    = errors.New("leave type requires more advance notice")
	ErrNoMatchingRule           = errors.New("no entitlement rule matches this employee")
	ErrHolidayNotFound          = errors.New("holiday not found")
	ErrUnlimitedTypeHasNoLedger = errors.New("unlimited leave types carry no balance")
)
