package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out today")
	ErrNotCheckedIn       = errors.New("you have not checked in yet")
	ErrSummaryNotFound    = errors.New("attendance record not found")
	ErrReasonAlreadyGiven = errors.New("a reason has already been submitted for this record")
	ErrNoReasonRequired   = errors.New("this record does not require a reason")
)

// ReasonRequiredError blocks a check-in while a previous day's auto
// punch-out is still unexplained. RecordID identifies the blocking summary
// so clients can prompt for the missing reason.
type ReasonRequiredError struct {
	RecordID string
	Date     string
}

func (e *ReasonRequiredError) Error() string {
	return fmt.Sprintf("check-in blocked: a reason is required for the auto punch-out on %s", e.Date)
}
