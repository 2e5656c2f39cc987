package attendance

import (
	"time"
)

// Status is the lifecycle state of a daily summary.
type Status string

const (
	StatusAbsent       Status = "absent"
	StatusIncomplete   Status = "incomplete"
	StatusComplete     Status = "complete"
	StatusMissingPunch Status = "missing-punch"
)

// CheckInStatus refines a summary once a check-in exists, by comparing the
// check-in time against shift start plus the grace period.
type CheckInStatus string

const (
	CheckInPresent CheckInStatus = "present"
	CheckInLate    CheckInStatus = "late"
)

// Summary is the derived per-user-per-day attendance record. It is created
// lazily on the first punch of a day and owned exclusively by the aggregator:
// punches, the auto punch-out job and manager corrections are the only
// mutators, each inside a row-locked transaction.
type Summary struct {
	ID            string
	UserID        string
	Date          time.Time // day, midnight UTC
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	WorkedHours   *float64 // 2 decimals
	Status        Status
	CheckInStatus *CheckInStatus
	LateMinutes   *int
	IsModified    bool

	AutoPunchedOut               bool
	AutoPunchedOutReasonRequired bool
	AutoPunchedOutReason         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
