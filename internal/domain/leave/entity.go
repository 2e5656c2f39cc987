package leave

import (
	"time"
)

// LeaveType entity
type LeaveType struct {
	ID               string
	Name             string
	IsPaid           bool
	IsCarryForward   bool
	CarryForwardDays float64 // cap carried into a new year when allowed
	RequiresDocument bool
	IsUnlimited      bool
	MinNoticeDays    int // 0 = use the configured default
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EntitlementRule maps (leave type, employment type, tenure band) to an
// annual allotment for a given effective year. First matching rule wins.
type EntitlementRule struct {
	ID              string
	LeaveTypeID     string
	EmploymentType  string
	MinYearsService int
	MaxYearsService int
	EffectiveYear   int
	EntitlementDays float64
	CreatedAt       time.Time
}

// Balance is the per-user-per-type-per-year ledger row. Invariant held by
// every mutator: RemainingBalance == TotalEntitlement + InitialCarryForward
// - DaysTaken, with RemainingBalance >= 0 and DaysTaken >= 0.
type Balance struct {
	ID                  string
	UserID              string
	LeaveTypeID         string
	Year                int
	TotalEntitlement    float64
	InitialCarryForward float64
	DaysTaken           float64
	RemainingBalance    float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ApplicationStatus is the leave workflow state.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "Pending"
	StatusApproved  ApplicationStatus = "Approved"
	StatusRejected  ApplicationStatus = "Rejected"
	StatusCancelled ApplicationStatus = "Cancelled"
)

// HalfDaySession picks which half of the day a half-day leave covers.
type HalfDaySession string

const (
	SessionMorning   HalfDaySession = "Morning"
	SessionAfternoon HalfDaySession = "Afternoon"
)

type Application struct {
	ID             string
	UserID         string
	LeaveTypeID    string
	StartDate      time.Time
	EndDate        time.Time
	HalfDay        bool
	HalfDaySession *HalfDaySession
	Duration       float64 // working days, one decimal
	Reason         string
	DocumentURL    *string
	Status         ApplicationStatus
	Year           int
	ApprovedBy     *string
	ApprovedAt     *time.Time
	RejectedBy     *string
	RejectedAt     *time.Time
	CancelledBy    *string
	CancelledAt    *time.Time
	ManagerRemark  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DeductedDays is the amount approve subtracts from the balance and cancel
// restores: half a day for half-day leave, otherwise the computed duration.
func (a Application) DeductedDays() float64 {
	if a.HalfDay {
		return 0.5
	}
	return a.Duration
}

// Holiday excludes dates from working-day counts. A recurring holiday
// re-anchors its month/day to the year being evaluated.
type Holiday struct {
	ID          string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	IsRecurring bool
	CreatedAt   time.Time
}
