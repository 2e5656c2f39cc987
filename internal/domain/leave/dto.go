package leave

import (
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

type ApplyLeaveRequest struct {
	UserID         string  `json:"-"`
	LeaveTypeID    string  `json:"leave_type_id"`
	StartDate      string  `json:"start_date"` // YYYY-MM-DD
	EndDate        string  `json:"end_date"`   // YYYY-MM-DD
	Reason         string  `json:"reason"`
	HalfDay        bool    `json:"half_day"`
	HalfDaySession *string `json:"half_day_session"` // Morning | Afternoon
	DocumentURL    *string `json:"document_url"`
}

func (r ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "required"})
	}
	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "required"})
	}
	if r.HalfDaySession != nil &&
		*r.HalfDaySession != string(SessionMorning) && *r.HalfDaySession != string(SessionAfternoon) {
		errs = append(errs, validator.ValidationError{Field: "half_day_session", Message: "must be Morning or Afternoon"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLeaveRequest struct {
	ManagerID     string `json:"-"`
	ApplicationID string `json:"-"`
	Reason        string `json:"reason"`
}

func (r RejectLeaveRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "required"}}
	}
	return nil
}

type CreateHolidayRequest struct {
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsRecurring bool   `json:"is_recurring"`
}

func (r CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "required"})
	}
	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if r.EndDate != "" && !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplicationFilter selects applications for listing.
type ApplicationFilter struct {
	UserID *string
	Status *string
	Year   *int
	Page   int
	Limit  int
}

// ============= Response DTOs =============

type LeaveTypeResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	IsPaid           bool    `json:"is_paid"`
	IsCarryForward   bool    `json:"is_carry_forward"`
	CarryForwardDays float64 `json:"carry_forward_days"`
	RequiresDocument bool    `json:"requires_document"`
	IsUnlimited      bool    `json:"is_unlimited"`
	MinNoticeDays    int     `json:"min_notice_days"`
	IsActive         bool    `json:"is_active"`
}

type BalanceResponse struct {
	ID                  string  `json:"id"`
	UserID              string  `json:"user_id"`
	LeaveTypeID         string  `json:"leave_type_id"`
	LeaveTypeName       string  `json:"leave_type_name,omitempty"`
	Year                int     `json:"year"`
	TotalEntitlement    float64 `json:"total_entitlement"`
	InitialCarryForward float64 `json:"initial_carry_forward"`
	DaysTaken           float64 `json:"days_taken"`
	RemainingBalance    float64 `json:"remaining_balance"`
}

type ApplicationResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	LeaveTypeID    string   `json:"leave_type_id"`
	LeaveTypeName  string   `json:"leave_type_name,omitempty"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	HalfDay        bool     `json:"half_day"`
	HalfDaySession *string  `json:"half_day_session,omitempty"`
	Duration       float64  `json:"duration"`
	Reason         string   `json:"reason"`
	Status         string   `json:"status"`
	ApprovedBy     *string  `json:"approved_by,omitempty"`
	RejectedBy     *string  `json:"rejected_by,omitempty"`
	CancelledBy    *string  `json:"cancelled_by,omitempty"`
	ManagerRemark  *string  `json:"manager_remark,omitempty"`
	DocumentURL    *string  `json:"document_url,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

type ListApplicationsResponse struct {
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	Applications []ApplicationResponse `json:"applications"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsRecurring bool   `json:"is_recurring"`
}

// BackfillReport summarizes a balance backfill run.
type BackfillReport struct {
	EmployeesProcessed int `json:"employees_processed"`
	BalancesCreated    int `json:"balances_created"`
}
