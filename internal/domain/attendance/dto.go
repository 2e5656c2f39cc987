package attendance

import (
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/punch"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// RecordPunchRequest is a raw punch from a client surface.
type RecordPunchRequest struct {
	UserID         string   `json:"-"`
	EventType      string   `json:"event_type"` // CheckIn | CheckOut
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters"`
	Source         string   `json:"source"`
}

func (r RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EventType != string(punch.EventCheckIn) && r.EventType != string(punch.EventCheckOut) {
		errs = append(errs, validator.ValidationError{Field: "event_type", Message: "must be CheckIn or CheckOut"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "out of range"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "out of range"})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "latitude and longitude must be provided together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitReasonRequest explains a prior auto punch-out.
type SubmitReasonRequest struct {
	UserID   string `json:"-"`
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

func (r SubmitReasonRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{Field: "record_id", Message: "required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CorrectSummaryRequest is an administrative override of a summary.
type CorrectSummaryRequest struct {
	RecordID     string  `json:"-"`
	ManagerID    string  `json:"-"`
	CheckInTime  *string `json:"check_in_time"`  // "2006-01-02 15:04:05"
	CheckOutTime *string `json:"check_out_time"` // "2006-01-02 15:04:05"
}

// HistoryFilter selects summaries for listing.
type HistoryFilter struct {
	UserID    string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

// ============= Response DTOs =============

type SummaryResponse struct {
	ID                           string   `json:"id"`
	UserID                       string   `json:"user_id"`
	Date                         string   `json:"date"`
	CheckInTime                  *string  `json:"check_in_time"`
	CheckOutTime                 *string  `json:"check_out_time"`
	WorkedHours                  *float64 `json:"worked_hours"`
	Status                       string   `json:"status"`
	CheckInStatus                *string  `json:"check_in_status,omitempty"`
	LateMinutes                  *int     `json:"late_minutes,omitempty"`
	IsModified                   bool     `json:"is_modified"`
	AutoPunchedOut               bool     `json:"auto_punched_out"`
	AutoPunchedOutReasonRequired bool     `json:"auto_punched_out_reason_required"`
	AutoPunchedOutReason         *string  `json:"auto_punched_out_reason,omitempty"`
}

type PunchResponse struct {
	ID             string   `json:"id"`
	EventType      string   `json:"event_type"`
	EventTime      string   `json:"event_time"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	Source         string   `json:"source"`
	Notes          *string  `json:"notes,omitempty"`
}

// RecordPunchResponse pairs the stored event with the refreshed summary.
type RecordPunchResponse struct {
	Punch          PunchResponse   `json:"punch"`
	Summary        SummaryResponse `json:"summary"`
	WithinGeofence bool            `json:"within_geofence"`
	Zone           *string         `json:"zone,omitempty"`
}

// TodayResponse is the quick IN/OUT/ABSENT status for the dashboard.
type TodayResponse struct {
	Date         string   `json:"date"`
	QuickStatus  string   `json:"quick_status"` // IN | OUT | ABSENT
	CheckInTime  *string  `json:"check_in_time"`
	CheckOutTime *string  `json:"check_out_time"`
	WorkedHours  *float64 `json:"worked_hours"`
}

type ListSummariesResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Summaries  []SummaryResponse `json:"summaries"`
}

// AutoPunchOutReport is the run report of one scheduler pass.
type AutoPunchOutReport struct {
	Date             string   `json:"date"`
	Processed        int      `json:"processed"`
	Failed           int      `json:"failed"`
	RepeatOffenders  []string `json:"repeat_offenders"`
	ManagersNotified int      `json:"managers_notified"`
}
