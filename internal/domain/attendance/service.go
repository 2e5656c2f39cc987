package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for punch recording and the
// per-day attendance summary state machine.
type AttendanceService interface {
	// RecordPunch appends an immutable punch event and applies it to the
	// summary for the event's day.
	RecordPunch(ctx context.Context, req RecordPunchRequest) (RecordPunchResponse, error)

	// ListPunches returns the raw punch events for one of the caller's days.
	ListPunches(ctx context.Context, userID string, date time.Time) ([]PunchResponse, error)

	// Today returns the caller's quick status for the current day.
	Today(ctx context.Context, userID string) (TodayResponse, error)

	// History lists summaries for an employee with optional date range.
	History(ctx context.Context, filter HistoryFilter) (ListSummariesResponse, error)

	// SubmitAutoPunchReason stores the justification for an auto punch-out,
	// clears the required flag and re-evaluates the repeat-offender count.
	SubmitAutoPunchReason(ctx context.Context, req SubmitReasonRequest) (SummaryResponse, error)

	// CorrectSummary is the manager override for wrong clock times.
	CorrectSummary(ctx context.Context, req CorrectSummaryRequest) (SummaryResponse, error)

	// RunAutoPunchOut closes every abandoned summary for asOfDate and flags
	// repeat offenders. Idempotent for a given date.
	RunAutoPunchOut(ctx context.Context, asOfDate time.Time) (AutoPunchOutReport, error)
}
