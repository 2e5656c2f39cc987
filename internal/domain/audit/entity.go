package audit

import (
	"time"
)

// Entry is one audit trail record. ActorID is nil for system-initiated
// actions such as the auto punch-out job.
type Entry struct {
	ID            string
	ActorID       *string
	EmployeeID    *string
	ActionType    string // e.g. "PUNCH IN", "AUTO PUNCH OUT", "APPROVE LEAVE"
	Action        string
	TargetTable   string
	TargetID      *string
	Details       string
	VisibleToUser bool
	CreatedAt     time.Time
}

// Action types recorded by the core.
const (
	ActionPunchIn         = "PUNCH IN"
	ActionPunchOut        = "PUNCH OUT"
	ActionAutoPunchOut    = "AUTO PUNCH OUT"
	ActionCorrect         = "CORRECT ATTENDANCE"
	ActionSubmitReason    = "SUBMIT AUTO PUNCH REASON"
	ActionSystemAlert     = "SYSTEM_ALERT"
	ActionApplyLeave      = "APPLY LEAVE"
	ActionApproveLeave    = "APPROVE LEAVE"
	ActionRejectLeave     = "REJECT LEAVE"
	ActionCancelLeave     = "CANCEL LEAVE"
	ActionGenerateBalance = "GENERATE BALANCE"
)
