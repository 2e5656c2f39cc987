package http

import (
	"net/http"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/audit"
	"github.com/worktrace-hq/worktrace-backend-go/internal/handler/http/response"
)

// ActivityHandler exposes the audit trail
type ActivityHandler interface {
	ListRecent(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	auditLogger audit.Logger
}

func NewActivityHandler(auditLogger audit.Logger) ActivityHandler {
	return &activityHandlerImpl{auditLogger: auditLogger}
}

type activityResponse struct {
	ID          string  `json:"id"`
	ActorID     *string `json:"actor_id"`
	EmployeeID  *string `json:"employee_id"`
	ActionType  string  `json:"action_type"`
	Action      string  `json:"action"`
	TargetTable string  `json:"target_table"`
	TargetID    *string `json:"target_id"`
	Details     string  `json:"details"`
	CreatedAt   string  `json:"created_at"`
}

// ListRecent returns the most recent audit entries
func (h *activityHandlerImpl) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := getIntQueryParam(r, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := h.auditLogger.ListRecent(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, activityResponse{
			ID:          e.ID,
			ActorID:     e.ActorID,
			EmployeeID:  e.EmployeeID,
			ActionType:  e.ActionType,
			Action:      e.Action,
			TargetTable: e.TargetTable,
			TargetID:    e.TargetID,
			Details:     e.Details,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}

	response.Success(w, resp)
}
