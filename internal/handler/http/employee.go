package http

import (
	"net/http"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/employee"
	"github.com/worktrace-hq/worktrace-backend-go/internal/handler/http/response"
)

// EmployeeHandler defines the employee directory handler interface
type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepository employee.EmployeeRepository
}

func NewEmployeeHandler(employeeRepository employee.EmployeeRepository) EmployeeHandler {
	return &employeeHandlerImpl{employeeRepository: employeeRepository}
}

type employeeResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	EmploymentType string `json:"employment_type"`
	JoinDate       string `json:"join_date,omitempty"`
	IsActive       bool   `json:"is_active"`
}

func toEmployeeResponse(e employee.Employee) employeeResponse {
	resp := employeeResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		Name:           e.Name,
		Email:          e.Email,
		Role:           string(e.Role),
		EmploymentType: string(e.EmploymentType),
		IsActive:       e.IsActive,
	}
	if e.JoinDate != nil {
		resp.JoinDate = e.JoinDate.Format(time.DateOnly)
	}
	return resp
}

// List returns all active employees
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeRepository.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, toEmployeeResponse(e))
	}

	response.Success(w, resp)
}

// Me returns the authenticated employee's profile
func (h *employeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	emp, err := h.employeeRepository.GetByUserID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toEmployeeResponse(emp))
}
