package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/employee"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
	"github.com/worktrace-hq/worktrace-backend-go/internal/handler/http/response"
)

// LeaveHandler defines the leave handler interface
type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	ListApplications(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	MyBalances(w http.ResponseWriter, r *http.Request)
	AllBalances(w http.ResponseWriter, r *http.Request)
	GenerateBalance(w http.ResponseWriter, r *http.Request)
	BackfillBalances(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// ListTypes returns the active leave type catalog
func (h *leaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}

// Apply submits a new leave application for the authenticated user
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.UserID = userID

	result, err := h.leaveService.ApplyLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", result)
}

// ListApplications lists leave applications. Employees see their own;
// managers see everyone and may filter by user_id.
func (h *leaveHandlerImpl) ListApplications(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := leave.ApplicationFilter{
		Page:  getIntQueryParam(r, "page", 1),
		Limit: getIntQueryParam(r, "limit", 20),
	}

	if getRoleFromContext(r) == employee.RoleManager {
		if requested := r.URL.Query().Get("user_id"); requested != "" {
			filter.UserID = &requested
		}
	} else {
		filter.UserID = &userID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if year := getIntQueryParam(r, "year", 0); year != 0 {
		filter.Year = &year
	}

	result, err := h.leaveService.ListApplications(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve approves a pending application and deducts the balance
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	managerID := getUserIDFromContext(r)
	if managerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	applicationID := chi.URLParam(r, "id")
	if applicationID == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	result, err := h.leaveService.ApproveLeave(r.Context(), managerID, applicationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave approved", result)
}

// Reject rejects a pending application with a reason
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	managerID := getUserIDFromContext(r)
	if managerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	applicationID := chi.URLParam(r, "id")
	if applicationID == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ManagerID = managerID
	req.ApplicationID = applicationID

	result, err := h.leaveService.RejectLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave rejected", result)
}

// Cancel cancels an application, restoring the balance when it was approved
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	applicationID := chi.URLParam(r, "id")
	if applicationID == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	result, err := h.leaveService.CancelLeave(r.Context(), actorID, applicationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave cancelled", result)
}

// MyBalances returns the authenticated user's ledger for a year
func (h *leaveHandlerImpl) MyBalances(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	year := getIntQueryParam(r, "year", time.Now().Year())
	balances, err := h.leaveService.MyBalances(r.Context(), userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// AllBalances returns every employee's ledger for a year
func (h *leaveHandlerImpl) AllBalances(w http.ResponseWriter, r *http.Request) {
	year := getIntQueryParam(r, "year", time.Now().Year())
	balances, err := h.leaveService.AllBalances(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// GenerateBalance creates missing current-year balances for one employee
func (h *leaveHandlerImpl) GenerateBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	created, err := h.leaveService.GenerateBalance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balances generated", map[string]int{"created": created})
}

// BackfillBalances runs balance generation for every active employee
func (h *leaveHandlerImpl) BackfillBalances(w http.ResponseWriter, r *http.Request) {
	report, err := h.leaveService.BackfillBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backfill completed", report)
}

// ListHolidays returns the holiday calendar
func (h *leaveHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.leaveService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, holidays)
}

// CreateHoliday adds a holiday to the calendar
func (h *leaveHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", result)
}

// DeleteHoliday removes a holiday from the calendar
func (h *leaveHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := h.leaveService.DeleteHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
