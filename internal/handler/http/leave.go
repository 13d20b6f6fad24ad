package http

import (
	"net/http"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type LeaveHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	ApproveMonthlyUsage(w http.ResponseWriter, r *http.Request)
	UpsertEntitlement(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// GetBalance implements LeaveHandler.
func (l *leaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	result, err := l.leaveService.GetBalance(r.Context(), leave.BalanceRequest{
		EmployeeCode: chi.URLParam(r, "employeeCode"),
		Year:         r.URL.Query().Get("year"),
		Month:        r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveMonthlyUsage implements LeaveHandler.
func (l *leaveHandlerImpl) ApproveMonthlyUsage(w http.ResponseWriter, r *http.Request) {
	var req leave.ApproveMonthlyUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.ApproveMonthlyUsage(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave usage approved", result)
}

// UpsertEntitlement implements LeaveHandler.
func (l *leaveHandlerImpl) UpsertEntitlement(w http.ResponseWriter, r *http.Request) {
	var req leave.UpsertEntitlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.UpsertEntitlement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave entitlement saved", result)
}
