package http

import (
	"net/http"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type AttendanceHandler interface {
	GetDaily(w http.ResponseWriter, r *http.Request)
	GetMonthly(w http.ResponseWriter, r *http.Request)

	SubmitRegularizations(w http.ResponseWriter, r *http.Request)
	ListRegularizations(w http.ResponseWriter, r *http.Request)
	DeleteRegularization(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService     attendance.AttendanceService
	regularizationService attendance.RegularizationService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, regularizationService attendance.RegularizationService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService:     attendanceService,
		regularizationService: regularizationService,
	}
}

// GetDaily implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetDaily(r.Context(), attendance.DailyRecordRequest{
		EmployeeCode: chi.URLParam(r, "employeeCode"),
		Date:         r.URL.Query().Get("date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetMonthly(r.Context(), attendance.MonthlyAttendanceRequest{
		EmployeeCode: chi.URLParam(r, "employeeCode"),
		Month:        r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitRegularizations implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitRegularizations(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitRegularizationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.regularizationService.SubmitRegularizations(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Regularizations saved", result)
}

// ListRegularizations implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListRegularizations(w http.ResponseWriter, r *http.Request) {
	result, err := h.regularizationService.ListRegularizations(r.Context(), attendance.ListRegularizationsRequest{
		EmployeeCode: chi.URLParam(r, "employeeCode"),
		Month:        r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteRegularization implements AttendanceHandler.
func (h *attendanceHandlerImpl) DeleteRegularization(w http.ResponseWriter, r *http.Request) {
	err := h.regularizationService.DeleteRegularization(r.Context(), chi.URLParam(r, "employeeCode"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Regularization deleted", nil)
}
