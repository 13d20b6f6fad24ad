package http

import (
	"net/http"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/auth"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/handler/http/response"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	// Salaries
	Calculate(w http.ResponseWriter, r *http.Request)
	CalculateBatch(w http.ResponseWriter, r *http.Request)
	GetSalary(w http.ResponseWriter, r *http.Request)
	ListSalaries(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	FinalizeMonth(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)

	// Payslips
	GetPayslip(w http.ResponseWriter, r *http.Request)
	GetMyPayslip(w http.ResponseWriter, r *http.Request)

	// Holds
	CreateHold(w http.ResponseWriter, r *http.Request)
	ReleaseHold(w http.ResponseWriter, r *http.Request)

	// Adjustments
	UpsertAdjustment(w http.ResponseWriter, r *http.Request)
	ListAdjustments(w http.ResponseWriter, r *http.Request)
	DeleteAdjustment(w http.ResponseWriter, r *http.Request)

	// Overtime
	SetOvertime(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	payslipService payroll.PayslipService
}

func NewPayrollHandler(payrollService payroll.PayrollService, payslipService payroll.PayslipService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, payslipService: payslipService}
}

// ========== SALARIES ==========

func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CalculateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CalculateBatch(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CalculateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetSalary(r.Context(), chi.URLParam(r, "employeeCode"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListSalaries(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.FinalizeSalary(r.Context(), chi.URLParam(r, "employeeCode"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary finalized", result)
}

func (h *payrollHandlerImpl) FinalizeMonth(w http.ResponseWriter, r *http.Request) {
	var req payroll.FinalizeMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.FinalizeMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salaries finalized", result)
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	content, err := h.payrollService.ExportRegister(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, xlsxContentType, "salary_register_"+month+".xlsx", content)
}

// ========== PAYSLIPS ==========

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	h.writePayslip(w, r, chi.URLParam(r, "employeeCode"))
}

// GetMyPayslip serves the payslip of the employee linked to the token.
func (h *payrollHandlerImpl) GetMyPayslip(w http.ResponseWriter, r *http.Request) {
	code, ok := jwt.EmployeeCodeFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrEmployeeClaimMissing)
		return
	}
	h.writePayslip(w, r, code)
}

func (h *payrollHandlerImpl) writePayslip(w http.ResponseWriter, r *http.Request, employeeCode string) {
	slip, err := h.payslipService.GetPayslip(r.Context(), employeeCode, chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if slip.URL != "" {
		w.Header().Set("X-Payslip-URL", slip.URL)
	}
	response.File(w, "application/pdf", slip.FileName, slip.Content)
}

// ========== HOLDS ==========

func (h *payrollHandlerImpl) CreateHold(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateHold(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary held", result)
}

func (h *payrollHandlerImpl) ReleaseHold(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ReleaseHold(r.Context(), chi.URLParam(r, "employeeCode"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary hold released", result)
}

// ========== ADJUSTMENTS ==========

func (h *payrollHandlerImpl) UpsertAdjustment(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpsertAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListAdjustments(r.Context(), payroll.ListAdjustmentsRequest{
		EmployeeCode: chi.URLParam(r, "employeeCode"),
		Month:        chi.URLParam(r, "month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteAdjustment(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteAdjustment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary adjustment deleted", nil)
}

// ========== OVERTIME ==========

func (h *payrollHandlerImpl) SetOvertime(w http.ResponseWriter, r *http.Request) {
	var req payroll.SetOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeCode = chi.URLParam(r, "employeeCode")
	req.Month = chi.URLParam(r, "month")

	if err := h.payrollService.SetOvertime(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime updated", req)
}
