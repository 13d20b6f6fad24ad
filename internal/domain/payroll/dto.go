package payroll

import (
	"strings"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

func validateEmployeeMonth(employeeCode, month string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeCode(employeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if _, ok := validator.IsValidMonth(month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	return errs
}

// ========== SALARY DTOs ==========

type CalculateSalaryRequest struct {
	EmployeeCode string `json:"employee_code"`
	Month        string `json:"month"`
}

func (r *CalculateSalaryRequest) Validate() error {
	if errs := validateEmployeeMonth(r.EmployeeCode, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculateBatchRequest struct {
	Month string `json:"month"`
	// EmployeeCodes defaults to every active employee when empty.
	EmployeeCodes []string `json:"employee_codes,omitempty"`
}

func (r *CalculateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	for _, code := range r.EmployeeCodes {
		if !validator.IsValidEmployeeCode(code) {
			errs = append(errs, validator.ValidationError{Field: "employee_codes", Message: "contains an invalid code: " + code})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FinalizeMonthRequest struct {
	Month string `json:"month"`
}

func (r *FinalizeMonthRequest) Validate() error {
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		return validator.ValidationErrors{{Field: "month", Message: "must be in YYYY-MM format"}}
	}
	return nil
}

type SalaryResponse struct {
	EmployeeCode    string          `json:"employee_code"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	Month           string          `json:"month"`
	Status          string          `json:"status"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	PerDayRate      decimal.Decimal `json:"per_day_rate"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	CycleDays       int             `json:"cycle_days"`
	PaidDays        float64         `json:"paid_days"`
	AbsentDays      float64         `json:"absent_days"`
	LeaveDays       float64         `json:"leave_days"`
	LossOfPayDays   float64         `json:"loss_of_pay_days"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalAdditions  decimal.Decimal `json:"total_additions"`
	OvertimeAmount  decimal.Decimal `json:"overtime_amount"`
	TDSDeduction    decimal.Decimal `json:"tds_deduction"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	IsHeld          bool            `json:"is_held"`
	Breakdown       *Breakdown      `json:"breakdown,omitempty"`
	FinalizedAt     *string         `json:"finalized_at,omitempty"`
	FinalizedBy     *string         `json:"finalized_by,omitempty"`
	UpdatedAt       string          `json:"updated_at"`
}

type BatchError struct {
	EmployeeCode string `json:"employee_code"`
	Code         string `json:"code"`
	Error        string `json:"error"`
}

type BatchCalculationResponse struct {
	Month     string           `json:"month"`
	Succeeded []SalaryResponse `json:"succeeded"`
	Failed    []BatchError     `json:"failed"`
}

type FinalizeMonthResponse struct {
	Month     string   `json:"month"`
	Finalized []string `json:"finalized"`
	Count     int      `json:"count"`
}

// ========== HOLD DTOs ==========

type CreateHoldRequest struct {
	EmployeeCode string  `json:"employee_code"`
	Month        string  `json:"month"`
	Reason       *string `json:"reason,omitempty"`
}

func (r *CreateHoldRequest) Validate() error {
	errs := validateEmployeeMonth(r.EmployeeCode, r.Month)
	if r.Reason != nil && len(*r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "must be at most 500 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HoldResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	Month        string  `json:"month"`
	HoldType     string  `json:"hold_type"`
	Reason       *string `json:"reason,omitempty"`
	Released     bool    `json:"released"`
	ReleasedAt   *string `json:"released_at,omitempty"`
	ReleasedBy   *string `json:"released_by,omitempty"`
	CreatedBy    *string `json:"created_by,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ========== ADJUSTMENT DTOs ==========

type UpsertAdjustmentRequest struct {
	EmployeeCode string          `json:"employee_code"`
	Month        string          `json:"month"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description,omitempty"`
}

func (r *UpsertAdjustmentRequest) Validate() error {
	errs := validateEmployeeMonth(r.EmployeeCode, r.Month)

	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	if r.Type != string(AdjustmentTypeDeduction) && r.Type != string(AdjustmentTypeAddition) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: ErrInvalidAdjustmentType.Error()})
	}
	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
	if r.Category == "" {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is required"})
	} else if len(r.Category) > 50 {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be at most 50 characters"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: ErrNegativeAdjustmentAmnt.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAdjustmentsRequest struct {
	EmployeeCode string
	Month        string
}

func (r *ListAdjustmentsRequest) Validate() error {
	if errs := validateEmployeeMonth(r.EmployeeCode, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustmentResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	Month        string          `json:"month"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description,omitempty"`
	CreatedBy    *string         `json:"created_by,omitempty"`
	UpdatedAt    string          `json:"updated_at"`
}

// ========== OVERTIME DTOs ==========

type SetOvertimeRequest struct {
	EmployeeCode string `json:"employee_code"`
	Month        string `json:"month"`
	Enabled      bool   `json:"enabled"`
}

func (r *SetOvertimeRequest) Validate() error {
	if errs := validateEmployeeMonth(r.EmployeeCode, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}
