package leave

import (
	"fmt"
	"strconv"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
)

// ========== BALANCE DTOs ==========

type BalanceRequest struct {
	EmployeeCode string
	Year         string
	Month        string // optional, YYYY-MM
}

func (r *BalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if r.Year != "" {
		if y, err := strconv.Atoi(r.Year); err != nil || y < 2000 || y > 2100 {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
		}
	}
	if r.Month != "" {
		m, ok := validator.IsValidMonth(r.Month)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
		} else if r.Year != "" && strconv.Itoa(m.Year()) != r.Year {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must fall in the requested year"})
		}
	}
	if r.Year == "" && r.Month == "" {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year or month is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceResponse struct {
	EmployeeCode       string  `json:"employee_code"`
	Year               int     `json:"year"`
	Month              string  `json:"month,omitempty"`
	AllowedLeaves      float64 `json:"allowed_leaves"`
	UsedPaidLeaves     float64 `json:"used_paid_leaves"`
	UsedCasualLeaves   float64 `json:"used_casual_leaves"`
	RemainingLeaves    float64 `json:"remaining_leaves"`
	ExcessLeaves       float64 `json:"excess_leaves"`
	MonthPaidLeaves    float64 `json:"month_paid_leaves"`
	MonthCasualLeaves  float64 `json:"month_casual_leaves"`
	MonthLossOfPayDays float64 `json:"month_loss_of_pay_days"`
	ExceedsQuota       bool    `json:"exceeds_quota"`
}

// ========== ENTITLEMENT DTOs ==========

type UpsertEntitlementRequest struct {
	EmployeeCode     string   `json:"employee_code"`
	Year             int      `json:"year"`
	AllowedLeaves    float64  `json:"allowed_leaves"`
	UsedPaidLeaves   *float64 `json:"used_paid_leaves,omitempty"`
	UsedCasualLeaves *float64 `json:"used_casual_leaves,omitempty"`
}

func (r *UpsertEntitlementRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if r.AllowedLeaves < 0 {
		errs = append(errs, validator.ValidationError{Field: "allowed_leaves", Message: "must be non-negative"})
	}
	if r.UsedPaidLeaves != nil && *r.UsedPaidLeaves < 0 {
		errs = append(errs, validator.ValidationError{Field: "used_paid_leaves", Message: "must be non-negative"})
	}
	if r.UsedCasualLeaves != nil && *r.UsedCasualLeaves < 0 {
		errs = append(errs, validator.ValidationError{Field: "used_casual_leaves", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntitlementResponse struct {
	EmployeeCode     string  `json:"employee_code"`
	Year             int     `json:"year"`
	AllowedLeaves    float64 `json:"allowed_leaves"`
	UsedPaidLeaves   float64 `json:"used_paid_leaves"`
	UsedCasualLeaves float64 `json:"used_casual_leaves"`
	RemainingLeaves  float64 `json:"remaining_leaves"`
}

// ========== MONTHLY USAGE DTOs ==========

type LeaveDayRequest struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type ApproveMonthlyUsageRequest struct {
	EmployeeCode     string            `json:"employee_code"`
	Month            string            `json:"month"`
	PaidLeaveDates   []LeaveDayRequest `json:"paid_leave_dates"`
	CasualLeaveDates []LeaveDayRequest `json:"casual_leave_dates"`
}

func (r *ApproveMonthlyUsageRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	seen := make(map[string]bool)
	check := func(field string, days []LeaveDayRequest) {
		for i, d := range days {
			name := fmt.Sprintf("%s[%d]", field, i)
			if _, ok := validator.IsValidDate(d.Date); !ok {
				errs = append(errs, validator.ValidationError{Field: name + ".date", Message: "must be in YYYY-MM-DD format"})
				continue
			}
			if d.Value != 0.5 && d.Value != 1 {
				errs = append(errs, validator.ValidationError{Field: name + ".value", Message: ErrInvalidLeaveValue.Error()})
			}
			if seen[d.Date] {
				errs = append(errs, validator.ValidationError{Field: name + ".date", Message: ErrDuplicateLeaveDate.Error()})
			}
			seen[d.Date] = true
		}
	}
	check("paid_leave_dates", r.PaidLeaveDates)
	check("casual_leave_dates", r.CasualLeaveDates)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveDayResponse struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type MonthlyUsageResponse struct {
	EmployeeCode     string             `json:"employee_code"`
	Month            string             `json:"month"`
	PaidLeaveDates   []LeaveDayResponse `json:"paid_leave_dates"`
	CasualLeaveDates []LeaveDayResponse `json:"casual_leave_dates"`
	PaidLeaveDays    float64            `json:"paid_leave_days"`
	CasualLeaveDays  float64            `json:"casual_leave_days"`
	ApprovedBy       *string            `json:"approved_by,omitempty"`
}
