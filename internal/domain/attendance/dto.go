package attendance

import (
	"fmt"
	"strings"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
)

// ========================================
// DAILY / MONTHLY DTOs
// ========================================

type DailyRecordRequest struct {
	EmployeeCode string
	Date         string
}

func (r *DailyRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyAttendanceRequest struct {
	EmployeeCode string
	Month        string
}

func (r *MonthlyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyRecordResponse struct {
	Date            string   `json:"date"`
	Status          string   `json:"status"`
	OriginalStatus  string   `json:"original_status,omitempty"`
	FirstEntry      *string  `json:"first_entry"`
	LastExit        *string  `json:"last_exit"`
	TotalHours      float64  `json:"total_hours"`
	IsLate          bool     `json:"is_late"`
	MinutesLate     int      `json:"minutes_late"`
	LateTier        string   `json:"late_tier,omitempty"`
	IsEarlyExit     bool     `json:"is_early_exit"`
	LogCount        int      `json:"log_count"`
	IsRegularized   bool     `json:"is_regularized"`
	LeaveValue      *float64 `json:"leave_value,omitempty"`
	ShiftName       string   `json:"shift_name,omitempty"`
	HolidayName     string   `json:"holiday_name,omitempty"`
	WorkedOnRestDay bool     `json:"worked_on_rest_day"`
	WeekoffPaid     *bool    `json:"weekoff_paid,omitempty"`
	Warning         string   `json:"warning,omitempty"`
}

type MonthlyAttendanceResponse struct {
	EmployeeCode        string                `json:"employee_code"`
	Month               string                `json:"month"`
	CycleStart          string                `json:"cycle_start"`
	CycleEnd            string                `json:"cycle_end"`
	CycleDays           int                   `json:"cycle_days"`
	FullDays            float64               `json:"full_days"`
	HalfDays            float64               `json:"half_days"`
	AbsentDays          float64               `json:"absent_days"`
	LateDays            int                   `json:"late_days"`
	LateBy30MinutesDays int                   `json:"late_by_30_minutes_days"`
	LateBy10MinutesDays int                   `json:"late_by_10_minutes_days"`
	EarlyExits          int                   `json:"early_exits"`
	TotalWorkedHours    float64               `json:"total_worked_hours"`
	SundaysInMonth      int                   `json:"sundays_in_month"`
	UnpaidWeekoffs      int                   `json:"unpaid_weekoffs"`
	Holidays            int                   `json:"holidays"`
	RestDaysWorked      int                   `json:"rest_days_worked"`
	PaidLeaveDays       float64               `json:"paid_leave_days"`
	CasualLeaveDays     float64               `json:"casual_leave_days"`
	RegularizedDays     int                   `json:"regularized_days"`
	ExpectedWorkingDays int                   `json:"expected_working_days"`
	ActualDaysWorked    float64               `json:"actual_days_worked"`
	TotalPayableDays    float64               `json:"total_payable_days"`
	ExpectedHours       float64               `json:"expected_hours"`
	OvertimeEnabled     bool                  `json:"overtime_enabled"`
	OvertimeHours       float64               `json:"overtime_hours"`
	Days                []DailyRecordResponse `json:"days"`
	Warnings            []string              `json:"warnings,omitempty"`
}

// ========================================
// REGULARIZATION DTOs
// ========================================

type RegularizationEntry struct {
	Date              string `json:"date"`
	OriginalStatus    string `json:"original_status"`
	RegularizedStatus string `json:"regularized_status"`
	Reason            string `json:"reason"`
}

type SubmitRegularizationsRequest struct {
	EmployeeCode string                `json:"employee_code"`
	Month        string                `json:"month"`
	Entries      []RegularizationEntry `json:"entries"`
}

func (r *SubmitRegularizationsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{Field: "entries", Message: "at least one entry is required"})
	}

	seen := make(map[string]bool)
	for i, e := range r.Entries {
		name := fmt.Sprintf("entries[%d]", i)
		if _, ok := validator.IsValidDate(e.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: name + ".date", Message: "must be in YYYY-MM-DD format"})
		} else if seen[e.Date] {
			errs = append(errs, validator.ValidationError{Field: name + ".date", Message: "is listed more than once"})
		}
		seen[e.Date] = true

		original := DayStatus(e.OriginalStatus)
		regularized := DayStatus(e.RegularizedStatus)
		if original != StatusAbsent && original != StatusHalfDay {
			errs = append(errs, validator.ValidationError{Field: name + ".original_status", Message: ErrInvalidOriginalStatus.Error()})
		}
		if regularized != StatusHalfDay && regularized != StatusFullDay {
			errs = append(errs, validator.ValidationError{Field: name + ".regularized_status", Message: ErrInvalidRegularizedState.Error()})
		} else if original == StatusHalfDay && regularized == StatusHalfDay {
			errs = append(errs, validator.ValidationError{Field: name + ".regularized_status", Message: ErrRegularizationNoUpgrade.Error()})
		}
		if validator.IsEmpty(e.Reason) {
			errs = append(errs, validator.ValidationError{Field: name + ".reason", Message: "reason is required"})
		} else if len(strings.TrimSpace(e.Reason)) > 500 {
			errs = append(errs, validator.ValidationError{Field: name + ".reason", Message: "must not exceed 500 characters"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRegularizationsRequest struct {
	EmployeeCode string
	Month        string
}

func (r *ListRegularizationsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RegularizationResponse struct {
	ID                string  `json:"id"`
	EmployeeCode      string  `json:"employee_code"`
	Date              string  `json:"date"`
	OriginalStatus    string  `json:"original_status"`
	RegularizedStatus string  `json:"regularized_status"`
	Reason            string  `json:"reason"`
	ApprovedBy        *string `json:"approved_by,omitempty"`
	UpdatedAt         string  `json:"updated_at"`
}
