package shift

import (
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
)

// ========== ASSIGNMENT DTOs ==========

type CreateAssignmentRequest struct {
	EmployeeCode string `json:"employee_code"`
	ShiftName    string `json:"shift_name"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if validator.IsEmpty(r.ShiftName) {
		errs = append(errs, validator.ValidationError{Field: "shift_name", Message: "is required"})
	}
	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be in YYYY-MM-DD format"})
	}
	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be in YYYY-MM-DD format"})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must not be before from_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAssignmentsRequest struct {
	EmployeeCode string
	FromDate     string
	ToDate       string
}

func (r *ListAssignmentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	ID           string    `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	ShiftName    string    `json:"shift_name"`
	FromDate     string    `json:"from_date"`
	ToDate       string    `json:"to_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// ========== RESOLVE DTOs ==========

type ResolveShiftRequest struct {
	EmployeeCode string
	Date         string
}

func (r *ResolveShiftRequest) Validate() error {
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

type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ShiftResponse struct {
	Name                 string         `json:"name"`
	IsSplit              bool           `json:"is_split"`
	Slots                []SlotResponse `json:"slots"`
	WorkHours            float64        `json:"work_hours"`
	LateThresholdMinutes int            `json:"late_threshold_minutes"`
	Source               string         `json:"source,omitempty"`
}

// Resolution sources
const (
	SourceAssignment    = "assignment"
	SourceEmployee      = "employee_default"
	SourceSystemDefault = "system_default"
)
