package response

import (
	"errors"
	"net/http"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/auth"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/storage"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrEmployeeClaimMissing):
		Forbidden(w, "Token is not linked to an employee")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidEmployeeCode):
		BadRequest(w, "Invalid employee code", nil)
	case errors.Is(err, employee.ErrBaseSalaryMissing):
		BadRequest(w, "Employee has no base salary configured", nil)
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Shift
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case shift.IsComputationError(err):
		ComputationError(w, err.Error())

	// Attendance
	case errors.Is(err, attendance.ErrRegularizationNotFound):
		NotFound(w, "Regularization not found")
	case errors.Is(err, attendance.ErrInvalidOriginalStatus),
		errors.Is(err, attendance.ErrInvalidRegularizedState),
		errors.Is(err, attendance.ErrRegularizationNoUpgrade),
		errors.Is(err, attendance.ErrDateOutOfCycle):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrOvertimeUnavailable):
		Conflict(w, "Overtime is not available")
	case errors.Is(err, attendance.ErrInvalidPunchLog):
		ComputationError(w, err.Error())

	// Leave
	case errors.Is(err, leave.ErrEntitlementNotFound):
		NotFound(w, "Leave entitlement not found")
	case errors.Is(err, leave.ErrMonthlyUsageNotFound):
		NotFound(w, "Monthly leave usage not found")
	case errors.Is(err, leave.ErrInvalidLeaveValue),
		errors.Is(err, leave.ErrDuplicateLeaveDate),
		errors.Is(err, leave.ErrLeaveDateOutOfCycle):
		BadRequest(w, err.Error(), nil)

	// Payroll
	case errors.Is(err, payroll.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrHoldNotFound):
		NotFound(w, "Salary hold not found")
	case errors.Is(err, payroll.ErrAdjustmentNotFound):
		NotFound(w, "Salary adjustment not found")
	case errors.Is(err, payroll.ErrSalaryAlreadyFinalized):
		Conflict(w, "Salary is already finalized")
	case errors.Is(err, payroll.ErrSalaryNotFinalized):
		Conflict(w, "Salary is not finalized yet")
	case errors.Is(err, payroll.ErrHoldAlreadyActive):
		Conflict(w, "An active hold already exists for this month")
	case errors.Is(err, payroll.ErrNoActiveHold):
		Conflict(w, "No active hold to release")
	case errors.Is(err, payroll.ErrSalaryHeld):
		Forbidden(w, "Salary is on hold")
	case errors.Is(err, payroll.ErrInvalidAdjustmentType),
		errors.Is(err, payroll.ErrNegativeAdjustmentAmnt):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrInvalidCycleLength):
		ComputationError(w, err.Error())

	// Files
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, storage.ErrInvalidSignature):
		Forbidden(w, "Invalid or expired file link")
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
