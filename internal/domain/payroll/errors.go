package payroll

import "errors"

var (
	ErrSalaryNotFound         = errors.New("salary record not found")
	ErrSalaryAlreadyFinalized = errors.New("salary is already finalized")
	ErrSalaryNotFinalized     = errors.New("salary is not finalized yet")
	ErrSalaryHeld             = errors.New("salary is on hold")

	ErrHoldNotFound      = errors.New("salary hold not found")
	ErrHoldAlreadyActive = errors.New("an active hold already exists for this month")
	ErrNoActiveHold      = errors.New("no active hold to release")

	ErrAdjustmentNotFound     = errors.New("salary adjustment not found")
	ErrInvalidAdjustmentType  = errors.New("adjustment type must be DEDUCTION or ADDITION")
	ErrInvalidCycleLength     = errors.New("salary cycle has no days")
	ErrNegativeAdjustmentAmnt = errors.New("adjustment amount must not be negative")
)
