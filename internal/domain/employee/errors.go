package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidEmployeeCode = errors.New("invalid employee code format")
	ErrBaseSalaryMissing   = errors.New("employee has no base salary configured")
	ErrEmployeeInactive    = errors.New("employee is inactive")
)
