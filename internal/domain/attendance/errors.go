package attendance

import "errors"

var (
	ErrRegularizationNotFound  = errors.New("regularization not found")
	ErrInvalidOriginalStatus   = errors.New("original status must be absent or half-day")
	ErrInvalidRegularizedState = errors.New("regularized status must be half-day or full-day")
	ErrRegularizationNoUpgrade = errors.New("regularized status must improve on the original status")
	ErrDateOutOfCycle          = errors.New("date is outside the salary cycle")

	ErrOvertimeUnavailable = errors.New("overtime toggle store is not available")

	// ErrMissingShift is returned when a working day is classified without a shift.
	ErrMissingShift    = errors.New("no shift supplied for working day")
	ErrInvalidPunchLog = errors.New("invalid punch log")
)
