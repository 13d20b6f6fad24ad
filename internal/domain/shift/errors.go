package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrInvalidShiftTime   = errors.New("invalid shift time")
	ErrInvalidShiftConfig = errors.New("invalid shift configuration")

	ErrAssignmentNotFound = errors.New("shift assignment not found")
)

// IsComputationError reports whether err comes from unusable shift configuration.
// Such errors must propagate instead of being degraded.
func IsComputationError(err error) bool {
	return errors.Is(err, ErrInvalidShiftTime) || errors.Is(err, ErrInvalidShiftConfig)
}
