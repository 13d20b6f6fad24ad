package leave

import "errors"

var (
	ErrEntitlementNotFound  = errors.New("leave entitlement not found")
	ErrMonthlyUsageNotFound = errors.New("monthly leave usage not found")
	ErrInvalidLeaveValue    = errors.New("leave value must be 0.5 or 1")
	ErrDuplicateLeaveDate   = errors.New("leave date listed more than once")
	ErrLeaveDateOutOfCycle  = errors.New("leave date is outside the salary cycle")
	ErrLeaveDateOnRestDay   = errors.New("leave date falls on a weekly off or holiday")
)
