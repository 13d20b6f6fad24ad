package leave

import "context"

type EntitlementRepository interface {
	Get(ctx context.Context, employeeCode string, year int) (Entitlement, error)
	Upsert(ctx context.Context, entitlement Entitlement) (Entitlement, error)
	// AddUsage shifts the running totals by the given deltas, clamping at zero.
	AddUsage(ctx context.Context, employeeCode string, year int, paidDelta, casualDelta float64) error
}

type MonthlyUsageRepository interface {
	Get(ctx context.Context, employeeCode string, month string) (MonthlyUsage, error)
	Upsert(ctx context.Context, usage MonthlyUsage) (MonthlyUsage, error)
	// ListByYear returns the approved months of a year ordered by month.
	ListByYear(ctx context.Context, employeeCode string, year int) ([]MonthlyUsage, error)
}
