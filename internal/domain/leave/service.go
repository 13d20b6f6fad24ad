package leave

import "context"

type LeaveService interface {
	// Balance is the ledger read used by payroll. month may be empty.
	Balance(ctx context.Context, employeeCode string, year int, month string) (Balance, error)
	GetBalance(ctx context.Context, req BalanceRequest) (BalanceResponse, error)

	UpsertEntitlement(ctx context.Context, req UpsertEntitlementRequest) (EntitlementResponse, error)

	// MonthlyUsage returns an empty usage when nothing was approved for the month.
	MonthlyUsage(ctx context.Context, employeeCode string, month string) (MonthlyUsage, error)
	ApproveMonthlyUsage(ctx context.Context, req ApproveMonthlyUsageRequest) (MonthlyUsageResponse, error)
}
