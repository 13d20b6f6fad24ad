package payroll

import "context"

type SalaryRepository interface {
	Get(ctx context.Context, employeeCode string, month string) (MonthlySalary, error)
	ListByMonth(ctx context.Context, month string) ([]MonthlySalary, error)

	// UpsertDraft writes a DRAFT snapshot. It never overwrites a FINALIZED row
	// and returns ErrSalaryAlreadyFinalized instead.
	UpsertDraft(ctx context.Context, salary MonthlySalary) (MonthlySalary, error)

	// Finalize moves a DRAFT row to FINALIZED with a conditional update.
	Finalize(ctx context.Context, employeeCode string, month string, by string) (MonthlySalary, error)
	// FinalizeMonth finalizes every DRAFT row of the month and returns their employee codes.
	FinalizeMonth(ctx context.Context, month string, by string) ([]string, error)

	// SetHeld mirrors the hold state onto the snapshot, if one exists.
	SetHeld(ctx context.Context, employeeCode string, month string, held bool) error
}

type AdjustmentRepository interface {
	Upsert(ctx context.Context, adj Adjustment) (Adjustment, error)
	GetByID(ctx context.Context, id string) (Adjustment, error)
	ListByEmployeeMonth(ctx context.Context, employeeCode string, month string) ([]Adjustment, error)
	Delete(ctx context.Context, id string) error
}

type HoldRepository interface {
	// Create fails with ErrHoldAlreadyActive while an unreleased hold exists.
	Create(ctx context.Context, hold Hold) (Hold, error)
	GetActive(ctx context.Context, employeeCode string, month string) (Hold, error)
	// Release marks the active hold released, or returns ErrNoActiveHold.
	Release(ctx context.Context, employeeCode string, month string, by string) (Hold, error)
}
