package payroll

import "context"

type PayrollService interface {
	// Salary
	CalculateSalary(ctx context.Context, req CalculateSalaryRequest) (SalaryResponse, error)
	CalculateBatch(ctx context.Context, req CalculateBatchRequest) (BatchCalculationResponse, error)
	GetSalary(ctx context.Context, employeeCode string, month string) (SalaryResponse, error)
	ListSalaries(ctx context.Context, month string) ([]SalaryResponse, error)
	FinalizeSalary(ctx context.Context, employeeCode string, month string) (SalaryResponse, error)
	FinalizeMonth(ctx context.Context, req FinalizeMonthRequest) (FinalizeMonthResponse, error)
	ExportRegister(ctx context.Context, month string) ([]byte, error)

	// Holds
	CreateHold(ctx context.Context, req CreateHoldRequest) (HoldResponse, error)
	ReleaseHold(ctx context.Context, employeeCode string, month string) (HoldResponse, error)

	// Adjustments
	UpsertAdjustment(ctx context.Context, req UpsertAdjustmentRequest) (AdjustmentResponse, error)
	ListAdjustments(ctx context.Context, req ListAdjustmentsRequest) ([]AdjustmentResponse, error)
	DeleteAdjustment(ctx context.Context, id string) error

	// Overtime
	SetOvertime(ctx context.Context, req SetOvertimeRequest) error
}

// PayslipService renders finalized, released salaries.
type PayslipService interface {
	GetPayslip(ctx context.Context, employeeCode string, month string) (Payslip, error)
}

// Payslip is a rendered PDF payslip.
type Payslip struct {
	FileName string
	URL      string
	Content  []byte
}
