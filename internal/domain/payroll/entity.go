package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStatus values are persisted as integers.
type SalaryStatus int

const (
	SalaryStatusDraft     SalaryStatus = 0
	SalaryStatusFinalized SalaryStatus = 1
)

func (s SalaryStatus) String() string {
	if s == SalaryStatusFinalized {
		return "FINALIZED"
	}
	return "DRAFT"
}

// Statutory rules. These are fixed by law, not by company policy.
var (
	TDSThreshold    = decimal.NewFromInt(15000)
	TDSRate         = decimal.NewFromFloat(0.10)
	ProfessionalTax = decimal.NewFromInt(200)
)

// AdjustmentType enum
type AdjustmentType string

const (
	AdjustmentTypeDeduction AdjustmentType = "DEDUCTION"
	AdjustmentTypeAddition  AdjustmentType = "ADDITION"
)

// CategoryIncentive additions are part of gross salary; every other addition
// is paid on top of net.
const CategoryIncentive = "INCENTIVE"

// Adjustment is a manual addition or deduction for one employee and month.
// (EmployeeCode, Month, Type, Category) is unique.
type Adjustment struct {
	ID           string
	EmployeeCode string
	Month        string
	Type         AdjustmentType
	Category     string
	Amount       decimal.Decimal
	Description  *string
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Adjustment) IsIncentive() bool {
	return a.Category == CategoryIncentive
}

// HoldType enum
type HoldType string

const (
	HoldTypeManual HoldType = "MANUAL"
	HoldTypeAuto   HoldType = "AUTO"
)

// Hold blocks payslip release. At most one unreleased hold exists per
// employee and month.
type Hold struct {
	ID           string
	EmployeeCode string
	Month        string
	HoldType     HoldType
	Reason       *string
	Released     bool
	ReleasedAt   *time.Time
	ReleasedBy   *string
	CreatedBy    *string
	CreatedAt    time.Time
}

// MonthlySalary is the persisted salary snapshot, keyed by (EmployeeCode, Month).
// The payslip renderer reads this row shape.
type MonthlySalary struct {
	EmployeeCode    string
	Month           string
	BaseSalary      decimal.Decimal
	GrossSalary     decimal.Decimal
	NetSalary       decimal.Decimal
	PerDayRate      decimal.Decimal
	HourlyRate      decimal.Decimal
	CycleDays       int
	PaidDays        float64
	AbsentDays      float64
	HalfDays        float64
	LeaveDays       float64
	LossOfPayDays   float64
	TotalDeductions decimal.Decimal
	TotalAdditions  decimal.Decimal
	OvertimeAmount  decimal.Decimal
	WorkedHours     float64
	OvertimeHours   float64
	TDSDeduction    decimal.Decimal
	ProfessionalTax decimal.Decimal
	IsHeld          bool
	Breakdown       []byte
	Status          SalaryStatus
	FinalizedAt     *time.Time
	FinalizedBy     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
}

func (s MonthlySalary) IsFinalized() bool {
	return s.Status == SalaryStatusFinalized
}

// Policy holds the configurable salary rules.
type Policy struct {
	// LateGraceCount is the number of 10-minute-tier late days forgiven each month.
	LateGraceCount         int
	OvertimeRateMultiplier decimal.Decimal
	AutoHoldNegativeNet    bool
}
