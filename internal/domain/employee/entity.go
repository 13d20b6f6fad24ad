package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	EmployeeCode      string
	FullName          string
	Department        *string
	Designation       *string
	BaseSalary        *decimal.Decimal
	DefaultShift      *string
	WeeklyOff         time.Weekday
	BankName          *string
	BankAccountNumber *string
	JoinDate          *time.Time
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasBaseSalary reports whether a usable base salary is configured.
func (e Employee) HasBaseSalary() bool {
	return e.BaseSalary != nil && e.BaseSalary.IsPositive()
}
