package payroll

import "github.com/shopspring/decimal"

// Breakdown is the itemized salary computation stored with every snapshot.
// Field order is fixed so that the serialized form is stable across recalculations.
type Breakdown struct {
	EmployeeCode   string          `json:"employee_code"`
	Month          string          `json:"month"`
	CycleStart     string          `json:"cycle_start"`
	CycleEnd       string          `json:"cycle_end"`
	CycleDays      int             `json:"cycle_days"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	PerDayRate     decimal.Decimal `json:"per_day_rate"`
	ShiftWorkHours float64         `json:"shift_work_hours"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`

	Attendance  BreakdownAttendance   `json:"attendance"`
	Earnings    BreakdownEarnings     `json:"earnings"`
	Deductions  BreakdownDeductions   `json:"deductions"`
	Adjustments []BreakdownAdjustment `json:"adjustments"`

	OtherAdditions decimal.Decimal `json:"other_additions"`
	NetSalary      decimal.Decimal `json:"net_salary"`
	Warnings       []string        `json:"warnings,omitempty"`
}

type BreakdownAttendance struct {
	FullDays               float64 `json:"full_days"`
	HalfDays               float64 `json:"half_days"`
	AbsentDays             float64 `json:"absent_days"`
	LateBy30MinutesDays    int     `json:"late_by_30_minutes_days"`
	LateBy10MinutesDays    int     `json:"late_by_10_minutes_days"`
	LateGraceCount         int     `json:"late_grace_count"`
	LateBy10MinutesCharged int     `json:"late_by_10_minutes_charged"`
	PaidLeaveDays          float64 `json:"paid_leave_days"`
	CasualLeaveDays        float64 `json:"casual_leave_days"`
	LossOfPayDays          float64 `json:"loss_of_pay_days"`
	Holidays               int     `json:"holidays"`
	SundaysInMonth         int     `json:"sundays_in_month"`
	UnpaidWeekoffs         int     `json:"unpaid_weekoffs"`
	TotalPayableDays       float64 `json:"total_payable_days"`
	ExpectedWorkingDays    int     `json:"expected_working_days"`
	TotalWorkedHours       float64 `json:"total_worked_hours"`
	OvertimeEnabled        bool    `json:"overtime_enabled"`
	OvertimeHours          float64 `json:"overtime_hours"`
}

type BreakdownEarnings struct {
	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimeAmount  decimal.Decimal `json:"overtime_amount"`
	IncentiveAmount decimal.Decimal `json:"incentive_amount"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
}

type BreakdownDeductions struct {
	Absent          decimal.Decimal `json:"absent"`
	HalfDay         decimal.Decimal `json:"half_day"`
	LateMajor       decimal.Decimal `json:"late_major"`
	LateMinor       decimal.Decimal `json:"late_minor"`
	LossOfPay       decimal.Decimal `json:"loss_of_pay"`
	TDS             decimal.Decimal `json:"tds"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	Adjustments     decimal.Decimal `json:"adjustments"`
	Total           decimal.Decimal `json:"total"`
}

type BreakdownAdjustment struct {
	Type        AdjustmentType  `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

// PaidDays is the number of cycle days the employee is paid for after every
// day-based deduction.
func (b Breakdown) PaidDays() float64 {
	a := b.Attendance
	paid := float64(b.CycleDays) - a.AbsentDays - a.HalfDays*0.5 - a.LossOfPayDays
	if paid < 0 {
		return 0
	}
	return paid
}
