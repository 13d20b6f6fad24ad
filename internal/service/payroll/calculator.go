package payroll

import (
	"sort"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

var (
	halfRate    = decimal.NewFromFloat(0.5)
	quarterRate = decimal.NewFromFloat(0.25)
)

// CalculationInput is everything Compute needs. It carries no I/O handles.
type CalculationInput struct {
	EmployeeCode string
	Month        string
	BaseSalary   decimal.Decimal
	Attendance   attendance.MonthlyAttendance
	Leave        leave.Balance
	Adjustments  []payroll.Adjustment
}

// Compute derives the salary breakdown. Every money component is rounded to
// two places before it is summed, so the result only depends on the input.
func Compute(in CalculationInput, p payroll.Policy) (payroll.Breakdown, error) {
	att := in.Attendance
	if att.CycleDays <= 0 {
		return payroll.Breakdown{}, payroll.ErrInvalidCycleLength
	}

	perDay := in.BaseSalary.Div(decimal.NewFromInt(int64(att.CycleDays)))
	hourly := decimal.Zero
	if att.ShiftWorkHours > 0 {
		hourly = perDay.Div(decimal.NewFromFloat(att.ShiftWorkHours))
	}

	minorCharged := att.LateBy10MinutesDays - p.LateGraceCount
	if minorCharged < 0 {
		minorCharged = 0
	}

	bd := payroll.Breakdown{
		EmployeeCode:   in.EmployeeCode,
		Month:          in.Month,
		CycleStart:     utils.DateKey(att.CycleStart),
		CycleEnd:       utils.DateKey(att.CycleEnd),
		CycleDays:      att.CycleDays,
		BaseSalary:     in.BaseSalary.Round(moneyPlaces),
		PerDayRate:     perDay.Round(moneyPlaces),
		ShiftWorkHours: att.ShiftWorkHours,
		HourlyRate:     hourly.Round(moneyPlaces),
		Attendance: payroll.BreakdownAttendance{
			FullDays:               att.FullDays,
			HalfDays:               att.HalfDays,
			AbsentDays:             att.AbsentDays,
			LateBy30MinutesDays:    att.LateBy30MinutesDays,
			LateBy10MinutesDays:    att.LateBy10MinutesDays,
			LateGraceCount:         p.LateGraceCount,
			LateBy10MinutesCharged: minorCharged,
			PaidLeaveDays:          att.PaidLeaveDays,
			CasualLeaveDays:        att.CasualLeaveDays,
			LossOfPayDays:          in.Leave.MonthLossOfPayDays,
			Holidays:               att.Holidays,
			SundaysInMonth:         att.SundaysInMonth,
			UnpaidWeekoffs:         att.UnpaidWeekoffs,
			TotalPayableDays:       att.TotalPayableDays,
			ExpectedWorkingDays:    att.ExpectedWorkingDays,
			TotalWorkedHours:       att.TotalWorkedHours,
			OvertimeEnabled:        att.OvertimeEnabled,
			OvertimeHours:          att.OvertimeHours,
		},
		Adjustments: []payroll.BreakdownAdjustment{},
		Warnings:    att.Warnings,
	}

	days := func(n float64) decimal.Decimal { return decimal.NewFromFloat(n) }

	// Deductions
	ded := &bd.Deductions
	ded.Absent = days(att.AbsentDays).Mul(perDay).Round(moneyPlaces)
	ded.HalfDay = days(att.HalfDays).Mul(perDay).Mul(halfRate).Round(moneyPlaces)
	ded.LateMajor = decimal.NewFromInt(int64(att.LateBy30MinutesDays)).Mul(perDay).Mul(halfRate).Round(moneyPlaces)
	ded.LateMinor = decimal.NewFromInt(int64(minorCharged)).Mul(perDay).Mul(quarterRate).Round(moneyPlaces)
	ded.LossOfPay = days(in.Leave.MonthLossOfPayDays).Mul(perDay).Round(moneyPlaces)

	if in.BaseSalary.LessThan(payroll.TDSThreshold) {
		ded.TDS = in.BaseSalary.Mul(payroll.TDSRate).Round(moneyPlaces)
		ded.ProfessionalTax = decimal.Zero
	} else {
		ded.TDS = decimal.Zero
		ded.ProfessionalTax = payroll.ProfessionalTax
	}

	// Adjustments
	incentive := decimal.Zero
	otherAdditions := decimal.Zero
	adjDeductions := decimal.Zero
	for _, adj := range sortedAdjustments(in.Adjustments) {
		amount := adj.Amount.Round(moneyPlaces)
		bd.Adjustments = append(bd.Adjustments, payroll.BreakdownAdjustment{
			Type:        adj.Type,
			Category:    adj.Category,
			Amount:      amount,
			Description: adj.Description,
		})
		switch {
		case adj.Type == payroll.AdjustmentTypeAddition && adj.IsIncentive():
			incentive = incentive.Add(amount)
		case adj.Type == payroll.AdjustmentTypeAddition:
			otherAdditions = otherAdditions.Add(amount)
		case adj.Type == payroll.AdjustmentTypeDeduction && !adj.IsIncentive():
			adjDeductions = adjDeductions.Add(amount)
		}
	}
	ded.Adjustments = adjDeductions

	ded.Total = decimal.Sum(ded.Absent, ded.HalfDay, ded.LateMajor, ded.LateMinor,
		ded.LossOfPay, ded.TDS, ded.ProfessionalTax, ded.Adjustments)

	// Earnings
	overtime := decimal.Zero
	if att.OvertimeEnabled && att.OvertimeHours > 0 {
		overtime = days(att.OvertimeHours).Mul(hourly).Mul(p.OvertimeRateMultiplier).Round(moneyPlaces)
	}
	bd.Earnings = payroll.BreakdownEarnings{
		BaseSalary:      bd.BaseSalary,
		OvertimeAmount:  overtime,
		IncentiveAmount: incentive,
		GrossSalary:     decimal.Sum(bd.BaseSalary, overtime, incentive),
	}

	bd.OtherAdditions = otherAdditions
	bd.NetSalary = bd.Earnings.GrossSalary.Sub(ded.Total).Add(otherAdditions)

	return bd, nil
}

// sortedAdjustments orders adjustments by type and category so the breakdown
// does not depend on repository ordering.
func sortedAdjustments(in []payroll.Adjustment) []payroll.Adjustment {
	out := make([]payroll.Adjustment, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Category < out[j].Category
	})
	return out
}
