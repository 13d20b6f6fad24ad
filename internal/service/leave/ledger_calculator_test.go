package leave

import (
	"testing"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func usageOf(paid, casual []float64) *leave.MonthlyUsage {
	u := &leave.MonthlyUsage{EmployeeCode: "1001", Month: "2025-03"}
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, v := range paid {
		u.PaidLeaveDates = append(u.PaidLeaveDates, leave.LeaveDay{Date: day, Value: v})
		day = day.AddDate(0, 0, 1)
	}
	for _, v := range casual {
		u.CasualLeaveDates = append(u.CasualLeaveDates, leave.LeaveDay{Date: day, Value: v})
		day = day.AddDate(0, 0, 1)
	}
	return u
}

func TestLedgerCalculator_RemainingIsAllowedMinusUsed(t *testing.T) {
	calc := NewLedgerCalculator()

	cases := []struct {
		allowed, paid, casual float64
	}{
		{12, 0, 0},
		{12, 3, 2.5},
		{12, 12, 0},
		{18, 4.5, 6},
	}
	for _, c := range cases {
		b := calc.Compute(leave.Entitlement{AllowedLeaves: c.allowed, UsedPaidLeaves: c.paid, UsedCasualLeaves: c.casual}, nil)
		assert.Equal(t, c.allowed-c.paid-c.casual, b.RemainingLeaves)
		assert.Zero(t, b.ExcessLeaves)
		assert.False(t, b.ExceedsQuota)
	}
}

func TestLedgerCalculator_ExcessNeverNegativeRemaining(t *testing.T) {
	calc := NewLedgerCalculator()

	b := calc.Compute(leave.Entitlement{AllowedLeaves: 10, UsedPaidLeaves: 8, UsedCasualLeaves: 4}, nil)
	assert.Zero(t, b.RemainingLeaves)
	assert.Equal(t, 2.0, b.ExcessLeaves)
}

func TestLedgerCalculator_MonthCrossingQuota(t *testing.T) {
	calc := NewLedgerCalculator()

	// 9 used before, 3 this month (already in the running total) against 10 allowed
	ent := leave.Entitlement{AllowedLeaves: 10, UsedPaidLeaves: 10, UsedCasualLeaves: 2}
	b := calc.Compute(ent, usageOf([]float64{1, 1}, []float64{1}))

	assert.Equal(t, 2.0, b.ExcessLeaves)
	assert.Equal(t, 2.0, b.MonthLossOfPayDays)
	assert.True(t, b.ExceedsQuota)
	assert.Equal(t, 2.0, b.MonthPaid)
	assert.Equal(t, 1.0, b.MonthCasual)
}

func TestLedgerCalculator_ExcessFromEarlierMonthsNotChargedAgain(t *testing.T) {
	calc := NewLedgerCalculator()

	// already 2 over quota before this month, 1.5 more this month
	ent := leave.Entitlement{AllowedLeaves: 10, UsedPaidLeaves: 13.5}
	b := calc.Compute(ent, usageOf([]float64{1, 0.5}, nil))

	assert.Equal(t, 3.5, b.ExcessLeaves)
	assert.Equal(t, 1.5, b.MonthLossOfPayDays)
}

func TestLedgerCalculator_MonthWithinQuota(t *testing.T) {
	calc := NewLedgerCalculator()

	ent := leave.Entitlement{AllowedLeaves: 12, UsedPaidLeaves: 4, UsedCasualLeaves: 1}
	b := calc.Compute(ent, usageOf([]float64{1}, []float64{0.5}))

	assert.Zero(t, b.MonthLossOfPayDays)
	assert.False(t, b.ExceedsQuota)
	assert.Equal(t, 7.0, b.RemainingLeaves)
}

func TestLedgerCalculator_MissingHistoryTrustsMonth(t *testing.T) {
	calc := NewLedgerCalculator()

	// no entitlement row: zero quota, totals never recorded
	b := calc.Compute(leave.Entitlement{}, usageOf([]float64{1, 1}, nil))

	assert.Equal(t, 2.0, b.MonthLossOfPayDays)
	assert.Zero(t, b.RemainingLeaves)
}

func TestLedgerCalculator_LaterMonthsAreNotCountedBefore(t *testing.T) {
	calc := NewLedgerCalculator()

	// running total 12 of 10: 8 approved this month, 4 in a later month
	ent := leave.Entitlement{AllowedLeaves: 10, UsedPaidLeaves: 12}
	jan := calc.ComputeMonth(ent, usageOf([]float64{1, 1, 1, 1, 1, 1, 1, 1}, nil), 4)
	feb := calc.ComputeMonth(ent, usageOf([]float64{1, 1, 1, 1}, nil), 0)

	assert.Zero(t, jan.MonthLossOfPayDays)
	assert.Equal(t, 2.0, feb.MonthLossOfPayDays)
	assert.Equal(t, 2.0, jan.ExcessLeaves)
}
