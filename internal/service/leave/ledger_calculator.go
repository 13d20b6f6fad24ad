package leave

import (
	"math"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
)

type LedgerCalculator struct {
}

func NewLedgerCalculator() *LedgerCalculator {
	return &LedgerCalculator{}
}

// Compute derives the balance from the stored running totals. usage is the
// month being paid and may be nil for a yearly view.
func (c *LedgerCalculator) Compute(ent leave.Entitlement, usage *leave.MonthlyUsage) leave.Balance {
	return c.ComputeMonth(ent, usage, 0)
}

// ComputeMonth is Compute for a month followed by laterUsage days approved
// for later months of the same year. Only usage up to and including the month
// decides its loss of pay, so a recalculation never charges leave that a later
// month already pays for.
func (c *LedgerCalculator) ComputeMonth(ent leave.Entitlement, usage *leave.MonthlyUsage, laterUsage float64) leave.Balance {
	b := leave.Balance{
		EmployeeCode:     ent.EmployeeCode,
		Year:             ent.Year,
		AllowedLeaves:    ent.AllowedLeaves,
		UsedPaidLeaves:   ent.UsedPaidLeaves,
		UsedCasualLeaves: ent.UsedCasualLeaves,
	}

	var monthTotal float64
	if usage != nil {
		b.Month = usage.Month
		b.MonthPaid = usage.PaidDays()
		b.MonthCasual = usage.CasualDays()
		monthTotal = b.MonthPaid + b.MonthCasual
	}

	// The running totals already include every approved month. A total lower
	// than the approved months means history is missing; trust the months.
	used := math.Max(ent.Used(), monthTotal+laterUsage)

	b.RemainingLeaves = math.Max(0, ent.AllowedLeaves-used)
	b.ExcessLeaves = math.Max(0, used-ent.AllowedLeaves)

	through := used - laterUsage
	excessThrough := math.Max(0, through-ent.AllowedLeaves)
	excessBefore := math.Max(0, through-monthTotal-ent.AllowedLeaves)
	b.MonthLossOfPayDays = excessThrough - excessBefore
	b.ExceedsQuota = b.MonthLossOfPayDays > 0

	return b
}
