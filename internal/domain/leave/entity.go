package leave

import (
	"time"
)

type LeaveType string

const (
	LeaveTypePaid   LeaveType = "paid"
	LeaveTypeCasual LeaveType = "casual"
)

// Entitlement holds the annual quota and the running usage totals. The totals
// are maintained by approvals and are not recomputed from monthly rows.
type Entitlement struct {
	EmployeeCode     string
	Year             int
	AllowedLeaves    float64
	UsedPaidLeaves   float64
	UsedCasualLeaves float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (e Entitlement) Used() float64 {
	return e.UsedPaidLeaves + e.UsedCasualLeaves
}

// LeaveDay is a single approved leave date. Value is 0.5 or 1.0.
type LeaveDay struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MonthlyUsage is the approved leave for one employee and salary month.
type MonthlyUsage struct {
	EmployeeCode     string
	Month            string
	PaidLeaveDates   []LeaveDay
	CasualLeaveDates []LeaveDay
	ApprovedBy       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (u MonthlyUsage) PaidDays() float64 {
	return sumDays(u.PaidLeaveDates)
}

func (u MonthlyUsage) CasualDays() float64 {
	return sumDays(u.CasualLeaveDates)
}

func (u MonthlyUsage) TotalDays() float64 {
	return u.PaidDays() + u.CasualDays()
}

func sumDays(days []LeaveDay) float64 {
	var total float64
	for _, d := range days {
		total += d.Value
	}
	return total
}

// Balance is the ledger view for a year, optionally narrowed to one month.
type Balance struct {
	EmployeeCode     string
	Year             int
	Month            string
	AllowedLeaves    float64
	UsedPaidLeaves   float64
	UsedCasualLeaves float64
	RemainingLeaves  float64
	// ExcessLeaves is the annual usage above quota.
	ExcessLeaves float64
	MonthPaid    float64
	MonthCasual  float64
	// MonthLossOfPayDays is the share of ExcessLeaves created by this month's usage.
	MonthLossOfPayDays float64
	ExceedsQuota       bool
}
