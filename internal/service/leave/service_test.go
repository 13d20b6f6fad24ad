package leave

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== FAKES ==========

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEntitlementRepo struct {
	rows map[string]leave.Entitlement
}

func entKey(code string, year int) string { return fmt.Sprintf("%s/%d", code, year) }

func (f *fakeEntitlementRepo) Get(_ context.Context, code string, year int) (leave.Entitlement, error) {
	e, ok := f.rows[entKey(code, year)]
	if !ok {
		return leave.Entitlement{}, leave.ErrEntitlementNotFound
	}
	return e, nil
}

func (f *fakeEntitlementRepo) Upsert(_ context.Context, e leave.Entitlement) (leave.Entitlement, error) {
	f.rows[entKey(e.EmployeeCode, e.Year)] = e
	return e, nil
}

func (f *fakeEntitlementRepo) AddUsage(_ context.Context, code string, year int, paidDelta, casualDelta float64) error {
	e, ok := f.rows[entKey(code, year)]
	if !ok {
		return leave.ErrEntitlementNotFound
	}
	e.UsedPaidLeaves = max(0, e.UsedPaidLeaves+paidDelta)
	e.UsedCasualLeaves = max(0, e.UsedCasualLeaves+casualDelta)
	f.rows[entKey(code, year)] = e
	return nil
}

type fakeUsageRepo struct {
	rows map[string]leave.MonthlyUsage
}

func (f *fakeUsageRepo) Get(_ context.Context, code string, month string) (leave.MonthlyUsage, error) {
	u, ok := f.rows[code+"/"+month]
	if !ok {
		return leave.MonthlyUsage{}, leave.ErrMonthlyUsageNotFound
	}
	return u, nil
}

func (f *fakeUsageRepo) Upsert(_ context.Context, u leave.MonthlyUsage) (leave.MonthlyUsage, error) {
	f.rows[u.EmployeeCode+"/"+u.Month] = u
	return u, nil
}

func (f *fakeUsageRepo) ListByYear(_ context.Context, code string, year int) ([]leave.MonthlyUsage, error) {
	var out []leave.MonthlyUsage
	prefix := fmt.Sprintf("%04d-", year)
	for _, u := range f.rows {
		if u.EmployeeCode == code && len(u.Month) == 7 && u.Month[:5] == prefix {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

type fakeHolidayRepo struct {
	holidays []attendance.Holiday
}

func (f *fakeHolidayRepo) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	for _, h := range f.holidays {
		if h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHolidayRepo) ListInRange(_ context.Context, from, to time.Time) ([]attendance.Holiday, error) {
	var out []attendance.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	if code != "1001" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{EmployeeCode: code, IsActive: true, WeeklyOff: time.Sunday}, nil
}

func (fakeEmployeeRepo) ListActiveCodes(_ context.Context) ([]string, error) {
	return []string{"1001"}, nil
}

// Holi on 2025-03-14 is the only holiday.
func newTestLeaveService() (leave.LeaveService, *fakeEntitlementRepo, *fakeUsageRepo) {
	ents := &fakeEntitlementRepo{rows: map[string]leave.Entitlement{}}
	usage := &fakeUsageRepo{rows: map[string]leave.MonthlyUsage{}}
	holidays := &fakeHolidayRepo{holidays: []attendance.Holiday{
		{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Name: "Holi"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewLeaveService(passthroughTx{}, ents, usage, fakeEmployeeRepo{}, holidays, NewLedgerCalculator(), logger)
	return svc, ents, usage
}

// ========== TESTS ==========

func TestLeaveService_ApproveMonthlyUsage_UpdatesRunningTotals(t *testing.T) {
	ctx := context.Background()
	svc, ents, _ := newTestLeaveService()
	ents.rows[entKey("1001", 2025)] = leave.Entitlement{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 12, UsedPaidLeaves: 2}

	resp, err := svc.ApproveMonthlyUsage(ctx, leave.ApproveMonthlyUsageRequest{
		EmployeeCode:     "1001",
		Month:            "2025-03",
		PaidLeaveDates:   []leave.LeaveDayRequest{{Date: "2025-03-03", Value: 1}, {Date: "2025-02-27", Value: 0.5}},
		CasualLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-10", Value: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, resp.PaidLeaveDays)
	assert.Equal(t, 1.0, resp.CasualLeaveDays)
	// sorted by date
	assert.Equal(t, "2025-02-27", resp.PaidLeaveDates[0].Date)

	ent := ents.rows[entKey("1001", 2025)]
	assert.Equal(t, 3.5, ent.UsedPaidLeaves)
	assert.Equal(t, 1.0, ent.UsedCasualLeaves)
}

func TestLeaveService_ApproveMonthlyUsage_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, ents, _ := newTestLeaveService()
	ents.rows[entKey("1001", 2025)] = leave.Entitlement{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 12}

	req := leave.ApproveMonthlyUsageRequest{
		EmployeeCode:   "1001",
		Month:          "2025-03",
		PaidLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-03", Value: 1}},
	}
	for i := 0; i < 3; i++ {
		_, err := svc.ApproveMonthlyUsage(ctx, req)
		require.NoError(t, err)
	}
	assert.Equal(t, 1.0, ents.rows[entKey("1001", 2025)].UsedPaidLeaves)

	// replacing the month applies only the difference
	req.PaidLeaveDates = []leave.LeaveDayRequest{{Date: "2025-03-04", Value: 0.5}}
	_, err := svc.ApproveMonthlyUsage(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0.5, ents.rows[entKey("1001", 2025)].UsedPaidLeaves)
}

func TestLeaveService_ApproveMonthlyUsage_Validation(t *testing.T) {
	ctx := context.Background()
	svc, ents, _ := newTestLeaveService()
	ents.rows[entKey("1001", 2025)] = leave.Entitlement{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 12}

	cases := map[string]leave.ApproveMonthlyUsageRequest{
		"bad month": {EmployeeCode: "1001", Month: "2025-3"},
		"bad value": {EmployeeCode: "1001", Month: "2025-03", PaidLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-03", Value: 0.25}}},
		"duplicate across types": {
			EmployeeCode:     "1001",
			Month:            "2025-03",
			PaidLeaveDates:   []leave.LeaveDayRequest{{Date: "2025-03-03", Value: 1}},
			CasualLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-03", Value: 0.5}},
		},
		"outside cycle": {EmployeeCode: "1001", Month: "2025-03", PaidLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-26", Value: 1}}},
		"weekly off":    {EmployeeCode: "1001", Month: "2025-03", PaidLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-09", Value: 1}}},
		"holiday":       {EmployeeCode: "1001", Month: "2025-03", CasualLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-14", Value: 0.5}}},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ApproveMonthlyUsage(ctx, req)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
	assert.Zero(t, ents.rows[entKey("1001", 2025)].UsedPaidLeaves)
}

func TestLeaveService_ApproveMonthlyUsage_RequiresEntitlement(t *testing.T) {
	ctx := context.Background()
	svc, _, usage := newTestLeaveService()

	_, err := svc.ApproveMonthlyUsage(ctx, leave.ApproveMonthlyUsageRequest{
		EmployeeCode:   "1001",
		Month:          "2025-03",
		PaidLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-03", Value: 1}},
	})
	assert.ErrorIs(t, err, leave.ErrEntitlementNotFound)
	assert.Empty(t, usage.rows)
}

func TestLeaveService_Balance_MonthlyLossOfPay(t *testing.T) {
	ctx := context.Background()
	svc, ents, _ := newTestLeaveService()
	ents.rows[entKey("1001", 2025)] = leave.Entitlement{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 2}

	_, err := svc.ApproveMonthlyUsage(ctx, leave.ApproveMonthlyUsageRequest{
		EmployeeCode:     "1001",
		Month:            "2025-03",
		PaidLeaveDates:   []leave.LeaveDayRequest{{Date: "2025-03-03", Value: 1}, {Date: "2025-03-04", Value: 1}},
		CasualLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-05", Value: 1}},
	})
	require.NoError(t, err)

	b, err := svc.Balance(ctx, "1001", 2025, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.MonthLossOfPayDays)
	assert.Zero(t, b.RemainingLeaves)

	resp, err := svc.GetBalance(ctx, leave.BalanceRequest{EmployeeCode: "1001", Month: "2025-03"})
	require.NoError(t, err)
	assert.Equal(t, 2025, resp.Year)
	assert.True(t, resp.ExceedsQuota)
}

func TestLeaveService_GetBalance_NoEntitlement(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestLeaveService()

	_, err := svc.GetBalance(ctx, leave.BalanceRequest{EmployeeCode: "1001", Year: "2025"})
	assert.ErrorIs(t, err, leave.ErrEntitlementNotFound)

	// payroll reads it as a zero quota instead
	b, err := svc.Balance(ctx, "1001", 2025, "2025-03")
	require.NoError(t, err)
	assert.Zero(t, b.AllowedLeaves)
	assert.Zero(t, b.MonthLossOfPayDays)
}

func TestLeaveService_UpsertEntitlement_KeepsRunningTotals(t *testing.T) {
	ctx := context.Background()
	svc, ents, _ := newTestLeaveService()
	ents.rows[entKey("1001", 2025)] = leave.Entitlement{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 12, UsedPaidLeaves: 5}

	resp, err := svc.UpsertEntitlement(ctx, leave.UpsertEntitlementRequest{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 15})
	require.NoError(t, err)
	assert.Equal(t, 15.0, resp.AllowedLeaves)
	assert.Equal(t, 5.0, resp.UsedPaidLeaves)
	assert.Equal(t, 10.0, resp.RemainingLeaves)

	_, err = svc.UpsertEntitlement(ctx, leave.UpsertEntitlementRequest{EmployeeCode: "9999", Year: 2025, AllowedLeaves: 15})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLeaveService_ApproveMonthlyUsage_RejectsRestDays(t *testing.T) {
	ctx := context.Background()
	svc, ents, usage := newTestLeaveService()
	ents.rows[entKey("1001", 2025)] = leave.Entitlement{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 1}

	// 2025-03-09 is a Sunday, the employee's weekly off
	_, err := svc.ApproveMonthlyUsage(ctx, leave.ApproveMonthlyUsageRequest{
		EmployeeCode:   "1001",
		Month:          "2025-03",
		PaidLeaveDates: []leave.LeaveDayRequest{{Date: "2025-03-07", Value: 1}, {Date: "2025-03-09", Value: 1}},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "paid_leave_dates[1].date", verrs[0].Field)
	assert.Equal(t, leave.ErrLeaveDateOnRestDay.Error(), verrs[0].Message)

	// nothing stored, so no loss of pay can come from the rejected day
	assert.Empty(t, usage.rows)
	assert.Zero(t, ents.rows[entKey("1001", 2025)].UsedPaidLeaves)
}

func TestLeaveService_Balance_LaterMonthsDoNotChargeEarlierOnes(t *testing.T) {
	ctx := context.Background()
	svc, ents, _ := newTestLeaveService()
	ents.rows[entKey("1001", 2025)] = leave.Entitlement{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 10}

	weekdays := func(from time.Time, n int) []leave.LeaveDayRequest {
		var out []leave.LeaveDayRequest
		for d := from; len(out) < n; d = d.AddDate(0, 0, 1) {
			if d.Weekday() != time.Sunday {
				out = append(out, leave.LeaveDayRequest{Date: d.Format("2006-01-02"), Value: 1})
			}
		}
		return out
	}

	// 8 days in January, then 4 in February: 2 days over a quota of 10
	_, err := svc.ApproveMonthlyUsage(ctx, leave.ApproveMonthlyUsageRequest{
		EmployeeCode:   "1001",
		Month:          "2025-01",
		PaidLeaveDates: weekdays(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 8),
	})
	require.NoError(t, err)
	_, err = svc.ApproveMonthlyUsage(ctx, leave.ApproveMonthlyUsageRequest{
		EmployeeCode:   "1001",
		Month:          "2025-02",
		PaidLeaveDates: weekdays(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), 4),
	})
	require.NoError(t, err)

	// January's draft is recalculated after February was approved
	jan, err := svc.Balance(ctx, "1001", 2025, "2025-01")
	require.NoError(t, err)
	feb, err := svc.Balance(ctx, "1001", 2025, "2025-02")
	require.NoError(t, err)

	assert.Zero(t, jan.MonthLossOfPayDays)
	assert.False(t, jan.ExceedsQuota)
	assert.Equal(t, 2.0, feb.MonthLossOfPayDays)
	assert.Equal(t, 2.0, jan.MonthLossOfPayDays+feb.MonthLossOfPayDays)

	// the yearly view still shows the whole excess
	assert.Equal(t, 2.0, jan.ExcessLeaves)
	assert.Zero(t, jan.RemainingLeaves)
}
