package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newID(t *testing.T) string {
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func draftSalary(code string, net string) payroll.MonthlySalary {
	return payroll.MonthlySalary{
		EmployeeCode:    code,
		Month:           "2025-03",
		BaseSalary:      decimal.RequireFromString("18000"),
		GrossSalary:     decimal.RequireFromString("18000"),
		NetSalary:       decimal.RequireFromString(net),
		PerDayRate:      decimal.RequireFromString("692.31"),
		CycleDays:       26,
		PaidDays:        26,
		TotalDeductions: decimal.RequireFromString("200"),
		ProfessionalTax: decimal.RequireFromString("200"),
		Breakdown:       []byte(`{"net_salary":"` + net + `"}`),
	}
}

func TestSalaryRepository_DraftFinalizeLifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	setup.seedEmployee(t, "1001", "18000")
	ctx := context.Background()
	repo := postgresql.NewSalaryRepository(setup.DB)

	saved, err := repo.UpsertDraft(ctx, draftSalary("1001", "17800"))
	require.NoError(t, err)
	assert.Equal(t, payroll.SalaryStatusDraft, saved.Status)

	saved, err = repo.UpsertDraft(ctx, draftSalary("1001", "17500"))
	require.NoError(t, err)
	assert.Equal(t, "17500", saved.NetSalary.String())

	fin, err := repo.Finalize(ctx, "1001", "2025-03", "admin-1")
	require.NoError(t, err)
	assert.True(t, fin.IsFinalized())
	require.NotNil(t, fin.FinalizedBy)
	assert.Equal(t, "admin-1", *fin.FinalizedBy)

	_, err = repo.Finalize(ctx, "1001", "2025-03", "admin-2")
	assert.ErrorIs(t, err, payroll.ErrSalaryAlreadyFinalized)

	_, err = repo.UpsertDraft(ctx, draftSalary("1001", "1"))
	assert.ErrorIs(t, err, payroll.ErrSalaryAlreadyFinalized)

	got, err := repo.Get(ctx, "1001", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "17500", got.NetSalary.String())
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, "Test Employee", *got.EmployeeName)

	_, err = repo.Finalize(ctx, "1001", "2025-04", "admin-1")
	assert.ErrorIs(t, err, payroll.ErrSalaryNotFound)
}

func TestSalaryRepository_FinalizeMonthSkipsFinalized(t *testing.T) {
	setup := NewTestDatabase(t)
	setup.seedEmployee(t, "1001", "18000")
	setup.seedEmployee(t, "1002", "18000")
	ctx := context.Background()
	repo := postgresql.NewSalaryRepository(setup.DB)

	_, err := repo.UpsertDraft(ctx, draftSalary("1001", "17800"))
	require.NoError(t, err)
	_, err = repo.UpsertDraft(ctx, draftSalary("1002", "17800"))
	require.NoError(t, err)
	_, err = repo.Finalize(ctx, "1001", "2025-03", "admin")
	require.NoError(t, err)

	codes, err := repo.FinalizeMonth(ctx, "2025-03", "admin")
	require.NoError(t, err)
	assert.Equal(t, []string{"1002"}, codes)
}

func TestHoldRepository_SingleActiveHold(t *testing.T) {
	setup := NewTestDatabase(t)
	setup.seedEmployee(t, "1001", "18000")
	ctx := context.Background()
	repo := postgresql.NewHoldRepository(setup.DB)

	_, err := repo.Create(ctx, payroll.Hold{ID: newID(t), EmployeeCode: "1001", Month: "2025-03", HoldType: payroll.HoldTypeManual})
	require.NoError(t, err)

	_, err = repo.Create(ctx, payroll.Hold{ID: newID(t), EmployeeCode: "1001", Month: "2025-03", HoldType: payroll.HoldTypeAuto})
	assert.ErrorIs(t, err, payroll.ErrHoldAlreadyActive)

	released, err := repo.Release(ctx, "1001", "2025-03", "admin")
	require.NoError(t, err)
	assert.True(t, released.Released)

	_, err = repo.Release(ctx, "1001", "2025-03", "admin")
	assert.ErrorIs(t, err, payroll.ErrNoActiveHold)

	_, err = repo.Create(ctx, payroll.Hold{ID: newID(t), EmployeeCode: "1001", Month: "2025-03", HoldType: payroll.HoldTypeManual})
	assert.NoError(t, err)
}

func TestAdjustmentRepository_UpsertByCategory(t *testing.T) {
	setup := NewTestDatabase(t)
	setup.seedEmployee(t, "1001", "18000")
	ctx := context.Background()
	repo := postgresql.NewAdjustmentRepository(setup.DB)

	first, err := repo.Upsert(ctx, payroll.Adjustment{
		ID: newID(t), EmployeeCode: "1001", Month: "2025-03",
		Type: payroll.AdjustmentTypeAddition, Category: "INCENTIVE", Amount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, payroll.Adjustment{
		ID: newID(t), EmployeeCode: "1001", Month: "2025-03",
		Type: payroll.AdjustmentTypeAddition, Category: "INCENTIVE", Amount: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := repo.ListByEmployeeMonth(ctx, "1001", "2025-03")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1500", list[0].Amount.String())

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), payroll.ErrAdjustmentNotFound)
}

func TestEmployeeAndShiftRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	setup.seedEmployee(t, "1001", "18000")
	ctx := context.Background()

	emp, err := postgresql.NewEmployeeRepository(setup.DB).GetByCode(ctx, "1001")
	require.NoError(t, err)
	assert.True(t, emp.HasBaseSalary())
	assert.Equal(t, time.Sunday, emp.WeeklyOff)

	_, err = postgresql.NewEmployeeRepository(setup.DB).GetByCode(ctx, "404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	sh, err := postgresql.NewShiftRepository(setup.DB).GetByName(ctx, "day shift")
	require.NoError(t, err)
	assert.Equal(t, float64(9), sh.WorkHours)

	_, err = setup.DB.Exec(ctx, `INSERT INTO shifts (name, start_time, end_time) VALUES ('Broken', 'nine', '18:00')`)
	require.NoError(t, err)
	_, err = postgresql.NewShiftRepository(setup.DB).GetByName(ctx, "Broken")
	assert.ErrorIs(t, err, shift.ErrInvalidShiftTime)
}

func TestLeaveRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	setup.seedEmployee(t, "1001", "18000")
	ctx := context.Background()
	ents := postgresql.NewEntitlementRepository(setup.DB)
	usage := postgresql.NewMonthlyUsageRepository(setup.DB)

	_, err := ents.Upsert(ctx, leave.Entitlement{EmployeeCode: "1001", Year: 2025, AllowedLeaves: 12})
	require.NoError(t, err)
	require.NoError(t, ents.AddUsage(ctx, "1001", 2025, 1.5, -2))

	ent, err := ents.Get(ctx, "1001", 2025)
	require.NoError(t, err)
	assert.Equal(t, 1.5, ent.UsedPaidLeaves)
	assert.Equal(t, float64(0), ent.UsedCasualLeaves)

	_, err = usage.Upsert(ctx, leave.MonthlyUsage{
		EmployeeCode:   "1001",
		Month:          "2025-03",
		PaidLeaveDates: []leave.LeaveDay{{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Value: 0.5}},
	})
	require.NoError(t, err)

	got, err := usage.Get(ctx, "1001", "2025-03")
	require.NoError(t, err)
	require.Len(t, got.PaidLeaveDates, 1)
	assert.Equal(t, 0.5, got.PaidLeaveDates[0].Value)
	assert.Equal(t, 3, got.PaidLeaveDates[0].Date.Day())

	_, err = usage.Get(ctx, "1001", "2025-04")
	assert.ErrorIs(t, err, leave.ErrMonthlyUsageNotFound)

	for _, month := range []string{"2025-01", "2024-12"} {
		_, err = usage.Upsert(ctx, leave.MonthlyUsage{EmployeeCode: "1001", Month: month})
		require.NoError(t, err)
	}
	year, err := usage.ListByYear(ctx, "1001", 2025)
	require.NoError(t, err)
	require.Len(t, year, 2)
	assert.Equal(t, "2025-01", year[0].Month)
	assert.Equal(t, "2025-03", year[1].Month)
}

func TestRegularizationAndPunchRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	setup.seedEmployee(t, "1001", "18000")
	ctx := context.Background()
	regs := postgresql.NewRegularizationRepository(setup.DB)
	day := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := regs.Upsert(ctx, attendance.Regularization{
		ID: newID(t), EmployeeCode: "1001", Date: day,
		OriginalStatus: attendance.StatusAbsent, RegularizedStatus: attendance.StatusFullDay, Reason: "device offline",
	})
	require.NoError(t, err)

	got, err := regs.GetByEmployeeAndDate(ctx, "1001", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusFullDay, got.RegularizedStatus)

	require.NoError(t, regs.Delete(ctx, "1001", day))
	assert.ErrorIs(t, regs.Delete(ctx, "1001", day), attendance.ErrRegularizationNotFound)

	_, err = setup.DB.Exec(ctx, `
		INSERT INTO punch_logs (employee_code, log_time, direction) VALUES
			('1001', '2025-03-05 09:02:00', 'in'),
			('1001', '2025-03-05 18:10:00', 'out'),
			('1001', '2025-03-06 09:00:00', NULL)
	`)
	require.NoError(t, err)

	logs, err := postgresql.NewPunchLogRepository(setup.DB).ListByEmployeeAndDate(ctx, "1001", day)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, attendance.DirectionIn, logs[0].Direction)
	assert.Equal(t, 18, logs[1].Timestamp.Hour())
}
