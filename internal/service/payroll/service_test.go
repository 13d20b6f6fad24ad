package payroll

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calc(t *testing.T, svc payroll.PayrollService, code string) payroll.SalaryResponse {
	t.Helper()
	resp, err := svc.CalculateSalary(context.Background(), payroll.CalculateSalaryRequest{EmployeeCode: code, Month: "2025-03"})
	require.NoError(t, err)
	return resp
}

func TestPayrollService_CalculateSalary(t *testing.T) {
	deps := newTestDeps()
	att := cycle26()
	att.AbsentDays = 2
	deps.attendance.months["1002"] = att
	svc := deps.service()

	resp := calc(t, svc, "1002")

	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, "9876.92", resp.NetSalary.StringFixed(2))
	assert.Equal(t, "1200.00", resp.TDSDeduction.StringFixed(2))
	assert.False(t, resp.IsHeld)
	require.NotNil(t, resp.Breakdown)
	assert.Equal(t, "923.08", resp.Breakdown.Deductions.Absent.StringFixed(2))
	assert.Equal(t, "2025-02-26", resp.Breakdown.CycleStart)

	first := deps.salaries.rows[key("1002", "2025-03")].Breakdown
	calc(t, svc, "1002")
	second := deps.salaries.rows[key("1002", "2025-03")].Breakdown
	assert.Equal(t, string(first), string(second))
}

func TestPayrollService_CalculateSalaryRejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestDeps().service()

	tests := []struct {
		code string
		want error
	}{
		{code: "1003", want: employee.ErrBaseSalaryMissing},
		{code: "1004", want: employee.ErrEmployeeInactive},
		{code: "9999", want: employee.ErrEmployeeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := svc.CalculateSalary(ctx, payroll.CalculateSalaryRequest{EmployeeCode: tt.code, Month: "2025-03"})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.CalculateSalary(ctx, payroll.CalculateSalaryRequest{EmployeeCode: "1001", Month: "2025-3"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPayrollService_FinalizeIsOneWay(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	svc := deps.service()
	calc(t, svc, "1001")

	fin, err := svc.FinalizeSalary(ctx, "1001", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "FINALIZED", fin.Status)
	require.NotNil(t, fin.FinalizedBy)
	assert.Equal(t, "system", *fin.FinalizedBy)
	assert.Equal(t, "17800.00", fin.NetSalary.StringFixed(2))

	_, err = svc.FinalizeSalary(ctx, "1001", "2025-03")
	assert.ErrorIs(t, err, payroll.ErrSalaryAlreadyFinalized)

	// attendance changes after finalization must not leak into the snapshot
	att := cycle26()
	att.AbsentDays = 5
	deps.attendance.months["1001"] = att
	_, err = svc.CalculateSalary(ctx, payroll.CalculateSalaryRequest{EmployeeCode: "1001", Month: "2025-03"})
	assert.ErrorIs(t, err, payroll.ErrSalaryAlreadyFinalized)

	got, err := svc.GetSalary(ctx, "1001", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "17800.00", got.NetSalary.StringFixed(2))

	_, err = svc.FinalizeSalary(ctx, "1002", "2025-03")
	assert.ErrorIs(t, err, payroll.ErrSalaryNotFound)
}

func TestPayrollService_FinalizeMonth(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	svc := deps.service()
	calc(t, svc, "1002")
	calc(t, svc, "1001")

	resp, err := svc.FinalizeMonth(ctx, payroll.FinalizeMonthRequest{Month: "2025-03"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1001", "1002"}, resp.Finalized)
	assert.Equal(t, 2, resp.Count)

	resp, err = svc.FinalizeMonth(ctx, payroll.FinalizeMonthRequest{Month: "2025-03"})
	require.NoError(t, err)
	assert.Zero(t, resp.Count)
}

func TestPayrollService_CalculateBatch(t *testing.T) {
	deps := newTestDeps()
	deps.employees.employees["1005"] = employee.Employee{EmployeeCode: "1005", BaseSalary: salaryOf("16000"), IsActive: true}
	deps.attendance.errs["1005"] = fmt.Errorf("failed to resolve shift: %w", shift.ErrInvalidShiftConfig)
	svc := deps.service()

	resp, err := svc.CalculateBatch(context.Background(), payroll.CalculateBatchRequest{Month: "2025-03"})
	require.NoError(t, err)

	require.Len(t, resp.Succeeded, 2)
	assert.Equal(t, "1001", resp.Succeeded[0].EmployeeCode)
	assert.Equal(t, "1002", resp.Succeeded[1].EmployeeCode)
	assert.Nil(t, resp.Succeeded[0].Breakdown)

	require.Len(t, resp.Failed, 2)
	assert.Equal(t, payroll.BatchError{EmployeeCode: "1003", Code: "VALIDATION_ERROR", Error: employee.ErrBaseSalaryMissing.Error()}, resp.Failed[0])
	assert.Equal(t, "1005", resp.Failed[1].EmployeeCode)
	assert.Equal(t, "COMPUTATION_ERROR", resp.Failed[1].Code)

	assert.Len(t, deps.salaries.rows, 2)
}

func TestPayrollService_CalculateBatchExplicitCodes(t *testing.T) {
	deps := newTestDeps()
	svc := deps.service()
	calc(t, svc, "1001")
	_, err := svc.FinalizeSalary(context.Background(), "1001", "2025-03")
	require.NoError(t, err)

	resp, err := svc.CalculateBatch(context.Background(), payroll.CalculateBatchRequest{
		Month:         "2025-03",
		EmployeeCodes: []string{"1001", "1002", "9999"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Succeeded, 1)
	require.Len(t, resp.Failed, 2)
	assert.Equal(t, "CONFLICT", resp.Failed[0].Code)
	assert.Equal(t, "NOT_FOUND", resp.Failed[1].Code)
}

func TestPayrollService_AutoHoldOnNegativeNet(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	att := cycle26()
	att.AbsentDays = 26
	deps.attendance.months["1002"] = att
	svc := deps.service()

	resp := calc(t, svc, "1002")
	assert.True(t, resp.NetSalary.IsNegative())
	assert.True(t, resp.IsHeld)

	hold, err := deps.holds.GetActive(ctx, "1002", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, payroll.HoldTypeAuto, hold.HoldType)

	deps.attendance.months["1002"] = cycle26()
	resp = calc(t, svc, "1002")
	assert.False(t, resp.IsHeld)
	_, err = deps.holds.GetActive(ctx, "1002", "2025-03")
	assert.ErrorIs(t, err, payroll.ErrHoldNotFound)
}

func TestPayrollService_AutoHoldDisabled(t *testing.T) {
	deps := newTestDeps()
	deps.policy.AutoHoldNegativeNet = false
	att := cycle26()
	att.AbsentDays = 26
	deps.attendance.months["1002"] = att

	resp := calc(t, deps.service(), "1002")
	assert.True(t, resp.NetSalary.IsNegative())
	assert.False(t, resp.IsHeld)
}

func TestPayrollService_ManualHoldSurvivesRecalculation(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	svc := deps.service()
	calc(t, svc, "1001")

	reason := "bank details pending"
	hold, err := svc.CreateHold(ctx, payroll.CreateHoldRequest{EmployeeCode: "1001", Month: "2025-03", Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, "MANUAL", hold.HoldType)

	_, err = svc.CreateHold(ctx, payroll.CreateHoldRequest{EmployeeCode: "1001", Month: "2025-03"})
	assert.ErrorIs(t, err, payroll.ErrHoldAlreadyActive)

	resp := calc(t, svc, "1001")
	assert.True(t, resp.IsHeld)

	released, err := svc.ReleaseHold(ctx, "1001", "2025-03")
	require.NoError(t, err)
	assert.True(t, released.Released)
	assert.False(t, deps.salaries.rows[key("1001", "2025-03")].IsHeld)

	_, err = svc.ReleaseHold(ctx, "1001", "2025-03")
	assert.ErrorIs(t, err, payroll.ErrNoActiveHold)
}

func TestPayslipService_HoldBlocksDownload(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	svc := deps.service()
	payslips := deps.payslips()
	calc(t, svc, "1001")

	_, err := payslips.GetPayslip(ctx, "1001", "2025-03")
	assert.ErrorIs(t, err, payroll.ErrSalaryNotFinalized)

	_, err = svc.FinalizeSalary(ctx, "1001", "2025-03")
	require.NoError(t, err)
	_, err = svc.CreateHold(ctx, payroll.CreateHoldRequest{EmployeeCode: "1001", Month: "2025-03"})
	require.NoError(t, err)
	before := deps.salaries.rows[key("1001", "2025-03")]

	_, err = payslips.GetPayslip(ctx, "1001", "2025-03")
	assert.ErrorIs(t, err, payroll.ErrSalaryHeld)

	_, err = svc.ReleaseHold(ctx, "1001", "2025-03")
	require.NoError(t, err)

	slip, err := payslips.GetPayslip(ctx, "1001", "2025-03")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(slip.Content, []byte("%PDF-")))
	assert.Equal(t, "payslip_1001_2025-03.pdf", slip.FileName)
	assert.Equal(t, "http://files.test/payslips/2025-03/payslip_1001_2025-03.pdf", slip.URL)

	after := deps.salaries.rows[key("1001", "2025-03")]
	assert.True(t, before.NetSalary.Equal(after.NetSalary))
	assert.True(t, before.GrossSalary.Equal(after.GrossSalary))
	assert.Equal(t, string(before.Breakdown), string(after.Breakdown))

	again, err := payslips.GetPayslip(ctx, "1001", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, slip.Content, again.Content)
	assert.Equal(t, 1, deps.files.uploads)

	_, err = payslips.GetPayslip(ctx, "1002", "2025-03")
	assert.ErrorIs(t, err, payroll.ErrSalaryNotFound)
}

func TestPayrollService_Adjustments(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	svc := deps.service()

	first, err := svc.UpsertAdjustment(ctx, payroll.UpsertAdjustmentRequest{
		EmployeeCode: "1001", Month: "2025-03", Type: "addition", Category: "incentive", Amount: dec("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ADDITION", first.Type)
	assert.Equal(t, payroll.CategoryIncentive, first.Category)

	second, err := svc.UpsertAdjustment(ctx, payroll.UpsertAdjustmentRequest{
		EmployeeCode: "1001", Month: "2025-03", Type: "ADDITION", Category: "INCENTIVE", Amount: dec("1500"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = svc.UpsertAdjustment(ctx, payroll.UpsertAdjustmentRequest{
		EmployeeCode: "1001", Month: "2025-03", Type: "DEDUCTION", Category: "ADVANCE", Amount: dec("500"),
	})
	require.NoError(t, err)

	listed, err := svc.ListAdjustments(ctx, payroll.ListAdjustmentsRequest{EmployeeCode: "1001", Month: "2025-03"})
	require.NoError(t, err)
	require.Len(t, listed, 2)

	resp := calc(t, svc, "1001")
	// 18000 + 1500 incentive, minus 500 advance and 200 professional tax
	assert.Equal(t, "19500.00", resp.GrossSalary.StringFixed(2))
	assert.Equal(t, "18800.00", resp.NetSalary.StringFixed(2))

	require.NoError(t, svc.DeleteAdjustment(ctx, second.ID))
	assert.ErrorIs(t, svc.DeleteAdjustment(ctx, second.ID), payroll.ErrAdjustmentNotFound)

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, svc.DeleteAdjustment(ctx, "not-a-uuid"), &verrs)

	_, err = svc.UpsertAdjustment(ctx, payroll.UpsertAdjustmentRequest{
		EmployeeCode: "1001", Month: "2025-03", Type: "BONUS", Category: "X", Amount: dec("-1"),
	})
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)

	_, err = svc.FinalizeSalary(ctx, "1001", "2025-03")
	require.NoError(t, err)
	_, err = svc.UpsertAdjustment(ctx, payroll.UpsertAdjustmentRequest{
		EmployeeCode: "1001", Month: "2025-03", Type: "DEDUCTION", Category: "FINE", Amount: dec("10"),
	})
	assert.ErrorIs(t, err, payroll.ErrSalaryAlreadyFinalized)
}

func TestPayrollService_LossOfPayFromLeaveLedger(t *testing.T) {
	deps := newTestDeps()
	deps.leaves.balances["1001"] = leave.Balance{MonthLossOfPayDays: 1}
	att := cycle26()
	att.PaidLeaveDays = 3
	deps.attendance.months["1001"] = att

	resp := calc(t, deps.service(), "1001")

	assert.Equal(t, float64(1), resp.LossOfPayDays)
	assert.Equal(t, float64(3), resp.LeaveDays)
	assert.Equal(t, "692.31", resp.Breakdown.Deductions.LossOfPay.StringFixed(2))
	assert.Equal(t, "17107.69", resp.NetSalary.StringFixed(2))
}

func TestPayrollService_SetOvertime(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	svc := deps.service()

	require.NoError(t, svc.SetOvertime(ctx, payroll.SetOvertimeRequest{EmployeeCode: "1001", Month: "2025-03", Enabled: true}))
	assert.True(t, deps.overtime.enabled[key("1001", "2025-03")])

	err := svc.SetOvertime(ctx, payroll.SetOvertimeRequest{EmployeeCode: "9999", Month: "2025-03", Enabled: true})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_ExportRegister(t *testing.T) {
	deps := newTestDeps()
	svc := deps.service()
	calc(t, svc, "1001")
	calc(t, svc, "1002")

	out, err := svc.ExportRegister(context.Background(), "2025-03")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))

	_, err = svc.ExportRegister(context.Background(), "March")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
