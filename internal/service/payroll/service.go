package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/export"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/jwt"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AttendanceReader is the part of the attendance service payroll depends on.
type AttendanceReader interface {
	GetMonthlyAttendance(ctx context.Context, employeeCode string, month string) (attendance.MonthlyAttendance, error)
}

// LeaveReader is the part of the leave ledger payroll depends on.
type LeaveReader interface {
	Balance(ctx context.Context, employeeCode string, year int, month string) (leave.Balance, error)
}

type PayrollServiceImpl struct {
	tx             database.Transactor
	salaryRepo     payroll.SalaryRepository
	adjustmentRepo payroll.AdjustmentRepository
	holdRepo       payroll.HoldRepository
	overtimeRepo   attendance.OvertimeRepository
	employeeRepo   employee.EmployeeRepository
	attendance     AttendanceReader
	leaves         LeaveReader
	policy         payroll.Policy
	concurrency    int
	logger         *slog.Logger
}

func NewPayrollService(
	tx database.Transactor,
	salaryRepo payroll.SalaryRepository,
	adjustmentRepo payroll.AdjustmentRepository,
	holdRepo payroll.HoldRepository,
	overtimeRepo attendance.OvertimeRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceReader AttendanceReader,
	leaves LeaveReader,
	policy payroll.Policy,
	concurrency int,
	logger *slog.Logger,
) payroll.PayrollService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PayrollServiceImpl{
		tx:             tx,
		salaryRepo:     salaryRepo,
		adjustmentRepo: adjustmentRepo,
		holdRepo:       holdRepo,
		overtimeRepo:   overtimeRepo,
		employeeRepo:   employeeRepo,
		attendance:     attendanceReader,
		leaves:         leaves,
		policy:         policy,
		concurrency:    concurrency,
		logger:         logger,
	}
}

// ========== SALARY ==========

// CalculateSalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) CalculateSalary(ctx context.Context, req payroll.CalculateSalaryRequest) (payroll.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryResponse{}, err
	}

	saved, err := p.calculate(ctx, req.EmployeeCode, req.Month)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	return mapSalaryToResponse(saved, true), nil
}

func (p *PayrollServiceImpl) calculate(ctx context.Context, employeeCode, month string) (payroll.MonthlySalary, error) {
	existing, err := p.salaryRepo.Get(ctx, employeeCode, month)
	if err != nil && !errors.Is(err, payroll.ErrSalaryNotFound) {
		return payroll.MonthlySalary{}, err
	}
	if err == nil && existing.IsFinalized() {
		return payroll.MonthlySalary{}, payroll.ErrSalaryAlreadyFinalized
	}

	emp, err := p.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return payroll.MonthlySalary{}, err
	}
	if !emp.IsActive {
		return payroll.MonthlySalary{}, employee.ErrEmployeeInactive
	}
	if !emp.HasBaseSalary() {
		return payroll.MonthlySalary{}, employee.ErrBaseSalaryMissing
	}

	att, err := p.attendance.GetMonthlyAttendance(ctx, employeeCode, month)
	if err != nil {
		return payroll.MonthlySalary{}, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	m, _ := utils.ParseMonth(month)
	balance, err := p.leaves.Balance(ctx, employeeCode, m.Year(), month)
	if err != nil {
		return payroll.MonthlySalary{}, fmt.Errorf("failed to read leave balance: %w", err)
	}

	adjustments, err := p.adjustmentRepo.ListByEmployeeMonth(ctx, employeeCode, month)
	if err != nil {
		return payroll.MonthlySalary{}, fmt.Errorf("failed to list adjustments: %w", err)
	}

	bd, err := Compute(CalculationInput{
		EmployeeCode: employeeCode,
		Month:        month,
		BaseSalary:   *emp.BaseSalary,
		Attendance:   att,
		Leave:        balance,
		Adjustments:  adjustments,
	}, p.policy)
	if err != nil {
		return payroll.MonthlySalary{}, err
	}

	raw, err := json.Marshal(bd)
	if err != nil {
		return payroll.MonthlySalary{}, fmt.Errorf("failed to encode breakdown: %w", err)
	}

	row := payroll.MonthlySalary{
		EmployeeCode:    employeeCode,
		Month:           month,
		BaseSalary:      bd.BaseSalary,
		GrossSalary:     bd.Earnings.GrossSalary,
		NetSalary:       bd.NetSalary,
		PerDayRate:      bd.PerDayRate,
		HourlyRate:      bd.HourlyRate,
		CycleDays:       bd.CycleDays,
		PaidDays:        bd.PaidDays(),
		AbsentDays:      att.AbsentDays,
		HalfDays:        att.HalfDays,
		LeaveDays:       att.PaidLeaveDays + att.CasualLeaveDays,
		LossOfPayDays:   balance.MonthLossOfPayDays,
		TotalDeductions: bd.Deductions.Total,
		TotalAdditions:  bd.Earnings.IncentiveAmount.Add(bd.OtherAdditions),
		OvertimeAmount:  bd.Earnings.OvertimeAmount,
		WorkedHours:     att.TotalWorkedHours,
		OvertimeHours:   att.OvertimeHours,
		TDSDeduction:    bd.Deductions.TDS,
		ProfessionalTax: bd.Deductions.ProfessionalTax,
		Breakdown:       raw,
		Status:          payroll.SalaryStatusDraft,
	}

	var saved payroll.MonthlySalary
	err = p.tx.WithinTx(ctx, func(txCtx context.Context) error {
		held, err := p.syncAutoHold(txCtx, employeeCode, month, bd.NetSalary.IsNegative())
		if err != nil {
			return err
		}
		row.IsHeld = held

		saved, err = p.salaryRepo.UpsertDraft(txCtx, row)
		return err
	})
	if err != nil {
		return payroll.MonthlySalary{}, err
	}

	p.logger.Info("salary calculated",
		slog.String("employee_code", employeeCode),
		slog.String("month", month),
		slog.String("gross", saved.GrossSalary.String()),
		slog.String("net", saved.NetSalary.String()),
		slog.Bool("held", saved.IsHeld),
	)
	if len(att.Warnings) > 0 {
		p.logger.Warn("salary calculated with attendance warnings",
			slog.String("employee_code", employeeCode),
			slog.String("month", month),
			slog.Any("warnings", att.Warnings),
		)
	}
	return saved, nil
}

// syncAutoHold places an AUTO hold on a negative net salary and lifts an AUTO
// hold once the net is no longer negative. Manual holds are never touched.
// It reports whether the salary ends up held.
func (p *PayrollServiceImpl) syncAutoHold(ctx context.Context, employeeCode, month string, negative bool) (bool, error) {
	active, err := p.holdRepo.GetActive(ctx, employeeCode, month)
	switch {
	case errors.Is(err, payroll.ErrHoldNotFound):
		if !negative || !p.policy.AutoHoldNegativeNet {
			return false, nil
		}
		id, err := uuid.NewV7()
		if err != nil {
			return false, fmt.Errorf("failed to generate hold id: %w", err)
		}
		reason := "net salary is negative"
		by := jwt.ActorFromContext(ctx)
		if _, err := p.holdRepo.Create(ctx, payroll.Hold{
			ID:           id.String(),
			EmployeeCode: employeeCode,
			Month:        month,
			HoldType:     payroll.HoldTypeAuto,
			Reason:       &reason,
			CreatedBy:    &by,
		}); err != nil {
			return false, fmt.Errorf("failed to create auto hold: %w", err)
		}
		p.logger.Warn("salary auto-held",
			slog.String("employee_code", employeeCode),
			slog.String("month", month),
		)
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to read hold: %w", err)
	}

	if active.HoldType == payroll.HoldTypeAuto && !negative {
		if _, err := p.holdRepo.Release(ctx, employeeCode, month, jwt.ActorFromContext(ctx)); err != nil {
			return false, fmt.Errorf("failed to release auto hold: %w", err)
		}
		return false, nil
	}
	return true, nil
}

// CalculateBatch implements payroll.PayrollService. One failing employee does
// not stop the others.
func (p *PayrollServiceImpl) CalculateBatch(ctx context.Context, req payroll.CalculateBatchRequest) (payroll.BatchCalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchCalculationResponse{}, err
	}

	codes := req.EmployeeCodes
	if len(codes) == 0 {
		var err error
		codes, err = p.employeeRepo.ListActiveCodes(ctx)
		if err != nil {
			return payroll.BatchCalculationResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
	}

	resp := payroll.BatchCalculationResponse{
		Month:     req.Month,
		Succeeded: []payroll.SalaryResponse{},
		Failed:    []payroll.BatchError{},
	}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for _, code := range codes {
		code := code // per-iteration copy; go directive is 1.21
		g.Go(func() error {
			saved, err := p.calculate(ctx, code, req.Month)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Error("batch salary calculation failed",
					slog.String("employee_code", code),
					slog.String("month", req.Month),
					slog.String("error", err.Error()),
				)
				resp.Failed = append(resp.Failed, payroll.BatchError{
					EmployeeCode: code,
					Code:         errorCode(err),
					Error:        err.Error(),
				})
				return nil
			}
			resp.Succeeded = append(resp.Succeeded, mapSalaryToResponse(saved, false))
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(resp.Succeeded, func(i, j int) bool { return resp.Succeeded[i].EmployeeCode < resp.Succeeded[j].EmployeeCode })
	sort.Slice(resp.Failed, func(i, j int) bool { return resp.Failed[i].EmployeeCode < resp.Failed[j].EmployeeCode })

	p.logger.Info("batch salary calculation finished",
		slog.String("month", req.Month),
		slog.Int("succeeded", len(resp.Succeeded)),
		slog.Int("failed", len(resp.Failed)),
	)
	return resp, nil
}

// GetSalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetSalary(ctx context.Context, employeeCode string, month string) (payroll.SalaryResponse, error) {
	if errs := validateEmployeeMonth(employeeCode, month); errs != nil {
		return payroll.SalaryResponse{}, errs
	}

	s, err := p.salaryRepo.Get(ctx, employeeCode, month)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	return mapSalaryToResponse(s, true), nil
}

// ListSalaries implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListSalaries(ctx context.Context, month string) ([]payroll.SalaryResponse, error) {
	if _, ok := validator.IsValidMonth(month); !ok {
		return nil, validator.ValidationErrors{{Field: "month", Message: "must be in YYYY-MM format"}}
	}

	rows, err := p.salaryRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}

	out := make([]payroll.SalaryResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, mapSalaryToResponse(s, false))
	}
	return out, nil
}

// FinalizeSalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) FinalizeSalary(ctx context.Context, employeeCode string, month string) (payroll.SalaryResponse, error) {
	if errs := validateEmployeeMonth(employeeCode, month); errs != nil {
		return payroll.SalaryResponse{}, errs
	}

	by := jwt.ActorFromContext(ctx)
	s, err := p.salaryRepo.Finalize(ctx, employeeCode, month, by)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	p.logger.Info("salary finalized",
		slog.String("employee_code", employeeCode),
		slog.String("month", month),
		slog.String("finalized_by", by),
	)
	return mapSalaryToResponse(s, true), nil
}

// FinalizeMonth implements payroll.PayrollService.
func (p *PayrollServiceImpl) FinalizeMonth(ctx context.Context, req payroll.FinalizeMonthRequest) (payroll.FinalizeMonthResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.FinalizeMonthResponse{}, err
	}

	by := jwt.ActorFromContext(ctx)
	codes, err := p.salaryRepo.FinalizeMonth(ctx, req.Month, by)
	if err != nil {
		return payroll.FinalizeMonthResponse{}, fmt.Errorf("failed to finalize month: %w", err)
	}
	sort.Strings(codes)

	p.logger.Info("salary month finalized",
		slog.String("month", req.Month),
		slog.Int("count", len(codes)),
		slog.String("finalized_by", by),
	)
	return payroll.FinalizeMonthResponse{Month: req.Month, Finalized: codes, Count: len(codes)}, nil
}

// ExportRegister implements payroll.PayrollService.
func (p *PayrollServiceImpl) ExportRegister(ctx context.Context, month string) ([]byte, error) {
	if _, ok := validator.IsValidMonth(month); !ok {
		return nil, validator.ValidationErrors{{Field: "month", Message: "must be in YYYY-MM format"}}
	}

	rows, err := p.salaryRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}

	register := make([]export.RegisterRow, 0, len(rows))
	for _, s := range rows {
		register = append(register, export.RegisterRow{
			EmployeeCode:    s.EmployeeCode,
			EmployeeName:    deref(s.EmployeeName),
			Department:      deref(s.Department),
			Status:          s.Status.String(),
			CycleDays:       s.CycleDays,
			PaidDays:        s.PaidDays,
			AbsentDays:      s.AbsentDays,
			LeaveDays:       s.LeaveDays,
			LossOfPayDays:   s.LossOfPayDays,
			BaseSalary:      s.BaseSalary,
			OvertimeAmount:  s.OvertimeAmount,
			GrossSalary:     s.GrossSalary,
			TotalDeductions: s.TotalDeductions,
			TotalAdditions:  s.TotalAdditions,
			NetSalary:       s.NetSalary,
			IsHeld:          s.IsHeld,
		})
	}
	return export.SalaryRegister(month, register)
}

// ========== HOLDS ==========

// CreateHold implements payroll.PayrollService.
func (p *PayrollServiceImpl) CreateHold(ctx context.Context, req payroll.CreateHoldRequest) (payroll.HoldResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.HoldResponse{}, err
	}

	if _, err := p.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return payroll.HoldResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.HoldResponse{}, fmt.Errorf("failed to generate hold id: %w", err)
	}
	by := jwt.ActorFromContext(ctx)

	var hold payroll.Hold
	err = p.tx.WithinTx(ctx, func(txCtx context.Context) error {
		hold, err = p.holdRepo.Create(txCtx, payroll.Hold{
			ID:           id.String(),
			EmployeeCode: req.EmployeeCode,
			Month:        req.Month,
			HoldType:     payroll.HoldTypeManual,
			Reason:       req.Reason,
			CreatedBy:    &by,
		})
		if err != nil {
			return err
		}
		return p.salaryRepo.SetHeld(txCtx, req.EmployeeCode, req.Month, true)
	})
	if err != nil {
		return payroll.HoldResponse{}, err
	}

	p.logger.Info("salary held",
		slog.String("employee_code", req.EmployeeCode),
		slog.String("month", req.Month),
		slog.String("by", by),
	)
	return mapHoldToResponse(hold), nil
}

// ReleaseHold implements payroll.PayrollService.
func (p *PayrollServiceImpl) ReleaseHold(ctx context.Context, employeeCode string, month string) (payroll.HoldResponse, error) {
	if errs := validateEmployeeMonth(employeeCode, month); errs != nil {
		return payroll.HoldResponse{}, errs
	}

	by := jwt.ActorFromContext(ctx)
	var hold payroll.Hold
	err := p.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		hold, err = p.holdRepo.Release(txCtx, employeeCode, month, by)
		if err != nil {
			return err
		}
		return p.salaryRepo.SetHeld(txCtx, employeeCode, month, false)
	})
	if err != nil {
		return payroll.HoldResponse{}, err
	}

	p.logger.Info("salary hold released",
		slog.String("employee_code", employeeCode),
		slog.String("month", month),
		slog.String("by", by),
	)
	return mapHoldToResponse(hold), nil
}

// ========== ADJUSTMENTS ==========

// UpsertAdjustment implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpsertAdjustment(ctx context.Context, req payroll.UpsertAdjustmentRequest) (payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdjustmentResponse{}, err
	}

	if _, err := p.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return payroll.AdjustmentResponse{}, err
	}
	if err := p.ensureNotFinalized(ctx, req.EmployeeCode, req.Month); err != nil {
		return payroll.AdjustmentResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.AdjustmentResponse{}, fmt.Errorf("failed to generate adjustment id: %w", err)
	}
	by := jwt.ActorFromContext(ctx)

	adj, err := p.adjustmentRepo.Upsert(ctx, payroll.Adjustment{
		ID:           id.String(),
		EmployeeCode: req.EmployeeCode,
		Month:        req.Month,
		Type:         payroll.AdjustmentType(req.Type),
		Category:     req.Category,
		Amount:       req.Amount.Round(moneyPlaces),
		Description:  req.Description,
		CreatedBy:    &by,
	})
	if err != nil {
		return payroll.AdjustmentResponse{}, fmt.Errorf("failed to save adjustment: %w", err)
	}
	return mapAdjustmentToResponse(adj), nil
}

// ListAdjustments implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListAdjustments(ctx context.Context, req payroll.ListAdjustmentsRequest) ([]payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	adjs, err := p.adjustmentRepo.ListByEmployeeMonth(ctx, req.EmployeeCode, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}

	out := make([]payroll.AdjustmentResponse, 0, len(adjs))
	for _, a := range sortedAdjustments(adjs) {
		out = append(out, mapAdjustmentToResponse(a))
	}
	return out, nil
}

// DeleteAdjustment implements payroll.PayrollService.
func (p *PayrollServiceImpl) DeleteAdjustment(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return validator.ValidationErrors{{Field: "id", Message: "must be a valid UUID"}}
	}

	adj, err := p.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.ensureNotFinalized(ctx, adj.EmployeeCode, adj.Month); err != nil {
		return err
	}
	return p.adjustmentRepo.Delete(ctx, id)
}

func (p *PayrollServiceImpl) ensureNotFinalized(ctx context.Context, employeeCode, month string) error {
	s, err := p.salaryRepo.Get(ctx, employeeCode, month)
	if errors.Is(err, payroll.ErrSalaryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if s.IsFinalized() {
		return payroll.ErrSalaryAlreadyFinalized
	}
	return nil
}

// ========== OVERTIME ==========

// SetOvertime implements payroll.PayrollService.
func (p *PayrollServiceImpl) SetOvertime(ctx context.Context, req payroll.SetOvertimeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := p.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return err
	}
	if err := p.ensureNotFinalized(ctx, req.EmployeeCode, req.Month); err != nil {
		return err
	}

	by := jwt.ActorFromContext(ctx)
	if err := p.overtimeRepo.Set(ctx, req.EmployeeCode, req.Month, req.Enabled, by); err != nil {
		return err
	}

	p.logger.Info("overtime toggled",
		slog.String("employee_code", req.EmployeeCode),
		slog.String("month", req.Month),
		slog.Bool("enabled", req.Enabled),
		slog.String("by", by),
	)
	return nil
}

// ========== HELPERS ==========

func validateEmployeeMonth(employeeCode, month string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeCode(employeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	if _, ok := validator.IsValidMonth(month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	return errs
}

// errorCode classifies a per-employee batch failure.
func errorCode(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, employee.ErrBaseSalaryMissing),
		errors.Is(err, employee.ErrEmployeeInactive):
		return "VALIDATION_ERROR"
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, shift.ErrShiftNotFound):
		return "NOT_FOUND"
	case errors.Is(err, payroll.ErrSalaryAlreadyFinalized):
		return "CONFLICT"
	case errors.Is(err, payroll.ErrInvalidCycleLength),
		errors.Is(err, attendance.ErrInvalidPunchLog),
		shift.IsComputationError(err):
		return "COMPUTATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func mapSalaryToResponse(s payroll.MonthlySalary, withBreakdown bool) payroll.SalaryResponse {
	resp := payroll.SalaryResponse{
		EmployeeCode:    s.EmployeeCode,
		EmployeeName:    s.EmployeeName,
		Month:           s.Month,
		Status:          s.Status.String(),
		BaseSalary:      s.BaseSalary,
		GrossSalary:     s.GrossSalary,
		NetSalary:       s.NetSalary,
		PerDayRate:      s.PerDayRate,
		HourlyRate:      s.HourlyRate,
		CycleDays:       s.CycleDays,
		PaidDays:        s.PaidDays,
		AbsentDays:      s.AbsentDays,
		LeaveDays:       s.LeaveDays,
		LossOfPayDays:   s.LossOfPayDays,
		TotalDeductions: s.TotalDeductions,
		TotalAdditions:  s.TotalAdditions,
		OvertimeAmount:  s.OvertimeAmount,
		TDSDeduction:    s.TDSDeduction,
		ProfessionalTax: s.ProfessionalTax,
		IsHeld:          s.IsHeld,
		FinalizedAt:     formatTime(s.FinalizedAt),
		FinalizedBy:     s.FinalizedBy,
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}

	if withBreakdown && len(s.Breakdown) > 0 {
		var bd payroll.Breakdown
		if err := json.Unmarshal(s.Breakdown, &bd); err == nil {
			resp.Breakdown = &bd
		}
	}
	return resp
}

func mapHoldToResponse(h payroll.Hold) payroll.HoldResponse {
	return payroll.HoldResponse{
		ID:           h.ID,
		EmployeeCode: h.EmployeeCode,
		Month:        h.Month,
		HoldType:     string(h.HoldType),
		Reason:       h.Reason,
		Released:     h.Released,
		ReleasedAt:   formatTime(h.ReleasedAt),
		ReleasedBy:   h.ReleasedBy,
		CreatedBy:    h.CreatedBy,
		CreatedAt:    h.CreatedAt.Format(time.RFC3339),
	}
}

func mapAdjustmentToResponse(a payroll.Adjustment) payroll.AdjustmentResponse {
	return payroll.AdjustmentResponse{
		ID:           a.ID,
		EmployeeCode: a.EmployeeCode,
		Month:        a.Month,
		Type:         string(a.Type),
		Category:     a.Category,
		Amount:       a.Amount,
		Description:  a.Description,
		CreatedBy:    a.CreatedBy,
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}
