package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/jwt"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx              database.Transactor
	entitlementRepo leave.EntitlementRepository
	usageRepo       leave.MonthlyUsageRepository
	employeeRepo    employee.EmployeeRepository
	holidayRepo     attendance.HolidayRepository
	calculator      *LedgerCalculator
	logger          *slog.Logger
}

func NewLeaveService(
	tx database.Transactor,
	entitlementRepo leave.EntitlementRepository,
	usageRepo leave.MonthlyUsageRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo attendance.HolidayRepository,
	calculator *LedgerCalculator,
	logger *slog.Logger,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:              tx,
		entitlementRepo: entitlementRepo,
		usageRepo:       usageRepo,
		employeeRepo:    employeeRepo,
		holidayRepo:     holidayRepo,
		calculator:      calculator,
		logger:          logger,
	}
}

// ========== BALANCE ==========

// Balance implements leave.LeaveService. A missing entitlement reads as a zero
// quota so that any approved leave in the month surfaces as loss of pay.
func (l *LeaveServiceImpl) Balance(ctx context.Context, employeeCode string, year int, month string) (leave.Balance, error) {
	ent, err := l.entitlementRepo.Get(ctx, employeeCode, year)
	if err != nil {
		if !errors.Is(err, leave.ErrEntitlementNotFound) {
			return leave.Balance{}, err
		}
		ent = leave.Entitlement{EmployeeCode: employeeCode, Year: year}
	}

	if month == "" {
		return l.calculator.Compute(ent, nil), nil
	}

	usage, err := l.MonthlyUsage(ctx, employeeCode, month)
	if err != nil {
		return leave.Balance{}, err
	}

	approved, err := l.usageRepo.ListByYear(ctx, employeeCode, year)
	if err != nil {
		return leave.Balance{}, err
	}
	var later float64
	for _, u := range approved {
		if u.Month > month {
			later += u.TotalDays()
		}
	}
	return l.calculator.ComputeMonth(ent, &usage, later), nil
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, req leave.BalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	var year int
	if req.Year != "" {
		year, _ = strconv.Atoi(req.Year)
	} else {
		m, _ := utils.ParseMonth(req.Month)
		year = m.Year()
	}

	// the API distinguishes "no entitlement" from a zero balance
	if _, err := l.entitlementRepo.Get(ctx, req.EmployeeCode, year); err != nil {
		return leave.BalanceResponse{}, err
	}

	b, err := l.Balance(ctx, req.EmployeeCode, year, req.Month)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	return leave.BalanceResponse{
		EmployeeCode:       req.EmployeeCode,
		Year:               year,
		Month:              b.Month,
		AllowedLeaves:      b.AllowedLeaves,
		UsedPaidLeaves:     b.UsedPaidLeaves,
		UsedCasualLeaves:   b.UsedCasualLeaves,
		RemainingLeaves:    b.RemainingLeaves,
		ExcessLeaves:       b.ExcessLeaves,
		MonthPaidLeaves:    b.MonthPaid,
		MonthCasualLeaves:  b.MonthCasual,
		MonthLossOfPayDays: b.MonthLossOfPayDays,
		ExceedsQuota:       b.ExceedsQuota,
	}, nil
}

// ========== ENTITLEMENT ==========

// UpsertEntitlement implements leave.LeaveService.
func (l *LeaveServiceImpl) UpsertEntitlement(ctx context.Context, req leave.UpsertEntitlementRequest) (leave.EntitlementResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.EntitlementResponse{}, err
	}
	if _, err := l.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return leave.EntitlementResponse{}, err
	}

	ent, err := l.entitlementRepo.Get(ctx, req.EmployeeCode, req.Year)
	if err != nil {
		if !errors.Is(err, leave.ErrEntitlementNotFound) {
			return leave.EntitlementResponse{}, err
		}
		ent = leave.Entitlement{EmployeeCode: req.EmployeeCode, Year: req.Year}
	}

	ent.AllowedLeaves = req.AllowedLeaves
	if req.UsedPaidLeaves != nil {
		ent.UsedPaidLeaves = *req.UsedPaidLeaves
	}
	if req.UsedCasualLeaves != nil {
		ent.UsedCasualLeaves = *req.UsedCasualLeaves
	}

	saved, err := l.entitlementRepo.Upsert(ctx, ent)
	if err != nil {
		return leave.EntitlementResponse{}, err
	}

	balance := l.calculator.Compute(saved, nil)
	return leave.EntitlementResponse{
		EmployeeCode:     saved.EmployeeCode,
		Year:             saved.Year,
		AllowedLeaves:    saved.AllowedLeaves,
		UsedPaidLeaves:   saved.UsedPaidLeaves,
		UsedCasualLeaves: saved.UsedCasualLeaves,
		RemainingLeaves:  balance.RemainingLeaves,
	}, nil
}

// ========== MONTHLY USAGE ==========

// MonthlyUsage implements leave.LeaveService.
func (l *LeaveServiceImpl) MonthlyUsage(ctx context.Context, employeeCode string, month string) (leave.MonthlyUsage, error) {
	usage, err := l.usageRepo.Get(ctx, employeeCode, month)
	if err != nil {
		if errors.Is(err, leave.ErrMonthlyUsageNotFound) {
			return leave.MonthlyUsage{EmployeeCode: employeeCode, Month: month}, nil
		}
		return leave.MonthlyUsage{}, err
	}
	return usage, nil
}

// ApproveMonthlyUsage implements leave.LeaveService. Re-approving a month
// replaces its dates and moves the running totals by the difference only.
func (l *LeaveServiceImpl) ApproveMonthlyUsage(ctx context.Context, req leave.ApproveMonthlyUsageRequest) (leave.MonthlyUsageResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.MonthlyUsageResponse{}, err
	}

	start, end, err := utils.SalaryCycle(req.Month)
	if err != nil {
		return leave.MonthlyUsageResponse{}, err
	}

	emp, err := l.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return leave.MonthlyUsageResponse{}, err
	}

	holidays, err := l.holidayRepo.ListInRange(ctx, start, end)
	if err != nil {
		return leave.MonthlyUsageResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	restDays := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		restDays[utils.DateKey(h.Date)] = true
	}
	utils.EachDay(start, end, func(day time.Time) {
		if day.Weekday() == emp.WeeklyOff {
			restDays[utils.DateKey(day)] = true
		}
	})

	paid, err := toLeaveDays("paid_leave_dates", req.PaidLeaveDates, start, end, restDays)
	if err != nil {
		return leave.MonthlyUsageResponse{}, err
	}
	casual, err := toLeaveDays("casual_leave_dates", req.CasualLeaveDates, start, end, restDays)
	if err != nil {
		return leave.MonthlyUsageResponse{}, err
	}

	m, _ := utils.ParseMonth(req.Month)
	year := m.Year()
	approver := jwt.ActorFromContext(ctx)

	var saved leave.MonthlyUsage
	err = l.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := l.entitlementRepo.Get(txCtx, req.EmployeeCode, year); err != nil {
			return err
		}

		previous, err := l.MonthlyUsage(txCtx, req.EmployeeCode, req.Month)
		if err != nil {
			return err
		}

		saved, err = l.usageRepo.Upsert(txCtx, leave.MonthlyUsage{
			EmployeeCode:     req.EmployeeCode,
			Month:            req.Month,
			PaidLeaveDates:   paid,
			CasualLeaveDates: casual,
			ApprovedBy:       &approver,
		})
		if err != nil {
			return err
		}

		paidDelta := saved.PaidDays() - previous.PaidDays()
		casualDelta := saved.CasualDays() - previous.CasualDays()
		if paidDelta == 0 && casualDelta == 0 {
			return nil
		}
		return l.entitlementRepo.AddUsage(txCtx, req.EmployeeCode, year, paidDelta, casualDelta)
	})
	if err != nil {
		return leave.MonthlyUsageResponse{}, err
	}

	l.logger.Info("monthly leave usage approved",
		slog.String("employee_code", req.EmployeeCode),
		slog.String("month", req.Month),
		slog.Float64("paid_days", saved.PaidDays()),
		slog.Float64("casual_days", saved.CasualDays()),
	)

	return mapUsageToResponse(saved), nil
}

// toLeaveDays checks the dates against the cycle. Weekly offs and holidays are
// paid already and cannot be taken as leave.
func toLeaveDays(field string, days []leave.LeaveDayRequest, start, end time.Time, restDays map[string]bool) ([]leave.LeaveDay, error) {
	var errs validator.ValidationErrors
	out := make([]leave.LeaveDay, 0, len(days))
	for i, d := range days {
		date, _ := time.Parse(utils.DateLayout, d.Date)
		if date.Before(start) || date.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("%s[%d].date", field, i),
				Message: leave.ErrLeaveDateOutOfCycle.Error(),
			})
			continue
		}
		if restDays[utils.DateKey(date)] {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("%s[%d].date", field, i),
				Message: leave.ErrLeaveDateOnRestDay.Error(),
			})
			continue
		}
		out = append(out, leave.LeaveDay{Date: date, Value: d.Value})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func mapUsageToResponse(u leave.MonthlyUsage) leave.MonthlyUsageResponse {
	mapDays := func(days []leave.LeaveDay) []leave.LeaveDayResponse {
		out := make([]leave.LeaveDayResponse, 0, len(days))
		for _, d := range days {
			out = append(out, leave.LeaveDayResponse{Date: utils.DateKey(d.Date), Value: d.Value})
		}
		return out
	}
	return leave.MonthlyUsageResponse{
		EmployeeCode:     u.EmployeeCode,
		Month:            u.Month,
		PaidLeaveDates:   mapDays(u.PaidLeaveDates),
		CasualLeaveDates: mapDays(u.CasualLeaveDates),
		PaidLeaveDays:    u.PaidDays(),
		CasualLeaveDays:  u.CasualDays(),
		ApprovedBy:       u.ApprovedBy,
	}
}
