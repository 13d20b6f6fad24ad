package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
)

// LeaveReader is the part of the leave ledger attendance needs.
type LeaveReader interface {
	MonthlyUsage(ctx context.Context, employeeCode string, month string) (leave.MonthlyUsage, error)
}

type AttendanceServiceImpl struct {
	punchRepo          attendance.PunchLogRepository
	holidayRepo        attendance.HolidayRepository
	regularizationRepo attendance.RegularizationRepository
	overtimeRepo       attendance.OvertimeRepository
	employeeRepo       employee.EmployeeRepository
	shifts             shift.Resolver
	leaves             LeaveReader
	policy             attendance.Policy
	logger             *slog.Logger
}

func NewAttendanceService(
	punchRepo attendance.PunchLogRepository,
	holidayRepo attendance.HolidayRepository,
	regularizationRepo attendance.RegularizationRepository,
	overtimeRepo attendance.OvertimeRepository,
	employeeRepo employee.EmployeeRepository,
	shifts shift.Resolver,
	leaves LeaveReader,
	policy attendance.Policy,
	logger *slog.Logger,
) attendance.AttendanceService {
	if overtimeRepo == nil {
		overtimeRepo = NewDisabledOvertimeRepository()
	}
	return &AttendanceServiceImpl{
		punchRepo:          punchRepo,
		holidayRepo:        holidayRepo,
		regularizationRepo: regularizationRepo,
		overtimeRepo:       overtimeRepo,
		employeeRepo:       employeeRepo,
		shifts:             shifts,
		leaves:             leaves,
		policy:             policy,
		logger:             logger,
	}
}

// GetDailyRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDailyRecord(ctx context.Context, employeeCode string, date time.Time) (attendance.DailyRecord, error) {
	day := utils.DateOnly(date)

	emp, err := a.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return attendance.DailyRecord{}, err
	}

	sh, err := a.shifts.Resolve(ctx, employeeCode, day)
	if err != nil {
		return attendance.DailyRecord{}, err
	}

	logs, err := a.punchRepo.ListByEmployeeAndDate(ctx, employeeCode, day)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to list punch logs: %w", err)
	}

	holidays, err := a.holidayRepo.ListInRange(ctx, day, day)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	in := attendance.DayInput{
		EmployeeCode: employeeCode,
		Date:         day,
		Shift:        &sh,
		Logs:         logs,
		IsWeekoff:    day.Weekday() == emp.WeeklyOff,
	}
	if len(holidays) > 0 {
		in.IsHoliday = true
		in.HolidayName = holidays[0].Name
	}

	reg, err := a.regularizationRepo.GetByEmployeeAndDate(ctx, employeeCode, day)
	switch {
	case err == nil:
		in.Regularization = &reg
	case !errors.Is(err, attendance.ErrRegularizationNotFound):
		return attendance.DailyRecord{}, fmt.Errorf("failed to get regularization: %w", err)
	}

	usage, err := a.leaves.MonthlyUsage(ctx, employeeCode, utils.SalaryMonthOf(day))
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to get leave usage: %w", err)
	}
	in.Leave = leaveMarks(usage)[utils.DateKey(day)]

	return ClassifyDay(in, a.policy)
}

// GetDaily implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDaily(ctx context.Context, req attendance.DailyRecordRequest) (attendance.DailyRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyRecordResponse{}, err
	}
	date, _ := time.Parse(utils.DateLayout, req.Date)

	rec, err := a.GetDailyRecord(ctx, req.EmployeeCode, date)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}
	return mapDailyRecordToResponse(rec, false), nil
}

// GetMonthly implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthly(ctx context.Context, req attendance.MonthlyAttendanceRequest) (attendance.MonthlyAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	m, err := a.GetMonthlyAttendance(ctx, req.EmployeeCode, req.Month)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	days := make([]attendance.DailyRecordResponse, 0, len(m.Days))
	for _, d := range m.Days {
		days = append(days, mapDailyRecordToResponse(d, true))
	}

	return attendance.MonthlyAttendanceResponse{
		EmployeeCode:        m.EmployeeCode,
		Month:               m.Month,
		CycleStart:          utils.DateKey(m.CycleStart),
		CycleEnd:            utils.DateKey(m.CycleEnd),
		CycleDays:           m.CycleDays,
		FullDays:            m.FullDays,
		HalfDays:            m.HalfDays,
		AbsentDays:          m.AbsentDays,
		LateDays:            m.LateDays,
		LateBy30MinutesDays: m.LateBy30MinutesDays,
		LateBy10MinutesDays: m.LateBy10MinutesDays,
		EarlyExits:          m.EarlyExits,
		TotalWorkedHours:    m.TotalWorkedHours,
		SundaysInMonth:      m.SundaysInMonth,
		UnpaidWeekoffs:      m.UnpaidWeekoffs,
		Holidays:            m.Holidays,
		RestDaysWorked:      m.RestDaysWorked,
		PaidLeaveDays:       m.PaidLeaveDays,
		CasualLeaveDays:     m.CasualLeaveDays,
		RegularizedDays:     m.RegularizedDays,
		ExpectedWorkingDays: m.ExpectedWorkingDays,
		ActualDaysWorked:    m.ActualDaysWorked,
		TotalPayableDays:    m.TotalPayableDays,
		ExpectedHours:       m.ExpectedHours,
		OvertimeEnabled:     m.OvertimeEnabled,
		OvertimeHours:       m.OvertimeHours,
		Days:                days,
		Warnings:            m.Warnings,
	}, nil
}

// leaveMarks indexes approved leave by date.
func leaveMarks(u leave.MonthlyUsage) map[string]*attendance.LeaveMark {
	marks := make(map[string]*attendance.LeaveMark, len(u.PaidLeaveDates)+len(u.CasualLeaveDates))
	for _, d := range u.PaidLeaveDates {
		marks[utils.DateKey(d.Date)] = &attendance.LeaveMark{Type: leave.LeaveTypePaid, Value: d.Value}
	}
	for _, d := range u.CasualLeaveDates {
		marks[utils.DateKey(d.Date)] = &attendance.LeaveMark{Type: leave.LeaveTypeCasual, Value: d.Value}
	}
	return marks
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func mapDailyRecordToResponse(d attendance.DailyRecord, monthly bool) attendance.DailyRecordResponse {
	resp := attendance.DailyRecordResponse{
		Date:            utils.DateKey(d.Date),
		Status:          string(d.Status),
		OriginalStatus:  string(d.OriginalStatus),
		FirstEntry:      timePtrToString(d.FirstEntry),
		LastExit:        timePtrToString(d.LastExit),
		TotalHours:      d.TotalHours,
		IsLate:          d.IsLate,
		MinutesLate:     d.MinutesLate,
		LateTier:        string(d.LateTier),
		IsEarlyExit:     d.IsEarlyExit,
		LogCount:        d.LogCount,
		IsRegularized:   d.IsRegularized,
		ShiftName:       d.ShiftName,
		HolidayName:     d.HolidayName,
		WorkedOnRestDay: d.WorkedOnRestDay,
		Warning:         d.Warning,
	}
	if d.Status.IsLeave() {
		v := d.LeaveValue
		resp.LeaveValue = &v
	}
	// whether a weekly off is paid is only known in the context of a cycle
	if monthly && d.Status == attendance.StatusWeekoff {
		paid := d.WeekoffPaid
		resp.WeekoffPaid = &paid
	}
	return resp
}
