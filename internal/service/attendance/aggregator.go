package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
)

// weekoffLookback is the number of days before a weekly off checked for work.
const weekoffLookback = 6

// GetMonthlyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyAttendance(ctx context.Context, employeeCode string, month string) (attendance.MonthlyAttendance, error) {
	start, end, err := utils.SalaryCycle(month)
	if err != nil {
		return attendance.MonthlyAttendance{}, err
	}

	emp, err := a.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return attendance.MonthlyAttendance{}, err
	}

	// A cycle without a usable shift cannot be paid; nothing is degraded here.
	shifts, err := a.shifts.ResolveRange(ctx, employeeCode, start, end)
	if err != nil {
		return attendance.MonthlyAttendance{}, fmt.Errorf("failed to resolve shifts for %s: %w", employeeCode, err)
	}

	logs, err := a.punchRepo.ListByEmployeeInRange(ctx, employeeCode, start, end)
	if err != nil {
		return attendance.MonthlyAttendance{}, fmt.Errorf("failed to list punch logs: %w", err)
	}
	logsByDay := make(map[string][]attendance.PunchLog)
	for _, l := range logs {
		key := utils.DateKey(l.Timestamp)
		logsByDay[key] = append(logsByDay[key], l)
	}

	holidays, err := a.holidayRepo.ListInRange(ctx, start, end)
	if err != nil {
		return attendance.MonthlyAttendance{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	holidayByDay := make(map[string]string, len(holidays))
	for _, h := range holidays {
		holidayByDay[utils.DateKey(h.Date)] = h.Name
	}

	regs, err := a.regularizationRepo.ListByEmployeeInRange(ctx, employeeCode, start, end)
	if err != nil {
		return attendance.MonthlyAttendance{}, fmt.Errorf("failed to list regularizations: %w", err)
	}
	regByDay := make(map[string]*attendance.Regularization, len(regs))
	for i := range regs {
		regByDay[utils.DateKey(regs[i].Date)] = &regs[i]
	}

	usage, err := a.leaves.MonthlyUsage(ctx, employeeCode, month)
	if err != nil {
		return attendance.MonthlyAttendance{}, fmt.Errorf("failed to get leave usage: %w", err)
	}
	leaveByDay := leaveMarks(usage)

	overtimeEnabled, err := a.overtimeRepo.IsEnabled(ctx, employeeCode, month)
	if err != nil {
		return attendance.MonthlyAttendance{}, fmt.Errorf("failed to read overtime toggle: %w", err)
	}

	result := attendance.MonthlyAttendance{
		EmployeeCode:    employeeCode,
		Month:           month,
		CycleStart:      start,
		CycleEnd:        end,
		CycleDays:       utils.DaysInclusive(start, end),
		OvertimeEnabled: overtimeEnabled,
	}
	if sh, ok := shifts[utils.DateKey(end)]; ok {
		result.ShiftWorkHours = sh.WorkHours
	}

	var classifyErr error
	utils.EachDay(start, end, func(day time.Time) {
		if classifyErr != nil {
			return
		}
		key := utils.DateKey(day)

		in := attendance.DayInput{
			EmployeeCode:   employeeCode,
			Date:           day,
			Logs:           logsByDay[key],
			IsWeekoff:      day.Weekday() == emp.WeeklyOff,
			Regularization: regByDay[key],
			Leave:          leaveByDay[key],
		}
		if sh, ok := shifts[key]; ok {
			in.Shift = &sh
		}
		if name, ok := holidayByDay[key]; ok {
			in.IsHoliday = true
			in.HolidayName = name
		}

		rec, err := ClassifyDay(in, a.policy)
		if err != nil {
			if shift.IsComputationError(err) {
				classifyErr = err
				return
			}
			a.logger.Warn("day classification failed, counting as absent",
				slog.String("employee_code", employeeCode),
				slog.String("date", key),
				slog.String("error", err.Error()),
			)
			rec = attendance.DailyRecord{
				Date:    day,
				Status:  attendance.StatusAbsent,
				Warning: err.Error(),
			}
			if in.Shift != nil {
				rec.ShiftName = in.Shift.Name
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", key, err))
		}
		result.Days = append(result.Days, rec)

		if !in.IsHoliday && !in.IsWeekoff && in.Shift != nil {
			result.ExpectedWorkingDays++
			result.ExpectedHours += in.Shift.WorkHours
		}
	})
	if classifyErr != nil {
		return attendance.MonthlyAttendance{}, classifyErr
	}

	markPaidWeekoffs(result.Days, a.policy)
	summarize(&result, a.policy)

	return result, nil
}

// markPaidWeekoffs decides each weekly off from the credit earned in the six
// days before it. A window reaching before the cycle start is not penalised:
// those days belong to the previous cycle and were settled there. Weekly offs
// that were worked are always paid.
func markPaidWeekoffs(days []attendance.DailyRecord, p attendance.Policy) {
	for i := range days {
		if days[i].Status != attendance.StatusWeekoff {
			continue
		}
		if days[i].WorkedOnRestDay || i < weekoffLookback {
			days[i].WeekoffPaid = true
			continue
		}
		var credit float64
		for _, d := range days[i-weekoffLookback : i] {
			credit += dayCredit(d)
		}
		days[i].WeekoffPaid = credit >= p.WeekoffMinWorkedDays
	}
}

// dayCredit is the worked-day equivalent of a day for the weekly off rule.
func dayCredit(d attendance.DailyRecord) float64 {
	switch d.Status {
	case attendance.StatusFullDay, attendance.StatusHoliday:
		return 1
	case attendance.StatusHalfDay:
		return 0.5
	case attendance.StatusPaidLeave, attendance.StatusCasualLeave:
		return d.LeaveValue
	default:
		return 0
	}
}

func summarize(m *attendance.MonthlyAttendance, p attendance.Policy) {
	for _, d := range m.Days {
		m.TotalWorkedHours += d.TotalHours
		if d.IsRegularized {
			m.RegularizedDays++
		}

		switch d.Status {
		case attendance.StatusFullDay:
			m.FullDays++
			m.ActualDaysWorked++
		case attendance.StatusHalfDay:
			m.HalfDays++
			m.ActualDaysWorked += 0.5
		case attendance.StatusAbsent:
			m.AbsentDays++
		case attendance.StatusPaidLeave, attendance.StatusCasualLeave:
			if d.Status == attendance.StatusPaidLeave {
				m.PaidLeaveDays += d.LeaveValue
			} else {
				m.CasualLeaveDays += d.LeaveValue
			}
			// the rest of a half leave day is judged on the hours worked
			if rest := 1 - d.LeaveValue; rest > 0 {
				if d.TotalHours >= p.HalfDayMinHours {
					m.ActualDaysWorked += rest
				} else {
					m.AbsentDays += rest
				}
			}
		case attendance.StatusHoliday:
			m.Holidays++
		case attendance.StatusWeekoff:
			if d.WeekoffPaid {
				m.SundaysInMonth++
			} else {
				m.UnpaidWeekoffs++
				m.AbsentDays++
			}
		}

		if d.WorkedOnRestDay {
			m.RestDaysWorked++
		}

		if d.Status == attendance.StatusFullDay || d.Status == attendance.StatusHalfDay {
			if d.IsLate && !d.IsRegularized {
				m.LateDays++
			}
			switch d.LateTier {
			case attendance.LateTierMajor:
				m.LateBy30MinutesDays++
			case attendance.LateTierMinor:
				m.LateBy10MinutesDays++
			}
			if d.IsEarlyExit && !d.IsRegularized {
				m.EarlyExits++
			}
		}
	}

	m.TotalWorkedHours = roundHours(m.TotalWorkedHours)
	m.ExpectedHours = roundHours(m.ExpectedHours)
	m.TotalPayableDays = m.ActualDaysWorked + m.PaidLeaveDays + m.CasualLeaveDays + float64(m.SundaysInMonth+m.Holidays)

	if m.OvertimeEnabled {
		m.OvertimeHours = roundHours(math.Max(0, m.TotalWorkedHours-m.ExpectedHours))
	}
}
