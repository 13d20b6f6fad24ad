package attendance

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
)

// ========== FAKES ==========

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePunchRepo struct {
	logs []attendance.PunchLog
}

func (f *fakePunchRepo) ListByEmployeeAndDate(_ context.Context, code string, date time.Time) ([]attendance.PunchLog, error) {
	var out []attendance.PunchLog
	for _, l := range f.logs {
		if l.EmployeeCode == code && utils.DateKey(l.Timestamp) == utils.DateKey(date) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakePunchRepo) ListByEmployeeInRange(_ context.Context, code string, from, to time.Time) ([]attendance.PunchLog, error) {
	var out []attendance.PunchLog
	for _, l := range f.logs {
		day := utils.DateOnly(l.Timestamp)
		if l.EmployeeCode == code && !day.Before(from) && !day.After(to) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

type fakeHolidayRepo struct {
	holidays []attendance.Holiday
	calls    int
}

func (f *fakeHolidayRepo) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	h, _ := f.ListInRange(ctx, date, date)
	return len(h) > 0, nil
}

func (f *fakeHolidayRepo) ListInRange(_ context.Context, from, to time.Time) ([]attendance.Holiday, error) {
	f.calls++
	var out []attendance.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeRegularizationRepo struct {
	rows map[string]attendance.Regularization
}

func newFakeRegularizationRepo() *fakeRegularizationRepo {
	return &fakeRegularizationRepo{rows: map[string]attendance.Regularization{}}
}

func regKey(code string, date time.Time) string { return code + "/" + utils.DateKey(date) }

func (f *fakeRegularizationRepo) Upsert(_ context.Context, r attendance.Regularization) (attendance.Regularization, error) {
	if existing, ok := f.rows[regKey(r.EmployeeCode, r.Date)]; ok {
		r.ID = existing.ID
		r.CreatedAt = existing.CreatedAt
	} else {
		r.CreatedAt = time.Now()
	}
	r.UpdatedAt = time.Now()
	f.rows[regKey(r.EmployeeCode, r.Date)] = r
	return r, nil
}

func (f *fakeRegularizationRepo) GetByEmployeeAndDate(_ context.Context, code string, date time.Time) (attendance.Regularization, error) {
	r, ok := f.rows[regKey(code, date)]
	if !ok {
		return attendance.Regularization{}, attendance.ErrRegularizationNotFound
	}
	return r, nil
}

func (f *fakeRegularizationRepo) ListByEmployeeInRange(_ context.Context, code string, from, to time.Time) ([]attendance.Regularization, error) {
	var out []attendance.Regularization
	for _, r := range f.rows {
		if r.EmployeeCode == code && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeRegularizationRepo) Delete(_ context.Context, code string, date time.Time) error {
	if _, ok := f.rows[regKey(code, date)]; !ok {
		return attendance.ErrRegularizationNotFound
	}
	delete(f.rows, regKey(code, date))
	return nil
}

type fakeOvertimeRepo struct {
	enabled map[string]bool
}

func (f *fakeOvertimeRepo) IsEnabled(_ context.Context, code string, month string) (bool, error) {
	return f.enabled[code+"/"+month], nil
}

func (f *fakeOvertimeRepo) Set(_ context.Context, code string, month string, enabled bool, _ string) error {
	f.enabled[code+"/"+month] = enabled
	return nil
}

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	if code != "1001" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{EmployeeCode: code, FullName: "Asha", WeeklyOff: time.Sunday, IsActive: true}, nil
}

func (fakeEmployeeRepo) ListActiveCodes(_ context.Context) ([]string, error) {
	return []string{"1001"}, nil
}

// fakeResolver hands out one shift for every date except those in missing.
type fakeResolver struct {
	shift   shift.Shift
	missing map[string]bool
	err     error
}

func (f *fakeResolver) Resolve(_ context.Context, _ string, _ time.Time) (shift.Shift, error) {
	if f.err != nil {
		return shift.Shift{}, f.err
	}
	return f.shift, nil
}

func (f *fakeResolver) ResolveRange(_ context.Context, _ string, from, to time.Time) (map[string]shift.Shift, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]shift.Shift)
	utils.EachDay(from, to, func(day time.Time) {
		if !f.missing[utils.DateKey(day)] {
			out[utils.DateKey(day)] = f.shift
		}
	})
	return out, nil
}

type fakeLeaveReader struct {
	usage map[string]leave.MonthlyUsage
}

func (f *fakeLeaveReader) MonthlyUsage(_ context.Context, code string, month string) (leave.MonthlyUsage, error) {
	if u, ok := f.usage[code+"/"+month]; ok {
		return u, nil
	}
	return leave.MonthlyUsage{EmployeeCode: code, Month: month}, nil
}

// ========== HELPERS ==========

type testDeps struct {
	punches  *fakePunchRepo
	holidays *fakeHolidayRepo
	regs     *fakeRegularizationRepo
	overtime *fakeOvertimeRepo
	resolver *fakeResolver
	leaves   *fakeLeaveReader
}

func newTestDeps() *testDeps {
	return &testDeps{
		punches:  &fakePunchRepo{},
		holidays: &fakeHolidayRepo{},
		regs:     newFakeRegularizationRepo(),
		overtime: &fakeOvertimeRepo{enabled: map[string]bool{}},
		resolver: &fakeResolver{shift: *dayShift(0)},
		leaves:   &fakeLeaveReader{usage: map[string]leave.MonthlyUsage{}},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (d *testDeps) service() attendance.AttendanceService {
	return NewAttendanceService(d.punches, d.holidays, d.regs, d.overtime, fakeEmployeeRepo{}, d.resolver, d.leaves, testPolicy, discardLogger())
}

func mar(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

// work adds an in/out pair for 1001.
func (d *testDeps) work(from, to time.Time) {
	d.punches.logs = append(d.punches.logs,
		attendance.PunchLog{EmployeeCode: "1001", Timestamp: from, Direction: attendance.DirectionIn},
		attendance.PunchLog{EmployeeCode: "1001", Timestamp: to, Direction: attendance.DirectionOut},
	)
}

// workCycle adds a 09:00-18:00 day for every non-Sunday of the 2025-03 cycle,
// skipping the given dates.
func (d *testDeps) workCycle(skip ...string) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	start, end, _ := utils.SalaryCycle("2025-03")
	utils.EachDay(start, end, func(day time.Time) {
		if day.Weekday() == time.Sunday || skipped[utils.DateKey(day)] {
			return
		}
		d.work(day.Add(9*time.Hour), day.Add(18*time.Hour))
	})
}

func findDay(t *testing.T, days []attendance.DailyRecord, key string) attendance.DailyRecord {
	t.Helper()
	for _, d := range days {
		if utils.DateKey(d.Date) == key {
			return d
		}
	}
	t.Fatalf("day %s not found", key)
	return attendance.DailyRecord{}
}
