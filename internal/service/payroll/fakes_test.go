package payroll

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func key(code, month string) string { return code + "/" + month }

// ========== salaries ==========

type fakeSalaryRepo struct {
	mu   sync.Mutex
	rows map[string]payroll.MonthlySalary
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{rows: make(map[string]payroll.MonthlySalary)}
}

func (f *fakeSalaryRepo) Get(ctx context.Context, code, month string) (payroll.MonthlySalary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[key(code, month)]
	if !ok {
		return payroll.MonthlySalary{}, payroll.ErrSalaryNotFound
	}
	return s, nil
}

func (f *fakeSalaryRepo) ListByMonth(ctx context.Context, month string) ([]payroll.MonthlySalary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payroll.MonthlySalary
	for _, s := range f.rows {
		if s.Month == month {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepo) UpsertDraft(ctx context.Context, s payroll.MonthlySalary) (payroll.MonthlySalary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(s.EmployeeCode, s.Month)
	if cur, ok := f.rows[k]; ok {
		if cur.IsFinalized() {
			return payroll.MonthlySalary{}, payroll.ErrSalaryAlreadyFinalized
		}
		s.CreatedAt = cur.CreatedAt
	} else {
		s.CreatedAt = time.Now()
	}
	s.Status = payroll.SalaryStatusDraft
	s.UpdatedAt = time.Now()
	f.rows[k] = s
	return s, nil
}

func (f *fakeSalaryRepo) Finalize(ctx context.Context, code, month, by string) (payroll.MonthlySalary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(code, month)
	s, ok := f.rows[k]
	if !ok {
		return payroll.MonthlySalary{}, payroll.ErrSalaryNotFound
	}
	if s.IsFinalized() {
		return payroll.MonthlySalary{}, payroll.ErrSalaryAlreadyFinalized
	}
	now := time.Now()
	s.Status = payroll.SalaryStatusFinalized
	s.FinalizedAt = &now
	s.FinalizedBy = &by
	f.rows[k] = s
	return s, nil
}

func (f *fakeSalaryRepo) FinalizeMonth(ctx context.Context, month, by string) ([]string, error) {
	var codes []string
	f.mu.Lock()
	var drafts []string
	for _, s := range f.rows {
		if s.Month == month && !s.IsFinalized() {
			drafts = append(drafts, s.EmployeeCode)
		}
	}
	f.mu.Unlock()
	for _, code := range drafts {
		if _, err := f.Finalize(ctx, code, month, by); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func (f *fakeSalaryRepo) SetHeld(ctx context.Context, code, month string, held bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(code, month)
	if s, ok := f.rows[k]; ok {
		s.IsHeld = held
		f.rows[k] = s
	}
	return nil
}

// ========== holds ==========

type fakeHoldRepo struct {
	mu    sync.Mutex
	holds []payroll.Hold
}

func (f *fakeHoldRepo) Create(ctx context.Context, h payroll.Hold) (payroll.Hold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cur := range f.holds {
		if cur.EmployeeCode == h.EmployeeCode && cur.Month == h.Month && !cur.Released {
			return payroll.Hold{}, payroll.ErrHoldAlreadyActive
		}
	}
	h.CreatedAt = time.Now()
	f.holds = append(f.holds, h)
	return h, nil
}

func (f *fakeHoldRepo) GetActive(ctx context.Context, code, month string) (payroll.Hold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cur := range f.holds {
		if cur.EmployeeCode == code && cur.Month == month && !cur.Released {
			return cur, nil
		}
	}
	return payroll.Hold{}, payroll.ErrHoldNotFound
}

func (f *fakeHoldRepo) Release(ctx context.Context, code, month, by string) (payroll.Hold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.holds {
		if cur.EmployeeCode == code && cur.Month == month && !cur.Released {
			now := time.Now()
			cur.Released = true
			cur.ReleasedAt = &now
			cur.ReleasedBy = &by
			f.holds[i] = cur
			return cur, nil
		}
	}
	return payroll.Hold{}, payroll.ErrNoActiveHold
}

// ========== adjustments ==========

type fakeAdjustmentRepo struct {
	mu   sync.Mutex
	rows []payroll.Adjustment
}

func (f *fakeAdjustmentRepo) Upsert(ctx context.Context, a payroll.Adjustment) (payroll.Adjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.rows {
		if cur.EmployeeCode == a.EmployeeCode && cur.Month == a.Month && cur.Type == a.Type && cur.Category == a.Category {
			a.ID = cur.ID
			f.rows[i] = a
			return a, nil
		}
	}
	f.rows = append(f.rows, a)
	return a, nil
}

func (f *fakeAdjustmentRepo) GetByID(ctx context.Context, id string) (payroll.Adjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cur := range f.rows {
		if cur.ID == id {
			return cur, nil
		}
	}
	return payroll.Adjustment{}, payroll.ErrAdjustmentNotFound
}

func (f *fakeAdjustmentRepo) ListByEmployeeMonth(ctx context.Context, code, month string) ([]payroll.Adjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payroll.Adjustment
	for _, cur := range f.rows {
		if cur.EmployeeCode == code && cur.Month == month {
			out = append(out, cur)
		}
	}
	return out, nil
}

func (f *fakeAdjustmentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.rows {
		if cur.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return payroll.ErrAdjustmentNotFound
}

// ========== overtime ==========

type fakeOvertimeRepo struct {
	mu      sync.Mutex
	enabled map[string]bool
}

func (f *fakeOvertimeRepo) IsEnabled(ctx context.Context, code, month string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled[key(code, month)], nil
}

func (f *fakeOvertimeRepo) Set(ctx context.Context, code, month string, enabled bool, updatedBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled[key(code, month)] = enabled
	return nil
}

// ========== employees, attendance, leave ==========

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	e, ok := f.employees[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f fakeEmployeeRepo) ListActiveCodes(ctx context.Context) ([]string, error) {
	var out []string
	for code, e := range f.employees {
		if e.IsActive {
			out = append(out, code)
		}
	}
	return out, nil
}

type fakeAttendance struct {
	mu     sync.Mutex
	months map[string]attendance.MonthlyAttendance
	errs   map[string]error
}

func (f *fakeAttendance) GetMonthlyAttendance(ctx context.Context, code, month string) (attendance.MonthlyAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[code]; err != nil {
		return attendance.MonthlyAttendance{}, err
	}
	att, ok := f.months[code]
	if !ok {
		att = cycle26()
	}
	att.EmployeeCode = code
	att.Month = month
	return att, nil
}

type fakeLeaves struct {
	balances map[string]leave.Balance
}

func (f fakeLeaves) Balance(ctx context.Context, code string, year int, month string) (leave.Balance, error) {
	return f.balances[code], nil
}

// ========== storage ==========

type memoryStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	uploads int
}

func (m *memoryStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = b
	m.uploads++
	return path, nil
}

func (m *memoryStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memoryStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://files.test/" + path, nil
}

func (m *memoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

// ========== wiring ==========

type testDeps struct {
	salaries    *fakeSalaryRepo
	holds       *fakeHoldRepo
	adjustments *fakeAdjustmentRepo
	overtime    *fakeOvertimeRepo
	employees   fakeEmployeeRepo
	attendance  *fakeAttendance
	leaves      fakeLeaves
	files       *memoryStorage
	policy      payroll.Policy
}

func salaryOf(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newTestDeps() *testDeps {
	dept := "Operations"
	return &testDeps{
		salaries:    newFakeSalaryRepo(),
		holds:       &fakeHoldRepo{},
		adjustments: &fakeAdjustmentRepo{},
		overtime:    &fakeOvertimeRepo{enabled: make(map[string]bool)},
		employees: fakeEmployeeRepo{employees: map[string]employee.Employee{
			"1001": {EmployeeCode: "1001", FullName: "Asha Rao", Department: &dept, BaseSalary: salaryOf("18000"), IsActive: true},
			"1002": {EmployeeCode: "1002", FullName: "Ravi Kumar", BaseSalary: salaryOf("12000"), IsActive: true},
			"1003": {EmployeeCode: "1003", FullName: "No Salary", IsActive: true},
			"1004": {EmployeeCode: "1004", FullName: "Left Company", BaseSalary: salaryOf("20000")},
		}},
		attendance: &fakeAttendance{
			months: make(map[string]attendance.MonthlyAttendance),
			errs:   make(map[string]error),
		},
		leaves: fakeLeaves{balances: make(map[string]leave.Balance)},
		files:  &memoryStorage{files: make(map[string][]byte)},
		policy: testPolicy(),
	}
}

func (d *testDeps) service() payroll.PayrollService {
	return NewPayrollService(passthroughTx{}, d.salaries, d.adjustments, d.holds, d.overtime,
		d.employees, d.attendance, d.leaves, d.policy, 4, discardLogger())
}

func (d *testDeps) payslips() payroll.PayslipService {
	return NewPayslipService(d.salaries, d.holds, d.employees, d.files, "ACME Pvt Ltd", discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
