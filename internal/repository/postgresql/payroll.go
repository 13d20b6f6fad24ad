package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ========== SALARIES ==========

const salaryColumns = `s.employee_code, s.month, s.base_salary, s.gross_salary, s.net_salary,
	s.per_day_rate, s.hourly_rate, s.cycle_days, s.paid_days, s.absent_days, s.half_days,
	s.leave_days, s.lop_days, s.total_deductions, s.total_additions, s.overtime_amount,
	s.worked_hours, s.overtime_hours, s.tds_deduction, s.professional_tax, s.is_held,
	s.breakdown, s.status, s.finalized_at, s.finalized_by, s.created_at, s.updated_at`

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

func salaryScanTargets(s *payroll.MonthlySalary, status *int16) []any {
	return []any{
		&s.EmployeeCode, &s.Month, &s.BaseSalary, &s.GrossSalary, &s.NetSalary,
		&s.PerDayRate, &s.HourlyRate, &s.CycleDays, &s.PaidDays, &s.AbsentDays, &s.HalfDays,
		&s.LeaveDays, &s.LossOfPayDays, &s.TotalDeductions, &s.TotalAdditions, &s.OvertimeAmount,
		&s.WorkedHours, &s.OvertimeHours, &s.TDSDeduction, &s.ProfessionalTax, &s.IsHeld,
		&s.Breakdown, status, &s.FinalizedAt, &s.FinalizedBy, &s.CreatedAt, &s.UpdatedAt,
	}
}

func scanSalary(row pgx.Row, joined bool) (payroll.MonthlySalary, error) {
	var s payroll.MonthlySalary
	var status int16
	targets := salaryScanTargets(&s, &status)
	if joined {
		targets = append(targets, &s.EmployeeName, &s.Department)
	}
	if err := row.Scan(targets...); err != nil {
		return payroll.MonthlySalary{}, err
	}
	s.Status = payroll.SalaryStatus(status)
	return s, nil
}

// Get implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) Get(ctx context.Context, employeeCode string, month string) (payroll.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `, e.full_name, e.department
		FROM monthly_salaries s
		LEFT JOIN employees e ON e.employee_code = s.employee_code
		WHERE s.employee_code = $1 AND s.month = $2
	`

	s, err := scanSalary(q.QueryRow(ctx, query, employeeCode, month), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.MonthlySalary{}, payroll.ErrSalaryNotFound
		}
		return payroll.MonthlySalary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

// ListByMonth implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) ListByMonth(ctx context.Context, month string) ([]payroll.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `, e.full_name, e.department
		FROM monthly_salaries s
		LEFT JOIN employees e ON e.employee_code = s.employee_code
		WHERE s.month = $1
		ORDER BY s.employee_code
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	var salaries []payroll.MonthlySalary
	for rows.Next() {
		s, err := scanSalary(rows, true)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return salaries, nil
}

// UpsertDraft implements payroll.SalaryRepository. The conflict update only
// fires for DRAFT rows, so a FINALIZED snapshot yields no returned row.
func (r *salaryRepositoryImpl) UpsertDraft(ctx context.Context, s payroll.MonthlySalary) (payroll.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_salaries AS s (
			employee_code, month, base_salary, gross_salary, net_salary, per_day_rate, hourly_rate,
			cycle_days, paid_days, absent_days, half_days, leave_days, lop_days,
			total_deductions, total_additions, overtime_amount, worked_hours, overtime_hours,
			tds_deduction, professional_tax, is_held, breakdown, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18,
			$19, $20, $21, $22, 0
		)
		ON CONFLICT (employee_code, month) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			gross_salary = EXCLUDED.gross_salary,
			net_salary = EXCLUDED.net_salary,
			per_day_rate = EXCLUDED.per_day_rate,
			hourly_rate = EXCLUDED.hourly_rate,
			cycle_days = EXCLUDED.cycle_days,
			paid_days = EXCLUDED.paid_days,
			absent_days = EXCLUDED.absent_days,
			half_days = EXCLUDED.half_days,
			leave_days = EXCLUDED.leave_days,
			lop_days = EXCLUDED.lop_days,
			total_deductions = EXCLUDED.total_deductions,
			total_additions = EXCLUDED.total_additions,
			overtime_amount = EXCLUDED.overtime_amount,
			worked_hours = EXCLUDED.worked_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			tds_deduction = EXCLUDED.tds_deduction,
			professional_tax = EXCLUDED.professional_tax,
			is_held = EXCLUDED.is_held,
			breakdown = EXCLUDED.breakdown,
			updated_at = NOW()
		WHERE s.status = 0
		RETURNING ` + salaryColumns

	saved, err := scanSalary(q.QueryRow(ctx, query,
		s.EmployeeCode, s.Month, s.BaseSalary, s.GrossSalary, s.NetSalary, s.PerDayRate, s.HourlyRate,
		s.CycleDays, s.PaidDays, s.AbsentDays, s.HalfDays, s.LeaveDays, s.LossOfPayDays,
		s.TotalDeductions, s.TotalAdditions, s.OvertimeAmount, s.WorkedHours, s.OvertimeHours,
		s.TDSDeduction, s.ProfessionalTax, s.IsHeld, s.Breakdown,
	), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.MonthlySalary{}, payroll.ErrSalaryAlreadyFinalized
		}
		return payroll.MonthlySalary{}, fmt.Errorf("failed to upsert salary: %w", err)
	}
	return saved, nil
}

// Finalize implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) Finalize(ctx context.Context, employeeCode string, month string, by string) (payroll.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_salaries AS s
		SET status = 1, finalized_at = NOW(), finalized_by = $3, updated_at = NOW()
		WHERE s.employee_code = $1 AND s.month = $2 AND s.status = 0
		RETURNING ` + salaryColumns

	s, err := scanSalary(q.QueryRow(ctx, query, employeeCode, month, by), false)
	if err == nil {
		return s, nil
	}
	if err != pgx.ErrNoRows {
		return payroll.MonthlySalary{}, fmt.Errorf("failed to finalize salary: %w", err)
	}

	var exists bool
	err = q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM monthly_salaries WHERE employee_code = $1 AND month = $2)`,
		employeeCode, month).Scan(&exists)
	if err != nil {
		return payroll.MonthlySalary{}, fmt.Errorf("failed to check salary: %w", err)
	}
	if exists {
		return payroll.MonthlySalary{}, payroll.ErrSalaryAlreadyFinalized
	}
	return payroll.MonthlySalary{}, payroll.ErrSalaryNotFound
}

// FinalizeMonth implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) FinalizeMonth(ctx context.Context, month string, by string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_salaries
		SET status = 1, finalized_at = NOW(), finalized_by = $2, updated_at = NOW()
		WHERE month = $1 AND status = 0
		RETURNING employee_code
	`

	rows, err := q.Query(ctx, query, month, by)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize month: %w", err)
	}
	defer rows.Close()

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect finalized salaries: %w", err)
	}
	return codes, nil
}

// SetHeld implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) SetHeld(ctx context.Context, employeeCode string, month string, held bool) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE monthly_salaries SET is_held = $3, updated_at = NOW()
		WHERE employee_code = $1 AND month = $2
	`, employeeCode, month, held)
	if err != nil {
		return fmt.Errorf("failed to update salary hold flag: %w", err)
	}
	return nil
}

// ========== ADJUSTMENTS ==========

const adjustmentColumns = `id, employee_code, month, type, category, amount, description, created_by, created_at, updated_at`

type adjustmentRepositoryImpl struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) payroll.AdjustmentRepository {
	return &adjustmentRepositoryImpl{db: db}
}

func scanAdjustment(row pgx.Row) (payroll.Adjustment, error) {
	var a payroll.Adjustment
	var adjType string
	err := row.Scan(&a.ID, &a.EmployeeCode, &a.Month, &adjType, &a.Category, &a.Amount,
		&a.Description, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	a.Type = payroll.AdjustmentType(adjType)
	return a, err
}

// Upsert implements payroll.AdjustmentRepository. The row is keyed by
// (employee, month, type, category); an existing row keeps its id.
func (r *adjustmentRepositoryImpl) Upsert(ctx context.Context, adj payroll.Adjustment) (payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_adjustments (id, employee_code, month, type, category, amount, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT uk_salary_adjustment DO UPDATE SET
			amount = EXCLUDED.amount,
			description = EXCLUDED.description,
			created_by = EXCLUDED.created_by,
			updated_at = NOW()
		RETURNING ` + adjustmentColumns

	saved, err := scanAdjustment(q.QueryRow(ctx, query,
		adj.ID, adj.EmployeeCode, adj.Month, string(adj.Type), adj.Category, adj.Amount, adj.Description, adj.CreatedBy,
	))
	if err != nil {
		return payroll.Adjustment{}, fmt.Errorf("failed to upsert adjustment: %w", err)
	}
	return saved, nil
}

// GetByID implements payroll.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	adj, err := scanAdjustment(q.QueryRow(ctx, `SELECT `+adjustmentColumns+` FROM salary_adjustments WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Adjustment{}, payroll.ErrAdjustmentNotFound
		}
		return payroll.Adjustment{}, fmt.Errorf("failed to get adjustment: %w", err)
	}
	return adj, nil
}

// ListByEmployeeMonth implements payroll.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) ListByEmployeeMonth(ctx context.Context, employeeCode string, month string) ([]payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + adjustmentColumns + `
		FROM salary_adjustments
		WHERE employee_code = $1 AND month = $2
		ORDER BY type, category`

	rows, err := q.Query(ctx, query, employeeCode, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var adjs []payroll.Adjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, err
		}
		adjs = append(adjs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return adjs, nil
}

// Delete implements payroll.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_adjustments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdjustmentNotFound
	}
	return nil
}

// ========== HOLDS ==========

const holdColumns = `id, employee_code, month, hold_type, reason, released, released_at, released_by, created_by, created_at`

type holdRepositoryImpl struct {
	db *database.DB
}

func NewHoldRepository(db *database.DB) payroll.HoldRepository {
	return &holdRepositoryImpl{db: db}
}

func scanHold(row pgx.Row) (payroll.Hold, error) {
	var h payroll.Hold
	var holdType string
	err := row.Scan(&h.ID, &h.EmployeeCode, &h.Month, &holdType, &h.Reason, &h.Released,
		&h.ReleasedAt, &h.ReleasedBy, &h.CreatedBy, &h.CreatedAt)
	h.HoldType = payroll.HoldType(holdType)
	return h, err
}

// Create implements payroll.HoldRepository. The partial unique index on
// unreleased holds rejects a second active hold.
func (r *holdRepositoryImpl) Create(ctx context.Context, hold payroll.Hold) (payroll.Hold, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_holds (id, employee_code, month, hold_type, reason, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + holdColumns

	created, err := scanHold(q.QueryRow(ctx, query,
		hold.ID, hold.EmployeeCode, hold.Month, string(hold.HoldType), hold.Reason, hold.CreatedBy,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_hold_active") {
			return payroll.Hold{}, payroll.ErrHoldAlreadyActive
		}
		return payroll.Hold{}, fmt.Errorf("failed to create hold: %w", err)
	}
	return created, nil
}

// GetActive implements payroll.HoldRepository.
func (r *holdRepositoryImpl) GetActive(ctx context.Context, employeeCode string, month string) (payroll.Hold, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holdColumns + ` FROM salary_holds WHERE employee_code = $1 AND month = $2 AND NOT released`

	h, err := scanHold(q.QueryRow(ctx, query, employeeCode, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Hold{}, payroll.ErrHoldNotFound
		}
		return payroll.Hold{}, fmt.Errorf("failed to get hold: %w", err)
	}
	return h, nil
}

// Release implements payroll.HoldRepository.
func (r *holdRepositoryImpl) Release(ctx context.Context, employeeCode string, month string, by string) (payroll.Hold, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_holds
		SET released = TRUE, released_at = NOW(), released_by = $3
		WHERE employee_code = $1 AND month = $2 AND NOT released
		RETURNING ` + holdColumns

	h, err := scanHold(q.QueryRow(ctx, query, employeeCode, month, by))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Hold{}, payroll.ErrNoActiveHold
		}
		return payroll.Hold{}, fmt.Errorf("failed to release hold: %w", err)
	}
	return h, nil
}
