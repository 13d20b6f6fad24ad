package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT employee_code, full_name, department, designation, base_salary, default_shift,
			weekly_off, bank_name, bank_account_number, join_date, is_active, created_at, updated_at
		FROM employees
		WHERE employee_code = $1
	`

	var found employee.Employee
	var weeklyOff int16
	err := q.QueryRow(ctx, query, employeeCode).Scan(
		&found.EmployeeCode, &found.FullName, &found.Department, &found.Designation, &found.BaseSalary,
		&found.DefaultShift, &weeklyOff, &found.BankName, &found.BankAccountNumber, &found.JoinDate,
		&found.IsActive, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", employeeCode, err)
	}
	found.WeeklyOff = time.Weekday(weeklyOff)

	return found, nil
}

// ListActiveCodes implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActiveCodes(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT employee_code FROM employees WHERE is_active = TRUE ORDER BY employee_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee codes: %w", err)
	}
	return codes, nil
}
