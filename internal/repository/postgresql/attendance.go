package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ========== PUNCH LOGS ==========

type punchLogRepositoryImpl struct {
	db *database.DB
}

func NewPunchLogRepository(db *database.DB) attendance.PunchLogRepository {
	return &punchLogRepositoryImpl{db: db}
}

// ListByEmployeeAndDate implements attendance.PunchLogRepository.
func (p *punchLogRepositoryImpl) ListByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) ([]attendance.PunchLog, error) {
	return p.ListByEmployeeInRange(ctx, employeeCode, date, date)
}

// ListByEmployeeInRange implements attendance.PunchLogRepository.
func (p *punchLogRepositoryImpl) ListByEmployeeInRange(ctx context.Context, employeeCode string, from, to time.Time) ([]attendance.PunchLog, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT employee_code, log_time, COALESCE(direction, ''), device_id
		FROM punch_logs
		WHERE employee_code = $1 AND log_time >= $2 AND log_time < $3
		ORDER BY log_time
	`

	rows, err := q.Query(ctx, query, employeeCode, dayStart(from), dayStart(to).AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list punch logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.PunchLog
	for rows.Next() {
		var l attendance.PunchLog
		var direction string
		if err := rows.Scan(&l.EmployeeCode, &l.Timestamp, &direction, &l.DeviceID); err != nil {
			return nil, err
		}
		l.Direction = parseDirection(direction)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func parseDirection(v string) attendance.Direction {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "in", "i", "0":
		return attendance.DirectionIn
	case "out", "o", "1":
		return attendance.DirectionOut
	default:
		return attendance.DirectionUnknown
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ========== HOLIDAYS ==========

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) attendance.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// IsHoliday implements attendance.HolidayRepository.
func (h *holidayRepositoryImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, h.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM holidays WHERE holiday_date = $1)`, dayStart(date)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return exists, nil
}

// ListInRange implements attendance.HolidayRepository.
func (h *holidayRepositoryImpl) ListInRange(ctx context.Context, from, to time.Time) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	rows, err := q.Query(ctx, `
		SELECT holiday_date, name
		FROM holidays
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date
	`, dayStart(from), dayStart(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []attendance.Holiday
	for rows.Next() {
		var hd attendance.Holiday
		if err := rows.Scan(&hd.Date, &hd.Name); err != nil {
			return nil, err
		}
		holidays = append(holidays, hd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}

// ========== REGULARIZATIONS ==========

type regularizationRepositoryImpl struct {
	db *database.DB
}

func NewRegularizationRepository(db *database.DB) attendance.RegularizationRepository {
	return &regularizationRepositoryImpl{db: db}
}

const regularizationColumns = `id, employee_code, reg_date, original_status, regularized_status,
	reason, approved_by, created_at, updated_at`

func scanRegularization(row pgx.Row) (attendance.Regularization, error) {
	var r attendance.Regularization
	var original, regularized string
	err := row.Scan(&r.ID, &r.EmployeeCode, &r.Date, &original, &regularized,
		&r.Reason, &r.ApprovedBy, &r.CreatedAt, &r.UpdatedAt)
	r.OriginalStatus = attendance.DayStatus(original)
	r.RegularizedStatus = attendance.DayStatus(regularized)
	return r, err
}

// Upsert implements attendance.RegularizationRepository. An existing row for
// the same employee and date keeps its id.
func (r *regularizationRepositoryImpl) Upsert(ctx context.Context, reg attendance.Regularization) (attendance.Regularization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_regularizations (id, employee_code, reg_date, original_status, regularized_status, reason, approved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_code, reg_date) DO UPDATE SET
			original_status = EXCLUDED.original_status,
			regularized_status = EXCLUDED.regularized_status,
			reason = EXCLUDED.reason,
			approved_by = EXCLUDED.approved_by,
			updated_at = NOW()
		RETURNING ` + regularizationColumns

	saved, err := scanRegularization(q.QueryRow(ctx, query,
		reg.ID, reg.EmployeeCode, dayStart(reg.Date), string(reg.OriginalStatus),
		string(reg.RegularizedStatus), reg.Reason, reg.ApprovedBy,
	))
	if err != nil {
		return attendance.Regularization{}, fmt.Errorf("failed to upsert regularization: %w", err)
	}
	return saved, nil
}

// GetByEmployeeAndDate implements attendance.RegularizationRepository.
func (r *regularizationRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (attendance.Regularization, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + regularizationColumns + ` FROM attendance_regularizations WHERE employee_code = $1 AND reg_date = $2`

	reg, err := scanRegularization(q.QueryRow(ctx, query, employeeCode, dayStart(date)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Regularization{}, attendance.ErrRegularizationNotFound
		}
		return attendance.Regularization{}, fmt.Errorf("failed to get regularization: %w", err)
	}
	return reg, nil
}

// ListByEmployeeInRange implements attendance.RegularizationRepository.
func (r *regularizationRepositoryImpl) ListByEmployeeInRange(ctx context.Context, employeeCode string, from, to time.Time) ([]attendance.Regularization, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + regularizationColumns + `
		FROM attendance_regularizations
		WHERE employee_code = $1 AND reg_date BETWEEN $2 AND $3
		ORDER BY reg_date`

	rows, err := q.Query(ctx, query, employeeCode, dayStart(from), dayStart(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list regularizations: %w", err)
	}
	defer rows.Close()

	var regs []attendance.Regularization
	for rows.Next() {
		reg, err := scanRegularization(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

// Delete implements attendance.RegularizationRepository.
func (r *regularizationRepositoryImpl) Delete(ctx context.Context, employeeCode string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_regularizations WHERE employee_code = $1 AND reg_date = $2`,
		employeeCode, dayStart(date))
	if err != nil {
		return fmt.Errorf("failed to delete regularization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRegularizationNotFound
	}
	return nil
}

// ========== OVERTIME ==========

type overtimeRepositoryImpl struct {
	db *database.DB
}

// NewOvertimeRepository must only be used when the overtime_toggles table
// exists; see config.Features.
func NewOvertimeRepository(db *database.DB) attendance.OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

// IsEnabled implements attendance.OvertimeRepository.
func (o *overtimeRepositoryImpl) IsEnabled(ctx context.Context, employeeCode string, month string) (bool, error) {
	q := GetQuerier(ctx, o.db)

	var enabled bool
	err := q.QueryRow(ctx, `SELECT enabled FROM overtime_toggles WHERE employee_code = $1 AND month = $2`,
		employeeCode, month).Scan(&enabled)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to read overtime toggle: %w", err)
	}
	return enabled, nil
}

// Set implements attendance.OvertimeRepository.
func (o *overtimeRepositoryImpl) Set(ctx context.Context, employeeCode string, month string, enabled bool, updatedBy string) error {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO overtime_toggles (employee_code, month, enabled, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_code, month) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, employeeCode, month, enabled, updatedBy); err != nil {
		return fmt.Errorf("failed to set overtime toggle: %w", err)
	}
	return nil
}
