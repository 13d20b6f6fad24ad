package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const shiftColumns = `name, start_time, end_time, slot_time_1_start, slot_time_1_end,
	slot_time_2_start, slot_time_2_end, work_hours, late_threshold_minutes`

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var r shift.ShiftRecord
	if err := row.Scan(
		&r.Name, &r.StartTime, &r.EndTime, &r.Slot1Start, &r.Slot1End,
		&r.Slot2Start, &r.Slot2End, &r.WorkHours, &r.LateThresholdMinutes,
	); err != nil {
		return shift.Shift{}, err
	}
	return shift.ShiftFromRecord(r)
}

// GetByName implements shift.ShiftRepository. Names match case-insensitively.
func (s *shiftRepositoryImpl) GetByName(ctx context.Context, name string) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE LOWER(name) = LOWER($1)`

	sh, err := scanShift(q.QueryRow(ctx, query, strings.TrimSpace(name)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift %q: %w", name, err)
	}
	return sh, nil
}

// GetFirst implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) GetFirst(ctx context.Context) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts ORDER BY created_at, name LIMIT 1`

	sh, err := scanShift(q.QueryRow(ctx, query))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get first shift: %w", err)
	}
	return sh, nil
}

// List implements shift.ShiftRepository. A single misconfigured shift fails
// the whole listing.
func (s *shiftRepositoryImpl) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shifts, nil
}

// ========== ASSIGNMENTS ==========

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

// Create implements shift.AssignmentRepository.
func (a *assignmentRepositoryImpl) Create(ctx context.Context, assignment shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO shift_assignments (id, employee_code, shift_name, from_date, to_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_code, shift_name, from_date, to_date, created_at
	`

	var created shift.Assignment
	err := q.QueryRow(ctx, query,
		assignment.ID, assignment.EmployeeCode, assignment.ShiftName, assignment.FromDate, assignment.ToDate,
	).Scan(
		&created.ID, &created.EmployeeCode, &created.ShiftName, &created.FromDate, &created.ToDate, &created.CreatedAt,
	)
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}
	return created, nil
}

// GetByID implements shift.AssignmentRepository.
func (a *assignmentRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Assignment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_code, shift_name, from_date, to_date, created_at
		FROM shift_assignments
		WHERE id = $1
	`

	var found shift.Assignment
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.EmployeeCode, &found.ShiftName, &found.FromDate, &found.ToDate, &found.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return found, nil
}

// Delete implements shift.AssignmentRepository.
func (a *assignmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// ListByEmployeeInRange implements shift.AssignmentRepository.
func (a *assignmentRepositoryImpl) ListByEmployeeInRange(ctx context.Context, employeeCode string, from, to time.Time) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_code, shift_name, from_date, to_date, created_at
		FROM shift_assignments
		WHERE employee_code = $1 AND from_date <= $3 AND to_date >= $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		var as shift.Assignment
		if err := rows.Scan(&as.ID, &as.EmployeeCode, &as.ShiftName, &as.FromDate, &as.ToDate, &as.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, as)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}
