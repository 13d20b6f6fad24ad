package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
)

// ========== ENTITLEMENTS ==========

type entitlementRepositoryImpl struct {
	db *database.DB
}

func NewEntitlementRepository(db *database.DB) leave.EntitlementRepository {
	return &entitlementRepositoryImpl{db: db}
}

// Get implements leave.EntitlementRepository.
func (e *entitlementRepositoryImpl) Get(ctx context.Context, employeeCode string, year int) (leave.Entitlement, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT employee_code, year, allowed_leaves, used_paid_leaves, used_casual_leaves, created_at, updated_at
		FROM leave_entitlements
		WHERE employee_code = $1 AND year = $2
	`

	var ent leave.Entitlement
	err := q.QueryRow(ctx, query, employeeCode, year).Scan(
		&ent.EmployeeCode, &ent.Year, &ent.AllowedLeaves, &ent.UsedPaidLeaves, &ent.UsedCasualLeaves,
		&ent.CreatedAt, &ent.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Entitlement{}, leave.ErrEntitlementNotFound
		}
		return leave.Entitlement{}, fmt.Errorf("failed to get leave entitlement: %w", err)
	}
	return ent, nil
}

// Upsert implements leave.EntitlementRepository.
func (e *entitlementRepositoryImpl) Upsert(ctx context.Context, ent leave.Entitlement) (leave.Entitlement, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO leave_entitlements (employee_code, year, allowed_leaves, used_paid_leaves, used_casual_leaves)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_code, year) DO UPDATE SET
			allowed_leaves = EXCLUDED.allowed_leaves,
			used_paid_leaves = EXCLUDED.used_paid_leaves,
			used_casual_leaves = EXCLUDED.used_casual_leaves,
			updated_at = NOW()
		RETURNING employee_code, year, allowed_leaves, used_paid_leaves, used_casual_leaves, created_at, updated_at
	`

	var saved leave.Entitlement
	err := q.QueryRow(ctx, query,
		ent.EmployeeCode, ent.Year, ent.AllowedLeaves, ent.UsedPaidLeaves, ent.UsedCasualLeaves,
	).Scan(
		&saved.EmployeeCode, &saved.Year, &saved.AllowedLeaves, &saved.UsedPaidLeaves, &saved.UsedCasualLeaves,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return leave.Entitlement{}, fmt.Errorf("failed to upsert leave entitlement: %w", err)
	}
	return saved, nil
}

// AddUsage implements leave.EntitlementRepository.
func (e *entitlementRepositoryImpl) AddUsage(ctx context.Context, employeeCode string, year int, paidDelta, casualDelta float64) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE leave_entitlements
		SET used_paid_leaves = GREATEST(0, used_paid_leaves + $3),
			used_casual_leaves = GREATEST(0, used_casual_leaves + $4),
			updated_at = NOW()
		WHERE employee_code = $1 AND year = $2
	`

	tag, err := q.Exec(ctx, query, employeeCode, year, paidDelta, casualDelta)
	if err != nil {
		return fmt.Errorf("failed to update leave usage totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrEntitlementNotFound
	}
	return nil
}

// ========== MONTHLY USAGE ==========

type monthlyUsageRepositoryImpl struct {
	db *database.DB
}

func NewMonthlyUsageRepository(db *database.DB) leave.MonthlyUsageRepository {
	return &monthlyUsageRepositoryImpl{db: db}
}

// storedLeaveDay is the JSONB element of the leave date columns.
type storedLeaveDay struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func encodeLeaveDays(days []leave.LeaveDay) ([]byte, error) {
	stored := make([]storedLeaveDay, 0, len(days))
	for _, d := range days {
		stored = append(stored, storedLeaveDay{Date: utils.DateKey(d.Date), Value: d.Value})
	}
	return json.Marshal(stored)
}

func decodeLeaveDays(raw []byte) ([]leave.LeaveDay, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var stored []storedLeaveDay
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	days := make([]leave.LeaveDay, 0, len(stored))
	for _, s := range stored {
		d, err := time.Parse(utils.DateLayout, s.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid leave date %q: %w", s.Date, err)
		}
		days = append(days, leave.LeaveDay{Date: d, Value: s.Value})
	}
	return days, nil
}

func scanMonthlyUsage(row pgx.Row) (leave.MonthlyUsage, error) {
	var u leave.MonthlyUsage
	var paid, casual []byte
	if err := row.Scan(&u.EmployeeCode, &u.Month, &paid, &casual, &u.ApprovedBy, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return leave.MonthlyUsage{}, err
	}

	var err error
	if u.PaidLeaveDates, err = decodeLeaveDays(paid); err != nil {
		return leave.MonthlyUsage{}, fmt.Errorf("failed to decode paid leave dates: %w", err)
	}
	if u.CasualLeaveDates, err = decodeLeaveDays(casual); err != nil {
		return leave.MonthlyUsage{}, fmt.Errorf("failed to decode casual leave dates: %w", err)
	}
	return u, nil
}

// Get implements leave.MonthlyUsageRepository.
func (m *monthlyUsageRepositoryImpl) Get(ctx context.Context, employeeCode string, month string) (leave.MonthlyUsage, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		SELECT employee_code, month, paid_leave_dates, casual_leave_dates, approved_by, created_at, updated_at
		FROM monthly_leave_usage
		WHERE employee_code = $1 AND month = $2
	`

	u, err := scanMonthlyUsage(q.QueryRow(ctx, query, employeeCode, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.MonthlyUsage{}, leave.ErrMonthlyUsageNotFound
		}
		return leave.MonthlyUsage{}, fmt.Errorf("failed to get monthly leave usage: %w", err)
	}
	return u, nil
}

// Upsert implements leave.MonthlyUsageRepository.
func (m *monthlyUsageRepositoryImpl) Upsert(ctx context.Context, usage leave.MonthlyUsage) (leave.MonthlyUsage, error) {
	q := GetQuerier(ctx, m.db)

	paid, err := encodeLeaveDays(usage.PaidLeaveDates)
	if err != nil {
		return leave.MonthlyUsage{}, fmt.Errorf("failed to encode paid leave dates: %w", err)
	}
	casual, err := encodeLeaveDays(usage.CasualLeaveDates)
	if err != nil {
		return leave.MonthlyUsage{}, fmt.Errorf("failed to encode casual leave dates: %w", err)
	}

	query := `
		INSERT INTO monthly_leave_usage (employee_code, month, paid_leave_dates, casual_leave_dates, approved_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_code, month) DO UPDATE SET
			paid_leave_dates = EXCLUDED.paid_leave_dates,
			casual_leave_dates = EXCLUDED.casual_leave_dates,
			approved_by = EXCLUDED.approved_by,
			updated_at = NOW()
		RETURNING employee_code, month, paid_leave_dates, casual_leave_dates, approved_by, created_at, updated_at
	`

	saved, err := scanMonthlyUsage(q.QueryRow(ctx, query, usage.EmployeeCode, usage.Month, paid, casual, usage.ApprovedBy))
	if err != nil {
		return leave.MonthlyUsage{}, fmt.Errorf("failed to upsert monthly leave usage: %w", err)
	}
	return saved, nil
}

// ListByYear implements leave.MonthlyUsageRepository.
func (m *monthlyUsageRepositoryImpl) ListByYear(ctx context.Context, employeeCode string, year int) ([]leave.MonthlyUsage, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		SELECT employee_code, month, paid_leave_dates, casual_leave_dates, approved_by, created_at, updated_at
		FROM monthly_leave_usage
		WHERE employee_code = $1 AND month LIKE $2
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, employeeCode, fmt.Sprintf("%04d-%%", year))
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly leave usage: %w", err)
	}
	defer rows.Close()

	var usages []leave.MonthlyUsage
	for rows.Next() {
		u, err := scanMonthlyUsage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly leave usage: %w", err)
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list monthly leave usage: %w", err)
	}
	return usages, nil
}
