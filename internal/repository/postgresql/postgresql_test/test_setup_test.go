package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema. The
// test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "0001_payroll.sql"))
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all rows written by the tests.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"monthly_salaries",
		"salary_holds",
		"salary_adjustments",
		"overtime_toggles",
		"monthly_leave_usage",
		"leave_entitlements",
		"attendance_regularizations",
		"holidays",
		"punch_logs",
		"shift_assignments",
		"employees",
		"shifts",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

// seedEmployee inserts the Day Shift and one active employee.
func (t *TestDatabaseSetup) seedEmployee(tb testing.TB, code string, baseSalary string) {
	tb.Helper()
	ctx := context.Background()

	_, err := t.DB.Exec(ctx, `
		INSERT INTO shifts (name, start_time, end_time, work_hours, late_threshold_minutes)
		VALUES ('Day Shift', '09:00', '18:00', 9, 0)
		ON CONFLICT (name) DO NOTHING
	`)
	require.NoError(tb, err)

	_, err = t.DB.Exec(ctx, `
		INSERT INTO employees (employee_code, full_name, department, base_salary, default_shift, weekly_off)
		VALUES ($1, 'Test Employee', 'QA', $2, 'Day Shift', 0)
	`, code, baseSalary)
	require.NoError(tb, err)
}
