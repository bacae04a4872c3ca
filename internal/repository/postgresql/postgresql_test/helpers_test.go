package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	db          *database.DB
	connectOnce sync.Once
	connectErr  error
)

// testDB returns the shared test pool, skipping the test when no database is
// configured. The schema is bootstrapped on first use so the tests run
// against any empty database.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	connectOnce.Do(func() {
		db, connectErr = database.NewPostgreSQLDB(dsn)
		if connectErr == nil {
			connectErr = applySchema(db)
		}
	})
	if connectErr != nil {
		t.Fatalf("failed to prepare test database: %v", connectErr)
	}
	return db
}

func applySchema(db *database.DB) error {
	ctx := context.Background()
	statements := []string{
		`CREATE TABLE IF NOT EXISTS attendance_events (
			id TEXT PRIMARY KEY,
			employee_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			date TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			zone_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS attendance_events_employee_date_kind_key
			ON attendance_events (employee_id, date, kind)`,
		`CREATE TABLE IF NOT EXISTS leave_types (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			max_per_year INT,
			is_paid BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS leave_balances (
			employee_id TEXT NOT NULL,
			leave_type_id TEXT NOT NULL REFERENCES leave_types (id),
			balance_days DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (balance_days >= 0),
			pending_days DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (pending_days >= 0),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (employee_id, leave_type_id)
		)`,
		`CREATE TABLE IF NOT EXISTS leave_applications (
			id TEXT PRIMARY KEY,
			employee_id TEXT NOT NULL,
			leave_type_id TEXT NOT NULL REFERENCES leave_types (id),
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			days INT NOT NULL,
			reason TEXT,
			status TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			decided_at TIMESTAMPTZ,
			decided_by TEXT,
			remarks TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// resetTables truncates everything the repository tests touch.
func resetTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	_, err := db.Exec(ctx, "TRUNCATE TABLE attendance_events CASCADE")
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE leave_applications CASCADE")
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE leave_balances CASCADE")
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE leave_types CASCADE")
	require.NoError(t, err)
}

func createTestLeaveType(t *testing.T, ctx context.Context, db *database.DB, name string) string {
	t.Helper()

	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO leave_types (id, name, is_paid)
		VALUES (gen_random_uuid()::text, $1, TRUE)
		RETURNING id
	`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func createTestBalance(t *testing.T, ctx context.Context, db *database.DB, employeeID, leaveTypeID string, balanceDays, pendingDays float64) {
	t.Helper()

	_, err := db.Exec(ctx, `
		INSERT INTO leave_balances (employee_id, leave_type_id, balance_days, pending_days)
		VALUES ($1, $2, $3, $4)
	`, employeeID, leaveTypeID, balanceDays, pendingDays)
	require.NoError(t, err)
}
