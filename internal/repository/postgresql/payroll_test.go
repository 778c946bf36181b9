package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/payroll"
	"github.com/flash-erp/erp-backend-go/internal/pkg/database"
	"github.com/flash-erp/erp-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL and resets the payroll tables.
// Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	_, err = db.Exec(ctx, `TRUNCATE TABLE employee_advance_deductions, payroll_sheet_entries, attendance_records, employees2 RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func createTestEmployee(t *testing.T, db *database.DB, serial, fss, salary string, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO employees2 (serial_no, fss_no, name, salary, bank_accounts, created_at)
		VALUES ($1, $2, 'Test Guard', $3, '[{"bank_name":"HBL","account_number":"0042"}]', $4)
		RETURNING id
	`, serial, fss, salary, createdAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestEmployeeRepository_ListForPayroll(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	early := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	inID := createTestEmployee(t, db, "1", "FSS-1", "30000", early)
	createTestEmployee(t, db, "2", "FSS-2", "30000", late)

	employees, err := repo.ListForPayroll(ctx, time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, inID, employees[0].ID)
	assert.Equal(t, "FSS-1", employees[0].AttendanceKey())
	assert.Equal(t, "HBL", employees[0].PrimaryBankAccount().BankName)
}

func TestAttendanceRepository_ListByDateRange(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	_, err := db.Exec(ctx, `
		INSERT INTO attendance_records (employee_id, date, status, overtime_minutes, overtime_rate) VALUES
			('FSS-1', '2025-01-01', 'present', 60, 120.50),
			('FSS-1', '2025-01-31', 'late', NULL, NULL),
			('FSS-1', '2025-02-01', 'present', NULL, NULL),
			('FSS-1', 'not-a-date', 'present', NULL, NULL)
	`)
	require.NoError(t, err)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	records, err := repo.ListByDateRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, records, 3)

	dates := []string{records[0].Date, records[1].Date, records[2].Date}
	assert.ElementsMatch(t, []string{"2025-01-01", "2025-01-31", "not-a-date"}, dates)

	byKey, err := repo.ListByEmployeeKey(ctx, "FSS-1", start, end)
	require.NoError(t, err)
	assert.Len(t, byKey, 3)
}

func TestPayrollRepository_SheetEntries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(db)

	empID := createTestEmployee(t, db, "1", "FSS-1", "30000", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	first, err := repo.UpsertSheetEntry(ctx, payroll.SheetEntry{
		ID:                  uuid.NewString(),
		EmployeeDBID:        empID,
		FromDate:            from,
		ToDate:              to,
		LeaveEncashmentDays: 2,
		Tax:                 decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	second, err := repo.UpsertSheetEntry(ctx, payroll.SheetEntry{
		ID:                  uuid.NewString(),
		EmployeeDBID:        empID,
		FromDate:            from,
		ToDate:              to,
		LeaveEncashmentDays: 3,
		Tax:                 decimal.NewFromInt(700),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.LeaveEncashmentDays)
	assert.True(t, second.Tax.Equal(decimal.NewFromInt(700)))

	entries, err := repo.GetSheetEntriesByPeriod(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = repo.UpsertSheetEntry(ctx, payroll.SheetEntry{ID: uuid.NewString(), EmployeeDBID: 999999, FromDate: from, ToDate: to})
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)

	require.NoError(t, repo.DeleteSheetEntry(ctx, empID, from, to))
	_, err = repo.GetSheetEntry(ctx, empID, from, to)
	assert.ErrorIs(t, err, payroll.ErrSheetEntryNotFound)
	assert.ErrorIs(t, repo.DeleteSheetEntry(ctx, empID, from, to), payroll.ErrSheetEntryNotFound)
}

func TestPayrollRepository_AdvanceDeductions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(db)

	empID := createTestEmployee(t, db, "1", "FSS-1", "30000", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := repo.UpsertAdvanceDeduction(ctx, payroll.AdvanceDeduction{
		ID: uuid.NewString(), EmployeeDBID: empID, Month: "2025-01", Amount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	_, err = repo.UpsertAdvanceDeduction(ctx, payroll.AdvanceDeduction{
		ID: uuid.NewString(), EmployeeDBID: empID, Month: "2025-01", Amount: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)

	deductions, err := repo.GetAdvanceDeductionsByMonth(ctx, "2025-01")
	require.NoError(t, err)
	require.Len(t, deductions, 1)
	assert.True(t, deductions[0].Amount.Equal(decimal.NewFromInt(1500)))

	none, err := repo.GetAdvanceDeductionsByMonth(ctx, "2025-02")
	require.NoError(t, err)
	assert.Empty(t, none)
}
