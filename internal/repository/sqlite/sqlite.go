// Package sqlite implements the payroll repositories on SQLite.
//
// It backs local development (DB_DRIVER=sqlite) and the repository tests,
// which run against ":memory:". Dates are stored as YYYY-MM-DD text,
// timestamps as RFC 3339 text in UTC and money as decimal text.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/pkg/lenient"
	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3"
)

// Store owns the SQLite connection shared by the repositories.
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath and creates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" shared.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle, used by seeding tools and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees2 (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		serial_no TEXT,
		fss_no TEXT,
		name TEXT,
		cnic TEXT,
		eobi_no TEXT,
		salary TEXT,
		mobile_no TEXT,
		home_contact TEXT,
		category TEXT,
		status TEXT,
		bank_accounts TEXT,
		created_at TEXT,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS attendance_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT,
		leave_type TEXT,
		overtime_minutes INTEGER,
		overtime_rate TEXT,
		late_minutes INTEGER,
		late_deduction TEXT,
		fine_amount TEXT,
		note TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_records_date
		ON attendance_records(date);

	CREATE TABLE IF NOT EXISTS payroll_sheet_entries (
		id TEXT PRIMARY KEY,
		employee_db_id INTEGER NOT NULL REFERENCES employees2(id) ON DELETE CASCADE,
		from_date TEXT NOT NULL,
		to_date TEXT NOT NULL,
		pre_days INTEGER,
		cur_days INTEGER,
		leave_encashment_days INTEGER NOT NULL DEFAULT 0,
		allow_other TEXT NOT NULL DEFAULT '0',
		eobi TEXT NOT NULL DEFAULT '0',
		tax TEXT NOT NULL DEFAULT '0',
		fine_adv_extra TEXT NOT NULL DEFAULT '0',
		remarks TEXT,
		bank_cash TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (employee_db_id, from_date, to_date)
	);

	CREATE TABLE IF NOT EXISTS employee_advance_deductions (
		id TEXT PRIMARY KEY,
		employee_db_id INTEGER NOT NULL REFERENCES employees2(id) ON DELETE CASCADE,
		month TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		note TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (employee_db_id, month)
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Roster files created before category and status existed.
	for _, column := range []string{"category", "status"} {
		if err := s.addColumnIfMissing("employees2", column, "TEXT"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) addColumnIfMissing(table, column, colType string) error {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM pragma_table_info(?) WHERE name = ?)`, table, column).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	if exists {
		return nil
	}
	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, colType))
	return err
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn inside a transaction. fn must issue every statement through
// the querier it is given.
func (s *Store) withTx(ctx context.Context, fn func(q querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func employeeExists(ctx context.Context, q querier, id int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM employees2 WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly}

// parseTimestamp accepts RFC 3339 and the formats SQLite's own date functions
// produce. Blank or unparsable text yields nil.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	s := strings.TrimSpace(ns.String)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Attendance and payroll numerics are operator-entered and may hold text SQLite
// could not coerce, so they are read as text and parsed leniently.
func lenientDecimalPtr(ns sql.NullString) *decimal.Decimal {
	if !ns.Valid {
		return nil
	}
	d := lenient.Decimal(ns.String)
	return &d
}

func lenientIntPtr(ns sql.NullString) *int {
	if !ns.Valid {
		return nil
	}
	v := lenient.Int(ns.String)
	return &v
}

// nullIfEmpty stores blank text as NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
