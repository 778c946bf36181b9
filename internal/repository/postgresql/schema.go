package postgresql

import (
	"context"
	"fmt"

	"github.com/flash-erp/erp-backend-go/internal/pkg/database"
)

// Schema creates the tables payroll reads and maintains. employees2 and
// attendance_records are owned by the roster and attendance screens; they are
// created here only when missing so a fresh database can serve reports.
const Schema = `
CREATE TABLE IF NOT EXISTS employees2 (
	id            BIGSERIAL PRIMARY KEY,
	serial_no     TEXT,
	fss_no        TEXT,
	name          TEXT,
	cnic          TEXT,
	eobi_no       TEXT,
	salary        TEXT,
	mobile_no     TEXT,
	home_contact  TEXT,
	category      TEXT,
	status        TEXT,
	bank_accounts JSONB,
	created_at    TIMESTAMPTZ DEFAULT NOW(),
	updated_at    TIMESTAMPTZ DEFAULT NOW()
);

ALTER TABLE employees2 ADD COLUMN IF NOT EXISTS category TEXT;
ALTER TABLE employees2 ADD COLUMN IF NOT EXISTS status TEXT;

CREATE TABLE IF NOT EXISTS attendance_records (
	id               BIGSERIAL PRIMARY KEY,
	employee_id      TEXT NOT NULL,
	date             TEXT NOT NULL,
	status           TEXT,
	leave_type       TEXT,
	overtime_minutes INTEGER,
	overtime_rate    NUMERIC(14, 4),
	late_minutes     INTEGER,
	late_deduction   NUMERIC(14, 2),
	fine_amount      NUMERIC(14, 2),
	note             TEXT
);

CREATE INDEX IF NOT EXISTS idx_attendance_records_date ON attendance_records (date);

CREATE TABLE IF NOT EXISTS payroll_sheet_entries (
	id                    UUID PRIMARY KEY,
	employee_db_id        BIGINT NOT NULL REFERENCES employees2 (id) ON DELETE CASCADE,
	from_date             DATE NOT NULL,
	to_date               DATE NOT NULL,
	pre_days              INTEGER,
	cur_days              INTEGER,
	leave_encashment_days INTEGER NOT NULL DEFAULT 0,
	allow_other           NUMERIC(14, 2) NOT NULL DEFAULT 0,
	eobi                  NUMERIC(14, 2) NOT NULL DEFAULT 0,
	tax                   NUMERIC(14, 2) NOT NULL DEFAULT 0,
	fine_adv_extra        NUMERIC(14, 2) NOT NULL DEFAULT 0,
	remarks               TEXT,
	bank_cash             TEXT,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uk_payroll_sheet_entry UNIQUE (employee_db_id, from_date, to_date)
);

CREATE TABLE IF NOT EXISTS employee_advance_deductions (
	id             UUID PRIMARY KEY,
	employee_db_id BIGINT NOT NULL REFERENCES employees2 (id) ON DELETE CASCADE,
	month          TEXT NOT NULL,
	amount         NUMERIC(14, 2) NOT NULL DEFAULT 0,
	note           TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uk_employee_advance_deduction UNIQUE (employee_db_id, month)
);
`

// Migrate applies Schema.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
