package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/payroll"
	"github.com/flash-erp/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SHEET ENTRIES ==========

const sheetEntryColumns = `
	id, employee_db_id, from_date, to_date, pre_days, cur_days,
	leave_encashment_days, allow_other, eobi, tax, fine_adv_extra,
	remarks, bank_cash, created_at, updated_at`

func scanSheetEntry(row pgx.Row) (payroll.SheetEntry, error) {
	var s payroll.SheetEntry
	err := row.Scan(
		&s.ID, &s.EmployeeDBID, &s.FromDate, &s.ToDate, &s.PreDays, &s.CurDays,
		&s.LeaveEncashmentDays, &s.AllowOther, &s.EOBI, &s.Tax, &s.FineAdvExtra,
		&s.Remarks, &s.BankCash, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *payrollRepository) GetSheetEntriesByPeriod(ctx context.Context, from, to time.Time) ([]payroll.SheetEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sheetEntryColumns + `
		FROM payroll_sheet_entries
		WHERE from_date = $1 AND to_date = $2
		ORDER BY employee_db_id, updated_at
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll sheet entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.SheetEntry
	for rows.Next() {
		s, err := scanSheetEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll sheet entry: %w", err)
		}
		entries = append(entries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll sheet entries: %w", err)
	}

	return entries, nil
}

func (r *payrollRepository) GetSheetEntry(ctx context.Context, employeeDBID int64, from, to time.Time) (payroll.SheetEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sheetEntryColumns + `
		FROM payroll_sheet_entries
		WHERE employee_db_id = $1 AND from_date = $2 AND to_date = $3
	`

	s, err := scanSheetEntry(q.QueryRow(ctx, query, employeeDBID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SheetEntry{}, payroll.ErrSheetEntryNotFound
		}
		return payroll.SheetEntry{}, fmt.Errorf("failed to get payroll sheet entry: %w", err)
	}

	return s, nil
}

// UpsertSheetEntry creates or replaces the entry for (employee, from, to).
// An existing entry keeps its id and created_at.
func (r *payrollRepository) UpsertSheetEntry(ctx context.Context, entry payroll.SheetEntry) (payroll.SheetEntry, error) {
	var saved payroll.SheetEntry

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees2 WHERE id = $1)`, entry.EmployeeDBID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check employee: %w", err)
		}
		if !exists {
			return payroll.ErrEmployeeNotFound
		}

		query := `
			INSERT INTO payroll_sheet_entries (
				id, employee_db_id, from_date, to_date, pre_days, cur_days,
				leave_encashment_days, allow_other, eobi, tax, fine_adv_extra,
				remarks, bank_cash
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (employee_db_id, from_date, to_date) DO UPDATE SET
				pre_days = EXCLUDED.pre_days,
				cur_days = EXCLUDED.cur_days,
				leave_encashment_days = EXCLUDED.leave_encashment_days,
				allow_other = EXCLUDED.allow_other,
				eobi = EXCLUDED.eobi,
				tax = EXCLUDED.tax,
				fine_adv_extra = EXCLUDED.fine_adv_extra,
				remarks = EXCLUDED.remarks,
				bank_cash = EXCLUDED.bank_cash,
				updated_at = NOW()
			RETURNING ` + sheetEntryColumns

		s, err := scanSheetEntry(q.QueryRow(ctx, query,
			entry.ID, entry.EmployeeDBID, entry.FromDate, entry.ToDate, entry.PreDays, entry.CurDays,
			entry.LeaveEncashmentDays, entry.AllowOther, entry.EOBI, entry.Tax, entry.FineAdvExtra,
			entry.Remarks, entry.BankCash,
		))
		if err != nil {
			return fmt.Errorf("failed to upsert payroll sheet entry: %w", err)
		}
		saved = s
		return nil
	})
	if err != nil {
		return payroll.SheetEntry{}, err
	}

	return saved, nil
}

func (r *payrollRepository) DeleteSheetEntry(ctx context.Context, employeeDBID int64, from, to time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payroll_sheet_entries
		WHERE employee_db_id = $1 AND from_date = $2 AND to_date = $3
	`

	tag, err := q.Exec(ctx, query, employeeDBID, from, to)
	if err != nil {
		return fmt.Errorf("failed to delete payroll sheet entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSheetEntryNotFound
	}

	return nil
}

// ========== ADVANCE DEDUCTIONS ==========

const advanceColumns = `id, employee_db_id, month, amount, note, created_at, updated_at`

func scanAdvance(row pgx.Row) (payroll.AdvanceDeduction, error) {
	var a payroll.AdvanceDeduction
	err := row.Scan(&a.ID, &a.EmployeeDBID, &a.Month, &a.Amount, &a.Note, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *payrollRepository) GetAdvanceDeductionsByMonth(ctx context.Context, month string) ([]payroll.AdvanceDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + `
		FROM employee_advance_deductions
		WHERE month = $1
		ORDER BY employee_db_id
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list advance deductions: %w", err)
	}
	defer rows.Close()

	var deductions []payroll.AdvanceDeduction
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance deduction: %w", err)
		}
		deductions = append(deductions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advance deductions: %w", err)
	}

	return deductions, nil
}

func (r *payrollRepository) UpsertAdvanceDeduction(ctx context.Context, deduction payroll.AdvanceDeduction) (payroll.AdvanceDeduction, error) {
	var saved payroll.AdvanceDeduction

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees2 WHERE id = $1)`, deduction.EmployeeDBID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check employee: %w", err)
		}
		if !exists {
			return payroll.ErrEmployeeNotFound
		}

		query := `
			INSERT INTO employee_advance_deductions (id, employee_db_id, month, amount, note)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (employee_db_id, month) DO UPDATE SET
				amount = EXCLUDED.amount,
				note = EXCLUDED.note,
				updated_at = NOW()
			RETURNING ` + advanceColumns

		a, err := scanAdvance(q.QueryRow(ctx, query,
			deduction.ID, deduction.EmployeeDBID, deduction.Month, deduction.Amount, deduction.Note,
		))
		if err != nil {
			return fmt.Errorf("failed to upsert advance deduction: %w", err)
		}
		saved = a
		return nil
	})
	if err != nil {
		return payroll.AdvanceDeduction{}, err
	}

	return saved, nil
}
