package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/payroll"
	"github.com/flash-erp/erp-backend-go/internal/pkg/lenient"
)

type payrollRepository struct {
	store *Store
	now   func() time.Time
}

func NewPayrollRepository(store *Store) payroll.PayrollRepository {
	return &payrollRepository{store: store, now: time.Now}
}

// ========== SHEET ENTRIES ==========

const sheetEntrySelect = `
	SELECT id, employee_db_id, from_date, to_date, pre_days, cur_days,
		leave_encashment_days, allow_other, eobi, tax, fine_adv_extra,
		remarks, bank_cash, created_at, updated_at
	FROM payroll_sheet_entries
`

func scanSheetEntry(row rowScanner) (payroll.SheetEntry, error) {
	var (
		s                    payroll.SheetEntry
		fromDate, toDate     string
		preDays, curDays     sql.NullString
		encashment           sql.NullString
		allowOther, eobi     sql.NullString
		tax, fineAdvExtra    sql.NullString
		remarks, bankCash    sql.NullString
		createdAt, updatedAt sql.NullString
	)
	err := row.Scan(
		&s.ID, &s.EmployeeDBID, &fromDate, &toDate, &preDays, &curDays,
		&encashment, &allowOther, &eobi, &tax, &fineAdvExtra,
		&remarks, &bankCash, &createdAt, &updatedAt,
	)
	if err != nil {
		return s, err
	}

	if s.FromDate, err = time.Parse(time.DateOnly, fromDate); err != nil {
		return s, fmt.Errorf("invalid from_date %q: %w", fromDate, err)
	}
	if s.ToDate, err = time.Parse(time.DateOnly, toDate); err != nil {
		return s, fmt.Errorf("invalid to_date %q: %w", toDate, err)
	}
	s.PreDays = lenientIntPtr(preDays)
	s.CurDays = lenientIntPtr(curDays)
	s.LeaveEncashmentDays = lenient.Int(encashment.String)
	s.AllowOther = lenient.Decimal(allowOther.String)
	s.EOBI = lenient.Decimal(eobi.String)
	s.Tax = lenient.Decimal(tax.String)
	s.FineAdvExtra = lenient.Decimal(fineAdvExtra.String)
	s.Remarks = nullStringPtr(remarks)
	s.BankCash = nullStringPtr(bankCash)
	if t := parseTimestamp(createdAt); t != nil {
		s.CreatedAt = *t
	}
	if t := parseTimestamp(updatedAt); t != nil {
		s.UpdatedAt = *t
	}
	return s, nil
}

func (r *payrollRepository) GetSheetEntriesByPeriod(ctx context.Context, from, to time.Time) ([]payroll.SheetEntry, error) {
	rows, err := r.store.db.QueryContext(ctx, sheetEntrySelect+`
		WHERE from_date = ? AND to_date = ?
		ORDER BY employee_db_id, updated_at
	`, from.Format(time.DateOnly), to.Format(time.DateOnly))
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
	return getSheetEntry(ctx, r.store.db, employeeDBID, from, to)
}

func getSheetEntry(ctx context.Context, q querier, employeeDBID int64, from, to time.Time) (payroll.SheetEntry, error) {
	s, err := scanSheetEntry(q.QueryRowContext(ctx, sheetEntrySelect+`
		WHERE employee_db_id = ? AND from_date = ? AND to_date = ?
	`, employeeDBID, from.Format(time.DateOnly), to.Format(time.DateOnly)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	now := formatTimestamp(r.now())

	err := r.store.withTx(ctx, func(q querier) error {
		exists, err := employeeExists(ctx, q, entry.EmployeeDBID)
		if err != nil {
			return fmt.Errorf("failed to check employee: %w", err)
		}
		if !exists {
			return payroll.ErrEmployeeNotFound
		}

		_, err = q.ExecContext(ctx, `
			INSERT INTO payroll_sheet_entries (
				id, employee_db_id, from_date, to_date, pre_days, cur_days,
				leave_encashment_days, allow_other, eobi, tax, fine_adv_extra,
				remarks, bank_cash, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(employee_db_id, from_date, to_date) DO UPDATE SET
				pre_days = excluded.pre_days,
				cur_days = excluded.cur_days,
				leave_encashment_days = excluded.leave_encashment_days,
				allow_other = excluded.allow_other,
				eobi = excluded.eobi,
				tax = excluded.tax,
				fine_adv_extra = excluded.fine_adv_extra,
				remarks = excluded.remarks,
				bank_cash = excluded.bank_cash,
				updated_at = excluded.updated_at
		`,
			entry.ID, entry.EmployeeDBID, entry.FromDate.Format(time.DateOnly), entry.ToDate.Format(time.DateOnly),
			entry.PreDays, entry.CurDays, entry.LeaveEncashmentDays,
			entry.AllowOther.String(), entry.EOBI.String(), entry.Tax.String(), entry.FineAdvExtra.String(),
			entry.Remarks, entry.BankCash, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert payroll sheet entry: %w", err)
		}

		saved, err = getSheetEntry(ctx, q, entry.EmployeeDBID, entry.FromDate, entry.ToDate)
		return err
	})
	if err != nil {
		return payroll.SheetEntry{}, err
	}

	return saved, nil
}

func (r *payrollRepository) DeleteSheetEntry(ctx context.Context, employeeDBID int64, from, to time.Time) error {
	res, err := r.store.db.ExecContext(ctx, `
		DELETE FROM payroll_sheet_entries
		WHERE employee_db_id = ? AND from_date = ? AND to_date = ?
	`, employeeDBID, from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return fmt.Errorf("failed to delete payroll sheet entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete payroll sheet entry: %w", err)
	}
	if n == 0 {
		return payroll.ErrSheetEntryNotFound
	}

	return nil
}

// ========== ADVANCE DEDUCTIONS ==========

const advanceSelect = `
	SELECT id, employee_db_id, month, amount, note, created_at, updated_at
	FROM employee_advance_deductions
`

func scanAdvance(row rowScanner) (payroll.AdvanceDeduction, error) {
	var (
		a                    payroll.AdvanceDeduction
		amount, note         sql.NullString
		createdAt, updatedAt sql.NullString
	)
	if err := row.Scan(&a.ID, &a.EmployeeDBID, &a.Month, &amount, &note, &createdAt, &updatedAt); err != nil {
		return a, err
	}
	a.Amount = lenient.Decimal(amount.String)
	a.Note = nullStringPtr(note)
	if t := parseTimestamp(createdAt); t != nil {
		a.CreatedAt = *t
	}
	if t := parseTimestamp(updatedAt); t != nil {
		a.UpdatedAt = *t
	}
	return a, nil
}

func (r *payrollRepository) GetAdvanceDeductionsByMonth(ctx context.Context, month string) ([]payroll.AdvanceDeduction, error) {
	rows, err := r.store.db.QueryContext(ctx, advanceSelect+`
		WHERE month = ?
		ORDER BY employee_db_id
	`, month)
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
	now := formatTimestamp(r.now())

	err := r.store.withTx(ctx, func(q querier) error {
		exists, err := employeeExists(ctx, q, deduction.EmployeeDBID)
		if err != nil {
			return fmt.Errorf("failed to check employee: %w", err)
		}
		if !exists {
			return payroll.ErrEmployeeNotFound
		}

		_, err = q.ExecContext(ctx, `
			INSERT INTO employee_advance_deductions (id, employee_db_id, month, amount, note, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(employee_db_id, month) DO UPDATE SET
				amount = excluded.amount,
				note = excluded.note,
				updated_at = excluded.updated_at
		`, deduction.ID, deduction.EmployeeDBID, deduction.Month, deduction.Amount.String(), deduction.Note, now, now)
		if err != nil {
			return fmt.Errorf("failed to upsert advance deduction: %w", err)
		}

		saved, err = scanAdvance(q.QueryRowContext(ctx, advanceSelect+`
			WHERE employee_db_id = ? AND month = ?
		`, deduction.EmployeeDBID, deduction.Month))
		if err != nil {
			return fmt.Errorf("failed to read advance deduction: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.AdvanceDeduction{}, err
	}

	return saved, nil
}
