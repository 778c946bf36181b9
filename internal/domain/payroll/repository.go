package payroll

import (
	"context"
	"time"
)

// PayrollRepository stores the operator-maintained payroll inputs. Ledger rows
// themselves are never stored; they are recomputed on every request.
type PayrollRepository interface {
	// Sheet entries
	GetSheetEntriesByPeriod(ctx context.Context, from, to time.Time) ([]SheetEntry, error)
	GetSheetEntry(ctx context.Context, employeeDBID int64, from, to time.Time) (SheetEntry, error)
	UpsertSheetEntry(ctx context.Context, entry SheetEntry) (SheetEntry, error)
	DeleteSheetEntry(ctx context.Context, employeeDBID int64, from, to time.Time) error

	// Advance deductions
	GetAdvanceDeductionsByMonth(ctx context.Context, month string) ([]AdvanceDeduction, error)
	UpsertAdvanceDeduction(ctx context.Context, deduction AdvanceDeduction) (AdvanceDeduction, error)
}
