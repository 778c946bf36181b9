package payroll

import "context"

// PayrollService defines business logic for the payroll sheet
type PayrollService interface {
	// RangeReport computes the payroll sheet for every eligible employee over [from_date, to_date)
	RangeReport(ctx context.Context, req RangeReportRequest) (Report, error)

	GetSheetEntry(ctx context.Context, key SheetEntryKey) (SheetEntryResponse, error)
	UpsertSheetEntry(ctx context.Context, req UpsertSheetEntryRequest) (SheetEntryResponse, error)
	DeleteSheetEntry(ctx context.Context, key SheetEntryKey) error

	ListAdvanceDeductions(ctx context.Context, month string) ([]AdvanceDeductionResponse, error)
	UpsertAdvanceDeduction(ctx context.Context, req UpsertAdvanceDeductionRequest) (AdvanceDeductionResponse, error)
}
