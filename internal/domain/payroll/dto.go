package payroll

import (
	"github.com/flash-erp/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RANGE REPORT ==========

type RangeReportRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Month    string `json:"month,omitempty"` // Empty = month of to_date
}

func (r *RangeReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.Month != "" && !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== SHEET ENTRY DTOs ==========

type SheetEntryKey struct {
	EmployeeDBID int64  `json:"employee_db_id"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
}

func (k *SheetEntryKey) Validate() error {
	var errs validator.ValidationErrors
	k.validateInto(&errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (k *SheetEntryKey) validateInto(errs *validator.ValidationErrors) {
	if k.EmployeeDBID <= 0 {
		*errs = append(*errs, validator.ValidationError{Field: "employee_db_id", Message: "is required"})
	}
	from, fromOK := validator.IsValidDate(k.FromDate)
	if !fromOK {
		*errs = append(*errs, validator.ValidationError{Field: "from_date", Message: "must be in YYYY-MM-DD format"})
	}
	to, toOK := validator.IsValidDate(k.ToDate)
	if !toOK {
		*errs = append(*errs, validator.ValidationError{Field: "to_date", Message: "must be in YYYY-MM-DD format"})
	}
	if fromOK && toOK && from.After(to) {
		*errs = append(*errs, validator.ValidationError{Field: "to_date", Message: "must be on or after from_date"})
	}
}

type UpsertSheetEntryRequest struct {
	SheetEntryKey
	PreDays             *int            `json:"pre_days,omitempty"`
	CurDays             *int            `json:"cur_days,omitempty"`
	LeaveEncashmentDays int             `json:"leave_encashment_days"`
	AllowOther          decimal.Decimal `json:"allow_other"`
	EOBI                decimal.Decimal `json:"eobi"`
	Tax                 decimal.Decimal `json:"tax"`
	FineAdvExtra        decimal.Decimal `json:"fine_adv_extra"`
	Remarks             *string         `json:"remarks,omitempty"`
	BankCash            *string         `json:"bank_cash,omitempty"`
}

func (r *UpsertSheetEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	r.SheetEntryKey.validateInto(&errs)

	if r.PreDays != nil && *r.PreDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "pre_days", Message: "must be non-negative"})
	}
	if r.CurDays != nil && *r.CurDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "cur_days", Message: "must be non-negative"})
	}
	if r.AllowOther.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allow_other", Message: "must be non-negative"})
	}
	if r.EOBI.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "eobi", Message: "must be non-negative"})
	}
	if r.Tax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tax", Message: "must be non-negative"})
	}
	if r.FineAdvExtra.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fine_adv_extra", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SheetEntryResponse struct {
	ID                  string          `json:"id"`
	EmployeeDBID        int64           `json:"employee_db_id"`
	FromDate            string          `json:"from_date"`
	ToDate              string          `json:"to_date"`
	PreDays             *int            `json:"pre_days"`
	CurDays             *int            `json:"cur_days"`
	LeaveEncashmentDays int             `json:"leave_encashment_days"`
	AllowOther          decimal.Decimal `json:"allow_other"`
	EOBI                decimal.Decimal `json:"eobi"`
	Tax                 decimal.Decimal `json:"tax"`
	FineAdvExtra        decimal.Decimal `json:"fine_adv_extra"`
	Remarks             *string         `json:"remarks"`
	BankCash            *string         `json:"bank_cash"`
	UpdatedAt           string          `json:"updated_at"`
}

// ========== ADVANCE DEDUCTION DTOs ==========

type UpsertAdvanceDeductionRequest struct {
	EmployeeDBID int64           `json:"employee_db_id"`
	Month        string          `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
	Note         *string         `json:"note,omitempty"`
}

func (r *UpsertAdvanceDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeDBID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_db_id", Message: "is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceDeductionResponse struct {
	ID           string          `json:"id"`
	EmployeeDBID int64           `json:"employee_db_id"`
	Month        string          `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
	Note         *string         `json:"note,omitempty"`
	UpdatedAt    string          `json:"updated_at"`
}

// ValidateMonth checks a "YYYY-MM" month label passed as a query parameter.
func ValidateMonth(month string) error {
	if !validator.IsValidMonth(month) {
		return validator.ValidationErrors{{Field: "month", Message: "must be in YYYY-MM format"}}
	}
	return nil
}
