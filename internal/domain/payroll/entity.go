package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SheetEntry is the operator's manual adjustment to one employee's payroll
// row for one exact period. PreDays and CurDays are informational only.
type SheetEntry struct {
	ID                  string
	EmployeeDBID        int64
	FromDate            time.Time
	ToDate              time.Time
	PreDays             *int
	CurDays             *int
	LeaveEncashmentDays int
	AllowOther          decimal.Decimal
	EOBI                decimal.Decimal
	Tax                 decimal.Decimal
	FineAdvExtra        decimal.Decimal
	Remarks             *string
	BankCash            *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// AdvanceDeduction is an amount recovered from an employee's pay for a month label ("2025-01").
type AdvanceDeduction struct {
	ID           string
	EmployeeDBID int64
	Month        string
	Amount       decimal.Decimal
	Note         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LedgerRow is the computed payroll for one employee in one period.
type LedgerRow struct {
	EmployeeDBID      int64  `json:"employee_db_id"`
	EmployeeID        string `json:"employee_id"`
	Name              string `json:"name"`
	SerialNo          string `json:"serial_no"`
	FSSNo             string `json:"fss_no"`
	EOBINo            string `json:"eobi_no"`
	CNIC              string `json:"cnic"`
	MobileNo          string `json:"mobile_no"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`

	BaseSalary  decimal.Decimal `json:"base_salary"`
	WorkingDays int             `json:"working_days"`
	DayRate     decimal.Decimal `json:"day_rate"`

	PresentsTotal    int      `json:"presents_total"`
	PresentDatesPrev []string `json:"present_dates_prev"`
	PresentDatesCur  []string `json:"present_dates_cur"`
	PresentDays      int      `json:"present_days"`
	LateDays         int      `json:"late_days"`
	AbsentDays       int      `json:"absent_days"`
	PaidLeaveDays    int      `json:"paid_leave_days"`
	UnpaidLeaveDays  int      `json:"unpaid_leave_days"`

	PreDays             int `json:"pre_days"`
	CurDays             int `json:"cur_days"`
	LeaveEncashmentDays int `json:"leave_encashment_days"`

	TotalDays   int             `json:"total_days"`
	TotalSalary decimal.Decimal `json:"total_salary"`

	OvertimeMinutes int             `json:"overtime_minutes"`
	OvertimeRate    decimal.Decimal `json:"overtime_rate"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`

	LateMinutes   int             `json:"late_minutes"`
	LateDeduction decimal.Decimal `json:"late_deduction"`

	AllowOther decimal.Decimal `json:"allow_other"`
	GrossPay   decimal.Decimal `json:"gross_pay"`

	EOBI             decimal.Decimal `json:"eobi"`
	Tax              decimal.Decimal `json:"tax"`
	FineDeduction    decimal.Decimal `json:"fine_deduction"`
	FineAdvExtra     decimal.Decimal `json:"fine_adv_extra"`
	FineAdv          decimal.Decimal `json:"fine_adv"`
	AdvanceDeduction decimal.Decimal `json:"advance_deduction"`

	NetPay decimal.Decimal `json:"net_pay"`

	Remarks  *string `json:"remarks"`
	BankCash *string `json:"bank_cash"`
}

// Summary totals a payroll run.
type Summary struct {
	Month         string          `json:"month"`
	FromDate      string          `json:"from_date"`
	ToDate        string          `json:"to_date"`
	WorkingDays   int             `json:"working_days"`
	Employees     int             `json:"employees"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
	TotalPresents int             `json:"total_presents"`
	Warnings      int             `json:"warnings"`
}

// Report is the result of aggregating a roster over a period.
type Report struct {
	Month    string      `json:"month"`
	Summary  Summary     `json:"summary"`
	Rows     []LedgerRow `json:"rows"`
	Warnings []Warning   `json:"warnings"`
}

// WarningKind names a data-quality problem that was skipped over.
type WarningKind string

const (
	WarningMalformedRecord WarningKind = "malformed_record"
	WarningDuplicateRecord WarningKind = "duplicate_record"
)

// Warning reports one skipped or overridden input record. Warnings never
// abort a payroll run. EmployeeID is the attendance key, as on LedgerRow;
// it is blank when the record belongs to no one on the roster.
type Warning struct {
	Kind         WarningKind `json:"kind"`
	EmployeeDBID int64       `json:"employee_db_id,omitempty"`
	EmployeeID   string      `json:"employee_id"`
	RecordID     string      `json:"record_id,omitempty"`
	Detail       string      `json:"detail"`
}
