package attendance

import (
	"github.com/flash-erp/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeAttendanceRequest struct {
	EmployeeKey string `json:"employee_key"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
}

func (r *EmployeeAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeKey) {
		errs = append(errs, validator.ValidationError{Field: "employee_key", Message: "is required"})
	}
	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be in YYYY-MM-DD format"})
	}
	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be in YYYY-MM-DD format"})
	}
	if fromOK && toOK && from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be on or after from_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayResponse is one calendar day in an employee's attendance view. Days
// without an entry are reported as unmarked.
type DayResponse struct {
	Date            string           `json:"date"`
	Status          Status           `json:"status"`
	LeaveKind       LeaveKind        `json:"leave_kind,omitempty"`
	Recognized      bool             `json:"recognized"`
	OvertimeMinutes int              `json:"overtime_minutes"`
	OvertimeRate    *decimal.Decimal `json:"overtime_rate,omitempty"`
	LateMinutes     int              `json:"late_minutes"`
	LateDeduction   *decimal.Decimal `json:"late_deduction,omitempty"`
	FineAmount      *decimal.Decimal `json:"fine_amount,omitempty"`
	Note            *string          `json:"note,omitempty"`
}

type AttendanceTotals struct {
	Present     int `json:"present"`
	Late        int `json:"late"`
	Absent      int `json:"absent"`
	PaidLeave   int `json:"paid_leave"`
	UnpaidLeave int `json:"unpaid_leave"`
	Unmarked    int `json:"unmarked"`
}

type EmployeeAttendanceResponse struct {
	EmployeeKey string           `json:"employee_key"`
	FromDate    string           `json:"from_date"`
	ToDate      string           `json:"to_date"`
	Days        []DayResponse    `json:"days"`
	Totals      AttendanceTotals `json:"totals"`
	Skipped     int              `json:"skipped"`
}
