package payroll

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/attendance"
	"github.com/flash-erp/erp-backend-go/internal/domain/employee"
	"github.com/flash-erp/erp-backend-go/internal/pkg/lenient"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// RosterInput is everything a payroll run reads, already fetched.
type RosterInput struct {
	Period       Period
	Month        string
	Employees    []employee.Employee
	Attendance   []attendance.Record
	SheetEntries []SheetEntry
	Advances     []AdvanceDeduction
}

// tally accumulates one employee's attendance over the walked days.
type tally struct {
	present, late, absent  int
	paidLeave, unpaidLeave int

	overtimeMinutes int
	overtimePay     decimal.Decimal
	overtimeRate    decimal.Decimal

	lateMinutes   int
	lateDeduction decimal.Decimal
	fines         decimal.Decimal

	datesPrev, datesCur []string
}

func newTally() tally {
	return tally{
		overtimePay:   decimal.Zero,
		overtimeRate:  decimal.Zero,
		lateDeduction: decimal.Zero,
		fines:         decimal.Zero,
		datesPrev:     []string{},
		datesCur:      []string{},
	}
}

func (t *tally) observe(day time.Time, rec attendance.Record, endMonth time.Month) {
	c := rec.Classify()
	switch c.Status {
	case attendance.StatusPresent:
		t.present++
		t.markDate(day, day.Format("02 Jan"), endMonth)
	case attendance.StatusLate:
		t.late++
		t.markDate(day, day.Format("02 Jan")+" (L)", endMonth)
	case attendance.StatusAbsent:
		t.absent++
	case attendance.StatusLeave:
		if c.PaidLeave() {
			t.paidLeave++
		} else {
			t.unpaidLeave++
		}
	}

	minutes := intValue(rec.OvertimeMinutes)
	rate := decimalValue(rec.OvertimeRate)
	if minutes != 0 && !rate.IsZero() {
		t.overtimeMinutes += minutes
		t.overtimePay = t.overtimePay.Add(decimal.NewFromInt(int64(minutes)).Mul(rate).Div(sixty))
	}
	if rate.IsPositive() {
		t.overtimeRate = rate
	}

	t.lateMinutes += intValue(rec.LateMinutes)
	t.lateDeduction = t.lateDeduction.Add(decimalValue(rec.LateDeduction))
	t.fines = t.fines.Add(decimalValue(rec.FineAmount))
}

func (t *tally) markDate(day time.Time, label string, endMonth time.Month) {
	if day.Month() == endMonth {
		t.datesCur = append(t.datesCur, label)
		return
	}
	t.datesPrev = append(t.datesPrev, label)
}

// Aggregate computes one employee's ledger row. records may contain entries for
// any day; only days in the period are walked. Entries with an unparsable
// date are skipped and reported as warnings. override may be nil.
func Aggregate(emp employee.Employee, period Period, records []attendance.Record, override *SheetEntry, advance decimal.Decimal) (LedgerRow, []Warning) {
	key := emp.AttendanceKey()
	byDay, warnings := indexByDay(emp, records)

	workingDays := period.WorkingDays()
	baseSalary := lenient.Decimal(emp.Salary)
	dayRate := decimal.Zero
	if workingDays > 0 {
		dayRate = baseSalary.Div(decimal.NewFromInt(int64(workingDays)))
	}

	t := newTally()
	endMonth := period.End.Month()
	for _, day := range period.Days() {
		rec, ok := byDay[day.Format(DateLayout)]
		if !ok {
			continue
		}
		t.observe(day, rec, endMonth)
	}

	var ov SheetEntry
	if override != nil {
		ov = *override
	}

	presentsTotal := t.present + t.late + t.paidLeave
	totalDays := presentsTotal + ov.LeaveEncashmentDays
	if totalDays < 0 {
		totalDays = 0
	}
	totalSalary := decimal.NewFromInt(int64(totalDays)).Mul(dayRate)

	allowOther := ov.AllowOther
	eobi := ov.EOBI
	tax := ov.Tax
	fineAdvExtra := ov.FineAdvExtra

	grossPay := totalSalary.Add(t.overtimePay).Add(allowOther)
	fineAdv := t.fines.Add(advance).Add(fineAdvExtra)
	netPay := grossPay.Sub(eobi).Sub(tax).Sub(fineAdv).Sub(t.lateDeduction)

	bank := emp.PrimaryBankAccount()

	return LedgerRow{
		EmployeeDBID:      emp.ID,
		EmployeeID:        key,
		Name:              emp.Name,
		SerialNo:          emp.SerialNo,
		FSSNo:             emp.FSSNo,
		EOBINo:            emp.EOBINo,
		CNIC:              emp.CNIC,
		MobileNo:          emp.ContactNumber(),
		BankName:          bank.BankName,
		BankAccountNumber: bank.AccountNumber,

		BaseSalary:  baseSalary,
		WorkingDays: workingDays,
		DayRate:     dayRate,

		PresentsTotal:    presentsTotal,
		PresentDatesPrev: t.datesPrev,
		PresentDatesCur:  t.datesCur,
		PresentDays:      t.present,
		LateDays:         t.late,
		AbsentDays:       t.absent,
		PaidLeaveDays:    t.paidLeave,
		UnpaidLeaveDays:  t.unpaidLeave,

		PreDays:             intValue(ov.PreDays),
		CurDays:             intValue(ov.CurDays),
		LeaveEncashmentDays: ov.LeaveEncashmentDays,

		TotalDays:   totalDays,
		TotalSalary: totalSalary,

		OvertimeMinutes: t.overtimeMinutes,
		OvertimeRate:    t.overtimeRate,
		OvertimePay:     t.overtimePay,

		LateMinutes:   t.lateMinutes,
		LateDeduction: t.lateDeduction,

		AllowOther: allowOther,
		GrossPay:   grossPay,

		EOBI:             eobi,
		Tax:              tax,
		FineDeduction:    t.fines,
		FineAdvExtra:     fineAdvExtra,
		FineAdv:          fineAdv,
		AdvanceDeduction: advance,

		NetPay: netPay,

		Remarks:  ov.Remarks,
		BankCash: ov.BankCash,
	}, warnings
}

// AggregateRoster computes a ledger row for every employee on the roster,
// ordered by numeric serial number, and totals them.
func AggregateRoster(in RosterInput) Report {
	employees := make([]employee.Employee, len(in.Employees))
	copy(employees, in.Employees)
	sort.SliceStable(employees, func(i, j int) bool {
		return lenient.SerialKey(employees[i].SerialNo) < lenient.SerialKey(employees[j].SerialNo)
	})

	recordsByKey := make(map[string][]attendance.Record)
	for _, rec := range in.Attendance {
		k := strings.TrimSpace(rec.EmployeeKey)
		recordsByKey[k] = append(recordsByKey[k], rec)
	}

	keys := make(map[int64]string, len(employees))
	for _, emp := range employees {
		keys[emp.ID] = emp.AttendanceKey()
	}

	warnings := []Warning{}

	entries := make(map[int64]*SheetEntry, len(in.SheetEntries))
	for i := range in.SheetEntries {
		e := &in.SheetEntries[i]
		if _, dup := entries[e.EmployeeDBID]; dup {
			warnings = append(warnings, Warning{
				Kind:         WarningDuplicateRecord,
				EmployeeDBID: e.EmployeeDBID,
				EmployeeID:   keys[e.EmployeeDBID],
				RecordID:     e.ID,
				Detail:       "more than one sheet entry for the period, the last one is used",
			})
		}
		entries[e.EmployeeDBID] = e
	}

	advances := make(map[int64]decimal.Decimal, len(in.Advances))
	for _, a := range in.Advances {
		advances[a.EmployeeDBID] = advances[a.EmployeeDBID].Add(a.Amount)
	}

	report := Report{
		Month: in.Month,
		Rows:  make([]LedgerRow, 0, len(employees)),
		Summary: Summary{
			Month:       in.Month,
			FromDate:    in.Period.Start.Format(DateLayout),
			ToDate:      in.Period.End.Format(DateLayout),
			WorkingDays: in.Period.WorkingDays(),
			TotalGross:  decimal.Zero,
			TotalNet:    decimal.Zero,
		},
	}

	for _, emp := range employees {
		row, w := Aggregate(emp, in.Period, recordsByKey[emp.AttendanceKey()], entries[emp.ID], advances[emp.ID])
		warnings = append(warnings, w...)

		report.Rows = append(report.Rows, row)
		report.Summary.TotalGross = report.Summary.TotalGross.Add(row.GrossPay)
		report.Summary.TotalNet = report.Summary.TotalNet.Add(row.NetPay)
		report.Summary.TotalPresents += row.PresentsTotal
	}

	report.Summary.Employees = len(report.Rows)
	report.Summary.Warnings = len(warnings)
	report.Warnings = warnings
	return report
}

// indexByDay keys an employee's records by calendar day. When two records
// share a day the later one wins.
func indexByDay(emp employee.Employee, records []attendance.Record) (map[string]attendance.Record, []Warning) {
	key := emp.AttendanceKey()
	byDay := make(map[string]attendance.Record, len(records))
	var warnings []Warning
	for _, rec := range records {
		day, err := rec.Day()
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:         WarningMalformedRecord,
				EmployeeDBID: emp.ID,
				EmployeeID:   key,
				RecordID:     strconv.FormatInt(rec.ID, 10),
				Detail:       err.Error(),
			})
			continue
		}
		d := day.Format(DateLayout)
		if _, dup := byDay[d]; dup {
			warnings = append(warnings, Warning{
				Kind:         WarningDuplicateRecord,
				EmployeeDBID: emp.ID,
				EmployeeID:   key,
				RecordID:     strconv.FormatInt(rec.ID, 10),
				Detail:       fmt.Sprintf("more than one attendance entry on %s, the last one is used", d),
			})
		}
		byDay[d] = rec
	}
	return byDay, warnings
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func decimalValue(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}
