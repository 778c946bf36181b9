package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one attendance entry for one employee on one calendar day.
// Date is kept as stored text; entries whose date cannot be parsed are
// skipped by payroll instead of failing the whole run.
type Record struct {
	ID              int64
	EmployeeKey     string
	Date            string
	Status          string
	LeaveType       *string
	OvertimeMinutes *int
	OvertimeRate    *decimal.Decimal
	LateMinutes     *int
	LateDeduction   *decimal.Decimal
	FineAmount      *decimal.Decimal
	Note            *string
}

const dateLayout = "2006-01-02"

// Day parses Date into a UTC calendar day. A trailing time component
// ("2025-01-02T00:00:00Z" or "2025-01-02 00:00:00") is ignored.
func (r Record) Day() (time.Time, error) {
	s := strings.TrimSpace(r.Date)
	if len(s) > len(dateLayout) && (s[len(dateLayout)] == 'T' || s[len(dateLayout)] == ' ') {
		s = s[:len(dateLayout)]
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, r.Date)
	}
	return d, nil
}

// Classify classifies the record's raw status and leave type.
func (r Record) Classify() Classification {
	lt := ""
	if r.LeaveType != nil {
		lt = *r.LeaveType
	}
	return Classify(r.Status, lt)
}
