package attendance

import (
	"context"
	"time"
)

// AttendanceRepository reads attendance entries. Entries are written by the
// attendance entry screens, payroll only reads them.
type AttendanceRepository interface {
	// ListByDateRange returns every entry dated in [start, end).
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Record, error)

	// ListByEmployeeKey returns one employee's entries dated in [start, end), oldest first.
	ListByEmployeeKey(ctx context.Context, employeeKey string, start, end time.Time) ([]Record, error)
}
