package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

const attendanceSelect = `
	SELECT id, employee_id, date, COALESCE(status, ''), leave_type,
		overtime_minutes, overtime_rate, late_minutes, late_deduction,
		fine_amount, note
	FROM attendance_records
`

// Rows whose date does not start with YYYY-MM-DD are returned regardless of
// range so payroll can report them.
const malformedDate = `date NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]*'`

func (r *attendanceRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	query := attendanceSelect + `
		WHERE (date >= ? AND date < ?) OR ` + malformedDate + `
		ORDER BY date, id
	`
	return r.query(ctx, query, start.Format(time.DateOnly), end.Format(time.DateOnly))
}

func (r *attendanceRepository) ListByEmployeeKey(ctx context.Context, employeeKey string, start, end time.Time) ([]attendance.Record, error) {
	query := attendanceSelect + `
		WHERE TRIM(employee_id) = ?
		  AND ((date >= ? AND date < ?) OR ` + malformedDate + `)
		ORDER BY date, id
	`
	return r.query(ctx, query, employeeKey, start.Format(time.DateOnly), end.Format(time.DateOnly))
}

func (r *attendanceRepository) query(ctx context.Context, query string, args ...any) ([]attendance.Record, error) {
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var (
			rec                                     attendance.Record
			leaveType, note                         sql.NullString
			overtimeMinutes, lateMinutes            sql.NullString
			overtimeRate, lateDeduction, fineAmount sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeKey, &rec.Date, &rec.Status, &leaveType,
			&overtimeMinutes, &overtimeRate, &lateMinutes, &lateDeduction,
			&fineAmount, &note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		rec.LeaveType = nullStringPtr(leaveType)
		rec.Note = nullStringPtr(note)
		rec.OvertimeMinutes = lenientIntPtr(overtimeMinutes)
		rec.LateMinutes = lenientIntPtr(lateMinutes)
		rec.OvertimeRate = lenientDecimalPtr(overtimeRate)
		rec.LateDeduction = lenientDecimalPtr(lateDeduction)
		rec.FineAmount = lenientDecimalPtr(fineAmount)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}
