package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/attendance"
	"github.com/flash-erp/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Dates are stored as text. Rows whose date does not start with YYYY-MM-DD
// are returned regardless of range so payroll can report them.
const attendanceSelect = `
	SELECT id, employee_id, date, COALESCE(status, ''), leave_type,
		   overtime_minutes, overtime_rate, late_minutes, late_deduction,
		   fine_amount, note
	FROM attendance_records
`

func scanAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var r attendance.Record
		if err := rows.Scan(
			&r.ID, &r.EmployeeKey, &r.Date, &r.Status, &r.LeaveType,
			&r.OvertimeMinutes, &r.OvertimeRate, &r.LateMinutes, &r.LateDeduction,
			&r.FineAmount, &r.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE (date >= $1 AND date < $2)
		   OR date !~ '^[0-9]{4}-[0-9]{2}-[0-9]{2}'
		ORDER BY date, id
	`

	rows, err := q.Query(ctx, query, start.Format(time.DateOnly), end.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return scanAttendance(rows)
}

// ListByEmployeeKey implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeKey(ctx context.Context, employeeKey string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE TRIM(employee_id) = $1
		  AND ((date >= $2 AND date < $3) OR date !~ '^[0-9]{4}-[0-9]{2}-[0-9]{2}')
		ORDER BY date, id
	`

	rows, err := q.Query(ctx, query, employeeKey, start.Format(time.DateOnly), end.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records for employee %s: %w", employeeKey, err)
	}
	return scanAttendance(rows)
}
