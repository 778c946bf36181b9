package attendance

import "context"

// AttendanceService exposes read-only attendance views used by the payroll screens
type AttendanceService interface {
	// ListEmployeeAttendance returns one employee's classified days over [from_date, to_date)
	ListEmployeeAttendance(ctx context.Context, req EmployeeAttendanceRequest) (EmployeeAttendanceResponse, error)
}
