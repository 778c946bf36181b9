package attendance

import (
	"context"
	"log/slog"
	"strings"

	"github.com/flash-erp/erp-backend-go/internal/domain/attendance"
	"github.com/flash-erp/erp-backend-go/internal/domain/payroll"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{AttendanceRepository: attendanceRepo}
}

// ListEmployeeAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListEmployeeAttendance(ctx context.Context, req attendance.EmployeeAttendanceRequest) (attendance.EmployeeAttendanceResponse, error) {
	req.EmployeeKey = strings.TrimSpace(req.EmployeeKey)
	if err := req.Validate(); err != nil {
		return attendance.EmployeeAttendanceResponse{}, err
	}

	period, err := payroll.ParsePeriod(req.FromDate, req.ToDate)
	if err != nil {
		return attendance.EmployeeAttendanceResponse{}, err
	}

	records, err := a.AttendanceRepository.ListByEmployeeKey(ctx, req.EmployeeKey, period.Start, period.End)
	if err != nil {
		return attendance.EmployeeAttendanceResponse{}, err
	}

	// Same day resolution as payroll: later entries replace earlier ones.
	byDay := make(map[string]attendance.Record, len(records))
	skipped := 0
	for _, rec := range records {
		day, err := rec.Day()
		if err != nil {
			skipped++
			continue
		}
		byDay[day.Format(payroll.DateLayout)] = rec
	}
	if skipped > 0 {
		slog.Warn("attendance entries with malformed dates skipped",
			"employee_key", req.EmployeeKey,
			"skipped", skipped,
		)
	}

	resp := attendance.EmployeeAttendanceResponse{
		EmployeeKey: req.EmployeeKey,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		Days:        make([]attendance.DayResponse, 0, period.WorkingDays()),
		Skipped:     skipped,
	}

	for _, day := range period.Days() {
		d := day.Format(payroll.DateLayout)
		rec, ok := byDay[d]
		if !ok {
			resp.Days = append(resp.Days, attendance.DayResponse{Date: d, Status: attendance.StatusUnmarked, Recognized: true})
			resp.Totals.Unmarked++
			continue
		}

		c := rec.Classify()
		resp.Days = append(resp.Days, toDayResponse(d, rec, c))

		switch c.Status {
		case attendance.StatusUnmarked:
			resp.Totals.Unmarked++
		case attendance.StatusPresent:
			resp.Totals.Present++
		case attendance.StatusLate:
			resp.Totals.Late++
		case attendance.StatusAbsent:
			resp.Totals.Absent++
		case attendance.StatusLeave:
			if c.PaidLeave() {
				resp.Totals.PaidLeave++
			} else {
				resp.Totals.UnpaidLeave++
			}
		}
	}

	return resp, nil
}

func toDayResponse(date string, rec attendance.Record, c attendance.Classification) attendance.DayResponse {
	day := attendance.DayResponse{
		Date:          date,
		Status:        c.Status,
		LeaveKind:     c.LeaveKind,
		Recognized:    c.Known(),
		OvertimeRate:  rec.OvertimeRate,
		LateDeduction: rec.LateDeduction,
		FineAmount:    rec.FineAmount,
		Note:          rec.Note,
	}
	if rec.OvertimeMinutes != nil {
		day.OvertimeMinutes = *rec.OvertimeMinutes
	}
	if rec.LateMinutes != nil {
		day.LateMinutes = *rec.LateMinutes
	}
	return day
}
