package http

import (
	"net/http"

	"github.com/flash-erp/erp-backend-go/internal/domain/attendance"
	"github.com/flash-erp/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ListEmployeeAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// ListEmployeeAttendance returns one employee's classified attendance days.
func (h *attendanceHandlerImpl) ListEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	req := attendance.EmployeeAttendanceRequest{
		EmployeeKey: chi.URLParam(r, "employeeKey"),
		FromDate:    r.URL.Query().Get("from_date"),
		ToDate:      r.URL.Query().Get("to_date"),
	}

	result, err := h.attendanceService.ListEmployeeAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
