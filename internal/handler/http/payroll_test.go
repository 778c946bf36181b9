package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flash-erp/erp-backend-go/internal/pkg/jwt"
	"github.com/flash-erp/erp-backend-go/internal/repository/sqlite"
	attendanceService "github.com/flash-erp/erp-backend-go/internal/service/attendance"
	employeeService "github.com/flash-erp/erp-backend-go/internal/service/employee"
	payrollService "github.com/flash-erp/erp-backend-go/internal/service/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
)

type testServer struct {
	router http.Handler
	store  *sqlite.Store
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	employeeRepo := sqlite.NewEmployeeRepository(store)
	attendanceRepo := sqlite.NewAttendanceRepository(store)
	payrollRepo := sqlite.NewPayrollRepository(store)

	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	token, _, err := jwtSvc.GenerateAccessToken("payroll-clerk", "operator")
	require.NoError(t, err)

	router := NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		jwtSvc,
		NewPayrollHandler(payrollService.NewPayrollService(payrollRepo, employeeRepo, attendanceRepo)),
		NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo)),
		NewEmployeeHandler(employeeService.NewEmployeeService(employeeRepo)),
	)

	return &testServer{router: router, store: store, token: token}
}

func (s *testServer) seed(t *testing.T) {
	t.Helper()
	_, err := s.store.DB().Exec(`
		INSERT INTO employees2 (id, serial_no, fss_no, name, cnic, salary, mobile_no, bank_accounts) VALUES
			(10, '2', 'FSS-2', 'Bilal Khan', '35202-0000000-2', '31000', '0300-2222222', NULL),
			(11, '1', 'FSS-1', 'Asad Ali', '35202-0000000-1', '30000', '', '[{"bank_name":"HBL","account_number":"0099"}]'),
			(12, 'x', '', 'No Serial', '', 'n/a', '', 'not json');

		INSERT INTO attendance_records (employee_id, date, status, leave_type, overtime_minutes, overtime_rate, late_deduction) VALUES
			('FSS-1', '2025-01-01', 'present', NULL, 120, '150', NULL),
			('FSS-1', '2025-01-02', 'late', NULL, NULL, NULL, '200'),
			('FSS-1', '2025-01-03', 'leave', 'paid', NULL, NULL, NULL),
			('FSS-2', '2025-01-01', 'absent', NULL, NULL, NULL, NULL),
			('FSS-2', '2025-01-02', 'leave', 'unpaid', NULL, NULL, NULL),
			('FSS-2', '2025-01-3x', 'present', NULL, NULL, NULL, NULL);
	`)
	require.NoError(t, err)
}

func (s *testServer) do(t *testing.T, method, target string, body any) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	}
	return w, resp
}

func TestPayrollHandler_RangeReport(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t)

	w, resp := srv.do(t, http.MethodGet, "/api/v1/payroll2/range-report?from_date=2025-01-01&to_date=2025-01-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "2025-01", data["month"])

	rows := data["rows"].([]interface{})
	require.Len(t, rows, 3)

	first := rows[0].(map[string]interface{})
	assert.Equal(t, "FSS-1", first["employee_id"])
	assert.Equal(t, "HBL", first["bank_name"])
	assert.Equal(t, float64(3), first["presents_total"])
	assert.Equal(t, float64(30), first["working_days"])
	// 3 days at 1000 plus 2h overtime at 150/h, less 200 late deduction
	assert.Equal(t, "3300", first["gross_pay"])
	assert.Equal(t, "3100", first["net_pay"])
	assert.Equal(t, []interface{}{"01 Jan", "02 Jan (L)"}, first["present_dates_cur"])

	second := rows[1].(map[string]interface{})
	assert.Equal(t, "FSS-2", second["employee_id"])
	assert.Equal(t, float64(0), second["presents_total"])

	third := rows[2].(map[string]interface{})
	assert.Equal(t, "x", third["employee_id"])
	assert.Equal(t, "0", third["base_salary"])
	assert.Equal(t, "", third["bank_name"])

	warnings := data["warnings"].([]interface{})
	require.Len(t, warnings, 1)
	assert.Equal(t, "malformed_record", warnings[0].(map[string]interface{})["kind"])
}

func TestPayrollHandler_RangeReport_Errors(t *testing.T) {
	srv := newTestServer(t)

	w, resp := srv.do(t, http.MethodGet, "/api/v1/payroll2/range-report?from_date=2025-02-01&to_date=2025-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", resp["error"].(map[string]interface{})["code"])

	w, resp = srv.do(t, http.MethodGet, "/api/v1/payroll2/range-report?from_date=yesterday", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "from_date")
	assert.Contains(t, details, "to_date")
}

func TestPayrollHandler_RequiresToken(t *testing.T) {
	srv := newTestServer(t)
	srv.token = ""

	w, resp := srv.do(t, http.MethodGet, "/api/v1/payroll2/range-report?from_date=2025-01-01&to_date=2025-01-31", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp["success"].(bool))

	srv.token = "not-a-jwt"
	w, _ = srv.do(t, http.MethodGet, "/api/v1/payroll2/range-report?from_date=2025-01-01&to_date=2025-01-31", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPayrollHandler_SheetEntries(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t)

	body := map[string]any{
		"employee_db_id":        11,
		"from_date":             "2025-01-01",
		"to_date":               "2025-01-31",
		"leave_encashment_days": 2,
		"tax":                   "500",
		"remarks":               "encashed",
	}
	w, resp := srv.do(t, http.MethodPut, "/api/v1/payroll2/sheet-entries", body)
	require.Equal(t, http.StatusOK, w.Code)
	saved := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, saved["id"])
	assert.Equal(t, "500", saved["tax"])

	w, resp = srv.do(t, http.MethodGet, "/api/v1/payroll2/sheet-entries/11?from_date=2025-01-01&to_date=2025-01-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, saved["id"], resp["data"].(map[string]interface{})["id"])

	w, resp = srv.do(t, http.MethodGet, "/api/v1/payroll2/range-report?from_date=2025-01-01&to_date=2025-01-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := resp["data"].(map[string]interface{})["rows"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(5), first["total_days"])
	assert.Equal(t, "4600", first["net_pay"])

	w, _ = srv.do(t, http.MethodDelete, "/api/v1/payroll2/sheet-entries/11?from_date=2025-01-01&to_date=2025-01-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = srv.do(t, http.MethodGet, "/api/v1/payroll2/sheet-entries/11?from_date=2025-01-01&to_date=2025-01-31", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = srv.do(t, http.MethodGet, "/api/v1/payroll2/sheet-entries/abc?from_date=2025-01-01&to_date=2025-01-31", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["employee_db_id"] = 404
	w, _ = srv.do(t, http.MethodPut, "/api/v1/payroll2/sheet-entries", body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	body["employee_db_id"] = 11
	body["leave_encashment_days"] = -1
	body["tax"] = "-5"
	w, resp = srv.do(t, http.MethodPut, "/api/v1/payroll2/sheet-entries", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, resp["error"].(map[string]interface{})["details"], "tax")
}

func TestPayrollHandler_AdvanceDeductions(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t)

	w, _ := srv.do(t, http.MethodPut, "/api/v1/payroll2/advance-deductions", map[string]any{
		"employee_db_id": 11, "month": "2025-01", "amount": "750.50",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := srv.do(t, http.MethodGet, "/api/v1/payroll2/advance-deductions?month=2025-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "750.5", list[0].(map[string]interface{})["amount"])

	w, resp = srv.do(t, http.MethodGet, "/api/v1/payroll2/range-report?from_date=2025-01-01&to_date=2025-01-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := resp["data"].(map[string]interface{})["rows"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "750.5", first["advance_deduction"])
	assert.Equal(t, "2349.5", first["net_pay"])

	w, _ = srv.do(t, http.MethodGet, "/api/v1/payroll2/advance-deductions?month=January", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPayrollHandler_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/payroll2/sheet-entries", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+srv.token)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_ListEmployeeAttendance(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t)

	w, resp := srv.do(t, http.MethodGet, "/api/v1/attendance/FSS-1?from_date=2025-01-01&to_date=2025-01-05", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["days"], 4)
	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, float64(1), totals["present"])
	assert.Equal(t, float64(1), totals["late"])
	assert.Equal(t, float64(1), totals["paid_leave"])
	assert.Equal(t, float64(1), totals["unmarked"])

	w, resp = srv.do(t, http.MethodGet, "/api/v1/attendance/FSS-2?from_date=2025-01-01&to_date=2025-01-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["data"].(map[string]interface{})["skipped"])
}
