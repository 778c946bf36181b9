package http

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeHandler_CRUD(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t)

	w, resp := srv.do(t, http.MethodPost, "/api/v1/employees2", map[string]any{
		"serial_no":     "3",
		"fss_no":        " FSS-3 ",
		"name":          "Chaudhry Imran",
		"salary":        "28000",
		"category":      "Guards",
		"status":        "Active",
		"bank_accounts": `[{"bank_name":"UBL","account_number":55012}]`,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := resp["data"].(map[string]interface{})
	id := created["id"].(float64)
	assert.Equal(t, "FSS-3", created["attendance_key"])
	assert.Equal(t, "UBL", created["bank_name"])
	assert.Equal(t, "55012", created["bank_account_number"])
	assert.NotNil(t, created["created_at"])

	w, resp = srv.do(t, http.MethodGet, "/api/v1/employees2?search=imran", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), list["total_count"])
	assert.Equal(t, "1-1 of 1", list["showing"])
	require.Len(t, list["employees"], 1)

	w, resp = srv.do(t, http.MethodGet, "/api/v1/employees2?limit=2&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(4), list["total_count"])
	assert.Equal(t, float64(2), list["total_pages"])
	assert.Equal(t, "3-4 of 4", list["showing"])
	page := list["employees"].([]interface{})
	require.Len(t, page, 2)
	assert.Equal(t, "No Serial", page[0].(map[string]interface{})["name"])

	w, resp = srv.do(t, http.MethodGet, "/api/v1/employees2/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"Guards"}, resp["data"])

	w, resp = srv.do(t, http.MethodPut, "/api/v1/employees2/11", map[string]any{"status": "Left", "mobile_no": "0301-5555555"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := resp["data"].(map[string]interface{})
	assert.Equal(t, "Left", updated["status"])
	assert.Equal(t, "0301-5555555", updated["mobile_no"])
	assert.Equal(t, "Asad Ali", updated["name"], "fields absent from the request are kept")
	assert.Equal(t, "HBL", updated["bank_name"])

	w, resp = srv.do(t, http.MethodGet, "/api/v1/employees2/statuses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"Active", "Left"}, resp["data"])

	w, _ = srv.do(t, http.MethodDelete, "/api/v1/employees2/"+formatID(id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = srv.do(t, http.MethodGet, "/api/v1/employees2/"+formatID(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = srv.do(t, http.MethodDelete, "/api/v1/employees2/"+formatID(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployeeHandler_Errors(t *testing.T) {
	srv := newTestServer(t)

	w, resp := srv.do(t, http.MethodPost, "/api/v1/employees2", map[string]any{"name": "  ", "bank_accounts": "HBL"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "bank_accounts")

	w, _ = srv.do(t, http.MethodGet, "/api/v1/employees2/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = srv.do(t, http.MethodPut, "/api/v1/employees2/999", map[string]any{"status": "Left"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = srv.do(t, http.MethodGet, "/api/v1/employees2?limit=1000", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEmployeeHandler_NewEmployeeJoinsRangeReport(t *testing.T) {
	srv := newTestServer(t)

	w, _ := srv.do(t, http.MethodPost, "/api/v1/employees2", map[string]any{"serial_no": "1", "name": "Dawood", "salary": "31000"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := srv.do(t, http.MethodGet, "/api/v1/payroll2/range-report?from_date=2025-01-01&to_date=2099-12-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := resp["data"].(map[string]interface{})["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Dawood", rows[0].(map[string]interface{})["name"])
}

func formatID(id float64) string {
	return strconv.FormatInt(int64(id), 10)
}
