package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flash-erp/erp-backend-go/internal/domain/payroll"
	"github.com/flash-erp/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Report
	RangeReport(w http.ResponseWriter, r *http.Request)

	// Sheet entries
	GetSheetEntry(w http.ResponseWriter, r *http.Request)
	UpsertSheetEntry(w http.ResponseWriter, r *http.Request)
	DeleteSheetEntry(w http.ResponseWriter, r *http.Request)

	// Advance deductions
	ListAdvanceDeductions(w http.ResponseWriter, r *http.Request)
	UpsertAdvanceDeduction(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== REPORT ==========

func (h *payrollHandlerImpl) RangeReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := payroll.RangeReportRequest{
		FromDate: q.Get("from_date"),
		ToDate:   q.Get("to_date"),
		Month:    q.Get("month"),
	}

	result, err := h.payrollService.RangeReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SHEET ENTRIES ==========

func sheetEntryKeyFromRequest(r *http.Request) (payroll.SheetEntryKey, bool) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeId"), 10, 64)
	if err != nil || employeeID <= 0 {
		return payroll.SheetEntryKey{}, false
	}
	return payroll.SheetEntryKey{
		EmployeeDBID: employeeID,
		FromDate:     r.URL.Query().Get("from_date"),
		ToDate:       r.URL.Query().Get("to_date"),
	}, true
}

func (h *payrollHandlerImpl) GetSheetEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := sheetEntryKeyFromRequest(r)
	if !ok {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	result, err := h.payrollService.GetSheetEntry(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertSheetEntry(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertSheetEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpsertSheetEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll sheet entry saved", result)
}

func (h *payrollHandlerImpl) DeleteSheetEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := sheetEntryKeyFromRequest(r)
	if !ok {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	if err := h.payrollService.DeleteSheetEntry(r.Context(), key); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll sheet entry deleted", nil)
}

// ========== ADVANCE DEDUCTIONS ==========

func (h *payrollHandlerImpl) ListAdvanceDeductions(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListAdvanceDeductions(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertAdvanceDeduction(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertAdvanceDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpsertAdvanceDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance deduction saved", result)
}
