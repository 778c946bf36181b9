package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flash-erp/erp-backend-go/internal/domain/employee"
	"github.com/flash-erp/erp-backend-go/internal/domain/payroll"
	"github.com/flash-erp/erp-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidRange):
		BadRequest(w, err.Error(), map[string]string{"to_date": "must be on or after from_date"})
	case errors.Is(err, payroll.ErrSheetEntryNotFound):
		NotFound(w, "Payroll sheet entry not found")
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
