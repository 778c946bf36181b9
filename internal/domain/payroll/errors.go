package payroll

import "errors"

var (
	ErrInvalidRange       = errors.New("from_date must be on or before to_date")
	ErrSheetEntryNotFound = errors.New("payroll sheet entry not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
)
