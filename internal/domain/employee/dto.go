package employee

import (
	"encoding/json"
	"strings"

	"github.com/flash-erp/erp-backend-go/internal/pkg/validator"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ========== LIST ==========

type EmployeeFilter struct {
	Search   *string // name, FSS no, CNIC, mobile or serial contains
	Category *string
	Status   *string
	Page     int
	Limit    int
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be at least 1"})
	}
	if f.Limit < 1 || f.Limit > MaxListLimit {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 1 and 500"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Offset is the number of rows skipped before the requested page.
func (f EmployeeFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

// ========== CREATE / UPDATE ==========

type CreateEmployeeRequest struct {
	SerialNo     string `json:"serial_no"`
	FSSNo        string `json:"fss_no"`
	Name         string `json:"name"`
	CNIC         string `json:"cnic"`
	EOBINo       string `json:"eobi_no"`
	Salary       string `json:"salary"`
	MobileNo     string `json:"mobile_no"`
	HomeContact  string `json:"home_contact"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	BankAccounts string `json:"bank_accounts"` // JSON array text
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !isBankAccountsJSON(r.BankAccounts) {
		errs = append(errs, validator.ValidationError{Field: "bank_accounts", Message: "must be a JSON array"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEmployee builds the roster row to insert. Values are trimmed.
func (r CreateEmployeeRequest) ToEmployee() Employee {
	return Employee{
		SerialNo:     strings.TrimSpace(r.SerialNo),
		FSSNo:        strings.TrimSpace(r.FSSNo),
		Name:         strings.TrimSpace(r.Name),
		CNIC:         strings.TrimSpace(r.CNIC),
		EOBINo:       strings.TrimSpace(r.EOBINo),
		Salary:       strings.TrimSpace(r.Salary),
		MobileNo:     strings.TrimSpace(r.MobileNo),
		HomeContact:  strings.TrimSpace(r.HomeContact),
		Category:     strings.TrimSpace(r.Category),
		Status:       strings.TrimSpace(r.Status),
		BankAccounts: strings.TrimSpace(r.BankAccounts),
	}
}

// UpdateEmployeeRequest is a partial update: nil fields are left unchanged,
// an empty string clears the field.
type UpdateEmployeeRequest struct {
	ID           int64   `json:"-"`
	SerialNo     *string `json:"serial_no,omitempty"`
	FSSNo        *string `json:"fss_no,omitempty"`
	Name         *string `json:"name,omitempty"`
	CNIC         *string `json:"cnic,omitempty"`
	EOBINo       *string `json:"eobi_no,omitempty"`
	Salary       *string `json:"salary,omitempty"`
	MobileNo     *string `json:"mobile_no,omitempty"`
	HomeContact  *string `json:"home_contact,omitempty"`
	Category     *string `json:"category,omitempty"`
	Status       *string `json:"status,omitempty"`
	BankAccounts *string `json:"bank_accounts,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be blank"})
	}
	if r.BankAccounts != nil && !isBankAccountsJSON(*r.BankAccounts) {
		errs = append(errs, validator.ValidationError{Field: "bank_accounts", Message: "must be a JSON array"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the fields present in the request onto e.
func (r UpdateEmployeeRequest) Apply(e *Employee) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&e.SerialNo, r.SerialNo)
	set(&e.FSSNo, r.FSSNo)
	set(&e.Name, r.Name)
	set(&e.CNIC, r.CNIC)
	set(&e.EOBINo, r.EOBINo)
	set(&e.Salary, r.Salary)
	set(&e.MobileNo, r.MobileNo)
	set(&e.HomeContact, r.HomeContact)
	set(&e.Category, r.Category)
	set(&e.Status, r.Status)
	set(&e.BankAccounts, r.BankAccounts)
}

// Blank bank accounts are allowed and stored as NULL.
func isBankAccountsJSON(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	var accounts []json.RawMessage
	return json.Unmarshal([]byte(s), &accounts) == nil
}

// ========== RESPONSE ==========

type EmployeeResponse struct {
	ID                int64   `json:"id"`
	AttendanceKey     string  `json:"attendance_key"`
	SerialNo          string  `json:"serial_no"`
	FSSNo             string  `json:"fss_no"`
	Name              string  `json:"name"`
	CNIC              string  `json:"cnic"`
	EOBINo            string  `json:"eobi_no"`
	Salary            string  `json:"salary"`
	MobileNo          string  `json:"mobile_no"`
	HomeContact       string  `json:"home_contact"`
	Category          string  `json:"category"`
	Status            string  `json:"status"`
	BankAccounts      string  `json:"bank_accounts"`
	BankName          string  `json:"bank_name"`
	BankAccountNumber string  `json:"bank_account_number"`
	CreatedAt         *string `json:"created_at"`
	UpdatedAt         *string `json:"updated_at"`
}
