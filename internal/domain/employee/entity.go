package employee

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Employee is a roster row as imported from the legacy staff sheets. Most
// columns are free text; Salary in particular is whatever the operator typed.
type Employee struct {
	ID           int64
	SerialNo     string
	FSSNo        string
	Name         string
	CNIC         string
	EOBINo       string
	Salary       string
	MobileNo     string
	HomeContact  string
	Category     string
	Status       string
	BankAccounts string // JSON array of BankAccount
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

// BankAccount is one element of Employee.BankAccounts.
type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountTitle  string `json:"account_title,omitempty"`
}

// AttendanceKey is the identifier attendance entries are filed under:
// the FSS number, else the serial number, else the database id.
func (e Employee) AttendanceKey() string {
	if k := strings.TrimSpace(e.FSSNo); k != "" {
		return k
	}
	if k := strings.TrimSpace(e.SerialNo); k != "" {
		return k
	}
	return strconv.FormatInt(e.ID, 10)
}

// ContactNumber returns the mobile number, falling back to the home contact.
func (e Employee) ContactNumber() string {
	if e.MobileNo != "" {
		return e.MobileNo
	}
	return e.HomeContact
}

// PrimaryBankAccount returns the first bank account on file. Values are taken
// as written, so a numeric account_number comes back as its digits. Missing or
// malformed BankAccounts yields a zero BankAccount.
func (e Employee) PrimaryBankAccount() BankAccount {
	if strings.TrimSpace(e.BankAccounts) == "" {
		return BankAccount{}
	}
	var accounts []json.RawMessage
	if err := json.Unmarshal([]byte(e.BankAccounts), &accounts); err != nil || len(accounts) == 0 {
		return BankAccount{}
	}

	dec := json.NewDecoder(bytes.NewReader(accounts[0]))
	dec.UseNumber()
	var first map[string]any
	if err := dec.Decode(&first); err != nil {
		return BankAccount{}
	}
	return BankAccount{
		BankName:      jsonText(first["bank_name"]),
		AccountNumber: jsonText(first["account_number"]),
		AccountTitle:  jsonText(first["account_title"]),
	}
}

func jsonText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
