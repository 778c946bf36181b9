package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployee_AttendanceKey(t *testing.T) {
	assert.Equal(t, "FSS-9", Employee{ID: 4, SerialNo: "12", FSSNo: " FSS-9 "}.AttendanceKey())
	assert.Equal(t, "12", Employee{ID: 4, SerialNo: "12"}.AttendanceKey())
	assert.Equal(t, "12", Employee{ID: 4, SerialNo: "12", FSSNo: "   "}.AttendanceKey())
	assert.Equal(t, "4", Employee{ID: 4}.AttendanceKey())
}

func TestEmployee_ContactNumber(t *testing.T) {
	assert.Equal(t, "0300-1234567", Employee{MobileNo: "0300-1234567", HomeContact: "042-111"}.ContactNumber())
	assert.Equal(t, "042-111", Employee{HomeContact: "042-111"}.ContactNumber())
	assert.Equal(t, "", Employee{}.ContactNumber())
}

func TestEmployee_PrimaryBankAccount(t *testing.T) {
	e := Employee{BankAccounts: `[{"bank_name":"HBL","account_number":"0012"},{"bank_name":"MCB","account_number":"99"}]`}
	assert.Equal(t, BankAccount{BankName: "HBL", AccountNumber: "0012"}, e.PrimaryBankAccount())

	assert.Equal(t, BankAccount{}, Employee{}.PrimaryBankAccount())
	assert.Equal(t, BankAccount{}, Employee{BankAccounts: "[]"}.PrimaryBankAccount())
	assert.Equal(t, BankAccount{}, Employee{BankAccounts: "not json"}.PrimaryBankAccount())
	assert.Equal(t, BankAccount{}, Employee{BankAccounts: `{"bank_name":"HBL"}`}.PrimaryBankAccount())
}

func TestEmployee_PrimaryBankAccount_NonStringValues(t *testing.T) {
	e := Employee{BankAccounts: `[{"bank_name":"HBL","account_number":1234567},{"bank_name":"MCB","account_number":"99"}]`}
	assert.Equal(t, BankAccount{BankName: "HBL", AccountNumber: "1234567"}, e.PrimaryBankAccount())

	e = Employee{BankAccounts: `[{"bank_name":"UBL","account_number":"0012","account_title":null}, 5]`}
	assert.Equal(t, BankAccount{BankName: "UBL", AccountNumber: "0012"}, e.PrimaryBankAccount())

	assert.Equal(t, BankAccount{}, Employee{BankAccounts: `["HBL"]`}.PrimaryBankAccount())
}
