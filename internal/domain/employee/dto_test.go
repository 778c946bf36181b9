package employee

import (
	"testing"

	"github.com/flash-erp/erp-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := CreateEmployeeRequest{Name: "Hamid", BankAccounts: `[{"bank_name":"HBL"}]`}
	assert.NoError(t, req.Validate())

	req = CreateEmployeeRequest{Name: "Hamid"}
	assert.NoError(t, req.Validate(), "bank accounts are optional")

	req = CreateEmployeeRequest{BankAccounts: `{"bank_name":"HBL"}`}
	err := req.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, map[string]string{"name": "is required", "bank_accounts": "must be a JSON array"}, verrs.ToMap())
}

func TestUpdateEmployeeRequest_Apply(t *testing.T) {
	e := Employee{ID: 3, SerialNo: "3", Name: "Irfan", Salary: "25000", Status: "Active"}
	name, status := " Irfan Ahmed ", ""

	UpdateEmployeeRequest{ID: 3, Name: &name, Status: &status}.Apply(&e)

	assert.Equal(t, "Irfan Ahmed", e.Name)
	assert.Equal(t, "", e.Status)
	assert.Equal(t, "25000", e.Salary)
	assert.Equal(t, "3", e.SerialNo)
}

func TestEmployeeFilter_Validate(t *testing.T) {
	assert.NoError(t, (&EmployeeFilter{Page: 1, Limit: DefaultListLimit}).Validate())
	assert.Error(t, (&EmployeeFilter{Page: 1, Limit: MaxListLimit + 1}).Validate())
	assert.Error(t, (&EmployeeFilter{Page: 0, Limit: 10}).Validate())
	assert.Equal(t, 20, EmployeeFilter{Page: 3, Limit: 10}.Offset())
}
