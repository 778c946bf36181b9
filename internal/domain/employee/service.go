package employee

import "context"

// EmployeeService defines business logic for the payroll roster
type EmployeeService interface {
	// ListEmployees lists the roster with search, category and status filters
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee changes only the fields present in the request
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee together with their sheet entries and advance deductions
	DeleteEmployee(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]string, error)
	ListStatuses(ctx context.Context) ([]string, error)
}
