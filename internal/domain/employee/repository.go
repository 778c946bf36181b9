package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	// ListForPayroll returns employees created on or before cutoff, plus
	// employees with no creation timestamp.
	ListForPayroll(ctx context.Context, cutoff time.Time) ([]Employee, error)

	// List returns one page of the roster ordered by id, and the number of
	// employees matching the filter.
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error

	// ListCategories and ListStatuses return the distinct non-blank values in use.
	ListCategories(ctx context.Context) ([]string, error)
	ListStatuses(ctx context.Context) ([]string, error)
}
