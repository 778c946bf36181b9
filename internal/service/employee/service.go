package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// operatorFromContext returns the username of the authenticated operator, if any.
func operatorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", filter.Offset()+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 || len(responses) == 0 {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, req.ToEmployee())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created",
		"employee_db_id", created.ID,
		"attendance_key", created.AttendanceKey(),
		"operator", operatorFromContext(ctx),
	)

	return toEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	previousKey := emp.AttendanceKey()
	req.Apply(&emp)

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if key := updated.AttendanceKey(); key != previousKey {
		slog.Warn("employee attendance key changed, earlier attendance stays under the old key",
			"employee_db_id", updated.ID,
			"old_key", previousKey,
			"new_key", key,
		)
	}
	slog.Info("employee updated",
		"employee_db_id", updated.ID,
		"operator", operatorFromContext(ctx),
	)

	return toEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("employee deleted",
		"employee_db_id", id,
		"operator", operatorFromContext(ctx),
	)
	return nil
}

// ListCategories implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	return s.employeeRepo.ListCategories(ctx)
}

// ListStatuses implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListStatuses(ctx context.Context) ([]string, error) {
	return s.employeeRepo.ListStatuses(ctx)
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	bank := e.PrimaryBankAccount()
	return employee.EmployeeResponse{
		ID:                e.ID,
		AttendanceKey:     e.AttendanceKey(),
		SerialNo:          e.SerialNo,
		FSSNo:             e.FSSNo,
		Name:              e.Name,
		CNIC:              e.CNIC,
		EOBINo:            e.EOBINo,
		Salary:            e.Salary,
		MobileNo:          e.MobileNo,
		HomeContact:       e.HomeContact,
		Category:          e.Category,
		Status:            e.Status,
		BankAccounts:      e.BankAccounts,
		BankName:          bank.BankName,
		BankAccountNumber: bank.AccountNumber,
		CreatedAt:         formatTime(e.CreatedAt),
		UpdatedAt:         formatTime(e.UpdatedAt),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
