package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/employee"
	"github.com/flash-erp/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, COALESCE(serial_no, ''), COALESCE(fss_no, ''), COALESCE(name, ''),
	COALESCE(cnic, ''), COALESCE(eobi_no, ''), COALESCE(salary, ''),
	COALESCE(mobile_no, ''), COALESCE(home_contact, ''), COALESCE(category, ''),
	COALESCE(status, ''), COALESCE(bank_accounts::text, ''),
	created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.SerialNo, &e.FSSNo, &e.Name,
		&e.CNIC, &e.EOBINo, &e.Salary,
		&e.MobileNo, &e.HomeContact, &e.Category,
		&e.Status, &e.BankAccounts,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// ListForPayroll implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListForPayroll(ctx context.Context, cutoff time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees2
		WHERE created_at IS NULL OR created_at <= $1
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for payroll: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR fss_no ILIKE $%d OR cnic ILIKE $%d OR mobile_no ILIKE $%d OR serial_no ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Category != nil && *filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees2 WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM employees2
		WHERE %s
		ORDER BY id
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees2 WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository. Blank text columns are stored as NULL.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees2 (
			serial_no, fss_no, name, cnic, eobi_no, salary,
			mobile_no, home_contact, category, status, bank_accounts
		) VALUES (
			NULLIF($1, ''), NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
			NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, '')::jsonb
		)
		RETURNING ` + employeeColumns

	emp, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.SerialNo, newEmployee.FSSNo, newEmployee.Name, newEmployee.CNIC,
		newEmployee.EOBINo, newEmployee.Salary, newEmployee.MobileNo, newEmployee.HomeContact,
		newEmployee.Category, newEmployee.Status, newEmployee.BankAccounts,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return emp, nil
}

// Update implements employee.EmployeeRepository. Every editable column is written.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees2 SET
			serial_no = NULLIF($2, ''),
			fss_no = NULLIF($3, ''),
			name = NULLIF($4, ''),
			cnic = NULLIF($5, ''),
			eobi_no = NULLIF($6, ''),
			salary = NULLIF($7, ''),
			mobile_no = NULLIF($8, ''),
			home_contact = NULLIF($9, ''),
			category = NULLIF($10, ''),
			status = NULLIF($11, ''),
			bank_accounts = NULLIF($12, '')::jsonb,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.SerialNo, emp.FSSNo, emp.Name, emp.CNIC,
		emp.EOBINo, emp.Salary, emp.MobileNo, emp.HomeContact,
		emp.Category, emp.Status, emp.BankAccounts,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees2 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListCategories implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListCategories(ctx context.Context) ([]string, error) {
	return e.distinct(ctx, "category")
}

// ListStatuses implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListStatuses(ctx context.Context) ([]string, error) {
	return e.distinct(ctx, "status")
}

// column is one of the fixed names above, never user input.
func (e *employeeRepositoryImpl) distinct(ctx context.Context, column string) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		SELECT DISTINCT TRIM(%[1]s) FROM employees2
		WHERE %[1]s IS NOT NULL AND TRIM(%[1]s) <> ''
		ORDER BY 1
	`, column)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee %s values: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan employee %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
