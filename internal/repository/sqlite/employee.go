package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
	now   func() time.Time
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store, now: time.Now}
}

const employeeSelect = `
	SELECT id, COALESCE(serial_no, ''), COALESCE(fss_no, ''), COALESCE(name, ''),
		COALESCE(cnic, ''), COALESCE(eobi_no, ''), COALESCE(salary, ''),
		COALESCE(mobile_no, ''), COALESCE(home_contact, ''), COALESCE(category, ''),
		COALESCE(status, ''), COALESCE(bank_accounts, ''),
		created_at, updated_at
	FROM employees2
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var (
		e                    employee.Employee
		createdAt, updatedAt sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.SerialNo, &e.FSSNo, &e.Name,
		&e.CNIC, &e.EOBINo, &e.Salary,
		&e.MobileNo, &e.HomeContact, &e.Category,
		&e.Status, &e.BankAccounts,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return e, err
	}
	e.CreatedAt = parseTimestamp(createdAt)
	e.UpdatedAt = parseTimestamp(updatedAt)
	return e, nil
}

// ListForPayroll filters on the parsed creation time rather than in SQL
// because created_at text written by older tools is not uniformly formatted.
func (r *employeeRepository) ListForPayroll(ctx context.Context, cutoff time.Time) ([]employee.Employee, error) {
	rows, err := r.store.db.QueryContext(ctx, employeeSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for payroll: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if e.CreatedAt != nil && e.CreatedAt.After(cutoff) {
			continue
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	conditions := []string{"1 = 1"}
	var args []any

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions,
			"(name LIKE ? OR fss_no LIKE ? OR cnic LIKE ? OR mobile_no LIKE ? OR serial_no LIKE ?)")
		term := "%" + *filter.Search + "%"
		args = append(args, term, term, term, term, term)
	}
	if filter.Category != nil && *filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees2`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset())
	rows, err := r.store.db.QueryContext(ctx, employeeSelect+where+` ORDER BY id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	return getEmployee(ctx, r.store.db, id)
}

func getEmployee(ctx context.Context, q querier, id int64) (employee.Employee, error) {
	e, err := scanEmployee(q.QueryRowContext(ctx, employeeSelect+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	var created employee.Employee
	now := formatTimestamp(r.now())

	err := r.store.withTx(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, `
			INSERT INTO employees2 (
				serial_no, fss_no, name, cnic, eobi_no, salary,
				mobile_no, home_contact, category, status, bank_accounts,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			nullIfEmpty(newEmployee.SerialNo), nullIfEmpty(newEmployee.FSSNo), nullIfEmpty(newEmployee.Name),
			nullIfEmpty(newEmployee.CNIC), nullIfEmpty(newEmployee.EOBINo), nullIfEmpty(newEmployee.Salary),
			nullIfEmpty(newEmployee.MobileNo), nullIfEmpty(newEmployee.HomeContact), nullIfEmpty(newEmployee.Category),
			nullIfEmpty(newEmployee.Status), nullIfEmpty(newEmployee.BankAccounts),
			now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		created, err = getEmployee(ctx, q, id)
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return created, nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	var updated employee.Employee

	err := r.store.withTx(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, `
			UPDATE employees2 SET
				serial_no = ?, fss_no = ?, name = ?, cnic = ?, eobi_no = ?, salary = ?,
				mobile_no = ?, home_contact = ?, category = ?, status = ?, bank_accounts = ?,
				updated_at = ?
			WHERE id = ?
		`,
			nullIfEmpty(e.SerialNo), nullIfEmpty(e.FSSNo), nullIfEmpty(e.Name),
			nullIfEmpty(e.CNIC), nullIfEmpty(e.EOBINo), nullIfEmpty(e.Salary),
			nullIfEmpty(e.MobileNo), nullIfEmpty(e.HomeContact), nullIfEmpty(e.Category),
			nullIfEmpty(e.Status), nullIfEmpty(e.BankAccounts),
			formatTimestamp(r.now()), e.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		if n == 0 {
			return employee.ErrEmployeeNotFound
		}

		updated, err = getEmployee(ctx, q, e.ID)
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return updated, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM employees2 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if n == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) ListCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

func (r *employeeRepository) ListStatuses(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "status")
}

// column is one of the fixed names above, never user input.
func (r *employeeRepository) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.store.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT DISTINCT TRIM(%[1]s) FROM employees2
		WHERE %[1]s IS NOT NULL AND TRIM(%[1]s) <> ''
		ORDER BY 1
	`, column))
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
