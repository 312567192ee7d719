package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/members/internal/models"
	"github.com/jackc/pgx/v5"
)

// ListEmployees returns one page of employees ordered by identifier.
func (r *Repository) ListEmployees(ctx context.Context, limit, offset int) ([]models.Employee, error) {
	defer r.observe("list_employees", time.Now())

	query := `SELECT id, name, position, email, phone FROM employees ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0, limit)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(
			&employee.ID, &employee.Name, &employee.Position, &employee.Email, &employee.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return employees, nil
}

// CountEmployees returns the total number of stored employees.
func (r *Repository) CountEmployees(ctx context.Context) (int, error) {
	defer r.observe("count_employees", time.Now())

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return total, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error) {
	var result models.Employee

	defer r.observe("get_employee_by_id", time.Now())
	query := `SELECT id, name, position, email, phone FROM employees WHERE id=$1`

	err := r.db.QueryRow(ctx, query, identifier).Scan(
		&result.ID, &result.Name, &result.Position, &result.Email, &result.Phone)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", notFound(err))
	}

	return result, nil
}

// SaveEmployee inserts a new employee and returns it with the identifier assigned by the database.
func (r *Repository) SaveEmployee(
	ctx context.Context,
	name, position, email, phone string,
) (models.Employee, error) {
	var result models.Employee

	defer r.observe("save_employee", time.Now())
	query := `
		INSERT INTO employees (name, position, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, position, email, phone;
	`

	err := r.db.QueryRow(ctx, query, name, position, email, phone).Scan(
		&result.ID, &result.Name, &result.Position, &result.Email, &result.Phone)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", err)
	}

	return result, nil
}

// UpdateEmployee replaces an employee's information in the database.
// It returns ErrEmployeeNotFound when no employee has the given identifier.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int,
	name, position, email, phone string,
) (models.Employee, error) {
	var result models.Employee

	defer r.observe("update_employee", time.Now())
	query := `
		UPDATE employees
		SET name = $2, position = $3, email = $4, phone = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, name, position, email, phone;
	`

	err := r.db.QueryRow(ctx, query, identifier, name, position, email, phone).Scan(
		&result.ID, &result.Name, &result.Position, &result.Email, &result.Phone)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", notFound(err))
	}

	return result, nil
}

// DeleteEmployee removes an employee. It returns ErrEmployeeNotFound when nothing was deleted.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) error {
	defer r.observe("delete_employee", time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, identifier)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete employee: %w", ErrEmployeeNotFound)
	}

	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEmployeeNotFound
	}
	return err
}
