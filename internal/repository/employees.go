package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

const employeeColumns = `username, password_hash, full_name, email, role, manages_own_availability, max_hours_per_day, max_hours_per_week, home_address, is_active, created_at, version`

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		ID: id,
	}

	dst := []any{
		&employee.Username,
		&employee.PasswordHash,
		&employee.FullName,
		&employee.Email,
		&employee.Role,
		&employee.ManagesOwnAvailability,
		&employee.MaxHoursPerDay,
		&employee.MaxHoursPerWeek,
		&employee.HomeAddress,
		&employee.IsActive,
		&employee.CreatedAt,
		&employee.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "employee", ID: id}
		}
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetEmployeeByUsername(username string) (*domain.Employee, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, manages_own_availability, max_hours_per_day, max_hours_per_week, home_address, is_active, created_at, version
		FROM employees WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		Username: username,
	}

	dst := []any{
		&employee.ID,
		&employee.PasswordHash,
		&employee.FullName,
		&employee.Email,
		&employee.Role,
		&employee.ManagesOwnAvailability,
		&employee.MaxHoursPerDay,
		&employee.MaxHoursPerWeek,
		&employee.HomeAddress,
		&employee.IsActive,
		&employee.CreatedAt,
		&employee.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT id, ` + employeeColumns + ` FROM employees ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{
			&employee.ID,
			&employee.Username,
			&employee.PasswordHash,
			&employee.FullName,
			&employee.Email,
			&employee.Role,
			&employee.ManagesOwnAvailability,
			&employee.MaxHoursPerDay,
			&employee.MaxHoursPerWeek,
			&employee.HomeAddress,
			&employee.IsActive,
			&employee.CreatedAt,
			&employee.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO employees (username, password_hash, full_name, email, role, manages_own_availability, max_hours_per_day, max_hours_per_week, home_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_active, created_at, version
	`

	args := []any{
		employee.Username,
		employee.PasswordHash,
		employee.FullName,
		employee.Email,
		employee.Role,
		employee.ManagesOwnAvailability,
		employee.MaxHoursPerDay,
		employee.MaxHoursPerWeek,
		employee.HomeAddress,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.ID, &employee.IsActive, &employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			manages_own_availability = $4,
			max_hours_per_day = $5,
			max_hours_per_week = $6,
			home_address = $7,
			is_active = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		employee.PasswordHash,
		employee.Email,
		employee.Role,
		employee.ManagesOwnAvailability,
		employee.MaxHoursPerDay,
		employee.MaxHoursPerWeek,
		employee.HomeAddress,
		employee.IsActive,
		employee.ID,
		employee.Version,
	}
	dst := []any{&employee.Username, &employee.FullName, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// GetEmployeeEmail is the lookup the notification dispatcher uses to address
// outgoing messages.
func (r *Repository) GetEmployeeEmail(id int64) (string, error) {
	query := `
		SELECT email FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var email string
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", &domain.NotFoundError{Resource: "employee", ID: id}
		}
		return "", err
	}

	return email, nil
}
