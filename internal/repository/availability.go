package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

func (r *Repository) GetPatternsByDay(employeeID int64, dayOfWeek int32) ([]domain.AvailabilityPattern, error) {
	query := `
		SELECT id, start_time, end_time, is_available, created_at
		FROM availability_patterns
		WHERE employee_id = $1 AND day_of_week = $2
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patterns := make([]domain.AvailabilityPattern, 0)
	for rows.Next() {
		pattern := domain.AvailabilityPattern{
			EmployeeID: employeeID,
			DayOfWeek:  dayOfWeek,
		}
		if err := rows.Scan(&pattern.ID, &pattern.StartTime, &pattern.EndTime, &pattern.IsAvailable, &pattern.CreatedAt); err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

func (r *Repository) GetPatternsByEmployee(employeeID int64) ([]domain.AvailabilityPattern, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, is_available, created_at
		FROM availability_patterns
		WHERE employee_id = $1
		ORDER BY day_of_week, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patterns := make([]domain.AvailabilityPattern, 0)
	for rows.Next() {
		pattern := domain.AvailabilityPattern{
			EmployeeID: employeeID,
		}
		if err := rows.Scan(&pattern.ID, &pattern.DayOfWeek, &pattern.StartTime, &pattern.EndTime, &pattern.IsAvailable, &pattern.CreatedAt); err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

// ReplacePatterns swaps an employee's full weekly pattern set in one
// transaction, so a partial failure never leaves the week half-written.
func (r *Repository) ReplacePatterns(employeeID int64, patterns []domain.AvailabilityPattern) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM availability_patterns WHERE employee_id = $1`
	if _, err := tx.ExecContext(ctx, query, employeeID); err != nil {
		return err
	}

	for i := range patterns {
		pattern := &patterns[i]
		pattern.EmployeeID = employeeID

		query := `
			INSERT INTO availability_patterns (employee_id, day_of_week, start_time, end_time, is_available)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`
		args := []any{employeeID, pattern.DayOfWeek, pattern.StartTime, pattern.EndTime, pattern.IsAvailable}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&pattern.ID, &pattern.CreatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetExceptionByDate returns (nil, nil) when no exception exists for the
// date, which is the common case.
func (r *Repository) GetExceptionByDate(employeeID int64, date time.Time) (*domain.AvailabilityException, error) {
	query := `
		SELECT id, date, start_time, end_time, is_available, reason, created_at
		FROM availability_exceptions
		WHERE employee_id = $1 AND date = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	exception := &domain.AvailabilityException{
		EmployeeID: employeeID,
	}

	var startTime, endTime sql.NullString
	dst := []any{
		&exception.ID,
		&exception.Date,
		&startTime,
		&endTime,
		&exception.IsAvailable,
		&exception.Reason,
		&exception.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, employeeID, date.Format("2006-01-02")).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	exception.StartTime = startTime.String
	exception.EndTime = endTime.String

	return exception, nil
}

func (r *Repository) CreateException(exception *domain.AvailabilityException) error {
	query := `
		INSERT INTO availability_exceptions (employee_id, date, start_time, end_time, is_available, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var startTime, endTime any
	if exception.StartTime != "" {
		startTime = exception.StartTime
	}
	if exception.EndTime != "" {
		endTime = exception.EndTime
	}

	args := []any{
		exception.EmployeeID,
		exception.Date.Format("2006-01-02"),
		startTime,
		endTime,
		exception.IsAvailable,
		exception.Reason,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&exception.ID, &exception.CreatedAt); err != nil {
		return err
	}

	return nil
}

// CreateExceptionsRange inserts one whole-day exception per date in
// [from, to] within a single transaction. Leave-request approval uses this to
// block out the leave period.
func (r *Repository) CreateExceptionsRange(employeeID int64, from, to time.Time, isAvailable bool, reason string) ([]domain.AvailabilityException, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exceptions := make([]domain.AvailabilityException, 0)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		// A leave range must replace any exception already present on a day.
		query := `DELETE FROM availability_exceptions WHERE employee_id = $1 AND date = $2`
		if _, err := tx.ExecContext(ctx, query, employeeID, date.Format("2006-01-02")); err != nil {
			return nil, err
		}

		exception := domain.AvailabilityException{
			EmployeeID:  employeeID,
			Date:        date,
			IsAvailable: isAvailable,
			Reason:      reason,
		}

		query = `
			INSERT INTO availability_exceptions (employee_id, date, is_available, reason)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		if err := tx.QueryRowContext(ctx, query, employeeID, date.Format("2006-01-02"), isAvailable, reason).Scan(&exception.ID, &exception.CreatedAt); err != nil {
			return nil, err
		}

		exceptions = append(exceptions, exception)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return exceptions, nil
}

// DeleteExceptionsRange removes a leave period's exceptions again, for leave
// withdrawal or rejection.
func (r *Repository) DeleteExceptionsRange(employeeID int64, from, to time.Time) error {
	query := `
		DELETE FROM availability_exceptions
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, employeeID, from.Format("2006-01-02"), to.Format("2006-01-02")); err != nil {
		return err
	}

	return nil
}
