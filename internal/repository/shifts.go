package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT employee_id, assignment_id, start_time, end_time, break_minutes, status, override_approved, override_note, travel_distance_km, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	var overrideNote sql.NullString
	dst := []any{
		&shift.EmployeeID,
		&shift.AssignmentID,
		&shift.StartTime,
		&shift.EndTime,
		&shift.BreakMinutes,
		&shift.Status,
		&shift.OverrideApproved,
		&overrideNote,
		&shift.TravelDistanceKm,
		&shift.CreatedAt,
		&shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "shift", ID: id}
		}
		return nil, err
	}

	shift.OverrideNote = overrideNote.String

	return shift, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (employee_id, assignment_id, start_time, end_time, break_minutes, status, travel_distance_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.EmployeeID,
		shift.AssignmentID,
		shift.StartTime,
		shift.EndTime,
		shift.BreakMinutes,
		shift.Status,
		shift.TravelDistanceKm,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			employee_id = $1,
			assignment_id = $2,
			start_time = $3,
			end_time = $4,
			break_minutes = $5,
			status = $6,
			override_approved = $7,
			override_note = $8,
			travel_distance_km = $9,
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.EmployeeID,
		shift.AssignmentID,
		shift.StartTime,
		shift.EndTime,
		shift.BreakMinutes,
		shift.Status,
		shift.OverrideApproved,
		shift.OverrideNote,
		shift.TravelDistanceKm,
		shift.ID,
		shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.ConflictError{Message: "shift was modified concurrently, please retry"}
		}
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// ListShiftsForEmployeeBetween returns the employee's shifts whose start
// falls in [from, to).
func (r *Repository) ListShiftsForEmployeeBetween(employeeID int64, from, to time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, assignment_id, start_time, end_time, break_minutes, status, override_approved, override_note, travel_distance_km, created_at, version
		FROM shifts
		WHERE employee_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{
			EmployeeID: &employeeID,
		}
		var overrideNote sql.NullString
		dst := []any{
			&shift.ID,
			&shift.AssignmentID,
			&shift.StartTime,
			&shift.EndTime,
			&shift.BreakMinutes,
			&shift.Status,
			&shift.OverrideApproved,
			&overrideNote,
			&shift.TravelDistanceKm,
			&shift.CreatedAt,
			&shift.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shift.OverrideNote = overrideNote.String
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListShiftsBetween returns every shift starting in [from, to), for the
// planner's roster view.
func (r *Repository) ListShiftsBetween(from, to time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, employee_id, assignment_id, start_time, end_time, break_minutes, status, override_approved, override_note, travel_distance_km, created_at, version
		FROM shifts
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		var overrideNote sql.NullString
		dst := []any{
			&shift.ID,
			&shift.EmployeeID,
			&shift.AssignmentID,
			&shift.StartTime,
			&shift.EndTime,
			&shift.BreakMinutes,
			&shift.Status,
			&shift.OverrideApproved,
			&overrideNote,
			&shift.TravelDistanceKm,
			&shift.CreatedAt,
			&shift.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shift.OverrideNote = overrideNote.String
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
