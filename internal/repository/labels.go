package repository

import (
	"context"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

func (r *Repository) GetEmployeeLabels(employeeID int64) ([]domain.ObjectLabel, error) {
	query := `
		SELECT ol.id, ol.name
		FROM object_labels ol
		JOIN employee_object_labels eol ON ol.id = eol.object_label_id
		WHERE eol.employee_id = $1
		ORDER BY ol.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make([]domain.ObjectLabel, 0)
	for rows.Next() {
		label := domain.ObjectLabel{}
		if err := rows.Scan(&label.ID, &label.Name); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return labels, nil
}

func (r *Repository) GetAllLabels() ([]domain.ObjectLabel, error) {
	query := `
		SELECT id, name FROM object_labels ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make([]domain.ObjectLabel, 0)
	for rows.Next() {
		label := domain.ObjectLabel{}
		if err := rows.Scan(&label.ID, &label.Name); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return labels, nil
}

func (r *Repository) CreateLabel(label *domain.ObjectLabel) error {
	query := `
		INSERT INTO object_labels (name)
		VALUES ($1)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, label.Name).Scan(&label.ID); err != nil {
		return err
	}

	return nil
}

// SetEmployeeLabels replaces an employee's held labels wholesale in one
// transaction.
func (r *Repository) SetEmployeeLabels(employeeID int64, labelIDs []int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM employee_object_labels WHERE employee_id = $1`
	if _, err := tx.ExecContext(ctx, query, employeeID); err != nil {
		return err
	}

	for _, labelID := range labelIDs {
		query := `
			INSERT INTO employee_object_labels (employee_id, object_label_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, employeeID, labelID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
