package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	query := `
		SELECT
			a.name,
			a.address,
			a.created_at,
			a.version,
			ol.id,
			ol.name
		FROM assignments a
		LEFT JOIN assignment_object_labels aol ON a.id = aol.assignment_id
		LEFT JOIN object_labels ol ON aol.object_label_id = ol.id
		WHERE a.id = $1
		ORDER BY ol.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignment *domain.Assignment
	for rows.Next() {
		var row struct {
			name      string
			address   string
			createdAt time.Time
			version   int32
			labelID   sql.NullInt64
			labelName sql.NullString
		}

		dst := []any{
			&row.name,
			&row.address,
			&row.createdAt,
			&row.version,
			&row.labelID,
			&row.labelName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if assignment == nil {
			assignment = &domain.Assignment{
				ID:             id,
				Name:           row.name,
				Address:        row.address,
				RequiredLabels: make([]domain.ObjectLabel, 0),
				CreatedAt:      row.createdAt,
				Version:        row.version,
			}
		}

		if row.labelID.Valid {
			assignment.RequiredLabels = append(assignment.RequiredLabels, domain.ObjectLabel{
				ID:   row.labelID.Int64,
				Name: row.labelName.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if assignment == nil {
		return nil, &domain.NotFoundError{Resource: "assignment", ID: id}
	}

	return assignment, nil
}

func (r *Repository) GetAllAssignments() ([]*domain.Assignment, error) {
	query := `
		SELECT
			a.id,
			a.name,
			a.address,
			a.created_at,
			a.version,
			ol.id,
			ol.name
		FROM assignments a
		LEFT JOIN assignment_object_labels aol ON a.id = aol.assignment_id
		LEFT JOIN object_labels ol ON aol.object_label_id = ol.id
		ORDER BY a.id, ol.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignmentsMap := make(map[int64]*domain.Assignment)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			id        int64
			name      string
			address   string
			createdAt time.Time
			version   int32
			labelID   sql.NullInt64
			labelName sql.NullString
		}

		dst := []any{
			&row.id,
			&row.name,
			&row.address,
			&row.createdAt,
			&row.version,
			&row.labelID,
			&row.labelName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := assignmentsMap[row.id]; !exists {
			assignmentsMap[row.id] = &domain.Assignment{
				ID:             row.id,
				Name:           row.name,
				Address:        row.address,
				RequiredLabels: make([]domain.ObjectLabel, 0),
				CreatedAt:      row.createdAt,
				Version:        row.version,
			}
			order = append(order, row.id)
		}

		if row.labelID.Valid {
			assignmentsMap[row.id].RequiredLabels = append(assignmentsMap[row.id].RequiredLabels, domain.ObjectLabel{
				ID:   row.labelID.Int64,
				Name: row.labelName.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	assignments := make([]*domain.Assignment, 0, len(order))
	for _, id := range order {
		assignments = append(assignments, assignmentsMap[id])
	}

	return assignments, nil
}

// CreateAssignment inserts the assignment and binds its required labels in
// one transaction.
func (r *Repository) CreateAssignment(assignment *domain.Assignment, labelIDs []int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO assignments (name, address)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, assignment.Name, assignment.Address).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.Version); err != nil {
		return err
	}

	for _, labelID := range labelIDs {
		query := `
			INSERT INTO assignment_object_labels (assignment_id, object_label_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, assignment.ID, labelID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
