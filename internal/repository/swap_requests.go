package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

func (r *Repository) GetSwapRequestByID(id int64) (*domain.SwapRequest, error) {
	query := `
		SELECT shift_id, requesting_employee_id, target_employee_id, swap_type, status, reason, approver_id, response_message, created_at, version
		FROM shift_swap_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	request := &domain.SwapRequest{
		ID: id,
	}

	var responseMessage sql.NullString
	dst := []any{
		&request.ShiftID,
		&request.RequestingEmployeeID,
		&request.TargetEmployeeID,
		&request.SwapType,
		&request.Status,
		&request.Reason,
		&request.ApproverID,
		&responseMessage,
		&request.CreatedAt,
		&request.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "swap request", ID: id}
		}
		return nil, err
	}

	request.ResponseMessage = responseMessage.String

	return request, nil
}

func (r *Repository) GetAllSwapRequests() ([]*domain.SwapRequest, error) {
	query := `
		SELECT id, shift_id, requesting_employee_id, target_employee_id, swap_type, status, reason, approver_id, response_message, created_at, version
		FROM shift_swap_requests
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.SwapRequest, 0)
	for rows.Next() {
		request := &domain.SwapRequest{}
		var responseMessage sql.NullString
		dst := []any{
			&request.ID,
			&request.ShiftID,
			&request.RequestingEmployeeID,
			&request.TargetEmployeeID,
			&request.SwapType,
			&request.Status,
			&request.Reason,
			&request.ApproverID,
			&responseMessage,
			&request.CreatedAt,
			&request.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		request.ResponseMessage = responseMessage.String
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) CreateSwapRequest(request *domain.SwapRequest) error {
	query := `
		INSERT INTO shift_swap_requests (shift_id, requesting_employee_id, target_employee_id, swap_type, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		request.ShiftID,
		request.RequestingEmployeeID,
		request.TargetEmployeeID,
		request.SwapType,
		request.Status,
		request.Reason,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.ID, &request.CreatedAt, &request.Version); err != nil {
		return err
	}

	return nil
}

// ClaimSwapRequest binds a target employee to an open pending request. The
// update is guarded on the current state so two racing claims cannot both
// win; the loser gets a ConflictError.
func (r *Repository) ClaimSwapRequest(requestID, employeeID int64) (*domain.SwapRequest, error) {
	query := `
		UPDATE shift_swap_requests
		SET target_employee_id = $1, version = version + 1
		WHERE id = $2 AND status = 'pending' AND target_employee_id IS NULL
		RETURNING shift_id, requesting_employee_id, swap_type, status, reason, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	request := &domain.SwapRequest{
		ID:               requestID,
		TargetEmployeeID: &employeeID,
	}

	dst := []any{
		&request.ShiftID,
		&request.RequestingEmployeeID,
		&request.SwapType,
		&request.Status,
		&request.Reason,
		&request.CreatedAt,
		&request.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, employeeID, requestID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.swapRequestConflict(ctx, requestID)
		}
		return nil, err
	}

	return request, nil
}

// FinalizeSwapRequest moves a pending request into a terminal state. The
// conditional update makes the transition race-safe: whichever actor updates
// zero rows lost and gets a ConflictError.
func (r *Repository) FinalizeSwapRequest(requestID int64, status domain.SwapRequestStatus, approverID *int64, message string) (*domain.SwapRequest, error) {
	query := `
		UPDATE shift_swap_requests
		SET status = $1, approver_id = $2, response_message = $3, version = version + 1
		WHERE id = $4 AND status = 'pending'
		RETURNING shift_id, requesting_employee_id, target_employee_id, swap_type, reason, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	request := &domain.SwapRequest{
		ID:              requestID,
		Status:          status,
		ApproverID:      approverID,
		ResponseMessage: message,
	}

	dst := []any{
		&request.ShiftID,
		&request.RequestingEmployeeID,
		&request.TargetEmployeeID,
		&request.SwapType,
		&request.Reason,
		&request.CreatedAt,
		&request.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, status, approverID, message, requestID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.swapRequestConflict(ctx, requestID)
		}
		return nil, err
	}

	return request, nil
}

// ApproveTakeover approves a takeover request and reassigns its shift to the
// bound target employee as one atomic unit. The request update is guarded on
// status = 'pending': with two racing approvals exactly one transaction
// updates a row, the other observes zero rows and surfaces a ConflictError
// instead of double-applying the reassignment.
func (r *Repository) ApproveTakeover(requestID, approverID int64, message string) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	request := &domain.SwapRequest{
		ID:              requestID,
		Status:          domain.SwapStatusApproved,
		ApproverID:      &approverID,
		ResponseMessage: message,
	}

	query := `
		UPDATE shift_swap_requests
		SET status = 'approved', approver_id = $1, response_message = $2, version = version + 1
		WHERE id = $3 AND status = 'pending' AND target_employee_id IS NOT NULL
		RETURNING shift_id, requesting_employee_id, target_employee_id, swap_type, reason, created_at, version
	`

	dst := []any{
		&request.ShiftID,
		&request.RequestingEmployeeID,
		&request.TargetEmployeeID,
		&request.SwapType,
		&request.Reason,
		&request.CreatedAt,
		&request.Version,
	}
	if err := tx.QueryRowContext(ctx, query, approverID, message, requestID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.swapRequestConflict(ctx, requestID)
		}
		return nil, err
	}

	query = `
		UPDATE shifts
		SET employee_id = $1, version = version + 1
		WHERE id = $2
	`
	if _, err := tx.ExecContext(ctx, query, request.TargetEmployeeID, request.ShiftID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return request, nil
}

func (r *Repository) DeleteSwapRequest(id int64) error {
	query := `
		DELETE FROM shift_swap_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// swapRequestConflict classifies a zero-row conditional update: either the
// request never existed, or another actor already moved it on.
func (r *Repository) swapRequestConflict(ctx context.Context, requestID int64) error {
	query := `
		SELECT EXISTS (SELECT 1 FROM shift_swap_requests WHERE id = $1)
	`

	exists := false
	if err := r.dbpool.QueryRowContext(ctx, query, requestID).Scan(&exists); err != nil {
		return err
	}

	if !exists {
		return &domain.NotFoundError{Resource: "swap request", ID: requestID}
	}
	return &domain.ConflictError{Message: "already processed"}
}
