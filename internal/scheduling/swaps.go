package scheduling

import (
	"fmt"

	"github.com/roosterplan/backend/internal/domain"
)

// SwapRequestStateMachine owns the swap-request lifecycle:
//
//	pending -> approved | rejected | cancelled (all terminal)
//
// claim binds a target employee while staying pending. Approving a takeover
// with a bound target reassigns the shift and finalizes the request in one
// transaction; two racing approvals are resolved by a conditional update, the
// loser gets a ConflictError.
type SwapRequestStateMachine struct {
	store       Store
	eligibility *EligibilityMatcher
	notifier    Notifier
}

func NewSwapRequestStateMachine(store Store, eligibility *EligibilityMatcher, notifier Notifier) *SwapRequestStateMachine {
	return &SwapRequestStateMachine{
		store:       store,
		eligibility: eligibility,
		notifier:    notifier,
	}
}

// Create opens a swap request for a shift. Only the shift's currently
// assigned employee may request one. A named target is checked against the
// assignment's required labels immediately; an open request defers that check
// to approval time.
func (m *SwapRequestStateMachine) Create(shiftID, requestingEmployeeID int64, swapType domain.SwapType, targetEmployeeID *int64, reason string) (*domain.SwapRequest, error) {
	if swapType != domain.SwapTypeTakeover && swapType != domain.SwapTypeSwap {
		return nil, &domain.ValidationError{Field: "swapType", Reason: "must be takeover or swap"}
	}

	shift, err := m.store.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}
	if shift.EmployeeID == nil || *shift.EmployeeID != requestingEmployeeID {
		return nil, &domain.ValidationError{Field: "shiftID", Reason: "shift is not assigned to the requesting employee"}
	}

	if targetEmployeeID != nil && shift.AssignmentID != nil {
		if err := m.eligibility.Check(*targetEmployeeID, *shift.AssignmentID); err != nil {
			return nil, err
		}
	}

	request := &domain.SwapRequest{
		ShiftID:              shiftID,
		RequestingEmployeeID: requestingEmployeeID,
		TargetEmployeeID:     targetEmployeeID,
		SwapType:             swapType,
		Status:               domain.SwapStatusPending,
		Reason:               reason,
	}
	if err := m.store.CreateSwapRequest(request); err != nil {
		return nil, err
	}

	if targetEmployeeID != nil {
		m.notifier.Notify(*targetEmployeeID, domain.NotificationSwapRequested,
			"Swap request", fmt.Sprintf("A colleague asked you to take over a shift on %s.",
				shift.StartTime.Format(dateLayout)), "", nil)
	}

	return request, nil
}

// Claim binds a target employee to an open pending request. Eligibility is
// deliberately not checked here; it is enforced again at approval time.
func (m *SwapRequestStateMachine) Claim(requestID, employeeID int64) (*domain.SwapRequest, error) {
	request, err := m.store.GetSwapRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.SwapStatusPending {
		return nil, &domain.ConflictError{Message: "request is no longer pending"}
	}
	if request.TargetEmployeeID != nil {
		return nil, &domain.ConflictError{Message: "request has already been claimed"}
	}

	// The store guards the same conditions again so two racing claims cannot
	// both win.
	return m.store.ClaimSwapRequest(requestID, employeeID)
}

// Cancel lets the original requester withdraw a pending request.
func (m *SwapRequestStateMachine) Cancel(requestID int64, actor *domain.Employee) (*domain.SwapRequest, error) {
	request, err := m.store.GetSwapRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.RequestingEmployeeID != actor.ID {
		return nil, &domain.AuthorizationError{Action: "cancel someone else's swap request", Role: actor.Role}
	}
	if request.Status != domain.SwapStatusPending {
		return nil, &domain.ConflictError{Message: "request is no longer pending"}
	}

	return m.store.FinalizeSwapRequest(requestID, domain.SwapStatusCancelled, nil, "")
}

// Approve finalizes a pending request. Eligibility of the bound target is
// re-validated regardless of how the target was bound. For a takeover with a
// bound target the shift reassignment and the status flip happen atomically;
// the losing side of a double-approve receives a ConflictError.
func (m *SwapRequestStateMachine) Approve(requestID int64, actor *domain.Employee, message string) (*domain.SwapRequest, error) {
	if !actor.Role.CanApproveSwaps() {
		return nil, &domain.AuthorizationError{Action: "approve swap requests", Role: actor.Role}
	}

	request, err := m.store.GetSwapRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.SwapStatusPending {
		return nil, &domain.ConflictError{Message: "already processed"}
	}
	if request.TargetEmployeeID == nil {
		return nil, &domain.ValidationError{Field: "targetEmployeeID", Reason: "no target employee is bound to this request"}
	}

	shift, err := m.store.GetShiftByID(request.ShiftID)
	if err != nil {
		return nil, err
	}
	if shift.AssignmentID != nil {
		if err := m.eligibility.Check(*request.TargetEmployeeID, *shift.AssignmentID); err != nil {
			return nil, err
		}
	}

	var approved *domain.SwapRequest
	if request.SwapType == domain.SwapTypeTakeover {
		approved, err = m.store.ApproveTakeover(requestID, actor.ID, message)
	} else {
		approverID := actor.ID
		approved, err = m.store.FinalizeSwapRequest(requestID, domain.SwapStatusApproved, &approverID, message)
	}
	if err != nil {
		return nil, err
	}

	m.notifier.Notify(approved.RequestingEmployeeID, domain.NotificationSwapApproved,
		"Swap request approved", "Your swap request has been approved.", "", nil)

	return approved, nil
}

// Reject finalizes a pending request without touching the shift.
func (m *SwapRequestStateMachine) Reject(requestID int64, actor *domain.Employee, message string) (*domain.SwapRequest, error) {
	if !actor.Role.CanApproveSwaps() {
		return nil, &domain.AuthorizationError{Action: "reject swap requests", Role: actor.Role}
	}

	request, err := m.store.GetSwapRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.SwapStatusPending {
		return nil, &domain.ConflictError{Message: "already processed"}
	}

	approverID := actor.ID
	rejected, err := m.store.FinalizeSwapRequest(requestID, domain.SwapStatusRejected, &approverID, message)
	if err != nil {
		return nil, err
	}

	m.notifier.Notify(rejected.RequestingEmployeeID, domain.NotificationSwapRejected,
		"Swap request rejected", "Your swap request has been rejected.", "", nil)

	return rejected, nil
}

// ForceDelete hard-deletes a request record regardless of its status. This is
// an administrative escape hatch that sits outside the transition table, so
// it is a separate operation rather than an action on the normal surface.
// Only the requester or a swap approver may use it.
func (m *SwapRequestStateMachine) ForceDelete(requestID int64, actor *domain.Employee) error {
	request, err := m.store.GetSwapRequestByID(requestID)
	if err != nil {
		return err
	}
	if request.RequestingEmployeeID != actor.ID && !actor.Role.CanApproveSwaps() {
		return &domain.AuthorizationError{Action: "delete this swap request", Role: actor.Role}
	}

	return m.store.DeleteSwapRequest(requestID)
}
