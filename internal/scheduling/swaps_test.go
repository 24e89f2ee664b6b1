package scheduling

import (
	"sync"
	"testing"
	"time"

	"github.com/roosterplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type swapFixture struct {
	store     *fakeStore
	notifier  *recordingNotifier
	machine   *SwapRequestStateMachine
	shift     *domain.Shift
	requester *domain.Employee
	planner   *domain.Employee
}

func newSwapFixture(t *testing.T) *swapFixture {
	t.Helper()

	store := newFakeStore()
	requester := &domain.Employee{ID: 1, Role: domain.RoleEmployee}
	planner := &domain.Employee{ID: 50, Role: domain.RolePlanner}
	store.addEmployee(requester)
	store.addEmployee(planner)
	store.addEmployee(&domain.Employee{ID: 2, Role: domain.RoleEmployee})
	store.addEmployee(&domain.Employee{ID: 3, Role: domain.RoleEmployee})

	store.addAssignment(&domain.Assignment{
		ID:             7,
		Name:           "Bouwplaats Rotterdam Haven",
		RequiredLabels: []domain.ObjectLabel{{ID: 1, Name: "VCA-VOL"}},
	})
	store.addLabels(2, "VCA-VOL")
	// Employee 3 holds no labels.

	employeeID := requester.ID
	assignmentID := int64(7)
	shift := &domain.Shift{
		EmployeeID:   &employeeID,
		AssignmentID: &assignmentID,
		StartTime:    time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 2, 16, 17, 0, 0, 0, time.UTC),
		Status:       domain.ShiftStatusScheduled,
	}
	require.NoError(t, store.CreateShift(shift))

	notifier := &recordingNotifier{}
	machine := NewSwapRequestStateMachine(store, NewEligibilityMatcher(store), notifier)

	return &swapFixture{
		store:     store,
		notifier:  notifier,
		machine:   machine,
		shift:     shift,
		requester: requester,
		planner:   planner,
	}
}

func TestSwapRequestCreate(t *testing.T) {
	t.Run("takeover with an eligible target", func(t *testing.T) {
		f := newSwapFixture(t)

		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, int64Ptr(2), "family matter")
		require.NoError(t, err)

		assert.Equal(t, domain.SwapStatusPending, request.Status)
		assert.Equal(t, int64(2), *request.TargetEmployeeID)

		sent := f.notifier.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, domain.NotificationSwapRequested, sent[0].Type)
		assert.Equal(t, int64(2), sent[0].EmployeeID)
	})

	t.Run("ineligible target is rejected and nothing is stored", func(t *testing.T) {
		f := newSwapFixture(t)

		_, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, int64Ptr(3), "")

		var eligibilityErr *domain.EligibilityError
		require.ErrorAs(t, err, &eligibilityErr)
		assert.Equal(t, []string{"VCA-VOL"}, eligibilityErr.MissingLabels)
		assert.Empty(t, f.store.swapRequests)
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("open request skips the eligibility check", func(t *testing.T) {
		f := newSwapFixture(t)

		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "anyone welcome")
		require.NoError(t, err)

		assert.Nil(t, request.TargetEmployeeID)
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("only the assigned employee may request", func(t *testing.T) {
		f := newSwapFixture(t)

		_, err := f.machine.Create(f.shift.ID, 2, domain.SwapTypeTakeover, nil, "")

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "shiftID", validationErr.Field)
	})

	t.Run("unknown swap type", func(t *testing.T) {
		f := newSwapFixture(t)

		_, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapType("trade"), nil, "")

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestSwapRequestClaim(t *testing.T) {
	t.Run("claim binds the target and stays pending", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)

		// Eligibility is not checked at claim time, even employee 3 may claim.
		// It is enforced again at approval.
		claimed, err := f.machine.Claim(request.ID, 3)
		require.NoError(t, err)

		assert.Equal(t, domain.SwapStatusPending, claimed.Status)
		assert.Equal(t, int64(3), *claimed.TargetEmployeeID)
	})

	t.Run("second claim conflicts", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)

		_, err = f.machine.Claim(request.ID, 2)
		require.NoError(t, err)

		_, err = f.machine.Claim(request.ID, 3)
		var conflictErr *domain.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("claiming a finalized request conflicts", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)
		_, err = f.machine.Cancel(request.ID, f.requester)
		require.NoError(t, err)

		_, err = f.machine.Claim(request.ID, 2)
		var conflictErr *domain.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})
}

func TestSwapRequestCancel(t *testing.T) {
	t.Run("requester cancels a pending request", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)

		cancelled, err := f.machine.Cancel(request.ID, f.requester)
		require.NoError(t, err)
		assert.Equal(t, domain.SwapStatusCancelled, cancelled.Status)
	})

	t.Run("someone else may not cancel", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)

		other := &domain.Employee{ID: 2, Role: domain.RoleEmployee}
		_, err = f.machine.Cancel(request.ID, other)

		var authErr *domain.AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)
		_, err = f.machine.Cancel(request.ID, f.requester)
		require.NoError(t, err)

		_, err = f.machine.Cancel(request.ID, f.requester)
		var conflictErr *domain.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})
}

func TestSwapRequestApprove(t *testing.T) {
	t.Run("approved takeover reassigns the shift atomically", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, int64Ptr(2), "")
		require.NoError(t, err)

		approved, err := f.machine.Approve(request.ID, f.planner, "fine by me")
		require.NoError(t, err)

		assert.Equal(t, domain.SwapStatusApproved, approved.Status)
		assert.Equal(t, f.planner.ID, *approved.ApproverID)
		assert.Equal(t, "fine by me", approved.ResponseMessage)

		shift, err := f.store.GetShiftByID(f.shift.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), *shift.EmployeeID)

		sent := f.notifier.sent()
		require.NotEmpty(t, sent)
		last := sent[len(sent)-1]
		assert.Equal(t, domain.NotificationSwapApproved, last.Type)
		assert.Equal(t, f.requester.ID, last.EmployeeID)
	})

	t.Run("regular employee may not approve", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, int64Ptr(2), "")
		require.NoError(t, err)

		employee := &domain.Employee{ID: 3, Role: domain.RoleEmployee}
		_, err = f.machine.Approve(request.ID, employee, "")

		var authErr *domain.AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})

	t.Run("request without a bound target cannot be approved", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)

		_, err = f.machine.Approve(request.ID, f.planner, "")

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "targetEmployeeID", validationErr.Field)
	})

	t.Run("eligibility is re-checked for a claimed target", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)
		// Employee 3 claimed without holding the required label.
		_, err = f.machine.Claim(request.ID, 3)
		require.NoError(t, err)

		_, err = f.machine.Approve(request.ID, f.planner, "")

		var eligibilityErr *domain.EligibilityError
		require.ErrorAs(t, err, &eligibilityErr)

		// The request is untouched and the shift keeps its original employee.
		stored, err := f.store.GetSwapRequestByID(request.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SwapStatusPending, stored.Status)
		shift, err := f.store.GetShiftByID(f.shift.ID)
		require.NoError(t, err)
		assert.Equal(t, f.requester.ID, *shift.EmployeeID)
	})

	t.Run("approving twice conflicts", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, int64Ptr(2), "")
		require.NoError(t, err)

		_, err = f.machine.Approve(request.ID, f.planner, "")
		require.NoError(t, err)

		_, err = f.machine.Approve(request.ID, f.planner, "")
		var conflictErr *domain.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, "already processed", conflictErr.Message)
	})

	t.Run("concurrent approvals produce exactly one winner", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, int64Ptr(2), "")
		require.NoError(t, err)

		const attempts = 8
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.machine.Approve(request.ID, f.planner, "")
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
				continue
			}
			var conflictErr *domain.ConflictError
			assert.ErrorAs(t, err, &conflictErr)
		}
		assert.Equal(t, 1, winners)

		shift, err := f.store.GetShiftByID(f.shift.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), *shift.EmployeeID)
	})
}

func TestSwapRequestReject(t *testing.T) {
	f := newSwapFixture(t)
	request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, int64Ptr(2), "")
	require.NoError(t, err)
	f.notifier.notifications = nil

	rejected, err := f.machine.Reject(request.ID, f.planner, "shift must stay covered by you")
	require.NoError(t, err)

	assert.Equal(t, domain.SwapStatusRejected, rejected.Status)
	assert.Equal(t, "shift must stay covered by you", rejected.ResponseMessage)

	// The shift is untouched.
	shift, err := f.store.GetShiftByID(f.shift.ID)
	require.NoError(t, err)
	assert.Equal(t, f.requester.ID, *shift.EmployeeID)

	sent := f.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, domain.NotificationSwapRejected, sent[0].Type)

	// Rejected is terminal.
	_, err = f.machine.Reject(request.ID, f.planner, "")
	var conflictErr *domain.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestSwapRequestForceDelete(t *testing.T) {
	t.Run("approver deletes a finalized request", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, int64Ptr(2), "")
		require.NoError(t, err)
		_, err = f.machine.Approve(request.ID, f.planner, "")
		require.NoError(t, err)

		// Hard delete works on any status, it sits outside the transition table.
		require.NoError(t, f.machine.ForceDelete(request.ID, f.planner))

		_, err = f.store.GetSwapRequestByID(request.ID)
		var notFoundErr *domain.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("requester deletes their own pending request", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)

		assert.NoError(t, f.machine.ForceDelete(request.ID, f.requester))
	})

	t.Run("uninvolved employee may not delete", func(t *testing.T) {
		f := newSwapFixture(t)
		request, err := f.machine.Create(f.shift.ID, f.requester.ID, domain.SwapTypeTakeover, nil, "")
		require.NoError(t, err)

		other := &domain.Employee{ID: 3, Role: domain.RoleEmployee}
		err = f.machine.ForceDelete(request.ID, other)

		var authErr *domain.AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})
}
