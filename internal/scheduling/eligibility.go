package scheduling

import "github.com/roosterplan/backend/internal/domain"

// EligibilityMatcher decides whether an employee's held qualification labels
// satisfy an assignment's required labels.
type EligibilityMatcher struct {
	store Store
}

func NewEligibilityMatcher(store Store) *EligibilityMatcher {
	return &EligibilityMatcher{store: store}
}

// Check returns a *domain.EligibilityError naming the missing labels when the
// employee does not hold every label the assignment requires. An assignment
// without required labels restricts nobody.
func (m *EligibilityMatcher) Check(employeeID, assignmentID int64) error {
	assignment, err := m.store.GetAssignmentByID(assignmentID)
	if err != nil {
		return err
	}
	if len(assignment.RequiredLabels) == 0 {
		return nil
	}

	held, err := m.store.GetEmployeeLabels(employeeID)
	if err != nil {
		return err
	}

	heldSet := make(map[string]bool, len(held))
	for _, label := range held {
		heldSet[label.Name] = true
	}

	missing := []string{}
	for _, required := range assignment.RequiredLabels {
		if !heldSet[required.Name] {
			missing = append(missing, required.Name)
		}
	}

	if len(missing) > 0 {
		return &domain.EligibilityError{
			EmployeeID:    employeeID,
			AssignmentID:  assignmentID,
			MissingLabels: missing,
		}
	}

	return nil
}

// IsEligible is the boolean form of Check.
func (m *EligibilityMatcher) IsEligible(employeeID, assignmentID int64) (bool, error) {
	err := m.Check(employeeID, assignmentID)
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*domain.EligibilityError); ok {
		return false, nil
	}
	return false, err
}
