package domain

import (
	"fmt"
	"strings"
)

// ValidationError signals a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError signals an unknown entity id.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// AuthorizationError signals an actor lacking the role a mutation requires.
type AuthorizationError struct {
	Action string
	Role   Role
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q is not allowed to %s", e.Role, e.Action)
}

// EligibilityError signals a target employee whose label set does not satisfy
// an assignment's required labels.
type EligibilityError struct {
	EmployeeID    int64
	AssignmentID  int64
	MissingLabels []string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("employee %d is missing required labels for assignment %d: %s",
		e.EmployeeID, e.AssignmentID, strings.Join(e.MissingLabels, ", "))
}

// ConflictError signals a state transition attempted on a record no longer in
// the expected state, including the lost side of a concurrent double-approve.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
