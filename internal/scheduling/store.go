package scheduling

import (
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

// Store is the slice of the relational store the engine needs. The concrete
// implementation is internal/repository; tests use an in-memory fake.
//
// Lookup methods return *domain.NotFoundError for unknown ids, except
// GetExceptionByDate which returns (nil, nil) when no exception exists for
// the date. The conditional swap-request methods (claim, finalize, approve)
// guard on the request still being pending and return *domain.ConflictError
// when another actor got there first.
type Store interface {
	GetEmployeeByID(id int64) (*domain.Employee, error)
	GetAssignmentByID(id int64) (*domain.Assignment, error)
	GetEmployeeLabels(employeeID int64) ([]domain.ObjectLabel, error)

	GetExceptionByDate(employeeID int64, date time.Time) (*domain.AvailabilityException, error)
	GetPatternsByDay(employeeID int64, dayOfWeek int32) ([]domain.AvailabilityPattern, error)

	GetShiftByID(id int64) (*domain.Shift, error)
	CreateShift(shift *domain.Shift) error
	UpdateShift(shift *domain.Shift) error
	DeleteShift(id int64) error
	ListShiftsForEmployeeBetween(employeeID int64, from, to time.Time) ([]*domain.Shift, error)

	GetSwapRequestByID(id int64) (*domain.SwapRequest, error)
	CreateSwapRequest(req *domain.SwapRequest) error
	ClaimSwapRequest(requestID, employeeID int64) (*domain.SwapRequest, error)
	FinalizeSwapRequest(requestID int64, status domain.SwapRequestStatus, approverID *int64, message string) (*domain.SwapRequest, error)
	ApproveTakeover(requestID, approverID int64, message string) (*domain.SwapRequest, error)
	DeleteSwapRequest(id int64) error
}

// Notifier delivers fire-and-forget notifications. Implementations must
// swallow delivery failures; a failed notification never fails the mutation
// that triggered it.
type Notifier interface {
	Notify(employeeID int64, notificationType, title, message, link string, data any)
}

// DistanceEstimator estimates the travel distance in kilometers between two
// addresses. Estimation failure is non-fatal to every caller.
type DistanceEstimator interface {
	Distance(fromAddress, toAddress string) (float64, error)
}
