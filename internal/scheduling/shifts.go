package scheduling

import (
	"fmt"
	"log/slog"

	"github.com/roosterplan/backend/internal/domain"
)

// ShiftScheduler orchestrates shift mutations: timestamp normalization,
// advisory availability and compliance checks, optional travel distance
// estimation and assignment-change notifications.
type ShiftScheduler struct {
	store        Store
	availability *AvailabilityResolver
	compliance   *ComplianceValidator
	notifier     Notifier
	distance     DistanceEstimator
}

// NewShiftScheduler wires the scheduler. distance may be nil, in which case
// travel fields are never filled.
func NewShiftScheduler(store Store, availability *AvailabilityResolver, compliance *ComplianceValidator, notifier Notifier, distance DistanceEstimator) *ShiftScheduler {
	return &ShiftScheduler{
		store:        store,
		availability: availability,
		compliance:   compliance,
		notifier:     notifier,
		distance:     distance,
	}
}

type ShiftInput struct {
	EmployeeID   *int64
	AssignmentID *int64
	Date         string
	StartTime    string
	EndTime      string
	BreakMinutes int32
}

func (in *ShiftInput) validate() error {
	if in.Date == "" {
		return &domain.ValidationError{Field: "date", Reason: "is required"}
	}
	if in.StartTime == "" {
		return &domain.ValidationError{Field: "startTime", Reason: "is required"}
	}
	if in.EndTime == "" {
		return &domain.ValidationError{Field: "endTime", Reason: "is required"}
	}
	return nil
}

// Create persists a new shift. A nil employee produces an open shift. A shift
// scheduled outside the employee's availability or labor limits is still
// created; the conflicts come back as warnings for the planner to weigh.
func (s *ShiftScheduler) Create(input ShiftInput) (*domain.Shift, []domain.ComplianceWarning, error) {
	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	start, end, err := NormalizeShiftTimes(input.Date, input.StartTime, input.EndTime)
	if err != nil {
		return nil, nil, err
	}

	shift := &domain.Shift{
		EmployeeID:   input.EmployeeID,
		AssignmentID: input.AssignmentID,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: input.BreakMinutes,
		Status:       domain.ShiftStatusScheduled,
	}

	warnings, err := s.advise(shift, nil)
	if err != nil {
		return nil, nil, err
	}

	s.estimateTravel(shift)

	if err := s.store.CreateShift(shift); err != nil {
		return nil, nil, err
	}

	if shift.EmployeeID != nil {
		s.notifier.Notify(*shift.EmployeeID, domain.NotificationShiftAssigned,
			"New shift", fmt.Sprintf("You have been scheduled on %s from %s to %s.",
				input.Date, input.StartTime, input.EndTime), "", nil)
	}

	return shift, warnings, nil
}

// Update rewrites a shift with the same normalization and advisory checks as
// Create, then notifies the affected employees: a reassignment tells the old
// employee the shift was removed and the new one it was assigned, a pure time
// change tells the unchanged employee the shift moved.
func (s *ShiftScheduler) Update(id int64, input ShiftInput) (*domain.Shift, []domain.ComplianceWarning, error) {
	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	prior, err := s.store.GetShiftByID(id)
	if err != nil {
		return nil, nil, err
	}

	start, end, err := NormalizeShiftTimes(input.Date, input.StartTime, input.EndTime)
	if err != nil {
		return nil, nil, err
	}

	shift := *prior
	shift.EmployeeID = input.EmployeeID
	shift.AssignmentID = input.AssignmentID
	shift.StartTime = start
	shift.EndTime = end
	shift.BreakMinutes = input.BreakMinutes

	warnings, err := s.advise(&shift, &id)
	if err != nil {
		return nil, nil, err
	}

	s.estimateTravel(&shift)

	if err := s.store.UpdateShift(&shift); err != nil {
		return nil, nil, err
	}

	s.notifyUpdate(prior, &shift, input)

	return &shift, warnings, nil
}

func (s *ShiftScheduler) notifyUpdate(prior, updated *domain.Shift, input ShiftInput) {
	oldEmployee := prior.EmployeeID
	newEmployee := updated.EmployeeID

	sameEmployee := oldEmployee != nil && newEmployee != nil && *oldEmployee == *newEmployee
	switch {
	case sameEmployee:
		if !prior.StartTime.Equal(updated.StartTime) || !prior.EndTime.Equal(updated.EndTime) {
			s.notifier.Notify(*newEmployee, domain.NotificationShiftChanged,
				"Shift changed", fmt.Sprintf("Your shift now runs on %s from %s to %s.",
					input.Date, input.StartTime, input.EndTime), "", nil)
		}
	default:
		if oldEmployee != nil {
			s.notifier.Notify(*oldEmployee, domain.NotificationShiftRemoved,
				"Shift removed", "A shift has been taken off your schedule.", "", nil)
		}
		if newEmployee != nil {
			s.notifier.Notify(*newEmployee, domain.NotificationShiftAssigned,
				"New shift", fmt.Sprintf("You have been scheduled on %s from %s to %s.",
					input.Date, input.StartTime, input.EndTime), "", nil)
		}
	}
}

// Delete removes a shift and tells the assigned employee, if any.
func (s *ShiftScheduler) Delete(id int64) error {
	shift, err := s.store.GetShiftByID(id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteShift(id); err != nil {
		return err
	}

	if shift.EmployeeID != nil {
		s.notifier.Notify(*shift.EmployeeID, domain.NotificationShiftCancelled,
			"Shift cancelled", fmt.Sprintf("Your shift of %s has been cancelled.",
				shift.StartTime.Format(dateLayout)), "", nil)
	}

	return nil
}

// ApproveOverride records a planner's explicit acknowledgment that a shift
// was scheduled outside the employee's stated availability. Creation itself
// never requires this; it is a separate, later step.
func (s *ShiftScheduler) ApproveOverride(id int64, note string, actor *domain.Employee) (*domain.Shift, error) {
	if !actor.Role.CanManageShifts() {
		return nil, &domain.AuthorizationError{Action: "approve an availability override", Role: actor.Role}
	}

	shift, err := s.store.GetShiftByID(id)
	if err != nil {
		return nil, err
	}

	shift.OverrideApproved = true
	shift.OverrideNote = note

	if err := s.store.UpdateShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// advise collects the advisory availability and compliance warnings for a
// shift. It never blocks: the result is informational.
func (s *ShiftScheduler) advise(shift *domain.Shift, excludeShiftID *int64) ([]domain.ComplianceWarning, error) {
	if shift.EmployeeID == nil {
		return nil, nil
	}

	employee, err := s.store.GetEmployeeByID(*shift.EmployeeID)
	if err != nil {
		return nil, err
	}

	warnings := []domain.ComplianceWarning{}

	window := &domain.TimeWindow{
		Start: shift.StartTime.Format(clockLayout),
		End:   shift.EndTime.Format(clockLayout),
	}
	result, err := s.availability.Resolve(employee.ID, dateOf(shift.StartTime), window)
	if err != nil {
		return nil, err
	}
	if !result.IsAvailable {
		message := "employee is not available for this shift"
		if result.Reason != "" {
			message = fmt.Sprintf("%s: %s", message, result.Reason)
		}
		warnings = append(warnings, domain.ComplianceWarning{
			Code:    domain.WarningEmployeeUnavailable,
			Message: message,
		})
	}

	hours := shift.WorkedHours()
	if w := s.compliance.CheckDailyHours(hours, employee.MaxHoursPerDay); w != nil {
		warnings = append(warnings, *w)
	}
	if w, err := s.compliance.CheckWeeklyHours(employee.ID, dateOf(shift.StartTime), employee.MaxHoursPerWeek, hours, excludeShiftID); err != nil {
		return nil, err
	} else if w != nil {
		warnings = append(warnings, *w)
	}
	if w, err := s.compliance.CheckRestTime(employee.ID, shift.StartTime, excludeShiftID); err != nil {
		return nil, err
	} else if w != nil {
		warnings = append(warnings, *w)
	}

	return warnings, nil
}

// estimateTravel fills the travel distance when both addresses are known.
// Failure leaves the field nil.
func (s *ShiftScheduler) estimateTravel(shift *domain.Shift) {
	if s.distance == nil || shift.EmployeeID == nil || shift.AssignmentID == nil {
		return
	}

	employee, err := s.store.GetEmployeeByID(*shift.EmployeeID)
	if err != nil || employee.HomeAddress == "" {
		return
	}
	assignment, err := s.store.GetAssignmentByID(*shift.AssignmentID)
	if err != nil || assignment.Address == "" {
		return
	}

	km, err := s.distance.Distance(employee.HomeAddress, assignment.Address)
	if err != nil {
		slog.Warn("travel distance estimation failed", "shiftEmployee", employee.ID, "error", err)
		return
	}
	shift.TravelDistanceKm = &km
}
