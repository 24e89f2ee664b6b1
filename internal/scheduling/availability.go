package scheduling

import (
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

// AvailabilityResolver answers whether an employee is available on a date,
// optionally for a specific time window. Resolution is a pure function of the
// stored patterns and exceptions: an exception for the exact date is
// authoritative, otherwise the weekly pattern for that weekday applies, and an
// employee who does not manage their own availability counts as available all
// day when no pattern exists.
type AvailabilityResolver struct {
	store Store
}

func NewAvailabilityResolver(store Store) *AvailabilityResolver {
	return &AvailabilityResolver{store: store}
}

func (r *AvailabilityResolver) Resolve(employeeID int64, date time.Time, window *domain.TimeWindow) (*domain.AvailabilityResult, error) {
	employee, err := r.store.GetEmployeeByID(employeeID)
	if err != nil {
		return nil, err
	}

	exception, err := r.store.GetExceptionByDate(employeeID, date)
	if err != nil {
		return nil, err
	}
	if exception != nil {
		result := &domain.AvailabilityResult{
			IsAvailable: exception.IsAvailable,
			Source:      domain.AvailabilitySourceException,
			Reason:      exception.Reason,
		}
		if exception.IsAvailable && exception.StartTime != "" {
			result.Windows = []domain.TimeWindow{{Start: exception.StartTime, End: exception.EndTime}}
		}
		return result, nil
	}

	patterns, err := r.store.GetPatternsByDay(employeeID, int32(date.Weekday()))
	if err != nil {
		return nil, err
	}

	if len(patterns) == 0 && !employee.ManagesOwnAvailability {
		return &domain.AvailabilityResult{
			IsAvailable: true,
			Source:      domain.AvailabilitySourceDefaultPolicy,
		}, nil
	}

	available := make([]domain.AvailabilityPattern, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern.IsAvailable {
			available = append(available, pattern)
		}
	}

	if len(available) == 0 {
		return &domain.AvailabilityResult{
			IsAvailable: false,
			Source:      domain.AvailabilitySourcePattern,
			Reason:      "no availability set for this day",
		}, nil
	}

	windows := make([]domain.TimeWindow, 0, len(available))
	for _, pattern := range available {
		windows = append(windows, domain.TimeWindow{Start: pattern.StartTime, End: pattern.EndTime})
	}

	if window != nil {
		contained := false
		for _, pattern := range available {
			if windowWithin(*window, pattern) {
				contained = true
				break
			}
		}
		if !contained {
			// Return the day's actual windows so the caller can suggest
			// alternatives.
			return &domain.AvailabilityResult{
				IsAvailable: false,
				Source:      domain.AvailabilitySourcePattern,
				Reason:      "requested window falls outside available hours",
				Windows:     windows,
			}, nil
		}
	}

	return &domain.AvailabilityResult{
		IsAvailable: true,
		Source:      domain.AvailabilitySourcePattern,
		Windows:     windows,
	}, nil
}
