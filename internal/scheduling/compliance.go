package scheduling

import (
	"fmt"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

// MinRestHours is the minimum gap between the end of one shift and the start
// of the next, per the labor agreement.
const MinRestHours = 12.0

// ComplianceValidator checks labor-rule limits. Every check is advisory: a
// violated limit is reported as a warning and never blocks persistence, the
// planner keeps final authority over exceptions.
type ComplianceValidator struct {
	store Store
}

func NewComplianceValidator(store Store) *ComplianceValidator {
	return &ComplianceValidator{store: store}
}

// CheckDailyHours flags a shift longer than the employee's daily limit. A
// limit of zero means no limit is configured.
func (v *ComplianceValidator) CheckDailyHours(shiftHours, maxHoursPerDay float64) *domain.ComplianceWarning {
	if maxHoursPerDay <= 0 || shiftHours <= maxHoursPerDay {
		return nil
	}
	return &domain.ComplianceWarning{
		Code:    domain.WarningDailyHoursExceeded,
		Message: fmt.Sprintf("shift is %.1f hours, daily limit is %.1f hours", shiftHours, maxHoursPerDay),
		Actual:  shiftHours,
		Limit:   maxHoursPerDay,
	}
}

// CheckWeeklyHours sums the employee's non-cancelled shifts in the
// Monday-Sunday week containing shiftDate, adds the proposed hours, and flags
// the total when it exceeds the weekly limit. excludeShiftID skips the shift
// being updated so it is not counted twice.
func (v *ComplianceValidator) CheckWeeklyHours(employeeID int64, shiftDate time.Time, maxHoursPerWeek, newShiftHours float64, excludeShiftID *int64) (*domain.ComplianceWarning, error) {
	if maxHoursPerWeek <= 0 {
		return nil, nil
	}

	monday, nextMonday := weekBounds(shiftDate)
	shifts, err := v.store.ListShiftsForEmployeeBetween(employeeID, monday, nextMonday)
	if err != nil {
		return nil, err
	}

	total := newShiftHours
	for _, shift := range shifts {
		if shift.Status == domain.ShiftStatusCancelled {
			continue
		}
		if excludeShiftID != nil && shift.ID == *excludeShiftID {
			continue
		}
		total += shift.WorkedHours()
	}

	if total <= maxHoursPerWeek {
		return nil, nil
	}
	return &domain.ComplianceWarning{
		Code:    domain.WarningWeeklyHoursExceeded,
		Message: fmt.Sprintf("week total would be %.1f hours, weekly limit is %.1f hours", total, maxHoursPerWeek),
		Actual:  total,
		Limit:   maxHoursPerWeek,
	}, nil
}

// CheckRestTime flags a rest gap shorter than MinRestHours between the start
// of the proposed shift and the employee's shift ending on the immediately
// preceding calendar day.
func (v *ComplianceValidator) CheckRestTime(employeeID int64, shiftStart time.Time, excludeShiftID *int64) (*domain.ComplianceWarning, error) {
	dayStart := dateOf(shiftStart)
	previousDay := dayStart.AddDate(0, 0, -1)

	// An overnight shift ending on the previous day may have started the day
	// before that, so the lookup window covers two days.
	shifts, err := v.store.ListShiftsForEmployeeBetween(employeeID, previousDay.AddDate(0, 0, -1), dayStart)
	if err != nil {
		return nil, err
	}

	var previousEnd time.Time
	for _, shift := range shifts {
		if shift.Status == domain.ShiftStatusCancelled {
			continue
		}
		if excludeShiftID != nil && shift.ID == *excludeShiftID {
			continue
		}
		if !dateOf(shift.EndTime).Equal(previousDay) {
			continue
		}
		if shift.EndTime.After(previousEnd) {
			previousEnd = shift.EndTime
		}
	}

	if previousEnd.IsZero() {
		return nil, nil
	}

	gap := shiftStart.Sub(previousEnd).Hours()
	if gap >= MinRestHours {
		return nil, nil
	}
	return &domain.ComplianceWarning{
		Code:    domain.WarningInsufficientRest,
		Message: fmt.Sprintf("only %.1f hours of rest since the previous shift, minimum is %.0f hours", gap, MinRestHours),
		Actual:  gap,
		Limit:   MinRestHours,
	}, nil
}
