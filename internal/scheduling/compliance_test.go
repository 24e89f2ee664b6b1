package scheduling

import (
	"testing"
	"time"

	"github.com/roosterplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addShift(store *fakeStore, employeeID int64, start, end time.Time, breakMinutes int32) *domain.Shift {
	shift := &domain.Shift{
		EmployeeID:   &employeeID,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMinutes,
		Status:       domain.ShiftStatusScheduled,
	}
	_ = store.CreateShift(shift)
	return shift
}

func TestCheckDailyHours(t *testing.T) {
	validator := NewComplianceValidator(newFakeStore())

	t.Run("within the limit", func(t *testing.T) {
		assert.Nil(t, validator.CheckDailyHours(8, 9))
		assert.Nil(t, validator.CheckDailyHours(9, 9))
	})

	t.Run("over the limit", func(t *testing.T) {
		warning := validator.CheckDailyHours(10.5, 9)

		require.NotNil(t, warning)
		assert.Equal(t, domain.WarningDailyHoursExceeded, warning.Code)
		assert.Equal(t, 10.5, warning.Actual)
		assert.Equal(t, 9.0, warning.Limit)
	})

	t.Run("zero limit means unlimited", func(t *testing.T) {
		assert.Nil(t, validator.CheckDailyHours(16, 0))
	})
}

func TestCheckWeeklyHours(t *testing.T) {
	// 2026-02-16 is a Monday.
	monday := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	t.Run("existing week hours plus the new shift", func(t *testing.T) {
		store := newFakeStore()
		// Three 8h shifts Mon-Wed puts the week at 24 hours.
		for day := 0; day < 3; day++ {
			date := monday.AddDate(0, 0, day)
			addShift(store, 1, date.Add(9*time.Hour), date.Add(17*time.Hour), 0)
		}
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckWeeklyHours(1, monday.AddDate(0, 0, 3), 30, 8, nil)
		require.NoError(t, err)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarningWeeklyHoursExceeded, warning.Code)
		assert.InDelta(t, 32.0, warning.Actual, 0.001)

		warning, err = validator.CheckWeeklyHours(1, monday.AddDate(0, 0, 3), 40, 8, nil)
		require.NoError(t, err)
		assert.Nil(t, warning)
	})

	t.Run("shifts outside the monday-sunday week do not count", func(t *testing.T) {
		store := newFakeStore()
		// Sunday before and Monday after the target week.
		previousSunday := monday.AddDate(0, 0, -1)
		addShift(store, 1, previousSunday.Add(9*time.Hour), previousSunday.Add(17*time.Hour), 0)
		nextMonday := monday.AddDate(0, 0, 7)
		addShift(store, 1, nextMonday.Add(9*time.Hour), nextMonday.Add(17*time.Hour), 0)
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckWeeklyHours(1, monday, 10, 8, nil)
		require.NoError(t, err)
		assert.Nil(t, warning)
	})

	t.Run("cancelled shifts do not count", func(t *testing.T) {
		store := newFakeStore()
		cancelled := addShift(store, 1, monday.Add(9*time.Hour), monday.Add(17*time.Hour), 0)
		cancelled.Status = domain.ShiftStatusCancelled
		_ = store.UpdateShift(cancelled)
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckWeeklyHours(1, monday, 10, 8, nil)
		require.NoError(t, err)
		assert.Nil(t, warning)
	})

	t.Run("breaks reduce counted hours", func(t *testing.T) {
		store := newFakeStore()
		// 8h on the clock minus a 60 minute break is 7 worked hours.
		addShift(store, 1, monday.Add(9*time.Hour), monday.Add(17*time.Hour), 60)
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckWeeklyHours(1, monday, 15, 8, nil)
		require.NoError(t, err)
		assert.Nil(t, warning)
	})

	t.Run("excluded shift is not counted twice on update", func(t *testing.T) {
		store := newFakeStore()
		existing := addShift(store, 1, monday.Add(9*time.Hour), monday.Add(17*time.Hour), 0)
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckWeeklyHours(1, monday, 10, 9, &existing.ID)
		require.NoError(t, err)
		assert.Nil(t, warning)
	})

	t.Run("total is independent of shift insertion order", func(t *testing.T) {
		forward := newFakeStore()
		backward := newFakeStore()
		for day := 0; day < 5; day++ {
			date := monday.AddDate(0, 0, day)
			addShift(forward, 1, date.Add(9*time.Hour), date.Add(17*time.Hour), 30)
		}
		for day := 4; day >= 0; day-- {
			date := monday.AddDate(0, 0, day)
			addShift(backward, 1, date.Add(9*time.Hour), date.Add(17*time.Hour), 30)
		}

		w1, err := NewComplianceValidator(forward).CheckWeeklyHours(1, monday, 30, 4, nil)
		require.NoError(t, err)
		w2, err := NewComplianceValidator(backward).CheckWeeklyHours(1, monday, 30, 4, nil)
		require.NoError(t, err)

		require.NotNil(t, w1)
		require.NotNil(t, w2)
		assert.Equal(t, w1.Actual, w2.Actual)
	})
}

func TestCheckRestTime(t *testing.T) {
	day := time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC)

	t.Run("short gap after an evening shift", func(t *testing.T) {
		store := newFakeStore()
		// Shift ends 23:00 the day before, next shift starts 08:00: a 9 hour gap.
		previous := day.AddDate(0, 0, -1)
		addShift(store, 1, previous.Add(15*time.Hour), previous.Add(23*time.Hour), 0)
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckRestTime(1, day.Add(8*time.Hour), nil)
		require.NoError(t, err)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarningInsufficientRest, warning.Code)
		assert.InDelta(t, 9.0, warning.Actual, 0.001)
		assert.Equal(t, MinRestHours, warning.Limit)
	})

	t.Run("sufficient gap", func(t *testing.T) {
		store := newFakeStore()
		previous := day.AddDate(0, 0, -1)
		addShift(store, 1, previous.Add(9*time.Hour), previous.Add(17*time.Hour), 0)
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckRestTime(1, day.Add(8*time.Hour), nil)
		require.NoError(t, err)
		assert.Nil(t, warning)
	})

	t.Run("overnight shift ending on the previous day is found", func(t *testing.T) {
		store := newFakeStore()
		// Starts two days before, ends 06:00 on the previous day.
		twoDaysAgo := day.AddDate(0, 0, -2)
		addShift(store, 1, twoDaysAgo.Add(22*time.Hour), twoDaysAgo.Add(30*time.Hour), 0)
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckRestTime(1, day.Add(8*time.Hour), nil)
		require.NoError(t, err)
		// Gap is 26 hours, no warning expected.
		assert.Nil(t, warning)

		// A later shift on the previous day shrinks the gap below the minimum.
		previous := day.AddDate(0, 0, -1)
		addShift(store, 1, previous.Add(14*time.Hour), previous.Add(22*time.Hour), 0)

		warning, err = validator.CheckRestTime(1, day.Add(8*time.Hour), nil)
		require.NoError(t, err)
		require.NotNil(t, warning)
		assert.InDelta(t, 10.0, warning.Actual, 0.001)
	})

	t.Run("no shift on the previous day", func(t *testing.T) {
		store := newFakeStore()
		validator := NewComplianceValidator(store)

		warning, err := validator.CheckRestTime(1, day.Add(8*time.Hour), nil)
		require.NoError(t, err)
		assert.Nil(t, warning)
	})
}
