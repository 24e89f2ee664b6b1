package scheduling

import (
	"testing"
	"time"

	"github.com/roosterplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeShiftTimes(t *testing.T) {
	t.Run("regular shift stays on one day", func(t *testing.T) {
		start, end, err := NormalizeShiftTimes("2026-02-15", "09:00", "17:00")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 2, 15, 17, 0, 0, 0, time.UTC), end)
	})

	t.Run("overnight shift rolls the end to the next day", func(t *testing.T) {
		start, end, err := NormalizeShiftTimes("2026-02-15", "22:00", "06:00")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 2, 15, 22, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 2, 16, 6, 0, 0, 0, time.UTC), end)
		assert.True(t, end.After(start))
	})

	t.Run("overnight roll across month end", func(t *testing.T) {
		start, end, err := NormalizeShiftTimes("2026-01-31", "23:00", "07:00")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 2, 1, 7, 0, 0, 0, time.UTC), end)
	})

	t.Run("end equal to start is rejected", func(t *testing.T) {
		_, _, err := NormalizeShiftTimes("2026-02-15", "09:00", "09:00")

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "endTime", validationErr.Field)
	})

	t.Run("malformed inputs are rejected", func(t *testing.T) {
		_, _, err := NormalizeShiftTimes("15-02-2026", "09:00", "17:00")
		assert.Error(t, err)

		_, _, err = NormalizeShiftTimes("2026-02-15", "9am", "17:00")
		assert.Error(t, err)

		_, _, err = NormalizeShiftTimes("2026-02-15", "09:00", "25:00")
		assert.Error(t, err)
	})

	t.Run("result is independent of wall clock", func(t *testing.T) {
		s1, e1, err := NormalizeShiftTimes("2026-02-15", "22:00", "06:00")
		require.NoError(t, err)
		s2, e2, err := NormalizeShiftTimes("2026-02-15", "22:00", "06:00")
		require.NoError(t, err)

		assert.Equal(t, s1, s2)
		assert.Equal(t, e1, e2)
		assert.Equal(t, time.UTC, s1.Location())
	})
}

func TestWeekBounds(t *testing.T) {
	t.Run("midweek day", func(t *testing.T) {
		// 2026-02-18 is a Wednesday.
		monday, nextMonday := weekBounds(time.Date(2026, 2, 18, 15, 30, 0, 0, time.UTC))

		assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), monday)
		assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), nextMonday)
	})

	t.Run("sunday belongs to the preceding monday", func(t *testing.T) {
		// 2026-02-22 is a Sunday.
		monday, _ := weekBounds(time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), monday)
	})

	t.Run("monday starts its own week", func(t *testing.T) {
		monday, nextMonday := weekBounds(time.Date(2026, 2, 16, 23, 59, 0, 0, time.UTC))

		assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), monday)
		assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), nextMonday)
	})
}

func TestWindowWithin(t *testing.T) {
	pattern := domain.AvailabilityPattern{StartTime: "09:00", EndTime: "17:00"}

	assert.True(t, windowWithin(domain.TimeWindow{Start: "09:00", End: "17:00"}, pattern))
	assert.True(t, windowWithin(domain.TimeWindow{Start: "10:00", End: "12:00"}, pattern))
	assert.False(t, windowWithin(domain.TimeWindow{Start: "08:00", End: "12:00"}, pattern))
	assert.False(t, windowWithin(domain.TimeWindow{Start: "16:00", End: "18:00"}, pattern))
}
