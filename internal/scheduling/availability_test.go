package scheduling

import (
	"testing"
	"time"

	"github.com/roosterplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityResolver(t *testing.T) {
	// 2026-02-16 is a Monday.
	monday := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	t.Run("exception overrides a matching pattern", func(t *testing.T) {
		store := newFakeStore()
		store.addEmployee(&domain.Employee{ID: 1, ManagesOwnAvailability: true})
		store.addPattern(domain.AvailabilityPattern{
			EmployeeID: 1, DayOfWeek: int32(time.Monday),
			StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
		})
		store.addException(&domain.AvailabilityException{
			EmployeeID: 1, Date: monday, IsAvailable: false, Reason: "dentist appointment",
		})

		result, err := NewAvailabilityResolver(store).Resolve(1, monday, nil)
		require.NoError(t, err)

		assert.False(t, result.IsAvailable)
		assert.Equal(t, domain.AvailabilitySourceException, result.Source)
		assert.Equal(t, "dentist appointment", result.Reason)
	})

	t.Run("positive exception carries its window", func(t *testing.T) {
		store := newFakeStore()
		store.addEmployee(&domain.Employee{ID: 1, ManagesOwnAvailability: true})
		store.addException(&domain.AvailabilityException{
			EmployeeID: 1, Date: monday, IsAvailable: true,
			StartTime: "13:00", EndTime: "18:00", Reason: "extra afternoon",
		})

		result, err := NewAvailabilityResolver(store).Resolve(1, monday, nil)
		require.NoError(t, err)

		assert.True(t, result.IsAvailable)
		assert.Equal(t, domain.AvailabilitySourceException, result.Source)
		assert.Equal(t, []domain.TimeWindow{{Start: "13:00", End: "18:00"}}, result.Windows)
	})

	t.Run("pattern applies when no exception exists", func(t *testing.T) {
		store := newFakeStore()
		store.addEmployee(&domain.Employee{ID: 1, ManagesOwnAvailability: true})
		store.addPattern(domain.AvailabilityPattern{
			EmployeeID: 1, DayOfWeek: int32(time.Monday),
			StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
		})

		result, err := NewAvailabilityResolver(store).Resolve(1, monday, nil)
		require.NoError(t, err)

		assert.True(t, result.IsAvailable)
		assert.Equal(t, domain.AvailabilitySourcePattern, result.Source)
		assert.Equal(t, []domain.TimeWindow{{Start: "09:00", End: "17:00"}}, result.Windows)
	})

	t.Run("self-managed employee without a pattern for the day is unavailable", func(t *testing.T) {
		store := newFakeStore()
		store.addEmployee(&domain.Employee{ID: 1, ManagesOwnAvailability: true})
		store.addPattern(domain.AvailabilityPattern{
			EmployeeID: 1, DayOfWeek: int32(time.Monday),
			StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
		})

		result, err := NewAvailabilityResolver(store).Resolve(1, tuesday, nil)
		require.NoError(t, err)

		assert.False(t, result.IsAvailable)
		assert.Equal(t, "no availability set for this day", result.Reason)
	})

	t.Run("default policy covers employees who do not manage availability", func(t *testing.T) {
		store := newFakeStore()
		store.addEmployee(&domain.Employee{ID: 2, ManagesOwnAvailability: false})

		result, err := NewAvailabilityResolver(store).Resolve(2, monday, nil)
		require.NoError(t, err)

		assert.True(t, result.IsAvailable)
		assert.Equal(t, domain.AvailabilitySourceDefaultPolicy, result.Source)
	})

	t.Run("explicit unavailable pattern beats the default policy", func(t *testing.T) {
		store := newFakeStore()
		store.addEmployee(&domain.Employee{ID: 2, ManagesOwnAvailability: false})
		store.addPattern(domain.AvailabilityPattern{
			EmployeeID: 2, DayOfWeek: int32(time.Monday),
			StartTime: "00:00", EndTime: "23:59", IsAvailable: false,
		})

		result, err := NewAvailabilityResolver(store).Resolve(2, monday, nil)
		require.NoError(t, err)

		assert.False(t, result.IsAvailable)
		assert.Equal(t, domain.AvailabilitySourcePattern, result.Source)
	})

	t.Run("window must be fully contained in one pattern", func(t *testing.T) {
		store := newFakeStore()
		store.addEmployee(&domain.Employee{ID: 1, ManagesOwnAvailability: true})
		store.addPattern(domain.AvailabilityPattern{
			EmployeeID: 1, DayOfWeek: int32(time.Monday),
			StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
		})
		resolver := NewAvailabilityResolver(store)

		result, err := resolver.Resolve(1, monday, &domain.TimeWindow{Start: "10:00", End: "16:00"})
		require.NoError(t, err)
		assert.True(t, result.IsAvailable)

		result, err = resolver.Resolve(1, monday, &domain.TimeWindow{Start: "15:00", End: "19:00"})
		require.NoError(t, err)
		assert.False(t, result.IsAvailable)
		// The day's windows come back so the caller can suggest alternatives.
		assert.Equal(t, []domain.TimeWindow{{Start: "09:00", End: "17:00"}}, result.Windows)
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		store := newFakeStore()
		store.addEmployee(&domain.Employee{ID: 1, ManagesOwnAvailability: true})
		store.addPattern(domain.AvailabilityPattern{
			EmployeeID: 1, DayOfWeek: int32(time.Monday),
			StartTime: "09:00", EndTime: "12:00", IsAvailable: true,
		})
		store.addPattern(domain.AvailabilityPattern{
			EmployeeID: 1, DayOfWeek: int32(time.Monday),
			StartTime: "13:00", EndTime: "17:00", IsAvailable: true,
		})
		resolver := NewAvailabilityResolver(store)

		first, err := resolver.Resolve(1, monday, nil)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := resolver.Resolve(1, monday, nil)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("unknown employee", func(t *testing.T) {
		store := newFakeStore()

		_, err := NewAvailabilityResolver(store).Resolve(99, monday, nil)

		var notFoundErr *domain.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}
