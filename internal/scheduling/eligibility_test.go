package scheduling

import (
	"testing"

	"github.com/roosterplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityMatcher(t *testing.T) {
	store := newFakeStore()
	store.addAssignment(&domain.Assignment{
		ID:   1,
		Name: "Bouwplaats Rotterdam Haven",
		RequiredLabels: []domain.ObjectLabel{
			{ID: 1, Name: "VCA-VOL"},
			{ID: 2, Name: "BHV"},
		},
	})
	store.addAssignment(&domain.Assignment{ID: 2, Name: "Kantoor Amsterdam Zuid"})
	store.addLabels(10, "VCA-VOL", "BHV", "Heftruck")
	store.addLabels(11, "BHV")

	matcher := NewEligibilityMatcher(store)

	t.Run("holding all required labels passes", func(t *testing.T) {
		assert.NoError(t, matcher.Check(10, 1))
	})

	t.Run("missing label is reported by name", func(t *testing.T) {
		err := matcher.Check(11, 1)

		var eligibilityErr *domain.EligibilityError
		require.ErrorAs(t, err, &eligibilityErr)
		assert.Equal(t, []string{"VCA-VOL"}, eligibilityErr.MissingLabels)
	})

	t.Run("employee without any labels fails against a restricted assignment", func(t *testing.T) {
		err := matcher.Check(12, 1)

		var eligibilityErr *domain.EligibilityError
		require.ErrorAs(t, err, &eligibilityErr)
		assert.ElementsMatch(t, []string{"VCA-VOL", "BHV"}, eligibilityErr.MissingLabels)
	})

	t.Run("assignment without required labels restricts nobody", func(t *testing.T) {
		assert.NoError(t, matcher.Check(12, 2))
	})

	t.Run("unknown assignment", func(t *testing.T) {
		err := matcher.Check(10, 99)

		var notFoundErr *domain.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("boolean form", func(t *testing.T) {
		ok, err := matcher.IsEligible(10, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = matcher.IsEligible(11, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
