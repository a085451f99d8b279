package kernel_test

import (
	"testing"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("valid location", func(t *testing.T) {
		loc, err := kernel.NewLocation("  14 Oxford St, Osu ", 5.556, -0.1826)

		require.NoError(t, err)
		assert.Equal(t, "14 Oxford St, Osu", loc.Address())
		assert.InDelta(t, 5.556, loc.Latitude(), 1e-9)
		assert.InDelta(t, -0.1826, loc.Longitude(), 1e-9)
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		_, err := kernel.NewLocation("", 91, -181)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		_, err := kernel.NewLocation("North Pole", kernel.LatitudeMax, kernel.LongitudeMin)

		require.NoError(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var loc kernel.Location

		require.ErrorIs(t, loc.Validate(), kernel.ErrLocationIsNotConstructed)
	})
}
