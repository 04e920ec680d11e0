package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmeet/meetup-service/internal/models"
)

func TestNewLatLon(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		point, err := models.NewLatLon(49.264865, -123.252782)
		require.NoError(t, err)
		assert.InEpsilon(t, 49.264865, point.Latitude, 1e-9)
		assert.InEpsilon(t, -123.252782, point.Longitude, 1e-9)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := models.NewLatLon(91, 0)
		require.ErrorIs(t, err, models.ErrLatitudeRange)

		_, err = models.NewLatLon(-90.5, 0)
		require.ErrorIs(t, err, models.ErrLatitudeRange)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		_, err := models.NewLatLon(0, 180.1)
		require.ErrorIs(t, err, models.ErrLongitudeRange)
	})
}

func TestDistanceTo(t *testing.T) {
	dmp := models.MustLatLon(49.261474, -123.248060)
	buchanan := models.MustLatLon(49.269258, -123.254784)

	t.Run("distance to self is zero", func(t *testing.T) {
		assert.Zero(t, dmp.DistanceTo(dmp))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InEpsilon(t, dmp.DistanceTo(buchanan), buchanan.DistanceTo(dmp), 1e-9)
	})

	t.Run("known campus walk", func(t *testing.T) {
		// About 990 m between the two buildings.
		d := dmp.DistanceTo(buchanan)
		assert.Greater(t, d, 900.0)
		assert.Less(t, d, 1100.0)
	})
}

func TestLatLonString(t *testing.T) {
	point := models.MustLatLon(49.25, -123.25)
	assert.Equal(t, "49.250000,-123.250000", point.String())
}
