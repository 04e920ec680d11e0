package places_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmeet/meetup-service/internal/places"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("foursquare provider", func(t *testing.T) {
		provider, err := places.NewProvider(places.ProviderConfig{
			Type:         places.ProviderTypeFoursquare,
			ClientID:     "id",
			ClientSecret: "secret",
			RateLimit:    5,
			Logger:       logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &places.FoursquareProvider{}, provider)
	})

	t.Run("foursquare requires credentials", func(t *testing.T) {
		_, err := places.NewProvider(places.ProviderConfig{
			Type:   places.ProviderTypeFoursquare,
			Logger: logger,
		})
		require.Error(t, err)
	})

	t.Run("google provider", func(t *testing.T) {
		provider, err := places.NewProvider(places.ProviderConfig{
			Type:   places.ProviderTypeGoogle,
			APIKey: "test-key",
			Logger: logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &places.GoogleProvider{}, provider)
	})

	t.Run("google requires api key", func(t *testing.T) {
		_, err := places.NewProvider(places.ProviderConfig{
			Type:   places.ProviderTypeGoogle,
			Logger: logger,
		})
		require.Error(t, err)
	})

	t.Run("unknown provider type", func(t *testing.T) {
		_, err := places.NewProvider(places.ProviderConfig{
			Type:   "yelp",
			Logger: logger,
		})
		require.Error(t, err)
	})
}
