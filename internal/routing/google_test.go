package routing_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"github.com/campusmeet/meetup-service/internal/models"
	"github.com/campusmeet/meetup-service/internal/routing"
)

// mockGoogleClient is a mock implementation of GoogleAPIClient.
type mockGoogleClient struct {
	directionsFunc func(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

func (m *mockGoogleClient) Directions(
	ctx context.Context,
	r *maps.DirectionsRequest,
) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	return m.directionsFunc(ctx, r)
}

func TestGoogleRoute(t *testing.T) {
	ctx := context.Background()
	from := models.MustLatLon(38.5, -120.2)
	to := models.MustLatLon(43.252, -126.453)

	t.Run("successful route", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			directionsFunc: func(_ context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
				assert.Equal(t, from.String(), r.Origin)
				assert.Equal(t, to.String(), r.Destination)
				assert.Equal(t, maps.TravelModeWalking, r.Mode)

				route := maps.Route{
					OverviewPolyline: maps.Polyline{Points: "_p~iF~ps|U_ulLnnqC_mqNvxq`@"},
				}
				return []maps.Route{route}, nil, nil
			},
		}

		provider := routing.NewGoogleProvider(mockClient, slog.Default())
		path, err := provider.Route(ctx, from, to)

		require.NoError(t, err)
		require.Len(t, path, 3)
		assert.InEpsilon(t, 38.5, path[0].Latitude, 1e-4)
		assert.InEpsilon(t, -120.2, path[0].Longitude, 1e-4)
		assert.InEpsilon(t, 43.252, path[2].Latitude, 1e-4)
		assert.InEpsilon(t, -126.453, path[2].Longitude, 1e-4)
	})

	t.Run("api returns error", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			directionsFunc: func(_ context.Context, _ *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
				return nil, nil, assert.AnError
			},
		}

		provider := routing.NewGoogleProvider(mockClient, slog.Default())
		_, err := provider.Route(ctx, from, to)

		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("no routes", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			directionsFunc: func(_ context.Context, _ *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
				return nil, nil, nil
			},
		}

		provider := routing.NewGoogleProvider(mockClient, slog.Default())
		_, err := provider.Route(ctx, from, to)

		require.ErrorIs(t, err, routing.ErrGoogleNoRoute)
	})
}
