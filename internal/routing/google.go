package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campusmeet/meetup-service/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider implements pedestrian routing using the Google
// Directions API in walking mode.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the slice of the Google Maps client the provider
// needs, kept narrow so tests can substitute it.
type GoogleAPIClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// ErrGoogleNoRoute is returned when the Directions API finds no route.
var ErrGoogleNoRoute = errors.New("get empty route from Google Directions API")

// NewGoogleProvider creates a Google routing provider around an existing
// Maps API client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Route fetches one walking segment between from and to, decoded from
// the route's overview polyline.
func (gp *GoogleProvider) Route(ctx context.Context, from, to models.LatLon) ([]models.LatLon, error) {
	gp.log.DebugContext(ctx, "Routing using Google Directions", "from", from.String(), "to", to.String())

	req := maps.DirectionsRequest{
		Origin:      from.String(),
		Destination: to.String(),
		Mode:        maps.TravelModeWalking,
	}

	routes, _, err := gp.client.Directions(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, ErrGoogleNoRoute
	}

	decoded, err := maps.DecodePolyline(routes[0].OverviewPolyline.Points)
	if err != nil {
		return nil, fmt.Errorf("failed to decode overview polyline: %w", err)
	}
	if len(decoded) == 0 {
		return nil, ErrGoogleNoRoute
	}

	path := make([]models.LatLon, 0, len(decoded))
	for _, point := range decoded {
		latLon, err := models.NewLatLon(point.Lat, point.Lng)
		if err != nil {
			return nil, fmt.Errorf("polyline point out of range: %w", err)
		}
		path = append(path, latLon)
	}
	return path, nil
}
