package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campusmeet/meetup-service/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider implements venue search using the Google Places nearby
// search API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the narrow slice of the Google Maps client the
// provider needs, kept small so tests can substitute it.
type GoogleAPIClient interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// ErrGoogleEmptyResponse is returned when the nearby search has no results.
var ErrGoogleEmptyResponse = errors.New("get empty response from Google Places API")

// NewGoogleProvider creates a Google venue-search provider around an
// existing Maps API client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Search queries Google Places for venues within radiusMeters of center.
// The category, when present, becomes the search keyword.
func (gp *GoogleProvider) Search(
	ctx context.Context,
	center models.LatLon,
	radiusMeters int,
	category string,
) ([]models.Place, error) {
	gp.log.DebugContext(ctx, "Searching venues using Google Places",
		"center", center.String(), "radius", radiusMeters, "category", category)

	req := maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: center.Latitude, Lng: center.Longitude},
		Radius:   uint(radiusMeters),
		Keyword:  category,
		Type:     maps.PlaceTypeRestaurant,
	}

	resp, err := gp.client.NearbySearch(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby places: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, ErrGoogleEmptyResponse
	}

	out := make([]models.Place, 0, len(resp.Results))
	for _, result := range resp.Results {
		location, err := models.NewLatLon(result.Geometry.Location.Lat, result.Geometry.Location.Lng)
		if err != nil {
			gp.log.WarnContext(ctx, "Skipping place with invalid coordinates", "place", result.Name, "error", err)
			continue
		}

		place := models.Place{
			Name:      result.Name,
			Location:  location,
			PriceTier: result.PriceLevel,
		}
		if len(result.Types) > 0 {
			place.Category = result.Types[0]
		}
		out = append(out, place)
	}
	return out, nil
}
