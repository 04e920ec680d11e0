package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/campusmeet/meetup-service/internal/models"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// FoursquareBaseURL -- FourSquare venue explore endpoint.
const FoursquareBaseURL = "https://api.foursquare.com/v2/venues/explore"

// foursquareVersion pins the API version the response parser expects.
const foursquareVersion = "20150320"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the FourSquare provider.
var (
	ErrFoursquareEmptyResponse = errors.New("foursquare API returned no venues")
)

// foursquareResponse mirrors the subset of the explore payload we read:
// venue name, location, price tier and first category.
type foursquareResponse struct {
	Response struct {
		Groups []struct {
			Items []struct {
				Venue struct {
					Name     string `json:"name"`
					Location struct {
						Lat float64 `json:"lat"`
						Lng float64 `json:"lng"`
					} `json:"location"`
					Price struct {
						Tier int `json:"tier"`
					} `json:"price"`
					Categories []struct {
						Name string `json:"name"`
					} `json:"categories"`
				} `json:"venue"`
			} `json:"items"`
		} `json:"groups"`
	} `json:"response"`
}

// FoursquareProvider implements venue search using the FourSquare API.
// Requests go through a client-side rate limiter and a circuit breaker,
// so a misbehaving upstream fails fast instead of piling up timeouts.
type FoursquareProvider struct {
	client       HTTPClient
	baseURL      string
	clientID     string
	clientSecret string
	log          *slog.Logger
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker
}

// NewFoursquareProvider creates a FourSquare venue-search provider.
func NewFoursquareProvider(clientID, clientSecret string, rateLimit int, log *slog.Logger) *FoursquareProvider {
	const timeout = 10
	if rateLimit <= 0 {
		rateLimit = 5
		log.Warn("Rate limit for FourSquare API not set, set a default value", "value", rateLimit)
	}

	return &FoursquareProvider{
		client:       &http.Client{Timeout: timeout * time.Second},
		baseURL:      FoursquareBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		log:          log,
		limiter:      rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		breaker:      newPlacesBreaker("foursquare", log),
	}
}

// NewFoursquareProviderWithClient allows injecting a custom HTTP client.
func NewFoursquareProviderWithClient(
	client HTTPClient,
	clientID, clientSecret string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *FoursquareProvider {
	return &FoursquareProvider{
		client:       client,
		baseURL:      FoursquareBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		log:          log,
		limiter:      limiter,
		breaker:      newPlacesBreaker("foursquare", log),
	}
}

func newPlacesBreaker(name string, log *slog.Logger) *gobreaker.CircuitBreaker {
	const (
		maxRequests      = 3
		interval         = 30 * time.Second
		timeout          = 60 * time.Second
		minRequests      = 5
		failureThreshold = 0.6
	)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// Search queries FourSquare for venues within radiusMeters of center.
// A non-empty category narrows the search query.
func (fp *FoursquareProvider) Search(
	ctx context.Context,
	center models.LatLon,
	radiusMeters int,
	category string,
) ([]models.Place, error) {
	fp.log.DebugContext(ctx, "Searching venues using FourSquare",
		"center", center.String(), "radius", radiusMeters, "category", category)

	if fp.limiter != nil {
		if err := fp.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	result, err := fp.breaker.Execute(func() (interface{}, error) {
		return fp.search(ctx, center, radiusMeters, category)
	})
	if err != nil {
		return nil, err
	}

	venues, ok := result.([]models.Place)
	if !ok {
		return nil, errors.New("unexpected breaker result type")
	}
	return venues, nil
}

func (fp *FoursquareProvider) search(
	ctx context.Context,
	center models.LatLon,
	radiusMeters int,
	category string,
) ([]models.Place, error) {
	reqURL, err := url.Parse(fp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("client_id", fp.clientID)
	query.Set("client_secret", fp.clientSecret)
	query.Set("v", foursquareVersion)
	query.Set("ll", center.String())
	query.Set("radius", strconv.Itoa(radiusMeters))
	query.Set("section", "food")
	if category != "" {
		query.Set("query", category)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := fp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute venue search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fp.log.ErrorContext(ctx, "FourSquare API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("foursquare API returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded foursquareResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode foursquare response: %w", err)
	}

	if len(decoded.Response.Groups) == 0 {
		return nil, ErrFoursquareEmptyResponse
	}

	var out []models.Place
	for _, item := range decoded.Response.Groups[0].Items {
		venue := item.Venue
		location, err := models.NewLatLon(venue.Location.Lat, venue.Location.Lng)
		if err != nil {
			fp.log.WarnContext(ctx, "Skipping venue with invalid coordinates", "venue", venue.Name, "error", err)
			continue
		}

		place := models.Place{
			Name:      venue.Name,
			Location:  location,
			PriceTier: venue.Price.Tier,
		}
		if len(venue.Categories) > 0 {
			place.Category = venue.Categories[0].Name
		}
		out = append(out, place)
	}

	if len(out) == 0 {
		return nil, ErrFoursquareEmptyResponse
	}
	return out, nil
}
