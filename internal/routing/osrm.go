package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/campusmeet/meetup-service/internal/models"
)

// DefaultOSRMBaseURL -- public OSRM demo server.
const DefaultOSRMBaseURL = "https://router.project-osrm.org"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the OSRM provider.
var (
	ErrOSRMNoRoute      = errors.New("osrm API found no route between the points")
	ErrOSRMEmptyPath    = errors.New("osrm API returned an empty path")
	ErrOSRMInvalidCoord = errors.New("osrm API returned an invalid coordinate pair")
)

// osrmResponse represents the JSON response from the OSRM route API,
// restricted to GeoJSON geometry.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat] pairs
		} `json:"geometry"`
	} `json:"routes"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// OSRMProvider implements pedestrian routing against an OSRM-compatible
// API using the foot profile.
type OSRMProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the OSRM API
	log     *slog.Logger // Logger for logging operations
}

// NewOSRMProvider creates an OSRM routing provider. An empty baseURL
// selects the public demo server.
func NewOSRMProvider(baseURL string, log *slog.Logger) *OSRMProvider {
	const timeout = 10
	if baseURL == "" {
		baseURL = DefaultOSRMBaseURL
	}
	return &OSRMProvider{
		client:  &http.Client{Timeout: timeout * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// NewOSRMProviderWithClient creates an OSRM provider with a custom HTTP
// client. Useful for testing with mocked clients.
func NewOSRMProviderWithClient(client HTTPClient, baseURL string, log *slog.Logger) *OSRMProvider {
	if baseURL == "" {
		baseURL = DefaultOSRMBaseURL
	}
	return &OSRMProvider{client: client, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// Route fetches one walking segment between from and to. Transient
// failures (429, 5xx, network errors) are retried with exponential
// backoff while respecting context cancellation.
func (op *OSRMProvider) Route(ctx context.Context, from, to models.LatLon) ([]models.LatLon, error) {
	// OSRM takes lon,lat ordering in the path.
	reqURL := fmt.Sprintf("%s/route/v1/foot/%f,%f;%f,%f?overview=full&geometries=geojson",
		op.baseURL, from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	op.log.DebugContext(ctx, "Routing using OSRM", "url", reqURL)

	resp, err := op.doWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode osrm response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("%w (code %q)", ErrOSRMNoRoute, decoded.Code)
	}

	coords := decoded.Routes[0].Geometry.Coordinates
	if len(coords) == 0 {
		return nil, ErrOSRMEmptyPath
	}

	path := make([]models.LatLon, 0, len(coords))
	for _, pair := range coords {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: %v", ErrOSRMInvalidCoord, pair)
		}
		point, err := models.NewLatLon(pair[1], pair[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOSRMInvalidCoord, pair)
		}
		path = append(path, point)
	}
	return path, nil
}

func (op *OSRMProvider) do(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

func (op *OSRMProvider) doWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := op.do(ctx, reqURL)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				retry = true
			}
		}
		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		op.log.DebugContext(ctx, "Retrying OSRM request", "attempt", attempt, "error", err)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil, lastErr
}
