package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the HTTP roster provider.
var (
	ErrRosterEmptyRecord = errors.New("roster service returned an empty record")
)

// HTTPProvider fetches random student schedules over HTTP. A fetch
// failure aborts the whole import; there is no retry at this level.
type HTTPProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Roster service endpoint
	log     *slog.Logger // Logger for logging operations
}

// NewHTTPProvider creates a roster provider for the given endpoint.
func NewHTTPProvider(baseURL string, log *slog.Logger) *HTTPProvider {
	const timeout = 10
	return &HTTPProvider{
		client:  &http.Client{Timeout: timeout * time.Second},
		baseURL: baseURL,
		log:     log,
	}
}

// NewHTTPProviderWithClient creates a roster provider with a custom HTTP
// client. Useful for testing with mocked clients.
func NewHTTPProviderWithClient(client HTTPClient, baseURL string, log *slog.Logger) *HTTPProvider {
	return &HTTPProvider{client: client, baseURL: baseURL, log: log}
}

// FetchRandomStudent retrieves one random student record.
func (p *HTTPProvider) FetchRandomStudent(ctx context.Context) (*StudentRecord, error) {
	p.log.DebugContext(ctx, "Fetching random student", "url", p.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute roster request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		p.log.ErrorContext(ctx, "Roster service error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("roster service returned status %d: %s", resp.StatusCode, string(body))
	}

	var record StudentRecord
	if err = json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode roster response: %w", err)
	}

	if record.ID == 0 {
		return nil, ErrRosterEmptyRecord
	}

	p.log.DebugContext(ctx, "Fetched student record", "id", record.ID, "sections", len(record.Sections))
	return &record, nil
}
