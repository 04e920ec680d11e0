package routing

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of pedestrian-routing provider.
type ProviderType string

const (
	// ProviderTypeOSRM represents an OSRM-compatible routing API
	// (free, no API key required).
	ProviderTypeOSRM ProviderType = "osrm"
	// ProviderTypeGoogle represents the Google Directions API in
	// walking mode.
	ProviderTypeGoogle ProviderType = "google"
)

// ProviderConfig holds configuration for creating a routing provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (used by Google provider)
	BaseURL   string       // Base URL override (used by OSRM provider)
	RateLimit int          // Rate limit for requests per second (used by Google provider)
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a routing provider based on the configuration.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeOSRM:
		return NewOSRMProvider(config.BaseURL, config.Logger), nil
	case ProviderTypeGoogle:
		if config.APIKey == "" {
			return nil, errors.New("API key is required for Google provider")
		}
		clientOpts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
		if config.RateLimit > 0 {
			clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
		}
		client, err := maps.NewClient(clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
		}
		return NewGoogleProvider(client, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported routing provider type: %s", config.Type)
	}
}
