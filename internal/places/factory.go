package places

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of venue-search provider.
type ProviderType string

const (
	// ProviderTypeFoursquare represents the FourSquare venues API.
	ProviderTypeFoursquare ProviderType = "foursquare"
	// ProviderTypeGoogle represents the Google Places nearby search API.
	ProviderTypeGoogle ProviderType = "google"
)

// ProviderConfig holds configuration for creating a venue-search provider.
type ProviderConfig struct {
	Type         ProviderType // Type of provider to create
	APIKey       string       // API key (used by Google provider)
	ClientID     string       // Client id (used by FourSquare provider)
	ClientSecret string       // Client secret (used by FourSquare provider)
	RateLimit    int          // Requests per second allowed against the provider
	Logger       *slog.Logger // Logger for the provider
}

// NewProvider creates a venue-search provider based on the configuration.
// Provider instantiation stays decoupled from the services that consume it.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeFoursquare:
		if config.ClientID == "" || config.ClientSecret == "" {
			return nil, errors.New("client id and secret are required for FourSquare provider")
		}
		return NewFoursquareProvider(config.ClientID, config.ClientSecret, config.RateLimit, config.Logger), nil
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
		return nil, fmt.Errorf("unsupported place provider type: %s", config.Type)
	}
}
