package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/campusmeet/meetup-service/internal/models"
)

// Config holds the configuration settings for the meetup service.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The HTTP API and monitoring server port.
// - Workers: The number of concurrent route-segment fetchers.
// - RosterURL: Endpoint of the enrollment service handing out schedules.
// - Place/Routing provider settings: which provider to use and its keys.
// - Campus: Center and radius used to populate the place catalog.
// - DayStart/DayEnd: Bounds for free-block computation.
type Config struct {
	Env     string // Env is the current environment: local, dev, prod.
	Port    int    // Port is the HTTP server port.
	Workers int    // The number of concurrent route-segment fetchers.

	RosterURL string // RosterURL is the roster service endpoint.

	PlaceProvider     string // Which venue-search provider to use (foursquare, google).
	PlaceAPIKey       string // API key for the Google Places provider.
	PlaceClientID     string // Client id for the FourSquare provider.
	PlaceClientSecret string // Client secret for the FourSquare provider.
	PlaceRateLimit    int    // Requests per second allowed against the venue provider.

	RoutingProvider string // Which routing provider to use (osrm, google).
	RoutingAPIKey   string // API key for the Google Directions provider.
	RoutingBaseURL  string // Base URL override for the OSRM provider.

	Campus       models.LatLon // Campus center for the initial place load.
	CampusRadius int           // Radius in meters for the initial place load.

	DayStart models.ClockTime // Opening bound for free-block computation.
	DayEnd   models.ClockTime // Closing bound for free-block computation.
}

// MustLoad loads the configuration from the environment (optionally via a
// .env file) and panics on invalid values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MEETUP")
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", 8080)
	v.SetDefault("workers", 4)
	v.SetDefault("roster_url", "http://kramer.nss.cs.ubc.ca:8081/getStudent")
	v.SetDefault("place_provider", "foursquare")
	v.SetDefault("place_rate_limit", 5)
	v.SetDefault("routing_provider", "osrm")
	v.SetDefault("routing_base_url", "")
	// A central location on campus that makes a handy default center.
	v.SetDefault("campus_lat", 49.264865)
	v.SetDefault("campus_lon", -123.252782)
	v.SetDefault("campus_radius", 3000)
	v.SetDefault("day_start", "08:00")
	v.SetDefault("day_end", "22:00")

	port := v.GetInt("port")
	if port <= 0 {
		panic("failed to parse port from configuration")
	}

	workers := v.GetInt("workers")
	if workers <= 0 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	campus, err := models.NewLatLon(v.GetFloat64("campus_lat"), v.GetFloat64("campus_lon"))
	if err != nil {
		panic("failed to parse campus center from configuration")
	}

	dayStart, err := models.ParseClock(v.GetString("day_start"))
	if err != nil {
		panic("failed to parse day start from configuration")
	}
	dayEnd, err := models.ParseClock(v.GetString("day_end"))
	if err != nil {
		panic("failed to parse day end from configuration")
	}
	if dayStart >= dayEnd {
		panic("day start must precede day end in configuration")
	}

	return &Config{
		Env:               v.GetString("env"),
		Port:              port,
		Workers:           workers,
		RosterURL:         v.GetString("roster_url"),
		PlaceProvider:     v.GetString("place_provider"),
		PlaceAPIKey:       v.GetString("place_api_key"),
		PlaceClientID:     v.GetString("place_client_id"),
		PlaceClientSecret: v.GetString("place_client_secret"),
		PlaceRateLimit:    v.GetInt("place_rate_limit"),
		RoutingProvider:   v.GetString("routing_provider"),
		RoutingAPIKey:     v.GetString("routing_api_key"),
		RoutingBaseURL:    v.GetString("routing_base_url"),
		Campus:            campus,
		CampusRadius:      v.GetInt("campus_radius"),
		DayStart:          dayStart,
		DayEnd:            dayEnd,
	}
}
