package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusmeet/meetup-service/internal/catalog"
	"github.com/campusmeet/meetup-service/internal/meetuperr"
	"github.com/campusmeet/meetup-service/internal/metrics"
	"github.com/campusmeet/meetup-service/internal/models"
	"github.com/campusmeet/meetup-service/internal/places"
)

// PlaceLoader populates the place catalog from the venue provider.
// Population happens once at startup; the resolver then reads the
// catalog without further provider calls.
type PlaceLoader struct {
	log      *slog.Logger          // Logger for logging loader activity
	provider places.Provider       // Venue-search provider
	catalog  *catalog.PlaceCatalog // Destination catalog
	metrics  *metrics.Metrics      // Metrics for provider latency and cache size
}

// NewPlaceLoader creates a loader filling the catalog from the provider.
func NewPlaceLoader(
	log *slog.Logger,
	provider places.Provider,
	catalog *catalog.PlaceCatalog,
	metrics *metrics.Metrics,
) *PlaceLoader {
	return &PlaceLoader{log: log, provider: provider, catalog: catalog, metrics: metrics}
}

// Populate searches for venues around center and caches every result.
// Returns the number of places now held by the catalog. A provider
// failure aborts the whole operation.
func (pl *PlaceLoader) Populate(ctx context.Context, center models.LatLon, radiusMeters int, category string) (int, error) {
	startTime := time.Now()
	found, err := pl.provider.Search(ctx, center, radiusMeters, category)
	pl.metrics.RequestSeconds.WithLabelValues("places").Observe(time.Since(startTime).Seconds())

	if err != nil {
		pl.metrics.ProviderErrors.Inc()
		return 0, fmt.Errorf("populate place catalog: %w", meetuperr.External("places", err))
	}

	for _, place := range found {
		pl.catalog.Add(place)
	}

	total := pl.catalog.Len()
	pl.metrics.PlacesCached.Set(float64(total))
	pl.log.InfoContext(ctx, "Place catalog populated", "found", len(found), "total", total)
	return total, nil
}
