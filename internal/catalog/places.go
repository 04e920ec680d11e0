package catalog

import (
	"strings"
	"sync"

	"github.com/campusmeet/meetup-service/internal/models"
)

// PlaceCatalog is an append-only registry of candidate meeting places,
// populated once from the venue provider and queried read-only afterwards.
type PlaceCatalog struct {
	mu     sync.RWMutex
	places map[models.PlaceKey]models.Place
}

// NewPlaceCatalog creates an empty catalog.
func NewPlaceCatalog() *PlaceCatalog {
	return &PlaceCatalog{places: make(map[models.PlaceKey]models.Place)}
}

// Add registers a place. Re-adding an identical identity overwrites the
// entry, which deduplicates repeated provider results.
func (c *PlaceCatalog) Add(place models.Place) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.places[place.Key()] = place
}

// Len returns the number of cached places.
func (c *PlaceCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.places)
}

// PlacesNear returns every cached place within radiusMeters of center.
// No ordering is guaranteed.
func (c *PlaceCatalog) PlacesNear(center models.LatLon, radiusMeters float64) []models.Place {
	return c.PlacesNearWithCategory(center, radiusMeters, "")
}

// PlacesNearWithCategory restricts PlacesNear to a venue category.
// An empty category matches everything; matching is case-insensitive.
func (c *PlaceCatalog) PlacesNearWithCategory(center models.LatLon, radiusMeters float64, category string) []models.Place {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Place
	for _, place := range c.places {
		if category != "" && !strings.EqualFold(place.Category, category) {
			continue
		}
		if center.DistanceTo(place.Location) <= radiusMeters {
			out = append(out, place)
		}
	}
	return out
}
