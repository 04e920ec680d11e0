// Package places integrates venue-search providers. A provider returns
// candidate meeting places around a point; the catalog caches them for
// the process lifetime.
package places

import (
	"context"

	"github.com/campusmeet/meetup-service/internal/models"
)

// Provider is an interface that defines venue search around a center
// point. An empty category means no filtering.
type Provider interface {
	Search(ctx context.Context, center models.LatLon, radiusMeters int, category string) ([]models.Place, error)
}
