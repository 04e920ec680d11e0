// Package routing integrates pedestrian-routing providers. A provider
// returns the ordered coordinates of one walking segment between two
// points.
package routing

import (
	"context"

	"github.com/campusmeet/meetup-service/internal/models"
)

// Provider is an interface that defines point-to-point pedestrian
// routing. The returned path is ordered from origin to destination.
type Provider interface {
	Route(ctx context.Context, from, to models.LatLon) ([]models.LatLon, error)
}
