package models

// Place is a venue at which people can meet. Places are values: two
// results with the same name and location are the same place, which is
// what candidate-set intersection relies on.
type Place struct {
	Name      string
	Location  LatLon
	Category  string // Venue category, e.g. "Café".
	PriceTier int    // Price tier, 0 is the cheapest.
}

// PlaceKey is the identity used for set membership.
type PlaceKey struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Key returns the place's set-membership identity (name + location).
func (p Place) Key() PlaceKey {
	return PlaceKey{Name: p.Name, Latitude: p.Location.Latitude, Longitude: p.Location.Longitude}
}
