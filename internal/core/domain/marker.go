package domain

import "errors"

// ErrNotFound reports a lookup for an id the store does not hold. Handlers
// check for it with errors.Is to keep store failures from reading as 404s.
var ErrNotFound = errors.New("not found")

// Marker is a community listing pinned to a location: a place, an event,
// or a service offered by a neighbor.
//
// JSON field names follow the wire contract consumed by the globe/map
// front-end (camelCase, not snake_case).
type Marker struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	CreatedAt   string  `json:"createdAt"`

	// Distance in meters from a query point, set only by nearby lookups.
	Distance *float64 `json:"distance,omitempty"`
}

// GeocodingResult is a resolved free-text location query. It drives a
// fly-to viewport change on the client; it is never persisted.
type GeocodingResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}
