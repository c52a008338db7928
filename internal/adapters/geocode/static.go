// Package geocode provides the Geocoder port implementations. The only one
// shipped is a static exact-match table standing in for a real provider
// (Nominatim, Mapbox, ...). Any replacement must keep the same contract:
// string in, best-effort single coordinate result or definitive absence out.
package geocode

import (
	"context"
	"strings"

	"github.com/nextneighbor/discover/internal/core/domain"
)

// table maps normalized postal codes and city names to coordinates. German
// entries carry their PLZ; a handful of international cities round it out.
var table = map[string]domain.GeocodingResult{
	// Germany
	"10115":     {Lat: 52.532, Lng: 13.383, DisplayName: "Berlin, Germany"},
	"10117":     {Lat: 52.516, Lng: 13.388, DisplayName: "Berlin Mitte, Germany"},
	"80331":     {Lat: 48.137, Lng: 11.575, DisplayName: "München, Germany"},
	"20095":     {Lat: 53.551, Lng: 9.993, DisplayName: "Hamburg, Germany"},
	"50667":     {Lat: 50.938, Lng: 6.959, DisplayName: "Köln, Germany"},
	"60311":     {Lat: 50.11, Lng: 8.682, DisplayName: "Frankfurt, Germany"},
	"berlin":    {Lat: 52.52, Lng: 13.405, DisplayName: "Berlin, Germany"},
	"münchen":   {Lat: 48.137, Lng: 11.576, DisplayName: "München, Germany"},
	"munich":    {Lat: 48.137, Lng: 11.576, DisplayName: "Munich, Germany"},
	"hamburg":   {Lat: 53.551, Lng: 9.993, DisplayName: "Hamburg, Germany"},
	"köln":      {Lat: 50.938, Lng: 6.959, DisplayName: "Köln, Germany"},
	"cologne":   {Lat: 50.938, Lng: 6.959, DisplayName: "Cologne, Germany"},
	"frankfurt": {Lat: 50.11, Lng: 8.682, DisplayName: "Frankfurt, Germany"},
	// International
	"london":   {Lat: 51.507, Lng: -0.127, DisplayName: "London, UK"},
	"paris":    {Lat: 48.856, Lng: 2.352, DisplayName: "Paris, France"},
	"new york": {Lat: 40.713, Lng: -74.006, DisplayName: "New York, USA"},
	"tokyo":    {Lat: 35.689, Lng: 139.692, DisplayName: "Tokyo, Japan"},
}

// StaticGeocoder implements ports.Geocoder with an in-process lookup table.
type StaticGeocoder struct{}

// NewStaticGeocoder creates the table-backed geocoder.
func NewStaticGeocoder() *StaticGeocoder {
	return &StaticGeocoder{}
}

// Geocode resolves a query by normalized exact match. No match is (nil, nil).
func (g *StaticGeocoder) Geocode(ctx context.Context, query string) (*domain.GeocodingResult, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if result, ok := table[normalized]; ok {
		return &result, nil
	}
	return nil, nil
}
