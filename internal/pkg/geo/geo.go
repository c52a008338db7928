package geo

import (
	"math"

	"github.com/nextneighbor/discover/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Project places a lat/lng coordinate on a sphere of the given radius
// centered at the origin, using the globe renderer's convention: the north
// pole sits at +y and the azimuth is shifted so the prime meridian faces
// the camera. The orientation must stay exactly this way or markers drift
// off the rendered globe texture.
func Project(lat, lng, radius float64) (x, y, z float64) {
	phi := (90 - lat) * math.Pi / 180
	theta := (lng + 180) * math.Pi / 180

	x = -(radius * math.Sin(phi) * math.Cos(theta))
	y = radius * math.Cos(phi)
	z = radius * math.Sin(phi) * math.Sin(theta)
	return x, y, z
}

// BoundsFromCenter derives an indicative viewport box from a center point
// and a tile zoom level, using 360/2^zoom degrees per zoom step. It ignores
// latitude-dependent longitude compression; it is a viewport heuristic, not
// a geodesic calculation.
func BoundsFromCenter(lat, lng float64, zoom int) domain.Bounds {
	degreesPerZoom := 360 / math.Pow(2, float64(zoom))

	return domain.Bounds{
		North: lat + degreesPerZoom/2,
		South: lat - degreesPerZoom/2,
		East:  lng + degreesPerZoom/2,
		West:  lng - degreesPerZoom/2,
	}
}

// BoundingBox returns the box enclosing a circle of radiusMeters around a
// point, correcting longitude for latitude compression.
func BoundingBox(lat, lng, radiusMeters float64) domain.Bounds {
	latDelta := radiusMeters / 111320.0
	lngDelta := radiusMeters / (111320.0 * math.Cos(toRad(lat)))

	return domain.Bounds{
		North: lat + latDelta,
		South: lat - latDelta,
		East:  lng + lngDelta,
		West:  lng - lngDelta,
	}
}

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
