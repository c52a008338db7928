package domain

// Bounds is an axis-aligned lat/lng bounding rectangle, in degrees.
// South <= North and West <= East are expected but not enforced; boxes
// crossing the antimeridian (west > east) are not supported.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether the point lies inside the box. All four edges
// are inclusive, so a marker sitting exactly on a boundary is kept.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat <= b.North && lat >= b.South && lng <= b.East && lng >= b.West
}
