package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nextneighbor/discover/internal/core/domain"
	"github.com/nextneighbor/discover/internal/core/usecases"
	"github.com/nextneighbor/discover/internal/pkg/geo"
	"github.com/nextneighbor/discover/internal/pkg/metrics"
)

// filterFromQuery builds a marker filter from request query parameters.
//
// Bounds are lenient: the filter is only active when all four of north,
// south, east, west parse as floats. Anything else (missing, partial,
// non-numeric) leaves bounds filtering off rather than failing the request,
// so a map client with a half-built viewport still gets markers.
func filterFromQuery(c *fiber.Ctx) domain.MarkerFilter {
	var filter domain.MarkerFilter

	north, errN := strconv.ParseFloat(c.Query("north"), 64)
	south, errS := strconv.ParseFloat(c.Query("south"), 64)
	east, errE := strconv.ParseFloat(c.Query("east"), 64)
	west, errW := strconv.ParseFloat(c.Query("west"), 64)
	if errN == nil && errS == nil && errE == nil && errW == nil {
		filter.Bounds = &domain.Bounds{North: north, South: south, East: east, West: west}
	}

	// category is repeatable; empty values carry no constraint
	for _, raw := range c.Context().QueryArgs().PeekMulti("category") {
		if v := strings.TrimSpace(string(raw)); v != "" {
			filter.Categories = append(filter.Categories, v)
		}
	}

	filter.Search = c.Query("search")
	return filter
}

// PinsHandler serves the map pin feed consumed by the discovery front-end.
func PinsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metrics.MarkerQueries.WithLabelValues("pins").Inc()

		markers, err := deps.Markers.Query(c.Context(), filterFromQuery(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		if markers == nil {
			markers = []domain.Marker{}
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(fiber.Map{"items": markers})
	}
}

// ListMarkersHandler is the versioned alias of the pin feed.
func ListMarkersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metrics.MarkerQueries.WithLabelValues("rest").Inc()

		markers, err := deps.Markers.Query(c.Context(), filterFromQuery(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		if markers == nil {
			markers = []domain.Marker{}
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(fiber.Map{"items": markers, "total": len(markers)})
	}
}

// GetMarkerHandler returns a single marker by ID.
func GetMarkerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "marker id is required")
		}
		marker, err := deps.Markers.GetByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "marker not found")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(marker)
	}
}

// NearbyMarkersHandler returns markers within a radius of a point, nearest
// first, each annotated with its distance in meters.
func NearbyMarkersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			return errBadRequest(c, "lat and lng are required")
		}
		radius := c.QueryFloat("radius", 1000)
		if radius <= 0 || radius > 100000 {
			return errBadRequest(c, "radius must be between 1 and 100000 meters")
		}
		limit := c.QueryInt("limit", 50)

		markers, err := deps.Markers.Nearby(c.Context(), lat, lng, radius, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if markers == nil {
			markers = []domain.Marker{}
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(fiber.Map{"items": markers, "total": len(markers)})
	}
}

// ListCategoriesHandler returns the category metadata table.
func ListCategoriesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(fiber.Map{"items": domain.Categories()})
	}
}

// GeocodeHandler resolves a free-text location search. A miss is a normal
// answer, not an error: the response carries found=false with a 200 status.
func GeocodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")

		result, err := deps.Geocode.Search(c.Context(), query)
		if err != nil {
			var verr *usecases.ValidationError
			if errors.As(err, &verr) {
				return errBadRequest(c, verr.Error())
			}
			return errInternal(c, err.Error())
		}
		if result == nil {
			return c.JSON(fiber.Map{"found": false})
		}

		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(fiber.Map{"found": true, "result": result})
	}
}

// ViewportHandler computes the map bounds for a center point and zoom level,
// along with the 3D sphere position of the center for the globe renderer.
func ViewportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			return errBadRequest(c, "lat and lng are required")
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return errBadRequest(c, "lat must be in [-90, 90] and lng in [-180, 180]")
		}
		zoom := c.QueryInt("zoom", 14)
		if zoom < 0 || zoom > 22 {
			return errBadRequest(c, "zoom must be between 0 and 22")
		}
		radius := c.QueryFloat("radius", 1)
		if radius <= 0 {
			return errBadRequest(c, "radius must be positive")
		}

		bounds := geo.BoundsFromCenter(lat, lng, zoom)
		x, y, z := geo.Project(lat, lng, radius)

		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(fiber.Map{
			"bounds":   bounds,
			"position": fiber.Map{"x": x, "y": y, "z": z},
		})
	}
}
