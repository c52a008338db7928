package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/nextneighbor/discover/internal/core/domain"
	"github.com/nextneighbor/discover/internal/core/ports"
	"github.com/nextneighbor/discover/internal/pkg/geo"
	"github.com/nextneighbor/discover/internal/pkg/metrics"
)

// MarkerService answers marker queries against the store, with optional
// read-through caching and activity fan-out. The store never changes during
// the process lifetime, so cached results can only go stale across restarts.
type MarkerService struct {
	markers ports.MarkerRepository
	cache   ports.CacheService
	events  ports.EventPublisher
}

// NewMarkerService creates a new MarkerService. cache and events may be nil.
func NewMarkerService(markers ports.MarkerRepository, cache ports.CacheService, events ports.EventPublisher) *MarkerService {
	return &MarkerService{markers: markers, cache: cache, events: events}
}

// Query returns the markers matching the filter, in store order.
func (s *MarkerService) Query(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error) {
	cacheKey := filter.CacheKey()
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var markers []domain.Marker
			if err := json.Unmarshal(data, &markers); err == nil {
				metrics.CacheHits.WithLabelValues("markers").Inc()
				return markers, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("markers").Inc()
	}

	markers, err := s.markers.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Cache for 5 minutes (the fixture is immutable anyway)
	if s.cache != nil {
		if data, err := json.Marshal(markers); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	// Fire-and-forget activity event for live globe sessions.
	if s.events != nil && !filter.IsZero() {
		_ = s.events.PublishQuery(ctx, filter, len(markers))
	}

	return markers, nil
}

// Nearby returns markers within radiusMeters of the given point, nearest
// first, each annotated with its distance. The globe uses it after a fly-to.
func (s *MarkerService) Nearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]domain.Marker, error) {
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	// Pre-narrow with a bounding box before the exact distance pass.
	box := geo.BoundingBox(lat, lng, radiusMeters)

	candidates, err := s.markers.Query(ctx, domain.MarkerFilter{Bounds: &box})
	if err != nil {
		return nil, err
	}

	var out []domain.Marker
	for _, m := range candidates {
		d := geo.Haversine(lat, lng, m.Lat, m.Lng)
		if d <= radiusMeters {
			m.Distance = &d
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].Distance < *out[j].Distance })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetByID returns a single marker.
func (s *MarkerService) GetByID(ctx context.Context, id string) (*domain.Marker, error) {
	cacheKey := "markers:id:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var m domain.Marker
			if err := json.Unmarshal(data, &m); err == nil {
				metrics.CacheHits.WithLabelValues("marker").Inc()
				return &m, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("marker").Inc()
	}

	m, err := s.markers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(m); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return m, nil
}

// Count returns the store size.
func (s *MarkerService) Count(ctx context.Context) (int, error) {
	return s.markers.Count(ctx)
}
