package memory

import (
	"context"
	"fmt"

	"github.com/nextneighbor/discover/internal/core/domain"
)

// MarkerRepo implements ports.MarkerRepository over an immutable in-memory
// collection. It stands in for a real storage engine; the process never
// mutates it, so it is safe for unlimited concurrent readers.
type MarkerRepo struct {
	markers []domain.Marker
	byID    map[string]int
}

// NewMarkerRepo validates the collection and builds the repository.
// A marker referencing a category outside the enumeration is rejected here,
// at ingestion, so consumers never have to handle the missing-key case at
// render time.
func NewMarkerRepo(markers []domain.Marker) (*MarkerRepo, error) {
	byID := make(map[string]int, len(markers))
	for i, m := range markers {
		if m.ID == "" {
			return nil, fmt.Errorf("marker %d: missing id", i)
		}
		if _, dup := byID[m.ID]; dup {
			return nil, fmt.Errorf("marker %q: duplicate id", m.ID)
		}
		if _, ok := domain.LookupCategory(m.Category); !ok {
			return nil, fmt.Errorf("marker %q: unknown category %q", m.ID, m.Category)
		}
		if m.Lat < -90 || m.Lat > 90 || m.Lng < -180 || m.Lng > 180 {
			return nil, fmt.Errorf("marker %q: coordinates out of range (%v, %v)", m.ID, m.Lat, m.Lng)
		}
		byID[m.ID] = i
	}
	return &MarkerRepo{markers: markers, byID: byID}, nil
}

// Query returns the markers matching the filter, in fixture order.
func (r *MarkerRepo) Query(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error) {
	return filter.Apply(r.markers), nil
}

// GetByID returns a single marker.
func (r *MarkerRepo) GetByID(ctx context.Context, id string) (*domain.Marker, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("marker %q: %w", id, domain.ErrNotFound)
	}
	m := r.markers[i]
	return &m, nil
}

// Count returns the fixture size.
func (r *MarkerRepo) Count(ctx context.Context) (int, error) {
	return len(r.markers), nil
}
