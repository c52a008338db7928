package usecases_test

import (
	"context"
	"testing"

	"github.com/nextneighbor/discover/internal/core/domain"
	"github.com/nextneighbor/discover/internal/core/usecases"
)

// --- Mock MarkerRepository ---

type mockMarkerRepo struct {
	queryFn   func(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error)
	getByIDFn func(ctx context.Context, id string) (*domain.Marker, error)
	countFn   func(ctx context.Context) (int, error)
}

func (m *mockMarkerRepo) Query(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockMarkerRepo) GetByID(ctx context.Context, id string) (*domain.Marker, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockMarkerRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	flyTos  []*domain.GeocodingResult
	queries int
}

func (m *mockPublisher) PublishFlyTo(ctx context.Context, r *domain.GeocodingResult) error {
	m.flyTos = append(m.flyTos, r)
	return nil
}

func (m *mockPublisher) PublishQuery(ctx context.Context, f domain.MarkerFilter, n int) error {
	m.queries++
	return nil
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error { return nil }

// --- Tests ---

func TestMarkerService_Query(t *testing.T) {
	repo := &mockMarkerRepo{
		queryFn: func(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error) {
			if len(filter.Categories) != 1 || filter.Categories[0] != "food" {
				t.Errorf("unexpected filter: %+v", filter)
			}
			return []domain.Marker{
				{ID: "1", Title: "Community Fridge", Category: "food"},
			}, nil
		},
	}

	svc := usecases.NewMarkerService(repo, nil, nil)

	markers, err := svc.Query(context.Background(), domain.MarkerFilter{Categories: []string{"food"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(markers) != 1 || markers[0].ID != "1" {
		t.Fatalf("unexpected result: %+v", markers)
	}
}

func TestMarkerService_QueryPublishesActivity(t *testing.T) {
	repo := &mockMarkerRepo{
		queryFn: func(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error) {
			return nil, nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewMarkerService(repo, nil, pub)

	// An unfiltered fetch is just a page load; no activity event.
	_, _ = svc.Query(context.Background(), domain.MarkerFilter{})
	if pub.queries != 0 {
		t.Errorf("expected no event for zero filter, got %d", pub.queries)
	}

	_, _ = svc.Query(context.Background(), domain.MarkerFilter{Search: "berlin"})
	if pub.queries != 1 {
		t.Errorf("expected 1 query event, got %d", pub.queries)
	}
}

func TestMarkerService_Nearby(t *testing.T) {
	// Markers around Berlin Mitte; the Munich one must be pruned.
	repo := &mockMarkerRepo{
		queryFn: func(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error) {
			all := []domain.Marker{
				{ID: "far", Lat: 48.137, Lng: 11.576},
				{ID: "near", Lat: 52.521, Lng: 13.406},
				{ID: "nearer", Lat: 52.5201, Lng: 13.4051},
			}
			if filter.Bounds == nil {
				t.Fatal("nearby must pre-filter with a bounding box")
			}
			return filter.Apply(all), nil
		},
	}

	svc := usecases.NewMarkerService(repo, nil, nil)
	markers, err := svc.Nearby(context.Background(), 52.52, 13.405, 1000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers within 1 km, got %d", len(markers))
	}
	if markers[0].ID != "nearer" {
		t.Errorf("expected nearest first, got %s", markers[0].ID)
	}
	if markers[0].Distance == nil || *markers[0].Distance <= 0 {
		t.Error("nearby results must carry a computed distance")
	}
}

func TestMarkerService_NearbyBadRadius(t *testing.T) {
	svc := usecases.NewMarkerService(&mockMarkerRepo{}, nil, nil)
	if _, err := svc.Nearby(context.Background(), 52.52, 13.405, 0, 10); err == nil {
		t.Error("expected error for non-positive radius")
	}
}

func TestMarkerService_NearbyClampsLimit(t *testing.T) {
	repo := &mockMarkerRepo{
		queryFn: func(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error) {
			var out []domain.Marker
			for i := 0; i < 80; i++ {
				out = append(out, domain.Marker{ID: "m", Lat: 52.52, Lng: 13.405})
			}
			return out, nil
		},
	}
	svc := usecases.NewMarkerService(repo, nil, nil)
	markers, err := svc.Nearby(context.Background(), 52.52, 13.405, 500, 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(markers) != 50 {
		t.Errorf("expected limit clamped to 50, got %d", len(markers))
	}
}

func TestMarkerService_GetByID(t *testing.T) {
	repo := &mockMarkerRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Marker, error) {
			return &domain.Marker{ID: id, Title: "Tool library"}, nil
		},
	}
	svc := usecases.NewMarkerService(repo, nil, nil)

	m, err := svc.GetByID(context.Background(), "m-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != "m-42" {
		t.Errorf("expected id m-42, got %s", m.ID)
	}
}
