package memory_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nextneighbor/discover/internal/adapters/memory"
	"github.com/nextneighbor/discover/internal/core/domain"
)

func TestNewMarkerRepo_RejectsUnknownCategory(t *testing.T) {
	_, err := memory.NewMarkerRepo([]domain.Marker{
		{ID: "m-1", Category: "gardening", Lat: 52.5, Lng: 13.4},
	})
	if err == nil {
		t.Fatal("expected ingestion error for unknown category")
	}
	if !strings.Contains(err.Error(), "gardening") {
		t.Errorf("error should name the offending category: %v", err)
	}
}

func TestNewMarkerRepo_RejectsDuplicateID(t *testing.T) {
	_, err := memory.NewMarkerRepo([]domain.Marker{
		{ID: "m-1", Category: "food", Lat: 52.5, Lng: 13.4},
		{ID: "m-1", Category: "jobs", Lat: 48.1, Lng: 11.5},
	})
	if err == nil {
		t.Fatal("expected ingestion error for duplicate id")
	}
}

func TestNewMarkerRepo_RejectsOutOfRangeCoordinates(t *testing.T) {
	_, err := memory.NewMarkerRepo([]domain.Marker{
		{ID: "m-1", Category: "food", Lat: 91, Lng: 13.4},
	})
	if err == nil {
		t.Fatal("expected ingestion error for lat > 90")
	}
}

func TestMarkerRepo_QueryScenarios(t *testing.T) {
	repo, err := memory.NewMarkerRepo([]domain.Marker{
		{ID: "1", Category: "food", Lat: 52.52, Lng: 13.40, Address: "Alexanderplatz 1, Berlin"},
		{ID: "2", Category: "jobs", Lat: 48.13, Lng: 11.58, Address: "Marienplatz 3, München"},
	})
	if err != nil {
		t.Fatalf("build repo: %v", err)
	}
	ctx := context.Background()

	// Category filter keeps only the food marker.
	got, err := repo.Query(ctx, domain.MarkerFilter{Categories: []string{"food"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("category=food: got %+v", got)
	}

	// A Berlin-sized box excludes Munich.
	got, _ = repo.Query(ctx, domain.MarkerFilter{Bounds: &domain.Bounds{North: 53, South: 52, East: 14, West: 13}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("bounds box: got %+v", got)
	}

	// Address search is case-insensitive.
	got, _ = repo.Query(ctx, domain.MarkerFilter{Search: "berlin"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("search=berlin: got %+v", got)
	}
}

func TestMarkerRepo_GetByID(t *testing.T) {
	repo, _ := memory.NewMarkerRepo([]domain.Marker{
		{ID: "m-1", Category: "food", Lat: 52.5, Lng: 13.4},
	})

	m, err := repo.GetByID(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != "m-1" {
		t.Errorf("got %q", m.ID)
	}

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestLoadFixture_EmbeddedDefault(t *testing.T) {
	repo, err := memory.LoadFixture("")
	if err != nil {
		t.Fatalf("embedded fixture must load cleanly: %v", err)
	}

	n, _ := repo.Count(context.Background())
	if n == 0 {
		t.Fatal("embedded fixture is empty")
	}

	// Every category of the enumeration is represented.
	for _, c := range domain.Categories() {
		got, _ := repo.Query(context.Background(), domain.MarkerFilter{Categories: []string{c.ID}})
		if len(got) == 0 {
			t.Errorf("no fixture markers for category %s", c.ID)
		}
	}
}

func TestLoadFixture_MissingFile(t *testing.T) {
	if _, err := memory.LoadFixture("/nonexistent/markers.json"); err == nil {
		t.Error("expected error for missing fixture file")
	}
}
