package ports

import (
	"context"

	"github.com/nextneighbor/discover/internal/core/domain"
)

// MarkerRepository is the single data-access capability the filter logic
// depends on. The shipped implementation is an immutable in-memory fixture;
// a real storage engine can be substituted without touching the core.
type MarkerRepository interface {
	// Query returns the markers matching the filter, preserving the
	// store's canonical order.
	Query(ctx context.Context, filter domain.MarkerFilter) ([]domain.Marker, error)
	GetByID(ctx context.Context, id string) (*domain.Marker, error)
	Count(ctx context.Context) (int, error)
}
