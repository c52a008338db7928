package ports

import (
	"context"

	"github.com/nextneighbor/discover/internal/core/domain"
)

// Geocoder resolves free-text to a single best-effort coordinate result.
// A definitive no-match is (nil, nil) — absence, not an error. An error
// means the provider itself failed; callers surface that as "no result"
// rather than crashing.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*domain.GeocodingResult, error)
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes discovery activity to a message broker. Events
// are ephemeral fan-out for live globe sessions; losing them is harmless.
type EventPublisher interface {
	PublishFlyTo(ctx context.Context, result *domain.GeocodingResult) error
	PublishQuery(ctx context.Context, filter domain.MarkerFilter, results int) error
	PublishBroadcast(ctx context.Context, data []byte) error
}
