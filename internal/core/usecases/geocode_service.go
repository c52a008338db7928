package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nextneighbor/discover/internal/core/domain"
	"github.com/nextneighbor/discover/internal/core/ports"
	"github.com/nextneighbor/discover/internal/pkg/metrics"
)

// queryPattern mirrors the front-end search validation: letters, digits,
// German umlauts, whitespace, and hyphens.
var queryPattern = regexp.MustCompile(`^[a-zA-Z0-9äöüÄÖÜß\s\-]+$`)

// ValidationError is a rejected search input. It never reaches the geocoder;
// handlers surface it as an inline message, not a transport fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid search query: " + e.Reason
}

// ValidateSearchQuery checks a raw search input against the input rules
// shared with the front-end form.
func ValidateSearchQuery(query string) error {
	q := strings.TrimSpace(query)
	n := utf8.RuneCountInString(q)
	switch {
	case n < 2:
		return &ValidationError{Reason: "must be at least 2 characters"}
	case n > 100:
		return &ValidationError{Reason: "must be less than 100 characters"}
	case !queryPattern.MatchString(q):
		return &ValidationError{Reason: "contains disallowed characters"}
	}
	return nil
}

// GeocodeService resolves location searches through the configured geocoder
// and announces successful fly-to targets to live sessions.
type GeocodeService struct {
	geocoder ports.Geocoder
	cache    ports.CacheService
	events   ports.EventPublisher
}

// NewGeocodeService creates a new GeocodeService. cache and events may be nil.
func NewGeocodeService(geocoder ports.Geocoder, cache ports.CacheService, events ports.EventPublisher) *GeocodeService {
	return &GeocodeService{geocoder: geocoder, cache: cache, events: events}
}

// Search validates and resolves a free-text location query. A nil result
// with a nil error is a definitive no-match.
func (s *GeocodeService) Search(ctx context.Context, query string) (*domain.GeocodingResult, error) {
	if err := ValidateSearchQuery(query); err != nil {
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	cacheKey := "geocode:" + normalized
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var result domain.GeocodingResult
			if err := json.Unmarshal(data, &result); err == nil {
				metrics.CacheHits.WithLabelValues("geocode").Inc()
				if s.events != nil {
					_ = s.events.PublishFlyTo(ctx, &result)
				}
				return &result, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("geocode").Inc()
	}

	result, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		// Provider failure degrades to "no result" at the boundary; keep
		// the cause for the log line.
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	if result == nil {
		metrics.GeocodeLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.GeocodeLookups.WithLabelValues("hit").Inc()

	// Geocode answers never change for the static table; cache generously.
	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 3600)
		}
	}

	if s.events != nil {
		_ = s.events.PublishFlyTo(ctx, result)
	}

	return result, nil
}
