package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nextneighbor/discover/internal/core/domain"
	"github.com/nextneighbor/discover/internal/core/usecases"
)

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, query string) (*domain.GeocodingResult, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (*domain.GeocodingResult, error) {
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, query)
	}
	return nil, nil
}

func TestValidateSearchQuery(t *testing.T) {
	cases := []struct {
		query string
		ok    bool
	}{
		{"Berlin", true},
		{"10115", true},
		{"München", true},
		{"new york", true},
		{"Frankfurt-Höchst", true},
		{"b", false},                             // too short
		{strings.Repeat("a", 101), false},        // too long
		{"Berlin; DROP TABLE markers", false},    // disallowed characters
		{"<script>", false},
		{"   ", false},
	}
	for _, tc := range cases {
		err := usecases.ValidateSearchQuery(tc.query)
		if tc.ok && err != nil {
			t.Errorf("%q: unexpected error %v", tc.query, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%q: expected validation error", tc.query)
		}
		if !tc.ok && err != nil {
			var ve *usecases.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("%q: expected ValidationError, got %T", tc.query, err)
			}
		}
	}
}

func TestGeocodeService_Search(t *testing.T) {
	geocoder := &mockGeocoder{
		geocodeFn: func(ctx context.Context, query string) (*domain.GeocodingResult, error) {
			return &domain.GeocodingResult{Lat: 52.52, Lng: 13.405, DisplayName: "Berlin, Germany"}, nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewGeocodeService(geocoder, nil, pub)

	result, err := svc.Search(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || result.DisplayName != "Berlin, Germany" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(pub.flyTos) != 1 {
		t.Errorf("expected 1 fly-to event, got %d", len(pub.flyTos))
	}
}

func TestGeocodeService_SearchNoMatch(t *testing.T) {
	svc := usecases.NewGeocodeService(&mockGeocoder{}, nil, nil)

	result, err := svc.Search(context.Background(), "Nowhereville")
	if err != nil {
		t.Fatalf("no match must not be an error, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected absence, got %+v", result)
	}
}

func TestGeocodeService_SearchInvalidInputSkipsLookup(t *testing.T) {
	called := false
	geocoder := &mockGeocoder{
		geocodeFn: func(ctx context.Context, query string) (*domain.GeocodingResult, error) {
			called = true
			return nil, nil
		},
	}
	svc := usecases.NewGeocodeService(geocoder, nil, nil)

	_, err := svc.Search(context.Background(), "!")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if called {
		t.Error("invalid input must be rejected before any lookup occurs")
	}
}

func TestGeocodeService_ProviderFailure(t *testing.T) {
	geocoder := &mockGeocoder{
		geocodeFn: func(ctx context.Context, query string) (*domain.GeocodingResult, error) {
			return nil, fmt.Errorf("upstream timeout")
		},
	}
	svc := usecases.NewGeocodeService(geocoder, nil, nil)

	_, err := svc.Search(context.Background(), "Berlin")
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	var ve *usecases.ValidationError
	if errors.As(err, &ve) {
		t.Error("provider failure must not masquerade as a validation error")
	}
}
