package domain_test

import (
	"reflect"
	"testing"

	"github.com/nextneighbor/discover/internal/core/domain"
)

func sampleMarkers() []domain.Marker {
	return []domain.Marker{
		{ID: "1", Title: "Community Fridge", Description: "Free food shelf", Category: "food", Lat: 52.52, Lng: 13.40, Address: "Invalidenstraße 12, Berlin"},
		{ID: "2", Title: "Barista wanted", Description: "Weekend shifts", Category: "jobs", Lat: 48.13, Lng: 11.58, Address: "Marienplatz 3, München"},
		{ID: "3", Title: "Tool library", Description: "Borrow a drill", Category: "sharing", Lat: 53.55, Lng: 9.99, Address: "Mönckebergstraße 5, Hamburg"},
		{ID: "4", Title: "Book swap", Description: "Paperbacks and comics", Category: "swap", Lat: 52.50, Lng: 13.45, Address: "Karl-Marx-Allee 99, Berlin"},
	}
}

func ids(ms []domain.Marker) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestFilter_Bounds(t *testing.T) {
	f := domain.MarkerFilter{Bounds: &domain.Bounds{North: 53, South: 52, East: 14, West: 13}}
	got := ids(f.Apply(sampleMarkers()))
	want := []string{"1", "4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bounds filter: got %v, want %v", got, want)
	}
}

func TestFilter_BoundsEdgesInclusive(t *testing.T) {
	markers := []domain.Marker{
		{ID: "n", Lat: 53, Lng: 13.5},
		{ID: "s", Lat: 52, Lng: 13.5},
		{ID: "e", Lat: 52.5, Lng: 14},
		{ID: "w", Lat: 52.5, Lng: 13},
		{ID: "out", Lat: 53.0001, Lng: 13.5},
	}
	f := domain.MarkerFilter{Bounds: &domain.Bounds{North: 53, South: 52, East: 14, West: 13}}
	got := ids(f.Apply(markers))
	want := []string{"n", "s", "e", "w"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("edge markers: got %v, want %v", got, want)
	}
}

func TestFilter_Category(t *testing.T) {
	f := domain.MarkerFilter{Categories: []string{"food"}}
	got := ids(f.Apply(sampleMarkers()))
	if !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("category filter: got %v", got)
	}
}

func TestFilter_EmptyCategorySetIsUnconstrained(t *testing.T) {
	f := domain.MarkerFilter{Categories: nil}
	if got := len(f.Apply(sampleMarkers())); got != 4 {
		t.Errorf("expected all 4 markers, got %d", got)
	}

	// A supplied set that matches nothing is distinct from no set at all.
	f = domain.MarkerFilter{Categories: []string{"bogus"}}
	if got := len(f.Apply(sampleMarkers())); got != 0 {
		t.Errorf("expected 0 markers for non-matching set, got %d", got)
	}
}

func TestFilter_SearchMatchesTitleDescriptionAddress(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"BERLIN", []string{"1", "4"}},   // address, case-insensitive
		{"drill", []string{"3"}},         // description
		{"book swap", []string{"4"}},     // title
		{"nothing here", []string{}},
	}
	for _, tc := range cases {
		f := domain.MarkerFilter{Search: tc.query}
		got := ids(f.Apply(sampleMarkers()))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("search %q: got %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestFilter_Commutativity(t *testing.T) {
	markers := sampleMarkers()
	bounds := &domain.Bounds{North: 53, South: 48, East: 14, West: 9}
	cats := []string{"food", "swap"}
	search := "berlin"

	combined := domain.MarkerFilter{Bounds: bounds, Categories: cats, Search: search}.Apply(markers)

	// Apply the three predicates one at a time, in every order.
	perms := [][]domain.MarkerFilter{
		{{Bounds: bounds}, {Categories: cats}, {Search: search}},
		{{Bounds: bounds}, {Search: search}, {Categories: cats}},
		{{Categories: cats}, {Bounds: bounds}, {Search: search}},
		{{Categories: cats}, {Search: search}, {Bounds: bounds}},
		{{Search: search}, {Bounds: bounds}, {Categories: cats}},
		{{Search: search}, {Categories: cats}, {Bounds: bounds}},
	}
	for i, seq := range perms {
		result := markers
		for _, f := range seq {
			result = f.Apply(result)
		}
		if !reflect.DeepEqual(ids(result), ids(combined)) {
			t.Errorf("permutation %d: got %v, want %v", i, ids(result), ids(combined))
		}
	}
}

func TestFilter_Idempotence(t *testing.T) {
	f := domain.MarkerFilter{Bounds: &domain.Bounds{North: 53, South: 52, East: 14, West: 13}, Search: "berlin"}
	once := f.Apply(sampleMarkers())
	twice := f.Apply(once)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("re-filtering changed the result: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilter_StableOrder(t *testing.T) {
	f := domain.MarkerFilter{Search: "berlin"}
	got := ids(f.Apply(sampleMarkers()))
	if !reflect.DeepEqual(got, []string{"1", "4"}) {
		t.Errorf("expected input order preserved, got %v", got)
	}
}

func TestFilter_CacheKeyCanonical(t *testing.T) {
	b := &domain.Bounds{North: 53, South: 52, East: 14, West: 13}
	a := domain.MarkerFilter{Bounds: b, Categories: []string{"food", "events"}, Search: "Berlin"}
	c := domain.MarkerFilter{Bounds: b, Categories: []string{"events", "food"}, Search: " berlin "}
	if a.CacheKey() != c.CacheKey() {
		t.Errorf("equivalent filters render different keys: %q vs %q", a.CacheKey(), c.CacheKey())
	}

	d := domain.MarkerFilter{Categories: []string{"food"}}
	if a.CacheKey() == d.CacheKey() {
		t.Error("distinct filters must not collide")
	}
}

func TestLookupCategory(t *testing.T) {
	c, ok := domain.LookupCategory("food")
	if !ok || c.Color != "#FF5A8E" {
		t.Errorf("food category: ok=%v, color=%q", ok, c.Color)
	}
	if _, ok := domain.LookupCategory("gardening"); ok {
		t.Error("unknown category must not resolve")
	}
	if got := len(domain.Categories()); got != 5 {
		t.Errorf("expected 5 categories, got %d", got)
	}
}
