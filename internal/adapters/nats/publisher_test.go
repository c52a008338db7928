package natsadapter

import "testing"

func TestFlyToSubject(t *testing.T) {
	tests := []struct {
		displayName string
		want        string
	}{
		// The subject must match what a client narrowing by searched place
		// name subscribes to: discover.flyto.<place slug>.
		{"Berlin, Germany", "discover.flyto.berlin"},
		{"Berlin Mitte, Germany", "discover.flyto.berlin-mitte"},
		{"New York, USA", "discover.flyto.new-york"},
		{"Tokyo, Japan", "discover.flyto.tokyo"},
		{"München, Germany", "discover.flyto.mnchen"},
		{"", "discover.flyto.unknown"},
	}

	for _, tt := range tests {
		if got := flyToSubject(tt.displayName); got != tt.want {
			t.Errorf("flyToSubject(%q) = %q, want %q", tt.displayName, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Berlin", "berlin"},
		{"New York", "new-york"},
		{"  --  ", "unknown"},
		{"Ümlaut City", "mlaut-city"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
