package memory

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nextneighbor/discover/internal/core/domain"
)

//go:embed markers.json
var defaultFixture []byte

// LoadFixture reads a marker fixture from path, or the embedded default
// when path is empty, and returns a validated repository.
func LoadFixture(path string) (*MarkerRepo, error) {
	data := defaultFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
	}

	markers, err := ParseFixture(data)
	if err != nil {
		return nil, err
	}
	return NewMarkerRepo(markers)
}

// ParseFixture decodes a fixture document: a JSON array of markers.
func ParseFixture(data []byte) ([]domain.Marker, error) {
	var markers []domain.Marker
	if err := json.Unmarshal(data, &markers); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return markers, nil
}
