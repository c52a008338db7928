package http

import (
	"github.com/nats-io/nats.go"

	"github.com/nextneighbor/discover/internal/adapters/valkey"
	"github.com/nextneighbor/discover/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Markers *usecases.MarkerService
	Geocode *usecases.GeocodeService
	NATS    *nats.Conn
	Cache   *valkey.Cache
}
