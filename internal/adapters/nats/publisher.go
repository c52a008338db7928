// Package natsadapter publishes discovery activity events. Subjects:
//
//	discover.flyto.<place>  resolved geocode searches, keyed by the slug of
//	                        the leading place token ("Berlin, Germany"
//	                        publishes on discover.flyto.berlin)
//	discover.query         marker query summaries
//	discover.broadcast     free-form broadcast payloads
//
// Events are ephemeral fan-out for live globe sessions, so plain core NATS
// publishing is used; there is no stream retention and no consumer acking.
package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/nextneighbor/discover/internal/core/domain"
)

// Publisher implements ports.EventPublisher on a NATS connection.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS with retry-forever semantics.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// flyToEvent is the wire form of a resolved fly-to target.
type flyToEvent struct {
	Kind        string  `json:"kind"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

// queryEvent summarizes a filtered marker query.
type queryEvent struct {
	Kind       string   `json:"kind"`
	Categories []string `json:"categories,omitempty"`
	Search     string   `json:"search,omitempty"`
	HasBounds  bool     `json:"hasBounds"`
	Results    int      `json:"results"`
}

// PublishFlyTo announces a resolved geocode search.
func (p *Publisher) PublishFlyTo(ctx context.Context, result *domain.GeocodingResult) error {
	data, err := json.Marshal(flyToEvent{
		Kind:        "flyto",
		Lat:         result.Lat,
		Lng:         result.Lng,
		DisplayName: result.DisplayName,
	})
	if err != nil {
		return err
	}
	return p.conn.Publish(flyToSubject(result.DisplayName), data)
}

// PublishQuery announces a filtered marker query and its result size.
func (p *Publisher) PublishQuery(ctx context.Context, filter domain.MarkerFilter, results int) error {
	data, err := json.Marshal(queryEvent{
		Kind:       "query",
		Categories: filter.Categories,
		Search:     filter.Search,
		HasBounds:  filter.Bounds != nil,
		Results:    results,
	})
	if err != nil {
		return err
	}
	return p.conn.Publish("discover.query", data)
}

// PublishBroadcast fans out an opaque payload to every live session.
func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish("discover.broadcast", data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (the WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}

// flyToSubject builds the fly-to subject from a display name. Only the
// leading place token is used ("Berlin, Germany" publishes on
// discover.flyto.berlin), so clients can narrow by the name they searched
// for without knowing the geocoder's full display form.
func flyToSubject(displayName string) string {
	place := displayName
	if i := strings.IndexByte(place, ','); i >= 0 {
		place = place[:i]
	}
	return "discover.flyto." + slugify(place)
}

// slugify turns a place name like "New York" into a subject token.
func slugify(s string) string {
	s = strings.ToLower(s)
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('-')
		}
	}
	out := strings.Trim(sb.String(), "-")
	if out == "" {
		return "unknown"
	}
	return out
}
