package domain

import (
	"sort"
	"strconv"
	"strings"
)

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarkerFilter is the conjunction of optional marker predicates. A zero
// filter matches everything. The three predicates are pure and commute,
// so the order they are applied in never changes the result.
type MarkerFilter struct {
	// Bounds keeps markers inside the box (inclusive). Nil means no
	// geographic constraint.
	Bounds *Bounds

	// Categories keeps markers whose category is in the set. An empty
	// set means unconstrained, not "exclude all".
	Categories []string

	// Search keeps markers whose title, description, or address contains
	// the query, case-insensitively. Empty means unconstrained.
	Search string
}

// IsZero reports whether no predicate is active.
func (f MarkerFilter) IsZero() bool {
	return f.Bounds == nil && len(f.Categories) == 0 && f.Search == ""
}

// Match reports whether a single marker passes every active predicate.
func (f MarkerFilter) Match(m Marker) bool {
	if f.Bounds != nil && !f.Bounds.Contains(m.Lat, m.Lng) {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if m.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Title), q) &&
			!strings.Contains(strings.ToLower(m.Description), q) &&
			!strings.Contains(strings.ToLower(m.Address), q) {
			return false
		}
	}
	return true
}

// Apply filters the candidate collection, preserving its relative order.
// The input slice is never modified.
func (f MarkerFilter) Apply(markers []Marker) []Marker {
	out := make([]Marker, 0, len(markers))
	for _, m := range markers {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// CacheKey renders the filter in a canonical string form usable as a cache
// key. Equivalent filters (same predicates, categories in any order) render
// identically.
func (f MarkerFilter) CacheKey() string {
	var sb strings.Builder
	sb.WriteString("markers:query")
	if f.Bounds != nil {
		b := f.Bounds
		sb.WriteString(":b=")
		sb.WriteString(formatCoord(b.North))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(b.South))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(b.East))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(b.West))
	}
	if len(f.Categories) > 0 {
		cats := append([]string(nil), f.Categories...)
		sort.Strings(cats)
		sb.WriteString(":c=")
		sb.WriteString(strings.Join(cats, ","))
	}
	if f.Search != "" {
		sb.WriteString(":q=")
		sb.WriteString(strings.ToLower(strings.TrimSpace(f.Search)))
	}
	return sb.String()
}
