// Package connections manages manual connector lines between nodes: a small
// CRUD store with direction-agnostic duplicate prevention, plus anchor
// resolution and bezier path generation for rendering.
//
// Connections are independent of the reporting tree; endpoints may be
// resource nodes or collapsed group nodes.
package connections

import (
	"github.com/google/uuid"

	"github.com/matzehuels/orgcanvas/pkg/chart"
)

// Set owns the connection list during an interaction and emits patches for
// the caller to persist. Not safe for concurrent use; the engine is
// single-goroutine by construction.
type Set struct {
	conns []chart.Connection
}

// NewSet builds a set seeded from persisted connections.
// The input slice is copied; the snapshot is never mutated in place.
func NewSet(existing []chart.Connection) *Set {
	s := &Set{conns: make([]chart.Connection, len(existing))}
	copy(s.conns, existing)
	return s
}

// All returns the connections in insertion order. The returned slice is a
// copy and safe to hand across the snapshot boundary.
func (s *Set) All() []chart.Connection {
	out := make([]chart.Connection, len(s.conns))
	copy(out, s.conns)
	return out
}

// Len returns the number of connections.
func (s *Set) Len() int { return len(s.conns) }

// Get returns the connection with the given id.
func (s *Set) Get(id string) (chart.Connection, bool) {
	for _, c := range s.conns {
		if c.ID == id {
			return c, true
		}
	}
	return chart.Connection{}, false
}

// Exists reports whether a connection already links the pair, in either
// direction.
func (s *Set) Exists(fromID, toID string) bool {
	for _, c := range s.conns {
		if c.SamePair(fromID, toID) {
			return true
		}
	}
	return false
}

// Add inserts a connection and returns it with defaults filled in: a UUID
// when no id is supplied, solid line, forward arrow. Adding a connection for
// an already-linked unordered pair, or from a node to itself, is a silent
// no-op returning ok=false — duplicate edges are never an error.
func (s *Set) Add(c chart.Connection) (chart.Connection, bool) {
	if c.FromID == "" || c.ToID == "" || c.FromID == c.ToID {
		return chart.Connection{}, false
	}
	if s.Exists(c.FromID, c.ToID) {
		return chart.Connection{}, false
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.LineType == "" {
		c.LineType = chart.LineSolid
	}
	if c.ArrowHead == "" {
		c.ArrowHead = chart.ArrowForward
	}
	s.conns = append(s.conns, c)
	return c, true
}

// Update replaces the stored connection with the same id in place, keeping
// list order stable. Returns false if the id is unknown.
func (s *Set) Update(c chart.Connection) bool {
	for i := range s.conns {
		if s.conns[i].ID == c.ID {
			s.conns[i] = c
			return true
		}
	}
	return false
}

// Delete removes the connection with the given id.
func (s *Set) Delete(id string) bool {
	for i := range s.conns {
		if s.conns[i].ID == id {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			return true
		}
	}
	return false
}

// DropStale removes connections whose endpoints no longer exist in the
// working set and returns how many were removed.
func (s *Set) DropStale(present map[string]struct{}) int {
	kept := s.conns[:0]
	removed := 0
	for _, c := range s.conns {
		_, fromOK := present[c.FromID]
		_, toOK := present[c.ToID]
		if fromOK && toOK {
			kept = append(kept, c)
			continue
		}
		removed++
	}
	s.conns = kept
	return removed
}
