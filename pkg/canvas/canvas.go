// Package canvas is the interaction engine for the org-chart editor: node
// dragging with multi-selection, two-click connection drawing, and patch
// emission toward the caller's persistence.
//
// The engine is single-goroutine and event-driven. One Mode value gates
// every entry point, so a drag can never start while a connection is being
// drawn and vice versa; the mutual exclusion is structural, not
// convention-based. Between interactions the canvas hands its state back as
// plain snapshot data.
package canvas

import (
	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/connections"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
	"github.com/matzehuels/orgcanvas/pkg/layout"
	"github.com/matzehuels/orgcanvas/pkg/viewport"
)

// Mode is the canvas interaction state.
type Mode int

const (
	// ModeIdle accepts new drags, selection toggles and connection draws.
	ModeIdle Mode = iota
	// ModeDragging tracks an active single- or group-drag.
	ModeDragging
	// ModeConnecting awaits the second anchor click of a connection draw.
	ModeConnecting
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeConnecting:
		return "connecting"
	}
	return "unknown"
}

// Canvas owns the mutable interaction state over one snapshot. It is not
// safe for concurrent use; the concurrency model is cooperative and
// single-threaded by design.
type Canvas struct {
	snapshot *chart.Snapshot
	view     *viewport.Viewport

	visible  []chart.Node
	resolved map[string]geometry.Point
	conns    *connections.Set

	mode      Mode
	drag      *dragSession
	connect   *connectSession
	selection map[string]struct{}

	selectedConnection string
}

// New builds a canvas over the given snapshot and viewport. Group display
// modes are resolved into the visible working set and stored positions are
// merged with fallback-grid defaults.
func New(s *chart.Snapshot, view *viewport.Viewport) *Canvas {
	c := &Canvas{
		snapshot:  s,
		view:      view,
		conns:     connections.NewSet(s.Connections),
		selection: make(map[string]struct{}),
	}
	c.Reload()
	return c
}

// Reload recomputes the visible node set and resolved positions after the
// caller mutated the snapshot (node added or removed, group mode changed).
// Any in-flight interaction is cancelled first so it can never commit
// against stale data.
func (c *Canvas) Reload() {
	c.CancelDrag()
	c.CancelConnect()
	c.visible = chart.VisibleNodes(c.snapshot)
	c.resolved = layout.ResolvePositions(c.visible, c.snapshot.PositionMap())
}

// Snapshot returns the underlying snapshot.
func (c *Canvas) Snapshot() *chart.Snapshot { return c.snapshot }

// Viewport returns the viewport controller.
func (c *Canvas) Viewport() *viewport.Viewport { return c.view }

// Mode returns the current interaction mode.
func (c *Canvas) Mode() Mode { return c.mode }

// VisibleNodes returns the current working set after group resolution.
func (c *Canvas) VisibleNodes() []chart.Node { return c.visible }

// LivePositions returns the render positions: resolved positions overlaid
// with any in-progress drag. Connection paths and the minimap consume this
// so dragged nodes track visually before anything is committed.
func (c *Canvas) LivePositions() map[string]geometry.Point {
	if c.drag == nil {
		return c.resolved
	}
	return layout.LivePositions(c.resolved, c.drag.live)
}

// Bounds returns the padded bounding box of the live positions.
func (c *Canvas) Bounds() geometry.Rect {
	return geometry.BoundsOf(c.LivePositions())
}

// Paths resolves every connection against the live positions.
func (c *Canvas) Paths() []connections.Path {
	return connections.ResolvePaths(c.conns.All(), c.LivePositions())
}

// =============================================================================
// Selection
// =============================================================================

// ToggleSelect flips a node in or out of the ephemeral multi-selection set.
// This models a modifier-key click: it never starts a drag. Ignored outside
// idle mode and for unknown ids.
func (c *Canvas) ToggleSelect(id string) {
	if c.mode != ModeIdle {
		return
	}
	if _, ok := c.resolved[id]; !ok {
		return
	}
	if _, selected := c.selection[id]; selected {
		delete(c.selection, id)
		return
	}
	c.selection[id] = struct{}{}
}

// Selected reports whether the node is in the multi-selection set.
func (c *Canvas) Selected(id string) bool {
	_, ok := c.selection[id]
	return ok
}

// SelectionCount returns the size of the multi-selection set.
func (c *Canvas) SelectionCount() int { return len(c.selection) }

// ClearSelection empties the multi-selection set.
func (c *Canvas) ClearSelection() {
	c.selection = make(map[string]struct{})
}

// =============================================================================
// Connection CRUD
// =============================================================================

// Connections returns the current connection list.
func (c *Canvas) Connections() []chart.Connection { return c.conns.All() }

// AddConnection adds a manual connection and emits an add patch. A duplicate
// pair (either direction) is a silent no-op per the duplicate-edge rule.
func (c *Canvas) AddConnection(conn chart.Connection) (chart.ConnectionPatch, bool) {
	added, ok := c.conns.Add(conn)
	if !ok {
		return chart.ConnectionPatch{}, false
	}
	c.snapshot.Connections = c.conns.All()
	return chart.ConnectionPatch{Op: chart.PatchAdd, Connection: added}, true
}

// UpdateConnection mutates an existing connection in place (line style,
// arrow head, label, color) and emits an update patch.
func (c *Canvas) UpdateConnection(conn chart.Connection) (chart.ConnectionPatch, bool) {
	if !c.conns.Update(conn) {
		return chart.ConnectionPatch{}, false
	}
	c.snapshot.Connections = c.conns.All()
	return chart.ConnectionPatch{Op: chart.PatchUpdate, Connection: conn}, true
}

// DeleteConnection removes a connection, clears any connection selection
// and emits a remove patch.
func (c *Canvas) DeleteConnection(id string) (chart.ConnectionPatch, bool) {
	conn, ok := c.conns.Get(id)
	if !ok || !c.conns.Delete(id) {
		return chart.ConnectionPatch{}, false
	}
	if c.selectedConnection == id {
		c.selectedConnection = ""
	}
	c.snapshot.Connections = c.conns.All()
	return chart.ConnectionPatch{Op: chart.PatchRemove, Connection: conn}, true
}

// SelectConnection marks a connection as selected for editing UI.
func (c *Canvas) SelectConnection(id string) {
	if _, ok := c.conns.Get(id); ok {
		c.selectedConnection = id
	}
}

// SelectedConnection returns the id of the selected connection, if any.
func (c *Canvas) SelectedConnection() string { return c.selectedConnection }
