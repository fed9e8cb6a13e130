package canvas

import (
	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// connectSession tracks a two-click connection draw: the first anchor click
// and the pointer position for the live preview segment.
type connectSession struct {
	fromID     string
	fromAnchor geometry.Side
	pointer    geometry.Point // content space
	hasPointer bool
}

// BeginConnect enters connection-draw mode from an anchor click on a node.
// Gated on idle mode, so it can never interleave with a drag. Clicking an
// anchor of a deleted node silently aborts. Returns whether the draw
// started.
func (c *Canvas) BeginConnect(nodeID string, anchor geometry.Side) bool {
	if c.mode != ModeIdle {
		return false
	}
	if _, ok := c.resolved[nodeID]; !ok {
		return false
	}
	if !anchor.Valid() {
		return false
	}
	c.connect = &connectSession{fromID: nodeID, fromAnchor: anchor}
	c.mode = ModeConnecting
	return true
}

// UpdateConnectPointer tracks the pointer for the preview segment between
// the two clicks. The screen coordinate is converted to content space under
// the current pan/zoom transform.
func (c *Canvas) UpdateConnectPointer(screen geometry.Point) {
	if c.mode != ModeConnecting || c.connect == nil {
		return
	}
	c.connect.pointer = c.view.ScreenToContent(screen)
	c.connect.hasPointer = true
}

// PreviewSegment returns the live preview from the first-clicked anchor to
// the current pointer, in content space. ok is false until the pointer has
// moved at least once.
func (c *Canvas) PreviewSegment() (from, to geometry.Point, ok bool) {
	if c.mode != ModeConnecting || c.connect == nil || !c.connect.hasPointer {
		return geometry.Point{}, geometry.Point{}, false
	}
	start := geometry.AnchorPoint(c.resolved[c.connect.fromID], c.connect.fromAnchor)
	return start, c.connect.pointer, true
}

// CompleteConnect handles the second anchor click. A click on the node the
// draw started from is ignored and the draw stays active; a click on any
// other node finishes the connection and returns to idle. The duplicate-
// edge rule applies: an already-linked pair yields no patch but still ends
// the draw. A stale target aborts silently.
func (c *Canvas) CompleteConnect(nodeID string, anchor geometry.Side) (chart.ConnectionPatch, bool) {
	if c.mode != ModeConnecting || c.connect == nil {
		return chart.ConnectionPatch{}, false
	}
	if nodeID == c.connect.fromID {
		// Second click must land on a different node.
		return chart.ConnectionPatch{}, false
	}
	if _, ok := c.resolved[nodeID]; !ok {
		c.CancelConnect()
		return chart.ConnectionPatch{}, false
	}

	conn := chart.Connection{
		FromID:     c.connect.fromID,
		ToID:       nodeID,
		FromAnchor: c.connect.fromAnchor,
		ToAnchor:   anchor,
	}
	c.connect = nil
	c.mode = ModeIdle
	return c.AddConnection(conn)
}

// CancelConnect leaves connection-draw mode, typically on Escape or a click
// on empty canvas. Deterministic and total: no partial state survives.
func (c *Canvas) CancelConnect() {
	if c.mode != ModeConnecting {
		return
	}
	c.connect = nil
	c.mode = ModeIdle
}
