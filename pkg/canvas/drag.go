package canvas

import (
	"math"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// dragSession captures everything needed to replay or abandon a drag: the
// pointer origin in screen space, the starting position of every moved node,
// and the live render-only positions.
type dragSession struct {
	origin geometry.Point // pointer position at drag start, screen space
	ids    []string
	start  map[string]geometry.Point
	live   map[string]geometry.Point
	group  bool
}

// StartDrag begins dragging the node under the pointer. If the node is part
// of the current multi-selection the whole selection drags as a group.
//
// Gated on idle mode: a drag can never begin while a connection draw is
// active. A drag on a node that no longer exists silently aborts (stale
// reference, not an error). Returns whether a drag actually started.
func (c *Canvas) StartDrag(id string, pointer geometry.Point) bool {
	if c.mode != ModeIdle {
		return false
	}
	if _, ok := c.resolved[id]; !ok {
		return false
	}

	ids := []string{id}
	group := false
	if _, inSelection := c.selection[id]; inSelection && len(c.selection) > 1 {
		ids = ids[:0]
		for sid := range c.selection {
			if _, ok := c.resolved[sid]; ok {
				ids = append(ids, sid)
			}
		}
		group = true
	}

	sess := &dragSession{
		origin: pointer,
		ids:    ids,
		start:  make(map[string]geometry.Point, len(ids)),
		live:   make(map[string]geometry.Point, len(ids)),
		group:  group,
	}
	for _, did := range ids {
		sess.start[did] = c.resolved[did]
		sess.live[did] = c.resolved[did]
	}

	c.drag = sess
	c.mode = ModeDragging
	return true
}

// UpdateDrag publishes live positions for the current pointer location. The
// screen-space delta is divided by the viewport scale so the node stays
// under the cursor at any zoom level. Live positions are consumed only for
// rendering; nothing is persisted mid-drag.
func (c *Canvas) UpdateDrag(pointer geometry.Point) {
	if c.mode != ModeDragging || c.drag == nil {
		return
	}
	delta := pointer.Sub(c.drag.origin).Scale(1 / c.view.Scale)
	for _, id := range c.drag.ids {
		c.drag.live[id] = c.drag.start[id].Add(delta)
	}
}

// EndDrag commits the drag at the final pointer position and returns the
// position patch for the caller to persist. Both axes clamp to zero or
// greater. A group drag commits every selected node atomically and clears
// the selection. Returns ok=false when no drag was active.
func (c *Canvas) EndDrag(pointer geometry.Point) (chart.PositionPatch, bool) {
	if c.mode != ModeDragging || c.drag == nil {
		return chart.PositionPatch{}, false
	}
	c.UpdateDrag(pointer)

	patch := chart.PositionPatch{Upserts: make([]chart.Position, 0, len(c.drag.ids))}
	for _, id := range c.drag.ids {
		p := c.drag.live[id]
		final := geometry.Point{X: math.Max(0, p.X), Y: math.Max(0, p.Y)}
		c.resolved[id] = final
		c.snapshot.UpsertPosition(chart.Position{ID: id, X: final.X, Y: final.Y})
		patch.Upserts = append(patch.Upserts, chart.Position{ID: id, X: final.X, Y: final.Y})
	}

	if c.drag.group {
		c.ClearSelection()
	}
	c.drag = nil
	c.mode = ModeIdle
	return patch, true
}

// CancelDrag abandons the drag, e.g. on lost pointer capture. The model is
// left exactly as it was before the drag began: live positions are discarded
// and nothing was committed.
func (c *Canvas) CancelDrag() {
	if c.mode != ModeDragging {
		return
	}
	c.drag = nil
	c.mode = ModeIdle
}
