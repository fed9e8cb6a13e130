package layout

import (
	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// ResolvePositions merges stored per-node positions with fallback defaults.
// A node with a stored position uses it verbatim; every other node takes the
// next free slot of the fallback grid, so newly created nodes never require a
// full tree pass and never land on top of each other. Grid slots that
// coincide with a stored position are skipped, so a fresh node never covers a
// previously placed one even when the stored positions are themselves grid
// slots.
//
// The result is deterministic for a given node order and stored set, and the
// function is idempotent: resolving twice with the same inputs yields
// identical output.
func ResolvePositions(nodes []chart.Node, stored map[string]geometry.Point) map[string]geometry.Point {
	out := make(map[string]geometry.Point, len(nodes))
	taken := make(map[geometry.Point]struct{}, len(nodes))
	for _, n := range nodes {
		if p, ok := stored[n.ID]; ok {
			out[n.ID] = p
			taken[p] = struct{}{}
		}
	}

	slot := 0
	for _, n := range nodes {
		if _, ok := out[n.ID]; ok {
			continue
		}
		p := geometry.GridSlot(slot)
		for {
			if _, occupied := taken[p]; !occupied {
				break
			}
			slot++
			p = geometry.GridSlot(slot)
		}
		out[n.ID] = p
		taken[p] = struct{}{}
		slot++
	}
	return out
}

// LivePositions overlays in-progress drag positions onto resolved positions.
// The overlay is render-only state: connection paths and the minimap follow
// it so dragged nodes track visually, but nothing here is ever persisted.
// Overlay entries for ids missing from resolved are ignored.
func LivePositions(resolved, overlay map[string]geometry.Point) map[string]geometry.Point {
	if len(overlay) == 0 {
		return resolved
	}
	out := make(map[string]geometry.Point, len(resolved))
	for id, p := range resolved {
		if live, ok := overlay[id]; ok {
			out[id] = live
			continue
		}
		out[id] = p
	}
	return out
}
