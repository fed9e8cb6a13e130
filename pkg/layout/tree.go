// Package layout computes default non-overlapping positions for a forest of
// parent-pointer trees and resolves stored position overrides.
//
// The tree engine is a single-pass Reingold-Tilford-style algorithm: each
// subtree reserves a horizontal span wide enough for all of its descendants,
// and every parent is centered over its children. Malformed data (cycles,
// dangling references) degrades to a deterministic grid rather than failing.
package layout

import (
	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// Result is the output of one layout pass: a position for every visible node
// plus the padded bounding box of the whole diagram.
type Result struct {
	Positions map[string]geometry.Point
	Bounds    geometry.Rect
}

// Compute lays out the working set. Nodes listed in collapsed have their
// descendants hidden and consume exactly one node width themselves.
//
// Roots are nodes with no parent reference or a dangling one. When the data
// has no roots at all (fully cyclic), the whole set falls back to a fixed
// 4-column grid in input order; this guarantees termination and visible
// output even on corrupt data. Nodes unreachable from any root (a cycle
// hanging off otherwise valid data) are appended to grid rows below the
// forest so no visible node is ever silently dropped.
func Compute(nodes []chart.Node, collapsed map[string]struct{}) Result {
	if len(nodes) == 0 {
		return Result{Positions: map[string]geometry.Point{}}
	}
	if collapsed == nil {
		collapsed = map[string]struct{}{}
	}

	idx := chart.BuildIndex(nodes)
	roots := idx.Roots()
	if len(roots) == 0 {
		return gridFallback(nodes)
	}

	t := &treePass{
		idx:       idx,
		collapsed: collapsed,
		widths:    make(map[string]float64, idx.Len()),
		positions: make(map[string]geometry.Point, idx.Len()),
	}

	x := geometry.Padding
	for _, root := range roots {
		w := t.subtreeWidth(root)
		t.place(root, x, 0)
		x += w + geometry.TreeGap
	}

	t.placeLeftovers(nodes)

	return Result{
		Positions: t.positions,
		Bounds:    geometry.BoundsOf(t.positions),
	}
}

type treePass struct {
	idx       *chart.Index
	collapsed map[string]struct{}
	widths    map[string]float64
	positions map[string]geometry.Point
}

func (t *treePass) isCollapsed(id string) bool {
	_, ok := t.collapsed[id]
	return ok
}

// subtreeWidth returns the horizontal span needed to lay out id and all of
// its visible descendants without overlap. A collapsed or leaf node consumes
// exactly one node width.
func (t *treePass) subtreeWidth(id string) float64 {
	if w, ok := t.widths[id]; ok {
		return w
	}

	w := geometry.NodeWidth
	if !t.isCollapsed(id) {
		if children := t.idx.Children(id); len(children) > 0 {
			var sum float64
			for i, child := range children {
				if i > 0 {
					sum += geometry.SiblingGap
				}
				sum += t.subtreeWidth(child)
			}
			if sum > w {
				w = sum
			}
		}
	}

	t.widths[id] = w
	return w
}

// place positions id centered within [left, left+subtreeWidth) at the given
// level and recurses into its children left to right. Centers snap to the
// pixel grid for crisp rendering.
func (t *treePass) place(id string, left float64, level int) {
	width := t.subtreeWidth(id)
	y := geometry.Padding + float64(level)*(geometry.NodeHeight+geometry.LevelGap)
	center := left + width/2
	t.positions[id] = geometry.Point{
		X: geometry.SnapX(center - geometry.NodeWidth/2),
		Y: y,
	}

	if t.isCollapsed(id) {
		return
	}
	x := left
	for _, child := range t.idx.Children(id) {
		cw := t.subtreeWidth(child)
		t.place(child, x, level+1)
		x += cw + geometry.SiblingGap
	}
}

// placeLeftovers grid-places nodes that no root traversal reached, such as a
// detached parent cycle, starting on a fresh row below the laid-out forest.
func (t *treePass) placeLeftovers(nodes []chart.Node) {
	var leftovers []string
	hidden := t.hiddenByCollapse()
	for _, n := range nodes {
		if _, placed := t.positions[n.ID]; placed {
			continue
		}
		if _, hide := hidden[n.ID]; hide {
			continue
		}
		leftovers = append(leftovers, n.ID)
	}
	if len(leftovers) == 0 {
		return
	}

	baseY := geometry.BoundsOf(t.positions).MaxY()
	for i, id := range leftovers {
		slot := geometry.GridSlot(i)
		t.positions[id] = geometry.Point{X: slot.X, Y: baseY + slot.Y}
	}
}

// hiddenByCollapse returns ids of all descendants of collapsed nodes.
func (t *treePass) hiddenByCollapse() map[string]struct{} {
	hidden := make(map[string]struct{})
	var walk func(id string)
	walk = func(id string) {
		for _, child := range t.idx.Children(id) {
			if _, seen := hidden[child]; seen {
				continue
			}
			hidden[child] = struct{}{}
			walk(child)
		}
	}
	for id := range t.collapsed {
		walk(id)
	}
	return hidden
}

// gridFallback lays every node out on the fixed fallback grid in input order.
func gridFallback(nodes []chart.Node) Result {
	positions := make(map[string]geometry.Point, len(nodes))
	for i, n := range nodes {
		positions[n.ID] = geometry.GridSlot(i)
	}
	return Result{Positions: positions, Bounds: geometry.BoundsOf(positions)}
}
