package layout

import (
	"testing"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

func TestCompute_Empty(t *testing.T) {
	res := Compute(nil, nil)
	if len(res.Positions) != 0 {
		t.Errorf("positions = %d, want 0", len(res.Positions))
	}
	if !res.Bounds.Empty() {
		t.Errorf("bounds = %+v, want zero-size", res.Bounds)
	}
}

func TestCompute_ParentCenteredOverChildren(t *testing.T) {
	res := Compute([]chart.Node{
		{ID: "a"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "a"},
	}, nil)

	a, b, c := res.Positions["a"], res.Positions["b"], res.Positions["c"]

	if b.Y != c.Y {
		t.Errorf("siblings at different levels: b.Y=%v c.Y=%v", b.Y, c.Y)
	}
	if b.Y <= a.Y {
		t.Errorf("child level %v not below parent level %v", b.Y, a.Y)
	}
	if b.X+geometry.NodeWidth > c.X && c.X+geometry.NodeWidth > b.X {
		t.Errorf("siblings overlap: b.X=%v c.X=%v", b.X, c.X)
	}

	// Parent center sits at the midpoint of its children, up to grid snapping.
	mid := (geometry.NodeCenter(b).X + geometry.NodeCenter(c).X) / 2
	want := geometry.SnapX(mid - geometry.NodeWidth/2)
	if a.X != want {
		t.Errorf("a.X = %v, want %v (midpoint of b and c)", a.X, want)
	}
}

func TestCompute_GridFallbackForFullyCyclicData(t *testing.T) {
	nodes := []chart.Node{
		{ID: "a", ParentID: "a"},
		{ID: "b", ParentID: "b"},
		{ID: "c", ParentID: "a"},
	}
	// Must terminate and place every node.
	res := Compute(nodes, nil)
	if len(res.Positions) != len(nodes) {
		t.Fatalf("positions = %d, want %d", len(res.Positions), len(nodes))
	}

	// But "c" has a live parent "a", so only a/b cycle... a is self-cyclic,
	// meaning no roots exist and the whole set uses the grid.
	for i, n := range nodes {
		if got, want := res.Positions[n.ID], geometry.GridSlot(i); got != want {
			t.Errorf("position[%s] = %+v, want grid slot %+v", n.ID, got, want)
		}
	}

	// Determinism: identical input yields identical output.
	again := Compute(nodes, nil)
	for id, p := range res.Positions {
		if again.Positions[id] != p {
			t.Errorf("fallback not deterministic for %s: %+v vs %+v", id, p, again.Positions[id])
		}
	}
}

func TestCompute_CollapsedConsumesOneNodeWidth(t *testing.T) {
	nodes := []chart.Node{
		{ID: "root"},
		{ID: "big", ParentID: "root"},
		{ID: "b1", ParentID: "big"},
		{ID: "b2", ParentID: "big"},
		{ID: "b3", ParentID: "big"},
		{ID: "leaf", ParentID: "root"},
	}

	expanded := Compute(nodes, nil)
	collapsed := Compute(nodes, map[string]struct{}{"big": {}})

	if expanded.Bounds.Width <= collapsed.Bounds.Width {
		t.Errorf("collapsing wide subtree did not shrink bounds: %v vs %v",
			expanded.Bounds.Width, collapsed.Bounds.Width)
	}
	for _, hiddenID := range []string{"b1", "b2", "b3"} {
		if _, ok := collapsed.Positions[hiddenID]; ok {
			t.Errorf("descendant %s of collapsed node still positioned", hiddenID)
		}
	}
	if _, ok := collapsed.Positions["big"]; !ok {
		t.Error("collapsed node itself must keep a position")
	}
}

func TestCompute_MultipleRootsSeparated(t *testing.T) {
	res := Compute([]chart.Node{{ID: "r1"}, {ID: "r2"}}, nil)
	r1, r2 := res.Positions["r1"], res.Positions["r2"]
	if r1.Y != r2.Y {
		t.Errorf("roots at different levels: %v vs %v", r1.Y, r2.Y)
	}
	gap := r2.X - (r1.X + geometry.NodeWidth)
	if gap < geometry.TreeGap-geometry.GridSnap {
		t.Errorf("root tree gap = %v, want at least about %v", gap, geometry.TreeGap)
	}
}

func TestCompute_DanglingParentBecomesRoot(t *testing.T) {
	res := Compute([]chart.Node{
		{ID: "a"},
		{ID: "orphan", ParentID: "deleted-manager"},
	}, nil)
	a, orphan := res.Positions["a"], res.Positions["orphan"]
	if a.Y != orphan.Y {
		t.Errorf("dangling-parent node not at root level: %v vs %v", orphan.Y, a.Y)
	}
}

func TestCompute_DetachedCycleStillPlaced(t *testing.T) {
	res := Compute([]chart.Node{
		{ID: "root"},
		{ID: "x", ParentID: "y"},
		{ID: "y", ParentID: "x"},
	}, nil)
	if len(res.Positions) != 3 {
		t.Fatalf("positions = %d, want 3 (detached cycle must not vanish)", len(res.Positions))
	}
	if res.Positions["x"] == res.Positions["y"] {
		t.Error("detached cycle members share a position")
	}
}

// Levels map onto fixed Y bands.
func TestCompute_LevelSpacing(t *testing.T) {
	res := Compute([]chart.Node{
		{ID: "a"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "b"},
	}, nil)

	step := geometry.NodeHeight + geometry.LevelGap
	if got := res.Positions["b"].Y - res.Positions["a"].Y; got != step {
		t.Errorf("level step = %v, want %v", got, step)
	}
	if got := res.Positions["c"].Y - res.Positions["b"].Y; got != step {
		t.Errorf("level step = %v, want %v", got, step)
	}
}

func TestResolvePositions_StoredVerbatim(t *testing.T) {
	nodes := []chart.Node{{ID: "a"}, {ID: "b"}}
	stored := map[string]geometry.Point{"a": {X: 999.5, Y: -3}}

	got := ResolvePositions(nodes, stored)
	if got["a"] != stored["a"] {
		t.Errorf("stored position not used verbatim: %+v", got["a"])
	}
	if got["b"] != geometry.GridSlot(0) {
		t.Errorf("unstored node position = %+v, want first grid slot", got["b"])
	}
}

// A fresh node must not land on a slot a stored node already occupies, which
// happens whenever a grid-fallback layout has been persisted: the stored
// positions are exactly the grid slots.
func TestResolvePositions_SkipsOccupiedSlots(t *testing.T) {
	nodes := []chart.Node{{ID: "old"}, {ID: "older"}, {ID: "fresh"}}
	stored := map[string]geometry.Point{
		"old":   geometry.GridSlot(0),
		"older": geometry.GridSlot(1),
	}

	got := ResolvePositions(nodes, stored)
	if got["fresh"] == got["old"] || got["fresh"] == got["older"] {
		t.Fatalf("fresh node placed on an occupied slot: %+v", got["fresh"])
	}
	if got["fresh"] != geometry.GridSlot(2) {
		t.Errorf("fresh node position = %+v, want next free slot %+v",
			got["fresh"], geometry.GridSlot(2))
	}
}

// Stored order does not matter: a stored node appearing after the fresh one
// in the working set still blocks its slot.
func TestResolvePositions_StoredLaterInOrderStillBlocks(t *testing.T) {
	nodes := []chart.Node{{ID: "fresh"}, {ID: "old"}}
	stored := map[string]geometry.Point{"old": geometry.GridSlot(0)}

	got := ResolvePositions(nodes, stored)
	if got["fresh"] == got["old"] {
		t.Fatalf("fresh node placed on an occupied slot: %+v", got["fresh"])
	}
}

func TestResolvePositions_Idempotent(t *testing.T) {
	nodes := []chart.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	stored := map[string]geometry.Point{"b": {X: 10, Y: 20}}

	first := ResolvePositions(nodes, stored)
	second := ResolvePositions(nodes, stored)
	for id, p := range first {
		if second[id] != p {
			t.Errorf("not idempotent for %s: %+v vs %+v", id, p, second[id])
		}
	}
}

func TestLivePositions_OverlayWinsWithoutMutating(t *testing.T) {
	resolved := map[string]geometry.Point{"a": {X: 1}, "b": {X: 2}}
	overlay := map[string]geometry.Point{"a": {X: 100}, "ghost": {X: 7}}

	live := LivePositions(resolved, overlay)
	if live["a"].X != 100 {
		t.Errorf("live a.X = %v, want 100", live["a"].X)
	}
	if live["b"].X != 2 {
		t.Errorf("live b.X = %v, want 2", live["b"].X)
	}
	if _, ok := live["ghost"]; ok {
		t.Error("overlay id not in resolved set leaked into live view")
	}
	if resolved["a"].X != 1 {
		t.Error("overlay mutated the resolved map")
	}
}
