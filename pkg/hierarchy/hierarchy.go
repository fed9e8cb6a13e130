// Package hierarchy captures a row-grouped arrangement from freeform node
// positions and replays it into fresh coordinates.
//
// The saved hierarchy is positional memory, not org structure: it records
// which nodes the user placed on the same visual tier and in what left-to-
// right order, independent of manager references. Replay never consults
// ParentID; the parent-pointer tree (pkg/layout) and the saved hierarchy are
// two deliberately separate arrangements of the same data.
package hierarchy

import (
	"sort"
	"time"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// RowTolerance is the Y window within which two nodes count as the same
// visual row: half the effective node height.
const RowTolerance = geometry.NodeHeight / 2

// Options configures replay.
type Options struct {
	// HasConnections widens the vertical row gap to leave room for
	// connection curve routing.
	HasConnections bool

	// Fallback produces a hierarchy when neither a saved one nor any
	// positions exist. Nil means CategoryFallback.
	Fallback FallbackFunc
}

// FallbackFunc derives a default hierarchy from the node set alone.
type FallbackFunc func(nodes []chart.Node) chart.SavedHierarchy

// Result is the outcome of a replay: new positions, their bounds, and any
// saved ids that were dropped because their nodes no longer exist.
type Result struct {
	Positions map[string]geometry.Point
	Bounds    geometry.Rect

	// Dropped lists hierarchy ids filtered out during replay. The engine
	// filters silently; callers decide whether to log.
	Dropped []string
}

// =============================================================================
// Capture - Freeform Positions → Rows
// =============================================================================

// Capture clusters the given positions into rows. Two items whose Y
// coordinates fall within RowTolerance of the row anchor share a row. Rows
// are ordered top to bottom and each row's members left to right, capturing
// the user's intent ("these belong on the same visual tier") independent of
// reporting lines.
func Capture(positions map[string]geometry.Point) chart.SavedHierarchy {
	if len(positions) == 0 {
		return chart.SavedHierarchy{}
	}

	type item struct {
		id string
		p  geometry.Point
	}
	items := make([]item, 0, len(positions))
	for id, p := range positions {
		items = append(items, item{id, p})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].p.Y != items[j].p.Y {
			return items[i].p.Y < items[j].p.Y
		}
		return items[i].id < items[j].id
	})

	var rows [][]item
	anchorY := items[0].p.Y
	current := []item{items[0]}
	for _, it := range items[1:] {
		if it.p.Y-anchorY <= RowTolerance {
			current = append(current, it)
			continue
		}
		rows = append(rows, current)
		current = []item{it}
		anchorY = it.p.Y
	}
	rows = append(rows, current)

	out := chart.SavedHierarchy{
		Rows:    make([]chart.Row, len(rows)),
		SavedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for i, row := range rows {
		sort.Slice(row, func(a, b int) bool {
			if row[a].p.X != row[b].p.X {
				return row[a].p.X < row[b].p.X
			}
			return row[a].id < row[b].id
		})
		ids := make([]string, len(row))
		for j, it := range row {
			ids[j] = it.id
		}
		out.Rows[i] = chart.Row{ItemIDs: ids}
	}
	return out
}

// =============================================================================
// Replay - Rows → Fresh Coordinates
// =============================================================================

// Replay turns a hierarchy back into pixel positions: every row is centered
// within the widest row's span and rows stack vertically with a gap that
// depends on whether connections need routing room.
//
// Saved ids without a live node are filtered out and reported in
// Result.Dropped. Live nodes absent from the hierarchy are appended as
// trailing rows so no node is ever silently lost.
func Replay(h chart.SavedHierarchy, nodes []chart.Node, opts Options) Result {
	present := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		present[n.ID] = struct{}{}
	}

	var rows [][]string
	var dropped []string
	placed := make(map[string]struct{})
	for _, row := range h.Rows {
		var keep []string
		for _, id := range row.ItemIDs {
			if _, ok := present[id]; !ok {
				dropped = append(dropped, id)
				continue
			}
			if _, dup := placed[id]; dup {
				continue
			}
			placed[id] = struct{}{}
			keep = append(keep, id)
		}
		if len(keep) > 0 {
			rows = append(rows, keep)
		}
	}

	// Nodes added since the hierarchy was saved land on new trailing rows.
	var trailing []string
	for _, n := range nodes {
		if _, ok := placed[n.ID]; !ok {
			trailing = append(trailing, n.ID)
		}
	}
	for start := 0; start < len(trailing); start += geometry.FallbackColumns {
		end := start + geometry.FallbackColumns
		if end > len(trailing) {
			end = len(trailing)
		}
		rows = append(rows, trailing[start:end])
	}

	positions := layoutRows(rows, opts.HasConnections)
	return Result{
		Positions: positions,
		Bounds:    geometry.BoundsOf(positions),
		Dropped:   dropped,
	}
}

// layoutRows centers each row within the widest row and stacks them.
func layoutRows(rows [][]string, connected bool) map[string]geometry.Point {
	positions := make(map[string]geometry.Point)
	if len(rows) == 0 {
		return positions
	}

	maxWidth := 0.0
	for _, row := range rows {
		if w := rowWidth(len(row)); w > maxWidth {
			maxWidth = w
		}
	}

	gap := geometry.RowGap
	if connected {
		gap = geometry.RowGapConnected
	}

	y := geometry.Padding
	for _, row := range rows {
		x := geometry.Padding + (maxWidth-rowWidth(len(row)))/2
		for _, id := range row {
			positions[id] = geometry.Point{X: geometry.SnapX(x), Y: y}
			x += geometry.NodeWidth + geometry.SiblingGap
		}
		y += geometry.NodeHeight + gap
	}
	return positions
}

func rowWidth(members int) float64 {
	if members <= 0 {
		return 0
	}
	return float64(members)*geometry.NodeWidth + float64(members-1)*geometry.SiblingGap
}

// =============================================================================
// Auto-Arrange Orchestration
// =============================================================================

// AutoArrange replays the snapshot's saved hierarchy if one exists, derives
// one from current positions otherwise, and falls back to a category-based
// default when no positions exist at all. The visible node set (after group
// display-mode resolution) decides which items participate.
func AutoArrange(s *chart.Snapshot, visible []chart.Node, opts Options) Result {
	h := s.Hierarchy
	if h.Empty() {
		if len(s.Positions) > 0 {
			h = Capture(s.PositionMap())
		} else {
			fallback := opts.Fallback
			if fallback == nil {
				fallback = CategoryFallback
			}
			h = fallback(visible)
		}
	}
	return Replay(h, visible, opts)
}

// CategoryFallback is the default arrangement policy when nothing has ever
// been positioned: one row per category, in first-seen order, with
// uncategorized nodes on the final row.
func CategoryFallback(nodes []chart.Node) chart.SavedHierarchy {
	var order []string
	byCategory := make(map[string][]string)
	for _, n := range nodes {
		if _, seen := byCategory[n.Category]; !seen {
			order = append(order, n.Category)
		}
		byCategory[n.Category] = append(byCategory[n.Category], n.ID)
	}

	// Uncategorized nodes sink to the bottom.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i] != "" && order[j] == ""
	})

	h := chart.SavedHierarchy{Rows: make([]chart.Row, 0, len(order))}
	for _, cat := range order {
		h.Rows = append(h.Rows, chart.Row{ItemIDs: byCategory[cat]})
	}
	return h
}
