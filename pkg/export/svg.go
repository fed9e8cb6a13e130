package export

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/connections"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
	"github.com/matzehuels/orgcanvas/pkg/layout"
)

// Card and arrow styling shared by the canvas export.
const (
	cardRadius     = 8
	groupInset     = 16.0
	arrowLength    = 10.0
	arrowHalfWidth = 4.0

	cardStyle     = "fill:white;stroke:#333333;stroke-width:1.5"
	nameStyle     = "font-family:sans-serif;font-size:14px;font-weight:bold;fill:#222222;text-anchor:middle"
	titleStyle    = "font-family:sans-serif;font-size:12px;fill:#666666;text-anchor:middle"
	labelStyle    = "font-family:sans-serif;font-size:11px;fill:#444444;text-anchor:middle"
	groupTagStyle = "font-family:sans-serif;font-size:12px;font-weight:bold;text-anchor:start"
)

// SVG renders the snapshot as a standalone SVG document, drawing connections
// under the node cards so anchors stay visible. Group display modes are
// honored: collapsed groups render as a single card, leads-only groups show
// just their visible members.
func SVG(s *chart.Snapshot) []byte {
	visible := chart.VisibleNodes(s)
	resolved := layout.ResolvePositions(visible, s.PositionMap())
	bounds := geometry.BoundsOf(resolved)

	width := int(bounds.MaxX() + geometry.Padding)
	height := int(bounds.MaxY() + geometry.Padding)
	if bounds.Empty() {
		width, height = int(2*geometry.Padding), int(2*geometry.Padding)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#fafafa")

	for _, g := range s.Groups {
		drawGroupOutline(canvas, g, resolved)
	}
	for _, p := range connections.ResolvePaths(s.Connections, resolved) {
		drawConnection(canvas, p)
	}
	for _, n := range visible {
		drawCard(canvas, n, resolved[n.ID])
	}

	canvas.End()
	return buf.Bytes()
}

func drawCard(canvas *svg.SVG, n chart.Node, pos geometry.Point) {
	x, y := int(pos.X), int(pos.Y)
	canvas.Roundrect(x, y, int(geometry.NodeWidth), int(geometry.NodeHeight), cardRadius, cardRadius, cardStyle)

	cx := x + int(geometry.NodeWidth)/2
	canvas.Text(cx, y+32, n.DisplayLabel(), nameStyle)
	if n.Title != "" {
		canvas.Text(cx, y+52, n.Title, titleStyle)
	}
	if n.Category != "" {
		canvas.Text(cx, y+68, n.Category, labelStyle)
	}
}

// drawGroupOutline frames the visible members of a group with a dashed box.
// Collapsed groups need no outline: they already render as one card.
func drawGroupOutline(canvas *svg.SVG, g chart.Group, resolved map[string]geometry.Point) {
	if g.IsCollapsed() {
		return
	}
	var frame geometry.Rect
	found := false
	for _, id := range g.MemberIDs {
		if !g.VisibleMember(id) {
			continue
		}
		pos, ok := resolved[id]
		if !ok {
			continue
		}
		r := geometry.NodeRect(pos)
		if !found {
			frame = r
			found = true
		} else {
			frame = frame.Union(r)
		}
	}
	if !found {
		return
	}
	frame = frame.Expand(groupInset)

	color := g.Color
	if color == "" {
		color = "#7a7a7a"
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5;stroke-dasharray:6,4", color)
	canvas.Rect(int(frame.MinX), int(frame.MinY), int(frame.Width), int(frame.Height), style)
	canvas.Text(int(frame.MinX)+6, int(frame.MinY)-6, g.Name, groupTagStyle+";fill:"+color)
}

func drawConnection(canvas *svg.SVG, p connections.Path) {
	color := p.Connection.Color
	if color == "" {
		color = "#555555"
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", color)
	switch p.Connection.LineType {
	case chart.LineDashed:
		style += ";stroke-dasharray:8,4"
	case chart.LineDotted:
		style += ";stroke-dasharray:2,3"
	}
	canvas.Path(p.Curve.PathData(), style)

	switch p.Connection.ArrowHead {
	case chart.ArrowForward:
		drawArrowhead(canvas, p.Curve.End, p.Curve.EndTangent(), color)
	case chart.ArrowBoth:
		drawArrowhead(canvas, p.Curve.End, p.Curve.EndTangent(), color)
		drawArrowhead(canvas, p.Curve.Start, p.Curve.StartTangent().Scale(-1), color)
	}

	if p.Connection.Label != "" {
		mid := p.Curve.Midpoint()
		canvas.Text(int(mid.X), int(mid.Y)-6, p.Connection.Label, labelStyle)
	}
}

// drawArrowhead places a filled triangle with its tip at the given point,
// oriented along the unit direction of travel.
func drawArrowhead(canvas *svg.SVG, tip, dir geometry.Point, color string) {
	perp := geometry.Point{X: -dir.Y, Y: dir.X}
	base := tip.Sub(dir.Scale(arrowLength))
	left := base.Add(perp.Scale(arrowHalfWidth))
	right := base.Sub(perp.Scale(arrowHalfWidth))

	xs := []int{int(tip.X), int(left.X), int(right.X)}
	ys := []int{int(tip.Y), int(left.Y), int(right.Y)}
	canvas.Polygon(xs, ys, "fill:"+color)
}
