package viewport

import "github.com/matzehuels/orgcanvas/pkg/geometry"

// Minimap thresholds and scale. The minimap only earns its screen estate
// once the content outgrows a comfortable single view.
const (
	MinimapScale = 0.08

	minimapMinContentWidth  = 2000.0
	minimapMinContentHeight = 1400.0
)

// Minimap maps content space onto a small fixed-scale overview. It renders
// every node position plus a rectangle for the currently visible viewport,
// and converts click coordinates back to content space.
type Minimap struct {
	bounds geometry.Rect
}

// NewMinimap creates a minimap over the given content bounds.
func NewMinimap(bounds geometry.Rect) Minimap {
	return Minimap{bounds: bounds}
}

// Visible reports whether the minimap should render at all: only when the
// content bounds exceed the size threshold on either axis.
func (m Minimap) Visible() bool {
	return m.bounds.Width > minimapMinContentWidth || m.bounds.Height > minimapMinContentHeight
}

// Size returns the minimap's pixel dimensions.
func (m Minimap) Size() (width, height float64) {
	return m.bounds.Width * MinimapScale, m.bounds.Height * MinimapScale
}

// ToMinimap converts a content point to minimap-local coordinates.
func (m Minimap) ToMinimap(p geometry.Point) geometry.Point {
	return p.Sub(geometry.Point{X: m.bounds.MinX, Y: m.bounds.MinY}).Scale(MinimapScale)
}

// ToContent converts a minimap-local coordinate back to content space.
func (m Minimap) ToContent(p geometry.Point) geometry.Point {
	return p.Scale(1 / MinimapScale).Add(geometry.Point{X: m.bounds.MinX, Y: m.bounds.MinY})
}

// ViewportRect returns the minimap-local rectangle covering the main
// viewport's currently visible content.
func (m Minimap) ViewportRect(v *Viewport) geometry.Rect {
	visible := v.VisibleContent()
	topLeft := m.ToMinimap(geometry.Point{X: visible.MinX, Y: visible.MinY})
	return geometry.Rect{
		MinX:   topLeft.X,
		MinY:   topLeft.Y,
		Width:  visible.Width * MinimapScale,
		Height: visible.Height * MinimapScale,
	}
}

// Click recenters the main viewport on the clicked minimap point.
func (m Minimap) Click(v *Viewport, p geometry.Point) {
	v.CenterOn(m.ToContent(p))
}
