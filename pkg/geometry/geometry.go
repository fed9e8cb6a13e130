// Package geometry provides the fixed canvas dimensions and the pure math
// shared by the layout, connection and viewport packages.
//
// All coordinates are top-left pixel positions in content space. Pan and zoom
// are a viewport concern and are never baked into a stored coordinate.
package geometry

import "math"

// Canvas constants. Every node card has the same fixed footprint; layout
// algorithms reason purely in these units.
const (
	// NodeWidth and NodeHeight are the fixed card dimensions in pixels.
	NodeWidth  = 180.0
	NodeHeight = 80.0

	// SiblingGap is the horizontal gap between adjacent sibling subtrees.
	SiblingGap = 40.0

	// LevelGap is the vertical gap between tree levels.
	LevelGap = 60.0

	// TreeGap separates two root trees laid out side by side.
	TreeGap = 2 * SiblingGap

	// Padding expands content bounds on all sides and offsets the first level.
	Padding = 40.0

	// GridSnap is the horizontal snapping unit for computed centers.
	GridSnap = 8.0

	// FallbackColumns is the column count of the fallback grid used both for
	// fully-cyclic input and for nodes without a stored position.
	FallbackColumns = 4

	// RowGap is the vertical gap between replayed hierarchy rows.
	// RowGapConnected leaves extra room for connection curves.
	RowGap          = 60.0
	RowGapConnected = 100.0
)

// Point is a 2D coordinate in content space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both components multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	MinX   float64 `json:"min_x" bson:"min_x"`
	MinY   float64 `json:"min_y" bson:"min_y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.MinX + r.Width }

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 { return r.MinY + r.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MinX+r.Width &&
		p.Y >= r.MinY && p.Y < r.MinY+r.Height
}

// Expand grows the rectangle by m on all four sides.
func (r Rect) Expand(m float64) Rect {
	return Rect{MinX: r.MinX - m, MinY: r.MinY - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Union returns the smallest rectangle covering both r and s.
// An empty rectangle acts as the identity.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	minX := math.Min(r.MinX, s.MinX)
	minY := math.Min(r.MinY, s.MinY)
	maxX := math.Max(r.MaxX(), s.MaxX())
	maxY := math.Max(r.MaxY(), s.MaxY())
	return Rect{MinX: minX, MinY: minY, Width: maxX - minX, Height: maxY - minY}
}

// NodeRect returns the card rectangle for a node placed at pos.
func NodeRect(pos Point) Rect {
	return Rect{MinX: pos.X, MinY: pos.Y, Width: NodeWidth, Height: NodeHeight}
}

// NodeCenter returns the center of a node card placed at pos.
func NodeCenter(pos Point) Point {
	return Point{X: pos.X + NodeWidth/2, Y: pos.Y + NodeHeight/2}
}

// SnapX snaps a horizontal coordinate to the nearest GridSnap multiple.
// Computed tree centers are snapped so cards land on crisp pixel boundaries.
func SnapX(x float64) float64 {
	return math.Round(x/GridSnap) * GridSnap
}

// BoundsOf computes the tight bounding box of the given node positions,
// expanded by Padding on all sides. An empty input yields the zero Rect.
func BoundsOf(positions map[string]Point) Rect {
	var bounds Rect
	first := true
	for _, p := range positions {
		r := NodeRect(p)
		if first {
			bounds = r
			first = false
			continue
		}
		bounds = bounds.Union(r)
	}
	if first {
		return Rect{}
	}
	return bounds.Expand(Padding)
}

// GridSlot returns the position of slot i in the fallback grid: a fixed
// FallbackColumns-wide grid filled left-to-right, top-to-bottom, offset by
// Padding. Slot order is the caller's input order, which keeps the fallback
// deterministic even for fully malformed data.
func GridSlot(i int) Point {
	col := i % FallbackColumns
	row := i / FallbackColumns
	return Point{
		X: Padding + float64(col)*(NodeWidth+SiblingGap),
		Y: Padding + float64(row)*(NodeHeight+LevelGap),
	}
}
