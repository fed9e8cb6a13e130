package geometry

import (
	"fmt"
	"math"
)

// Control point offsets. Curves leave and enter a card perpendicular to its
// edge; the offset grows with the anchor distance up to a cap so long
// connections stay gentle and short ones don't balloon.
const (
	controlOffsetCap  = 60.0
	controlOffsetBase = 30.0
)

// Curve is a cubic bezier between two anchor points.
type Curve struct {
	Start, C1, C2, End Point
}

// ControlOffset returns the distance from an anchor to its control point for
// a connection with displacement (dx, dy): min(|dx|, |dy|, 60) + 30.
func ControlOffset(dx, dy float64) float64 {
	return math.Min(math.Min(abs(dx), abs(dy)), controlOffsetCap) + controlOffsetBase
}

// ConnectionCurve builds the cubic bezier for a connection between two node
// cards. Each control point sits on its anchor's outward normal, so the curve
// always exits and enters perpendicular to the card edge regardless of where
// the other endpoint lies.
func ConnectionCurve(fromPos, toPos Point, fromSide, toSide Side) Curve {
	start := AnchorPoint(fromPos, fromSide)
	end := AnchorPoint(toPos, toSide)
	offset := ControlOffset(end.X-start.X, end.Y-start.Y)
	return Curve{
		Start: start,
		C1:    start.Add(fromSide.Normal().Scale(offset)),
		C2:    end.Add(toSide.Normal().Scale(offset)),
		End:   end,
	}
}

// PointAt evaluates the curve at parameter t in [0, 1].
func (c Curve) PointAt(t float64) Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Point{
		X: b0*c.Start.X + b1*c.C1.X + b2*c.C2.X + b3*c.End.X,
		Y: b0*c.Start.Y + b1*c.C1.Y + b2*c.C2.Y + b3*c.End.Y,
	}
}

// Midpoint returns the point at t=0.5, used for label placement.
func (c Curve) Midpoint() Point { return c.PointAt(0.5) }

// EndTangent returns the unit direction of travel at the end of the curve,
// used to orient arrowheads.
func (c Curve) EndTangent() Point {
	return unitDir(c.End.Sub(c.C2))
}

// StartTangent returns the unit direction of travel at the start of the
// curve, used for the reverse arrowhead of bidirectional connections.
func (c Curve) StartTangent() Point {
	return unitDir(c.C1.Sub(c.Start))
}

func unitDir(d Point) Point {
	length := math.Hypot(d.X, d.Y)
	if length == 0 {
		return Point{0, 1}
	}
	return d.Scale(1 / length)
}

// PathData renders the curve as SVG path data.
func (c Curve) PathData() string {
	return fmt.Sprintf("M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f",
		c.Start.X, c.Start.Y, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y)
}
