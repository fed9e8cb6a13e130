package geometry

// Side identifies one of the four anchor points on a node card: the midpoint
// of each edge. Connections enter and leave nodes only through anchors.
type Side string

// Anchor sides. The zero value is SideNone, meaning "not set"; routing code
// computes an optimal side at draw time when a connection carries SideNone.
const (
	SideNone   Side = ""
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Valid reports whether s is one of the four concrete sides.
func (s Side) Valid() bool {
	switch s {
	case SideTop, SideBottom, SideLeft, SideRight:
		return true
	}
	return false
}

// Opposite returns the side facing s across the card.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

// Normal returns the outward unit normal of the side.
func (s Side) Normal() Point {
	switch s {
	case SideTop:
		return Point{0, -1}
	case SideBottom:
		return Point{0, 1}
	case SideLeft:
		return Point{-1, 0}
	case SideRight:
		return Point{1, 0}
	}
	return Point{}
}

// AnchorPoint returns the content-space coordinate of the given anchor on a
// node card placed at pos.
func AnchorPoint(pos Point, s Side) Point {
	switch s {
	case SideTop:
		return Point{pos.X + NodeWidth/2, pos.Y}
	case SideBottom:
		return Point{pos.X + NodeWidth/2, pos.Y + NodeHeight}
	case SideLeft:
		return Point{pos.X, pos.Y + NodeHeight/2}
	case SideRight:
		return Point{pos.X + NodeWidth, pos.Y + NodeHeight/2}
	}
	return NodeCenter(pos)
}

// OptimalAnchors picks facing anchors for two cards by comparing the absolute
// horizontal and vertical displacement between their centers. The dominant
// axis decides whether the connection runs left/right or top/bottom, and each
// card's anchor faces the other card.
func OptimalAnchors(from, to Point) (Side, Side) {
	d := NodeCenter(to).Sub(NodeCenter(from))
	if abs(d.X) > abs(d.Y) {
		if d.X > 0 {
			return SideRight, SideLeft
		}
		return SideLeft, SideRight
	}
	if d.Y > 0 {
		return SideBottom, SideTop
	}
	return SideTop, SideBottom
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
