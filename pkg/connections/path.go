package connections

import (
	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// Path is a fully resolved connection ready for rendering: concrete anchors
// and the bezier curve between them.
type Path struct {
	Connection chart.Connection
	FromAnchor geometry.Side
	ToAnchor   geometry.Side
	Curve      geometry.Curve
}

// ResolvePath computes the drawable path for a connection against the
// current (live) positions. Stored anchors are honored; unset anchors are
// chosen by the optimal-anchor heuristic from the endpoints' relative
// positions. Returns ok=false when either endpoint has no position, which
// renderers treat as "skip this connection" rather than an error.
func ResolvePath(c chart.Connection, positions map[string]geometry.Point) (Path, bool) {
	fromPos, fromOK := positions[c.FromID]
	toPos, toOK := positions[c.ToID]
	if !fromOK || !toOK {
		return Path{}, false
	}

	from, to := c.FromAnchor, c.ToAnchor
	if !from.Valid() || !to.Valid() {
		optFrom, optTo := geometry.OptimalAnchors(fromPos, toPos)
		if !from.Valid() {
			from = optFrom
		}
		if !to.Valid() {
			to = optTo
		}
	}

	return Path{
		Connection: c,
		FromAnchor: from,
		ToAnchor:   to,
		Curve:      geometry.ConnectionCurve(fromPos, toPos, from, to),
	}, true
}

// ResolvePaths resolves every connection in the set, skipping those whose
// endpoints are missing from the position map.
func ResolvePaths(conns []chart.Connection, positions map[string]geometry.Point) []Path {
	out := make([]Path, 0, len(conns))
	for _, c := range conns {
		if p, ok := ResolvePath(c, positions); ok {
			out = append(out, p)
		}
	}
	return out
}
