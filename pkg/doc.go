// Package pkg provides the core libraries for Orgcanvas org chart editing.
//
// # Overview
//
// Orgcanvas lays out organization charts on an infinite canvas and keeps
// them editable: cards can be dragged freely, linked with dotted-line
// connections, clustered into groups, and snapped back into saved rows. The
// pkg directory is organized into four main areas:
//
//  1. Model: [chart] (snapshot types, validation, serialization),
//     [geometry] (points, rects, anchors, bezier curves)
//  2. Engine: [layout] (tree layout and grid fallback), [hierarchy] (row
//     capture and replay), [connections] (dotted-line edges and routing),
//     [canvas] (drag/connect/selection state machine), [viewport] (pan,
//     zoom, minimap)
//  3. Persistence: [store] (memory, file, Redis, MongoDB backends),
//     [config] (TOML configuration)
//  4. Output: [export] (canvas SVG, Graphviz reporting diagrams)
//
// # Architecture
//
// The typical data flow:
//
//	chart file / store
//	         ↓
//	    [chart] package (snapshot, group visibility)
//	         ↓
//	    [layout] / [hierarchy] package (positions)
//	         ↓
//	    [canvas] + [viewport] packages (interaction)
//	         ↓
//	    [export] package (SVG/PNG/DOT output)
//
// # Quick Start
//
// Load a chart, lay it out, and render it:
//
//	s, _ := chart.ReadFile("team.json")
//	visible := chart.VisibleNodes(&s)
//	result := layout.Compute(visible, nil)
//	s.SetPositions(result.Positions)
//	svg := export.SVG(&s)
//
// Interact with it:
//
//	cv := canvas.New(&s, viewport.New(1200, 800))
//	cv.StartDrag("alice", geometry.Point{X: 10, Y: 10})
//	cv.UpdateDrag(geometry.Point{X: 60, Y: 40})
//	patch, _ := cv.EndDrag(geometry.Point{X: 60, Y: 40})
//
// The engine never performs I/O: interactions produce patches, and callers
// persist them through a [store] backend or their own transport.
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/chart
// [geometry]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/geometry
// [layout]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/layout
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/hierarchy
// [connections]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/connections
// [canvas]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/canvas
// [viewport]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/viewport
// [store]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/config
// [export]: https://pkg.go.dev/github.com/matzehuels/orgcanvas/pkg/export
package pkg
