// Package export renders chart snapshots to file formats.
//
// Two render paths exist:
//
//   - Canvas SVG ([SVG]): draws the chart exactly as laid out, honoring
//     stored positions, group display modes and manual connection routing.
//     This is the WYSIWYG export.
//   - Reporting diagram ([ToDOT] plus [RenderSVG]/[RenderPNG]): emits the
//     reporting tree as a Graphviz digraph and lets Graphviz lay it out.
//     Useful for quick structural views that ignore canvas positions.
package export
