// Package viewport manages the pan/zoom transform between content space and
// screen space, plus fit-to-content and minimap coordinate mapping.
//
// Content positions are never scaled in storage; the viewport owns the only
// transform. screen = content*Scale + Pan.
package viewport

import (
	"math"

	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// Zoom limits and steps.
const (
	MinScale = 0.4
	MaxScale = 2.0

	// ZoomStep is the per-notch scale factor for wheel and keyboard zoom.
	ZoomStep = 1.1
)

// Viewport holds the current transform and the visible container size in
// screen pixels. The zero value is not usable; use New.
type Viewport struct {
	Scale  float64
	PanX   float64
	PanY   float64
	Width  float64
	Height float64
}

// New creates a viewport at 1:1 scale for a container of the given pixel
// dimensions.
func New(width, height float64) *Viewport {
	return &Viewport{Scale: 1, Width: width, Height: height}
}

// Resize updates the container dimensions, e.g. after a host layout change.
func (v *Viewport) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

// ClampScale clamps a requested scale into [MinScale, MaxScale].
// Out-of-range requests are clamped, never rejected.
func ClampScale(s float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, s))
}

// ScreenToContent converts a screen coordinate to content space under the
// current transform.
func (v *Viewport) ScreenToContent(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: (p.X - v.PanX) / v.Scale,
		Y: (p.Y - v.PanY) / v.Scale,
	}
}

// ContentToScreen converts a content coordinate to screen space.
func (v *Viewport) ContentToScreen(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: p.X*v.Scale + v.PanX,
		Y: p.Y*v.Scale + v.PanY,
	}
}

// ZoomAt rescales toward a screen-space cursor: the content point under the
// cursor before the zoom stays under the cursor after it. This is the wheel-
// zoom primitive.
func (v *Viewport) ZoomAt(cursor geometry.Point, newScale float64) {
	anchor := v.ScreenToContent(cursor)
	v.Scale = ClampScale(newScale)
	v.PanX = cursor.X - anchor.X*v.Scale
	v.PanY = cursor.Y - anchor.Y*v.Scale
}

// WheelZoom applies one zoom notch toward the cursor. Positive steps zoom
// in, negative steps zoom out.
func (v *Viewport) WheelZoom(cursor geometry.Point, steps int) {
	v.ZoomAt(cursor, v.Scale*math.Pow(ZoomStep, float64(steps)))
}

// ZoomIn zooms one step toward the viewport center.
func (v *Viewport) ZoomIn() { v.WheelZoom(v.center(), 1) }

// ZoomOut zooms one step away from the viewport center.
func (v *Viewport) ZoomOut() { v.WheelZoom(v.center(), -1) }

func (v *Viewport) center() geometry.Point {
	return geometry.Point{X: v.Width / 2, Y: v.Height / 2}
}

// PanTo sets the pan offsets directly.
func (v *Viewport) PanTo(panX, panY float64) {
	v.PanX = panX
	v.PanY = panY
}

// PanBy shifts the view by a screen-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// CenterOn pans so the given content point sits at the viewport center,
// without changing scale.
func (v *Viewport) CenterOn(p geometry.Point) {
	v.PanX = v.Width/2 - p.X*v.Scale
	v.PanY = v.Height/2 - p.Y*v.Scale
}

// FitToContent picks the largest scale (capped at 1:1 and the zoom limits)
// at which the content bounds fit the container, then centers the scaled
// content. Empty bounds reset to 1:1 at the origin.
func (v *Viewport) FitToContent(bounds geometry.Rect) {
	if bounds.Empty() || v.Width <= 0 || v.Height <= 0 {
		v.Scale = 1
		v.PanX, v.PanY = 0, 0
		return
	}
	scale := math.Min(v.Width/bounds.Width, v.Height/bounds.Height)
	v.Scale = ClampScale(math.Min(scale, 1))
	v.PanX = (v.Width-bounds.Width*v.Scale)/2 - bounds.MinX*v.Scale
	v.PanY = (v.Height-bounds.Height*v.Scale)/2 - bounds.MinY*v.Scale
}

// VisibleContent returns the content-space rectangle currently on screen.
func (v *Viewport) VisibleContent() geometry.Rect {
	topLeft := v.ScreenToContent(geometry.Point{})
	return geometry.Rect{
		MinX:   topLeft.X,
		MinY:   topLeft.Y,
		Width:  v.Width / v.Scale,
		Height: v.Height / v.Scale,
	}
}
