package viewport

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

func TestClampScale(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.1, MinScale},
		{0.4, 0.4},
		{1.0, 1.0},
		{2.0, 2.0},
		{9.9, MaxScale},
	}
	for _, c := range cases {
		if got := ClampScale(c.in); got != c.want {
			t.Errorf("ClampScale(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTransform_RoundTrip(t *testing.T) {
	v := New(800, 600)
	v.Scale = 1.5
	v.PanTo(-120, 80)

	p := geometry.Point{X: 333, Y: -41}
	got := v.ScreenToContent(v.ContentToScreen(p))
	if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestZoomAt_CursorAnchored(t *testing.T) {
	v := New(800, 600)
	v.Scale = 1.2
	v.PanTo(-50, 30)

	cursor := geometry.Point{X: 400, Y: 250}
	before := v.ScreenToContent(cursor)
	v.ZoomAt(cursor, 1.7)
	after := v.ScreenToContent(cursor)

	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("content point under cursor moved: %+v → %+v", before, after)
	}
	if v.Scale != 1.7 {
		t.Errorf("Scale = %v, want 1.7", v.Scale)
	}
}

// The anchor invariant must hold for any cursor, pan and scale request,
// including requests that get clamped.
func TestZoomAt_AnchorInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := New(1024, 768)
		v.Scale = rapid.Float64Range(MinScale, MaxScale).Draw(t, "scale")
		v.PanX = rapid.Float64Range(-2000, 2000).Draw(t, "panX")
		v.PanY = rapid.Float64Range(-2000, 2000).Draw(t, "panY")

		cursor := geometry.Point{
			X: rapid.Float64Range(0, 1024).Draw(t, "cx"),
			Y: rapid.Float64Range(0, 768).Draw(t, "cy"),
		}
		before := v.ScreenToContent(cursor)
		v.ZoomAt(cursor, rapid.Float64Range(0.1, 4).Draw(t, "target"))
		after := v.ScreenToContent(cursor)

		if math.Abs(before.X-after.X) > 1e-6 || math.Abs(before.Y-after.Y) > 1e-6 {
			t.Fatalf("anchor drifted: %+v → %+v", before, after)
		}
	})
}

func TestWheelZoom_StepsCompound(t *testing.T) {
	v := New(800, 600)
	v.WheelZoom(geometry.Point{X: 400, Y: 300}, 2)
	want := ClampScale(math.Pow(ZoomStep, 2))
	if math.Abs(v.Scale-want) > 1e-9 {
		t.Errorf("Scale = %v, want %v", v.Scale, want)
	}
}

func TestFitToContent_FitsAndCenters(t *testing.T) {
	v := New(800, 600)
	bounds := geometry.Rect{MinX: 0, MinY: 0, Width: 1600, Height: 600}
	v.FitToContent(bounds)

	if want := 0.5; v.Scale != want {
		t.Errorf("Scale = %v, want %v", v.Scale, want)
	}
	// The bounds center should land on the viewport center.
	c := v.ContentToScreen(geometry.Point{X: 800, Y: 300})
	if math.Abs(c.X-400) > 1e-9 || math.Abs(c.Y-300) > 1e-9 {
		t.Errorf("bounds center maps to %+v, want viewport center (400, 300)", c)
	}
}

func TestFitToContent_NeverZoomsPastOneToOne(t *testing.T) {
	v := New(800, 600)
	v.FitToContent(geometry.Rect{Width: 100, Height: 100})
	if v.Scale != 1 {
		t.Errorf("Scale = %v, want 1 (small content is not magnified)", v.Scale)
	}
}

func TestFitToContent_ClampsTinyScale(t *testing.T) {
	v := New(800, 600)
	v.FitToContent(geometry.Rect{Width: 100000, Height: 100})
	if v.Scale != MinScale {
		t.Errorf("Scale = %v, want clamp at %v", v.Scale, MinScale)
	}
}

func TestFitToContent_EmptyResets(t *testing.T) {
	v := New(800, 600)
	v.Scale = 1.7
	v.PanTo(99, 99)
	v.FitToContent(geometry.Rect{})
	if v.Scale != 1 || v.PanX != 0 || v.PanY != 0 {
		t.Errorf("viewport = %+v, want 1:1 at origin", v)
	}
}

func TestCenterOn(t *testing.T) {
	v := New(800, 600)
	v.Scale = 2
	target := geometry.Point{X: 500, Y: 500}
	v.CenterOn(target)
	got := v.ContentToScreen(target)
	if got.X != 400 || got.Y != 300 {
		t.Errorf("target maps to %+v, want viewport center", got)
	}
}

func TestMinimap_VisibilityThreshold(t *testing.T) {
	small := NewMinimap(geometry.Rect{Width: 800, Height: 600})
	if small.Visible() {
		t.Error("minimap visible for small content")
	}
	wide := NewMinimap(geometry.Rect{Width: 3000, Height: 600})
	if !wide.Visible() {
		t.Error("minimap hidden for wide content")
	}
}

func TestMinimap_CoordinateRoundTrip(t *testing.T) {
	m := NewMinimap(geometry.Rect{MinX: -200, MinY: 100, Width: 4000, Height: 2000})
	p := geometry.Point{X: 1234, Y: 567}
	got := m.ToContent(m.ToMinimap(p))
	if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestMinimap_ClickRecenters(t *testing.T) {
	m := NewMinimap(geometry.Rect{Width: 4000, Height: 2000})
	v := New(800, 600)

	target := geometry.Point{X: 2000, Y: 1000}
	m.Click(v, m.ToMinimap(target))

	got := v.ContentToScreen(target)
	if got.X != 400 || got.Y != 300 {
		t.Errorf("clicked point maps to %+v, want viewport center", got)
	}
}
