package viewport

import (
	"math"
	"testing"

	"github.com/tillvoss/mindweave/pkg/graph"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestNewDefaults(t *testing.T) {
	c := New(DefaultBounds())
	s := c.State()
	if s.Scale != 1 || s.PanX != 0 || s.PanY != 0 {
		t.Errorf("initial state = %+v, want scale 1, pan 0,0", s)
	}
	if c.Panning() {
		t.Error("controller should start Idle")
	}
}

func TestNewInvalidBoundsFallBack(t *testing.T) {
	tests := []Bounds{
		{MinScale: 0, MaxScale: 3},
		{MinScale: -1, MaxScale: 3},
		{MinScale: 2, MaxScale: 2},
		{MinScale: 3, MaxScale: 1},
	}
	for _, b := range tests {
		c := New(b)
		if c.Bounds() != DefaultBounds() {
			t.Errorf("New(%+v).Bounds() = %+v, want defaults", b, c.Bounds())
		}
	}
}

func TestZoomClampConvergence(t *testing.T) {
	b := Bounds{MinScale: 0.5, MaxScale: 2.0}
	c := New(b)

	// Repeated ZoomIn converges to MaxScale and stays there.
	for i := 0; i < 50; i++ {
		c.ZoomIn()
	}
	if got := c.State().Scale; got != b.MaxScale {
		t.Errorf("after repeated ZoomIn, scale = %v, want %v", got, b.MaxScale)
	}
	c.ZoomIn()
	if got := c.State().Scale; got != b.MaxScale {
		t.Errorf("ZoomIn at max moved scale to %v", got)
	}

	// Repeated ZoomOut converges to MinScale and stays there.
	for i := 0; i < 50; i++ {
		c.ZoomOut()
	}
	if got := c.State().Scale; got != b.MinScale {
		t.Errorf("after repeated ZoomOut, scale = %v, want %v", got, b.MinScale)
	}
	c.ZoomOut()
	if got := c.State().Scale; got != b.MinScale {
		t.Errorf("ZoomOut at min moved scale to %v", got)
	}
}

func TestWheel(t *testing.T) {
	c := New(DefaultBounds())

	c.Wheel(-120) // up: zoom in
	if got := c.State().Scale; !almostEqual(got, wheelStep) {
		t.Errorf("scale after wheel up = %v, want %v", got, wheelStep)
	}
	c.Wheel(120) // down: zoom out
	if got := c.State().Scale; !almostEqual(got, 1) {
		t.Errorf("scale after wheel down = %v, want 1", got)
	}
	c.Wheel(0)
	if got := c.State().Scale; !almostEqual(got, 1) {
		t.Errorf("scale after zero wheel = %v, want 1", got)
	}
}

func TestPanStateMachine(t *testing.T) {
	c := New(DefaultBounds())

	// PanBy outside Panning is ignored.
	c.PanBy(100, 50)
	if s := c.State(); s.PanX != 0 || s.PanY != 0 {
		t.Errorf("pan changed while Idle: %+v", s)
	}

	c.StartPan()
	if !c.Panning() {
		t.Fatal("StartPan should enter Panning")
	}
	c.PanBy(100, 50)
	if s := c.State(); !almostEqual(s.PanX, 100) || !almostEqual(s.PanY, 50) {
		t.Errorf("pan = %+v, want 100, 50", s)
	}

	c.EndPan()
	if c.Panning() {
		t.Fatal("EndPan should leave Panning")
	}
	c.PanBy(1, 1)
	if s := c.State(); !almostEqual(s.PanX, 100) || !almostEqual(s.PanY, 50) {
		t.Errorf("pan changed after EndPan: %+v", s)
	}
}

func TestPanByDividesByScale(t *testing.T) {
	// At scale 2, a 100px screen drag moves the pan by 50 world units, so
	// the world point under the pointer tracks the pointer exactly.
	c := New(DefaultBounds())
	c.ZoomIn() // 1.2
	c.ZoomIn() // 1.44
	scale := c.State().Scale

	wx, wy := c.ScreenToWorld(300, 200)

	c.StartPan()
	c.PanBy(100, -40)

	if s := c.State(); !almostEqual(s.PanX, 100/scale) || !almostEqual(s.PanY, -40/scale) {
		t.Errorf("pan = %+v, want (%v, %v)", s, 100/scale, -40/scale)
	}

	// The world point previously under (300,200) is now under (400,160).
	wx2, wy2 := c.ScreenToWorld(300+100, 200-40)
	if !almostEqual(wx, wx2) || !almostEqual(wy, wy2) {
		t.Errorf("world point drifted: (%v,%v) vs (%v,%v)", wx, wy, wx2, wy2)
	}
}

func TestFitToContentCentersBox(t *testing.T) {
	// Spec case: a single node at (500,500) sized 100×100 maps to the
	// container center after fitting.
	c := New(DefaultBounds())
	nodes := []graph.Node{{ID: "a", X: 500, Y: 500, Width: 100, Height: 100}}

	const cw, ch = 800.0, 600.0
	c.FitToContent(nodes, cw, ch)

	sx, sy := c.WorldToScreen(500, 500)
	if !almostEqual(sx, cw/2) || !almostEqual(sy, ch/2) {
		t.Errorf("node center maps to (%v, %v), want (%v, %v)", sx, sy, cw/2, ch/2)
	}
}

func TestFitToContentScaleFormula(t *testing.T) {
	c := New(DefaultBounds())
	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "b", X: 1000, Y: 400, Width: 100, Height: 50},
	}

	const cw, ch = 800.0, 600.0
	c.FitToContent(nodes, cw, ch)

	boxW := 1100 + 2*fitMarginFactor*nominalNodeWidth
	boxH := 450 + 2*fitMarginFactor*nominalNodeHeight
	want := clamp(min3(cw/boxW, ch/boxH, c.Bounds().MaxScale)*fitFill,
		c.Bounds().MinScale, c.Bounds().MaxScale)

	if got := c.State().Scale; !almostEqual(got, want) {
		t.Errorf("fitted scale = %v, want %v", got, want)
	}

	// All four box corners must land inside the container.
	for _, pt := range [][2]float64{{-50, -25}, {1050, -25}, {-50, 425}, {1050, 425}} {
		sx, sy := c.WorldToScreen(pt[0], pt[1])
		if sx < 0 || sx > cw || sy < 0 || sy > ch {
			t.Errorf("corner (%v,%v) maps outside container: (%v, %v)", pt[0], pt[1], sx, sy)
		}
	}
}

func TestFitToContentZeroNodes(t *testing.T) {
	c := New(DefaultBounds())
	c.StartPan()
	c.PanBy(10, 20)
	before := c.State()

	c.FitToContent(nil, 800, 600)
	if c.State() != before {
		t.Errorf("fit over zero nodes changed state: %+v vs %+v", c.State(), before)
	}
}

func TestFitToContentClampsTinyContent(t *testing.T) {
	// A tiny scene in a huge container would exceed MaxScale without the
	// clamp.
	c := New(Bounds{MinScale: 0.5, MaxScale: 2.0})
	nodes := []graph.Node{{ID: "a", X: 0, Y: 0, Width: 10, Height: 10}}

	c.FitToContent(nodes, 100000, 100000)
	if got := c.State().Scale; got > 2.0 {
		t.Errorf("fitted scale %v exceeds MaxScale", got)
	}
}

func TestResetView(t *testing.T) {
	c := New(DefaultBounds())
	c.ZoomIn()
	c.StartPan()
	c.PanBy(30, 40)
	c.EndPan()

	c.ResetView()
	if s := c.State(); s.Scale != 1 || s.PanX != 0 || s.PanY != 0 {
		t.Errorf("state after reset = %+v", s)
	}
}

func TestRoundTripCoordinates(t *testing.T) {
	c := New(DefaultBounds())
	c.ZoomIn()
	c.StartPan()
	c.PanBy(-35, 81)

	for _, pt := range [][2]float64{{0, 0}, {123.5, -42}, {-7, 999}} {
		sx, sy := c.WorldToScreen(pt[0], pt[1])
		wx, wy := c.ScreenToWorld(sx, sy)
		if !almostEqual(wx, pt[0]) || !almostEqual(wy, pt[1]) {
			t.Errorf("round trip (%v,%v) → (%v,%v)", pt[0], pt[1], wx, wy)
		}
	}
}

func TestHitTest(t *testing.T) {
	c := New(DefaultBounds())
	nodes := []graph.Node{
		{ID: "under", X: 100, Y: 100, Width: 80, Height: 40},
		{ID: "over", X: 110, Y: 100, Width: 80, Height: 40},
	}

	// Identity transform: screen == world.
	if id, ok := c.HitTest(nodes, 100, 100); !ok || id != "over" {
		t.Errorf("HitTest = %q, %v; want over (paint order)", id, ok)
	}
	if id, ok := c.HitTest(nodes, 65, 100); !ok || id != "under" {
		t.Errorf("HitTest = %q, %v; want under", id, ok)
	}
	if _, ok := c.HitTest(nodes, 500, 500); ok {
		t.Error("HitTest should miss empty space")
	}

	// After zooming, hits follow the transform.
	c.ZoomIn()
	scale := c.State().Scale
	if id, ok := c.HitTest(nodes, 100*scale, 100*scale); !ok || id != "over" {
		t.Errorf("scaled HitTest = %q, %v; want over", id, ok)
	}
}

func TestAdvisoryHandlers(t *testing.T) {
	c := New(DefaultBounds())

	// Nil handlers must not fault.
	c.Select("title")
	c.Hover("title", true)

	var (
		selected string
		hovered  string
		entered  bool
	)
	c.SetHandlers(Handlers{
		OnSelect: func(id string) { selected = id },
		OnHover:  func(id string, in bool) { hovered, entered = id, in },
	})

	c.Select("section-1")
	if selected != "section-1" {
		t.Errorf("selected = %q", selected)
	}
	c.Hover("item-1", true)
	if hovered != "item-1" || !entered {
		t.Errorf("hover = %q, %v", hovered, entered)
	}
	c.Hover("item-1", false)
	if entered {
		t.Error("hover leave not delivered")
	}
}
