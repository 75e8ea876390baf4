package viewport

import (
	"github.com/tillvoss/mindweave/pkg/graph"
)

// Zoom factors and fit tuning.
const (
	// zoomStep is the multiplier for discrete ZoomIn/ZoomOut.
	zoomStep = 1.2
	// wheelStep is the multiplier per wheel event.
	wheelStep = 1.1
	// fitFill backs the fitted scale off slightly so content clears the
	// container edges.
	fitFill = 0.95
	// fitMarginFactor sizes the fit margin as a fraction of a nominal
	// node box per axis.
	fitMarginFactor = 0.8

	// Nominal node dimensions used for fit margins. These match the
	// layout engine's default base box.
	nominalNodeWidth  = 160.0
	nominalNodeHeight = 60.0
)

// Bounds are the fixed scale limits of a controller.
type Bounds struct {
	MinScale float64 `json:"min_scale"`
	MaxScale float64 `json:"max_scale"`
}

// DefaultBounds returns the default scale limits.
func DefaultBounds() Bounds {
	return Bounds{MinScale: 0.1, MaxScale: 3.0}
}

// State is the camera: zoom scale and pan offset in world units. It has no
// relation to node identity; it is pure display state over the coordinate
// space the layout engine produced.
type State struct {
	Scale float64 `json:"scale"`
	PanX  float64 `json:"pan_x"`
	PanY  float64 `json:"pan_y"`
}

// Handlers carry the advisory callbacks raised for external consumption.
// The controller never requires a response and never acts on these
// internally. Nil handlers are skipped.
type Handlers struct {
	// OnSelect fires when a node is selected.
	OnSelect func(nodeID string)
	// OnHover fires on hover enter (true) and leave (false).
	OnHover func(nodeID string, entered bool)
}

// Controller owns the viewport state machine (Idle ↔ Panning) and the
// camera state. The zero value is not usable; construct with New.
type Controller struct {
	state    State
	bounds   Bounds
	panning  bool
	handlers Handlers
}

// New creates a controller at scale 1 with zero pan. Invalid bounds
// (non-positive min, max not above min) fall back to DefaultBounds.
func New(bounds Bounds) *Controller {
	if bounds.MinScale <= 0 || bounds.MaxScale <= bounds.MinScale {
		bounds = DefaultBounds()
	}
	return &Controller{
		state:  State{Scale: 1},
		bounds: bounds,
	}
}

// State returns the current camera state.
func (c *Controller) State() State { return c.state }

// Bounds returns the fixed scale limits.
func (c *Controller) Bounds() Bounds { return c.bounds }

// Panning reports whether the controller is in the Panning state.
func (c *Controller) Panning() bool { return c.panning }

// SetHandlers registers the advisory callbacks.
func (c *Controller) SetHandlers(h Handlers) { c.handlers = h }

// =============================================================================
// Zoom
// =============================================================================

// ZoomIn multiplies the scale by the fixed zoom step, clamped to bounds.
func (c *Controller) ZoomIn() {
	c.setScale(c.state.Scale * zoomStep)
}

// ZoomOut divides the scale by the fixed zoom step, clamped to bounds.
func (c *Controller) ZoomOut() {
	c.setScale(c.state.Scale / zoomStep)
}

// Wheel applies continuous zoom: negative deltaY zooms in, positive zooms
// out, zero is ignored. The same clamp applies.
func (c *Controller) Wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		c.setScale(c.state.Scale * wheelStep)
	case deltaY > 0:
		c.setScale(c.state.Scale / wheelStep)
	}
}

// setScale clamps and stores a scale. Every zoom path goes through here so
// rapid repeated calls each independently clamp.
func (c *Controller) setScale(s float64) {
	c.state.Scale = clamp(s, c.bounds.MinScale, c.bounds.MaxScale)
}

// =============================================================================
// Pan
// =============================================================================

// StartPan enters the Panning state (pointer-down over empty canvas).
func (c *Controller) StartPan() { c.panning = true }

// EndPan leaves the Panning state (pointer-up or pointer-leave).
func (c *Controller) EndPan() { c.panning = false }

// PanBy shifts the pan offset by a screen-space delta. The delta is divided
// by the current scale so the world point under the pointer stays put
// whatever the zoom level. Ignored outside the Panning state.
func (c *Controller) PanBy(dxScreen, dyScreen float64) {
	if !c.panning {
		return
	}
	c.state.PanX += dxScreen / c.state.Scale
	c.state.PanY += dyScreen / c.state.Scale
}

// =============================================================================
// Fit & Reset
// =============================================================================

// FitToContent derives scale and pan so every node is visible with margin:
// the node bounding box, expanded per axis by a fraction of a nominal node
// box, is scaled to fill the container and centered in it. A nil or empty
// node set is a no-op.
func (c *Controller) FitToContent(nodes []graph.Node, containerW, containerH float64) {
	s := graph.Scene{Nodes: nodes}
	minX, minY, maxX, maxY, ok := s.Bounds()
	if !ok || containerW <= 0 || containerH <= 0 {
		return
	}

	marginX := fitMarginFactor * nominalNodeWidth
	marginY := fitMarginFactor * nominalNodeHeight
	boxW := maxX - minX + 2*marginX
	boxH := maxY - minY + 2*marginY

	scale := min3(containerW/boxW, containerH/boxH, c.bounds.MaxScale) * fitFill
	c.setScale(scale)

	// Map the box center onto the container center:
	// scale·(boxCenter + pan) = containerCenter.
	c.state.PanX = containerW/2/c.state.Scale - (minX+maxX)/2
	c.state.PanY = containerH/2/c.state.Scale - (minY+maxY)/2
}

// ResetView restores scale 1 and zero pan unconditionally.
func (c *Controller) ResetView() {
	c.state = State{Scale: 1}
}

// =============================================================================
// Coordinate Mapping & Hit Testing
// =============================================================================

// ScreenToWorld maps a screen point into world coordinates under the
// current transform.
func (c *Controller) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx/c.state.Scale - c.state.PanX, sy/c.state.Scale - c.state.PanY
}

// WorldToScreen maps a world point onto the screen under the current
// transform.
func (c *Controller) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return (wx + c.state.PanX) * c.state.Scale, (wy + c.state.PanY) * c.state.Scale
}

// HitTest returns the ID of the topmost node whose rectangle contains the
// given screen point. Later nodes win ties, matching paint order.
func (c *Controller) HitTest(nodes []graph.Node, sx, sy float64) (string, bool) {
	wx, wy := c.ScreenToWorld(sx, sy)
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if wx >= n.X-n.Width/2 && wx <= n.X+n.Width/2 &&
			wy >= n.Y-n.Height/2 && wy <= n.Y+n.Height/2 {
			return n.ID, true
		}
	}
	return "", false
}

// =============================================================================
// Advisory Events
// =============================================================================

// Select raises the selection callback for a node.
func (c *Controller) Select(nodeID string) {
	if c.handlers.OnSelect != nil {
		c.handlers.OnSelect(nodeID)
	}
}

// Hover raises the hover callback for a node.
func (c *Controller) Hover(nodeID string, entered bool) {
	if c.handlers.OnHover != nil {
		c.handlers.OnHover(nodeID, entered)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
