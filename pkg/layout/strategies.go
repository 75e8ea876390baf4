package layout

import (
	"math"

	"github.com/tillvoss/mindweave/pkg/document"
)

// Arc and radius constants, as fractions of a full circle and of
// Config.LevelSpacing respectively.
const (
	sectionRadiusFactor    = 2.0
	subsectionRadiusFactor = 1.2
	subsectionArc          = 0.8 * math.Pi // 144°
	subItemRadiusFactor    = 0.8
	subItemArc             = 0.6 * math.Pi // 108°
	fanArc                 = 1.4 * math.Pi // 252°
	fanRadiusFactor        = 1.0
)

// anchor is the point and angle a placement strategy works from.
type anchor struct {
	x, y  float64
	angle float64
}

// placementFunc positions a branch's direct items around an anchor.
type placementFunc func(e *engine, at anchor, items []*document.Node, d depth)

// branchKey selects a placement strategy for a branch's direct items.
// stacked is true when the item count reaches the bullet threshold.
type branchKey struct {
	hasSubsections bool
	stacked        bool
}

// branchStrategies is the strategy table for direct-item placement. Few
// items fan out radially for visual balance; at the bullet threshold the
// branch switches to a vertical stack, which stays readable as the list
// grows.
var branchStrategies = map[branchKey]placementFunc{
	{hasSubsections: false, stacked: false}: placeRadialFan,
	{hasSubsections: false, stacked: true}:  placeVerticalStack,
	{hasSubsections: true, stacked: false}:  placeRadialFan,
	{hasSubsections: true, stacked: true}:   placeVerticalStack,
}

// strategyFor returns the placement strategy for a branch shape.
func strategyFor(hasSubsections bool, itemCount, threshold int) placementFunc {
	return branchStrategies[branchKey{
		hasSubsections: hasSubsections,
		stacked:        itemCount >= threshold,
	}]
}

// placeRadialFan spreads items on an arc around the anchor. The per-item
// angular step is the larger of the even subdivision and MinAngleStep, so
// separation never collapses however few or many items there are.
func placeRadialFan(e *engine, at anchor, items []*document.Node, d depth) {
	count := len(items)
	if count == 0 {
		return
	}

	step := fanArc / float64(count)
	if step < e.cfg.MinAngleStep {
		step = e.cfg.MinAngleStep
	}
	start := at.angle - step*float64(count-1)/2
	radius := e.cfg.LevelSpacing * fanRadiusFactor

	for i, it := range items {
		a := start + step*float64(i)
		e.place(it, at.x+radius*math.Cos(a), at.y+radius*math.Sin(a), a, d)
	}
}

// placeVerticalStack stacks items along a vertical line beside the anchor:
// to the left when the anchor lies on the left half of the circle
// (angle > π), to the right otherwise. Items are centered around the
// anchor's y-coordinate.
func placeVerticalStack(e *engine, at anchor, items []*document.Node, d depth) {
	count := len(items)
	if count == 0 {
		return
	}

	dir := 1.0
	if normalizeAngle(at.angle) > math.Pi {
		dir = -1.0
	}

	x := at.x + dir*e.cfg.StackOffset
	top := at.y - e.cfg.VerticalSpacing*float64(count-1)/2

	for i, it := range items {
		e.place(it, x, top+e.cfg.VerticalSpacing*float64(i), 0, d)
	}
}

// arcAngles subdivides an arc centered on center evenly among n positions,
// endpoints inclusive. A single position sits at the center itself.
func arcAngles(center, arc float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{center}
	}
	out := make([]float64, n)
	start := center - arc/2
	step := arc / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// normalizeAngle maps an angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
