package layout

import (
	"math"

	"github.com/tillvoss/mindweave/pkg/document"
	"github.com/tillvoss/mindweave/pkg/graph"
)

// Layout computes a position for every node of the tree.
//
// The result is deterministic for identical tree and config. An empty tree
// yields an empty slice, never an error. Zero-valued config fields are
// replaced by the package defaults.
func Layout(tree *document.Tree, cfg Config) []graph.Node {
	if tree.IsEmpty() {
		return nil
	}

	e := &engine{cfg: cfg.WithDefaults()}
	e.run(tree)
	return e.nodes
}

// engine carries the accumulating node list through the tree walk.
type engine struct {
	cfg   Config
	nodes []graph.Node
}

func (e *engine) run(tree *document.Tree) {
	cx := e.cfg.Width / 2
	cy := e.cfg.Height / 2
	e.place(tree.Root, cx, cy, 0, depthTitle)

	sections := tree.Sections()
	radius := e.cfg.LevelSpacing * sectionRadiusFactor

	for i, sec := range sections {
		angle := float64(i) * 2 * math.Pi / float64(len(sections))
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		e.place(sec, x, y, angle, depthSection)
		e.layoutBranch(sec, anchor{x: x, y: y, angle: angle})
	}

	// Orphaned items on the Title (list lines preceding every Section)
	// use the same direct-item strategies, anchored at the center.
	e.layoutDirectItems(anchor{x: cx, y: cy}, false, itemsOf(tree.Root))
}

// layoutBranch positions a Section's subsections and direct items, both
// anchored to the Section's own position and angle.
func (e *engine) layoutBranch(sec *document.Node, at anchor) {
	subs := subsectionsOf(sec)

	radius := e.cfg.LevelSpacing * subsectionRadiusFactor
	for j, a := range arcAngles(at.angle, subsectionArc, len(subs)) {
		sub := subs[j]
		x := at.x + radius*math.Cos(a)
		y := at.y + radius*math.Sin(a)
		e.place(sub, x, y, a, depthSubsection)
		e.layoutSubItems(sub, anchor{x: x, y: y, angle: a})
	}

	e.layoutDirectItems(at, len(subs) > 0, itemsOf(sec))
}

// layoutSubItems places a Subsection's items on a reduced arc centered on
// the Subsection's angle.
func (e *engine) layoutSubItems(sub *document.Node, at anchor) {
	items := itemsOf(sub)
	radius := e.cfg.LevelSpacing * subItemRadiusFactor
	for k, a := range arcAngles(at.angle, subItemArc, len(items)) {
		e.place(items[k], at.x+radius*math.Cos(a), at.y+radius*math.Sin(a), a, depthSubItem)
	}
}

// layoutDirectItems dispatches a branch's direct items through the
// strategy table.
func (e *engine) layoutDirectItems(at anchor, hasSubsections bool, items []*document.Node) {
	if len(items) == 0 {
		return
	}
	strategy := strategyFor(hasSubsections, len(items), e.cfg.BulletThreshold)
	strategy(e, at, items, depthItem)
}

// place sizes a node and appends it to the result.
func (e *engine) place(n *document.Node, x, y, angle float64, d depth) {
	w, h, lines := sizeBox(n.Text, d, e.cfg)
	e.nodes = append(e.nodes, graph.Node{
		ID:     n.ID,
		Text:   n.Text,
		Kind:   string(n.Kind),
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Angle:  angle,
		Lines:  lines,
	})
}

func itemsOf(n *document.Node) []*document.Node {
	var out []*document.Node
	for _, c := range n.Children {
		if c.Kind == document.KindItem {
			out = append(out, c)
		}
	}
	return out
}

func subsectionsOf(n *document.Node) []*document.Node {
	var out []*document.Node
	for _, c := range n.Children {
		if c.Kind == document.KindSubsection {
			out = append(out, c)
		}
	}
	return out
}
