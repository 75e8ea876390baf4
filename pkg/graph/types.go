package graph

import (
	"github.com/tillvoss/mindweave/pkg/document"
)

// =============================================================================
// Node - Positioned Mind Map Element
// =============================================================================

// Node is a positioned document node. Coordinates are world units; X and Y
// locate the node's center. Width and Height never fall below the legibility
// floors applied by the layout engine.
type Node struct {
	ID   string `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
	Kind string `json:"kind" bson:"kind"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Angle is the node's placement angle in radians around its anchor.
	// Zero for the Title and for vertically stacked items.
	Angle float64 `json:"angle,omitempty" bson:"angle,omitempty"`

	// Lines is the label wrapped for display. Never empty for a non-empty
	// Text; renderers draw the lines instead of Text.
	Lines []string `json:"lines,omitempty" bson:"lines,omitempty"`
}

// =============================================================================
// Connection - Tiered Parent→Child Edge
// =============================================================================

// Tier classifies a connection for downstream styling. It is derived solely
// from the parent node's kind and carries no layout meaning.
type Tier string

// Connection tiers.
const (
	TierPrimary   Tier = "primary"   // Title → Section
	TierSecondary Tier = "secondary" // Section → Subsection or Item
	TierTertiary  Tier = "tertiary"  // Subsection → Item
)

// Connection is a directed parent→child edge between two nodes in a Scene.
type Connection struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Tier Tier   `json:"tier" bson:"tier"`
}

// =============================================================================
// Scene - Renderer Contract
// =============================================================================

// Scene is the canonical serialization format for a laid-out mind map.
// Used for API responses, file output, caching, and cross-tool exchange.
type Scene struct {
	Nodes       []Node       `json:"nodes" bson:"nodes"`
	Connections []Connection `json:"connections" bson:"connections"`
}

// NodeByID returns the node with the given ID, or nil.
func (s *Scene) NodeByID(id string) *Node {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i]
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box over all node rectangles as
// (minX, minY, maxX, maxY). The second return value is false when the scene
// has no nodes.
func (s *Scene) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(s.Nodes) == 0 {
		return 0, 0, 0, 0, false
	}
	first := s.Nodes[0]
	minX, maxX = first.X-first.Width/2, first.X+first.Width/2
	minY, maxY = first.Y-first.Height/2, first.Y+first.Height/2
	for _, n := range s.Nodes[1:] {
		if l := n.X - n.Width/2; l < minX {
			minX = l
		}
		if r := n.X + n.Width/2; r > maxX {
			maxX = r
		}
		if t := n.Y - n.Height/2; t < minY {
			minY = t
		}
		if b := n.Y + n.Height/2; b > maxY {
			maxY = b
		}
	}
	return minX, minY, maxX, maxY, true
}

// =============================================================================
// Connection Builder
// =============================================================================

// tierForParent maps a parent kind to the connection tier.
func tierForParent(kind document.Kind) Tier {
	switch kind {
	case document.KindTitle:
		return TierPrimary
	case document.KindSection:
		return TierSecondary
	default:
		return TierTertiary
	}
}

// BuildConnections derives the parent→child connections of a document tree.
// Each tree edge is visited exactly once. Connections referencing an ID that
// is not present in nodes are skipped; the tree invariant makes this
// unreachable for trees produced by [document.Parse], but corrupted input
// must degrade instead of faulting.
func BuildConnections(tree *document.Tree, nodes []Node) []Connection {
	if tree.IsEmpty() {
		return nil
	}

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	var out []Connection
	tree.WalkEdges(func(parent, child *document.Node) {
		if !known[parent.ID] || !known[child.ID] {
			return
		}
		out = append(out, Connection{
			From: parent.ID,
			To:   child.ID,
			Tier: tierForParent(parent.Kind),
		})
	})
	return out
}
