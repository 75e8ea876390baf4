package pipeline

import (
	"github.com/tillvoss/mindweave/pkg/document"
	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/layout"
)

// =============================================================================
// Scene Generation
// =============================================================================

// BuildScene lays out a document tree and assembles the serializable scene:
// positioned nodes plus tiered parent→child connections.
//
// An empty tree produces an empty scene. Renderers and viewers handle that
// case by showing the tree's message instead of a diagram.
func BuildScene(tree *document.Tree, opts Options) (*graph.Scene, error) {
	opts.SetLayoutDefaults()

	nodes := layout.Layout(tree, opts.Layout)
	connections := graph.BuildConnections(tree, nodes)

	return &graph.Scene{
		Nodes:       nodes,
		Connections: connections,
	}, nil
}

// =============================================================================
// Viewport Fit Helpers
// =============================================================================

// SceneViewBox returns the bounding box of a scene for initial viewport
// fitting, expanded by half a nominal node on each side.
func SceneViewBox(scene *graph.Scene, cfg layout.Config) (minX, minY, maxX, maxY float64, ok bool) {
	cfg = cfg.WithDefaults()
	minX, minY, maxX, maxY, ok = scene.Bounds()
	if !ok {
		return 0, 0, 0, 0, false
	}
	minX -= cfg.NodeWidth / 2
	maxX += cfg.NodeWidth / 2
	minY -= cfg.NodeHeight / 2
	maxY += cfg.NodeHeight / 2
	return minX, minY, maxX, maxY, true
}
