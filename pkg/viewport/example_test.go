package viewport_test

import (
	"fmt"

	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/viewport"
)

func ExampleController_FitToContent() {
	c := viewport.New(viewport.DefaultBounds())

	nodes := []graph.Node{
		{ID: "title", X: 500, Y: 500, Width: 100, Height: 100},
	}
	c.FitToContent(nodes, 800, 600)

	sx, sy := c.WorldToScreen(500, 500)
	fmt.Printf("node center on screen: (%.0f, %.0f)\n", sx, sy)
	// Output:
	// node center on screen: (400, 300)
}

func ExampleController_PanBy() {
	c := viewport.New(viewport.DefaultBounds())

	// Pan deltas only apply while panning.
	c.PanBy(100, 0)
	fmt.Printf("idle pan: %.0f\n", c.State().PanX)

	c.StartPan()
	c.PanBy(100, 0)
	c.EndPan()
	fmt.Printf("after drag: %.0f\n", c.State().PanX)
	// Output:
	// idle pan: 0
	// after drag: 100
}
