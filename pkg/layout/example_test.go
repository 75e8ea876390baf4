package layout_test

import (
	"fmt"

	"github.com/tillvoss/mindweave/pkg/document"
	"github.com/tillvoss/mindweave/pkg/layout"
)

func ExampleLayout() {
	tree := document.Parse("# Goals\n## Health\n- run\n## Work\n- ship\n")
	nodes := layout.Layout(tree, layout.DefaultConfig())

	for _, n := range nodes {
		fmt.Printf("%s (%s)\n", n.ID, n.Kind)
	}
	// Output:
	// title (title)
	// section-1 (section)
	// item-1 (item)
	// section-2 (section)
	// item-2 (item)
}
