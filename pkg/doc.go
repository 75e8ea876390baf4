// Package pkg provides the core libraries for Mindweave mind map generation.
//
// # Overview
//
// Mindweave transforms markdown outlines into radial mind maps: the document
// title sits at the center, sections fan out around it, and subsections and
// items orbit their parents. The pkg directory is organized into four main
// areas:
//
//  1. [document] - Structural parsing (markdown → tree)
//  2. [layout] - Radial layout engine (tree → positioned nodes)
//  3. [graph] - Serialization types (Scene: nodes + connections)
//  4. [viewport] - Interactive camera (zoom, pan, fit, hit testing)
//
// # Architecture
//
// The typical data flow through Mindweave:
//
//	Markdown outline
//	         ↓
//	    [document] package (parse headings and list items)
//	         ↓
//	    [layout] package (radial placement + box sizing)
//	         ↓
//	    [graph] package (scene assembly + tiered connections)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output, or [viewport] for interaction
//
// # Quick Start
//
// Parse an outline and lay it out:
//
//	import (
//	    "github.com/tillvoss/mindweave/pkg/document"
//	    "github.com/tillvoss/mindweave/pkg/graph"
//	    "github.com/tillvoss/mindweave/pkg/layout"
//	)
//
//	// 1. Parse the markdown
//	tree := document.Parse(source)
//
//	// 2. Compute the radial layout
//	nodes := layout.Layout(tree, layout.DefaultConfig())
//
//	// 3. Assemble the scene
//	scene := &graph.Scene{Nodes: nodes, Connections: graph.BuildConnections(tree, nodes)}
//
// # Main Packages
//
// [document] - Markdown dialect parser. Headings 1–3 form the hierarchy,
// list items attach to the nearest preceding section by source offset, and
// everything else is ignored. Parsing never fails; malformed input degrades
// to an empty tree with an explanatory message.
//
// [layout] - Deterministic radial layout. Sections spread over the full
// circle, subsections over an arc facing away from the center, and item
// groups either fan radially or stack vertically depending on their count.
//
// [graph] - The Scene wire format used by API responses, file output,
// caching, and cross-tool exchange, plus the connection builder that derives
// tiered parent→child edges from the tree.
//
// [viewport] - A camera over the laid-out scene: clamped zoom, pan with a
// gesture state machine, fit-to-content, coordinate transforms, and hit
// testing. Pure state; it draws nothing.
//
// ## Supporting Packages
//
// [pipeline] - Complete pipeline (parse → layout → render) used by CLI and
// server. Ensures consistent behavior across all entry points.
//
// [cache] - Content-addressed caching of trees, scenes, and artifacts with
// file, Redis, and null backends.
//
// [render/dot] - Graphviz-based rendering of scenes to SVG, PNG, and PDF.
//
// [errors] - Structured error codes shared by the CLI and HTTP surfaces.
//
// [observability] - Hook points for instrumenting pipeline, cache, and
// server events. No-op by default.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [document]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/document
// [layout]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/layout
// [graph]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/graph
// [viewport]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/viewport
// [pipeline]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/cache
// [render/dot]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/render/dot
// [errors]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/errors
// [observability]: https://pkg.go.dev/github.com/tillvoss/mindweave/pkg/observability
package pkg
