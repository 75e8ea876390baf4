// Package dot renders laid-out scenes as Graphviz diagrams.
//
// # Overview
//
// The layout engine already assigns every node a world position, so the
// generated DOT pins nodes with pos="x,y!" and is meant for the neato
// engine, which honors pinned positions instead of computing its own.
//
// # Usage
//
// Convert a scene to DOT format, then render to SVG:
//
//	src := dot.ToDOT(scene, dot.Options{})
//	svg, err := dot.RenderSVG(src)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := dot.RenderPDF(src)
//	png, err := dot.RenderPNG(src, 2.0)  // 2x scale
//
// # Styling
//
// Node shapes follow the document hierarchy (title, section, subsection,
// item) and edge weight follows the connection tier, so the radial structure
// stays readable at a glance.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package dot
