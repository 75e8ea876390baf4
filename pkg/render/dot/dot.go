package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tillvoss/mindweave/pkg/document"
	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/render"
)

// Options configures scene diagram rendering.
type Options struct {
	// Detailed includes node kind and coordinates in labels.
	// When false, only the wrapped text is shown.
	Detailed bool
}

// pointsPerInch converts world units (points) to Graphviz inch dimensions.
const pointsPerInch = 72.0

// ToDOT converts a scene to Graphviz DOT format with pinned positions.
// The output targets the neato engine: every node carries pos="x,y!" so the
// radial arrangement computed by the layout engine is preserved verbatim.
// The resulting DOT string can be rendered with [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(scene *graph.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph mindmap {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, n := range scene.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtNodeAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range scene.Connections {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", c.From, c.To, strings.Join(fmtEdgeAttrs(c), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	label := n.Text
	if len(n.Lines) > 0 {
		label = strings.Join(n.Lines, "\n")
	}
	if detailed {
		label += fmt.Sprintf("\n%s (%.0f, %.0f)", n.Kind, n.X, n.Y)
	}
	return label
}

func fmtNodeAttrs(n graph.Node, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		// Graphviz Y grows upward; world Y grows downward.
		fmt.Sprintf(`pos="%.2f,%.2f!"`, n.X, -n.Y),
		fmt.Sprintf("width=%.3f", n.Width/pointsPerInch),
		fmt.Sprintf("height=%.3f", n.Height/pointsPerInch),
	}

	switch document.Kind(n.Kind) {
	case document.KindTitle:
		attrs = append(attrs, "fontsize=18", `fillcolor="#fde68a"`, "penwidth=2")
	case document.KindSection:
		attrs = append(attrs, `fillcolor="#bfdbfe"`)
	case document.KindSubsection:
		attrs = append(attrs, `fillcolor="#ddd6fe"`)
	case document.KindItem:
		attrs = append(attrs, `fillcolor="#f3f4f6"`, "fontsize=12")
	}

	return attrs
}

func fmtEdgeAttrs(c graph.Connection) []string {
	switch c.Tier {
	case graph.TierPrimary:
		return []string{"penwidth=2.0"}
	case graph.TierSecondary:
		return []string{"penwidth=1.4"}
	default:
		return []string{"penwidth=1.0", "style=dashed"}
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
