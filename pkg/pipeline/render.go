package pipeline

import (
	"fmt"

	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/render/dot"
)

// =============================================================================
// Render Stage
// =============================================================================

// Render generates output artifacts in the requested formats.
// The DOT source is generated once and shared by the svg, png, pdf, and dot
// formats; json serializes the scene itself.
func Render(scene *graph.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	dotSrc := ""
	needsDOT := false
	for _, f := range opts.Formats {
		if f != FormatJSON {
			needsDOT = true
			break
		}
	}
	if needsDOT {
		dotSrc = dot.ToDOT(scene, dot.Options{Detailed: opts.Detailed})
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = dot.RenderSVG(dotSrc)
		case FormatPNG:
			data, err = dot.RenderPNG(dotSrc, opts.PNGScale)
		case FormatPDF:
			data, err = dot.RenderPDF(dotSrc)
		case FormatDOT:
			data = []byte(dotSrc)
		case FormatJSON:
			data, err = graph.MarshalScene(*scene)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
