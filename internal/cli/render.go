package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tillvoss/mindweave/pkg/pipeline"
)

// renderCommand creates the render command for generating visual outputs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [outline.md]",
		Short: "Render a markdown outline as a mind map",
		Long: `Render a markdown outline as a mind map.

The render command runs the full parse, layout, and render pipeline in one
step and writes the requested output formats. SVG and DOT are generated
natively; PNG and PDF require rsvg-convert on the PATH.

Examples:
  mindweave render notes.md                      # notes.svg
  mindweave render notes.md -f svg,png,dot       # three files
  mindweave render notes.md -o out/map.svg       # explicit output
  cat notes.md | mindweave render - -o map.svg   # from stdin

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			opts.Layout = mergeLayoutConfig(cmd, opts.Layout, cfg.Layout)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: mindweave.toml if present)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include node kind and coordinates in labels")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "resolution multiplier for PNG output")

	// Layout flags
	registerLayoutFlags(cmd, &opts.Layout)

	return cmd
}

// runRender executes the full pipeline and writes all requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	source, name, err := readSource(input)
	if err != nil {
		return err
	}
	opts.Source = source
	opts.SourceName = name

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering mind map...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", name, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     result.Stats,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     pipeline.Stats
	cacheHit  bool
}

// writeArtifacts writes each rendered format to disk and prints a summary.
// With a single format the output path is used as-is (or derived from the
// input); with multiple formats the extension varies per format.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing artifact for format %q", format)
		}

		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.stats.NodeCount, p.stats.ConnectionCount, p.cacheHit)

	return nil
}
