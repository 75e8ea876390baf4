package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tillvoss/mindweave/pkg/cache"
	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/pipeline"
)

// sceneCommand creates the scene command for computing mind map layouts.
func (c *CLI) sceneCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "scene [outline.md]",
		Short: "Compute the radial mind map layout for an outline",
		Long: `Compute the radial mind map layout for an outline.

The scene command parses a markdown file (or stdin when the argument is "-")
and runs the radial layout engine. The output is a scene.json file holding
positioned nodes and their connections, ready for 'render' or 'view'.

Layout tuning flags override values from the config file, which overrides
the built-in defaults. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			opts.Layout = mergeLayoutConfig(cmd, opts.Layout, cfg.Layout)
			return c.runScene(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: mindweave.toml if present)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache")

	// Layout flags
	registerLayoutFlags(cmd, &opts.Layout)

	return cmd
}

// runScene parses the outline, computes the layout, and writes the scene.
func (c *CLI) runScene(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	tree, err := runner.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	docHash := cache.Hash([]byte(opts.Source))
	scene, cacheHit, err := runner.BuildSceneWithCacheInfo(ctx, tree, docHash, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".scene.json"
	}

	if err := graph.WriteSceneFile(*scene, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(scene.Nodes), len(scene.Connections), cacheHit)
	printNewline()
	printNextStep("Render", "mindweave render "+input)

	return nil
}
