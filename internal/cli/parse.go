package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tillvoss/mindweave/pkg/document"
	"github.com/tillvoss/mindweave/pkg/errors"
	"github.com/tillvoss/mindweave/pkg/pipeline"
)

// parseCommand creates the parse command for extracting document trees.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "parse [outline.md]",
		Short: "Parse a markdown outline into a document tree",
		Long: `Parse a markdown outline into a document tree.

The parse command reads a markdown file (or stdin when the argument is "-")
and emits the heading/list hierarchy as a tree.json file. The tree can be
laid out with 'scene' or rendered directly with 'render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}

// runParse reads the outline, parses it, and writes the tree as JSON.
func (c *CLI) runParse(ctx context.Context, input, output string, noCache, refresh bool) error {
	source, name, err := readSource(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Source: source, SourceName: name, Refresh: refresh}

	prog := newProgress(c.Logger)
	tree, cacheHit, err := runner.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	prog.done(fmt.Sprintf("Parsed %d nodes", tree.NodeCount()))

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := document.WriteTree(tree, out); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Parse complete")
		printFile(output)
		printStats(tree.NodeCount(), 0, cacheHit)
		printNewline()
		printNextStep("Layout", "mindweave scene "+input)
	}
	return nil
}

// readSource reads markdown from path, or from stdin when path is "-".
// It returns the source text and a display name for logging and errors.
func readSource(path string) (source, name string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	if err := errors.ValidateDocumentPath(path); err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), filepath.Base(path), nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., notes.svg, notes.png).
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "mindmap"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if err := pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
