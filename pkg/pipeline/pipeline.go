// Package pipeline provides the core scene pipeline for Mindweave.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI, API, and viewer components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Turn markdown source into a document tree
//  2. Layout: Compute radial positions and build the scene
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  markdownText,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse only
//	tree, err := runner.Parse(ctx, opts)
//
//	// Layout with existing tree
//	scene, err := runner.BuildScene(ctx, tree, opts)
//
//	// Render with existing scene
//	artifacts, err := runner.Render(ctx, scene, opts)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tillvoss/mindweave/pkg/cache"
	"github.com/tillvoss/mindweave/pkg/document"
	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Viewer
// =============================================================================

const (
	// DefaultPNGScale is the resolution multiplier for PNG export.
	// 2x output stays crisp on high-DPI displays.
	DefaultPNGScale = 2.0

	// DefaultSourceName labels pipeline runs whose source has no file name
	// (stdin, API request bodies).
	DefaultSourceName = "<source>"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the scene pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Source     string `json:"source"`
	SourceName string `json:"source_name,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// Layout options
	Layout layout.Config `json:"layout,omitzero"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed document tree.
	Tree *document.Tree

	// DocHash is the content hash of the markdown source.
	DocHash string

	// Scene is the laid-out scene (positioned nodes plus connections).
	Scene *graph.Scene

	// SceneHash is the content hash of the serialized scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int
	ConnectionCount int
	ParseTime       time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the parsed tree came from cache
	LayoutHit bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
// An empty source is allowed: it parses to an empty tree with a message, and
// rejecting it here would push empty-document handling onto every caller.
func (o *Options) ValidateForParse() error {
	if o.SourceName == "" {
		o.SourceName = DefaultSourceName
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults fills zero layout fields with the standard configuration.
func (o *Options) SetLayoutDefaults() {
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ConfigHash returns a stable hash of the layout configuration for cache keys.
func (o *Options) ConfigHash() string {
	data, _ := json.Marshal(o.Layout)
	return cache.Hash(data)
}

// SceneKeyOpts returns cache key options for scene computation.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		ConfigHash: o.ConfigHash(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
