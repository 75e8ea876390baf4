package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tillvoss/mindweave/pkg/cache"
	"github.com/tillvoss/mindweave/pkg/document"
	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.DocHash = cache.Hash([]byte(opts.Source))

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.SourceName)
	tree, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	nodeCount := 0
	if tree != nil {
		nodeCount = tree.NodeCount()
	}
	observability.Pipeline().OnParseComplete(ctx, opts.SourceName, nodeCount, time.Since(parseStart), err)
	if err != nil {
		return nil, err
	}
	result.Tree = tree
	result.Stats.ParseTime = time.Since(parseStart)
	result.CacheInfo.ParseHit = parseHit

	r.Logger.Info("parsed document",
		"source", opts.SourceName,
		"nodes", tree.NodeCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, tree.NodeCount())
	scene, layoutHit, err := r.BuildSceneWithCacheInfo(ctx, tree, result.DocHash, opts)
	observability.Pipeline().OnLayoutComplete(ctx, tree.NodeCount(), time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Scene = scene
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(scene.Nodes)
	result.Stats.ConnectionCount = len(scene.Connections)
	result.CacheInfo.LayoutHit = layoutHit

	// Compute scene hash for cache keys and API responses
	if sceneData, err := graph.MarshalScene(*scene); err == nil {
		result.SceneHash = cache.Hash(sceneData)
	}

	r.Logger.Info("built scene",
		"nodes", len(scene.Nodes),
		"connections", len(scene.Connections),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, result.SceneHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses the source with caching and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*document.Tree, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.DocumentKey(cache.Hash([]byte(opts.Source)))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var tree document.Tree
			if err := json.Unmarshal(data, &tree); err == nil {
				observability.Cache().OnCacheHit(ctx, "document")
				return &tree, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	// Parse
	tree, err := Parse(opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := json.Marshal(tree); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument)
			observability.Cache().OnCacheSet(ctx, "document", len(data))
		}
	}

	return tree, false, nil // Cache miss
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*document.Tree, error) {
	tree, _, err := r.ParseWithCacheInfo(ctx, opts)
	return tree, err
}

// BuildSceneWithCacheInfo lays out a scene with caching and returns cache hit info.
// docHash identifies the source document the tree was parsed from.
func (r *Runner) BuildSceneWithCacheInfo(ctx context.Context, tree *document.Tree, docHash string, opts Options) (*graph.Scene, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SceneKey(docHash, opts.SceneKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graph.UnmarshalScene(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return &cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	// Build scene
	scene, err := BuildScene(tree, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := graph.MarshalScene(*scene); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	return scene, false, nil // Cache miss
}

// BuildScene is a convenience wrapper that calls BuildSceneWithCacheInfo and discards the cache hit info.
func (r *Runner) BuildScene(ctx context.Context, tree *document.Tree, docHash string, opts Options) (*graph.Scene, error) {
	scene, _, err := r.BuildSceneWithCacheInfo(ctx, tree, docHash, opts)
	return scene, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// sceneHash identifies the serialized scene the artifacts are derived from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene *graph.Scene, sceneHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(scene, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, scene *graph.Scene, sceneHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, scene, sceneHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
