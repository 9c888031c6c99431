package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/schemavis/schemavis/pkg/cache"
	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/layout"
	"github.com/schemavis/schemavis/pkg/observability"
	"github.com/schemavis/schemavis/pkg/render"
	"github.com/schemavis/schemavis/pkg/render/nodelink"
	"github.com/schemavis/schemavis/pkg/xsd"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and serve can use this to avoid duplicating caching logic.
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

// Execute runs the complete parse → build → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	source, err := loadSource(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		SchemaHash: cache.Hash(source),
		Artifacts:  make(map[string][]byte),
	}

	// Stage 1+2: Parse and build, with the built diagram cached as a
	// unit keyed by schema content and display options.
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, result.SchemaHash)
	d, diagramHit, err := r.buildWithCacheInfo(ctx, source, result.SchemaHash, opts)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, result.SchemaHash, 0, time.Since(buildStart), err)
		return nil, err
	}
	result.Diagram = d
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo.DiagramHit = diagramHit
	result.Stats.ItemCount = countItems(d)
	observability.Pipeline().OnBuildComplete(ctx, result.SchemaHash, result.Stats.ItemCount, result.Stats.BuildTime, nil)

	r.Logger.Info("built diagram",
		"items", result.Stats.ItemCount,
		"cached", diagramHit,
		"duration", result.Stats.BuildTime)

	// Stage 3: Apply theme and expand state, then lay out.
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, result.Stats.ItemCount)
	if opts.Style != nil {
		d.Style = *opts.Style
	}
	applyExpandState(d, opts)
	layout.Diagram(d)
	d.Scale = opts.Scale
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, result.Stats.LayoutTime)

	// Stage 4: Render.
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, d, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build parses the schema and builds the diagram without rendering.
// Used by interactive hosts that drive layout and render themselves.
func (r *Runner) Build(ctx context.Context, opts Options) (*diagram.Diagram, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	source, err := loadSource(opts)
	if err != nil {
		return nil, err
	}
	d, _, err := r.buildWithCacheInfo(ctx, source, cache.Hash(source), opts)
	return d, err
}

// buildWithCacheInfo parses and builds with caching, returning cache
// hit info.
func (r *Runner) buildWithCacheInfo(ctx context.Context, source []byte, schemaHash string, opts Options) (*diagram.Diagram, bool, error) {
	cacheKey := r.Keyer.DiagramKey(schemaHash, opts.DiagramKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if d, err := diagram.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "diagram")
				return d, true, nil
			}
			// Corrupt entry; fall through to rebuild.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	s, err := xsd.Parse(source)
	if err != nil {
		return nil, false, fmt.Errorf("parse schema: %w", err)
	}
	d := diagram.Build(s, opts.DiagramOptions())

	if data, err := diagram.Marshal(d); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDiagram)
		observability.Cache().OnCacheSet(ctx, "diagram", len(data))
	}

	return d, false, nil
}

// renderWithCacheInfo renders every requested format with caching,
// returning cache hit info.
func (r *Runner) renderWithCacheInfo(ctx context.Context, d *diagram.Diagram, opts Options) (map[string][]byte, bool, error) {
	data, err := diagram.Marshal(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	diagramHash := cache.Hash(data)
	expandedHash := expandStateHash(opts)

	// Try to get all formats from cache.
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format, expandedHash))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := r.renderFormats(d, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format, expandedHash))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// renderFormats produces every requested format from the laid-out
// diagram.
func (r *Runner) renderFormats(d *diagram.Diagram, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = render.SVG(d, render.WithMeasurer(opts.Measurer))
		case FormatDOT:
			artifacts[format] = []byte(nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed}))
		case FormatNodelink:
			dot := nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed})
			svg, err := nodelink.RenderSVG(dot)
			if err != nil {
				return nil, fmt.Errorf("render nodelink: %w", err)
			}
			artifacts[format] = svg
		case FormatJSON:
			data, err := diagram.Marshal(d)
			if err != nil {
				return nil, fmt.Errorf("marshal diagram: %w", err)
			}
			artifacts[format] = data
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return artifacts, nil
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

// loadSource returns the schema bytes, reading SourcePath when no
// inline source was provided.
func loadSource(opts Options) ([]byte, error) {
	if len(opts.Source) > 0 {
		return opts.Source, nil
	}
	data, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return data, nil
}

// applyExpandState applies the requested expand state to the diagram.
// Overrides carry an explicit per-id state in both directions, so a
// false entry collapses an item the builder expanded by default.
func applyExpandState(d *diagram.Diagram, opts Options) {
	if opts.ExpandAll {
		d.Walk(func(it *diagram.Item) bool {
			it.Expanded = true
			return true
		})
		return
	}
	for id, expanded := range opts.Expanded {
		if it := d.Find(id); it != nil {
			it.Expanded = expanded
		}
	}
}

// expandStateHash fingerprints the expand state for artifact cache
// keys. The map iteration order must not change identity, and the same
// id expanded vs collapsed must.
func expandStateHash(opts Options) string {
	if opts.ExpandAll {
		return "all"
	}
	if len(opts.Expanded) == 0 {
		return ""
	}
	ids := make([]string, 0, len(opts.Expanded))
	for id := range opts.Expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "%s=%t\n", id, opts.Expanded[id])
	}
	return cache.Hash([]byte(sb.String()))
}

func countItems(d *diagram.Diagram) int {
	n := 0
	d.Walk(func(*diagram.Item) bool {
		n++
		return true
	})
	return n
}
