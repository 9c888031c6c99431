// Package pipeline provides the core visualization pipeline.
//
// This package implements the complete parse → build → layout → render
// pipeline that can be used by CLI, serve, and TUI components. By
// centralizing this logic, all entry points share the same caching and
// defaulting behavior.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Decode the schema document into its object tree
//  2. Build: Derive the diagram tree, minting node identifiers
//  3. Layout: Assign geometry to every visible item
//  4. Render: Generate output in various formats (SVG, DOT, JSON)
//
// Parse and build are cheap; rendered artifacts are cached keyed by
// schema content, display options, and expand state.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  schemaBytes,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/schemavis/schemavis/pkg/cache"
	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/fonts"
)

// Format constants for output formats.
const (
	// FormatSVG is the expandable diagram rendered to SVG.
	FormatSVG = "svg"

	// FormatNodelink is the whole-schema overview rendered to SVG via
	// Graphviz.
	FormatNodelink = "nodelink"

	// FormatDOT is the Graphviz DOT source of the overview.
	FormatDOT = "dot"

	// FormatJSON is the diagram tree serialized to JSON.
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatNodelink: true,
	FormatDOT:      true,
	FormatJSON:     true,
}

// DefaultScale is the default render scale factor.
const DefaultScale = 1.0

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source is the raw schema document. When empty, SourcePath is read
	// instead.
	Source     []byte `json:"source,omitempty"`
	SourcePath string `json:"source_path,omitempty"`

	// Display options applied to the diagram before layout.
	ShowDocumentation    bool `json:"show_documentation,omitempty"`
	AlwaysShowOccurrence bool `json:"always_show_occurrence,omitempty"`
	ShowTypeLabels       bool `json:"show_type_labels,omitempty"`

	// Expanded maps node ids to an explicit expand state applied over
	// the built defaults (the schema root and groups start expanded,
	// everything else collapsed), so a false entry collapses a
	// default-expanded item. ExpandAll expands every item instead.
	Expanded  map[string]bool `json:"expanded,omitempty"`
	ExpandAll bool            `json:"expand_all,omitempty"`

	// Render options.
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // nodelink label detail
	Refresh  bool     `json:"refresh,omitempty"`  // bypass the cache

	// Style overrides the diagram's default theme when set.
	Style *diagram.Style `json:"style,omitempty"`

	// Runtime options (not serialized).
	Logger   *log.Logger    `json:"-"`
	Measurer fonts.Measurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the built, laid-out diagram tree.
	Diagram *diagram.Diagram

	// SchemaHash is the content hash of the schema source.
	SchemaHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DiagramHit bool // Whether the built diagram came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, nodelink, dot, json)", format)
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

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Source) == 0 && o.SourcePath == "" {
		return fmt.Errorf("source or source_path is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Measurer == nil {
		o.Measurer = fonts.Default()
	}
	o.validated = true
	return nil
}

// DiagramOptions converts the display switches to the diagram's option
// record.
func (o *Options) DiagramOptions() diagram.Options {
	return diagram.Options{
		ShowDocumentation:    o.ShowDocumentation,
		AlwaysShowOccurrence: o.AlwaysShowOccurrence,
		ShowTypeLabels:       o.ShowTypeLabels,
	}
}

// DiagramKeyOpts returns cache key options for diagram building.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		ShowDocumentation:    o.ShowDocumentation,
		AlwaysShowOccurrence: o.AlwaysShowOccurrence,
		ShowTypeLabels:       o.ShowTypeLabels,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, expandedHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Scale:        o.Scale,
		ExpandedHash: expandedHash,
	}
}
