package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schemavis/schemavis/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// These options control display switches, expand state, and output formats.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "nodelink", "dot", "json"
	theme      string   // TOML theme file overriding the default style
	showDoc    bool     // render documentation boxes
	showOccurs bool     // always render occurrence text, even for 1..1
	showTypes  bool     // render type labels under element names
	expandAll  bool     // expand every item before layout
	expand     []string // node ids to expand before layout
	collapse   []string // node ids to collapse before layout
	detailed   bool     // show detailed labels in nodelink/dot output
	scale      float64  // render scale factor
	noCache    bool     // disable the artifact cache
	refresh    bool     // bypass cached entries and overwrite them
}

// renderCommand creates the render command for generating diagrams.
//
// Default settings:
//   - format: svg (the expandable structural diagram)
//   - scale: 1.0
//   - everything collapsed except the schema root
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a schema document to diagram file(s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), nodelink, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "TOML theme file")
	cmd.Flags().BoolVar(&opts.showDoc, "doc", false, "show documentation text")
	cmd.Flags().BoolVar(&opts.showOccurs, "occurrence", false, "always show occurrence bounds")
	cmd.Flags().BoolVar(&opts.showTypes, "type-labels", false, "show type labels")
	cmd.Flags().BoolVar(&opts.expandAll, "expand-all", false, "expand every item")
	cmd.Flags().StringArrayVar(&opts.expand, "expand", nil, "node id to expand (repeatable)")
	cmd.Flags().StringArrayVar(&opts.collapse, "collapse", nil, "node id to collapse (repeatable)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show detailed labels (nodelink, dot)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "render scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached entries")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, ...), it strips that extension.
// This is used when generating multiple files (e.g., order.svg, order.dot).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// expandOverrides merges the expand and collapse id lists into the
// per-id override map. When both name the same id, collapse wins.
func expandOverrides(expand, collapse []string) map[string]bool {
	if len(expand) == 0 && len(collapse) == 0 {
		return nil
	}
	m := make(map[string]bool, len(expand)+len(collapse))
	for _, id := range expand {
		m[id] = true
	}
	for _, id := range collapse {
		m[id] = false
	}
	return m
}

// extensionFor maps a format to its output file extension. The
// nodelink overview is still SVG markup.
func extensionFor(format string) string {
	if format == pipeline.FormatNodelink {
		return "svg"
	}
	return format
}

// runRender executes the pipeline for the schema file and writes every
// requested artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	style, err := loadTheme(opts.theme)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		SourcePath:           input,
		ShowDocumentation:    opts.showDoc,
		AlwaysShowOccurrence: opts.showOccurs,
		ShowTypeLabels:       opts.showTypes,
		Expanded:             expandOverrides(opts.expand, opts.collapse),
		ExpandAll:            opts.expandAll,
		Formats:              opts.formats,
		Scale:                opts.scale,
		Detailed:             opts.detailed,
		Refresh:              opts.refresh,
		Style:                &style,
		Logger:               c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = fmt.Sprintf("%s.%s", base, extensionFor(format))
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Stats.ItemCount, result.CacheInfo.RenderHit)
	printNextStep("Serve interactively", "schemavis serve")
	return nil
}
