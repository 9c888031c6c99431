// Package nodelink renders diagram trees as traditional node-link
// graphs.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz,
// where schema nodes appear as boxes connected by arrows. It's an
// alternative to the expandable diagram for cases where a whole-schema
// overview is preferred: every node is drawn regardless of its
// expand/collapse state.
//
// # Usage
//
// Convert a diagram to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the type label and
//     occurrence bounds in addition to the display name.
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR), matching
// the expandable diagram's horizontal orientation. Group nodes use the
// octagon shape, type nodes the component shape, and optional nodes a
// dashed outline.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
