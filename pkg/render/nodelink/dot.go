package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/schemavis/schemavis/pkg/diagram"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the type label and occurrence bounds in node
	// labels. When false, only the display name is shown.
	Detailed bool
}

// ToDOT converts a diagram tree to Graphviz DOT format for node-link
// visualization. Every node is emitted regardless of expand state.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	d.Walk(func(n *diagram.Item) bool {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		return true
	})

	buf.WriteString("\n")
	d.Walk(func(n *diagram.Item) bool {
		for _, c := range n.Children() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, c.ID)
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *diagram.Item, detailed bool) string {
	name := n.DisplayName()
	if name == "" {
		name = n.GroupKind.String()
	}
	if !detailed {
		return name
	}

	parts := []string{name}
	if n.TypeLabel != "" && n.TypeLabel != name {
		parts = append(parts, n.TypeLabel)
	}
	if n.MinOccurs != 1 || n.MaxOccurs != 1 {
		max := "∞"
		if n.MaxOccurs != diagram.Unbounded {
			max = strconv.Itoa(n.MaxOccurs)
		}
		parts = append(parts, fmt.Sprintf("%d..%s", n.MinOccurs, max))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *diagram.Item, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case diagram.KindGroup:
		attrs = append(attrs, "shape=octagon", "style=filled", "fillcolor=cornsilk")
	case diagram.KindType:
		attrs = append(attrs, "shape=component", "fillcolor=honeydew")
	case diagram.KindReference:
		attrs = append(attrs, "fontcolor=grey25")
	}
	if n.MinOccurs == 0 {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
