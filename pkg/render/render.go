package render

import (
	"fmt"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/fonts"
	"github.com/schemavis/schemavis/pkg/render/svg"
)

const (
	// labelPadding is the horizontal room reserved around label text.
	labelPadding = 8.0

	// docMaxLines caps documentation rendering per item.
	docMaxLines = 3

	// occurrenceOffset drops the occurrence text below the item box.
	occurrenceOffset = 11.0
)

// Renderer turns a laid-out diagram into an SVG element tree. The zero
// value is not usable; construct with [New].
type Renderer struct {
	measurer fonts.Measurer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMeasurer overrides the text measurer, letting interactive hosts
// substitute their real text engine.
func WithMeasurer(m fonts.Measurer) Option {
	return func(r *Renderer) { r.measurer = m }
}

// New creates a renderer with the built-in font metrics.
func New(opts ...Option) *Renderer {
	r := &Renderer{measurer: fonts.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SVG renders the diagram to a complete SVG document. The destination
// is always rebuilt from scratch; there is no incremental diffing.
func (r *Renderer) SVG(d *diagram.Diagram) []byte {
	scale := d.Scale
	if scale <= 0 {
		scale = 1
	}
	b := d.Bounds
	root := svg.Root(b.X, b.Y, b.W, b.H, scale)
	root.Append(svg.Rect(b.X, b.Y, b.W, b.H).Set("fill", d.Style.Background))
	for _, it := range d.Roots {
		root.Append(r.item(it, d))
	}
	return []byte(root.String())
}

// SVG renders the diagram with the default renderer.
func SVG(d *diagram.Diagram, opts ...Option) []byte {
	return New(opts...).SVG(d)
}

// item renders one item subtree. Children and connectors are emitted
// before the item's own shape so the parent paints over them.
func (r *Renderer) item(it *diagram.Item, d *diagram.Diagram) *svg.Element {
	g := svg.Group().
		Set("class", "node "+it.Kind.String()).
		Set("data-node-id", it.ID)

	if it.Expanded && it.HasChildren() {
		for _, c := range it.Children() {
			g.Append(r.item(c, d))
		}
		g.Append(connectors(it, d.Style))
	}

	if shadow := shadowFor(it, d.Style); shadow != nil {
		g.Append(shadow)
	}
	shape := shapeFor(it, d.Style)
	if it.MinOccurs == 0 {
		dashOutline(shape)
	}
	g.Append(shape)

	if it.Kind == diagram.KindGroup {
		g.Append(groupGlyph(it, d.Style))
	} else {
		r.label(g, it, d)
	}
	if it.Kind == diagram.KindReference {
		g.Append(referenceArrow(it.Box, d.Style))
	}

	r.occurrence(g, it, d)
	r.documentation(g, it, d)

	if it.HasChildren() {
		g.Append(expandButton(it, d.Style))
	}
	return g
}

// dashOutline marks optional items by dashing every stroked shape in
// the subtree.
func dashOutline(e *svg.Element) {
	e.Walk(func(n *svg.Element) bool {
		if n.Attr("stroke") != "" {
			n.Set("stroke-dasharray", "4 2")
		}
		return true
	})
}

// label draws the item's display name centered in its box, with the
// type label on a second line when enabled. Truncated text keeps the
// full string as a tooltip.
func (r *Renderer) label(g *svg.Element, it *diagram.Item, d *diagram.Diagram) {
	st := d.Style
	avail := it.Box.W - 2*labelPadding

	name := it.DisplayName()
	showType := d.Options.ShowTypeLabels && it.TypeLabel != "" && it.Name != ""

	nameY := it.Box.CenterY() + st.FontSize/3
	if showType {
		nameY = it.Box.CenterY() - 2
	}

	fitted, cut := truncate(name, avail, r.measurer, st.FontFamily, st.FontSize)
	text := svg.Text(it.Box.CenterX(), nameY, fitted).
		Set("text-anchor", "middle").
		Set("font-family", st.FontFamily).
		Set("font-size", svg.Num(st.FontSize)).
		Set("fill", st.TextColor)
	if cut {
		text.Append(svg.Title(name))
	}
	g.Append(text)

	if !showType {
		return
	}
	fitted, cut = truncate(it.TypeLabel, avail, r.measurer, st.FontFamily, st.DocFontSize)
	tl := svg.Text(it.Box.CenterX(), it.Box.CenterY()+st.DocFontSize, fitted).
		Set("text-anchor", "middle").
		Set("font-family", st.FontFamily).
		Set("font-size", svg.Num(st.DocFontSize)).
		Set("fill", st.DocColor)
	if cut {
		tl.Append(svg.Title(it.TypeLabel))
	}
	g.Append(tl)
}

// occurrence draws the "min..max" bounds under the box when they are
// non-default, or always when the option is set.
func (r *Renderer) occurrence(g *svg.Element, it *diagram.Item, d *diagram.Diagram) {
	if it.MinOccurs == 1 && it.MaxOccurs == 1 && !d.Options.AlwaysShowOccurrence {
		return
	}
	st := d.Style
	g.Append(svg.Text(it.Box.X, it.Box.Bottom()+occurrenceOffset, occursText(it)).
		Set("font-family", st.FontFamily).
		Set("font-size", svg.Num(st.DocFontSize)).
		Set("fill", st.DocColor))
}

// occursText formats occurrence bounds, using the infinity sign for the
// unbounded sentinel.
func occursText(it *diagram.Item) string {
	if it.MaxOccurs == diagram.Unbounded {
		return fmt.Sprintf("%d..∞", it.MinOccurs)
	}
	return fmt.Sprintf("%d..%d", it.MinOccurs, it.MaxOccurs)
}

// documentation draws up to docMaxLines wrapped lines inside the doc
// box attached by layout.
func (r *Renderer) documentation(g *svg.Element, it *diagram.Item, d *diagram.Diagram) {
	if it.DocBox.Empty() || it.Documentation == "" {
		return
	}
	st := d.Style
	lines := wrap(it.Documentation, it.DocBox.W-4, docMaxLines, r.measurer, st.FontFamily, st.DocFontSize)
	for i, line := range lines {
		y := it.DocBox.Y + float64(i+1)*(st.DocFontSize+2)
		if y > it.DocBox.Bottom() {
			break
		}
		g.Append(svg.Text(it.DocBox.X+2, y, line).
			Set("font-family", st.FontFamily).
			Set("font-size", svg.Num(st.DocFontSize)).
			Set("fill", st.DocColor).
			Set("font-style", "italic"))
	}
}
