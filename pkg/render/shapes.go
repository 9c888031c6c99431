package render

import (
	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/render/svg"
)

// shadowOffset is the displacement of the repeat shadow behind an item
// whose maximum occurrence is not exactly one.
const shadowOffset = 3.0

// bevel is the corner cut used by group octagons and type boxes.
const bevel = 8.0

// shapeFor builds the item's body shape at its box, without text.
func shapeFor(it *diagram.Item, st diagram.Style) *svg.Element {
	switch it.Kind {
	case diagram.KindGroup:
		return octagon(it.Box, st.GroupFill, st.GroupStroke)
	case diagram.KindType:
		return typeBox(it.Box, st, it.SimpleContent)
	default:
		return box(it.Box, st.ElementFill, st.ElementStroke)
	}
}

// shadowFor builds the offset repeat shadow, or nil when the item
// occurs at most once.
func shadowFor(it *diagram.Item, st diagram.Style) *svg.Element {
	if it.MaxOccurs == 1 {
		return nil
	}
	b := it.Box
	b.X += shadowOffset
	b.Y += shadowOffset
	switch it.Kind {
	case diagram.KindGroup:
		return octagon(b, st.ShadowFill, st.ShadowFill)
	case diagram.KindType:
		return typeBox(b, diagram.Style{
			TypeFill:   st.ShadowFill,
			TypeStroke: st.ShadowFill,
		}, false)
	default:
		return box(b, st.ShadowFill, st.ShadowFill)
	}
}

func box(b diagram.Rect, fill, stroke string) *svg.Element {
	return svg.Rect(b.X, b.Y, b.W, b.H).
		Set("fill", fill).
		Set("stroke", stroke)
}

// octagon draws the compositor shape: a rectangle with all four corners
// cut at 45 degrees.
func octagon(b diagram.Rect, fill, stroke string) *svg.Element {
	c := bevel
	return svg.Polygon(
		b.X+c, b.Y,
		b.Right()-c, b.Y,
		b.Right(), b.Y+c,
		b.Right(), b.Bottom()-c,
		b.Right()-c, b.Bottom(),
		b.X+c, b.Bottom(),
		b.X, b.Bottom()-c,
		b.X, b.Y+c,
	).Set("fill", fill).Set("stroke", stroke)
}

// typeBox draws a type shape: a rectangle with the top-right corner
// cut. Simple-content types get the cut filled solid so they read
// differently from complex content at a glance.
func typeBox(b diagram.Rect, st diagram.Style, simple bool) *svg.Element {
	c := bevel
	body := svg.Polygon(
		b.X, b.Y,
		b.Right()-c, b.Y,
		b.Right(), b.Y+c,
		b.Right(), b.Bottom(),
		b.X, b.Bottom(),
	).Set("fill", st.TypeFill).Set("stroke", st.TypeStroke)
	if !simple {
		return body
	}
	corner := svg.Polygon(
		b.Right()-c, b.Y,
		b.Right(), b.Y+c,
		b.Right()-c, b.Y+c,
	).Set("fill", st.TypeStroke).Set("stroke", st.TypeStroke)
	return svg.Group().Append(body, corner)
}

// groupGlyph draws the compositor symbol inside a group octagon.
func groupGlyph(it *diagram.Item, st diagram.Style) *svg.Element {
	b := it.Box
	cx, cy := b.CenterX(), b.CenterY()
	g := svg.Group().Set("stroke", st.GroupStroke).Set("fill", st.GroupStroke)

	dot := func(x, y float64) *svg.Element {
		return svg.Circle(x, y, 2)
	}

	switch it.GroupKind {
	case diagram.GroupChoice:
		// One inlet fanning out to three outlets.
		g.Append(
			svg.Line(b.X+6, cy, cx-4, cy),
			svg.Line(cx-4, cy, cx+4, cy-8),
			dot(cx+8, cy-8),
			dot(cx+8, cy),
			dot(cx+8, cy+8),
		)
	case diagram.GroupAll:
		// Unordered grid of dots.
		for _, dy := range []float64{-6, 6} {
			for _, dx := range []float64{-7, 0, 7} {
				g.Append(dot(cx+dx, cy+dy))
			}
		}
	default:
		// Sequence: dots threaded on a single line.
		g.Append(
			svg.Line(cx-10, cy, cx+10, cy),
			dot(cx-7, cy),
			dot(cx, cy),
			dot(cx+7, cy),
		)
	}
	return g
}

// expandButton draws the expand/collapse affordance: a small square with
// a minus, plus the vertical bar that turns it into a plus while the
// item is collapsed.
func expandButton(it *diagram.Item, st diagram.Style) *svg.Element {
	eb := it.ExpandBox
	g := svg.Group().
		Set("class", "expand-button").
		Set("data-node-id", it.ID)
	g.Append(
		svg.Rect(eb.X, eb.Y, eb.W, eb.H).
			Set("fill", st.Background).
			Set("stroke", st.LineColor),
		svg.Line(eb.X+3, eb.CenterY(), eb.Right()-3, eb.CenterY()).
			Set("stroke", st.LineColor),
	)
	if !it.Expanded {
		g.Append(svg.Line(eb.CenterX(), eb.Y+3, eb.CenterX(), eb.Bottom()-3).
			Set("stroke", st.LineColor))
	}
	return g
}

// referenceArrow marks reference items with a small arrow in the lower
// right corner pointing at the referenced declaration.
func referenceArrow(b diagram.Rect, st diagram.Style) *svg.Element {
	x := b.Right() - 14
	y := b.Bottom() - 8
	return svg.Group().Set("stroke", st.ElementStroke).Set("fill", "none").Append(
		svg.Line(x, y, x+8, y),
		svg.Line(x+8, y, x+5, y-3),
		svg.Line(x+8, y, x+5, y+3),
	)
}
