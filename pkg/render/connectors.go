package render

import (
	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/render/svg"
)

// connectors draws the lines from an expanded parent to its children.
// A single child gets a direct elbow; several children share a vertical
// trunk halfway across the gap so the fan stays readable.
func connectors(it *diagram.Item, st diagram.Style) *svg.Element {
	kids := it.Children()
	g := svg.Group().Set("fill", "none").Set("stroke", st.LineColor)

	startX := it.Box.Right()
	if !it.ExpandBox.Empty() {
		startX = it.ExpandBox.Right()
	}
	startY := it.Box.CenterY()

	if len(kids) == 1 {
		c := kids[0]
		g.Append(elbow(startX, startY, c.Box.X, c.Box.CenterY()))
		return g
	}

	trunkX := (startX + kids[0].Box.X) / 2
	g.Append(svg.Line(startX, startY, trunkX, startY))

	topY, bottomY := startY, startY
	for _, c := range kids {
		cy := c.Box.CenterY()
		if cy < topY {
			topY = cy
		}
		if cy > bottomY {
			bottomY = cy
		}
		g.Append(svg.Line(trunkX, cy, c.Box.X, cy))
	}
	g.Append(svg.Line(trunkX, topY, trunkX, bottomY))
	return g
}

// elbow routes a single orthogonal dogleg between two points.
func elbow(x1, y1, x2, y2 float64) *svg.Element {
	if y1 == y2 {
		return svg.Line(x1, y1, x2, y2)
	}
	midX := (x1 + x2) / 2
	return svg.Group().Append(
		svg.Line(x1, y1, midX, y1),
		svg.Line(midX, y1, midX, y2),
		svg.Line(midX, y2, x2, y2),
	)
}
