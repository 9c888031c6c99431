// Package layout assigns geometry to diagram items.
//
// Layout is a pure, demand-driven pass: only items reachable from an
// expanded ancestor are positioned. Children of a collapsed item keep
// whatever geometry they had, which makes the pass idempotent and lets the
// interactive path relayout a single subtree instead of the whole tree.
package layout

import (
	"math"

	"github.com/schemavis/schemavis/pkg/diagram"
)

// Geometry constants, in diagram user units.
const (
	// ItemWidth and ItemHeight size element, type, and reference boxes.
	ItemWidth  = 160.0
	ItemHeight = 40.0

	// GroupSize is the side of the square used for compositor groups.
	GroupSize = 40.0

	// VGap separates vertically stacked siblings and roots.
	VGap = 10.0

	// ExpandButtonSize is the side of the expand/collapse affordance.
	ExpandButtonSize = 12.0

	// ExpandClearance keeps connector routes clear of the expand button.
	ExpandClearance = ExpandButtonSize + 4

	// HGapDirect is the horizontal gap to a single child, which is routed
	// directly. HGapTrunk is the wider gap used when several children
	// share a vertical connector trunk; the extra room is purely for the
	// trunk line.
	HGapDirect = 20.0
	HGapTrunk  = 36.0

	// Documentation box sizing. Height is estimated from a fixed
	// characters-per-line heuristic and capped.
	DocWidth        = 180.0
	DocLineHeight   = 12.0
	DocCharsPerLine = 32
	DocMaxHeight    = 48.0
)

// Diagram lays out every root (and their expanded subtrees), stacking the
// roots vertically from the origin, then computes the diagram bounds.
func Diagram(d *diagram.Diagram) {
	y := 0.0
	for _, root := range d.Roots {
		layoutItem(root, diagram.Point{X: 0, Y: y}, d)
		y = root.Bounds.Bottom() + VGap
	}
	computeDiagramBounds(d)
}

// Item relays out a single item in place after its expand/collapse state
// changed, then walks up through its ancestors recomputing each bounding
// box, and finally refreshes the diagram bounds. This is the interactive
// path: a click never relayouts the whole tree.
func Item(it *diagram.Item) {
	d := it.Diagram()
	layoutItem(it, it.Location, d)
	for p := it.Parent(); p != nil; p = p.Parent() {
		computeBounds(p, d)
	}
	if d != nil {
		computeDiagramBounds(d)
	}
}

// layoutItem positions it at origin and, when expanded, its children to
// the right; bounds are computed bottom-up afterwards.
func layoutItem(it *diagram.Item, origin diagram.Point, d *diagram.Diagram) {
	it.Location = origin
	it.Size = sizeOf(it)
	it.Box = diagram.Rect{X: origin.X, Y: origin.Y, W: it.Size.W, H: it.Size.H}

	attachExpandBox(it)
	attachDocBox(it, d)

	if it.Expanded && it.HasChildren() {
		gap := HGapTrunk
		if len(it.Children()) == 1 {
			gap = HGapDirect
		}
		childX := origin.X + it.Size.W + ExpandClearance + gap

		y := origin.Y
		for _, c := range it.Children() {
			layoutItem(c, diagram.Point{X: childX, Y: y}, d)
			y = c.Bounds.Bottom() + VGap
		}
	}

	computeBounds(it, d)
}

// sizeOf returns the fixed per-kind size.
func sizeOf(it *diagram.Item) diagram.Size {
	if it.Kind == diagram.KindGroup {
		return diagram.Size{W: GroupSize, H: GroupSize}
	}
	return diagram.Size{W: ItemWidth, H: ItemHeight}
}

// attachExpandBox places the expand/collapse affordance at the item's
// vertical midpoint just past its right edge, when the item has children.
func attachExpandBox(it *diagram.Item) {
	if !it.HasChildren() {
		it.ExpandBox = diagram.Rect{}
		return
	}
	it.ExpandBox = diagram.Rect{
		X: it.Box.Right() + 2,
		Y: it.Box.CenterY() - ExpandButtonSize/2,
		W: ExpandButtonSize,
		H: ExpandButtonSize,
	}
}

// attachDocBox places the documentation box under the item when the item
// carries documentation and the diagram shows it.
func attachDocBox(it *diagram.Item, d *diagram.Diagram) {
	if d == nil || !d.Options.ShowDocumentation || it.Documentation == "" {
		it.DocBox = diagram.Rect{}
		return
	}
	lines := math.Ceil(float64(len(it.Documentation)) / DocCharsPerLine)
	h := min(lines*DocLineHeight, DocMaxHeight)
	it.DocBox = diagram.Rect{
		X: it.Box.X,
		Y: it.Box.Bottom() + 2,
		W: DocWidth,
		H: h,
	}
}

// computeBounds derives the item's bounding box: its own box, the expand
// and documentation boxes, and, when expanded, every child's (already
// computed) bounds.
func computeBounds(it *diagram.Item, d *diagram.Diagram) {
	b := it.Box
	if !it.ExpandBox.Empty() {
		b = b.Union(it.ExpandBox)
	}
	if !it.DocBox.Empty() {
		b = b.Union(it.DocBox)
	}
	if it.Expanded {
		for _, c := range it.Children() {
			b = b.Union(c.Bounds)
		}
	}
	it.Bounds = b
}

// computeDiagramBounds unions every root's bounds and pads all sides.
func computeDiagramBounds(d *diagram.Diagram) {
	var b diagram.Rect
	for _, root := range d.Roots {
		b = b.Union(root.Bounds)
	}
	d.Bounds = b.Inflate(d.Padding)
}
