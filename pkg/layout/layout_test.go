package layout

import (
	"testing"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/xsd"
)

const librarySrc = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:library">
  <xs:element name="library">
    <xs:annotation><xs:documentation>A collection of books with some fairly long documentation text attached to it.</xs:documentation></xs:annotation>
    <xs:complexType>
      <xs:sequence>
        <xs:element name="book" maxOccurs="unbounded">
          <xs:complexType>
            <xs:sequence>
              <xs:element name="title" type="xs:string"/>
              <xs:element name="author" type="xs:string" maxOccurs="unbounded"/>
              <xs:element name="isbn" type="xs:string" minOccurs="0"/>
            </xs:sequence>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func buildDiagram(t *testing.T, opts diagram.Options) *diagram.Diagram {
	t.Helper()
	s, err := xsd.Parse([]byte(librarySrc))
	if err != nil {
		t.Fatal(err)
	}
	return diagram.Build(s, opts)
}

func expandAll(d *diagram.Diagram) {
	d.Walk(func(it *diagram.Item) bool {
		it.Expanded = true
		return true
	})
}

func TestRootAtOrigin(t *testing.T) {
	d := buildDiagram(t, diagram.Options{})
	Diagram(d)

	root := d.Roots[0]
	if root.Location.X != 0 || root.Location.Y != 0 {
		t.Errorf("root location = %+v, want origin", root.Location)
	}
	if root.Size.W != ItemWidth || root.Size.H != ItemHeight {
		t.Errorf("root size = %+v, want %vx%v", root.Size, ItemWidth, ItemHeight)
	}
}

func TestGroupSquareSize(t *testing.T) {
	d := buildDiagram(t, diagram.Options{})
	expandAll(d)
	Diagram(d)

	library := d.Roots[0].Children()[0]
	seq := library.Children()[0]
	if seq.Kind != diagram.KindGroup {
		t.Fatalf("expected group, got %v", seq.Kind)
	}
	if seq.Size.W != GroupSize || seq.Size.H != GroupSize {
		t.Errorf("group size = %+v, want %vx%v square", seq.Size, GroupSize, GroupSize)
	}
}

func TestChildOffsets(t *testing.T) {
	d := buildDiagram(t, diagram.Options{})
	expandAll(d)
	Diagram(d)

	library := d.Roots[0].Children()[0]
	seq := library.Children()[0]

	// library has exactly one child: direct-routing gap.
	wantX := library.Location.X + library.Size.W + ExpandClearance + HGapDirect
	if seq.Location.X != wantX {
		t.Errorf("single-child x = %v, want %v", seq.Location.X, wantX)
	}

	// The book sequence has three children: trunk gap.
	book := seq.Children()[0]
	bookSeq := book.Children()[0]
	kids := bookSeq.Children()
	if len(kids) != 3 {
		t.Fatalf("book sequence children = %d, want 3", len(kids))
	}
	wantX = bookSeq.Location.X + bookSeq.Size.W + ExpandClearance + HGapTrunk
	for _, k := range kids {
		if k.Location.X != wantX {
			t.Errorf("multi-child x = %v, want %v", k.Location.X, wantX)
		}
	}

	// Siblings stack with the vertical gap between bounding boxes.
	if got, want := kids[1].Location.Y, kids[0].Bounds.Bottom()+VGap; got != want {
		t.Errorf("second child y = %v, want %v", got, want)
	}
}

func TestExpandBoxPlacement(t *testing.T) {
	d := buildDiagram(t, diagram.Options{})
	Diagram(d)

	root := d.Roots[0]
	if root.ExpandBox.Empty() {
		t.Fatal("root with children should carry an expand box")
	}
	if root.ExpandBox.X <= root.Box.Right()-1 {
		t.Errorf("expand box x = %v, want past right edge %v", root.ExpandBox.X, root.Box.Right())
	}
	if got, want := root.ExpandBox.CenterY(), root.Box.CenterY(); got != want {
		t.Errorf("expand box centerY = %v, want item centerY %v", got, want)
	}

	leaf := findLeaf(d)
	if leaf != nil && !leaf.ExpandBox.Empty() {
		t.Errorf("leaf %q should not carry an expand box", leaf.Name)
	}
}

func findLeaf(d *diagram.Diagram) *diagram.Item {
	var leaf *diagram.Item
	d.Walk(func(it *diagram.Item) bool {
		if !it.HasChildren() {
			leaf = it
			return false
		}
		return true
	})
	return leaf
}

func TestDocBox(t *testing.T) {
	withDoc := buildDiagram(t, diagram.Options{ShowDocumentation: true})
	expandAll(withDoc)
	Diagram(withDoc)

	library := withDoc.Roots[0].Children()[0]
	if library.DocBox.Empty() {
		t.Fatal("documented item should carry a doc box when the option is on")
	}
	if library.DocBox.W != DocWidth {
		t.Errorf("doc box width = %v, want %v", library.DocBox.W, DocWidth)
	}
	if library.DocBox.H > DocMaxHeight {
		t.Errorf("doc box height = %v, exceeds cap %v", library.DocBox.H, DocMaxHeight)
	}

	without := buildDiagram(t, diagram.Options{})
	expandAll(without)
	Diagram(without)
	if !without.Roots[0].Children()[0].DocBox.Empty() {
		t.Error("doc box should be absent when the option is off")
	}
}

func TestLayoutDeterminism(t *testing.T) {
	d := buildDiagram(t, diagram.Options{ShowDocumentation: true})
	expandAll(d)

	Diagram(d)
	first := snapshot(d)
	Diagram(d)
	second := snapshot(d)

	if len(first) != len(second) {
		t.Fatalf("snapshot lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("geometry %d changed between identical passes: %+v vs %+v", i, first[i], second[i])
		}
	}
}

type geom struct {
	loc    diagram.Point
	size   diagram.Size
	bounds diagram.Rect
}

func snapshot(d *diagram.Diagram) []geom {
	var out []geom
	d.Walk(func(it *diagram.Item) bool {
		out = append(out, geom{it.Location, it.Size, it.Bounds})
		return true
	})
	return out
}

func TestCollapsedChildrenNotLaidOut(t *testing.T) {
	d := buildDiagram(t, diagram.Options{})
	Diagram(d)

	// library starts collapsed; its subtree keeps zero geometry.
	library := d.Roots[0].Children()[0]
	if library.Expanded {
		t.Fatal("library should start collapsed")
	}
	seq := library.Children()[0]
	if seq.Location != (diagram.Point{}) || seq.Size != (diagram.Size{}) {
		t.Errorf("collapsed subtree was laid out: %+v %+v", seq.Location, seq.Size)
	}
}

func TestExpandGrowsBounds(t *testing.T) {
	d := buildDiagram(t, diagram.Options{})
	Diagram(d)

	library := d.Roots[0].Children()[0]
	collapsed := library.Bounds

	library.Expanded = true
	Item(library)

	expanded := library.Bounds
	if expanded.W <= collapsed.W && expanded.H <= collapsed.H {
		t.Errorf("expanding did not grow bounds: %+v -> %+v", collapsed, expanded)
	}

	// Ancestor bounds and diagram bounds were refreshed on the same path.
	if root := d.Roots[0]; root.Bounds.W < expanded.W {
		t.Errorf("root bounds %+v not refreshed for child %+v", root.Bounds, expanded)
	}
	if d.Bounds.W < expanded.W {
		t.Errorf("diagram bounds %+v not refreshed", d.Bounds)
	}
}

func TestDiagramBoundsPadding(t *testing.T) {
	d := buildDiagram(t, diagram.Options{})
	Diagram(d)

	if d.Bounds.X != -d.Padding || d.Bounds.Y != -d.Padding {
		t.Errorf("bounds origin = (%v,%v), want padding offset", d.Bounds.X, d.Bounds.Y)
	}
}
