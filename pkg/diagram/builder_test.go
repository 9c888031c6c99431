package diagram

import (
	"strings"
	"testing"

	"github.com/schemavis/schemavis/pkg/xsd"
)

const orderXSD = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://example.com/orders">
  <xs:element name="order">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="item" minOccurs="1" maxOccurs="unbounded">
          <xs:complexType>
            <xs:sequence>
              <xs:element name="sku" type="xs:string"/>
              <xs:element name="qty" type="xs:positiveInteger"/>
            </xs:sequence>
          </xs:complexType>
        </xs:element>
        <xs:element name="note" type="xs:string" minOccurs="0"/>
      </xs:sequence>
      <xs:attribute name="id" type="xs:ID" use="required"/>
    </xs:complexType>
  </xs:element>
  <xs:element name="invoice" type="xs:string"/>
  <xs:simpleType name="statusType">
    <xs:annotation><xs:documentation>Order lifecycle state.</xs:documentation></xs:annotation>
    <xs:restriction base="xs:string">
      <xs:enumeration value="open"/>
      <xs:enumeration value="shipped"/>
      <xs:length value="4"/>
      <xs:length value="8"/>
    </xs:restriction>
  </xs:simpleType>
</xs:schema>`

func mustBuild(t *testing.T, src string) *Diagram {
	t.Helper()
	s, err := xsd.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return Build(s, Options{})
}

func TestBuildRoot(t *testing.T) {
	d := mustBuild(t, orderXSD)

	if len(d.Roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(d.Roots))
	}
	root := d.Roots[0]
	if root.Name != "http://example.com/orders" {
		t.Errorf("root name = %q, want target namespace", root.Name)
	}
	if !root.Expanded {
		t.Error("schema root should start expanded")
	}
}

func TestBuildDeclarationOrder(t *testing.T) {
	// Two top-level elements and one simple type, in declaration order:
	// elements first, then the simple type.
	d := mustBuild(t, orderXSD)
	root := d.Roots[0]

	kids := root.Children()
	if len(kids) != 3 {
		t.Fatalf("root children = %d, want 3", len(kids))
	}
	if kids[0].Name != "order" || kids[1].Name != "invoice" || kids[2].Name != "statusType" {
		t.Errorf("child order = %q, %q, %q", kids[0].Name, kids[1].Name, kids[2].Name)
	}
	if kids[2].Kind != KindType || !kids[2].SimpleContent {
		t.Errorf("statusType kind = %v simple=%v, want type/simple", kids[2].Kind, kids[2].SimpleContent)
	}
}

func TestInlineTypeMergesOntoElement(t *testing.T) {
	d := mustBuild(t, orderXSD)
	order := d.Roots[0].Children()[0]

	// The anonymous complex type must not appear as a node of its own:
	// its attributes land on the element, its sequence becomes the
	// element's single group child.
	if len(order.Attributes) != 1 || order.Attributes[0].Name != "id" {
		t.Errorf("order attributes = %+v, want merged id attribute", order.Attributes)
	}
	kids := order.Children()
	if len(kids) != 1 || kids[0].Kind != KindGroup || kids[0].GroupKind != GroupSequence {
		t.Fatalf("order children = %+v, want one sequence group", kids)
	}
	if !strings.HasPrefix(kids[0].ID, order.ID+"/") {
		t.Errorf("group id %q should extend element id %q", kids[0].ID, order.ID)
	}

	seq := kids[0]
	if len(seq.Children()) != 2 {
		t.Fatalf("sequence children = %d, want 2", len(seq.Children()))
	}
	item := seq.Children()[0]
	if item.MinOccurs != 1 || item.MaxOccurs != Unbounded {
		t.Errorf("item occurs = [%d,%d], want [1,unbounded]", item.MinOccurs, item.MaxOccurs)
	}
	note := seq.Children()[1]
	if note.MinOccurs != 0 || note.MaxOccurs != 1 {
		t.Errorf("note occurs = [%d,%d], want [0,1]", note.MinOccurs, note.MaxOccurs)
	}
}

func TestFacetExtraction(t *testing.T) {
	d := mustBuild(t, orderXSD)
	status := d.Roots[0].Children()[2]

	if status.Facets == nil {
		t.Fatal("statusType should carry facets")
	}
	if got := status.Facets.Enumerations; len(got) != 2 || got[0] != "open" || got[1] != "shipped" {
		t.Errorf("enumerations = %v", got)
	}
	// Only the first occurrence of a single-valued facet is honored.
	if status.Facets.Length != "4" {
		t.Errorf("length = %q, want first occurrence 4", status.Facets.Length)
	}
	if status.Documentation != "Order lifecycle state." {
		t.Errorf("documentation = %q", status.Documentation)
	}
	if !strings.Contains(status.TypeLabel, "restricts xs:string") {
		t.Errorf("type label = %q, want restriction fragment", status.TypeLabel)
	}
}

func TestEmptySchemaPlaceholder(t *testing.T) {
	d := mustBuild(t, `<schema xmlns="http://www.w3.org/2001/XMLSchema"/>`)

	root := d.Roots[0]
	if root.Name != "(no namespace)" {
		t.Errorf("root name = %q, want placeholder namespace name", root.Name)
	}
	kids := root.Children()
	if len(kids) != 1 || kids[0].Name != PlaceholderText {
		t.Fatalf("children = %+v, want single %q placeholder", kids, PlaceholderText)
	}
}

func TestContainerPositionsAreReproducible(t *testing.T) {
	// Two builds of the same schema must mint identical ids: the counter
	// is per-build state, not shared.
	a := mustBuild(t, orderXSD)
	b := mustBuild(t, orderXSD)

	var idsA, idsB []string
	a.Walk(func(it *Item) bool { idsA = append(idsA, it.ID); return true })
	b.Walk(func(it *Item) bool { idsB = append(idsB, it.ID); return true })

	if len(idsA) != len(idsB) {
		t.Fatalf("item counts differ: %d vs %d", len(idsA), len(idsB))
	}
	for i := range idsA {
		if idsA[i] != idsB[i] {
			t.Errorf("id %d differs: %q vs %q", i, idsA[i], idsB[i])
		}
	}
}

func TestSimpleContentDerivation(t *testing.T) {
	d := mustBuild(t, `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:complexType name="money">
    <xs:simpleContent>
      <xs:extension base="xs:decimal">
        <xs:attribute name="currency" type="xs:string"/>
      </xs:extension>
    </xs:simpleContent>
  </xs:complexType>
</xs:schema>`)

	money := d.Roots[0].Children()[0]
	if !money.SimpleContent {
		t.Error("money should be flagged simple-content")
	}
	if !strings.Contains(money.TypeLabel, "extends xs:decimal") {
		t.Errorf("type label = %q, want extension fragment", money.TypeLabel)
	}
	if len(money.Attributes) != 1 || money.Attributes[0].Name != "currency" {
		t.Errorf("attributes = %+v", money.Attributes)
	}
}

func TestElementReference(t *testing.T) {
	d := mustBuild(t, `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="wrapper">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="target"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
  <xs:element name="target" type="xs:string"/>
</xs:schema>`)

	seq := d.Roots[0].Children()[0].Children()[0]
	ref := seq.Children()[0]
	if ref.Kind != KindReference || ref.Name != "target" {
		t.Errorf("ref item = kind %v name %q, want reference/target", ref.Kind, ref.Name)
	}
}

func TestFind(t *testing.T) {
	d := mustBuild(t, orderXSD)
	order := d.Roots[0].Children()[0]
	if got := d.Find(order.ID); got != order {
		t.Errorf("Find(%q) = %v, want the order item", order.ID, got)
	}
	if got := d.Find("/element:nope"); got != nil {
		t.Errorf("Find(unknown) = %v, want nil", got)
	}
}
