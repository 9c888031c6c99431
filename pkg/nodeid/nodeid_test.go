package nodeid

import (
	"testing"

	"github.com/schemavis/schemavis/pkg/errors"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "TopLevelElement",
			params: Params{Kind: KindElement, Name: "person"},
			want:   "/element:person",
		},
		{
			name:   "TopLevelWithNamespace",
			params: Params{Kind: KindComplexType, Name: "Address", Namespace: "http://example.com/ns"},
			want:   "/complexType:{http://example.com/ns}Address",
		},
		{
			name:   "NestedElement",
			params: Params{Kind: KindElement, Name: "address", ParentID: "/element:person", Position: 0, HasPosition: true},
			want:   "/element:person/element:address[0]",
		},
		{
			name:   "NestedParentWithoutLeadingSlash",
			params: Params{Kind: KindElement, Name: "zip", ParentID: "element:address", Position: 2, HasPosition: true},
			want:   "/element:address/element:zip[2]",
		},
		{
			name:   "AnonymousGroup",
			params: Params{Kind: KindGroup, ParentID: "/complexType:PersonType", Position: 3, HasPosition: true},
			want:   "/complexType:PersonType/group:[3]",
		},
		{
			name:   "AnonymousComplexType",
			params: Params{Kind: KindAnonymousComplexType, ParentID: "/element:person", Position: 7, HasPosition: true},
			want:   "/element:person/anonymousComplexType:[7]",
		},
		{
			name:   "ImportUsesOnlyPosition",
			params: Params{Kind: KindImport, Name: "ignored", Position: 1, HasPosition: true},
			want:   "/import:[1]",
		},
		{
			name:   "SchemaRoot",
			params: Params{Kind: KindSchema, Namespace: "http://example.com/ns"},
			want:   "/schema:{http://example.com/ns}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.params); got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	// Parse(Generate(p)) must reproduce every supplied field.
	tests := []struct {
		name   string
		params Params
	}{
		{"TopLevel", Params{Kind: KindElement, Name: "person"}},
		{"Namespaced", Params{Kind: KindSimpleType, Name: "ZipType", Namespace: "urn:zips"}},
		{"Nested", Params{Kind: KindElement, Name: "line1", ParentID: "/element:person/element:address[0]", Position: 4, HasPosition: true}},
		{"AnonymousGroup", Params{Kind: KindGroup, ParentID: "/element:person", Position: 0, HasPosition: true}},
		{"AttributeGroup", Params{Kind: KindAttributeGroup, Name: "common"}},
		{"NamespaceWithSlashes", Params{Kind: KindElement, Name: "order", Namespace: "http://example.com/orders/v2"}},
		{"NestedUnderNamespacedParent", Params{Kind: KindElement, Name: "row", ParentID: "/schema:{http://example.com/ns}", Position: 1, HasPosition: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := Generate(tt.params)
			rec, err := Parse(id)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", id, err)
			}
			if rec.Kind != tt.params.Kind {
				t.Errorf("Kind = %q, want %q", rec.Kind, tt.params.Kind)
			}
			if !tt.params.Kind.anonymous() && rec.Name != tt.params.Name {
				t.Errorf("Name = %q, want %q", rec.Name, tt.params.Name)
			}
			if rec.Namespace != tt.params.Namespace {
				t.Errorf("Namespace = %q, want %q", rec.Namespace, tt.params.Namespace)
			}
			if rec.HasPosition != tt.params.HasPosition || rec.Position != tt.params.Position {
				t.Errorf("Position = (%d,%v), want (%d,%v)", rec.Position, rec.HasPosition, tt.params.Position, tt.params.HasPosition)
			}
			wantParent := tt.params.ParentID
			if rec.ParentID != wantParent {
				t.Errorf("ParentID = %q, want %q", rec.ParentID, wantParent)
			}
		})
	}
}

func TestParseNestedParent(t *testing.T) {
	rec, err := Parse("/element:person/element:address[0]")
	if err != nil {
		t.Fatal(err)
	}
	if rec.ParentID != "/element:person" {
		t.Errorf("ParentID = %q, want /element:person", rec.ParentID)
	}
	if len(rec.Segments) != 2 {
		t.Errorf("len(Segments) = %d, want 2", len(rec.Segments))
	}
}

func TestParseRejectsMissingSeparator(t *testing.T) {
	_, err := Parse("element:person")
	if err == nil {
		t.Fatal("Parse() = nil error, want INVALID_NODE_ID")
	}
	if !errors.Is(err, errors.ErrCodeInvalidNodeID) {
		t.Errorf("error code = %q, want INVALID_NODE_ID", errors.GetCode(err))
	}
}

func TestSiblingUniqueness(t *testing.T) {
	// Two siblings with identical names at positions 0 and 1 must have
	// distinct ids, and neither id may be a path prefix of the other.
	a := Generate(Params{Kind: KindElement, Name: "item", ParentID: "/element:list", Position: 0, HasPosition: true})
	b := Generate(Params{Kind: KindElement, Name: "item", ParentID: "/element:list", Position: 1, HasPosition: true})
	if a == b {
		t.Fatalf("sibling ids collide: %q", a)
	}
	pa, _ := ParentOf(a)
	pb, _ := ParentOf(b)
	if pa != pb || pa != "/element:list" {
		t.Errorf("parents = %q, %q, want both /element:list", pa, pb)
	}
	if pa == b || pb == a {
		t.Error("sibling id misattributed as parent")
	}
}

func TestDerivedQueries(t *testing.T) {
	id := "/element:person/group:[2]"

	top, err := IsTopLevel(id)
	if err != nil || top {
		t.Errorf("IsTopLevel(%q) = %v, %v; want false, nil", id, top, err)
	}
	top, err = IsTopLevel("/element:person")
	if err != nil || !top {
		t.Errorf("IsTopLevel(/element:person) = %v, %v; want true, nil", top, err)
	}

	kind, err := KindOf(id)
	if err != nil || kind != KindGroup {
		t.Errorf("KindOf(%q) = %q, %v; want group, nil", id, kind, err)
	}

	name, err := NameOf("/simpleType:{urn:zips}ZipType")
	if err != nil || name != "ZipType" {
		t.Errorf("NameOf() = %q, %v; want ZipType (namespace stripped)", name, err)
	}

	parent, err := ParentOf("/element:person")
	if err != nil || parent != "" {
		t.Errorf("ParentOf(top-level) = %q, %v; want empty", parent, err)
	}
}
