package render

import (
	"strings"
	"testing"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/fonts"
	"github.com/schemavis/schemavis/pkg/layout"
	"github.com/schemavis/schemavis/pkg/xsd"
)

const librarySrc = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:library">
  <xs:element name="library">
    <xs:annotation><xs:documentation>A collection of books, indexed and catalogued for searching by patrons of the reading room.</xs:documentation></xs:annotation>
    <xs:complexType>
      <xs:sequence>
        <xs:element name="book" maxOccurs="unbounded">
          <xs:complexType>
            <xs:sequence>
              <xs:element name="title" type="xs:string"/>
              <xs:element name="isbn" type="xs:string" minOccurs="0"/>
            </xs:sequence>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func renderLibrary(t *testing.T, opts diagram.Options, expand bool) string {
	t.Helper()
	s, err := xsd.Parse([]byte(librarySrc))
	if err != nil {
		t.Fatal(err)
	}
	d := diagram.Build(s, opts)
	if expand {
		d.Walk(func(it *diagram.Item) bool {
			it.Expanded = true
			return true
		})
	}
	layout.Diagram(d)
	return string(SVG(d))
}

func TestSVGCarriesNodeIDs(t *testing.T) {
	out := renderLibrary(t, diagram.Options{}, true)
	for _, want := range []string{
		`data-node-id="/schema:{urn:library}"`,
		`data-node-id="/element:library"`,
		`class="node element"`,
		`class="node group"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestExpandButtonMarker(t *testing.T) {
	out := renderLibrary(t, diagram.Options{}, true)
	if !strings.Contains(out, `class="expand-button"`) {
		t.Error("output missing expand-button marker")
	}
}

func TestCollapsedSubtreeNotDrawn(t *testing.T) {
	out := renderLibrary(t, diagram.Options{}, false)
	if strings.Contains(out, "element:book") {
		t.Error("collapsed subtree leaked into output")
	}
	// The collapsed root itself is still drawn, with a plus button.
	if !strings.Contains(out, `class="expand-button"`) {
		t.Error("collapsed root missing its expand button")
	}
}

func TestOptionalDrawnDashed(t *testing.T) {
	out := renderLibrary(t, diagram.Options{}, true)
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("optional item not dashed")
	}
}

func TestRepeatableDrawnWithShadow(t *testing.T) {
	out := renderLibrary(t, diagram.Options{}, true)
	shadow := diagram.DefaultStyle().ShadowFill
	if !strings.Contains(out, shadow) {
		t.Errorf("repeatable item missing shadow fill %s", shadow)
	}
}

func TestOccurrenceText(t *testing.T) {
	out := renderLibrary(t, diagram.Options{}, true)
	if !strings.Contains(out, "1..∞") {
		t.Error("unbounded occurrence text missing")
	}
	if !strings.Contains(out, "0..1") {
		t.Error("optional occurrence text missing")
	}
	// title is 1..1 and the always-show option is off.
	if strings.Contains(out, ">1..1<") {
		t.Error("default occurrence drawn without the option")
	}

	always := renderLibrary(t, diagram.Options{AlwaysShowOccurrence: true}, true)
	if !strings.Contains(always, "1..1") {
		t.Error("always-show option did not draw default occurrence")
	}
}

func TestDocumentationLines(t *testing.T) {
	out := renderLibrary(t, diagram.Options{ShowDocumentation: true}, true)
	if !strings.Contains(out, "A collection of books,") {
		t.Error("documentation text missing when the option is on")
	}
	off := renderLibrary(t, diagram.Options{}, true)
	if strings.Contains(off, "A collection of books,") {
		t.Error("documentation drawn with the option off")
	}
}

func TestTruncateContract(t *testing.T) {
	m := fonts.Default()
	const family = fonts.Family
	const size = 12.0

	tests := []struct {
		name  string
		text  string
		width float64
	}{
		{"LongName", "aVeryLongElementNameThatCannotFit", 80},
		{"Sentence", "documentation sentence that overflows the available space", 120},
		{"TinyWidth", "abcdef", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cut := truncate(tt.text, tt.width, m, family, size)
			if !cut {
				t.Fatalf("expected truncation of %q at width %v", tt.text, tt.width)
			}
			if !strings.HasSuffix(got, ellipsis) {
				t.Errorf("truncated %q does not end in ellipsis", got)
			}
			if w := m.Width(got, family, size); w > tt.width {
				t.Errorf("truncated width %v exceeds limit %v", w, tt.width)
			}
			if len([]rune(got)) >= len([]rune(tt.text)) {
				t.Errorf("truncated %q not shorter than input", got)
			}
		})
	}
}

func TestTruncateFitsUntouched(t *testing.T) {
	got, cut := truncate("short", 500, fonts.Default(), fonts.Family, 12)
	if cut || got != "short" {
		t.Errorf("fitting text changed: %q cut=%v", got, cut)
	}
}

func TestWrapLineCap(t *testing.T) {
	m := fonts.Default()
	long := strings.Repeat("lorem ipsum dolor ", 20)
	lines := wrap(long, 100, 3, m, fonts.Family, 10)
	if len(lines) > 3 {
		t.Fatalf("wrap produced %d lines, cap is 3", len(lines))
	}
	if !strings.HasSuffix(lines[len(lines)-1], ellipsis) {
		t.Error("overflowing wrap should end in ellipsis")
	}
}

func TestTooltipOnTruncatedLabel(t *testing.T) {
	d := &diagram.Diagram{Style: diagram.DefaultStyle(), Scale: 1}
	it := &diagram.Item{
		ID:        "/element:extraordinarilyLongElementName",
		Name:      "extraordinarilyLongElementNameThatWillNotFit",
		Kind:      diagram.KindElement,
		MinOccurs: 1,
		MaxOccurs: 1,
	}
	d.AddRoot(it)
	layout.Diagram(d)

	out := string(SVG(d))
	if !strings.Contains(out, "<title>extraordinarilyLongElementNameThatWillNotFit</title>") {
		t.Error("truncated label missing full-text tooltip")
	}
}
