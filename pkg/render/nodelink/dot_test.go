package nodelink

import (
	"strings"
	"testing"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/xsd"
)

const invoiceSrc = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:invoice">
  <xs:element name="invoice">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="line" maxOccurs="unbounded"/>
        <xs:element name="note" type="xs:string" minOccurs="0"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func buildInvoice(t *testing.T) *diagram.Diagram {
	t.Helper()
	s, err := xsd.Parse([]byte(invoiceSrc))
	if err != nil {
		t.Fatal(err)
	}
	return diagram.Build(s, diagram.Options{})
}

func TestToDOTEmitsAllNodes(t *testing.T) {
	dot := ToDOT(buildInvoice(t), Options{})

	for _, want := range []string{
		`"/schema:{urn:invoice}"`,
		`"/element:invoice"`,
		"element:line[0]",
		"element:note[1]",
		`"/schema:{urn:invoice}" -> "/element:invoice";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s", want)
		}
	}
}

func TestToDOTShapesAndStyles(t *testing.T) {
	dot := ToDOT(buildInvoice(t), Options{})

	if !strings.Contains(dot, "shape=octagon") {
		t.Error("group node missing octagon shape")
	}
	if !strings.Contains(dot, `style="rounded,filled,dashed"`) {
		t.Error("optional node missing dashed style")
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	plain := ToDOT(buildInvoice(t), Options{})
	detailed := ToDOT(buildInvoice(t), Options{Detailed: true})

	if strings.Contains(plain, "1..∞") {
		t.Error("plain labels should not carry occurrence bounds")
	}
	if !strings.Contains(detailed, "1..∞") {
		t.Error("detailed labels missing occurrence bounds")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 8.00 6.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 8.00 6.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="8" height="6"`) {
		t.Errorf("pixel size not rewritten: %s", out)
	}
}
