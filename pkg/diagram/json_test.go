package diagram

import (
	"testing"

	"github.com/schemavis/schemavis/pkg/xsd"
)

const teamXSD = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:team">
  <xs:element name="team">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="member" type="xs:string" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func TestJSONRoundTrip(t *testing.T) {
	s, err := xsd.Parse([]byte(teamXSD))
	if err != nil {
		t.Fatal(err)
	}
	d := Build(s, Options{ShowTypeLabels: true})

	data, err := Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}

	if !got.Options.ShowTypeLabels {
		t.Error("options lost in round trip")
	}

	member := got.Find("/element:team/group:[0]/element:member[0]")
	if member == nil {
		t.Fatal("nested item lost in round trip")
	}
	if member.MaxOccurs != Unbounded {
		t.Errorf("MaxOccurs = %d, want Unbounded", member.MaxOccurs)
	}

	// Back-references are rewired, not serialized.
	if member.Parent() == nil || member.Parent().Kind != KindGroup {
		t.Error("parent back-reference not rewired")
	}
	if member.Diagram() != got {
		t.Error("diagram back-reference not rewired")
	}
}
