package render

import (
	"strings"
	"testing"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/render/svg"
)

func attrValue(el *svg.Element, key string) string {
	for _, a := range el.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

func TestTypeBoxBevelsOneCorner(t *testing.T) {
	b := diagram.Rect{X: 0, Y: 0, W: 160, H: 40}
	el := typeBox(b, diagram.DefaultStyle(), false)

	pts := strings.Split(attrValue(el, "points"), " ")
	if len(pts) != 5 {
		t.Fatalf("type shape has %d points, want 5", len(pts))
	}
	if pts[1] != "152,0" || pts[2] != "160,8" {
		t.Errorf("top-right bevel = %v %v", pts[1], pts[2])
	}
	// The bottom-right corner stays square.
	if pts[3] != "160,40" {
		t.Errorf("bottom-right corner = %q, want 160,40", pts[3])
	}
}

func TestTypeBoxSimpleContentSolidCorner(t *testing.T) {
	st := diagram.DefaultStyle()
	b := diagram.Rect{X: 0, Y: 0, W: 160, H: 40}
	el := typeBox(b, st, true)

	if len(el.Children) != 2 {
		t.Fatalf("simple-content type shape has %d children, want body and corner", len(el.Children))
	}
	corner := el.Children[1]
	if attrValue(corner, "fill") != st.TypeStroke {
		t.Errorf("corner fill = %q, want solid stroke color", attrValue(corner, "fill"))
	}
}
