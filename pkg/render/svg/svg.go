// Package svg builds and serializes trees of vector drawing primitives.
//
// The element tree is deliberately small: group, rect, polygon, circle,
// line, and text nodes with ordered attributes and inline style strings.
// Attribute order is preserved so serialization is deterministic.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Attr is a single attribute; order of appearance is preserved.
type Attr struct {
	Key   string
	Value string
}

// Element is one node of the drawing tree.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	// Text is character data for text/title/tspan elements.
	Text string
}

// New creates an element with the given tag.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// Set appends or replaces an attribute, keeping first-set order.
func (e *Element) Set(key, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// Attr returns the attribute value, or empty when unset.
func (e *Element) Attr(key string) string {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Append adds children and returns the receiver for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Walk visits the element and every descendant depth-first.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// WriteTo serializes the element tree.
func (e *Element) WriteTo(buf *bytes.Buffer) {
	buf.WriteString("<")
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs {
		fmt.Fprintf(buf, ` %s="%s"`, a.Key, Escape(a.Value))
	}
	if len(e.Children) == 0 && e.Text == "" {
		buf.WriteString("/>")
		return
	}
	buf.WriteString(">")
	if e.Text != "" {
		buf.WriteString(Escape(e.Text))
	}
	for _, c := range e.Children {
		c.WriteTo(buf)
	}
	buf.WriteString("</")
	buf.WriteString(e.Tag)
	buf.WriteString(">")
}

// String serializes the element tree to a string.
func (e *Element) String() string {
	var buf bytes.Buffer
	e.WriteTo(&buf)
	return buf.String()
}

// Escape escapes text for use in attribute values and character data.
func Escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// fmtNum renders a coordinate with a short fixed precision so output is
// stable across platforms.
func fmtNum(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Num formats a coordinate for attribute use.
func Num(f float64) string { return fmtNum(f) }

// Root creates an <svg> element with namespace, viewBox, and pixel size.
func Root(x, y, w, h, scale float64) *Element {
	e := New("svg")
	e.Set("xmlns", "http://www.w3.org/2000/svg")
	e.Set("viewBox", fmt.Sprintf("%s %s %s %s", fmtNum(x), fmtNum(y), fmtNum(w), fmtNum(h)))
	e.Set("width", fmtNum(w*scale))
	e.Set("height", fmtNum(h*scale))
	return e
}

// Group creates a <g> element.
func Group() *Element { return New("g") }

// Rect creates a <rect> element.
func Rect(x, y, w, h float64) *Element {
	return New("rect").
		Set("x", fmtNum(x)).
		Set("y", fmtNum(y)).
		Set("width", fmtNum(w)).
		Set("height", fmtNum(h))
}

// Line creates a <line> element.
func Line(x1, y1, x2, y2 float64) *Element {
	return New("line").
		Set("x1", fmtNum(x1)).
		Set("y1", fmtNum(y1)).
		Set("x2", fmtNum(x2)).
		Set("y2", fmtNum(y2))
}

// Polygon creates a <polygon> from (x,y) pairs.
func Polygon(points ...float64) *Element {
	var b strings.Builder
	for i := 0; i+1 < len(points); i += 2 {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmtNum(points[i]))
		b.WriteString(",")
		b.WriteString(fmtNum(points[i+1]))
	}
	return New("polygon").Set("points", b.String())
}

// Circle creates a <circle> element.
func Circle(cx, cy, r float64) *Element {
	return New("circle").
		Set("cx", fmtNum(cx)).
		Set("cy", fmtNum(cy)).
		Set("r", fmtNum(r))
}

// Text creates a <text> element with character data.
func Text(x, y float64, s string) *Element {
	e := New("text").
		Set("x", fmtNum(x)).
		Set("y", fmtNum(y))
	e.Text = s
	return e
}

// Title creates a <title> child used as a hover tooltip.
func Title(s string) *Element {
	e := New("title")
	e.Text = s
	return e
}
