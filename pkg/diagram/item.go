// Package diagram defines the diagram node model and the builder that
// derives it from a schema object tree.
//
// A Diagram is rebuilt from scratch on every build call; the only state a
// host mutates between builds is each Item's expand/collapse flag and the
// Diagram's display options, both of which invalidate geometry only, never
// identity.
package diagram

// ItemKind classifies a diagram node.
type ItemKind int

const (
	KindElement ItemKind = iota
	KindGroup
	KindType
	KindReference
)

// String returns the kind's stable wire name.
func (k ItemKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindGroup:
		return "group"
	case KindType:
		return "type"
	case KindReference:
		return "reference"
	}
	return "unknown"
}

// GroupKind is the compositor sub-kind of a group item.
type GroupKind int

const (
	GroupNone GroupKind = iota
	GroupSequence
	GroupChoice
	GroupAll
)

// String returns the group kind's stable wire name.
func (g GroupKind) String() string {
	switch g {
	case GroupSequence:
		return "sequence"
	case GroupChoice:
		return "choice"
	case GroupAll:
		return "all"
	}
	return ""
}

// Unbounded is the sentinel maximum occurrence meaning "no upper bound".
const Unbounded = -1

// Attribute describes one attribute row on an item.
type Attribute struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Use     string `json:"use,omitempty"`
	Default string `json:"default,omitempty"`
	Fixed   string `json:"fixed,omitempty"`
}

// Facets is the restriction-facet set attached to an item when at least
// one facet is present. Single-valued fields hold the first occurrence
// from the source; string fields preserve the literal lexical form.
type Facets struct {
	Enumerations   []string `json:"enumerations,omitempty"`
	Patterns       []string `json:"patterns,omitempty"`
	Length         string   `json:"length,omitempty"`
	MinLength      string   `json:"minLength,omitempty"`
	MaxLength      string   `json:"maxLength,omitempty"`
	MinInclusive   string   `json:"minInclusive,omitempty"`
	MaxInclusive   string   `json:"maxInclusive,omitempty"`
	MinExclusive   string   `json:"minExclusive,omitempty"`
	MaxExclusive   string   `json:"maxExclusive,omitempty"`
	TotalDigits    string   `json:"totalDigits,omitempty"`
	FractionDigits string   `json:"fractionDigits,omitempty"`
	WhiteSpace     string   `json:"whiteSpace,omitempty"`
}

// Item is one node of the rendered diagram tree.
//
// An Item exclusively owns its children; parent and diagram are non-owning
// back-references maintained by AddChild and never serialized.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	// TypeLabel accumulates base/extension/restriction annotations as a
	// human-readable string.
	TypeLabel     string      `json:"type,omitempty"`
	Kind          ItemKind    `json:"kind"`
	GroupKind     GroupKind   `json:"groupKind,omitempty"`
	MinOccurs     int         `json:"minOccurs"`
	MaxOccurs     int         `json:"maxOccurs"` // Unbounded for "unbounded"
	Attributes    []Attribute `json:"attributes,omitempty"`
	Facets        *Facets     `json:"facets,omitempty"`
	Documentation string      `json:"documentation,omitempty"`
	SimpleContent bool        `json:"simpleContent,omitempty"`
	Expanded      bool        `json:"expanded"`

	// Geometry, assigned by the layout engine.
	Location  Point `json:"location"`
	Size      Size  `json:"size"`
	Box       Rect  `json:"box"`
	DocBox    Rect  `json:"docBox"`
	ExpandBox Rect  `json:"expandBox"`
	// Bounds covers the item and, when expanded, its visible subtree.
	Bounds Rect `json:"bounds"`

	children []*Item
	parent   *Item
	diagram  *Diagram
}

// AddChild appends child to the item, wiring parent and diagram
// back-references through the whole attached subtree.
func (it *Item) AddChild(child *Item) {
	child.parent = it
	child.attach(it.diagram)
	it.children = append(it.children, child)
}

func (it *Item) attach(d *Diagram) {
	it.diagram = d
	for _, c := range it.children {
		c.attach(d)
	}
}

// Children returns the item's direct children in declaration order.
func (it *Item) Children() []*Item { return it.children }

// Parent returns the owning item, or nil for a root.
func (it *Item) Parent() *Item { return it.parent }

// Diagram returns the diagram the item belongs to.
func (it *Item) Diagram() *Diagram { return it.diagram }

// HasChildren reports whether the item has at least one child.
func (it *Item) HasChildren() bool { return len(it.children) > 0 }

// DisplayName returns the name to draw: the item's name, falling back to
// its type label for unnamed items.
func (it *Item) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	return it.TypeLabel
}

// Walk visits the item and every descendant depth-first, stopping early if
// fn returns false.
func (it *Item) Walk(fn func(*Item) bool) bool {
	if !fn(it) {
		return false
	}
	for _, c := range it.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the descendant (or the item itself) with the given id, or
// nil when no such node exists.
func (it *Item) Find(id string) *Item {
	var found *Item
	it.Walk(func(n *Item) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Options are the diagram-wide display switches applied by the host before
// layout and render.
type Options struct {
	ShowDocumentation    bool `json:"showDocumentation"`
	AlwaysShowOccurrence bool `json:"alwaysShowOccurrence"`
	ShowTypeLabels       bool `json:"showTypeLabels"`
}

// Diagram is the root container of the rendered tree.
type Diagram struct {
	Roots   []*Item `json:"roots"`
	Options Options `json:"options"`
	Scale   float64 `json:"scale"`
	Padding float64 `json:"padding"`
	Bounds  Rect    `json:"bounds"`
	Style   Style   `json:"style"`
}

// AddRoot appends a root item and wires its diagram back-reference.
func (d *Diagram) AddRoot(it *Item) {
	it.attach(d)
	d.Roots = append(d.Roots, it)
}

// Find returns the item with the given id anywhere in the diagram, or nil.
func (d *Diagram) Find(id string) *Item {
	for _, r := range d.Roots {
		if it := r.Find(id); it != nil {
			return it
		}
	}
	return nil
}

// Walk visits every item in the diagram depth-first.
func (d *Diagram) Walk(fn func(*Item) bool) {
	for _, r := range d.Roots {
		if !r.Walk(fn) {
			return
		}
	}
}
