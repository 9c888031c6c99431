package diagram

import (
	"strconv"
	"strings"

	"github.com/schemavis/schemavis/pkg/nodeid"
	"github.com/schemavis/schemavis/pkg/xsd"
)

// PlaceholderText is the fixed child drawn when a schema has no top-level
// declarations, so a diagram is never empty.
const PlaceholderText = "No elements found"

// noNamespaceName names the schema root when the schema declares no target
// namespace.
const noNamespaceName = "(no namespace)"

// Builder converts a schema object tree into a Diagram.
//
// The container-position counter lives on the builder value, so concurrent
// or repeated builds cannot interfere; a fresh Builder (and therefore a
// fresh counter) is created per Build call.
type Builder struct {
	seq int
}

// Build constructs a new Diagram from the schema. The returned Diagram has
// exactly one root item representing the schema itself, named by its
// target namespace. Absent or sparse schema substructures become empty
// collections; the only failure mode is a rejected node identifier, which
// propagates.
func Build(s *xsd.Schema, opts Options) *Diagram {
	b := &Builder{}
	d := &Diagram{
		Options: opts,
		Scale:   1.0,
		Padding: 10,
		Style:   DefaultStyle(),
	}

	rootName := s.TargetNamespace
	if rootName == "" {
		rootName = noNamespaceName
	}
	root := &Item{
		ID:            nodeid.Generate(nodeid.Params{Kind: nodeid.KindSchema, Namespace: s.TargetNamespace}),
		Name:          rootName,
		Kind:          KindElement,
		MinOccurs:     1,
		MaxOccurs:     1,
		Documentation: s.Annotation.Doc(),
		Expanded:      true,
	}
	d.AddRoot(root)

	for i := range s.Elements {
		root.AddChild(b.buildElement(&s.Elements[i], "", i))
	}
	for i := range s.ComplexTypes {
		root.AddChild(b.buildComplexType(&s.ComplexTypes[i], s.TargetNamespace))
	}
	for i := range s.SimpleTypes {
		root.AddChild(b.buildSimpleType(&s.SimpleTypes[i], s.TargetNamespace))
	}

	if !root.HasChildren() {
		root.AddChild(&Item{
			ID:        nodeid.Generate(nodeid.Params{Kind: nodeid.KindElement, Name: PlaceholderText, ParentID: root.ID, Position: 0, HasPosition: true}),
			Name:      PlaceholderText,
			Kind:      KindElement,
			MinOccurs: 1,
			MaxOccurs: 1,
		})
	}

	return d
}

// nextPos mints the next container position. Groups and anonymous types
// are addressed by these positions, which are reproducible for a given
// schema snapshot because the counter starts at zero on every build.
func (b *Builder) nextPos() int {
	pos := b.seq
	b.seq++
	return pos
}

// buildElement converts one element declaration. parentID is empty for
// top-level elements, which are addressed by name alone; nested elements
// carry their ordinal position within the parent group.
func (b *Builder) buildElement(el *xsd.Element, parentID string, pos int) *Item {
	item := &Item{
		Kind:          KindElement,
		Name:          el.Name,
		TypeLabel:     el.Type,
		MinOccurs:     occursOrDefault(el.MinOccurs),
		MaxOccurs:     maxOccursOrDefault(el.MaxOccurs),
		Documentation: el.Annotation.Doc(),
	}
	if el.Ref != "" {
		item.Kind = KindReference
		item.Name = el.Ref
	}

	params := nodeid.Params{Kind: nodeid.KindElement, Name: item.Name}
	if parentID != "" {
		params.ParentID = parentID
		params.Position = pos
		params.HasPosition = true
	}
	item.ID = nodeid.Generate(params)

	// An inline anonymous type contributes its structure to this item
	// rather than becoming an addressable child node.
	if el.ComplexType != nil {
		b.mergeComplexType(item, el.ComplexType)
	}
	if el.SimpleType != nil {
		b.mergeSimpleType(item, el.SimpleType)
	}

	return item
}

// buildComplexType converts a top-level complex type declaration.
func (b *Builder) buildComplexType(ct *xsd.ComplexType, ns string) *Item {
	item := &Item{
		ID:            nodeid.Generate(nodeid.Params{Kind: nodeid.KindComplexType, Name: ct.Name, Namespace: ns}),
		Name:          ct.Name,
		Kind:          KindType,
		MinOccurs:     1,
		MaxOccurs:     1,
		Documentation: ct.Annotation.Doc(),
	}
	b.mergeComplexType(item, ct)
	return item
}

// buildSimpleType converts a top-level simple type declaration.
func (b *Builder) buildSimpleType(st *xsd.SimpleType, ns string) *Item {
	item := &Item{
		ID:            nodeid.Generate(nodeid.Params{Kind: nodeid.KindSimpleType, Name: st.Name, Namespace: ns}),
		Name:          st.Name,
		Kind:          KindType,
		MinOccurs:     1,
		MaxOccurs:     1,
		SimpleContent: true,
		Documentation: st.Annotation.Doc(),
	}
	b.mergeSimpleType(item, st)
	return item
}

// mergeComplexType merges a complex type's structure (attributes, content
// model, documentation) onto item. This is the explicit merge used both
// for named types and for anonymous inline types hosted by an element.
func (b *Builder) mergeComplexType(item *Item, ct *xsd.ComplexType) {
	for _, a := range ct.Attributes {
		item.Attributes = append(item.Attributes, attributeOf(a))
	}
	if item.Documentation == "" {
		item.Documentation = ct.Annotation.Doc()
	}

	cm := ct.Content()
	switch cm.Kind {
	case xsd.ContentGroup:
		item.AddChild(b.buildGroup(cm.Group, cm.Compositor, item.ID))
	case xsd.ContentSimple:
		item.SimpleContent = true
		b.mergeDerived(item, cm.Derived)
	case xsd.ContentComplex:
		b.mergeDerived(item, cm.Derived)
	}
}

// mergeDerived appends a human-readable fragment describing the derivation
// to the item's type label and merges the derivation's own structure.
func (b *Builder) mergeDerived(item *Item, dc *xsd.DerivedContent) {
	d, isExt := dc.Derivation()
	if d == nil {
		return
	}

	verb := "restricts"
	if isExt {
		verb = "extends"
	}
	frag := verb + " " + d.Base
	if item.TypeLabel == "" {
		item.TypeLabel = frag
	} else {
		item.TypeLabel += ", " + frag
	}

	for _, a := range d.Attributes {
		item.Attributes = append(item.Attributes, attributeOf(a))
	}
	if g, comp := d.ModelGroup(); g != nil {
		item.AddChild(b.buildGroup(g, comp, item.ID))
	}
	if f := facetsOf(&d.Restriction); f != nil {
		item.Facets = f
	}
}

// mergeSimpleType merges an inline or named simple type onto item:
// restriction base into the type label, facets, and documentation when the
// item has none of its own.
func (b *Builder) mergeSimpleType(item *Item, st *xsd.SimpleType) {
	item.SimpleContent = true
	if item.Documentation == "" {
		item.Documentation = st.Annotation.Doc()
	}

	switch {
	case st.Restriction != nil:
		frag := "restricts " + st.Restriction.RestrictionBase
		if item.TypeLabel == "" {
			item.TypeLabel = frag
		} else {
			item.TypeLabel += ", " + frag
		}
		if f := facetsOf(st.Restriction); f != nil {
			item.Facets = f
		}
	case st.Union != nil:
		item.TypeLabel = "union of " + st.Union.MemberTypes
	case st.List != nil:
		item.TypeLabel = "list of " + st.List.ItemType
	}
}

// buildGroup converts a sequence/choice/all compositor into a group item.
// The group is anonymous: it is addressed by its parent id plus a minted
// position. Its elements carry their ordinal position within the group.
func (b *Builder) buildGroup(g *xsd.ModelGroup, comp xsd.Compositor, parentID string) *Item {
	item := &Item{
		ID:            nodeid.Generate(nodeid.Params{Kind: nodeid.KindGroup, ParentID: parentID, Position: b.nextPos(), HasPosition: true}),
		Kind:          KindGroup,
		GroupKind:     groupKindOf(comp),
		MinOccurs:     occursOrDefault(g.MinOccurs),
		MaxOccurs:     maxOccursOrDefault(g.MaxOccurs),
		Documentation: g.Annotation.Doc(),
		Expanded:      true,
	}

	for i := range g.Elements {
		item.AddChild(b.buildElement(&g.Elements[i], item.ID, i))
	}
	for _, nested := range g.Nested() {
		item.AddChild(b.buildGroup(nested.Group, nested.Compositor, item.ID))
	}

	return item
}

// facetsOf extracts the facet set from a restriction, or nil when no facet
// key is present. Facet collections arrive as lists; single-valued facets
// keep only the first occurrence.
func facetsOf(r *xsd.Restriction) *Facets {
	if r == nil || r.Empty() {
		return nil
	}
	f := &Facets{
		Length:         firstFacet(r.Lengths),
		MinLength:      firstFacet(r.MinLengths),
		MaxLength:      firstFacet(r.MaxLengths),
		MinInclusive:   firstFacet(r.MinInclusives),
		MaxInclusive:   firstFacet(r.MaxInclusives),
		MinExclusive:   firstFacet(r.MinExclusives),
		MaxExclusive:   firstFacet(r.MaxExclusives),
		TotalDigits:    firstFacet(r.TotalDigits),
		FractionDigits: firstFacet(r.FractionDigits),
		WhiteSpace:     firstFacet(r.WhiteSpaces),
	}
	for _, e := range r.Enumerations {
		f.Enumerations = append(f.Enumerations, e.Value)
	}
	for _, p := range r.Patterns {
		f.Patterns = append(f.Patterns, p.Value)
	}
	return f
}

func firstFacet(fs []xsd.Facet) string {
	if len(fs) == 0 {
		return ""
	}
	return fs[0].Value
}

func attributeOf(a xsd.Attribute) Attribute {
	name := a.Name
	if name == "" {
		name = a.Ref
	}
	return Attribute{
		Name:    name,
		Type:    a.Type,
		Use:     a.Use,
		Default: a.Default,
		Fixed:   a.Fixed,
	}
}

func groupKindOf(c xsd.Compositor) GroupKind {
	switch c {
	case xsd.CompositorSequence:
		return GroupSequence
	case xsd.CompositorChoice:
		return GroupChoice
	case xsd.CompositorAll:
		return GroupAll
	}
	return GroupNone
}

// occursOrDefault parses a minOccurs attribute, defaulting to 1 when
// absent or unparseable.
func occursOrDefault(s string) int {
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 1
	}
	return n
}

// maxOccursOrDefault parses a maxOccurs attribute: default 1, with the
// literal "unbounded" mapped to the Unbounded sentinel.
func maxOccursOrDefault(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	if strings.EqualFold(s, "unbounded") {
		return Unbounded
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 1
	}
	return n
}
