package xsd

// Compositor names the three model-group flavors.
type Compositor string

const (
	CompositorSequence Compositor = "sequence"
	CompositorChoice   Compositor = "choice"
	CompositorAll      Compositor = "all"
)

// ContentKind tags the content-model variant of a complex type. Each
// complex type resolves to exactly one variant; callers switch on the tag
// once instead of probing optional fields at every site.
type ContentKind int

const (
	// ContentEmpty means the type has no content model (attributes only).
	ContentEmpty ContentKind = iota
	// ContentGroup means an inline sequence/choice/all group.
	ContentGroup
	// ContentSimple means simpleContent (extension or restriction of a
	// simple base).
	ContentSimple
	// ContentComplex means complexContent (extension or restriction of a
	// complex base).
	ContentComplex
)

// ContentModel is the resolved content-model variant of a complex type.
type ContentModel struct {
	Kind ContentKind

	// Group and Compositor are set for ContentGroup.
	Group      *ModelGroup
	Compositor Compositor

	// Derived is set for ContentSimple and ContentComplex.
	Derived *DerivedContent
}

// Content resolves the complex type's content model into its variant.
// Precedence follows the XSD content rules: derived content first, then an
// inline group, else empty.
func (ct *ComplexType) Content() ContentModel {
	switch {
	case ct.SimpleContent != nil:
		return ContentModel{Kind: ContentSimple, Derived: ct.SimpleContent}
	case ct.ComplexContent != nil:
		return ContentModel{Kind: ContentComplex, Derived: ct.ComplexContent}
	case ct.Sequence != nil:
		return ContentModel{Kind: ContentGroup, Group: ct.Sequence, Compositor: CompositorSequence}
	case ct.Choice != nil:
		return ContentModel{Kind: ContentGroup, Group: ct.Choice, Compositor: CompositorChoice}
	case ct.All != nil:
		return ContentModel{Kind: ContentGroup, Group: ct.All, Compositor: CompositorAll}
	}
	return ContentModel{Kind: ContentEmpty}
}

// Derivation returns the extension or restriction step of derived content,
// with isExtension reporting which one it is. Returns nil when the source
// document carried neither.
func (dc *DerivedContent) Derivation() (d *Derivation, isExtension bool) {
	if dc.Extension != nil {
		return dc.Extension, true
	}
	return dc.Restriction, false
}

// ModelGroup returns the derivation's inline group, if any, with its
// compositor.
func (d *Derivation) ModelGroup() (*ModelGroup, Compositor) {
	switch {
	case d.Sequence != nil:
		return d.Sequence, CompositorSequence
	case d.Choice != nil:
		return d.Choice, CompositorChoice
	case d.All != nil:
		return d.All, CompositorAll
	}
	return nil, ""
}

// ModelGroup returns the named group's body with its compositor, or nil
// when the declaration is empty.
func (ng *NamedGroup) ModelGroup() (*ModelGroup, Compositor) {
	switch {
	case ng.Sequence != nil:
		return ng.Sequence, CompositorSequence
	case ng.Choice != nil:
		return ng.Choice, CompositorChoice
	case ng.All != nil:
		return ng.All, CompositorAll
	}
	return nil, ""
}

// NestedGroup pairs a nested model group with its compositor, preserving
// the order-independent pieces a recursive walk needs.
type NestedGroup struct {
	Compositor Compositor
	Group      *ModelGroup
}

// Nested returns the group's nested sequences and choices. XSD forbids
// nesting under <all>, so only those two appear.
func (g *ModelGroup) Nested() []NestedGroup {
	nested := make([]NestedGroup, 0, len(g.Sequences)+len(g.Choices))
	for i := range g.Sequences {
		nested = append(nested, NestedGroup{Compositor: CompositorSequence, Group: &g.Sequences[i]})
	}
	for i := range g.Choices {
		nested = append(nested, NestedGroup{Compositor: CompositorChoice, Group: &g.Choices[i]})
	}
	return nested
}

// Empty reports whether the restriction carries no facets at all.
func (r *Restriction) Empty() bool {
	return len(r.Enumerations) == 0 &&
		len(r.Patterns) == 0 &&
		len(r.Lengths) == 0 &&
		len(r.MinLengths) == 0 &&
		len(r.MaxLengths) == 0 &&
		len(r.MinInclusives) == 0 &&
		len(r.MaxInclusives) == 0 &&
		len(r.MinExclusives) == 0 &&
		len(r.MaxExclusives) == 0 &&
		len(r.TotalDigits) == 0 &&
		len(r.FractionDigits) == 0 &&
		len(r.WhiteSpaces) == 0
}
