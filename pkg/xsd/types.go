// Package xsd provides the schema object tree consumed by the diagram
// builder.
//
// The types here are a struct-tag binding of the XML Schema vocabulary
// (elements, complex and simple types, model groups, attributes,
// annotations, restriction facets). The binding is intentionally shallow:
// it preserves declaration order and lexical values and performs no XSD
// validation. Absent optional substructures decode to nil/empty
// collections and are treated as empty by consumers, never as errors.
package xsd

import "encoding/xml"

// Schema is the decoded form of a top-level <schema> element.
type Schema struct {
	XMLName         xml.Name          `xml:"schema"`
	TargetNamespace string            `xml:"targetNamespace,attr"`
	Imports         []Import          `xml:"import"`
	Includes        []Include         `xml:"include"`
	Elements        []Element         `xml:"element"`
	ComplexTypes    []ComplexType     `xml:"complexType"`
	SimpleTypes     []SimpleType      `xml:"simpleType"`
	Groups          []NamedGroup      `xml:"group"`
	AttributeGroups []AttributeGroup  `xml:"attributeGroup"`
	Annotation      *Annotation       `xml:"annotation"`
}

// Import references a schema in another namespace.
type Import struct {
	Namespace      string `xml:"namespace,attr"`
	SchemaLocation string `xml:"schemaLocation,attr"`
}

// Include references a schema in the same namespace.
type Include struct {
	SchemaLocation string `xml:"schemaLocation,attr"`
}

// Element is an element declaration, top-level or inside a model group.
// An inline (anonymous) type appears as a non-nil ComplexType or
// SimpleType; a named type reference appears as the Type attribute.
type Element struct {
	Name        string       `xml:"name,attr"`
	Ref         string       `xml:"ref,attr"`
	Type        string       `xml:"type,attr"`
	MinOccurs   string       `xml:"minOccurs,attr"`
	MaxOccurs   string       `xml:"maxOccurs,attr"`
	Default     string       `xml:"default,attr"`
	Fixed       string       `xml:"fixed,attr"`
	Nillable    string       `xml:"nillable,attr"`
	Annotation  *Annotation  `xml:"annotation"`
	ComplexType *ComplexType `xml:"complexType"`
	SimpleType  *SimpleType  `xml:"simpleType"`
}

// ComplexType carries attributes plus exactly one of: an inline model
// group, simpleContent, or complexContent.
type ComplexType struct {
	Name            string              `xml:"name,attr"`
	Abstract        string              `xml:"abstract,attr"`
	Mixed           string              `xml:"mixed,attr"`
	Annotation      *Annotation         `xml:"annotation"`
	Sequence        *ModelGroup         `xml:"sequence"`
	Choice          *ModelGroup         `xml:"choice"`
	All             *ModelGroup         `xml:"all"`
	SimpleContent   *DerivedContent     `xml:"simpleContent"`
	ComplexContent  *DerivedContent     `xml:"complexContent"`
	Attributes      []Attribute         `xml:"attribute"`
	AttributeGroups []AttributeGroupRef `xml:"attributeGroup"`
}

// ModelGroup is a sequence, choice, or all compositor. Which one it is is
// determined by the field it was decoded into; consumers resolve that once
// through Content and Nested rather than re-probing shapes.
type ModelGroup struct {
	MinOccurs  string       `xml:"minOccurs,attr"`
	MaxOccurs  string       `xml:"maxOccurs,attr"`
	Annotation *Annotation  `xml:"annotation"`
	Elements   []Element    `xml:"element"`
	Sequences  []ModelGroup `xml:"sequence"`
	Choices    []ModelGroup `xml:"choice"`
	Anys       []Any        `xml:"any"`
}

// Any is an element wildcard inside a model group.
type Any struct {
	Namespace       string `xml:"namespace,attr"`
	ProcessContents string `xml:"processContents,attr"`
	MinOccurs       string `xml:"minOccurs,attr"`
	MaxOccurs       string `xml:"maxOccurs,attr"`
}

// NamedGroup is a top-level reusable model group declaration.
type NamedGroup struct {
	Name       string      `xml:"name,attr"`
	Annotation *Annotation `xml:"annotation"`
	Sequence   *ModelGroup `xml:"sequence"`
	Choice     *ModelGroup `xml:"choice"`
	All        *ModelGroup `xml:"all"`
}

// DerivedContent is the body of simpleContent or complexContent: either an
// extension of a base type or a restriction of one.
type DerivedContent struct {
	Extension   *Derivation `xml:"extension"`
	Restriction *Derivation `xml:"restriction"`
}

// Derivation is an extension or restriction step inside derived content.
type Derivation struct {
	Base            string              `xml:"base,attr"`
	Sequence        *ModelGroup         `xml:"sequence"`
	Choice          *ModelGroup         `xml:"choice"`
	All             *ModelGroup         `xml:"all"`
	Attributes      []Attribute         `xml:"attribute"`
	AttributeGroups []AttributeGroupRef `xml:"attributeGroup"`
	// Facets apply when the derivation restricts a simple type.
	Restriction
}

// SimpleType is a simple type declaration, top-level or inline.
type SimpleType struct {
	Name        string       `xml:"name,attr"`
	Annotation  *Annotation  `xml:"annotation"`
	Restriction *Restriction `xml:"restriction"`
	Union       *Union       `xml:"union"`
	List        *List        `xml:"list"`
}

// Union is a simple type union; member types are recorded lexically.
type Union struct {
	MemberTypes string       `xml:"memberTypes,attr"`
	SimpleTypes []SimpleType `xml:"simpleType"`
}

// List is a simple type list.
type List struct {
	ItemType string `xml:"itemType,attr"`
}

// Restriction narrows a base type with facets. All facet fields decode to
// slices so single- and multi-valued sources are handled uniformly; for
// single-valued facets only the first occurrence is honored.
type Restriction struct {
	RestrictionBase string  `xml:"base,attr"`
	Enumerations    []Facet `xml:"enumeration"`
	Patterns        []Facet `xml:"pattern"`
	Lengths         []Facet `xml:"length"`
	MinLengths      []Facet `xml:"minLength"`
	MaxLengths      []Facet `xml:"maxLength"`
	MinInclusives   []Facet `xml:"minInclusive"`
	MaxInclusives   []Facet `xml:"maxInclusive"`
	MinExclusives   []Facet `xml:"minExclusive"`
	MaxExclusives   []Facet `xml:"maxExclusive"`
	TotalDigits     []Facet `xml:"totalDigits"`
	FractionDigits  []Facet `xml:"fractionDigits"`
	WhiteSpaces     []Facet `xml:"whiteSpace"`
}

// Facet is a single facet occurrence; Value preserves the literal lexical
// form from the source document.
type Facet struct {
	Value string `xml:"value,attr"`
}

// Attribute is an attribute declaration on a complex type.
type Attribute struct {
	Name       string      `xml:"name,attr"`
	Ref        string      `xml:"ref,attr"`
	Type       string      `xml:"type,attr"`
	Use        string      `xml:"use,attr"`
	Default    string      `xml:"default,attr"`
	Fixed      string      `xml:"fixed,attr"`
	Annotation *Annotation `xml:"annotation"`
	SimpleType *SimpleType `xml:"simpleType"`
}

// AttributeGroup is a top-level reusable attribute collection.
type AttributeGroup struct {
	Name       string      `xml:"name,attr"`
	Annotation *Annotation `xml:"annotation"`
	Attributes []Attribute `xml:"attribute"`
}

// AttributeGroupRef references a named attribute group.
type AttributeGroupRef struct {
	Ref string `xml:"ref,attr"`
}

// Annotation wraps documentation text.
type Annotation struct {
	Documentation []string `xml:"documentation"`
}

// Doc returns the annotation's documentation joined by newlines, or empty
// when the annotation is absent.
func (a *Annotation) Doc() string {
	if a == nil || len(a.Documentation) == 0 {
		return ""
	}
	out := a.Documentation[0]
	for _, d := range a.Documentation[1:] {
		out += "\n" + d
	}
	return out
}
