// Package render draws laid-out diagrams as SVG documents.
//
// The renderer walks the diagram tree and emits one group per item,
// tagged with its node id so an interactive host can hit-test clicks
// against the markup. Shapes encode item semantics: plain boxes for
// elements, octagons with a compositor glyph for model groups, beveled
// boxes for types, a stacked shadow for repeatable items, and a dashed
// outline for optional ones.
//
// Label fitting goes through a [fonts.Measurer] so output is identical
// across platforms; truncated labels keep their full text in a <title>
// tooltip.
//
// The [nodelink] subpackage renders the same tree as a Graphviz
// node-link diagram for hosts that want an overview graph instead of
// the expandable layout.
package render
