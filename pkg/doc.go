// Package pkg provides the core libraries for Schemavis schema visualization.
//
// # Overview
//
// Schemavis turns XML Schema documents into expandable structural diagrams
// where content models, occurrence bounds, and type derivations are drawn
// rather than read. The pkg directory is organized into four main areas:
//
//  1. [xsd], [diagram], [nodeid] - Domain logic (schema parsing, diagram
//     construction, node addressing)
//  2. [layout], [render], [fonts] - Geometry and drawing (expandable SVG,
//     Graphviz overview, text measurement)
//  3. [cache], [store] - Infrastructure (artifact caching, saved documents)
//  4. [pipeline] - Orchestration (parse, build, layout, render)
//
// # Architecture
//
// The typical data flow through Schemavis:
//
//	XML Schema document
//	         ↓
//	xsd.Parse            decode the schema object tree
//	         ↓
//	diagram.Build        derive the item tree, minting node ids
//	         ↓
//	layout.Diagram       assign geometry to the visible items
//	         ↓
//	render.SVG           draw shapes, connectors, and expand buttons
//
// Hosts keep only each item's expand flag between builds; node ids make
// that state survive a full rebuild of the tree.
package pkg
