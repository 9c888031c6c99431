// Package nodeid implements the identifier codec for schema-tree positions.
//
// Every node in a rendered schema diagram is addressed by a deterministic
// string path. The grammar is a sequence of "/"-separated segments, each of
// the form
//
//	<kind>:[{namespace}][name][[position]]
//
// Top-level declarations are addressed by kind and name
// ("/element:person"), nested declarations by their parent's id plus a
// local position ("/element:person/element:address[0]"), and anonymous
// containers (inline groups, anonymous types) by position only
// ("/element:person/group:[2]").
//
// The parent id of any non-root id is always itself a valid id and a strict
// prefix of the child id, and siblings sharing a local name are
// disambiguated by position, so no two distinct nodes share an id.
package nodeid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schemavis/schemavis/pkg/errors"
)

// Kind identifies the schema construct a node id addresses.
type Kind string

// Node kinds.
const (
	KindSchema               Kind = "schema"
	KindElement              Kind = "element"
	KindComplexType          Kind = "complexType"
	KindSimpleType           Kind = "simpleType"
	KindGroup                Kind = "group"
	KindAttributeGroup       Kind = "attributeGroup"
	KindImport               Kind = "import"
	KindInclude              Kind = "include"
	KindAnonymousComplexType Kind = "anonymousComplexType"
	KindAnonymousSimpleType  Kind = "anonymousSimpleType"
)

// anonymous reports whether ids of this kind never carry a name.
func (k Kind) anonymous() bool {
	switch k {
	case KindAnonymousComplexType, KindAnonymousSimpleType, KindImport, KindInclude:
		return true
	}
	return false
}

// Params describes the node for which an id is generated.
// Name and Namespace are omitted for anonymous kinds. ParentID is empty for
// top-level declarations. HasPosition guards Position so that position 0 is
// distinguishable from "no position".
type Params struct {
	Kind        Kind
	Name        string
	Namespace   string
	ParentID    string
	Position    int
	HasPosition bool
}

// Record is the parsed form of an id, the inverse of the Params that
// produced its last segment.
type Record struct {
	Kind        Kind
	Name        string
	Namespace   string
	Position    int
	HasPosition bool
	// ParentID is the id with its last segment removed, or empty for a
	// single-segment id.
	ParentID string
	// Segments holds every path segment in order, without separators.
	Segments []string
}

const sep = "/"

// Generate produces the id for the node described by p.
//
// Top-level kinds produce "/<kind>:<name>" with the namespace inserted as
// "{uri}" immediately before the name when present. When a parent id is
// given, the new segment is appended to it; the parent id is normalized to
// carry a leading separator. Anonymous kinds omit the name and keep only
// the position suffix.
func Generate(p Params) string {
	var seg strings.Builder
	seg.WriteString(string(p.Kind))
	seg.WriteString(":")
	if !p.Kind.anonymous() {
		if p.Namespace != "" {
			seg.WriteString("{")
			seg.WriteString(p.Namespace)
			seg.WriteString("}")
		}
		seg.WriteString(p.Name)
	}
	if p.HasPosition {
		seg.WriteString("[")
		seg.WriteString(strconv.Itoa(p.Position))
		seg.WriteString("]")
	}

	if p.ParentID == "" {
		return sep + seg.String()
	}
	parent := p.ParentID
	if !strings.HasPrefix(parent, sep) {
		parent = sep + parent
	}
	return parent + sep + seg.String()
}

// Parse decodes an id back into its record. It fails with an
// INVALID_NODE_ID error when the input lacks the leading separator or a
// segment is not of the form "<kind>:...".
func Parse(id string) (Record, error) {
	if !strings.HasPrefix(id, sep) {
		return Record{}, errors.New(errors.ErrCodeInvalidNodeID, "missing leading separator: %q", id)
	}

	segments := splitSegments(id[1:])
	last := segments[len(segments)-1]

	rec, err := parseSegment(last)
	if err != nil {
		return Record{}, err
	}
	rec.Segments = segments
	if len(segments) > 1 {
		rec.ParentID = sep + strings.Join(segments[:len(segments)-1], sep)
	}
	return rec, nil
}

// splitSegments splits on "/" outside of namespace braces, so URIs such as
// "{http://example.com/ns}" stay within a single segment.
func splitSegments(s string) []string {
	var segments []string
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				segments = append(segments, s[start:i])
				start = i + 1
			}
		}
	}
	return append(segments, s[start:])
}

// parseSegment decodes "<kind>:[{ns}][name][[pos]]".
func parseSegment(seg string) (Record, error) {
	colon := strings.Index(seg, ":")
	if colon < 0 {
		return Record{}, errors.New(errors.ErrCodeInvalidNodeID, "segment %q lacks kind separator", seg)
	}

	rec := Record{Kind: Kind(seg[:colon])}
	rest := seg[colon+1:]

	if open := strings.LastIndex(rest, "["); open >= 0 && strings.HasSuffix(rest, "]") {
		pos, err := strconv.Atoi(rest[open+1 : len(rest)-1])
		if err != nil || pos < 0 {
			return Record{}, errors.New(errors.ErrCodeInvalidNodeID, "bad position in segment %q", seg)
		}
		rec.Position = pos
		rec.HasPosition = true
		rest = rest[:open]
	}

	if strings.HasPrefix(rest, "{") {
		end := strings.Index(rest, "}")
		if end < 0 {
			return Record{}, errors.New(errors.ErrCodeInvalidNodeID, "unterminated namespace in segment %q", seg)
		}
		rec.Namespace = rest[1:end]
		rest = rest[end+1:]
	}

	rec.Name = rest
	return rec, nil
}

// IsTopLevel reports whether id consists of exactly one segment.
func IsTopLevel(id string) (bool, error) {
	rec, err := Parse(id)
	if err != nil {
		return false, err
	}
	return len(rec.Segments) == 1, nil
}

// ParentOf returns the id with its last segment removed, or empty for a
// top-level id.
func ParentOf(id string) (string, error) {
	rec, err := Parse(id)
	if err != nil {
		return "", err
	}
	return rec.ParentID, nil
}

// KindOf returns the kind of the node the id addresses.
func KindOf(id string) (Kind, error) {
	rec, err := Parse(id)
	if err != nil {
		return "", err
	}
	return rec.Kind, nil
}

// NameOf returns the local name of the node the id addresses, with any
// namespace stripped. Empty for anonymous nodes.
func NameOf(id string) (string, error) {
	rec, err := Parse(id)
	if err != nil {
		return "", err
	}
	return rec.Name, nil
}

// String renders a record for debugging.
func (r Record) String() string {
	return fmt.Sprintf("kind=%s name=%q ns=%q pos=%d parent=%q", r.Kind, r.Name, r.Namespace, r.Position, r.ParentID)
}
