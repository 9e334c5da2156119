// Package snode wraps the tree-sitter node API behind the small closed
// surface the rest of the engine needs: kind tag, named children, named
// fields, parent, byte/line range, and textual slice. Keeping this wrapper
// thin (rather than introducing a parallel node hierarchy) is deliberate —
// see the "polymorphism across node kinds" design note.
package snode

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node is an opaque handle onto one tree-sitter node plus the source bytes
// needed to render its text. The zero Node (N == nil) represents "no node"
// and every accessor on it degrades gracefully instead of panicking, so
// callers can chain ChildByFieldName without nil-checking at each step.
type Node struct {
	N   *sitter.Node
	Src []byte
}

// Range is a byte-offset + line/column span, independent of the parser.
type Range struct {
	StartByte, EndByte     uint32
	StartRow, StartCol     uint32
	EndRow, EndCol         uint32
}

func Wrap(n *sitter.Node, src []byte) Node {
	if n == nil {
		return Node{}
	}
	return Node{N: n, Src: src}
}

func (n Node) IsZero() bool { return n.N == nil }

// Kind returns the node's grammar tag, e.g. "identifier", "for_statement".
func (n Node) Kind() string {
	if n.IsZero() {
		return ""
	}
	return n.N.Type()
}

func (n Node) Is(kinds ...string) bool {
	k := n.Kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// Field returns the named field child (e.g. "condition", "body"), or the
// zero Node if absent.
func (n Node) Field(name string) Node {
	if n.IsZero() {
		return Node{}
	}
	return Wrap(n.N.ChildByFieldName(name), n.Src)
}

func (n Node) Parent() Node {
	if n.IsZero() {
		return Node{}
	}
	return Wrap(n.N.Parent(), n.Src)
}

// Child returns the i'th child, including anonymous (punctuation) children.
func (n Node) Child(i int) Node {
	if n.IsZero() || i < 0 || i >= int(n.N.ChildCount()) {
		return Node{}
	}
	return Wrap(n.N.Child(i), n.Src)
}

func (n Node) ChildCount() int {
	if n.IsZero() {
		return 0
	}
	return int(n.N.ChildCount())
}

// NamedChild returns the i'th named (non-punctuation) child.
func (n Node) NamedChild(i int) Node {
	if n.IsZero() || i < 0 || i >= int(n.N.NamedChildCount()) {
		return Node{}
	}
	return Wrap(n.N.NamedChild(i), n.Src)
}

func (n Node) NamedChildCount() int {
	if n.IsZero() {
		return 0
	}
	return int(n.N.NamedChildCount())
}

// Children returns all named children in order.
func (n Node) Children() []Node {
	if n.IsZero() {
		return nil
	}
	out := make([]Node, 0, n.NamedChildCount())
	for i := 0; i < n.NamedChildCount(); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// Text returns the raw source slice this node spans.
func (n Node) Text() string {
	if n.IsZero() {
		return ""
	}
	return string(n.Src[n.N.StartByte():n.N.EndByte()])
}

func (n Node) Range() Range {
	if n.IsZero() {
		return Range{}
	}
	sp, ep := n.N.StartPoint(), n.N.EndPoint()
	return Range{
		StartByte: n.N.StartByte(), EndByte: n.N.EndByte(),
		StartRow: sp.Row, StartCol: sp.Column,
		EndRow: ep.Row, EndCol: ep.Column,
	}
}

func (n Node) StartByte() uint32 {
	if n.IsZero() {
		return 0
	}
	return n.N.StartByte()
}

func (n Node) EndByte() uint32 {
	if n.IsZero() {
		return 0
	}
	return n.N.EndByte()
}

// HasError reports whether this node or any descendant is a parser ERROR
// node or a MISSING node. Rules consult this to tolerate parse failures
// rather than crashing on an incomplete tree.
func (n Node) HasError() bool {
	if n.IsZero() {
		return false
	}
	return n.N.HasError()
}

// Equal compares identity, not content: two Nodes are equal iff they wrap
// the same *sitter.Node pointer, or are both zero. Used for arena/dedup
// lookups keyed off a node.
func (n Node) Equal(other Node) bool {
	if n.IsZero() || other.IsZero() {
		return n.IsZero() == other.IsZero()
	}
	return n.N == other.N
}

// Key is a comparable identity for n, suitable as a map key (Node itself
// embeds a byte slice and so is not comparable). Two Keys are equal iff
// Equal would report true for the Nodes they came from.
type Key = *sitter.Node

// Key returns n's map-key identity, or nil for the zero Node.
func (n Node) Key() Key { return n.N }

// StaticPropertyName returns the statically-known name of a property key
// node (used for object literal keys, member-expression properties, and
// class members): plain identifiers and property_identifiers return their
// text; string literals return their text with the enclosing quotes removed
// (escape sequences are not decoded); number literals return their source
// text; everything else, including every computed key, returns "", false.
func (n Node) StaticPropertyName() (string, bool) {
	if n.IsZero() {
		return "", false
	}
	switch n.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier":
		return n.Text(), true
	case "string":
		return stripQuotes(n.Text()), true
	case "number":
		return n.Text(), true
	}
	return "", false
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Comment wraps one "comment" node. Comment nodes are also named children
// of whichever node encloses them; Comments gathers them into one stream.
type Comment struct {
	Node
}

// Comments walks the full tree (including anonymous children) collecting
// every "comment" kind node, in source order. A comment can sit at any
// depth of the tree, so the walk visits every node.
func Comments(root Node, src []byte) []Comment {
	var out []Comment
	var walk func(n Node)
	walk = func(n Node) {
		if n.IsZero() {
			return
		}
		if n.Kind() == "comment" {
			out = append(out, Comment{n})
			return
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}
