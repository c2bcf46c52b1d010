// Package javatree holds the parsed form of a Java source file and the
// tree-sitter frontend that produces it.
//
// A Node exposes its children as an ordered list of loosely typed values, in
// the same layout a reflective Java parser would: nested nodes, nil for absent
// optional parts, plain strings for identifiers and operators, Set for
// unordered keyword sets such as modifiers, and nested slices for lists.
package javatree

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// Attr is one named child slot of a Node.
type Attr struct {
	Name  string
	Value any
}

// Set is an unordered collection of text values (e.g. modifiers). Elements
// are expected to be strings; nil elements are ignored by consumers.
type Set []any

// NewSet builds a Set from strings.
func NewSet(values ...string) Set {
	set := make(Set, 0, len(values))
	for _, v := range values {
		set = append(set, v)
	}
	return set
}

// Node is a parsed Java syntax node.
type Node struct {
	Kind     Kind
	Position *Position
	Attrs    []Attr
}

// New creates a node of the given kind with attribute slots in order.
func New(kind Kind, pos *Position, attrs ...Attr) *Node {
	return &Node{Kind: kind, Position: pos, Attrs: attrs}
}

// Children returns the attribute values in slot order.
func (n *Node) Children() []any {
	children := make([]any, len(n.Attrs))
	for i, a := range n.Attrs {
		children[i] = a.Value
	}
	return children
}

// Attr returns the value of the named slot, or nil.
func (n *Node) Attr(name string) any {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return nil
}

// Has reports whether the node declares the named slot.
func (n *Node) Has(name string) bool {
	for _, a := range n.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Set replaces the named slot, appending it when the node has no such slot.
func (n *Node) Set(name string, value any) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Line returns the source line of the node, if the parser recorded one.
func (n *Node) Line() (int, bool) {
	if n == nil || n.Position == nil || n.Position.Line <= 0 {
		return 0, false
	}
	return n.Position.Line, true
}

// Walk visits n and every descendant node in document order. Returning false
// from visit skips the node's children.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, a := range n.Attrs {
		walkValue(a.Value, visit)
	}
}

func walkValue(v any, visit func(*Node) bool) {
	switch val := v.(type) {
	case *Node:
		Walk(val, visit)
	case []*Node:
		for _, c := range val {
			Walk(c, visit)
		}
	case []any:
		for _, c := range val {
			walkValue(c, visit)
		}
	}
}
