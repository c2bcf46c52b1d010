// Package ast turns a parsed Java compilation unit into a compact, immutable
// graph and exposes the queries pattern detectors and metric collectors are
// written against.
//
// Nodes are addressed by NodeID. Parser children that are not nodes (text,
// keyword sets) are materialized as synthetic String and Collection leaves, so
// every traversal sees one uniform node abstraction. An AST is safe for
// concurrent readers once Build returns.
//
// Passing a NodeID that did not come from the same AST panics.
package ast

import (
	"iter"
	"sync"
)

// AST is the graph built from one source file together with its root.
type AST struct {
	graph     *Graph
	root      NodeID
	nodeTypes func() []NodeType
}

func newAST(g *Graph, root NodeID) *AST {
	a := &AST{graph: g, root: root}
	a.nodeTypes = sync.OnceValue(func() []NodeType {
		types := make([]NodeType, 0, g.Len())
		for id := range a.Preorder() {
			types = append(types, a.Type(id))
		}
		return types
	})
	return a
}

// Root returns the root node: the compilation unit for a tree returned by
// Build, or the copied node for one returned by SubtreeAST.
func (a *AST) Root() NodeID { return a.root }

// Len returns the total number of nodes.
func (a *AST) Len() int { return a.graph.Len() }

// Type returns the node type of id.
func (a *AST) Type(id NodeID) NodeType {
	return a.graph.record(id).typ
}

// Attr returns the attribute stored under key, or def when absent.
func (a *AST) Attr(id NodeID, key string, def any) any {
	if v, ok := a.graph.record(id).attrs[key]; ok {
		return v
	}
	return def
}

// Text returns the payload of a STRING node, or "" for any other node.
func (a *AST) Text(id NodeID) string {
	s, _ := a.Attr(id, AttrString, "").(string)
	return s
}

// Line returns the source line recorded for id.
func (a *AST) Line(id NodeID) (int, bool) {
	line, ok := a.Attr(id, AttrSourceLine, nil).(int)
	return line, ok
}

// Children yields the immediate children of id in document order.
func (a *AST) Children(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for _, c := range a.graph.record(id).children {
			if !yield(c) {
				return
			}
		}
	}
}

// ChildrenWithType yields the immediate children of id with type t, in
// document order.
func (a *AST) ChildrenWithType(id NodeID, t NodeType) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for _, c := range a.graph.record(id).children {
			if a.Type(c) == t && !yield(c) {
				return
			}
		}
	}
}

// FirstNChildrenWithType returns exactly n IDs: the first immediate children
// of id with type t, padded with NoNode when fewer match.
func (a *AST) FirstNChildrenWithType(id NodeID, t NodeType, n int) []NodeID {
	out := make([]NodeID, n)
	i := 0
	for c := range a.ChildrenWithType(id, t) {
		if i == n {
			break
		}
		out[i] = c
		i++
	}
	return out
}

// NodesByType yields every node of type t in storage order.
func (a *AST) NodesByType(t NodeType) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for i := range a.graph.nodes {
			if a.graph.nodes[i].typ == t && !yield(NodeID(i+1)) {
				return
			}
		}
	}
}

// NodeTypes returns the type of every node in preorder. The slice is
// computed once and shared between callers; it must not be modified.
func (a *AST) NodeTypes() []NodeType {
	return a.nodeTypes()
}

// Preorder yields every node in depth-first preorder starting at the root.
func (a *AST) Preorder() iter.Seq[NodeID] {
	return a.Subtree(a.root)
}

// Subtree yields id and all of its descendants in preorder.
func (a *AST) Subtree(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		a.walk(id, func(n NodeID, exit bool) bool {
			return exit || yield(n)
		})
	}
}

// Inspect traverses the subtree rooted at id in preorder, calling f for
// each node. The children of a node are skipped when f returns false for it.
func (a *AST) Inspect(id NodeID, f func(NodeID) bool) {
	stack := []NodeID{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f(n) {
			continue
		}
		children := a.graph.record(n).children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// walk performs an iterative depth-first traversal reporting an enter event
// and an exit event for every node. It stops as soon as visit returns false.
func (a *AST) walk(start NodeID, visit func(id NodeID, exit bool) bool) {
	type frame struct {
		id   NodeID
		next int
	}

	if !visit(start, false) {
		return
	}
	stack := []frame{{id: start}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := a.graph.record(top.id).children
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			if !visit(child, false) {
				return
			}
			stack = append(stack, frame{id: child})
			continue
		}
		id := top.id
		stack = stack[:len(stack)-1]
		if !visit(id, true) {
			return
		}
	}
}

// SubtreesWithRootType yields the node lists of the maximal subtrees whose
// root has type t. A node of type t inside an already open subtree is part of
// that subtree and does not start a new one, so results never overlap. Each
// list starts with its root and follows preorder.
func (a *AST) SubtreesWithRootType(t NodeType) iter.Seq[[]NodeID] {
	return func(yield func([]NodeID) bool) {
		var subtree []NodeID
		open := NoNode
		a.walk(a.root, func(id NodeID, exit bool) bool {
			if !exit {
				if open != NoNode {
					subtree = append(subtree, id)
				} else if a.Type(id) == t {
					subtree = []NodeID{id}
					open = id
				}
				return true
			}
			if id != open {
				return true
			}
			done := subtree
			subtree, open = nil, NoNode
			return yield(done)
		})
	}
}

// LineNumberFromChildren returns the first source line carried by an
// immediate child of id, or 0 when none has one. It does not look deeper.
func (a *AST) LineNumberFromChildren(id NodeID) int {
	for c := range a.Children(id) {
		if line, ok := a.Line(c); ok && line >= 0 {
			return line
		}
	}
	return 0
}
