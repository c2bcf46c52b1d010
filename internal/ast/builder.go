package ast

import (
	"fmt"

	"javacheck/internal/javatree"
)

// Build converts a parsed compilation unit into an immutable AST.
//
// Child values are handled by shape: nil contributes nothing, nested slices
// are flattened in place, text becomes a STRING leaf, a javatree.Set becomes
// a COLLECTION of STRING leaves and nodes recurse. Other primitives (flags)
// are dropped. Failures are file-scoped: the caller skips the file.
func Build(root *javatree.Node) (*AST, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrInvalidRoot)
	}
	if root.Kind != javatree.KindCompilationUnit {
		return nil, fmt.Errorf("%w: root is %s, want CompilationUnit", ErrInvalidRoot, root.Kind)
	}

	b := &builder{graph: &Graph{}}
	id, err := b.node(root)
	if err != nil {
		return nil, err
	}
	return newAST(b.graph, id), nil
}

type builder struct {
	graph *Graph
}

func (b *builder) node(n *javatree.Node) (NodeID, error) {
	t, err := FromKind(n.Kind)
	if err != nil {
		return NoNode, err
	}

	id := b.graph.add(t)
	if line, ok := n.Line(); ok {
		b.graph.setAttr(id, AttrSourceLine, line)
	}

	for _, child := range n.Children() {
		if err := b.child(id, child); err != nil {
			return NoNode, err
		}
	}
	return id, nil
}

func (b *builder) child(parent NodeID, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case *javatree.Node:
		if v == nil {
			return nil
		}
		id, err := b.node(v)
		if err != nil {
			return err
		}
		b.graph.addEdge(parent, id)
	case string:
		b.graph.addEdge(parent, b.text(v))
	case javatree.Set:
		id, err := b.collection(v)
		if err != nil {
			return err
		}
		b.graph.addEdge(parent, id)
	case []any:
		for _, item := range v {
			if err := b.child(parent, item); err != nil {
				return err
			}
		}
	case []*javatree.Node:
		for _, item := range v {
			if err := b.child(parent, item); err != nil {
				return err
			}
		}
	case []string:
		for _, item := range v {
			b.graph.addEdge(parent, b.text(item))
		}
	}
	return nil
}

func (b *builder) text(s string) NodeID {
	id := b.graph.add(String)
	b.graph.setAttr(id, AttrString, s)
	return id
}

func (b *builder) collection(set javatree.Set) (NodeID, error) {
	id := b.graph.add(Collection)
	for _, item := range set {
		switch v := item.(type) {
		case nil:
		case string:
			b.graph.addEdge(id, b.text(v))
		default:
			return NoNode, &MalformedCollectionError{Value: v}
		}
	}
	return id, nil
}
