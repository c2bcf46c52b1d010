package ast

import (
	"fmt"
	"maps"
)

// SubtreeAST copies the subtree rooted at id into a standalone AST. IDs are
// renumbered from 1 in preorder, so the copy has the same invariants as a
// tree returned by Build. The root must be a real node, not a STRING or
// COLLECTION leaf.
func (a *AST) SubtreeAST(id NodeID) (*AST, error) {
	return a.SubtreeASTFunc(id, nil)
}

// SubtreeASTFunc is SubtreeAST with pruning: a descendant for which keep
// returns false is left out together with everything below it. The root is
// always kept. A nil keep keeps every node.
func (a *AST) SubtreeASTFunc(id NodeID, keep func(NodeID) bool) (*AST, error) {
	if t := a.Type(id); t == String || t == Collection {
		return nil, fmt.Errorf("%w: subtree root %d is %s", ErrInvalidRoot, id, t)
	}

	g := &Graph{}
	renumbered := make(map[NodeID]NodeID)
	var order []NodeID
	a.Inspect(id, func(n NodeID) bool {
		if n != id && keep != nil && !keep(n) {
			return false
		}
		r := a.graph.record(n)
		copied := g.add(r.typ)
		if len(r.attrs) > 0 {
			g.record(copied).attrs = maps.Clone(r.attrs)
		}
		renumbered[n] = copied
		order = append(order, n)
		return true
	})

	for _, old := range order {
		for _, child := range a.graph.record(old).children {
			if c, ok := renumbered[child]; ok {
				g.addEdge(renumbered[old], c)
			}
		}
	}
	return newAST(g, renumbered[id]), nil
}
