package ast

import (
	"encoding/json"
	"strings"
)

const outlineStep = 4

// String renders an indented outline of the tree, one node per line. The
// root starts at column 0; deeper nodes are indented by four spaces per level
// and prefixed with "|---". STRING nodes also show their text.
func (a *AST) String() string {
	var sb strings.Builder
	depth := 0
	a.walk(a.root, func(id NodeID, exit bool) bool {
		if exit {
			depth--
			return true
		}
		if depth > 0 {
			sb.WriteString(strings.Repeat(" ", depth*outlineStep))
			sb.WriteString("|---")
		}
		t := a.Type(id)
		sb.WriteString(t.String())
		if t == String {
			sb.WriteString(": ")
			sb.WriteString(a.Text(id))
		}
		sb.WriteByte('\n')
		depth++
		return true
	})
	return sb.String()
}

type snapshotNode struct {
	ID       NodeID   `json:"id"`
	Type     string   `json:"type"`
	Line     int      `json:"line,omitempty"`
	String   *string  `json:"string,omitempty"`
	Children []NodeID `json:"children,omitempty"`
}

type snapshot struct {
	Root  NodeID         `json:"root"`
	Nodes []snapshotNode `json:"nodes"`
}

// MarshalJSON encodes the whole store as a flat node list in ID order.
func (a *AST) MarshalJSON() ([]byte, error) {
	snap := snapshot{Root: a.root, Nodes: make([]snapshotNode, 0, a.Len())}
	for i, r := range a.graph.nodes {
		id := NodeID(i + 1)
		n := snapshotNode{ID: id, Type: r.typ.String(), Children: r.children}
		if line, ok := a.Line(id); ok {
			n.Line = line
		}
		if r.typ == String {
			text := a.Text(id)
			n.String = &text
		}
		snap.Nodes = append(snap.Nodes, n)
	}
	return json.Marshal(snap)
}
