package ast

// NodeID addresses a node inside one AST. IDs start at 1 and are assigned in
// construction order; they mean nothing across AST instances.
type NodeID int

// NoNode is the "missing" marker used to pad fixed-arity results.
const NoNode NodeID = 0

// Well-known attribute keys.
const (
	AttrString     = "string"
	AttrSourceLine = "source_code_line"
)

type record struct {
	typ      NodeType
	attrs    map[string]any
	children []NodeID
}

// Graph is an arena of node records indexed by NodeID-1. Records refer to
// each other only through IDs.
type Graph struct {
	nodes []record
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) add(t NodeType) NodeID {
	g.nodes = append(g.nodes, record{typ: t})
	return NodeID(len(g.nodes))
}

func (g *Graph) setAttr(id NodeID, key string, value any) {
	r := g.record(id)
	if r.attrs == nil {
		r.attrs = make(map[string]any, 1)
	}
	r.attrs[key] = value
}

func (g *Graph) addEdge(parent, child NodeID) {
	r := g.record(parent)
	r.children = append(r.children, child)
}

// record panics on an ID that was not produced by this graph, the same way an
// out-of-range slice index does.
func (g *Graph) record(id NodeID) *record {
	return &g.nodes[id-1]
}
