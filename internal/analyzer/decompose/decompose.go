// Package decompose splits a Java class into groups of fields and methods
// that use each other. Each group is returned as a standalone class AST
// holding only its own members, so the usual detectors and collectors can
// run on it unchanged.
//
// The usage graph has one vertex per field name and one per method name
// (overloads share a vertex). A method has an edge to every field it reads
// or writes and to every method of the same class it calls. Strong
// decomposition groups the strongly connected components of that graph;
// weak decomposition ignores edge direction.
package decompose

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"javacheck/internal/ast"
)

// Strength selects how the usage graph is split.
type Strength int

const (
	Strong Strength = iota
	Weak
)

func (s Strength) String() string {
	if s == Weak {
		return "weak"
	}
	return "strong"
}

// ParseStrength accepts "strong" or "weak".
func ParseStrength(s string) (Strength, error) {
	switch strings.ToLower(s) {
	case "strong":
		return Strong, nil
	case "weak":
		return Weak, nil
	}
	return Strong, fmt.Errorf("unknown decomposition strength %q", s)
}

// Options controls a decomposition.
type Options struct {
	Strength Strength
	// IgnoreGetters drops getX methods before the graph is built.
	IgnoreGetters bool
	// IgnoreSetters drops setX methods before the graph is built.
	IgnoreSetters bool
}

type memberKind int

const (
	fieldMember memberKind = iota
	methodMember
)

type member struct {
	kind memberKind
	name string
}

// usage is the class's members and the edges between them. Member index i
// is vertex i of the graph.
type usage struct {
	members []member
	index   map[member]int
	decls   map[ast.NodeID][]int // body declaration to the vertices it declares
	edges   [][2]int
}

func (u *usage) vertex(m member) int {
	if i, ok := u.index[m]; ok {
		return i
	}
	i := len(u.members)
	u.members = append(u.members, m)
	u.index[m] = i
	return i
}

// Class decomposes the class at the root of class. The components come back
// ordered by the first member each one contains. A class without fields or
// methods yields no components.
func Class(class *ast.AST, opts Options) ([]*ast.AST, error) {
	root := class.Root()
	if t := class.Type(root); t != ast.ClassDeclaration {
		return nil, &ast.KindMismatchError{Op: "decompose class", Node: root, Want: ast.ClassDeclaration, Got: t}
	}

	u := collect(class, opts)
	components := u.components(opts.Strength)

	out := make([]*ast.AST, 0, len(components))
	for _, comp := range components {
		in := make(map[int]bool, len(comp))
		for _, v := range comp {
			in[v] = true
		}
		sub, err := class.SubtreeASTFunc(root, func(id ast.NodeID) bool {
			vs, ok := u.decls[id]
			if !ok {
				return true
			}
			return slices.ContainsFunc(vs, func(v int) bool { return in[v] })
		})
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func collect(class *ast.AST, opts Options) *usage {
	u := &usage{index: make(map[member]int), decls: make(map[ast.NodeID][]int)}
	root := class.Root()

	var methods []ast.NodeID
	for c := range class.Children(root) {
		switch class.Type(c) {
		case ast.FieldDeclaration:
			for _, name := range declaredNames(class, c) {
				u.decls[c] = append(u.decls[c], u.vertex(member{fieldMember, name}))
			}
		case ast.MethodDeclaration:
			name := declName(class, c)
			if (opts.IgnoreGetters && isAccessor(name, "get")) || (opts.IgnoreSetters && isAccessor(name, "set")) {
				// in no component
				u.decls[c] = nil
				continue
			}
			u.decls[c] = []int{u.vertex(member{methodMember, name})}
			methods = append(methods, c)
		}
	}

	for _, m := range methods {
		from := u.decls[m][0]
		for _, used := range uses(class, m) {
			if to, ok := u.index[used]; ok {
				u.edges = append(u.edges, [2]int{from, to})
			}
		}
	}
	return u
}

func (u *usage) components(s Strength) [][]int {
	g := simple.NewDirectedGraph()
	for i := range u.members {
		g.AddNode(simple.Node(i))
	}
	for _, e := range u.edges {
		// simple graphs reject self loops; a recursive call adds nothing
		// to connectivity anyway.
		if e[0] != e[1] {
			g.SetEdge(g.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
		}
	}

	var found [][]graph.Node
	if s == Weak {
		found = topo.ConnectedComponents(graph.Undirect{G: g})
	} else {
		found = topo.TarjanSCC(g)
	}

	out := make([][]int, 0, len(found))
	for _, nodes := range found {
		comp := make([]int, len(nodes))
		for i, n := range nodes {
			comp[i] = int(n.ID())
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	slices.SortFunc(out, func(a, b []int) int { return cmp.Compare(a[0], b[0]) })
	return out
}

// MemberNames lists the field and method names declared directly in a class
// AST, in declaration order.
func MemberNames(class *ast.AST) (fields, methods []string) {
	root := class.Root()
	for c := range class.Children(root) {
		switch class.Type(c) {
		case ast.FieldDeclaration:
			fields = append(fields, declaredNames(class, c)...)
		case ast.MethodDeclaration:
			methods = append(methods, declName(class, c))
		}
	}
	return fields, methods
}

// isAccessor matches prefix followed by an upper-case letter, so getWidth
// counts and getaway does not.
func isAccessor(name, prefix string) bool {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok || rest == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(r) || r == '_'
}
