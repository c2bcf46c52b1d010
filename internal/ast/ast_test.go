package ast

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javacheck/internal/javatree"
)

func TestAST_EndToEnd(t *testing.T) {
	tree := buildSource(t, `class C { int getX(){ return x; } }`)

	classes := slices.Collect(tree.SubtreesWithRootType(ClassDeclaration))
	require.Len(t, classes, 1)
	assert.Equal(t, ClassDeclaration, tree.Type(classes[0][0]))

	methods := slices.Collect(tree.NodesByType(MethodDeclaration))
	require.Len(t, methods, 1)
	assert.Len(t, slices.Collect(tree.NodesByType(ReturnStatement)), 1)

	assert.Equal(t, 1, tree.LineNumberFromChildren(methods[0]))
}

func TestAST_LineNumberFromChildren(t *testing.T) {
	tree := buildSource(t, `class C {
    int getX() {
        return x;
    }
}`)

	method := slices.Collect(tree.NodesByType(MethodDeclaration))[0]
	assert.Equal(t, 2, tree.LineNumberFromChildren(method))

	// Only immediate children are consulted: a COLLECTION has STRING
	// children without lines.
	coll := slices.Collect(tree.NodesByType(Collection))[0]
	assert.Equal(t, 0, tree.LineNumberFromChildren(coll))
}

func TestAST_ChildrenWithType(t *testing.T) {
	tree := buildSource(t, `class C { int a; int b; void m() {} }`)
	class := slices.Collect(tree.NodesByType(ClassDeclaration))[0]

	fields := slices.Collect(tree.ChildrenWithType(class, FieldDeclaration))
	assert.Len(t, fields, 2)
	assert.Less(t, fields[0], fields[1])

	assert.Empty(t, slices.Collect(tree.ChildrenWithType(class, WhileStatement)))

	// Stops when the consumer does.
	count := 0
	for range tree.ChildrenWithType(class, FieldDeclaration) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestAST_FirstNChildrenWithType(t *testing.T) {
	tree := buildSource(t, `class C { int a; int b; }`)
	class := slices.Collect(tree.NodesByType(ClassDeclaration))[0]
	fields := slices.Collect(tree.ChildrenWithType(class, FieldDeclaration))

	got := tree.FirstNChildrenWithType(class, FieldDeclaration, 4)
	assert.Equal(t, []NodeID{fields[0], fields[1], NoNode, NoNode}, got)

	assert.Equal(t, []NodeID{fields[0]}, tree.FirstNChildrenWithType(class, FieldDeclaration, 1))
	assert.Equal(t, []NodeID{NoNode, NoNode}, tree.FirstNChildrenWithType(class, IfStatement, 2))
	assert.Empty(t, tree.FirstNChildrenWithType(class, FieldDeclaration, 0))
}

func TestAST_NodeTypes(t *testing.T) {
	tree := buildSource(t, `class C { void m() { for (;;) { a(); } } }`)

	first := tree.NodeTypes()
	assert.Len(t, first, tree.Len())
	assert.Equal(t, CompilationUnit, first[0])

	second := tree.NodeTypes()
	assert.Equal(t, first, second)
	assert.Same(t, &first[0], &second[0])
}

func TestAST_NodeTypesConcurrentFirstAccess(t *testing.T) {
	tree := buildSource(t, `class C { void m() { while (true) { b(); } } }`)

	const readers = 16
	results := make([][]NodeType, readers)
	var wg sync.WaitGroup
	for i := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = tree.NodeTypes()
		}()
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, &results[0][0], &r[0])
	}
}

func TestAST_SubtreesWithRootType(t *testing.T) {
	tree := buildSource(t, `class A {
    class B {
        class D {}
    }
    void m() { class L {} }
}
class E {}
`)

	subtrees := slices.Collect(tree.SubtreesWithRootType(ClassDeclaration))
	require.Len(t, subtrees, 2)

	all := slices.Collect(tree.NodesByType(ClassDeclaration))
	require.Len(t, all, 5)

	// The outer class absorbs every nested class.
	for _, nested := range all[1:4] {
		assert.Contains(t, subtrees[0], nested)
	}
	assert.Equal(t, all[4], subtrees[1][0])

	// No root is inside another result.
	for i, s := range subtrees {
		for j, other := range subtrees {
			if i != j {
				assert.NotContains(t, other, s[0])
			}
		}
	}

	// Each result is its root's full preorder subtree.
	for _, s := range subtrees {
		assert.Equal(t, slices.Collect(tree.Subtree(s[0])), s)
	}

	assert.Empty(t, slices.Collect(tree.SubtreesWithRootType(WhileStatement)))
}

func TestAST_SubtreesStopEarly(t *testing.T) {
	tree := buildSource(t, `class A {} class B {} class C {}`)
	n := 0
	for range tree.SubtreesWithRootType(ClassDeclaration) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestAST_Inspect(t *testing.T) {
	tree := buildSource(t, `class A { void m() { while (x) { y(); } } void n() { z(); } }`)

	var all []NodeID
	tree.Inspect(tree.Root(), func(id NodeID) bool {
		all = append(all, id)
		return true
	})
	assert.Equal(t, slices.Collect(tree.Preorder()), all)

	// Pruning the loop hides its body but keeps visiting siblings.
	var calls int
	tree.Inspect(tree.Root(), func(id NodeID) bool {
		if tree.Type(id) == WhileStatement {
			return false
		}
		if tree.Type(id) == MethodInvocation {
			calls++
		}
		return true
	})
	assert.Equal(t, 1, calls)
}

func TestAST_Attr(t *testing.T) {
	tree := buildSource(t, `class C {}`)
	assert.Equal(t, "fallback", tree.Attr(tree.Root(), "missing", "fallback"))
	assert.Nil(t, tree.Attr(tree.Root(), AttrSourceLine, nil))
	assert.Equal(t, "", tree.Text(tree.Root()))
}

// single builds a tree holding one node of kind with the given STRING
// children and returns the AST and that node.
func single(t *testing.T, kind javatree.Kind, values ...string) (*AST, NodeID) {
	t.Helper()
	attrs := make([]javatree.Attr, 0, len(values))
	for i, v := range values {
		attrs = append(attrs, javatree.Attr{Name: string(rune('a' + i)), Value: v})
	}
	root := unit(javatree.Attr{Name: "types", Value: []any{javatree.New(kind, at(1), attrs...)}})
	tree, err := Build(root)
	require.NoError(t, err)
	return tree, 2
}

func TestAST_MethodInvocationParams(t *testing.T) {
	tree, id := single(t, javatree.KindMethodInvocation, "foo")
	got, err := tree.MethodInvocationParams(id)
	require.NoError(t, err)
	assert.Equal(t, MethodInvocationParams{ObjectName: "", MethodName: "foo"}, got)

	tree, id = single(t, javatree.KindMethodInvocation, "obj", "foo")
	got, err = tree.MethodInvocationParams(id)
	require.NoError(t, err)
	assert.Equal(t, MethodInvocationParams{ObjectName: "obj", MethodName: "foo"}, got)

	tree, id = single(t, javatree.KindMethodInvocation, "!", "obj", "foo")
	_, err = tree.MethodInvocationParams(id)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, []string{"!", "obj", "foo"}, de.Values)
	assert.ErrorIs(t, err, ErrDecode)

	tree, id = single(t, javatree.KindMemberReference, "x")
	_, err = tree.MethodInvocationParams(id)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestAST_MethodInvocationParamsFromSource(t *testing.T) {
	tree := buildSource(t, `class C { void m() { foo(); obj.bar(); } }`)
	var got []MethodInvocationParams
	for id := range tree.NodesByType(MethodInvocation) {
		p, err := tree.MethodInvocationParams(id)
		require.NoError(t, err)
		got = append(got, p)
	}
	assert.Equal(t, []MethodInvocationParams{
		{ObjectName: "", MethodName: "foo"},
		{ObjectName: "obj", MethodName: "bar"},
	}, got)
}

func TestAST_MemberReferenceParams(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   MemberReferenceParams
	}{
		{"member only", []string{"x"}, MemberReferenceParams{MemberName: "x"}},
		{"qualified", []string{"a", "x"}, MemberReferenceParams{ObjectName: "a", MemberName: "x"}},
		{"unary shifts fields", []string{"!", "a", "b"}, MemberReferenceParams{ObjectName: "a", MemberName: "b", UnaryOperator: "!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, id := single(t, javatree.KindMemberReference, tt.values...)
			got, err := tree.MemberReferenceParams(id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, values := range [][]string{nil, {"-", "!", "a", "b"}} {
		tree, id := single(t, javatree.KindMemberReference, values...)
		_, err := tree.MemberReferenceParams(id)
		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, values, de.Values)
		assert.ErrorIs(t, err, ErrDecode)
	}

	tree, id := single(t, javatree.KindMethodInvocation, "foo")
	_, err := tree.MemberReferenceParams(id)
	var kme *KindMismatchError
	require.True(t, errors.As(err, &kme))
	assert.Equal(t, MethodInvocation, kme.Got)
	assert.Equal(t, MemberReference, kme.Want)
}

func TestAST_BinaryOperationName(t *testing.T) {
	tree := buildSource(t, `class C { boolean m() { return a && b; } }`)
	ops := slices.Collect(tree.NodesByType(BinaryOperation))
	require.Len(t, ops, 1)

	name, err := tree.BinaryOperationName(ops[0])
	require.NoError(t, err)
	assert.Equal(t, "&&", name)

	_, err = tree.BinaryOperationName(tree.Root())
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestAST_String(t *testing.T) {
	root := unit(javatree.Attr{Name: "types", Value: []any{
		javatree.New(javatree.KindClassDeclaration, at(1),
			javatree.Attr{Name: "modifiers", Value: javatree.NewSet("public")},
			javatree.Attr{Name: "name", Value: "C"},
		),
	}})
	tree, err := Build(root)
	require.NoError(t, err)

	want := "COMPILATION_UNIT\n" +
		"    |---CLASS_DECLARATION\n" +
		"        |---COLLECTION\n" +
		"            |---STRING: public\n" +
		"        |---STRING: C\n"
	assert.Equal(t, want, tree.String())
}

func TestAST_MarshalJSON(t *testing.T) {
	tree := buildSource(t, `class C { int x; }`)

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var snap struct {
		Root  int `json:"root"`
		Nodes []struct {
			ID       int     `json:"id"`
			Type     string  `json:"type"`
			Line     int     `json:"line"`
			String   *string `json:"string"`
			Children []int   `json:"children"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(data, &snap))

	assert.Equal(t, 1, snap.Root)
	require.Len(t, snap.Nodes, tree.Len())
	assert.Equal(t, "COMPILATION_UNIT", snap.Nodes[0].Type)

	var names []string
	for i, n := range snap.Nodes {
		assert.Equal(t, i+1, n.ID)
		if n.Type == "STRING" {
			require.NotNil(t, n.String)
			names = append(names, *n.String)
		}
	}
	assert.Contains(t, names, "C")
	assert.Contains(t, names, "x")
}

func TestParseNodeType(t *testing.T) {
	for _, nt := range AllNodeTypes() {
		got, err := ParseNodeType(nt.String())
		require.NoError(t, err)
		assert.Equal(t, nt, got)
	}

	got, err := ParseNodeType("method_declaration")
	require.NoError(t, err)
	assert.Equal(t, MethodDeclaration, got)

	_, err = ParseNodeType("NOT_A_TYPE")
	assert.Error(t, err)
	assert.Equal(t, "NodeType(0)", NodeType(0).String())
}
