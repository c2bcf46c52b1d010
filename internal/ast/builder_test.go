package ast

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javacheck/internal/javatree"
)

func unit(children ...javatree.Attr) *javatree.Node {
	return javatree.New(javatree.KindCompilationUnit, nil, children...)
}

func at(line int) *javatree.Position {
	return &javatree.Position{Line: line, Column: 1}
}

func buildSource(t *testing.T, src string) *AST {
	t.Helper()
	p := javatree.NewParser()
	defer p.Close()

	root, err := p.Parse(context.Background(), []byte(src))
	require.NoError(t, err)

	tree, err := Build(root)
	require.NoError(t, err)
	return tree
}

func TestBuild_InvalidRoot(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrInvalidRoot)

	_, err = Build(javatree.New(javatree.KindClassDeclaration, nil))
	assert.ErrorIs(t, err, ErrInvalidRoot)
}

func TestBuild_ChildShapes(t *testing.T) {
	var absent *javatree.Node
	root := unit(
		javatree.Attr{Name: "package", Value: nil},
		javatree.Attr{Name: "typed_nil", Value: absent},
		javatree.Attr{Name: "name", Value: "Foo"},
		javatree.Attr{Name: "modifiers", Value: javatree.Set{"public", nil, "static"}},
		javatree.Attr{Name: "nested", Value: []any{"a", []any{"b", nil}}},
		javatree.Attr{Name: "flag", Value: true},
		javatree.Attr{Name: "types", Value: []*javatree.Node{
			javatree.New(javatree.KindClassDeclaration, at(3)),
		}},
		javatree.Attr{Name: "throws", Value: []string{"E"}},
	)

	tree, err := Build(root)
	require.NoError(t, err)

	assert.Equal(t, NodeID(1), tree.Root())
	assert.Equal(t, []NodeType{
		CompilationUnit,
		String,     // Foo
		Collection, // {public, static}
		String,
		String,
		String, // a
		String, // b
		ClassDeclaration,
		String, // E
	}, tree.NodeTypes())

	children := slices.Collect(tree.Children(tree.Root()))
	assert.Equal(t, []NodeID{2, 3, 6, 7, 8, 9}, children)

	assert.Equal(t, "Foo", tree.Text(2))
	assert.Equal(t, []NodeID{4, 5}, slices.Collect(tree.Children(3)))
	assert.Equal(t, "public", tree.Text(4))
	assert.Equal(t, "static", tree.Text(5))

	line, ok := tree.Line(8)
	assert.True(t, ok)
	assert.Equal(t, 3, line)

	_, ok = tree.Line(1)
	assert.False(t, ok)
}

func TestBuild_MalformedCollection(t *testing.T) {
	root := unit(javatree.Attr{Name: "modifiers", Value: javatree.Set{"public", 42}})

	_, err := Build(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)

	var mce *MalformedCollectionError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, 42, mce.Value)
}

func TestBuild_UnknownKind(t *testing.T) {
	for _, kind := range []javatree.Kind{javatree.KindInvalid, javatree.Kind(999)} {
		root := unit(javatree.Attr{Name: "types", Value: []any{javatree.New(kind, nil)}})

		_, err := Build(root)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTaxonomyMismatch)

		var uke *UnknownKindError
		require.True(t, errors.As(err, &uke))
		assert.Equal(t, kind, uke.Kind)
	}
}

func TestFromKind_CoversEveryKind(t *testing.T) {
	seen := make(map[NodeType]javatree.Kind)
	for _, k := range javatree.Kinds() {
		nt, err := FromKind(k)
		require.NoError(t, err, k.String())
		require.True(t, nt.Valid())
		assert.NotEqual(t, String, nt)
		assert.NotEqual(t, Collection, nt)

		if prev, dup := seen[nt]; dup {
			t.Fatalf("%s and %s both map to %s", prev, k, nt)
		}
		seen[nt] = k
	}
	assert.Len(t, seen, len(AllNodeTypes())-2)
}

func TestBuild_TreeInvariants(t *testing.T) {
	tree := buildSource(t, `package p;

import java.util.List;

public class A {
    private final List<String> items;

    A(List<String> items) { this.items = items; }

    /** Sum. */
    int sum(int[] xs) {
        int total = 0;
        for (int x : xs) {
            if (x > 0 && !skip(x)) { total += x; } else { continue; }
        }
        return total;
    }

    static class B { void b() { Runnable r = () -> {}; } }
}
`)
	assertTreeInvariants(t, tree)
}

// assertTreeInvariants checks that tree is a single rooted tree whose IDs
// follow preorder and whose leaves have the expected shapes.
func assertTreeInvariants(t *testing.T, tree *AST) {
	t.Helper()
	n := tree.Len()
	incoming := make([]int, n+1)
	for id := NodeID(1); int(id) <= n; id++ {
		for c := range tree.Children(id) {
			incoming[c]++
			assert.Greater(t, c, id, "child ID must follow parent ID")
		}
	}

	roots := 0
	for id := 1; id <= n; id++ {
		switch incoming[id] {
		case 0:
			roots++
			assert.Equal(t, tree.Root(), NodeID(id))
		case 1:
		default:
			t.Fatalf("node %d has %d parents", id, incoming[id])
		}
	}
	assert.Equal(t, 1, roots)

	// IDs are handed out in preorder.
	order := slices.Collect(tree.Preorder())
	require.Len(t, order, n)
	for i, id := range order {
		assert.Equal(t, NodeID(i+1), id)
	}

	for coll := range tree.NodesByType(Collection) {
		for c := range tree.Children(coll) {
			assert.Equal(t, String, tree.Type(c))
		}
	}
	for s := range tree.NodesByType(String) {
		assert.Empty(t, slices.Collect(tree.Children(s)))
	}
}
