package ast

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoMethods = `class C {
    int x;
    int getX() { return x; }
    void reset() { x = 0; }
}`

func TestAST_SubtreeAST(t *testing.T) {
	tree := buildSource(t, twoMethods)
	method := slices.Collect(tree.NodesByType(MethodDeclaration))[1]

	sub, err := tree.SubtreeAST(method)
	require.NoError(t, err)
	assertTreeInvariants(t, sub)

	assert.Equal(t, NodeID(1), sub.Root())
	assert.Equal(t, MethodDeclaration, sub.Type(sub.Root()))
	assert.Equal(t, len(slices.Collect(tree.Subtree(method))), sub.Len())

	var want []NodeType
	for id := range tree.Subtree(method) {
		want = append(want, tree.Type(id))
	}
	assert.Equal(t, want, sub.NodeTypes())

	line, ok := sub.Line(sub.Root())
	require.True(t, ok)
	assert.Equal(t, 4, line)
	assert.Contains(t, sub.String(), "STRING: reset")

	// The source tree is left untouched.
	assert.Equal(t, CompilationUnit, tree.Type(tree.Root()))
	assert.Equal(t, NodeID(1), tree.Root())
}

func TestAST_SubtreeASTFunc(t *testing.T) {
	tree := buildSource(t, twoMethods)
	class := slices.Collect(tree.NodesByType(ClassDeclaration))[0]

	sub, err := tree.SubtreeASTFunc(class, func(id NodeID) bool {
		return tree.Type(id) != MethodDeclaration
	})
	require.NoError(t, err)
	assertTreeInvariants(t, sub)

	assert.Empty(t, slices.Collect(sub.NodesByType(MethodDeclaration)))
	assert.Empty(t, slices.Collect(sub.NodesByType(ReturnStatement)))
	assert.Len(t, slices.Collect(sub.NodesByType(FieldDeclaration)), 1)

	// The root survives even when keep rejects it.
	sub, err = tree.SubtreeASTFunc(class, func(NodeID) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, 1, sub.Len())
	assert.Equal(t, ClassDeclaration, sub.Type(sub.Root()))
}

func TestAST_SubtreeASTOfSubtree(t *testing.T) {
	tree := buildSource(t, twoMethods)
	class := slices.Collect(tree.NodesByType(ClassDeclaration))[0]

	outer, err := tree.SubtreeAST(class)
	require.NoError(t, err)
	method := slices.Collect(outer.NodesByType(MethodDeclaration))[0]

	inner, err := outer.SubtreeAST(method)
	require.NoError(t, err)
	assertTreeInvariants(t, inner)
	assert.Len(t, slices.Collect(inner.NodesByType(ReturnStatement)), 1)
}

func TestAST_SubtreeASTInvalidRoot(t *testing.T) {
	tree := buildSource(t, twoMethods)

	str := slices.Collect(tree.NodesByType(String))[0]
	_, err := tree.SubtreeAST(str)
	assert.True(t, errors.Is(err, ErrInvalidRoot))

	coll := slices.Collect(tree.NodesByType(Collection))[0]
	_, err = tree.SubtreeAST(coll)
	assert.True(t, errors.Is(err, ErrInvalidRoot))
}
