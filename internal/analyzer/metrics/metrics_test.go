package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javacheck/internal/ast"
	"javacheck/internal/javatree"
)

const source = `class A {
    int x;
    A() { x = 1; }
    int m(int a) {
        if (a > 0) {
            for (;;) { break; }
        } else if (a < 0) {
            return -1;
        }
        return x;
    }
}`

func build(t *testing.T, src string) *ast.AST {
	t.Helper()
	p := javatree.NewParser()
	defer p.Close()

	root, err := p.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	tree, err := ast.Build(root)
	require.NoError(t, err)
	return tree
}

func TestCollectors(t *testing.T) {
	tree := build(t, source)

	tests := []struct {
		collector Collector
		want      float64
	}{
		{NCSS{}, 11},
		{NodeCount{}, float64(tree.Len())},
		{CyclomaticComplexity{}, 5},
		{MaxNesting{}, 2},
		{LCOM4{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.collector.Name(), func(t *testing.T) {
			got, err := tt.collector.Collect(tree)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxNesting(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"else if chain", `if (a == 1) { } else if (a == 2) { } else if (a == 3) { }`, 1},
		{"if in then branch", `if (a > 0) if (a > 1) a--;`, 2},
		{"labeled if in then branch", `if (a > 0) l: if (a > 1) a--;`, 2},
		{"else if then nested", `if (a == 1) { } else if (a == 2) { while (a > 0) a--; }`, 2},
		{"if in else block", `if (a == 1) { } else { if (a == 2) { } }`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := build(t, "class B { void m(int a) { "+tt.body+" } }")
			got, err := MaxNesting{}.Collect(tree)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLCOM4(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want float64
	}{
		{"no classes", `interface I { void m(); }`, 0},
		{"cohesive", `class C { int x; int get() { return x; } void set(int v) { x = v; } }`, 1},
		{"two groups", `class C {
    int a;
    int b;
    int readA() { return a; }
    int readB() { return b; }
}`, 2},
		{"nested class counts", `class Outer {
    int a;
    int readA() { return a; }
    static class Inner {
        int p;
        int q;
        int r;
        int readP() { return p; }
    }
}`, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LCOM4{}.Collect(build(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCyclomaticComplexity_DecodeError(t *testing.T) {
	// an operator node without its operator text cannot be decoded
	op := javatree.New(javatree.KindBinaryOperation, nil,
		javatree.Attr{Name: "operandl", Value: javatree.New(javatree.KindLiteral, nil, javatree.Attr{Name: "value", Value: "1"})},
	)
	method := javatree.New(javatree.KindMethodDeclaration, &javatree.Position{Line: 2, Column: 5},
		javatree.Attr{Name: "name", Value: "m"},
		javatree.Attr{Name: "body", Value: []any{
			javatree.New(javatree.KindReturnStatement, &javatree.Position{Line: 3, Column: 9},
				javatree.Attr{Name: "expression", Value: op}),
		}},
	)
	tree, err := ast.Build(javatree.New(javatree.KindCompilationUnit, nil,
		javatree.Attr{Name: "types", Value: []any{method}}))
	require.NoError(t, err)

	_, err = CyclomaticComplexity{}.Collect(tree)
	assert.ErrorIs(t, err, ast.ErrDecode)
}

func TestDefault(t *testing.T) {
	var names []string
	for _, c := range Default() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"ncss", "node_count", "cyclomatic_complexity", "max_nesting", "lcom4"}, names)
}
