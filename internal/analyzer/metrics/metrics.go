// Package metrics computes whole-file numbers over a built Java AST. They
// are reported next to the pattern issues. A collector fails only when the
// tree does not have the shape it decodes, which skips the file the same
// way a detector error does.
package metrics

import (
	"javacheck/internal/analyzer/decompose"
	"javacheck/internal/analyzer/detectors"
	"javacheck/internal/ast"
)

// Collector computes one metric for a file.
type Collector interface {
	Name() string
	Collect(tree *ast.AST) (float64, error)
}

// Default returns every collector in report order.
func Default() []Collector {
	return []Collector{
		NCSS{},
		NodeCount{},
		CyclomaticComplexity{},
		MaxNesting{},
		LCOM4{},
	}
}

// NCSS counts non-commenting source statements: statements plus type,
// field, method and constructor declarations, the way JavaNCSS does.
type NCSS struct{}

func (NCSS) Name() string { return "ncss" }

var ncssTypes = []ast.NodeType{
	ast.ClassDeclaration, ast.InterfaceDeclaration, ast.EnumDeclaration,
	ast.AnnotationDeclaration, ast.FieldDeclaration, ast.ConstantDeclaration,
	ast.MethodDeclaration, ast.ConstructorDeclaration, ast.PackageDeclaration,
	ast.Import, ast.LocalVariableDeclaration, ast.StatementExpression,
	ast.ReturnStatement, ast.IfStatement, ast.ForStatement, ast.WhileStatement,
	ast.DoStatement, ast.SwitchStatement, ast.SwitchStatementCase,
	ast.TryStatement, ast.CatchClause, ast.ThrowStatement, ast.BreakStatement,
	ast.ContinueStatement, ast.SynchronizedStatement, ast.AssertStatement,
}

func (NCSS) Collect(tree *ast.AST) (float64, error) {
	counted := make(map[ast.NodeType]bool, len(ncssTypes))
	for _, t := range ncssTypes {
		counted[t] = true
	}
	n := 0
	for _, t := range tree.NodeTypes() {
		if counted[t] {
			n++
		}
	}
	return float64(n), nil
}

// NodeCount is the size of the graph, synthetic nodes included.
type NodeCount struct{}

func (NodeCount) Name() string { return "node_count" }

func (NodeCount) Collect(tree *ast.AST) (float64, error) {
	return float64(len(tree.NodeTypes())), nil
}

// CyclomaticComplexity sums the complexity of every method and constructor.
type CyclomaticComplexity struct{}

func (CyclomaticComplexity) Name() string { return "cyclomatic_complexity" }

func (CyclomaticComplexity) Collect(tree *ast.AST) (float64, error) {
	total := 0
	for _, t := range []ast.NodeType{ast.MethodDeclaration, ast.ConstructorDeclaration} {
		for id := range tree.NodesByType(t) {
			c, err := detectors.CyclomaticComplexity(tree, id)
			if err != nil {
				return 0, err
			}
			total += c
		}
	}
	return float64(total), nil
}

// MaxNesting is the deepest nesting of control statements in the file.
type MaxNesting struct{}

func (MaxNesting) Name() string { return "max_nesting" }

func (MaxNesting) Collect(tree *ast.AST) (float64, error) {
	return float64(nesting(tree, tree.Root())), nil
}

func nesting(tree *ast.AST, id ast.NodeID) int {
	deepest := 0
	elseIf := elseIfBranch(tree, id)
	for c := range tree.Children(id) {
		d := nesting(tree, c)
		if c == elseIf {
			d-- // else if stays on the same level
		}
		deepest = max(deepest, d)
	}
	switch tree.Type(id) {
	case ast.IfStatement, ast.ForStatement, ast.WhileStatement, ast.DoStatement,
		ast.SwitchStatement, ast.TryStatement, ast.SynchronizedStatement:
		return deepest + 1
	}
	return deepest
}

// elseIfBranch returns the else statement of an if when it is itself an
// if, or NoNode. The children of an if are an optional label STRING, then
// condition, then statement and else statement.
func elseIfBranch(tree *ast.AST, id ast.NodeID) ast.NodeID {
	if tree.Type(id) != ast.IfStatement {
		return ast.NoNode
	}
	var slots []ast.NodeID
	for c := range tree.Children(id) {
		if tree.Type(c) != ast.String {
			slots = append(slots, c)
		}
	}
	if len(slots) == 3 && tree.Type(slots[2]) == ast.IfStatement {
		return slots[2]
	}
	return ast.NoNode
}

// LCOM4 is the lack of cohesion of the least cohesive class in the file:
// the number of weakly connected groups its fields and methods split into.
// A cohesive class scores 1.
type LCOM4 struct{}

func (LCOM4) Name() string { return "lcom4" }

func (LCOM4) Collect(tree *ast.AST) (float64, error) {
	worst := 0
	for id := range tree.NodesByType(ast.ClassDeclaration) {
		class, err := tree.SubtreeAST(id)
		if err != nil {
			return 0, err
		}
		components, err := decompose.Class(class, decompose.Options{Strength: decompose.Weak})
		if err != nil {
			return 0, err
		}
		worst = max(worst, len(components))
	}
	return float64(worst), nil
}
