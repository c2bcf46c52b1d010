package detectors

import (
	"cmp"
	"slices"
	"strings"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

var defaults = config.DefaultConfig()

func configOrDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return defaults
	}
	return cfg
}

func isLoop(t ast.NodeType) bool {
	return t == ast.ForStatement || t == ast.WhileStatement || t == ast.DoStatement
}

func isStatement(t ast.NodeType) bool {
	switch t {
	case ast.BlockStatement, ast.StatementExpression, ast.ReturnStatement,
		ast.IfStatement, ast.ForStatement, ast.WhileStatement, ast.DoStatement,
		ast.TryStatement, ast.ThrowStatement, ast.SwitchStatement,
		ast.SynchronizedStatement, ast.BreakStatement, ast.ContinueStatement,
		ast.AssertStatement, ast.LocalVariableDeclaration, ast.Statement,
		ast.ClassDeclaration, ast.InterfaceDeclaration, ast.EnumDeclaration:
		return true
	}
	return false
}

// callables returns every method and constructor declaration in preorder.
func callables(tree *ast.AST) []ast.NodeID {
	ids := slices.Collect(tree.NodesByType(ast.MethodDeclaration))
	ids = append(ids, slices.Collect(tree.NodesByType(ast.ConstructorDeclaration))...)
	slices.Sort(ids)
	return ids
}

// outermostCallables returns the methods and constructors that are not
// nested inside another one. Methods of local and anonymous classes belong
// to the enclosing declaration, so loops around them still count.
func outermostCallables(tree *ast.AST) []ast.NodeID {
	inner := make(map[ast.NodeID]bool)
	var roots []ast.NodeID
	for _, t := range []ast.NodeType{ast.MethodDeclaration, ast.ConstructorDeclaration} {
		for subtree := range tree.SubtreesWithRootType(t) {
			roots = append(roots, subtree[0])
			for _, id := range subtree[1:] {
				inner[id] = true
			}
		}
	}
	roots = slices.DeleteFunc(roots, func(id ast.NodeID) bool { return inner[id] })
	slices.Sort(roots)
	return roots
}

func sortIssues(issues []models.Issue) {
	slices.SortStableFunc(issues, func(a, b models.Issue) int {
		return cmp.Compare(a.Line, b.Line)
	})
}

// texts returns the text of every STRING child of id.
func texts(tree *ast.AST, id ast.NodeID) []string {
	var out []string
	for c := range tree.ChildrenWithType(id, ast.String) {
		out = append(out, tree.Text(c))
	}
	return out
}

// nodes returns the children of id that are neither STRING nor COLLECTION.
func nodes(tree *ast.AST, id ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	for c := range tree.Children(id) {
		if t := tree.Type(c); t != ast.String && t != ast.Collection {
			out = append(out, c)
		}
	}
	return out
}

// declName returns the name of a declaration: its first STRING child that
// is not a javadoc comment.
func declName(tree *ast.AST, id ast.NodeID) string {
	for _, s := range texts(tree, id) {
		if !strings.HasPrefix(s, "/**") {
			return s
		}
	}
	return ""
}

func statements(tree *ast.AST, id ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	for c := range tree.Children(id) {
		if isStatement(tree.Type(c)) {
			out = append(out, c)
		}
	}
	return out
}

func parameters(tree *ast.AST, id ast.NodeID) []ast.NodeID {
	return slices.Collect(tree.ChildrenWithType(id, ast.FormalParameter))
}

// line returns the source line of id, falling back to its immediate
// children for operator nodes that carry no position of their own.
func line(tree *ast.AST, id ast.NodeID) int {
	if l, ok := tree.Line(id); ok {
		return l
	}
	return tree.LineNumberFromChildren(id)
}

// fieldName resolves `x` and `this.x` to the referenced name. Anything
// else (qualified names, array access, operators) is not a plain field.
func fieldName(tree *ast.AST, id ast.NodeID) (string, bool, error) {
	switch tree.Type(id) {
	case ast.MemberReference:
		// Stacked operators (`- -x`, `-x++`) push the STRING count past
		// what a member reference decodes; such a value is no plain field.
		if n := len(texts(tree, id)); n == 0 || n > 3 || len(nodes(tree, id)) > 0 {
			return "", false, nil
		}
		ref, err := tree.MemberReferenceParams(id)
		if err != nil {
			return "", false, err
		}
		if ref.UnaryOperator != "" || ref.ObjectName != "" {
			return "", false, nil
		}
		return ref.MemberName, true, nil

	case ast.This:
		if len(texts(tree, id)) > 0 {
			return "", false, nil
		}
		selectors := nodes(tree, id)
		if len(selectors) != 1 || tree.Type(selectors[0]) != ast.MemberReference {
			return "", false, nil
		}
		return fieldName(tree, selectors[0])
	}
	return "", false, nil
}

// referenceTypeName returns the simple name of a declared type, or "" for
// primitives and missing types.
func referenceTypeName(tree *ast.AST, decl ast.NodeID) string {
	for t := range tree.ChildrenWithType(decl, ast.ReferenceType) {
		if names := texts(tree, t); len(names) > 0 {
			return names[0]
		}
	}
	return ""
}

// declaredNames returns the variable names introduced by a declaration
// node (field, local, for-init) or a formal parameter.
func declaredNames(tree *ast.AST, decl ast.NodeID) []string {
	if tree.Type(decl) == ast.FormalParameter {
		return texts(tree, decl)
	}
	var names []string
	for d := range tree.ChildrenWithType(decl, ast.VariableDeclarator) {
		if n := texts(tree, d); len(n) > 0 {
			names = append(names, n[0])
		}
	}
	return names
}
