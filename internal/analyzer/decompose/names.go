package decompose

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"javacheck/internal/ast"
)

func texts(tree *ast.AST, id ast.NodeID) []string {
	var out []string
	for c := range tree.ChildrenWithType(id, ast.String) {
		out = append(out, tree.Text(c))
	}
	return out
}

func nodes(tree *ast.AST, id ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	for c := range tree.Children(id) {
		if t := tree.Type(c); t != ast.String && t != ast.Collection {
			out = append(out, c)
		}
	}
	return out
}

// declName is the first STRING child that is not a javadoc comment.
func declName(tree *ast.AST, id ast.NodeID) string {
	for _, s := range texts(tree, id) {
		if !strings.HasPrefix(s, "/**") {
			return s
		}
	}
	return ""
}

func declaredNames(tree *ast.AST, decl ast.NodeID) []string {
	var names []string
	for d := range tree.ChildrenWithType(decl, ast.VariableDeclarator) {
		if n := texts(tree, d); len(n) > 0 {
			names = append(names, n[0])
		}
	}
	return names
}

// locals collects every name a method declares for itself: parameters,
// local variables, lambda and catch parameters. Scoping is not tracked, so
// a name declared anywhere in the method hides the field of the same name
// everywhere in it.
func locals(tree *ast.AST, method ast.NodeID) map[string]bool {
	out := make(map[string]bool)
	for id := range tree.Subtree(method) {
		switch tree.Type(id) {
		case ast.VariableDeclarator, ast.FormalParameter, ast.InferredFormalParameter:
			if s := texts(tree, id); len(s) > 0 {
				out[s[0]] = true
			}
		case ast.CatchClauseParameter:
			// exception types come first
			if s := texts(tree, id); len(s) > 0 {
				out[s[len(s)-1]] = true
			}
		}
	}
	return out
}

func isOperator(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && !unicode.IsLetter(r) && r != '_' && r != '$'
}

// uses lists the members of the enclosing class that method refers to.
// Member references and calls carry their operators, then the qualifier,
// then the member name as STRING children. An empty qualifier means an
// unqualified name; a selector after `this` has no qualifier at all.
func uses(tree *ast.AST, method ast.NodeID) []member {
	hidden := locals(tree, method)
	var out []member

	qualified := func(q string) {
		first, _, _ := strings.Cut(q, ".")
		if !hidden[first] {
			out = append(out, member{fieldMember, first})
		}
	}

	for id := range tree.Subtree(method) {
		switch t := tree.Type(id); t {
		case ast.MemberReference, ast.MethodInvocation:
			s := texts(tree, id)
			if len(s) < 2 {
				continue
			}
			q, name := s[len(s)-2], s[len(s)-1]
			switch {
			case q != "":
				qualified(q)
			case t == ast.MethodInvocation:
				out = append(out, member{methodMember, name})
			case !hidden[name]:
				out = append(out, member{fieldMember, name})
			}

		case ast.This:
			// Outer.this refers to another class.
			if !onlyOperators(texts(tree, id)) {
				continue
			}
			sel := nodes(tree, id)
			if len(sel) == 0 {
				continue
			}
			s := texts(tree, sel[0])
			if len(s) == 0 {
				continue
			}
			switch tree.Type(sel[0]) {
			case ast.MemberReference:
				out = append(out, member{fieldMember, s[len(s)-1]})
			case ast.MethodInvocation:
				out = append(out, member{methodMember, s[len(s)-1]})
			}
		}
	}
	return out
}

func onlyOperators(s []string) bool {
	for _, v := range s {
		if !isOperator(v) {
			return false
		}
	}
	return true
}
