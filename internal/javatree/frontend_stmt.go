package javatree

import sitter "github.com/smacker/go-tree-sitter"

var statementTypes = map[string]bool{
	"block":                           true,
	"local_variable_declaration":      true,
	"expression_statement":            true,
	"explicit_constructor_invocation": true,
	"if_statement":                    true,
	"while_statement":                 true,
	"do_statement":                    true,
	"for_statement":                   true,
	"enhanced_for_statement":          true,
	"return_statement":                true,
	"throw_statement":                 true,
	"break_statement":                 true,
	"continue_statement":              true,
	"synchronized_statement":          true,
	"try_statement":                   true,
	"try_with_resources_statement":    true,
	"assert_statement":                true,
	"switch_statement":                true,
	"labeled_statement":               true,
	"yield_statement":                 true,
	"local_class_declaration":         true,
}

func isStatement(t string) bool {
	return statementTypes[t]
}

// statements lowers the contents of a block-like node into a flat list.
func (l *lowerer) statements(n *sitter.Node) []any {
	stmts := []any{}
	for _, c := range named(n) {
		if s := l.statement(c, nil); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// body lowers a loop or branch body, which may be any statement.
func (l *lowerer) body(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	return l.statement(n, nil)
}

func (l *lowerer) statement(n *sitter.Node, label any) any {
	p := l.pos(n)

	switch n.Type() {
	case "block":
		return New(KindBlockStatement, p,
			Attr{"label", label},
			Attr{"statements", l.statements(n)},
		)

	case "local_variable_declaration":
		modifiers, annotations, _ := l.declarationHeader(n)
		return New(KindLocalVariableDeclaration, p,
			Attr{"modifiers", modifiers},
			Attr{"annotations", annotations},
			Attr{"type", l.typeRef(n.ChildByFieldName("type"))},
			Attr{"declarators", l.declarators(n)},
		)

	case "expression_statement":
		var expr any
		if parts := named(n); len(parts) > 0 {
			expr = l.expression(parts[0])
		}
		return New(KindStatementExpression, p,
			Attr{"label", label},
			Attr{"expression", expr},
		)

	case "explicit_constructor_invocation":
		return New(KindStatementExpression, p,
			Attr{"label", label},
			Attr{"expression", l.constructorInvocation(n)},
		)

	case "if_statement":
		var elseStmt any
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			elseStmt = l.statement(alt, nil)
		}
		return New(KindIfStatement, p,
			Attr{"label", label},
			Attr{"condition", l.expression(n.ChildByFieldName("condition"))},
			Attr{"then_statement", l.body(n.ChildByFieldName("consequence"))},
			Attr{"else_statement", elseStmt},
		)

	case "while_statement":
		return New(KindWhileStatement, p,
			Attr{"label", label},
			Attr{"condition", l.expression(n.ChildByFieldName("condition"))},
			Attr{"body", l.body(n.ChildByFieldName("body"))},
		)

	case "do_statement":
		return New(KindDoStatement, p,
			Attr{"label", label},
			Attr{"condition", l.expression(n.ChildByFieldName("condition"))},
			Attr{"body", l.body(n.ChildByFieldName("body"))},
		)

	case "for_statement":
		return New(KindForStatement, p,
			Attr{"label", label},
			Attr{"control", l.forControl(n)},
			Attr{"body", l.body(n.ChildByFieldName("body"))},
		)

	case "enhanced_for_statement":
		modifiers, annotations, _ := l.declarationHeader(n)
		variable := New(KindVariableDeclaration, l.pos(n),
			Attr{"modifiers", modifiers},
			Attr{"annotations", annotations},
			Attr{"type", l.typeRef(n.ChildByFieldName("type"))},
			Attr{"declarators", []any{
				New(KindVariableDeclarator, p,
					Attr{"name", l.text(n.ChildByFieldName("name"))},
					Attr{"dimensions", []any{}},
					Attr{"initializer", nil},
				),
			}},
		)
		control := New(KindEnhancedForControl, p,
			Attr{"var", variable},
			Attr{"iterable", l.expression(n.ChildByFieldName("value"))},
		)
		return New(KindForStatement, p,
			Attr{"label", label},
			Attr{"control", control},
			Attr{"body", l.body(n.ChildByFieldName("body"))},
		)

	case "return_statement":
		return New(KindReturnStatement, p,
			Attr{"label", label},
			Attr{"expression", l.optionalExpression(n)},
		)

	case "throw_statement":
		return New(KindThrowStatement, p,
			Attr{"label", label},
			Attr{"expression", l.optionalExpression(n)},
		)

	case "break_statement", "continue_statement":
		var target any
		if id := childOfType(n, "identifier"); id != nil {
			target = l.text(id)
		}
		kind := KindBreakStatement
		if n.Type() == "continue_statement" {
			kind = KindContinueStatement
		}
		return New(kind, p,
			Attr{"label", label},
			Attr{"goto", target},
		)

	case "synchronized_statement":
		var lock any
		if pe := childOfType(n, "parenthesized_expression"); pe != nil {
			lock = l.expression(pe)
		}
		var block any
		if b := n.ChildByFieldName("body"); b != nil {
			block = l.statements(b)
		}
		return New(KindSynchronizedStatement, p,
			Attr{"label", label},
			Attr{"lock", lock},
			Attr{"block", block},
		)

	case "try_statement", "try_with_resources_statement":
		return l.tryStatement(n, label)

	case "assert_statement":
		parts := named(n)
		var cond, value any
		if len(parts) > 0 {
			cond = l.expression(parts[0])
		}
		if len(parts) > 1 {
			value = l.expression(parts[1])
		}
		return New(KindAssertStatement, p,
			Attr{"label", label},
			Attr{"condition", cond},
			Attr{"value", value},
		)

	case "switch_statement", "switch_expression":
		return l.switchStatement(n, label)

	case "labeled_statement":
		var name any
		var inner *sitter.Node
		for _, c := range named(n) {
			if c.Type() == "identifier" && name == nil {
				name = l.text(c)
				continue
			}
			inner = c
		}
		if inner == nil {
			return New(KindStatement, p, Attr{"label", name})
		}
		return l.statement(inner, name)

	case "local_class_declaration":
		for _, c := range named(n) {
			if decl := l.typeDeclaration(c); decl != nil {
				return decl
			}
		}
	}

	if decl := l.typeDeclaration(n); decl != nil {
		return decl
	}

	node := l.generic(KindStatement, n)
	node.Attrs = append([]Attr{{Name: "label", Value: label}}, node.Attrs...)
	return node
}

func (l *lowerer) optionalExpression(n *sitter.Node) any {
	parts := named(n)
	if len(parts) == 0 {
		return nil
	}
	return l.expression(parts[0])
}

func (l *lowerer) forControl(n *sitter.Node) *Node {
	var init any
	inits := fieldAll(n, "init")
	if len(inits) == 1 && inits[0].Type() == "local_variable_declaration" {
		decl := inits[0]
		modifiers, annotations, _ := l.declarationHeader(decl)
		init = New(KindVariableDeclaration, l.pos(decl),
			Attr{"modifiers", modifiers},
			Attr{"annotations", annotations},
			Attr{"type", l.typeRef(decl.ChildByFieldName("type"))},
			Attr{"declarators", l.declarators(decl)},
		)
	} else if len(inits) > 0 {
		exprs := []any{}
		for _, e := range inits {
			exprs = append(exprs, l.expression(e))
		}
		init = exprs
	}

	var cond any
	if c := n.ChildByFieldName("condition"); c != nil {
		cond = l.expression(c)
	}

	var update any
	if updates := fieldAll(n, "update"); len(updates) > 0 {
		exprs := []any{}
		for _, e := range updates {
			exprs = append(exprs, l.expression(e))
		}
		update = exprs
	}

	return New(KindForControl, l.pos(n),
		Attr{"init", init},
		Attr{"condition", cond},
		Attr{"update", update},
	)
}

func (l *lowerer) tryStatement(n *sitter.Node, label any) *Node {
	var resources any
	if spec := n.ChildByFieldName("resources"); spec != nil {
		list := []any{}
		for _, r := range named(spec) {
			list = append(list, l.tryResource(r))
		}
		resources = list
	}

	var block any
	if b := n.ChildByFieldName("body"); b != nil {
		block = l.statements(b)
	}

	var catches any
	var finally any
	for _, c := range named(n) {
		switch c.Type() {
		case "catch_clause":
			list, _ := catches.([]any)
			catches = append(list, l.catchClause(c))
		case "finally_clause":
			if b := childOfType(c, "block"); b != nil {
				finally = l.statements(b)
			}
		}
	}

	return New(KindTryStatement, l.pos(n),
		Attr{"label", label},
		Attr{"resources", resources},
		Attr{"block", block},
		Attr{"catches", catches},
		Attr{"finally_block", finally},
	)
}

func (l *lowerer) tryResource(n *sitter.Node) *Node {
	if n.Type() != "resource" || n.ChildByFieldName("name") == nil {
		// try (existingResource) { ... }
		var value any
		if parts := named(n); len(parts) > 0 {
			value = l.expression(parts[0])
		}
		return New(KindTryResource, l.pos(n),
			Attr{"type", nil},
			Attr{"name", nil},
			Attr{"value", value},
		)
	}
	modifiers, annotations, _ := l.declarationHeader(n)
	return New(KindTryResource, l.pos(n),
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"type", l.typeRef(n.ChildByFieldName("type"))},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"value", l.expression(n.ChildByFieldName("value"))},
	)
}

func (l *lowerer) catchClause(n *sitter.Node) *Node {
	var param any
	if fp := childOfType(n, "catch_formal_parameter"); fp != nil {
		modifiers, annotations, _ := l.declarationHeader(fp)
		types := []any{}
		if ct := childOfType(fp, "catch_type"); ct != nil {
			for _, t := range named(ct) {
				types = append(types, l.text(t))
			}
		}
		param = New(KindCatchClauseParameter, l.pos(fp),
			Attr{"modifiers", modifiers},
			Attr{"annotations", annotations},
			Attr{"types", types},
			Attr{"name", l.text(fp.ChildByFieldName("name"))},
		)
	}

	var block any
	if b := n.ChildByFieldName("body"); b != nil {
		block = l.statements(b)
	}

	return New(KindCatchClause, l.pos(n),
		Attr{"label", nil},
		Attr{"parameter", param},
		Attr{"block", block},
	)
}

func (l *lowerer) switchStatement(n *sitter.Node, label any) *Node {
	var cases any = []any{}
	if b := n.ChildByFieldName("body"); b != nil {
		cases = l.switchCases(b)
	}
	return New(KindSwitchStatement, l.pos(n),
		Attr{"label", label},
		Attr{"expression", l.expression(n.ChildByFieldName("condition"))},
		Attr{"cases", cases},
	)
}

// switchCases lowers a switch_block into SwitchStatementCase nodes. Both
// classic groups ("case x: ...") and arrow rules ("case x -> ...") are
// accepted; a default label is the plain string "default".
func (l *lowerer) switchCases(n *sitter.Node) []any {
	cases := []any{}
	for _, group := range named(n) {
		if group.Type() != "switch_block_statement_group" && group.Type() != "switch_rule" {
			continue
		}
		labels := []any{}
		stmts := []any{}
		for _, c := range named(group) {
			if c.Type() == "switch_label" {
				parts := named(c)
				if len(parts) == 0 {
					labels = append(labels, "default")
					continue
				}
				for _, e := range parts {
					labels = append(labels, l.expression(e))
				}
				continue
			}
			if isStatement(c.Type()) {
				if s := l.statement(c, nil); s != nil {
					stmts = append(stmts, s)
				}
				continue
			}
			stmts = append(stmts, l.expression(c))
		}
		cases = append(cases, New(KindSwitchStatementCase, l.pos(group),
			Attr{"case", labels},
			Attr{"statements", stmts},
		))
	}
	return cases
}
