package javatree

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

var literalTypes = map[string]bool{
	"decimal_integer_literal":        true,
	"hex_integer_literal":            true,
	"octal_integer_literal":          true,
	"binary_integer_literal":         true,
	"decimal_floating_point_literal": true,
	"hex_floating_point_literal":     true,
	"string_literal":                 true,
	"text_block":                     true,
	"character_literal":              true,
	"true":                           true,
	"false":                          true,
	"null_literal":                   true,
}

// newPrimary creates a node carrying the primary attribute prefix followed
// by the kind's own attributes.
func newPrimary(kind Kind, pos *Position, qualifier any, own ...Attr) *Node {
	attrs := make([]Attr, 0, 4+len(own))
	attrs = append(attrs,
		Attr{"prefix_operators", []any{}},
		Attr{"postfix_operators", []any{}},
		Attr{"qualifier", qualifier},
		Attr{"selectors", []any{}},
	)
	attrs = append(attrs, own...)
	return New(kind, pos, attrs...)
}

func appendSelector(base, selector *Node) {
	selectors, _ := base.Attr("selectors").([]any)
	base.Set("selectors", append(selectors, selector))
}

func appendOperator(n *Node, slot, op string) bool {
	if n == nil || !n.Kind.isPrimary() {
		return false
	}
	ops, _ := n.Attr(slot).([]any)
	if slot == "prefix_operators" {
		n.Set(slot, append([]any{op}, ops...))
	} else {
		n.Set(slot, append(ops, op))
	}
	return true
}

func (l *lowerer) expression(n *sitter.Node) *Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "parenthesized_expression":
		if parts := named(n); len(parts) > 0 {
			return l.expression(parts[0])
		}
		return nil

	case "assignment_expression":
		return New(KindAssignment, nil,
			Attr{"expressionl", l.expression(n.ChildByFieldName("left"))},
			Attr{"value", l.expression(n.ChildByFieldName("right"))},
			Attr{"type", l.text(n.ChildByFieldName("operator"))},
		)

	case "binary_expression":
		return New(KindBinaryOperation, nil,
			Attr{"operator", l.text(n.ChildByFieldName("operator"))},
			Attr{"operandl", l.expression(n.ChildByFieldName("left"))},
			Attr{"operandr", l.expression(n.ChildByFieldName("right"))},
		)

	case "instanceof_expression":
		var right any
		if r := n.ChildByFieldName("right"); r != nil {
			right = l.typeRef(r)
		} else if p := n.ChildByFieldName("pattern"); p != nil {
			right = l.typeRef(p.ChildByFieldName("type"))
		}
		return New(KindBinaryOperation, nil,
			Attr{"operator", "instanceof"},
			Attr{"operandl", l.expression(n.ChildByFieldName("left"))},
			Attr{"operandr", right},
		)

	case "ternary_expression":
		return New(KindTernaryExpression, nil,
			Attr{"condition", l.expression(n.ChildByFieldName("condition"))},
			Attr{"if_true", l.expression(n.ChildByFieldName("consequence"))},
			Attr{"if_false", l.expression(n.ChildByFieldName("alternative"))},
		)

	case "cast_expression":
		return New(KindCast, nil,
			Attr{"type", l.typeRef(n.ChildByFieldName("type"))},
			Attr{"expression", l.expression(n.ChildByFieldName("value"))},
		)

	case "unary_expression":
		operand := l.expression(n.ChildByFieldName("operand"))
		op := l.text(n.ChildByFieldName("operator"))
		if !appendOperator(operand, "prefix_operators", op) {
			return l.operatorExpression(n, op, operand)
		}
		return operand

	case "update_expression":
		parts := named(n)
		if len(parts) == 0 {
			return l.generic(KindExpression, n)
		}
		operand := l.expression(parts[0])
		postfix := n.Child(0).IsNamed()
		op := strings.TrimSpace(strings.Replace(l.text(n), l.text(parts[0]), "", 1))
		slot := "prefix_operators"
		if postfix {
			slot = "postfix_operators"
		}
		if !appendOperator(operand, slot, op) {
			return l.operatorExpression(n, op, operand)
		}
		return operand

	case "lambda_expression":
		return l.lambda(n)

	case "method_reference":
		return l.methodReference(n)

	case "switch_expression":
		return l.switchStatement(n, nil)

	case "array_initializer":
		inits := []any{}
		for _, c := range named(n) {
			inits = append(inits, l.expression(c))
		}
		return New(KindArrayInitializer, l.pos(n), Attr{"initializers", inits})
	}

	return l.primary(n)
}

// operatorExpression keeps a unary operator applied to a non-primary operand
// (e.g. -(a + b)) as a generic expression.
func (l *lowerer) operatorExpression(n *sitter.Node, op string, operand *Node) *Node {
	return New(KindExpression, l.pos(n),
		Attr{"operator", op},
		Attr{"operand", operand},
	)
}

func (l *lowerer) primary(n *sitter.Node) *Node {
	p := l.pos(n)

	if literalTypes[n.Type()] {
		return newPrimary(KindLiteral, p, nil, Attr{"value", l.text(n)})
	}

	switch n.Type() {
	case "this":
		return newPrimary(KindThis, p, nil)

	case "identifier":
		return newPrimary(KindMemberReference, p, "", Attr{"member", l.text(n)})

	case "field_access":
		return l.fieldAccess(n)

	case "method_invocation":
		return l.methodInvocation(n)

	case "array_access":
		base := l.expression(n.ChildByFieldName("array"))
		selector := New(KindArraySelector, l.pos(n),
			Attr{"index", l.expression(n.ChildByFieldName("index"))},
		)
		if base == nil || !base.Kind.isPrimary() {
			return New(KindExpression, p, Attr{"array", base}, Attr{"index", selector})
		}
		appendSelector(base, selector)
		return base

	case "object_creation_expression":
		return l.classCreator(n)

	case "array_creation_expression":
		return l.arrayCreator(n)

	case "class_literal":
		parts := named(n)
		if len(parts) > 0 && parts[0].Type() == "void_type" {
			return newPrimary(KindVoidClassReference, p, nil, Attr{"type", nil})
		}
		var typ any
		if len(parts) > 0 {
			typ = l.typeRef(parts[0])
		}
		return newPrimary(KindClassReference, p, nil, Attr{"type", typ})

	case "explicit_constructor_invocation":
		return l.constructorInvocation(n)
	}

	return l.generic(KindExpression, n)
}

// qualifiedName reports the dotted text of n when n is a plain name chain
// like a.b.c, which the reflective layout folds into one qualifier string.
func (l *lowerer) qualifiedName(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "identifier":
		return l.text(n), true
	case "field_access":
		obj := n.ChildByFieldName("object")
		field := n.ChildByFieldName("field")
		if obj == nil || field == nil || field.Type() != "identifier" {
			return "", false
		}
		prefix, ok := l.qualifiedName(obj)
		if !ok {
			return "", false
		}
		return prefix + "." + l.text(field), true
	}
	return "", false
}

func (l *lowerer) fieldAccess(n *sitter.Node) *Node {
	p := l.pos(n)
	obj := n.ChildByFieldName("object")
	field := n.ChildByFieldName("field")

	if field != nil && field.Type() == "this" {
		return newPrimary(KindThis, p, l.text(obj))
	}
	if obj != nil && obj.Type() == "super" {
		return newPrimary(KindSuperMemberReference, p, nil, Attr{"member", l.text(field)})
	}
	if qn, ok := l.qualifiedName(obj); ok && field != nil && field.Type() == "identifier" {
		return newPrimary(KindMemberReference, p, qn, Attr{"member", l.text(field)})
	}

	base := l.expression(obj)
	ref := newPrimary(KindMemberReference, p, nil, Attr{"member", l.text(field)})
	if base == nil || !base.Kind.isPrimary() {
		return New(KindExpression, p, Attr{"object", base}, Attr{"selector", ref})
	}
	appendSelector(base, ref)
	return base
}

func (l *lowerer) methodInvocation(n *sitter.Node) *Node {
	p := l.pos(n)
	obj := n.ChildByFieldName("object")
	member := l.text(n.ChildByFieldName("name"))
	args := l.arguments(n.ChildByFieldName("arguments"))
	typeArgs := l.optionalTypeArguments(n.ChildByFieldName("type_arguments"))

	invocation := func(kind Kind, qualifier any) *Node {
		return newPrimary(kind, p, qualifier,
			Attr{"type_arguments", typeArgs},
			Attr{"arguments", args},
			Attr{"member", member},
		)
	}

	if obj == nil {
		return invocation(KindMethodInvocation, "")
	}
	if obj.Type() == "super" {
		return invocation(KindSuperMethodInvocation, nil)
	}
	if obj.Type() == "field_access" {
		if f := obj.ChildByFieldName("field"); f != nil && f.Type() == "super" {
			return invocation(KindSuperMethodInvocation, l.text(obj.ChildByFieldName("object")))
		}
	}
	if qn, ok := l.qualifiedName(obj); ok {
		return invocation(KindMethodInvocation, qn)
	}

	base := l.expression(obj)
	call := invocation(KindMethodInvocation, nil)
	if base == nil || !base.Kind.isPrimary() {
		return New(KindExpression, p, Attr{"object", base}, Attr{"selector", call})
	}
	appendSelector(base, call)
	return base
}

func (l *lowerer) constructorInvocation(n *sitter.Node) *Node {
	p := l.pos(n)
	args := l.arguments(n.ChildByFieldName("arguments"))
	typeArgs := l.optionalTypeArguments(n.ChildByFieldName("type_arguments"))

	kind := KindExplicitConstructorInvocation
	if c := n.ChildByFieldName("constructor"); c != nil && c.Type() == "super" {
		kind = KindSuperConstructorInvocation
	}
	var qualifier any
	if obj := n.ChildByFieldName("object"); obj != nil {
		qualifier = l.text(obj)
	}
	return newPrimary(kind, p, qualifier,
		Attr{"type_arguments", typeArgs},
		Attr{"arguments", args},
	)
}

func (l *lowerer) arguments(n *sitter.Node) []any {
	args := []any{}
	if n == nil {
		return args
	}
	for _, c := range named(n) {
		args = append(args, l.expression(c))
	}
	return args
}

func (l *lowerer) optionalTypeArguments(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	return l.typeArguments(n)
}

func (l *lowerer) classCreator(n *sitter.Node) *Node {
	p := l.pos(n)

	var body any
	if b := childOfType(n, "class_body"); b != nil {
		body = l.classBody(b)
	}
	attrs := []Attr{
		{"type", l.typeRef(n.ChildByFieldName("type"))},
		{"constructor_type_arguments", l.optionalTypeArguments(n.ChildByFieldName("type_arguments"))},
		{"arguments", l.arguments(n.ChildByFieldName("arguments"))},
		{"body", body},
	}

	// outer.new Inner()
	var outer *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "new" {
			break
		}
		if c.IsNamed() && !isComment(c) {
			outer = c
		}
	}
	if outer == nil {
		return newPrimary(KindClassCreator, p, nil, attrs...)
	}

	creator := newPrimary(KindInnerClassCreator, p, nil, attrs...)
	base := l.expression(outer)
	if base == nil || !base.Kind.isPrimary() {
		return creator
	}
	appendSelector(base, creator)
	return base
}

func (l *lowerer) arrayCreator(n *sitter.Node) *Node {
	dims := []any{}
	var initializer any
	for _, c := range named(n) {
		switch c.Type() {
		case "dimensions_expr":
			if parts := named(c); len(parts) > 0 {
				dims = append(dims, l.expression(parts[0]))
			}
		case "dimensions":
			dims = append(dims, l.dimensions(c)...)
		case "array_initializer":
			initializer = l.expression(c)
		}
	}
	return newPrimary(KindArrayCreator, l.pos(n), nil,
		Attr{"type", l.typeRef(n.ChildByFieldName("type"))},
		Attr{"dimensions", dims},
		Attr{"initializer", initializer},
	)
}

func (l *lowerer) lambda(n *sitter.Node) *Node {
	params := []any{}
	if ps := n.ChildByFieldName("parameters"); ps != nil {
		switch ps.Type() {
		case "identifier":
			params = append(params, New(KindInferredFormalParameter, l.pos(ps), Attr{"name", l.text(ps)}))
		case "inferred_parameters":
			for _, c := range named(ps) {
				params = append(params, New(KindInferredFormalParameter, l.pos(c), Attr{"name", l.text(c)}))
			}
		case "formal_parameters":
			params = l.formalParameters(ps)
		}
	}

	var body any
	if b := n.ChildByFieldName("body"); b != nil {
		if b.Type() == "block" {
			body = l.statements(b)
		} else {
			body = l.expression(b)
		}
	}

	return newPrimary(KindLambdaExpression, l.pos(n), nil,
		Attr{"parameters", params},
		Attr{"body", body},
	)
}

func (l *lowerer) methodReference(n *sitter.Node) *Node {
	parts := named(n)
	var expr any
	var typeArgs any
	var method any
	for i, c := range parts {
		switch {
		case i == 0 && isType(c.Type()):
			expr = l.typeRef(c)
		case i == 0:
			expr = l.expression(c)
		case c.Type() == "type_arguments":
			typeArgs = l.typeArguments(c)
		case c.Type() == "identifier":
			method = newPrimary(KindMemberReference, l.pos(c), nil, Attr{"member", l.text(c)})
		}
	}
	if method == nil && hasToken(n, "new") {
		method = newPrimary(KindMemberReference, l.pos(n), nil, Attr{"member", "new"})
	}
	return New(KindMethodReference, l.pos(n),
		Attr{"expression", expr},
		Attr{"method", method},
		Attr{"type_arguments", typeArgs},
	)
}
