package javatree

import (
	"context"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Parser turns Java source into a javatree.Node rooted at a compilation
// unit. A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a tree-sitter backed Java parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source and lowers it into a compilation unit node.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Node, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstSyntaxError(root)
	}

	l := &lowerer{src: source}
	return l.compilationUnit(root), nil
}

// ParseFile reads and parses a file from disk.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Node, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	unit, err := p.Parse(ctx, source)
	if err != nil {
		if se, ok := err.(*SyntaxError); ok {
			se.File = path
		}
		return nil, err
	}
	return unit, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

func firstSyntaxError(root *sitter.Node) *SyntaxError {
	var found *sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if found != nil || n == nil {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)

	if found == nil {
		found = root
	}
	start := found.StartPoint()
	return &SyntaxError{Line: int(start.Row) + 1, Column: int(start.Column) + 1}
}

// lowerer converts a tree-sitter Java CST into javatree nodes.
type lowerer struct {
	src []byte
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

func (l *lowerer) pos(n *sitter.Node) *Position {
	start := n.StartPoint()
	return &Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1}
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "line_comment", "block_comment", "comment":
		return true
	}
	return false
}

// named returns the named, non-comment children of n.
func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || isComment(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// fieldAll returns every child of n stored under the given field name.
func fieldAll(n *sitter.Node, field string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) == field {
			out = append(out, n.Child(i))
		}
	}
	return out
}

func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

func hasToken(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == token {
			return true
		}
	}
	return false
}

func (l *lowerer) compilationUnit(root *sitter.Node) *Node {
	var pkg any
	imports := []any{}
	types := []any{}

	for _, c := range named(root) {
		switch c.Type() {
		case "package_declaration":
			pkg = l.packageDeclaration(c)
		case "import_declaration":
			imports = append(imports, l.importDeclaration(c))
		default:
			if decl := l.typeDeclaration(c); decl != nil {
				types = append(types, decl)
			} else {
				types = append(types, l.generic(KindDeclaration, c))
			}
		}
	}

	return New(KindCompilationUnit, nil,
		Attr{"package", pkg},
		Attr{"imports", imports},
		Attr{"types", types},
	)
}

func (l *lowerer) packageDeclaration(n *sitter.Node) *Node {
	var annotations []any
	var name string
	for _, c := range named(n) {
		switch c.Type() {
		case "marker_annotation", "annotation":
			annotations = append(annotations, l.annotation(c))
		case "identifier", "scoped_identifier":
			name = l.text(c)
		}
	}
	return New(KindPackageDeclaration, l.pos(n),
		Attr{"modifiers", Set{}},
		Attr{"annotations", annotations},
		Attr{"documentation", l.documentation(n)},
		Attr{"name", name},
	)
}

func (l *lowerer) importDeclaration(n *sitter.Node) *Node {
	var path string
	for _, c := range named(n) {
		if c.Type() == "identifier" || c.Type() == "scoped_identifier" {
			path = l.text(c)
		}
	}
	return New(KindImport, l.pos(n),
		Attr{"path", path},
		Attr{"static", hasToken(n, "static")},
		Attr{"wildcard", childOfType(n, "asterisk") != nil},
	)
}

// declarationHeader extracts the modifier keywords, annotations and javadoc
// shared by every declaration.
func (l *lowerer) declarationHeader(n *sitter.Node) (Set, []any, any) {
	modifiers := Set{}
	annotations := []any{}
	if mods := childOfType(n, "modifiers"); mods != nil {
		for i := 0; i < int(mods.ChildCount()); i++ {
			c := mods.Child(i)
			switch {
			case c.Type() == "marker_annotation" || c.Type() == "annotation":
				annotations = append(annotations, l.annotation(c))
			case isComment(c):
			default:
				if kw := strings.TrimSpace(l.text(c)); kw != "" {
					modifiers = append(modifiers, kw)
				}
			}
		}
	}
	return modifiers, annotations, l.documentation(n)
}

// documentation returns the javadoc comment directly preceding n, or nil.
func (l *lowerer) documentation(n *sitter.Node) any {
	prev := n.PrevSibling()
	if prev == nil || !isComment(prev) {
		return nil
	}
	text := l.text(prev)
	if !strings.HasPrefix(text, "/**") {
		return nil
	}
	return text
}

func (l *lowerer) typeDeclaration(n *sitter.Node) *Node {
	switch n.Type() {
	case "class_declaration", "record_declaration":
		return l.classDeclaration(n)
	case "interface_declaration":
		return l.interfaceDeclaration(n)
	case "enum_declaration":
		return l.enumDeclaration(n)
	case "annotation_type_declaration":
		return l.annotationDeclaration(n)
	}
	return nil
}

func (l *lowerer) classDeclaration(n *sitter.Node) *Node {
	modifiers, annotations, doc := l.declarationHeader(n)

	var extends any
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		if types := named(sc); len(types) > 0 {
			extends = l.typeRef(types[0])
		}
	}

	node := New(KindClassDeclaration, l.pos(n),
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"documentation", doc},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"body", l.classBody(n.ChildByFieldName("body"))},
		Attr{"type_parameters", l.typeParameters(n.ChildByFieldName("type_parameters"))},
		Attr{"extends", extends},
		Attr{"implements", l.typeList(n.ChildByFieldName("interfaces"))},
	)
	if n.Type() == "record_declaration" {
		node.Set("parameters", l.formalParameters(n.ChildByFieldName("parameters")))
	}
	return node
}

func (l *lowerer) interfaceDeclaration(n *sitter.Node) *Node {
	modifiers, annotations, doc := l.declarationHeader(n)
	return New(KindInterfaceDeclaration, l.pos(n),
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"documentation", doc},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"body", l.classBody(n.ChildByFieldName("body"))},
		Attr{"type_parameters", l.typeParameters(n.ChildByFieldName("type_parameters"))},
		Attr{"extends", l.typeList(childOfType(n, "extends_interfaces"))},
	)
}

func (l *lowerer) enumDeclaration(n *sitter.Node) *Node {
	modifiers, annotations, doc := l.declarationHeader(n)

	var body any
	if b := n.ChildByFieldName("body"); b != nil {
		constants := []any{}
		declarations := []any{}
		for _, c := range named(b) {
			switch c.Type() {
			case "enum_constant":
				constants = append(constants, l.enumConstant(c))
			case "enum_body_declarations":
				for _, m := range named(c) {
					if member := l.member(m); member != nil {
						declarations = append(declarations, member)
					}
				}
			}
		}
		body = New(KindEnumBody, l.pos(b),
			Attr{"constants", constants},
			Attr{"declarations", declarations},
		)
	}

	return New(KindEnumDeclaration, l.pos(n),
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"documentation", doc},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"body", body},
		Attr{"implements", l.typeList(n.ChildByFieldName("interfaces"))},
	)
}

func (l *lowerer) enumConstant(n *sitter.Node) *Node {
	modifiers, annotations, doc := l.declarationHeader(n)
	var arguments any
	if args := n.ChildByFieldName("arguments"); args != nil {
		arguments = l.arguments(args)
	}
	var body any
	if b := n.ChildByFieldName("body"); b != nil {
		body = l.classBody(b)
	}
	return New(KindEnumConstantDeclaration, l.pos(n),
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"documentation", doc},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"arguments", arguments},
		Attr{"body", body},
	)
}

func (l *lowerer) annotationDeclaration(n *sitter.Node) *Node {
	modifiers, annotations, doc := l.declarationHeader(n)
	body := []any{}
	if b := n.ChildByFieldName("body"); b != nil {
		for _, c := range named(b) {
			if c.Type() == "annotation_type_element_declaration" {
				body = append(body, l.annotationMethod(c))
				continue
			}
			if member := l.member(c); member != nil {
				body = append(body, member)
			}
		}
	}
	return New(KindAnnotationDeclaration, l.pos(n),
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"documentation", doc},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"body", body},
	)
}

func (l *lowerer) annotationMethod(n *sitter.Node) *Node {
	modifiers, annotations, _ := l.declarationHeader(n)
	var def any
	if v := n.ChildByFieldName("value"); v != nil {
		def = l.elementValue(v)
	}
	return New(KindAnnotationMethod, l.pos(n),
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"return_type", l.typeRef(n.ChildByFieldName("type"))},
		Attr{"dimensions", l.dimensions(n.ChildByFieldName("dimensions"))},
		Attr{"default", def},
	)
}

func (l *lowerer) classBody(n *sitter.Node) []any {
	body := []any{}
	if n == nil {
		return body
	}
	for _, c := range named(n) {
		if member := l.member(c); member != nil {
			body = append(body, member)
		}
	}
	return body
}

func (l *lowerer) member(n *sitter.Node) any {
	switch n.Type() {
	case "field_declaration":
		return l.fieldDeclaration(KindFieldDeclaration, n)
	case "constant_declaration":
		return l.fieldDeclaration(KindConstantDeclaration, n)
	case "method_declaration":
		return l.methodDeclaration(n)
	case "constructor_declaration", "compact_constructor_declaration":
		return l.constructorDeclaration(n)
	case "block":
		return l.statement(n, nil)
	case "static_initializer":
		if b := childOfType(n, "block"); b != nil {
			return l.statement(b, nil)
		}
		return nil
	}
	if decl := l.typeDeclaration(n); decl != nil {
		return decl
	}
	return l.generic(KindDeclaration, n)
}

func (l *lowerer) fieldDeclaration(kind Kind, n *sitter.Node) *Node {
	modifiers, annotations, doc := l.declarationHeader(n)
	return New(kind, l.pos(n),
		Attr{"documentation", doc},
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"type", l.typeRef(n.ChildByFieldName("type"))},
		Attr{"declarators", l.declarators(n)},
	)
}

func (l *lowerer) declarators(n *sitter.Node) []any {
	declarators := []any{}
	for _, d := range fieldAll(n, "declarator") {
		declarators = append(declarators, l.variableDeclarator(d))
	}
	return declarators
}

func (l *lowerer) variableDeclarator(n *sitter.Node) *Node {
	var initializer any
	if v := n.ChildByFieldName("value"); v != nil {
		initializer = l.expression(v)
	}
	return New(KindVariableDeclarator, l.pos(n),
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"dimensions", l.dimensions(n.ChildByFieldName("dimensions"))},
		Attr{"initializer", initializer},
	)
}

func (l *lowerer) methodDeclaration(n *sitter.Node) *Node {
	modifiers, annotations, doc := l.declarationHeader(n)

	var returnType any
	if t := n.ChildByFieldName("type"); t != nil && t.Type() != "void_type" {
		returnType = l.typeRef(t)
	}
	var body any
	if b := n.ChildByFieldName("body"); b != nil {
		body = l.statements(b)
	}

	return New(KindMethodDeclaration, l.pos(n),
		Attr{"documentation", doc},
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"type_parameters", l.typeParameters(n.ChildByFieldName("type_parameters"))},
		Attr{"return_type", returnType},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"parameters", l.formalParameters(n.ChildByFieldName("parameters"))},
		Attr{"throws", l.throws(childOfType(n, "throws"))},
		Attr{"body", body},
	)
}

func (l *lowerer) constructorDeclaration(n *sitter.Node) *Node {
	modifiers, annotations, doc := l.declarationHeader(n)
	var body any
	if b := n.ChildByFieldName("body"); b != nil {
		body = l.statements(b)
	}
	return New(KindConstructorDeclaration, l.pos(n),
		Attr{"modifiers", modifiers},
		Attr{"annotations", annotations},
		Attr{"documentation", doc},
		Attr{"type_parameters", l.typeParameters(n.ChildByFieldName("type_parameters"))},
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"parameters", l.formalParameters(n.ChildByFieldName("parameters"))},
		Attr{"throws", l.throws(childOfType(n, "throws"))},
		Attr{"body", body},
	)
}

func (l *lowerer) formalParameters(n *sitter.Node) []any {
	params := []any{}
	if n == nil {
		return params
	}
	for _, c := range named(n) {
		switch c.Type() {
		case "formal_parameter":
			modifiers, annotations, _ := l.declarationHeader(c)
			params = append(params, New(KindFormalParameter, l.pos(c),
				Attr{"modifiers", modifiers},
				Attr{"annotations", annotations},
				Attr{"type", l.typeRef(c.ChildByFieldName("type"))},
				Attr{"name", l.text(c.ChildByFieldName("name"))},
				Attr{"varargs", false},
			))
		case "spread_parameter":
			modifiers, annotations, _ := l.declarationHeader(c)
			var typ any
			var name string
			for _, part := range named(c) {
				switch part.Type() {
				case "modifiers":
				case "variable_declarator":
					name = l.text(part.ChildByFieldName("name"))
				default:
					if typ == nil {
						typ = l.typeRef(part)
					}
				}
			}
			params = append(params, New(KindFormalParameter, l.pos(c),
				Attr{"modifiers", modifiers},
				Attr{"annotations", annotations},
				Attr{"type", typ},
				Attr{"name", name},
				Attr{"varargs", true},
			))
		}
	}
	return params
}

func (l *lowerer) throws(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	names := []any{}
	for _, c := range named(n) {
		names = append(names, l.text(c))
	}
	return names
}

func (l *lowerer) typeParameters(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	params := []any{}
	for _, c := range named(n) {
		if c.Type() != "type_parameter" {
			continue
		}
		var name string
		var extends any
		for _, part := range named(c) {
			switch part.Type() {
			case "type_identifier", "identifier":
				name = l.text(part)
			case "type_bound":
				bounds := []any{}
				for _, b := range named(part) {
					bounds = append(bounds, l.typeRef(b))
				}
				extends = bounds
			}
		}
		params = append(params, New(KindTypeParameter, l.pos(c),
			Attr{"name", name},
			Attr{"extends", extends},
		))
	}
	return params
}

// typeList lowers super_interfaces / extends_interfaces into a list of types.
func (l *lowerer) typeList(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	types := []any{}
	for _, c := range named(n) {
		if c.Type() == "type_list" {
			for _, t := range named(c) {
				types = append(types, l.typeRef(t))
			}
			continue
		}
		types = append(types, l.typeRef(c))
	}
	return types
}

func (l *lowerer) dimensions(n *sitter.Node) []any {
	dims := []any{}
	if n == nil {
		return dims
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "[" {
			dims = append(dims, nil)
		}
	}
	return dims
}

// typeRef lowers any tree-sitter type node into BasicType or ReferenceType.
func (l *lowerer) typeRef(n *sitter.Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "integral_type", "floating_point_type", "boolean_type", "void_type":
		return New(KindBasicType, l.pos(n),
			Attr{"name", l.text(n)},
			Attr{"dimensions", []any{}},
		)
	case "array_type":
		elem := l.typeRef(n.ChildByFieldName("element"))
		if elem != nil {
			elem.Set("dimensions", l.dimensions(n.ChildByFieldName("dimensions")))
		}
		return elem
	case "annotated_type":
		for _, c := range named(n) {
			if c.Type() != "marker_annotation" && c.Type() != "annotation" {
				return l.typeRef(c)
			}
		}
		return nil
	case "generic_type":
		parts := named(n)
		if len(parts) == 0 {
			return l.referenceType(n, l.text(n))
		}
		base := l.typeRef(parts[0])
		if len(parts) > 1 && parts[1].Type() == "type_arguments" {
			deepestReference(base).Set("arguments", l.typeArguments(parts[1]))
		}
		return base
	case "scoped_type_identifier":
		parts := named(n)
		if len(parts) < 2 {
			return l.referenceType(n, l.text(n))
		}
		base := l.typeRef(parts[0])
		leaf := l.referenceType(parts[len(parts)-1], l.text(parts[len(parts)-1]))
		deepestReference(base).Set("sub_type", leaf)
		return base
	}
	return l.referenceType(n, l.text(n))
}

func (l *lowerer) referenceType(n *sitter.Node, name string) *Node {
	return New(KindReferenceType, l.pos(n),
		Attr{"name", name},
		Attr{"dimensions", []any{}},
		Attr{"arguments", nil},
		Attr{"sub_type", nil},
	)
}

func deepestReference(t *Node) *Node {
	for {
		sub, ok := t.Attr("sub_type").(*Node)
		if !ok || sub == nil {
			return t
		}
		t = sub
	}
}

func (l *lowerer) typeArguments(n *sitter.Node) []any {
	args := []any{}
	for _, c := range named(n) {
		if c.Type() != "wildcard" {
			args = append(args, New(KindTypeArgument, l.pos(c),
				Attr{"type", l.typeRef(c)},
				Attr{"pattern_type", nil},
			))
			continue
		}
		var bound any
		pattern := "?"
		for _, part := range named(c) {
			switch part.Type() {
			case "super":
				pattern = "super"
			case "marker_annotation", "annotation":
			default:
				bound = l.typeRef(part)
			}
		}
		if bound != nil && pattern == "?" {
			pattern = "extends"
		}
		args = append(args, New(KindTypeArgument, l.pos(c),
			Attr{"type", bound},
			Attr{"pattern_type", pattern},
		))
	}
	return args
}

func (l *lowerer) annotation(n *sitter.Node) *Node {
	var element any
	if args := n.ChildByFieldName("arguments"); args != nil {
		parts := named(args)
		if len(parts) > 0 && parts[0].Type() == "element_value_pair" {
			pairs := []any{}
			for _, p := range parts {
				pairs = append(pairs, New(KindElementValuePair, l.pos(p),
					Attr{"name", l.text(p.ChildByFieldName("key"))},
					Attr{"value", l.elementValue(p.ChildByFieldName("value"))},
				))
			}
			element = pairs
		} else if len(parts) > 0 {
			element = l.elementValue(parts[0])
		}
	}
	return New(KindAnnotation, l.pos(n),
		Attr{"name", l.text(n.ChildByFieldName("name"))},
		Attr{"element", element},
	)
}

func (l *lowerer) elementValue(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "element_value_array_initializer":
		values := []any{}
		for _, c := range named(n) {
			values = append(values, l.elementValue(c))
		}
		return New(KindElementArrayValue, l.pos(n), Attr{"values", values})
	case "marker_annotation", "annotation":
		return l.annotation(n)
	}
	return l.expression(n)
}

// generic lowers a construct without a dedicated category, keeping its
// named children in order so nothing underneath it is lost.
func (l *lowerer) generic(kind Kind, n *sitter.Node) *Node {
	children := []any{}
	parts := named(n)
	for _, c := range parts {
		children = append(children, l.anyNode(c))
	}
	node := New(kind, l.pos(n), Attr{"children", children})
	if len(parts) == 0 {
		node.Set("value", l.text(n))
	}
	return node
}

func (l *lowerer) anyNode(n *sitter.Node) any {
	if decl := l.typeDeclaration(n); decl != nil {
		return decl
	}
	if isStatement(n.Type()) {
		return l.statement(n, nil)
	}
	if isType(n.Type()) {
		return l.typeRef(n)
	}
	switch n.Type() {
	case "modifiers", "type_arguments", "type_parameters", "formal_parameters", "dimensions":
		return nil
	case "variable_declarator":
		return l.variableDeclarator(n)
	case "switch_block":
		return l.switchCases(n)
	case "marker_annotation", "annotation":
		return l.annotation(n)
	}
	return l.expression(n)
}

func isType(t string) bool {
	switch t {
	case "integral_type", "floating_point_type", "boolean_type", "void_type",
		"type_identifier", "scoped_type_identifier", "generic_type", "array_type",
		"annotated_type":
		return true
	}
	return false
}
