package ast

import (
	"fmt"
	"strings"
)

// NodeType is the closed set of node kinds an AST can contain: one per parser
// node category plus the synthetic String and Collection leaf kinds.
type NodeType int

const (
	Annotation NodeType = iota + 1
	AnnotationDeclaration
	AnnotationMethod
	ArrayCreator
	ArrayInitializer
	ArraySelector
	AssertStatement
	Assignment
	BasicType
	BinaryOperation
	BlockStatement
	BreakStatement
	Cast
	CatchClause
	CatchClauseParameter
	ClassCreator
	ClassDeclaration
	ClassReference
	Collection // synthetic: a set of text values
	CompilationUnit
	ConstantDeclaration
	ConstructorDeclaration
	ContinueStatement
	Creator
	Declaration
	DoStatement
	Documented
	ElementArrayValue
	ElementValuePair
	EnhancedForControl
	EnumBody
	EnumConstantDeclaration
	EnumDeclaration
	ExplicitConstructorInvocation
	Expression
	FieldDeclaration
	ForControl
	ForStatement
	FormalParameter
	IfStatement
	Import
	InferredFormalParameter
	InnerClassCreator
	InterfaceDeclaration
	Invocation
	LambdaExpression
	Literal
	LocalVariableDeclaration
	Member
	MemberReference
	MethodDeclaration
	MethodInvocation
	MethodReference
	PackageDeclaration
	Primary
	ReferenceType
	ReturnStatement
	Statement
	StatementExpression
	String // synthetic: a text value
	SuperConstructorInvocation
	SuperMemberReference
	SuperMethodInvocation
	SwitchStatement
	SwitchStatementCase
	SynchronizedStatement
	TernaryExpression
	This
	ThrowStatement
	TryResource
	TryStatement
	Type
	TypeArgument
	TypeDeclaration
	TypeParameter
	VariableDeclaration
	VariableDeclarator
	VoidClassReference
	WhileStatement

	nodeTypeEnd
)

var nodeTypeNames = [...]string{
	Annotation:                    "ANNOTATION",
	AnnotationDeclaration:         "ANNOTATION_DECLARATION",
	AnnotationMethod:              "ANNOTATION_METHOD",
	ArrayCreator:                  "ARRAY_CREATOR",
	ArrayInitializer:              "ARRAY_INITIALIZER",
	ArraySelector:                 "ARRAY_SELECTOR",
	AssertStatement:               "ASSERT_STATEMENT",
	Assignment:                    "ASSIGNMENT",
	BasicType:                     "BASIC_TYPE",
	BinaryOperation:               "BINARY_OPERATION",
	BlockStatement:                "BLOCK_STATEMENT",
	BreakStatement:                "BREAK_STATEMENT",
	Cast:                          "CAST",
	CatchClause:                   "CATCH_CLAUSE",
	CatchClauseParameter:          "CATCH_CLAUSE_PARAMETER",
	ClassCreator:                  "CLASS_CREATOR",
	ClassDeclaration:              "CLASS_DECLARATION",
	ClassReference:                "CLASS_REFERENCE",
	Collection:                    "COLLECTION",
	CompilationUnit:               "COMPILATION_UNIT",
	ConstantDeclaration:           "CONSTANT_DECLARATION",
	ConstructorDeclaration:        "CONSTRUCTOR_DECLARATION",
	ContinueStatement:             "CONTINUE_STATEMENT",
	Creator:                       "CREATOR",
	Declaration:                   "DECLARATION",
	DoStatement:                   "DO_STATEMENT",
	Documented:                    "DOCUMENTED",
	ElementArrayValue:             "ELEMENT_ARRAY_VALUE",
	ElementValuePair:              "ELEMENT_VALUE_PAIR",
	EnhancedForControl:            "ENHANCED_FOR_CONTROL",
	EnumBody:                      "ENUM_BODY",
	EnumConstantDeclaration:       "ENUM_CONSTANT_DECLARATION",
	EnumDeclaration:               "ENUM_DECLARATION",
	ExplicitConstructorInvocation: "EXPLICIT_CONSTRUCTOR_INVOCATION",
	Expression:                    "EXPRESSION",
	FieldDeclaration:              "FIELD_DECLARATION",
	ForControl:                    "FOR_CONTROL",
	ForStatement:                  "FOR_STATEMENT",
	FormalParameter:               "FORMAL_PARAMETER",
	IfStatement:                   "IF_STATEMENT",
	Import:                        "IMPORT",
	InferredFormalParameter:       "INFERRED_FORMAL_PARAMETER",
	InnerClassCreator:             "INNER_CLASS_CREATOR",
	InterfaceDeclaration:          "INTERFACE_DECLARATION",
	Invocation:                    "INVOCATION",
	LambdaExpression:              "LAMBDA_EXPRESSION",
	Literal:                       "LITERAL",
	LocalVariableDeclaration:      "LOCAL_VARIABLE_DECLARATION",
	Member:                        "MEMBER",
	MemberReference:               "MEMBER_REFERENCE",
	MethodDeclaration:             "METHOD_DECLARATION",
	MethodInvocation:              "METHOD_INVOCATION",
	MethodReference:               "METHOD_REFERENCE",
	PackageDeclaration:            "PACKAGE_DECLARATION",
	Primary:                       "PRIMARY",
	ReferenceType:                 "REFERENCE_TYPE",
	ReturnStatement:               "RETURN_STATEMENT",
	Statement:                     "STATEMENT",
	StatementExpression:           "STATEMENT_EXPRESSION",
	String:                        "STRING",
	SuperConstructorInvocation:    "SUPER_CONSTRUCTOR_INVOCATION",
	SuperMemberReference:          "SUPER_MEMBER_REFERENCE",
	SuperMethodInvocation:         "SUPER_METHOD_INVOCATION",
	SwitchStatement:               "SWITCH_STATEMENT",
	SwitchStatementCase:           "SWITCH_STATEMENT_CASE",
	SynchronizedStatement:         "SYNCHRONIZED_STATEMENT",
	TernaryExpression:             "TERNARY_EXPRESSION",
	This:                          "THIS",
	ThrowStatement:                "THROW_STATEMENT",
	TryResource:                   "TRY_RESOURCE",
	TryStatement:                  "TRY_STATEMENT",
	Type:                          "TYPE",
	TypeArgument:                  "TYPE_ARGUMENT",
	TypeDeclaration:               "TYPE_DECLARATION",
	TypeParameter:                 "TYPE_PARAMETER",
	VariableDeclaration:           "VARIABLE_DECLARATION",
	VariableDeclarator:            "VARIABLE_DECLARATOR",
	VoidClassReference:            "VOID_CLASS_REFERENCE",
	WhileStatement:                "WHILE_STATEMENT",
}

// String returns the upper-snake name of the node type, e.g. METHOD_DECLARATION.
func (t NodeType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
	return nodeTypeNames[t]
}

// Valid reports whether t is a member of the taxonomy.
func (t NodeType) Valid() bool {
	return t >= Annotation && t < nodeTypeEnd
}

// AllNodeTypes returns every node type in declaration order.
func AllNodeTypes() []NodeType {
	types := make([]NodeType, 0, nodeTypeEnd-Annotation)
	for t := Annotation; t < nodeTypeEnd; t++ {
		types = append(types, t)
	}
	return types
}

// ParseNodeType converts an upper-snake name (case-insensitive) back into a
// NodeType.
func ParseNodeType(name string) (NodeType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t := Annotation; t < nodeTypeEnd; t++ {
		if nodeTypeNames[t] == upper {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown node type %q", name)
}
