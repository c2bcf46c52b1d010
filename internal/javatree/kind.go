package javatree

// Kind identifies the syntactic category of a parsed Java node. The set is
// closed: the frontend only ever produces the values declared here.
type Kind int

const (
	KindInvalid Kind = iota
	KindAnnotation
	KindAnnotationDeclaration
	KindAnnotationMethod
	KindArrayCreator
	KindArrayInitializer
	KindArraySelector
	KindAssertStatement
	KindAssignment
	KindBasicType
	KindBinaryOperation
	KindBlockStatement
	KindBreakStatement
	KindCast
	KindCatchClause
	KindCatchClauseParameter
	KindClassCreator
	KindClassDeclaration
	KindClassReference
	KindCompilationUnit
	KindConstantDeclaration
	KindConstructorDeclaration
	KindContinueStatement
	KindCreator
	KindDeclaration
	KindDocumented
	KindDoStatement
	KindElementArrayValue
	KindElementValuePair
	KindEnhancedForControl
	KindEnumBody
	KindEnumConstantDeclaration
	KindEnumDeclaration
	KindExplicitConstructorInvocation
	KindExpression
	KindFieldDeclaration
	KindForControl
	KindFormalParameter
	KindForStatement
	KindIfStatement
	KindImport
	KindInferredFormalParameter
	KindInnerClassCreator
	KindInterfaceDeclaration
	KindInvocation
	KindLambdaExpression
	KindLiteral
	KindLocalVariableDeclaration
	KindMember
	KindMemberReference
	KindMethodDeclaration
	KindMethodInvocation
	KindMethodReference
	KindPackageDeclaration
	KindPrimary
	KindReferenceType
	KindReturnStatement
	KindStatement
	KindStatementExpression
	KindSuperConstructorInvocation
	KindSuperMemberReference
	KindSuperMethodInvocation
	KindSwitchStatement
	KindSwitchStatementCase
	KindSynchronizedStatement
	KindTernaryExpression
	KindThis
	KindThrowStatement
	KindTryResource
	KindTryStatement
	KindType
	KindTypeArgument
	KindTypeDeclaration
	KindTypeParameter
	KindVariableDeclaration
	KindVariableDeclarator
	KindVoidClassReference
	KindWhileStatement

	kindCount
)

var kindNames = [...]string{
	KindInvalid:                       "Invalid",
	KindAnnotation:                    "Annotation",
	KindAnnotationDeclaration:         "AnnotationDeclaration",
	KindAnnotationMethod:              "AnnotationMethod",
	KindArrayCreator:                  "ArrayCreator",
	KindArrayInitializer:              "ArrayInitializer",
	KindArraySelector:                 "ArraySelector",
	KindAssertStatement:               "AssertStatement",
	KindAssignment:                    "Assignment",
	KindBasicType:                     "BasicType",
	KindBinaryOperation:               "BinaryOperation",
	KindBlockStatement:                "BlockStatement",
	KindBreakStatement:                "BreakStatement",
	KindCast:                          "Cast",
	KindCatchClause:                   "CatchClause",
	KindCatchClauseParameter:          "CatchClauseParameter",
	KindClassCreator:                  "ClassCreator",
	KindClassDeclaration:              "ClassDeclaration",
	KindClassReference:                "ClassReference",
	KindCompilationUnit:               "CompilationUnit",
	KindConstantDeclaration:           "ConstantDeclaration",
	KindConstructorDeclaration:        "ConstructorDeclaration",
	KindContinueStatement:             "ContinueStatement",
	KindCreator:                       "Creator",
	KindDeclaration:                   "Declaration",
	KindDocumented:                    "Documented",
	KindDoStatement:                   "DoStatement",
	KindElementArrayValue:             "ElementArrayValue",
	KindElementValuePair:              "ElementValuePair",
	KindEnhancedForControl:            "EnhancedForControl",
	KindEnumBody:                      "EnumBody",
	KindEnumConstantDeclaration:       "EnumConstantDeclaration",
	KindEnumDeclaration:               "EnumDeclaration",
	KindExplicitConstructorInvocation: "ExplicitConstructorInvocation",
	KindExpression:                    "Expression",
	KindFieldDeclaration:              "FieldDeclaration",
	KindForControl:                    "ForControl",
	KindFormalParameter:               "FormalParameter",
	KindForStatement:                  "ForStatement",
	KindIfStatement:                   "IfStatement",
	KindImport:                        "Import",
	KindInferredFormalParameter:       "InferredFormalParameter",
	KindInnerClassCreator:             "InnerClassCreator",
	KindInterfaceDeclaration:          "InterfaceDeclaration",
	KindInvocation:                    "Invocation",
	KindLambdaExpression:              "LambdaExpression",
	KindLiteral:                       "Literal",
	KindLocalVariableDeclaration:      "LocalVariableDeclaration",
	KindMember:                        "Member",
	KindMemberReference:               "MemberReference",
	KindMethodDeclaration:             "MethodDeclaration",
	KindMethodInvocation:              "MethodInvocation",
	KindMethodReference:               "MethodReference",
	KindPackageDeclaration:            "PackageDeclaration",
	KindPrimary:                       "Primary",
	KindReferenceType:                 "ReferenceType",
	KindReturnStatement:               "ReturnStatement",
	KindStatement:                     "Statement",
	KindStatementExpression:           "StatementExpression",
	KindSuperConstructorInvocation:    "SuperConstructorInvocation",
	KindSuperMemberReference:          "SuperMemberReference",
	KindSuperMethodInvocation:         "SuperMethodInvocation",
	KindSwitchStatement:               "SwitchStatement",
	KindSwitchStatementCase:           "SwitchStatementCase",
	KindSynchronizedStatement:         "SynchronizedStatement",
	KindTernaryExpression:             "TernaryExpression",
	KindThis:                          "This",
	KindThrowStatement:                "ThrowStatement",
	KindTryResource:                   "TryResource",
	KindTryStatement:                  "TryStatement",
	KindType:                          "Type",
	KindTypeArgument:                  "TypeArgument",
	KindTypeDeclaration:               "TypeDeclaration",
	KindTypeParameter:                 "TypeParameter",
	KindVariableDeclaration:           "VariableDeclaration",
	KindVariableDeclarator:            "VariableDeclarator",
	KindVoidClassReference:            "VoidClassReference",
	KindWhileStatement:                "WhileStatement",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(unknown)"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared categories.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// Kinds returns every valid category in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// isPrimary reports whether nodes of kind k carry the primary attribute
// prefix (prefix_operators, postfix_operators, qualifier, selectors).
func (k Kind) isPrimary() bool {
	switch k {
	case KindPrimary, KindLiteral, KindThis, KindMemberReference, KindInvocation,
		KindExplicitConstructorInvocation, KindSuperConstructorInvocation,
		KindMethodInvocation, KindSuperMethodInvocation, KindSuperMemberReference,
		KindClassReference, KindVoidClassReference, KindCreator, KindClassCreator,
		KindInnerClassCreator, KindArrayCreator, KindLambdaExpression:
		return true
	}
	return false
}
