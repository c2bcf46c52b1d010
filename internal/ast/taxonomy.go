package ast

import "javacheck/internal/javatree"

// FromKind maps a parser node category onto its taxonomy tag. Every declared
// javatree.Kind has exactly one tag; anything else is an *UnknownKindError.
func FromKind(k javatree.Kind) (NodeType, error) {
	switch k {
	case javatree.KindAnnotation:
		return Annotation, nil
	case javatree.KindAnnotationDeclaration:
		return AnnotationDeclaration, nil
	case javatree.KindAnnotationMethod:
		return AnnotationMethod, nil
	case javatree.KindArrayCreator:
		return ArrayCreator, nil
	case javatree.KindArrayInitializer:
		return ArrayInitializer, nil
	case javatree.KindArraySelector:
		return ArraySelector, nil
	case javatree.KindAssertStatement:
		return AssertStatement, nil
	case javatree.KindAssignment:
		return Assignment, nil
	case javatree.KindBasicType:
		return BasicType, nil
	case javatree.KindBinaryOperation:
		return BinaryOperation, nil
	case javatree.KindBlockStatement:
		return BlockStatement, nil
	case javatree.KindBreakStatement:
		return BreakStatement, nil
	case javatree.KindCast:
		return Cast, nil
	case javatree.KindCatchClause:
		return CatchClause, nil
	case javatree.KindCatchClauseParameter:
		return CatchClauseParameter, nil
	case javatree.KindClassCreator:
		return ClassCreator, nil
	case javatree.KindClassDeclaration:
		return ClassDeclaration, nil
	case javatree.KindClassReference:
		return ClassReference, nil
	case javatree.KindCompilationUnit:
		return CompilationUnit, nil
	case javatree.KindConstantDeclaration:
		return ConstantDeclaration, nil
	case javatree.KindConstructorDeclaration:
		return ConstructorDeclaration, nil
	case javatree.KindContinueStatement:
		return ContinueStatement, nil
	case javatree.KindCreator:
		return Creator, nil
	case javatree.KindDeclaration:
		return Declaration, nil
	case javatree.KindDocumented:
		return Documented, nil
	case javatree.KindDoStatement:
		return DoStatement, nil
	case javatree.KindElementArrayValue:
		return ElementArrayValue, nil
	case javatree.KindElementValuePair:
		return ElementValuePair, nil
	case javatree.KindEnhancedForControl:
		return EnhancedForControl, nil
	case javatree.KindEnumBody:
		return EnumBody, nil
	case javatree.KindEnumConstantDeclaration:
		return EnumConstantDeclaration, nil
	case javatree.KindEnumDeclaration:
		return EnumDeclaration, nil
	case javatree.KindExplicitConstructorInvocation:
		return ExplicitConstructorInvocation, nil
	case javatree.KindExpression:
		return Expression, nil
	case javatree.KindFieldDeclaration:
		return FieldDeclaration, nil
	case javatree.KindForControl:
		return ForControl, nil
	case javatree.KindFormalParameter:
		return FormalParameter, nil
	case javatree.KindForStatement:
		return ForStatement, nil
	case javatree.KindIfStatement:
		return IfStatement, nil
	case javatree.KindImport:
		return Import, nil
	case javatree.KindInferredFormalParameter:
		return InferredFormalParameter, nil
	case javatree.KindInnerClassCreator:
		return InnerClassCreator, nil
	case javatree.KindInterfaceDeclaration:
		return InterfaceDeclaration, nil
	case javatree.KindInvocation:
		return Invocation, nil
	case javatree.KindLambdaExpression:
		return LambdaExpression, nil
	case javatree.KindLiteral:
		return Literal, nil
	case javatree.KindLocalVariableDeclaration:
		return LocalVariableDeclaration, nil
	case javatree.KindMember:
		return Member, nil
	case javatree.KindMemberReference:
		return MemberReference, nil
	case javatree.KindMethodDeclaration:
		return MethodDeclaration, nil
	case javatree.KindMethodInvocation:
		return MethodInvocation, nil
	case javatree.KindMethodReference:
		return MethodReference, nil
	case javatree.KindPackageDeclaration:
		return PackageDeclaration, nil
	case javatree.KindPrimary:
		return Primary, nil
	case javatree.KindReferenceType:
		return ReferenceType, nil
	case javatree.KindReturnStatement:
		return ReturnStatement, nil
	case javatree.KindStatement:
		return Statement, nil
	case javatree.KindStatementExpression:
		return StatementExpression, nil
	case javatree.KindSuperConstructorInvocation:
		return SuperConstructorInvocation, nil
	case javatree.KindSuperMemberReference:
		return SuperMemberReference, nil
	case javatree.KindSuperMethodInvocation:
		return SuperMethodInvocation, nil
	case javatree.KindSwitchStatement:
		return SwitchStatement, nil
	case javatree.KindSwitchStatementCase:
		return SwitchStatementCase, nil
	case javatree.KindSynchronizedStatement:
		return SynchronizedStatement, nil
	case javatree.KindTernaryExpression:
		return TernaryExpression, nil
	case javatree.KindThis:
		return This, nil
	case javatree.KindThrowStatement:
		return ThrowStatement, nil
	case javatree.KindTryResource:
		return TryResource, nil
	case javatree.KindTryStatement:
		return TryStatement, nil
	case javatree.KindType:
		return Type, nil
	case javatree.KindTypeArgument:
		return TypeArgument, nil
	case javatree.KindTypeDeclaration:
		return TypeDeclaration, nil
	case javatree.KindTypeParameter:
		return TypeParameter, nil
	case javatree.KindVariableDeclaration:
		return VariableDeclaration, nil
	case javatree.KindVariableDeclarator:
		return VariableDeclarator, nil
	case javatree.KindVoidClassReference:
		return VoidClassReference, nil
	case javatree.KindWhileStatement:
		return WhileStatement, nil
	}
	return 0, &UnknownKindError{Kind: k}
}
