package ast

// MethodInvocationParams is the decoded receiver and method name of a call.
type MethodInvocationParams struct {
	ObjectName string
	MethodName string
}

// MemberReferenceParams is the decoded form of a member reference.
type MemberReferenceParams struct {
	ObjectName    string
	MemberName    string
	UnaryOperator string
}

func (a *AST) expect(op string, id NodeID, want NodeType) error {
	if got := a.Type(id); got != want {
		return &KindMismatchError{Op: op, Node: id, Want: want, Got: got}
	}
	return nil
}

func (a *AST) stringChildren(id NodeID) []string {
	var values []string
	for c := range a.ChildrenWithType(id, String) {
		values = append(values, a.Text(c))
	}
	return values
}

// BinaryOperationName returns the operator of a BINARY_OPERATION node.
func (a *AST) BinaryOperationName(id NodeID) (string, error) {
	const op = "binary operation name"
	if err := a.expect(op, id, BinaryOperation); err != nil {
		return "", err
	}
	name := a.FirstNChildrenWithType(id, String, 1)[0]
	if name == NoNode {
		return "", &DecodeError{Op: op, Node: id}
	}
	return a.Text(name), nil
}

// MethodInvocationParams decodes a METHOD_INVOCATION node. A single STRING
// child is the method name with an implicit receiver; two are the receiver
// and the method name.
func (a *AST) MethodInvocationParams(id NodeID) (MethodInvocationParams, error) {
	const op = "method invocation params"
	if err := a.expect(op, id, MethodInvocation); err != nil {
		return MethodInvocationParams{}, err
	}

	values := a.stringChildren(id)
	switch len(values) {
	case 1:
		return MethodInvocationParams{MethodName: values[0]}, nil
	case 2:
		return MethodInvocationParams{ObjectName: values[0], MethodName: values[1]}, nil
	}
	return MethodInvocationParams{}, &DecodeError{Op: op, Node: id, Values: values}
}

// MemberReferenceParams decodes a MEMBER_REFERENCE node from its one to
// three STRING children. With three children the unary operator comes first.
func (a *AST) MemberReferenceParams(id NodeID) (MemberReferenceParams, error) {
	const op = "member reference params"
	if err := a.expect(op, id, MemberReference); err != nil {
		return MemberReferenceParams{}, err
	}

	values := a.stringChildren(id)
	switch len(values) {
	case 1:
		return MemberReferenceParams{MemberName: values[0]}, nil
	case 2:
		return MemberReferenceParams{ObjectName: values[0], MemberName: values[1]}, nil
	case 3:
		return MemberReferenceParams{
			UnaryOperator: values[0],
			ObjectName:    values[1],
			MemberName:    values[2],
		}, nil
	}
	return MemberReferenceParams{}, &DecodeError{Op: op, Node: id, Values: values}
}
