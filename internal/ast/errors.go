package ast

import (
	"errors"
	"fmt"

	"javacheck/internal/javatree"
)

// Sentinel errors. Every error returned by this package wraps one of them, so
// callers can classify failures with errors.Is.
var (
	ErrTaxonomyMismatch = errors.New("unknown parser node kind")
	ErrMalformedInput   = errors.New("malformed parser input")
	ErrKindMismatch     = errors.New("node kind mismatch")
	ErrDecode           = errors.New("cannot decode node")
	ErrInvalidRoot      = errors.New("invalid root")
)

// UnknownKindError is returned when the parser produced a category the
// taxonomy does not know.
type UnknownKindError struct {
	Kind javatree.Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown parser node kind %s (%d)", e.Kind, int(e.Kind))
}

func (e *UnknownKindError) Unwrap() error { return ErrTaxonomyMismatch }

// MalformedCollectionError is returned when a set-valued child holds
// something other than text.
type MalformedCollectionError struct {
	Value any
}

func (e *MalformedCollectionError) Error() string {
	return fmt.Sprintf("unexpected %T inside COLLECTION node", e.Value)
}

func (e *MalformedCollectionError) Unwrap() error { return ErrMalformedInput }

// KindMismatchError is returned by typed decoders invoked on a node of the
// wrong type.
type KindMismatchError struct {
	Op   string
	Node NodeID
	Want NodeType
	Got  NodeType
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%s: node %d is %s, want %s", e.Op, e.Node, e.Got, e.Want)
}

func (e *KindMismatchError) Unwrap() error { return ErrKindMismatch }

// DecodeError is returned when a node's STRING children do not match the
// layout a decoder expects.
type DecodeError struct {
	Op     string
	Node   NodeID
	Values []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: node %d has %d children with type STRING: %q",
		e.Op, e.Node, len(e.Values), e.Values)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }
