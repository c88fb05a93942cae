// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jarchive

import (
	"fmt"
	"strings"
)

// ErrorKind classifies the data errors recorded by a Reader. Each kind is
// itself an error, so that a caller may write
//
//	if errors.Is(r.Err(), jarchive.ErrMissingMember) { ... }
type ErrorKind int

// Constants defining the valid ErrorKind values.
const (
	ErrSyntax        ErrorKind = iota + 1 // the input is not valid JSON
	ErrMissingMember                      // the object has no member with the requested name
	ErrType                               // the current value has the wrong type
	ErrExhausted                          // every element of the array was already read
	ErrRange                              // the number does not fit in the destination
	ErrState                              // the operation does not fit the traversal state
	ErrVariant                            // the discriminant names no registered variant
	ErrInvalid                            // reported by the caller through Fail
)

var errorKindStr = [...]string{
	ErrSyntax:        "syntax error",
	ErrMissingMember: "missing member",
	ErrType:          "type mismatch",
	ErrExhausted:     "array exhausted",
	ErrRange:         "value out of range",
	ErrState:         "invalid state",
	ErrVariant:       "unknown variant",
	ErrInvalid:       "invalid data",
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string {
	if k <= 0 || int(k) >= len(errorKindStr) {
		return fmt.Sprintf("error kind %d", int(k))
	}
	return errorKindStr[k]
}

// ReadError is the concrete type of the error reported by Reader.Err.
// It describes the first failure recorded by the reader.
type ReadError struct {
	Kind ErrorKind

	// The location in the document of the value being visited when the error
	// occurred, for example "$.students[1].age". The root is "$".
	Path string

	// For ErrSyntax, the location of the error in the input text.
	// Line is 1-based and Column is a 0-based byte offset; both are zero for
	// other kinds.
	Line, Column int

	Message string

	err error
}

// Error satisfies the error interface.
func (e *ReadError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at %d:%d", e.Line, e.Column)
	} else if e.Path != "" {
		fmt.Fprintf(&sb, " at %s", e.Path)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Is reports whether target is the ErrorKind of e.
func (e *ReadError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// Unwrap supports error wrapping.
func (e *ReadError) Unwrap() error { return e.err }

// UsageError is the value of a panic reporting that a Reader or Writer was
// called in a sequence that no correct program produces, such as closing a
// container that was never opened. Usage errors reflect defects in the
// calling code, not in the data being archived.
type UsageError struct {
	Op      string // the name of the method that detected the error
	Message string
}

// Error satisfies the error interface.
func (u *UsageError) Error() string {
	return fmt.Sprintf("jarchive: invalid %s: %s", u.Op, u.Message)
}

func usagef(op, msg string, args ...any) {
	panic(&UsageError{Op: op, Message: fmt.Sprintf(msg, args...)})
}

// recoverUsage converts a *UsageError panic into an error stored in *errp.
// Other panics are propagated.
func recoverUsage(errp *error) {
	if x := recover(); x != nil {
		if u, ok := x.(*UsageError); ok {
			*errp = u
			return
		}
		panic(x)
	}
}
