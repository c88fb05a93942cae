// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jarchive

import (
	"maps"
	"slices"
)

// A Registry maps the discriminant values of a family of variant types to
// constructors for those types. Each variant is encoded as a JSON object
// having a member whose string value (the tag) identifies its type:
//
//	{"type":"circle","radius":2.5}
//
// A Registry is not safe for concurrent registration, but once populated it
// may be shared by concurrent readers.
type Registry[T any] struct {
	field string
	ctors map[string]func() T
}

// NewRegistry constructs an empty Registry that stores the tag of each
// variant in the member with the given name.
func NewRegistry[T any](field string) *Registry[T] {
	return &Registry[T]{field: field, ctors: make(map[string]func() T)}
}

// Field returns the name of the member that holds the tag.
func (g *Registry[T]) Field() string { return g.field }

// Register adds a constructor for the variant with the given tag, and
// returns g to permit chaining. It panics if tag is already registered.
func (g *Registry[T]) Register(tag string, ctor func() T) *Registry[T] {
	if _, ok := g.ctors[tag]; ok {
		usagef("Register", "duplicate tag %q", tag)
	}
	g.ctors[tag] = ctor
	return g
}

// Tags returns the registered tags in lexicographic order.
func (g *Registry[T]) Tags() []string { return slices.Sorted(maps.Keys(g.ctors)) }

// WriteTag writes the tag member for a variant to w, whose innermost open
// container must be an object. It panics with a *UsageError if tag is not
// registered.
func (g *Registry[T]) WriteTag(w *Writer, tag string) *Writer {
	if _, ok := g.ctors[tag]; !ok {
		usagef("WriteTag", "unregistered tag %q", tag)
	}
	return w.Member(g.field).Str(tag)
}

// Decode reads the tag member from the innermost open object of r, and
// returns a new value of the corresponding variant. The caller then reads
// the remainder of the object into the result.
//
// If the tag is missing, or is not a string, or does not name a registered
// variant, Decode records an error in r and returns a zero T and false. An
// unregistered tag is reported as ErrVariant.
func (g *Registry[T]) Decode(r *Reader) (T, bool) {
	var zero T
	var tag string
	if !r.FindMember(g.field).Str(&tag).OK() {
		return zero, false
	}
	ctor, ok := g.ctors[tag]
	if !ok {
		r.fail(ErrVariant, "unknown %s %q", g.field, tag)
		return zero, false
	}
	return ctor(), true
}
