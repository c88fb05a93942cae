// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package dom defines a read-only tree of JSON values, and a parser that
// constructs such trees from JSON text in place.
package dom

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/creachadair/jarchive/internal/escape"
	"go4.org/mem"
)

// Kind identifies the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Null   Kind = iota // the constant null
	Bool               // true or false
	Uint               // an integer in the range of uint64
	Int                // a negative integer in the range of int64
	Float              // a number with a fraction or exponent, or an out-of-range integer
	String             // a string
	Array              // an ordered sequence of values
	Object             // an ordered collection of uniquely-named members
)

var kindStr = [...]string{
	Null:   "null",
	Bool:   "bool",
	Uint:   "uint",
	Int:    "int",
	Float:  "float",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// A Value is a single node of a JSON document. The zero Value is null, and a
// nil *Value behaves as null for all read operations.
type Value struct {
	kind    Kind
	b       bool
	u       uint64
	i       int64
	f       float64
	text    []byte   // String: decoded contents, a view of the document buffer
	elems   []*Value // Array
	members []Member // Object
}

// A Member is a single name-value pair belonging to an object.
type Member struct {
	name  []byte
	Value *Value
}

// Name returns a copy of the name of m.
func (m Member) Name() string { return string(m.name) }

// Kind reports the kind of v.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// IsNumber reports whether v is a Uint, Int, or Float.
func (v *Value) IsNumber() bool {
	k := v.Kind()
	return k == Uint || k == Int || k == Float
}

// FitsUint reports whether v is an integer representable as a uint64.
func (v *Value) FitsUint() bool { return v.Kind() == Uint }

// FitsInt reports whether v is an integer representable as an int64.
func (v *Value) FitsInt() bool {
	switch v.Kind() {
	case Int:
		return true
	case Uint:
		return v.u <= math.MaxInt64
	}
	return false
}

// Bool returns the value of a Bool, or false.
func (v *Value) Bool() bool { return v.Kind() == Bool && v.b }

// Uint returns the value of a Uint, or 0.
func (v *Value) Uint() uint64 {
	if v.Kind() == Uint {
		return v.u
	}
	return 0
}

// Int returns the value of an integer that fits in an int64, or 0.
func (v *Value) Int() int64 {
	switch {
	case v.Kind() == Int:
		return v.i
	case v.FitsInt():
		return int64(v.u)
	}
	return 0
}

// Float returns the value of any number as a float64, or 0.
func (v *Value) Float() float64 {
	switch v.Kind() {
	case Uint:
		return float64(v.u)
	case Int:
		return float64(v.i)
	case Float:
		return v.f
	}
	return 0
}

// Text returns a copy of the contents of a String, or "".
func (v *Value) Text() string {
	if v.Kind() == String {
		return string(v.text)
	}
	return ""
}

// Len returns the number of elements of an Array or members of an Object.
// It returns 0 for all other kinds.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.elems)
	case Object:
		return len(v.members)
	}
	return 0
}

// Index returns the element of an Array at offset i, or nil if v is not an
// Array or i is out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != Array || i < 0 || i >= len(v.elems) {
		return nil
	}
	return v.elems[i]
}

// Members returns the members of an Object in input order, or nil.
// The caller must not modify the returned slice.
func (v *Value) Members() []Member {
	if v.Kind() != Object {
		return nil
	}
	return v.members
}

// Find returns the value of the member of v with the given name, or nil if v
// is not an Object or has no such member.
func (v *Value) Find(name string) *Value {
	if i := v.find(mem.S(name)); i >= 0 {
		return v.members[i].Value
	}
	return nil
}

// Has reports whether v is an Object having a member with the given name.
func (v *Value) Has(name string) bool { return v.find(mem.S(name)) >= 0 }

func (v *Value) find(name mem.RO) int {
	if v.Kind() != Object {
		return -1
	}
	for i, m := range v.members {
		if mem.B(m.name).Equal(name) {
			return i
		}
	}
	return -1
}

// JSON returns the compact JSON encoding of v.
func (v *Value) JSON() string { return string(v.AppendJSON(nil)) }

// AppendJSON appends the compact JSON encoding of v to dst.
func (v *Value) AppendJSON(dst []byte) []byte {
	switch v.Kind() {
	case Null:
		return append(dst, "null"...)
	case Bool:
		return strconv.AppendBool(dst, v.b)
	case Uint:
		return strconv.AppendUint(dst, v.u, 10)
	case Int:
		return strconv.AppendInt(dst, v.i, 10)
	case Float:
		return AppendFloat(dst, v.f)
	case String:
		return escape.AppendQuoted(dst, mem.B(v.text))
	case Array:
		dst = append(dst, '[')
		for i, elt := range v.elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = elt.AppendJSON(dst)
		}
		return append(dst, ']')
	case Object:
		dst = append(dst, '{')
		for i, m := range v.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = escape.AppendQuoted(dst, mem.B(m.name))
			dst = append(dst, ':')
			dst = m.Value.AppendJSON(dst)
		}
		return append(dst, '}')
	}
	panic(fmt.Sprintf("invalid kind %v", v.kind))
}

func (v *Value) String() string {
	switch v.Kind() {
	case Array:
		return fmt.Sprintf("Array(len=%d)", len(v.elems))
	case Object:
		return fmt.Sprintf("Object(len=%d)", len(v.members))
	default:
		return v.JSON()
	}
}

// AppendFloat appends the JSON encoding of f to dst, in the form used for
// Float values. The encoding always has a fraction or an exponent, so that it
// parses back as a Float. JSON cannot represent NaN or infinities, so these
// are encoded as null.
func AppendFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// Trim a leading zero from a two-digit negative exponent: 1e-07 becomes 1e-7.
		if n := len(dst); n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	if !bytes.ContainsAny(dst[start:], ".e") {
		dst = append(dst, ".0"...)
	}
	return dst
}
