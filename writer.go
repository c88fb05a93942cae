// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jarchive

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/creachadair/jarchive/dom"
	"github.com/creachadair/jarchive/internal/escape"
	"go4.org/mem"
)

// A Writer renders compact JSON text as the caller describes a value:
//
//	w := jarchive.NewWriter()
//	w.StartObject()
//	w.Member("name").Str("Lua")
//	w.Member("age").Int(9)
//	w.EndObject()
//	fmt.Println(w.String()) // {"name":"Lua","age":9}
//
// A Writer checks that the sequence of calls describes exactly one well-formed
// JSON value. A call that would make the output malformed, such as a value
// inside an object with no member name, a repeated member name, or EndArray
// when the innermost container is an object, panics with a *UsageError.
// Use Marshal to convert such a panic into an error.
//
// The methods of a Writer return the receiver to permit chaining.
type Writer struct {
	buf  []byte
	stk  []frame
	done bool // a complete top-level value has been written
}

type frame struct {
	kind   dom.Kind // dom.Object or dom.Array
	count  int      // number of values (or members) begun
	staged bool     // a member name was written but its value was not
	names  []string // member names written, for objects
}

// NewWriter constructs an empty Writer.
func NewWriter() *Writer { return new(Writer) }

// Reset discards all the output and state of w, so that it can be reused.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.stk = w.stk[:0]
	w.done = false
}

// StartObject begins an object value.
func (w *Writer) StartObject() *Writer {
	w.beginValue("StartObject")
	w.buf = append(w.buf, '{')
	w.stk = append(w.stk, frame{kind: dom.Object})
	return w
}

// Member writes the name of the next member of the innermost open object.
// The next value written is the value of that member.
func (w *Writer) Member(name string) *Writer {
	f := w.innermost("Member", dom.Object)
	if f.staged {
		usagef("Member", "member %q has no value", f.names[len(f.names)-1])
	} else if slices.Contains(f.names, name) {
		usagef("Member", "duplicate member name %q", name)
	}
	if f.count > 0 {
		w.buf = append(w.buf, ',')
	}
	w.buf = escape.AppendQuoted(w.buf, mem.S(name))
	w.buf = append(w.buf, ':')
	f.names = append(f.names, name)
	f.count++
	f.staged = true
	return w
}

// HasMember reports whether a member with the given name has already been
// written to the innermost open object.
func (w *Writer) HasMember(name string) bool {
	f := w.innermost("HasMember", dom.Object)
	return slices.Contains(f.names, name)
}

// EndObject ends the innermost open object.
func (w *Writer) EndObject() *Writer {
	f := w.innermost("EndObject", dom.Object)
	if f.staged {
		usagef("EndObject", "member %q has no value", f.names[len(f.names)-1])
	}
	w.buf = append(w.buf, '}')
	w.stk = w.stk[:len(w.stk)-1]
	w.endValue()
	return w
}

// StartArray begins an array value. If sizeHint > 0, it is the expected
// number of elements, used to reserve space.
func (w *Writer) StartArray(sizeHint int) *Writer {
	w.beginValue("StartArray")
	w.buf = append(w.buf, '[')
	if sizeHint > 0 {
		w.buf = slices.Grow(w.buf, 2*sizeHint)
	}
	w.stk = append(w.stk, frame{kind: dom.Array})
	return w
}

// EndArray ends the innermost open array.
func (w *Writer) EndArray() *Writer {
	w.innermost("EndArray", dom.Array)
	w.buf = append(w.buf, ']')
	w.stk = w.stk[:len(w.stk)-1]
	w.endValue()
	return w
}

// Null writes a null value.
func (w *Writer) Null() *Writer { return w.raw("Null", "null") }

// Bool writes a Boolean value.
func (w *Writer) Bool(b bool) *Writer {
	if b {
		return w.raw("Bool", "true")
	}
	return w.raw("Bool", "false")
}

// Uint writes an unsigned integer value.
func (w *Writer) Uint(u uint64) *Writer {
	w.beginValue("Uint")
	w.buf = strconv.AppendUint(w.buf, u, 10)
	w.endValue()
	return w
}

// Int writes a signed integer value.
func (w *Writer) Int(i int64) *Writer {
	w.beginValue("Int")
	w.buf = strconv.AppendInt(w.buf, i, 10)
	w.endValue()
	return w
}

// Float writes a floating-point value. The output always includes a
// fraction or an exponent, so that it reads back as a float: 120 is written
// as 120.0. JSON cannot represent NaN or infinities, so these are written as
// null.
func (w *Writer) Float(f float64) *Writer {
	w.beginValue("Float")
	w.buf = dom.AppendFloat(w.buf, f)
	w.endValue()
	return w
}

// Str writes a string value.
func (w *Writer) Str(s string) *Writer {
	w.beginValue("Str")
	w.buf = escape.AppendQuoted(w.buf, mem.S(s))
	w.endValue()
	return w
}

// Value writes the compact rendering of v. A nil v is written as null.
func (w *Writer) Value(v *dom.Value) *Writer {
	w.beginValue("Value")
	w.buf = v.AppendJSON(w.buf)
	w.endValue()
	return w
}

// Set writes v, selecting the method by the dynamic type of v. The supported
// types are nil, bool, string, the signed and unsigned integer types,
// float32, float64, *dom.Value, and Writable. Set panics with a *UsageError
// for any other type.
func (w *Writer) Set(v any) *Writer {
	switch t := v.(type) {
	case nil:
		return w.Null()
	case bool:
		return w.Bool(t)
	case string:
		return w.Str(t)
	case int:
		return w.Int(int64(t))
	case int8:
		return w.Int(int64(t))
	case int16:
		return w.Int(int64(t))
	case int32:
		return w.Int(int64(t))
	case int64:
		return w.Int(t)
	case uint:
		return w.Uint(uint64(t))
	case uint8:
		return w.Uint(uint64(t))
	case uint16:
		return w.Uint(uint64(t))
	case uint32:
		return w.Uint(uint64(t))
	case uint64:
		return w.Uint(t)
	case float32:
		return w.Float(float64(t))
	case float64:
		return w.Float(t)
	case *dom.Value:
		return w.Value(t)
	case Writable:
		t.WriteJSON(w)
		return w
	default:
		usagef("Set", "unsupported type %T", v)
		return w
	}
}

// Bytes returns the complete output of w. The slice is only valid until the
// next call that modifies w. Bytes panics with a *UsageError if no value has
// been written, or if any container remains open.
func (w *Writer) Bytes() []byte {
	w.checkDone("Bytes")
	return w.buf
}

// String returns the complete output of w as a string. It panics in the same
// conditions as Bytes.
func (w *Writer) String() string {
	w.checkDone("String")
	return string(w.buf)
}

func (w *Writer) checkDone(op string) {
	if n := len(w.stk); n > 0 {
		usagef(op, "%d containers still open", n)
	} else if !w.done {
		usagef(op, "no value has been written")
	}
}

func (w *Writer) raw(op, text string) *Writer {
	w.beginValue(op)
	w.buf = append(w.buf, text...)
	w.endValue()
	return w
}

// innermost returns the innermost open container, which must have the given
// kind.
func (w *Writer) innermost(op string, kind dom.Kind) *frame {
	if len(w.stk) == 0 {
		usagef(op, "no open %v", kind)
	}
	f := &w.stk[len(w.stk)-1]
	if f.kind != kind {
		usagef(op, "innermost open container is %v, not %v", f.kind, kind)
	}
	return f
}

// beginValue checks that a value may be written at the current position, and
// writes a separator if one is required.
func (w *Writer) beginValue(op string) {
	if len(w.stk) == 0 {
		if w.done {
			usagef(op, "a value has already been written")
		}
		return
	}
	f := &w.stk[len(w.stk)-1]
	switch f.kind {
	case dom.Object:
		if !f.staged {
			usagef(op, "no member name for value in object")
		}
		f.staged = false
	case dom.Array:
		if f.count > 0 {
			w.buf = append(w.buf, ',')
		}
		f.count++
	default:
		panic(fmt.Sprintf("unexpected container kind %v", f.kind))
	}
}

// endValue records that a value is complete.
func (w *Writer) endValue() {
	if len(w.stk) == 0 {
		w.done = true
	}
}
