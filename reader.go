// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jarchive

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jarchive/dom"
)

// ReadOptions are settings for a Reader. A zero value is ready for use and
// provides default settings.
type ReadOptions struct {
	// If true, accept HuJSON input, which permits comments and trailing
	// commas in objects and arrays.
	HuJSON bool

	// If positive, the maximum nesting depth of arrays and objects in the
	// input. If zero, dom.DefaultMaxDepth is used.
	MaxDepth int

	// If non-nil, the first data error recorded by the reader is logged here
	// at debug level.
	Logger *log.Logger
}

// NewReader constructs a Reader for buf using default options.
// See ReadOptions.NewReader.
func NewReader(buf []byte) *Reader { return ReadOptions{}.NewReader(buf) }

// NewReader parses buf and returns a Reader positioned at the root value of
// the resulting document.
//
// The Reader takes ownership of buf: parsing decodes strings in place, so the
// caller must not use the contents of buf afterward. If buf does not contain
// a valid JSON value, the returned Reader is already in the error state, with
// an error of kind ErrSyntax.
func (o ReadOptions) NewReader(buf []byte) *Reader {
	r := &Reader{log: o.Logger}
	doc, err := dom.Parse(buf, &dom.ParseOptions{MaxDepth: o.MaxDepth, HuJSON: o.HuJSON})
	if err != nil {
		re := &ReadError{Kind: ErrSyntax, Path: "$", Message: err.Error(), err: err}
		var se *dom.SyntaxError
		if errors.As(err, &se) {
			re.Line, re.Column = se.Location.Line, se.Location.Column
			re.Message = se.Message
		}
		r.setErr(re)
		return r
	}
	r.doc = doc
	r.stk = []item{{v: doc.Root()}}
	return r
}

// A Reader traverses a parsed JSON document, extracting values into caller
// variables. Reading is driven by the caller, who describes the shape of the
// data it expects:
//
//	var name string
//	var age int64
//	r := jarchive.NewReader(input)
//	r.StartObject()
//	r.FindMember("name").Str(&name)
//	r.FindMember("age").Int(&age)
//	r.EndObject()
//	if err := r.Err(); err != nil {
//	   log.Fatalf("Read: %v", err)
//	}
//
// The Reader has a sticky error: after the first data error (a missing
// member, a value of the wrong type, and so on) every further operation on
// the data is a no-op that does not modify its destination. Callers may
// therefore perform a whole sequence of reads and check Err once at the end.
//
// Calls that no correct program makes, such as EndObject with no matching
// StartObject, panic with a *UsageError whether or not a data error has
// occurred.
//
// The methods of a Reader return the receiver to permit chaining.
type Reader struct {
	doc  *dom.Document
	stk  []item     // values being visited, innermost last
	nest []dom.Kind // containers opened by the caller, innermost last
	err  *ReadError
	log  *log.Logger
}

type itemState byte

const (
	pending itemState = iota // not yet read or opened
	open                     // a container opened by the caller
	done                     // an array whose elements have all been read
)

type item struct {
	v     *dom.Value
	state itemState
	index int    // for an open array, the offset of the current element
	name  string // for an object member, the name used to find it
}

// OK reports whether r has not recorded any error.
func (r *Reader) OK() bool { return r.err == nil }

// Err returns the first error recorded by r, or nil. When it is not nil, its
// concrete type is *ReadError.
func (r *Reader) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Fail records an error of kind ErrInvalid at the current location, if r
// does not already have an error. A collaborator may use this to report a
// value that has the right type but is not acceptable.
func (r *Reader) Fail(msg string, args ...any) *Reader {
	r.fail(ErrInvalid, msg, args...)
	return r
}

// StartObject opens the current value, which must be an object.
func (r *Reader) StartObject() *Reader {
	r.nest = append(r.nest, dom.Object)
	if top := r.expect(dom.Object); top != nil {
		top.state = open
	}
	return r
}

// FindMember makes the value of the named member of the innermost open
// object the current value. If the object has no such member, r records an
// error of kind ErrMissingMember.
//
// If the value found by a previous FindMember on the same object was not
// read, it is abandoned.
func (r *Reader) FindMember(name string) *Reader {
	r.checkNest("FindMember", dom.Object)
	obj := r.openObject()
	if obj == nil {
		return r
	}
	r.discardMember()
	v := obj.v.Find(name)
	if v == nil {
		r.fail(ErrMissingMember, "no member %q", name)
		return r
	}
	r.stk = append(r.stk, item{v: v, name: name})
	return r
}

// HasMember reports whether the innermost open object has a member with the
// given name. It does not change the state of r. If r has an error,
// HasMember reports false.
func (r *Reader) HasMember(name string) bool {
	r.checkNest("HasMember", dom.Object)
	if r.err != nil {
		return false
	}
	obj := r.peekObject()
	return obj != nil && obj.v.Has(name)
}

// EndObject closes the innermost open object, which becomes read. A member
// value found but not read is abandoned.
func (r *Reader) EndObject() *Reader {
	r.popNest("EndObject", dom.Object)
	if r.err != nil {
		return r
	}
	r.discardMember()
	top := r.top()
	if top == nil || top.state != open || top.v.Kind() != dom.Object {
		r.fail(ErrState, "no open object")
		return r
	}
	r.next()
	return r
}

// StartArray opens the current value, which must be an array. If size is not
// nil, the length of the array is stored there. The first element of the
// array, if any, becomes the current value, and each element read advances
// to the next.
func (r *Reader) StartArray(size *int) *Reader {
	r.nest = append(r.nest, dom.Array)
	top := r.expect(dom.Array)
	if top == nil {
		return r
	}
	n := top.v.Len()
	if size != nil {
		*size = n
	}
	top.state = open
	if n == 0 {
		top.state = done
	} else {
		r.stk = append(r.stk, item{v: top.v.Index(0)})
	}
	return r
}

// EndArray closes the innermost open array. Every element of the array must
// have been read; otherwise r records an error of kind ErrState.
func (r *Reader) EndArray() *Reader {
	r.popNest("EndArray", dom.Array)
	if r.err != nil {
		return r
	}
	top := r.top()
	if top != nil && top.state == pending && len(r.stk) > 1 {
		if p := r.stk[len(r.stk)-2]; p.v.Kind() == dom.Array {
			r.fail(ErrState, "%d unread array elements", p.v.Len()-p.index)
			return r
		}
	}
	if top == nil || top.state != done {
		r.fail(ErrState, "no open array")
		return r
	}
	r.next()
	return r
}

// Bool reads the current value into *b. It must be a Boolean.
func (r *Reader) Bool(b *bool) *Reader {
	if top := r.value(); top != nil {
		if top.v.Kind() != dom.Bool {
			r.failType(top, "bool")
			return r
		}
		*b = top.v.Bool()
		r.next()
	}
	return r
}

// Uint reads the current value into *u. It must be an integer that can be
// represented as a uint64.
func (r *Reader) Uint(u *uint64) *Reader { return readUnsigned(r, u) }

// Int reads the current value into *i. It must be an integer that can be
// represented as an int64.
func (r *Reader) Int(i *int64) *Reader { return readSigned(r, i) }

// Float reads the current value into *f. It may be any number.
func (r *Reader) Float(f *float64) *Reader {
	if top := r.value(); top != nil {
		if !top.v.IsNumber() {
			r.failType(top, "number")
			return r
		}
		*f = top.v.Float()
		r.next()
	}
	return r
}

// Str reads the current value into *s. It must be a string.
func (r *Reader) Str(s *string) *Reader {
	if top := r.value(); top != nil {
		if top.v.Kind() != dom.String {
			r.failType(top, "string")
			return r
		}
		*s = top.v.Text()
		r.next()
	}
	return r
}

// Any reads the current value, of any type, into *v. The value remains valid
// after r is discarded.
func (r *Reader) Any(v **dom.Value) *Reader {
	if top := r.value(); top != nil {
		*v = top.v
		r.next()
	}
	return r
}

// Into reads the current value into the variable addressed by v, selecting
// the extraction by the type of v. The supported types are pointers to bool,
// string, float32, float64, the signed and unsigned integer types, and
// *dom.Value. Into panics with a *UsageError for any other type.
//
// An integer or float32 destination too small for the value is reported as
// an error of kind ErrRange, and the destination is not changed.
func (r *Reader) Into(v any) *Reader {
	switch t := v.(type) {
	case *bool:
		return r.Bool(t)
	case *string:
		return r.Str(t)
	case *float64:
		return r.Float(t)
	case *float32:
		return readFloat32(r, t)
	case *int:
		return readSigned(r, t)
	case *int8:
		return readSigned(r, t)
	case *int16:
		return readSigned(r, t)
	case *int32:
		return readSigned(r, t)
	case *int64:
		return readSigned(r, t)
	case *uint:
		return readUnsigned(r, t)
	case *uint8:
		return readUnsigned(r, t)
	case *uint16:
		return readUnsigned(r, t)
	case *uint32:
		return readUnsigned(r, t)
	case *uint64:
		return readUnsigned(r, t)
	case **dom.Value:
		return r.Any(t)
	default:
		usagef("Into", "unsupported type %T", v)
		return r
	}
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func readSigned[T signed](r *Reader, p *T) *Reader {
	top := r.value()
	if top == nil {
		return r
	} else if !top.v.FitsInt() {
		if top.v.Kind() == dom.Uint {
			r.fail(ErrRange, "%d overflows %T", top.v.Uint(), *p)
		} else {
			r.failType(top, "integer")
		}
		return r
	}
	i := top.v.Int()
	if int64(T(i)) != i {
		r.fail(ErrRange, "%d overflows %T", i, *p)
		return r
	}
	*p = T(i)
	r.next()
	return r
}

func readUnsigned[T unsigned](r *Reader, p *T) *Reader {
	top := r.value()
	if top == nil {
		return r
	} else if !top.v.FitsUint() {
		if top.v.Kind() == dom.Int {
			r.fail(ErrRange, "%d overflows %T", top.v.Int(), *p)
		} else {
			r.failType(top, "unsigned integer")
		}
		return r
	}
	u := top.v.Uint()
	if uint64(T(u)) != u {
		r.fail(ErrRange, "%d overflows %T", u, *p)
		return r
	}
	*p = T(u)
	r.next()
	return r
}

func readFloat32(r *Reader, p *float32) *Reader {
	top := r.value()
	if top == nil {
		return r
	} else if !top.v.IsNumber() {
		r.failType(top, "number")
		return r
	}
	f := top.v.Float()
	if math.Abs(f) > math.MaxFloat32 {
		r.fail(ErrRange, "%v overflows float32", f)
		return r
	}
	*p = float32(f)
	r.next()
	return r
}

// top returns the innermost item of the stack, or nil if it is empty.
func (r *Reader) top() *item {
	if len(r.stk) == 0 {
		return nil
	}
	return &r.stk[len(r.stk)-1]
}

// value returns the current item if it is a value ready to be read.
// Otherwise it records an error and returns nil.
func (r *Reader) value() *item {
	if r.err != nil {
		return nil
	}
	top := r.top()
	switch {
	case top == nil:
		r.fail(ErrState, "the document has been read")
	case top.state == done:
		r.fail(ErrExhausted, "all %d elements were read", top.v.Len())
	case top.state == open:
		r.fail(ErrState, "no current value in open %v", top.v.Kind())
	default:
		return top
	}
	return nil
}

// expect returns the current item if it is a value of the given container
// kind ready to be opened. Otherwise it records an error and returns nil.
func (r *Reader) expect(kind dom.Kind) *item {
	top := r.value()
	if top != nil && top.v.Kind() != kind {
		r.failType(top, kind.String())
		return nil
	}
	return top
}

// peekObject returns the innermost open object without changing r, or nil.
func (r *Reader) peekObject() *item {
	n := len(r.stk)
	if n == 0 {
		return nil
	}
	if r.isMember(n-1) && r.stk[n-1].state == pending {
		n--
	}
	if obj := &r.stk[n-1]; obj.state == open && obj.v.Kind() == dom.Object {
		return obj
	}
	return nil
}

// openObject is as peekObject, but records an error if there is no open
// object.
func (r *Reader) openObject() *item {
	if r.err != nil {
		return nil
	}
	obj := r.peekObject()
	if obj == nil {
		r.fail(ErrState, "no open object")
	}
	return obj
}

// isMember reports whether the item at offset i is the value of a member of
// the item before it.
func (r *Reader) isMember(i int) bool {
	return i > 0 && r.stk[i-1].v.Kind() == dom.Object
}

// discardMember pops a member value that was found but not read.
func (r *Reader) discardMember() {
	n := len(r.stk)
	if n > 0 && r.stk[n-1].state == pending && r.isMember(n-1) {
		r.stk = r.stk[:n-1]
	}
}

// next marks the current value as read. If it was an element of an array,
// the following element becomes current.
func (r *Reader) next() {
	r.stk = r.stk[:len(r.stk)-1]
	top := r.top()
	if top == nil || top.v.Kind() != dom.Array || top.state != open {
		return
	}
	top.index++
	if top.index < top.v.Len() {
		r.stk = append(r.stk, item{v: top.v.Index(top.index)})
	} else {
		top.state = done
	}
}

// finished reports whether the whole document has been read.
func (r *Reader) finished() bool { return r.doc != nil && len(r.stk) == 0 }

// checkNest panics if the innermost container opened by the caller is not of
// the given kind.
func (r *Reader) checkNest(op string, kind dom.Kind) {
	if len(r.nest) == 0 {
		usagef(op, "no open %v", kind)
	} else if k := r.nest[len(r.nest)-1]; k != kind {
		usagef(op, "innermost open container is %v, not %v",
			k, kind)
	}
}

func (r *Reader) popNest(op string, kind dom.Kind) {
	r.checkNest(op, kind)
	r.nest = r.nest[:len(r.nest)-1]
}

// path renders the location of the current item.
func (r *Reader) path() string {
	var sb strings.Builder
	sb.WriteString("$")
	for i := 1; i < len(r.stk); i++ {
		p := r.stk[i-1]
		if p.v.Kind() == dom.Array {
			fmt.Fprintf(&sb, "[%d]", p.index)
		} else if isIdent(r.stk[i].name) {
			sb.WriteString(".")
			sb.WriteString(r.stk[i].name)
		} else {
			fmt.Fprintf(&sb, "[%s]", strconv.Quote(r.stk[i].name))
		}
	}
	return sb.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}

func (r *Reader) failType(top *item, want string) {
	r.fail(ErrType, "got %v, want %s", top.v.Kind(), want)
}

func (r *Reader) fail(kind ErrorKind, msg string, args ...any) {
	if r.err != nil {
		return
	}
	r.setErr(&ReadError{Kind: kind, Path: r.path(), Message: fmt.Sprintf(msg, args...)})
}

func (r *Reader) setErr(e *ReadError) {
	r.err = e
	if r.log != nil {
		r.log.Debug("read failed", "kind", e.Kind, "path", e.Path, "msg", e.Message)
	}
}
