// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"fmt"
	"strconv"

	"github.com/creachadair/jarchive/internal/scanner"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// SyntaxError is the concrete type of errors reported by Parse for malformed
// input.
type SyntaxError = scanner.SyntaxError

// DefaultMaxDepth is the nesting limit applied when ParseOptions.MaxDepth is
// not set.
const DefaultMaxDepth = scanner.DefaultMaxDepth

// ParseOptions control the behavior of Parse. A nil *ParseOptions is ready
// for use and provides default values.
type ParseOptions struct {
	// The maximum nesting depth of objects and arrays.
	// If zero, DefaultMaxDepth is used.
	MaxDepth int

	// If true, accept HuJSON input: JSON with comments and trailing commas.
	// The input is standardized to plain JSON before it is parsed.
	HuJSON bool
}

func (o *ParseOptions) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *ParseOptions) huJSON() bool { return o != nil && o.HuJSON }

// A Document is a tree of values parsed from a buffer of JSON text.
// The string contents of the tree are views of that buffer.
type Document struct {
	root *Value
	buf  []byte
}

// Root returns the root value of d.
func (d *Document) Root() *Value { return d.root }

// Parse parses buf, which must contain exactly one JSON value, and returns a
// Document for it. In case of a syntax error, the returned error has concrete
// type *SyntaxError.
//
// Parse takes ownership of buf: strings and member names are decoded in
// place, so the contents of buf are overwritten and must not be used by the
// caller afterward.
func Parse(buf []byte, opts *ParseOptions) (*Document, error) {
	if opts.huJSON() {
		std, err := hujson.Standardize(buf)
		if err != nil {
			return nil, fmt.Errorf("invalid HuJSON: %w", err)
		}
		buf = std
	}
	st := scanner.NewStream(buf)
	st.SetMaxDepth(opts.maxDepth())

	h := new(parseHandler)
	if err := st.ParseSingle(h); err != nil {
		return nil, err
	}
	return &Document{root: h.root, buf: buf}, nil
}

// A parseHandler implements the scanner.Handler interface to construct a tree
// of values from parser events.
type parseHandler struct {
	stk  []*Value // open containers
	root *Value
}

func (h *parseHandler) top() *Value { return h.stk[len(h.stk)-1] }

func (h *parseHandler) push(v *Value) { h.stk = append(h.stk, v) }

func (h *parseHandler) pop() *Value {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

// reduce attaches a completed value to the innermost open container, or makes
// it the root if no container is open.
func (h *parseHandler) reduce(v *Value) error {
	if len(h.stk) == 0 {
		h.root = v
		return nil
	}
	switch prev := h.top(); prev.kind {
	case Array:
		prev.elems = append(prev.elems, v)
	case Object:
		// The member was added by BeginMember and is awaiting its value.
		prev.members[len(prev.members)-1].Value = v
	}
	return nil
}

func (h *parseHandler) BeginObject(loc scanner.Anchor) error {
	h.push(&Value{kind: Object})
	return nil
}

func (h *parseHandler) EndObject(loc scanner.Anchor) error { return h.reduce(h.pop()) }

func (h *parseHandler) BeginArray(loc scanner.Anchor) error {
	h.push(&Value{kind: Array})
	return nil
}

func (h *parseHandler) EndArray(loc scanner.Anchor) error { return h.reduce(h.pop()) }

func (h *parseHandler) BeginMember(loc scanner.Anchor) error {
	name, err := loc.Unescape()
	if err != nil {
		return syntaxErrorf(loc, "invalid member name: %v", err)
	}
	obj := h.top()
	if obj.find(mem.B(name)) >= 0 {
		return syntaxErrorf(loc, "duplicate member name %q", name)
	}
	obj.members = append(obj.members, Member{name: name})
	return nil
}

func (h *parseHandler) EndMember(loc scanner.Anchor) error { return nil }

func (h *parseHandler) Value(loc scanner.Anchor) error {
	switch loc.Token() {
	case scanner.String:
		text, err := loc.Unescape()
		if err != nil {
			return syntaxErrorf(loc, "invalid string: %v", err)
		}
		return h.reduce(&Value{kind: String, text: text})
	case scanner.Integer:
		v, err := parseInteger(loc.Text())
		if err != nil {
			return syntaxErrorf(loc, "number %s out of range", loc.Text())
		}
		return h.reduce(v)
	case scanner.Number:
		f, err := strconv.ParseFloat(string(loc.Text()), 64)
		if err != nil {
			return syntaxErrorf(loc, "number %s out of range", loc.Text())
		}
		return h.reduce(&Value{kind: Float, f: f})
	case scanner.True, scanner.False:
		return h.reduce(&Value{kind: Bool, b: loc.Token() == scanner.True})
	case scanner.Null:
		return h.reduce(&Value{kind: Null})
	default:
		return syntaxErrorf(loc, "unknown value %v", loc.Token())
	}
}

// parseInteger classifies an integer literal. Non-negative values that fit in
// a uint64 are Uint, negative values that fit in an int64 are Int, and all
// others are approximated as Float. "-0" is Uint.
func parseInteger(text []byte) (*Value, error) {
	s := string(text)
	if text[0] == '-' {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			if i == 0 {
				return &Value{kind: Uint}, nil
			}
			return &Value{kind: Int, i: i}, nil
		}
	} else if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return &Value{kind: Uint, u: u}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &Value{kind: Float, f: f}, nil
}

func syntaxErrorf(loc scanner.Anchor, msg string, args ...any) error {
	return &SyntaxError{
		Location: loc.Location().First,
		Message:  fmt.Sprintf(msg, args...),
	}
}
