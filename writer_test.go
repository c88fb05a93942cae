// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jarchive_test

import (
	"math"
	"testing"

	"github.com/creachadair/jarchive"
	"github.com/creachadair/jarchive/dom"
	"github.com/creachadair/mds/mtest"
)

func TestWriter(t *testing.T) {
	tests := []struct {
		name  string
		write func(*jarchive.Writer)
		want  string
	}{
		{"Null", func(w *jarchive.Writer) { w.Null() }, `null`},
		{"True", func(w *jarchive.Writer) { w.Bool(true) }, `true`},
		{"Uint", func(w *jarchive.Writer) { w.Uint(math.MaxUint64) }, `18446744073709551615`},
		{"Int", func(w *jarchive.Writer) { w.Int(math.MinInt64) }, `-9223372036854775808`},
		{"FloatFraction", func(w *jarchive.Writer) { w.Float(150.5) }, `150.5`},
		{"FloatIntegral", func(w *jarchive.Writer) { w.Float(120) }, `120.0`},
		{"FloatLarge", func(w *jarchive.Writer) { w.Float(1e21) }, `1e+21`},
		{"FloatSmall", func(w *jarchive.Writer) { w.Float(1e-7) }, `1e-7`},
		{"FloatNaN", func(w *jarchive.Writer) { w.Float(math.NaN()) }, `null`},
		{"FloatInf", func(w *jarchive.Writer) { w.Float(math.Inf(-1)) }, `null`},
		{"String", func(w *jarchive.Writer) { w.Str("a\"b\\c\n\x01") }, `"a\"b\\c\n\u0001"`},
		{"EmptyObject", func(w *jarchive.Writer) { w.StartObject().EndObject() }, `{}`},
		{"EmptyArray", func(w *jarchive.Writer) { w.StartArray(0).EndArray() }, `[]`},
		{"Object", func(w *jarchive.Writer) {
			w.StartObject()
			w.Member("name").Str("Lua")
			w.Member("age").Int(9)
			w.Member("height").Float(150.5)
			w.Member("canSwim").Bool(true)
			w.EndObject()
		}, `{"name":"Lua","age":9,"height":150.5,"canSwim":true}`},
		{"Nested", func(w *jarchive.Writer) {
			w.StartArray(3)
			w.StartArray(0).EndArray()
			w.StartArray(2).Uint(1).Int(-2).EndArray()
			w.StartObject()
			w.Member("a").StartObject().Member("b").Null().EndObject()
			w.Member("c").StartArray(1).Str("d").EndArray()
			w.EndObject()
			w.EndArray()
		}, `[[],[1,-2],{"a":{"b":null},"c":["d"]}]`},
		{"EscapedName", func(w *jarchive.Writer) {
			w.StartObject().Member("a\tb").Bool(false).EndObject()
		}, `{"a\tb":false}`},
		{"Set", func(w *jarchive.Writer) {
			w.StartArray(0)
			for _, v := range []any{nil, true, "s", int8(-3), uint16(7), float32(0.5), 2.0} {
				w.Set(v)
			}
			w.EndArray()
		}, `[null,true,"s",-3,7,0.5,2.0]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := jarchive.NewWriter()
			tc.write(w)
			if got := w.String(); got != tc.want {
				t.Errorf("Output: got %#q, want %#q", got, tc.want)
			}
		})
	}
}

func TestWriterValue(t *testing.T) {
	const input = `{"a": [1, -2, 2.50, "xA"], "b": {}, "c": null}`
	d, err := dom.Parse([]byte(input), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	w := jarchive.NewWriter()
	w.StartObject().Member("doc").Value(d.Root()).Member("nil").Value(nil).EndObject()

	const want = `{"doc":{"a":[1,-2,2.5,"xA"],"b":{},"c":null},"nil":null}`
	if got := w.String(); got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestWriterHasMember(t *testing.T) {
	w := jarchive.NewWriter()
	w.StartObject()
	if w.HasMember("x") {
		t.Error("HasMember(x) on empty object: got true, want false")
	}
	w.Member("x").Int(1)
	w.Member("y").StartObject()
	if w.HasMember("x") {
		t.Error("HasMember(x) in nested object: got true, want false")
	}
	w.EndObject()
	if !w.HasMember("x") || !w.HasMember("y") {
		t.Error("HasMember after writing: got false, want true")
	}
	w.EndObject()
	if got, want := w.String(), `{"x":1,"y":{}}`; got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestWriterReset(t *testing.T) {
	w := jarchive.NewWriter()
	w.StartArray(1).Int(1).EndArray()
	if got := w.String(); got != `[1]` {
		t.Errorf("First output: got %#q, want [1]", got)
	}
	w.Reset()
	w.Str("again")
	if got := string(w.Bytes()); got != `"again"` {
		t.Errorf("Second output: got %#q, want %#q", got, `"again"`)
	}
}

func TestWriterUsage(t *testing.T) {
	tests := []struct {
		name  string
		op    string
		write func(*jarchive.Writer)
	}{
		{"MemberAtTop", "Member", func(w *jarchive.Writer) { w.Member("x") }},
		{"MemberInArray", "Member", func(w *jarchive.Writer) { w.StartArray(0).Member("x") }},
		{"MemberStaged", "Member", func(w *jarchive.Writer) { w.StartObject().Member("x").Member("y") }},
		{"DuplicateMember", "Member", func(w *jarchive.Writer) {
			w.StartObject().Member("x").Int(1).Member("x")
		}},
		{"ValueNoName", "Int", func(w *jarchive.Writer) { w.StartObject().Int(1) }},
		{"ObjectNoName", "StartObject", func(w *jarchive.Writer) { w.StartObject().StartObject() }},
		{"SecondValue", "Str", func(w *jarchive.Writer) { w.Bool(true).Str("x") }},
		{"SecondContainer", "StartArray", func(w *jarchive.Writer) {
			w.StartObject().EndObject().StartArray(0)
		}},
		{"EndObjectStaged", "EndObject", func(w *jarchive.Writer) { w.StartObject().Member("x").EndObject() }},
		{"EndObjectInArray", "EndObject", func(w *jarchive.Writer) { w.StartArray(0).EndObject() }},
		{"EndArrayInObject", "EndArray", func(w *jarchive.Writer) { w.StartObject().EndArray() }},
		{"EndNothing", "EndArray", func(w *jarchive.Writer) { w.EndArray() }},
		{"HasMemberOutside", "HasMember", func(w *jarchive.Writer) { w.HasMember("x") }},
		{"StringEmpty", "String", func(w *jarchive.Writer) { _ = w.String() }},
		{"StringOpen", "String", func(w *jarchive.Writer) { _ = w.StartArray(0).String() }},
		{"BytesOpen", "Bytes", func(w *jarchive.Writer) { w.StartObject().Bytes() }},
		{"SetUnsupported", "Set", func(w *jarchive.Writer) { w.Set(struct{}{}) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mustUsage(t, tc.op, func() { tc.write(jarchive.NewWriter()) })
		})
	}

	mtest.MustPanic(t, func() {
		w := jarchive.NewWriter()
		w.StartArray(0).StartObject().EndArray()
	})
}
