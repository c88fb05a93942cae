// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jarchive/internal/escape"
	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a \t b", `"a \t b"`},
		{`say "hi"\`, `"say \"hi\"\\"`},
		{"\x00\x1f", `"\u0000\u001f"`},
		{"\b\f\n\r", `"\b\f\n\r"`},
		{"caf\u00e9 \u2028", "\"caf\u00e9 \\u2028\""},
		{"bad \xff byte", `"bad \ufffd byte"`},
	}
	for _, test := range tests {
		if got := string(escape.Quote(mem.S(test.input))); got != test.want {
			t.Errorf("Quote(%q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquoteInPlace(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{`a\tb`, "a\tb"},
		{`\"\\\/\b\f\n\r\t`, "\"\\/\b\f\n\r\t"},
		{`\u0041\u00e9`, "A\u00e9"},
		{`x\ud83d\ude00y`, "x\U0001F600y"},
		{`\ud83d!`, "\ufffd!"},
		{`\uzzzz`, "\ufffd"},
	}
	for _, test := range tests {
		buf := []byte(test.input)
		got, err := escape.UnquoteInPlace(buf)
		if err != nil {
			t.Errorf("UnquoteInPlace(%#q): unexpected error: %v", test.input, err)
			continue
		}
		if string(got) != test.want {
			t.Errorf("UnquoteInPlace(%#q): got %q, want %q", test.input, got, test.want)
		}
		if len(got) != 0 && &got[0] != &buf[0] {
			t.Errorf("UnquoteInPlace(%#q): result does not share input storage", test.input)
		}
	}
}

func TestUnquoteErrors(t *testing.T) {
	for _, input := range []string{`\`, `abc\`, `\u12`, `\q`} {
		if got, err := escape.Unquote(mem.S(input)); err == nil {
			t.Errorf("Unquote(%#q): got %q, want error", input, got)
		} else {
			t.Logf("Unquote(%#q): got expected error: %v", input, err)
		}
	}
}

func TestUnquotePreservesInput(t *testing.T) {
	const input = `one\ntwo`
	src := []byte(input)
	got, err := escape.Unquote(mem.B(src))
	if err != nil {
		t.Fatalf("Unquote: unexpected error: %v", err)
	}
	if string(got) != "one\ntwo" {
		t.Errorf("Unquote: got %q, want %q", got, "one\ntwo")
	}
	if string(src) != input {
		t.Errorf("Unquote modified its input: got %q, want %q", src, input)
	}
}
