// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package scanner implements a lexical scanner and an event-driven parser
// for JSON text held in a caller-owned byte buffer.
//
// Token text reported by a Scanner is a view of the input buffer, not a copy.
// Decoding a string token with Unescape rewrites the buffer in place, so the
// buffer must not be shared with code that expects its original contents.
package scanner

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jarchive/internal/escape"
	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a byte buffer. Each call to Next
// advances the scanner to the next token, or reports an error.
type Scanner struct {
	buf []byte
	tok Token
	err error

	pos, end int // start and end offsets of current token

	line      int // current line number (0-based)
	lineStart int // offset of the first byte of the current line
	pline     int // line of the current token
	pcol      int // column of the current token
}

// New constructs a new lexical scanner over buf. The scanner does not copy
// buf; see Unescape for when it is modified.
func New(buf []byte) *Scanner { return &Scanner{buf: buf} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid

	// Discard whitespace.
	for s.end < len(s.buf) && isSpace(s.buf[s.end]) {
		if s.buf[s.end] == '\n' {
			s.line++
			s.lineStart = s.end + 1
		}
		s.end++
	}
	s.pos, s.pline, s.pcol = s.end, s.line, s.end-s.lineStart
	if s.end >= len(s.buf) {
		return s.setErr(io.EOF)
	}

	ch := s.buf[s.end]
	s.end++

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		s.tok = t
		return nil
	}

	// Handle numbers.
	if isNumStart(ch) {
		return s.scanNumber(ch)
	}

	// Handle string values.
	if ch == '"' {
		return s.scanString()
	}

	// Handle constants: true, false, null
	var want mem.RO
	switch ch {
	case 't':
		s.tok, want = True, mem.S("true")
	case 'f':
		s.tok, want = False, mem.S("false")
	case 'n':
		s.tok, want = Null, mem.S("null")
	default:
		s.end--
		return s.failf("unexpected %q", rune(ch))
	}
	for s.end < len(s.buf) && isNameByte(s.buf[s.end]) {
		s.end++
	}
	if got := mem.B(s.Text()); !got.Equal(want) {
		s.tok = Invalid
		return s.failf("unknown constant %q", got.StringCopy())
	}
	return nil
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token, as a view of the
// input buffer. String tokens include their quotation marks.
func (s *Scanner) Text() []byte { return s.buf[s.pos:s.end:s.end] }

// Unescape decodes the current String token in place and returns a view of
// the decoded contents, without quotation marks. The bytes of the token in
// the input buffer are overwritten. Unescape must be called at most once per
// token.
func (s *Scanner) Unescape() ([]byte, error) {
	if s.tok != String {
		return nil, fmt.Errorf("cannot unescape %v", s.tok)
	}
	return escape.UnquoteInPlace(s.buf[s.pos+1 : s.end-1])
}

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token. Tokens never
// span lines, so First and Last share a line number.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.pline + 1, Column: s.pcol + (s.end - s.pos)},
	}
}

func (s *Scanner) scanString() error {
	for s.end < len(s.buf) {
		ch := s.buf[s.end]
		switch {
		case ch == '"':
			s.end++
			s.tok = String
			return nil

		case ch == '\\':
			// We are awaiting the completion of a \-escape.
			s.end++
			if s.end >= len(s.buf) {
				return s.failf("incomplete escape")
			}
			switch esc := s.buf[s.end]; esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.end++
			case 'u':
				s.end++
				if err := s.readHex4(); err != nil {
					return s.failf("invalid Unicode escape: %w", err)
				}
			default:
				return s.failf("invalid %q after escape", rune(esc))
			}

		case ch < ' ':
			return s.failf("unescaped control %q", rune(ch))

		case ch >= utf8.RuneSelf:
			r, n := utf8.DecodeRune(s.buf[s.end:])
			if r == utf8.RuneError && n <= 1 {
				return s.failf("invalid UTF-8 in string")
			}
			s.end += n

		default:
			s.end++
		}
	}
	return s.failf("unterminated string: %w", io.ErrUnexpectedEOF)
}

func (s *Scanner) scanNumber(start byte) error {
	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		if err := s.require(isDigit, "digit"); err != nil {
			return err
		}
	}

	// Consume the remainder of an integer.
	s.readWhile(isDigit)

	// Check for extra leading zeroes, which RFC 8259 disallows.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.Text()) {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if s.peek() == '.' {
		s.end++
		if s.readWhile(isDigit) == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if c := s.peek(); c != 'E' && c != 'e' {
		return nil
	}
	s.end++
	if c := s.peek(); c == '+' || c == '-' {
		s.end++
	}
	if s.readWhile(isDigit) == 0 {
		return s.failf("missing exponent digits")
	}
	s.tok = Number
	return nil
}

// peek returns the next unconsumed byte of input, or 0 at the end.
func (s *Scanner) peek() byte {
	if s.end < len(s.buf) {
		return s.buf[s.end]
	}
	return 0
}

// require consumes a single byte matching f from the input, or returns an
// error mentioning the desired label.
func (s *Scanner) require(f func(byte) bool, label string) error {
	if s.end >= len(s.buf) {
		return s.failf("want %s, got error: %w", label, io.ErrUnexpectedEOF)
	} else if ch := s.buf[s.end]; !f(ch) {
		return s.failf("got %q, want %s", rune(ch), label)
	}
	s.end++
	return nil
}

// readWhile consumes bytes matching f from the input until the end of input
// or until a byte not matching f is found. It returns the number of bytes
// consumed.
func (s *Scanner) readWhile(f func(byte) bool) int {
	start := s.end
	for s.end < len(s.buf) && f(s.buf[s.end]) {
		s.end++
	}
	return s.end - start
}

// readHex4 consumes exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() error {
	for i := 0; i < 4; i++ {
		if s.end >= len(s.buf) {
			return io.ErrUnexpectedEOF
		} else if ch := s.buf[s.end]; !isHexDigit(ch) {
			return fmt.Errorf("not a hex digit: %q", rune(ch))
		}
		s.end++
	}
	return nil
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(posError{s.end, fmt.Errorf(msg, args...)})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, which RFC 8259 disallows.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
