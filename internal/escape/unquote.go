// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a copy of the JSON encoding of a string. The input must have
// the enclosing double quotation marks already removed. The input is not
// modified.
func Unquote(src mem.RO) ([]byte, error) {
	return UnquoteInPlace(mem.Append(make([]byte, 0, src.Len()), src))
}

// UnquoteInPlace decodes the JSON encoding of a string held in buf, writing
// the decoded bytes over the front of buf and returning the prefix of buf that
// holds them. The enclosing quotation marks must already be removed.
//
// Decoding never lengthens the text, so the write position never passes the
// read position. The contents of buf beyond the returned prefix are
// unspecified. Malformed hex digits and unpaired surrogates are replaced by
// the Unicode replacement rune; an incomplete or unknown escape sequence is
// reported as an error.
func UnquoteInPlace(buf []byte) ([]byte, error) {
	i := mem.IndexByte(mem.B(buf), '\\')
	if i < 0 {
		return buf, nil // nothing to do
	}
	w, r := i, i
	for r < len(buf) {
		if c := buf[r]; c != '\\' {
			buf[w] = c
			w++
			r++
			continue
		}
		r++
		if r == len(buf) {
			return nil, errors.New("incomplete escape sequence")
		}
		c := buf[r]
		r++
		switch c {
		case '"', '\\', '/':
			buf[w] = c
			w++
		case 'b', 'f', 'n', 'r', 't':
			buf[w] = unescapeControl[c]
			w++
		case 'u':
			v, err := parseHex4(buf[r:])
			if err != nil {
				return nil, err
			}
			r += 4
			if v < 0 {
				w += utf8.EncodeRune(buf[w:], utf8.RuneError)
				break
			}
			ch := rune(v)
			if utf16.IsSurrogate(ch) {
				// Combine a high surrogate with an immediately following low
				// surrogate escape; an unpaired surrogate decodes as U+FFFD.
				lo, ok := lowSurrogate(buf[r:])
				if dec := utf16.DecodeRune(ch, lo); ok && dec != utf8.RuneError {
					ch = dec
					r += 6
				} else {
					ch = utf8.RuneError
				}
			}
			w += utf8.EncodeRune(buf[w:], ch)
		default:
			return nil, fmt.Errorf("invalid escape %q", c)
		}
	}
	return buf[:w], nil
}

var unescapeControl = [...]byte{
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
}

// lowSurrogate reports whether buf begins with a \u escape, and if so returns
// the rune it encodes.
func lowSurrogate(buf []byte) (rune, bool) {
	if len(buf) < 6 || buf[0] != '\\' || buf[1] != 'u' {
		return 0, false
	}
	v, err := parseHex4(buf[2:])
	if err != nil || v < 0 {
		return 0, false
	}
	return rune(v), true
}

// parseHex4 decodes four hexadecimal digits at the front of data. It reports
// an error if fewer than four bytes are available, and a negative value if
// the digits are not valid hexadecimal.
func parseHex4(data []byte) (int64, error) {
	if len(data) < 4 {
		return 0, errors.New("incomplete Unicode escape")
	}
	v, err := parseHex(mem.B(data[:4]))
	if err != nil {
		return -1, nil
	}
	return v, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
