// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuoted appends the JSON encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
// Invalid UTF-8 in src is replaced by the Unicode replacement rune.
func AppendQuoted(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		// Copy the longest prefix that needs no escaping in one step.
		n := 0
		for n < src.Len() {
			b := src.At(n)
			if b < ' ' || b == '"' || b == '\\' || b >= utf8.RuneSelf {
				break
			}
			n++
		}
		if n != 0 {
			dst = mem.Append(dst, src.SliceTo(n))
			src = src.SliceFrom(n)
			continue
		}

		r, size := mem.DecodeRune(src)
		src = src.SliceFrom(size)
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '"' || r == '\\':
			dst = append(dst, '\\', byte(r))
		case r == utf8.RuneError && size == 1:
			dst = append(dst, `\ufffd`...)
		case r == '\u2028':
			dst = append(dst, `\u2028`...)
		case r == '\u2029':
			dst = append(dst, `\u2029`...)
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return append(dst, '"')
}

// Quote returns the JSON encoding of src, including quotation marks.
func Quote(src mem.RO) []byte { return AppendQuoted(make([]byte, 0, src.Len()+2), src) }
