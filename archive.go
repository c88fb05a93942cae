// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jarchive

// Writable is implemented by types that can describe themselves to a Writer.
// WriteJSON must write exactly one JSON value.
type Writable interface {
	WriteJSON(w *Writer)
}

// Readable is implemented by types that can populate themselves from a
// Reader. ReadJSON must read exactly one JSON value, the current value of r.
// It need not check r for errors; the caller does that.
type Readable interface {
	ReadJSON(r *Reader)
}

// Marshal returns the JSON encoding of v. If v describes a malformed value,
// Marshal reports the resulting *UsageError.
func Marshal(v Writable) (_ []byte, err error) {
	defer recoverUsage(&err)
	w := NewWriter()
	v.WriteJSON(w)
	return w.Bytes(), nil
}

// Unmarshal populates v from the JSON document in data. Unmarshal takes
// ownership of data, which it modifies; the caller must not use the contents
// of data afterward.
//
// If reading fails, Unmarshal reports the error recorded by the Reader. It is
// also an error if v does not read the whole document. A *UsageError panic
// from v is returned as an error.
func Unmarshal(data []byte, v Readable) error {
	return ReadOptions{}.Unmarshal(data, v)
}

// Unmarshal is as the package-level Unmarshal function, but uses the
// settings from o.
func (o ReadOptions) Unmarshal(data []byte, v Readable) (err error) {
	defer recoverUsage(&err)
	r := o.NewReader(data)
	if r.OK() {
		v.ReadJSON(r)
	}
	if r.OK() && !r.finished() {
		r.fail(ErrState, "the document was not completely read")
	}
	return r.Err()
}
