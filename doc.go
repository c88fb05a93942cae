// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jarchive implements a symmetric archiver that maps values to and
// from JSON text.
//
// # Writing
//
// A Writer renders compact JSON as the caller describes a value, one call per
// member or element:
//
//	w := jarchive.NewWriter()
//	w.StartObject()
//	w.Member("name").Str(s.Name)
//	w.Member("scores").StartArray(len(s.Scores))
//	for _, v := range s.Scores {
//	   w.Float(v)
//	}
//	w.EndArray()
//	w.EndObject()
//	out := w.Bytes()
//
// The Writer verifies that the calls describe exactly one well-formed value.
// A call that breaks this rule, such as a member with no value, panics with a
// *UsageError.
//
// # Reading
//
// A Reader parses a buffer into a document, then lets the caller walk the
// document with the same calls used to write it:
//
//	var n int
//	r := jarchive.NewReader(input)
//	r.StartObject()
//	r.FindMember("name").Str(&s.Name)
//	r.FindMember("scores").StartArray(&n)
//	s.Scores = make([]float64, n)
//	for i := range n {
//	   r.Float(&s.Scores[i])
//	}
//	r.EndArray()
//	r.EndObject()
//	if err := r.Err(); err != nil {
//	   log.Fatalf("Reading failed: %v", err)
//	}
//
// The Reader takes ownership of its input buffer and decodes strings in place
// rather than copying them.
//
// Errors in the data, such as a missing member or a value of the wrong type,
// are sticky: the first is recorded and reported by Err, and every later
// operation on the data does nothing. The caller need only check once, at the
// end. The concrete type of the error is *ReadError, which records the kind
// of failure and the path of the offending value:
//
//	type mismatch at $.scores[2]: got string, want number
//
// # Collaborators
//
// A type that implements the Writable and Readable interfaces can be passed
// to Marshal and Unmarshal, and may be nested inside other such types by
// calling its methods directly. To archive a family of variant types behind
// an interface, use a Registry to map a discriminant member to the
// constructor of each variant.
//
// # Documents
//
// The underlying document model is in package dom. Use Reader.Any to capture
// an arbitrary value as a *dom.Value, and Writer.Value to write one.
package jarchive
