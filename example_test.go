// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jarchive_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/creachadair/jarchive"
)

func ExampleWriter() {
	w := jarchive.NewWriter()
	w.StartObject()
	w.Member("name").Str("Lua")
	w.Member("scores").StartArray(2).Float(9.5).Float(7).EndArray()
	w.EndObject()
	fmt.Println(w.String())
	// Output:
	// {"name":"Lua","scores":[9.5,7.0]}
}

func ExampleReader() {
	input := []byte(`{"name": "Lua", "scores": [9.5, 7]}`)

	var name string
	var n int
	r := jarchive.NewReader(input)
	r.StartObject()
	r.FindMember("name").Str(&name)
	r.FindMember("scores").StartArray(&n)
	scores := make([]float64, n)
	for i := range scores {
		r.Float(&scores[i])
	}
	r.EndArray()
	r.EndObject()
	if err := r.Err(); err != nil {
		log.Fatalf("Read failed: %v", err)
	}
	fmt.Println(name, scores)
	// Output:
	// Lua [9.5 7]
}

func ExampleReadError() {
	var a, b float64
	r := jarchive.NewReader([]byte(`{"scores": [1, "two"]}`))
	r.StartObject().FindMember("scores").StartArray(nil).Float(&a).Float(&b)

	err := r.Err()
	fmt.Println(err)
	fmt.Println(errors.Is(err, jarchive.ErrType))
	// Output:
	// type mismatch at $.scores[1]: got string, want number
	// true
}
