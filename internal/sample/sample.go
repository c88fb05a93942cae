// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package sample defines record types that are archived with the jarchive
// Reader and Writer. They are used by the command-line demo and in tests.
package sample

import (
	"fmt"
	"strings"

	"github.com/creachadair/jarchive"
)

// A Student is a simple record of scalar fields.
type Student struct {
	Name    string
	Age     uint
	Height  float64
	CanSwim bool
}

func (s Student) String() string {
	return fmt.Sprintf("%s %d %g %v", s.Name, s.Age, s.Height, s.CanSwim)
}

// WriteJSON implements jarchive.Writable.
func (s *Student) WriteJSON(w *jarchive.Writer) {
	w.StartObject()
	w.Member("name").Str(s.Name)
	w.Member("age").Uint(uint64(s.Age))
	w.Member("height").Float(s.Height)
	w.Member("canSwim").Bool(s.CanSwim)
	w.EndObject()
}

// ReadJSON implements jarchive.Readable.
func (s *Student) ReadJSON(r *jarchive.Reader) {
	r.StartObject()
	r.FindMember("name").Str(&s.Name)
	r.FindMember("age").Into(&s.Age)
	r.FindMember("height").Float(&s.Height)
	r.FindMember("canSwim").Bool(&s.CanSwim)
	r.EndObject()
}

// A Group is a named sequence of students.
type Group struct {
	Name     string
	Students []Student
}

func (g *Group) String() string {
	var sb strings.Builder
	sb.WriteString(g.Name)
	for _, s := range g.Students {
		sb.WriteString("\n")
		sb.WriteString(s.String())
	}
	return sb.String()
}

// WriteJSON implements jarchive.Writable.
func (g *Group) WriteJSON(w *jarchive.Writer) {
	w.StartObject()
	w.Member("groupName").Str(g.Name)
	w.Member("students").StartArray(len(g.Students))
	for i := range g.Students {
		g.Students[i].WriteJSON(w)
	}
	w.EndArray()
	w.EndObject()
}

// ReadJSON implements jarchive.Readable.
func (g *Group) ReadJSON(r *jarchive.Reader) {
	var n int
	r.StartObject()
	r.FindMember("groupName").Str(&g.Name)
	r.FindMember("students").StartArray(&n)
	g.Students = make([]Student, n)
	for i := range g.Students {
		g.Students[i].ReadJSON(r)
	}
	r.EndArray()
	r.EndObject()
}
