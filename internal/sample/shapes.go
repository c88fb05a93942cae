// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package sample

import (
	"fmt"

	"github.com/creachadair/jarchive"
)

// A Shape is one of a family of geometric figures. Each shape is archived as
// an object whose "type" member names the concrete kind.
type Shape interface {
	jarchive.Writable

	// Type returns the discriminant of the concrete kind.
	Type() string

	// ReadFields reads the kind-specific members from the open object of r.
	ReadFields(r *jarchive.Reader)

	String() string
}

// Shapes maps the type tag of each Shape to its constructor.
var Shapes = jarchive.NewRegistry[Shape]("type")

func init() {
	Shapes.
		Register("Circle", func() Shape { return new(Circle) }).
		Register("Box", func() Shape { return new(Box) })
}

// A Circle is a Shape with a center and a radius.
type Circle struct {
	X, Y   float64
	Radius float64
}

// Type implements part of Shape.
func (*Circle) Type() string { return "Circle" }

func (c *Circle) String() string {
	return fmt.Sprintf("Circle (%g, %g) radius = %g", c.X, c.Y, c.Radius)
}

// WriteJSON implements jarchive.Writable.
func (c *Circle) WriteJSON(w *jarchive.Writer) {
	w.StartObject()
	Shapes.WriteTag(w, c.Type())
	w.Member("x").Float(c.X)
	w.Member("y").Float(c.Y)
	w.Member("radius").Float(c.Radius)
	w.EndObject()
}

// ReadFields implements part of Shape.
func (c *Circle) ReadFields(r *jarchive.Reader) {
	r.FindMember("x").Float(&c.X)
	r.FindMember("y").Float(&c.Y)
	r.FindMember("radius").Float(&c.Radius)
}

// A Box is a Shape with a corner, a width, and a height.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Type implements part of Shape.
func (*Box) Type() string { return "Box" }

func (b *Box) String() string {
	return fmt.Sprintf("Box (%g, %g) width = %g height = %g", b.X, b.Y, b.Width, b.Height)
}

// WriteJSON implements jarchive.Writable.
func (b *Box) WriteJSON(w *jarchive.Writer) {
	w.StartObject()
	Shapes.WriteTag(w, b.Type())
	w.Member("x").Float(b.X)
	w.Member("y").Float(b.Y)
	w.Member("width").Float(b.Width)
	w.Member("height").Float(b.Height)
	w.EndObject()
}

// ReadFields implements part of Shape.
func (b *Box) ReadFields(r *jarchive.Reader) {
	r.FindMember("x").Float(&b.X)
	r.FindMember("y").Float(&b.Y)
	r.FindMember("width").Float(&b.Width)
	r.FindMember("height").Float(&b.Height)
}

// A Canvas is an ordered collection of shapes, archived as an array.
type Canvas struct {
	Shapes []Shape
}

// WriteJSON implements jarchive.Writable.
func (c *Canvas) WriteJSON(w *jarchive.Writer) {
	w.StartArray(len(c.Shapes))
	for _, s := range c.Shapes {
		s.WriteJSON(w)
	}
	w.EndArray()
}

// ReadJSON implements jarchive.Readable. Shapes are constructed according to
// their type tags; an unknown tag is reported as jarchive.ErrVariant.
func (c *Canvas) ReadJSON(r *jarchive.Reader) {
	var n int
	r.StartArray(&n)
	c.Shapes = make([]Shape, 0, n)
	for range n {
		r.StartObject()
		if s, ok := Shapes.Decode(r); ok {
			s.ReadFields(r)
			c.Shapes = append(c.Shapes, s)
		}
		r.EndObject()
	}
	r.EndArray()
}
