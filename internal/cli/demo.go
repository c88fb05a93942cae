// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"io"

	"github.com/creachadair/jarchive"
	"github.com/creachadair/jarchive/internal/sample"
	"github.com/spf13/cobra"
)

func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Archive the sample records and read them back",
		Long: `Demo writes a student, a group of students, and a canvas of shapes as JSON,
then reads each document back and prints the decoded values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			opts := c.Config.readOptions(logger)
			out := cmd.OutOrStdout()

			lua := sample.Student{Name: "Lua", Age: 9, Height: 150.5, CanSwim: true}
			mio := sample.Student{Name: "Mio", Age: 7, Height: 120, CanSwim: false}
			cases := []struct {
				name string
				in   jarchive.Writable
				out  interface {
					jarchive.Readable
					fmt.Stringer
				}
			}{
				{"student", &lua, new(sample.Student)},
				{"group", &sample.Group{Name: "Rainbow", Students: []sample.Student{lua, mio}}, new(sample.Group)},
				{"canvas", &sample.Canvas{Shapes: []sample.Shape{
					&sample.Circle{X: 1, Y: 2, Radius: 3},
					&sample.Box{X: 4, Y: 5, Width: 6, Height: 7},
				}}, new(canvasText)},
			}
			for _, tc := range cases {
				p := newProgress(logger)
				if err := roundTrip(out, opts, tc.in, tc.out); err != nil {
					return fmt.Errorf("%s: %w", tc.name, err)
				}
				p.done("round trip complete", "record", tc.name)
			}
			return nil
		},
	}
}

// roundTrip writes in as JSON, prints it, reads it into out, and prints the
// result.
func roundTrip(w io.Writer, opts jarchive.ReadOptions, in jarchive.Writable, out interface {
	jarchive.Readable
	fmt.Stringer
}) error {
	data, err := jarchive.Marshal(in)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	if err := opts.Unmarshal(data, out); err != nil {
		return err
	}
	fmt.Fprintln(w, out.String())
	return nil
}

// canvasText renders a decoded canvas one shape per line.
type canvasText struct{ sample.Canvas }

func (c *canvasText) String() string {
	var s string
	for i, shape := range c.Shapes {
		if i > 0 {
			s += "\n"
		}
		s += shape.String()
	}
	return s
}
