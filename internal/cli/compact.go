// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jarchive"
	"github.com/creachadair/jarchive/dom"
	"github.com/spf13/cobra"
)

// document archives an arbitrary JSON value.
type document struct{ root *dom.Value }

func (d *document) ReadJSON(r *jarchive.Reader)  { r.Any(&d.root) }
func (d *document) WriteJSON(w *jarchive.Writer) { w.Value(d.root) }

// readInput reads the contents of the named file, or of stdin if name is ""
// or "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func (c *CLI) compactCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compact [file]",
		Short: "Re-emit a JSON document in compact form",
		Long: `Compact reads a JSON document from the named file, or from stdin, and
writes it to stdout with all insignificant whitespace removed. With --hujson,
comments and trailing commas are also removed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(cmd, name)
			if err != nil {
				return err
			}
			logger.Debug("read input", "bytes", len(data))

			p := newProgress(logger)
			var doc document
			if err := c.Config.readOptions(logger).Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parse %s: %w", displayName(name), err)
			}
			out, err := jarchive.Marshal(&doc)
			if err != nil {
				return err
			}
			p.done("compacted", "kind", doc.root.Kind(), "bytes", len(out))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}
