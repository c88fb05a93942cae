// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate file...",
		Short: "Check that files contain well-formed JSON",
		Long: `Validate parses each named file and reports whether it contains exactly one
well-formed JSON value. The exit status is nonzero if any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			opts := c.Config.readOptions(logger)
			out := cmd.OutOrStdout()

			var nbad int
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				p := newProgress(logger)
				var doc document
				if err := opts.Unmarshal(data, &doc); err != nil {
					nbad++
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}
				p.done("validated", "path", path, "kind", doc.root.Kind())
				fmt.Fprintf(out, "%s: OK\n", path)
			}
			if nbad > 0 {
				return fmt.Errorf("%d of %d files invalid", nbad, len(args))
			}
			return nil
		},
	}
}
