// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package cli implements the jarchive command-line interface.
//
// The commands are:
//   - demo: archive the sample records and read them back
//   - compact: re-emit a JSON document in compact form
//   - validate: check that files contain well-formed JSON
//
// All commands support --verbose (-v) for debug-level logging, --hujson to
// accept comments and trailing commas, --max-depth to bound nesting, and
// --config to load these settings from a TOML file. The logger is passed to
// commands through their context.
package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// CLI holds the state shared by all commands.
type CLI struct {
	Config Config
	Logger *log.Logger

	configPath string
}

// New creates a CLI with default settings.
func New() *CLI { return new(CLI) }

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "jarchive",
		Short:             "Archive records to and from JSON",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	pf := root.PersistentFlags()
	pf.BoolVarP(&c.Config.Verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.configPath, "config", "", "load settings from this TOML file")
	pf.BoolVar(&c.Config.HuJSON, "hujson", false, "accept comments and trailing commas in input")
	pf.IntVar(&c.Config.MaxDepth, "max-depth", 0, "maximum nesting depth of input (0 for the default)")

	root.AddCommand(c.demoCommand())
	root.AddCommand(c.compactCommand())
	root.AddCommand(c.validateCommand())
	return root
}

// setup merges the configuration file with the flags, and attaches a logger
// to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.configPath != "" {
		file, err := loadConfig(c.configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if !flags.Changed("verbose") {
			c.Config.Verbose = file.Verbose
		}
		if !flags.Changed("hujson") {
			c.Config.HuJSON = file.HuJSON
		}
		if !flags.Changed("max-depth") {
			c.Config.MaxDepth = file.MaxDepth
		}
	}
	c.Logger = newLogger(cmd.ErrOrStderr(), c.Config.logLevel())
	c.Logger.Debug("settings", "hujson", c.Config.HuJSON, "max_depth", c.Config.MaxDepth, "config", c.configPath)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
