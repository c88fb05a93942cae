// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/creachadair/jarchive"
)

// Config holds the settings shared by all commands. Values may be loaded from
// a TOML file with --config; flags given on the command line take precedence.
//
// Example file:
//
//	verbose = true
//	hujson = true
//	max_depth = 64
type Config struct {
	Verbose  bool `toml:"verbose"`
	HuJSON   bool `toml:"hujson"`
	MaxDepth int  `toml:"max_depth"`
}

// loadConfig reads a TOML configuration file.
func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) != 0 {
		return cfg, fmt.Errorf("config %q: unknown key %q", path, undec[0].String())
	}
	if cfg.MaxDepth < 0 {
		return cfg, fmt.Errorf("config %q: invalid max_depth %d", path, cfg.MaxDepth)
	}
	return cfg, nil
}

func (c Config) logLevel() log.Level {
	if c.Verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// readOptions returns reader settings matching c.
func (c Config) readOptions(l *log.Logger) jarchive.ReadOptions {
	return jarchive.ReadOptions{HuJSON: c.HuJSON, MaxDepth: c.MaxDepth, Logger: l}
}
