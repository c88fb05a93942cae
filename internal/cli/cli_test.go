// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jarchive"
	"github.com/google/go-cmp/cmp"
)

// run executes the CLI with the given arguments and stdin, and returns its
// standard output.
func run(t *testing.T, stdin string, args ...string) (*CLI, string, error) {
	t.Helper()
	c := New()
	root := c.RootCommand()
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return c, stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Write %s: %v", name, err)
	}
	return path
}

func TestDemo(t *testing.T) {
	_, out, err := run(t, "", "demo")
	if err != nil {
		t.Fatalf("demo: unexpected error: %v", err)
	}
	want := []string{
		`{"name":"Lua","age":9,"height":150.5,"canSwim":true}`,
		`Lua 9 150.5 true`,
		`{"groupName":"Rainbow","students":[{"name":"Lua","age":9,"height":150.5,"canSwim":true},{"name":"Mio","age":7,"height":120.0,"canSwim":false}]}`,
		`Rainbow`,
		`Lua 9 150.5 true`,
		`Mio 7 120 false`,
		`[{"type":"Circle","x":1.0,"y":2.0,"radius":3.0},{"type":"Box","x":4.0,"y":5.0,"width":6.0,"height":7.0}]`,
		`Circle (1, 2) radius = 3`,
		`Box (4, 5) width = 6 height = 7`,
	}
	if diff := cmp.Diff(want, strings.Split(strings.TrimSpace(out), "\n")); diff != "" {
		t.Errorf("demo output (-want, +got):\n%s", diff)
	}
}

func TestCompact(t *testing.T) {
	const input = `{
  "a": [1, 2.50, -3],
  "b": {"c": "dA"},
  "e": null
}`
	const want = `{"a":[1,2.5,-3],"b":{"c":"dA"},"e":null}` + "\n"

	t.Run("Stdin", func(t *testing.T) {
		_, out, err := run(t, input, "compact")
		if err != nil {
			t.Fatalf("compact: unexpected error: %v", err)
		}
		if out != want {
			t.Errorf("compact: got %#q, want %#q", out, want)
		}
	})
	t.Run("File", func(t *testing.T) {
		path := writeFile(t, "in.json", input)
		_, out, err := run(t, "", "compact", path)
		if err != nil {
			t.Fatalf("compact: unexpected error: %v", err)
		}
		if out != want {
			t.Errorf("compact: got %#q, want %#q", out, want)
		}
	})
	t.Run("HuJSON", func(t *testing.T) {
		const input = "[1, /* two */ 2,]"
		if _, _, err := run(t, input, "compact"); !errors.Is(err, jarchive.ErrSyntax) {
			t.Errorf("compact without --hujson: got %v, want %v", err, jarchive.ErrSyntax)
		}
		_, out, err := run(t, input, "compact", "--hujson")
		if err != nil {
			t.Fatalf("compact --hujson: unexpected error: %v", err)
		}
		if out != "[1,2]\n" {
			t.Errorf("compact --hujson: got %#q, want %#q", out, "[1,2]\n")
		}
	})
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.json", `{"ok": true}`)
	bad := writeFile(t, "bad.json", `{"ok": true,}`)
	deep := writeFile(t, "deep.json", `[[[[1]]]]`)

	_, out, err := run(t, "", "validate", good, deep)
	if err != nil {
		t.Fatalf("validate: unexpected error: %v", err)
	}
	if want := good + ": OK\n" + deep + ": OK\n"; out != want {
		t.Errorf("validate: got %q, want %q", out, want)
	}

	_, out, err = run(t, "", "validate", good, bad)
	if err == nil || err.Error() != "1 of 2 files invalid" {
		t.Errorf("validate: got error %v, want 1 of 2 invalid", err)
	}
	if !strings.HasPrefix(out, good+": OK\n"+bad+": syntax error at 1:12") {
		t.Errorf("validate: got %q", out)
	}

	_, _, err = run(t, "", "validate", "--max-depth", "3", deep)
	if err == nil {
		t.Error("validate --max-depth 3: got nil error, want failure")
	}
}

func TestConfig(t *testing.T) {
	cfg := writeFile(t, "config.toml", "verbose = true\nhujson = true\nmax_depth = 2\n")

	t.Run("File", func(t *testing.T) {
		c, _, err := run(t, "[1,]", "compact", "--config", cfg)
		if err != nil {
			t.Fatalf("compact: unexpected error: %v", err)
		}
		want := Config{Verbose: true, HuJSON: true, MaxDepth: 2}
		if diff := cmp.Diff(want, c.Config); diff != "" {
			t.Errorf("Config (-want, +got):\n%s", diff)
		}
		if got := c.Logger.GetLevel(); got != log.DebugLevel {
			t.Errorf("Log level: got %v, want %v", got, log.DebugLevel)
		}
	})
	t.Run("FlagsOverride", func(t *testing.T) {
		c, _, err := run(t, "[[[1]]]", "compact", "--config", cfg, "--max-depth", "5", "--hujson=false")
		if err != nil {
			t.Fatalf("compact: unexpected error: %v", err)
		}
		want := Config{Verbose: true, HuJSON: false, MaxDepth: 5}
		if diff := cmp.Diff(want, c.Config); diff != "" {
			t.Errorf("Config (-want, +got):\n%s", diff)
		}
	})
	t.Run("Invalid", func(t *testing.T) {
		for _, content := range []string{
			"max_depth = \"many\"\n",
			"max_depth = -1\n",
			"colour = true\n",
		} {
			path := writeFile(t, "bad.toml", content)
			if _, err := loadConfig(path); err == nil {
				t.Errorf("loadConfig(%q): got nil error, want failure", content)
			}
		}
		if _, _, err := run(t, "1", "compact", "--config", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("compact with missing config: got nil error, want failure")
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	logger.Info("shown")
	if s := buf.String(); strings.Contains(s, "hidden") || !strings.Contains(s, "shown") {
		t.Errorf("Log output: got %q", s)
	}

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Errorf("loggerFromContext: got %p, want %p", got, logger)
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Errorf("loggerFromContext(empty): got %p, want default", got)
	}

	buf.Reset()
	logger.SetLevel(log.DebugLevel)
	newProgress(logger).done("finished", "step", 1)
	if s := buf.String(); !strings.Contains(s, "finished") || !strings.Contains(s, "elapsed") {
		t.Errorf("Progress output: got %q", s)
	}
}
