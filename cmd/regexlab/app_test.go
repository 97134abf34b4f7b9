package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/regexlab/pkg/command"
	"github.com/Veraticus/regexlab/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Color = config.ColorNever
	return cfg
}

func TestNewDependencies(t *testing.T) {
	cfg := testConfig(t)

	deps, err := NewDependencies(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.Config != cfg {
		t.Error("expected config to be set")
	}

	if deps.Logger == nil {
		t.Error("expected logger to be created")
	}

	if deps.Store == nil {
		t.Error("expected store to be created")
	}

	if deps.Printer == nil {
		t.Error("expected printer to be created")
	}

	if deps.Dispatcher == nil {
		t.Error("expected dispatcher to be created")
	}
}

func TestNewDependenciesInvalidFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.ExportFormat = "xml"

	if _, err := NewDependencies(cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected error for invalid export format")
	}
}

func TestNewDependenciesColor(t *testing.T) {
	tests := []struct {
		mode string
		want bool
	}{
		{config.ColorAlways, true},
		{config.ColorNever, false},
		{config.ColorAuto, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Color = tt.mode
			out := &bytes.Buffer{}

			deps, err := NewDependencies(cfg, out)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			NewApplication(deps).Run([]string{"find", "a", "a"})

			if got := strings.Contains(out.String(), "\033["); got != tt.want {
				t.Errorf("expected color=%v, got output %q", tt.want, out.String())
			}
		})
	}
}

func TestApplicationRun(t *testing.T) {
	cfg := testConfig(t)
	out := &bytes.Buffer{}

	deps, err := NewDependencies(cfg, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app := NewApplication(deps)

	if code := app.Run([]string{"test", `\d+`, "abc 123"}); code != command.ExitOK {
		t.Fatalf("expected exit 0, got %d\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "[OK] 1 match(es) found") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	// The test run is persisted under the configured data directory.
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "history.json")); err != nil {
		t.Errorf("expected history file: %v", err)
	}

	out.Reset()
	if code := app.Run([]string{"history"}); code != command.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Pattern: \\d+") {
		t.Errorf("expected history to list the pattern, got:\n%s", out.String())
	}

	out.Reset()
	if code := app.Run([]string{"test", "(", "x"}); code != command.ExitError {
		t.Errorf("expected exit 1 for invalid pattern, got %d", code)
	}
}

func TestApplicationHistoryLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.HistoryLimit = 2
	out := &bytes.Buffer{}

	deps, err := NewDependencies(cfg, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app := NewApplication(deps)

	for _, p := range []string{"a", "b", "c"} {
		app.Run([]string{"test", p, "abc"})
	}

	history, err := deps.Store.LoadHistory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 || history[0].Pattern != "b" || history[1].Pattern != "c" {
		t.Errorf("expected the two newest entries, got %+v", history)
	}
}

func TestRunGlobalFlags(t *testing.T) {
	t.Setenv("REGEXLAB_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))

	if code := run([]string{"--help"}); code != command.ExitOK {
		t.Errorf("expected exit 0 for --help, got %d", code)
	}

	if code := run([]string{"--bogus"}); code != command.ExitError {
		t.Errorf("expected exit 1 for unknown global flag, got %d", code)
	}

	bad := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(bad, []byte("history_limit: 500\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if code := run([]string{"--config", bad, "library", "list"}); code != command.ExitError {
		t.Errorf("expected exit 1 for invalid config, got %d", code)
	}

	dir := t.TempDir()
	if code := run([]string{"--data-dir", dir, "favorite", "add", "word", `\w+`}); code != command.ExitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "favorites.json")); err != nil {
		t.Errorf("expected favorites under --data-dir: %v", err)
	}
}
