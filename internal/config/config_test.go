package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseOverlaysDefaults(t *testing.T) {
	binDir := filepath.Join(t.TempDir(), "bin")
	path := writeConfig(t, `
core:
  bin_dir: `+binDir+`
  empty:
    confirm: false
list:
  exclude:
    globs: ["*.swp"]
`)

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Core.BinDir != binDir {
		t.Errorf("BinDir = %q, want %q", cfg.Core.BinDir, binDir)
	}
	if cfg.Core.Empty.Confirm {
		t.Error("Empty.Confirm = true, want false")
	}
	if cfg.UI.DateFormat != "relative" {
		t.Errorf("DateFormat = %q, want default %q", cfg.UI.DateFormat, "relative")
	}
	if !cfg.Core.Restore.Verbose {
		t.Error("Restore.Verbose lost its default")
	}
	if len(cfg.List.Exclude.Globs) != 1 || cfg.List.Exclude.Globs[0] != "*.swp" {
		t.Errorf("Globs = %v", cfg.List.Exclude.Globs)
	}
}

func TestParseExpandsBinDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RSYCLE_TEST_DIR", "custom")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tilde", in: "~/.rsyclebin", want: filepath.Join(home, ".rsyclebin")},
		{name: "env var", in: "$HOME/$RSYCLE_TEST_DIR", want: filepath.Join(home, "custom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(writeConfig(t, "core:\n  bin_dir: "+tt.in+"\n"))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.Core.BinDir != tt.want {
				t.Errorf("BinDir = %q, want %q", cfg.Core.BinDir, tt.want)
			}
		})
	}
}

func TestParseValidation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain-file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "bad datefmt", content: "ui:\n  datefmt: sometimes\n", field: "datefmt"},
		{name: "bad size", content: "list:\n  exclude:\n    size:\n      max: huge\n", field: "max"},
		{name: "bad level", content: "core:\n  logging:\n    level: loud\n", field: "level"},
		{name: "bad log format", content: "core:\n  logging:\n    format: xml\n", field: "format"},
		{name: "bad rotation size", content: "core:\n  logging:\n    rotation:\n      max_size: 10 apples\n", field: "max_size"},
		{name: "bad regexp", content: "list:\n  exclude:\n    patterns: [\"(\"]\n", field: "patterns"},
		{name: "bin_dir is a file", content: "core:\n  bin_dir: " + file + "\n", field: "bin_dir"},
		{name: "negative days", content: "list:\n  include:\n    within_days: -1\n", field: "within_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Parse() succeeded, want validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %q", err, tt.field)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	var cerr configError
	if !errors.As(err, &cerr) {
		t.Fatalf("Parse() error = %v, want configError", err)
	}
	if !strings.Contains(err.Error(), "Example YAML file contents") {
		t.Errorf("error lacks example contents: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error does not wrap os.ErrNotExist: %v", err)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	data, err := yaml.Marshal(NewDefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", t.TempDir())
	cfg, err := Parse(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	if cfg.Core.Logging.Rotation.MaxFiles != 3 {
		t.Errorf("MaxFiles = %d, want 3", cfg.Core.Logging.Rotation.MaxFiles)
	}
}
