// Released under an MIT license. See LICENSE.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "symc.yaml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadFillsUnsetFieldsFromDefault(t *testing.T) {
	path := writeConfig(t, "searchDirectories: [\"include\"]\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(cfg.SearchDirectories) != 1 || cfg.SearchDirectories[0] != "include" {
		t.Fatalf("unexpected search directories: %v", cfg.SearchDirectories)
	}

	if cfg.OutputDir != "build" {
		t.Fatalf("expected default OutputDir, got %q", cfg.OutputDir)
	}

	if cfg.NameStyle.TypeCase != "PascalCase" || cfg.NameStyle.FunctionCase != "snake_case" {
		t.Fatalf("unexpected default name style: %+v", cfg.NameStyle)
	}

	if cfg.Format.IndentWidth != 4 || cfg.Format.BraceStyle != "same-line" {
		t.Fatalf("unexpected default format: %+v", cfg.Format)
	}
}

func TestLoadOverridesDefaultsExplicitly(t *testing.T) {
	path := writeConfig(t, `
outputDir: out
nameStyle:
  typeCase: camelCase
format:
  indentWidth: 2
  braceStyle: next-line
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.OutputDir != "out" {
		t.Fatalf("expected overridden OutputDir, got %q", cfg.OutputDir)
	}

	if cfg.NameStyle.TypeCase != "camelCase" {
		t.Fatalf("expected overridden TypeCase, got %q", cfg.NameStyle.TypeCase)
	}

	if cfg.NameStyle.FunctionCase != "snake_case" {
		t.Fatalf("expected untouched FunctionCase default, got %q", cfg.NameStyle.FunctionCase)
	}

	if cfg.Format.IndentWidth != 2 || cfg.Format.BraceStyle != "next-line" {
		t.Fatalf("unexpected format: %+v", cfg.Format)
	}
}

func TestLoadRejectsUnknownNameCase(t *testing.T) {
	path := writeConfig(t, "nameStyle:\n  typeCase: kebab-case\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown typeCase")
	}
}

func TestLoadRejectsNonPositiveIndentWidth(t *testing.T) {
	path := writeConfig(t, "format:\n  indentWidth: 0\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a non-positive indentWidth")
	}
}

func TestLoadReportsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
