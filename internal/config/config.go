// Released under an MIT license. See LICENSE.

// Package config loads a project's symc.yaml: the search directories,
// naming conventions, and output layout a build applies uniformly across
// every module, as opposed to the per-module overrides internal/module
// carries on each Module value. Parsing goes through gopkg.in/yaml.v3,
// the same library adest-aes-scripts uses for its own tool configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NameStyle controls how the writer renders identifiers whose fragments
// are tagged output.ConvertTypeName or output.ConvertFunctionName.
type NameStyle struct {
	// TypeCase is one of "PascalCase", "camelCase", or "snake_case".
	// Defaults to "PascalCase".
	TypeCase string `yaml:"typeCase,omitempty"`

	// FunctionCase follows the same vocabulary as TypeCase. Defaults to
	// "snake_case".
	FunctionCase string `yaml:"functionCase,omitempty"`
}

// Format controls the writer's textual layout of emitted source.
type Format struct {
	// IndentWidth is the number of spaces per indent level inside an
	// OpenBlock/CloseBlock pair. Defaults to 4.
	IndentWidth int `yaml:"indentWidth,omitempty"`

	// BraceStyle is one of "same-line" (K&R) or "next-line" (Allman).
	// Defaults to "same-line".
	BraceStyle string `yaml:"braceStyle,omitempty"`
}

// Config is the parsed content of a project's symc.yaml.
type Config struct {
	// SearchDirectories are added to every module's search path before
	// any module-specific override, in listed order.
	SearchDirectories []string `yaml:"searchDirectories,omitempty"`

	// OutputDir is where generated source/header files and the
	// compile-time build scratch directory are written. The path is used
	// as given: a relative path is relative to the working directory,
	// not to the config file's directory.
	OutputDir string `yaml:"outputDir,omitempty"`

	// CacheFile is the buildcache database path, relative to OutputDir
	// unless absolute. Empty disables the build cache.
	CacheFile string `yaml:"cacheFile,omitempty"`

	NameStyle NameStyle `yaml:"nameStyle,omitempty"`
	Format    Format    `yaml:"format,omitempty"`

	// HeadingText, if set, is written verbatim at the top of every
	// generated source and header file, ahead of its rendered body (e.g.
	// a "generated file, do not edit" banner).
	HeadingText string `yaml:"headingText,omitempty"`

	// FooterText, if set, is written verbatim at the end of every
	// generated source and header file.
	FooterText string `yaml:"footerText,omitempty"`

	// Verbose mirrors internal/build.Builder.Verbose.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Default returns a Config with every field at its documented default.
func Default() *Config {
	return &Config{
		OutputDir: "build",
		CacheFile: "buildcache.db",
		NameStyle: NameStyle{
			TypeCase:     "PascalCase",
			FunctionCase: "snake_case",
		},
		Format: Format{
			IndentWidth: 4,
			BraceStyle:  "same-line",
		},
	}
}

// Load reads and parses the symc.yaml at path, filling in any field the
// file leaves unset with Default's value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.NameStyle.TypeCase {
	case "PascalCase", "camelCase", "snake_case":
	default:
		return fmt.Errorf("nameStyle.typeCase: unknown case %q", c.NameStyle.TypeCase)
	}

	switch c.NameStyle.FunctionCase {
	case "PascalCase", "camelCase", "snake_case":
	default:
		return fmt.Errorf("nameStyle.functionCase: unknown case %q", c.NameStyle.FunctionCase)
	}

	switch c.Format.BraceStyle {
	case "same-line", "next-line":
	default:
		return fmt.Errorf("format.braceStyle: unknown style %q", c.Format.BraceStyle)
	}

	if c.Format.IndentWidth <= 0 {
		return fmt.Errorf("format.indentWidth: must be positive, got %d", c.Format.IndentWidth)
	}

	return nil
}
