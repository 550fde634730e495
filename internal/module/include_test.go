// Released under an MIT license. See LICENSE.

package module

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/generators/fundamental"
	"github.com/symc-lang/symc/internal/loc"
	"github.com/symc-lang/symc/internal/token"
)

func strTok(text string) token.T {
	return *token.New(token.String, `"`+text+`"`, loc.New("a.sym", 1, 0, len(text)+2))
}

func TestResolveDependencyFindsExactAndDefaultExtension(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "lib.sym"), []byte("(defun f () )"), 0o644); err != nil {
		t.Fatal(err)
	}

	mod := &Module{SearchDirectories: []string{dir}}

	matches, err := mod.ResolveDependency("lib")
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 1 || matches[0] != filepath.Join(dir, "lib.sym") {
		t.Fatalf("got %v", matches)
	}
}

func TestResolveDependencySearchesEveryDirectoryInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	if err := os.WriteFile(filepath.Join(second, "util.sym"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	mod := &Module{SearchDirectories: []string{first, second}}

	matches, err := mod.ResolveDependency("util")
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 1 || matches[0] != filepath.Join(second, "util.sym") {
		t.Fatalf("got %v", matches)
	}
}

func TestIncludeGeneratorLoadsMatchedFileIntoSharedEnvironment(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "shared.sym"), []byte("(defun helper () )"), 0o644); err != nil {
		t.Fatal(err)
	}

	// (include "shared")
	v := token.NewVec(5)
	v.Push(*token.New(token.OpenParen, "(", nil))
	v.Push(*token.New(token.Symbol, "include", nil))
	v.Push(strTok("shared"))
	v.Push(*token.New(token.CloseParen, ")", nil))
	v.Freeze()

	m := NewManager()
	defer m.Destroy()

	var buf bytes.Buffer
	sink := diag.New(&buf)
	m.RegisterIncludeGenerator(sink)
	fundamental.RegisterAll(m.Env, sink)

	mod := m.AddModule("main.sym", v)
	mod.SearchDirectories = []string{dir}

	if errs := m.EvaluateModule(mod, sink); errs != 0 {
		t.Fatalf("unexpected errors: %d, diagnostics: %s", errs, buf.String())
	}

	if len(m.Modules) != 2 {
		t.Fatalf("expected the dependency to register as its own module, got %d modules", len(m.Modules))
	}

	dep := m.Modules[1]
	if !dep.SkipBuild {
		t.Fatal("expected dependency module to be marked SkipBuild")
	}

	if _, found := m.Env.Find("helper"); !found {
		t.Fatal("expected the dependency's definition to be visible on the shared Environment")
	}

	if len(mod.Dependencies) != 1 || mod.Dependencies[0].Kind != ModuleDependency {
		t.Fatalf("expected one recorded ModuleDependency, got %+v", mod.Dependencies)
	}
}

func TestIncludeGeneratorReportsMissingFile(t *testing.T) {
	v := token.NewVec(5)
	v.Push(*token.New(token.OpenParen, "(", nil))
	v.Push(*token.New(token.Symbol, "include", nil))
	v.Push(strTok("nope"))
	v.Push(*token.New(token.CloseParen, ")", nil))
	v.Freeze()

	m := NewManager()
	defer m.Destroy()

	var buf bytes.Buffer
	sink := diag.New(&buf)
	m.RegisterIncludeGenerator(sink)

	mod := m.AddModule("main.sym", v)
	mod.SearchDirectories = []string{t.TempDir()}

	if errs := m.EvaluateModule(mod, sink); errs == 0 {
		t.Fatal("expected an error for an unresolvable include")
	}

	if !strings.Contains(buf.String(), "not found") {
		t.Fatalf("unexpected diagnostic: %s", buf.String())
	}
}
