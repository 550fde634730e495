// Released under an MIT license. See LICENSE.

package module

import (
	"os"

	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/eval"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/lexer"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

// RegisterIncludeGenerator installs the "include" generator into m.Env,
// blaming diagnostics to sink. Unlike the generators in
// internal/generators/fundamental, include needs the Manager itself: it
// resolves a dependency file against the including module's
// SearchDirectories and folds the result into the same Environment
// every other module shares.
func (m *Manager) RegisterIncludeGenerator(sink *diag.Sink) {
	m.Env.RegisterGenerator("include", m.includeGenerator(sink))
}

// includeGenerator implements "(include "name")": it resolves "name"
// against the including module's SearchDirectories, tokenizes and
// evaluates every match as its own Module sharing m.Env, and records a
// ModuleDependency on the including module for each one. A dependency
// module is marked SkipBuild: it contributes definitions to the shared
// Environment but, like a forward-declaration file, has no source/header
// of its own to emit.
func (m *Manager) includeGenerator(sink *diag.Sink) env.GeneratorFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool {
		v := expr.Vec
		head := expr.Head()

		if !eval.ExpectScope(sink, "include", head, ctx, evalctx.Module) {
			return false
		}

		nameIdx := eval.GetArgument(v, expr.Start, 1, expr.End)
		if nameIdx == -1 {
			sink.Errorf(head, "include requires a string naming a dependency file")
			return false
		}

		nameTok := v.At(nameIdx)
		if !eval.ExpectTokenKind(sink, nameTok, token.String) {
			return false
		}

		name, err := lexer.DecodeString(nameTok)
		if err != nil {
			sink.Errorf(nameTok, "include: %v", err)
			return false
		}

		including := m.findModule(ctx.Module)
		if including == nil {
			sink.Errorf(nameTok, "include: %q is not a module the manager is tracking", ctx.Module)
			return false
		}

		matches, err := including.ResolveDependency(name)
		if err != nil {
			sink.Errorf(nameTok, "include %q: %v", name, err)
			return false
		}

		if len(matches) == 0 {
			sink.Errorf(nameTok, "include: %q not found in any of %v", name, including.SearchDirectories)
			return false
		}

		errs := 0

		for _, path := range matches {
			if !m.loadDependency(sink, nameTok, including, path) {
				errs++
			}
		}

		return errs == 0
	}
}

// loadDependency tokenizes and evaluates path as a new Module sharing
// m.Env, unless a module under that filename is already registered.
// Either way it records a ModuleDependency on including.
func (m *Manager) loadDependency(sink *diag.Sink, blame *token.T, including *Module, path string) bool {
	including.Dependencies = append(including.Dependencies, Dependency{Kind: ModuleDependency, Name: path})

	if m.findModule(path) != nil {
		return true
	}

	src, err := os.ReadFile(path)
	if err != nil {
		sink.Errorf(blame, "include %q: %v", path, err)
		return false
	}

	v, err := lexer.TokenizeSource(string(src), path)
	if err != nil {
		sink.Errorf(blame, "include %q: %v", path, err)
		return false
	}

	v.Freeze()

	dep := m.AddModule(path, v)
	dep.SearchDirectories = including.SearchDirectories
	dep.SkipBuild = true

	if errs := m.EvaluateModule(dep, sink); errs > 0 {
		return false
	}

	return true
}
