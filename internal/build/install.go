// Released under an MIT license. See LICENSE.

package build

import (
	"fmt"

	"github.com/symc-lang/symc/internal/comptime"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/object"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/resolve"
	"github.com/symc-lang/symc/internal/token"
)

// Installer adapts Builder's built Callables into env.Environment's
// macro and generator registries, and is itself a resolve.Builder: the
// resolver calls Installer.Build once per required compile-time
// definition, and the definition's macro/generator becomes usable by
// the rest of the evaluation immediately after.
type Installer struct {
	Env      *env.Environment
	Compiler comptime.Builder
}

// NewInstaller creates an Installer wired to e and compiled via
// compiler (typically a *Builder).
func NewInstaller(e *env.Environment, compiler comptime.Builder) *Installer {
	return &Installer{Env: e, Compiler: compiler}
}

// Build compiles def and installs it under its own name, choosing the
// expected signature and target registry from def.Kind.
func (in *Installer) Build(def *object.Definition) error {
	switch def.Kind {
	case object.Macro:
		callable, err := comptime.Build(in.Compiler, def, comptime.MacroSignature)
		if err != nil {
			return err
		}

		in.Env.RegisterMacro(def.Name.Text, adaptMacro(callable))

		return nil

	case object.Generator:
		callable, err := comptime.Build(in.Compiler, def, comptime.GeneratorSignature)
		if err != nil {
			return err
		}

		in.Env.RegisterGenerator(def.Name.Text, adaptGenerator(callable))

		return nil

	case object.CompileTimeFunction:
		// Plain compile-time functions have no canonical expected
		// signature — they're helper code other macros/generators call
		// from their own generated source, not something the evaluator
		// dispatches to directly — so there is nothing to install, only
		// a build to attempt so a compile error surfaces now rather
		// than at whatever macro/generator's build happens to need it.
		if _, err := in.Compiler.Build(def.Name.Text, def.Output); err != nil {
			return fmt.Errorf("build: failed to build compile-time function %q: %w", def.Name.Text, err)
		}

		return nil

	default:
		return fmt.Errorf("build: %q (kind %s) is not a compile-time definition", def.Name.Text, def.Kind)
	}
}

var _ resolve.Builder = (*Installer)(nil)

func adaptMacro(c comptime.Callable) env.MacroFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression) (*token.Vec, bool) {
		result, err := c.Invoke(expr.Vec.Slice(expr.Start, expr.End))
		if err != nil {
			return nil, false
		}

		v, ok := result.(*token.Vec)

		return v, ok
	}
}

func adaptGenerator(c comptime.Callable) env.GeneratorFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool {
		result, err := c.Invoke(expr.Vec.Slice(expr.Start, expr.End))
		if err != nil {
			return false
		}

		emitted, ok := result.(*output.Generator)
		if !ok {
			return false
		}

		out.Source = append(out.Source, emitted.Source...)
		out.Header = append(out.Header, emitted.Header...)

		return true
	}
}
