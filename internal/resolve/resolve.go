// Released under an MIT license. See LICENSE.

// Package resolve implements the fixed-point reference resolver: it
// drains the Environment's pending-reference queue against newly (or
// already) defined names, propagates "required" along each
// definition's outgoing references, and interleaves compile-time
// builds of required macros, generators, and compile-time functions.
package resolve

import (
	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/object"
)

// Builder compiles, links, and installs a compile-time definition (a
// Macro, Generator, or CompileTimeFunction) into the Environment's
// registries under its own name. The resolver calls it once per
// required definition that isn't already built or failed.
type Builder interface {
	Build(def *object.Definition) error
}

// Run drives the fixed-point loop to completion: every satisfiable
// reference is resolved and every required compile-time definition is
// built, repeating until a round makes no progress. It reports
// UnknownSymbolError for every reference that remains required and
// unsatisfied, and returns whether the pass succeeded (no such
// references, and no build reported an error).
func Run(e *env.Environment, sink *diag.Sink, build Builder) bool {
	ok := true

	for {
		progress := false

		for _, name := range e.References() {
			def, found := e.Find(name)
			if !found {
				continue
			}

			required := def.Required
			for _, ref := range e.RefsFor(name) {
				if ref.Required {
					required = true
				}
			}

			if required && !def.Required {
				def.MarkRequired()
			}

			if required {
				propagateRequired(e, def)
			}

			e.ResolveRef(name)

			progress = true
		}

		for _, def := range e.Definitions() {
			if !def.Kind.IsCompileTime() || !def.Required {
				continue
			}

			if def.Built || def.BuildFailed {
				continue
			}

			if err := build.Build(def); err != nil {
				def.BuildFailed = true
				ok = false

				sink.Errorf(def.Name, "%v", err)
			} else {
				def.Built = true
			}

			progress = true
		}

		if !progress {
			break
		}
	}

	for _, name := range e.References() {
		refs := e.RefsFor(name)

		anyRequired := false
		for _, ref := range refs {
			if ref.Required {
				anyRequired = true
			}
		}

		if !anyRequired {
			continue
		}

		ok = false

		for _, ref := range refs {
			sink.Errorf(ref.Tok, "unknown symbol %q", name)
		}
	}

	return ok
}

// propagateRequired marks every definition reachable from def through
// OutRefs as required, forming the required-set closure the writer
// relies on. A dependency that isn't defined yet has its pending
// Reference entries (the ones def itself made) stamped required in
// place, so the main loop picks up the correct flag once that name is
// finally defined.
func propagateRequired(e *env.Environment, def *object.Definition) {
	if def == nil || !def.Required {
		return
	}

	for _, outName := range def.OutRefs {
		if target, found := e.Find(outName); found {
			if !target.Required {
				target.MarkRequired()
				propagateRequired(e, target)
			}

			continue
		}

		for _, ref := range e.RefsFor(outName) {
			if ref.Referrer == def {
				ref.Required = true
			}
		}
	}
}
