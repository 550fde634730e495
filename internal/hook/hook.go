// Released under an MIT license. See LICENSE.

// Package hook implements named-phase hook execution and the one
// sanctioned way to mutate an already-evaluated definition,
// ReplaceAndEvaluateDefinition. Neither function restricts itself to
// being called only from inside a running phase — existing callers
// only ever use it there, but the machinery itself does not enforce it.
package hook

import (
	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/diagerr"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/eval"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/resolve"
	"github.com/symc-lang/symc/internal/token"
)

// ReplaceAndEvaluateDefinition discards name's accumulated output and
// outgoing references, then re-evaluates newTokens in a context pinned
// to the definition's original module and table entry. The table
// entry's address never changes, so every Reference and diagnostic
// that already holds a pointer to it keeps pointing at the rewritten
// definition. Any symbol newTokens mentions is recorded as a fresh
// pending reference on the Environment, exactly as it would be during
// ordinary evaluation.
func ReplaceAndEvaluateDefinition(e *env.Environment, sink *diag.Sink, name string, newTokens *token.Vec) (int, error) {
	def, found := e.Find(name)
	if !found {
		return 0, diagerr.New(diagerr.FatalEnvironmentError, nil,
			"ReplaceAndEvaluateDefinition: %q is not defined", name)
	}

	def.ResetOutput()
	def.ClearOutRefs()

	ctx := evalctx.New(evalctx.Body, def.Module, def, def.Required)

	errs := eval.EvaluateGenerateAllRecursive(e, sink, ctx, newTokens, 0, newTokens.Len(), def.Output)

	return errs, nil
}

// RunPhase invokes every hook registered under phase, in registration
// order, aggregating whether any of them modified a definition's code.
// A hook returning ok=false aborts the phase immediately; hooks already
// run still contribute to modified.
func RunPhase(e *env.Environment, phase string) (modified bool, ok bool) {
	ok = true

	for _, fn := range e.HooksFor(phase) {
		m, k := fn(e)
		modified = modified || m

		if !k {
			return modified, false
		}
	}

	return modified, ok
}

// RunPhaseAndResolve runs phase and, if any hook reported
// was-code-modified, re-enters the reference-resolver fixed point so
// the rewrites' own references are accounted for before the caller
// proceeds. Returns false if the phase aborted or the resolver pass
// that followed found an unresolved required reference or a failed
// build.
func RunPhaseAndResolve(e *env.Environment, sink *diag.Sink, phase string, build resolve.Builder) bool {
	modified, ok := RunPhase(e, phase)
	if !ok {
		return false
	}

	if !modified {
		return true
	}

	return resolve.Run(e, sink, build)
}
