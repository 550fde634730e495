// Released under an MIT license. See LICENSE.

package comptime

import (
	"github.com/symc-lang/symc/internal/diagerr"
	"github.com/symc-lang/symc/internal/object"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

// Callable is what a built compile-time function resolves to: a
// function pointer loaded from the built artifact, already checked
// against its expected signature.
type Callable interface {
	// Invoke calls the compile-time function. args are the raw tokens
	// of the whole invocation, parentheses and head included; the concrete Callable decides
	// how to interpret them based on the signature it was built with.
	Invoke(args []token.T) (any, error)
}

// Builder is the interface comptime consumes from the build/link
// collaborator: given the accumulated output of a compile-time
// function, produce a dynamic library and a resolvable symbol, and
// return a callable pointer. comptime does not prescribe how Build does
// this; internal/build provides the default os/exec-backed
// implementation.
type Builder interface {
	Build(name string, gen *output.Generator) (Callable, error)
}

// Signature is the canonical expected parameter-list shape for a
// compile-time function of a given kind (macro or generator). It is
// compared against a definition's actual
// parameter-list tokens by SignatureMatches.
type Signature struct {
	Name   string
	Params []token.Kind
}

// MacroSignature and GeneratorSignature are the two canonical
// signatures the evaluator's macro/generator registries expect.
var (
	MacroSignature = Signature{
		Name:   "macro",
		Params: []token.Kind{token.Symbol, token.OpenParen, token.CloseParen},
	}
	GeneratorSignature = Signature{
		Name:   "generator",
		Params: []token.Kind{token.Symbol, token.OpenParen, token.CloseParen},
	}
)

// SignatureMatches compares def's declared parameter-list tokens
// against expected, blaming errorTok on mismatch. A mismatch is fatal
// to installing this one compile-time function, but a build or
// signature failure for an unrequired definition does not fail the
// whole pass — the resolver decides that, not this function.
func SignatureMatches(def *object.Definition, errorTok *token.T, expected Signature) error {
	if len(def.Signature) != len(expected.Params) {
		return diagerr.New(diagerr.SignatureMismatchError, errorTok,
			"%s %q expects %d parameter token(s), definition has %d",
			expected.Name, def.Name.Text, len(expected.Params), len(def.Signature))
	}

	for i, kind := range expected.Params {
		if def.Signature[i].Kind != kind {
			return diagerr.New(diagerr.SignatureMismatchError, errorTok,
				"%s %q parameter %d: expected %s, found %s",
				expected.Name, def.Name.Text, i, kind, def.Signature[i].Kind)
		}
	}

	return nil
}

// Build compiles def's accumulated compile-time output via b, validates
// its signature against expected, and returns the resulting Callable.
// Every failure mode (compile error, link error, symbol not found,
// signature mismatch) is blamed to def.Name.
func Build(b Builder, def *object.Definition, expected Signature) (Callable, error) {
	if err := SignatureMatches(def, def.Name, expected); err != nil {
		return nil, err
	}

	callable, err := b.Build(def.Name.Text, def.Output)
	if err != nil {
		return nil, diagerr.New(diagerr.CompileTimeBuildError, def.Name,
			"failed to build compile-time function %q: %v", def.Name.Text, err)
	}

	return callable, nil
}
