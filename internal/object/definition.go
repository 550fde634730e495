// Released under an MIT license. See LICENSE.

// Package object holds the two long-lived, name-keyed records the
// Environment tracks: Definition and Reference.
package object

import (
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

// Kind categorizes a definition.
type Kind int

// Definition kinds.
const (
	Function Kind = iota
	Variable
	Macro
	Generator
	CompileTimeFunction
)

// IsCompileTime reports whether a definition of this kind is built and
// loaded as a callable rather than simply emitted as output.
func (k Kind) IsCompileTime() bool {
	switch k {
	case Macro, Generator, CompileTimeFunction:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case Function:
		return "Function"
	case Variable:
		return "Variable"
	case Macro:
		return "Macro"
	case Generator:
		return "Generator"
	case CompileTimeFunction:
		return "CompileTimeFunction"
	default:
		return "Unknown"
	}
}

// Definition (ObjectDefinition) is a named, typed, evaluable entity.
// Entries are never removed from an Environment's table, only mutated
// in place (by ReplaceAndEvaluateDefinition) — this preserves identity
// for any Reference or diagnostic that already holds a *Definition.
type Definition struct {
	Name   *token.T
	Kind   Kind
	Output *output.Generator

	// OutRefs is the set of symbol names this definition referenced
	// while it was evaluated, whether or not they were already defined.
	OutRefs []string

	// Required is monotonic: false -> true only, never back.
	Required bool

	Module string

	// Signature holds the parameter-list tokens of a Macro or Generator
	// definition, checked by comptime.SignatureMatches before it is built.
	Signature []token.T

	// Built and BuildFailed track whether a compile-time definition
	// (Macro, Generator, CompileTimeFunction) has already gone through
	// the build/link/install step. A failed build still counts as
	// attempted, so the resolver reports exactly one error per name
	// instead of retrying every fixed-point round.
	Built       bool
	BuildFailed bool
}

// New creates a definition. Required starts false; the resolver is the
// only thing allowed to flip it to true.
func New(name *token.T, kind Kind, module string) *Definition {
	return &Definition{
		Name:   name,
		Kind:   kind,
		Output: output.New(),
		Module: module,
	}
}

// MarkRequired sets Required to true. It is a no-op if already true,
// preserving the monotonicity invariant trivially.
func (d *Definition) MarkRequired() {
	d.Required = true
}

// ResetOutput discards the definition's accumulated output while
// keeping its identity and OutRefs — used by
// ReplaceAndEvaluateDefinition, which must not change the table entry's
// address.
func (d *Definition) ResetOutput() {
	d.Output = output.New()
}

// ClearOutRefs empties the set of outgoing reference names a definition
// has made. Called alongside ResetOutput when a definition is about to
// be re-evaluated from scratch, so stale references from the previous
// body don't linger after the rewrite.
func (d *Definition) ClearOutRefs() {
	d.OutRefs = nil
}

// AddOutRef records that this definition referenced name, if it hasn't
// already.
func (d *Definition) AddOutRef(name string) {
	for _, existing := range d.OutRefs {
		if existing == name {
			return
		}
	}

	d.OutRefs = append(d.OutRefs, name)
}
