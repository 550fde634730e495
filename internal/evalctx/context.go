// Released under an MIT license. See LICENSE.

// Package evalctx defines the evaluator's per-invocation context type
// in its own package so that both internal/env (which stores macro/generator
// function types parameterized over it) and internal/eval (which
// threads it through every call) can import it without creating an
// import cycle between env and eval.
package evalctx

import (
	"github.com/symc-lang/symc/internal/object"
	"github.com/symc-lang/symc/internal/output"
)

// Scope constrains which forms are legal at a given point in the walk.
type Scope int

// Scopes.
const (
	None Scope = iota
	Module
	Body
	ExpressionList
)

func (s Scope) String() string {
	switch s {
	case Module:
		return "Module"
	case Body:
		return "Body"
	case ExpressionList:
		return "ExpressionList"
	default:
		return "None"
	}
}

// Delimiter is the template placed between sibling statements in a
// body (e.g. newline or space).
type Delimiter struct {
	Modifiers output.Mod
}

// T (EvaluatorContext) is the ephemeral per-invocation record threaded
// through every evaluator call. It is never retained past the call that
// received it, except by object.Reference.Resume closures, which close
// over a copy.
type T struct {
	Scope      Scope
	Module     string
	Definition *object.Definition
	Required   bool
	Delim      Delimiter
}

type Context = T

// New creates a context for the given module-level definition.
func New(scope Scope, module string, def *object.Definition, required bool) *Context {
	return &Context{Scope: scope, Module: module, Definition: def, Required: required}
}

// WithScope returns a copy of c with Scope replaced — used when
// recursing into a nested body whose legal forms differ from the
// parent's.
func (c Context) WithScope(s Scope) Context {
	c.Scope = s
	return c
}

// WithRequired returns a copy of c with Required set. Required is
// propagated down, never up: it is the ambient "am I currently
// evaluating something required" flag used to stamp new References,
// distinct from Definition.Required which marks the definition itself.
func (c Context) WithRequired(required bool) Context {
	c.Required = required
	return c
}
