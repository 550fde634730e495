// Released under an MIT license. See LICENSE.

// Package env provides the process-wide Environment: the single
// long-lived value threaded explicitly through every
// evaluator, macro, generator, and hook call. There is exactly one
// Environment per compilation; it is constructed once, populated as
// modules evaluate, and destroyed only after every outstanding token
// and definition pointer is no longer needed.
package env

import (
	"github.com/symc-lang/symc/internal/diagerr"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/object"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

// MacroFunc expands an invocation into fresh tokens for re-evaluation.
// A macro does not evaluate its arguments; it rewrites them.
type MacroFunc func(env *Environment, ctx *evalctx.Context, expr token.Expression) (*token.Vec, bool)

// GeneratorFunc emits output directly, deciding for itself how (or
// whether) to recurse into its own arguments.
type GeneratorFunc func(env *Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool

// HookFunc is a named-phase callback. It returns false to
// abort the phase, and reports whether it modified any definition's
// code (the was-code-modified flag that decides whether the resolver
// fixed point must be re-entered after the phase finishes).
type HookFunc func(env *Environment) (modified bool, ok bool)

// Environment (EvaluatorEnvironment) owns every long-lived datum of a
// compilation.
type Environment struct {
	// definitions is keyed by name; names is the insertion order, kept
	// alongside the map so iteration is deterministic and addresses
	// retained.
	definitions map[string]*object.Definition
	names       []string

	macros        map[string]MacroFunc
	macroOrder    []string
	generators    map[string]GeneratorFunc
	generatorSeen map[string]bool

	// references is keyed by the referenced name; order within each
	// bucket is insertion (FIFO) order.
	references map[string][]*object.Reference
	refOrder   []string

	comptime *token.Arena

	hooks      map[string][]HookFunc
	hookPhases []string

	gensymCounter int
}

// ValidHookPhases are the stable phase names a hook may register
// under. Registering a hook under any other name is a configuration
// error, not a silently accepted no-op.
var ValidHookPhases = map[string]bool{
	"post-references-resolved": true,
	"pre-link":                 true,
	"pre-module-build":         true,
}

// New creates an empty Environment. Built-in generators are installed
// by the caller immediately after construction, not at program load.
func New() *Environment {
	return &Environment{
		definitions:   map[string]*object.Definition{},
		macros:        map[string]MacroFunc{},
		generators:    map[string]GeneratorFunc{},
		generatorSeen: map[string]bool{},
		references:    map[string][]*object.Reference{},
		comptime:      token.NewArena(),
		hooks:         map[string][]HookFunc{},
	}
}

// AddDefinition registers def under its name. Fails with
// RedefinitionError if the name is already taken — redefinition must go
// through the explicit replace path.
func (e *Environment) AddDefinition(def *object.Definition) error {
	name := def.Name.Text

	if _, exists := e.definitions[name]; exists {
		return diagerr.New(diagerr.RedefinitionError, def.Name,
			"%q is already defined; use ReplaceAndEvaluateDefinition to redefine", name)
	}

	e.definitions[name] = def
	e.names = append(e.names, name)

	return nil
}

// Find looks up a definition by name.
func (e *Environment) Find(name string) (*object.Definition, bool) {
	d, ok := e.definitions[name]
	return d, ok
}

// Definitions returns every definition in insertion order. The returned
// slice is a fresh copy of the index, not of the definitions themselves
// — callers may mutate a *Definition through it, but may not use it to
// add or remove table entries (hooks that need to iterate while
// mutating should snapshot via this method first).
func (e *Environment) Definitions() []*object.Definition {
	out := make([]*object.Definition, len(e.names))
	for i, n := range e.names {
		out[i] = e.definitions[n]
	}

	return out
}

// RegisterGenerator installs a generator under name. A second
// registration under the same name replaces the first; built-ins are
// installed first, so user registrations always win.
func (e *Environment) RegisterGenerator(name string, fn GeneratorFunc) {
	if !e.generatorSeen[name] {
		e.generatorSeen[name] = true
	}

	e.generators[name] = fn
}

// RegisterMacro installs a macro under name, with the same
// last-write-wins semantics as RegisterGenerator.
func (e *Environment) RegisterMacro(name string, fn MacroFunc) {
	if _, exists := e.macros[name]; !exists {
		e.macroOrder = append(e.macroOrder, name)
	}

	e.macros[name] = fn
}

// Generator looks up a registered generator.
func (e *Environment) Generator(name string) (GeneratorFunc, bool) {
	fn, ok := e.generators[name]
	return fn, ok
}

// Macro looks up a registered macro.
func (e *Environment) Macro(name string) (MacroFunc, bool) {
	fn, ok := e.macros[name]
	return fn, ok
}

// GeneratorNames returns every registered generator name, for
// --list-generators.
func (e *Environment) GeneratorNames() []string {
	out := make([]string, 0, len(e.generators))
	for name := range e.generators {
		out = append(out, name)
	}

	return out
}

// AddReference records a pending use of name.
func (e *Environment) AddReference(name string, ref *object.Reference) {
	if _, exists := e.references[name]; !exists {
		e.refOrder = append(e.refOrder, name)
	}

	e.references[name] = append(e.references[name], ref)
}

// References returns the pending reference buckets in FIFO insertion
// order.
func (e *Environment) References() []string {
	out := make([]string, 0, len(e.refOrder))

	for _, name := range e.refOrder {
		if len(e.references[name]) > 0 {
			out = append(out, name)
		}
	}

	return out
}

// RefsFor returns the pending references against name.
func (e *Environment) RefsFor(name string) []*object.Reference {
	return e.references[name]
}

// ResolveRef removes name's reference bucket — called once the resolver
// has satisfied every reference in it.
func (e *Environment) ResolveRef(name string) {
	delete(e.references, name)
}

// AnyReferencesPending reports whether any reference bucket is
// non-empty.
func (e *Environment) AnyReferencesPending() bool {
	for _, refs := range e.references {
		if len(refs) > 0 {
			return true
		}
	}

	return false
}

// Arena returns the Environment's owned compile-time token arena.
func (e *Environment) Arena() *token.Arena {
	return e.comptime
}

// RegisterHook appends fn to the named phase's ordered list. Returns an
// error if phase is not one of ValidHookPhases.
func (e *Environment) RegisterHook(phase string, fn HookFunc) error {
	if !ValidHookPhases[phase] {
		return diagerr.New(diagerr.FatalEnvironmentError, nil, "unknown hook phase %q", phase)
	}

	if _, exists := e.hooks[phase]; !exists {
		e.hookPhases = append(e.hookPhases, phase)
	}

	e.hooks[phase] = append(e.hooks[phase], fn)

	return nil
}

// HooksFor returns the hooks registered for phase, in registration
// order.
func (e *Environment) HooksFor(phase string) []HookFunc {
	return e.hooks[phase]
}

// NextGensymCounter returns a monotonically increasing integer, used by
// MakeUniqueSymbolName. Unstable across runs by design.
func (e *Environment) NextGensymCounter() int {
	e.gensymCounter++
	return e.gensymCounter
}

// Destroy tears down the Environment: frees every compile-time token
// vector it owns. Must run only after every outstanding pointer into
// those vectors, or into any Definition, is no longer needed.
func (e *Environment) Destroy() {
	e.comptime.Destroy()
}
