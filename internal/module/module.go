// Released under an MIT license. See LICENSE.

// Package module implements the module manager: the coordinator that
// owns the single shared Environment a compilation evaluates every
// file against, and tracks each file's own search directories, build
// overrides, and generated-output destinations.
package module

import (
	"path/filepath"

	"github.com/symc-lang/symc/internal/adapted"
	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/eval"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/resolve"
	"github.com/symc-lang/symc/internal/token"
)

// DependencyKind distinguishes a dependency on another module's
// generated artifact from a dependency on an externally linked
// library.
type DependencyKind int

// Dependency kinds.
const (
	ModuleDependency DependencyKind = iota
	LibraryDependency
)

func (k DependencyKind) String() string {
	switch k {
	case ModuleDependency:
		return "Module"
	case LibraryDependency:
		return "Library"
	default:
		return "Unknown"
	}
}

// Dependency names one thing a module's build step needs to exist
// first.
type Dependency struct {
	Kind DependencyKind
	Name string
}

// PreBuildHook runs immediately before a module's compile-time build.
// It is distinct from the Environment-wide hook phases: a pre-build
// hook is scoped to one module and has the chance to adjust that
// module's build commands before anything is invoked.
type PreBuildHook func(m *Manager, mod *Module) bool

// Module is typically associated with a single source file. It carries
// everything about that file that isn't shared evaluator state: its
// tokens, its own accumulated top-level output, where its generated
// source and header go, and how (or whether) it gets built.
type Module struct {
	Filename string
	Tokens   *token.Vec
	Output   *output.Generator

	SourceOutputName string
	HeaderOutputName string

	Dependencies           []Dependency
	SearchDirectories      []string
	AdditionalBuildOptions []string

	// SkipBuild marks a declaration-only module: one evaluated for its
	// definitions but never compiled or linked, because it has no body
	// of its own (a forward-declaration file) or its definitions are
	// satisfied by dynamic linking at a later stage.
	SkipBuild bool

	CompileTimeBuildCommand []string
	CompileTimeLinkCommand  []string
	BuildTimeBuildCommand   []string
	BuildTimeLinkCommand    []string

	preBuildHooks []PreBuildHook
}

// RegisterPreBuildHook appends fn to mod's pre-build hook list, run in
// registration order by Manager.RunPreBuildHooks.
func (mod *Module) RegisterPreBuildHook(fn PreBuildHook) {
	mod.preBuildHooks = append(mod.preBuildHooks, fn)
}

// ResolveDependency searches mod.SearchDirectories, in order, for files
// matching name: name itself, and, if name carries no extension, name
// with ".sym" appended. name may contain glob metacharacters, matched
// against each directory's entries via adapted.Glob. Matches from
// earlier directories sort before later ones; within a directory, Glob's
// own lexical order applies.
func (mod *Module) ResolveDependency(name string) ([]string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+".sym")
	}

	var matches []string

	for _, dir := range mod.SearchDirectories {
		for _, candidate := range candidates {
			found, err := adapted.Glob(filepath.Join(dir, candidate))
			if err != nil {
				return nil, err
			}

			matches = append(matches, found...)
		}
	}

	return matches, nil
}

// Manager coordinates every Module evaluated against one shared
// Environment.
type Manager struct {
	Env     *env.Environment
	Modules []*Module

	// BuildOutputDir is where build artifacts are written. It is not
	// necessarily the final installed location of anything the whole
	// compilation produces — a caller may relocate the final linked
	// executable elsewhere.
	BuildOutputDir string
}

// NewManager creates a Manager with a fresh Environment.
func NewManager() *Manager {
	return &Manager{Env: env.New()}
}

// AddModule registers a new Module for filename/tokens without
// evaluating it yet.
func (m *Manager) AddModule(filename string, tokens *token.Vec) *Module {
	mod := &Module{
		Filename: filename,
		Tokens:   tokens,
		Output:   output.New(),
	}

	m.Modules = append(m.Modules, mod)

	return mod
}

// EvaluateModule walks mod's tokens once, in Module scope, accumulating
// into mod.Output. It returns the number of errors the evaluation
// reported; callers typically call this once per module before running
// ResolveReferences across all of them.
func (m *Manager) EvaluateModule(mod *Module, sink *diag.Sink) int {
	ctx := evalctx.New(evalctx.Module, mod.Filename, nil, false)

	return eval.EvaluateGenerateAllRecursive(m.Env, sink, ctx, mod.Tokens, 0, mod.Tokens.Len(), mod.Output)
}

// AddAndEvaluateModule registers filename/tokens as a new Module and
// immediately evaluates it, mirroring the combined
// "add-evaluate-file" step of a single-pass loader.
func (m *Manager) AddAndEvaluateModule(filename string, tokens *token.Vec, sink *diag.Sink) (*Module, int) {
	mod := m.AddModule(filename, tokens)

	return mod, m.EvaluateModule(mod, sink)
}

// ResolveReferences runs the fixed-point reference resolver across
// every module's shared Environment. Ordering of the modules slice
// matters only in that modules are expected to have already been
// evaluated in that order — the resolver itself operates on the
// Environment, not per module.
func (m *Manager) ResolveReferences(sink *diag.Sink, build resolve.Builder) bool {
	return resolve.Run(m.Env, sink, build)
}

// findModule returns the already-registered Module for filename, or nil
// if none has been added under that name yet.
func (m *Manager) findModule(filename string) *Module {
	for _, mod := range m.Modules {
		if mod.Filename == filename {
			return mod
		}
	}

	return nil
}

// RunPreBuildHooks runs mod's registered pre-build hooks in
// registration order. A hook returning false aborts the sequence.
func (m *Manager) RunPreBuildHooks(mod *Module) bool {
	for _, fn := range mod.preBuildHooks {
		if !fn(m, mod) {
			return false
		}
	}

	return true
}

// Destroy tears down the Manager's Environment. Must run only once
// every outstanding pointer into it is no longer needed.
func (m *Manager) Destroy() {
	m.Env.Destroy()
}
