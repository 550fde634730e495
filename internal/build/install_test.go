// Released under an MIT license. See LICENSE.

package build

import (
	"errors"
	"testing"

	"github.com/symc-lang/symc/internal/comptime"
	"github.com/symc-lang/symc/internal/diagerr"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/loc"
	"github.com/symc-lang/symc/internal/object"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

func nameTok(text string) *token.T {
	return token.New(token.Symbol, text, loc.New("test", 1, 0, len(text)))
}

type fakeCompiler struct {
	invoke func(args []token.T) (any, error)
	err    error
	calls  *int
}

func (f fakeCompiler) Build(name string, gen *output.Generator) (comptime.Callable, error) {
	if f.calls != nil {
		*f.calls++
	}

	if f.err != nil {
		return nil, f.err
	}

	return fakeCallable{invoke: f.invoke}, nil
}

type fakeCallable struct {
	invoke func(args []token.T) (any, error)
}

func (c fakeCallable) Invoke(args []token.T) (any, error) {
	return c.invoke(args)
}

func macroSignatureTokens() []token.T {
	return []token.T{{Kind: token.Symbol}, {Kind: token.OpenParen}, {Kind: token.CloseParen}}
}

func TestInstallerBuildRegistersMacroAndInvokesItThroughEnv(t *testing.T) {
	e := env.New()

	def := object.New(nameTok("square"), object.Macro, "m")
	def.Signature = macroSignatureTokens()

	if err := e.AddDefinition(def); err != nil {
		t.Fatal(err)
	}

	expansion := token.NewVec(4)
	expansion.Push(*nameTok("("))
	expansion.Push(*nameTok("*"))
	expansion.Push(*nameTok("x"))
	expansion.Push(*nameTok(")"))
	expansion.Freeze()

	compiler := fakeCompiler{invoke: func(args []token.T) (any, error) {
		return expansion, nil
	}}

	in := NewInstaller(e, compiler)

	if err := in.Build(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fn, found := e.Macro("square")
	if !found {
		t.Fatal("expected macro to be registered")
	}

	v := token.NewVec(4)
	v.Push(*nameTok("("))
	v.Push(*nameTok("square"))
	v.Push(*nameTok("x"))
	v.Push(*nameTok(")"))
	v.Freeze()

	ctx := evalctx.New(evalctx.Body, "m", def, false)

	got, ok := fn(e, ctx, token.Expression{Vec: v, Start: 0, End: v.Len()})
	if !ok {
		t.Fatal("expected macro invocation to succeed")
	}

	if got.Len() != expansion.Len() {
		t.Fatalf("expected the compiled macro's expansion to be returned, got len %d", got.Len())
	}
}

func TestInstallerBuildFailsOnCompilerError(t *testing.T) {
	e := env.New()

	def := object.New(nameTok("broken"), object.Generator, "m")
	def.Signature = macroSignatureTokens()

	if err := e.AddDefinition(def); err != nil {
		t.Fatal(err)
	}

	in := NewInstaller(e, fakeCompiler{err: errors.New("link error")})

	if err := in.Build(def); err == nil {
		t.Fatal("expected build error to propagate")
	}

	if _, found := e.Generator("broken"); found {
		t.Fatal("failed build must not register anything")
	}
}

func TestInstallerBuildRejectsNonCompileTimeKind(t *testing.T) {
	e := env.New()

	def := object.New(nameTok("plain"), object.Function, "m")
	if err := e.AddDefinition(def); err != nil {
		t.Fatal(err)
	}

	in := NewInstaller(e, fakeCompiler{})

	if err := in.Build(def); err == nil {
		t.Fatal("expected error for non-compile-time kind")
	}
}

func TestInstallerBuildRejectsMismatchedMacroSignature(t *testing.T) {
	e := env.New()

	def := object.New(nameTok("oops"), object.Macro, "m")
	def.Signature = []token.T{{Kind: token.Symbol}}

	if err := e.AddDefinition(def); err != nil {
		t.Fatal(err)
	}

	calls := 0

	in := NewInstaller(e, fakeCompiler{calls: &calls})

	err := in.Build(def)
	if err == nil {
		t.Fatal("expected signature mismatch to be reported")
	}

	var mismatch *diagerr.E
	if !errors.As(err, &mismatch) || mismatch.Kind != diagerr.SignatureMismatchError {
		t.Fatalf("expected a SignatureMismatchError, got %v", err)
	}

	if calls != 0 {
		t.Fatalf("expected the mismatched definition to never reach the compiler, got %d calls", calls)
	}

	if _, found := e.Macro("oops"); found {
		t.Fatal("a rejected signature must not register a macro")
	}
}

func TestInstallerBuildInstallsCompileTimeFunctionWithoutSignatureCheck(t *testing.T) {
	e := env.New()

	def := object.New(nameTok("helper"), object.CompileTimeFunction, "m")

	if err := e.AddDefinition(def); err != nil {
		t.Fatal(err)
	}

	calls := 0

	compiler := fakeCompiler{calls: &calls}

	in := NewInstaller(e, compiler)

	if err := in.Build(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected exactly one build attempt, got %d", calls)
	}
}
