// Released under an MIT license. See LICENSE.

package hook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/loc"
	"github.com/symc-lang/symc/internal/object"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

func tok(kind token.Kind, text string) token.T {
	return *token.New(kind, text, loc.New("test", 1, 0, len(text)))
}

func render(g *output.Generator) string {
	var b strings.Builder
	for _, f := range g.Flatten(output.Source) {
		b.WriteString(f.Text)
	}
	return b.String()
}

type noopBuilder struct{}

func (noopBuilder) Build(def *object.Definition) error { return nil }

func TestReplaceAndEvaluateDefinitionPreservesIdentity(t *testing.T) {
	e := env.New()

	def := object.New(token.New(token.Symbol, "counter", nil), object.Variable, "m")
	if err := e.AddDefinition(def); err != nil {
		t.Fatal(err)
	}

	def.Output.AddString(output.Source, "counter_old", 0, nil)

	before, _ := e.Find("counter")
	if before != def {
		t.Fatal("sanity check failed: table lookup did not return the same pointer")
	}

	v := token.NewVec(4)
	v.Push(tok(token.OpenParen, "("))
	v.Push(tok(token.Symbol, "ptr"))
	v.Push(tok(token.Symbol, "counter"))
	v.Push(tok(token.CloseParen, ")"))
	v.Freeze()

	var buf bytes.Buffer
	sink := diag.New(&buf)

	errs, err := ReplaceAndEvaluateDefinition(e, sink, "counter", v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if errs != 0 {
		t.Fatalf("unexpected evaluation errors: %d, diagnostics: %s", errs, buf.String())
	}

	after, found := e.Find("counter")
	if !found || after != def {
		t.Fatal("table entry identity changed across redefinition")
	}

	if got := render(after.Output); got != "ptr(counter)" {
		t.Fatalf("got %q", got)
	}
}

func TestReplaceAndEvaluateDefinitionFailsOnUnknownName(t *testing.T) {
	e := env.New()

	v := token.NewVec(1)
	v.Push(tok(token.Symbol, "x"))
	v.Freeze()

	sink := diag.New(&bytes.Buffer{})

	if _, err := ReplaceAndEvaluateDefinition(e, sink, "missing", v); err == nil {
		t.Fatal("expected error for undefined name")
	}
}

func TestRunPhaseAndResolveReentersFixedPointWhenModified(t *testing.T) {
	e := env.New()

	variable := object.New(token.New(token.Symbol, "x", nil), object.Variable, "m")
	if err := e.AddDefinition(variable); err != nil {
		t.Fatal(err)
	}

	variable.MarkRequired()

	if err := e.AddDefinition(object.New(token.New(token.Symbol, "addr_of", nil), object.Function, "m")); err != nil {
		t.Fatal(err)
	}

	e.RegisterHook("post-references-resolved", func(environment *env.Environment) (bool, bool) {
		def, _ := environment.Find("x")

		v := token.NewVec(4)
		v.Push(tok(token.OpenParen, "("))
		v.Push(tok(token.Symbol, "addr_of"))
		v.Push(tok(token.Symbol, "x"))
		v.Push(tok(token.CloseParen, ")"))
		v.Freeze()

		var buf bytes.Buffer
		sink := diag.New(&buf)

		if _, err := ReplaceAndEvaluateDefinition(environment, sink, def.Name.Text, v); err != nil {
			return false, false
		}

		return true, true
	})

	var buf bytes.Buffer
	sink := diag.New(&buf)

	if !RunPhaseAndResolve(e, sink, "post-references-resolved", noopBuilder{}) {
		t.Fatalf("expected clean second resolver pass, diagnostics: %s", buf.String())
	}

	if e.AnyReferencesPending() {
		t.Fatal("expected no pending references after the re-entered fixed point")
	}

	if got := render(variable.Output); got != "addr_of(x)" {
		t.Fatalf("got %q", got)
	}
}

func TestRunPhaseAbortsOnFalseReturn(t *testing.T) {
	e := env.New()

	called := false

	e.RegisterHook("pre-link", func(environment *env.Environment) (bool, bool) {
		called = true
		return false, false
	})

	modified, ok := RunPhase(e, "pre-link")
	if ok {
		t.Fatal("expected phase to abort")
	}

	if modified {
		t.Fatal("unexpected modified=true on abort")
	}

	if !called {
		t.Fatal("hook was never invoked")
	}
}

