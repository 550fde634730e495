// Released under an MIT license. See LICENSE.

package lexer

import (
	"testing"

	"github.com/symc-lang/symc/internal/token"
)

func kinds(v *token.Vec) []token.Kind {
	out := make([]token.Kind, v.Len())
	for i := range out {
		out[i] = v.At(i).Kind
	}

	return out
}

func texts(v *token.Vec) []string {
	out := make([]string, v.Len())
	for i := range out {
		out[i] = v.At(i).Text
	}

	return out
}

func mustTokenize(t *testing.T, src string) *token.Vec {
	t.Helper()

	v, err := TokenizeSource(src, "test.sy")
	if err != nil {
		t.Fatalf("TokenizeSource: %v", err)
	}

	return v
}

func TestTokenizeSourceSimpleInvocation(t *testing.T) {
	v := mustTokenize(t, "(defun square (x) (return (* x x)))")

	wantKinds := []token.Kind{
		token.OpenParen, token.Symbol, token.Symbol, token.OpenParen, token.Symbol, token.CloseParen,
		token.OpenParen, token.Symbol, token.OpenParen, token.Symbol, token.Symbol, token.Symbol, token.CloseParen,
		token.CloseParen, token.CloseParen,
	}

	got := kinds(v)

	if len(got) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(wantKinds), texts(v))
	}

	for i, k := range wantKinds {
		if got[i] != k {
			t.Errorf("token %d: got %s, want %s (%q)", i, got[i], k, texts(v)[i])
		}
	}
}

func TestTokenizeSourceStringLiteral(t *testing.T) {
	v := mustTokenize(t, `(log "hello, \"world\"")`)

	want := []string{"(", "log", `"hello, \"world\""`, ")"}
	got := texts(v)

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if kinds(v)[2] != token.String {
		t.Errorf("expected token 2 to be a String, got %s", kinds(v)[2])
	}
}

func TestTokenizeSourceNumericLiterals(t *testing.T) {
	v := mustTokenize(t, "(+ 1 -2 3.5 -0.5 x-1)")

	wantKinds := map[int]token.Kind{
		2: token.Integer,
		3: token.Integer,
		4: token.Float,
		5: token.Float,
		6: token.Symbol,
	}

	got := kinds(v)

	for i, k := range wantKinds {
		if got[i] != k {
			t.Errorf("token %d (%q): got %s, want %s", i, texts(v)[i], got[i], k)
		}
	}
}

func TestTokenizeSourceStripsComments(t *testing.T) {
	v := mustTokenize(t, "(defun f () ; a comment\n  (return 1))")

	want := []string{"(", "defun", "f", "(", ")", "(", "return", "1", ")", ")"}
	got := texts(v)

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeLineReportsUnterminatedString(t *testing.T) {
	v := token.NewVec(4)

	err := TokenizeLine(`(log "unterminated`, "test.sy", 1, v)
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestValidateParenthesesAcceptsBalancedInput(t *testing.T) {
	v := mustTokenize(t, "(defun f (x) (return x))")

	if !ValidateParentheses(v) {
		t.Fatal("expected balanced parentheses to validate")
	}
}

func TestValidateParenthesesRejectsUnbalancedInput(t *testing.T) {
	unclosed := mustTokenize(t, "(defun f (x) (return x)")
	if ValidateParentheses(unclosed) {
		t.Fatal("expected an unclosed form to fail validation")
	}

	stray := mustTokenize(t, "(defun f (x) (return x)))")
	if ValidateParentheses(stray) {
		t.Fatal("expected a stray close paren to fail validation")
	}
}

func TestDecodeStringResolvesEscapes(t *testing.T) {
	v := mustTokenize(t, `(log "line one\nline two\t\"quoted\"")`)

	got, err := DecodeString(v.At(2))
	if err != nil {
		t.Fatal(err)
	}

	want := "line one\nline two\t\"quoted\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeStringRejectsNonStringToken(t *testing.T) {
	v := mustTokenize(t, "(log)")

	if _, err := DecodeString(v.At(1)); err == nil {
		t.Fatal("expected an error for a non-string token")
	}
}

func TestTokenSourceProvenanceTracksLineAndColumn(t *testing.T) {
	v := mustTokenize(t, "(a b)\n(c d)")

	last := v.At(v.Len() - 1)
	if last.Src.Line != 2 {
		t.Fatalf("expected the final token on line 2, got line %d", last.Src.Line)
	}
}
