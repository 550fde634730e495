// Released under an MIT license. See LICENSE.

package token

import (
	"testing"

	"github.com/symc-lang/symc/internal/loc"
)

func mk(v *Vec, kind Kind, text string) {
	v.Push(*New(kind, text, loc.New("test", 1, 0, len(text))))
}

func TestFindCloseParenNested(t *testing.T) {
	v := NewVec(8)
	mk(v, OpenParen, "(")
	mk(v, Symbol, "defun")
	mk(v, OpenParen, "(")
	mk(v, Symbol, "a")
	mk(v, CloseParen, ")")
	mk(v, CloseParen, ")")
	v.Freeze()

	got := FindCloseParen(v, 0)
	if got != 5 {
		t.Fatalf("FindCloseParen = %d, want 5", got)
	}

	got = FindCloseParen(v, 2)
	if got != 4 {
		t.Fatalf("FindCloseParen(inner) = %d, want 4", got)
	}
}

func TestStripInvocation(t *testing.T) {
	v := NewVec(8)
	mk(v, OpenParen, "(")
	mk(v, Symbol, "square")
	mk(v, Integer, "3")
	mk(v, CloseParen, ")")
	v.Freeze()

	e := StripInvocation(Expression{Vec: v, Start: 0, End: v.Len()})
	if e.Start != 1 || e.End != 3 {
		t.Fatalf("StripInvocation = [%d,%d), want [1,3)", e.Start, e.End)
	}
}

func TestIsSpecial(t *testing.T) {
	cases := map[string]bool{
		":kw":    true,
		"&rest":  true,
		"'quote": true,
		"plain":  false,
		"":       false,
	}

	for text, want := range cases {
		tok := New(Symbol, text, loc.New("test", 1, 0, len(text)))
		if got := tok.IsSpecial(); got != want {
			t.Errorf("IsSpecial(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestVecFrozenPushPanics(t *testing.T) {
	v := NewVec(1)
	v.Freeze()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic pushing to a frozen Vec")
		}
	}()

	mk(v, Symbol, "oops")
}
