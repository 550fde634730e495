// Released under an MIT license. See LICENSE.

package repl

import (
	"testing"

	"github.com/symc-lang/symc/internal/lexer"
)

func mustTokenize(t *testing.T, src string) int {
	t.Helper()

	v, err := lexer.TokenizeSource(src, "test.sym")
	if err != nil {
		t.Fatalf("TokenizeSource: %v", err)
	}

	return parenDepth(v)
}

func TestParenDepthCountsUnmatchedOpens(t *testing.T) {
	if got := mustTokenize(t, "(defun f (a int"); got != 2 {
		t.Fatalf("got depth %d, want 2", got)
	}
}

func TestParenDepthZeroWhenBalanced(t *testing.T) {
	if got := mustTokenize(t, "(defun f (a int) (return a))"); got != 0 {
		t.Fatalf("got depth %d, want 0", got)
	}
}

func TestParenDepthNegativeOnExtraClose(t *testing.T) {
	if got := mustTokenize(t, "(defun f))"); got != -1 {
		t.Fatalf("got depth %d, want -1", got)
	}
}
