// Released under an MIT license. See LICENSE.

// Package eval implements the evaluator core: the recursive walk over
// a token stream and the argument-scanning helpers generators rely on.
package eval

import (
	"strconv"

	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/token"
)

// GetNextArgument advances past the argument starting at i and returns
// the index of the next one, or end if none remain. Arguments are
// themselves well-parenthesized expressions or single tokens.
func GetNextArgument(v *token.Vec, i, end int) int {
	if i >= end {
		return end
	}

	if v.At(i).Kind == token.OpenParen {
		return token.FindCloseParen(v, i) + 1
	}

	return i + 1
}

// argumentBounds normalizes (startIndex, end) for argument counting: if
// startIndex is the opening paren of an invocation, the head token
// becomes argument 0 and the bound excludes the matching closing paren.
// Otherwise startIndex is already the head and end is used as given.
func argumentBounds(v *token.Vec, startIndex, end int) (i, bound int) {
	if v.At(startIndex).Kind != token.OpenParen {
		return startIndex, end
	}

	closeIdx := token.FindCloseParen(v, startIndex)
	if closeIdx < end {
		end = closeIdx
	}

	return startIndex + 1, end
}

// GetArgument returns the start index of the nth argument of the
// invocation starting at startIndex (0 = head, 1 = first arg, ...), or
// -1 if n is out of range. startIndex may be either the invocation's
// opening paren or its head token.
func GetArgument(v *token.Vec, startIndex, n, end int) int {
	i, bound := argumentBounds(v, startIndex, end)

	for arg := 0; i < bound; arg++ {
		if arg == n {
			return i
		}

		i = GetNextArgument(v, i, bound)
	}

	return -1
}

// GetNumArguments counts arguments in the invocation starting at
// startIndex, including the head.
func GetNumArguments(v *token.Vec, startIndex, end int) int {
	i, bound := argumentBounds(v, startIndex, end)

	n := 0
	for ; i < bound; n++ {
		i = GetNextArgument(v, i, bound)
	}

	return n
}

// IsLastArgument reports whether startIndex is the final argument in
// [startIndex, end).
func IsLastArgument(v *token.Vec, startIndex, end int) bool {
	return GetNextArgument(v, startIndex, end) >= end
}

// ExpectNumArguments blames the token at startIndex if the invocation
// [startIndex, end) does not have exactly n arguments (head included).
func ExpectNumArguments(sink *diag.Sink, v *token.Vec, startIndex, end, n int) bool {
	got := GetNumArguments(v, startIndex, end)
	if got != n {
		sink.Errorf(v.At(startIndex), "expected %d argument(s), got %d", n-1, got-1)
		return false
	}

	return true
}

// ExpectTokenKind blames tok if it is not of kind want.
func ExpectTokenKind(sink *diag.Sink, tok *token.T, want token.Kind) bool {
	if tok == nil || tok.Kind != want {
		sink.Errorf(tok, "expected token of kind %s", want)
		return false
	}

	return true
}

// ExpectScope blames tok unless ctx.Scope == want.
func ExpectScope(sink *diag.Sink, generatorName string, tok *token.T, ctx *evalctx.Context, want evalctx.Scope) bool {
	if ctx.Scope != want {
		sink.Errorf(tok, "%s is only legal in %s scope, not %s", generatorName, want, ctx.Scope)
		return false
	}

	return true
}

// IsForbiddenScope blames tok if ctx.Scope == forbidden.
func IsForbiddenScope(sink *diag.Sink, generatorName string, tok *token.T, ctx *evalctx.Context, forbidden evalctx.Scope) bool {
	if ctx.Scope == forbidden {
		sink.Errorf(tok, "%s is illegal in %s scope", generatorName, forbidden)
		return true
	}

	return false
}

// ExpectInInvocation blames tokens[indexToCheck] if the index has run
// past endInvocationIndex (meaning an expected argument is missing).
func ExpectInInvocation(sink *diag.Sink, message string, v *token.Vec, indexToCheck, endInvocationIndex int) bool {
	if indexToCheck >= endInvocationIndex {
		blame := v.At(endInvocationIndex - 1)
		if endInvocationIndex < v.Len() {
			blame = v.At(endInvocationIndex)
		}

		sink.Errorf(blame, "%s", message)

		return false
	}

	return true
}

// BlockAbsorbScope advances past a "scope"/block head already opened by
// the calling generator, so the generator's own block delimiters aren't
// doubled up.
func BlockAbsorbScope(v *token.Vec, i int) int {
	if i < v.Len() && v.At(i).Kind == token.OpenParen {
		head := GetArgument(v, i, 0, token.FindCloseParen(v, i))
		if head != -1 && v.At(head).Text == "scope" {
			return token.FindCloseParen(v, i) + 1
		}
	}

	return i
}

// MakeUniqueSymbolName returns a new gensym'd symbol token named
// prefix_N, where N comes from a monotonic per-Environment counter. Unstable across runs: a different
// compiler invocation may assign a different suffix to logically the
// same macro expansion.
func MakeUniqueSymbolName(e *env.Environment, prefix string) *token.T {
	n := e.NextGensymCounter()
	text := prefix + "_" + strconv.Itoa(n)

	return token.New(token.Symbol, text, nil)
}

// MakeContextUniqueSymbolName returns a new gensym'd symbol token whose
// name is deterministic given a stable context: it joins prefix, the
// context's owning definition name (or "<module>") and the incremented
// caller-held counter as prefix_owner_N, so re-running
// the compiler on unchanged input yields the same name (unlike
// MakeUniqueSymbolName).
func MakeContextUniqueSymbolName(ctx *evalctx.Context, prefix string, counter *int) *token.T {
	*counter++

	owner := "<module>"
	if ctx.Definition != nil && ctx.Definition.Name != nil {
		owner = ctx.Definition.Name.Text
	}

	text := prefix + "_" + owner + "_" + strconv.Itoa(*counter)

	return token.New(token.Symbol, text, nil)
}
