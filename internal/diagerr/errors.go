// Released under an MIT license. See LICENSE.

// Package diagerr defines the typed error hierarchy the compiler
// reports through. All but FatalEnvironmentError are recoverable within
// a pass: the evaluator reports them through diag.Sink and continues
// with the next sibling form, accumulating an error count.
// FatalEnvironmentError halts the pass immediately.
package diagerr

import (
	"fmt"

	"github.com/symc-lang/symc/internal/token"
)

// Kind identifies one of the compiler's ten error kinds.
type Kind int

// Error kinds.
const (
	SyntaxError Kind = iota
	ScopeError
	ArityError
	TypeError
	UnknownSymbolError
	CompileTimeBuildError
	SignatureMismatchError
	RedefinitionError
	HookFailure
	FatalEnvironmentError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case ScopeError:
		return "ScopeError"
	case ArityError:
		return "ArityError"
	case TypeError:
		return "TypeError"
	case UnknownSymbolError:
		return "UnknownSymbolError"
	case CompileTimeBuildError:
		return "CompileTimeBuildError"
	case SignatureMismatchError:
		return "SignatureMismatchError"
	case RedefinitionError:
		return "RedefinitionError"
	case HookFailure:
		return "HookFailure"
	case FatalEnvironmentError:
		return "FatalEnvironmentError"
	default:
		return "UnknownErrorKind"
	}
}

// Fatal reports whether errors of this kind halt the current pass
// rather than being accumulated and continued past.
func (k Kind) Fatal() bool {
	return k == FatalEnvironmentError
}

// E is a blamed, typed error.
type E struct {
	Kind    Kind
	Tok     *token.T
	Message string
}

// New creates a typed error blamed to tok.
func New(kind Kind, tok *token.T, format string, args ...any) *E {
	return &E{Kind: kind, Tok: tok, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface. The message intentionally omits
// source location — callers that want the byte-exact diagnostic format
// go through diag.Sink, which knows how to render a token's location;
// this string is for Go-level logging/test failures, not user output.
func (e *E) Error() string {
	return e.Kind.String() + ": " + e.Message
}
