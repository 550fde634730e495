// Released under an MIT license. See LICENSE.

// Package token provides symc's immutable token type and the append-only
// vectors that own tokens for the lifetime of a compilation.
package token

import (
	"strconv"

	"github.com/symc-lang/symc/internal/loc"
)

// Kind is a token's lexical category.
type Kind int

// Token kinds.
const (
	Invalid Kind = iota
	OpenParen
	CloseParen
	Symbol
	String
	Integer
	Float
)

//go:generate stringer -type=Kind
func (k Kind) String() string {
	switch k {
	case OpenParen:
		return "OpenParen"
	case CloseParen:
		return "CloseParen"
	case Symbol:
		return "Symbol"
	case String:
		return "String"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	default:
		return "Invalid(" + strconv.Itoa(int(k)) + ")"
	}
}

// T (token) is an immutable lexical unit with source provenance. Tokens
// are never mutated after a Vec containing them is sealed or frozen;
// components hold *T and rely on it never moving.
type T struct {
	Kind Kind
	Text string
	Src  *loc.T
}

type token = T

// New creates a token. Callers push it onto a Vec; the Vec, not this
// function, decides when the backing array is no longer safe to grow.
func New(kind Kind, text string, src *loc.T) *token {
	return &token{Kind: kind, Text: text, Src: src}
}

// IsSpecial reports whether the token is a Symbol beginning with one of
// the sigils :, &, or ' — kept to exactly these three; widening the set
// is a deliberate, explicit decision, not something to infer.
func (t *token) IsSpecial() bool {
	if t == nil || t.Kind != Symbol || t.Text == "" {
		return false
	}

	switch t.Text[0] {
	case ':', '&', '\'':
		return true
	default:
		return false
	}
}

// String returns a debugging representation, not the rendered source.
func (t *token) String() string {
	if t == nil {
		return "<nil token>"
	}

	return strconv.Quote(t.Text) + "(" + t.Kind.String() + "," + t.Src.String() + ")"
}
