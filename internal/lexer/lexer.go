// Released under an MIT license. See LICENSE.

// Package lexer tokenizes one line of source text at a time, in the
// state-function style described in Rob Pike's "Lexical Scanning in Go"
// and used by internal/reader/lexer for the oh shell grammar — adapted
// here to a much smaller token set: parens, symbols, strings, and
// numeric literals, with no shell operators or redirection.
//
// The evaluator never calls this package directly; the module loader
// does, then seals the resulting vector and hands the evaluator an
// immutable range into it.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/symc-lang/symc/internal/adapted"
	"github.com/symc-lang/symc/internal/loc"
	"github.com/symc-lang/symc/internal/token"
)

type state func(*scanner) state

type scanner struct {
	line     string
	filename string
	lineNum  int
	first    int
	index    int
	out      *token.Vec
}

const eof = -1

type tokenizeError struct {
	filename  string
	line, col int
	msg       string
}

func (e tokenizeError) Error() string {
	return fmt.Sprintf("%s:%d:%d: error: %s", e.filename, e.line, e.col+1, e.msg)
}

// TokenizeLine scans one line of source text and appends its tokens to
// out. filename and lineNumber are attached to every token's Src for
// diagnostics; columns are 0-based byte offsets into line.
func TokenizeLine(line, filename string, lineNumber int, out *token.Vec) (err error) {
	defer func() {
		if r := recover(); r != nil {
			te, ok := r.(tokenizeError)
			if !ok {
				panic(r)
			}

			err = te
		}
	}()

	s := &scanner{line: line, filename: filename, lineNum: lineNumber, out: out}

	for st := state(skipSpace); st != nil; {
		st = st(s)
	}

	return nil
}

func skipSpace(s *scanner) state {
	for {
		r, w := s.peek()

		switch {
		case r == eof:
			return nil
		case r == ' ' || r == '\t' || r == '\r':
			s.advance(w)
			s.first = s.index
		case r == ';':
			return skipComment
		case r == '(':
			s.advance(w)
			s.emit(token.OpenParen)
		case r == ')':
			s.advance(w)
			s.emit(token.CloseParen)
		case r == '"':
			s.advance(w)
			return scanString
		default:
			return scanAtom
		}
	}
}

func skipComment(s *scanner) state {
	for {
		r, w := s.peek()

		if r == eof {
			s.first = s.index
			return nil
		}

		s.advance(w)
	}
}

func scanString(s *scanner) state {
	for {
		r, w := s.peek()

		switch r {
		case eof:
			errf(s, "unterminated string literal")
		case '"':
			s.advance(w)
			s.emit(token.String)
			return skipSpace
		case '\\':
			s.advance(w)

			if _, w2 := s.peek(); w2 > 0 {
				s.advance(w2)
			}
		default:
			s.advance(w)
		}
	}
}

func scanAtom(s *scanner) state {
	for {
		r, w := s.peek()

		switch r {
		case eof, ' ', '\t', '\r', '(', ')', '"', ';':
			s.emit(atomKind(s.text()))
			return skipSpace
		default:
			s.advance(w)
		}
	}
}

// atomKind classifies an already-scanned atom's text as Integer, Float,
// or Symbol. A leading sign is only significant when at least one digit
// follows it; "-" and "->" on their own are symbols, not numbers.
func atomKind(text string) token.Kind {
	i := 0

	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}

	if i >= len(text) || text[i] < '0' || text[i] > '9' {
		return token.Symbol
	}

	sawDot := false

	for ; i < len(text); i++ {
		switch {
		case text[i] >= '0' && text[i] <= '9':
		case text[i] == '.' && !sawDot:
			sawDot = true
		default:
			return token.Symbol
		}
	}

	if sawDot {
		return token.Float
	}

	return token.Integer
}

func errf(s *scanner, format string, args ...any) {
	panic(tokenizeError{filename: s.filename, line: s.lineNum, col: s.first, msg: fmt.Sprintf(format, args...)})
}

func (s *scanner) peek() (rune, int) {
	if s.index >= len(s.line) {
		return eof, 0
	}

	r, w := utf8.DecodeRuneInString(s.line[s.index:])

	return r, w
}

func (s *scanner) advance(w int) {
	s.index += w
}

func (s *scanner) text() string {
	return s.line[s.first:s.index]
}

func (s *scanner) emit(kind token.Kind) {
	text := s.text()
	src := loc.New(s.filename, s.lineNum, s.first, s.index)
	s.out.Push(*token.New(kind, text, src))
	s.first = s.index
}

// DecodeString returns a String token's actual byte content: its raw
// Text with the surrounding quotes stripped and its escape sequences
// resolved via internal/adapted's ActualBytes, the same decoder oh's
// tokenizer uses for its own quoted forms.
func DecodeString(tok *token.T) (string, error) {
	if tok.Kind != token.String {
		return "", fmt.Errorf("lexer: DecodeString called on a %s token", tok.Kind)
	}

	inner := tok.Text
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}

	decoded, err := adapted.ActualBytes(inner)
	if err != nil {
		return "", fmt.Errorf("%s: error: invalid escape in string literal: %w", tok.Src, err)
	}

	return decoded, nil
}

// ValidateParentheses reports whether v's OpenParen/CloseParen tokens
// are balanced: every CloseParen has a preceding unmatched OpenParen,
// and none remain unmatched at the end.
func ValidateParentheses(v *token.Vec) bool {
	depth := 0

	for i := 0; i < v.Len(); i++ {
		switch v.At(i).Kind {
		case token.OpenParen:
			depth++
		case token.CloseParen:
			depth--

			if depth < 0 {
				return false
			}
		}
	}

	return depth == 0
}

// TokenizeSource splits src into lines and tokenizes each in turn into a
// single fresh Vec, which is left unfrozen — the caller freezes it once
// every line (and every file, for a multi-file module) has been
// appended.
func TokenizeSource(src, filename string) (*token.Vec, error) {
	lines := strings.Split(src, "\n")
	v := token.NewVec(len(lines) * 4)

	for i, line := range lines {
		if err := TokenizeLine(line, filename, i+1, v); err != nil {
			return nil, err
		}
	}

	return v, nil
}
