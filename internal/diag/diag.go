// Released under an MIT license. See LICENSE.

// Package diag provides the single diagnostic sink every other package
// writes through. Its output format is a contract: editors parse
// "file:line:col: error: message" and "... note: ..." lines, so the
// format here must never drift from Sprintf's %d:%d rendering of a
// token's source location.
package diag

import (
	"fmt"
	"io"

	"github.com/symc-lang/symc/internal/token"
)

// Sink accumulates diagnostics and counts errors for a pass. A pass
// never stops at the first error: callers report and continue.
type Sink struct {
	w       io.Writer
	errors  int
	notices int
}

// New creates a Sink writing to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Errorf reports an error blamed to tok and increments the error count.
func (s *Sink) Errorf(tok *token.T, format string, args ...any) {
	s.errors++
	fmt.Fprintf(s.w, "%s: error: %s\n", blame(tok), fmt.Sprintf(format, args...))
}

// Notef reports a note blamed to tok. Notes never count as errors.
func (s *Sink) Notef(tok *token.T, format string, args ...any) {
	s.notices++
	fmt.Fprintf(s.w, "%s: note: %s\n", blame(tok), fmt.Sprintf(format, args...))
}

// Errors returns the number of errors reported so far.
func (s *Sink) Errors() int {
	return s.errors
}

// Reset clears the error/note counters without changing the writer.
func (s *Sink) Reset() {
	s.errors = 0
	s.notices = 0
}

func blame(tok *token.T) string {
	if tok == nil || tok.Src == nil {
		return "<unknown>"
	}

	return tok.Src.String()
}
