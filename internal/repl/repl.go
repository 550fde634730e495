// Released under an MIT license. See LICENSE.

// Package repl provides an interactive line-editing front end for
// feeding source text, a form at a time, to a caller-supplied
// evaluation function: a liner-backed read loop gating raw/cooked
// terminal modes around each prompt, except that what gets fed to the
// evaluator here is one balanced parenthesized form at a time rather
// than a line, since a single form commonly spans several lines.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/symc-lang/symc/internal/lexer"
	"github.com/symc-lang/symc/internal/token"
)

// Eval is called once per complete top-level form the user enters. It
// receives the form's tokens and should report any diagnostics itself;
// REPL only cares about the rendered result, if any, and whether to
// keep going.
type Eval func(v *token.Vec) (result string, keepGoing bool)

// REPL reads balanced forms from stdin via liner and feeds each to Eval.
type REPL struct {
	Prompt       lipgloss.Style
	Continuation lipgloss.Style
	ErrorStyle   lipgloss.Style

	eval Eval
	cli  *liner.State
}

// New creates a REPL that calls eval for each complete form read.
func New(eval Eval) *REPL {
	return &REPL{
		Prompt:       lipgloss.NewStyle().Bold(true),
		Continuation: lipgloss.NewStyle().Faint(true),
		ErrorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		eval:         eval,
		cli:          liner.NewLiner(),
	}
}

// IsInteractive reports whether fd (typically os.Stdin.Fd()) is a
// terminal, gating whether to enter interactive mode at all.
func IsInteractive(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func parenDepth(v *token.Vec) int {
	depth := 0

	for i := 0; i < v.Len(); i++ {
		switch v.At(i).Kind {
		case token.OpenParen:
			depth++
		case token.CloseParen:
			depth--
		}
	}

	return depth
}

// Run drives the read loop until the user sends EOF, writing each
// evaluation's result (or, on malformed input, a lexer/parenthesis
// error) to out.
func (r *REPL) Run(out io.Writer) {
	defer r.cli.Close()

	var pending strings.Builder

	for {
		prompt := r.Prompt.Render("symc> ")
		if pending.Len() > 0 {
			prompt = r.Continuation.Render("   ... ")
		}

		line, err := r.cli.Prompt(prompt)
		if err != nil {
			return
		}

		r.cli.AppendHistory(line)

		pending.WriteString(line)
		pending.WriteByte('\n')

		v, lexErr := lexer.TokenizeSource(pending.String(), "<repl>")
		if lexErr != nil {
			if strings.Contains(lexErr.Error(), "unterminated") {
				continue
			}

			fmt.Fprintln(out, r.ErrorStyle.Render(lexErr.Error()))
			pending.Reset()

			continue
		}

		if !lexer.ValidateParentheses(v) {
			if parenDepth(v) > 0 {
				continue
			}

			fmt.Fprintln(out, r.ErrorStyle.Render("unbalanced closing parenthesis"))
			pending.Reset()

			continue
		}

		v.Freeze()
		pending.Reset()

		result, keepGoing := r.eval(v)
		if result != "" {
			fmt.Fprintln(out, result)
		}

		if !keepGoing {
			return
		}
	}
}
