// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/object"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

// EvaluateGenerateAllRecursive walks every sibling form in [startIndex,
// end), dispatching each through EvaluateForm and inserting ctx.Delim
// between them. On a malformed form it blames the offending token,
// increments the error count, and continues with the next sibling, so
// one pass reports many errors.
func EvaluateGenerateAllRecursive(
	e *env.Environment,
	sink *diag.Sink,
	ctx *evalctx.Context,
	v *token.Vec,
	startIndex, end int,
	out *output.Generator,
) int {
	errs := 0
	i := startIndex
	first := true

	for i < end {
		if !first && ctx.Delim.Modifiers != 0 {
			out.AddString(output.Source, "", ctx.Delim.Modifiers, v.At(i))
		}

		first = false

		next, formErrs := EvaluateForm(e, sink, ctx, v, i, end, out)
		errs += formErrs
		i = next
	}

	return errs
}

// EvaluateForm dispatches the single form starting at i — generator,
// then macro, then plain function call — and returns the index of the
// next sibling plus the number of errors this form produced.
func EvaluateForm(
	e *env.Environment,
	sink *diag.Sink,
	ctx *evalctx.Context,
	v *token.Vec,
	i, end int,
	out *output.Generator,
) (int, int) {
	if i >= end {
		return end, 0
	}

	headIdx, formEnd, argsStart, argsEnd, ok := formBounds(v, i, end)
	if !ok {
		sink.Errorf(v.At(i), "expected a symbol or a parenthesized invocation")
		return GetNextArgument(v, i, end), 1
	}

	head := v.At(headIdx)
	if head.Kind != token.Symbol {
		sink.Errorf(head, "invocation head must be a symbol, found %s", head.Kind)
		return formEnd, 1
	}

	expr := token.Expression{Vec: v, Start: i, End: formEnd}

	if gen, found := e.Generator(head.Text); found {
		if !gen(e, ctx, expr, out) {
			return formEnd, 1
		}

		return formEnd, 0
	}

	if mac, found := e.Macro(head.Text); found {
		expansion, ok := mac(e, ctx, expr)
		if !ok {
			sink.Errorf(head, "macro %q failed to expand", head.Text)
			return formEnd, 1
		}

		return formEnd, EvaluateGenerateAllRecursive(e, sink, ctx, expansion, 0, expansion.Len(), out)
	}

	return formEnd, evaluateFunctionCall(e, sink, ctx, head, v, argsStart, argsEnd, out)
}

// formBounds computes (headIdx, formEnd, argsStart, argsEnd) for the
// form starting at i: if i is an OpenParen, the head is the first
// token inside and the args run to the matching CloseParen; otherwise
// the form is the bare symbol itself, with no arguments.
func formBounds(v *token.Vec, i, end int) (headIdx, formEnd, argsStart, argsEnd int, ok bool) {
	if v.At(i).Kind == token.OpenParen {
		closeIdx := token.FindCloseParen(v, i)
		if closeIdx+1 > end {
			return 0, 0, 0, 0, false
		}

		if i+1 >= closeIdx {
			return 0, 0, 0, 0, false
		}

		return i + 1, closeIdx + 1, i + 2, closeIdx, true
	}

	return i, i + 1, i + 1, i + 1, true
}

// evaluateFunctionCall emits "head(arg, arg, ...)" and records a
// reference from the enclosing definition to head.
func evaluateFunctionCall(
	e *env.Environment,
	sink *diag.Sink,
	ctx *evalctx.Context,
	head *token.T,
	v *token.Vec,
	argsStart, argsEnd int,
	out *output.Generator,
) int {
	if ctx.Definition != nil {
		ctx.Definition.AddOutRef(head.Text)
	}

	e.AddReference(head.Text, &object.Reference{
		Referrer: ctx.Definition,
		Tok:      head,
		Required: ctx.Required,
	})

	out.AddString(output.Source, head.Text+"(", 0, head)

	errs := 0
	argI := argsStart
	argIndex := 0
	argCtx := ctx.WithScope(evalctx.ExpressionList)

	for argI < argsEnd {
		if argIndex > 0 {
			out.AddString(output.Source, ", ", 0, head)
		}

		next := GetNextArgument(v, argI, argsEnd)
		errs += EvaluateExpressionArgument(e, sink, &argCtx, v, argI, next, out)

		argI = next
		argIndex++
	}

	out.AddString(output.Source, ")", 0, head)

	return errs
}

// EvaluateExpressionArgument evaluates a single argument in an
// expression position. A bare atom (symbol, string, or number token —
// anything that is not itself a parenthesized invocation) is copied
// through verbatim: only parenthesized sub-forms are dispatched through
// EvaluateForm. Without this distinction a bare parameter reference
// like the "a" in "(+ a b)" would be misdispatched as a zero-argument
// call to "a".
func EvaluateExpressionArgument(
	e *env.Environment,
	sink *diag.Sink,
	ctx *evalctx.Context,
	v *token.Vec,
	argStart, argEnd int,
	out *output.Generator,
) int {
	if argEnd == argStart+1 && v.At(argStart).Kind != token.OpenParen {
		tok := v.At(argStart)

		if tok.Kind == token.Symbol && !tok.IsSpecial() {
			if ctx.Definition != nil {
				ctx.Definition.AddOutRef(tok.Text)
			}

			e.AddReference(tok.Text, &object.Reference{
				Referrer: ctx.Definition,
				Tok:      tok,
				Required: ctx.Required,
			})
		}

		out.AddString(output.Source, tok.Text, 0, tok)

		return 0
	}

	_, errs := EvaluateForm(e, sink, ctx, v, argStart, argEnd, out)

	return errs
}
