// Released under an MIT license. See LICENSE.

// Package comptime implements the declarative CStatementOutput
// generator builder, and the pipeline that compiles, links, and
// installs user-written compile-time procedures (macros, generators,
// and plain compile-time functions) from source-dialect tokens into
// callable Go values.
package comptime

import (
	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/eval"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

// OperationKind names one statement-operation kind a CStatementOperation
// can perform.
type OperationKind int

// Operation kinds a generator description can use. Not exhaustive;
// generator catalogs are free to add more.
const (
	Keyword OperationKind = iota
	OpenBlockOp
	CloseBlockOp
	ExpressionOp
	ExpressionListOp
	TypeNoArrayOp
)

// Operation (CStatementOperation) names a single step of a declarative
// generator description: what kind of thing to emit, a literal
// keyword/symbol where relevant, and which source-form argument (0 =
// head, 1 = first arg, ...) feeds it.
type Operation struct {
	Kind          OperationKind
	KeywordOrText string
	ArgumentIndex int
}

// Output (CStatementOutput) consumes a description of operations and
// emits correctly-delimited output for a simple generator, recursing
// into the evaluator for Expression/ExpressionList arguments.
func Output(
	e *env.Environment,
	sink *diag.Sink,
	ctx *evalctx.Context,
	expr token.Expression,
	ops []Operation,
	out *output.Generator,
) bool {
	v := expr.Vec

	errs := 0

	for idx, op := range ops {
		switch op.Kind {
		case Keyword:
			out.AddString(output.Source, op.KeywordOrText, 0, expr.Head())
		case OpenBlockOp:
			out.AddLangToken(output.Source, output.OpenBlock, expr.Head())
		case CloseBlockOp:
			out.AddLangToken(output.Source, output.CloseBlock, expr.Head())
		case ExpressionOp, ExpressionListOp:
			argStart := eval.GetArgument(v, expr.Start, op.ArgumentIndex, expr.End)
			if argStart == -1 {
				sink.Errorf(expr.Head(), "missing argument %d for generator operation", op.ArgumentIndex)
				errs++

				continue
			}

			argEnd := eval.GetNextArgument(v, argStart, expr.End)

			errs += eval.EvaluateExpressionArgument(e, sink, ctx, v, argStart, argEnd, out)
		case TypeNoArrayOp:
			argStart := eval.GetArgument(v, expr.Start, op.ArgumentIndex, expr.End)
			if argStart == -1 {
				sink.Errorf(expr.Head(), "missing type argument %d", op.ArgumentIndex)
				errs++

				continue
			}

			out.AddString(output.Source, v.At(argStart).Text, 0, v.At(argStart))
		}

		if idx < len(ops)-1 {
			out.AddString(output.Source, " ", 0, expr.Head())
		}
	}

	return errs == 0
}
