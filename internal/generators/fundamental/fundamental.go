// Released under an MIT license. See LICENSE.

// Package fundamental installs a minimal built-in generator catalog:
// defun, var, if, return, block, and the arithmetic/comparison binary
// operators needed to render infix expressions. The full catalog is an
// external collaborator; this set exists only so the evaluator pipeline
// is exercisable end to end against real function/variable/control-flow
// input, in the spirit of internal/engine/task/action.go's
// block/evalIf/evalDefine dispatch table, reimplemented as generators
// that emit output.Generator text instead of task continuations.
package fundamental

import (
	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/eval"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/object"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

// RegisterAll installs every generator this package provides into e,
// blaming diagnostics to sink.
func RegisterAll(e *env.Environment, sink *diag.Sink) {
	e.RegisterGenerator("defun", defunGenerator(sink))
	e.RegisterGenerator("var", varGenerator(sink))
	e.RegisterGenerator("if", ifGenerator(sink))
	e.RegisterGenerator("return", returnGenerator(sink))
	e.RegisterGenerator("block", blockGenerator(sink))

	for op := range binaryOperators {
		e.RegisterGenerator(op, binaryOperatorGenerator(sink, op))
	}
}

// binaryOperators names every infix operator rendered as "(lhs op
// rhs)". Kept to the common arithmetic and comparison set; widening it
// is a matter of adding entries here, not changing the rendering logic.
var binaryOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"&&": true, "||": true,
}

type param struct {
	name, typ string
}

// defunGenerator emits a function definition: its signature and body to
// the source stream, and a bare prototype to the header stream. It
// creates the named ObjectDefinition itself, splicing the definition's
// own accumulated output into the module-level output it was called
// with — the same Output-swap convention
// hook.ReplaceAndEvaluateDefinition relies on for redefinition.
func defunGenerator(sink *diag.Sink) env.GeneratorFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool {
		v := expr.Vec
		head := expr.Head()

		if !eval.ExpectScope(sink, "defun", head, ctx, evalctx.Module) {
			return false
		}

		nameIdx := eval.GetArgument(v, expr.Start, 1, expr.End)
		paramsIdx := eval.GetArgument(v, expr.Start, 2, expr.End)

		if nameIdx == -1 || paramsIdx == -1 {
			sink.Errorf(head, "defun requires a name and a parameter list")
			return false
		}

		nameTok := v.At(nameIdx)

		if !eval.ExpectTokenKind(sink, nameTok, token.Symbol) || !eval.ExpectTokenKind(sink, v.At(paramsIdx), token.OpenParen) {
			return false
		}

		params, returnType, ok := parseParams(sink, v, paramsIdx)
		if !ok {
			return false
		}

		def := object.New(nameTok, object.Function, ctx.Module)
		if err := e.AddDefinition(def); err != nil {
			sink.Errorf(nameTok, "%v", err)
			return false
		}

		writeSignature(def.Output, output.Source, returnType, nameTok, params)
		def.Output.AddLangToken(output.Source, output.SpaceBefore|output.OpenBlock|output.NewlineAfter, nameTok)

		writeSignature(def.Output, output.Header, returnType, nameTok, params)
		def.Output.AddLangToken(output.Header, output.NewlineAfter, nameTok)

		errs := 0

		if bodyStart := eval.GetArgument(v, expr.Start, 3, expr.End); bodyStart != -1 {
			bodyCtx := evalctx.New(evalctx.Body, ctx.Module, def, ctx.Required)
			bodyCtx.Delim = evalctx.Delimiter{Modifiers: output.NewlineAfter}

			errs = eval.EvaluateGenerateAllRecursive(e, sink, bodyCtx, v, bodyStart, expr.End-1, def.Output)
		}

		def.Output.AddLangToken(output.Source, output.CloseBlock|output.NewlineAfter, nameTok)

		out.AddSplice(def.Output, nameTok)

		return errs == 0
	}
}

// writeSignature emits "returnType name(type name, ...)" to stream,
// with no trailing punctuation — callers append either a block opener
// or a bare statement terminator.
func writeSignature(g *output.Generator, stream output.Stream, returnType string, nameTok *token.T, params []param) {
	g.AddString(stream, returnType, 0, nameTok)
	g.AddString(stream, nameTok.Text, output.SpaceBefore|output.ConvertFunctionName, nameTok)
	g.AddString(stream, "(", 0, nameTok)

	for i, p := range params {
		if i > 0 {
			g.AddString(stream, ", ", 0, nameTok)
		}

		g.AddString(stream, p.typ+" "+p.name, 0, nameTok)
	}

	g.AddString(stream, ")", 0, nameTok)
}

// parseParams reads a defun parameter list of the form "(a int b int
// &return int)": flat name/type pairs, terminated by an optional
// "&return type" pair naming the function's return type (defaulting to
// "void" if absent).
func parseParams(sink *diag.Sink, v *token.Vec, paramsIdx int) ([]param, string, bool) {
	close := token.FindCloseParen(v, paramsIdx)
	returnType := "void"

	var params []param

	i := paramsIdx + 1
	for i < close {
		tok := v.At(i)

		if tok.Kind == token.Symbol && tok.Text == "&return" {
			i++

			if i >= close {
				sink.Errorf(tok, "&return requires a type")
				return nil, "", false
			}

			returnType = v.At(i).Text
			i++

			continue
		}

		if !eval.ExpectTokenKind(sink, tok, token.Symbol) {
			return nil, "", false
		}

		if i+1 >= close {
			sink.Errorf(tok, "parameter %q is missing a type", tok.Text)
			return nil, "", false
		}

		params = append(params, param{name: tok.Text, typ: v.At(i + 1).Text})
		i += 2
	}

	return params, returnType, true
}

// varGenerator emits a variable declaration. At Module scope it creates
// its own ObjectDefinition (mirroring defunGenerator) and adds an
// "extern" declaration to the header stream; at Body scope it emits a
// local declaration directly into the caller's output. It is the only
// scope var is forbidden in: ExpressionList, per the scope constraint
// every EvaluatorScope enforces on statement-shaped forms.
func varGenerator(sink *diag.Sink) env.GeneratorFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool {
		v := expr.Vec
		head := expr.Head()

		if eval.IsForbiddenScope(sink, "var", head, ctx, evalctx.ExpressionList) {
			return false
		}

		nameIdx := eval.GetArgument(v, expr.Start, 1, expr.End)
		typeIdx := eval.GetArgument(v, expr.Start, 2, expr.End)

		if nameIdx == -1 || typeIdx == -1 {
			sink.Errorf(head, "var requires a name and a type")
			return false
		}

		nameTok := v.At(nameIdx)
		typeTok := v.At(typeIdx)

		if !eval.ExpectTokenKind(sink, nameTok, token.Symbol) {
			return false
		}

		valueIdx := eval.GetArgument(v, expr.Start, 3, expr.End)

		if ctx.Scope == evalctx.Module {
			def := object.New(nameTok, object.Variable, ctx.Module)
			if err := e.AddDefinition(def); err != nil {
				sink.Errorf(nameTok, "%v", err)
				return false
			}

			errs := writeVarDecl(e, sink, ctx, v, nameTok, typeTok, valueIdx, expr.End, def.Output)
			out.AddSplice(def.Output, nameTok)

			return errs == 0
		}

		errs := writeVarDecl(e, sink, ctx, v, nameTok, typeTok, valueIdx, expr.End, out)

		return errs == 0
	}
}

func writeVarDecl(
	e *env.Environment,
	sink *diag.Sink,
	ctx *evalctx.Context,
	v *token.Vec,
	nameTok, typeTok *token.T,
	valueIdx, exprEnd int,
	out *output.Generator,
) int {
	out.AddString(output.Source, typeTok.Text, 0, typeTok)
	out.AddString(output.Source, nameTok.Text, output.SpaceBefore, nameTok)

	errs := 0

	if valueIdx != -1 {
		out.AddString(output.Source, "=", output.SpaceBefore, nameTok)
		out.AddString(output.Source, " ", 0, nameTok)

		valueEnd := eval.GetNextArgument(v, valueIdx, exprEnd-1)
		valueCtx := ctx.WithScope(evalctx.ExpressionList)
		errs += eval.EvaluateExpressionArgument(e, sink, &valueCtx, v, valueIdx, valueEnd, out)
	}

	out.AddLangToken(output.Source, 0, nameTok)

	if ctx.Scope == evalctx.Module {
		out.AddString(output.Header, "extern "+typeTok.Text, 0, typeTok)
		out.AddString(output.Header, nameTok.Text, output.SpaceBefore, nameTok)
		out.AddLangToken(output.Header, output.NewlineAfter, nameTok)
	}

	return errs
}

// ifGenerator emits "if (cond) { ... }" with an optional "else { ... }"
// tail. Both branches must be a (block ...) form: if delegates to the
// block generator for brace/indent handling rather than duplicating it.
func ifGenerator(sink *diag.Sink) env.GeneratorFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool {
		v := expr.Vec
		head := expr.Head()

		if !eval.ExpectScope(sink, "if", head, ctx, evalctx.Body) {
			return false
		}

		condIdx := eval.GetArgument(v, expr.Start, 1, expr.End)
		thenIdx := eval.GetArgument(v, expr.Start, 2, expr.End)

		if condIdx == -1 || thenIdx == -1 {
			sink.Errorf(head, "if requires a condition and a (block ...) branch")
			return false
		}

		elseIdx := eval.GetArgument(v, expr.Start, 3, expr.End)

		out.AddString(output.Source, "if (", 0, head)

		condEnd := eval.GetNextArgument(v, condIdx, expr.End-1)
		condCtx := ctx.WithScope(evalctx.ExpressionList)
		errs := eval.EvaluateExpressionArgument(e, sink, &condCtx, v, condIdx, condEnd, out)

		out.AddString(output.Source, ")", 0, head)

		errs += emitBranch(e, sink, ctx, v, thenIdx, out)

		if elseIdx != -1 {
			out.AddString(output.Source, "else", output.SpaceBefore, head)
			errs += emitBranch(e, sink, ctx, v, elseIdx, out)
		}

		return errs == 0
	}
}

func emitBranch(e *env.Environment, sink *diag.Sink, ctx *evalctx.Context, v *token.Vec, branchIdx int, out *output.Generator) int {
	if !eval.ExpectTokenKind(sink, v.At(branchIdx), token.OpenParen) {
		return 1
	}

	headIdx := branchIdx + 1
	if v.At(headIdx).Text != "block" {
		sink.Errorf(v.At(headIdx), "if: branch must be a (block ...) form")
		return 1
	}

	branchEnd := token.FindCloseParen(v, branchIdx) + 1
	bodyCtx := ctx.WithScope(evalctx.Body)
	_, errs := eval.EvaluateForm(e, sink, &bodyCtx, v, branchIdx, branchEnd, out)

	return errs
}

// blockGenerator emits "{ stmt; stmt; ... }", evaluating its body in
// Body scope with a newline delimiter between statements.
func blockGenerator(sink *diag.Sink) env.GeneratorFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool {
		v := expr.Vec
		head := expr.Head()

		if eval.IsForbiddenScope(sink, "block", head, ctx, evalctx.ExpressionList) {
			return false
		}

		if eval.IsForbiddenScope(sink, "block", head, ctx, evalctx.Module) {
			return false
		}

		out.AddLangToken(output.Source, output.SpaceBefore|output.OpenBlock|output.NewlineAfter, head)

		errs := 0

		if bodyStart := eval.GetArgument(v, expr.Start, 1, expr.End); bodyStart != -1 {
			bodyCtx := ctx.WithScope(evalctx.Body)
			bodyCtx.Delim = evalctx.Delimiter{Modifiers: output.NewlineAfter}

			errs = eval.EvaluateGenerateAllRecursive(e, sink, &bodyCtx, v, bodyStart, expr.End-1, out)
		}

		out.AddLangToken(output.Source, output.CloseBlock|output.NewlineAfter, head)

		return errs == 0
	}
}

// returnGenerator emits "return;" or "return expr;". Legal only in Body
// scope — a return outside a function body is always a mistake.
func returnGenerator(sink *diag.Sink) env.GeneratorFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool {
		v := expr.Vec
		head := expr.Head()

		if !eval.ExpectScope(sink, "return", head, ctx, evalctx.Body) {
			return false
		}

		out.AddString(output.Source, "return", 0, head)

		errs := 0

		if valueIdx := eval.GetArgument(v, expr.Start, 1, expr.End); valueIdx != -1 {
			out.AddString(output.Source, " ", 0, head)

			valueEnd := eval.GetNextArgument(v, valueIdx, expr.End-1)
			valueCtx := ctx.WithScope(evalctx.ExpressionList)
			errs = eval.EvaluateExpressionArgument(e, sink, &valueCtx, v, valueIdx, valueEnd, out)
		}

		out.AddLangToken(output.Source, 0, head)

		return errs == 0
	}
}

// binaryOperatorGenerator renders "(lhs op rhs)" — an infix form, unlike
// the evaluator's default prefix "head(args...)" function-call
// rendering, which a systems-language reader would not recognize as an
// arithmetic or comparison expression.
func binaryOperatorGenerator(sink *diag.Sink, op string) env.GeneratorFunc {
	return func(e *env.Environment, ctx *evalctx.Context, expr token.Expression, out *output.Generator) bool {
		v := expr.Vec

		if !eval.ExpectNumArguments(sink, v, expr.Start, expr.End, 3) {
			return false
		}

		lhsIdx := eval.GetArgument(v, expr.Start, 1, expr.End)
		rhsIdx := eval.GetArgument(v, expr.Start, 2, expr.End)
		head := expr.Head()

		out.AddString(output.Source, "(", 0, head)

		argCtx := ctx.WithScope(evalctx.ExpressionList)
		errs := eval.EvaluateExpressionArgument(e, sink, &argCtx, v, lhsIdx, eval.GetNextArgument(v, lhsIdx, expr.End-1), out)

		out.AddString(output.Source, " "+op+" ", 0, head)

		errs += eval.EvaluateExpressionArgument(e, sink, &argCtx, v, rhsIdx, eval.GetNextArgument(v, rhsIdx, expr.End-1), out)

		out.AddString(output.Source, ")", 0, head)

		return errs == 0
	}
}
