// Released under an MIT license. See LICENSE.

// Package writer renders a fully resolved output.Generator's flattened
// fragment streams to source/header text: the final pretty-printing
// step that turns generator output into source/header files, kept
// separate from the evaluator itself. Naming style and brace/indent
// layout come from internal/config.
package writer

import (
	"strings"

	"github.com/symc-lang/symc/internal/config"
	"github.com/symc-lang/symc/internal/output"
)

// Writer renders output.Generator streams according to cfg.
type Writer struct {
	Config *config.Config
}

// New creates a Writer. A nil cfg is replaced with config.Default().
func New(cfg *config.Config) *Writer {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Writer{Config: cfg}
}

// WriteSource renders gen's source stream, wrapped in the configured
// heading/footer text.
func (w *Writer) WriteSource(gen *output.Generator) string {
	return w.wrap(w.render(gen.Flatten(output.Source)))
}

// WriteHeader renders gen's header stream, wrapped in the configured
// heading/footer text.
func (w *Writer) WriteHeader(gen *output.Generator) string {
	return w.wrap(w.render(gen.Flatten(output.Header)))
}

func (w *Writer) wrap(body string) string {
	var sb strings.Builder

	if w.Config.HeadingText != "" {
		sb.WriteString(w.Config.HeadingText)

		if !strings.HasSuffix(w.Config.HeadingText, "\n") {
			sb.WriteByte('\n')
		}
	}

	sb.WriteString(body)

	if w.Config.FooterText != "" {
		if !strings.HasSuffix(body, "\n") {
			sb.WriteByte('\n')
		}

		sb.WriteString(w.Config.FooterText)
	}

	return sb.String()
}

type renderer struct {
	cfg    *config.Config
	sb     strings.Builder
	indent int
	atBOL  bool
}

func (w *Writer) render(frags []output.Fragment) string {
	r := &renderer{cfg: w.Config, atBOL: true}

	for _, f := range frags {
		r.fragment(f)
	}

	return r.sb.String()
}

func (r *renderer) fragment(f output.Fragment) {
	if f.Modifiers.Has(output.CloseBlock) {
		r.indent--
	}

	if f.Modifiers.Has(output.SpaceBefore) && !r.atBOL {
		r.sb.WriteByte(' ')
	}

	if r.atBOL {
		r.sb.WriteString(strings.Repeat(" ", r.indent*r.cfg.Format.IndentWidth))
		r.atBOL = false
	}

	text := f.Text

	switch {
	case f.LangToken:
		text = r.langToken(f.Modifiers)
	case f.Modifiers.Has(output.ConvertTypeName):
		text = applyCase(text, r.cfg.NameStyle.TypeCase)
	case f.Modifiers.Has(output.ConvertFunctionName):
		text = applyCase(text, r.cfg.NameStyle.FunctionCase)
	}

	r.sb.WriteString(text)

	if f.Modifiers.Has(output.OpenBlock) {
		r.indent++
	}

	if f.Modifiers.Has(output.NewlineAfter) {
		r.sb.WriteByte('\n')
		r.atBOL = true
	}
}

func (r *renderer) langToken(mods output.Mod) string {
	switch {
	case mods.Has(output.OpenBlock):
		if r.cfg.Format.BraceStyle == "next-line" {
			return "\n" + strings.Repeat(" ", (r.indent)*r.cfg.Format.IndentWidth) + "{"
		}

		return "{"
	case mods.Has(output.CloseBlock):
		return "}"
	default:
		return ";"
	}
}
