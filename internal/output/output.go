// Released under an MIT license. See LICENSE.

// Package output implements the output model: ordered, modifier-tagged
// text fragments with deferred splice points, kept as
// two parallel streams (source, header) so one generator invocation can
// contribute to both a .c file and its .h prototype in one pass.
package output

import "github.com/symc-lang/symc/internal/token"

// Mod is a bitmask of fragment modifiers, combined by bitwise union.
type Mod uint32

// Modifier flags.
const (
	NewlineAfter Mod = 1 << iota
	SpaceBefore
	OpenBlock
	CloseBlock
	ConvertTypeName
	ConvertFunctionName
)

// Has reports whether flag is set in m.
func (m Mod) Has(flag Mod) bool {
	return m&flag != 0
}

// Stream identifies which of a Generator's two output streams a
// fragment or splice belongs to.
type Stream int

// Streams.
const (
	Source Stream = iota
	Header
)

// Fragment carries either literal text or a splice marker pointing at a
// child Generator, never both. A LangToken fragment carries no text of
// its own; the Writer renders target-language punctuation for it based
// on Modifiers.
type Fragment struct {
	Text      string
	LangToken bool
	Splice    *Generator
	Modifiers Mod
	Blame     *token.T
}

// Generator (GeneratorOutput) is two ordered fragment sequences, one per
// stream, that an ObjectDefinition accumulates as the evaluator walks
// its body.
type Generator struct {
	Source []Fragment
	Header []Fragment
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{}
}

func (g *Generator) stream(s Stream) *[]Fragment {
	if s == Source {
		return &g.Source
	}

	return &g.Header
}

// AddString appends a text fragment to stream s.
func (g *Generator) AddString(s Stream, text string, mods Mod, blame *token.T) {
	frags := g.stream(s)
	*frags = append(*frags, Fragment{Text: text, Modifiers: mods, Blame: blame})
}

// AddLangToken appends a language-punctuation fragment (e.g. the ';' or
// '{' the target language wants) to stream s. The Writer is responsible
// for choosing the actual text per the target language.
func (g *Generator) AddLangToken(s Stream, mods Mod, blame *token.T) {
	frags := g.stream(s)
	*frags = append(*frags, Fragment{LangToken: true, Modifiers: mods, Blame: blame})
}

// AddSplice records a deferred insertion of child into parent. The
// marker is pushed to both streams unconditionally, even if child only
// ever writes to one of them — this preserves cross-stream ordering:
// an empty side just flattens to nothing, it is never skipped at
// splice-insertion time.
func (g *Generator) AddSplice(child *Generator, blame *token.T) {
	g.Source = append(g.Source, Fragment{Splice: child, Blame: blame})
	g.Header = append(g.Header, Fragment{Splice: child, Blame: blame})
}

// Flatten lazily expands every splice in stream s, in insertion order,
// returning the flat fragment sequence a Writer can render directly.
// Empty splices contribute zero fragments, not an empty one.
func (g *Generator) Flatten(s Stream) []Fragment {
	var out []Fragment

	flattenInto(&out, *g.stream(s), s)

	return out
}

func flattenInto(out *[]Fragment, frags []Fragment, s Stream) {
	for _, f := range frags {
		if f.Splice == nil {
			*out = append(*out, f)
			continue
		}

		flattenInto(out, *f.Splice.stream(s), s)
	}
}
