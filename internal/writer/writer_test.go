// Released under an MIT license. See LICENSE.

package writer

import (
	"strings"
	"testing"

	"github.com/symc-lang/symc/internal/config"
	"github.com/symc-lang/symc/internal/output"
)

func TestApplyCaseConvertsBetweenStyles(t *testing.T) {
	cases := []struct {
		name, style, want string
	}{
		{"my-struct", "PascalCase", "MyStruct"},
		{"my_struct", "PascalCase", "MyStruct"},
		{"MyStruct", "snake_case", "my_struct"},
		{"my-func-name", "camelCase", "myFuncName"},
		{"already_snake", "snake_case", "already_snake"},
	}

	for _, c := range cases {
		if got := applyCase(c.name, c.style); got != c.want {
			t.Errorf("applyCase(%q, %q) = %q, want %q", c.name, c.style, got, c.want)
		}
	}
}

func TestWriteSourceRendersFunctionWithBlockAndIndent(t *testing.T) {
	gen := output.New()
	gen.AddString(output.Source, "void", output.SpaceBefore, nil)
	gen.AddString(output.Source, "my-function", output.SpaceBefore|output.ConvertFunctionName, nil)
	gen.AddString(output.Source, "()", 0, nil)
	gen.AddLangToken(output.Source, output.SpaceBefore|output.OpenBlock|output.NewlineAfter, nil)
	gen.AddString(output.Source, "return", 0, nil)
	gen.AddLangToken(output.Source, output.NewlineAfter, nil)
	gen.AddLangToken(output.Source, output.CloseBlock|output.NewlineAfter, nil)

	w := New(config.Default())

	got := w.WriteSource(gen)

	want := "void my_function() {\n    return;\n}\n"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteSourceConvertsTypeName(t *testing.T) {
	gen := output.New()
	gen.AddString(output.Source, "my-record", output.ConvertTypeName, nil)

	w := New(config.Default())

	if got := w.WriteSource(gen); got != "MyRecord" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteHeaderIsIndependentOfSource(t *testing.T) {
	gen := output.New()
	gen.AddString(output.Source, "int x;\n", 0, nil)
	gen.AddString(output.Header, "extern int x;\n", 0, nil)

	w := New(config.Default())

	if got := w.WriteSource(gen); !strings.Contains(got, "int x;") {
		t.Fatalf("source missing expected text: %q", got)
	}

	if got := w.WriteHeader(gen); !strings.Contains(got, "extern int x;") {
		t.Fatalf("header missing expected text: %q", got)
	}
}

func TestWriteSourceWrapsHeadingAndFooter(t *testing.T) {
	cfg := config.Default()
	cfg.HeadingText = "// generated, do not edit"
	cfg.FooterText = "// end of file"

	gen := output.New()
	gen.AddString(output.Source, "int x;\n", 0, nil)

	w := New(cfg)

	got := w.WriteSource(gen)
	want := "// generated, do not edit\nint x;\n// end of file"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNewDefaultsNilConfig(t *testing.T) {
	w := New(nil)

	if w.Config == nil {
		t.Fatal("expected New(nil) to fall back to a default config")
	}
}
