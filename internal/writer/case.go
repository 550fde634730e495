// Released under an MIT license. See LICENSE.

package writer

import "strings"

// words splits an identifier into its constituent words on '-', '_',
// and internal case boundaries, so any of "my-name", "my_name",
// "myName", and "MyName" produce the same ["my", "name"].
func words(name string) []string {
	var out []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}

	runes := []rune(name)

	for i, r := range runes {
		switch {
		case r == '-' || r == '_':
			flush()
		case r >= 'A' && r <= 'Z' && i > 0 && !(runes[i-1] >= 'A' && runes[i-1] <= 'Z'):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return out
}

// applyCase renders name in the requested style ("PascalCase",
// "camelCase", or "snake_case"). An unrecognized style returns name
// unchanged rather than guessing.
func applyCase(name, style string) string {
	ws := words(name)
	if len(ws) == 0 {
		return name
	}

	switch style {
	case "snake_case":
		return strings.Join(ws, "_")
	case "PascalCase":
		var sb strings.Builder
		for _, w := range ws {
			sb.WriteString(capitalize(w))
		}
		return sb.String()
	case "camelCase":
		var sb strings.Builder
		sb.WriteString(ws[0])
		for _, w := range ws[1:] {
			sb.WriteString(capitalize(w))
		}
		return sb.String()
	default:
		return name
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
