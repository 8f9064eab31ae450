// Package emit renders normalized declarations as a C header.
package emit

import (
	"strings"

	"stub2hdr/internal/decl"
)

// Render produces the complete header text for items.
// Output is a pure function of its inputs.
func Render(items []decl.Item, opts Options) string {
	var b strings.Builder

	if opts.Banner != "" {
		writeBanner(&b, opts.Banner)
		b.WriteByte('\n')
	}
	b.WriteString("#ifndef " + opts.Guard + "\n")
	b.WriteString("#define " + opts.Guard + "\n\n")

	if len(opts.Includes) > 0 {
		for _, inc := range opts.Includes {
			b.WriteString("#include " + includeTarget(inc) + "\n")
		}
		b.WriteByte('\n')
	}
	if opts.ExternC {
		b.WriteString("#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")
	}

	for _, it := range items {
		b.WriteString(Item(it, opts.ParenSpacing))
		b.WriteByte('\n')
	}

	if opts.ExternC {
		b.WriteString("\n#ifdef __cplusplus\n}\n#endif\n")
	}
	if len(items) > 0 || opts.ExternC {
		b.WriteByte('\n')
	}
	b.WriteString("#endif /* " + opts.Guard + " */\n")
	return b.String()
}

// Item renders one item as a line (or lines, for continued directives).
func Item(it decl.Item, spacing ParenSpacing) string {
	switch it.Kind {
	case decl.ItemSignature:
		return Declaration(it.Sig, spacing)
	default:
		return strings.TrimRight(it.Text, " \t")
	}
}

// Declaration renders "<ret> <name>[ ](<params|void>)<suffix> <trailing>;".
func Declaration(sig *decl.Signature, spacing ParenSpacing) string {
	var b strings.Builder
	b.WriteString(decl.Join(decl.Render(sig.ReturnType), sig.Name))
	switch spacing {
	case SpacingAlways:
		b.WriteByte(' ')
	case SpacingPreserve:
		if sig.SpaceBeforeParams {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('(')
	b.WriteString(ParamList(sig))
	b.WriteByte(')')
	b.WriteString(decl.Render(sig.ReturnSuffix))
	if len(sig.Trailing) > 0 {
		b.WriteByte(' ')
		b.WriteString(decl.RenderSource(sig.Trailing))
	}
	b.WriteByte(';')
	return b.String()
}

// ParamList renders the parameters; an empty list becomes "void".
func ParamList(sig *decl.Signature) string {
	if len(sig.Params) == 0 {
		return "void"
	}
	parts := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func writeBanner(b *strings.Builder, banner string) {
	lines := strings.Split(strings.TrimRight(banner, "\n"), "\n")
	if len(lines) == 1 {
		b.WriteString("/* " + lines[0] + " */\n")
		return
	}
	b.WriteString("/*\n")
	for _, l := range lines {
		b.WriteString(strings.TrimRight(" * "+l, " ") + "\n")
	}
	b.WriteString(" */\n")
}

func includeTarget(inc string) string {
	inc = strings.TrimSpace(inc)
	if strings.HasPrefix(inc, "<") || strings.HasPrefix(inc, "\"") {
		return inc
	}
	return "\"" + inc + "\""
}
