package parser

// builtinAttributes are identifiers whose parenthesized argument is never a parameter list.
var builtinAttributes = []string{
	"__attribute__", "__attribute",
	"__declspec",
	"__asm__", "__asm", "asm",
	"_Alignas", "alignas",
	"__nonnull",
	"typeof", "__typeof", "__typeof__",
	"_Pragma", "__pragma",
}

type Options struct {
	// AttributeMacros adds project macros that take arguments but are not
	// functions, e.g. "__attr_dealloc" or "EXPORT".
	AttributeMacros []string
}

func (o Options) attributeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(builtinAttributes)+len(o.AttributeMacros))
	for _, name := range builtinAttributes {
		set[name] = struct{}{}
	}
	for _, name := range o.AttributeMacros {
		set[name] = struct{}{}
	}
	return set
}
