package normalize

import (
	"slices"

	"stub2hdr/internal/token"
)

// specifierOrder is the canonical order of storage-class and function specifiers.
var specifierOrder = []string{"extern", "static", "inline", "__inline", "__inline__", "_Noreturn"}

// Specifiers moves storage-class and function specifiers to the front of a
// return type in canonical order. Repeated specifiers collapse into one.
// Tokens inside parentheses (attributes, nested declarators) stay in place.
// The input is not modified.
func Specifiers(ret []token.Token) []token.Token {
	found := make([]*token.Token, len(specifierOrder))
	rest := make([]token.Token, 0, len(ret))
	level := 0
	moved := false
	for i, t := range ret {
		switch t.Kind {
		case token.LParen:
			level++
		case token.RParen:
			level--
		}
		if level == 0 && t.Kind == token.Ident {
			if at := slices.Index(specifierOrder, t.Text); at >= 0 {
				if found[at] == nil {
					found[at] = &ret[i]
				}
				moved = true
				continue
			}
		}
		rest = append(rest, t)
	}
	if !moved {
		return ret
	}
	out := make([]token.Token, 0, len(ret))
	for _, t := range found {
		if t != nil {
			out = append(out, *t)
		}
	}
	return append(out, rest...)
}
