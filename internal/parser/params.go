package parser

import (
	"stub2hdr/internal/decl"
	"stub2hdr/internal/diag"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// params splits the list between open and closeAt into parameters.
// "()" and "(void)" both mean no parameters.
func (p *parser) params(open, closeAt int) ([]decl.Parameter, bool, error) {
	inner := p.toks[open+1 : closeAt]
	if len(inner) == 0 {
		return nil, false, nil
	}
	groups, seps := splitTopLevel(inner)
	if len(groups) == 1 && len(inner) == 1 && inner[0].Text == "void" {
		return nil, false, nil
	}

	out := make([]decl.Parameter, 0, len(groups))
	for gi, g := range groups {
		if len(g) == 0 {
			// пустой слот: указываем на соседнюю запятую или скобку
			sp := p.toks[closeAt].Span
			if gi < len(seps) {
				sp = seps[gi]
			}
			return nil, false, errAt(diag.SynEmptyParam, sp, "empty parameter in %q", "("+decl.Render(inner)+")")
		}
		if at := topLevelEllipsis(g); at >= 0 {
			if len(g) != 1 {
				return nil, false, errAt(diag.SynBadVariadic, g[at].Span, "'...' must stand alone in its parameter slot")
			}
			if gi != len(groups)-1 {
				return nil, false, errAt(diag.SynVariadicMustBeLast, g[at].Span, "'...' must be the last parameter")
			}
			out = append(out, decl.Parameter{Type: g, NameAt: -1, Variadic: true})
			return out, true, nil
		}
		out = append(out, p.param(g))
	}
	return out, false, nil
}

func (p *parser) param(g []token.Token) decl.Parameter {
	at := p.paramName(g)
	if at < 0 {
		return decl.Parameter{Type: g, NameAt: -1}
	}
	typ := make([]token.Token, 0, len(g)-1)
	typ = append(typ, g[:at]...)
	typ = append(typ, g[at+1:]...)
	return decl.Parameter{Type: typ, Name: g[at].Text, NameAt: at, NameTok: g[at]}
}

// paramName returns the index of the parameter name inside g or -1.
func (p *parser) paramName(g []token.Token) int {
	if at, ok := p.pointerName(g); ok {
		return at
	}

	end := len(g)
	for end > 0 && g[end-1].Kind == token.RBracket {
		end = openingBracket(g, end-1)
	}
	k := end - 1
	if k < 1 || !p.isName(g[k]) {
		return -1
	}
	if class, ok := token.LookupKeyword(g[k-1].Text); ok && class == token.ClassTag {
		return -1
	}
	onlyQualifiers := true
	for _, t := range g[:k] {
		if class, ok := token.LookupKeyword(t.Text); !ok || class != token.ClassQualifier {
			onlyQualifiers = false
			break
		}
	}
	if onlyQualifiers {
		// "const T" без имени
		return -1
	}
	return k
}

// pointerName finds the name inside a "(*name)" sub-declarator at the top of g.
func (p *parser) pointerName(g []token.Token) (int, bool) {
	level := 0
	for i, t := range g {
		switch t.Kind {
		case token.LParen:
			if level == 0 && i+1 < len(g) && g[i+1].Kind == token.Star {
				j := i + 1
				for j < len(g) && (g[j].Kind == token.Star || isQualifier(g[j])) {
					j++
				}
				if j < len(g) && p.isName(g[j]) {
					return j, true
				}
				return -1, false
			}
			level++
		case token.RParen:
			level--
		}
	}
	return -1, false
}

func isQualifier(t token.Token) bool {
	class, ok := token.LookupKeyword(t.Text)
	return ok && class == token.ClassQualifier
}

// splitTopLevel разбивает токены по запятым вне вложенных скобок.
// seps holds the comma spans; len(seps) == len(groups)-1.
func splitTopLevel(toks []token.Token) (groups [][]token.Token, seps []source.Span) {
	level, start := 0, 0
	for i, t := range toks {
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			level++
		case token.RParen, token.RBracket, token.RBrace:
			level--
		case token.Comma:
			if level == 0 {
				groups = append(groups, toks[start:i])
				seps = append(seps, t.Span)
				start = i + 1
			}
		}
	}
	groups = append(groups, toks[start:])
	return groups, seps
}

func topLevelEllipsis(g []token.Token) int {
	level := 0
	for i, t := range g {
		switch t.Kind {
		case token.LParen, token.LBracket:
			level++
		case token.RParen, token.RBracket:
			level--
		case token.Ellipsis:
			if level == 0 {
				return i
			}
		}
	}
	return -1
}

// openingBracket returns the index of the '[' matching the ']' at closeAt.
func openingBracket(g []token.Token, closeAt int) int {
	level := 0
	for i := closeAt; i >= 0; i-- {
		switch g[i].Kind {
		case token.RBracket:
			level++
		case token.LBracket:
			level--
			if level == 0 {
				return i
			}
		}
	}
	return 0
}
