package parser

import (
	"slices"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/diag"
	"stub2hdr/internal/scanner"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// parser: состояние разбора одного кандидата
type parser struct {
	toks  []token.Token
	depth []int // глубина круглых скобок перед каждым токеном
	attrs map[string]struct{}
	span  source.Span
}

// Parse extracts the signature from a definition or prototype candidate.
func Parse(c scanner.Candidate, opts Options) (decl.Signature, error) {
	return ParseTokens(c.Tokens, c.Span, opts)
}

// ParseTokens parses a declarator given as significant tokens without the
// terminating '{' or ';'. span is the whole candidate and is copied into the result.
func ParseTokens(toks []token.Token, span source.Span, opts Options) (decl.Signature, error) {
	p := parser{toks: toks, attrs: opts.attributeSet(), span: span}
	if err := p.measure(); err != nil {
		return decl.Signature{}, err
	}

	open, err := p.findParamList()
	if err != nil {
		return decl.Signature{}, err
	}
	closeAt := p.matching(open)
	name := p.toks[open-1]
	if open-1 == 0 {
		return decl.Signature{}, errAt(diag.SynNoReturnType, name.Span,
			"function %q has no return type; implicit int is not supported", name.Text)
	}

	params, variadic, err := p.params(open, closeAt)
	if err != nil {
		return decl.Signature{}, err
	}
	suffixEnd := p.suffix(open, closeAt)

	return decl.Signature{
		ReturnType:        slices.Clone(p.toks[:open-1]),
		Name:              name.Text,
		NameSpan:          name.Span,
		Params:            params,
		Variadic:          variadic,
		ReturnSuffix:      slices.Clone(p.toks[closeAt+1 : suffixEnd]),
		Trailing:          slices.Clone(p.toks[suffixEnd:]),
		SpaceBeforeParams: p.toks[open].Span.Start > name.Span.End,
		Span:              span,
	}, nil
}

// measure заполняет depth и проверяет баланс круглых и квадратных скобок.
func (p *parser) measure() error {
	p.depth = make([]int, len(p.toks))
	paren, bracket := 0, 0
	var lastOpen token.Token
	for i, t := range p.toks {
		p.depth[i] = paren
		switch t.Kind {
		case token.LParen:
			paren++
			lastOpen = t
		case token.RParen:
			paren--
		case token.LBracket:
			bracket++
			lastOpen = t
		case token.RBracket:
			bracket--
		}
		if paren < 0 || bracket < 0 {
			return errAt(diag.SynUnbalanced, t.Span, "'%s' without matching opener", t.Text)
		}
	}
	if paren != 0 || bracket != 0 {
		return errAt(diag.SynUnbalanced, lastOpen.Span, "'%s' is never closed", lastOpen.Text)
	}
	return nil
}

// findParamList returns the index of the '(' opening the parameter list:
// the rightmost group at the shallowest level that is preceded by a name
// which is neither a keyword nor an attribute.
func (p *parser) findParamList() (int, error) {
	best, firstGroup := -1, -1
	for i, t := range p.toks {
		if t.Kind != token.LParen {
			continue
		}
		if firstGroup < 0 {
			firstGroup = i
		}
		if i == 0 || !p.isName(p.toks[i-1]) {
			continue
		}
		if best < 0 || p.depth[i] <= p.depth[best] {
			best = i
		}
	}
	switch {
	case best >= 0:
		return best, nil
	case firstGroup < 0:
		return 0, errAt(diag.SynNoParamList, p.span, "declaration has no parameter list")
	default:
		return 0, errAt(diag.SynNoName, p.toks[firstGroup].Span, "no function name before parameter list")
	}
}

// matching returns the index of the ')' closing the group opened at open.
// measure guarantees it exists.
func (p *parser) matching(open int) int {
	level := p.depth[open]
	for i := open + 1; i < len(p.toks); i++ {
		if p.toks[i].Kind == token.RParen && p.depth[i] == level+1 {
			return i
		}
	}
	return len(p.toks) - 1
}

// suffix returns the end of the tokens that close a nested declarator after
// the parameter list, together with the groups that directly follow it.
func (p *parser) suffix(open, closeAt int) int {
	i := closeAt + 1
	level := p.depth[open]
	if level == 0 {
		return i
	}
	for i < len(p.toks) && level > 0 {
		switch p.toks[i].Kind {
		case token.LParen:
			level++
		case token.RParen:
			level--
		}
		i++
	}
	for i < len(p.toks) && (p.toks[i].Kind == token.LParen || p.toks[i].Kind == token.LBracket) {
		i = skipGroup(p.toks, i)
	}
	return i
}

func (p *parser) isName(t token.Token) bool {
	if !t.IsName() {
		return false
	}
	_, attr := p.attrs[t.Text]
	return !attr
}

// skipGroup returns the index just past the group opened at i.
func skipGroup(toks []token.Token, i int) int {
	level := 0
	for ; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			level++
		case token.RParen, token.RBracket, token.RBrace:
			level--
			if level == 0 {
				return i + 1
			}
		}
	}
	return i
}
