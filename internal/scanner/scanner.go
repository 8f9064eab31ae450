package scanner

import (
	"fmt"
	"strings"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/lexer"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

type Options struct {
	// Directives surfaces top-level #if/#ifdef/#ifndef/#elif/#else/#endif lines.
	Directives bool
	// Includes surfaces top-level #include lines.
	Includes bool
	Reporter diag.Reporter
}

// Scanner finds candidate declarations in a token stream in one pass.
// It follows the bufio.Scanner pattern: call Next until it reports false,
// then check Err.
type Scanner struct {
	lx    *lexer.Lexer
	opts  Options
	depth lexer.Depth // счётчики до текущего токена
	// base is the brace depth treated as top level; extern "C" { raises it.
	base  int
	links []source.Span // открытые extern "C" {
	old   *oldStyle
	err   error
	done  bool
}

// oldStyle remembers the head of "int f(a, b) int a; char *b; {" while its
// parameter declarations are read.
type oldStyle struct {
	name  token.Token
	start source.Span
}

func New(lx *lexer.Lexer, opts Options) *Scanner {
	return &Scanner{lx: lx, opts: opts}
}

// Err returns the error that stopped scanning, if any.
func (s *Scanner) Err() error { return s.err }

// tag tracks whether a struct/union/enum head is being read, so that
// "struct __attribute__((packed)) S {" is not mistaken for a definition.
type tagState uint8

const (
	tagNone   tagState = iota
	tagKw              // struct
	tagName            // struct S, struct __attribute__
	tagGroup           // struct __attribute__(...)
)

// declState is the declarator being buffered at top level.
type declState struct {
	raw     []token.Token
	sig     int  // significant tokens in raw
	groups  int  // top-level paren groups
	assign  bool // top-level '='
	typedef bool
	knr     bool // type keyword after the last top-level group: K&R style
	discard bool // skipping to the next top-level ';'
	tag     tagState
}

func (st *declState) empty() bool { return st.sig == 0 }

func (st *declState) push(tok token.Token) {
	st.raw = append(st.raw, tok)
	if !tok.IsTrivia() {
		st.sig++
	}
}

// observe updates declarator flags for a top-level significant token.
func (st *declState) observe(tok token.Token) {
	class, isKw := token.ClassNone, false
	if tok.Kind == token.Ident {
		class, isKw = token.LookupKeyword(tok.Text)
	}
	switch {
	case tok.Kind == token.LParen:
		st.groups++
		// "__attribute__((x)) int f(...)": тип перед следующей группой не K&R
		st.knr = false
	case tok.Kind == token.Assign:
		st.assign = true
	case isKw && tok.Text == "typedef":
		st.typedef = true
	case isKw && st.groups > 0 && (class == token.ClassType || class == token.ClassTag || tok.Text == "register"):
		st.knr = true
	}

	switch {
	case isKw && class == token.ClassTag:
		st.tag = tagKw
	case tok.Kind == token.Ident && !isKw && (st.tag == tagKw || st.tag == tagGroup):
		st.tag = tagName
	case tok.Kind == token.LParen && st.tag == tagName:
		st.tag = tagGroup
	default:
		st.tag = tagNone
	}
}

// linkage reports whether the declarator is exactly extern "C" (or any string).
func (st *declState) linkage() bool {
	sig := token.Strip(st.raw)
	return len(sig) == 2 && sig[0].Text == "extern" && sig[1].Kind == token.String
}

func (st *declState) function() bool {
	return st.groups > 0 && !st.assign && !st.typedef && !st.knr
}

func (s *Scanner) topLevel(d lexer.Depth) bool {
	return d.Paren == 0 && d.Bracket == 0 && d.Brace == s.base
}

// Next returns the next candidate, or false at EOF or on error.
func (s *Scanner) Next() (Candidate, bool) {
	if s.done {
		return Candidate{}, false
	}
	var st declState
	for {
		tok, ok := s.next()
		if !ok {
			return Candidate{}, false
		}
		if tok.Kind == token.EOF {
			s.finish(&st, tok)
			return Candidate{}, false
		}
		before := s.depth
		s.depth = s.lx.Depth()

		if !s.topLevel(before) {
			// внутри скобок декларатора: буферизуем не разбирая
			if !st.discard {
				st.push(tok)
			}
			continue
		}

		if tok.IsTrivia() {
			if st.empty() && !st.discard && tok.Kind == token.Preproc && s.wantDirective(tok.Text) {
				return Candidate{Kind: Directive, Span: tok.Span, Term: tok}, true
			}
			if !st.empty() {
				st.push(tok)
			}
			continue
		}

		switch tok.Kind {
		case token.Semi:
			if !st.discard && st.function() {
				s.old = nil
				return s.candidate(Prototype, &st, tok, source.Span{}), true
			}
			s.trackOldStyle(&st)
			st = declState{}

		case token.LBrace:
			old := s.old
			s.old = nil
			switch {
			case st.discard || st.empty():
				if old != nil && !st.discard {
					s.reportOldStyle(old, tok)
				}
				if !s.skipBlock(tok) {
					return Candidate{}, false
				}
			case st.linkage():
				s.base++
				s.links = append(s.links, tok.Span)
				st = declState{}
			case st.function() && st.tag == tagNone:
				body, ok := s.consumeBody(tok)
				if !ok {
					return Candidate{}, false
				}
				return s.candidate(Definition, &st, tok, body), true
			default:
				// struct/enum/инициализатор: пропускаем до ';'
				if !s.skipBlock(tok) {
					return Candidate{}, false
				}
				st = declState{discard: true}
			}

		case token.RBrace:
			// закрывает extern "C" {
			s.old = nil
			s.base--
			s.links = s.links[:len(s.links)-1]
			if !st.empty() {
				s.dangling(&st)
			}
			st = declState{}

		default:
			if st.discard {
				continue
			}
			if tok.Kind == token.LParen {
				s.old = nil
			}
			st.push(tok)
			st.observe(tok)
		}
	}
}

// next reads one token and checks it for lexical and balance errors.
func (s *Scanner) next() (token.Token, bool) {
	tok := s.lx.Next()
	if tok.Kind == token.Invalid {
		s.err = s.lx.Err()
		s.done = true
		return tok, false
	}
	d := s.lx.Depth()
	if d.Paren < 0 || d.Bracket < 0 || d.Brace < 0 {
		s.fail(diag.ScanUnbalancedClose, tok.Span, "'"+tok.Text+"' without matching opener")
		return tok, false
	}
	return tok, true
}

// consumeBody reads a definition body up to its closing brace.
func (s *Scanner) consumeBody(open token.Token) (source.Span, bool) {
	end, ok := s.skipTo(open, s.depth.Brace-1)
	if !ok {
		return source.Span{}, false
	}
	return open.Span.Cover(end), true
}

// skipBlock drops a brace block that is not a function body.
func (s *Scanner) skipBlock(open token.Token) bool {
	_, ok := s.skipTo(open, s.depth.Brace-1)
	return ok
}

// skipTo reads tokens until the brace depth falls back to level
// and returns the span of the closing brace.
func (s *Scanner) skipTo(open token.Token, level int) (source.Span, bool) {
	for {
		tok, ok := s.next()
		if !ok {
			return source.Span{}, false
		}
		if tok.Kind == token.EOF {
			s.fail(diag.ScanUnclosedBrace, open.Span, "'{' is never closed")
			return source.Span{}, false
		}
		s.depth = s.lx.Depth()
		if tok.Kind != token.RBrace || s.depth.Brace != level {
			continue
		}
		switch {
		case s.depth.Paren > 0:
			s.fail(diag.ScanUnclosedParen, open.Span, "unclosed '(' inside braces")
			return source.Span{}, false
		case s.depth.Bracket > 0:
			s.fail(diag.ScanUnclosedBracket, open.Span, "unclosed '[' inside braces")
			return source.Span{}, false
		}
		return tok.Span, true
	}
}

func (s *Scanner) candidate(kind Kind, st *declState, term token.Token, body source.Span) Candidate {
	c := Candidate{
		Kind:   kind,
		Raw:    st.raw,
		Tokens: token.Strip(st.raw),
		Term:   term,
		Body:   body,
	}
	c.Span = c.Tokens[0].Span.Cover(term.Span)
	if kind == Definition {
		c.Span = c.Span.Cover(body)
	}
	s.checkConditionals(c.Raw)
	return c
}

// checkConditionals warns about #if/#else inside a declarator: directives are
// stripped, so every branch ends up in the same declaration.
func (s *Scanner) checkConditionals(raw []token.Token) {
	if s.opts.Reporter == nil {
		return
	}
	for _, tok := range raw {
		if tok.Kind != token.Preproc || !isConditional(DirectiveName(tok.Text)) {
			continue
		}
		diag.ReportWarning(s.opts.Reporter, diag.ScanCondInDecl, tok.Span,
			"conditional directive inside a declaration is ignored; all branches are merged").Emit()
		return
	}
}

func isConditional(name string) bool {
	switch name {
	case "if", "ifdef", "ifndef", "elif", "elifdef", "elifndef", "else", "endif":
		return true
	}
	return false
}

// trackOldStyle runs at a top-level ';' that did not end a prototype.
// It starts, continues or forgets an old-style parameter declaration list.
func (s *Scanner) trackOldStyle(st *declState) {
	switch {
	case st.discard || st.empty() || st.assign || st.typedef:
		s.old = nil
	case s.old != nil && st.groups == 0:
		// ещё одно объявление параметра
	case st.knr:
		s.old = nil
		sig := token.Strip(st.raw)
		if name, ok := oldStyleHead(sig); ok {
			s.old = &oldStyle{name: name, start: sig[0].Span}
		}
	default:
		s.old = nil
	}
}

func (s *Scanner) reportOldStyle(old *oldStyle, open token.Token) {
	if s.opts.Reporter == nil {
		return
	}
	diag.ReportWarning(s.opts.Reporter, diag.ScanOldStyleDef, old.start.Cover(open.Span),
		fmt.Sprintf("old-style definition of %q is not supported; skipped", old.name.Text)).
		WithNote(old.name.Span, "declare the parameter types inside the parentheses").
		Emit()
}

// oldStyleHead reports whether sig starts like "int f(a, b) int a": a name,
// a group holding only an identifier list, then a type keyword.
func oldStyleHead(sig []token.Token) (token.Token, bool) {
	for i := 1; i < len(sig); i++ {
		if sig[i].Kind != token.LParen || !plainName(sig[i-1]) {
			continue
		}
		j, idents := i+1, 0
		for j < len(sig) && (sig[j].Kind == token.Comma || plainName(sig[j])) {
			if sig[j].Kind != token.Comma {
				idents++
			}
			j++
		}
		if idents == 0 || j+1 >= len(sig) || sig[j].Kind != token.RParen {
			continue
		}
		next := sig[j+1]
		if class, kw := token.LookupKeyword(next.Text); next.Kind == token.Ident && kw &&
			(class == token.ClassType || class == token.ClassTag || next.Text == "register") {
			return sig[i-1], true
		}
	}
	return token.Token{}, false
}

func plainName(t token.Token) bool {
	if t.Kind != token.Ident {
		return false
	}
	_, kw := token.LookupKeyword(t.Text)
	return !kw
}

// finish checks the state left at EOF.
func (s *Scanner) finish(st *declState, eof token.Token) {
	s.done = true
	start := eof.Span
	if !st.empty() {
		start = token.Strip(st.raw)[0].Span
	}
	d := s.lx.Depth()
	switch {
	case d.Paren > 0:
		s.fail(diag.ScanUnclosedParen, start, "'(' is never closed")
	case d.Bracket > 0:
		s.fail(diag.ScanUnclosedBracket, start, "'[' is never closed")
	case len(s.links) > 0:
		s.fail(diag.ScanUnclosedBrace, s.links[len(s.links)-1], "linkage block is never closed")
	case !st.empty() && !st.discard:
		s.dangling(st)
	}
}

// dangling reports a declarator cut off without ';' or body. Not fatal.
func (s *Scanner) dangling(st *declState) {
	if s.opts.Reporter == nil {
		return
	}
	toks := token.Strip(st.raw)
	sp := toks[0].Span.Cover(toks[len(toks)-1].Span)
	diag.ReportWarning(s.opts.Reporter, diag.ScanDanglingDecl, sp, "declaration is not terminated; ignored").Emit()
}

func (s *Scanner) fail(code diag.Code, sp source.Span, msg string) {
	s.done = true
	s.err = &Error{Code: code, Span: sp, Msg: msg}
	if s.opts.Reporter != nil {
		diag.ReportError(s.opts.Reporter, code, sp, msg).Emit()
	}
}

// wantDirective decides whether a top-level preprocessor line is surfaced.
func (s *Scanner) wantDirective(text string) bool {
	switch DirectiveName(text) {
	case "if", "ifdef", "ifndef", "elif", "elifdef", "elifndef", "else", "endif":
		return s.opts.Directives
	case "include", "include_next", "import":
		return s.opts.Includes
	}
	return false
}

// DirectiveName returns the word after '#' ("ifdef" for "#  ifdef X").
func DirectiveName(text string) string {
	rest := strings.TrimLeft(strings.TrimPrefix(text, "#"), " \t")
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	if end < 0 {
		return rest
	}
	return rest[:end]
}
