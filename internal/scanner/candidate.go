package scanner

import (
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// Kind classifies a candidate span.
type Kind uint8

const (
	// Definition is a declarator followed by a balanced body.
	Definition Kind = iota
	// Prototype is a declarator with a parameter list terminated by ';'.
	Prototype
	// Directive is a top-level preprocessor line outside any declarator.
	Directive
)

func (k Kind) String() string {
	switch k {
	case Definition:
		return "definition"
	case Prototype:
		return "prototype"
	case Directive:
		return "directive"
	default:
		return "unknown"
	}
}

// Candidate is one top-level span the parser may turn into a declaration.
type Candidate struct {
	Kind Kind
	// Span runs from the first declarator token to the closing '}' or ';'.
	Span source.Span
	// Raw holds declarator tokens with comments and preprocessor lines,
	// terminator excluded.
	Raw []token.Token
	// Tokens is Raw without trivia.
	Tokens []token.Token
	// Term is the '{' of a definition, the ';' of a prototype or the directive itself.
	Term token.Token
	// Body spans the braces of a definition.
	Body source.Span
}

// Text returns the candidate's source text with comments and preprocessor
// lines removed. Whitespace between significant tokens is kept as written.
// For definitions the body is left out.
func (c *Candidate) Text(f *source.File) string {
	if c.Kind == Directive {
		return c.Term.Text
	}
	var out []byte
	var prev *token.Token
	skipped := false
	for i := range c.Raw {
		t := &c.Raw[i]
		if t.IsTrivia() {
			skipped = true
			continue
		}
		if prev != nil {
			out = appendGap(out, f, prev.Span.End, t.Span.Start, skipped)
		}
		out = append(out, t.Text...)
		prev, skipped = t, false
	}
	if c.Kind == Prototype {
		if prev != nil {
			out = appendGap(out, f, prev.Span.End, c.Term.Span.Start, skipped)
		}
		out = append(out, c.Term.Text...)
	}
	return string(out)
}

// appendGap copies blanks between two tokens; a gap that held trivia becomes one space.
func appendGap(out []byte, f *source.File, from, to uint32, hadTrivia bool) []byte {
	if hadTrivia {
		return append(out, ' ')
	}
	return append(out, f.Slice(source.Span{File: f.ID, Start: from, End: to})...)
}
