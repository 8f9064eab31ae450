package token

import (
	"stub2hdr/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsTrivia reports whether the token is a comment or a preprocessor line.
// Trivia is kept in the stream for pass-through but never matched on.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case LineComment, BlockComment, Preproc:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether the token is a numeric, string or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, Char:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier (keywords included).
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a C keyword.
func (t Token) IsKeyword() bool {
	if t.Kind != Ident {
		return false
	}
	_, ok := LookupKeyword(t.Text)
	return ok
}

// IsName reports whether the token can name a function, parameter or tag:
// an identifier that is not a keyword.
func (t Token) IsName() bool {
	return t.Kind == Ident && !t.IsKeyword()
}

// Strip returns the tokens without trivia. The input is not modified.
func Strip(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if !t.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}
