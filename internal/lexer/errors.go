package lexer

import (
	"fmt"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// Error is a fatal lexical error (malformed literal or comment).
// Span.Start is the offset where the offending token began.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code.ID(), e.Span.Start, e.Msg)
}

// Tokenize lexes the whole file eagerly. The returned slice excludes EOF.
// On a lexical error the tokens read so far are returned with the error.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.Invalid {
			return toks, lx.Err()
		}
		toks = append(toks, tok)
	}
	return toks, nil
}
