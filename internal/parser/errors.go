package parser

import (
	"fmt"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/source"
)

// Error describes why a candidate could not be parsed.
// It only affects that candidate; scanning continues.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code.ID(), e.Span.Start, e.Msg)
}

func errAt(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
