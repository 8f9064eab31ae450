package scanner

import (
	"fmt"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/source"
)

// Error is a structural failure: unbalanced delimiters or EOF inside a group.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code.ID(), e.Span.Start, e.Msg)
}
