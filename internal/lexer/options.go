package lexer

import (
	"stub2hdr/internal/diag"
	"stub2hdr/internal/source"
)

// maxTokenLength bounds a single token; beyond it the file is treated as garbage.
const maxTokenLength = 1 << 20

type Options struct {
	// Reporter может быть nil, тогда ошибки только запоминаются в Err().
	Reporter diag.Reporter
	// MaxTokenLength overrides maxTokenLength when positive.
	MaxTokenLength int
}

func (o Options) tokenLimit() uint32 {
	if o.MaxTokenLength > 0 {
		return uint32(o.MaxTokenLength)
	}
	return maxTokenLength
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.err == nil {
		lx.err = &Error{Code: code, Span: sp, Msg: msg}
	}
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
