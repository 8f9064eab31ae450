package lexer

import (
	"stub2hdr/internal/diag"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// Depth holds the nesting counters maintained while tokens are produced.
// A negative counter means a closing delimiter arrived without its opener.
type Depth struct {
	Paren   int
	Brace   int
	Bracket int
}

// TopLevel reports whether no group of any kind is open.
func (d Depth) TopLevel() bool {
	return d.Paren == 0 && d.Brace == 0 && d.Bracket == 0
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	depth  Depth
	bol    bool // с начала логической строки были только пробелы
	err    *Error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		bol:    true,
	}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Depth returns the nesting counters after the last token returned by Next.
func (lx *Lexer) Depth() Depth { return lx.depth }

// Err returns the first lexical error seen, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

// Reset rewinds the lexer to the start of the file.
// Counters and the recorded error are cleared.
func (lx *Lexer) Reset() {
	lx.cursor = NewCursor(lx.file)
	lx.depth = Depth{}
	lx.bol = true
	lx.err = nil
}

// Next возвращает следующий токен: значимый либо trivia (комментарий, строка препроцессора).
// Пробелы пропускаются. После EOF всегда возвращает EOF.
// После ошибки лексер не восстанавливается: следующий вызов вернёт EOF.
func (lx *Lexer) Next() token.Token {
	if lx.err != nil {
		lx.cursor.SkipToEnd()
	}
	lx.skipSpace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '#' && lx.bol:
		tok = lx.scanPreproc()

	case ch == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
		tok = lx.scanComment()

	case ch == '"':
		tok = lx.scanQuoted(lx.cursor.Mark(), '"')

	case ch == '\'':
		tok = lx.scanQuoted(lx.cursor.Mark(), '\'')

	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		tok = lx.scanNumber()

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdent()

	default:
		tok = lx.scanPunct()
	}

	if tok.Kind != token.BlockComment {
		// /* ... */ перед '#' не мешает директиве
		lx.bol = false
	}
	if tok.Kind != token.Invalid && tok.Span.Len() > lx.opts.tokenLimit() {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds maximum length")
		tok.Kind = token.Invalid
	}
	lx.track(tok.Kind)
	return tok
}

// track обновляет счётчики вложенности.
func (lx *Lexer) track(k token.Kind) {
	switch k {
	case token.LParen:
		lx.depth.Paren++
	case token.RParen:
		lx.depth.Paren--
	case token.LBrace:
		lx.depth.Brace++
	case token.RBrace:
		lx.depth.Brace--
	case token.LBracket:
		lx.depth.Bracket++
	case token.RBracket:
		lx.depth.Bracket--
	}
}

// skipSpace съедает пробелы, переводы строк и склейки строк ("\\\n").
func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\n':
			lx.cursor.Bump()
			lx.bol = true
		case ' ', '\t', '\r', '\v', '\f':
			lx.cursor.Bump()
		case '\\':
			if !lx.cursor.EatSplice() {
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
