package lexer

import (
	"stub2hdr/internal/diag"
	"stub2hdr/internal/token"
)

// scanQuoted читает строковый или символьный литерал с открывающей кавычки под курсором.
// start может указывать раньше кавычки, если у литерала есть префикс.
// Перевод строки без склейки или EOF внутри литерала считаются ошибкой.
func (lx *Lexer) scanQuoted(start Mark, quote byte) token.Token {
	kind, code, what := token.String, diag.LexUnterminatedString, "unterminated string literal"
	if quote == '\'' {
		kind, code, what = token.Char, diag.LexUnterminatedChar, "unterminated character literal"
	}

	lx.cursor.Bump() // открывающая кавычка
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(code, sp, what)
			return lx.invalid(start)
		}
		b := lx.cursor.Bump()
		switch b {
		case quote:
			return lx.emit(kind, start)
		case '\\':
			// экранированный символ, в том числе склейка строки
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		}
	}
}

func (lx *Lexer) invalid(start Mark) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.cursor.SkipToEnd()
	return tok
}
