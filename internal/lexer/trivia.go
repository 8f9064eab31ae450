package lexer

import (
	"stub2hdr/internal/diag"
	"stub2hdr/internal/token"
)

// scanComment читает // или /* */ комментарий. Блочные комментарии в C не вкладываются.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Bump() == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			if lx.cursor.EatSplice() {
				continue
			}
			lx.cursor.Bump()
		}
		return lx.emit(token.LineComment, start)
	}
	if lx.skipBlockBody() {
		return lx.emit(token.BlockComment, start)
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	return lx.invalid(start)
}

// skipBlockBody съедает тело блочного комментария после "/*" вместе с "*/".
func (lx *Lexer) skipBlockBody() bool {
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '*' && lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			return true
		}
	}
	return false
}

// scanPreproc читает логическую строку препроцессора целиком: до перевода строки
// без склейки. Блочные комментарии и строки внутри директивы могут содержать
// переводы строк и не обрывают её.
func (lx *Lexer) scanPreproc() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '\n':
			return lx.emit(token.Preproc, start)
		case lx.cursor.EatSplice():
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			at := lx.cursor.Mark()
			lx.cursor.Off += 2
			if !lx.skipBlockBody() {
				lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(at), "unterminated block comment")
				return lx.invalid(start)
			}
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				if !lx.cursor.EatSplice() {
					lx.cursor.Bump()
				}
			}
		case b == '"' || b == '\'':
			// незакрытая кавычка в директиве (#error don't) допустима и тянется до конца строки
			lx.skipPreprocQuote(b)
		default:
			lx.cursor.Bump()
		}
	}
	return lx.emit(token.Preproc, start)
}

func (lx *Lexer) skipPreprocQuote(quote byte) {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\n':
			return
		case quote:
			lx.cursor.Bump()
			return
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
}
