package lexer

import (
	"unicode/utf8"

	"stub2hdr/internal/token"
)

// scanIdent читает идентификатор; L"..", u8'..' и т.п. становятся литералами.
// Не-ASCII символ, который не является буквой, превращается в Punct.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= utf8RuneSelf {
			r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
			if !isIdentRune(r) {
				break
			}
			lx.cursor.Off += uint32(size)
			continue
		}
		if lx.cursor.EatSplice() {
			continue
		}
		break
	}

	if lx.cursor.Off == uint32(start) {
		// одиночный байт/руна, не годная для идентификатора
		_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		lx.cursor.Off += uint32(size)
		return lx.emit(token.Punct, start)
	}

	text := string(lx.file.Content[start:lx.cursor.Off])
	if literalPrefix(text) {
		switch lx.cursor.Peek() {
		case '"', '\'':
			return lx.scanQuoted(start, lx.cursor.Peek())
		}
	}
	return lx.emit(token.Ident, start)
}
