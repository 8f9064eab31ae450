package lexer

import "stub2hdr/internal/token"

// scanNumber читает pp-number: цифры, буквы, '_', '.', а также знак после e/E/p/P.
// Значение не проверяется: в заголовок число попадает только как текст.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case (b == '+' || b == '-') && isExpMarker(lx.file.Content[lx.cursor.Off-1]):
			lx.cursor.Bump()
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
		case b == '\'' && isIdentContinueByte(lx.cursor.PeekAt(1)):
			// разделитель разрядов C23: 1'000'000
			lx.cursor.Bump()
		case lx.cursor.EatSplice():
		default:
			return lx.emit(token.Number, start)
		}
	}
	return lx.emit(token.Number, start)
}

func isExpMarker(b byte) bool {
	switch b {
	case 'e', 'E', 'p', 'P':
		return true
	}
	return false
}
