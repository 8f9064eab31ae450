package lexer

import "stub2hdr/internal/token"

var punct3 = [...]string{"...", "<<=", ">>="}

var punct2 = [...]string{
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "##", "::",
}

var punct1 = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semi,
	'*': token.Star,
	'&': token.Amp,
	'=': token.Assign,
}

// scanPunct читает оператор, предпочитая самое длинное совпадение.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.file.Content[lx.cursor.Off:]

	for _, p := range punct3 {
		if hasPrefix(rest, p) {
			lx.cursor.Off += 3
			if p == "..." {
				return lx.emit(token.Ellipsis, start)
			}
			return lx.emit(token.Punct, start)
		}
	}
	for _, p := range punct2 {
		if hasPrefix(rest, p) {
			lx.cursor.Off += 2
			return lx.emit(token.Punct, start)
		}
	}

	b := lx.cursor.Bump()
	if k, ok := punct1[b]; ok {
		return lx.emit(k, start)
	}
	return lx.emit(token.Punct, start)
}

func hasPrefix(b []byte, p string) bool {
	return len(b) >= len(p) && string(b[:len(p)]) == p
}
