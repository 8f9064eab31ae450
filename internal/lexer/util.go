package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

// isIdentRune: не-ASCII буквы допускаются в идентификаторах (расширение GCC/Clang).
func isIdentRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// literalPrefix reports whether an identifier may prefix a string or char literal.
func literalPrefix(s string) bool {
	switch s {
	case "L", "u", "U", "u8":
		return true
	}
	return false
}
