package decl

import (
	"strings"

	"stub2hdr/internal/token"
)

// Render joins tokens with canonical spacing:
// single blanks, none before , ; ) ] [ and none after ( [ *, none between ) and (.
func Render(toks []token.Token) string {
	var sb strings.Builder
	prev := ""
	for i, t := range toks {
		if i > 0 && NeedSpace(prev, t.Text) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
		prev = t.Text
	}
	return sb.String()
}

// RenderSource joins tokens as they were written: a single blank where the
// source had whitespace or trivia between them, nothing otherwise.
// Tokens must come from one file in source order.
func RenderSource(toks []token.Token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && t.Span.Start > toks[i-1].Span.End {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// NeedSpace reports whether a blank separates two adjacent token texts.
func NeedSpace(prev, next string) bool {
	switch next {
	case ",", ";", ")", "]", "[":
		return false
	}
	switch prev {
	case "(", "[", "*":
		return false
	case ")":
		return next != "("
	}
	return true
}

// Join appends next to s, inserting a blank when the rules ask for one.
func Join(s, next string) string {
	if s == "" || next == "" {
		return s + next
	}
	if NeedSpace(lastToken(s), firstToken(next)) {
		return s + " " + next
	}
	return s + next
}

// lastToken и firstToken приближённо выделяют крайний токен отрендеренной строки;
// достаточно для правил NeedSpace, где важны только скобки и звёздочка.
func lastToken(s string) string {
	switch c := s[len(s)-1]; c {
	case '(', ')', '[', ']', '*', ',', ';':
		return string(c)
	}
	return s
}

func firstToken(s string) string {
	switch c := s[0]; c {
	case '(', ')', '[', ']', '*', ',', ';':
		return string(c)
	}
	return s
}
