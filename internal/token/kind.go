package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unterminated literal or comment).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier or keyword.
	Ident
	// Number is a preprocessing number (12, 0x1f, 1.5e+3, .5f).
	Number
	// String is a string literal, prefix included (L"x", u8"x").
	String
	// Char is a character literal ('a', '\n', L'x').
	Char

	// LineComment is a // comment up to (not including) the newline.
	LineComment
	// BlockComment is a /* ... */ comment.
	BlockComment
	// Preproc is a whole logical preprocessor line, continuations included.
	Preproc

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Comma    // ,
	Semi     // ;
	Star     // *
	Amp      // &
	Assign   // =
	Ellipsis // ...
	// Punct is any other operator or punctuation (->, ::, +, #, @ ...).
	Punct
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	Number:       "Number",
	String:       "String",
	Char:         "Char",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	Preproc:      "Preproc",
	LParen:       "LParen",
	RParen:       "RParen",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Comma:        "Comma",
	Semi:         "Semi",
	Star:         "Star",
	Amp:          "Amp",
	Assign:       "Assign",
	Ellipsis:     "Ellipsis",
	Punct:        "Punct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
