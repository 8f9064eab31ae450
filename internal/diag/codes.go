package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1001
	LexUnterminatedChar         Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexTokenTooLong             Code = 1004

	// Поиск определений
	ScanInfo            Code = 2000
	ScanUnbalancedClose Code = 2001
	ScanUnclosedParen   Code = 2002
	ScanUnclosedBrace   Code = 2003
	ScanUnclosedBracket Code = 2004
	ScanDanglingDecl    Code = 2005
	ScanOldStyleDef     Code = 2006
	ScanCondInDecl      Code = 2007

	// Разбор деклараторов
	SynInfo               Code = 3000
	SynNoParamList        Code = 3001
	SynNoName             Code = 3002
	SynNoReturnType       Code = 3003
	SynEmptyParam         Code = 3004
	SynVariadicMustBeLast Code = 3005
	SynBadVariadic        Code = 3006
	SynUnbalanced         Code = 3007

	// Нормализация
	NrmInfo          Code = 4000
	NrmDuplicateName Code = 4001
	NrmStaticSkipped Code = 4002

	// Ввод-вывод
	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
	IOWriteError    Code = 5002
	IOStaleHeader   Code = 5003
	IOCacheError    Code = 5004

	// Конфигурация
	ProjInfo          Code = 6000
	ProjInvalidConfig Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexTokenTooLong:             "Token too long",

	ScanInfo:            "Scanner information",
	ScanUnbalancedClose: "Closing delimiter without opener",
	ScanUnclosedParen:   "Unclosed parenthesis",
	ScanUnclosedBrace:   "Unclosed brace",
	ScanUnclosedBracket: "Unclosed bracket",
	ScanDanglingDecl:    "Declaration not terminated before end of file",
	ScanOldStyleDef:     "Old-style (K&R) definition not supported",
	ScanCondInDecl:      "Conditional directive inside a declaration",

	SynInfo:               "Declarator information",
	SynNoParamList:        "No parameter list found",
	SynNoName:             "No function name before parameter list",
	SynNoReturnType:       "Missing return type",
	SynEmptyParam:         "Empty parameter declaration",
	SynVariadicMustBeLast: "Variadic parameter must be last",
	SynBadVariadic:        "Malformed variadic parameter",
	SynUnbalanced:         "Unbalanced parentheses in declarator",

	NrmInfo:          "Normalizer information",
	NrmDuplicateName: "Duplicate function name",
	NrmStaticSkipped: "Static definition skipped",

	IOInfo:          "I/O information",
	IOLoadFileError: "Failed to load file",
	IOWriteError:    "Failed to write header",
	IOStaleHeader:   "Header out of date",
	IOCacheError:    "Header cache failure",

	ProjInfo:          "Project information",
	ProjInvalidConfig: "Invalid configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("NRM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
