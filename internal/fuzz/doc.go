// Package fuzztests houses Go fuzz harnesses for the extraction pipeline
// (source -> lexer -> scanner -> parser -> normalize -> emit). They guard
// against panics, hangs and broken span bookkeeping on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
