// Package token defines lexical token kinds for C stub sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Whitespace never reaches the token stream; comments and preprocessor
//     lines do, as opaque trivia tokens (see Token.IsTrivia).
//   - C keywords are identifiers. Their role (type specifier, qualifier,
//     storage class...) is reported by LookupKeyword, not by Kind.
//   - "..." is a single Ellipsis token.
package token
