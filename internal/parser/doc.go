// Package parser turns a scanned candidate into a function signature.
//
// Declarators are kept as flat token runs: the parser only locates the
// function name, the parameter list and the slots inside it. Nested
// function-pointer declarators stay opaque.
package parser
