// Package decl holds the declaration model shared by the parser, the
// normalizer and the emitter: parsed signatures, passthrough prototypes and
// conditional directives, plus the canonical token renderer.
package decl
