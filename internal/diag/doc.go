// Package diag defines the diagnostic model shared by every stage of the
// stub-to-header pipeline.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, scanner, declarator parser, normalizer and driver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does not format or print anything. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error (severity.go).
//   - Code – numeric identifier with a stable string form (codes.go). The
//     hundreds digit groups codes by stage: LEX, SCN, SYN, NRM, IO, PRJ.
//   - Message – short, actionable text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans, e.g. "first defined here" for a
//     duplicate function name.
//
// # Severity and recovery
//
// Severity alone does not decide recovery. Lexer and scanner errors make the
// whole file untrustworthy and the driver drops its header; parser errors only
// drop one declaration. Duplicate names are warnings.
package diag
