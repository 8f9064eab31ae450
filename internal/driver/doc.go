// Package driver wires the extraction pipeline to files on disk.
//
// Generate runs one stub through lexer, scanner, parser, normalizer and
// emitter. GenerateAll fans a batch out over a bounded errgroup, consults
// the header cache and writes or checks the resulting headers.
package driver
