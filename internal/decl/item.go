package decl

import (
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// ItemKind selects which part of an Item is meaningful.
type ItemKind uint8

const (
	// ItemSignature is a declaration re-derived from a definition.
	ItemSignature ItemKind = iota
	// ItemPassthrough is a prototype copied verbatim from the source.
	ItemPassthrough
	// ItemDirective is a top-level conditional preprocessor line.
	ItemDirective
)

func (k ItemKind) String() string {
	switch k {
	case ItemSignature:
		return "signature"
	case ItemPassthrough:
		return "passthrough"
	case ItemDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// Item is one entry of the normalized declaration list.
type Item struct {
	Kind ItemKind
	// Sig is set for ItemSignature and, when the prototype parsed, for ItemPassthrough.
	Sig *Signature
	// Text is the verbatim prototype or directive line.
	Text string
	// Tokens are the significant tokens of a passthrough prototype, terminator excluded.
	Tokens []token.Token
	Span   source.Span
}

// FromSignature wraps a parsed signature.
func FromSignature(sig Signature) Item {
	return Item{Kind: ItemSignature, Sig: &sig, Span: sig.Span}
}

// Name returns the declared name or "" for directives and unparsed prototypes.
func (it Item) Name() string {
	if it.Kind == ItemDirective || it.Sig == nil {
		return ""
	}
	return it.Sig.Name
}

// NameSpan returns the span used to point diagnostics at the item.
func (it Item) NameSpan() source.Span {
	if it.Sig != nil && !it.Sig.NameSpan.Empty() {
		return it.Sig.NameSpan
	}
	return it.Span
}

// Prefix returns the tokens that may carry storage-class specifiers.
func (it Item) Prefix() []token.Token {
	if it.Sig != nil {
		return it.Sig.ReturnType
	}
	return it.Tokens
}
