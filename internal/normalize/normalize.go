// Package normalize canonicalizes and deduplicates the declarations of one file.
package normalize

import (
	"fmt"
	"strings"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/diag"
	"stub2hdr/internal/token"
)

// Policy decides which occurrence of a duplicated name survives.
type Policy uint8

const (
	// KeepFirst keeps the first occurrence at its position.
	KeepFirst Policy = iota
	// KeepLast keeps the last occurrence at its own position.
	KeepLast
)

func (p Policy) String() string {
	if p == KeepLast {
		return "last"
	}
	return "first"
}

// ParsePolicy maps "first"/"last" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return KeepFirst, nil
	case "last":
		return KeepLast, nil
	default:
		return KeepFirst, fmt.Errorf("unknown duplicate policy %q (want first or last)", s)
	}
}

type Options struct {
	Policy Policy
	// KeepStatic keeps definitions with internal linkage.
	KeepStatic bool
	Reporter   diag.Reporter
}

// Normalizer accumulates the items of one file in source order.
type Normalizer struct {
	opts  Options
	items []decl.Item
	alive []bool
	seen  map[string]int // имя -> индекс живого элемента
}

func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts, seen: make(map[string]int)}
}

// Add canonicalizes it and records it unless it is dropped.
// It reports whether the item is currently kept.
func (n *Normalizer) Add(it decl.Item) bool {
	if it.Kind == decl.ItemDirective {
		n.push(it)
		return true
	}
	if hasStatic(it.Prefix()) && !n.opts.KeepStatic {
		if n.opts.Reporter != nil {
			diag.ReportInfo(n.opts.Reporter, diag.NrmStaticSkipped, it.NameSpan(),
				fmt.Sprintf("static %s skipped: internal linkage", describe(it))).Emit()
		}
		return false
	}
	if it.Kind == decl.ItemSignature {
		sig := *it.Sig
		sig.ReturnType = Specifiers(sig.ReturnType)
		it.Sig = &sig
	}

	name := it.Name()
	if name == "" {
		n.push(it)
		return true
	}
	prev, dup := n.seen[name]
	if !dup {
		n.seen[name] = n.push(it)
		return true
	}

	kept := n.items[prev]
	if n.opts.Policy == KeepLast {
		n.alive[prev] = false
		n.seen[name] = n.push(it)
		n.duplicate(kept, it, "redefinition kept here")
		return true
	}
	n.duplicate(it, kept, "first defined here")
	return false
}

// duplicate warns at the dropped occurrence with a note at the kept one.
func (n *Normalizer) duplicate(dropped, kept decl.Item, note string) {
	if n.opts.Reporter == nil {
		return
	}
	diag.ReportWarning(n.opts.Reporter, diag.NrmDuplicateName, dropped.NameSpan(),
		fmt.Sprintf("duplicate declaration of %q ignored", dropped.Name())).
		WithNote(kept.NameSpan(), note).
		Emit()
}

func (n *Normalizer) push(it decl.Item) int {
	n.items = append(n.items, it)
	n.alive = append(n.alive, true)
	return len(n.items) - 1
}

// Items returns the kept items in output order.
func (n *Normalizer) Items() []decl.Item {
	out := make([]decl.Item, 0, len(n.items))
	for i, it := range n.items {
		if n.alive[i] {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of kept items, directives included.
func (n *Normalizer) Len() int {
	count := 0
	for _, ok := range n.alive {
		if ok {
			count++
		}
	}
	return count
}

func describe(it decl.Item) string {
	if name := it.Name(); name != "" {
		return fmt.Sprintf("function %q", name)
	}
	return "declaration"
}

// hasStatic reports a top-level "static" before any parenthesis.
func hasStatic(toks []token.Token) bool {
	for _, t := range toks {
		switch {
		case t.Kind == token.LParen:
			return false
		case t.Kind == token.Ident && t.Text == "static":
			return true
		}
	}
	return false
}
