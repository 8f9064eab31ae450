// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// CheckTokenSpans verifies that every span belongs to sf, stays inside its
// content and that spans come in ascending, non-overlapping order.
func CheckTokenSpans(sf *source.File, toks []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if err := checkSpan(sp, sf.ID, lenContent); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, tok.Kind, err)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%s) at %v overlaps previous end %d", i, tok.Kind, sp, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckItemSpans verifies that every item points at a non-empty range of sf.
func CheckItemSpans(sf *source.File, items []decl.Item) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	for i, it := range items {
		if it.Span.Empty() {
			return fmt.Errorf("item %d (%s) has empty span", i, it.Kind)
		}
		if err := checkSpan(it.Span, sf.ID, lenContent); err != nil {
			return fmt.Errorf("item %d (%s): %w", i, it.Kind, err)
		}
	}
	return nil
}

func checkSpan(sp source.Span, id source.FileID, lenContent uint32) error {
	if sp.File != id {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, id)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("inverted span %v", sp)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, lenContent)
	}
	return nil
}
