package lexer

import "stub2hdr/internal/diag"

// ReporterAdapter адаптирует diag.Bag для использования в лексере.
// Повторные сообщения после Reset отбрасываются.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a diag.Reporter that forwards unique diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return diag.NewDedupReporter(&diag.BagReporter{Bag: r.Bag})
}
