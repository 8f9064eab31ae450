package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimer_Report(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("scan")
	tm.End(idx, "12 candidates")
	tm.Add("parse", 3*time.Millisecond)
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "scan" || r.Phases[1].DurationMS != 3 {
		t.Fatalf("report = %+v", r)
	}
	if r.TotalMS < 3 {
		t.Fatalf("total = %v", r.TotalMS)
	}
	s := tm.Summary()
	if !strings.Contains(s, "// 12 candidates") || !strings.Contains(s, "total") {
		t.Fatalf("summary = %q", s)
	}
}

func TestTimer_EmptyReport(t *testing.T) {
	var tm *Timer
	if r := tm.Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("nil timer report = %+v", r)
	}
}

func TestAggregate_Merge(t *testing.T) {
	var agg Aggregate
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm := NewTimer()
			tm.Add("scan", 2*time.Millisecond)
			tm.Add("emit", time.Millisecond)
			agg.Merge(tm.Report())
		}()
	}
	wg.Wait()

	r := agg.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "scan" || r.Phases[1].Name != "emit" {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].DurationMS != 16 || r.TotalMS != 24 {
		t.Fatalf("sums = %+v total %v", r.Phases, r.TotalMS)
	}
	if r.Phases[0].Note != "8 files" {
		t.Fatalf("note = %q", r.Phases[0].Note)
	}
}
