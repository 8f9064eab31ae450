package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase records the duration and metadata of a pipeline phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the phases of one file. It is not safe for concurrent use;
// batches fold per-file reports into an Aggregate.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Add records a phase measured elsewhere, e.g. time summed over many calls.
func (t *Timer) Add(name string, d time.Duration) {
	t.phases = append(t.phases, Phase{Name: name, Dur: d})
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	return t.Report().Summary()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary renders the report as an aligned table.
func (r Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

// Aggregate sums phase durations across files. Safe for concurrent use.
// Phases keep the order in which their names were first seen.
type Aggregate struct {
	mu    sync.Mutex
	order []string
	sums  map[string]float64
	files int
}

// Merge folds one file's report into the aggregate.
func (a *Aggregate) Merge(r Report) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sums == nil {
		a.sums = make(map[string]float64)
	}
	for _, p := range r.Phases {
		if _, ok := a.sums[p.Name]; !ok {
			a.order = append(a.order, p.Name)
		}
		a.sums[p.Name] += p.DurationMS
	}
	a.files++
}

// Report returns the summed phases; the note of each phase counts files.
func (a *Aggregate) Report() Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := Report{Phases: make([]PhaseReport, 0, len(a.order))}
	for _, name := range a.order {
		ms := a.sums[name]
		out.Phases = append(out.Phases, PhaseReport{
			Name:       name,
			DurationMS: ms,
			Note:       fmt.Sprintf("%d files", a.files),
		})
		out.TotalMS += ms
	}
	return out
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
