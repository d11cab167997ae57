// Package observ records wall-clock durations of analysis passes.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of one pass.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the passes of one file. It is not safe for concurrent use;
// give every goroutine its own timer and Merge the results.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Track starts phase name and returns the function that ends it.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	idx := len(t.phases) - 1
	return func(note string) {
		p := &t.phases[idx]
		p.Dur = time.Since(p.Start)
		p.Note = note
	}
}

// Phases returns the recorded phases in start order. Read-only.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	return t.phases
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
	Count      int     `json:"count"`
}

// Report aggregates phases by name.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Merge sums the phases of every timer by name, in first-seen order. Notes
// are kept only for phases recorded once.
func Merge(timers ...*Timer) Report {
	var report Report
	index := make(map[string]int)
	var total time.Duration
	for _, t := range timers {
		for _, p := range t.Phases() {
			total += p.Dur
			i, ok := index[p.Name]
			if !ok {
				index[p.Name] = len(report.Phases)
				report.Phases = append(report.Phases, PhaseReport{Name: p.Name, Note: p.Note})
				i = len(report.Phases) - 1
			} else {
				report.Phases[i].Note = ""
			}
			report.Phases[i].DurationMS += durationToMillis(p.Dur)
			report.Phases[i].Count++
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary renders the report as an aligned table.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-12s %9.2f ms  x%d", p.Name, p.DurationMS, p.Count)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %9.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
