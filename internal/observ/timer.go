// Package observ measures the driver phases of a check run.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured stage of a check.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	done  bool
}

// Timer collects phases in the order they start. It is safe for
// concurrent use; phases may overlap.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	phases []Phase
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Lap is a running phase.
type Lap struct {
	t   *Timer
	idx int
}

// Start opens a phase called name.
func (t *Timer) Start(name string) Lap {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return Lap{t: t, idx: len(t.phases) - 1}
}

// Stop closes the phase with a short note and returns its duration.
// Only the first Stop counts.
func (l Lap) Stop(note string) time.Duration {
	if l.t == nil {
		return 0
	}
	l.t.mu.Lock()
	defer l.t.mu.Unlock()
	p := &l.t.phases[l.idx]
	if !p.done {
		p.Dur = l.t.now().Sub(p.Start)
		p.Note = note
		p.done = true
	}
	return p.Dur
}

// PhaseReport is the serialized form of a finished phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report summarizes the finished phases; TotalMS is their sum.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report skips phases that were never stopped.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		if !p.done {
			continue
		}
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	r.TotalMS = millis(total)
	return r
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// String renders r as an aligned table ending in a total row.
func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-12s %8.3f ms", name, ms)
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}
