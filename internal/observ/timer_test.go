package observ

import (
	"testing"
	"time"
)

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = stepClock(time.Millisecond)

	load := tm.Start("load")
	if d := load.Stop("3 bodies"); d != time.Millisecond {
		t.Fatalf("load took %v", d)
	}
	load.Stop("ignored")
	check := tm.Start("check")
	report := tm.Start("report")
	check.Stop("")
	_ = report

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("got %d phases, want the two stopped ones", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[0].Note != "3 bodies" {
		t.Errorf("phase 0 = %+v", r.Phases[0])
	}
	// check started at tick 3 and stopped at tick 5
	if r.Phases[1].DurationMS != 2 {
		t.Errorf("check took %.3f ms, want 2", r.Phases[1].DurationMS)
	}
	if r.TotalMS != 3 {
		t.Errorf("total = %.3f, want 3", r.TotalMS)
	}
}

func TestZeroLap(t *testing.T) {
	var l Lap
	if l.Stop("x") != 0 {
		t.Fatalf("zero lap measured time")
	}
}

func TestReportString(t *testing.T) {
	r := Report{
		TotalMS: 1.5,
		Phases: []PhaseReport{
			{Name: "load", DurationMS: 0.5, Note: "2 bodies"},
			{Name: "check", DurationMS: 1},
		},
	}
	want := "timings:\n" +
		"  load            0.500 ms  // 2 bodies\n" +
		"  check           1.000 ms\n" +
		"  total           1.500 ms\n"
	if got := r.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestEmptyTimer(t *testing.T) {
	r := NewTimer().Report()
	if r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("empty report = %+v", r)
	}
	if got := r.String(); got != "timings:\n  total           0.000 ms\n" {
		t.Fatalf("String() = %q", got)
	}
}
