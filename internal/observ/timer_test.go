package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	load := tm.Begin(PhaseLoad)
	tm.End(load, "3 files")
	err := tm.Measure(PhaseLex, func() error { return errors.New("2 errors") })
	if err == nil || err.Error() != "2 errors" {
		t.Fatalf("Measure must return fn error, got %v", err)
	}
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[0].DurationMS != 2 || r.Phases[0].Note != "3 files" {
		t.Errorf("unexpected load phase %+v", r.Phases[0])
	}
	if r.Phases[1].Name != "lex" || r.Phases[1].Note != "2 errors" {
		t.Errorf("unexpected lex phase %+v", r.Phases[1])
	}
	if r.TotalMS != 4 {
		t.Errorf("TotalMS = %v, want 4", r.TotalMS)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	_ = tm.Measure(PhaseRender, func() error { return nil })

	want := "timings:\n" +
		"  render         1.000 ms\n" +
		"  total          1.000 ms\n"
	if got := tm.Summary(); got != want {
		t.Errorf("Summary:\n%q\nwant:\n%q", got, want)
	}
	if !strings.HasPrefix(NewTimer().Summary(), "timings:\n  total") {
		t.Error("empty timer must still print total")
	}
}
