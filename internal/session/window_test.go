package session

import (
	"testing"
	"time"

	"github.com/anomredux/codex-smi/internal/domain"
)

func sig(at time.Time) domain.ActivitySignal {
	return domain.ActivitySignal{Timestamp: at, Kind: domain.SignalTokenCount}
}

var t0 = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

func TestTracker_UnsetWithoutSignals(t *testing.T) {
	var tr Tracker
	w := tr.At(t0)
	if w.Status != StatusUnset {
		t.Errorf("Status = %v, want StatusUnset", w.Status)
	}
	if !w.Start.IsZero() || !w.End.IsZero() {
		t.Errorf("unset window must carry zero boundaries: %+v", w)
	}
}

func TestTracker_ProvisionalStart(t *testing.T) {
	var tr Tracker
	history := []domain.ActivitySignal{
		sig(t0),
		sig(t0.Add(10 * time.Minute)),
		sig(t0.Add(30 * time.Minute)),
	}
	for _, s := range history {
		tr.Observe(s)
	}
	now := t0.Add(time.Hour)
	tr.Provision(now, history)

	w := tr.At(now)
	if w.Status != StatusActive {
		t.Fatalf("Status = %v, want StatusActive", w.Status)
	}
	if !w.Start.Equal(t0) {
		t.Errorf("Start = %v, want oldest signal %v", w.Start, t0)
	}
	if !w.End.Equal(t0.Add(WindowDuration)) {
		t.Errorf("End = %v, want Start+5h", w.End)
	}
}

func TestTracker_ProvisionIgnoresOldSignals(t *testing.T) {
	var tr Tracker
	now := t0.Add(6 * time.Hour)
	history := []domain.ActivitySignal{
		sig(t0), // more than 5h before now
		sig(t0.Add(2 * time.Hour)),
	}
	tr.Provision(now, history)

	w := tr.At(now)
	if w.Status != StatusActive {
		t.Fatalf("Status = %v, want StatusActive", w.Status)
	}
	if !w.Start.Equal(t0.Add(2 * time.Hour)) {
		t.Errorf("Start = %v, want oldest in-range signal", w.Start)
	}
}

func TestTracker_ProvisionOnce(t *testing.T) {
	var tr Tracker
	tr.Provision(t0, nil) // nothing in range, stays unset

	tr.Provision(t0.Add(time.Hour), []domain.ActivitySignal{sig(t0.Add(30 * time.Minute))})
	if w := tr.At(t0.Add(time.Hour)); w.Status != StatusUnset {
		t.Errorf("second Provision must not latch: %v", w.Status)
	}
}

func TestTracker_ExpiryBoundary(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	tr.Provision(t0, []domain.ActivitySignal{sig(t0)})

	if w := tr.At(t0.Add(WindowDuration - time.Second)); w.Status != StatusActive {
		t.Errorf("one second before end: %v, want StatusActive", w.Status)
	}
	// End is exclusive: at exactly start+5h the window is expired.
	if w := tr.At(t0.Add(WindowDuration)); w.Status != StatusExpired {
		t.Errorf("at end: %v, want StatusExpired", w.Status)
	}
	if w := tr.At(t0.Add(WindowDuration + time.Second)); w.Status != StatusExpired {
		t.Errorf("after end: %v, want StatusExpired", w.Status)
	}
}

func TestTracker_ExpiredNeverStale(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	tr.Provision(t0, []domain.ActivitySignal{sig(t0)})

	// Long after the end, the boundaries still report the expired window,
	// never a slid one.
	w := tr.At(t0.Add(24 * time.Hour))
	if w.Status != StatusExpired {
		t.Fatalf("Status = %v, want StatusExpired", w.Status)
	}
	if !w.Start.Equal(t0) {
		t.Errorf("Start slid to %v", w.Start)
	}
}

func TestTracker_GapTrigger(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	next := t0.Add(6 * time.Hour) // gap >= 5h
	tr.Observe(sig(next))

	w := tr.At(next.Add(time.Minute))
	if w.Status != StatusActive {
		t.Fatalf("Status = %v, want StatusActive", w.Status)
	}
	if !w.Start.Equal(next) {
		t.Errorf("Start = %v, want gap signal %v", w.Start, next)
	}
}

func TestTracker_ExactGapLatches(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	next := t0.Add(WindowDuration) // exactly 5h counts as a gap
	tr.Observe(sig(next))

	if w := tr.At(next); !w.Start.Equal(next) {
		t.Errorf("Start = %v, want %v", w.Start, next)
	}
}

func TestTracker_SmallGapDoesNotLatch(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	tr.Observe(sig(t0.Add(4 * time.Hour)))
	tr.Provision(t0.Add(4*time.Hour), []domain.ActivitySignal{sig(t0), sig(t0.Add(4 * time.Hour))})

	// Provision sees t0 within range, start stays t0.
	w := tr.At(t0.Add(4 * time.Hour))
	if !w.Start.Equal(t0) {
		t.Errorf("Start = %v, want %v", w.Start, t0)
	}
}

func TestTracker_IdenticalTimestampsNotAGap(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	tr.Observe(sig(t0))
	if !tr.start.IsZero() {
		t.Error("identical timestamps must not latch a gap start")
	}
}

func TestTracker_UsageLimitLatchesNextSignal(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	tr.ObserveUsageLimit()

	// Nothing changes until activity resumes.
	if !tr.start.IsZero() {
		t.Fatal("usage limit alone must not latch")
	}

	resume := t0.Add(30 * time.Minute)
	tr.Observe(sig(resume))
	w := tr.At(resume)
	if !w.Start.Equal(resume) {
		t.Errorf("Start = %v, want resume signal %v", w.Start, resume)
	}
}

func TestTracker_UsageLimitWinsOverGap(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	tr.ObserveUsageLimit()

	// The next signal is also a >=5h gap; the limit latch takes priority
	// and consumes the signal either way, same outcome, one latch.
	next := t0.Add(7 * time.Hour)
	tr.Observe(sig(next))
	if !tr.start.Equal(next) {
		t.Errorf("start = %v, want %v", tr.start, next)
	}
	if tr.limitPending {
		t.Error("limit latch must be consumed")
	}

	// A later ordinary signal must not re-latch.
	later := next.Add(time.Hour)
	tr.Observe(sig(later))
	if !tr.start.Equal(next) {
		t.Errorf("start moved to %v after ordinary signal", tr.start)
	}
}

func TestTracker_RelatchMidWindow(t *testing.T) {
	var tr Tracker
	tr.Observe(sig(t0))
	tr.Provision(t0, []domain.ActivitySignal{sig(t0)})

	// A usage limit mid-window replaces the boundaries on next activity.
	tr.ObserveUsageLimit()
	next := t0.Add(2 * time.Hour)
	tr.Observe(sig(next))

	w := tr.At(next)
	if !w.Start.Equal(next) {
		t.Errorf("Start = %v, want relatched %v", w.Start, next)
	}
	if !w.End.Equal(next.Add(WindowDuration)) {
		t.Errorf("End = %v, want new Start+5h", w.End)
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusUnset, "unset"},
		{StatusActive, "active"},
		{StatusExpired, "expired"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
