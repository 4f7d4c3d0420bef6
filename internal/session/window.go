// Package session decides the boundaries of the active 5-hour billing
// window from a stream of activity signals.
package session

import (
	"time"

	"github.com/anomredux/codex-smi/internal/domain"
)

// WindowDuration is the fixed length of a billing session.
const WindowDuration = 5 * time.Hour

type Status int

const (
	StatusUnset Status = iota
	StatusActive
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusExpired:
		return "expired"
	default:
		return "unset"
	}
}

// Window is the resolved session window at a point in time. Start and End
// are zero when Status is StatusUnset; End is always Start+5h otherwise.
type Window struct {
	Start  time.Time
	End    time.Time
	Status Status
}

// Tracker holds the latch state threaded through trigger evaluation.
// It is a plain value: replaying the same signals against a fresh Tracker
// yields the same window, so the whole pipeline can be re-run per tick.
type Tracker struct {
	start        time.Time // latched window start; zero until a trigger fires
	lastSignal   time.Time
	limitPending bool // usage-limit seen, next signal becomes the start
	provisioned  bool // startup trigger already evaluated
}

// ObserveUsageLimit records a usage-limit-exceeded condition. The next
// activity signal latches a new window start, overriding the gap trigger.
// Until activity resumes, the window state is unchanged.
func (t *Tracker) ObserveUsageLimit() {
	t.limitPending = true
}

// Observe evaluates triggers against one activity signal. Signals must
// arrive in log order. Trigger priority: usage-limit, then inactivity gap.
// Each latch consumes its condition; identical timestamps are not a gap.
func (t *Tracker) Observe(sig domain.ActivitySignal) {
	at := sig.Timestamp
	if at.IsZero() {
		return
	}

	switch {
	case t.limitPending:
		t.start = at
		t.limitPending = false
	case !t.lastSignal.IsZero() && at.Sub(t.lastSignal) >= WindowDuration:
		t.start = at
	}

	if at.After(t.lastSignal) {
		t.lastSignal = at
	}
}

// Provision runs the startup trigger: when nothing has latched yet, the
// oldest signal within the last 5 hours of now becomes a provisional start.
// It is evaluated at most once per Tracker; an expired window never
// re-provisions.
func (t *Tracker) Provision(now time.Time, history []domain.ActivitySignal) {
	if t.provisioned {
		return
	}
	t.provisioned = true
	if !t.start.IsZero() {
		return
	}

	cutoff := now.Add(-WindowDuration)
	var oldest time.Time
	for _, sig := range history {
		at := sig.Timestamp
		if at.IsZero() || at.Before(cutoff) || at.After(now) {
			continue
		}
		if oldest.IsZero() || at.Before(oldest) {
			oldest = at
		}
	}
	if !oldest.IsZero() {
		t.start = oldest
	}
}

// At resolves the window against the current instant. The end never slides:
// once now reaches start+5h the window reports StatusExpired until a fresh
// trigger latches a new start.
func (t *Tracker) At(now time.Time) Window {
	if t.start.IsZero() {
		return Window{Status: StatusUnset}
	}
	end := t.start.Add(WindowDuration)
	w := Window{Start: t.start, End: end, Status: StatusActive}
	if !now.Before(end) {
		w.Status = StatusExpired
	}
	return w
}
