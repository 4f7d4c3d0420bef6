package domain

import "time"

// FilterSince returns events at or after the cutoff. A zero cutoff keeps
// everything. Events with no parseable timestamp were already dropped at
// extraction, so every event here has one.
func FilterSince(events []UsageEvent, since time.Time) []UsageEvent {
	if since.IsZero() {
		return events
	}
	kept := make([]UsageEvent, 0, len(events))
	for _, e := range events {
		if !e.Timestamp.Before(since) {
			kept = append(kept, e)
		}
	}
	return kept
}

// FilterUntil returns events strictly before the cutoff. A zero cutoff
// keeps everything.
func FilterUntil(events []UsageEvent, until time.Time) []UsageEvent {
	if until.IsZero() {
		return events
	}
	kept := make([]UsageEvent, 0, len(events))
	for _, e := range events {
		if e.Timestamp.Before(until) {
			kept = append(kept, e)
		}
	}
	return kept
}

// LastN bounds the stream to its trailing n events without changing the
// fold semantics. n <= 0 means no bound.
func LastN(events []UsageEvent, n int) []UsageEvent {
	if n <= 0 || len(events) <= n {
		return events
	}
	return events[len(events)-n:]
}
