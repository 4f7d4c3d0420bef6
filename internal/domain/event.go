package domain

import "time"

// UsageEvent is one TokenCount record recovered from the Codex TUI log.
// Cached and reasoning counts are sub-counts of input and output, not
// additive extras.
type UsageEvent struct {
	Timestamp             time.Time
	InputTokens           int
	CachedInputTokens     int
	OutputTokens          int
	ReasoningOutputTokens int
	TotalTokens           int
	Model                 string // most recent SessionConfigured model, may be empty
}

// SignalKind classifies activity markers used for session timing.
type SignalKind int

const (
	SignalTokenCount SignalKind = iota
	SignalTaskStarted
	SignalExecCommandBegin
)

// ActivitySignal marks liveness in the log. Every UsageEvent doubles as a
// token-count signal; the other kinds carry no token data.
type ActivitySignal struct {
	Timestamp time.Time
	Kind      SignalKind
}

// Signal returns the event viewed as an activity signal.
func (e UsageEvent) Signal() ActivitySignal {
	return ActivitySignal{Timestamp: e.Timestamp, Kind: SignalTokenCount}
}
