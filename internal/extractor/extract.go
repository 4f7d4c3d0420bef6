// Package extractor turns raw Codex TUI log records into typed usage
// events and activity signals.
package extractor

import (
	"regexp"
	"strconv"
	"time"

	"github.com/anomredux/codex-smi/internal/domain"
)

// Kind identifies the record shapes we extract from the log.
type Kind int

const (
	KindTokenCount Kind = iota
	KindTaskStarted
	KindExecCommandBegin
	KindSessionConfigured
	KindUsageLimit
)

// Record is one recognized log record. Event is populated for
// KindTokenCount, Model for KindSessionConfigured.
type Record struct {
	Kind      Kind
	Timestamp time.Time
	Event     domain.UsageEvent
	Model     string
}

var (
	ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	tsRE   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\S+?)\s`)

	// Markers must sit in the handle_codex_event position after the leading
	// timestamp and level word. Mentions of the marker text inside quoted
	// strings or diff bodies never match these anchors.
	tokenCountRE  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\S+\s+\w+\s+handle_codex_event:\s+TokenCount\(TokenUsage\b`)
	taskStartedRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\S+\s+\w+\s+handle_codex_event:\s+TaskStarted\b`)
	execBeginRE   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\S+\s+\w+\s+handle_codex_event:\s+ExecCommandBegin\b`)
	sessionCfgRE  = regexp.MustCompile(`(?i)^\d{4}-\d{2}-\d{2}T\S+\s+\w+\s+handle_codex_event:\s+SessionConfigured\(SessionConfiguredEvent\b`)
	usageLimitRE  = regexp.MustCompile(`(?i)^\d{4}-\d{2}-\d{2}T\S+\s+\w+\s+handle_codex_event:\s+Error\(ErrorEvent\b.*?usage\s+limit`)

	modelRE = regexp.MustCompile(`(?i)SessionConfigured\(.*?model:\s*"([^"]+)"`)

	payloadOpenRE = regexp.MustCompile(`TokenUsage\s*\{`)
)

// StripANSI removes terminal escape sequences from a log line.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// Extract recognizes one logical log record. It never fails hard: any
// record that is not a well-formed event of a known shape returns ok=false
// and the caller keeps streaming.
func Extract(record string) (Record, bool) {
	line := StripANSI(record)

	switch {
	case tokenCountRE.MatchString(line):
		return extractTokenCount(line)
	case taskStartedRE.MatchString(line):
		return extractSignal(line, KindTaskStarted)
	case execBeginRE.MatchString(line):
		return extractSignal(line, KindExecCommandBegin)
	case usageLimitRE.MatchString(line):
		return extractSignal(line, KindUsageLimit)
	case sessionCfgRE.MatchString(line):
		return extractSessionConfigured(line)
	}
	return Record{}, false
}

func extractTokenCount(line string) (Record, bool) {
	ts, ok := parseTimestamp(line)
	if !ok {
		return Record{}, false
	}
	// The marker must be followed by the braced payload, not a bare mention.
	if !payloadOpenRE.MatchString(line) {
		return Record{}, false
	}

	input, ok := parseField(line, "input_tokens")
	if !ok {
		return Record{}, false
	}
	cached, ok := parseField(line, "cached_input_tokens")
	if !ok {
		return Record{}, false
	}
	output, ok := parseField(line, "output_tokens")
	if !ok {
		return Record{}, false
	}
	reasoning, ok := parseField(line, "reasoning_output_tokens")
	if !ok {
		return Record{}, false
	}
	total, ok := parseField(line, "total_tokens")
	if !ok {
		return Record{}, false
	}
	if total == 0 {
		total = input + output
	}

	ev := domain.UsageEvent{
		Timestamp:             ts,
		InputTokens:           input,
		CachedInputTokens:     cached,
		OutputTokens:          output,
		ReasoningOutputTokens: reasoning,
		TotalTokens:           total,
	}
	return Record{Kind: KindTokenCount, Timestamp: ts, Event: ev}, true
}

func extractSignal(line string, kind Kind) (Record, bool) {
	ts, ok := parseTimestamp(line)
	if !ok {
		return Record{}, false
	}
	return Record{Kind: kind, Timestamp: ts}, true
}

func extractSessionConfigured(line string) (Record, bool) {
	ts, ok := parseTimestamp(line)
	if !ok {
		return Record{}, false
	}
	rec := Record{Kind: KindSessionConfigured, Timestamp: ts}
	if m := modelRE.FindStringSubmatch(line); m != nil {
		rec.Model = m[1]
	}
	return rec, true
}

// parseTimestamp parses the ISO-like prefix into a UTC instant.
func parseTimestamp(line string) (time.Time, bool) {
	m := tsRE.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	raw := m[1]
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseField extracts a numeric payload field that may appear as
// `name: 123`, `name: Some(123)` or `name: None`. A missing or None field
// is 0; a malformed value rejects the record.
func parseField(line, name string) (int, bool) {
	re, ok := fieldREs[name]
	if !ok {
		return 0, false
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, true
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	if raw == "" {
		return 0, true // None
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

var fieldREs = buildFieldREs()

func buildFieldREs() map[string]*regexp.Regexp {
	names := []string{
		"input_tokens",
		"cached_input_tokens",
		"output_tokens",
		"reasoning_output_tokens",
		"total_tokens",
	}
	res := make(map[string]*regexp.Regexp, len(names))
	for _, name := range names {
		// \b before the name keeps input_tokens from matching inside
		// cached_input_tokens.
		res[name] = regexp.MustCompile(`\b` + name + `:\s*(?:Some\((\d+)\)|(\d+)|None)`)
	}
	return res
}
