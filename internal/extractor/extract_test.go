package extractor

import (
	"testing"
	"time"
)

func TestExtract_TokenCount(t *testing.T) {
	line := `2025-07-01T10:00:00Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 1200, cached_input_tokens: 400, output_tokens: 300, reasoning_output_tokens: 100, total_tokens: 1500 })`

	rec, ok := Extract(line)
	if !ok {
		t.Fatal("Extract failed on well-formed TokenCount")
	}
	if rec.Kind != KindTokenCount {
		t.Fatalf("Kind = %v, want KindTokenCount", rec.Kind)
	}
	e := rec.Event
	if e.InputTokens != 1200 || e.CachedInputTokens != 400 || e.OutputTokens != 300 ||
		e.ReasoningOutputTokens != 100 || e.TotalTokens != 1500 {
		t.Errorf("unexpected event: %+v", e)
	}
	want := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", rec.Timestamp, want)
	}
}

func TestExtract_TokenCountSomeNone(t *testing.T) {
	line := `2025-07-01T10:00:00Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: Some(500), cached_input_tokens: None, output_tokens: 200, reasoning_output_tokens: None, total_tokens: None })`

	rec, ok := Extract(line)
	if !ok {
		t.Fatal("Extract failed on Some/None forms")
	}
	e := rec.Event
	if e.InputTokens != 500 {
		t.Errorf("InputTokens = %d, want 500", e.InputTokens)
	}
	if e.CachedInputTokens != 0 || e.ReasoningOutputTokens != 0 {
		t.Errorf("None fields should be 0: %+v", e)
	}
	// total_tokens None falls back to input+output
	if e.TotalTokens != 700 {
		t.Errorf("TotalTokens = %d, want 700", e.TotalTokens)
	}
}

func TestExtract_TokenCountMissingFields(t *testing.T) {
	// Fields absent from the payload count as zero, not as an error.
	line := `2025-07-01T10:00:00Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 10, output_tokens: 5 })`

	rec, ok := Extract(line)
	if !ok {
		t.Fatal("Extract failed on sparse payload")
	}
	if rec.Event.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15 (input+output fallback)", rec.Event.TotalTokens)
	}
}

func TestExtract_MalformedNumberRejects(t *testing.T) {
	line := `2025-07-01T10:00:00Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 999999999999999999999999999, output_tokens: 5 })`
	if _, ok := Extract(line); ok {
		t.Error("overflowing number should reject the record")
	}
}

func TestExtract_MarkerMustBeAnchored(t *testing.T) {
	lines := []string{
		// Marker mentioned mid-message, not in event position
		`2025-07-01T10:00:00Z INFO some message about handle_codex_event: weird TokenCount(TokenUsage { input_tokens: 5 })`,
		// Quoted mention inside another event's payload
		`2025-07-01T10:00:00Z INFO handle_codex_event: AgentMessage(text: "handle_codex_event: TokenCount(TokenUsage { input_tokens: 5 })")`,
		// Diff-style body line with no timestamp prefix
		`+    TokenCount(TokenUsage { input_tokens: 5, output_tokens: 2 })`,
		// No marker at all
		`2025-07-01T10:00:00Z INFO codex session rollout saved`,
	}
	for _, line := range lines {
		if rec, ok := Extract(line); ok && rec.Kind == KindTokenCount {
			t.Errorf("line should not extract a TokenCount: %q", line)
		}
	}
}

func TestExtract_BareMarkerWithoutPayload(t *testing.T) {
	line := `2025-07-01T10:00:00Z INFO handle_codex_event: TokenCount(TokenUsage`
	if _, ok := Extract(line); ok {
		t.Error("marker without braced payload should not extract")
	}
}

func TestExtract_Signals(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
	}{
		{"task started", `2025-07-01T10:00:00Z INFO handle_codex_event: TaskStarted`, KindTaskStarted},
		{"exec begin", `2025-07-01T10:00:00Z INFO handle_codex_event: ExecCommandBegin(cmd: ["ls"])`, KindExecCommandBegin},
		{"usage limit", `2025-07-01T10:00:00Z ERROR handle_codex_event: Error(ErrorEvent { message: "You've hit your usage limit." })`, KindUsageLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := Extract(tt.line)
			if !ok {
				t.Fatalf("Extract failed: %q", tt.line)
			}
			if rec.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", rec.Kind, tt.kind)
			}
		})
	}
}

func TestExtract_SessionConfigured(t *testing.T) {
	line := `2025-07-01T10:00:00Z INFO handle_codex_event: SessionConfigured(SessionConfiguredEvent { session_id: abc, model: "gpt-5", history_log_id: 1 })`
	rec, ok := Extract(line)
	if !ok {
		t.Fatal("Extract failed on SessionConfigured")
	}
	if rec.Kind != KindSessionConfigured {
		t.Fatalf("Kind = %v, want KindSessionConfigured", rec.Kind)
	}
	if rec.Model != "gpt-5" {
		t.Errorf("Model = %q, want gpt-5", rec.Model)
	}
}

func TestExtract_ErrorWithoutUsageLimit(t *testing.T) {
	line := `2025-07-01T10:00:00Z ERROR handle_codex_event: Error(ErrorEvent { message: "stream disconnected" })`
	if _, ok := Extract(line); ok {
		t.Error("generic error should not extract as a usage-limit record")
	}
}

func TestExtract_ANSIStripped(t *testing.T) {
	line := "\x1b[32m2025-07-01T10:00:00Z\x1b[0m INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 7, output_tokens: 3, total_tokens: 10 })"
	rec, ok := Extract(line)
	if !ok {
		t.Fatal("Extract failed on ANSI-colored line")
	}
	if rec.Event.InputTokens != 7 {
		t.Errorf("InputTokens = %d, want 7", rec.Event.InputTokens)
	}
}

func TestParseTimestamp_Layouts(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"zulu", "2025-07-01T10:00:00Z rest"},
		{"fractional", "2025-07-01T10:00:00.123456Z rest"},
		{"offset", "2025-07-01T12:00:00+02:00 rest"},
		{"naive", "2025-07-01T10:00:00 rest"},
	}
	want := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseTimestamp(tt.line)
			if !ok {
				t.Fatalf("parseTimestamp failed: %q", tt.line)
			}
			if ts.Truncate(time.Second) != want {
				t.Errorf("got %v, want %v", ts, want)
			}
		})
	}
}

func TestParseField_NoInnerPrefixMatch(t *testing.T) {
	// input_tokens must not match inside cached_input_tokens.
	line := `cached_input_tokens: 400, input_tokens: 100`
	n, ok := parseField(line, "input_tokens")
	if !ok || n != 100 {
		t.Errorf("parseField(input_tokens) = (%d, %v), want (100, true)", n, ok)
	}
}
