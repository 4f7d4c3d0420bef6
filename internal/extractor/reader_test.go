package extractor

import (
	"strings"
	"testing"

	"github.com/anomredux/codex-smi/internal/domain"
)

func TestScanRecords_Basic(t *testing.T) {
	log := strings.Join([]string{
		`2025-07-01T10:00:00Z INFO handle_codex_event: SessionConfigured(SessionConfiguredEvent { model: "gpt-5" })`,
		`2025-07-01T10:00:01Z INFO handle_codex_event: TaskStarted`,
		`2025-07-01T10:00:05Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 100, cached_input_tokens: 20, output_tokens: 50, reasoning_output_tokens: 10, total_tokens: 150 })`,
		`2025-07-01T10:00:06Z INFO some unrelated log line`,
		`2025-07-01T10:00:10Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 200, output_tokens: 80, total_tokens: 280 })`,
	}, "\n")

	res := ScanRecords(strings.NewReader(log))

	if len(res.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(res.Events))
	}
	if len(res.Records) != 4 {
		t.Fatalf("len(Records) = %d, want 4", len(res.Records))
	}
	if res.SkipCount != 0 {
		t.Errorf("SkipCount = %d, want 0 (unrelated lines are not skips)", res.SkipCount)
	}

	// Model from the preceding SessionConfigured is stamped onto events.
	for i, e := range res.Events {
		if e.Model != "gpt-5" {
			t.Errorf("Events[%d].Model = %q, want gpt-5", i, e.Model)
		}
	}
}

func TestScanRecords_MultilineRecord(t *testing.T) {
	log := strings.Join([]string{
		`2025-07-01T10:00:00Z INFO handle_codex_event: TokenCount(TokenUsage {`,
		`    input_tokens: 100,`,
		`    cached_input_tokens: 25,`,
		`    output_tokens: 40,`,
		`    reasoning_output_tokens: 5,`,
		`    total_tokens: 140 })`,
		`2025-07-01T10:05:00Z INFO handle_codex_event: TaskStarted`,
	}, "\n")

	res := ScanRecords(strings.NewReader(log))

	if len(res.Events) != 1 {
		t.Fatalf("len(Events) = %d, want 1", len(res.Events))
	}
	e := res.Events[0]
	if e.InputTokens != 100 || e.CachedInputTokens != 25 || e.OutputTokens != 40 ||
		e.ReasoningOutputTokens != 5 || e.TotalTokens != 140 {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestScanRecords_ModelSwitch(t *testing.T) {
	log := strings.Join([]string{
		`2025-07-01T10:00:00Z INFO handle_codex_event: SessionConfigured(SessionConfiguredEvent { model: "gpt-5" })`,
		`2025-07-01T10:00:05Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 1, output_tokens: 1, total_tokens: 2 })`,
		`2025-07-01T11:00:00Z INFO handle_codex_event: SessionConfigured(SessionConfiguredEvent { model: "gpt-5-mini" })`,
		`2025-07-01T11:00:05Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 1, output_tokens: 1, total_tokens: 2 })`,
	}, "\n")

	res := ScanRecords(strings.NewReader(log))
	if len(res.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(res.Events))
	}
	if res.Events[0].Model != "gpt-5" || res.Events[1].Model != "gpt-5-mini" {
		t.Errorf("models = %q, %q", res.Events[0].Model, res.Events[1].Model)
	}
}

func TestScanRecords_SkipCountsOnlyBrokenTokenCounts(t *testing.T) {
	log := strings.Join([]string{
		`2025-07-01T10:00:00Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 999999999999999999999, output_tokens: 1 })`,
		`2025-07-01T10:00:01Z INFO handle_codex_event: AgentMessageDelta`,
		`2025-07-01T10:00:02Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 1, output_tokens: 1, total_tokens: 2 })`,
	}, "\n")

	res := ScanRecords(strings.NewReader(log))
	if res.SkipCount != 1 {
		t.Errorf("SkipCount = %d, want 1", res.SkipCount)
	}
	if len(res.Events) != 1 {
		t.Errorf("len(Events) = %d, want 1", len(res.Events))
	}
}

func TestScanRecords_LeadingContinuationDropped(t *testing.T) {
	log := strings.Join([]string{
		`    stray continuation with no open record`,
		`2025-07-01T10:00:00Z INFO handle_codex_event: TaskStarted`,
	}, "\n")

	res := ScanRecords(strings.NewReader(log))
	if len(res.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(res.Records))
	}
	if res.SkipCount != 0 {
		t.Errorf("SkipCount = %d, want 0", res.SkipCount)
	}
}

func TestResult_Signals(t *testing.T) {
	log := strings.Join([]string{
		`2025-07-01T10:00:00Z INFO handle_codex_event: TaskStarted`,
		`2025-07-01T10:00:05Z INFO handle_codex_event: TokenCount(TokenUsage { input_tokens: 1, output_tokens: 1, total_tokens: 2 })`,
		`2025-07-01T10:00:10Z INFO handle_codex_event: ExecCommandBegin(cmd: ["go test"])`,
		`2025-07-01T10:00:15Z ERROR handle_codex_event: Error(ErrorEvent { message: "usage limit reached" })`,
	}, "\n")

	res := ScanRecords(strings.NewReader(log))
	sigs := res.Signals()

	// The usage-limit record is not an activity signal.
	if len(sigs) != 3 {
		t.Fatalf("len(Signals) = %d, want 3", len(sigs))
	}
	wantKinds := []domain.SignalKind{
		domain.SignalTaskStarted,
		domain.SignalTokenCount,
		domain.SignalExecCommandBegin,
	}
	for i, k := range wantKinds {
		if sigs[i].Kind != k {
			t.Errorf("sigs[%d].Kind = %v, want %v", i, sigs[i].Kind, k)
		}
	}
}
