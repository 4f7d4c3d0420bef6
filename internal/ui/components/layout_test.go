package components

import (
	"strings"
	"testing"
)

func TestVisualWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"hello", 5},
		{"", 0},
		{"\033[31mred\033[0m", 3},
		{"a\033[1mb\033[0mc", 3},
	}
	for _, tt := range tests {
		if got := VisualWidth(tt.in); got != tt.want {
			t.Errorf("VisualWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadLeft("ab", 5); got != "   ab" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("overlong string must pass through: %q", got)
	}
	if got := CenterText("ab", 6); got != "  ab  " {
		t.Errorf("CenterText = %q", got)
	}
}

func TestJoinHorizontal(t *testing.T) {
	left := []string{"aa", "b"}
	right := []string{"x"}
	got := JoinHorizontal([][]string{left, right}, 2)
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0] != "aa  x" {
		t.Errorf("row 0 = %q", got[0])
	}
	// Shorter blocks pad with blanks so columns stay aligned.
	if got[1] != "b   "+" " {
		t.Errorf("row 1 = %q", got[1])
	}
}

func TestProgressBar_Render(t *testing.T) {
	bar := ProgressBar{Percent: 0.5, Width: 30}
	out := bar.Render()
	if !strings.Contains(out, "50%") {
		t.Errorf("missing percent suffix: %q", out)
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "░") {
		t.Errorf("half-full bar needs both fill and track: %q", out)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	if out := (ProgressBar{Percent: 1.7, Width: 20}).Render(); !strings.Contains(out, "100%") {
		t.Errorf("overfull bar = %q", out)
	}
	if out := (ProgressBar{Percent: -0.3, Width: 20}).Render(); !strings.Contains(out, "  0%") {
		t.Errorf("negative bar = %q", out)
	}
}
