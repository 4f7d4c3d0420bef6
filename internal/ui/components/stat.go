package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/anomredux/codex-smi/internal/theme"
)

// StatCard is one metric tile: a large centered value over a muted label,
// with an optional secondary line between them.
type StatCard struct {
	Value string
	Sub   string // e.g. "(+12K cached)"
	Label string
	Width int
	Color lipgloss.Color // overrides the default value color
}

func (s StatCard) Render() []string {
	w := max(s.Width, 8)

	valueColor := theme.ColorBrightText
	if s.Color != "" {
		valueColor = s.Color
	}

	lines := []string{
		CenterText(lipgloss.NewStyle().Foreground(valueColor).Bold(true).Render(s.Value), w),
	}
	if s.Sub != "" {
		lines = append(lines, CenterText(theme.MutedStyle.Render(s.Sub), w))
	}
	lines = append(lines, CenterText(theme.MutedStyle.Render(s.Label), w))
	return lines
}

// RenderStatRow lays out stat cards side by side with gap spaces between.
func RenderStatRow(cards []StatCard, gap int) string {
	blocks := make([][]string, 0, len(cards))
	for _, c := range cards {
		blocks = append(blocks, c.Render())
	}
	return strings.Join(JoinHorizontal(blocks, gap), "\n")
}
