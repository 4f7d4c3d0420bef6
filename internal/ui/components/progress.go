package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/anomredux/codex-smi/internal/theme"
)

// ProgressBar renders a horizontal bar with the shared 5-color gradient
// over the filled portion and a dim track for the rest.
type ProgressBar struct {
	Percent float64 // 0.0 - 1.0, clamped
	Width   int     // total character width including the percent suffix
	Label   string  // optional left label
}

var trackStyle = lipgloss.NewStyle().Foreground(theme.ColorBorder)

// Render returns the bar as a single line.
func (p ProgressBar) Render() string {
	pct := p.Percent
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	suffix := fmt.Sprintf(" %3.0f%%", pct*100)
	barW := p.Width - len(suffix)
	if p.Label != "" {
		barW -= VisualWidth(p.Label) + 1
	}
	if barW < 4 {
		barW = 4
	}

	filled := int(pct * float64(barW))
	var sb strings.Builder
	for i := 0; i < filled; i++ {
		t := float64(i) / float64(max(barW-1, 1))
		color := theme.MultiStopGradient(t, theme.ProgressGradient)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
	}
	if filled < barW {
		sb.WriteString(trackStyle.Render(strings.Repeat("░", barW-filled)))
	}

	line := sb.String() + theme.MutedStyle.Render(suffix)
	if p.Label != "" {
		line = theme.MutedStyle.Render(p.Label) + " " + line
	}
	return line
}
