package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/anomredux/codex-smi/internal/theme"
)

// Scrolling-list chrome: zebra striping, the selection cursor, and the
// muted key-hint line under the list.

var (
	stripeStyle = lipgloss.NewStyle().Background(theme.ColorElevatedBg)
	plainStyle  = lipgloss.NewStyle()
	cursorGlyph = lipgloss.NewStyle().Foreground(theme.ColorGold).Render("❯ ")
)

// RowBackground stripes odd rows with the elevated background.
func RowBackground(index int) lipgloss.Style {
	if index%2 == 1 {
		return stripeStyle
	}
	return plainStyle
}

// CursorIndicator is the two-cell selection marker column.
func CursorIndicator(selected bool) string {
	if selected {
		return cursorGlyph
	}
	return "  "
}

// HelpFooter renders a key-hint line in the muted style.
func HelpFooter(text string) string {
	return theme.MutedStyle.Render("  " + text)
}
