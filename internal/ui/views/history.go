package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/anomredux/codex-smi/internal/domain"
	"github.com/anomredux/codex-smi/internal/i18n"
	"github.com/anomredux/codex-smi/internal/pricing"
	"github.com/anomredux/codex-smi/internal/theme"
	"github.com/anomredux/codex-smi/internal/ui/components"
)

// HistoryView lists individual usage events, newest first.
type HistoryView struct {
	events   []domain.UsageEvent
	tz       *time.Location
	calc     *pricing.Calculator
	cursor   int
	scroll   int
	AnimTick uint
}

func NewHistoryView(tz *time.Location, calc *pricing.Calculator) *HistoryView {
	return &HistoryView{tz: tz, calc: calc}
}

func (v *HistoryView) SetData(events []domain.UsageEvent) {
	v.events = events
	if v.cursor >= len(events) {
		v.cursor = max(0, len(events)-1)
	}
}

func (v *HistoryView) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "j", "down":
			if v.cursor < len(v.events)-1 {
				v.cursor++
			}
			return KeyHandledCmd
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
			return KeyHandledCmd
		case "g":
			v.cursor = 0
			return KeyHandledCmd
		case "G":
			v.cursor = max(0, len(v.events)-1)
			return KeyHandledCmd
		}
	}
	return nil
}

type historyCol struct {
	header string
	width  int
	align  lipgloss.Position
}

func (v *HistoryView) Render(width, height int, compact bool) string {
	cardWidth := width - 4

	if len(v.events) == 0 {
		card := components.Card{
			Title:   theme.AnimatedGradientText(i18n.T("usage_events"), v.AnimTick),
			Width:   cardWidth,
			Compact: compact,
		}
		card.Content = theme.MutedStyle.Render(i18n.T("no_events"))
		return card.Render()
	}

	title := fmt.Sprintf("%s (%d)", i18n.T("usage_events"), len(v.events))
	card := components.Card{
		Title:   theme.AnimatedGradientText(title, v.AnimTick),
		Width:   cardWidth,
		Compact: compact,
	}

	innerW := card.InnerWidth()

	cols := []historyCol{
		{"", 2, lipgloss.Left}, // cursor
		{i18n.T("time"), 18, lipgloss.Left},
		{i18n.T("model"), 18, lipgloss.Left},
		{i18n.T("input_tokens"), 9, lipgloss.Right},
		{i18n.T("cached_tokens"), 9, lipgloss.Right},
		{i18n.T("output_tokens"), 9, lipgloss.Right},
		{i18n.T("reasoning_tokens"), 9, lipgloss.Right},
		{i18n.T("total_tokens"), 9, lipgloss.Right},
		{i18n.T("cost"), 8, lipgloss.Right},
	}

	// Give leftover width to the model column
	totalFixed := 0
	for _, c := range cols {
		totalFixed += c.width
	}
	gaps := len(cols) - 1
	if remaining := innerW - totalFixed - gaps; remaining > 0 {
		cols[2].width += remaining
		totalFixed += remaining
	}

	headerColors := []lipgloss.Color{
		theme.ColorBrightText,
		theme.ColorBrightText, // Time
		theme.ColorBrightText, // Model
		theme.ColorSkyBlue,    // Input
		theme.ColorLavender,   // Cached
		theme.ColorMauve,      // Output
		theme.ColorPeach,      // Reasoning
		theme.ColorGold,       // Total
		theme.ColorSkyBlue,    // Cost
	}

	var headerCells []string
	for i, c := range cols {
		s := lipgloss.NewStyle().Width(c.width).Align(c.align).
			Foreground(headerColors[i]).Bold(true)
		headerCells = append(headerCells, s.Render(c.header))
	}
	headerLine := strings.Join(headerCells, " ")

	sepWidth := totalFixed + gaps
	if sepWidth > innerW {
		sepWidth = innerW
	}
	separator := theme.MutedStyle.Render(strings.Repeat("─", sepWidth))

	helpLine := lipgloss.PlaceHorizontal(innerW, lipgloss.Right,
		components.HelpFooter(i18n.T("history_help")))

	rows := []string{helpLine, headerLine, separator}

	// card border + help + header + separator + scroll indicator
	visibleRows := height - 8
	if visibleRows < 3 {
		visibleRows = 3
	}

	if v.cursor < v.scroll {
		v.scroll = v.cursor
	}
	if v.cursor >= v.scroll+visibleRows {
		v.scroll = v.cursor - visibleRows + 1
	}

	cell := func(text string, c historyCol, fg lipgloss.Color) string {
		return lipgloss.NewStyle().Width(c.width).Align(c.align).Foreground(fg).Render(text)
	}

	for displayIdx := v.scroll; displayIdx < len(v.events) && displayIdx < v.scroll+visibleRows; displayIdx++ {
		// Newest first
		e := v.events[len(v.events)-1-displayIdx]
		selected := displayIdx == v.cursor

		costStr := ""
		if v.calc != nil {
			if cost, ok := v.calc.Cost(e); ok {
				costStr = fmt.Sprintf("$%.2f", cost)
			}
		}

		model := e.Model
		if model == "" {
			model = "-"
		}

		cells := []string{
			components.CursorIndicator(selected),
			cell(e.Timestamp.In(v.tz).Format("Jan 02 15:04:05"), cols[1], theme.ColorBodyText),
			cell(model, cols[2], theme.ColorBrightText),
			cell(components.FormatCompact(e.InputTokens), cols[3], theme.ColorSkyBlue),
			cell(components.FormatCompact(e.CachedInputTokens), cols[4], theme.ColorLavender),
			cell(components.FormatCompact(e.OutputTokens), cols[5], theme.ColorMauve),
			cell(components.FormatCompact(e.ReasoningOutputTokens), cols[6], theme.ColorPeach),
			cell(components.FormatCompact(e.TotalTokens), cols[7], theme.ColorGold),
			cell(costStr, cols[8], theme.ColorSkyBlue),
		}

		row := strings.Join(cells, " ")
		rows = append(rows, components.RowBackground(displayIdx).Render(row))
	}

	if len(v.events) > visibleRows {
		indicator := theme.MutedStyle.Render(
			fmt.Sprintf("  [%d-%d / %d]", v.scroll+1,
				min(v.scroll+visibleRows, len(v.events)), len(v.events)))
		rows = append(rows, indicator)
	}

	card.Content = strings.Join(rows, "\n")
	return card.Render()
}
