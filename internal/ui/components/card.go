package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/anomredux/codex-smi/internal/theme"
)

// Card frames pre-rendered content under a title. The full form draws a
// rounded border with the title embedded in the top edge; the compact
// form drops the border and separates title from body with a rule.
type Card struct {
	Title   string // may carry ANSI styling
	Width   int    // outer width including any border
	Content string
	Compact bool
}

// InnerWidth is the content width callers should render to.
func (c Card) InnerWidth() int {
	if c.Compact {
		return c.Width - 2
	}
	return c.Width - 4 // border plus one space of padding per side
}

func (c Card) Render() string {
	if c.Compact {
		return c.renderCompact()
	}
	return c.renderBordered()
}

func (c Card) renderCompact() string {
	rule := max(c.Width-4, 1)
	lines := []string{
		c.Title,
		theme.MutedStyle.Render("  " + strings.Repeat("─", rule)),
	}
	if c.Content != "" {
		lines = append(lines, c.Content)
	}
	return strings.Join(lines, "\n")
}

func (c Card) renderBordered() string {
	border := lipgloss.NewStyle().Foreground(theme.ColorBorder)
	inner := c.Width - 2

	title := ""
	if c.Title != "" {
		title = " " + c.Title + " "
	}
	// Title sits after the top-left corner; the rest of the edge is fill.
	fill := max(inner-1-lipgloss.Width(title), 0)
	top := border.Render("╭─") + title + border.Render(strings.Repeat("─", fill)+"╮")

	bodyWidth := inner - 2
	var body []string
	for _, line := range strings.Split(c.Content, "\n") {
		pad := max(bodyWidth-lipgloss.Width(line), 0)
		body = append(body,
			border.Render("│")+" "+line+strings.Repeat(" ", pad)+" "+border.Render("│"))
	}

	bottom := border.Render("╰" + strings.Repeat("─", inner) + "╯")
	return top + "\n" + strings.Join(body, "\n") + "\n" + bottom
}
