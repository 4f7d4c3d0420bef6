package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/anomredux/codex-smi/internal/i18n"
	"github.com/anomredux/codex-smi/internal/report"
	"github.com/anomredux/codex-smi/internal/theme"
	"github.com/anomredux/codex-smi/internal/ui/components"
)

// Per-column colors: Sun Mon Tue Wed Thu Fri Sat
var dayColumnColors = [7]lipgloss.Color{
	theme.ColorWeekendFaded, // Sun
	theme.ColorSkyBlue,      // Mon
	theme.ColorLavender,     // Tue
	theme.ColorMauve,        // Wed
	theme.ColorPeach,        // Thu
	theme.ColorGold,         // Fri
	theme.ColorWeekendFaded, // Sat
}

// DailyView renders a month calendar over the daily rollup. Dates are
// UTC calendar days, matching the rollup itself.
type DailyView struct {
	rows     map[string]report.DailyRecord // keyed by "2006-01-02"
	year     int
	month    time.Month
	AnimTick uint
}

func NewDailyView() *DailyView {
	now := time.Now().UTC()
	return &DailyView{year: now.Year(), month: now.Month(), rows: make(map[string]report.DailyRecord)}
}

func (v *DailyView) SetData(rows []report.DailyRecord) {
	m := make(map[string]report.DailyRecord, len(rows))
	for _, r := range rows {
		m[r.Date] = r
	}
	v.rows = m
}

func (v *DailyView) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "left", "h":
			v.month--
			if v.month < time.January {
				v.month = time.December
				v.year--
			}
			return KeyHandledCmd
		case "right", "l":
			v.month++
			if v.month > time.December {
				v.month = time.January
				v.year++
			}
			return KeyHandledCmd
		}
	}
	return nil
}

func (v *DailyView) dayRecord(day int) report.DailyRecord {
	key := time.Date(v.year, v.month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	return v.rows[key]
}

// monthSummary folds the visible month's rows. Cost goes absent as soon
// as one day with events has no resolvable price.
func (v *DailyView) monthSummary() report.Summary {
	daysInMonth := time.Date(v.year, v.month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	var monthRows []report.DailyRecord
	for day := 1; day <= daysInMonth; day++ {
		if r := v.dayRecord(day); r.Date != "" {
			monthRows = append(monthRows, r)
		}
	}
	return report.Summarize(monthRows)
}

func (v *DailyView) Render(width, height int, compact bool) string {
	cardWidth := width - 4

	card := components.Card{
		Title:   theme.AnimatedGradientText(fmt.Sprintf("%s %d", v.month.String(), v.year), v.AnimTick),
		Width:   cardWidth,
		Compact: compact,
	}

	innerW := card.InnerWidth()
	var sections []string

	sum := v.monthSummary()

	// 5 stat cards: Cost, Input, Output, Cached, Reasoning
	statGap := 2
	statW := (innerW - statGap*4) / 5
	if statW < 10 {
		statW = 10
	}

	costValue := "—"
	if sum.CostUSD != nil {
		costValue = fmt.Sprintf("$%.2f", *sum.CostUSD)
	}

	stats := []components.StatCard{
		{Value: costValue, Label: i18n.T("cost"), Width: statW, Color: theme.ColorSkyBlue},
		{Value: components.FormatCompact(sum.Totals.InputTokens), Label: i18n.T("input_tokens"), Width: statW, Color: theme.ColorLavender},
		{Value: components.FormatCompact(sum.Totals.OutputTokens), Label: i18n.T("output_tokens"), Width: statW, Color: theme.ColorMauve},
		{Value: components.FormatCompact(sum.Totals.CachedInputTokens), Label: i18n.T("cached_tokens"), Width: statW, Color: theme.ColorPeach},
		{Value: components.FormatCompact(sum.Totals.ReasoningOutputTokens), Label: i18n.T("reasoning_tokens"), Width: statW, Color: theme.ColorGold},
	}

	sections = append(sections, components.CenterBlock(components.RenderStatRow(stats, statGap), innerW))
	sections = append(sections, "")
	sections = append(sections, v.renderCalendar(innerW))

	card.Content = strings.Join(sections, "\n")
	return card.Render()
}

func (v *DailyView) renderCalendar(innerWidth int) string {
	cellWidth := innerWidth / 7
	if cellWidth < 10 {
		cellWidth = 10
	}
	if cellWidth > 18 {
		cellWidth = 18
	}

	dayNames := []string{
		i18n.T("day_sun"), i18n.T("day_mon"), i18n.T("day_tue"), i18n.T("day_wed"),
		i18n.T("day_thu"), i18n.T("day_fri"), i18n.T("day_sat"),
	}
	var headerCells []string
	for i, d := range dayNames {
		style := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
		if i == 0 || i == 6 { // Sun, Sat
			style = style.Foreground(theme.ColorWeekendRed)
		} else {
			style = style.Foreground(theme.ColorMutedText)
		}
		headerCells = append(headerCells, style.Render(d))
	}
	header := lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, strings.Join(headerCells, ""))

	firstDay := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(v.year, v.month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	weekday := int(firstDay.Weekday()) // Sunday=0 ... Saturday=6

	var rows []string
	rows = append(rows, header)

	var currentWeek []int
	for i := 0; i < weekday; i++ {
		currentWeek = append(currentWeek, 0)
	}

	for day := 1; day <= daysInMonth; day++ {
		currentWeek = append(currentWeek, day)

		if len(currentWeek) == 7 {
			rows = append(rows, v.renderWeekRow(currentWeek, cellWidth, innerWidth))
			currentWeek = nil
		}
	}

	if len(currentWeek) > 0 {
		for len(currentWeek) < 7 {
			currentWeek = append(currentWeek, 0)
		}
		rows = append(rows, v.renderWeekRow(currentWeek, cellWidth, innerWidth))
	}

	return strings.Join(rows, "\n")
}

// fmtCalToken formats a token count for the calendar cell with aligned suffix and label.
// Number+suffix is right-aligned, then " (label)" with ( at a fixed column.
// e.g. " 12.3K (I )", "  1.2M (O )", "  523  (C )"
func fmtCalToken(n int, label string) string {
	var numPart, suffix string
	if n < 1000 {
		numPart = fmt.Sprintf("%d", n)
		suffix = " " // space placeholder
	} else if n < 1_000_000 {
		numPart = fmt.Sprintf("%.1f", float64(n)/1000)
		suffix = "K"
	} else {
		numPart = fmt.Sprintf("%.1f", float64(n)/1_000_000)
		suffix = "M"
	}
	return fmt.Sprintf("%5s%s (%-2s)", numPart, suffix, label)
}

// isWeekend returns true if the column index is Sunday (0) or Saturday (6).
func isWeekend(colIdx int) bool {
	return colIdx == 0 || colIdx == 6
}

// renderWeekRow renders a week as 7 lines: day number, input, output,
// cached, reasoning, cost, blank spacer.
func (v *DailyView) renderWeekRow(week []int, cellWidth, innerWidth int) string {
	base := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	blank := base.Render("")

	var line1, line2, line3, line4, line5, line6, line7 []string

	for col, day := range week {
		if day == 0 {
			line1 = append(line1, blank)
			line2 = append(line2, blank)
			line3 = append(line3, blank)
			line4 = append(line4, blank)
			line5 = append(line5, blank)
			line6 = append(line6, blank)
			line7 = append(line7, blank)
			continue
		}

		d := v.dayRecord(day)
		dayStr := fmt.Sprintf("%d", day)
		weekend := isWeekend(col)

		if d.Events == 0 {
			dayStyle := base.Foreground(theme.ColorMutedText)
			if weekend {
				dayStyle = base.Foreground(theme.ColorWeekendRed)
			}
			line1 = append(line1, dayStyle.Render(dayStr))
			line2 = append(line2, blank)
			line3 = append(line3, blank)
			line4 = append(line4, blank)
			line5 = append(line5, blank)
			line6 = append(line6, blank)
			line7 = append(line7, blank)
			continue
		}

		// Day number background: weekday = colormap color, weekend = faded white
		bgColor := dayColumnColors[col]

		dayFg := theme.ColorBaseBg
		if weekend {
			dayFg = theme.ColorWeekendRed
		}
		line1 = append(line1, base.Background(bgColor).Foreground(dayFg).Render(dayStr))
		ds := base.Foreground(theme.ColorBodyText)
		line2 = append(line2, ds.Render(fmtCalToken(d.InputTokens, "I")))
		line3 = append(line3, ds.Render(fmtCalToken(d.OutputTokens, "O")))
		line4 = append(line4, ds.Render(fmtCalToken(d.CachedInputTokens, "C")))
		line5 = append(line5, ds.Render(fmtCalToken(d.ReasoningOutputTokens, "R")))
		if d.CostUSD != nil {
			line6 = append(line6, ds.Render(fmt.Sprintf("$%.2f", *d.CostUSD)))
		} else {
			line6 = append(line6, blank)
		}
		line7 = append(line7, blank)
	}

	place := func(cells []string) string {
		return lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, strings.Join(cells, ""))
	}

	return place(line1) + "\n" + place(line2) + "\n" + place(line3) + "\n" + place(line4) + "\n" + place(line5) + "\n" + place(line6) + "\n" + place(line7)
}
