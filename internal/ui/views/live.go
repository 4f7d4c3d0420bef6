package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/anomredux/codex-smi/internal/domain"
	"github.com/anomredux/codex-smi/internal/i18n"
	"github.com/anomredux/codex-smi/internal/session"
	"github.com/anomredux/codex-smi/internal/theme"
	"github.com/anomredux/codex-smi/internal/ui/components"
)

type LiveView struct {
	win    session.Window
	now    time.Time
	totals domain.Totals
	cost   *float64
	tz     *time.Location

	AnimTick uint

	// Cached burn rate (recomputed only on data change)
	burn burnCache
}

type burnCache struct {
	tokensPerMin float64
	costPerHour  float64
	hasCost      bool
	hasData      bool
}

func NewLiveView(tz *time.Location) *LiveView {
	return &LiveView{tz: tz}
}

// SetData replaces the window snapshot. totals covers only the events
// inside the window; cost is nil when any of them had no resolvable price.
func (v *LiveView) SetData(win session.Window, now time.Time, totals domain.Totals, cost *float64) {
	v.win = win
	v.now = now.UTC()
	v.totals = totals
	v.cost = cost
	v.recomputeBurn()
}

func (v *LiveView) recomputeBurn() {
	v.burn = burnCache{}
	if v.win.Status != session.StatusActive || v.totals.Events == 0 {
		return
	}

	elapsed := v.elapsed()
	if elapsed < time.Minute {
		elapsed = time.Minute
	}

	v.burn.hasData = true
	v.burn.tokensPerMin = float64(v.totals.InputTokens+v.totals.OutputTokens) / elapsed.Minutes()
	if v.cost != nil {
		v.burn.hasCost = true
		v.burn.costPerHour = *v.cost / elapsed.Hours()
	}
}

// elapsed is capped at the window length once the end has passed.
func (v *LiveView) elapsed() time.Duration {
	end := v.now
	if end.After(v.win.End) {
		end = v.win.End
	}
	return end.Sub(v.win.Start)
}

func (v *LiveView) Update(msg tea.Msg) tea.Cmd {
	return nil
}

func (v *LiveView) Render(width, height int, compact bool) string {
	cardWidth := width - 4

	var sections []string
	sections = append(sections, v.renderWindow(cardWidth, compact))
	sections = append(sections, v.renderUsage(cardWidth, compact))
	sections = append(sections, v.renderBurnRate(cardWidth, compact))

	return strings.Join(sections, "\n")
}

// ── Section 1: Session Window — boundaries + progress ──

func (v *LiveView) renderWindow(cardWidth int, compact bool) string {
	card := components.Card{
		Title:   theme.AnimatedGradientText(i18n.T("session_window"), v.AnimTick),
		Width:   cardWidth,
		Compact: compact,
	}

	if v.win.Status != session.StatusActive {
		key := "no_session_window"
		if v.win.Status == session.StatusExpired {
			key = "window_expired"
		}
		card.Content = theme.MutedStyle.Render(i18n.T(key))
		return card.Render()
	}

	innerW := card.InnerWidth()

	start := v.win.Start.In(v.tz)
	end := v.win.End.In(v.tz)
	boundary := fmt.Sprintf("%s  →  %s  %s",
		theme.HeaderStyle.Render(start.Format("Jan 02 15:04")),
		theme.HeaderStyle.Render(end.Format("Jan 02 15:04")),
		theme.MutedStyle.Render(start.Format("MST")))

	elapsed := v.elapsed()
	remaining := v.win.End.Sub(v.now)
	if remaining < 0 {
		remaining = 0
	}
	timing := theme.BodyStyle.Render(components.FormatDuration(elapsed)) +
		theme.MutedStyle.Render(" "+i18n.T("elapsed")+"  ·  ") +
		theme.BodyStyle.Render(components.FormatDuration(remaining)) +
		theme.MutedStyle.Render(" "+i18n.T("remaining"))

	bar := components.ProgressBar{
		Percent: elapsed.Seconds() / session.WindowDuration.Seconds(),
		Width:   innerW - 4,
	}

	content := components.CenterText(boundary, innerW) + "\n\n" +
		components.CenterText(bar.Render(), innerW) + "\n\n" +
		components.CenterText(timing, innerW)

	card.Content = content
	return card.Render()
}

// ── Section 2: Window Usage — 4 Stat Cards ──

func (v *LiveView) renderUsage(cardWidth int, compact bool) string {
	card := components.Card{
		Title:   theme.AnimatedGradientText(i18n.T("window_usage"), v.AnimTick),
		Width:   cardWidth,
		Compact: compact,
	}

	if v.win.Status != session.StatusActive {
		card.Content = theme.MutedStyle.Render(i18n.T("no_data"))
		return card.Render()
	}

	innerW := card.InnerWidth()
	statGap := 2
	statW := (innerW - statGap*3) / 4
	if statW < 12 {
		statW = 12
	}

	costValue := "—"
	if v.cost != nil {
		costValue = fmt.Sprintf("$%.2f", *v.cost)
	}

	// Gradient: SkyBlue → Lavender → Mauve → Gold
	stats := []components.StatCard{
		{
			Value: components.FormatNumber(v.totals.InputTokens),
			Sub:   i18n.Tf("cached", components.FormatCompact(v.totals.CachedInputTokens)),
			Label: i18n.T("input_tokens"),
			Width: statW,
			Color: theme.ColorSkyBlue,
		},
		{
			Value: components.FormatNumber(v.totals.OutputTokens),
			Sub:   i18n.Tf("reasoning", components.FormatCompact(v.totals.ReasoningOutputTokens)),
			Label: i18n.T("output_tokens"),
			Width: statW,
			Color: theme.ColorLavender,
		},
		{
			Value: components.FormatNumber(v.totals.TotalTokens),
			Label: i18n.T("total_tokens"),
			Width: statW,
			Color: theme.ColorMauve,
		},
		{
			Value: costValue,
			Label: i18n.T("session_cost"),
			Width: statW,
			Color: theme.ColorGold,
		},
	}

	card.Content = components.CenterBlock(components.RenderStatRow(stats, statGap), innerW)
	return card.Render()
}

// ── Section 3: Burn Rate — 2 Stat Cards ──

func (v *LiveView) renderBurnRate(cardWidth int, compact bool) string {
	card := components.Card{
		Title:   theme.AnimatedGradientText(i18n.T("burn_rate"), v.AnimTick),
		Width:   cardWidth,
		Compact: compact,
	}

	bc := v.burn
	if !bc.hasData {
		card.Content = theme.MutedStyle.Render(i18n.T("no_data"))
		return card.Render()
	}

	innerW := card.InnerWidth()
	statGap := 2
	halfW := (innerW - statGap) / 2
	if halfW < 14 {
		halfW = 14
	}

	costPerHour := "—"
	if bc.hasCost {
		costPerHour = fmt.Sprintf("$%.2f", bc.costPerHour)
	}

	stats := []components.StatCard{
		{
			Value: components.FormatNumber(int(bc.tokensPerMin)),
			Label: i18n.T("tokens_per_min"),
			Width: halfW,
			Color: theme.ColorPeach,
		},
		{
			Value: costPerHour,
			Label: i18n.T("cost_per_hour"),
			Width: halfW,
			Color: theme.ColorGold,
		},
	}

	card.Content = components.CenterBlock(components.RenderStatRow(stats, statGap), innerW)
	return card.Render()
}
