package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/anomredux/codex-smi/internal/i18n"
	"github.com/anomredux/codex-smi/internal/theme"
	"github.com/anomredux/codex-smi/internal/ui/components"
)

func (a App) View() string {
	if !a.ready {
		return i18n.T("initializing")
	}

	if a.width < 80 || a.height < 24 {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.ColorPeach).Render(
				i18n.T("terminal_too_small")+"\n"+
					i18n.Tf("current_size", a.width, a.height),
			),
		)
	}

	compact := a.height < 30

	tabBar := a.renderTabs()
	statusBar := components.StatusBar{Width: a.width}.Render()

	contentHeight := a.height - 4 // 2 tab + 2 status
	if contentHeight < 5 {
		contentHeight = 5
	}

	content := a.renderActiveView(contentHeight, compact)
	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	banner := a.notifications.RenderBanner(a.width)
	if banner != "" {
		return tabBar + "\n" + content + "\n" + banner
	}

	return tabBar + "\n" + content + "\n" + statusBar
}

func (a App) renderTabs() string {
	viewNames := []string{i18n.T("tab_live"), i18n.T("tab_daily"), i18n.T("tab_history")}

	return components.TabBar{
		ViewNames:   viewNames,
		ActiveIndex: int(a.activeView),
		Width:       a.width,
		LogPath:     a.LogPath,
	}.Render()
}

func (a App) renderActiveView(contentHeight int, compact bool) string {
	switch a.activeView {
	case ViewLive:
		return a.liveView.Render(a.width, contentHeight, compact)
	case ViewDaily:
		return a.dailyView.Render(a.width, contentHeight, compact)
	case ViewHistory:
		return a.historyView.Render(a.width, contentHeight, compact)
	}
	return ""
}
