package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/anomredux/codex-smi/internal/pricing"
)

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if !a.ready {
			a.ready = true
			return a, doTick(time.Duration(a.Config.General.Interval) * time.Second)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleGlobalKey(msg)

	case BlinkMsg:
		a.animTick++
		a.propagateAnimTick()
		return a, doBlink()

	case TickMsg:
		a.notifications.Expire()
		return a, tea.Batch(
			a.loadData,
			doTick(time.Duration(a.Config.General.Interval)*time.Second),
		)

	case logChangedMsg:
		return a, tea.Batch(a.loadData, a.waitForChange)

	case dataLoadedMsg:
		if msg.err != nil {
			a.notifications.SetMessage("Log: " + msg.err.Error())
			return a, nil
		}
		a.processData(msg.res, time.Now().UTC())
		return a, nil

	case pricingMsg:
		if msg.err != nil {
			a.notifications.SetMessage("Pricing: " + msg.err.Error())
		} else if msg.table != nil {
			base, _ := pricing.LoadDefault()
			if base == nil {
				base = pricing.NewTable()
			}
			base.Merge(msg.table)
			if a.overlay != nil {
				base.Merge(a.overlay)
			}
			a.calc.UpdateTable(base)
			a.processData(a.res, time.Now().UTC())
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case ViewLive:
		cmd = a.liveView.Update(msg)
	case ViewDaily:
		cmd = a.dailyView.Update(msg)
	case ViewHistory:
		cmd = a.historyView.Update(msg)
	}
	if cmd != nil {
		return a, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "1":
		a.activeView = ViewLive
	case "2":
		a.activeView = ViewDaily
	case "3":
		a.activeView = ViewHistory
	case "tab":
		a.activeView = (a.activeView + 1) % ViewCount
	case "shift+tab":
		a.activeView = (a.activeView + ViewCount - 1) % ViewCount
	case "r":
		a.loading = true
		return a, a.loadData
	}
	return a, nil
}

func (a *App) propagateAnimTick() {
	a.liveView.AnimTick = a.animTick
	a.dailyView.AnimTick = a.animTick
	a.historyView.AnimTick = a.animTick
}
