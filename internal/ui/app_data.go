package ui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/anomredux/codex-smi/internal/domain"
	"github.com/anomredux/codex-smi/internal/extractor"
	"github.com/anomredux/codex-smi/internal/pricing"
	"github.com/anomredux/codex-smi/internal/report"
	"github.com/anomredux/codex-smi/internal/session"
)

// loadData rescans the whole log. The scan is idempotent, so a full
// rescan per refresh keeps every view consistent with the file.
func (a App) loadData() tea.Msg {
	f, err := os.Open(a.LogPath)
	if err != nil {
		if os.IsNotExist(err) {
			return dataLoadedMsg{} // empty log, not an error
		}
		return dataLoadedMsg{err: err}
	}
	defer f.Close()

	return dataLoadedMsg{res: extractor.ScanRecords(f)}
}

// fetchPricing resolves the Helicone price table through the on-disk cache.
func (a App) fetchPricing() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ttl := time.Duration(a.Config.Pricing.CacheTTLHours) * time.Hour
	table, err := pricing.LoadOrFetch(ctx, a.Config.Pricing.Provider, ttl, false)
	return pricingMsg{table: table, err: err}
}

// waitForChange blocks until the log watcher reports a write.
func (a App) waitForChange() tea.Msg {
	if _, ok := <-a.changes; !ok {
		return nil
	}
	return logChangedMsg{}
}

func (a *App) processData(res extractor.Result, now time.Time) {
	a.res = res
	events := res.Events

	if a.replayed > len(res.Records) {
		// The log shrank, so it was rotated: restart the latch as on launch.
		a.tracker = session.Tracker{}
		a.replayed = 0
	}
	report.ReplayInto(&a.tracker, res.Records[a.replayed:])
	a.replayed = len(res.Records)

	a.tracker.Provision(now, res.Signals())
	win := a.tracker.At(now)

	var totals domain.Totals
	var costPtr *float64
	if win.Status == session.StatusActive {
		totals = domain.SummarizeWindow(events, win.Start, win.End)
		var winEvents []domain.UsageEvent
		for _, e := range events {
			if !e.Timestamp.Before(win.Start) && e.Timestamp.Before(win.End) {
				winEvents = append(winEvents, e)
			}
		}
		if cost, ok := a.calc.SumCost(winEvents); ok {
			costPtr = &cost
		}
	}

	a.liveView.SetData(win, now, totals, costPtr)
	a.dailyView.SetData(report.BuildDaily(events, a.calc, time.Time{}))
	a.historyView.SetData(events)

	a.loading = false
}
