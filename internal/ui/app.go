package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/anomredux/codex-smi/internal/config"
	"github.com/anomredux/codex-smi/internal/extractor"
	"github.com/anomredux/codex-smi/internal/i18n"
	"github.com/anomredux/codex-smi/internal/pricing"
	"github.com/anomredux/codex-smi/internal/session"
	"github.com/anomredux/codex-smi/internal/ui/views"
)

type ViewType int

const (
	ViewLive ViewType = iota
	ViewDaily
	ViewHistory
	ViewCount // sentinel: number of views
)

// TickMsg triggers periodic data refresh.
type TickMsg time.Time

// BlinkMsg triggers UI-only refresh for smooth animation (250ms).
type BlinkMsg time.Time

// logChangedMsg fires when the watcher sees the log file grow or rotate.
type logChangedMsg struct{}

// dataLoadedMsg carries a freshly scanned log.
type dataLoadedMsg struct {
	res extractor.Result
	err error
}

// pricingMsg carries dynamically fetched pricing data from Helicone.
type pricingMsg struct {
	table *pricing.Table
	err   error
}

type App struct {
	activeView ViewType

	// Views
	liveView    *views.LiveView
	dailyView   *views.DailyView
	historyView *views.HistoryView

	// Session latch carried across refreshes. The log is append-only, so
	// each rescan feeds only the records past replayed into the tracker;
	// a shrunk record count means rotation and resets both.
	tracker  session.Tracker
	replayed int

	// Shared data
	res     extractor.Result
	Config  config.Config
	calc    *pricing.Calculator
	overlay *pricing.Table // prices file + per-rate flags, layered over fetched prices
	tz      *time.Location

	// Animation state
	animTick uint

	// Notifications
	notifications *NotificationManager

	// Data
	LogPath string

	// Log watcher wakeups; nil disables watch-driven reloads
	changes <-chan struct{}

	// Terminal
	width  int
	height int

	// State
	loading bool
	ready   bool
}

// NewApp wires the TUI. calc must already carry the layered price table;
// overlay holds only the prices-file/flag layer so fetched prices can be
// merged underneath it later.
func NewApp(cfg config.Config, logPath string, calc *pricing.Calculator, overlay *pricing.Table, changes <-chan struct{}) App {
	i18n.SetLanguage(cfg.General.Language)

	tz, err := time.LoadLocation(cfg.General.Timezone)
	if err != nil {
		tz = time.UTC
	}

	return App{
		activeView:    ViewLive,
		Config:        cfg,
		calc:          calc,
		overlay:       overlay,
		tz:            tz,
		LogPath:       logPath,
		changes:       changes,
		liveView:      views.NewLiveView(tz),
		dailyView:     views.NewDailyView(),
		historyView:   views.NewHistoryView(tz, calc),
		notifications: NewNotificationManager(cfg.Notifications.Bell),
		loading:       true,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("codex-smi"),
		a.loadData,
		doBlink(),
	}
	if a.Config.Pricing.AutoFetch {
		cmds = append(cmds, a.fetchPricing)
	}
	if a.changes != nil {
		cmds = append(cmds, a.waitForChange)
	}
	return tea.Batch(cmds...)
}

func doBlink() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return BlinkMsg(t)
	})
}

func doTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
