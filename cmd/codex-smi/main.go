package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/anomredux/codex-smi/internal/config"
	"github.com/anomredux/codex-smi/internal/domain"
	"github.com/anomredux/codex-smi/internal/extractor"
	"github.com/anomredux/codex-smi/internal/pricing"
	"github.com/anomredux/codex-smi/internal/render"
	"github.com/anomredux/codex-smi/internal/report"
	"github.com/anomredux/codex-smi/internal/tail"
	"github.com/anomredux/codex-smi/internal/ui"
)

// version is set by goreleaser via ldflags.
var version = "dev"

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath(), "config file path")
		logPath    = flag.String("log", "", "Codex TUI log file (default ~/.codex/log/codex-tui.log)")
		noTUI      = flag.Bool("no-tui", false, "print a report to stdout instead of the TUI")
		view       = flag.String("view", "daily", "report for --no-tui: live, daily, events")
		format     = flag.String("format", "table", "output format: table, tsv, csv, ndjson, json")
		border     = flag.String("border", "unicode", "table border style: unicode, ascii")
		noHeader   = flag.Bool("no-header", false, "omit the header row in tsv/csv/table output")
		withModel  = flag.Bool("include-model", false, "include the model column in events output")
		timezone   = flag.String("timezone", "", "override display timezone (e.g. Asia/Seoul)")

		last       = flag.Int("last", 0, "events view: only the last N events")
		sinceHours = flag.Int("since-hours", 0, "only events from the last N hours")
		sinceDays  = flag.Int("since-days", 0, "only events from the last N days")
		sinceDate  = flag.String("since-date", "", "only events since this UTC date (YYYY-MM-DD)")
		lastMonth  = flag.Bool("last-month", false, "daily view: report the previous calendar month")

		pricesPath    = flag.String("prices", "", "JSON price table (per-1k or per-1M USD rates)")
		noAutoPrices  = flag.Bool("no-auto-prices", false, "disable the Helicone price fetch")
		refreshPrices = flag.Bool("refresh-prices", false, "refetch prices even if the cache is fresh")
		cacheTTL      = flag.Int("cache-ttl-hours", 0, "price cache lifetime (default from config)")
		provider      = flag.String("provider", "", "price provider passed to Helicone (default from config)")
		forcedModel   = flag.String("forced-model", "", "price every event as this model")
		cachedPricing = flag.Bool("cached-pricing", false, "bill cached input at the cached rate instead of input-only")

		usdInput       = flag.Float64("usd-per-1k-input", 0, "override the input rate (USD per 1k tokens)")
		usdCachedInput = flag.Float64("usd-per-1k-cached-input", 0, "override the cached-input rate")
		usdOutput      = flag.Float64("usd-per-1k-output", 0, "override the output rate")
		usdReasoning   = flag.Float64("usd-per-1k-reasoning", 0, "override the reasoning-output rate")

		initConfig  = flag.Bool("init-config", false, "write a default config file and exit")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("codex-smi", version)
		return
	}

	if *initConfig {
		if _, err := os.Stat(*configPath); err == nil {
			fmt.Fprintf(os.Stderr, "Config already exists: %s\n", *configPath)
			os.Exit(1)
		}
		if err := config.Save(config.DefaultConfig(), *configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", *configPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI overrides
	if *timezone != "" {
		if _, err := time.LoadLocation(*timezone); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid timezone: %s\n", *timezone)
			os.Exit(1)
		}
		cfg.General.Timezone = *timezone
	}
	if *provider != "" {
		cfg.Pricing.Provider = *provider
	}
	if *cacheTTL > 0 {
		cfg.Pricing.CacheTTLHours = *cacheTTL
	}
	if *noAutoPrices {
		cfg.Pricing.AutoFetch = false
	}
	if *cachedPricing {
		cfg.Pricing.CachedPricing = true
	}
	if *forcedModel != "" {
		cfg.Pricing.ForcedModel = *forcedModel
	}
	if *pricesPath != "" {
		cfg.Pricing.PricesPath = *pricesPath
	}

	log := *logPath
	if log == "" {
		log = cfg.LogPath()
	}

	if *sinceDate != "" {
		if _, err := time.Parse("2006-01-02", *sinceDate); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --since-date (use YYYY-MM-DD): %s\n", *sinceDate)
			os.Exit(1)
		}
	}

	// Rate flags set on the command line, in field order
	rateFlags := map[string]struct {
		field pricing.RateField
		value *float64
	}{
		"usd-per-1k-input":        {pricing.FieldInput, usdInput},
		"usd-per-1k-cached-input": {pricing.FieldCachedInput, usdCachedInput},
		"usd-per-1k-output":       {pricing.FieldOutput, usdOutput},
		"usd-per-1k-reasoning":    {pricing.FieldReasoning, usdReasoning},
	}
	setRates := make(map[pricing.RateField]float64)
	flag.Visit(func(f *flag.Flag) {
		if rf, ok := rateFlags[f.Name]; ok {
			setRates[rf.field] = *rf.value
		}
	})

	// The overlay holds the prices file and rate flags; it always wins
	// over embedded defaults and fetched prices.
	overlay := pricing.NewTable()
	if cfg.Pricing.PricesPath != "" {
		data, err := os.ReadFile(cfg.Pricing.PricesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading prices: %v\n", err)
			os.Exit(1)
		}
		fileTable, err := pricing.ParsePrices(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing prices: %v\n", err)
			os.Exit(1)
		}
		overlay.Merge(fileTable)
	}
	for field, value := range setRates {
		overlay.Override(field, value)
	}

	table, err := pricing.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading pricing: %v\n", err)
		os.Exit(1)
	}

	// In report mode fetch synchronously; the TUI fetches in the background.
	if *noTUI && cfg.Pricing.AutoFetch {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		ttl := time.Duration(cfg.Pricing.CacheTTLHours) * time.Hour
		if fetched, fetchErr := pricing.LoadOrFetch(ctx, cfg.Pricing.Provider, ttl, *refreshPrices); fetchErr == nil {
			table.Merge(fetched)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: price fetch failed: %v\n", fetchErr)
		}
		cancel()
	}
	table.Merge(overlay)

	mode := pricing.BillingInputOnly
	if cfg.Pricing.CachedPricing {
		mode = pricing.BillingCached
	}
	calc := pricing.NewCalculator(table, mode)
	if cfg.Pricing.ForcedModel != "" {
		calc.SetForcedModel(cfg.Pricing.ForcedModel)
	}

	if *noTUI {
		opts := render.Options{
			Format:       *format,
			Border:       *border,
			NoHeader:     *noHeader,
			IncludeModel: *withModel,
		}
		since := resolveSince(*sinceDate, *sinceDays, *sinceHours)
		runReport(log, *view, opts, calc, since, *last, *lastMonth)
		return
	}

	changes := make(chan struct{}, 1)
	watcher := tail.New(log, time.Duration(cfg.General.Interval)*time.Second, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	watcher.Start()
	defer watcher.Stop()

	app := ui.NewApp(cfg, log, calc, overlay, changes)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveSince turns the time-window flags into a cutoff. Zero means no
// explicit window was asked for.
func resolveSince(sinceDate string, sinceDays, sinceHours int) time.Time {
	now := time.Now().UTC()
	switch {
	case sinceDate != "":
		t, _ := time.Parse("2006-01-02", sinceDate)
		return t
	case sinceDays > 0:
		return now.Add(-time.Duration(sinceDays) * 24 * time.Hour)
	case sinceHours > 0:
		return now.Add(-time.Duration(sinceHours) * time.Hour)
	}
	return time.Time{}
}

func runReport(logPath, view string, opts render.Options, calc *pricing.Calculator, since time.Time, last int, lastMonth bool) {
	f, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Log not found: %s\n", logPath)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	res := extractor.ScanRecords(f)
	f.Close()

	if res.SkipCount > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed record(s)\n", res.SkipCount)
	}

	switch view {
	case "daily":
		var rows []report.DailyRecord
		if lastMonth {
			now := time.Now().UTC()
			monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
			prevStart := monthStart.AddDate(0, -1, 0)
			events := domain.FilterSince(res.Events, prevStart)
			rows = report.BuildDailyRange(events, calc, prevStart, monthStart)
		} else {
			// Without an explicit window, report the current UTC month.
			dailySince := since
			if dailySince.IsZero() {
				now := time.Now().UTC()
				dailySince = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
			}
			events := domain.FilterSince(res.Events, dailySince)
			rows = report.BuildDaily(events, calc, dailySince)
		}
		err = render.WriteDaily(rows, opts, os.Stdout)

	case "events":
		events := res.Events
		if !since.IsZero() {
			events = domain.FilterSince(events, since)
		}
		if last > 0 {
			events = domain.LastN(events, last)
		}
		err = render.WriteEvents(events, calc, opts, os.Stdout)

	case "live":
		now := time.Now().UTC()
		tr := report.Replay(res.Records)
		tr.Provision(now, res.Signals())
		snap := report.BuildLive(res, tr, now, calc)
		err = render.WriteLive(snap, opts, os.Stdout)

	default:
		fmt.Fprintf(os.Stderr, "Unknown view: %s (use live, daily or events)\n", view)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}
