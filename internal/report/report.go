// Package report assembles extracted events, the session window, and
// pricing into the rows handed to the renderers.
package report

import (
	"time"

	"github.com/anomredux/codex-smi/internal/domain"
	"github.com/anomredux/codex-smi/internal/extractor"
	"github.com/anomredux/codex-smi/internal/pricing"
	"github.com/anomredux/codex-smi/internal/session"
)

// Replay feeds the scanned records through a fresh session tracker in log
// order. Running it again over the same records yields the same state, so
// a one-shot report can rebuild from scratch.
func Replay(records []extractor.Record) *session.Tracker {
	var tr session.Tracker
	ReplayInto(&tr, records)
	return &tr
}

// ReplayInto feeds records into an existing tracker. The log is
// append-only, so a long-running caller can hold one tracker and replay
// only the suffix each rescan adds; consumed latches survive refreshes.
func ReplayInto(tr *session.Tracker, records []extractor.Record) {
	for _, rec := range records {
		switch rec.Kind {
		case extractor.KindUsageLimit:
			tr.ObserveUsageLimit()
		case extractor.KindTokenCount:
			tr.Observe(domain.ActivitySignal{Timestamp: rec.Timestamp, Kind: domain.SignalTokenCount})
		case extractor.KindTaskStarted:
			tr.Observe(domain.ActivitySignal{Timestamp: rec.Timestamp, Kind: domain.SignalTaskStarted})
		case extractor.KindExecCommandBegin:
			tr.Observe(domain.ActivitySignal{Timestamp: rec.Timestamp, Kind: domain.SignalExecCommandBegin})
		}
	}
}

// LiveSnapshot is the session-window row. Start and End are empty when the
// window is unavailable; CostUSD is nil when no price table resolved.
type LiveSnapshot struct {
	Mode                  string   `json:"mode"`
	Start                 string   `json:"start,omitempty"`
	End                   string   `json:"end,omitempty"`
	Now                   string   `json:"now"`
	DurationSec           int64    `json:"duration_sec"`
	InputTokens           int      `json:"input_tokens"`
	CachedInputTokens     int      `json:"cached_input_tokens"`
	OutputTokens          int      `json:"output_tokens"`
	ReasoningOutputTokens int      `json:"reasoning_output_tokens"`
	TotalTokens           int      `json:"total_tokens"`
	CostUSD               *float64 `json:"cost_usd,omitempty"`
}

// Available reports whether the snapshot carries a real window. An
// unavailable window is distinct from a zero-valued session.
func (s LiveSnapshot) Available() bool {
	return s.Start != ""
}

const isoZ = "2006-01-02T15:04:05Z"

// BuildLive resolves the session window at now and folds the events inside
// it. Expired and unset windows report as unavailable rather than stale.
func BuildLive(res extractor.Result, tr *session.Tracker, now time.Time, calc *pricing.Calculator) LiveSnapshot {
	now = now.UTC()
	win := tr.At(now)

	snap := LiveSnapshot{
		Mode: win.Status.String(),
		Now:  now.Format(isoZ),
	}
	if win.Status != session.StatusActive {
		return snap
	}

	snap.Start = win.Start.UTC().Format(isoZ)
	snap.End = win.End.UTC().Format(isoZ)

	upTo := now
	if win.End.Before(upTo) {
		upTo = win.End
	}
	snap.DurationSec = int64(upTo.Sub(win.Start).Seconds())

	var windowEvents []domain.UsageEvent
	for _, e := range res.Events {
		if e.Timestamp.Before(win.Start) || !e.Timestamp.Before(win.End) {
			continue
		}
		windowEvents = append(windowEvents, e)
	}

	t := domain.Summarize(windowEvents)
	snap.InputTokens = t.InputTokens
	snap.CachedInputTokens = t.CachedInputTokens
	snap.OutputTokens = t.OutputTokens
	snap.ReasoningOutputTokens = t.ReasoningOutputTokens
	snap.TotalTokens = t.TotalTokens

	if calc != nil {
		if cost, ok := calc.SumCost(windowEvents); ok {
			snap.CostUSD = &cost
		}
	}
	return snap
}

// DailyRecord is one row of the daily rollup.
type DailyRecord struct {
	Date                  string   `json:"date"`
	Events                int      `json:"events"`
	InputTokens           int      `json:"input_tokens"`
	CachedInputTokens     int      `json:"cached_input_tokens"`
	OutputTokens          int      `json:"output_tokens"`
	ReasoningOutputTokens int      `json:"reasoning_output_tokens"`
	TotalTokens           int      `json:"total_tokens"`
	CostUSD               *float64 `json:"cost_usd,omitempty"`
}

// BuildDaily produces the ordered daily rollup. When since is non-zero the
// range is made continuous through today and leading all-zero days are
// trimmed, matching the monthly report shape.
func BuildDaily(events []domain.UsageEvent, calc *pricing.Calculator, since time.Time) []DailyRecord {
	return buildDaily(events, calc, since, time.Time{})
}

// BuildDailyRange is BuildDaily over a closed calendar range: events at or
// after until are excluded and the filled range stops at until's previous
// day instead of today.
func BuildDailyRange(events []domain.UsageEvent, calc *pricing.Calculator, since, until time.Time) []DailyRecord {
	events = domain.FilterUntil(events, until)
	end := time.Time{}
	if !until.IsZero() {
		end = until.AddDate(0, 0, -1)
	}
	return buildDaily(events, calc, since, end)
}

func buildDaily(events []domain.UsageEvent, calc *pricing.Calculator, since, end time.Time) []DailyRecord {
	aggs := domain.AggregateDaily(events)

	// Per-day costs follow the same fold; a single event with no
	// resolvable price makes the whole day's cost absent.
	costByDate := make(map[string]*float64)
	if calc != nil {
		byDate := make(map[string][]domain.UsageEvent)
		for _, e := range events {
			if e.Timestamp.IsZero() {
				continue
			}
			key := e.Timestamp.UTC().Format("2006-01-02")
			byDate[key] = append(byDate[key], e)
		}
		for date, evs := range byDate {
			if cost, ok := calc.SumCost(evs); ok {
				costByDate[date] = &cost
			}
		}
	}

	if !since.IsZero() {
		aggs = domain.FillMissingDays(aggs, since, end)
	}

	var rows []DailyRecord
	for _, a := range aggs {
		row := DailyRecord{
			Date:                  a.Date,
			Events:                a.Totals.Events,
			InputTokens:           a.Totals.InputTokens,
			CachedInputTokens:     a.Totals.CachedInputTokens,
			OutputTokens:          a.Totals.OutputTokens,
			ReasoningOutputTokens: a.Totals.ReasoningOutputTokens,
			TotalTokens:           a.Totals.TotalTokens,
		}
		if calc != nil {
			if c, ok := costByDate[a.Date]; ok {
				row.CostUSD = c
			} else if a.Totals.Events == 0 {
				zero := 0.0
				row.CostUSD = &zero // an empty day genuinely costs nothing
			}
		}
		rows = append(rows, row)
	}

	if !since.IsZero() {
		rows = trimLeadingZeroRows(rows)
	}
	return rows
}

func trimLeadingZeroRows(rows []DailyRecord) []DailyRecord {
	i := 0
	for i < len(rows) {
		r := rows[i]
		zeroCost := r.CostUSD == nil || *r.CostUSD == 0
		if r.Events != 0 || r.TotalTokens != 0 || r.InputTokens != 0 ||
			r.CachedInputTokens != 0 || r.OutputTokens != 0 ||
			r.ReasoningOutputTokens != 0 || !zeroCost {
			break
		}
		i++
	}
	return rows[i:]
}

// Summary totals the daily rows for the table footer. The aggregate cost
// is absent when any contributing day's cost is absent.
type Summary struct {
	Totals  domain.Totals
	CostUSD *float64
}

// Summarize folds daily rows into a single footer row.
func Summarize(rows []DailyRecord) Summary {
	var s Summary
	var cost float64
	costOK := true
	for _, r := range rows {
		s.Totals.Events += r.Events
		s.Totals.InputTokens += r.InputTokens
		s.Totals.CachedInputTokens += r.CachedInputTokens
		s.Totals.OutputTokens += r.OutputTokens
		s.Totals.ReasoningOutputTokens += r.ReasoningOutputTokens
		s.Totals.TotalTokens += r.TotalTokens
		if r.CostUSD == nil {
			costOK = false
		} else {
			cost += *r.CostUSD
		}
	}
	if costOK && len(rows) > 0 {
		s.CostUSD = &cost
	}
	return s
}
