package domain

import (
	"sort"
	"time"
)

// Totals is a running sum over a set of usage events.
// TotalTokens sums the per-event totals as reported by the producer; it is
// never recomputed from the sub-fields.
type Totals struct {
	Events                int
	InputTokens           int
	CachedInputTokens     int
	OutputTokens          int
	ReasoningOutputTokens int
	TotalTokens           int
}

// Add folds one event into the totals.
func (t *Totals) Add(e UsageEvent) {
	t.Events++
	t.InputTokens += e.InputTokens
	t.CachedInputTokens += e.CachedInputTokens
	t.OutputTokens += e.OutputTokens
	t.ReasoningOutputTokens += e.ReasoningOutputTokens
	t.TotalTokens += e.TotalTokens
}

// DailyAggregate holds per-UTC-date sums plus an optional derived cost.
// CostUSD is nil when no price table resolved for the day's events.
type DailyAggregate struct {
	Date    string // "2006-01-02", UTC
	Totals  Totals
	CostUSD *float64
}

// Summarize folds all events into a single running total.
func Summarize(events []UsageEvent) Totals {
	var t Totals
	for _, e := range events {
		t.Add(e)
	}
	return t
}

// SummarizeWindow folds only events with start <= ts < end.
// Events outside the window are ignored, not buffered.
func SummarizeWindow(events []UsageEvent, start, end time.Time) Totals {
	var t Totals
	for _, e := range events {
		if e.Timestamp.Before(start) || !e.Timestamp.Before(end) {
			continue
		}
		t.Add(e)
	}
	return t
}

// AggregateDaily groups events by UTC calendar date. The fold is
// commutative: replaying the same events in any order yields identical
// buckets. Buckets are returned sorted by date ascending.
func AggregateDaily(events []UsageEvent) []DailyAggregate {
	groups := make(map[string]*DailyAggregate)

	for _, e := range events {
		if e.Timestamp.IsZero() {
			continue
		}
		key := e.Timestamp.UTC().Format("2006-01-02")
		agg, ok := groups[key]
		if !ok {
			agg = &DailyAggregate{Date: key}
			groups[key] = agg
		}
		agg.Totals.Add(e)
	}

	result := make([]DailyAggregate, 0, len(groups))
	for _, agg := range groups {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// FillMissingDays inserts zero-valued rows so that the range from start
// through end (UTC dates) is continuous. A zero start uses the first row's
// date; a zero end uses today.
func FillMissingDays(rows []DailyAggregate, start, end time.Time) []DailyAggregate {
	if len(rows) == 0 && start.IsZero() {
		return rows
	}
	if start.IsZero() {
		t, err := time.Parse("2006-01-02", rows[0].Date)
		if err != nil {
			return rows
		}
		start = t
	}
	if end.IsZero() {
		end = time.Now().UTC()
	}
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	byDate := make(map[string]DailyAggregate, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	var out []DailyAggregate
	for cur := startDay; !cur.After(endDay); cur = cur.AddDate(0, 0, 1) {
		key := cur.Format("2006-01-02")
		if r, ok := byDate[key]; ok {
			out = append(out, r)
		} else {
			out = append(out, DailyAggregate{Date: key})
		}
	}
	return out
}

// TrimLeadingZeroDays drops filler rows from the front of the range.
func TrimLeadingZeroDays(rows []DailyAggregate) []DailyAggregate {
	i := 0
	for i < len(rows) && rows[i].Totals == (Totals{}) && rows[i].CostUSD == nil {
		i++
	}
	return rows[i:]
}
