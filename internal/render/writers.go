package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/anomredux/codex-smi/internal/domain"
	"github.com/anomredux/codex-smi/internal/pricing"
	"github.com/anomredux/codex-smi/internal/report"
)

// Format names accepted by the writers.
const (
	FormatTable  = "table"
	FormatTSV    = "tsv"
	FormatCSV    = "csv"
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
)

// Options carries the shared rendering switches.
type Options struct {
	Format       string
	Border       string
	NoHeader     bool
	IncludeModel bool
}

var dailyFields = []string{
	"date", "events", "input_tokens", "cached_input_tokens",
	"output_tokens", "reasoning_output_tokens", "total_tokens",
}

// WriteDaily renders the daily rollup in the selected format.
func WriteDaily(rows []report.DailyRecord, opts Options, w io.Writer) error {
	switch opts.Format {
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range rows {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		if rows == nil {
			rows = []report.DailyRecord{}
		}
		return json.NewEncoder(w).Encode(rows)
	case FormatTSV, FormatCSV:
		return writeDailyDelimited(rows, opts, w)
	default:
		writeDailyTable(rows, opts, w)
		return nil
	}
}

func writeDailyDelimited(rows []report.DailyRecord, opts Options, w io.Writer) error {
	cw := csv.NewWriter(w)
	if opts.Format == FormatTSV {
		cw.Comma = '\t'
	}
	defer cw.Flush()

	withCost := false
	for _, r := range rows {
		if r.CostUSD != nil {
			withCost = true
			break
		}
	}

	fields := dailyFields
	if withCost {
		fields = append(append([]string{}, fields...), "cost_usd")
	}
	if !opts.NoHeader {
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	for _, r := range rows {
		rec := []string{
			r.Date,
			strconv.Itoa(r.Events),
			strconv.Itoa(r.InputTokens),
			strconv.Itoa(r.CachedInputTokens),
			strconv.Itoa(r.OutputTokens),
			strconv.Itoa(r.ReasoningOutputTokens),
			strconv.Itoa(r.TotalTokens),
		}
		if withCost {
			rec = append(rec, formatCost(r.CostUSD))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

func writeDailyTable(rows []report.DailyRecord, opts Options, w io.Writer) {
	withCost := false
	for _, r := range rows {
		if r.CostUSD != nil {
			withCost = true
			break
		}
	}

	headers := []string{"date", "input (cached)", "output (reasoning)", "total"}
	if withCost {
		headers = append(headers, "$")
	}

	var body [][]string
	for _, r := range rows {
		row := []string{
			r.Date,
			fmt.Sprintf("%s (%s)", FormatTokens(r.InputTokens), FormatTokens(r.CachedInputTokens)),
			fmt.Sprintf("%s (%s)", FormatTokens(r.OutputTokens), FormatTokens(r.ReasoningOutputTokens)),
			FormatTokens(r.TotalTokens),
		}
		if withCost {
			row = append(row, formatCost(r.CostUSD))
		}
		body = append(body, row)
	}

	// Summary footer behind a rule.
	sum := report.Summarize(rows)
	footer := []string{
		"sum",
		fmt.Sprintf("%s (%s)", FormatTokens(sum.Totals.InputTokens), FormatTokens(sum.Totals.CachedInputTokens)),
		fmt.Sprintf("%s (%s)", FormatTokens(sum.Totals.OutputTokens), FormatTokens(sum.Totals.ReasoningOutputTokens)),
		FormatTokens(sum.Totals.TotalTokens),
	}
	if withCost {
		footer = append(footer, formatCost(sum.CostUSD))
	}
	body = append(body, footer)

	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	if withCost {
		rightAlign[4] = true
	}

	Table{
		Headers:    headers,
		Rows:       body,
		RightAlign: rightAlign,
		RuleBefore: map[int]bool{len(body) - 1: true},
		Border:     opts.Border,
		NoHeader:   opts.NoHeader,
	}.Write(w)
}

// WriteLive renders the session-window snapshot. An unavailable window
// renders dashes in table form and keeps start/end absent in JSON forms.
func WriteLive(snap report.LiveSnapshot, opts Options, w io.Writer) error {
	switch opts.Format {
	case FormatNDJSON, FormatJSON:
		return json.NewEncoder(w).Encode(snap)
	case FormatTSV, FormatCSV:
		cw := csv.NewWriter(w)
		if opts.Format == FormatTSV {
			cw.Comma = '\t'
		}
		defer cw.Flush()
		fields := []string{
			"mode", "start", "end", "now", "duration_sec", "input_tokens",
			"cached_input_tokens", "output_tokens", "reasoning_output_tokens",
			"total_tokens", "cost_usd",
		}
		if !opts.NoHeader {
			if err := cw.Write(fields); err != nil {
				return err
			}
		}
		rec := []string{
			snap.Mode, snap.Start, snap.End, snap.Now,
			strconv.FormatInt(snap.DurationSec, 10),
			strconv.Itoa(snap.InputTokens),
			strconv.Itoa(snap.CachedInputTokens),
			strconv.Itoa(snap.OutputTokens),
			strconv.Itoa(snap.ReasoningOutputTokens),
			strconv.Itoa(snap.TotalTokens),
			formatCost(snap.CostUSD),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
		return cw.Error()
	default:
		writeLiveTable(snap, opts, w)
		return nil
	}
}

func writeLiveTable(snap report.LiveSnapshot, opts Options, w io.Writer) {
	headers := []string{"start", "end", "dur", "input (cached)", "output (reasoning)", "total", "$"}

	var row []string
	if snap.Available() {
		row = []string{
			snap.Start,
			snap.End,
			formatDurationSec(snap.DurationSec),
			fmt.Sprintf("%s (%s)", FormatTokens(snap.InputTokens), FormatTokens(snap.CachedInputTokens)),
			fmt.Sprintf("%s (%s)", FormatTokens(snap.OutputTokens), FormatTokens(snap.ReasoningOutputTokens)),
			FormatTokens(snap.TotalTokens),
			formatCost(snap.CostUSD),
		}
	} else {
		// No determinable window: dashes, not zeros.
		row = []string{"—", "—", "—", "— (—)", "— (—)", "—", ""}
		if opts.Border == BorderASCII {
			row = []string{"-", "-", "-", "- (-)", "- (-)", "-", ""}
		}
	}

	Table{
		Headers:    headers,
		Rows:       [][]string{row},
		RightAlign: map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true},
		Border:     opts.Border,
		NoHeader:   opts.NoHeader,
	}.Write(w)
}

func formatDurationSec(sec int64) string {
	return fmt.Sprintf("%02d:%02d", sec/3600, sec%3600/60)
}

var eventFields = []string{
	"ts", "input_tokens", "cached_input_tokens", "output_tokens",
	"reasoning_output_tokens", "total_tokens",
}

// WriteEvents renders the per-event view. calc may be nil (no pricing).
func WriteEvents(events []domain.UsageEvent, calc *pricing.Calculator, opts Options, w io.Writer) error {
	switch opts.Format {
	case FormatNDJSON, FormatJSON:
		return writeEventsJSON(events, calc, opts, w)
	case FormatTSV, FormatCSV:
		return writeEventsDelimited(events, opts, w)
	default:
		writeEventsTable(events, calc, opts, w)
		return nil
	}
}

type eventJSON struct {
	TS                    string   `json:"ts"`
	InputTokens           int      `json:"input_tokens"`
	CachedInputTokens     int      `json:"cached_input_tokens"`
	OutputTokens          int      `json:"output_tokens"`
	ReasoningOutputTokens int      `json:"reasoning_output_tokens"`
	TotalTokens           int      `json:"total_tokens"`
	Model                 string   `json:"model,omitempty"`
	CostUSD               *float64 `json:"cost_usd,omitempty"`
}

func eventRow(e domain.UsageEvent, calc *pricing.Calculator, includeModel bool) eventJSON {
	row := eventJSON{
		TS:                    e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		InputTokens:           e.InputTokens,
		CachedInputTokens:     e.CachedInputTokens,
		OutputTokens:          e.OutputTokens,
		ReasoningOutputTokens: e.ReasoningOutputTokens,
		TotalTokens:           e.TotalTokens,
	}
	if includeModel {
		row.Model = e.Model
	}
	if calc != nil {
		if cost, ok := calc.Cost(e); ok {
			row.CostUSD = &cost
		}
	}
	return row
}

func writeEventsJSON(events []domain.UsageEvent, calc *pricing.Calculator, opts Options, w io.Writer) error {
	rows := make([]eventJSON, 0, len(events))
	for _, e := range events {
		rows = append(rows, eventRow(e, calc, opts.IncludeModel))
	}
	enc := json.NewEncoder(w)
	if opts.Format == FormatJSON {
		return enc.Encode(rows)
	}
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeEventsDelimited(events []domain.UsageEvent, opts Options, w io.Writer) error {
	cw := csv.NewWriter(w)
	if opts.Format == FormatTSV {
		cw.Comma = '\t'
	}
	defer cw.Flush()

	fields := eventFields
	if opts.IncludeModel {
		fields = append(append([]string{}, fields...), "model")
	}
	if !opts.NoHeader {
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	for _, e := range events {
		rec := []string{
			e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.CachedInputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.Itoa(e.ReasoningOutputTokens),
			strconv.Itoa(e.TotalTokens),
		}
		if opts.IncludeModel {
			rec = append(rec, e.Model)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

func writeEventsTable(events []domain.UsageEvent, calc *pricing.Calculator, opts Options, w io.Writer) {
	headers := []string{"ts", "input (cached)", "output (reasoning)", "total", "$"}
	if opts.IncludeModel {
		headers = append(headers, "model")
	}

	var body [][]string
	for _, e := range events {
		var costCell string
		if calc != nil {
			if cost, ok := calc.Cost(e); ok {
				costCell = fmt.Sprintf("%.2f", cost)
			}
		}
		row := []string{
			e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			fmt.Sprintf("%s (%s)", FormatTokens(e.InputTokens), FormatTokens(e.CachedInputTokens)),
			fmt.Sprintf("%s (%s)", FormatTokens(e.OutputTokens), FormatTokens(e.ReasoningOutputTokens)),
			FormatTokens(e.TotalTokens),
			costCell,
		}
		if opts.IncludeModel {
			row = append(row, e.Model)
		}
		body = append(body, row)
	}

	Table{
		Headers:    headers,
		Rows:       body,
		RightAlign: map[int]bool{1: true, 2: true, 3: true, 4: true},
		Border:     opts.Border,
		NoHeader:   opts.NoHeader,
	}.Write(w)
}
