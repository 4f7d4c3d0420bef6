package extractor

import (
	"bufio"
	"io"
	"strings"

	"github.com/anomredux/codex-smi/internal/domain"
)

// Result holds everything one pass over the log recovered. Records keeps
// the original order so session triggers replay deterministically.
type Result struct {
	Records   []Record
	Events    []domain.UsageEvent
	SkipCount int
}

// ScanRecords streams logical records from the log. The producer wraps
// structured payloads across physical lines, so lines without a leading
// timestamp are joined onto the previous record before extraction.
// Malformed records are counted and skipped, never fatal.
func ScanRecords(r io.Reader) Result {
	var result Result
	var model string // most recent SessionConfigured model

	flush := func(record string) {
		if record == "" {
			return
		}
		rec, ok := Extract(record)
		if !ok {
			// Most log lines are simply not ours. Only a TokenCount
			// marker with a broken payload counts as a skip.
			if tokenCountRE.MatchString(record) {
				result.SkipCount++
			}
			return
		}
		switch rec.Kind {
		case KindSessionConfigured:
			if rec.Model != "" {
				model = rec.Model
			}
		case KindTokenCount:
			rec.Event.Model = model
			result.Events = append(result.Events, rec.Event)
		}
		result.Records = append(result.Records, rec)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max record

	var pending strings.Builder
	for scanner.Scan() {
		line := StripANSI(scanner.Text())
		if line == "" {
			continue
		}
		if tsRE.MatchString(line) {
			flush(pending.String())
			pending.Reset()
			pending.WriteString(line)
		} else if pending.Len() > 0 {
			pending.WriteString(" ")
			pending.WriteString(strings.TrimSpace(line))
		}
		// Continuation text with no open record is noise; drop it.
	}
	flush(pending.String())

	return result
}

// Signals projects the scanned records onto the activity stream consumed
// by the session tracker. Usage-limit records are not signals themselves;
// the tracker learns about them through Record order.
func (r Result) Signals() []domain.ActivitySignal {
	var sigs []domain.ActivitySignal
	for _, rec := range r.Records {
		switch rec.Kind {
		case KindTokenCount:
			sigs = append(sigs, domain.ActivitySignal{Timestamp: rec.Timestamp, Kind: domain.SignalTokenCount})
		case KindTaskStarted:
			sigs = append(sigs, domain.ActivitySignal{Timestamp: rec.Timestamp, Kind: domain.SignalTaskStarted})
		case KindExecCommandBegin:
			sigs = append(sigs, domain.ActivitySignal{Timestamp: rec.Timestamp, Kind: domain.SignalExecCommandBegin})
		}
	}
	return sigs
}
