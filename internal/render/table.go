// Package render writes report rows to a terminal or pipe in the
// supported output formats: table, tsv, csv, ndjson, json.
package render

import (
	"fmt"
	"io"
	"strings"
)

// Border styles for table output.
const (
	BorderUnicode = "unicode"
	BorderASCII   = "ascii"
)

type borderSet struct {
	tl, tc, tr string
	ml, mc, mr string
	bl, bc, br string
	v, h       string
}

var borders = map[string]borderSet{
	BorderUnicode: {"┌", "┬", "┐", "├", "┼", "┤", "└", "┴", "┘", "│", "─"},
	BorderASCII:   {"+", "+", "+", "+", "+", "+", "+", "+", "+", "|", "-"},
}

// Table is a bordered text table. Numeric columns are right-aligned;
// RuleBefore draws a horizontal rule ahead of the given body rows (used
// for the summary footer).
type Table struct {
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
	RuleBefore map[int]bool
	Border     string
	NoHeader   bool
}

func (t Table) Write(w io.Writer) {
	bs, ok := borders[t.Border]
	if !ok {
		bs = borders[BorderUnicode]
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	line := func(left, mid, right string) string {
		var sb strings.Builder
		sb.WriteString(left)
		for i, width := range widths {
			sb.WriteString(strings.Repeat(bs.h, width+2))
			if i < len(widths)-1 {
				sb.WriteString(mid)
			} else {
				sb.WriteString(right)
			}
		}
		return sb.String()
	}

	formatRow := func(cells []string) string {
		var sb strings.Builder
		sb.WriteString(bs.v)
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := width - len([]rune(cell))
			if pad < 0 {
				pad = 0
			}
			if t.RightAlign[i] {
				cell = strings.Repeat(" ", pad) + cell
			} else {
				cell = cell + strings.Repeat(" ", pad)
			}
			sb.WriteString(" " + cell + " ")
			sb.WriteString(bs.v)
		}
		return sb.String()
	}

	fmt.Fprintln(w, line(bs.tl, bs.tc, bs.tr))
	if !t.NoHeader {
		fmt.Fprintln(w, formatRow(t.Headers))
		fmt.Fprintln(w, line(bs.ml, bs.mc, bs.mr))
	}
	for i, row := range t.Rows {
		if t.RuleBefore[i] {
			fmt.Fprintln(w, line(bs.ml, bs.mc, bs.mr))
		}
		fmt.Fprintln(w, formatRow(row))
	}
	fmt.Fprintln(w, line(bs.bl, bs.bc, bs.br))
}

// FormatTokens compacts a token count for table cells: 1230000 -> "1.23M",
// 4500 -> "4.5k", 999 -> "999". Trailing zeros are trimmed.
func FormatTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return trimFloat(fmt.Sprintf("%.2f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return trimFloat(fmt.Sprintf("%.2f", float64(n)/1_000)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimFloat(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}

// formatCost renders a cost cell; absent cost is an empty cell, never 0.00.
func formatCost(cost *float64) string {
	if cost == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *cost)
}
