// Package theme is the single source of color for the TUI: a five-color
// dusk palette over a near-black base, plus the gradient helpers the
// views use for headings and the session progress bar.
package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Accent palette, ordered cool to warm.
var (
	ColorSkyBlue  = lipgloss.Color("#79b7dd")
	ColorLavender = lipgloss.Color("#a29bdb")
	ColorMauve    = lipgloss.Color("#d69cd0")
	ColorPeach    = lipgloss.Color("#f1ad9d")
	ColorGold     = lipgloss.Color("#f7d892")
)

// Surfaces and text, darkest to brightest.
var (
	ColorBaseBg     = lipgloss.Color("#15161f")
	ColorElevatedBg = lipgloss.Color("#262838")
	ColorBorder     = lipgloss.Color("#3b3d56")
	ColorMutedText  = lipgloss.Color("#6f7290")
	ColorBodyText   = lipgloss.Color("#c3c5d6")
	ColorBrightText = lipgloss.Color("#eef0f8")
)

// Calendar accents. ColorWeekendRed keeps ~4.5:1 contrast on the
// elevated background.
var (
	ColorWeekendRed   = lipgloss.Color("#ef6f6f")
	ColorWeekendFaded = lipgloss.Color("#53556a")
)

// ProgressGradient is the accent palette as hex stops, cool end first, for
// the window progress bar and the animated heading.
var ProgressGradient = []string{
	"#79b7dd",
	"#a29bdb",
	"#d69cd0",
	"#f1ad9d",
	"#f7d892",
}

var (
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorBrightText).Bold(true)
	BodyStyle   = lipgloss.NewStyle().Foreground(ColorBodyText)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMutedText)
)

// HexToRGB splits a hex color into channels. A leading '#' is optional.
func HexToRGB(hex string) (uint8, uint8, uint8) {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

// LerpColor blends two hex colors; t=0 is from, t=1 is to.
func LerpColor(from, to string, t float64) string {
	fr, fg, fb := HexToRGB(from)
	tr, tg, tb := HexToRGB(to)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)))
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(fr, tr), lerp(fg, tg), lerp(fb, tb))
}

// MultiStopGradient resolves t in [0,1] against an ordered stop list,
// clamping at both ends.
func MultiStopGradient(t float64, stops []string) string {
	if len(stops) < 2 {
		return stops[0]
	}
	if t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	segs := len(stops) - 1
	seg := int(t * float64(segs))
	if seg >= segs {
		seg = segs - 1
	}
	return LerpColor(stops[seg], stops[seg+1], t*float64(segs)-float64(seg))
}

// cycleGradient resolves t against the stops as a closed loop, blending
// the last stop back into the first.
func cycleGradient(t float64, stops []string) string {
	t = t - math.Floor(t)
	pos := t * float64(len(stops))
	idx := int(pos) % len(stops)
	next := (idx + 1) % len(stops)
	return LerpColor(stops[idx], stops[next], pos-math.Floor(pos))
}

// GradientText colors text character by character between two hex stops.
func GradientText(text, fromHex, toHex string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	span := float64(max(len(runes)-1, 1))
	var sb strings.Builder
	sb.Grow(len(text) * 20) // room for the ANSI escapes
	base := lipgloss.NewStyle()
	for i, r := range runes {
		c := LerpColor(fromHex, toHex, float64(i)/span)
		sb.WriteString(base.Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return sb.String()
}

// AnimatedGradientText slides a narrow window of the accent palette across
// text. tick comes from the 250ms animation timer; one full sweep takes
// about 25 seconds. An optional bg is applied per character so the effect
// survives on top of filled rows.
func AnimatedGradientText(text string, tick uint, bg ...lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	// The text spans about a stop and a half, so two colors show at rest
	// and a third bleeds in while the window crosses a stop boundary.
	window := 1.5 / float64(len(ProgressGradient))
	phase := float64(tick) * 0.01
	span := float64(max(len(runes)-1, 1))

	base := lipgloss.NewStyle()
	if len(bg) > 0 {
		base = base.Background(bg[0])
	}
	var sb strings.Builder
	sb.Grow(len(text) * 20)
	for i, r := range runes {
		c := cycleGradient(phase+window*float64(i)/span, ProgressGradient)
		sb.WriteString(base.Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return sb.String()
}
