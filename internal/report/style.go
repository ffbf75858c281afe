package report

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// Style is an explicit style token attached to rendered text. The
// renderer stays pure; a Styler backend decides whether tokens become
// ANSI sequences or nothing at all.
type Style int

// Style tokens.
const (
	StyleDefault Style = iota
	StylePositive
	StyleNegative
	StyleNeutral
	StyleTicker
	StyleHeading
	StyleAccent
)

// SignalStyle maps a raw signal label to a style token. The label is
// normalized for the lookup only; unrecognized labels fall back to the
// default style, never an error.
func SignalStyle(label string) Style {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "BULLISH":
		return StylePositive
	case "BEARISH":
		return StyleNegative
	case "NEUTRAL":
		return StyleNeutral
	default:
		return StyleDefault
	}
}

// ActionStyle maps a decision action to a style token, with the same
// fallback behavior as SignalStyle.
func ActionStyle(action string) Style {
	switch strings.ToUpper(strings.TrimSpace(action)) {
	case "BUY", "COVER":
		return StylePositive
	case "SELL", "SHORT":
		return StyleNegative
	case "HOLD":
		return StyleNeutral
	default:
		return StyleDefault
	}
}

// Styler resolves style tokens against the target terminal's capability.
type Styler interface {
	Paint(text string, style Style) string
}

// ANSIStyler emits ANSI color sequences when enabled and plain text
// otherwise. Colors are forced on rather than left to terminal
// detection, since the caller already decided color capability.
type ANSIStyler struct {
	Enabled bool
}

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

var stylePalette = map[Style]*color.Color{
	StylePositive: forced(color.FgGreen),
	StyleNegative: forced(color.FgRed),
	StyleNeutral:  forced(color.FgYellow),
	StyleTicker:   forced(color.FgCyan),
	StyleAccent:   forced(color.FgCyan),
	StyleHeading:  forced(color.Bold, color.FgWhite),
}

// Paint implements Styler.
func (s ANSIStyler) Paint(text string, style Style) string {
	if !s.Enabled || text == "" {
		return text
	}
	c, ok := stylePalette[style]
	if !ok {
		return text
	}
	return c.Sprint(text)
}

// PlainStyler discards all style tokens.
type PlainStyler struct{}

// Paint implements Styler.
func (PlainStyler) Paint(text string, _ Style) string {
	return text
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes ANSI escape sequences, leaving visible text.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// visibleWidth is the display width of a cell line once styling is removed.
func visibleWidth(s string) int {
	return len([]rune(stripANSI(s)))
}

// VisibleWidth is the display width of text once ANSI styling is removed.
func VisibleWidth(s string) int {
	return visibleWidth(s)
}
