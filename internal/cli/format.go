package cli

import (
	"fmt"
	"strings"
	"time"

	"fund-reporter/internal/models"
)

// FormatConfidence formats a confidence percentage for summary lines.
// Unavailable values render as a dash rather than a fake zero.
func FormatConfidence(conf float64) string {
	if !models.IsFinite(conf) {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", conf)
}

// FormatDateTime formats a timestamp for display.
func FormatDateTime(t time.Time) string {
	return t.Format("02-Jan-2006 15:04:05")
}

// TruncateString shortens s to max runes, marking the cut with an ellipsis.
func TruncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// FormatTickers renders a ticker list for a single table cell.
func FormatTickers(tickers []string) string {
	return strings.Join(tickers, ", ")
}
