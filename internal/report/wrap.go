// Package report renders analysis results into console-facing text.
package report

import "strings"

// Wrap splits text into lines of at most width characters, breaking only
// at word boundaries. Whitespace runs, including newlines, collapse to
// single separators. A single word longer than width is emitted alone on
// its own line, untouched. Empty input yields no lines.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// WrapString wraps text and joins the lines with newlines.
func WrapString(text string, width int) string {
	return strings.Join(Wrap(text, width), "\n")
}
