// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// FormatThousands formats a number with comma thousands separators and
// the given number of decimal places.
func FormatThousands(amount float64, decimals int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.*f", decimals, amount)
	intPart := str
	decPart := ""
	if i := strings.IndexByte(str, '.'); i >= 0 {
		intPart = str[:i]
		decPart = str[i:]
	}

	result := groupThousands(intPart) + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas into an unsigned integer string.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatUSD formats a monetary amount with two decimals and thousands
// separators, e.g. $12,345.67.
func FormatUSD(amount float64) string {
	if amount < 0 {
		return "-$" + FormatThousands(-amount, 2)
	}
	return "$" + FormatThousands(amount, 2)
}

// FormatSignedPercent formats a percentage with an explicit sign for
// positive values, e.g. +3.25%.
func FormatSignedPercent(value float64, decimals int) string {
	return fmt.Sprintf("%+.*f%%", decimals, value)
}

// FormatCount formats an integral count with thousands separators.
func FormatCount(value float64) string {
	return FormatThousands(value, 0)
}
