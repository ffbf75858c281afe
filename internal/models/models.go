// Package models defines the data carriers shared across the reporting pipeline.
package models

import "math"

// IsFinite reports whether v is a usable number (not NaN or infinite).
// Non-finite values are replaced with an absent marker at every
// serialization boundary.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
