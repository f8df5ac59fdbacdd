package core

import (
	"math"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// RoundPercent returns num/denom as a whole percentage rounded half up.
// A zero denominator yields 0, never NaN or an error.
func RoundPercent(num, denom float64) int {
	if denom == 0 {
		return 0
	}
	return int(math.Round(num / denom * 100))
}
