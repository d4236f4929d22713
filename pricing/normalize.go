// Package pricing turns scraped display prices into comparable
// numbers.
package pricing

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Normalize parses a display price ("₹1,299", "₹49,999.00") into a
// float by stripping every rune that is not a digit or a decimal
// point. Empty or unparseable input normalizes to +Inf so that such
// items sort last and fail the finite-price filter. The same function
// must be used wherever prices are compared, or ordering becomes
// inconsistent.
func Normalize(display string) float64 {
	var b strings.Builder
	for _, r := range display {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return math.Inf(1)
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.Inf(1)
	}
	return value
}
