package finance

import (
	"strconv"
	"strings"
)

// Indian numbering units recognised in display amounts.
const (
	lakh  = 100000
	crore = 10000000
)

// ParseAmount converts a display amount like "₹75 Lakhs" or "₹2 Crores"
// into rupees. Every character that is not a digit or decimal point is
// stripped before parsing; an empty remainder parses as 0. The unit word
// is matched case-sensitively, "Lakhs" before "Crores".
func ParseAmount(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}

	if strings.Contains(text, "Lakhs") {
		value *= lakh
	} else if strings.Contains(text, "Crores") {
		value *= crore
	}
	return value
}

// ParseIntDigits extracts the digits from a string like "36 months" or
// "₹5,000" and parses them as an integer. An empty remainder parses as 0.
func ParseIntDigits(text string) int {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	value, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return value
}
