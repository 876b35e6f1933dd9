package insight

import (
	"math"
	"strconv"
)

// formatRupees rounds to whole rupees and groups digits in threes, the way
// the dashboards display amounts ("1,08,000" style grouping is not used).
func formatRupees(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// formatRate prints an interest rate without trailing zeros, "10" or "10.5".
func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// feeDisplay renders a processing fee in its currency-string form.
func feeDisplay(fee int) string {
	return "₹" + formatRupees(float64(fee))
}
