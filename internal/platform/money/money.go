// Package money holds the rounding policy for all currency arithmetic.
// Amounts are float64 rupees; every computed line or document total passes
// through Round2 so that recomputing from the same inputs always yields the
// same stored value.
package money

import "math"

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineTotal computes quantity*rate plus tax percent minus an absolute
// discount, rounded to 2 decimal places.
func LineTotal(quantity, rate, taxPct, discount float64) float64 {
	net := quantity * rate
	return Round2(net + net*taxPct/100 - discount)
}

// Sum adds already-rounded amounts and rounds the result once more to absorb
// float drift.
func Sum(amounts ...float64) float64 {
	var total float64
	for _, a := range amounts {
		total += a
	}
	return Round2(total)
}
