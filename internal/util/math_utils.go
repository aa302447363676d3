package util

import "math"

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

// Percentage computes score/max as a percentage rounded to the given
// number of decimal places. Returns 0 when max is not positive.
func Percentage(score, max float64, places int) float64 {
	if max <= 0 {
		return 0
	}
	return RoundTo(score/max*100, places)
}
