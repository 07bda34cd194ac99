package utils

import "math"

// Ratio returns value/target clamped to [0,1]. A zero, negative or NaN
// target short-circuits to 0 before the division, so the function is total:
// it never returns NaN or Inf. Dashboards always have a renderable number.
func Ratio(value, target float64) float64 {
	if target <= 0 || math.IsNaN(target) || math.IsNaN(value) {
		return 0
	}
	r := value / target
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Percent is the display form of Ratio, rounded to a whole percent in [0,100].
func Percent(value, target float64) int {
	return int(math.Round(Ratio(value, target) * 100))
}
