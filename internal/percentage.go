package internal

import "strconv"

// Percentage returns value as a share of total, in percent rounded half-up
// to one decimal. A zero or NaN total, or a non-finite result, yields 0.
func Percentage(value, total float64) float64 {
	if total == 0 || total != total {
		return 0
	}
	p := value / total * 100
	if !isFinite(p) {
		return 0
	}
	return roundHalfUp(p, 1).InexactFloat64()
}

// FormatPercent renders a percentage in its shortest form: "50%", "56.1%".
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
