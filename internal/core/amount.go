package core

import (
	"math"
	"strconv"
)

// Round2 rounds to two decimal places, half away from zero. Chart series
// values are rounded this way before display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders an amount with the shortest decimal representation
// ("50", "50.5", "12.34"). Used inside derived status messages.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
