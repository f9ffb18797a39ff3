package util

import (
	"math"
	"strconv"
	"time"
)

// Finite reports whether x is neither NaN nor ±Inf.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// PositiveFinite reports whether x is a usable physical magnitude.
func PositiveFinite(x float64) bool {
	return Finite(x) && x > 0
}

// Hours returns d as fractional hours.
func Hours(d time.Duration) float64 {
	return d.Seconds() / time.Hour.Seconds()
}

// FmtFloat formats x with the minimal digits needed to round-trip.
func FmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
