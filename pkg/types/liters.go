package types

import (
	"fmt"
	"math"
)

// Liters is a float64 wrapper representing a fluid volume in liters.
type Liters float64

// Humanized returns a human-readable string with automatic unit (µL, mL, L, m³).
func (l Liters) Humanized() string {
	v := float64(l)
	a := math.Abs(v)
	switch {
	case a >= 1000:
		return fmt.Sprintf("%.2f m³", v/1000)
	case a >= 1:
		return fmt.Sprintf("%.2f L", v)
	case a >= 1e-3:
		return fmt.Sprintf("%.2f mL", v*1e3)
	case a == 0:
		return "0 L"
	default:
		return fmt.Sprintf("%.2f µL", v*1e6)
	}
}

// ML returns the volume in milliliters.
func (l Liters) ML() float64 { return float64(l) * 1e3 }

// M3 returns the volume in cubic meters.
func (l Liters) M3() float64 { return float64(l) / 1e3 }

// Float64 returns the raw value in liters.
func (l Liters) Float64() float64 { return float64(l) }
