package crossflow

import (
	"fmt"
	"math"
)

// ViscosityModel computes the dynamic viscosity of the feed (Pa·s) at the
// current simulation instant.
type ViscosityModel interface {
	Viscosity() (float64, error)
}

// WaterViscosityPaS is the viscosity of water at room temperature.
const WaterViscosityPaS = 0.001

// WaterViscosity assumes the feed behaves like water regardless of time,
// temperature or concentration.
type WaterViscosity struct{}

// NewWaterViscosity returns a fresh WaterViscosity model.
func NewWaterViscosity() *WaterViscosity { return &WaterViscosity{} }

func (*WaterViscosity) Viscosity() (float64, error) { return WaterViscosityPaS, nil }

func (*WaterViscosity) String() string { return "water" }

// VogelViscosity evaluates the Vogel equation for water:
//
//	mu = A * exp(B / (T - C))
type VogelViscosity struct {
	TemperatureK float64
}

const (
	vogelA = 2.939e-5 // Pa·s
	vogelB = 507.88   // K
	vogelC = 149.3    // K
)

func (v VogelViscosity) Viscosity() (float64, error) {
	if v.TemperatureK <= vogelC {
		return 0, &DegenerateError{
			Quantity: "temperature",
			Value:    v.TemperatureK,
			Detail:   fmt.Sprintf("Vogel equation requires T > %g K", vogelC),
		}
	}
	return vogelA * math.Exp(vogelB/(v.TemperatureK-vogelC)), nil
}

func (v VogelViscosity) String() string { return fmt.Sprintf("vogel(%gK)", v.TemperatureK) }
