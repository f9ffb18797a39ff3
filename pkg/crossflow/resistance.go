package crossflow

import (
	"math"
	"time"
)

// ResistanceModel computes membrane hydraulic resistance (m⁻¹).
// The elapsed time is optional; variants that need it must fail with
// ErrMissingInput when it is absent.
type ResistanceModel interface {
	Resistance(elapsed ...time.Duration) (float64, error)
}

// SimplifiedResistance models fouling as a power law in filtration time:
//
//	R(t) = A + B * t^p,  t in seconds
type SimplifiedResistance struct{}

const (
	SimplifiedCoefficientA = 0.13e12
	SimplifiedCoefficientB = 1.51e12
	SimplifiedExponent     = 0.4
)

// NewSimplifiedResistance returns a fresh SimplifiedResistance.
func NewSimplifiedResistance() *SimplifiedResistance { return &SimplifiedResistance{} }

func (*SimplifiedResistance) Resistance(elapsed ...time.Duration) (float64, error) {
	if len(elapsed) == 0 {
		return 0, &MissingInputError{Model: "simplified resistance", Input: "elapsed time"}
	}
	t := elapsed[0]
	if t < 0 {
		return 0, &DegenerateError{Quantity: "elapsed time", Value: t.Seconds(), Elapsed: t,
			Detail: "fouling time cannot be negative"}
	}
	return SimplifiedCoefficientA + SimplifiedCoefficientB*math.Pow(t.Seconds(), SimplifiedExponent), nil
}

func (*SimplifiedResistance) String() string { return "simplified" }

// ConstantResistance is a clean, non-fouling membrane.
type ConstantResistance struct {
	R float64
}

func (c ConstantResistance) Resistance(...time.Duration) (float64, error) {
	return c.R, nil
}

func (c ConstantResistance) String() string { return "constant" }
