package crossflow

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrOutOfRange indicates that a parameter violated a positivity or
	// typical-range constraint.
	ErrOutOfRange = errors.New("crossflow: out of range")

	// ErrMissingInput indicates that a model was evaluated without an input
	// it requires (e.g. the resistance model without elapsed time).
	ErrMissingInput = errors.New("crossflow: missing input")

	// ErrArithmeticDegenerate indicates that a computation produced a zero,
	// negative or non-finite value where a positive physical quantity is required.
	ErrArithmeticDegenerate = errors.New("crossflow: arithmetic degenerate")
)

// RangeError reports the parameter name and the bound it violated.
type RangeError struct {
	Name     string
	Value    float64
	Positive bool
	Min, Max float64 // -Inf/+Inf when unbounded
}

func (e *RangeError) Error() string {
	switch {
	case math.IsNaN(e.Value) || math.IsInf(e.Value, 0):
		return fmt.Sprintf("%s must be a finite value, got %v.", e.Name, e.Value)
	case e.Positive && e.Value <= 0:
		return fmt.Sprintf("%s must be a positive value, got %v.", e.Name, e.Value)
	case e.Value < e.Min:
		return fmt.Sprintf("%s is below the typical range: [%s, %s], got %v.",
			e.Name, fmtBound(e.Min), fmtBound(e.Max), e.Value)
	default:
		return fmt.Sprintf("%s is above the typical range: [%s, %s], got %v.",
			e.Name, fmtBound(e.Min), fmtBound(e.Max), e.Value)
	}
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

func fmtBound(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "+inf"
	default:
		return fmt.Sprintf("%g", v)
	}
}

// MissingInputError names the model and the input it was called without.
type MissingInputError struct {
	Model string
	Input string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Model, e.Input)
}

func (e *MissingInputError) Unwrap() error { return ErrMissingInput }

// DegenerateError carries the offending quantity, its value and the elapsed
// simulation time at which it was observed.
type DegenerateError struct {
	Quantity string
	Value    float64
	Elapsed  time.Duration
	Detail   string
}

func (e *DegenerateError) Error() string {
	msg := fmt.Sprintf("%s is degenerate (%v) at %s", e.Quantity, e.Value, e.Elapsed)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DegenerateError) Unwrap() error { return ErrArithmeticDegenerate }
