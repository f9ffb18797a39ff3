package crossflow

import "math"

// Check is a single constraint applied by Validate.
type Check func(*RangeError)

// Positive requires value > 0.
func Positive() Check { return func(e *RangeError) { e.Positive = true } }

// Min requires value >= min.
func Min(min float64) Check { return func(e *RangeError) { e.Min = min } }

// Max requires value <= max.
func Max(max float64) Check { return func(e *RangeError) { e.Max = max } }

// Within requires value to lie in the closed interval r.
func Within(r Range) Check {
	return func(e *RangeError) {
		e.Min = r.Min
		e.Max = r.Max
	}
}

// Validate returns value unchanged if it satisfies every check, otherwise a
// *RangeError wrapping ErrOutOfRange. Non-finite values never pass.
func Validate(name string, value float64, checks ...Check) (float64, error) {
	e := &RangeError{Name: name, Value: value, Min: math.Inf(-1), Max: math.Inf(1)}
	for _, c := range checks {
		c(e)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, e
	}
	if e.Positive && value <= 0 {
		return 0, e
	}
	if value < e.Min || value > e.Max {
		return 0, e
	}
	return value, nil
}
