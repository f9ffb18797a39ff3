package crossflow

import (
	"fmt"
	"strings"
	"time"
)

// TerminationStrategy is an extra stop condition checked once per step after
// the built-in MWCO and concentration-factor checks. Implementations may also
// implement fmt.Stringer to name themselves in diagnostics.
type TerminationStrategy interface {
	ShouldTerminate(elapsed time.Duration) bool
}

// MaxSimulationTime stops the run once elapsed time reaches Max.
type MaxSimulationTime struct {
	Max time.Duration
}

func (m MaxSimulationTime) ShouldTerminate(elapsed time.Duration) bool {
	return elapsed >= m.Max
}

func (m MaxSimulationTime) String() string {
	return fmt.Sprintf("max simulation time %s", m.Max)
}

// AnyOf fires as soon as one of its members fires.
type AnyOf []TerminationStrategy

func (a AnyOf) ShouldTerminate(elapsed time.Duration) bool {
	for _, s := range a {
		if !isNil(s) && s.ShouldTerminate(elapsed) {
			return true
		}
	}
	return false
}

func (a AnyOf) String() string {
	names := make([]string, 0, len(a))
	for _, s := range a {
		if !isNil(s) {
			names = append(names, describe(s))
		}
	}
	return "any of (" + strings.Join(names, ", ") + ")"
}

// describe names a model for diagnostics: its String form, or its type.
func describe(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", v)
}
