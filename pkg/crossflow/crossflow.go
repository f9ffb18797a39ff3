package crossflow

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"time"

	"github.com/ja7ad/crossflow/pkg/util"
)

// Model is a batch cross-flow filtration over a single lumped membrane.
// It is read-only after New; every Run owns its own state.
type Model struct {
	cfg Config
	log *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the diagnostic sink. A nil logger disables diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		m.log = l
	}
}

// New validates cfg and returns a Model. No Model is returned if any field
// fails validation. Nil models, including typed nil pointers, are replaced by
// the defaults; a nil termination strategy means none.
func New(cfg Config, opts ...Option) (*Model, error) {
	var err error
	if cfg.Volume, err = Validate("Volume", cfg.Volume, Positive()); err != nil {
		return nil, err
	}
	if cfg.Concentration, err = Validate("Concentration", cfg.Concentration, Positive()); err != nil {
		return nil, err
	}
	if cfg.TMP, err = Validate("TMP", cfg.TMP, Within(TMPRange)); err != nil {
		return nil, err
	}
	if cfg.MembraneArea, err = Validate("Membrane area", cfg.MembraneArea, Positive()); err != nil {
		return nil, err
	}
	if cfg.MWCO, err = Validate("MWCO", cfg.MWCO, Within(MWCORange)); err != nil {
		return nil, err
	}
	if cfg.ConcentrationFactor, err = Validate("Concentration factor", cfg.ConcentrationFactor,
		Within(ConcentrationFactorRange)); err != nil {
		return nil, err
	}

	if isNil(cfg.Resistance) {
		cfg.Resistance = NewSimplifiedResistance()
	}
	if isNil(cfg.Viscosity) {
		cfg.Viscosity = NewWaterViscosity()
	}
	if isNil(cfg.Termination) {
		cfg.Termination = nil
	}

	m := &Model{cfg: cfg, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns a copy of the validated configuration.
func (m *Model) Config() Config { return m.cfg }

// Flux returns the permeate flux at the given elapsed time:
//
//	J = TMP / (mu * R(t))
func (m *Model) Flux(elapsed time.Duration) (float64, error) {
	r, err := m.cfg.Resistance.Resistance(elapsed)
	if err != nil {
		m.log.Error("calculating resistance", "time", elapsed, "err", err)
		return 0, fmt.Errorf("flux: %w", err)
	}
	if !util.PositiveFinite(r) {
		return 0, &DegenerateError{Quantity: "resistance", Value: r, Elapsed: elapsed}
	}

	mu, err := m.cfg.Viscosity.Viscosity()
	if err != nil {
		m.log.Error("calculating viscosity", "time", elapsed, "err", err)
		return 0, fmt.Errorf("flux: %w", err)
	}
	if !util.PositiveFinite(mu) {
		return 0, &DegenerateError{Quantity: "viscosity", Value: mu, Elapsed: elapsed}
	}

	flux := m.cfg.TMP / (mu * r)
	if !util.PositiveFinite(flux) {
		return 0, &DegenerateError{Quantity: "flux", Value: flux, Elapsed: elapsed,
			Detail: fmt.Sprintf("tmp=%g viscosity=%g resistance=%g", m.cfg.TMP, mu, r)}
	}
	m.log.Debug("flux", "time", elapsed, "flux", flux, "viscosity", mu, "resistance", r)
	return flux, nil
}

// PermeateFlowRate returns the flux integrated over the membrane area, in L/h.
func (m *Model) PermeateFlowRate(elapsed time.Duration) (float64, error) {
	flux, err := m.Flux(elapsed)
	if err != nil {
		return 0, err
	}
	rate := flux * m.cfg.MembraneArea
	m.log.Debug("permeate flow rate", "time", elapsed, "flow_rate", rate)
	return rate, nil
}

// state is the loop-local simulation state.
type state struct {
	elapsed       time.Duration
	holdUp        float64
	permeate      float64
	concentration float64
	steps         int
}

// Run steps the simulation until the MWCO guard, the concentration target or
// the configured termination strategy stops it. A zero step means
// DefaultTimeStep.
//
// Each step:
//
//	delta    = flow_rate * step_hours
//	permeate += delta
//	holdUp   -= delta
//	cf       = volume / holdUp
func (m *Model) Run(step time.Duration) (Result, error) {
	if step == 0 {
		step = DefaultTimeStep
	}
	if _, err := Validate("Time step", step.Seconds(), Positive()); err != nil {
		return Result{}, err
	}

	m.log.Info("simulation started",
		"time_step", step,
		"initial_volume", m.cfg.Volume,
		"target_concentration_factor", m.cfg.ConcentrationFactor)

	s := state{holdUp: m.cfg.Volume}
	for {
		if reason, done := m.terminated(&s); done {
			res := Result{
				PermeateVolume:      s.permeate,
				RetentateVolume:     s.holdUp,
				ConcentrationFactor: s.concentration,
				Time:                s.elapsed,
				Steps:               s.steps,
				Reason:              reason,
			}
			m.log.Info("simulation completed",
				"reason", reason,
				"steps", res.Steps,
				"permeate_volume", res.PermeateVolume,
				"hold_up_volume", res.RetentateVolume,
				"concentration", res.ConcentrationFactor,
				"time", res.Time)
			return res, nil
		}

		if err := m.step(&s, step); err != nil {
			m.log.Error("simulation aborted", "time", s.elapsed, "steps", s.steps, "err", err)
			return Result{}, err
		}
	}
}

// terminated evaluates the stop conditions in order; the first match wins.
func (m *Model) terminated(s *state) (Reason, bool) {
	if CaseinMolecularWeight > m.cfg.MWCO {
		m.log.Warn("casein molecular weight exceeds MWCO, terminating",
			"mwco", m.cfg.MWCO, "reference", CaseinMolecularWeight)
		return ReasonMWCO, true
	}
	if s.concentration >= m.cfg.ConcentrationFactor {
		m.log.Info("concentration target reached", "concentration", s.concentration)
		return ReasonConcentration, true
	}
	if t := m.cfg.Termination; t != nil && t.ShouldTerminate(s.elapsed) {
		m.log.Info("termination strategy fired", "strategy", describe(t), "time", s.elapsed)
		return ReasonStrategy, true
	}
	return "", false
}

func (m *Model) step(s *state, step time.Duration) error {
	if step > time.Duration(math.MaxInt64)-s.elapsed {
		return &DegenerateError{
			Quantity: "elapsed time",
			Value:    util.Hours(s.elapsed) + util.Hours(step),
			Elapsed:  s.elapsed,
			Detail:   fmt.Sprintf("advancing by %s overflows the time range after %d steps", step, s.steps),
		}
	}

	flux, err := m.Flux(s.elapsed)
	if err != nil {
		return err
	}
	rate := flux * m.cfg.MembraneArea

	delta := rate * util.Hours(step)
	permeate := s.permeate + delta
	holdUp := s.holdUp - delta
	elapsed := s.elapsed + step

	if !util.PositiveFinite(holdUp) {
		return &DegenerateError{
			Quantity: "hold-up volume",
			Value:    holdUp,
			Elapsed:  elapsed,
			Detail: fmt.Sprintf("step removed %g L from %g L remaining (permeate %g L)",
				delta, s.holdUp, permeate),
		}
	}

	s.permeate = permeate
	s.holdUp = holdUp
	s.elapsed = elapsed
	s.concentration = m.cfg.Volume / holdUp
	s.steps++

	m.log.Info("step",
		"time", s.elapsed,
		"flux", flux,
		"flow_rate", rate,
		"permeate_volume", s.permeate,
		"hold_up_volume", s.holdUp,
		"concentration", s.concentration)
	return nil
}

// isNil reports whether v is nil or an interface holding a nil value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
