// Package crossflow simulates a batch cross-flow membrane filtration over time.
// Permeate is removed from a fixed initial volume and the retentate
// concentration factor rises until a stop condition holds.
//
// Overview
//
//   - Model:
//     New(cfg Config, opts ...Option) (*Model, error)
//     (*Model).Run(step time.Duration) (Result, error)
//
//     New validates every Config field and fails atomically with ErrOutOfRange.
//     Run steps the simulation with a fixed step (DefaultTimeStep when zero)
//     and returns a single Result when it stops.
//
//   - Pluggable physics (one method each, chosen at construction):
//     ResistanceModel      : SimplifiedResistance (power-law fouling), ConstantResistance
//     ViscosityModel       : WaterViscosity (0.001 Pa·s), VogelViscosity
//     TerminationStrategy  : MaxSimulationTime, AnyOf
//
//   - Stop conditions, checked before every step, first match wins:
//     1. CaseinMolecularWeight > MWCO: the solute would pass the membrane.
//     2. concentration factor >= target.
//     3. Config.Termination reports true for the elapsed time.
//
//   - Errors (errs.go):
//     ErrOutOfRange           : construction parameter or step outside its bounds (*RangeError)
//     ErrMissingInput         : a model was evaluated without an input it needs (*MissingInputError)
//     ErrArithmeticDegenerate : zero, negative or non-finite resistance, viscosity,
//     flux or hold-up volume (*DegenerateError)
//
// # Diagnostics
//
// WithLogger attaches a *slog.Logger. Every step emits an Info record
// "step" with time, flux, flow_rate, permeate_volume, hold_up_volume and
// concentration attributes. Handler errors are dropped by slog and never
// reach the simulation. Without WithLogger, diagnostics are discarded.
//
// # Units
//
// The flow rate is treated as L/h and a step contributes
// flow_rate * step / 1h liters of permeate.
package crossflow

//go:generate mockgen -destination mock_models_test.go -package crossflow -write_package_comment=false github.com/ja7ad/crossflow/pkg/crossflow ResistanceModel,ViscosityModel,TerminationStrategy
