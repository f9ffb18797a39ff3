package crossflow

import "time"

// Config holds the process parameters of one batch.
// Units:
//   - Volume: L
//   - Concentration: g/L
//   - TMP: Pa
//   - MembraneArea: m²
//   - MWCO: Da
//   - ConcentrationFactor: dimensionless target (initial / retentate volume)
//
// Termination, Resistance and Viscosity are optional; nil Resistance and
// Viscosity are replaced by fresh SimplifiedResistance and WaterViscosity
// instances. The built-in variants are stateless, so a single instance may be
// shared by several models; stateful variants must not be shared.
type Config struct {
	Volume              float64
	Concentration       float64
	TMP                 float64
	MembraneArea        float64
	MWCO                float64
	ConcentrationFactor float64

	Termination TerminationStrategy
	Resistance  ResistanceModel
	Viscosity   ViscosityModel
}

// Range is a closed interval used for validation only.
type Range struct {
	Min, Max float64
}

// Typical operating ranges.
var (
	MWCORange                = Range{Min: 1_000, Max: 500_000}  // Da
	TMPRange                 = Range{Min: 50_000, Max: 700_000} // Pa
	ConcentrationFactorRange = Range{Min: 2, Max: 20}
)

const (
	// CaseinMolecularWeight is the reference solute. A membrane whose MWCO is
	// below it cannot be assumed to retain the solute.
	CaseinMolecularWeight = 25_107.0 // Da

	// DefaultTimeStep is used when Run is called with a zero step.
	DefaultTimeStep = time.Hour
)

// Reason names the condition that ended a run.
type Reason string

const (
	ReasonMWCO          Reason = "mwco"
	ReasonConcentration Reason = "concentration"
	ReasonStrategy      Reason = "strategy"
)

// Result is the completed-simulation record. It is built once when the loop
// exits.
type Result struct {
	PermeateVolume      float64       // L
	RetentateVolume     float64       // L
	ConcentrationFactor float64       // initial / retentate volume, 0 if no step ran
	Time                time.Duration // total elapsed simulation time

	Steps  int
	Reason Reason
}

// _defaultConfig returns the bench-scale batch used by the CLI when nothing
// else is configured.
func _defaultConfig() Config {
	return Config{
		Volume:              1.0,     // L
		Concentration:       10.0,    // g/L
		TMP:                 100_000, // Pa
		MembraneArea:        5.0,     // m²
		MWCO:                40_000,  // Da
		ConcentrationFactor: 2,
	}
}

// DefaultConfig returns a copy of the default batch with no models set.
func DefaultConfig() Config { return _defaultConfig() }
