// Package config assembles a filtration scenario from defaults, a TOML file,
// a .env file and CROSSFLOW_* environment variables, in that order of
// increasing priority, and builds a crossflow.Model from it.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/ja7ad/crossflow/pkg/crossflow"
)

// EnvPrefix prefixes every environment key read by LoadEnv.
const EnvPrefix = "CROSSFLOW_"

var (
	// ErrUnknownModel indicates a resistance or viscosity name with no variant.
	ErrUnknownModel = errors.New("config: unknown model")

	// ErrUnknownKey indicates a scenario file or .env key that maps to no field.
	ErrUnknownKey = errors.New("config: unknown key")
)

// Scenario is the flat, file- and env-friendly form of crossflow.Config.
type Scenario struct {
	Volume              float64 `toml:"volume"`
	Concentration       float64 `toml:"concentration"`
	TMP                 float64 `toml:"tmp"`
	MembraneArea        float64 `toml:"membrane_area"`
	MWCO                float64 `toml:"mwco"`
	ConcentrationFactor float64 `toml:"concentration_factor"`

	// MaxTime bounds the run; zero disables the bound.
	MaxTime time.Duration `toml:"max_time"`
	Step    time.Duration `toml:"step"`

	Resistance      string  `toml:"resistance"`       // simplified | constant
	ResistanceValue float64 `toml:"resistance_value"` // m⁻¹, constant only
	Viscosity       string  `toml:"viscosity"`        // water | vogel
	TemperatureK    float64 `toml:"temperature_k"`    // vogel only
}

// Default returns the bench-scale batch with a 24 h time bound.
func Default() Scenario {
	c := crossflow.DefaultConfig()
	return Scenario{
		Volume:              c.Volume,
		Concentration:       c.Concentration,
		TMP:                 c.TMP,
		MembraneArea:        c.MembraneArea,
		MWCO:                c.MWCO,
		ConcentrationFactor: c.ConcentrationFactor,
		MaxTime:             24 * time.Hour,
		Step:                crossflow.DefaultTimeStep,
		Resistance:          "simplified",
		ResistanceValue:     crossflow.SimplifiedCoefficientA,
		Viscosity:           "water",
		TemperatureK:        293.15,
	}
}

// LoadFile overlays the TOML file at path onto s. Keys absent from the file
// keep their current value.
func LoadFile(path string, s *Scenario) error {
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, 0, len(und))
		for _, k := range und {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}
	return nil
}

type setter func(s *Scenario, v string) error

func floatField(f func(*Scenario) *float64) setter {
	return func(s *Scenario, v string) error {
		x, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*f(s) = x
		return nil
	}
}

func durationField(f func(*Scenario) *time.Duration) setter {
	return func(s *Scenario, v string) error {
		d, err := cast.ToDurationE(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*f(s) = d
		return nil
	}
}

func stringField(f func(*Scenario) *string) setter {
	return func(s *Scenario, v string) error {
		*f(s) = strings.ToLower(strings.TrimSpace(v))
		return nil
	}
}

var envFields = map[string]setter{
	"VOLUME":               floatField(func(s *Scenario) *float64 { return &s.Volume }),
	"CONCENTRATION":        floatField(func(s *Scenario) *float64 { return &s.Concentration }),
	"TMP":                  floatField(func(s *Scenario) *float64 { return &s.TMP }),
	"MEMBRANE_AREA":        floatField(func(s *Scenario) *float64 { return &s.MembraneArea }),
	"MWCO":                 floatField(func(s *Scenario) *float64 { return &s.MWCO }),
	"CONCENTRATION_FACTOR": floatField(func(s *Scenario) *float64 { return &s.ConcentrationFactor }),
	"MAX_TIME":             durationField(func(s *Scenario) *time.Duration { return &s.MaxTime }),
	"STEP":                 durationField(func(s *Scenario) *time.Duration { return &s.Step }),
	"RESISTANCE":           stringField(func(s *Scenario) *string { return &s.Resistance }),
	"RESISTANCE_VALUE":     floatField(func(s *Scenario) *float64 { return &s.ResistanceValue }),
	"VISCOSITY":            stringField(func(s *Scenario) *string { return &s.Viscosity }),
	"TEMPERATURE_K":        floatField(func(s *Scenario) *float64 { return &s.TemperatureK }),
}

// EnvKeys lists the recognised environment keys, sorted.
func EnvKeys() []string {
	keys := make([]string, 0, len(envFields))
	for k := range envFields {
		keys = append(keys, EnvPrefix+k)
	}
	sort.Strings(keys)
	return keys
}

// LoadEnv overlays CROSSFLOW_* values onto s. Values from envFile (if not
// empty) are applied first; the process environment wins. The process
// environment itself is never modified. A CROSSFLOW_* key in envFile that
// names no field is an error; keys without the prefix are ignored.
func LoadEnv(envFile string, s *Scenario) error {
	vals := map[string]string{}
	if envFile != "" {
		file, err := godotenv.Read(envFile)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", envFile, err)
		}
		var unknown []string
		for k, v := range file {
			if !strings.HasPrefix(k, EnvPrefix) {
				continue
			}
			if _, ok := envFields[strings.TrimPrefix(k, EnvPrefix)]; !ok {
				unknown = append(unknown, k)
				continue
			}
			vals[k] = v
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return fmt.Errorf("%w in %s: %s", ErrUnknownKey, envFile, strings.Join(unknown, ", "))
		}
	}
	for k := range envFields {
		if v, ok := os.LookupEnv(EnvPrefix + k); ok {
			vals[EnvPrefix+k] = v
		}
	}

	for _, key := range EnvKeys() {
		v, ok := vals[key]
		if !ok {
			continue
		}
		if err := envFields[strings.TrimPrefix(key, EnvPrefix)](s, v); err != nil {
			return fmt.Errorf("config: %s=%q: %w", key, v, err)
		}
	}
	return nil
}

// ResistanceModel returns a fresh resistance variant for name.
func ResistanceModel(name string, value float64) (crossflow.ResistanceModel, error) {
	switch name {
	case "", "simplified":
		return crossflow.NewSimplifiedResistance(), nil
	case "constant":
		return crossflow.ConstantResistance{R: value}, nil
	default:
		return nil, fmt.Errorf("%w: resistance %q", ErrUnknownModel, name)
	}
}

// ViscosityModel returns a fresh viscosity variant for name.
func ViscosityModel(name string, temperatureK float64) (crossflow.ViscosityModel, error) {
	switch name {
	case "", "water":
		return crossflow.NewWaterViscosity(), nil
	case "vogel":
		return crossflow.VogelViscosity{TemperatureK: temperatureK}, nil
	default:
		return nil, fmt.Errorf("%w: viscosity %q", ErrUnknownModel, name)
	}
}

// Config converts s into a crossflow.Config with freshly built models.
func (s Scenario) Config() (crossflow.Config, error) {
	res, err := ResistanceModel(s.Resistance, s.ResistanceValue)
	if err != nil {
		return crossflow.Config{}, err
	}
	visc, err := ViscosityModel(s.Viscosity, s.TemperatureK)
	if err != nil {
		return crossflow.Config{}, err
	}

	cfg := crossflow.Config{
		Volume:              s.Volume,
		Concentration:       s.Concentration,
		TMP:                 s.TMP,
		MembraneArea:        s.MembraneArea,
		MWCO:                s.MWCO,
		ConcentrationFactor: s.ConcentrationFactor,
		Resistance:          res,
		Viscosity:           visc,
	}
	if s.MaxTime > 0 {
		cfg.Termination = crossflow.MaxSimulationTime{Max: s.MaxTime}
	}
	return cfg, nil
}

// Build validates s and returns the model.
func (s Scenario) Build(opts ...crossflow.Option) (*crossflow.Model, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	return crossflow.New(cfg, opts...)
}
