package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ja7ad/crossflow/pkg/config"
	"github.com/ja7ad/crossflow/pkg/crossflow"
	"github.com/ja7ad/crossflow/pkg/store"
	"github.com/ja7ad/crossflow/pkg/types"
	"github.com/ja7ad/crossflow/pkg/util"
)

type logOpts struct {
	level  string
	file   string
	format string
}

type runOpts struct {
	configPath string
	envFile    string

	// scenario overrides, applied only when the flag is set
	scenario config.Scenario

	// outputs
	storePath string
	jsonPath  string
	csvPath   string
}

// report is the serialized form of a completed simulation.
type report struct {
	ID                  string  `json:"id,omitempty"`
	TimeHours           float64 `json:"time_h"`
	PermeateVolume      float64 `json:"permeate_volume_l"`
	RetentateVolume     float64 `json:"retentate_volume_l"`
	ConcentrationFactor float64 `json:"concentration_factor"`
	Steps               int     `json:"steps"`
	Reason              string  `json:"reason"`
}

func main() {
	root, cleanup := newRootCmd()
	atexit.Register(cleanup)
	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// newRootCmd builds the command tree. cleanup releases the resources opened
// while running it, such as the log file.
func newRootCmd() (root *cobra.Command, cleanup func()) {
	var (
		lo     logOpts
		ro     runOpts
		closer io.Closer
	)
	logger := slog.Default()
	cleanup = func() {
		if closer != nil {
			_ = closer.Close()
			closer = nil
		}
	}

	root = &cobra.Command{
		Use:   "crossflow",
		Short: "Batch cross-flow membrane filtration simulator",
		Long: `The crossflow tool simulates a batch cross-flow filtration over time.
Permeate is removed through a fouling membrane until the target concentration
factor, the MWCO guard or a maximum simulation time stops the run.

Configuration is read from defaults, a TOML scenario file (--config), a .env
file (--env-file), CROSSFLOW_* environment variables and finally flags.

Examples:
  crossflow run --volume 1 --tmp 100000 --membrane-area 5 --mwco 40000 --cf 2 --max-time 5h
  crossflow run --config batch.toml --store runs.sqlite3 --json out/result.json
  crossflow history --store runs.sqlite3 --limit 10`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			l, c, err := newLogger(lo)
			if err != nil {
				return err
			}
			logger, closer = l, c
			return nil
		},
	}
	root.PersistentFlags().StringVar(&lo.level, "log-level", "warn", "diagnostic level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&lo.file, "log-file", "", "append diagnostics to this file instead of stderr")
	root.PersistentFlags().StringVar(&lo.format, "log-format", "text", "diagnostic format: text or json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one filtration scenario and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, ro, logger)
		},
	}
	f := runCmd.Flags()
	f.StringVarP(&ro.configPath, "config", "c", "", "TOML scenario file")
	f.StringVar(&ro.envFile, "env-file", "", "dotenv file with CROSSFLOW_* keys")
	f.Float64Var(&ro.scenario.Volume, "volume", 0, "initial volume in L")
	f.Float64Var(&ro.scenario.Concentration, "concentration", 0, "initial solute concentration in g/L")
	f.Float64Var(&ro.scenario.TMP, "tmp", 0, "transmembrane pressure in Pa")
	f.Float64Var(&ro.scenario.MembraneArea, "membrane-area", 0, "membrane area in m²")
	f.Float64Var(&ro.scenario.MWCO, "mwco", 0, "molecular weight cut-off in Da")
	f.Float64Var(&ro.scenario.ConcentrationFactor, "cf", 0, "target concentration factor")
	f.DurationVar(&ro.scenario.MaxTime, "max-time", 0, "maximum simulation time (0 = unbounded)")
	f.DurationVarP(&ro.scenario.Step, "step", "s", 0, "time step (e.g. 1h, 15m)")
	f.StringVar(&ro.scenario.Resistance, "resistance", "", "resistance model: simplified or constant")
	f.Float64Var(&ro.scenario.ResistanceValue, "resistance-value", 0, "constant resistance in 1/m")
	f.StringVar(&ro.scenario.Viscosity, "viscosity", "", "viscosity model: water or vogel")
	f.Float64Var(&ro.scenario.TemperatureK, "temperature", 0, "feed temperature in K (vogel)")
	f.StringVar(&ro.storePath, "store", "", "archive the result in this SQLite database")
	f.StringVar(&ro.jsonPath, "json", "", "write the result to a JSON file")
	f.StringVar(&ro.csvPath, "csv", "", "write the result to a CSV file")

	var (
		historyStore string
		historyLimit int
	)
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List archived simulation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return history(cmd.OutOrStdout(), historyStore, historyLimit)
		},
	}
	historyCmd.Flags().StringVar(&historyStore, "store", "crossflow.sqlite3", "SQLite database to read")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to list (0 = all)")

	root.AddCommand(runCmd, historyCmd)
	return root, cleanup
}

// newLogger builds the diagnostic logger. The returned closer is nil unless
// a log file was opened.
func newLogger(o logOpts) (*slog.Logger, io.Closer, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(o.level)); err != nil {
		return nil, nil, fmt.Errorf("log-level: %w", err)
	}

	hopts := &slog.HandlerOptions{Level: lvl}
	var newHandler func(io.Writer) slog.Handler
	switch strings.ToLower(o.format) {
	case "text":
		newHandler = func(w io.Writer) slog.Handler { return slog.NewTextHandler(w, hopts) }
	case "json":
		newHandler = func(w io.Writer) slog.Handler { return slog.NewJSONHandler(w, hopts) }
	default:
		return nil, nil, fmt.Errorf("log-format must be text or json, got %q", o.format)
	}

	if o.file == "" {
		return slog.New(newHandler(os.Stderr)), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(o.file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log-file: %w", err)
	}
	lf, err := os.OpenFile(o.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log-file: %w", err)
	}
	return slog.New(newHandler(lf)), lf, nil
}

// scenario layers defaults, file, env and explicitly set flags.
func scenario(cmd *cobra.Command, o runOpts) (config.Scenario, error) {
	s := config.Default()
	if o.configPath != "" {
		if err := config.LoadFile(o.configPath, &s); err != nil {
			return s, err
		}
	}
	if err := config.LoadEnv(o.envFile, &s); err != nil {
		return s, err
	}

	set := cmd.Flags().Changed
	fl := o.scenario
	if set("volume") {
		s.Volume = fl.Volume
	}
	if set("concentration") {
		s.Concentration = fl.Concentration
	}
	if set("tmp") {
		s.TMP = fl.TMP
	}
	if set("membrane-area") {
		s.MembraneArea = fl.MembraneArea
	}
	if set("mwco") {
		s.MWCO = fl.MWCO
	}
	if set("cf") {
		s.ConcentrationFactor = fl.ConcentrationFactor
	}
	if set("max-time") {
		s.MaxTime = fl.MaxTime
	}
	if set("step") {
		s.Step = fl.Step
	}
	if set("resistance") {
		s.Resistance = strings.ToLower(fl.Resistance)
	}
	if set("resistance-value") {
		s.ResistanceValue = fl.ResistanceValue
	}
	if set("viscosity") {
		s.Viscosity = strings.ToLower(fl.Viscosity)
	}
	if set("temperature") {
		s.TemperatureK = fl.TemperatureK
	}
	return s, nil
}

func run(cmd *cobra.Command, o runOpts, logger *slog.Logger) error {
	s, err := scenario(cmd, o)
	if err != nil {
		return err
	}

	cfg, err := s.Config()
	if err != nil {
		return err
	}
	model, err := crossflow.New(cfg, crossflow.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}

	res, err := model.Run(s.Step)
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	rep := report{
		TimeHours:           util.Hours(res.Time),
		PermeateVolume:      res.PermeateVolume,
		RetentateVolume:     res.RetentateVolume,
		ConcentrationFactor: res.ConcentrationFactor,
		Steps:               res.Steps,
		Reason:              string(res.Reason),
	}

	if o.storePath != "" {
		st, err := store.Open(o.storePath)
		if err != nil {
			return err
		}
		defer func() {
			_ = st.Close()
		}()

		termination := "none"
		if cfg.Termination != nil {
			termination = modelName(cfg.Termination)
		}
		saved, err := st.Save(store.Run{
			Volume:       cfg.Volume,
			TMP:          cfg.TMP,
			MembraneArea: cfg.MembraneArea,
			MWCO:         cfg.MWCO,
			TargetFactor: cfg.ConcentrationFactor,
			Step:         s.Step,
			Resistance:   modelName(cfg.Resistance),
			Viscosity:    modelName(cfg.Viscosity),
			Termination:  termination,
			Result:       res,
		})
		if err != nil {
			// archiving is best-effort; the result is still reported
			logger.Warn("archive result", "err", err)
		} else {
			rep.ID = saved.ID
		}
	}

	printResult(cmd.OutOrStdout(), res, rep.ID)

	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, rep); err != nil {
			return fmt.Errorf("json: %w", err)
		}
	}
	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, rep); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
	}
	return nil
}

func modelName(m any) string {
	if s, ok := m.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", m)
}

func printResult(w io.Writer, res crossflow.Result, id string) {
	fmt.Fprintln(w, "Simulation Results:")
	if id != "" {
		fmt.Fprintf(w, "  Run ID: %s\n", id)
	}
	fmt.Fprintf(w, "  Total time in hours: %.3f h\n", util.Hours(res.Time))
	fmt.Fprintf(w, "  Final permeate volume: %s\n", types.Liters(res.PermeateVolume).Humanized())
	fmt.Fprintf(w, "  Final retentate volume: %s\n", types.Liters(res.RetentateVolume).Humanized())
	fmt.Fprintf(w, "  Concentration factor: %.4f\n", res.ConcentrationFactor)
	fmt.Fprintf(w, "  Steps: %d (stopped by %s)\n", res.Steps, res.Reason)
}

func writeJSON(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func writeCSV(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	_ = w.Write([]string{
		"id", "time_h", "permeate_volume_l", "retentate_volume_l", "concentration_factor", "steps", "reason",
	})
	_ = w.Write([]string{
		rep.ID,
		util.FmtFloat(rep.TimeHours),
		util.FmtFloat(rep.PermeateVolume),
		util.FmtFloat(rep.RetentateVolume),
		util.FmtFloat(rep.ConcentrationFactor),
		strconv.Itoa(rep.Steps),
		rep.Reason,
	})
	w.Flush()
	return w.Error()
}

func history(out io.Writer, path string, limit int) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
	}()

	runs, err := st.List(limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTMP (Pa)\tAREA (m²)\tMWCO (Da)\tTIME (h)\tPERMEATE\tRETENTATE\tCF\tREASON")
	fmt.Fprintln(tw, "--\t-------\t--------\t---------\t---------\t--------\t--------\t---------\t--\t------")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.3f\t%.0f\t%.3f\t%s\t%s\t%.4f\t%s\n",
			r.ID, r.CreatedAt.Format(time.DateTime), r.TMP, r.MembraneArea, r.MWCO,
			util.Hours(r.Result.Time),
			types.Liters(r.Result.PermeateVolume).Humanized(),
			types.Liters(r.Result.RetentateVolume).Humanized(),
			r.Result.ConcentrationFactor, r.Result.Reason,
		)
	}
	return tw.Flush()
}
