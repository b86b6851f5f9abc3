package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/quadsim/internal/bench"
	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/config"
	"github.com/san-kum/quadsim/internal/logging"
)

var (
	configFile  string
	logLevel    string
	dataDir     string
	accelerator string

	left     float64
	right    float64
	segments int
	preset   string

	runs      int
	save      bool
	outPath   string
	sweepRuns int
	sizes     []int
)

// main registers the quadsim commands. Without a subcommand it integrates the
// default problem once on every engine.
func main() {
	rootCmd := &cobra.Command{
		Use:          "quadsim",
		Short:        "simpson integration of log10 on cpu and accelerator",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if !cmd.Flags().Changed("log-level") && configFile != "" {
				if cfg, err := config.Load(configFile); err == nil && cfg.LogLevel != "" {
					level = cfg.LogLevel
				}
			}
			_, err := logging.Setup(level)
			return err
		},
		RunE: runOnce,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&accelerator, "accelerator", compute.DeviceAuto, "accelerator device ("+strings.Join(compute.DeviceKinds, ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate once on cpu, accelerator and optimized engines",
		Args:  cobra.NoArgs,
		RunE:  runOnce,
	}
	addParamFlags(runCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time repeated integrations per engine",
		Args:  cobra.NoArgs,
		RunE:  benchEngines,
	}
	addParamFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", config.DefaultRuns, "calls per engine")
	benchCmd.Flags().BoolVar(&save, "save", false, "store reports in the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare engines over a ladder of segment counts",
		Args:  cobra.NoArgs,
		RunE:  sweepEngines,
	}
	addBoundsFlags(sweepCmd)
	sweepCmd.Flags().IntSliceVar(&sizes, "sizes", bench.DefaultSizes, "segment counts (even)")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 5, "calls per engine and size")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "check engine values against the closed form",
		Args:  cobra.NoArgs,
		RunE:  verifyEngines,
	}
	addParamFlags(verifyCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored bench reports",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored bench report",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored bench report as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  writeConfig,
	}
	addParamFlags(configCmd)
	configCmd.Flags().IntVar(&runs, "runs", config.DefaultRuns, "calls per engine")
	configCmd.Flags().StringVarP(&outPath, "out", "o", "quadsim.yaml", "output file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live benchmark view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addParamFlags(liveCmd)

	rootCmd.AddCommand(runCmd, benchCmd, sweepCmd, verifyCmd, listCmd, showCmd, exportCmd, presetsCmd, configCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addBoundsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&left, "left", config.DefaultLeft, "left bound (> 0)")
	cmd.Flags().Float64Var(&right, "right", config.DefaultRight, "right bound")
}

func addParamFlags(cmd *cobra.Command) {
	addBoundsFlags(cmd)
	cmd.Flags().IntVar(&segments, "segments", config.DefaultSegments, "segment count (even)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// loadConfig layers defaults, the config file, a preset and explicit flags,
// in that order, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Lookup("preset") != nil && preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	if flags.Changed("left") {
		cfg.Left = left
	}
	if flags.Changed("right") {
		cfg.Right = right
	}
	if flags.Changed("segments") {
		cfg.Segments = segments
	}
	if flags.Changed("runs") && (cmd.Name() == "bench" || cmd.Name() == "config") {
		cfg.Runs = runs
	}
	if flags.Changed("accelerator") {
		cfg.Accelerator = accelerator
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type engines struct {
	cpu   *compute.CPUEngine
	accel *compute.AcceleratorEngine
	opt   *compute.Dispatcher
}

func newEngines(cfg *config.Config) (*engines, error) {
	cpu, accel, err := compute.NewEngines(cfg.Accelerator, cfg.Emulator, slog.Default())
	if err != nil {
		return nil, err
	}
	opt := compute.NewDispatcher(cpu, accel,
		compute.WithThreshold(cfg.Threshold),
		compute.WithFallback(cfg.Fallback),
		compute.WithLogger(slog.Default()),
	)
	slog.Debug("engines ready", "cpu", cpu.Name(), "accelerator", accel.Name(), "threshold", opt.Threshold())
	return &engines{cpu: cpu, accel: accel, opt: opt}, nil
}

func (e *engines) all() []compute.Engine {
	return []compute.Engine{e.cpu, e.accel, e.opt}
}

func (e *engines) Cleanup() {
	e.opt.Cleanup()
}
