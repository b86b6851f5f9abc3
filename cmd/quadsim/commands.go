package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/quadsim/internal/bench"
	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/config"
	"github.com/san-kum/quadsim/internal/quad"
	"github.com/san-kum/quadsim/internal/reference"
	"github.com/san-kum/quadsim/internal/storage"
	"github.com/san-kum/quadsim/internal/tui"
	"github.com/san-kum/quadsim/internal/viz"
)

// num formats like a default C++ stream: six significant digits.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func setup(cmd *cobra.Command) (*config.Config, quad.Params, *engines, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, quad.Params{}, nil, err
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, quad.Params{}, nil, err
	}
	eng, err := newEngines(cfg)
	if err != nil {
		return nil, quad.Params{}, nil, err
	}
	return cfg, p, eng, nil
}

func runOnce(cmd *cobra.Command, args []string) error {
	_, p, eng, err := setup(cmd)
	if err != nil {
		return err
	}
	defer eng.Cleanup()

	if err := eng.accel.Configure(p); err != nil {
		slog.Warn("accelerator not configured", "device", eng.accel.Name(), "err", err)
	}

	lines := []struct {
		label  string
		engine compute.Engine
	}{
		{"CPU", eng.cpu},
		{"GPU", eng.accel},
		{"Comb", eng.opt},
	}
	for _, l := range lines {
		res, err := l.engine.Integrate(p)
		if err != nil {
			if !errors.Is(err, quad.ErrEngineUnavailable) {
				return err
			}
			fmt.Printf("%s. unavailable: %v\n", l.label, err)
			continue
		}
		fmt.Printf("%s. Value: %s Time: %sms\n", l.label, num(res.Value), num(res.Time))
	}
	return nil
}

func benchEngines(cmd *cobra.Command, args []string) error {
	cfg, p, eng, err := setup(cmd)
	if err != nil {
		return err
	}
	defer eng.Cleanup()

	fmt.Println(viz.Title.Render("benchmarking") + " " + viz.Subtle.Render(p.String()+fmt.Sprintf(" runs=%d", cfg.Runs)))
	fmt.Println()

	var st *storage.Store
	if save {
		st = storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENGINE\tMIN\tAVG\tMAX\tVALUE\tRUN")

	for _, engine := range eng.all() {
		report, err := bench.Run(engine, p, cfg.Runs)
		if err != nil {
			if !errors.Is(err, quad.ErrEngineUnavailable) {
				return err
			}
			slog.Warn("engine skipped", "engine", engine.Name(), "err", err)
			fmt.Fprintf(w, "%s\t-\t-\t-\tunavailable\t\n", engine.Name())
			continue
		}

		runID := ""
		if st != nil {
			if runID, err = st.Save(report); err != nil {
				return err
			}
			slog.Info("report saved", "run", runID)
		}

		fmt.Fprintf(w, "%s\t%.3fms\t%.3fms\t%.3fms\t%s\t%s\n",
			report.Engine,
			report.Stats.Min,
			report.Stats.Average,
			report.Stats.Max,
			num(report.Value()),
			runID,
		)
	}
	return w.Flush()
}

func sweepEngines(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngines(cfg)
	if err != nil {
		return err
	}
	defer eng.Cleanup()

	if !eng.accel.Available() {
		return &quad.EngineUnavailableError{Engine: eng.accel.Name()}
	}

	engines := []compute.Engine{eng.cpu, eng.accel}
	sw, err := bench.RunSweep(engines, cfg.Left, cfg.Right, sizes, sweepRuns)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEGMENTS\tSELECT")
	for _, name := range sw.Engines {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for i, n := range sw.Sizes {
		fmt.Fprintf(w, "%d\t%s", n, eng.opt.Select(n))
		for e := range sw.Engines {
			fmt.Fprintf(w, "\t%.3fms", sw.Averages[e][i])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.SweepPlot(sw.Engines, sw.Sizes, sw.Averages))
	fmt.Println()

	threshold := eng.opt.Threshold()
	if n, ok := sw.Crossover(0, 1); ok {
		fmt.Printf("%s %d segments (threshold %d)\n", viz.MetricLabel.Render("observed crossover:"), n, threshold)
	} else {
		fmt.Printf("%s none in ladder (threshold %d)\n", viz.MetricLabel.Render("observed crossover:"), threshold)
	}
	return nil
}

func verifyEngines(cmd *cobra.Command, args []string) error {
	_, p, eng, err := setup(cmd)
	if err != nil {
		return err
	}
	defer eng.Cleanup()

	exact := reference.Exact(p.Left(), p.Right())
	legendre := reference.Legendre(p.Left(), p.Right(), 0)

	fmt.Println(viz.Header.Render("verify " + p.String()))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tVALUE\tREL ERROR\tRESULT")
	fmt.Fprintf(w, "exact\t%.9f\t-\t\n", exact)
	fmt.Fprintf(w, "gauss-legendre\t%.9f\t%.3e\t\n", legendre, reference.RelativeError(legendre, exact))

	checked, passed := 0, 0
	for _, engine := range eng.all() {
		res, err := engine.Integrate(p)
		if err != nil {
			if !errors.Is(err, quad.ErrEngineUnavailable) {
				return err
			}
			fmt.Fprintf(w, "%s\t-\t-\tunavailable\n", engine.Name())
			continue
		}
		check := reference.Verify(p, res.Value, reference.Tolerance)
		checked++
		if check.Pass {
			passed++
		}
		fmt.Fprintf(w, "%s\t%.9f\t%.3e\t%s\n", engine.Name(), check.Got, check.RelError, viz.Verdict(check.Pass))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println(viz.Separator(48))
	fmt.Printf("%s %d/%d engines within %.0e\n", viz.MetricLabel.Render("verified:"), passed, checked, reference.Tolerance)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	stored, err := st.List()
	if err != nil {
		return err
	}

	if len(stored) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENGINE\tTIME\tSEGMENTS\tRUNS\tAVG\tVALUE")

	for _, run := range stored {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3fms\t%s\n",
			run.ID,
			run.Engine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Segments,
			run.Stats.Runs,
			run.Stats.Average,
			num(run.Value),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	report, err := st.Report(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Header.Render("run " + args[0]))
	fmt.Println(viz.Card([][2]string{
		{"engine:", report.Engine},
		{"params:", report.Params.String()},
		{"stats:", report.Stats.String()},
		{"value:", num(report.Value())},
	}))
	fmt.Println()

	times := make([]float64, len(report.Samples))
	for i, s := range report.Samples {
		times[i] = s.Time
	}
	if len(times) > 1 {
		fmt.Println(viz.TimingPlot(report.Engine, times))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := storage.New(cfg.DataDir).Report(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.WriteJSON(os.Stdout, report)
	}
	if err := storage.ExportJSON(outPath, report); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], outPath)
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(outPath, cfg); err != nil {
		return err
	}
	slog.Info("config written", "path", outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLEFT\tRIGHT\tSEGMENTS\tRUNS\tSELECT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%d\t%d\t%s\n", name, p.Left, p.Right, p.Segments, p.Runs, compute.Select(p.Segments))
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	_, p, eng, err := setup(cmd)
	if err != nil {
		return err
	}
	defer eng.Cleanup()

	return tui.RunLive(eng.all(), p)
}
