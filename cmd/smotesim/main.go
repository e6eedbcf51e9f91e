// Command smotesim runs the full Monte Carlo study with the fixed
// experimental constants and writes the per-arm result tables, the
// long-format table, summary statistics, and distribution plots.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/smotesim/pkg/log"
	"github.com/YuminosukeSato/smotesim/report"
	"github.com/YuminosukeSato/smotesim/simulation"
)

func main() {
	cfg := simulation.DefaultConfig()

	var outDir string
	var verbose bool
	flag.IntVar(&cfg.Reps, "reps", cfg.Reps, "number of Monte Carlo repetitions")
	flag.IntVar(&cfg.N, "n", cfg.N, "records per repetition before the train/test split")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "master seed")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent repetitions (0 = one per CPU)")
	flag.StringVar(&outDir, "out", "results", "output directory")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := log.LevelInfo
	if verbose {
		level = log.LevelDebug
	}
	log.SetLogger(log.NewLogger(os.Stderr, level))
	log.BridgeWarnings()
	logger := log.GetLoggerWithName("smotesim")

	if err := run(cfg, outDir, logger); err != nil {
		logger.Error("run failed", err)
		os.Exit(1)
	}
}

func run(cfg simulation.Config, outDir string, logger log.Logger) error {
	driver, err := simulation.NewDriver(cfg)
	if err != nil {
		return err
	}
	results, err := driver.Run(context.Background())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for _, arm := range simulation.Arms() {
		table := results.Table(arm)
		summary := simulation.Summarize(table)
		bias := summary.BiasAgainst(cfg.Generator)
		logger.Info("arm summary",
			log.ArmKey, string(arm),
			"beta0_mean", summary.Beta0,
			"beta1_mean", summary.Beta1,
			"beta2_mean", summary.Beta2,
			"beta0_prb", bias.Beta0,
			"beta1_prb", bias.Beta1,
			"beta2_prb", bias.Beta2,
			log.F1Key, summary.F1,
			"f1_defined", summary.F1Count,
		)

		if err := writeTable(filepath.Join(outDir, fmt.Sprintf("results_%s.csv", arm)), table); err != nil {
			return err
		}
	}

	longPath := filepath.Join(outDir, "results_long.csv")
	f, err := os.Create(longPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := report.WriteLongCSV(f, simulation.LongFormat(results)); err != nil {
		return err
	}

	if err := report.SaveF1BoxPlot(filepath.Join(outDir, "f1_by_arm.png"), results); err != nil {
		return err
	}
	for coef, truth := range map[string]float64{
		"beta0": cfg.Generator.Intercept,
		"beta1": cfg.Generator.Beta1,
		"beta2": cfg.Generator.Beta2,
	} {
		path := filepath.Join(outDir, fmt.Sprintf("%s_by_arm.png", coef))
		if err := report.SaveCoefficientBoxPlot(path, coef, truth, results); err != nil {
			return err
		}
	}

	logger.Info("artifacts written", "dir", outDir)
	return nil
}

func writeTable(path string, table simulation.ResultTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteResultCSV(f, table)
}
