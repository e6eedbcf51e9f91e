// Package simulation orchestrates the Monte Carlo study: per-repetition
// data generation, rebalancing, model fitting and scoring, and the
// cross-repetition aggregation of the three experiment arms.
package simulation

import (
	"runtime"

	"github.com/YuminosukeSato/smotesim/dataset"
	"github.com/YuminosukeSato/smotesim/pkg/errors"
)

// Config is the immutable parameter set of one study. It is passed into the
// Driver by value; nothing in the run mutates it, so several configurations
// can run side by side.
type Config struct {
	// Reps is the number of Monte Carlo repetitions.
	Reps int

	// N is the per-repetition dataset size before the train/test split.
	N int

	// TestFraction is the held-out prefix fraction of each dataset.
	TestFraction float64

	// Seed is the master seed; repetition r draws from the independent
	// stream (Seed, r).
	Seed uint64

	// Workers bounds the number of concurrent repetitions. Zero means one
	// worker per CPU.
	Workers int

	// K is the SMOTE neighbor count.
	K int

	// Generator holds the true generative parameters (the known truth that
	// bias is measured against).
	Generator dataset.Params

	// TargetRatios are the desired post-oversampling minority fractions of
	// the two SMOTE arms.
	TargetRatios [2]float64

	// UnderPcts are the fixed majority under-sampling percentages paired
	// with the two arms. These are deliberate experimental constants chosen
	// to roughly fix the absolute majority pool size across both arms; they
	// are never derived from the achieved minority count.
	UnderPcts [2]float64
}

// DefaultConfig returns the study's fixed constants: 500 repetitions of
// n = 1000 with a 20% test prefix, unit slopes over an Exponential(1)
// covariate, and an intercept putting the positive class around 5-10%.
func DefaultConfig() Config {
	return Config{
		Reps:         500,
		N:            1000,
		TestFraction: 0.2,
		Seed:         20240501,
		Workers:      0,
		K:            5,
		Generator: dataset.Params{
			Intercept: -6.0,
			Beta1:     1.0,
			Beta2:     1.0,
			RateX1:    1.0,
		},
		TargetRatios: [2]float64{0.1, 0.5},
		UnderPcts:    [2]float64{1800, 106},
	}
}

// Validate rejects configurations the pipeline cannot run.
func (c Config) Validate() error {
	const op = "Config.Validate"

	if c.Reps <= 0 {
		return errors.NewValueError(op, "Reps must be positive")
	}
	if c.N <= 0 {
		return errors.NewValueError(op, "N must be positive")
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return errors.NewValueError(op, "TestFraction must be in (0, 1)")
	}
	if c.K < 1 {
		return errors.NewValueError(op, "K must be at least 1")
	}
	if c.Workers < 0 {
		return errors.NewValueError(op, "Workers must be non-negative")
	}
	for _, ratio := range c.TargetRatios {
		if ratio <= 0 || ratio >= 1 {
			return errors.NewValueError(op, "TargetRatios must be in (0, 1)")
		}
	}
	for _, pct := range c.UnderPcts {
		if pct < 0 {
			return errors.NewValueError(op, "UnderPcts must be non-negative")
		}
	}
	if c.Generator.RateX1 <= 0 {
		return errors.NewValueError(op, "Generator.RateX1 must be positive")
	}
	return nil
}

// workers resolves the effective worker count.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
