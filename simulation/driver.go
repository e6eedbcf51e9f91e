package simulation

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/YuminosukeSato/smotesim/dataset"
	"github.com/YuminosukeSato/smotesim/linear_model"
	"github.com/YuminosukeSato/smotesim/pkg/errors"
	"github.com/YuminosukeSato/smotesim/pkg/log"
	"github.com/YuminosukeSato/smotesim/smote"
)

// Results holds the three arms' result tables, one row per repetition.
type Results struct {
	Baseline ResultTable
	Ratio10  ResultTable
	Ratio50  ResultTable
}

// Table returns the arm's result table.
func (r *Results) Table(arm Arm) ResultTable {
	switch arm {
	case ArmRatio10:
		return r.Ratio10
	case ArmRatio50:
		return r.Ratio50
	default:
		return r.Baseline
	}
}

// Arms lists the experiment arms in reporting order.
func Arms() []Arm {
	return []Arm{ArmBaseline, ArmRatio10, ArmRatio50}
}

// Driver runs the Monte Carlo loop.
type Driver struct {
	cfg    Config
	gen    *dataset.Generator
	logger log.Logger
}

// NewDriver validates cfg and constructs a Driver.
func NewDriver(cfg Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := dataset.NewGenerator(cfg.Generator)
	if err != nil {
		return nil, err
	}
	return &Driver{
		cfg:    cfg,
		gen:    gen,
		logger: log.GetLoggerWithName("simulation.Driver"),
	}, nil
}

// Run executes all repetitions and returns the three populated result
// tables. Repetitions are independent: each owns a PCG stream derived from
// (Seed, repetition index) and writes only its own row index, so the output
// is identical whether repetitions run sequentially or across workers. Any
// repetition failure (invalid arguments, insufficient minority data,
// non-convergence) aborts the run and propagates; an undefined F1 does not.
func (d *Driver) Run(ctx context.Context) (*Results, error) {
	started := time.Now()
	d.logger.Info("simulation started",
		log.RepsKey, d.cfg.Reps,
		log.SamplesKey, d.cfg.N,
		log.SeedKey, d.cfg.Seed,
		log.WorkersKey, d.cfg.workers(),
	)

	results := &Results{
		Baseline: make(ResultTable, d.cfg.Reps),
		Ratio10:  make(ResultTable, d.cfg.Reps),
		Ratio50:  make(ResultTable, d.cfg.Reps),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.workers())
	for rep := 0; rep < d.cfg.Reps; rep++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			base, r10, r50, err := d.repetition(rep)
			if err != nil {
				return errors.Wrapf(err, "repetition %d", rep)
			}
			results.Baseline[rep] = base
			results.Ratio10[rep] = r10
			results.Ratio50[rep] = r50
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.logger.Info("simulation finished",
		log.RepsKey, d.cfg.Reps,
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)
	return results, nil
}

// repetition runs one independent unit of work: generate, split, and score
// the baseline and both SMOTE arms against the shared test prefix.
func (d *Driver) repetition(rep int) (base, r10, r50 MetricRow, err error) {
	rng := rand.New(rand.NewPCG(d.cfg.Seed, uint64(rep)))

	ds, err := d.gen.Generate(d.cfg.N, rng)
	if err != nil {
		return base, r10, r50, err
	}
	test, train, err := ds.Split(d.cfg.TestFraction)
	if err != nil {
		return base, r10, r50, err
	}

	if base, err = d.scoreArm(train, test); err != nil {
		return base, r10, r50, errors.Wrap(err, string(ArmBaseline))
	}

	arms := []struct {
		arm   Arm
		ratio float64
		under float64
	}{
		{ArmRatio10, d.cfg.TargetRatios[0], d.cfg.UnderPcts[0]},
		{ArmRatio50, d.cfg.TargetRatios[1], d.cfg.UnderPcts[1]},
	}
	rows := [2]MetricRow{}
	for i, a := range arms {
		overPct, err := smote.RequiredOversamplePercentage(train.Y, a.ratio)
		if err != nil {
			return base, r10, r50, errors.Wrap(err, string(a.arm))
		}
		resampler := smote.NewSMOTE(
			smote.WithOverPercentage(overPct),
			smote.WithUnderPercentage(a.under),
			smote.WithKNeighbors(d.cfg.K),
			smote.WithRandomSource(rng),
		)
		augmented, err := resampler.Resample(train)
		if err != nil {
			return base, r10, r50, errors.Wrap(err, string(a.arm))
		}
		if rows[i], err = d.scoreArm(augmented, test); err != nil {
			return base, r10, r50, errors.Wrap(err, string(a.arm))
		}
	}

	nMaj, nMin := train.ClassCounts()
	d.logger.Debug("repetition finished",
		log.RepetitionKey, rep,
		log.MajorityKey, nMaj,
		log.MinorityKey, nMin,
		log.F1Key, base.F1,
	)
	return base, rows[0], rows[1], nil
}

// scoreArm fits a logistic model on the arm's training data and evaluates
// it against the shared test set.
func (d *Driver) scoreArm(train, test *dataset.Dataset) (MetricRow, error) {
	lr := linear_model.NewLogisticRegression()
	if err := lr.Fit(train.X, train.YVector()); err != nil {
		return MetricRow{}, err
	}
	return Evaluate(train, lr, test)
}
