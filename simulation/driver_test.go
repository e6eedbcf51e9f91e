package simulation

import (
	"context"
	"math"
	"testing"
)

func TestNewDriver_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero reps", func(c *Config) { c.Reps = 0 }},
		{"zero n", func(c *Config) { c.N = 0 }},
		{"bad test fraction", func(c *Config) { c.TestFraction = 1.0 }},
		{"zero neighbors", func(c *Config) { c.K = 0 }},
		{"bad target ratio", func(c *Config) { c.TargetRatios[0] = 1.0 }},
		{"negative under pct", func(c *Config) { c.UnderPcts[1] = -1 }},
		{"bad generator rate", func(c *Config) { c.Generator.RateX1 = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewDriver(cfg); err == nil {
				t.Error("NewDriver() should reject the config")
			}
		})
	}
}

// TestDriver_EndToEnd runs the documented single-repetition scenario:
// n = 1000 with the default intercept (circa 5-10% positives) must complete
// all three arms, and the baseline fit must land within ±0.5 of the
// generative slopes at this sample size.
func TestDriver_EndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reps = 1
	cfg.N = 1000
	cfg.Seed = 31415
	cfg.Workers = 1

	driver, err := NewDriver(cfg)
	if err != nil {
		t.Fatalf("NewDriver() error = %v", err)
	}
	results, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, arm := range Arms() {
		if got := len(results.Table(arm)); got != 1 {
			t.Fatalf("%s table has %d rows, want 1", arm, got)
		}
	}

	base := results.Baseline[0]
	if math.Abs(base.Beta1-cfg.Generator.Beta1) > 0.5 {
		t.Errorf("baseline beta1 = %v, want within 0.5 of %v", base.Beta1, cfg.Generator.Beta1)
	}
	if math.Abs(base.Beta2-cfg.Generator.Beta2) > 0.5 {
		t.Errorf("baseline beta2 = %v, want within 0.5 of %v", base.Beta2, cfg.Generator.Beta2)
	}

	// The SMOTE arms train on rebalanced data; their coefficient estimates
	// exist and their descriptive columns are populated.
	for _, arm := range []Arm{ArmRatio10, ArmRatio50} {
		row := results.Table(arm)[0]
		if row.VarX1 <= 0 || row.VarX2 <= 0 {
			t.Errorf("%s: non-positive variances %v, %v", arm, row.VarX1, row.VarX2)
		}
		if math.IsNaN(row.Beta1) || math.IsNaN(row.Beta2) {
			t.Errorf("%s: undefined coefficients", arm)
		}
	}
}

// TestDriver_ParallelDeterminism checks that per-repetition RNG streams
// make the result tables identical regardless of worker count.
func TestDriver_ParallelDeterminism(t *testing.T) {
	run := func(workers int) *Results {
		cfg := DefaultConfig()
		cfg.Reps = 4
		cfg.N = 400
		cfg.Seed = 99
		cfg.Workers = workers

		driver, err := NewDriver(cfg)
		if err != nil {
			t.Fatalf("NewDriver() error = %v", err)
		}
		results, err := driver.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return results
	}

	sequential := run(1)
	parallel := run(4)

	for _, arm := range Arms() {
		seqTable := sequential.Table(arm)
		parTable := parallel.Table(arm)
		for rep := range seqTable {
			if !rowsEqual(seqTable[rep], parTable[rep]) {
				t.Errorf("%s repetition %d differs between 1 and 4 workers:\n%+v\n%+v",
					arm, rep, seqTable[rep], parTable[rep])
			}
		}
	}
}

// rowsEqual compares rows treating NaN F1 sentinels as equal.
func rowsEqual(a, b MetricRow) bool {
	if math.IsNaN(a.F1) != math.IsNaN(b.F1) {
		return false
	}
	f1Match := math.IsNaN(a.F1) || a.F1 == b.F1
	return f1Match &&
		a.MeanX1 == b.MeanX1 && a.MeanX2 == b.MeanX2 &&
		a.VarX1 == b.VarX1 && a.VarX2 == b.VarX2 &&
		a.CorrX1X2 == b.CorrX1X2 &&
		a.Beta0 == b.Beta0 && a.Beta1 == b.Beta1 && a.Beta2 == b.Beta2
}
