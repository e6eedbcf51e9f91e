package simulation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/smotesim/dataset"
)

// SummaryRow is the column-wise mean of one arm's ResultTable. Undefined
// (NaN) F1 entries are excluded from the F1 mean, never averaged as zero;
// every other column is always defined.
type SummaryRow struct {
	MeanX1   float64
	MeanX2   float64
	VarX1    float64
	VarX2    float64
	CorrX1X2 float64
	Beta0    float64
	Beta1    float64
	Beta2    float64
	F1       float64
	F1Count  int // repetitions with a defined F1
}

// Summarize computes the SummaryRow of a table. The table is not modified;
// calling Summarize repeatedly on the same table yields identical rows.
func Summarize(table ResultTable) SummaryRow {
	n := len(table)
	meanX1 := make([]float64, n)
	meanX2 := make([]float64, n)
	varX1 := make([]float64, n)
	varX2 := make([]float64, n)
	corr := make([]float64, n)
	beta0 := make([]float64, n)
	beta1 := make([]float64, n)
	beta2 := make([]float64, n)
	var f1 []float64

	for i, row := range table {
		meanX1[i] = row.MeanX1
		meanX2[i] = row.MeanX2
		varX1[i] = row.VarX1
		varX2[i] = row.VarX2
		corr[i] = row.CorrX1X2
		beta0[i] = row.Beta0
		beta1[i] = row.Beta1
		beta2[i] = row.Beta2
		if !math.IsNaN(row.F1) {
			f1 = append(f1, row.F1)
		}
	}

	summary := SummaryRow{
		MeanX1:   stat.Mean(meanX1, nil),
		MeanX2:   stat.Mean(meanX2, nil),
		VarX1:    stat.Mean(varX1, nil),
		VarX2:    stat.Mean(varX2, nil),
		CorrX1X2: stat.Mean(corr, nil),
		Beta0:    stat.Mean(beta0, nil),
		Beta1:    stat.Mean(beta1, nil),
		Beta2:    stat.Mean(beta2, nil),
		F1:       math.NaN(),
		F1Count:  len(f1),
	}
	if len(f1) > 0 {
		summary.F1 = stat.Mean(f1, nil)
	}
	return summary
}

// PercentageRelativeBias is the signed percentage deviation of an
// estimator's average from the known true parameter:
// 100*(estimated-true)/true. A negative truth flips the sign, so an
// estimate that undershoots a negative parameter in magnitude reports a
// negative bias. A zero truth has no defined relative bias and yields NaN.
func PercentageRelativeBias(trueVal, estimated float64) float64 {
	if trueVal == 0 {
		return math.NaN()
	}
	return 100.0 * (estimated - trueVal) / trueVal
}

// CoefficientBias reports the percentage relative bias of an arm's average
// fitted coefficients against the generative truth.
type CoefficientBias struct {
	Beta0 float64
	Beta1 float64
	Beta2 float64
}

// BiasAgainst computes the coefficient bias of a summary against the true
// generative parameters.
func (s SummaryRow) BiasAgainst(truth dataset.Params) CoefficientBias {
	return CoefficientBias{
		Beta0: PercentageRelativeBias(truth.Intercept, s.Beta0),
		Beta1: PercentageRelativeBias(truth.Beta1, s.Beta1),
		Beta2: PercentageRelativeBias(truth.Beta2, s.Beta2),
	}
}

// LongRow is one arm-labelled repetition row of the long-format table
// consumed by external hypothesis-testing tooling.
type LongRow struct {
	Arm Arm
	Rep int
	MetricRow
}

// LongFormat flattens the three arms into one long-format table, arm by arm
// in reporting order with repetitions in index order inside each arm.
func LongFormat(results *Results) []LongRow {
	var out []LongRow
	for _, arm := range Arms() {
		table := results.Table(arm)
		for rep, row := range table {
			out = append(out, LongRow{Arm: arm, Rep: rep, MetricRow: row})
		}
	}
	return out
}
