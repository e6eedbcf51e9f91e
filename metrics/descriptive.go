package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/smotesim/pkg/errors"
)

// Mean returns the arithmetic mean of x.
func Mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errors.NewValueError("Mean", "empty vector")
	}
	return stat.Mean(x, nil), nil
}

// Variance returns the unbiased sample variance of x.
func Variance(x []float64) (float64, error) {
	if len(x) < 2 {
		return 0, errors.NewValueError("Variance", "need at least two values")
	}
	return stat.Variance(x, nil), nil
}

// Correlation returns the Pearson correlation of a and b using a consistent
// sample normalization for covariance and both standard deviations, so that
// Correlation(a, a) is exactly 1 for any non-constant a and the result is
// symmetric in its arguments. A constant input has zero standard deviation;
// the correlation is then undefined and a NaN sentinel is returned with an
// UndefinedMetricWarning.
func Correlation(a, b []float64) (float64, error) {
	if len(a) == 0 {
		return 0, errors.NewValueError("Correlation", "empty vector")
	}
	if len(a) != len(b) {
		return 0, errors.NewDimensionError("Correlation", len(a), len(b), 0)
	}

	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) {
		errors.Warn(errors.NewUndefinedMetricWarning("correlation", "zero variance input", math.NaN()))
	}
	return r, nil
}
