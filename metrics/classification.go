// Package metrics provides the evaluation metrics of the simulation study:
// binary classification scores against held-out labels and descriptive
// statistics of covariates.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/smotesim/pkg/errors"
)

// ConfusionCounts holds the binary confusion cells for the positive class.
type ConfusionCounts struct {
	TP int // predicted positive, actual positive
	FP int // predicted positive, actual negative
	FN int // predicted negative, actual positive
	TN int // predicted negative, actual negative
}

// Confusion tallies the confusion cells of 0/1 prediction and truth vectors.
func Confusion(yTrue, yPred *mat.VecDense) (ConfusionCounts, error) {
	var c ConfusionCounts

	n := yTrue.Len()
	if n == 0 {
		return c, errors.NewValueError("Confusion", "empty vector")
	}
	if yPred.Len() != n {
		return c, errors.NewDimensionError("Confusion", n, yPred.Len(), 0)
	}

	for i := 0; i < n; i++ {
		actual, pred := yTrue.AtVec(i), yPred.AtVec(i)
		if (actual != 0 && actual != 1) || (pred != 0 && pred != 1) {
			return c, errors.NewValueError("Confusion", "labels must be 0 or 1")
		}
		switch {
		case pred == 1 && actual == 1:
			c.TP++
		case pred == 1 && actual == 0:
			c.FP++
		case pred == 0 && actual == 1:
			c.FN++
		default:
			c.TN++
		}
	}
	return c, nil
}

// F1Score computes the harmonic mean of precision and recall for the
// positive class. When precision or recall is undefined (no predicted
// positives, no actual positives) or both are zero, the score is undefined:
// a NaN sentinel is returned together with an UndefinedMetricWarning routed
// through the warning handler. NaN is a documented missing value, not a
// failure, and must be excluded from averaging rather than treated as zero.
func F1Score(yTrue, yPred *mat.VecDense) (float64, error) {
	c, err := Confusion(yTrue, yPred)
	if err != nil {
		return 0, err
	}

	if c.TP+c.FP == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("f1_score", "no predicted positives", math.NaN()))
		return math.NaN(), nil
	}
	if c.TP+c.FN == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("f1_score", "no actual positives", math.NaN()))
		return math.NaN(), nil
	}

	precision := float64(c.TP) / float64(c.TP+c.FP)
	recall := float64(c.TP) / float64(c.TP+c.FN)
	if precision+recall == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("f1_score", "precision and recall both zero", math.NaN()))
		return math.NaN(), nil
	}

	return 2 * precision * recall / (precision + recall), nil
}

// Precision returns TP/(TP+FP), or NaN when nothing was predicted positive.
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	c, err := Confusion(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if c.TP+c.FP == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted positives", math.NaN()))
		return math.NaN(), nil
	}
	return float64(c.TP) / float64(c.TP+c.FP), nil
}

// Recall returns TP/(TP+FN), or NaN when there are no actual positives.
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	c, err := Confusion(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if c.TP+c.FN == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no actual positives", math.NaN()))
		return math.NaN(), nil
	}
	return float64(c.TP) / float64(c.TP+c.FN), nil
}
