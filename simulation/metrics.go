package simulation

import (
	"github.com/YuminosukeSato/smotesim/core/model"
	"github.com/YuminosukeSato/smotesim/dataset"
	"github.com/YuminosukeSato/smotesim/metrics"
	"github.com/YuminosukeSato/smotesim/pkg/errors"
)

// Arm names one of the three experiment conditions.
type Arm string

const (
	// ArmBaseline is the unmodified training data.
	ArmBaseline Arm = "baseline"
	// ArmRatio10 is SMOTE targeting a 0.1 minority fraction.
	ArmRatio10 Arm = "smote_0.1"
	// ArmRatio50 is SMOTE targeting a 0.5 minority fraction.
	ArmRatio50 Arm = "smote_0.5"
)

// MetricRow is the fixed per-repetition metric schema every arm populates:
// descriptive statistics of the arm's training covariates, the fitted
// coefficients, and the held-out F1 score. F1 is NaN when undefined.
type MetricRow struct {
	MeanX1   float64
	MeanX2   float64
	VarX1    float64
	VarX2    float64
	CorrX1X2 float64
	Beta0    float64
	Beta1    float64
	Beta2    float64
	F1       float64
}

// ResultTable is one arm's rows across all repetitions, indexed by
// repetition. It is written once by the Driver and read-only afterward.
type ResultTable []MetricRow

// FittedModel is what Evaluate needs from a fitted classifier: label
// predictions for the test set plus the point estimates under study.
type FittedModel interface {
	model.Predictor
	Intercept() float64
	Coef() []float64
}

// Evaluate computes one MetricRow: descriptive statistics over reference
// (the data the model was fitted on), the model's coefficients, and the F1
// score of its thresholded predictions on the held-out test set.
func Evaluate(reference *dataset.Dataset, fitted FittedModel, test *dataset.Dataset) (MetricRow, error) {
	var row MetricRow

	x1 := reference.Col(0)
	x2 := reference.Col(1)

	var err error
	if row.MeanX1, err = metrics.Mean(x1); err != nil {
		return row, err
	}
	if row.MeanX2, err = metrics.Mean(x2); err != nil {
		return row, err
	}
	if row.VarX1, err = metrics.Variance(x1); err != nil {
		return row, err
	}
	if row.VarX2, err = metrics.Variance(x2); err != nil {
		return row, err
	}
	if row.CorrX1X2, err = metrics.Correlation(x1, x2); err != nil {
		return row, err
	}

	coef := fitted.Coef()
	if len(coef) != dataset.NumFeatures {
		return row, errors.NewDimensionError("Evaluate", dataset.NumFeatures, len(coef), 1)
	}
	row.Beta0 = fitted.Intercept()
	row.Beta1 = coef[0]
	row.Beta2 = coef[1]

	pred, err := fitted.Predict(test.X)
	if err != nil {
		return row, err
	}
	if row.F1, err = metrics.F1Score(test.YVector(), pred); err != nil {
		return row, err
	}
	return row, nil
}
