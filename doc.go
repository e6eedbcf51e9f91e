// Package smotesim is a Monte Carlo simulation study of the effect of
// SMOTE over-sampling on logistic regression estimation under class
// imbalance.
//
// Each repetition draws an imbalanced binary dataset from a known
// logistic generative model, splits it into train and test partitions,
// and fits a logistic regression on three versions of the training
// data: untouched (baseline) and rebalanced with SMOTE to minority
// ratios of 0.1 and 0.5. Per-repetition descriptive statistics,
// fitted coefficients, and test-set F1 scores are aggregated into
// per-arm summaries and percentage relative bias against the
// generative truth.
//
// The packages compose bottom-up:
//
//   - dataset: generative model and train/test plumbing
//   - smote: the SMOTE resampler (Chawla et al., 2002)
//   - linear_model: logistic regression fitted by IRLS
//   - metrics: classification and descriptive statistics
//   - simulation: repetition driver, result tables, summaries
//   - report: CSV export and box plots
//
// The cmd/smotesim binary runs the full study and writes all artifacts.
package smotesim
