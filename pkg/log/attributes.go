// Package log defines standard attribute keys for simulation operations.
//
// Using these keys consistently enables filtering a long Monte Carlo run's
// log output by repetition, experiment arm, or model. The keys follow a
// hierarchical naming convention (e.g. "sim.repetition", "data.samples").
package log

// Model and operation context
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "LogisticRegression", "SMOTE"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Examples: "fit", "resample", "generate", "evaluate"
	OperationKey = "operation"
)

// Simulation context
const (
	// RepetitionKey is the zero-based repetition index within a run.
	RepetitionKey = "sim.repetition"

	// ArmKey names the experiment arm a record belongs to.
	// Examples: "baseline", "smote_0.1", "smote_0.5"
	ArmKey = "sim.arm"

	// SeedKey is the master seed of the run.
	SeedKey = "sim.seed"

	// RepsKey is the total number of repetitions configured.
	RepsKey = "sim.reps"

	// WorkersKey is the number of concurrent repetition workers.
	WorkersKey = "sim.workers"
)

// Data shape and class balance
const (
	// SamplesKey is the number of records in play.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of covariates.
	FeaturesKey = "data.features"

	// MinorityKey is the observed minority-class count.
	MinorityKey = "data.minority"

	// MajorityKey is the observed majority-class count.
	MajorityKey = "data.majority"
)

// Performance and results
const (
	// DurationMsKey is elapsed wall time in milliseconds.
	DurationMsKey = "duration_ms"

	// IterationsKey is the number of optimizer iterations consumed.
	IterationsKey = "iterations"

	// F1Key is a held-out F1 score.
	F1Key = "metrics.f1"
)
