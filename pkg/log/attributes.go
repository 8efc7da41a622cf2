// Package log defines standard attribute keys for machine learning operations.
//
// Keys follow a hierarchical naming convention ("model.name",
// "training.epoch") so logs from different models can be filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "LogisticRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "partial_fit", "predict", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "optimize", "linear_model", "preprocessing"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// BatchSizeKey indicates the size of the optimizer batches.
	BatchSizeKey = "data.batch_size"
)

// Training progress
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the full-dataset loss after an epoch.
	LossKey = "metrics.loss"

	// LossDeltaKey records |previous_loss - current_loss|.
	LossDeltaKey = "metrics.loss_delta"

	// IterationKey records the number of epochs run so far.
	IterationKey = "training.iteration"

	// EpochKey records the current epoch number during training.
	EpochKey = "training.epoch"

	// StatusKey records the fitting loop state ("converged", "exhausted", ...).
	StatusKey = "training.status"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters
const (
	// LearningRateKey records the learning rate for gradient-based algorithms.
	LearningRateKey = "hyperparams.learning_rate"

	// ToleranceKey records the convergence tolerance.
	ToleranceKey = "hyperparams.tolerance"

	// MaxIterationsKey records the epoch budget.
	MaxIterationsKey = "hyperparams.max_iterations"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit        = "fit"
	OperationPartialFit = "partial_fit"
	OperationPredict    = "predict"
	OperationScore      = "score"
	OperationTrajectory = "fit_trajectory"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInvalidConfig     = "INVALID_CONFIGURATION"
	ErrorDiverged          = "DIVERGED_OPTIMIZATION"
)
