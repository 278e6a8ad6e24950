// Package log defines standard attribute keys for analysis operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that log output can be filtered by prefix.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "OneHotEncoder"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the analysis.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// FeatureNamesKey lists the predictor names in play.
	FeatureNamesKey = "data.feature_names"

	// TargetKey names the target column.
	TargetKey = "data.target"

	// SourceKey is the file path or URL a table was loaded from.
	SourceKey = "data.source"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records an error value such as a cross-validated MSE.
	// Lower values indicate better model performance.
	LossKey = "metrics.loss"

	// BaselineLossKey records the score of the full predictor set.
	BaselineLossKey = "metrics.baseline_loss"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records the current iteration of an iterative search.
	IterationKey = "training.iteration"

	// FoldKey records the cross-validation fold index.
	FoldKey = "training.fold"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Configuration
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// SplitsKey records the number of cross-validation folds.
	SplitsKey = "config.n_splits"

	// TestSizeKey records the holdout test fraction.
	TestSizeKey = "config.test_size"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationSelect  = "select"
	OperationHoldout = "holdout"
	OperationLoad    = "load"
	OperationScrape  = "scrape"
	OperationPlot    = "plot"

	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseTesting       = "testing"
	PhasePreprocessing = "preprocessing"

	ErrorShapeMismatch = "SHAPE_MISMATCH"
	ErrorTypeMismatch  = "TYPE_MISMATCH"
	ErrorInvalidInput  = "INVALID_INPUT"
	ErrorEmptyData     = "EMPTY_DATA"
)
