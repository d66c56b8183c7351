package log

// Attribute keys shared by the pipeline stages so log records stay
// queryable across a run.
const (
	// ModelKey identifies the model being fitted or scored.
	ModelKey = "model"

	// PartitionKey names the dataset partition ("training" or "holdout").
	PartitionKey = "partition"

	// RowsKey is a row count (dataset size, partition size, fold size).
	RowsKey = "rows"

	// FeaturesKey is the number of feature columns in a design matrix.
	FeaturesKey = "features"

	// RMSEKey carries a root-mean-square error value.
	RMSEKey = "rmse"

	// LambdaKey carries a ridge penalty strength.
	LambdaKey = "lambda"

	// FoldsKey is the cross-validation fold count of a penalty selection.
	FoldsKey = "folds"

	// SeedKey is the pseudo-random seed for a split or fold assignment.
	SeedKey = "seed"

	// PathKey is a filesystem path (input file, chart artifact).
	PathKey = "path"

	// DurationMsKey is an elapsed time in milliseconds.
	DurationMsKey = "duration_ms"
)
