// Package pipeline wires the stages of the total-goals analysis together:
// acquisition, derivation, the stratified split, the model bank, the
// cross-validated ridge fit, and the final report.
package pipeline

import (
	"math"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

// Config holds every knob that influences a run. A run is a pure function
// of its Config and the input file.
type Config struct {
	// DataPath is the local path of the match table; the file is downloaded
	// there when absent and DataURL is set.
	DataPath string

	// DataURL is the remote location of the match table. Empty disables
	// downloading, in which case DataPath must already exist.
	DataURL string

	// HoldoutFraction is the share of rows withheld for the final
	// evaluation (default 0.10).
	HoldoutFraction float64

	// Seed drives the stratified split and the cross-validation fold
	// assignment (default 1).
	Seed uint64

	// Folds is the cross-validation fold count for penalty selection
	// (default 10).
	Folds int

	// LambdaGrid is the candidate ridge penalty grid (default log-spaced
	// over 1e-3 to 1e3).
	LambdaGrid []float64

	// ChartPath receives the RMSE bar chart. Empty skips the chart.
	ChartPath string
}

// DefaultConfig returns the configuration of the published analysis.
func DefaultConfig() Config {
	return Config{
		DataPath:        "matches.csv",
		DataURL:         "https://raw.githubusercontent.com/thant-thiha/Premier-League-23-24/main/matches.csv",
		HoldoutFraction: 0.10,
		Seed:            1,
		Folds:           10,
		LambdaGrid:      DefaultLambdaGrid(),
		ChartPath:       "rmse.png",
	}
}

// DefaultLambdaGrid returns 13 penalty candidates log-spaced from 1e-3 to
// 1e3, half a decade apart.
func DefaultLambdaGrid() []float64 {
	grid := make([]float64, 13)
	for i := range grid {
		grid[i] = math.Pow(10, -3+0.5*float64(i))
	}
	return grid
}

// Validate rejects configurations that cannot produce a run.
func (c Config) Validate() error {
	if c.DataPath == "" {
		return errors.NewConfigError("data path", "must not be empty")
	}
	if c.HoldoutFraction <= 0 || c.HoldoutFraction >= 1 {
		return errors.NewConfigError("holdout fraction", "must be in (0, 1)")
	}
	if c.Folds < 2 {
		return errors.NewConfigError("fold count", "must be at least 2")
	}
	if len(c.LambdaGrid) == 0 {
		return errors.NewConfigError("penalty grid", "no candidate values")
	}
	return nil
}
