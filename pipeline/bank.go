package pipeline

import "github.com/thant-thiha/Premier-League-23-24/dataset"

// ModelSpec names one candidate model: an ordinary least squares fit over
// the listed feature columns. An empty feature list is the global average
// model, which predicts the training mean for every row.
type ModelSpec struct {
	Name     string
	Features []string
}

// DefaultBank returns the candidate models of the published analysis, in
// reporting order.
func DefaultBank() []ModelSpec {
	return []ModelSpec{
		{Name: "average"},
		{Name: "total xg", Features: []string{dataset.ColTXG}},
		{Name: "xg split", Features: []string{dataset.ColXG, dataset.ColXGA}},
		{Name: "shooting", Features: []string{dataset.ColSh, dataset.ColSoT, dataset.ColFK, dataset.ColPKAtt}},
		{Name: "all features", Features: []string{dataset.ColXG, dataset.ColXGA, dataset.ColSh, dataset.ColSoT, dataset.ColFK, dataset.ColPKAtt}},
	}
}

// RidgeModelName labels the cross-validated ridge model in the report.
const RidgeModelName = "ridge cv"

// RidgeFeatures is the fixed feature set of the ridge model.
func RidgeFeatures() []string {
	return []string{dataset.ColXG, dataset.ColXGA, dataset.ColSh, dataset.ColSoT}
}
