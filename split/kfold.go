package split

import (
	"math/rand/v2"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

// Fold is one cross-validation fold: the rows to fit on and the rows held
// out for scoring.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold assigns rows to k disjoint, roughly equal folds.
type KFold struct {
	NSplits int
	Shuffle bool
}

// NewKFold creates a k-fold splitter. Shuffling is on by default since fold
// assignment feeds hyperparameter selection.
func NewKFold(nSplits int) *KFold {
	return &KFold{NSplits: nSplits, Shuffle: true}
}

// Split assigns the row indices [0, nSamples) to folds. The first
// nSamples mod k folds receive one extra row. With shuffling enabled the
// assignment is drawn from the injected generator, so a fixed generator
// state reproduces the folds exactly.
func (kf *KFold) Split(nSamples int, rng *rand.Rand) ([]Fold, error) {
	if kf.NSplits < 2 {
		return nil, errors.NewConfigError("fold count", "must be at least 2")
	}
	if nSamples < kf.NSplits {
		return nil, errors.NewConfigError("fold count", "more folds than rows")
	}
	if kf.Shuffle && rng == nil {
		return nil, errors.NewValueError("KFold.Split", "nil random generator")
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	current := 0
	for f := 0; f < kf.NSplits; f++ {
		testSize := foldSize
		if f < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[current:current+testSize])

		train := make([]int, 0, nSamples-testSize)
		train = append(train, indices[:current]...)
		train = append(train, indices[current+testSize:]...)

		folds[f] = Fold{TrainIndices: train, TestIndices: test}
		current += testSize
	}

	return folds, nil
}
