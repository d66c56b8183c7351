package linear

import (
	"math/rand/v2"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/thant-thiha/Premier-League-23-24/core/model"
	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
	"github.com/thant-thiha/Premier-League-23-24/split"
)

// RidgeCV selects the ridge penalty strength by k-fold cross-validation over
// a candidate grid, then refits on the full training data with the winner.
// The folds are assigned once and shared across the whole grid, so the
// selected penalty is deterministic for a fixed generator state.
type RidgeCV struct {
	model.BaseEstimator

	// Lambdas is the candidate penalty grid.
	Lambdas []float64

	// Folds is the number of cross-validation folds.
	Folds int

	// BestLambda is the selected penalty after Fit. Ties on mean
	// cross-validation error go to the earliest grid entry.
	BestLambda float64

	// CVErrors holds the mean cross-validation MSE per grid entry, in grid
	// order.
	CVErrors []float64

	// Model is the final ridge model refit on the full training data.
	Model *Ridge
}

// NewRidgeCV creates a cross-validated ridge fitter.
func NewRidgeCV(lambdas []float64, folds int) *RidgeCV {
	return &RidgeCV{Lambdas: lambdas, Folds: folds}
}

// Fit selects the penalty and fits the final model. Folds are scored
// concurrently for each candidate; the fold assignment itself is drawn from
// rng up front, so concurrency never touches the result.
func (rc *RidgeCV) Fit(X mat.Matrix, y *mat.VecDense, rng *rand.Rand) error {
	if len(rc.Lambdas) == 0 {
		return errors.NewConfigError("penalty grid", "no candidate values")
	}
	for _, lambda := range rc.Lambdas {
		if lambda < 0 {
			return errors.NewConfigError("penalty grid", "negative penalty strength")
		}
	}

	n, c := X.Dims()
	if n == 0 || c == 0 {
		return errors.NewModelError("RidgeCV.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return errors.NewDimensionError("RidgeCV.Fit", n, y.Len(), 0)
	}

	kf := split.NewKFold(rc.Folds)
	folds, err := kf.Split(n, rng)
	if err != nil {
		return err
	}

	// A fold whose fitting rows have a constant target cannot rank
	// penalties; surface that instead of returning an arbitrary winner.
	for f, fold := range folds {
		if constantTarget(y, fold.TrainIndices) {
			return errors.NewModelError("RidgeCV.Fit", "degenerate fold", errors.Newf("fold %d has zero target variance", f))
		}
	}

	rc.CVErrors = make([]float64, len(rc.Lambdas))
	for li, lambda := range rc.Lambdas {
		sse := make([]float64, len(folds))
		errs := make([]error, len(folds))

		var wg sync.WaitGroup
		for f := range folds {
			wg.Add(1)
			go func(f int) {
				defer wg.Done()

				fold := folds[f]
				trainX, trainY := extractSubset(X, y, fold.TrainIndices)
				testX, testY := extractSubset(X, y, fold.TestIndices)

				rr := NewRidge(lambda)
				if err := rr.Fit(trainX, trainY); err != nil {
					errs[f] = errors.Wrapf(err, "fold %d", f)
					return
				}

				pred, err := rr.Predict(testX)
				if err != nil {
					errs[f] = errors.Wrapf(err, "fold %d", f)
					return
				}

				var foldSSE float64
				for i := 0; i < testY.Len(); i++ {
					diff := testY.AtVec(i) - pred.AtVec(i)
					foldSSE += diff * diff
				}
				sse[f] = foldSSE
			}(f)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return err
			}
		}

		var total float64
		for _, s := range sse {
			total += s
		}
		rc.CVErrors[li] = total / float64(n)
	}

	best := 0
	for li := 1; li < len(rc.CVErrors); li++ {
		if rc.CVErrors[li] < rc.CVErrors[best] {
			best = li
		}
	}
	rc.BestLambda = rc.Lambdas[best]

	rc.Model = NewRidge(rc.BestLambda)
	if err := rc.Model.Fit(X, y); err != nil {
		return errors.Wrap(err, "refitting with selected penalty")
	}

	rc.SetFitted()
	return nil
}

// Predict delegates to the final refit model.
func (rc *RidgeCV) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !rc.IsFitted() {
		return nil, errors.NewNotFittedError("RidgeCV", "Predict")
	}
	return rc.Model.Predict(X)
}

// constantTarget reports whether y is constant over the given rows.
func constantTarget(y *mat.VecDense, indices []int) bool {
	if len(indices) < 2 {
		return true
	}
	first := y.AtVec(indices[0])
	for _, idx := range indices[1:] {
		if y.AtVec(idx) != first {
			return false
		}
	}
	return true
}

// extractSubset copies the given rows of X and y, in ascending index order.
func extractSubset(X mat.Matrix, y *mat.VecDense, indices []int) (*mat.Dense, *mat.VecDense) {
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	_, cols := X.Dims()
	xSubset := mat.NewDense(len(sorted), cols, nil)
	ySubset := mat.NewVecDense(len(sorted), nil)

	for i, idx := range sorted {
		for j := 0; j < cols; j++ {
			xSubset.Set(i, j, X.At(idx, j))
		}
		ySubset.SetVec(i, y.AtVec(idx))
	}

	return xSubset, ySubset
}
