// Package linear implements the regression models in the candidate bank:
// ordinary least squares over an explicit feature list, ridge regression
// with an unpenalized intercept, and ridge with a cross-validated penalty.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/thant-thiha/Premier-League-23-24/core/model"
	"github.com/thant-thiha/Premier-League-23-24/core/parallel"
	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

// Row count above which building the design matrix is parallelized.
const parallelThreshold = 1000

// Regression is an ordinary least squares model. Fitting minimizes the sum
// of squared residuals via QR factorization of the design matrix, which
// stays stable where the normal equations would square the condition number.
type Regression struct {
	model.BaseEstimator

	Weights   *mat.VecDense // one coefficient per feature
	Intercept float64
	NFeatures int

	fitIntercept bool
}

// NewRegression creates an ordinary least squares model.
func NewRegression(opts ...Option) *Regression {
	lr := &Regression{
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit estimates the coefficients from the training rows. It fails with a
// singular-matrix ModelError when the design matrix is rank deficient
// (collinear features); coefficients are never silently NaN.
func (lr *Regression) Fit(X mat.Matrix, y *mat.VecDense) error {
	r, c := X.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("Regression.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return errors.NewDimensionError("Regression.Fit", r, y.Len(), 0)
	}

	lr.NFeatures = c

	design := lr.designMatrix(X)
	_, cols := design.Dims()
	if r < cols {
		return errors.NewModelError("Regression.Fit", "fewer rows than coefficients", errors.ErrSingularMatrix)
	}

	var qr mat.QR
	qr.Factorize(design)

	var coef mat.Dense
	if err := qr.SolveTo(&coef, false, y); err != nil {
		return errors.NewModelError("Regression.Fit", "rank-deficient design matrix", errors.ErrSingularMatrix)
	}
	for i := 0; i < cols; i++ {
		if v := coef.At(i, 0); math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewModelError("Regression.Fit", "rank-deficient design matrix", errors.ErrSingularMatrix)
		}
	}

	if lr.fitIntercept {
		lr.Intercept = coef.At(0, 0)
		lr.Weights = mat.NewVecDense(c, nil)
		for i := 0; i < c; i++ {
			lr.Weights.SetVec(i, coef.At(i+1, 0))
		}
	} else {
		lr.Intercept = 0
		lr.Weights = mat.NewVecDense(c, nil)
		for i := 0; i < c; i++ {
			lr.Weights.SetVec(i, coef.At(i, 0))
		}
	}

	lr.SetFitted()
	return nil
}

// designMatrix prepends the intercept column when the model fits one.
func (lr *Regression) designMatrix(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	if !lr.fitIntercept {
		design := mat.NewDense(r, c, nil)
		design.Copy(X)
		return design
	}

	design := mat.NewDense(r, c+1, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})
	return design
}

// Predict returns predicted target values for each row of X.
func (lr *Regression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("Regression.Predict", lr.NFeatures, c, 1)
	}

	predictions := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.SetVec(i, pred)
	}

	return predictions, nil
}

// Coefficients returns the fitted feature weights as a slice.
func (lr *Regression) Coefficients() []float64 {
	if lr.Weights == nil {
		return nil
	}
	weights := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept returns the fitted intercept.
func (lr *Regression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}
