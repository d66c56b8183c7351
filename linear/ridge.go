package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/thant-thiha/Premier-League-23-24/core/model"
	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
	"github.com/thant-thiha/Premier-League-23-24/preprocessing"
)

// Ridge is a linear model with an L2 penalty on the feature weights. The
// intercept is never penalized.
//
// Features are standardized before the penalty is applied and the
// coefficients are mapped back to the original scale afterward, so the
// penalty strength means the same thing for every feature regardless of its
// units. This deliberately differs from fitting on raw features, where a
// single lambda penalizes large-scale features (shots) more weakly than
// small-scale ones (expected goals).
type Ridge struct {
	model.BaseEstimator

	// Lambda is the penalty strength; zero reduces to ordinary least squares.
	Lambda float64

	Weights   *mat.VecDense // coefficients on the original feature scale
	Intercept float64
	NFeatures int
}

// NewRidge creates a ridge model with the given penalty strength.
func NewRidge(lambda float64) *Ridge {
	return &Ridge{Lambda: lambda}
}

// Fit solves the penalized normal equations (Zᵀ​Z + λD)w = Zᵀ​y on the
// standardized design Z with D zero on the intercept row, via Cholesky
// factorization.
func (rr *Ridge) Fit(X mat.Matrix, y *mat.VecDense) error {
	r, c := X.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("Ridge.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return errors.NewDimensionError("Ridge.Fit", r, y.Len(), 0)
	}
	if rr.Lambda < 0 {
		return errors.NewValueError("Ridge.Fit", "negative penalty strength")
	}

	rr.NFeatures = c

	scaler := preprocessing.NewStandardScaler()
	Z, err := scaler.FitTransform(X)
	if err != nil {
		return err
	}

	// Standardized design with intercept column.
	design := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		design.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			design.Set(i, j+1, Z.At(i, j))
		}
	}

	var designT mat.Dense
	designT.CloneFrom(design.T())

	var gram mat.Dense
	gram.Mul(&designT, design)

	// Penalty on every diagonal entry except the intercept.
	sym := mat.NewSymDense(c+1, nil)
	for i := 0; i <= c; i++ {
		for j := i; j <= c; j++ {
			v := gram.At(i, j)
			if i == j && i > 0 {
				v += rr.Lambda
			}
			sym.SetSym(i, j, v)
		}
	}

	var rhs mat.VecDense
	rhs.MulVec(&designT, y)

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return errors.NewModelError("Ridge.Fit", "rank-deficient design matrix", errors.ErrSingularMatrix)
	}

	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &rhs); err != nil {
		return errors.NewModelError("Ridge.Fit", "solving penalized normal equations", err)
	}

	// Map coefficients back to the original feature scale:
	// weight_j = w_j / scale_j, intercept = w_0 - Σ weight_j * mean_j.
	rr.Weights = mat.NewVecDense(c, nil)
	rr.Intercept = w.AtVec(0)
	for j := 0; j < c; j++ {
		weight := w.AtVec(j+1) / scaler.Scale[j]
		rr.Weights.SetVec(j, weight)
		rr.Intercept -= weight * scaler.Mean[j]
	}

	rr.SetFitted()
	return nil
}

// Predict returns predicted target values for each row of X.
func (rr *Ridge) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !rr.IsFitted() {
		return nil, errors.NewNotFittedError("Ridge", "Predict")
	}

	r, c := X.Dims()
	if c != rr.NFeatures {
		return nil, errors.NewDimensionError("Ridge.Predict", rr.NFeatures, c, 1)
	}

	predictions := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := rr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * rr.Weights.AtVec(j)
		}
		predictions.SetVec(i, pred)
	}

	return predictions, nil
}

// Coefficients returns the fitted feature weights as a slice.
func (rr *Ridge) Coefficients() []float64 {
	if rr.Weights == nil {
		return nil
	}
	weights := make([]float64, rr.Weights.Len())
	for i := 0; i < rr.Weights.Len(); i++ {
		weights[i] = rr.Weights.AtVec(i)
	}
	return weights
}
