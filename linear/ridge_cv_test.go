package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

func cvRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestRidgeCVReproducible(t *testing.T) {
	X, y := noisyData(80)
	grid := []float64{0.01, 0.1, 1, 10, 100}

	rc1 := NewRidgeCV(grid, 10)
	if err := rc1.Fit(X, y, cvRNG(1)); err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}
	rc2 := NewRidgeCV(grid, 10)
	if err := rc2.Fit(X, y, cvRNG(1)); err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}

	if rc1.BestLambda != rc2.BestLambda {
		t.Errorf("selected penalty differs across runs: %v vs %v", rc1.BestLambda, rc2.BestLambda)
	}
	for i := range rc1.CVErrors {
		if rc1.CVErrors[i] != rc2.CVErrors[i] {
			t.Errorf("CV error %d differs: %v vs %v", i, rc1.CVErrors[i], rc2.CVErrors[i])
		}
	}
	for i, c := range rc1.Model.Coefficients() {
		if c != rc2.Model.Coefficients()[i] {
			t.Errorf("final coefficient %d differs: %v vs %v", i, c, rc2.Model.Coefficients()[i])
		}
	}
}

func TestRidgeCVSelectsFromGrid(t *testing.T) {
	X, y := noisyData(60)
	grid := []float64{0.1, 1, 10}

	rc := NewRidgeCV(grid, 5)
	if err := rc.Fit(X, y, cvRNG(2)); err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}

	found := false
	for _, lambda := range grid {
		if rc.BestLambda == lambda {
			found = true
		}
	}
	if !found {
		t.Errorf("BestLambda = %v not in the candidate grid", rc.BestLambda)
	}
	if len(rc.CVErrors) != len(grid) {
		t.Errorf("CVErrors has %d entries, want %d", len(rc.CVErrors), len(grid))
	}
	if !rc.IsFitted() || rc.Model == nil {
		t.Error("Fit() left no final model")
	}
}

func TestRidgeCVPredict(t *testing.T) {
	X, y := noisyData(60)

	rc := NewRidgeCV([]float64{0.1, 1}, 5)
	if err := rc.Fit(X, y, cvRNG(3)); err != nil {
		t.Fatalf("Fit() unexpected error: %v", err)
	}

	pred, err := rc.Predict(X)
	if err != nil {
		t.Fatalf("Predict() unexpected error: %v", err)
	}
	if pred.Len() != y.Len() {
		t.Errorf("Predict() returned %d values, want %d", pred.Len(), y.Len())
	}

	// Must match the final refit model exactly.
	direct, err := rc.Model.Predict(X)
	if err != nil {
		t.Fatalf("Model.Predict() unexpected error: %v", err)
	}
	for i := 0; i < pred.Len(); i++ {
		if pred.AtVec(i) != direct.AtVec(i) {
			t.Errorf("prediction %d differs from final model: %v vs %v", i, pred.AtVec(i), direct.AtVec(i))
		}
	}
}

func TestRidgeCVEmptyGrid(t *testing.T) {
	X, y := noisyData(30)

	rc := NewRidgeCV(nil, 5)
	err := rc.Fit(X, y, cvRNG(1))
	var cfg *errors.ConfigError
	if !errors.As(err, &cfg) {
		t.Errorf("Fit() error = %v, want ConfigError", err)
	}
}

func TestRidgeCVNegativeGridEntry(t *testing.T) {
	X, y := noisyData(30)

	rc := NewRidgeCV([]float64{1, -2}, 5)
	if err := rc.Fit(X, y, cvRNG(1)); err == nil {
		t.Error("Fit() with a negative grid entry should fail")
	}
}

func TestRidgeCVDegenerateFolds(t *testing.T) {
	// Constant target: no fold can rank penalties.
	X := mat.NewDense(20, 1, nil)
	y := mat.NewVecDense(20, nil)
	for i := 0; i < 20; i++ {
		X.Set(i, 0, float64(i))
		y.SetVec(i, 5.0)
	}

	rc := NewRidgeCV([]float64{0.1, 1}, 4)
	err := rc.Fit(X, y, cvRNG(1))
	if err == nil {
		t.Fatal("Fit() on a constant target should fail")
	}
	var modelErr *errors.ModelError
	if !errors.As(err, &modelErr) {
		t.Errorf("Fit() error = %v, want ModelError", err)
	}
}

func TestRidgeCVTooFewRows(t *testing.T) {
	X, y := noisyData(5)

	rc := NewRidgeCV([]float64{1}, 10)
	if err := rc.Fit(X, y, cvRNG(1)); err == nil {
		t.Error("Fit() with more folds than rows should fail")
	}
}
