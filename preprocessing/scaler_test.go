package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
		4.0, 40.0,
	})

	scaler := NewStandardScaler()
	Z, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() unexpected error: %v", err)
	}

	r, c := Z.Dims()
	for j := 0; j < c; j++ {
		var sum, sumSq float64
		for i := 0; i < r; i++ {
			sum += Z.At(i, j)
		}
		mean := sum / float64(r)
		for i := 0; i < r; i++ {
			diff := Z.At(i, j) - mean
			sumSq += diff * diff
		}
		std := math.Sqrt(sumSq / float64(r))

		if math.Abs(mean) > 1e-10 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(std-1.0) > 1e-10 {
			t.Errorf("column %d std = %v, want 1", j, std)
		}
	}
}

func TestStandardScalerInverseTransformRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.5, 8.0,
		2.5, 12.0,
		4.0, 9.0,
	})

	scaler := NewStandardScaler()
	Z, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() unexpected error: %v", err)
	}

	back, err := scaler.InverseTransform(Z)
	if err != nil {
		t.Fatalf("InverseTransform() unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(back.At(i, j)-X.At(i, j)) > 1e-10 {
				t.Errorf("round trip at (%d,%d) = %v, want %v", i, j, back.At(i, j), X.At(i, j))
			}
		}
	}
}

// A constant column must transform to zeros, not divide by zero.
func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5.0, 5.0, 5.0})

	scaler := NewStandardScaler()
	Z, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		v := Z.At(i, 0)
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e-10 {
			t.Errorf("constant column transformed to %v at row %d, want 0", v, i)
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScaler()
	X := mat.NewDense(2, 1, []float64{1.0, 2.0})

	if _, err := scaler.Transform(X); err == nil {
		t.Error("Transform() on unfitted scaler should fail")
	} else {
		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("Transform() error = %v, want NotFittedError", err)
		}
	}
}
