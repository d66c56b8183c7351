package split

import (
	"testing"
)

func TestKFoldDisjointCover(t *testing.T) {
	const n = 47
	kf := NewKFold(10)

	folds, err := kf.Split(n, newRNG(1))
	if err != nil {
		t.Fatalf("Split() unexpected error: %v", err)
	}
	if len(folds) != 10 {
		t.Fatalf("Split() folds = %d, want 10", len(folds))
	}

	seen := make(map[int]int, n)
	for f, fold := range folds {
		if len(fold.TrainIndices)+len(fold.TestIndices) != n {
			t.Errorf("fold %d covers %d rows, want %d", f, len(fold.TrainIndices)+len(fold.TestIndices), n)
		}
		for _, idx := range fold.TestIndices {
			seen[idx]++
		}

		inTest := make(map[int]bool, len(fold.TestIndices))
		for _, idx := range fold.TestIndices {
			inTest[idx] = true
		}
		for _, idx := range fold.TrainIndices {
			if inTest[idx] {
				t.Errorf("fold %d: index %d in both train and test", f, idx)
			}
		}
	}

	// Every row is tested exactly once across the folds.
	if len(seen) != n {
		t.Errorf("test sets cover %d rows, want %d", len(seen), n)
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("index %d appears in %d test sets, want 1", idx, count)
		}
	}
}

func TestKFoldSizes(t *testing.T) {
	folds, err := NewKFold(10).Split(47, newRNG(1))
	if err != nil {
		t.Fatalf("Split() unexpected error: %v", err)
	}

	// 47 = 10*4 + 7: the first seven folds get an extra row.
	for f, fold := range folds {
		want := 4
		if f < 7 {
			want = 5
		}
		if len(fold.TestIndices) != want {
			t.Errorf("fold %d test size = %d, want %d", f, len(fold.TestIndices), want)
		}
	}
}

func TestKFoldDeterministic(t *testing.T) {
	folds1, err := NewKFold(5).Split(30, newRNG(7))
	if err != nil {
		t.Fatalf("Split() unexpected error: %v", err)
	}
	folds2, err := NewKFold(5).Split(30, newRNG(7))
	if err != nil {
		t.Fatalf("Split() unexpected error: %v", err)
	}

	for f := range folds1 {
		if len(folds1[f].TestIndices) != len(folds2[f].TestIndices) {
			t.Fatalf("fold %d sizes differ", f)
		}
		for i := range folds1[f].TestIndices {
			if folds1[f].TestIndices[i] != folds2[f].TestIndices[i] {
				t.Fatalf("fold %d test index %d differs", f, i)
			}
		}
	}
}

func TestKFoldValidation(t *testing.T) {
	tests := []struct {
		name    string
		splits  int
		samples int
	}{
		{name: "one fold", splits: 1, samples: 10},
		{name: "more folds than rows", splits: 10, samples: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewKFold(tt.splits).Split(tt.samples, newRNG(1)); err == nil {
				t.Error("Split() expected an error")
			}
		})
	}
}
