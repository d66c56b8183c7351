// Package split produces the deterministic partitions the pipeline trains
// and evaluates on: a stratified train/holdout split and the k-fold
// assignment used for penalty selection. All randomness comes from an
// injected generator, never from global state.
package split

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

// HoldoutSplitter partitions rows into a training set and a holdout set,
// stratified on the target value so both partitions keep the target's
// marginal distribution.
type HoldoutSplitter struct {
	// Fraction is the share of rows withheld into the holdout set.
	Fraction float64
}

// NewHoldoutSplitter creates a splitter withholding the given fraction.
func NewHoldoutSplitter(fraction float64) *HoldoutSplitter {
	return &HoldoutSplitter{Fraction: fraction}
}

// Split partitions the row indices of targets into (training, holdout).
//
// Rows are grouped by exact target value. Each group contributes
// floor(fraction*size) rows to the holdout set, and the shortfall against
// round(fraction*n) is distributed one row at a time to the groups with the
// largest fractional quota, ties broken by ascending target value. Within a
// group the withheld rows are chosen by a seeded shuffle. A group smaller
// than 1/fraction therefore yields zero or one holdout row.
//
// The same generator state always produces the same partition: groups are
// visited in ascending target order and indices within a group in input
// order, so the draw sequence is fixed. The two partitions are disjoint,
// cover every row exactly once, and are returned in ascending index order.
func (s *HoldoutSplitter) Split(targets []float64, rng *rand.Rand) (training, holdout []int, err error) {
	n := len(targets)
	if n == 0 {
		return nil, nil, errors.NewModelError("HoldoutSplitter.Split", "empty data", errors.ErrEmptyData)
	}
	if s.Fraction <= 0 || s.Fraction >= 1 {
		return nil, nil, errors.NewConfigError("holdout fraction", "must be in (0, 1)")
	}
	if rng == nil {
		return nil, nil, errors.NewValueError("HoldoutSplitter.Split", "nil random generator")
	}

	// Group row indices by target value, keeping input order inside a group.
	groups := make(map[float64][]int)
	for i, t := range targets {
		groups[t] = append(groups[t], i)
	}
	values := make([]float64, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	sort.Float64s(values)

	// Per-group quota by floor, then largest-remainder top-up so the total
	// holdout size is round(fraction*n).
	quota := make(map[float64]int, len(groups))
	frac := make(map[float64]float64, len(groups))
	allocated := 0
	for _, v := range values {
		exact := s.Fraction * float64(len(groups[v]))
		quota[v] = int(math.Floor(exact))
		frac[v] = exact - math.Floor(exact)
		allocated += quota[v]
	}

	total := int(math.Round(s.Fraction * float64(n)))
	remaining := total - allocated
	if remaining > 0 {
		order := make([]float64, len(values))
		copy(order, values)
		sort.SliceStable(order, func(i, j int) bool {
			if frac[order[i]] != frac[order[j]] {
				return frac[order[i]] > frac[order[j]]
			}
			return order[i] < order[j]
		})
		for _, v := range order {
			if remaining == 0 {
				break
			}
			if quota[v] < len(groups[v]) && frac[v] > 0 {
				quota[v]++
				remaining--
			}
		}
	}

	// Draw the withheld rows per group with the injected generator.
	holdoutSet := make(map[int]bool, total)
	for _, v := range values {
		indices := make([]int, len(groups[v]))
		copy(indices, groups[v])
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		for i := 0; i < quota[v]; i++ {
			holdoutSet[indices[i]] = true
		}
	}

	training = make([]int, 0, n-len(holdoutSet))
	holdout = make([]int, 0, len(holdoutSet))
	for i := 0; i < n; i++ {
		if holdoutSet[i] {
			holdout = append(holdout, i)
		} else {
			training = append(training, i)
		}
	}
	return training, holdout, nil
}
