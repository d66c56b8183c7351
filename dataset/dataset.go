// Package dataset loads and validates the Premier League 2023/24 team-match
// table and exposes it as immutable row and matrix views for the fitters.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

// Match is one team-match row: the counting stats used as features, the
// derived totals, and the categorical context kept for reference.
type Match struct {
	// Categorical context.
	Round    string
	Venue    string
	Result   string
	Opponent string
	Team     string

	// Possession percentage.
	Poss float64

	// Goals for and against, and their derived total.
	GF int
	GA int
	TG int

	// Expected goals for and against, and their derived total.
	XG  float64
	XGA float64
	TXG float64

	// Shooting and set-piece counts.
	Sh    int
	SoT   int
	FK    int
	PKAtt int
}

// Dataset is an ordered, immutable collection of match rows. Every stage of
// the pipeline that changes the data returns a new Dataset.
type Dataset struct {
	rows []Match
}

// New builds a Dataset from rows. The slice is copied so later mutation of
// the argument cannot reach the Dataset.
func New(rows []Match) *Dataset {
	copied := make([]Match, len(rows))
	copy(copied, rows)
	return &Dataset{rows: copied}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns the i-th row.
func (d *Dataset) Row(i int) Match {
	return d.rows[i]
}

// Subset returns a new Dataset holding the given rows, in index order.
func (d *Dataset) Subset(indices []int) *Dataset {
	rows := make([]Match, len(indices))
	for i, idx := range indices {
		rows[i] = d.rows[idx]
	}
	return &Dataset{rows: rows}
}

// Derive returns a new Dataset with the total columns recomputed from their
// components: TG = GF + GA and TxG = xG + xGA. The totals are always
// recomputed here, never trusted from the source file.
func (d *Dataset) Derive() *Dataset {
	rows := make([]Match, len(d.rows))
	for i, row := range d.rows {
		row.TG = row.GF + row.GA
		row.TXG = row.XG + row.XGA
		rows[i] = row
	}
	return &Dataset{rows: rows}
}

// Validate checks the data-quality invariants: counting stats must be
// non-negative, expected goals must be non-negative, and shots on target can
// never exceed shots. The first violation aborts the run; there is no
// imputation or silent repair.
func (d *Dataset) Validate() error {
	if len(d.rows) == 0 {
		return errors.NewModelError("Dataset.Validate", "empty dataset", errors.ErrEmptyData)
	}
	for i, row := range d.rows {
		switch {
		case row.GF < 0:
			return errors.NewDataQualityError(i, ColGF, "negative goals for")
		case row.GA < 0:
			return errors.NewDataQualityError(i, ColGA, "negative goals against")
		case row.XG < 0:
			return errors.NewDataQualityError(i, ColXG, "negative expected goals")
		case row.XGA < 0:
			return errors.NewDataQualityError(i, ColXGA, "negative expected goals against")
		case row.Sh < 0:
			return errors.NewDataQualityError(i, ColSh, "negative shots")
		case row.SoT < 0:
			return errors.NewDataQualityError(i, ColSoT, "negative shots on target")
		case row.FK < 0:
			return errors.NewDataQualityError(i, ColFK, "negative freekicks")
		case row.PKAtt < 0:
			return errors.NewDataQualityError(i, ColPKAtt, "negative penalty attempts")
		case row.SoT > row.Sh:
			return errors.NewDataQualityError(i, ColSoT, "shots on target exceed shots")
		}
	}
	return nil
}

// Numeric column names recognized by Matrix.
const (
	ColGF    = "GF"
	ColGA    = "GA"
	ColTG    = "TG"
	ColXG    = "xG"
	ColXGA   = "xGA"
	ColTXG   = "TxG"
	ColSh    = "Sh"
	ColSoT   = "SoT"
	ColFK    = "FK"
	ColPKAtt = "PKatt"
	ColPoss  = "Poss"
)

// numericColumn maps a column name to its per-row accessor.
var numericColumn = map[string]func(Match) float64{
	ColGF:    func(m Match) float64 { return float64(m.GF) },
	ColGA:    func(m Match) float64 { return float64(m.GA) },
	ColTG:    func(m Match) float64 { return float64(m.TG) },
	ColXG:    func(m Match) float64 { return m.XG },
	ColXGA:   func(m Match) float64 { return m.XGA },
	ColTXG:   func(m Match) float64 { return m.TXG },
	ColSh:    func(m Match) float64 { return float64(m.Sh) },
	ColSoT:   func(m Match) float64 { return float64(m.SoT) },
	ColFK:    func(m Match) float64 { return float64(m.FK) },
	ColPKAtt: func(m Match) float64 { return float64(m.PKAtt) },
	ColPoss:  func(m Match) float64 { return m.Poss },
}

// Matrix projects the named numeric columns into a design matrix, one row
// per match, columns in the given order.
func (d *Dataset) Matrix(features []string) (*mat.Dense, error) {
	if len(d.rows) == 0 {
		return nil, errors.NewModelError("Dataset.Matrix", "empty dataset", errors.ErrEmptyData)
	}
	if len(features) == 0 {
		return nil, errors.NewValueError("Dataset.Matrix", "no feature columns requested")
	}

	accessors := make([]func(Match) float64, len(features))
	for j, name := range features {
		fn, ok := numericColumn[name]
		if !ok {
			return nil, errors.Wrapf(errors.ErrMissingColumn, "Dataset.Matrix: unknown column %q", name)
		}
		accessors[j] = fn
	}

	X := mat.NewDense(len(d.rows), len(features), nil)
	for i, row := range d.rows {
		for j, fn := range accessors {
			X.Set(i, j, fn(row))
		}
	}
	return X, nil
}

// Ones returns a single-column matrix of ones, the design matrix of the
// intercept-only global average model.
func (d *Dataset) Ones() *mat.Dense {
	X := mat.NewDense(len(d.rows), 1, nil)
	for i := range d.rows {
		X.Set(i, 0, 1.0)
	}
	return X
}

// Target returns the TG column as a vector.
func (d *Dataset) Target() *mat.VecDense {
	y := mat.NewVecDense(len(d.rows), nil)
	for i, row := range d.rows {
		y.SetVec(i, float64(row.TG))
	}
	return y
}

// TargetValues returns the TG column as a plain slice, the form the
// stratified splitter groups on.
func (d *Dataset) TargetValues() []float64 {
	values := make([]float64, len(d.rows))
	for i, row := range d.rows {
		values[i] = float64(row.TG)
	}
	return values
}
