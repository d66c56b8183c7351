// Package report scores fitted models and assembles the RMSE comparison
// table the run prints. Rows stay in evaluation order; the table is a record
// of the run, not a leaderboard.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"github.com/thant-thiha/Premier-League-23-24/metrics"
	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

// Partition names used in result rows.
const (
	PartitionTraining = "training"
	PartitionHoldout  = "holdout"
)

// Result is one scored (model, partition) pair.
type Result struct {
	Model     string
	Partition string
	RMSE      float64
}

// Table accumulates results in the order they were evaluated.
type Table struct {
	results []Result
}

// NewTable creates an empty comparison table.
func NewTable() *Table {
	return &Table{}
}

// Score computes the RMSE of predictions against actuals and appends the
// result row.
func (t *Table) Score(model, partition string, yTrue, yPred *mat.VecDense) (Result, error) {
	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		return Result{}, errors.Wrapf(err, "scoring %s on %s", model, partition)
	}

	res := Result{Model: model, Partition: partition, RMSE: rmse}
	t.results = append(t.results, res)
	return res, nil
}

// Results returns the rows in evaluation order.
func (t *Table) Results() []Result {
	out := make([]Result, len(t.results))
	copy(out, t.results)
	return out
}

// Len returns the number of result rows.
func (t *Table) Len() int {
	return len(t.results)
}

// Render writes the comparison table to w.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tPARTITION\tRMSE")
	for _, res := range t.results {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\n", res.Model, res.Partition, res.RMSE)
	}
	return tw.Flush()
}
