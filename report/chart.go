package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/thant-thiha/Premier-League-23-24/pkg/errors"
)

// SaveChart renders the table as a bar chart of RMSE per result row and
// writes it to path. The image format follows the path extension.
func (t *Table) SaveChart(path string) error {
	if len(t.results) == 0 {
		return errors.NewValueError("Table.SaveChart", "no results to plot")
	}

	values := make(plotter.Values, len(t.results))
	labels := make([]string, len(t.results))
	for i, res := range t.results {
		values[i] = res.RMSE
		label := res.Model
		if res.Partition != PartitionTraining {
			label += " (" + res.Partition + ")"
		}
		labels[i] = label
	}

	p := plot.New()
	p.Title.Text = "Total goals models"
	p.Y.Label.Text = "RMSE"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return errors.Wrap(err, "Table.SaveChart: building bar chart")
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(7*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "Table.SaveChart: writing %s", path)
	}
	return nil
}
