// Package report renders the study's result tables for human consumption:
// CSV exports of the per-repetition and long-format tables, and box plots
// of the per-arm metric distributions. It is a pure reader of the tables
// produced by the simulation package.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/smotesim/pkg/errors"
	"github.com/YuminosukeSato/smotesim/simulation"
)

var metricHeader = []string{
	"mean_x1", "mean_x2", "var_x1", "var_x2", "corr_x1_x2",
	"beta0", "beta1", "beta2", "f1",
}

// WriteResultCSV writes one arm's per-repetition table. Undefined F1
// entries are written as "NA" so downstream R/pandas readers see a missing
// value, not a zero.
func WriteResultCSV(w io.Writer, table simulation.ResultTable) error {
	cw := csv.NewWriter(w)
	header := append([]string{"rep"}, metricHeader...)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "WriteResultCSV")
	}
	for rep, row := range table {
		record := append([]string{strconv.Itoa(rep)}, formatRow(row)...)
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "WriteResultCSV")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "WriteResultCSV")
}

// WriteLongCSV writes the arm-labelled long-format table consumed by
// external hypothesis-testing tooling.
func WriteLongCSV(w io.Writer, rows []simulation.LongRow) error {
	cw := csv.NewWriter(w)
	header := append([]string{"arm", "rep"}, metricHeader...)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "WriteLongCSV")
	}
	for _, row := range rows {
		record := append([]string{string(row.Arm), strconv.Itoa(row.Rep)}, formatRow(row.MetricRow)...)
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "WriteLongCSV")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "WriteLongCSV")
}

func formatRow(row simulation.MetricRow) []string {
	values := []float64{
		row.MeanX1, row.MeanX2, row.VarX1, row.VarX2, row.CorrX1X2,
		row.Beta0, row.Beta1, row.Beta2, row.F1,
	}
	out := make([]string, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = "NA"
			continue
		}
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

// SaveF1BoxPlot renders one box per arm of the held-out F1 distribution to
// path (format chosen by extension). Undefined F1 entries are dropped from
// the plotted values.
func SaveF1BoxPlot(path string, results *simulation.Results) error {
	p := plot.New()
	p.Title.Text = "Held-out F1 by experiment arm"
	p.Y.Label.Text = "F1"

	arms := simulation.Arms()
	names := make([]string, len(arms))
	for i, arm := range arms {
		names[i] = string(arm)
		values := definedF1(results.Table(arm))
		if len(values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), values)
		if err != nil {
			return errors.Wrapf(err, "SaveF1BoxPlot: %s", arm)
		}
		p.Add(box)
	}
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "SaveF1BoxPlot")
	}
	return nil
}

// SaveCoefficientBoxPlot renders one box per arm of a fitted coefficient's
// distribution, with a horizontal line at the generative truth.
func SaveCoefficientBoxPlot(path, coefficient string, truth float64, results *simulation.Results) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Fitted %s by experiment arm (truth %g)", coefficient, truth)
	p.Y.Label.Text = coefficient

	arms := simulation.Arms()
	names := make([]string, len(arms))
	for i, arm := range arms {
		names[i] = string(arm)
		values, err := coefficientColumn(results.Table(arm), coefficient)
		if err != nil {
			return err
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), values)
		if err != nil {
			return errors.Wrapf(err, "SaveCoefficientBoxPlot: %s", arm)
		}
		p.Add(box)
	}
	p.NominalX(names...)

	truthLine := plotter.NewFunction(func(float64) float64 { return truth })
	p.Add(truthLine)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "SaveCoefficientBoxPlot")
	}
	return nil
}

func coefficientColumn(table simulation.ResultTable, coefficient string) (plotter.Values, error) {
	values := make(plotter.Values, len(table))
	for i, row := range table {
		switch coefficient {
		case "beta0":
			values[i] = row.Beta0
		case "beta1":
			values[i] = row.Beta1
		case "beta2":
			values[i] = row.Beta2
		default:
			return nil, errors.NewValueError("coefficientColumn", "unknown coefficient "+coefficient)
		}
	}
	return values, nil
}

func definedF1(table simulation.ResultTable) plotter.Values {
	var values plotter.Values
	for _, row := range table {
		if !math.IsNaN(row.F1) {
			values = append(values, row.F1)
		}
	}
	return values
}
