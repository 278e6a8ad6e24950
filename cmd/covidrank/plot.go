package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/dataset"
	"github.com/YuminosukeSato/covidrank/linear"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/report"
)

func newPlotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw charts from a CSV table",
	}
	cmd.AddCommand(newScatterCmd(a), newBarsCmd(a))
	return cmd
}

func newScatterCmd(a *app) *cobra.Command {
	var (
		data, x, y, label, out string
		fit                    bool
	)
	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Scatter one column against another",
		RunE: func(_ *cobra.Command, _ []string) error {
			if data == "" {
				data = a.cfg.Data.Path
			}
			tbl, err := dataset.LoadCSVFile(data, dataset.Options{Categorical: nonEmpty(label)})
			if err != nil {
				return err
			}
			var line *report.Line
			if fit {
				if line, err = fitLine(tbl, x, y); err != nil {
					return err
				}
			}
			return report.ScatterTable(out, tbl, x, y, label, line)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "Input CSV file (default data.path)")
	cmd.Flags().StringVarP(&x, "x", "x", "", "Column on the x axis (required)")
	cmd.Flags().StringVarP(&y, "y", "y", "", "Column on the y axis (required)")
	cmd.Flags().StringVar(&label, "label", "", "Column used to label points")
	cmd.Flags().BoolVar(&fit, "fit", false, "Overlay the OLS line of y on x")
	cmd.Flags().StringVarP(&out, "out", "o", "scatter.png", "Output image (.png, .svg, .pdf)")
	markRequired(cmd, "x", "y")
	return cmd
}

func newBarsCmd(a *app) *cobra.Command {
	var (
		data, group, title, out string
		series                  []string
	)
	cmd := &cobra.Command{
		Use:   "bars",
		Short: "Grouped bar chart, one group per row",
		RunE: func(_ *cobra.Command, _ []string) error {
			if data == "" {
				data = a.cfg.Data.Path
			}
			tbl, err := dataset.LoadCSVFile(data, dataset.Options{Categorical: []string{group}})
			if err != nil {
				return err
			}
			opts, err := barOptions(tbl, group, series)
			if err != nil {
				return err
			}
			opts.Title = title
			return report.GroupedBar(out, opts)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "Input CSV file (default data.path)")
	cmd.Flags().StringVarP(&group, "group", "g", "", "Column naming each group (required)")
	cmd.Flags().StringSliceVarP(&series, "series", "s", nil, "Numeric columns drawn as bars (required)")
	cmd.Flags().StringVar(&title, "title", "", "Chart title")
	cmd.Flags().StringVarP(&out, "out", "o", "bars.png", "Output image (.png, .svg, .pdf)")
	markRequired(cmd, "group", "series")
	return cmd
}

// fitLine regresses column y on column x.
func fitLine(tbl *table.Table, x, y string) (*report.Line, error) {
	X, err := tbl.Matrix(x)
	if err != nil {
		return nil, err
	}
	Y, err := tbl.Matrix(y)
	if err != nil {
		return nil, err
	}
	reg := linear.NewLinearRegression()
	if err := reg.Fit(X, Y); err != nil {
		return nil, errors.Wrapf(err, "fit %s on %s", y, x)
	}
	return &report.Line{Slope: reg.Coef()[0], Intercept: reg.Intercept()}, nil
}

func barOptions(tbl *table.Table, group string, series []string) (report.BarOptions, error) {
	groups, err := tbl.Labels(group)
	if err != nil {
		return report.BarOptions{}, err
	}
	opts := report.BarOptions{Groups: groups}
	for _, name := range series {
		values, err := tbl.Numeric(name)
		if err != nil {
			return report.BarOptions{}, err
		}
		opts.Series = append(opts.Series, report.Series{Label: name, Values: values})
	}
	return opts, nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}

