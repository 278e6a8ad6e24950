// Package report draws the analysis charts with gonum/plot. The output
// format follows the file extension (.png, .svg, .pdf, ...).
package report

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// Default canvas size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// ScatterOptions describes a scatter plot.
type ScatterOptions struct {
	Title  string
	XLabel string
	YLabel string
	X, Y   []float64
	// Labels annotate each point when set.
	Labels []string
	// Fit adds a fitted line when set.
	Fit *Line
}

// Scatter draws points with optional labels and fitted line and saves to path.
func Scatter(path string, opts ScatterOptions) error {
	if len(opts.X) == 0 {
		return errors.NewModelError("report.Scatter", "no points", errors.ErrEmptyData)
	}
	if len(opts.Y) != len(opts.X) {
		return errors.NewShapeMismatchError("report.Scatter", len(opts.X), len(opts.Y), 0)
	}
	if opts.Labels != nil && len(opts.Labels) != len(opts.X) {
		return errors.NewShapeMismatchError("report.Scatter", len(opts.X), len(opts.Labels), 0)
	}

	p := newPlot(opts.Title, opts.XLabel, opts.YLabel)

	points := make(plotter.XYs, len(opts.X))
	for i := range opts.X {
		points[i].X = opts.X[i]
		points[i].Y = opts.Y[i]
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "scatter")
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Color = plotutil.Color(1)
	p.Add(scatter)

	if opts.Labels != nil {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: opts.Labels})
		if err != nil {
			return errors.Wrap(err, "labels")
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Font.Size = vg.Points(7)
		}
		p.Add(labels)
	}

	if opts.Fit != nil {
		fit := *opts.Fit
		line := plotter.NewFunction(func(x float64) float64 { return fit.Slope*x + fit.Intercept })
		line.Color = color.RGBA{R: 200, A: 255}
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
		p.Legend.Add("OLS fit", line)
	}

	return save(p, path)
}

// ScatterTable plots column y against column x, labelling points with
// the label column when it is not empty.
func ScatterTable(path string, tbl *table.Table, x, y, label string, fit *Line) error {
	xs, err := tbl.Numeric(x)
	if err != nil {
		return err
	}
	ys, err := tbl.Numeric(y)
	if err != nil {
		return err
	}
	opts := ScatterOptions{Title: y + " vs. " + x, XLabel: x, YLabel: y, X: xs, Y: ys, Fit: fit}
	if label != "" {
		if opts.Labels, err = tbl.Labels(label); err != nil {
			return err
		}
	}
	return Scatter(path, opts)
}

// Series is one bar per group.
type Series struct {
	Label  string
	Values []float64
}

// BarOptions describes a grouped bar chart.
type BarOptions struct {
	Title  string
	YLabel string
	// Groups are the tick labels along the x axis.
	Groups []string
	Series []Series
}

// GroupedBar draws one cluster of bars per group, one bar per series,
// and saves to path.
func GroupedBar(path string, opts BarOptions) error {
	if len(opts.Groups) == 0 || len(opts.Series) == 0 {
		return errors.NewModelError("report.GroupedBar", "no bars", errors.ErrEmptyData)
	}

	p := newPlot(opts.Title, "", opts.YLabel)
	width := vg.Points(18)
	n := len(opts.Series)
	for i, s := range opts.Series {
		if len(s.Values) != len(opts.Groups) {
			return errors.Wrapf(errors.NewShapeMismatchError("report.GroupedBar", len(opts.Groups), len(s.Values), 0),
				"series %q", s.Label)
		}
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return errors.Wrapf(err, "series %q", s.Label)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width
		p.Add(bars)
		p.Legend.Add(s.Label, bars)
	}
	p.Legend.Top = true
	p.NominalX(opts.Groups...)

	return save(p, path)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, path string) error {
	// drawing panics on degenerate axis ranges
	err := errors.SafeExecute("report.save", func() error {
		return p.Save(DefaultWidth, DefaultHeight, path)
	})
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	log.GetLoggerWithName("report").Info("Chart saved",
		log.OperationKey, log.OperationPlot,
		log.SourceKey, path,
	)
	return nil
}
