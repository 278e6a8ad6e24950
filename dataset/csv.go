// Package dataset loads, reshapes and joins the state-level tables that
// feed the selection routine: case counts, population and reopening ranks.
package dataset

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// Options controls CSV loading.
type Options struct {
	// Columns keeps only these columns, in this order. Empty keeps all.
	Columns []string
	// Categorical forces columns to be read as text even when they look
	// numeric, such as yymmdd dates or FIPS codes.
	Categorical []string
	// DropMissing drops rows with a missing value in any kept column
	// instead of failing.
	DropMissing bool
	// Delimiter defaults to ','.
	Delimiter rune
	// NaNValues are the cell texts read as missing. Defaults to the empty
	// cell only, so labels such as "NA" stay valid categories.
	NaNValues []string
}

// DefaultNaNValues marks only empty cells as missing.
var DefaultNaNValues = []string{""}

// LoadCSV reads a CSV with a header row. Int, float and bool columns
// become numeric (bools as 0/1); everything else is categorical.
func LoadCSV(r io.Reader, opts Options) (*table.Table, error) {
	loadOpts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	}
	nanValues := opts.NaNValues
	if len(nanValues) == 0 {
		nanValues = DefaultNaNValues
	}
	loadOpts = append(loadOpts, dataframe.NaNValues(nanValues))
	if opts.Delimiter != 0 {
		loadOpts = append(loadOpts, dataframe.WithDelimiter(opts.Delimiter))
	}
	if len(opts.Categorical) > 0 {
		types := make(map[string]series.Type, len(opts.Categorical))
		for _, name := range opts.Categorical {
			types[name] = series.String
		}
		loadOpts = append(loadOpts, dataframe.WithTypes(types))
	}

	df := dataframe.ReadCSV(r, loadOpts...)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "read csv")
	}
	if len(opts.Columns) > 0 {
		df = df.Select(opts.Columns)
		if df.Err != nil {
			return nil, errors.Wrap(df.Err, "select columns")
		}
	}
	return fromDataFrame(df, opts.DropMissing)
}

// LoadCSVFile opens path and calls LoadCSV.
func LoadCSVFile(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	tbl, err := LoadCSV(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	log.GetLoggerWithName("dataset").Debug("Table loaded",
		log.OperationKey, log.OperationLoad,
		log.SourceKey, path,
		log.SamplesKey, tbl.Rows(),
		log.FeaturesKey, tbl.Cols(),
	)
	return tbl, nil
}

func fromDataFrame(df dataframe.DataFrame, dropMissing bool) (*table.Table, error) {
	nrow := df.Nrow()
	names := df.Names()

	keep := make([]bool, nrow)
	for i := range keep {
		keep[i] = true
	}
	for _, name := range names {
		s := df.Col(name)
		missing := s.IsNaN()
		if s.Type() == series.String {
			for i, r := range s.Records() {
				missing[i] = missing[i] || strings.TrimSpace(r) == ""
			}
		}
		for i, m := range missing {
			if !m {
				continue
			}
			if !dropMissing {
				return nil, errors.NewValidationError(name, "missing value", i)
			}
			keep[i] = false
		}
	}

	columns := make([]table.Column, 0, len(names))
	for _, name := range names {
		s := df.Col(name)
		switch s.Type() {
		case series.Int, series.Float, series.Bool:
			columns = append(columns, table.NewNumeric(name, filterFloats(s.Float(), keep)))
		default:
			columns = append(columns, table.NewCategorical(name, filterStrings(s.Records(), keep)))
		}
	}
	return table.New(columns...)
}

func filterFloats(values []float64, keep []bool) []float64 {
	out := make([]float64, 0, len(values))
	for i, v := range values {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}

func filterStrings(values []string, keep []bool) []string {
	out := make([]string, 0, len(values))
	for i, v := range values {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}

// WriteCSV writes tbl with a header row. Numeric columns holding only
// whole numbers are written as integers.
func WriteCSV(w io.Writer, tbl *table.Table) error {
	cols := make([]series.Series, 0, tbl.Cols())
	for _, c := range tbl.Columns() {
		if c.Kind == table.Categorical {
			cols = append(cols, series.New(c.Strings(), series.String, c.Name))
			continue
		}
		values, err := c.Float64s()
		if err != nil {
			return err
		}
		if whole(values) {
			ints := make([]int, len(values))
			for i, v := range values {
				ints[i] = int(v)
			}
			cols = append(cols, series.New(ints, series.Int, c.Name))
			continue
		}
		cols = append(cols, series.New(values, series.Float, c.Name))
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return errors.Wrap(df.Err, "build dataframe")
	}
	return df.WriteCSV(w)
}

// WriteCSVFile creates path and calls WriteCSV.
func WriteCSVFile(path string, tbl *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, tbl)
}

func whole(values []float64) bool {
	for _, v := range values {
		if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return false
		}
	}
	return true
}
