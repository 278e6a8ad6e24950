package model_selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

// Dataset pairs a predictor table with a numeric target. It is read-only:
// scoring and evaluation never modify it.
type Dataset struct {
	predictors *table.Table
	target     string
	y          []float64
}

// NewDataset checks that the target is numeric and has one value per
// predictor row. Predictor columns are type-checked when a subset that
// uses them is scored.
func NewDataset(predictors *table.Table, target table.Column) (*Dataset, error) {
	if predictors == nil {
		return nil, errors.NewModelError("NewDataset", "no predictors", errors.ErrEmptyData)
	}
	y, err := target.Float64s()
	if err != nil {
		return nil, err
	}
	if len(y) != predictors.Rows() {
		return nil, errors.Wrapf(errors.NewShapeMismatchError("NewDataset", predictors.Rows(), len(y), 0),
			"target %q", target.Name)
	}
	if predictors.Has(target.Name) {
		return nil, errors.NewValidationError("target", "also present among the predictors", target.Name)
	}
	return &Dataset{predictors: predictors, target: target.Name, y: y}, nil
}

// FromTable splits tbl into the target column and every other column
// except those named in exclude (identifiers such as state or date).
func FromTable(tbl *table.Table, target string, exclude ...string) (*Dataset, error) {
	y, err := tbl.Column(target)
	if err != nil {
		return nil, err
	}
	predictors, err := tbl.Drop(append([]string{target}, exclude...)...)
	if err != nil {
		return nil, err
	}
	return NewDataset(predictors, y)
}

// Rows returns the number of observations.
func (d *Dataset) Rows() int { return len(d.y) }

// Target returns the target column name.
func (d *Dataset) Target() string { return d.target }

// Features returns the predictor names in table order.
func (d *Dataset) Features() []string { return d.predictors.Names() }

// Predictors returns the predictor table.
func (d *Dataset) Predictors() *table.Table { return d.predictors }

// TargetValues returns a copy of the target values.
func (d *Dataset) TargetValues() []float64 {
	return append([]float64(nil), d.y...)
}

// design builds the full design matrix for a subset and the target as a
// column. An empty subset is rejected rather than modelled as intercept-only.
func (d *Dataset) design(op string, features []string) (*mat.Dense, *mat.Dense, error) {
	if len(features) == 0 {
		return nil, nil, errors.NewInvalidModelInputError(op, "empty predictor subset")
	}
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		if seen[f] {
			return nil, nil, errors.NewValidationError("features", "duplicate predictor", f)
		}
		seen[f] = true
		if f == d.target {
			return nil, nil, errors.NewValidationError("features", "target used as a predictor", f)
		}
		if !d.predictors.Has(f) {
			return nil, nil, errors.NewValidationError("features", "unknown predictor", f)
		}
	}

	X, err := d.predictors.Matrix(features...)
	if err != nil {
		return nil, nil, err
	}
	y := mat.NewDense(len(d.y), 1, append([]float64(nil), d.y...))
	return X, y, nil
}

// subset extracts the given rows of X and y.
func subset(X, y *mat.Dense, indices []int) (*mat.Dense, *mat.Dense) {
	_, xCols := X.Dims()
	xSubset := mat.NewDense(len(indices), xCols, nil)
	ySubset := mat.NewDense(len(indices), 1, nil)
	for i, idx := range indices {
		xSubset.SetRow(i, X.RawRowView(idx))
		ySubset.Set(i, 0, y.At(idx, 0))
	}
	return xSubset, ySubset
}
