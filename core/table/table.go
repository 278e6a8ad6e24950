// Package table provides the typed observation table shared by every
// analysis step: a named, ordered collection of equal-length numeric or
// categorical columns that is validated once, at construction.
package table

import (
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Table is an immutable set of equal-length columns. Operations that
// change shape or content return a new Table.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New validates the columns and builds a Table.
//
// Column names must be non-empty and unique, every column must have the
// same length, and numeric columns must not contain NaN or Inf: missing
// values are expected to be cleaned before the table is built.
func New(columns ...Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.NewModelError("table.New", "no columns", errors.ErrEmptyData)
	}

	t := &Table{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    columns[0].Len(),
	}
	for i, c := range columns {
		if c.Name == "" {
			return nil, errors.NewValidationError("column.name", "must not be empty", i)
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, errors.NewValidationError("column.name", "duplicate column name", c.Name)
		}
		if c.Len() != t.rows {
			return nil, errors.Wrapf(errors.NewShapeMismatchError("table.New", t.rows, c.Len(), 0),
				"column %q", c.Name)
		}
		if c.Kind == Numeric {
			if err := errors.CheckNumericalStability("table.New/"+c.Name, c.values); err != nil {
				return nil, err
			}
		}
		t.columns[i] = c
		t.index[c.Name] = i
	}
	return t, nil
}

// Rows returns the number of observations.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return len(t.columns) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// NumericNames returns the names of the numeric columns in table order.
func (t *Table) NumericNames() []string {
	var names []string
	for _, c := range t.columns {
		if c.Kind == Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, errors.NewValueError("Table.Column", "unknown column "+quote(name))
	}
	return t.columns[i], nil
}

// Columns returns the columns in table order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Numeric returns a copy of a numeric column's values.
func (t *Table) Numeric(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return c.Float64s()
}

// Labels returns a column's values as text.
func (t *Table) Labels(name string) ([]string, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return c.Strings(), nil
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Drop returns a table without the named columns.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return nil, errors.NewValueError("Table.Drop", "unknown column "+quote(n))
		}
		drop[n] = true
	}
	cols := make([]Column, 0, len(t.columns))
	for _, c := range t.columns {
		if !drop[c.Name] {
			cols = append(cols, c)
		}
	}
	return New(cols...)
}

// With returns a table with the given columns added. A column whose name
// already exists replaces the old one in place.
func (t *Table) With(columns ...Column) (*Table, error) {
	cols := t.Columns()
	for _, c := range columns {
		if i, ok := t.index[c.Name]; ok {
			cols[i] = c
			continue
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Take returns the rows at the given indices, in that order.
func (t *Table) Take(rows []int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.rows {
			return nil, errors.NewValidationError("rows", "row index out of range", r)
		}
	}
	cols := make([]Column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.take(rows)
	}
	out := &Table{columns: cols, index: t.index, rows: len(rows)}
	return out, nil
}

// Matrix assembles the named numeric columns into an n×len(names) matrix.
func (t *Table) Matrix(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.NewValueError("Table.Matrix", "no columns requested")
	}
	if t.rows == 0 {
		return nil, errors.NewModelError("Table.Matrix", "empty data", errors.ErrEmptyData)
	}
	m := mat.NewDense(t.rows, len(names), nil)
	for j, n := range names {
		v, err := t.Numeric(n)
		if err != nil {
			return nil, err
		}
		m.SetCol(j, v)
	}
	return m, nil
}

// Vector returns a numeric column as a vector.
func (t *Table) Vector(name string) (*mat.VecDense, error) {
	v, err := t.Numeric(name)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, errors.NewModelError("Table.Vector", "empty data", errors.ErrEmptyData)
	}
	return mat.NewVecDense(len(v), v), nil
}

func quote(s string) string {
	return "'" + s + "'"
}
