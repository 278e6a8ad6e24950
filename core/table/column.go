package table

import (
	"strconv"

	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

// Kind is the element type of a column.
type Kind int

const (
	// Numeric columns hold float64 values and may be used as predictors or targets.
	Numeric Kind = iota
	// Categorical columns hold string labels such as state names or dates.
	Categorical
)

// String returns the lowercase kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a named, typed sequence of values. Its data is copied in and
// out so a Column can be shared between tables safely.
type Column struct {
	Name   string
	Kind   Kind
	values []float64
	labels []string
}

// NewNumeric creates a numeric column.
func NewNumeric(name string, values []float64) Column {
	v := make([]float64, len(values))
	copy(v, values)
	return Column{Name: name, Kind: Numeric, values: v}
}

// NewCategorical creates a categorical column.
func NewCategorical(name string, labels []string) Column {
	l := make([]string, len(labels))
	copy(l, labels)
	return Column{Name: name, Kind: Categorical, labels: l}
}

// NewIndicator creates a numeric 0/1 column from boolean flags.
func NewIndicator(name string, flags []bool) Column {
	v := make([]float64, len(flags))
	for i, f := range flags {
		if f {
			v[i] = 1
		}
	}
	return Column{Name: name, Kind: Numeric, values: v}
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	if c.Kind == Categorical {
		return len(c.labels)
	}
	return len(c.values)
}

// Float64s returns a copy of the numeric values. Categorical columns are
// never coerced.
func (c Column) Float64s() ([]float64, error) {
	if c.Kind != Numeric {
		return nil, errors.NewTypeMismatchError("Column.Float64s", c.Name, Numeric.String(), c.Kind.String())
	}
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out, nil
}

// Strings returns the values as text. Numeric values are formatted with
// the shortest representation that round-trips.
func (c Column) Strings() []string {
	if c.Kind == Categorical {
		out := make([]string, len(c.labels))
		copy(out, c.labels)
		return out
	}
	out := make([]string, len(c.values))
	for i, v := range c.values {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

// Rename returns a copy of the column under a new name.
func (c Column) Rename(name string) Column {
	c.Name = name
	return c
}

func (c Column) take(rows []int) Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == Categorical {
		out.labels = make([]string, len(rows))
		for i, r := range rows {
			out.labels[i] = c.labels[r]
		}
		return out
	}
	out.values = make([]float64, len(rows))
	for i, r := range rows {
		out.values[i] = c.values[r]
	}
	return out
}
