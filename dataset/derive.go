package dataset

import (
	"strconv"
	"strings"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

// PerCapita adds a column name = column / population * per, for example
// cases per 100,000 residents.
func PerCapita(tbl *table.Table, column, population string, per float64, name string) (*table.Table, error) {
	values, err := tbl.Numeric(column)
	if err != nil {
		return nil, err
	}
	pop, err := tbl.Numeric(population)
	if err != nil {
		return nil, err
	}
	rates := make([]float64, len(values))
	for i, v := range values {
		if pop[i] <= 0 {
			return nil, errors.NewValidationError(population, "must be positive", pop[i])
		}
		rates[i] = v / pop[i] * per
	}
	return tbl.With(table.NewNumeric(name, rates))
}

// ParseRank parses a rank printed as "(12)" or "12".
func ParseRank(s string) (int, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "()")
	rank, err := strconv.Atoi(strings.TrimSpace(trimmed))
	if err != nil {
		return 0, errors.NewValueError("ParseRank", "invalid rank "+strconv.Quote(s))
	}
	return rank, nil
}

// ParseRankColumn replaces a categorical rank column with its numeric value.
func ParseRankColumn(tbl *table.Table, column string) (*table.Table, error) {
	labels, err := categoricalLabels(tbl, "ParseRankColumn", column)
	if err != nil {
		return nil, err
	}
	ranks := make([]float64, len(labels))
	for i, l := range labels {
		r, err := ParseRank(l)
		if err != nil {
			return nil, err
		}
		ranks[i] = float64(r)
	}
	return tbl.With(table.NewNumeric(column, ranks))
}

// MinMaxBy returns the label of the row with the largest value of by and
// the label of the row with the smallest. Ties go to the first row.
func MinMaxBy(tbl *table.Table, by, label string) (maxLabel, minLabel string, err error) {
	values, err := tbl.Numeric(by)
	if err != nil {
		return "", "", err
	}
	labels, err := tbl.Labels(label)
	if err != nil {
		return "", "", err
	}
	if len(values) == 0 {
		return "", "", errors.NewModelError("MinMaxBy", "empty data", errors.ErrEmptyData)
	}
	hi, lo := 0, 0
	for i, v := range values {
		if v > values[hi] {
			hi = i
		}
		if v < values[lo] {
			lo = i
		}
	}
	return labels[hi], labels[lo], nil
}

func typeMismatch(op string, c table.Column) error {
	expected := table.Categorical
	if c.Kind == table.Categorical {
		expected = table.Numeric
	}
	return errors.NewTypeMismatchError(op, c.Name, expected.String(), c.Kind.String())
}
