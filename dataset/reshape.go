package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

// RightSuffix is appended to right-hand column names that clash in a join.
const RightSuffix = "_right"

// JoinOnState inner-joins left and right on the state column key, after
// normalising both sides with NormalizeState. Right must have at most one
// row per state; left may have many (a state by date panel). Output rows
// are sorted by state, keeping left order within a state. A right column
// whose name clashes with a left one gets RightSuffix; if that name is
// also taken the join fails with a ValidationError.
func JoinOnState(left, right *table.Table, key string) (*table.Table, error) {
	leftStates, err := categoricalLabels(left, "JoinOnState", key)
	if err != nil {
		return nil, err
	}
	rightStates, err := categoricalLabels(right, "JoinOnState", key)
	if err != nil {
		return nil, err
	}

	rightRow := make(map[string]int, len(rightStates))
	for i, s := range rightStates {
		s, _ = NormalizeState(s)
		if _, dup := rightRow[s]; dup {
			return nil, errors.NewValidationError(key, "duplicate state in right table", s)
		}
		rightRow[s] = i
	}

	var leftIdx, rightIdx []int
	var states []string
	for i, s := range leftStates {
		s, _ = NormalizeState(s)
		if j, ok := rightRow[s]; ok {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, j)
			states = append(states, s)
		}
	}
	if len(leftIdx) == 0 {
		return nil, errors.NewModelError("JoinOnState", "no matching states", errors.ErrEmptyData)
	}

	order := make([]int, len(leftIdx))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return states[order[a]] < states[order[b]] })
	reorder := func(idx []int) []int {
		out := make([]int, len(order))
		for i, o := range order {
			out[i] = idx[o]
		}
		return out
	}

	l, err := left.Take(reorder(leftIdx))
	if err != nil {
		return nil, err
	}
	r, err := right.Take(reorder(rightIdx))
	if err != nil {
		return nil, err
	}

	sortedStates := make([]string, len(order))
	for i, o := range order {
		sortedStates[i] = states[o]
	}
	cols := []table.Column{table.NewCategorical(key, sortedStates)}
	for _, c := range l.Columns() {
		if c.Name != key {
			cols = append(cols, c)
		}
	}
	for _, c := range r.Columns() {
		if c.Name == key {
			continue
		}
		if l.Has(c.Name) {
			renamed := c.Name + RightSuffix
			if l.Has(renamed) || r.Has(renamed) {
				return nil, errors.NewValidationError(c.Name,
					"clashes with the left table and "+renamed+" is already taken", renamed)
			}
			c = c.Rename(renamed)
		}
		cols = append(cols, c)
	}
	return table.New(cols...)
}

// LongOptions describes a wide-to-long reshape.
type LongOptions struct {
	// Stubs are the column prefixes, e.g. "TOTAL CASES" for
	// "TOTAL CASES 200315".
	Stubs []string
	// Sep separates stub and suffix. Defaults to " ".
	Sep string
	// Suffix names the new column holding the suffixes. Defaults to "suffix".
	Suffix string
	// DateLayout, when set, parses suffixes with this time layout (for
	// example "060102") and stores them as ISO dates.
	DateLayout string
}

// WideToLong turns "<stub><sep><suffix>" columns into one row per input
// row and suffix, with one column per stub. Columns that match no stub
// are repeated on every output row. Suffixes keep first-seen order.
func WideToLong(tbl *table.Table, opts LongOptions) (*table.Table, error) {
	if len(opts.Stubs) == 0 {
		return nil, errors.NewValueError("WideToLong", "no stubs")
	}
	sep := opts.Sep
	if sep == "" {
		sep = " "
	}
	suffixName := opts.Suffix
	if suffixName == "" {
		suffixName = "suffix"
	}

	// stub -> suffix -> column
	wide := make(map[string]map[string]table.Column, len(opts.Stubs))
	var suffixes []string
	seenSuffix := make(map[string]bool)
	var ids []table.Column
	for _, c := range tbl.Columns() {
		stub, suffix, ok := matchStub(c.Name, opts.Stubs, sep)
		if !ok {
			ids = append(ids, c)
			continue
		}
		if c.Kind != table.Numeric {
			return nil, typeMismatch("WideToLong", c)
		}
		if wide[stub] == nil {
			wide[stub] = make(map[string]table.Column)
		}
		wide[stub][suffix] = c
		if !seenSuffix[suffix] {
			seenSuffix[suffix] = true
			suffixes = append(suffixes, suffix)
		}
	}
	if len(suffixes) == 0 {
		return nil, errors.NewValueError("WideToLong", "no columns match the stubs")
	}
	for _, stub := range opts.Stubs {
		for _, suffix := range suffixes {
			if _, ok := wide[stub][suffix]; !ok {
				return nil, errors.NewValidationError(stub, "missing column for suffix", suffix)
			}
		}
	}

	labels := make([]string, len(suffixes))
	for i, s := range suffixes {
		labels[i] = s
		if opts.DateLayout != "" {
			d, err := time.Parse(opts.DateLayout, s)
			if err != nil {
				return nil, errors.Wrapf(err, "parse suffix %q", s)
			}
			labels[i] = d.Format(time.DateOnly)
		}
	}

	n := tbl.Rows() * len(suffixes)
	rows := make([]int, 0, n)
	suffixCol := make([]string, 0, n)
	for r := 0; r < tbl.Rows(); r++ {
		for i := range suffixes {
			rows = append(rows, r)
			suffixCol = append(suffixCol, labels[i])
		}
	}

	var out []table.Column
	if len(ids) > 0 {
		idTable, err := table.New(ids...)
		if err != nil {
			return nil, err
		}
		repeated, err := idTable.Take(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, repeated.Columns()...)
	}
	out = append(out, table.NewCategorical(suffixName, suffixCol))

	for _, stub := range opts.Stubs {
		values := make([]float64, 0, n)
		perSuffix := make([][]float64, len(suffixes))
		for i, s := range suffixes {
			perSuffix[i], _ = wide[stub][s].Float64s()
		}
		for r := 0; r < tbl.Rows(); r++ {
			for i := range suffixes {
				values = append(values, perSuffix[i][r])
			}
		}
		out = append(out, table.NewNumeric(stub, values))
	}
	return table.New(out...)
}

// matchStub picks the longest stub that prefixes name followed by sep.
func matchStub(name string, stubs []string, sep string) (stub, suffix string, ok bool) {
	for _, s := range stubs {
		prefix := s + sep
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) && len(s) > len(stub) {
			stub, suffix, ok = s, name[len(prefix):], true
		}
	}
	return stub, suffix, ok
}

// FilterEqual keeps the rows whose categorical column equals one of values.
func FilterEqual(tbl *table.Table, column string, values ...string) (*table.Table, error) {
	labels, err := categoricalLabels(tbl, "FilterEqual", column)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}
	var rows []int
	for i, l := range labels {
		if want[l] {
			rows = append(rows, i)
		}
	}
	return tbl.Take(rows)
}
