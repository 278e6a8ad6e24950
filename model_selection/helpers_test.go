package model_selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// hashNoise is a deterministic value in [-1, 1) that is uncorrelated with
// i for the multipliers used below.
func hashNoise(i, m, p int) float64 {
	return float64((i*m+17)%p)/(float64(p)/2) - 1
}

// signalFixture has y = 2a + 3 + noise with b and c pure noise columns.
func signalFixture(t *testing.T, n int) *Dataset {
	t.Helper()
	state := make([]string, n)
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		state[i] = string(rune('A'+i%26)) + string(rune('A'+i/26))
		a[i] = float64(i % 7)
		b[i] = hashNoise(i, 7919, 101) * 3
		c[i] = hashNoise(i, 104729, 97) * 3
		y[i] = 2*a[i] + 3 + hashNoise(i, 15485863, 89)
	}
	tbl, err := table.New(
		table.NewCategorical("state", state),
		table.NewNumeric("a", a),
		table.NewNumeric("b", b),
		table.NewNumeric("c", c),
		table.NewNumeric("y", y),
	)
	require.NoError(t, err)

	data, err := FromTable(tbl, "y", "state")
	require.NoError(t, err)
	return data
}

// lineFixture has y = 2x + 3 exactly.
func lineFixture(t *testing.T, n int) *Dataset {
	t.Helper()
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = 2*x[i] + 3
	}
	tbl, err := table.New(table.NewNumeric("x", x))
	require.NoError(t, err)
	data, err := NewDataset(tbl, table.NewNumeric("y", y))
	require.NoError(t, err)
	return data
}

func quietLogger() log.Logger {
	l, _ := log.NewTestLogger(log.LevelError)
	return l
}
