package linear

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

func TestLinearRegressionPerfectLine(t *testing.T) {
	// y = 2x + 3
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{5, 7, 9, 11, 13})

	lr := NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))

	assert.InDelta(t, 2.0, lr.Coef()[0], 1e-10)
	assert.InDelta(t, 3.0, lr.Intercept(), 1e-10)
	assert.Equal(t, 1, lr.Rank())

	pred, err := lr.Predict(mat.NewDense(2, 1, []float64{10, -1}))
	require.NoError(t, err)
	assert.InDelta(t, 23.0, pred.At(0, 0), 1e-10)
	assert.InDelta(t, 1.0, pred.At(1, 0), 1e-10)

	score, err := lr.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)
}

func TestLinearRegressionMultipleFeatures(t *testing.T) {
	X, y := createBenchmarkData(200, 3)

	lr := NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))

	// 真の重みは 0.5, 1.0, 1.5、切片は 1.0
	coef := lr.Coef()
	require.Len(t, coef, 3)
	assert.InDelta(t, 0.5, coef[0], 0.05)
	assert.InDelta(t, 1.0, coef[1], 0.05)
	assert.InDelta(t, 1.5, coef[2], 0.05)
	assert.InDelta(t, 1.0, lr.Intercept(), 0.05)
}

func TestLinearRegressionWithoutIntercept(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})

	lr := NewLinearRegression(WithFitIntercept(false))
	require.NoError(t, lr.Fit(X, y))

	assert.InDelta(t, 2.0, lr.Coef()[0], 1e-10)
	assert.Equal(t, 0.0, lr.Intercept())
}

func TestLinearRegressionCollinearFeatures(t *testing.T) {
	// 2列目は1列目の複製。正規方程式なら特異行列になる
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})

	lr := NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))
	assert.Equal(t, 1, lr.Rank())

	// 最小ノルム解は係数を等分する
	coef := lr.Coef()
	assert.InDelta(t, 1.0, coef[0], 1e-10)
	assert.InDelta(t, 1.0, coef[1], 1e-10)

	score, err := lr.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-10)
}

func TestLinearRegressionConstantFeature(t *testing.T) {
	// 中心化後に全て0になる列はランク0として扱い、平均を予測する
	X := mat.NewDense(3, 1, []float64{4, 4, 4})
	y := mat.NewDense(3, 1, []float64{1, 2, 6})

	lr := NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))
	assert.Equal(t, 0, lr.Rank())
	assert.Equal(t, 0.0, lr.Coef()[0])
	assert.InDelta(t, 3.0, lr.Intercept(), 1e-12)
}

func TestLinearRegressionScoreZeroVarianceTarget(t *testing.T) {
	errors.SetWarningHandler(func(error) {})

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{5, 5, 5})

	lr := NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))

	score, err := lr.Score(X, y)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(score))
}

func TestLinearRegressionErrors(t *testing.T) {
	t.Run("row mismatch", func(t *testing.T) {
		lr := NewLinearRegression()
		err := lr.Fit(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewDense(2, 1, []float64{1, 2}))
		var shapeErr *errors.ShapeMismatchError
		require.True(t, errors.As(err, &shapeErr))
		assert.Equal(t, 0, shapeErr.Axis)
	})

	t.Run("y not a column", func(t *testing.T) {
		lr := NewLinearRegression()
		err := lr.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(2, 2, nil))
		var valErr *errors.ValueError
		assert.True(t, errors.As(err, &valErr))
	})

	t.Run("predict before fit", func(t *testing.T) {
		lr := NewLinearRegression()
		_, err := lr.Predict(mat.NewDense(1, 1, []float64{1}))
		var notFitted *errors.NotFittedError
		assert.True(t, errors.As(err, &notFitted))
		assert.Nil(t, lr.Coef())
	})

	t.Run("predict feature mismatch", func(t *testing.T) {
		lr := NewLinearRegression()
		require.NoError(t, lr.Fit(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewDense(3, 1, []float64{1, 2, 3})))
		_, err := lr.Predict(mat.NewDense(1, 2, []float64{1, 2}))
		var shapeErr *errors.ShapeMismatchError
		require.True(t, errors.As(err, &shapeErr))
		assert.Equal(t, 1, shapeErr.Axis)
	})
}
