// Package linear implements ordinary least squares regression.
package linear

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/covidrank/core/model"
	"github.com/YuminosukeSato/covidrank/metrics"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// LinearRegression は最小二乗法による線形回帰モデル
type LinearRegression struct {
	model.BaseEstimator // BaseEstimatorを埋め込み

	coef      *mat.VecDense // 重み（係数）
	intercept float64       // 切片
	rank      int           // 計画行列の実効ランク

	fitIntercept bool
	rcond        float64
	logger       log.Logger
}

var _ model.Regressor = (*LinearRegression)(nil)

// NewLinearRegression は新しい線形回帰モデルを作成する
//
// 使用例:
//
//	lr := linear.NewLinearRegression(linear.WithFitIntercept(true))
//	if err := lr.Fit(X, y); err != nil { ... }
//	pred, err := lr.Predict(X)
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept: true,
		logger:       log.GetLoggerWithName("linear"),
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる。
//
// 正規方程式ではなく SVD による最小ノルム最小二乗解を使うため、
// 共線な特徴量（ダミー変数の全カテゴリなど）や n < p でも失敗しない。
// 切片を推定する場合は X と y を中心化してから解き、
// intercept = mean(y) - mean(X)·coef とする。
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewShapeMismatchError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	xc := mat.DenseCopyOf(X)
	yc := mat.NewDense(r, 1, nil)
	yc.Copy(y)

	xMean := make([]float64, c)
	var yMean float64
	if lr.fitIntercept {
		col := make([]float64, r)
		for j := 0; j < c; j++ {
			mat.Col(col, j, xc)
			xMean[j] = floats.Sum(col) / float64(r)
			floats.AddConst(-xMean[j], col)
			xc.SetCol(j, col)
		}
		mat.Col(col, 0, yc)
		yMean = floats.Sum(col) / float64(r)
		floats.AddConst(-yMean, col)
		yc.SetCol(0, col)
	}

	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return errors.NewModelError("LinearRegression.Fit", "SVD factorization failed", errors.ErrSingularMatrix)
	}

	rcond := lr.rcond
	if rcond <= 0 {
		rcond = float64(max(r, c)) * eps
	}
	lr.rank = effectiveRank(svd.Values(nil), rcond)

	coef := mat.NewVecDense(c, nil)
	if lr.rank > 0 {
		var sol mat.Dense
		svd.SolveTo(&sol, yc, lr.rank)
		coef.CopyVec(sol.ColView(0))
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", coef); err != nil {
		return err
	}

	lr.coef = coef
	lr.intercept = 0
	if lr.fitIntercept {
		lr.intercept = yMean - floats.Dot(xMean, coef.RawVector().Data)
	}
	lr.SetFitted(c)

	lr.logger.Debug("Model fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		"rank", lr.rank,
	)
	return nil
}

// eps is the float64 machine epsilon used for the default cutoff.
var eps = math.Nextafter(1, 2) - 1

// effectiveRank counts singular values above rcond times the largest one.
func effectiveRank(values []float64, rcond float64) int {
	if len(values) == 0 || values[0] == 0 {
		return 0
	}
	cutoff := rcond * values[0]
	rank := 0
	for _, s := range values {
		if s > cutoff {
			rank++
		}
	}
	return rank
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := lr.CheckFitted("LinearRegression", "Predict", c); err != nil {
		return nil, err
	}

	// 予測: y = X * coef + intercept
	var pred mat.VecDense
	pred.MulVec(X, lr.coef)

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, pred.AtVec(i)+lr.intercept)
	}
	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算する。
// y の分散が0の場合は NaN を返す（エラーではない）。
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

// Coef は学習された係数のコピーを返す。未学習なら nil。
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef == nil {
		return nil
	}
	out := make([]float64, lr.coef.Len())
	copy(out, lr.coef.RawVector().Data)
	return out
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.intercept
}

// Rank は学習時の計画行列の実効ランクを返す
func (lr *LinearRegression) Rank() int {
	return lr.rank
}
