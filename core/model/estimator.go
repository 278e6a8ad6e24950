package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/covidrank/core/table"
)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// RegressorFactory builds a fresh, unfitted regressor. Model selection
// code calls it once per fold or candidate so no fitted state is shared.
type RegressorFactory func() Regressor

// TableTransformer learns a mapping from one table to another, such as
// expanding a categorical column into indicator columns.
type TableTransformer interface {
	Fit(t *table.Table) error
	Transform(t *table.Table) (*table.Table, error)
	FitTransform(t *table.Table) (*table.Table, error)
}
