package model

import "github.com/YuminosukeSato/covidrank/pkg/errors"

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator は全てのモデルの基底となる構造体。
// 学習状態と学習時の特徴量数を保持する。
type BaseEstimator struct {
	state     EstimatorState
	nFeatures int
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定し、特徴量数を記録する
func (e *BaseEstimator) SetFitted(nFeatures int) {
	e.state = Fitted
	e.nFeatures = nFeatures
}

// NFeatures は学習時の特徴量数を返す
func (e *BaseEstimator) NFeatures() int {
	return e.nFeatures
}

// CheckFitted は学習済みで、かつ入力の特徴量数が一致することを確認する
func (e *BaseEstimator) CheckFitted(model, method string, nFeatures int) error {
	if e.state != Fitted {
		return errors.NewNotFittedError(model, method)
	}
	if nFeatures != e.nFeatures {
		return errors.NewShapeMismatchError(model+"."+method, e.nFeatures, nFeatures, 1)
	}
	return nil
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.nFeatures = 0
}
