package model_selection

import (
	"github.com/YuminosukeSato/covidrank/metrics"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// HoldoutMetrics reports a single fit on a fixed train/test split.
// R² values are NaN when the corresponding target has zero variance.
type HoldoutMetrics struct {
	TrainR2  float64 `json:"train_r2"`
	TestR2   float64 `json:"test_r2"`
	TestMSE  float64 `json:"test_mse"`
	TrainMSE float64 `json:"train_mse"`
	NTrain   int     `json:"n_train"`
	NTest    int     `json:"n_test"`
	// Coefficients and Intercept are set when the model exposes them.
	Coefficients map[string]float64 `json:"coefficients,omitempty"`
	Intercept    float64            `json:"intercept"`
}

type linearModel interface {
	Coef() []float64
	Intercept() float64
}

// EvaluateHoldout fits one model on a seeded train/test split of the
// dataset's rows using the given predictors.
func EvaluateHoldout(data *Dataset, features []string, opts ...Option) (*HoldoutMetrics, error) {
	o := newOptions(opts)
	if data == nil {
		return nil, errors.NewModelError("EvaluateHoldout", "no data", errors.ErrEmptyData)
	}

	X, y, err := data.design("EvaluateHoldout", features)
	if err != nil {
		return nil, err
	}
	trainIdx, testIdx, err := TrainTestSplit(data.Rows(), o.testSize, o.seed)
	if err != nil {
		return nil, err
	}
	trainX, trainY := subset(X, y, trainIdx)
	testX, testY := subset(X, y, testIdx)

	reg := o.factory()
	if err := reg.Fit(trainX, trainY); err != nil {
		return nil, errors.Wrap(err, "holdout training failed")
	}

	trainPred, err := reg.Predict(trainX)
	if err != nil {
		return nil, err
	}
	testPred, err := reg.Predict(testX)
	if err != nil {
		return nil, err
	}

	m := &HoldoutMetrics{NTrain: len(trainIdx), NTest: len(testIdx)}
	if m.TrainR2, err = metrics.R2ScoreMatrix(trainY, trainPred); err != nil {
		return nil, err
	}
	if m.TestR2, err = metrics.R2ScoreMatrix(testY, testPred); err != nil {
		return nil, err
	}
	if m.TrainMSE, err = metrics.MSEMatrix(trainY, trainPred); err != nil {
		return nil, err
	}
	if m.TestMSE, err = metrics.MSEMatrix(testY, testPred); err != nil {
		return nil, err
	}

	if lm, ok := reg.(linearModel); ok {
		coef := lm.Coef()
		m.Coefficients = make(map[string]float64, len(coef))
		for i, f := range features {
			m.Coefficients[f] = coef[i]
		}
		m.Intercept = lm.Intercept()
	}

	o.logger.Info("Holdout evaluation",
		log.OperationKey, log.OperationHoldout,
		log.FeatureNamesKey, features,
		log.TestSizeKey, o.testSize,
		log.RandomSeedKey, o.seed,
		log.R2ScoreKey, m.TestR2,
		log.LossKey, m.TestMSE,
	)
	return m, nil
}
