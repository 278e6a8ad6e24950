package model_selection

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/covidrank/core/model"
	"github.com/YuminosukeSato/covidrank/metrics"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// SubsetScorer estimates out-of-sample error for a predictor subset.
// Lower is better.
type SubsetScorer interface {
	Score(features []string) (float64, error)
}

// CVScorer scores a subset by the mean held-out MSE over k folds. The
// fold partition is drawn once, when the scorer is built, and reused for
// every subset so scores are comparable.
type CVScorer struct {
	data    *Dataset
	folds   []Fold
	factory model.RegressorFactory
	logger  log.Logger
}

var _ SubsetScorer = (*CVScorer)(nil)

// NewCVScorer partitions the dataset's rows into folds.
func NewCVScorer(data *Dataset, opts ...Option) (*CVScorer, error) {
	o := newOptions(opts)
	if data == nil || data.Rows() == 0 {
		return nil, errors.NewModelError("NewCVScorer", "empty data", errors.ErrEmptyData)
	}
	kf := NewKFold(o.nSplits, o.shuffle, o.seed)
	folds, err := kf.Split(data.Rows())
	if err != nil {
		return nil, err
	}

	o.logger.Debug("Folds prepared",
		log.SamplesKey, data.Rows(),
		log.SplitsKey, o.nSplits,
		log.RandomSeedKey, o.seed,
	)
	return &CVScorer{
		data:    data,
		folds:   folds,
		factory: o.factory,
		logger:  o.logger,
	}, nil
}

// Folds returns a copy of the fold partition.
func (s *CVScorer) Folds() []Fold {
	out := make([]Fold, len(s.folds))
	for i, f := range s.folds {
		out[i] = Fold{
			TrainIndices: append([]int(nil), f.TrainIndices...),
			TestIndices:  append([]int(nil), f.TestIndices...),
		}
	}
	return out
}

// Score returns the mean of the per-fold MSE values.
func (s *CVScorer) Score(features []string) (float64, error) {
	scores, err := s.FoldScores(features)
	if err != nil {
		return 0, err
	}
	return stat.Mean(scores, nil), nil
}

// FoldScores fits a fresh model on each fold's training rows and returns
// the MSE on its test rows, in fold order.
func (s *CVScorer) FoldScores(features []string) ([]float64, error) {
	start := time.Now()

	X, y, err := s.data.design("CVScorer.Score", features)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(s.folds))
	for i, fold := range s.folds {
		trainX, trainY := subset(X, y, fold.TrainIndices)
		testX, testY := subset(X, y, fold.TestIndices)

		reg := s.factory()
		if err := reg.Fit(trainX, trainY); err != nil {
			return nil, errors.Wrapf(err, "fold %d training failed", i)
		}
		pred, err := reg.Predict(testX)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d prediction failed", i)
		}
		mse, err := metrics.MSEMatrix(testY, pred)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d scoring failed", i)
		}
		scores[i] = mse
	}

	s.logger.Debug("Subset scored",
		log.OperationKey, log.OperationScore,
		log.FeatureNamesKey, features,
		log.LossKey, stat.Mean(scores, nil),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return scores, nil
}
