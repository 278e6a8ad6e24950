package model_selection

import (
	"github.com/YuminosukeSato/covidrank/core/model"
	"github.com/YuminosukeSato/covidrank/linear"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// Defaults used when an option is not given.
const (
	DefaultNSplits  = 5
	DefaultSeed     = 42
	DefaultTestSize = 0.2
)

type options struct {
	nSplits  int
	shuffle  bool
	seed     uint64
	testSize float64
	factory  model.RegressorFactory
	logger   log.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		nSplits:  DefaultNSplits,
		shuffle:  true,
		seed:     DefaultSeed,
		testSize: DefaultTestSize,
		factory: func() model.Regressor {
			return linear.NewLinearRegression()
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("model_selection")
	}
	return o
}

// Option configures the scorer, the search and the holdout evaluator.
type Option func(*options)

// WithNSplits sets the number of cross-validation folds.
func WithNSplits(n int) Option {
	return func(o *options) {
		o.nSplits = n
	}
}

// WithShuffle sets whether rows are shuffled before being cut into folds.
func WithShuffle(shuffle bool) Option {
	return func(o *options) {
		o.shuffle = shuffle
	}
}

// WithSeed sets the seed for fold shuffling and the train/test split.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithTestSize sets the holdout test fraction, in (0, 1).
func WithTestSize(size float64) Option {
	return func(o *options) {
		o.testSize = size
	}
}

// WithRegressor replaces the default OLS model.
func WithRegressor(factory model.RegressorFactory) Option {
	return func(o *options) {
		o.factory = factory
	}
}

// WithLogger sets the logger for progress records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
