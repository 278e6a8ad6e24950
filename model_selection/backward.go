package model_selection

import (
	"time"

	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// Candidate is one single-predictor removal considered in a round.
type Candidate struct {
	Removed string
	Score   float64
}

// Step records one round of the search.
type Step struct {
	Iteration  int
	Candidates []Candidate
	// Best is the index into Candidates of the lowest score.
	Best     int
	Accepted bool
	// Remaining is the predictor set after the round.
	Remaining []string
}

// SelectionResult is the outcome of a backward elimination run.
type SelectionResult struct {
	// Features is the selected subset, in the order the predictors were given.
	Features []string
	// Score is the cross-validated error of Features.
	Score float64
	// Baseline is the score of the full predictor set.
	Baseline float64
	// Removed lists the eliminated predictors in removal order.
	Removed    []string
	History    []Step
	Iterations int
}

// BackwardEliminate starts from the full predictor set and repeatedly
// drops the single predictor whose removal gives the lowest score, as long
// as that score is strictly lower than the best so far.
//
// Ties between candidates go to the first one in predictor order. A
// one-predictor set is terminal: the empty subset is never scored. The
// search runs at most len(features)-1 rounds.
func BackwardEliminate(scorer SubsetScorer, features []string, opts ...Option) (*SelectionResult, error) {
	o := newOptions(opts)
	logger := o.logger.With(log.OperationKey, log.OperationSelect)
	start := time.Now()

	if len(features) == 0 {
		return nil, errors.NewInvalidModelInputError("BackwardEliminate", "empty predictor set")
	}
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		if seen[f] {
			return nil, errors.NewValidationError("features", "duplicate predictor", f)
		}
		seen[f] = true
	}

	remaining := append([]string(nil), features...)
	baseline, err := scorer.Score(remaining)
	if err != nil {
		return nil, errors.Wrap(err, "scoring full predictor set")
	}
	logger.Info("Backward elimination started",
		log.FeaturesKey, len(remaining),
		log.BaselineLossKey, baseline,
	)

	result := &SelectionResult{Baseline: baseline, Score: baseline}
	for len(remaining) > 1 {
		step := Step{Iteration: result.Iterations + 1, Best: -1}
		for i, f := range remaining {
			score, err := scorer.Score(without(remaining, i))
			if err != nil {
				return nil, errors.Wrapf(err, "scoring removal of %q", f)
			}
			step.Candidates = append(step.Candidates, Candidate{Removed: f, Score: score})
			if step.Best < 0 || score < step.Candidates[step.Best].Score {
				step.Best = i
			}
		}
		result.Iterations++

		best := step.Candidates[step.Best]
		if best.Score < result.Score {
			step.Accepted = true
			remaining = without(remaining, step.Best)
			result.Score = best.Score
			result.Removed = append(result.Removed, best.Removed)
		}
		step.Remaining = append([]string(nil), remaining...)
		result.History = append(result.History, step)

		logger.Debug("Elimination round",
			log.IterationKey, step.Iteration,
			"removed", best.Removed,
			log.LossKey, best.Score,
			"accepted", step.Accepted,
		)
		if !step.Accepted {
			break
		}
	}

	result.Features = remaining
	logger.Info("Backward elimination finished",
		log.IterationKey, result.Iterations,
		log.FeatureNamesKey, result.Features,
		log.LossKey, result.Score,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// without returns a copy of names with the element at i removed.
func without(names []string, i int) []string {
	out := make([]string, 0, len(names)-1)
	out = append(out, names[:i]...)
	return append(out, names[i+1:]...)
}
