package model_selection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// funcScorer scores subsets with a plain function and records every call.
type funcScorer struct {
	fn    func(features []string) float64
	calls [][]string
}

func (s *funcScorer) Score(features []string) (float64, error) {
	s.calls = append(s.calls, append([]string(nil), features...))
	if len(features) == 0 {
		return 0, errors.NewInvalidModelInputError("funcScorer", "empty predictor subset")
	}
	return s.fn(features), nil
}

func TestBackwardEliminateSelectsSignal(t *testing.T) {
	data := signalFixture(t, 40)
	scorer, err := NewCVScorer(data, WithShuffle(false), WithLogger(quietLogger()))
	require.NoError(t, err)

	result, err := BackwardEliminate(scorer, data.Features(), WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, result.Features)
	assert.Equal(t, 2, result.Iterations)
	assert.Len(t, result.History, 2)
	assert.LessOrEqual(t, result.Score, result.Baseline)
	assert.InDelta(t, 0.401583467, result.Baseline, 1e-6)
	assert.InDelta(t, 0.348286954, result.Score, 1e-6)
	assert.ElementsMatch(t, []string{"b", "c"}, result.Removed)

	// dropping the signal column is the worst candidate in every round
	for _, step := range result.History {
		worst := step.Candidates[0]
		for _, c := range step.Candidates[1:] {
			if c.Score > worst.Score {
				worst = c
			}
		}
		assert.Equal(t, "a", worst.Removed)
	}

	final, err := scorer.Score(result.Features)
	require.NoError(t, err)
	assert.Equal(t, result.Score, final)
}

func TestBackwardEliminateNoiseRemovedBeforeSignal(t *testing.T) {
	// Over several fold seeds the first-round pick is always a noise column.
	data := signalFixture(t, 40)
	for _, seed := range []uint64{1, 2, 3, 4, 5, 6, 7, 8} {
		scorer, err := NewCVScorer(data, WithSeed(seed), WithLogger(quietLogger()))
		require.NoError(t, err)
		result, err := BackwardEliminate(scorer, data.Features(), WithLogger(quietLogger()))
		require.NoError(t, err)

		require.NotEmpty(t, result.History, "seed %d", seed)
		first := result.History[0]
		assert.NotEqual(t, "a", first.Candidates[first.Best].Removed, "seed %d", seed)
		assert.Contains(t, result.Features, "a", "seed %d", seed)
		assert.LessOrEqual(t, result.Score, result.Baseline, "seed %d", seed)
	}
}

func TestBackwardEliminateIterationBound(t *testing.T) {
	features := []string{"f1", "f2", "f3", "f4", "f5"}
	// every removal helps, so the search runs until one predictor is left
	scorer := &funcScorer{fn: func(fs []string) float64 { return float64(len(fs)) }}

	result, err := BackwardEliminate(scorer, features, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Iterations, len(features))
	assert.Equal(t, len(features)-1, result.Iterations)
	assert.Len(t, result.Features, 1)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 5.0, result.Baseline)
	for _, call := range scorer.calls {
		assert.NotEmpty(t, call, "empty subset must never be scored")
	}
}

func TestBackwardEliminateTieBreakFirstSeen(t *testing.T) {
	features := []string{"x", "y", "z"}
	scorer := &funcScorer{fn: func(fs []string) float64 {
		if len(fs) == 3 {
			return 2
		}
		return 1
	}}

	result, err := BackwardEliminate(scorer, features, WithLogger(quietLogger()))
	require.NoError(t, err)

	// all first-round candidates tie; the first one wins, then nothing improves
	assert.Equal(t, []string{"y", "z"}, result.Features)
	assert.Equal(t, []string{"x"}, result.Removed)
	assert.Equal(t, 2, result.Iterations)
	require.Len(t, result.History, 2)
	assert.True(t, result.History[0].Accepted)
	assert.Equal(t, 0, result.History[0].Best)
	assert.False(t, result.History[1].Accepted)
}

func TestBackwardEliminateKeepsBaselineWhenNothingHelps(t *testing.T) {
	features := []string{"x", "y"}
	scorer := &funcScorer{fn: func(fs []string) float64 { return 1 / float64(len(fs)) }}

	result, err := BackwardEliminate(scorer, features, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, features, result.Features)
	assert.Equal(t, result.Baseline, result.Score)
	assert.Empty(t, result.Removed)
	assert.Equal(t, 1, result.Iterations)
}

func TestBackwardEliminatePreservesOrder(t *testing.T) {
	features := []string{"p", "q", "r", "s"}
	// removing q or s helps; p and r are needed
	scorer := &funcScorer{fn: func(fs []string) float64 {
		joined := strings.Join(fs, "")
		score := 10.0
		if strings.Contains(joined, "q") {
			score += 2
		}
		if strings.Contains(joined, "s") {
			score++
		}
		if !strings.Contains(joined, "p") || !strings.Contains(joined, "r") {
			score += 100
		}
		return score
	}}

	result, err := BackwardEliminate(scorer, features, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "r"}, result.Features)
	assert.Equal(t, []string{"q", "s"}, result.Removed)
	assert.Equal(t, 10.0, result.Score)
}

func TestBackwardEliminateSinglePredictorIsTerminal(t *testing.T) {
	scorer := &funcScorer{fn: func([]string) float64 { return 3 }}

	result, err := BackwardEliminate(scorer, []string{"only"}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, result.Features)
	assert.Equal(t, 0, result.Iterations)
	assert.Len(t, scorer.calls, 1)
}

func TestBackwardEliminateErrors(t *testing.T) {
	scorer := &funcScorer{fn: func([]string) float64 { return 0 }}

	_, err := BackwardEliminate(scorer, nil)
	var inputErr *errors.InvalidModelInputError
	assert.True(t, errors.As(err, &inputErr))

	_, err = BackwardEliminate(scorer, []string{"a", "a"})
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	data := signalFixture(t, 40)
	cv, err := NewCVScorer(data, WithLogger(quietLogger()))
	require.NoError(t, err)
	_, err = BackwardEliminate(cv, []string{"a", "missing"}, WithLogger(quietLogger()))
	assert.True(t, errors.As(err, &valErr))
}

func TestBackwardEliminateLogs(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	scorer := &funcScorer{fn: func(fs []string) float64 { return float64(len(fs)) }}

	_, err := BackwardEliminate(scorer, []string{"a", "b"}, WithLogger(logger))
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("Backward elimination started"))
	assert.True(t, logger.ContainsMessage("Backward elimination finished"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationSelect))
}
