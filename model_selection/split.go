package model_selection

import (
	"math"

	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

// TrainTestSplit shuffles row indices with the given seed and cuts off
// ceil(testSize * nSamples) of them as the test set. Both sides must end
// up with at least one row.
func TrainTestSplit(nSamples int, testSize float64, seed uint64) (train, test []int, err error) {
	if !(testSize > 0 && testSize < 1) {
		return nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}

	nTest := int(math.Ceil(testSize * float64(nSamples)))
	nTrain := nSamples - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, nil, errors.NewValidationError("test_size",
			"leaves an empty train or test set", testSize)
	}

	perm := permutation(nSamples, true, seed)
	test = append([]int(nil), perm[:nTest]...)
	train = append([]int(nil), perm[nTest:]...)
	return train, test, nil
}
