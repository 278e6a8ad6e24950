package model

import (
	"testing"

	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

func TestBaseEstimatorState(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() {
		t.Fatal("zero value should not be fitted")
	}

	err := e.CheckFitted("LinearRegression", "Predict", 2)
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}

	e.SetFitted(2)
	if !e.IsFitted() || e.NFeatures() != 2 {
		t.Fatal("expected fitted with 2 features")
	}
	if err := e.CheckFitted("LinearRegression", "Predict", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = e.CheckFitted("LinearRegression", "Predict", 3)
	var shapeErr *errors.ShapeMismatchError
	if !errors.As(err, &shapeErr) || shapeErr.Axis != 1 {
		t.Fatalf("expected feature ShapeMismatchError, got %v", err)
	}

	e.Reset()
	if e.IsFitted() {
		t.Fatal("expected not fitted after Reset")
	}
}
