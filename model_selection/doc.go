// Package model_selection searches for a predictor subset that minimises
// cross-validated prediction error and evaluates a chosen subset on a
// fixed train/test split.
//
// Every random partition is driven by an explicit seed, so the same
// dataset, subset and options always produce the same scores:
//
//	data, err := model_selection.FromTable(tbl, "cases_per_100k", "state")
//	scorer, err := model_selection.NewCVScorer(data, model_selection.WithSeed(42))
//	result, err := model_selection.BackwardEliminate(scorer, data.Features())
//	metrics, err := model_selection.EvaluateHoldout(data, result.Features)
package model_selection
